package models

import (
	"time"
)

// PostLike presence is the liked state: toggling creates or physically
// deletes the row. One row per (post, user).
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID    uint      `json:"postId" gorm:"not null;uniqueIndex:idx_post_likes_post_user"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_post_likes_post_user;index:idx_post_likes_user"`
	CreatedAt time.Time `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Post Post `json:"-" gorm:"foreignKey:PostID"`
}
