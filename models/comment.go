package models

import (
	"time"
)

type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID    uint      `json:"postId" gorm:"not null;index:idx_comments_post_created,priority:1"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID"`
	UserID    uint      `json:"userId" gorm:"not null"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	Status    string    `json:"status" gorm:"not null;type:varchar(20);default:'ACTIVE'"`
	IsDeleted bool      `json:"-" gorm:"not null;default:false;index:idx_comments_is_deleted"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_comments_post_created,priority:2"`
	UpdatedAt time.Time `json:"updatedAt"`
}
