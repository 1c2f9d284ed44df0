package models

import (
	"time"
)

// PostImage rows are removed physically, unlike posts and comments; an image
// detached by its owner is gone.
type PostImage struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID    uint      `json:"postId" gorm:"not null;index"`
	ImageURL  string    `json:"imageUrl" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}
