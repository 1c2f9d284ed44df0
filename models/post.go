package models

import (
	"time"
)

// Entity status values. IsDeleted and Status move together: a soft-deleted
// row always carries StatusDeleted, and no read path returns it.
const (
	StatusActive  = "ACTIVE"
	StatusHidden  = "HIDDEN"
	StatusDeleted = "DELETED"
)

// Post categories a workshop can publish under.
const (
	CategoryBalloon  = "BALLOON"
	CategoryGift     = "GIFT"
	CategoryWood     = "WOOD"
	CategoryDiffuser = "DIFFUSER"
	CategoryResin    = "RESIN"
	CategoryRattan   = "RATTAN"
	CategoryFlower   = "FLOWER"
	CategoryTotal    = "TOTAL"
)

var postCategories = map[string]bool{
	CategoryBalloon:  true,
	CategoryGift:     true,
	CategoryWood:     true,
	CategoryDiffuser: true,
	CategoryResin:    true,
	CategoryRattan:   true,
	CategoryFlower:   true,
	CategoryTotal:    true,
}

func ValidCategory(category string) bool {
	return postCategories[category]
}

type Post struct {
	ID           uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       uint        `json:"userId" gorm:"not null;index"`
	User         User        `json:"user" gorm:"foreignKey:UserID"`
	Title        string      `json:"title" gorm:"not null;type:varchar(255)"`
	Content      string      `json:"content" gorm:"not null;type:text"`
	Category     string      `json:"category" gorm:"not null;type:varchar(100);index:idx_posts_category"`
	ViewCount    int64       `json:"viewCount" gorm:"not null;default:0"`
	LikeCount    int64       `json:"likeCount" gorm:"not null;default:0"`
	CommentCount int64       `json:"commentCount" gorm:"not null;default:0"`
	Status       string      `json:"status" gorm:"not null;type:varchar(20);default:'ACTIVE'"`
	IsDeleted    bool        `json:"-" gorm:"not null;default:false;index:idx_posts_is_deleted"`
	Images       []PostImage `json:"images" gorm:"foreignKey:PostID"`
	Comments     []Comment   `json:"-" gorm:"foreignKey:PostID"`
	Likes        []PostLike  `json:"-" gorm:"foreignKey:PostID"`
	CreatedAt    time.Time   `json:"createdAt" gorm:"index:idx_posts_created_at"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
