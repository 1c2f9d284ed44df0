package models

import (
	"time"
)

type RefreshToken struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         uint      `json:"userId" gorm:"not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID"`
	Token          string    `json:"token" gorm:"not null;index"`
	ExpirationDate time.Time `json:"expiry" gorm:"not null"`
	CreatedAt      time.Time `json:"createdAt"`
}
