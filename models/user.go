package models

import (
	"time"
)

// Member roles. Only workshop owners may publish posts; both roles may
// comment and like.
const (
	RoleCompany  = "COMPANY"
	RoleWorkshop = "WORKSHOP"
)

func ValidRole(role string) bool {
	return role == RoleCompany || role == RoleWorkshop
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string    `json:"email" gorm:"unique;not null"`
	Password     string    `json:"-" gorm:"not null"` // Don't expose password hash in JSON
	Nickname     string    `json:"nickname" gorm:"unique;not null;type:varchar(10)"`
	Phone        string    `json:"phone" gorm:"unique;not null;type:varchar(20)"`
	Role         string    `json:"role" gorm:"not null;type:varchar(20)"`
	CompanyName  string    `json:"companyName,omitempty" gorm:"type:varchar(255)"`
	WorkshopName string    `json:"workshopName,omitempty" gorm:"type:varchar(255)"`
	District     string    `json:"district,omitempty" gorm:"type:varchar(20)"`
	Neighborhood string    `json:"neighborhood,omitempty" gorm:"type:varchar(20)"`
	Status       string    `json:"status" gorm:"not null;type:varchar(20);default:'active'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Posts         []Post         `json:"-" gorm:"foreignKey:UserID"`
	Comments      []Comment      `json:"-" gorm:"foreignKey:UserID"`
	PostLikes     []PostLike     `json:"-" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}

// DisplayName is the name shown next to posts and comments: companies show
// their company name, workshops their workshop name, falling back to the
// nickname when unset.
func (u *User) DisplayName() string {
	switch {
	case u.Role == RoleCompany && u.CompanyName != "":
		return u.CompanyName
	case u.Role == RoleWorkshop && u.WorkshopName != "":
		return u.WorkshopName
	default:
		return u.Nickname
	}
}
