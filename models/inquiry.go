package models

import (
	"time"
)

// Contact preference for an inquiry reply.
const (
	ContactByEmail = "EMAIL"
	ContactByPhone = "PHONE"
)

// Who the inquiry is about: a company looking for workshops, or a workshop
// looking for companies.
const (
	InquiryTypeCompany  = "COMPANY"
	InquiryTypeWorkshop = "WORKSHOP"
)

// Inquiry is a guest contact-form submission. It has no owner and is never
// soft-deleted; submitting one triggers an admin notification email.
type Inquiry struct {
	ID               uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name             string    `json:"name" gorm:"not null;type:varchar(100)"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Content          string    `json:"content" gorm:"not null;type:text"`
	PreferredContact string    `json:"preferredContact" gorm:"not null;type:varchar(20)"`
	InquiryType      string    `json:"inquiryType" gorm:"not null;type:varchar(20)"`
	OrganizationName string    `json:"organizationName" gorm:"not null;type:varchar(255)"`
	CreatedAt        time.Time `json:"createdAt"`
}
