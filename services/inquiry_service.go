package services

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/hands-live/api-go/models"
)

var phonePattern = regexp.MustCompile(`^\d{2,3}-\d{3,4}-\d{4}$`)

type InquiryService struct {
	DB         *gorm.DB
	Mailer     Mailer
	AdminEmail string
}

func NewInquiryService(db *gorm.DB, mailer Mailer) *InquiryService {
	return &InquiryService{
		DB:         db,
		Mailer:     mailer,
		AdminEmail: os.Getenv("ADMIN_EMAIL"),
	}
}

type InquiryInput struct {
	Name             string
	Email            string
	Phone            string
	Content          string
	PreferredContact string
	InquiryType      string
	OrganizationName string
}

func validateInquiryInput(input InquiryInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return newValidationError("name", "is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return newValidationError("content", "is required")
	}
	if strings.TrimSpace(input.OrganizationName) == "" {
		return newValidationError("organization_name", "is required")
	}
	if input.PreferredContact != models.ContactByEmail && input.PreferredContact != models.ContactByPhone {
		return newValidationError("preferred_contact", "must be EMAIL or PHONE")
	}
	if input.InquiryType != models.InquiryTypeCompany && input.InquiryType != models.InquiryTypeWorkshop {
		return newValidationError("inquiry_type", "must be COMPANY or WORKSHOP")
	}
	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			return newValidationError("email", "is not a valid email address")
		}
	}
	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		return newValidationError("phone", "must look like 010-1234-5678")
	}
	return nil
}

// CreateInquiry stores a guest contact inquiry and notifies the admin by
// email. The inquiry row is the source of truth: a mail failure is logged
// and never fails or rolls back the write.
func (s *InquiryService) CreateInquiry(input InquiryInput) (*models.Inquiry, error) {
	if err := validateInquiryInput(input); err != nil {
		return nil, err
	}

	inquiry := models.Inquiry{
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Content:          input.Content,
		PreferredContact: input.PreferredContact,
		InquiryType:      input.InquiryType,
		OrganizationName: input.OrganizationName,
	}
	if err := s.DB.Create(&inquiry).Error; err != nil {
		return nil, err
	}

	s.notifyAdmin(&inquiry)
	return &inquiry, nil
}

func (s *InquiryService) notifyAdmin(inquiry *models.Inquiry) {
	if s.AdminEmail == "" {
		return
	}

	organizationLabel := "Company"
	if inquiry.InquiryType == models.InquiryTypeWorkshop {
		organizationLabel = "Workshop"
	}

	subject := fmt.Sprintf("[HandsLive] New inquiry received (#%d)", inquiry.ID)
	body := fmt.Sprintf(`A new inquiry has been submitted.

Name: %s
Email: %s
Phone: %s
%s: %s
Preferred contact: %s

Message:
%s
`, inquiry.Name, inquiry.Email, inquiry.Phone, organizationLabel,
		inquiry.OrganizationName, inquiry.PreferredContact, inquiry.Content)

	if err := s.Mailer.Send([]string{s.AdminEmail}, subject, body); err != nil {
		log.Printf("Failed to send notification for inquiry %d: %v", inquiry.ID, err)
	}
}
