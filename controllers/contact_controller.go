package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hands-live/api-go/services"
)

type ContactController struct {
	Service *services.InquiryService
}

type InquiryRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Content          string `json:"content"`
	PreferredContact string `json:"preferredContact"`
	InquiryType      string `json:"inquiryType"`
	OrganizationName string `json:"organizationName"`
}

func NewContactController(db *gorm.DB, mailer services.Mailer) *ContactController {
	return &ContactController{Service: services.NewInquiryService(db, mailer)}
}

// CreateInquiry godoc
// @Summary Submit a contact inquiry
// @Description Stores a guest inquiry and notifies the site admin by email
// @Tags contact
// @Accept json
// @Produce json
// @Param inquiry body InquiryRequest true "Inquiry"
// @Success 201 {object} models.Inquiry
// @Router /contact [post]
func (cc *ContactController) CreateInquiry(c *gin.Context) {
	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry, err := cc.Service.CreateInquiry(services.InquiryInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Content:          req.Content,
		PreferredContact: req.PreferredContact,
		InquiryType:      req.InquiryType,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inquiry)
}
