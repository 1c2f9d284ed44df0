package controllers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hands-live/api-go/models"
	"github.com/hands-live/api-go/utils"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Nickname     string `json:"nickname" binding:"required,min=2,max=10"`
	Phone        string `json:"phone" binding:"required"`
	Role         string `json:"role" binding:"required"`
	CompanyName  string `json:"companyName"`
	WorkshopName string `json:"workshopName"`
	District     string `json:"district"`
	Neighborhood string `json:"neighborhood"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := strings.ToUpper(req.Role)
	if !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must be COMPANY or WORKSHOP", "field": "role"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	user := models.User{
		Email:        req.Email,
		Password:     string(hashedPassword),
		Nickname:     req.Nickname,
		Phone:        req.Phone,
		Role:         role,
		CompanyName:  req.CompanyName,
		WorkshopName: req.WorkshopName,
		District:     req.District,
		Neighborhood: req.Neighborhood,
		Status:       "active",
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email, nickname or phone already registered"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"nickname": user.Nickname,
			"role":     user.Role,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"nickname":    user.Nickname,
			"role":        user.Role,
			"displayName": user.DisplayName(),
		},
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var stored models.RefreshToken
	if err := ac.DB.Where("token = ?", req.RefreshToken).First(&stored).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	if time.Now().After(stored.ExpirationDate) {
		ac.DB.Delete(&stored)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, stored.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	// Rotate: the presented refresh token is spent either way.
	ac.DB.Delete(&stored)

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	user := utils.GetUser(c)

	if err := ac.DB.Where("user_id = ?", user.UserID).Delete(&models.RefreshToken{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	claims := utils.GetUser(c)

	var user models.User
	if err := ac.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Nickname     *string `json:"nickname"`
	CompanyName  *string `json:"companyName"`
	WorkshopName *string `json:"workshopName"`
	District     *string `json:"district"`
	Neighborhood *string `json:"neighborhood"`
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	claims := utils.GetUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Nickname != nil {
		if len(*req.Nickname) < 2 || len(*req.Nickname) > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "must be 2 to 10 characters", "field": "nickname"})
			return
		}
		updates["nickname"] = *req.Nickname
	}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.WorkshopName != nil {
		updates["workshop_name"] = *req.WorkshopName
	}
	if req.District != nil {
		updates["district"] = *req.District
	}
	if req.Neighborhood != nil {
		updates["neighborhood"] = *req.Neighborhood
	}

	if len(updates) > 0 {
		if err := ac.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Nickname already taken"})
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) issueTokens(user *models.User) (string, string, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	}).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(refreshTokenTTL).Unix(),
	}).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	err = ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: time.Now().Add(refreshTokenTTL),
	}).Error
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
