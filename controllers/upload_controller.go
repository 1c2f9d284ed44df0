package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hands-live/api-go/config"
	"github.com/hands-live/api-go/services"
	"github.com/hands-live/api-go/utils"
)

// Post image upload limits.
const maxImageSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type UploadController struct {
	R2Client *s3.Client
	R2Config *config.R2Config
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type MultipleUploadRequest struct {
	Files []PresignedURLRequest `json:"files" binding:"required,dive"`
}

func NewUploadController() *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// GetPresignedURL godoc
// @Summary Get an upload URL for one post image
// @Description Returns a presigned PUT URL; the client uploads directly to storage
// @Tags uploads
// @Accept json
// @Produce json
// @Param upload body PresignedURLRequest true "Upload request"
// @Success 200 {object} PresignedURLResponse
// @Router /uploads/images [post]
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)
	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateImageUpload(req); err != nil {
		respondServiceError(c, err)
		return
	}

	response, err := uc.presignImageUpload(user.UserID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMultiplePresignedURLs godoc
// @Summary Get upload URLs for a batch of post images
// @Tags uploads
// @Accept json
// @Produce json
// @Param uploads body MultipleUploadRequest true "Batch upload request"
// @Success 200 {object} map[string]interface{}
// @Router /uploads/images/batch [post]
func (uc *UploadController) GetMultiplePresignedURLs(c *gin.Context) {
	user := utils.GetUser(c)
	var req MultipleUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Files) > services.MaxPostImages {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("cannot upload more than %d images", services.MaxPostImages),
			"field": "files",
		})
		return
	}

	responses := make([]PresignedURLResponse, 0, len(req.Files))
	for _, fileReq := range req.Files {
		if err := validateImageUpload(fileReq); err != nil {
			respondServiceError(c, err)
			return
		}

		response, err := uc.presignImageUpload(user.UserID, fileReq)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to create upload URL for %s", fileReq.FileName),
			})
			return
		}
		responses = append(responses, response)
	}

	c.JSON(http.StatusOK, gin.H{"files": responses})
}

func validateImageUpload(req PresignedURLRequest) error {
	if !allowedImageTypes[req.ContentType] {
		return &services.ValidationError{
			Field:   "contentType",
			Message: "only image/jpeg, image/png and image/gif are allowed",
		}
	}
	if req.FileSize > maxImageSize {
		return &services.ValidationError{
			Field:   "fileSize",
			Message: fmt.Sprintf("image size cannot exceed %dMB", maxImageSize/1024/1024),
		}
	}
	return nil
}

func (uc *UploadController) presignImageUpload(userID uint, req PresignedURLRequest) (PresignedURLResponse, error) {
	key := uc.generateImageKey(userID, req.FileName)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		return PresignedURLResponse{}, err
	}

	return PresignedURLResponse{
		UploadURL: presignedURL,
		FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
		Key:       key,
		ExpiresIn: 3600,
	}, nil
}

func (uc *UploadController) generateImageKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	now := time.Now()
	return fmt.Sprintf("posts/%s/%d/%d_%s%s",
		now.Format("2006/01/02"), userID, now.Unix(), uuid.New().String(), ext)
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
