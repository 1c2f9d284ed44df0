package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hands-live/api-go/services"
	"github.com/hands-live/api-go/utils"
)

type CommentController struct {
	Service *services.CommentService
}

type CommentRequest struct {
	Content string `json:"content"`
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{Service: services.NewCommentService(db)}
}

// ListComments godoc
// @Summary List comments on a post
// @Description Returns an offset-paginated list of comments, newest first
// @Tags comments
// @Produce json
// @Param id path integer true "Post ID"
// @Param page query integer false "Page number (default: 1)"
// @Param limit query integer false "Items per page (default: 10, max: 50)"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/comments [get]
func (cc *CommentController) ListComments(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	params, err := services.ParsePageParams(c.Query("page"), c.Query("limit"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	comments, total, err := cc.Service.ListComments(postID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments":   comments,
		"pagination": services.NewPageMeta(params, total),
	})
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path integer true "Post ID"
// @Param comment body CommentRequest true "Comment content"
// @Success 201 {object} models.Comment
// @Router /posts/{id}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	user := utils.GetUser(c)
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := cc.Service.CreateComment(postID, user.UserID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Update a comment
// @Description Edits a comment the caller owns; fails if the parent post is deleted
// @Tags comments
// @Accept json
// @Produce json
// @Param id path integer true "Comment ID"
// @Param comment body CommentRequest true "New content"
// @Success 200 {object} models.Comment
// @Router /comments/{id} [patch]
func (cc *CommentController) UpdateComment(c *gin.Context) {
	user := utils.GetUser(c)
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := cc.Service.UpdateComment(commentID, user.UserID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Soft-deletes a comment the caller owns
// @Tags comments
// @Param id path integer true "Comment ID"
// @Success 204
// @Router /comments/{id} [delete]
func (cc *CommentController) DeleteComment(c *gin.Context) {
	user := utils.GetUser(c)
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := cc.Service.DeleteComment(commentID, user.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
