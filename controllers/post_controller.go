package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hands-live/api-go/services"
	"github.com/hands-live/api-go/utils"
)

type PostController struct {
	Service *services.PostService
}

type CreatePostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	ImageURLs []string `json:"imageUrls"`
}

type UpdatePostRequest struct {
	Title          *string  `json:"title"`
	Content        *string  `json:"content"`
	Category       *string  `json:"category"`
	AddImageURLs   []string `json:"addImageUrls"`
	RemoveImageIDs []uint   `json:"removeImageIds"`
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{Service: services.NewPostService(db)}
}

// ListPosts godoc
// @Summary List posts
// @Description Cursor-paginated post feed with category/keyword filters, or the fixed top-liked list
// @Tags posts
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Keyword matched against title and content"
// @Param cursor query integer false "Last-seen post id"
// @Param limit query integer false "Page size (5 or 10)"
// @Param top query boolean false "Return the top-liked posts instead"
// @Success 200 {object} services.PostPage
// @Router /posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	opts := services.ListPostsOptions{
		Category: c.Query("category"),
		Keyword:  c.Query("search"),
	}

	if cursorStr := c.Query("cursor"); cursorStr != "" {
		cursor, err := strconv.ParseUint(cursorStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "must be a number", "field": "cursor"})
			return
		}
		opts.Cursor = uint(cursor)
	}
	// A bad limit is not an error; the service normalizes it.
	opts.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	opts.TopLiked, _ = strconv.ParseBool(c.Query("top"))

	page, err := pc.Service.ListPosts(opts)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetPostDetail godoc
// @Summary Get a single post
// @Description Returns a post with images and author, bumping its view count
// @Tags posts
// @Produce json
// @Param id path integer true "Post ID"
// @Success 200 {object} services.PostDetail
// @Router /posts/{id} [get]
func (pc *PostController) GetPostDetail(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var callerID uint
	if user := utils.GetUser(c); user != nil {
		callerID = user.UserID
	}

	detail, err := pc.Service.GetPostDetail(postID, callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreatePost godoc
// @Summary Create a post
// @Description Publishes a new post; workshop members only
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post creation request"
// @Success 201 {object} models.Post
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.Service.CreatePost(user.UserID, user.Role, services.PostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}, req.ImageURLs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update a post
// @Description Edits fields and the image set of a post the caller owns
// @Tags posts
// @Accept json
// @Produce json
// @Param id path integer true "Post ID"
// @Param post body UpdatePostRequest true "Post update request"
// @Success 200 {object} models.Post
// @Router /posts/{id} [patch]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.Service.UpdatePost(postID, user.UserID, services.PostUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}, req.AddImageURLs, req.RemoveImageIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Description Soft-deletes a post the caller owns
// @Tags posts
// @Param id path integer true "Post ID"
// @Success 204
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := pc.Service.DeletePost(postID, user.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Description Toggles the caller's like on a post
// @Tags posts
// @Produce json
// @Param id path integer true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/like [post]
func (pc *PostController) ToggleLike(c *gin.Context) {
	user := utils.GetUser(c)
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	liked, err := pc.Service.ToggleLike(postID, user.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must be a number", "field": name})
		return 0, false
	}
	return uint(id), true
}
