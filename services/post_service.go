package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/hands-live/api-go/models"
)

// MaxPostImages caps how many images one post may carry.
const MaxPostImages = 10

// How many posts the top-liked feed returns.
const topLikedCount = 10

type PostService struct {
	DB *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{DB: db}
}

type ListPostsOptions struct {
	Category string
	Keyword  string
	Cursor   uint // last-seen post id; zero means first page
	Limit    int
	TopLiked bool
}

type PostPage struct {
	Posts      []models.Post `json:"posts"`
	HasNext    bool          `json:"has_next"`
	NextCursor *uint         `json:"next_cursor"`
}

// ListPosts serves the post feed. Default mode is cursor pagination by
// descending id; TopLiked switches to a fixed top list ordered by
// (like_count, created_at) with no pagination metadata. Category and keyword
// filters apply in both modes, before pagination.
func (s *PostService) ListPosts(opts ListPostsOptions) (*PostPage, error) {
	if opts.Category != "" && !models.ValidCategory(opts.Category) {
		return nil, newValidationError("category", "invalid category: %s", opts.Category)
	}

	query := s.DB.Scopes(notDeleted).Preload("Images").Preload("User")
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}
	if opts.Keyword != "" {
		keyword := "%" + strings.ToLower(opts.Keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", keyword, keyword)
	}

	if opts.TopLiked {
		var posts []models.Post
		err := query.Order("like_count DESC, created_at DESC").
			Limit(topLikedCount).
			Find(&posts).Error
		if err != nil {
			return nil, err
		}
		return &PostPage{Posts: posts}, nil
	}

	limit := NormalizeCursorLimit(opts.Limit)
	if opts.Cursor > 0 {
		query = query.Where("id < ?", opts.Cursor)
	}

	// Fetch one extra row: its presence means another page exists.
	var posts []models.Post
	err := query.Order("id DESC").Limit(limit + 1).Find(&posts).Error
	if err != nil {
		return nil, err
	}

	page := &PostPage{Posts: posts}
	if len(posts) > limit {
		page.Posts = posts[:limit]
		page.HasNext = true
		cursor := page.Posts[limit-1].ID
		page.NextCursor = &cursor
	}
	return page, nil
}

type PostDetail struct {
	models.Post
	Liked bool `json:"liked"`
}

// GetPostDetail returns a live post with images and author, plus whether the
// caller has liked it (callerUserID zero means anonymous). The view counter
// bumps atomically outside the read; a failed bump is logged and never fails
// the read, and double counts on retry are acceptable.
func (s *PostService) GetPostDetail(postID, callerUserID uint) (*PostDetail, error) {
	var post models.Post
	err := s.DB.Scopes(notDeleted).
		Preload("Images").
		Preload("User").
		First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	detail := &PostDetail{Post: post}
	if callerUserID != 0 {
		var liked int64
		err := s.DB.Model(&models.PostLike{}).
			Where("post_id = ? AND user_id = ?", postID, callerUserID).
			Count(&liked).Error
		if err != nil {
			return nil, err
		}
		detail.Liked = liked > 0
	}

	err = s.DB.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		log.Printf("Failed to bump view count for post %d: %v", postID, err)
	}

	return detail, nil
}

type PostInput struct {
	Title    string
	Content  string
	Category string
}

func validatePostInput(input PostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return newValidationError("title", "is required")
	}
	if len(input.Title) > 255 {
		return newValidationError("title", "cannot exceed 255 characters")
	}
	if strings.TrimSpace(input.Content) == "" {
		return newValidationError("content", "is required")
	}
	if !models.ValidCategory(input.Category) {
		return newValidationError("category", "invalid category: %s", input.Category)
	}
	return nil
}

// CreatePost publishes a new post with its image rows in one transaction.
// Only workshop members may post.
func (s *PostService) CreatePost(userID uint, role string, input PostInput, imageURLs []string) (*models.Post, error) {
	if role != models.RoleWorkshop {
		return nil, ErrPermissionDenied
	}
	if err := validatePostInput(input); err != nil {
		return nil, err
	}
	if len(imageURLs) > MaxPostImages {
		return nil, newValidationError("images", "cannot upload more than %d images", MaxPostImages)
	}

	post := models.Post{
		UserID:   userID,
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		Status:   models.StatusActive,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return createPostImages(tx, post.ID, imageURLs)
	})
	if err != nil {
		return nil, err
	}

	return s.reloadPost(post.ID)
}

type PostUpdate struct {
	Title    *string
	Content  *string
	Category *string
}

// UpdatePost edits a post's fields and image set. Guard order: the post must
// exist and be live (NotFound), then the caller must own it
// (PermissionDenied). Image removals must reference images of this post.
func (s *PostService) UpdatePost(postID, userID uint, update PostUpdate, addImageURLs []string, removeImageIDs []uint) (*models.Post, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Scopes(notDeleted).First(&post, postID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return ErrPermissionDenied
		}

		updates := map[string]interface{}{}
		if update.Title != nil {
			if strings.TrimSpace(*update.Title) == "" {
				return newValidationError("title", "is required")
			}
			if len(*update.Title) > 255 {
				return newValidationError("title", "cannot exceed 255 characters")
			}
			updates["title"] = *update.Title
		}
		if update.Content != nil {
			if strings.TrimSpace(*update.Content) == "" {
				return newValidationError("content", "is required")
			}
			updates["content"] = *update.Content
		}
		if update.Category != nil {
			if !models.ValidCategory(*update.Category) {
				return newValidationError("category", "invalid category: %s", *update.Category)
			}
			updates["category"] = *update.Category
		}
		if len(updates) > 0 {
			if err := tx.Model(&post).Updates(updates).Error; err != nil {
				return err
			}
		}

		if len(removeImageIDs) > 0 {
			var owned int64
			err := tx.Model(&models.PostImage{}).
				Where("post_id = ? AND id IN ?", postID, removeImageIDs).
				Count(&owned).Error
			if err != nil {
				return err
			}
			if owned != int64(len(removeImageIDs)) {
				return newValidationError("remove_image_ids", "contains images that do not belong to this post")
			}
			err = tx.Where("post_id = ? AND id IN ?", postID, removeImageIDs).
				Delete(&models.PostImage{}).Error
			if err != nil {
				return err
			}
		}

		return createPostImages(tx, postID, addImageURLs)
	})
	if err != nil {
		return nil, err
	}

	return s.reloadPost(postID)
}

// DeletePost soft-deletes a post the caller owns. Comments, likes and image
// rows stay in place; reads just stop returning the post.
func (s *PostService) DeletePost(postID, userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Scopes(notDeleted).First(&post, postID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return ErrPermissionDenied
		}

		rows, err := softDelete(tx, &models.Post{}, postID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ToggleLike flips the caller's like on a post. The post row is locked for
// the whole transaction, so concurrent toggles on the same post serialize
// and like_count never drifts from the actual PostLike row count.
func (s *PostService) ToggleLike(postID, userID uint) (bool, error) {
	var liked bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := lockForUpdate(tx).Scopes(notDeleted).First(&post, postID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing models.PostLike
		err = tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.PostLike{PostID: postID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			if err := adjustLikeCount(tx, postID, 1); err != nil {
				return err
			}
			liked = true
		case err != nil:
			return err
		default:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := adjustLikeCount(tx, postID, -1); err != nil {
				return err
			}
			liked = false
		}
		return nil
	})
	return liked, err
}

func adjustLikeCount(tx *gorm.DB, postID uint, delta int) error {
	return tx.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
}

func createPostImages(tx *gorm.DB, postID uint, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	images := make([]models.PostImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, models.PostImage{PostID: postID, ImageURL: url})
	}
	return tx.Create(&images).Error
}

func (s *PostService) reloadPost(postID uint) (*models.Post, error) {
	var post models.Post
	err := s.DB.Preload("Images").Preload("User").First(&post, postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}
