package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hands-live/api-go/models"
)

type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

// ListComments returns a page of live comments on a live post, newest first,
// with the total live-comment count for pagination metadata.
func (s *CommentService) ListComments(postID uint, params PageParams) ([]models.Comment, int64, error) {
	var postExists int64
	err := s.DB.Model(&models.Post{}).Scopes(notDeleted).
		Where("id = ?", postID).
		Count(&postExists).Error
	if err != nil {
		return nil, 0, err
	}
	if postExists == 0 {
		return nil, 0, ErrNotFound
	}

	var total int64
	err = s.DB.Model(&models.Comment{}).Scopes(notDeleted).
		Where("post_id = ?", postID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err = s.DB.Scopes(notDeleted).
		Where("post_id = ?", postID).
		Preload("User").
		Order("created_at DESC, id DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// CreateComment inserts a comment and bumps the parent's comment_count in
// one transaction. The guarded counter update doubles as the parent check:
// zero rows affected means the post is missing or deleted, and the insert
// rolls back with it.
func (s *CommentService) CreateComment(postID, userID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, newValidationError("content", "is required")
	}

	comment := models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
		Status:  models.StatusActive,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		rows, err := adjustCommentCount(tx, postID, 1)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment edits a comment's content. Guard order: comment exists and
// is live (NotFound), caller owns it (PermissionDenied), parent post is live
// (InvalidState).
func (s *CommentService) UpdateComment(commentID, userID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, newValidationError("content", "is required")
	}

	var comment models.Comment
	err := s.DB.Scopes(notDeleted).Preload("Post").First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrPermissionDenied
	}
	if comment.Post.IsDeleted {
		return nil, ErrInvalidState
	}

	if err := s.DB.Model(&comment).Update("content", content).Error; err != nil {
		return nil, err
	}

	comment.Content = content
	return &comment, nil
}

// DeleteComment soft-deletes a comment and decrements the parent's
// comment_count together: both commit or neither does. The guarded decrement
// re-checks the parent; a deleted parent fails the whole operation.
func (s *CommentService) DeleteComment(commentID, userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		err := lockForUpdate(tx).Scopes(notDeleted).First(&comment, commentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if comment.UserID != userID {
			return ErrPermissionDenied
		}

		rows, err := adjustCommentCount(tx, comment.PostID, -1)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInvalidState
		}

		rows, err = softDelete(tx, &models.Comment{}, commentID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// adjustCommentCount moves the denormalized counter relative to the stored
// value, never through an in-memory read. The is_deleted guard makes the
// statement fail closed on deleted parents; callers must check RowsAffected.
func adjustCommentCount(tx *gorm.DB, postID uint, delta int) (int64, error) {
	result := tx.Model(&models.Post{}).
		Where("id = ? AND is_deleted = ?", postID, false).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta))
	return result.RowsAffected, result.Error
}
