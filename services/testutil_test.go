package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hands-live/api-go/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// In-memory databases live per connection; a second pooled connection
	// would see an empty schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Post{},
		&models.PostImage{},
		&models.PostLike{},
		&models.Comment{},
		&models.Inquiry{},
	)
	require.NoError(t, err)

	return db
}

var testPhoneSeq int

func createTestUser(t *testing.T, db *gorm.DB, nickname, role string) *models.User {
	t.Helper()

	testPhoneSeq++
	user := models.User{
		Email:    fmt.Sprintf("%s@example.com", nickname),
		Password: "hashed",
		Nickname: nickname,
		Phone:    fmt.Sprintf("010-0000-%04d", testPhoneSeq),
		Role:     role,
		Status:   "active",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()

	post := models.Post{
		UserID:   userID,
		Title:    title,
		Content:  "content of " + title,
		Category: models.CategoryWood,
		Status:   models.StatusActive,
	}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

func createTestComment(t *testing.T, db *gorm.DB, postID, userID uint, content string) *models.Comment {
	t.Helper()

	comment := models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
		Status:  models.StatusActive,
	}
	require.NoError(t, db.Create(&comment).Error)
	return &comment
}
