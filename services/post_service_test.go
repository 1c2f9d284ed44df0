package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hands-live/api-go/models"
)

func TestListPostsCursorWalk(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "walker", models.RoleWorkshop)

	for i := 1; i <= 25; i++ {
		createTestPost(t, db, author.ID, fmt.Sprintf("post %d", i))
	}

	// First page: newest ten.
	page, err := svc.ListPosts(ListPostsOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Posts, 10)
	assert.Equal(t, uint(25), page.Posts[0].ID)
	assert.Equal(t, uint(16), page.Posts[9].ID)
	assert.True(t, page.HasNext)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, uint(16), *page.NextCursor)

	// Second page resumes strictly below the cursor.
	page, err = svc.ListPosts(ListPostsOptions{Limit: 10, Cursor: *page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Posts, 10)
	assert.Equal(t, uint(15), page.Posts[0].ID)
	assert.Equal(t, uint(6), page.Posts[9].ID)
	assert.True(t, page.HasNext)
	require.NotNil(t, page.NextCursor)

	// Last page: the remaining five, no further cursor.
	page, err = svc.ListPosts(ListPostsOptions{Limit: 10, Cursor: *page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Posts, 5)
	assert.Equal(t, uint(5), page.Posts[0].ID)
	assert.Equal(t, uint(1), page.Posts[4].ID)
	assert.False(t, page.HasNext)
	assert.Nil(t, page.NextCursor)
}

func TestListPostsUnsupportedLimitFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "limiter", models.RoleWorkshop)

	for i := 1; i <= 12; i++ {
		createTestPost(t, db, author.ID, fmt.Sprintf("post %d", i))
	}

	page, err := svc.ListPosts(ListPostsOptions{Limit: 7})
	require.NoError(t, err)
	assert.Len(t, page.Posts, DefaultPageSize)
}

func TestListPostsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "filter", models.RoleWorkshop)

	wood := createTestPost(t, db, author.ID, "oak shelf build")
	balloon := models.Post{
		UserID:   author.ID,
		Title:    "Birthday arch",
		Content:  "balloon arch for a party",
		Category: models.CategoryBalloon,
		Status:   models.StatusActive,
	}
	require.NoError(t, db.Create(&balloon).Error)

	page, err := svc.ListPosts(ListPostsOptions{Category: models.CategoryBalloon})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, balloon.ID, page.Posts[0].ID)

	// Keyword matches title or content, case-insensitively.
	page, err = svc.ListPosts(ListPostsOptions{Keyword: "OAK"})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, wood.ID, page.Posts[0].ID)

	_, err = svc.ListPosts(ListPostsOptions{Category: "POTTERY"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
}

func TestListPostsTopLiked(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "ranker", models.RoleWorkshop)

	for i := 1; i <= 12; i++ {
		post := createTestPost(t, db, author.ID, fmt.Sprintf("post %d", i))
		require.NoError(t, db.Model(post).UpdateColumn("like_count", i%4).Error)
	}

	page, err := svc.ListPosts(ListPostsOptions{TopLiked: true})
	require.NoError(t, err)
	require.Len(t, page.Posts, 10)

	// Ordered by like_count, newest first among ties.
	for i := 1; i < len(page.Posts); i++ {
		prev, cur := page.Posts[i-1], page.Posts[i]
		if prev.LikeCount == cur.LikeCount {
			assert.True(t, !prev.CreatedAt.Before(cur.CreatedAt))
		} else {
			assert.Greater(t, prev.LikeCount, cur.LikeCount)
		}
	}
	assert.False(t, page.HasNext)
	assert.Nil(t, page.NextCursor)
}

func TestGetPostDetailBumpsViewCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "viewer", models.RoleWorkshop)
	post := createTestPost(t, db, author.ID, "viewed post")

	detail, err := svc.GetPostDetail(post.ID, 0)
	require.NoError(t, err)
	assert.False(t, detail.Liked)

	_, err = svc.GetPostDetail(post.ID, 0)
	require.NoError(t, err)

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, int64(2), reloaded.ViewCount)
}

func TestGetPostDetailReportsCallerLike(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "poster", models.RoleWorkshop)
	fan := createTestUser(t, db, "fan", models.RoleCompany)
	post := createTestPost(t, db, author.ID, "liked post")

	liked, err := svc.ToggleLike(post.ID, fan.ID)
	require.NoError(t, err)
	require.True(t, liked)

	detail, err := svc.GetPostDetail(post.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, detail.Liked)

	detail, err = svc.GetPostDetail(post.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, detail.Liked)
}

func TestCreatePostRequiresWorkshopRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	company := createTestUser(t, db, "buyer", models.RoleCompany)

	_, err := svc.CreatePost(company.ID, company.Role, PostInput{
		Title:    "not allowed",
		Content:  "company accounts browse, they do not post",
		Category: models.CategoryWood,
	}, nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreatePostWithImages(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "maker", models.RoleWorkshop)

	post, err := svc.CreatePost(author.ID, author.Role, PostInput{
		Title:    "resin tray",
		Content:  "ocean wave resin tray",
		Category: models.CategoryResin,
	}, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"})
	require.NoError(t, err)
	assert.Len(t, post.Images, 2)
	assert.Equal(t, models.StatusActive, post.Status)

	tooMany := make([]string, MaxPostImages+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("https://cdn.example.com/%d.jpg", i)
	}
	_, err = svc.CreatePost(author.ID, author.Role, PostInput{
		Title:    "too many",
		Content:  "image cap",
		Category: models.CategoryResin,
	}, tooMany)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "images", vErr.Field)
}

func TestUpdatePostGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "owner", models.RoleWorkshop)
	stranger := createTestUser(t, db, "stranger", models.RoleWorkshop)
	post := createTestPost(t, db, author.ID, "guarded post")

	newTitle := "renamed"
	_, err := svc.UpdatePost(post.ID, stranger.ID, PostUpdate{Title: &newTitle}, nil, nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.UpdatePost(9999, author.ID, PostUpdate{Title: &newTitle}, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdatePost(post.ID, author.ID, PostUpdate{Title: &newTitle}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, post.Content, updated.Content)
}

func TestUpdatePostRejectsForeignImageRemoval(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "imgowner", models.RoleWorkshop)
	mine := createTestPost(t, db, author.ID, "mine")
	other := createTestPost(t, db, author.ID, "other")

	foreign := models.PostImage{PostID: other.ID, ImageURL: "https://cdn.example.com/x.jpg"}
	require.NoError(t, db.Create(&foreign).Error)

	_, err := svc.UpdatePost(mine.ID, author.ID, PostUpdate{}, nil, []uint{foreign.ID})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "remove_image_ids", vErr.Field)

	// The foreign image survives.
	var count int64
	require.NoError(t, db.Model(&models.PostImage{}).Where("id = ?", foreign.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeletePostHidesFromReads(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "remover", models.RoleWorkshop)
	post := createTestPost(t, db, author.ID, "doomed post")

	require.NoError(t, svc.DeletePost(post.ID, author.ID))

	_, err := svc.GetPostDetail(post.ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	page, err := svc.ListPosts(ListPostsOptions{})
	require.NoError(t, err)
	assert.Empty(t, page.Posts)

	// The row itself survives with the deletion flags set.
	var raw models.Post
	require.NoError(t, db.First(&raw, post.ID).Error)
	assert.True(t, raw.IsDeleted)
	assert.Equal(t, models.StatusDeleted, raw.Status)

	// Deleting again reads as missing, not as a repeat delete.
	err = svc.DeletePost(post.ID, author.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "toggler", models.RoleWorkshop)
	fan := createTestUser(t, db, "fickle", models.RoleCompany)
	post := createTestPost(t, db, author.ID, "toggled post")

	liked, err := svc.ToggleLike(post.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, int64(1), reloaded.LikeCount)

	liked, err = svc.ToggleLike(post.ID, fan.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Equal(t, int64(0), reloaded.LikeCount)

	var rows int64
	require.NoError(t, db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

func TestLikeCountMatchesLikeRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "counted", models.RoleWorkshop)
	post := createTestPost(t, db, author.ID, "counted post")

	fans := make([]*models.User, 5)
	for i := range fans {
		fans[i] = createTestUser(t, db, fmt.Sprintf("fan%d", i), models.RoleCompany)
		_, err := svc.ToggleLike(post.ID, fans[i].ID)
		require.NoError(t, err)
	}
	// Two fans change their mind.
	for _, fan := range fans[:2] {
		_, err := svc.ToggleLike(post.ID, fan.ID)
		require.NoError(t, err)
	}

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)

	var rows int64
	require.NoError(t, db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&rows).Error)
	assert.Equal(t, rows, reloaded.LikeCount)
	assert.Equal(t, int64(3), reloaded.LikeCount)
}

func TestToggleLikeDeletedPost(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := createTestUser(t, db, "gone", models.RoleWorkshop)
	fan := createTestUser(t, db, "late", models.RoleCompany)
	post := createTestPost(t, db, author.ID, "gone post")

	require.NoError(t, svc.DeletePost(post.ID, author.ID))

	_, err := svc.ToggleLike(post.ID, fan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
