package store

import (
	"context"
	"testing"

	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/photoshare-dev/photoshare/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	db := testutil.NewDB(t)

	return New(db, testutil.Logger()), db
}

func mustCreateUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), username+"@example.com", username, "pw-"+username)
	require.NoError(t, err)

	return user
}

func mustCreatePost(t *testing.T, s *Store, author *models.User, title string) *models.Post {
	t.Helper()

	post, err := s.CreatePost(context.Background(), NewPost{
		AuthorID: author.ID,
		Title:    title,
		Image:    "posts/" + title + ".jpg",
	})
	require.NoError(t, err)

	return post
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Table(table).Count(&count).Error)

	return count
}
