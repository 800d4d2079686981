package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestStore(t)
	bob := mustCreateUser(t, s, "bob")

	t.Run("Success", func(t *testing.T) {
		description := "golden hour"

		post, err := s.CreatePost(ctx, NewPost{
			AuthorID:    bob.ID,
			Title:       "  Sunset ",
			Description: &description,
			Image:       "posts/a.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, "Sunset", post.Title)
		assert.Equal(t, "Sunset by @bob", post.String())
		require.NotNil(t, post.Description)
		assert.Equal(t, description, *post.Description)
	})

	t.Run("Missing author", func(t *testing.T) {
		_, err := s.CreatePost(ctx, NewPost{AuthorID: 999, Title: "x", Image: "posts/x.jpg"})
		assert.ErrorIs(t, err, ErrInvalidReference)
	})

	t.Run("Validation", func(t *testing.T) {
		long := strings.Repeat("d", 256)

		_, err := s.CreatePost(ctx, NewPost{AuthorID: bob.ID, Title: "", Image: "posts/x.jpg"})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = s.CreatePost(ctx, NewPost{AuthorID: bob.ID, Title: "x", Image: ""})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = s.CreatePost(ctx, NewPost{AuthorID: bob.ID, Title: "x", Description: &long, Image: "posts/x.jpg"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	assert.Equal(t, int64(1), countRows(t, db, "posts"))
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)
	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")

	first := mustCreatePost(t, s, bob, "one")
	second := mustCreatePost(t, s, bob, "two")
	mustCreatePost(t, s, carol, "three")

	t.Run("All", func(t *testing.T) {
		posts, err := s.ListPosts(ctx, PostFilter{})
		require.NoError(t, err)
		assert.Len(t, posts, 3)
	})

	t.Run("By author newest first", func(t *testing.T) {
		posts, err := s.ListPosts(ctx, PostFilter{AuthorID: bob.ID})
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, second.ID, posts[0].ID)
		assert.Equal(t, first.ID, posts[1].ID)
		assert.Equal(t, "bob", posts[0].Author.Username)
	})

	t.Run("Paging", func(t *testing.T) {
		posts, err := s.ListPosts(ctx, PostFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})
}

func TestPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, pageSize(0))
	assert.Equal(t, 5, pageSize(5))
	assert.Equal(t, MaxPageSize, pageSize(1000))
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)
	bob := mustCreateUser(t, s, "bob")
	post := mustCreatePost(t, s, bob, "Sunset")

	title, description := "Sunrise", "early"

	updated, err := s.UpdatePost(ctx, post.ID, PostUpdate{Title: &title, Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Sunrise", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "early", *updated.Description)
	assert.Equal(t, "posts/Sunset.jpg", updated.Image)

	empty := ""
	updated, err = s.UpdatePost(ctx, post.ID, PostUpdate{Description: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)

	_, err = s.UpdatePost(ctx, post.ID, PostUpdate{Title: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.UpdatePost(ctx, 999, PostUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}
