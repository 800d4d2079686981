package store

import (
	"context"
	"testing"
	"time"

	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestStore(t)

	bob := mustCreateUser(t, s, "bob")
	post := mustCreatePost(t, s, bob, "Sunset")

	_, err := s.CreateComment(ctx, bob.ID, post.ID, "nice light")
	require.NoError(t, err)

	_, err = s.LikePost(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	media, err := s.DeleteUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/Sunset.jpg"}, media)

	assert.Zero(t, countRows(t, db, "users"))
	assert.Zero(t, countRows(t, db, "posts"))
	assert.Zero(t, countRows(t, db, "comments"))
	assert.Zero(t, countRows(t, db, "likes"))
}

func TestDeleteUserCascadesThroughOwnedRecords(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestStore(t)

	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")

	avatar := "avatars/bob.jpg"
	_, err := s.UpdateUser(ctx, bob.ID, UserUpdate{Avatar: &avatar})
	require.NoError(t, err)

	bobPost := mustCreatePost(t, s, bob, "Sunset")
	carolPost := mustCreatePost(t, s, carol, "Harbour")

	// Carol interacts with Bob's post, Bob interacts with Carol's.
	_, err = s.LikePost(ctx, carol.ID, bobPost.ID)
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, carol.ID, bobPost.ID, "wow")
	require.NoError(t, err)
	_, err = s.LikePost(ctx, bob.ID, carolPost.ID)
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, bob.ID, carolPost.ID, "great")
	require.NoError(t, err)

	// Carol's collection holds Bob's post; Bob's collection holds Carol's.
	carolCollection, err := s.CreateCollection(ctx, carol.ID, "Favourites")
	require.NoError(t, err)
	require.NoError(t, s.AddPostToCollection(ctx, carolCollection.ID, bobPost.ID))
	require.NoError(t, s.AddPostToCollection(ctx, carolCollection.ID, carolPost.ID))

	bobCollection, err := s.CreateCollection(ctx, bob.ID, "Inspiration")
	require.NoError(t, err)
	require.NoError(t, s.AddPostToCollection(ctx, bobCollection.ID, carolPost.ID))

	// Bob's gallery shows Carol's post and Carol visited it.
	now := time.Now()
	bobGallery, err := s.CreateGallery(ctx, NewGallery{
		AuthorID:  bob.ID,
		Title:     "Evenings",
		TimeOpen:  now,
		TimeClose: now.Add(time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, s.AddPostToGallery(ctx, bobGallery.ID, carolPost.ID))
	_, err = s.RecordVisit(ctx, carol.ID, bobGallery.ID)
	require.NoError(t, err)

	// Carol's gallery shows Bob's post and Bob visited it.
	carolGallery, err := s.CreateGallery(ctx, NewGallery{
		AuthorID:  carol.ID,
		Title:     "Harbours",
		TimeOpen:  now,
		TimeClose: now.Add(time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, s.AddPostToGallery(ctx, carolGallery.ID, bobPost.ID))
	require.NoError(t, s.AddPostToGallery(ctx, carolGallery.ID, carolPost.ID))
	_, err = s.RecordVisit(ctx, bob.ID, carolGallery.ID)
	require.NoError(t, err)

	media, err := s.DeleteUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"avatars/bob.jpg", "posts/Sunset.jpg"}, media)

	// Only Carol's own records survive.
	assert.Equal(t, int64(1), countRows(t, db, "users"))
	assert.Equal(t, int64(1), countRows(t, db, "posts"))
	assert.Zero(t, countRows(t, db, "likes"))
	assert.Zero(t, countRows(t, db, "comments"))
	assert.Equal(t, int64(1), countRows(t, db, "collections"))
	assert.Equal(t, int64(1), countRows(t, db, "galleries"))
	assert.Zero(t, countRows(t, db, "visitors"))

	collection, err := s.GetCollection(ctx, carolCollection.ID)
	require.NoError(t, err)
	require.Len(t, collection.Posts, 1)
	assert.Equal(t, carolPost.ID, collection.Posts[0].ID)

	gallery, err := s.GetGallery(ctx, carolGallery.ID)
	require.NoError(t, err)
	require.Len(t, gallery.Posts, 1)
	assert.Equal(t, carolPost.ID, gallery.Posts[0].ID)

	assert.Equal(t, int64(1), countRows(t, db, "collection_posts"))
	assert.Equal(t, int64(1), countRows(t, db, "gallery_posts"))
}

func TestDeleteUserMissing(t *testing.T) {
	s, _ := setupTestStore(t)

	_, err := s.DeleteUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePostCascades(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestStore(t)

	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")
	post := mustCreatePost(t, s, bob, "Sunset")
	other := mustCreatePost(t, s, bob, "Dawn")

	_, err := s.LikePost(ctx, carol.ID, post.ID)
	require.NoError(t, err)
	_, err = s.LikePost(ctx, carol.ID, other.ID)
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, carol.ID, post.ID, "lovely")
	require.NoError(t, err)

	collection, err := s.CreateCollection(ctx, carol.ID, "Best")
	require.NoError(t, err)
	require.NoError(t, s.AddPostToCollection(ctx, collection.ID, post.ID))

	now := time.Now()
	gallery, err := s.CreateGallery(ctx, NewGallery{AuthorID: bob.ID, Title: "Sky", TimeOpen: now, TimeClose: now})
	require.NoError(t, err)
	require.NoError(t, s.AddPostToGallery(ctx, gallery.ID, post.ID))

	require.NoError(t, s.DeletePost(ctx, post.ID))

	_, err = s.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, int64(1), countRows(t, db, "likes"))
	assert.Zero(t, countRows(t, db, "comments"))
	assert.Zero(t, countRows(t, db, "collection_posts"))
	assert.Zero(t, countRows(t, db, "gallery_posts"))

	// Containers survive, only the membership goes.
	assert.Equal(t, int64(1), countRows(t, db, "collections"))
	assert.Equal(t, int64(1), countRows(t, db, "galleries"))

	assert.ErrorIs(t, s.DeletePost(ctx, post.ID), ErrNotFound)
}

func TestDeleteContainers(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestStore(t)

	bob := mustCreateUser(t, s, "bob")
	post := mustCreatePost(t, s, bob, "Sunset")

	collection, err := s.CreateCollection(ctx, bob.ID, "Best")
	require.NoError(t, err)
	require.NoError(t, s.AddPostToCollection(ctx, collection.ID, post.ID))

	now := time.Now()
	gallery, err := s.CreateGallery(ctx, NewGallery{AuthorID: bob.ID, Title: "Sky", TimeOpen: now, TimeClose: now})
	require.NoError(t, err)
	require.NoError(t, s.AddPostToGallery(ctx, gallery.ID, post.ID))
	_, err = s.RecordVisit(ctx, bob.ID, gallery.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteCollection(ctx, collection.ID))
	require.NoError(t, s.DeleteGallery(ctx, gallery.ID))

	assert.Zero(t, countRows(t, db, "collection_posts"))
	assert.Zero(t, countRows(t, db, "gallery_posts"))
	assert.Zero(t, countRows(t, db, "visitors"))

	// The post itself is untouched.
	var remaining models.Post
	assert.NoError(t, db.First(&remaining, post.ID).Error)

	assert.ErrorIs(t, s.DeleteCollection(ctx, collection.ID), ErrNotFound)
	assert.ErrorIs(t, s.DeleteGallery(ctx, gallery.ID), ErrNotFound)
}

func TestForeignKeyCascadeInSchema(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestStore(t)

	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")
	post := mustCreatePost(t, s, bob, "Sunset")

	_, err := s.LikePost(ctx, carol.ID, post.ID)
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, carol.ID, post.ID, "nice")
	require.NoError(t, err)

	// Bypass the store: the database's own ON DELETE CASCADE must clean up.
	require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", bob.ID).Error)

	assert.Zero(t, countRows(t, db, "posts"))
	assert.Zero(t, countRows(t, db, "likes"))
	assert.Zero(t, countRows(t, db, "comments"))
	assert.Equal(t, int64(1), countRows(t, db, "users"))
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestStore(t)

	bob, err := s.CreateUser(ctx, "bob@example.com", "bob", "bob-pw")
	require.NoError(t, err)

	carol, err := s.CreateUser(ctx, "carol@example.com", "carol", "carol-pw")
	require.NoError(t, err)

	sunset, err := s.CreatePost(ctx, NewPost{AuthorID: bob.ID, Title: "Sunset", Image: "posts/sunset.jpg"})
	require.NoError(t, err)

	_, err = s.LikePost(ctx, carol.ID, sunset.ID)
	require.NoError(t, err)

	likes, err := s.CountLikes(ctx, sunset.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	_, err = s.DeleteUser(ctx, bob.ID)
	require.NoError(t, err)

	_, err = s.GetPost(ctx, sunset.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, countRows(t, db, "likes"))

	_, err = s.GetUser(ctx, carol.ID)
	assert.NoError(t, err)
}
