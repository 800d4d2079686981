package store

import (
	"context"
	"fmt"

	"github.com/photoshare-dev/photoshare/internal/models"
	"gorm.io/gorm"
)

// The schema declares ON DELETE CASCADE on every foreign key, but the deletes
// below do not rely on it: a driver running without foreign key enforcement
// ends in the same state.

// DeleteUser removes the user and everything that references it, directly or
// through its posts, collections and galleries. It returns the media paths
// (avatar and post images) that no row refers to any more.
func (s *Store) DeleteUser(ctx context.Context, id uint) ([]string, error) {
	var media []string
	var postIDs, collectionIDs, galleryIDs []uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if user.Avatar != nil {
			media = append(media, *user.Avatar)
		}

		var posts []models.Post

		if err := tx.Select("id", "image").Where("author_id = ?", id).Find(&posts).Error; err != nil {
			return err
		}

		for _, post := range posts {
			postIDs = append(postIDs, post.ID)
			media = append(media, post.Image)
		}

		if err := tx.Model(&models.Collection{}).Where("author_id = ?", id).Pluck("id", &collectionIDs).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Gallery{}).Where("author_id = ?", id).Pluck("id", &galleryIDs).Error; err != nil {
			return err
		}

		if err := deletePostDependents(tx, postIDs); err != nil {
			return err
		}

		if err := deleteCollectionDependents(tx, collectionIDs); err != nil {
			return err
		}

		if err := deleteGalleryDependents(tx, galleryIDs); err != nil {
			return err
		}

		owned := []struct {
			model  interface{}
			column string
		}{
			{&models.Liked{}, "user_id"},
			{&models.Comment{}, "author_id"},
			{&models.Visitor{}, "user_id"},
			{&models.Post{}, "author_id"},
			{&models.Collection{}, "author_id"},
			{&models.Gallery{}, "author_id"},
		}

		for _, o := range owned {
			if err := tx.Where(o.column+" = ?", id).Delete(o.model).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})

	if err != nil {
		return nil, fmt.Errorf("delete user %d: %w", id, translate(err))
	}

	s.logger.Info("User deleted",
		"user_id", id,
		"posts", len(postIDs),
		"collections", len(collectionIDs),
		"galleries", len(galleryIDs),
	)

	return media, nil
}

// DeletePost removes the post with its likes, comments and collection and
// gallery memberships.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Post{}, id).Error; err != nil {
			return err
		}

		if err := deletePostDependents(tx, []uint{id}); err != nil {
			return err
		}

		return tx.Delete(&models.Post{}, id).Error
	})

	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, translate(err))
	}

	s.logger.Info("Post deleted", "post_id", id)

	return nil
}

func (s *Store) DeleteCollection(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Collection{}, id).Error; err != nil {
			return err
		}

		if err := deleteCollectionDependents(tx, []uint{id}); err != nil {
			return err
		}

		return tx.Delete(&models.Collection{}, id).Error
	})

	if err != nil {
		return fmt.Errorf("delete collection %d: %w", id, translate(err))
	}

	return nil
}

func (s *Store) DeleteGallery(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Gallery{}, id).Error; err != nil {
			return err
		}

		if err := deleteGalleryDependents(tx, []uint{id}); err != nil {
			return err
		}

		return tx.Delete(&models.Gallery{}, id).Error
	})

	if err != nil {
		return fmt.Errorf("delete gallery %d: %w", id, translate(err))
	}

	return nil
}

func deletePostDependents(tx *gorm.DB, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}

	if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Liked{}).Error; err != nil {
		return err
	}

	if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}

	if err := tx.Exec("DELETE FROM collection_posts WHERE post_id IN ?", postIDs).Error; err != nil {
		return err
	}

	return tx.Exec("DELETE FROM gallery_posts WHERE post_id IN ?", postIDs).Error
}

func deleteCollectionDependents(tx *gorm.DB, collectionIDs []uint) error {
	if len(collectionIDs) == 0 {
		return nil
	}

	return tx.Exec("DELETE FROM collection_posts WHERE collection_id IN ?", collectionIDs).Error
}

func deleteGalleryDependents(tx *gorm.DB, galleryIDs []uint) error {
	if len(galleryIDs) == 0 {
		return nil
	}

	if err := tx.Exec("DELETE FROM gallery_posts WHERE gallery_id IN ?", galleryIDs).Error; err != nil {
		return err
	}

	return tx.Where("gallery_id IN ?", galleryIDs).Delete(&models.Visitor{}).Error
}
