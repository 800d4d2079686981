package store

import (
	"context"
	"errors"

	"github.com/photoshare-dev/photoshare/internal/models"
	"gorm.io/gorm"
)

// addPost appends a post to owner.Posts (a Collection or Gallery). The join
// tables have a composite primary key and gorm inserts join rows with
// ON CONFLICT DO NOTHING, so adding a post twice leaves one row.
func (s *Store) addPost(ctx context.Context, owner interface{}, ownerID, postID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(owner, ownerID).Error; err != nil {
			return err
		}

		var post models.Post

		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return mustExist(tx, &models.Post{}, "post", postID)
			}

			return err
		}

		return tx.Model(owner).Association("Posts").Append(&post)
	})
}

func (s *Store) removePost(ctx context.Context, owner interface{}, ownerID, postID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(owner, ownerID).Error; err != nil {
			return err
		}

		post := models.Post{BaseModel: models.BaseModel{ID: postID}}

		return tx.Model(owner).Association("Posts").Delete(&post)
	})
}
