package store

import (
	"context"
	"fmt"

	"github.com/photoshare-dev/photoshare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikePost always inserts a new row; liking the same post twice is recorded
// twice.
func (s *Store) LikePost(ctx context.Context, userID, postID uint) (*models.Liked, error) {
	liked := models.Liked{UserID: userID, PostID: postID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, "user", userID); err != nil {
			return err
		}

		if err := mustExist(tx, &models.Post{}, "post", postID); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(&liked).Error
	})

	if err != nil {
		return nil, fmt.Errorf("like post %d: %w", postID, translate(err))
	}

	return &liked, nil
}

// UnlikePost removes every like the user left on the post and reports how
// many rows went.
func (s *Store) UnlikePost(ctx context.Context, userID, postID uint) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Liked{})

	if result.Error != nil {
		return 0, fmt.Errorf("unlike post %d: %w", postID, translate(result.Error))
	}

	return result.RowsAffected, nil
}

func (s *Store) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64

	if err := s.db.WithContext(ctx).Model(&models.Liked{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count likes for post %d: %w", postID, translate(err))
	}

	return count, nil
}

func (s *Store) ListLikes(ctx context.Context, postID uint) ([]models.Liked, error) {
	var likes []models.Liked

	err := s.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&likes).Error

	if err != nil {
		return nil, fmt.Errorf("list likes for post %d: %w", postID, translate(err))
	}

	return likes, nil
}
