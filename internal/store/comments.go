package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/photoshare-dev/photoshare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateComment(ctx context.Context, authorID, postID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, invalid("text", "is required")
	}

	comment := models.Comment{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, "author", authorID); err != nil {
			return err
		}

		if err := mustExist(tx, &models.Post{}, "post", postID); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&comment).Error; err != nil {
			return err
		}

		return tx.Preload("Author").First(&comment, comment.ID).Error
	})

	if err != nil {
		return nil, fmt.Errorf("create comment: %w", translate(err))
	}

	return &comment, nil
}

func (s *Store) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment

	if err := s.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, fmt.Errorf("get comment %d: %w", id, translate(err))
	}

	return &comment, nil
}

// ListComments returns a post's comments oldest first.
func (s *Store) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment

	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error

	if err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, translate(err))
	}

	return comments, nil
}

func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Comment{}, id)

	if result.Error != nil {
		return fmt.Errorf("delete comment %d: %w", id, translate(result.Error))
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("delete comment %d: %w", id, ErrNotFound)
	}

	return nil
}
