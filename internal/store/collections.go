package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/photoshare-dev/photoshare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateCollection(ctx context.Context, authorID uint, title string) (*models.Collection, error) {
	title = strings.TrimSpace(title)

	if err := checkLength("title", title, models.TitleMaxLength, true); err != nil {
		return nil, err
	}

	collection := models.Collection{Title: title, AuthorID: authorID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, "author", authorID); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(&collection).Error
	})

	if err != nil {
		return nil, fmt.Errorf("create collection: %w", translate(err))
	}

	return &collection, nil
}

// GetCollection loads the collection with its author and posts.
func (s *Store) GetCollection(ctx context.Context, id uint) (*models.Collection, error) {
	var collection models.Collection

	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("posts.id ASC")
		}).
		First(&collection, id).Error

	if err != nil {
		return nil, fmt.Errorf("get collection %d: %w", id, translate(err))
	}

	return &collection, nil
}

func (s *Store) ListCollections(ctx context.Context, authorID uint) ([]models.Collection, error) {
	var collections []models.Collection

	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&collections).Error

	if err != nil {
		return nil, fmt.Errorf("list collections for user %d: %w", authorID, translate(err))
	}

	return collections, nil
}

func (s *Store) RenameCollection(ctx context.Context, id uint, title string) (*models.Collection, error) {
	title = strings.TrimSpace(title)

	if err := checkLength("title", title, models.TitleMaxLength, true); err != nil {
		return nil, err
	}

	var collection models.Collection

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&collection, id).Error; err != nil {
			return err
		}

		return tx.Model(&collection).Update("title", title).Error
	})

	if err != nil {
		return nil, fmt.Errorf("rename collection %d: %w", id, translate(err))
	}

	return &collection, nil
}

func (s *Store) AddPostToCollection(ctx context.Context, collectionID, postID uint) error {
	if err := s.addPost(ctx, &models.Collection{}, collectionID, postID); err != nil {
		return fmt.Errorf("add post %d to collection %d: %w", postID, collectionID, translate(err))
	}

	return nil
}

func (s *Store) RemovePostFromCollection(ctx context.Context, collectionID, postID uint) error {
	if err := s.removePost(ctx, &models.Collection{}, collectionID, postID); err != nil {
		return fmt.Errorf("remove post %d from collection %d: %w", postID, collectionID, translate(err))
	}

	return nil
}
