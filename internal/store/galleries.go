package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/photoshare-dev/photoshare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewGallery struct {
	AuthorID      uint
	Title         string
	Description   *string
	TimeOpen      time.Time
	TimeClose     time.Time
	LimitVisitors *int
}

func validateGallery(in NewGallery) error {
	if err := checkLength("title", in.Title, models.TitleMaxLength, true); err != nil {
		return err
	}

	if in.TimeOpen.IsZero() {
		return invalid("time_open", "is required")
	}

	if in.TimeClose.IsZero() {
		return invalid("time_close", "is required")
	}

	if in.TimeClose.Before(in.TimeOpen) {
		return invalid("time_close", "must not be before time_open")
	}

	if in.LimitVisitors != nil && *in.LimitVisitors < 0 {
		return invalid("limit_visitors", "must not be negative")
	}

	return nil
}

// CreateGallery stores the visiting window and visitor limit as given. They
// are not enforced here.
func (s *Store) CreateGallery(ctx context.Context, in NewGallery) (*models.Gallery, error) {
	in.Title = strings.TrimSpace(in.Title)

	if err := validateGallery(in); err != nil {
		return nil, err
	}

	gallery := models.Gallery{
		Title:         in.Title,
		Description:   in.Description,
		TimeOpen:      in.TimeOpen,
		TimeClose:     in.TimeClose,
		LimitVisitors: in.LimitVisitors,
		AuthorID:      in.AuthorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, "author", in.AuthorID); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(&gallery).Error
	})

	if err != nil {
		return nil, fmt.Errorf("create gallery: %w", translate(err))
	}

	s.logger.Info("Gallery created", "gallery_id", gallery.ID, "author_id", gallery.AuthorID)

	return &gallery, nil
}

func (s *Store) GetGallery(ctx context.Context, id uint) (*models.Gallery, error) {
	var gallery models.Gallery

	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("posts.id ASC")
		}).
		First(&gallery, id).Error

	if err != nil {
		return nil, fmt.Errorf("get gallery %d: %w", id, translate(err))
	}

	return &gallery, nil
}

// ListGalleries lists galleries by opening time. A zero authorID lists all.
func (s *Store) ListGalleries(ctx context.Context, authorID uint) ([]models.Gallery, error) {
	var galleries []models.Gallery

	query := s.db.WithContext(ctx).Preload("Author").Order("time_open ASC, id ASC")

	if authorID != 0 {
		query = query.Where("author_id = ?", authorID)
	}

	if err := query.Find(&galleries).Error; err != nil {
		return nil, fmt.Errorf("list galleries: %w", translate(err))
	}

	return galleries, nil
}

func (s *Store) AddPostToGallery(ctx context.Context, galleryID, postID uint) error {
	if err := s.addPost(ctx, &models.Gallery{}, galleryID, postID); err != nil {
		return fmt.Errorf("add post %d to gallery %d: %w", postID, galleryID, translate(err))
	}

	return nil
}

func (s *Store) RemovePostFromGallery(ctx context.Context, galleryID, postID uint) error {
	if err := s.removePost(ctx, &models.Gallery{}, galleryID, postID); err != nil {
		return fmt.Errorf("remove post %d from gallery %d: %w", postID, galleryID, translate(err))
	}

	return nil
}
