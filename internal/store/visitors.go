package store

import (
	"context"
	"fmt"

	"github.com/photoshare-dev/photoshare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordVisit appends to the gallery's visit history. Neither the window nor
// LimitVisitors is checked.
func (s *Store) RecordVisit(ctx context.Context, userID, galleryID uint) (*models.Visitor, error) {
	visit := models.Visitor{UserID: userID, GalleryID: galleryID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, "user", userID); err != nil {
			return err
		}

		if err := mustExist(tx, &models.Gallery{}, "gallery", galleryID); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(&visit).Error
	})

	if err != nil {
		return nil, fmt.Errorf("record visit to gallery %d: %w", galleryID, translate(err))
	}

	return &visit, nil
}

func (s *Store) ListVisits(ctx context.Context, galleryID uint) ([]models.Visitor, error) {
	var visits []models.Visitor

	err := s.db.WithContext(ctx).
		Preload("User").
		Where("gallery_id = ?", galleryID).
		Order("created_at ASC, id ASC").
		Find(&visits).Error

	if err != nil {
		return nil, fmt.Errorf("list visits for gallery %d: %w", galleryID, translate(err))
	}

	return visits, nil
}

// CountVisitors counts distinct users, not visits.
func (s *Store) CountVisitors(ctx context.Context, galleryID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&models.Visitor{}).
		Where("gallery_id = ?", galleryID).
		Distinct("user_id").
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("count visitors for gallery %d: %w", galleryID, translate(err))
	}

	return count, nil
}

func (s *Store) HasVisited(ctx context.Context, userID, galleryID uint) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&models.Visitor{}).
		Where("user_id = ? AND gallery_id = ?", userID, galleryID).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("check visit to gallery %d: %w", galleryID, translate(err))
	}

	return count > 0, nil
}
