package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/photoshare-dev/photoshare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type NewPost struct {
	AuthorID    uint
	Title       string
	Description *string
	Image       string
}

type PostUpdate struct {
	Title       *string
	Description *string // "" clears the description
}

type PostFilter struct {
	AuthorID uint // zero lists every author
	Limit    int
	Offset   int
}

func validatePost(title string, description *string) error {
	if err := checkLength("title", title, models.TitleMaxLength, true); err != nil {
		return err
	}

	if description != nil {
		return checkLength("description", *description, models.PostDescriptionMaxLength, false)
	}

	return nil
}

func (s *Store) CreatePost(ctx context.Context, in NewPost) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)

	if err := validatePost(in.Title, in.Description); err != nil {
		return nil, err
	}

	if err := checkLength("image", in.Image, 255, true); err != nil {
		return nil, err
	}

	post := models.Post{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		AuthorID:    in.AuthorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, "author", in.AuthorID); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&post).Error; err != nil {
			return err
		}

		return tx.Preload("Author").First(&post, post.ID).Error
	})

	if err != nil {
		return nil, fmt.Errorf("create post: %w", translate(err))
	}

	return &post, nil
}

func (s *Store) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post

	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, translate(err))
	}

	return &post, nil
}

// ListPosts returns newest posts first.
func (s *Store) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	var posts []models.Post

	query := s.db.WithContext(ctx).Preload("Author").Order("created_at DESC, id DESC")

	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}

	query = query.Limit(pageSize(filter.Limit))

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", translate(err))
	}

	return posts, nil
}

func pageSize(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}

	if limit > MaxPageSize {
		return MaxPageSize
	}

	return limit
}

func (s *Store) UpdatePost(ctx context.Context, id uint, update PostUpdate) (*models.Post, error) {
	var post models.Post

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}

		updates := make(map[string]interface{})

		title, description := post.Title, post.Description

		if update.Title != nil {
			title = strings.TrimSpace(*update.Title)
			updates["title"] = title
		}

		if update.Description != nil {
			if *update.Description == "" {
				description = nil
				updates["description"] = nil
			} else {
				description = update.Description
				updates["description"] = *update.Description
			}
		}

		if len(updates) > 0 {
			if err := validatePost(title, description); err != nil {
				return err
			}

			if err := tx.Model(&post).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Author").First(&post, id).Error
	})

	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, translate(err))
	}

	return &post, nil
}
