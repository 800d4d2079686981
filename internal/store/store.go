// Package store is the data-access layer over the photoshare schema. Every
// operation that writes more than one row, or checks a reference before
// writing, runs in a single transaction.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("record already exists")
	ErrInvalidReference   = errors.New("referenced record does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError is raised before anything is written. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// checkLength counts characters, not bytes.
func checkLength(field, value string, max int, required bool) error {
	if required && strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}

	if utf8.RuneCountInString(value) > max {
		return invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}

	return nil
}

// translate maps gorm errors onto the store's sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}

	return err
}

// mustExist turns a missing parent row into ErrInvalidReference.
func mustExist(tx *gorm.DB, model interface{}, name string, id uint) error {
	var count int64

	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return fmt.Errorf("%s %d: %w", name, id, ErrInvalidReference)
	}

	return nil
}
