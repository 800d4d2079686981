package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/photoshare-dev/photoshare/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserUpdate struct {
	Email    *string
	Username *string
	Avatar   *string // "" clears the avatar

	// NewPassword, when set, is only applied if CurrentPassword matches.
	CurrentPassword string
	NewPassword     string
}

// UserFlags holds the administrative switches. Nil leaves a flag unchanged.
type UserFlags struct {
	IsActive *bool
	IsAdmin  *bool
}

func (s *Store) CreateUser(ctx context.Context, email, username, password string) (*models.User, error) {
	return s.createUser(ctx, email, username, password, false)
}

// CreateSuperuser is CreateUser with the administrator flag set.
func (s *Store) CreateSuperuser(ctx context.Context, email, username, password string) (*models.User, error) {
	return s.createUser(ctx, email, username, password, true)
}

func (s *Store) createUser(ctx context.Context, email, username, password string, admin bool) (*models.User, error) {
	email = models.NormalizeEmail(email)
	username = strings.TrimSpace(username)

	if err := validateAccount(email, username); err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Username: username,
		IsActive: true,
		IsAdmin:  admin,
	}

	if err := setPassword(&user, password); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkAccountUnique(tx, 0, email, username); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(&user).Error
	})

	if err != nil {
		return nil, fmt.Errorf("create user: %w", translate(err))
	}

	s.logger.Info("User created", "user_id", user.ID, "username", user.Username, "admin", admin)

	return &user, nil
}

func validateAccount(email, username string) error {
	if email == "" {
		return invalid("email", "is required")
	}

	if !strings.Contains(email, "@") {
		return invalid("email", "must be an email address")
	}

	if err := checkLength("email", email, models.EmailMaxLength, true); err != nil {
		return err
	}

	return checkLength("username", username, models.UsernameMaxLength, true)
}

func setPassword(user *models.User, password string) error {
	if password == "" {
		return invalid("password", "is required")
	}

	if err := user.SetPassword(password); err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return invalid("password", "must be at most 72 bytes")
		}

		return fmt.Errorf("hash password: %w", err)
	}

	return nil
}

// checkAccountUnique looks for another user (other than excludeID) holding
// email or username. The unique indexes still back this up on insert.
func checkAccountUnique(tx *gorm.DB, excludeID uint, email, username string) error {
	var existing []models.User

	err := tx.Where("(email = ? OR username = ?) AND id <> ?", email, username, excludeID).Limit(1).Find(&existing).Error

	if err != nil {
		return err
	}

	if len(existing) == 0 {
		return nil
	}

	if existing[0].Email == email {
		return fmt.Errorf("email %q: %w", email, ErrDuplicate)
	}

	return fmt.Errorf("username %q: %w", username, ErrDuplicate)
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, translate(err))
	}

	return &user, nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, translate(err))
	}

	return &user, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, fmt.Errorf("find user %q: %w", email, translate(err))
	}

	return &user, nil
}

// Authenticate accepts a username or an email address as login. Unknown
// accounts, inactive accounts and wrong passwords are indistinguishable.
// A login containing "@" is matched against emails first, so a username
// that looks like someone else's email never shadows that account.
func (s *Store) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	var user models.User

	login = strings.TrimSpace(login)

	found, err := s.findLogin(ctx, login, &user)

	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !found {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// findLogin loads the user a login names into user.
func (s *Store) findLogin(ctx context.Context, login string, user *models.User) (bool, error) {
	db := s.db.WithContext(ctx)

	if strings.Contains(login, "@") {
		result := db.Where("email = ?", models.NormalizeEmail(login)).Limit(1).Find(user)

		if result.Error != nil {
			return false, result.Error
		}

		if result.RowsAffected > 0 {
			return true, nil
		}
	}

	result := db.Where("username = ?", login).Limit(1).Find(user)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// UpdateUser applies profile changes and an optional password change in one
// transaction. Nothing is written unless every part is valid.
func (s *Store) UpdateUser(ctx context.Context, id uint, update UserUpdate) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		updates := make(map[string]interface{})

		email, username := user.Email, user.Username

		if update.Email != nil {
			email = models.NormalizeEmail(*update.Email)
			updates["email"] = email
		}

		if update.Username != nil {
			username = strings.TrimSpace(*update.Username)
			updates["username"] = username
		}

		if update.Avatar != nil {
			if *update.Avatar == "" {
				updates["avatar"] = nil
			} else {
				updates["avatar"] = *update.Avatar
			}
		}

		if len(updates) > 0 {
			if err := validateAccount(email, username); err != nil {
				return err
			}

			if err := checkAccountUnique(tx, user.ID, email, username); err != nil {
				return err
			}
		}

		if update.NewPassword != "" {
			if !user.CheckPassword(update.CurrentPassword) {
				return ErrInvalidCredentials
			}

			if err := setPassword(&user, update.NewPassword); err != nil {
				return err
			}

			updates["password_hash"] = user.PasswordHash
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&user, id).Error
	})

	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, translate(err))
	}

	return &user, nil
}

func (s *Store) ChangePassword(ctx context.Context, id uint, current, next string) error {
	if next == "" {
		return fmt.Errorf("change password for user %d: %w", id, invalid("password", "is required"))
	}

	_, err := s.UpdateUser(ctx, id, UserUpdate{CurrentPassword: current, NewPassword: next})

	return err
}

func (s *Store) SetActive(ctx context.Context, id uint, active bool) error {
	return s.SetFlags(ctx, id, UserFlags{IsActive: &active})
}

func (s *Store) SetAdmin(ctx context.Context, id uint, admin bool) error {
	return s.SetFlags(ctx, id, UserFlags{IsAdmin: &admin})
}

// SetFlags writes every given flag in a single UPDATE.
func (s *Store) SetFlags(ctx context.Context, id uint, flags UserFlags) error {
	updates := make(map[string]interface{})

	if flags.IsActive != nil {
		updates["is_active"] = *flags.IsActive
	}

	if flags.IsAdmin != nil {
		updates["is_admin"] = *flags.IsAdmin
	}

	if len(updates) == 0 {
		return fmt.Errorf("set flags for user %d: %w", id, invalid("flags", "nothing to update"))
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("set flags for user %d: %w", id, translate(result.Error))
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("set flags for user %d: %w", id, ErrNotFound)
	}

	s.logger.Info("User flags changed", "user_id", id, "flags", updates)

	return nil
}
