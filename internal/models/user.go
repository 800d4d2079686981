package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	EmailMaxLength    = 255
	UsernameMaxLength = 45
)

type User struct {
	BaseModel

	Email        string  `gorm:"size:255;uniqueIndex;not null"`
	Username     string  `gorm:"size:45;uniqueIndex;not null"`
	Avatar       *string `gorm:"size:255"` // avatars/<key>.jpg, resolved by the file store
	PasswordHash string  `gorm:"size:255;not null"`
	IsActive     bool    `gorm:"not null;default:true"`
	IsAdmin      bool    `gorm:"not null;default:false"`

	// Relationships
	Posts       []Post       `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Collections []Collection `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Galleries   []Gallery    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Comments    []Comment    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PostsLiked  []Liked      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Visits      []Visitor    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (u User) String() string {
	return "@" + u.Username
}

// SetPassword replaces the stored hash. bcrypt salts every hash, so two users
// with the same password never share a hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)

	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HasPerm grants every permission. The permission model is flat: any
// authenticated account may do anything a permission check guards.
func (u *User) HasPerm(perm string, obj any) bool {
	return true
}

func (u *User) HasModulePerms(appLabel string) bool {
	return true
}

func (u *User) IsStaff() bool {
	return u.IsAdmin
}

// NormalizeEmail trims the address and lower-cases the domain part. The local
// part is left alone since mailbox names may be case sensitive.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")

	if at < 0 {
		return email
	}

	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
