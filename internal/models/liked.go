package models

import "time"

// Liked records one user liking one post. There is no unique index on
// (user_id, post_id): repeated likes are stored as separate rows.
type Liked struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	UserID uint `gorm:"not null;index"`
	PostID uint `gorm:"not null;index"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Liked) TableName() string {
	return "likes"
}
