package models

import "time"

// Visitor is one attendance record. Like Liked it carries no unique index, so
// every visit is kept as history.
type Visitor struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	UserID    uint `gorm:"not null;index"`
	GalleryID uint `gorm:"not null;index"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Gallery Gallery `gorm:"foreignKey:GalleryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
