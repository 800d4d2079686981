package models

import (
	"fmt"
	"time"
)

type Comment struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	Text     string `gorm:"type:text;not null"`
	AuthorID uint   `gorm:"not null;index"`
	PostID   uint   `gorm:"not null;index"`

	// Relationships
	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (c Comment) String() string {
	return fmt.Sprintf("comment to post '%s' by %s", c.Post, c.Author)
}
