package models

import (
	"fmt"
	"time"
)

type Gallery struct {
	BaseModel

	Title         string    `gorm:"size:255;not null"`
	Description   *string   `gorm:"type:text"`
	TimeOpen      time.Time `gorm:"not null"`
	TimeClose     time.Time `gorm:"not null"`
	LimitVisitors *int
	AuthorID      uint `gorm:"not null;index"`

	// Relationships
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Posts    []Post    `gorm:"many2many:gallery_posts;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Visitors []Visitor `gorm:"foreignKey:GalleryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (g Gallery) String() string {
	return fmt.Sprintf("gallery %s by %s", g.Title, g.Author)
}

// IsOpenAt reports whether t falls inside [TimeOpen, TimeClose]. The store
// never checks this; admission is up to the caller.
func (g *Gallery) IsOpenAt(t time.Time) bool {
	return !t.Before(g.TimeOpen) && !t.After(g.TimeClose)
}

// Admits reports whether a gallery that already has visitors distinct
// visitors can take one more. A nil limit means unlimited.
func (g *Gallery) Admits(visitors int64) bool {
	if g.LimitVisitors == nil {
		return true
	}

	return visitors < int64(*g.LimitVisitors)
}
