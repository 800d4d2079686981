package models

import "fmt"

const (
	TitleMaxLength           = 255
	PostDescriptionMaxLength = 255
)

type Post struct {
	BaseModel

	Title       string  `gorm:"size:255;not null"`
	Description *string `gorm:"size:255"`
	Image       string  `gorm:"size:255;not null"` // posts/<key>.jpg
	AuthorID    uint    `gorm:"not null;index"`

	// Relationships
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	LikedBy  []Liked   `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Collection and gallery membership lives in collection_posts and
	// gallery_posts, owned by the Collection.Posts and Gallery.Posts sides.
}

func (p Post) String() string {
	return fmt.Sprintf("%s by %s", p.Title, p.Author)
}
