package models

import "fmt"

type Collection struct {
	BaseModel

	Title    string `gorm:"size:255;not null"`
	AuthorID uint   `gorm:"not null;index"`

	// Relationships
	Author User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Posts  []Post `gorm:"many2many:collection_posts;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (c Collection) String() string {
	return fmt.Sprintf("%s by %s", c.Title, c.Author)
}
