package models

import "time"

// BaseModel is gorm.Model without soft deletes: rows removed through the
// store are gone, which the cascade rules depend on.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
