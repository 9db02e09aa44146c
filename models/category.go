package models

import "time"

// Category is global reference data shared across users. Names are unique
// case- and whitespace-insensitively; the check lives in the create handler
// since the index alone cannot express lower(trim()).
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:512;not null" json:"description"`
}
