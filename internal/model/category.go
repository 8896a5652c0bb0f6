package model

import (
	"time"

	"gorm.io/gorm"
)

// Category groups sarees into an explicitly ordered membership list
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Admin     AdminMeta `json:"admin" gorm:"embedded;embeddedPrefix:admin_"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an id
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

// CategorySaree is one membership row; Position is the index within the list
// last written by a sarees update.
type CategorySaree struct {
	CategoryID string `json:"category_id" gorm:"primaryKey;type:varchar(36)"`
	SareeID    string `json:"saree_id" gorm:"primaryKey;type:varchar(36);index"`
	Position   int    `json:"position" gorm:"not null;default:0"`
}
