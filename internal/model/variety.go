package model

import (
	"time"

	"gorm.io/gorm"
)

// Variety is a garment classification. TotalSareeCount is maintained by the
// saree mutators rather than derived on read.
type Variety struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name            string    `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	TotalSareeCount int64     `json:"total_saree_count" gorm:"not null;default:0"`
	Admin           AdminMeta `json:"admin" gorm:"embedded;embeddedPrefix:admin_"`
	CreatedAt       time.Time `json:"created_at"`
}

// BeforeCreate assigns an id
func (v *Variety) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = newID()
	}
	return nil
}
