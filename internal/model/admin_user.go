package model

import (
	"time"

	"gorm.io/gorm"
)

// AdminUser is an operator allowed to manage the catalog.
// Passwords are stored and compared as plain text.
type AdminUser struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"date_created"`
}

// BeforeCreate assigns an id
func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}
