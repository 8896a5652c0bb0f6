package model

import (
	"time"

	"gorm.io/gorm"
)

// InviteToken grants access to the whole published catalog and locks to
// the first device that verifies it.
type InviteToken struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Token          string    `json:"token" gorm:"type:varchar(64);uniqueIndex;not null"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	LockedDeviceID *string   `json:"locked_device_id" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate assigns an id
func (t *InviteToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}

// CategoryInviteToken is one row of a category-scoped invite. A token that
// grants several categories is stored as one row per category, all sharing
// the same Token value.
type CategoryInviteToken struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Token          string    `json:"token" gorm:"type:varchar(64);not null;uniqueIndex:idx_category_invite_token_category"`
	CategoryID     string    `json:"category_id" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_category_invite_token_category"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	LockedDeviceID *string   `json:"locked_device_id" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate assigns an id
func (t *CategoryInviteToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}
