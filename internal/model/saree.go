package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Saree publication states
const (
	StatusPublished   = "published"
	StatusUnpublished = "unpublished"
)

// ValidStatus reports whether s is a known publication state
func ValidStatus(s string) bool {
	return s == StatusPublished || s == StatusUnpublished
}

// Saree is a catalog item. Variety holds the name of a Variety.
type Saree struct {
	ID           string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string                      `json:"name" gorm:"type:varchar(255);index;not null"`
	ImageURLs    datatypes.JSONSlice[string] `json:"image_urls"`
	Variety      string                      `json:"variety" gorm:"type:varchar(255);index"`
	Remarks      string                      `json:"remarks" gorm:"type:text"`
	MinPrice     float64                     `json:"min_price" gorm:"not null"`
	MaxPrice     float64                     `json:"max_price" gorm:"not null"`
	Status       string                      `json:"status" gorm:"type:varchar(20);index;not null;default:'unpublished'"`
	LastEditedAt time.Time                   `json:"last_edited_at" gorm:"index"`
	CreatedAt    time.Time                   `json:"-"`
}

// BeforeCreate assigns an id
func (s *Saree) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = newID()
	}
	return nil
}

// BeforeSave refreshes LastEditedAt on every save
func (s *Saree) BeforeSave(tx *gorm.DB) error {
	s.LastEditedAt = time.Now().UTC()
	return nil
}
