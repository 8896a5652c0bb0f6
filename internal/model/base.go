package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminMeta records which admin last edited a category or variety
type AdminMeta struct {
	Username       string    `json:"username" gorm:"type:varchar(100)"`
	FullName       string    `json:"full_name" gorm:"type:varchar(255)"`
	LastEditedDate time.Time `json:"last_edited_date"`
}

// NewAdminMeta stamps the given admin as the last editor
func NewAdminMeta(admin *AdminUser) AdminMeta {
	return AdminMeta{
		Username:       admin.Username,
		FullName:       admin.FullName,
		LastEditedDate: time.Now(),
	}
}

func newID() string {
	return uuid.New().String()
}

// Tables lists every model managed by AutoMigrate
var Tables = []interface{}{
	&AdminUser{},
	&Category{},
	&CategorySaree{},
	&Variety{},
	&Saree{},
	&Counter{},
	&InviteToken{},
	&CategoryInviteToken{},
}
