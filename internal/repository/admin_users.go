package repository

import (
	"context"

	"github.com/suteetoe/sareecatalog/internal/model"
)

// CreateAdmin inserts a new admin user
func (s *Store) CreateAdmin(ctx context.Context, admin *model.AdminUser) error {
	return s.with(ctx).Create(admin).Error
}

// ListAdmins returns every admin ordered by creation
func (s *Store) ListAdmins(ctx context.Context) ([]model.AdminUser, error) {
	var admins []model.AdminUser
	err := s.with(ctx).Order("created_at ASC").Find(&admins).Error
	return admins, err
}

// FindAdminByID loads an admin by id
func (s *Store) FindAdminByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := s.with(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

// FindAdminByCredentials matches username and plain-text password
func (s *Store) FindAdminByCredentials(ctx context.Context, username, password string) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := s.with(ctx).Where("username = ? AND password = ?", username, password).First(&admin).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

// DeleteAdmin removes an admin; ErrNotFound if nothing was deleted
func (s *Store) DeleteAdmin(ctx context.Context, id string) error {
	res := s.with(ctx).Where("id = ?", id).Delete(&model.AdminUser{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
