package repository

import (
	"context"

	"github.com/suteetoe/sareecatalog/internal/model"
	"gorm.io/gorm"
)

// CreateInvite inserts a global invite token
func (s *Store) CreateInvite(ctx context.Context, inv *model.InviteToken) error {
	return s.with(ctx).Create(inv).Error
}

// FindActiveInvite loads the active global invite with the given token
func (s *Store) FindActiveInvite(ctx context.Context, token string) (*model.InviteToken, error) {
	var inv model.InviteToken
	err := s.with(ctx).Where("token = ? AND is_active = ?", token, true).First(&inv).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

// LockInvite binds an active, unlocked global invite to deviceID. It returns
// the number of rows changed, so zero means another caller locked it first
// or the token is not active.
func (s *Store) LockInvite(ctx context.Context, token, deviceID string) (int64, error) {
	res := s.with(ctx).Model(&model.InviteToken{}).
		Where("token = ? AND is_active = ? AND locked_device_id IS NULL", token, true).
		UpdateColumn("locked_device_id", deviceID)
	return res.RowsAffected, res.Error
}

// DisableInvite deactivates a global invite. It returns the rows matched by
// token so an already disabled token still counts as found.
func (s *Store) DisableInvite(ctx context.Context, token string) (int64, error) {
	res := s.with(ctx).Model(&model.InviteToken{}).
		Where("token = ?", token).
		UpdateColumn("is_active", false)
	if res.Error != nil {
		return 0, res.Error
	}
	return s.countInviteRows(ctx, &model.InviteToken{}, token)
}

// CreateCategoryInvites inserts the fan-out rows of one category invite
func (s *Store) CreateCategoryInvites(ctx context.Context, rows []model.CategoryInviteToken) error {
	if len(rows) == 0 {
		return nil
	}
	return s.with(ctx).Create(&rows).Error
}

// FindActiveCategoryInvites returns the active rows sharing token, narrowed
// to one category when categoryID is set
func (s *Store) FindActiveCategoryInvites(ctx context.Context, token, categoryID string) ([]model.CategoryInviteToken, error) {
	rows := []model.CategoryInviteToken{}
	db := s.with(ctx).Where("token = ? AND is_active = ?", token, true)
	if categoryID != "" {
		db = db.Where("category_id = ?", categoryID)
	}
	err := db.Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// LockCategoryInvites binds every active, unlocked row of a category invite
// group to deviceID in one statement. Nothing changes if any active row of
// the group is already held by a different device.
func (s *Store) LockCategoryInvites(ctx context.Context, token, deviceID string) (int64, error) {
	heldElsewhere := s.db.Session(&gorm.Session{NewDB: true}).
		Model(&model.CategoryInviteToken{}).
		Select("1").
		Where("token = ? AND is_active = ? AND locked_device_id IS NOT NULL AND locked_device_id <> ?",
			token, true, deviceID)
	res := s.with(ctx).Model(&model.CategoryInviteToken{}).
		Where("token = ? AND is_active = ? AND locked_device_id IS NULL", token, true).
		Where("NOT EXISTS (?)", heldElsewhere).
		UpdateColumn("locked_device_id", deviceID)
	return res.RowsAffected, res.Error
}

// DisableCategoryInvites deactivates every row sharing token and returns how
// many rows carry that token
func (s *Store) DisableCategoryInvites(ctx context.Context, token string) (int64, error) {
	res := s.with(ctx).Model(&model.CategoryInviteToken{}).
		Where("token = ?", token).
		UpdateColumn("is_active", false)
	if res.Error != nil {
		return 0, res.Error
	}
	return s.countInviteRows(ctx, &model.CategoryInviteToken{}, token)
}

// CountActiveInvites counts distinct active tokens across both scopes
func (s *Store) CountActiveInvites(ctx context.Context) (int64, error) {
	var global, grouped int64
	if err := s.with(ctx).Model(&model.InviteToken{}).
		Where("is_active = ?", true).
		Count(&global).Error; err != nil {
		return 0, err
	}
	if err := s.with(ctx).Model(&model.CategoryInviteToken{}).
		Where("is_active = ?", true).
		Distinct("token").
		Count(&grouped).Error; err != nil {
		return 0, err
	}
	return global + grouped, nil
}

func (s *Store) countInviteRows(ctx context.Context, table interface{}, token string) (int64, error) {
	var count int64
	err := s.with(ctx).Model(table).Where("token = ?", token).Count(&count).Error
	return count, err
}
