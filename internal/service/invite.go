package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/repository"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"github.com/suteetoe/sareecatalog/pkg/metrics"
	"go.uber.org/zap"
)

const (
	scopeGlobal   = "global"
	scopeCategory = "category"

	msgInvalidLink    = "Invalid / Expired link"
	msgOtherDevice    = "This link is already used on another device"
	msgLocked         = "Link locked to this device"
	msgAccessAllowed  = "Access allowed"
	inviteTokenLength = 16
)

// CategoryRef names a category granted by an invite
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Invite is a freshly issued token and its shareable link
type Invite struct {
	Token        string        `json:"token"`
	Link         string        `json:"link"`
	Categories   []CategoryRef `json:"categories,omitempty"`
	CategoryID   string        `json:"category_id,omitempty"`
	CategoryName string        `json:"category_name,omitempty"`
}

// VerifyResult is the outcome of a device-lock check. A denial is a normal
// result, not an error.
type VerifyResult struct {
	Allowed  bool   `json:"allowed"`
	FirstUse bool   `json:"first_use"`
	Message  string `json:"message"`
}

// Err is a ForbiddenError carrying the denial message, or nil when allowed
func (r *VerifyResult) Err() error {
	if r.Allowed {
		return nil
	}
	return ErrForbidden(r.Message)
}

// InviteManager issues, verifies and disables invite tokens. Each token is
// bound to the first device that verifies it; a category invite group is
// locked as a unit.
type InviteManager struct {
	store       *repository.Store
	frontendURL string
}

// NewInviteManager creates an InviteManager whose links point at frontendURL
func NewInviteManager(store *repository.Store, frontendURL string) *InviteManager {
	return &InviteManager{
		store:       store,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// newInviteToken returns an unguessable URL-safe token
func newInviteToken() (string, error) {
	b := make([]byte, inviteTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate invite token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// CreateGlobal issues a token granting the whole published catalog
func (m *InviteManager) CreateGlobal(ctx context.Context) (*Invite, error) {
	token, err := newInviteToken()
	if err != nil {
		return nil, err
	}
	inv := &model.InviteToken{Token: token, IsActive: true}
	if err := m.store.CreateInvite(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}

	metrics.RecordInviteIssued(scopeGlobal)
	logger.FromContext(ctx).Info("Global invite created", zap.String("invite_id", inv.ID))

	return &Invite{
		Token: token,
		Link:  fmt.Sprintf("%s/catalog?token=%s", m.frontendURL, token),
	}, nil
}

// CreateCategory issues one token granting every listed category. Every id
// must name an existing category.
func (m *InviteManager) CreateCategory(ctx context.Context, categoryIDs []string) (*Invite, error) {
	ids := uniqueNonEmpty(categoryIDs)
	if len(ids) == 0 {
		return nil, ErrValidation("category_ids required")
	}

	found, err := m.store.FindCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	byID := make(map[string]model.Category, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	refs := make([]CategoryRef, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, ErrValidation("Category not found: " + id)
		}
		refs = append(refs, CategoryRef{ID: c.ID, Name: c.Name})
	}

	token, err := newInviteToken()
	if err != nil {
		return nil, err
	}
	rows := make([]model.CategoryInviteToken, 0, len(refs))
	for _, ref := range refs {
		rows = append(rows, model.CategoryInviteToken{Token: token, CategoryID: ref.ID, IsActive: true})
	}
	if err := m.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.CreateCategoryInvites(ctx, rows)
	}); err != nil {
		return nil, fmt.Errorf("create category invite: %w", err)
	}

	metrics.RecordInviteIssued(scopeCategory)
	logger.FromContext(ctx).Info("Category invite created", zap.Strings("category_ids", ids))

	inv := &Invite{Token: token, Categories: refs}
	if len(refs) == 1 {
		inv.CategoryID = refs[0].ID
		inv.CategoryName = refs[0].Name
		inv.Link = fmt.Sprintf("%s/catalog/%s?token=%s", m.frontendURL, refs[0].ID, token)
	} else {
		inv.Link = fmt.Sprintf("%s/catalog?token=%s", m.frontendURL, token)
	}
	return inv, nil
}

// Verify checks a global token against deviceID, locking it to that device
// on first use
func (m *InviteManager) Verify(ctx context.Context, token, deviceID string) (*VerifyResult, error) {
	if token == "" || deviceID == "" {
		return nil, ErrValidation("token and device_id required")
	}

	inv, err := m.store.FindActiveInvite(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return m.verdict(ctx, scopeGlobal, "invalid", &VerifyResult{Message: msgInvalidLink}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load invite: %w", err)
	}

	if inv.LockedDeviceID == nil {
		locked, err := m.store.LockInvite(ctx, token, deviceID)
		if err != nil {
			return nil, fmt.Errorf("lock invite: %w", err)
		}
		if locked > 0 {
			return m.verdict(ctx, scopeGlobal, "first_use",
				&VerifyResult{Allowed: true, FirstUse: true, Message: msgLocked}), nil
		}

		// lost the race or the token was disabled meanwhile
		inv, err = m.store.FindActiveInvite(ctx, token)
		if errors.Is(err, repository.ErrNotFound) {
			return m.verdict(ctx, scopeGlobal, "invalid", &VerifyResult{Message: msgInvalidLink}), nil
		}
		if err != nil {
			return nil, fmt.Errorf("reload invite: %w", err)
		}
	}

	if inv.LockedDeviceID == nil || *inv.LockedDeviceID != deviceID {
		return m.verdict(ctx, scopeGlobal, "device_mismatch", &VerifyResult{Message: msgOtherDevice}), nil
	}
	return m.verdict(ctx, scopeGlobal, "allowed", &VerifyResult{Allowed: true, Message: msgAccessAllowed}), nil
}

// VerifyCategory checks a category token against deviceID. When categoryID
// is set the token must grant that category. The whole group sharing the
// token is locked to the first verifying device.
func (m *InviteManager) VerifyCategory(ctx context.Context, token, deviceID, categoryID string) (*VerifyResult, error) {
	if token == "" || deviceID == "" {
		return nil, ErrValidation("token and device_id required")
	}

	rows, err := m.store.FindActiveCategoryInvites(ctx, token, categoryID)
	if err != nil {
		return nil, fmt.Errorf("load category invite: %w", err)
	}
	if len(rows) == 0 {
		return m.verdict(ctx, scopeCategory, "invalid", &VerifyResult{Message: msgInvalidLink}), nil
	}

	firstUse := false
	if anyUnlocked(rows) {
		locked, err := m.store.LockCategoryInvites(ctx, token, deviceID)
		if err != nil {
			return nil, fmt.Errorf("lock category invite: %w", err)
		}
		firstUse = locked > 0

		rows, err = m.store.FindActiveCategoryInvites(ctx, token, categoryID)
		if err != nil {
			return nil, fmt.Errorf("reload category invite: %w", err)
		}
		if len(rows) == 0 {
			return m.verdict(ctx, scopeCategory, "invalid", &VerifyResult{Message: msgInvalidLink}), nil
		}
	}

	for _, row := range rows {
		if row.LockedDeviceID == nil || *row.LockedDeviceID != deviceID {
			return m.verdict(ctx, scopeCategory, "device_mismatch", &VerifyResult{Message: msgOtherDevice}), nil
		}
	}
	if firstUse {
		return m.verdict(ctx, scopeCategory, "first_use",
			&VerifyResult{Allowed: true, FirstUse: true, Message: msgLocked}), nil
	}
	return m.verdict(ctx, scopeCategory, "allowed", &VerifyResult{Allowed: true, Message: msgAccessAllowed}), nil
}

// Disable deactivates a global token. Disabling twice is not an error.
func (m *InviteManager) Disable(ctx context.Context, token string) error {
	if token == "" {
		return ErrValidation("token required")
	}
	matched, err := m.store.DisableInvite(ctx, token)
	if err != nil {
		return fmt.Errorf("disable invite: %w", err)
	}
	if matched == 0 {
		return ErrNotFound("Token not found")
	}
	logger.FromContext(ctx).Info("Global invite disabled")
	return nil
}

// DisableCategory deactivates every row of a category invite group
func (m *InviteManager) DisableCategory(ctx context.Context, token string) error {
	if token == "" {
		return ErrValidation("token required")
	}
	matched, err := m.store.DisableCategoryInvites(ctx, token)
	if err != nil {
		return fmt.Errorf("disable category invite: %w", err)
	}
	if matched == 0 {
		return ErrNotFound("Token not found")
	}
	logger.FromContext(ctx).Info("Category invite disabled", zap.Int64("rows", matched))
	return nil
}

func (m *InviteManager) verdict(ctx context.Context, scope, outcome string, res *VerifyResult) *VerifyResult {
	metrics.RecordInviteVerification(scope, outcome)
	if !res.Allowed {
		logger.FromContext(ctx).Warn("Invite verification denied",
			zap.String("scope", scope),
			zap.String("outcome", outcome))
	}
	return res
}

func anyUnlocked(rows []model.CategoryInviteToken) bool {
	for _, row := range rows {
		if row.LockedDeviceID == nil {
			return true
		}
	}
	return false
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
