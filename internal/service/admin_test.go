package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/pkg/jwtutil"
)

func newAdminService(f *fixture, key string) *AdminService {
	return NewAdminService(f.store, jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: key, ExpirationHours: 1}))
}

func TestAdminService_LoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	admins := newAdminService(f, "test-key")

	created, err := admins.Create(f.ctx, AdminInput{Username: " meena ", FullName: "Meena", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "meena", created.Username)

	res, err := admins.Login(f.ctx, "meena", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, created.ID, res.Admin.ID)

	who, err := admins.Authenticate(f.ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "Meena", who.FullName)

	_, err = admins.Login(f.ctx, "meena", "wrong")
	assert.Equal(t, 401, StatusOf(err))
	_, err = admins.Login(f.ctx, "", "pw")
	assert.Equal(t, 400, StatusOf(err))

	_, err = admins.Authenticate(f.ctx, "garbage")
	assert.Equal(t, 401, StatusOf(err))

	// tokens signed elsewhere are rejected
	foreign, err := newAdminService(f, "other-key").Login(f.ctx, "meena", "pw")
	require.NoError(t, err)
	_, err = admins.Authenticate(f.ctx, foreign.Token)
	assert.Equal(t, 401, StatusOf(err))

	// a deleted admin's token stops working
	require.NoError(t, admins.Delete(f.ctx, created.ID))
	_, err = admins.Authenticate(f.ctx, res.Token)
	assert.Equal(t, 401, StatusOf(err))
}

func TestAdminService_CreateRules(t *testing.T) {
	f := newFixture(t)
	admins := newAdminService(f, "test-key")

	_, err := admins.Create(f.ctx, AdminInput{Username: "root", FullName: "Again", Password: "pw"})
	assert.Equal(t, 409, StatusOf(err))

	_, err = admins.Create(f.ctx, AdminInput{Username: "x", Password: "pw"})
	assert.Equal(t, 400, StatusOf(err))

	assert.Equal(t, 404, StatusOf(admins.Delete(f.ctx, "ghost")))

	list, err := admins.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "root", list[0].Username)
}

func TestDashboardService_Stats(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")
	f.variety(t, "Cotton")
	c := f.category(t, "Bridal")
	f.saree(t, "A", "Silk", model.StatusPublished)
	f.saree(t, "B", "Silk", "")

	_, err := f.invites.CreateGlobal(f.ctx)
	require.NoError(t, err)
	disabled, err := f.invites.CreateGlobal(f.ctx)
	require.NoError(t, err)
	require.NoError(t, f.invites.Disable(f.ctx, disabled.Token))

	// one category invite counts once however many rows it fans out to
	other := f.category(t, "Festive")
	_, err = f.invites.CreateCategory(f.ctx, []string{c.ID, other.ID})
	require.NoError(t, err)

	stats, err := NewDashboardService(f.store).Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{
		Categories:      2,
		Sarees:          2,
		PublishedSarees: 1,
		Varieties:       2,
		ActiveInvites:   2,
	}, *stats)
}
