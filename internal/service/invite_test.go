package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteManager_CreateGlobal(t *testing.T) {
	f := newFixture(t)

	inv, err := f.invites.CreateGlobal(f.ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(inv.Token), 22)
	assert.Equal(t, "https://shop.example.com/catalog?token="+inv.Token, inv.Link)

	other, err := f.invites.CreateGlobal(f.ctx)
	require.NoError(t, err)
	assert.NotEqual(t, inv.Token, other.Token)
}

func TestInviteManager_GlobalDeviceLock(t *testing.T) {
	f := newFixture(t)
	inv, err := f.invites.CreateGlobal(f.ctx)
	require.NoError(t, err)

	res, err := f.invites.Verify(f.ctx, inv.Token, "device-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.True(t, res.FirstUse)

	res, err = f.invites.Verify(f.ctx, inv.Token, "device-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.False(t, res.FirstUse)

	res, err = f.invites.Verify(f.ctx, inv.Token, "device-2")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 403, StatusOf(res.Err()))

	// the mismatch did not move the lock
	stored, err := f.store.FindActiveInvite(f.ctx, inv.Token)
	require.NoError(t, err)
	require.NotNil(t, stored.LockedDeviceID)
	assert.Equal(t, "device-1", *stored.LockedDeviceID)

	res, err = f.invites.Verify(f.ctx, inv.Token, "device-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestInviteManager_UnknownTokenDenied(t *testing.T) {
	f := newFixture(t)

	res, err := f.invites.Verify(f.ctx, "nope", "device-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, msgInvalidLink, res.Message)
	assert.EqualError(t, res.Err(), msgInvalidLink)

	_, err = f.invites.Verify(f.ctx, "", "device-1")
	assert.Equal(t, 400, StatusOf(err))
}

func TestInviteManager_DisableIsTerminalAndIdempotent(t *testing.T) {
	f := newFixture(t)
	inv, err := f.invites.CreateGlobal(f.ctx)
	require.NoError(t, err)

	res, err := f.invites.Verify(f.ctx, inv.Token, "device-1")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	require.NoError(t, f.invites.Disable(f.ctx, inv.Token))
	require.NoError(t, f.invites.Disable(f.ctx, inv.Token))

	for _, device := range []string{"device-1", "device-2"} {
		res, err := f.invites.Verify(f.ctx, inv.Token, device)
		require.NoError(t, err)
		assert.False(t, res.Allowed, device)
	}

	err = f.invites.Disable(f.ctx, "missing")
	assert.Equal(t, 404, StatusOf(err))
}

func TestInviteManager_CategoryFanOut(t *testing.T) {
	f := newFixture(t)
	x := f.category(t, "Bridal")
	y := f.category(t, "Festive")
	z := f.category(t, "Casual")

	inv, err := f.invites.CreateCategory(f.ctx, []string{x.ID, y.ID, x.ID})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/catalog?token="+inv.Token, inv.Link)
	require.Len(t, inv.Categories, 2)
	assert.Equal(t, x.ID, inv.Categories[0].ID)
	assert.Equal(t, "Festive", inv.Categories[1].Name)

	rows, err := f.store.FindActiveCategoryInvites(f.ctx, inv.Token, "")
	require.NoError(t, err)
	granted := []string{}
	for _, r := range rows {
		granted = append(granted, r.CategoryID)
	}
	assert.ElementsMatch(t, []string{x.ID, y.ID}, granted)

	// verifying through one category locks the whole group
	res, err := f.invites.VerifyCategory(f.ctx, inv.Token, "device-1", x.ID)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.True(t, res.FirstUse)

	rows, err = f.store.FindActiveCategoryInvites(f.ctx, inv.Token, "")
	require.NoError(t, err)
	for _, r := range rows {
		require.NotNil(t, r.LockedDeviceID)
		assert.Equal(t, "device-1", *r.LockedDeviceID)
	}

	res, err = f.invites.VerifyCategory(f.ctx, inv.Token, "device-1", y.ID)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.False(t, res.FirstUse)

	res, err = f.invites.VerifyCategory(f.ctx, inv.Token, "device-2", y.ID)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = f.invites.VerifyCategory(f.ctx, inv.Token, "device-1", z.ID)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	require.NoError(t, f.invites.DisableCategory(f.ctx, inv.Token))
	rows, err = f.store.FindActiveCategoryInvites(f.ctx, inv.Token, "")
	require.NoError(t, err)
	assert.Empty(t, rows)

	res, err = f.invites.VerifyCategory(f.ctx, inv.Token, "device-1", "")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestInviteManager_SingleCategoryLink(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Bridal")

	inv, err := f.invites.CreateCategory(f.ctx, []string{c.ID})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/catalog/"+c.ID+"?token="+inv.Token, inv.Link)
	assert.Equal(t, c.ID, inv.CategoryID)
	assert.Equal(t, "Bridal", inv.CategoryName)
}

func TestInviteManager_CategoryInviteRequiresExistingCategories(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Bridal")

	_, err := f.invites.CreateCategory(f.ctx, []string{c.ID, "ghost"})
	assert.Equal(t, 400, StatusOf(err))

	_, err = f.invites.CreateCategory(f.ctx, nil)
	assert.Equal(t, 400, StatusOf(err))

	count, err := f.store.CountActiveInvites(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
