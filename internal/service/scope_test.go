package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suteetoe/sareecatalog/internal/model"
)

func TestScopeResolver_FallsBackToPublished(t *testing.T) {
	f := newFixture(t)
	global, err := f.invites.CreateGlobal(f.ctx)
	require.NoError(t, err)

	for _, token := range []string{"", "unknown-token", global.Token} {
		filter := f.scope.Resolve(f.ctx, token)
		assert.Equal(t, model.StatusPublished, filter.Status, token)
		assert.Nil(t, filter.CategoryIDs, token)
	}
}

func TestScopeResolver_DisabledCategoryTokenFallsBack(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Bridal")
	inv, err := f.invites.CreateCategory(f.ctx, []string{c.ID})
	require.NoError(t, err)

	assert.Equal(t, []string{c.ID}, f.scope.Resolve(f.ctx, inv.Token).CategoryIDs)

	require.NoError(t, f.invites.DisableCategory(f.ctx, inv.Token))
	filter := f.scope.Resolve(f.ctx, inv.Token)
	assert.Nil(t, filter.CategoryIDs)
	assert.Equal(t, model.StatusPublished, filter.Status)
}

func TestScopeResolver_ClientListingHonoursCategoryToken(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")
	bridal := f.category(t, "Bridal")
	festive := f.category(t, "Festive")

	inBridal := f.saree(t, "Kanchi", "Silk", model.StatusPublished)
	inFestive := f.saree(t, "Banarasi", "Silk", model.StatusPublished)
	hidden := f.saree(t, "Draft", "Silk", model.StatusUnpublished)
	f.saree(t, "Loose", "Silk", model.StatusPublished)

	_, err := f.categories.SetSarees(f.ctx, bridal.ID, []string{inBridal.ID, hidden.ID})
	require.NoError(t, err)
	_, err = f.categories.SetSarees(f.ctx, festive.ID, []string{inFestive.ID})
	require.NoError(t, err)

	inv, err := f.invites.CreateCategory(f.ctx, []string{bridal.ID})
	require.NoError(t, err)

	page, err := f.sarees.ListClient(f.ctx, ClientSareeQuery{Token: inv.Token})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kanchi"}, sareeNames(page.Data))
	assert.Equal(t, DefaultClientPerPage, page.PerPage)

	// an unknown token is not an error and shows every published saree
	page, err = f.sarees.ListClient(f.ctx, ClientSareeQuery{Token: "unknown"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)

	_, err = f.sarees.GetClient(f.ctx, inv.Token, inFestive.ID)
	assert.Equal(t, 404, StatusOf(err))
	got, err := f.sarees.GetClient(f.ctx, inv.Token, inBridal.ID)
	require.NoError(t, err)
	assert.Equal(t, inBridal.ID, got.ID)
	_, err = f.sarees.GetClient(f.ctx, "", hidden.ID)
	assert.Equal(t, 404, StatusOf(err))
}
