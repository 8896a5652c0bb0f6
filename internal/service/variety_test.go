package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/repository"
)

func TestVarietyService_RenameCarriesSarees(t *testing.T) {
	f := newFixture(t)
	v := f.variety(t, "Silk")
	f.variety(t, "Cotton")
	a := f.saree(t, "", "Silk", "")
	f.saree(t, "", "Silk", "")
	c := f.saree(t, "", "Cotton", "")

	renamed, err := f.varieties.Update(f.ctx, f.admin, v.ID, "Pure Silk")
	require.NoError(t, err)
	assert.Equal(t, "Pure Silk", renamed.Name)
	assert.Equal(t, "root", renamed.Admin.Username)
	assert.EqualValues(t, 2, renamed.TotalSareeCount)

	moved, err := f.store.CountSarees(f.ctx, repository.SareeFilter{Varieties: []string{"Pure Silk"}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, moved)

	left, err := f.store.CountSarees(f.ctx, repository.SareeFilter{Varieties: []string{"Silk"}})
	require.NoError(t, err)
	assert.Zero(t, left)

	got, err := f.sarees.Get(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pure Silk", got.Variety)

	got, err = f.sarees.Get(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cotton", got.Variety)

	// follow-up mutations keep counting against the new name
	require.NoError(t, f.sarees.Delete(f.ctx, a.ID))
	assert.EqualValues(t, 1, f.varietyCount(t, "Pure Silk"))
}

func TestVarietyService_Conflicts(t *testing.T) {
	f := newFixture(t)
	silk := f.variety(t, "Silk")
	f.variety(t, "Cotton")

	_, err := f.varieties.Create(f.ctx, f.admin, "Silk")
	assert.Equal(t, 409, StatusOf(err))

	_, err = f.varieties.Update(f.ctx, f.admin, silk.ID, "Cotton")
	assert.Equal(t, 409, StatusOf(err))

	_, err = f.varieties.Update(f.ctx, f.admin, silk.ID, "  ")
	assert.Equal(t, 400, StatusOf(err))

	_, err = f.varieties.Update(f.ctx, f.admin, "missing", "Linen")
	assert.Equal(t, 404, StatusOf(err))

	// renaming to the current name is allowed
	_, err = f.varieties.Update(f.ctx, f.admin, silk.ID, "Silk")
	assert.NoError(t, err)
}

func TestVarietyService_ListSortsByStoredCount(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Silk", "Cotton", "Linen"} {
		f.variety(t, name)
	}
	f.saree(t, "", "Linen", "")
	f.saree(t, "", "Linen", "")
	f.saree(t, "", "Silk", "")

	page, err := f.varieties.List(f.ctx, VarietyListQuery{SortBy: "total_saree_count", Order: "desc"})
	require.NoError(t, err)
	names := []string{}
	for _, v := range page.Data {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"Linen", "Silk", "Cotton"}, names)

	page, err = f.varieties.List(f.ctx, VarietyListQuery{Search: "N"})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Cotton", page.Data[0].Name)
	assert.Equal(t, "Linen", page.Data[1].Name)
}

func TestVarietyService_RecountRepairsDrift(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")
	f.variety(t, "Cotton")
	f.saree(t, "", "Silk", "")
	f.saree(t, "", "Silk", "")

	require.NoError(t, f.store.DB().Model(&model.Variety{}).
		Where("name = ?", "Silk").
		UpdateColumn("total_saree_count", 40).Error)
	require.NoError(t, f.store.DB().Model(&model.Variety{}).
		Where("name = ?", "Cotton").
		UpdateColumn("total_saree_count", -3).Error)

	n, err := f.varieties.Recount(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.EqualValues(t, 2, f.varietyCount(t, "Silk"))
	assert.EqualValues(t, 0, f.varietyCount(t, "Cotton"))
}
