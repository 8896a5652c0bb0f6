package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suteetoe/sareecatalog/internal/model"
)

func TestSareeService_AutoNames(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")

	var names []string
	for i := 0; i < 3; i++ {
		s := f.saree(t, "", "Silk", "")
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Saree001", "Saree002", "Saree003"}, names)

	// an explicit name does not consume a sequence number
	f.saree(t, "Custom", "Silk", "")
	s := f.saree(t, "", "Silk", "")
	assert.Equal(t, "Saree004", s.Name)
}

func TestSareeService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")

	cases := map[string]SareeInput{
		"no images":       {Variety: "Silk", MinPrice: price(1), MaxPrice: price(2)},
		"no variety":      {ImageURLs: []string{"https://x/a.jpg"}, MinPrice: price(1), MaxPrice: price(2)},
		"no prices":       {ImageURLs: []string{"https://x/a.jpg"}, Variety: "Silk"},
		"unknown status":  {ImageURLs: []string{"https://x/a.jpg"}, Variety: "Silk", MinPrice: price(1), MaxPrice: price(2), Status: "archived"},
		"price order":     {ImageURLs: []string{"https://x/a.jpg"}, Variety: "Silk", MinPrice: price(3), MaxPrice: price(2)},
		"unknown variety": {ImageURLs: []string{"https://x/a.jpg"}, Variety: "Cotton", MinPrice: price(1), MaxPrice: price(2)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.sarees.Create(f.ctx, in)
			assert.Equal(t, 400, StatusOf(err))
		})
	}

	assert.Zero(t, f.varietyCount(t, "Silk"))
}

func TestSareeService_DefaultsToUnpublished(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")

	s := f.saree(t, "Kanchi", "Silk", "")
	assert.Equal(t, model.StatusUnpublished, s.Status)
	assert.False(t, s.LastEditedAt.IsZero())
}

func TestSareeService_VarietyCountFollowsLifecycle(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")
	f.variety(t, "Cotton")

	a := f.saree(t, "", "Silk", "")
	b := f.saree(t, "", "Silk", "")
	f.saree(t, "", "Silk", "")
	assert.EqualValues(t, 3, f.varietyCount(t, "Silk"))

	require.NoError(t, f.sarees.Delete(f.ctx, a.ID))
	assert.EqualValues(t, 2, f.varietyCount(t, "Silk"))

	_, err := f.sarees.Update(f.ctx, b.ID, SareePatch{Variety: strPtr("Cotton")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.varietyCount(t, "Silk"))
	assert.EqualValues(t, 1, f.varietyCount(t, "Cotton"))

	// same variety again is not a move
	_, err = f.sarees.Update(f.ctx, b.ID, SareePatch{Variety: strPtr("Cotton")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.varietyCount(t, "Cotton"))

	_, err = f.sarees.Update(f.ctx, b.ID, SareePatch{Variety: strPtr("Linen")})
	assert.Equal(t, 400, StatusOf(err))
	assert.EqualValues(t, 1, f.varietyCount(t, "Cotton"))
}

func TestSareeService_PartialUpdate(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")
	s := f.saree(t, "Kanchi", "Silk", "")
	before := s.LastEditedAt

	urls := []string{"https://cdn.example.com/new.jpg"}
	updated, err := f.sarees.Update(f.ctx, s.ID, SareePatch{
		ImageURLs: &urls,
		Status:    strPtr(model.StatusPublished),
		MaxPrice:  price(5000),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kanchi", updated.Name)
	assert.Equal(t, urls, []string(updated.ImageURLs))
	assert.Equal(t, model.StatusPublished, updated.Status)
	assert.EqualValues(t, 1000, updated.MinPrice)
	assert.EqualValues(t, 5000, updated.MaxPrice)
	assert.False(t, updated.LastEditedAt.Before(before))

	_, err = f.sarees.Update(f.ctx, "missing", SareePatch{Name: strPtr("x")})
	assert.Equal(t, 404, StatusOf(err))

	_, err = f.sarees.Update(f.ctx, s.ID, SareePatch{Status: strPtr("gone")})
	assert.Equal(t, 400, StatusOf(err))
}

func TestSareeService_DeleteDropsMembershipAndSkipsMissingVariety(t *testing.T) {
	f := newFixture(t)
	v := f.variety(t, "Silk")
	c := f.category(t, "Bridal")
	s := f.saree(t, "Kanchi", "Silk", "")

	_, err := f.categories.SetSarees(f.ctx, c.ID, []string{s.ID})
	require.NoError(t, err)

	// the variety row vanishes out of band
	require.NoError(t, f.store.DB().Delete(&model.Variety{}, "id = ?", v.ID).Error)

	require.NoError(t, f.sarees.Delete(f.ctx, s.ID))

	members, err := f.categories.Members(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, members.Total)

	err = f.sarees.Delete(f.ctx, s.ID)
	assert.Equal(t, 404, StatusOf(err))
}

func TestSareeService_ClientFilters(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")
	f.variety(t, "Cotton")
	f.variety(t, "Linen")

	create := func(name, variety string, min, max float64) {
		_, err := f.sarees.Create(f.ctx, SareeInput{
			Name:      name,
			ImageURLs: []string{"https://cdn.example.com/x.jpg"},
			Variety:   variety,
			MinPrice:  price(min),
			MaxPrice:  price(max),
			Status:    model.StatusPublished,
		})
		require.NoError(t, err)
	}
	create("s1", "Silk", 1000, 3000)
	create("s2", "Silk", 5000, 9000)
	create("c1", "Cotton", 500, 800)
	create("l1", "Linen", 700, 1200)

	page, err := f.sarees.ListClient(f.ctx, ClientSareeQuery{Varieties: []string{"Silk", "Cotton"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s1", "s2", "c1"}, sareeNames(page.Data))

	// the list form wins over the single form
	page, err = f.sarees.ListClient(f.ctx, ClientSareeQuery{Variety: "Linen", Varieties: []string{"Cotton"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, sareeNames(page.Data))

	page, err = f.sarees.ListClient(f.ctx, ClientSareeQuery{MinPrice: price(700), MaxPrice: price(3000)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s1", "l1"}, sareeNames(page.Data))

	names, err := f.sarees.ClientVarieties(f.ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cotton", "Linen", "Silk"}, names)
}

func TestSareeService_ListAdmin(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")
	for _, name := range []string{"Mysore", "kanchi", "Banarasi", "Kantha"} {
		f.saree(t, name, "Silk", "")
	}

	page, err := f.sarees.ListAdmin(f.ctx, AdminSareeQuery{Search: "KAN"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"kanchi", "Kantha"}, sareeNames(page.Data))
	assert.Equal(t, DefaultAdminPerPage, page.PerPage)

	page, err = f.sarees.ListAdmin(f.ctx, AdminSareeQuery{Paging: Paging{Page: 2, PerPage: 3}})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 1)

	page, err = f.sarees.ListAdmin(f.ctx, AdminSareeQuery{Paging: Paging{PerPage: 5000}})
	require.NoError(t, err)
	assert.Equal(t, MaxPerPage, page.PerPage)
}

func TestSareeService_PageFarPastEndIsEmpty(t *testing.T) {
	f := newFixture(t)
	f.variety(t, "Silk")
	f.saree(t, "A", "Silk", model.StatusPublished)
	f.saree(t, "B", "Silk", model.StatusPublished)

	huge := Paging{Page: 1<<62 + 1, PerPage: 2}
	page, err := f.sarees.ListClient(f.ctx, ClientSareeQuery{Paging: huge})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Empty(t, page.Data)

	admin, err := f.sarees.ListAdmin(f.ctx, AdminSareeQuery{Paging: huge})
	require.NoError(t, err)
	assert.Empty(t, admin.Data)
}
