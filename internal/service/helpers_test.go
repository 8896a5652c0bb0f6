package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/repository"
	"github.com/suteetoe/sareecatalog/internal/testutil"
)

type fixture struct {
	ctx        context.Context
	store      *repository.Store
	admin      *model.AdminUser
	invites    *InviteManager
	scope      *ScopeResolver
	sarees     *SareeService
	varieties  *VarietyService
	categories *CategoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.New(testutil.NewDB(t))
	ctx := context.Background()

	admin := &model.AdminUser{Username: "root", FullName: "Root Admin", Password: "secret"}
	require.NoError(t, store.CreateAdmin(ctx, admin))

	scope := NewScopeResolver(store)
	return &fixture{
		ctx:        ctx,
		store:      store,
		admin:      admin,
		invites:    NewInviteManager(store, "https://shop.example.com/"),
		scope:      scope,
		sarees:     NewSareeService(store, scope),
		varieties:  NewVarietyService(store),
		categories: NewCategoryService(store, 5000),
	}
}

func price(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func (f *fixture) variety(t *testing.T, name string) *model.Variety {
	t.Helper()
	v, err := f.varieties.Create(f.ctx, f.admin, name)
	require.NoError(t, err)
	return v
}

func (f *fixture) category(t *testing.T, name string) *model.Category {
	t.Helper()
	c, err := f.categories.Create(f.ctx, f.admin, name)
	require.NoError(t, err)
	return c
}

func (f *fixture) saree(t *testing.T, name, variety, status string) *model.Saree {
	t.Helper()
	s, err := f.sarees.Create(f.ctx, SareeInput{
		Name:      name,
		ImageURLs: []string{"https://cdn.example.com/" + name + ".jpg"},
		Variety:   variety,
		MinPrice:  price(1000),
		MaxPrice:  price(2000),
		Status:    status,
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) varietyCount(t *testing.T, name string) int64 {
	t.Helper()
	v, err := f.store.FindVarietyByName(f.ctx, name)
	require.NoError(t, err)
	return v.TotalSareeCount
}

func sareeNames(rows []model.Saree) []string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names
}
