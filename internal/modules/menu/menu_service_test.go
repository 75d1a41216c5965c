package menu

import (
	"context"
	"testing"

	"street-eats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMenuRepo struct {
	categories []models.Category
	products   []models.Product
	regions    []models.Region

	categoryCalls int
}

func (f *fakeMenuRepo) GetActiveCategories(ctx context.Context) ([]models.Category, error) {
	f.categoryCalls++
	return f.categories, nil
}

func (f *fakeMenuRepo) GetActiveProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeMenuRepo) GetActiveRegions(ctx context.Context) ([]models.Region, error) {
	return f.regions, nil
}

func (f *fakeMenuRepo) GetActiveProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product)
	for _, p := range f.products {
		for _, id := range ids {
			if p.ID == id {
				out[id] = p
			}
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) GetRegionByID(ctx context.Context, id int64) (*models.Region, error) {
	for _, r := range f.regions {
		if r.ID == id {
			region := r
			return &region, nil
		}
	}
	return nil, models.ErrNotFound
}

func TestGetMenuGroupsProductsByCategory(t *testing.T) {
	t.Parallel()

	repo := &fakeMenuRepo{
		categories: []models.Category{
			{ID: 1, Name: "Mains", SortOrder: 1},
			{ID: 2, Name: "Drinks", SortOrder: 2},
		},
		products: []models.Product{
			{ID: 10, CategoryID: 1, Name: "Shawarma", Price: 250},
			{ID: 11, CategoryID: 2, Name: "Lemonade", Price: 100},
			{ID: 12, CategoryID: 1, Name: "Falafel", Price: 200},
		},
	}
	svc := NewService(repo, nil, 0, 0)

	resp, err := svc.GetMenu(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "Mains", resp.Categories[0].Name)
	require.Len(t, resp.Categories[0].Products, 2)
	assert.Equal(t, "Shawarma", resp.Categories[0].Products[0].Name)
	assert.Equal(t, "Falafel", resp.Categories[0].Products[1].Name)
	require.Len(t, resp.Categories[1].Products, 1)
	assert.Equal(t, "Lemonade", resp.Categories[1].Products[0].Name)
}

func TestGetMenuDropsOrphanProducts(t *testing.T) {
	t.Parallel()

	repo := &fakeMenuRepo{
		categories: []models.Category{{ID: 1, Name: "Mains"}},
		products: []models.Product{
			{ID: 10, CategoryID: 1, Name: "Shawarma"},
			{ID: 11, CategoryID: 99, Name: "Stray"},
		},
	}
	svc := NewService(repo, nil, 0, 0)

	resp, err := svc.GetMenu(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Categories, 1)
	require.Len(t, resp.Categories[0].Products, 1)
	assert.Equal(t, "Shawarma", resp.Categories[0].Products[0].Name)
}

func TestGetMenuEmptyCategoriesKeepEmptySlice(t *testing.T) {
	t.Parallel()

	repo := &fakeMenuRepo{
		categories: []models.Category{{ID: 1, Name: "Mains"}},
	}
	svc := NewService(repo, nil, 0, 0)

	resp, err := svc.GetMenu(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Categories, 1)
	assert.NotNil(t, resp.Categories[0].Products)
	assert.Empty(t, resp.Categories[0].Products)
}

func TestGetMenuWithoutCacheHitsRepoEveryTime(t *testing.T) {
	t.Parallel()

	repo := &fakeMenuRepo{categories: []models.Category{{ID: 1, Name: "Mains"}}}
	svc := NewService(repo, nil, 0, 0)

	_, err := svc.GetMenu(context.Background())
	require.NoError(t, err)
	_, err = svc.GetMenu(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.categoryCalls)
}

func TestGetRegionsNilBecomesEmptySlice(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeMenuRepo{}, nil, 0, 0)

	resp, err := svc.GetRegions(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, resp.Regions)
	assert.Empty(t, resp.Regions)
}

func TestInvalidateCacheWithoutRedisIsNoop(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeMenuRepo{}, nil, 0, 0)
	assert.NotPanics(t, func() { svc.InvalidateCache(context.Background()) })
}
