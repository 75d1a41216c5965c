package menu

import (
	"context"
	"encoding/json"
	"time"

	"street-eats/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	menuCacheKey    = "menu:v1"
	regionsCacheKey = "regions:v1"
)

// ServiceInterface exposes the public catalog.
type ServiceInterface interface {
	GetMenu(ctx context.Context) (*models.MenuResponse, error)
	GetRegions(ctx context.Context) (*models.RegionsResponse, error)
	InvalidateCache(ctx context.Context)
}

// Service serves the menu and regions with a short redis-backed cache. The
// cache is server-side only; clients always hit the origin.
type Service struct {
	repo       RepositoryInterface
	cache      *redis.Client
	menuTTL    time.Duration
	regionsTTL time.Duration
}

func NewService(repo RepositoryInterface, cache *redis.Client, menuTTL, regionsTTL time.Duration) *Service {
	if menuTTL <= 0 {
		menuTTL = 30 * time.Second
	}
	if regionsTTL <= 0 {
		regionsTTL = 30 * time.Second
	}
	return &Service{repo: repo, cache: cache, menuTTL: menuTTL, regionsTTL: regionsTTL}
}

func (s *Service) GetMenu(ctx context.Context) (*models.MenuResponse, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, menuCacheKey).Bytes(); err == nil {
			var resp models.MenuResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	categories, err := s.repo.GetActiveCategories(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.GetActiveProducts(ctx)
	if err != nil {
		return nil, err
	}

	resp := buildMenuResponse(categories, products)

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(ctx, menuCacheKey, data, s.menuTTL).Err()
		}
	}
	return resp, nil
}

func (s *Service) GetRegions(ctx context.Context) (*models.RegionsResponse, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, regionsCacheKey).Bytes(); err == nil {
			var resp models.RegionsResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	regions, err := s.repo.GetActiveRegions(ctx)
	if err != nil {
		return nil, err
	}
	if regions == nil {
		regions = []models.Region{}
	}
	resp := &models.RegionsResponse{Regions: regions}

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(ctx, regionsCacheKey, data, s.regionsTTL).Err()
		}
	}
	return resp, nil
}

// InvalidateCache drops cached payloads after admin catalog edits.
func (s *Service) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, menuCacheKey, regionsCacheKey).Err()
}

func buildMenuResponse(categories []models.Category, products []models.Product) *models.MenuResponse {
	ordered := make([]models.MenuCategory, len(categories))
	indexByID := make(map[int64]int, len(categories))
	for i, cat := range categories {
		ordered[i] = models.MenuCategory{
			ID:        cat.ID,
			Name:      cat.Name,
			Emoji:     cat.Emoji,
			SortOrder: cat.SortOrder,
			Products:  []models.Product{},
		}
		indexByID[cat.ID] = i
	}

	for _, p := range products {
		if idx, ok := indexByID[p.CategoryID]; ok {
			ordered[idx].Products = append(ordered[idx].Products, p)
		}
	}
	return &models.MenuResponse{Categories: ordered}
}
