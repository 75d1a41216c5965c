package menu

import (
	"context"
	"fmt"

	"street-eats/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines read access to the public catalog.
type RepositoryInterface interface {
	GetActiveCategories(ctx context.Context) ([]models.Category, error)
	GetActiveProducts(ctx context.Context) ([]models.Product, error)
	GetActiveRegions(ctx context.Context) ([]models.Region, error)
	GetActiveProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error)
	GetRegionByID(ctx context.Context, id int64) (*models.Region, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) GetActiveCategories(ctx context.Context) ([]models.Category, error) {
	query := `
	SELECT id, name, COALESCE(emoji, ''), sort_order, is_active
	FROM categories WHERE is_active ORDER BY sort_order, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.GetActiveCategories: %w", err)
	}
	defer rows.Close()

	var list []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Emoji, &cat.SortOrder, &cat.IsActive); err != nil {
			return nil, fmt.Errorf("repository.GetActiveCategories: %w", err)
		}
		list = append(list, cat)
	}
	return list, rows.Err()
}

func (r *Repository) GetActiveProducts(ctx context.Context) ([]models.Product, error) {
	query := `
	SELECT id, category_id, name, COALESCE(description, ''), price, COALESCE(old_price, 0), COALESCE(image_url, ''), is_active, sort_order
	FROM products WHERE is_active ORDER BY sort_order, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.GetActiveProducts: %w", err)
	}
	defer rows.Close()

	var list []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.OldPrice, &p.ImageURL, &p.IsActive, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("repository.GetActiveProducts: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *Repository) GetActiveRegions(ctx context.Context) ([]models.Region, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, delivery_price, is_active FROM regions WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("repository.GetActiveRegions: %w", err)
	}
	defer rows.Close()

	var list []models.Region
	for rows.Next() {
		var reg models.Region
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.DeliveryPrice, &reg.IsActive); err != nil {
			return nil, fmt.Errorf("repository.GetActiveRegions: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

// GetActiveProductsByIDs returns active products keyed by id; missing or
// inactive ids are simply absent from the map.
func (r *Repository) GetActiveProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	query := `
	SELECT id, category_id, name, COALESCE(description, ''), price, COALESCE(old_price, 0), COALESCE(image_url, ''), is_active, sort_order
	FROM products WHERE is_active AND id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("repository.GetActiveProductsByIDs: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]models.Product, len(ids))
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.OldPrice, &p.ImageURL, &p.IsActive, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("repository.GetActiveProductsByIDs: %w", err)
		}
		result[p.ID] = p
	}
	return result, rows.Err()
}

func (r *Repository) GetRegionByID(ctx context.Context, id int64) (*models.Region, error) {
	reg := &models.Region{}
	err := r.db.QueryRow(ctx, `SELECT id, name, delivery_price, is_active FROM regions WHERE id = $1`, id).
		Scan(&reg.ID, &reg.Name, &reg.DeliveryPrice, &reg.IsActive)
	if err != nil {
		return nil, models.ErrRegionUnavailable
	}
	return reg, nil
}
