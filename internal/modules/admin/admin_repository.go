package admin

import (
	"context"
	"errors"
	"fmt"

	"street-eats/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface covers operator accounts and catalog writes.
type RepositoryInterface interface {
	GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	EnsureAdmin(ctx context.Context, username, passwordHash string) error

	InsertCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	InsertProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req models.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	InsertRegion(ctx context.Context, req models.RegionRequest) (*models.Region, error)
	UpdateRegion(ctx context.Context, id int64, req models.RegionRequest) (*models.Region, error)
	DeleteRegion(ctx context.Context, id int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	query := `SELECT id, username, password_hash, created_at FROM admin_users WHERE username = $1`
	err := r.db.QueryRow(ctx, query, username).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.GetAdminByUsername: %w", err)
	}
	return admin, nil
}

// EnsureAdmin creates the bootstrap operator account if it does not exist.
func (r *Repository) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	query := `
	INSERT INTO admin_users (username, password_hash)
	VALUES ($1, $2)
	ON CONFLICT (username) DO NOTHING`
	if _, err := r.db.Exec(ctx, query, username, passwordHash); err != nil {
		return fmt.Errorf("repository.EnsureAdmin: %w", err)
	}
	return nil
}

const categoryColumns = `id, name, COALESCE(emoji, ''), sort_order, is_active`

func scanCategory(row pgx.Row) (*models.Category, error) {
	cat := &models.Category{}
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Emoji, &cat.SortOrder, &cat.IsActive); err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *Repository) InsertCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	query := `
	INSERT INTO categories (name, emoji, sort_order, is_active)
	VALUES ($1, NULLIF($2, ''), $3, $4)
	RETURNING ` + categoryColumns
	cat, err := scanCategory(r.db.QueryRow(ctx, query, req.Name, req.Emoji, req.SortOrder, req.IsActive))
	if err != nil {
		return nil, fmt.Errorf("repository.InsertCategory: %w", err)
	}
	return cat, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	query := `
	UPDATE categories SET name = $1, emoji = NULLIF($2, ''), sort_order = $3, is_active = $4
	WHERE id = $5
	RETURNING ` + categoryColumns
	cat, err := scanCategory(r.db.QueryRow(ctx, query, req.Name, req.Emoji, req.SortOrder, req.IsActive, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateCategory: %w", err)
	}
	return cat, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteCategory: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

const productColumns = `id, category_id, name, COALESCE(description, ''), price, COALESCE(old_price, 0), COALESCE(image_url, ''), is_active, sort_order`

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.OldPrice, &p.ImageURL, &p.IsActive, &p.SortOrder); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) InsertProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	query := `
	INSERT INTO products (category_id, name, description, price, old_price, image_url, is_active, sort_order)
	VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, 0), NULLIF($6, ''), $7, $8)
	RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRow(ctx, query,
		req.CategoryID, req.Name, req.Description, req.Price, req.OldPrice, req.ImageURL, req.IsActive, req.SortOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("repository.InsertProduct: %w", err)
	}
	return p, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, id int64, req models.ProductRequest) (*models.Product, error) {
	query := `
	UPDATE products
	SET category_id = $1, name = $2, description = NULLIF($3, ''), price = $4, old_price = NULLIF($5, 0), image_url = NULLIF($6, ''), is_active = $7, sort_order = $8
	WHERE id = $9
	RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRow(ctx, query,
		req.CategoryID, req.Name, req.Description, req.Price, req.OldPrice, req.ImageURL, req.IsActive, req.SortOrder, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateProduct: %w", err)
	}
	return p, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteProduct: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

const regionColumns = `id, name, delivery_price, is_active`

func scanRegion(row pgx.Row) (*models.Region, error) {
	reg := &models.Region{}
	if err := row.Scan(&reg.ID, &reg.Name, &reg.DeliveryPrice, &reg.IsActive); err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *Repository) InsertRegion(ctx context.Context, req models.RegionRequest) (*models.Region, error) {
	query := `
	INSERT INTO regions (name, delivery_price, is_active)
	VALUES ($1, $2, $3)
	RETURNING ` + regionColumns
	reg, err := scanRegion(r.db.QueryRow(ctx, query, req.Name, req.DeliveryPrice, req.IsActive))
	if err != nil {
		return nil, fmt.Errorf("repository.InsertRegion: %w", err)
	}
	return reg, nil
}

func (r *Repository) UpdateRegion(ctx context.Context, id int64, req models.RegionRequest) (*models.Region, error) {
	query := `
	UPDATE regions SET name = $1, delivery_price = $2, is_active = $3
	WHERE id = $4
	RETURNING ` + regionColumns
	reg, err := scanRegion(r.db.QueryRow(ctx, query, req.Name, req.DeliveryPrice, req.IsActive, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateRegion: %w", err)
	}
	return reg, nil
}

func (r *Repository) DeleteRegion(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteRegion: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
