package addresses

import (
	"context"
	"errors"
	"fmt"

	"street-eats/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines methods for address storage.
type RepositoryInterface interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Address, error)
	GetByIDAndUser(ctx context.Context, id, userID int64) (*models.Address, error)
	Insert(ctx context.Context, userID int64, req models.AddressRequest) (*models.Address, error)
	Update(ctx context.Context, id, userID int64, req models.AddressRequest) (*models.Address, error)
	Delete(ctx context.Context, id, userID int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const addressColumns = `id, user_id, region_id, street, house, COALESCE(entrance, ''), COALESCE(flat, ''), COALESCE(comment, ''), is_default, created_at`

func scanAddress(row pgx.Row) (*models.Address, error) {
	addr := &models.Address{}
	err := row.Scan(
		&addr.ID, &addr.UserID, &addr.RegionID, &addr.Street, &addr.House,
		&addr.Entrance, &addr.Flat, &addr.Comment, &addr.IsDefault, &addr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByUser: %w", err)
	}
	defer rows.Close()

	var list []models.Address
	for rows.Next() {
		addr, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListByUser: %w", err)
		}
		list = append(list, *addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListByUser: %w", err)
	}
	return list, nil
}

func (r *Repository) GetByIDAndUser(ctx context.Context, id, userID int64) (*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND user_id = $2`
	addr, err := scanAddress(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.GetByIDAndUser: %w", err)
	}
	return addr, nil
}

// Insert creates an address. When is_default is set the previous default is
// cleared inside the same transaction, keeping the flag a per-user singleton.
func (r *Repository) Insert(ctx context.Context, userID int64, req models.AddressRequest) (*models.Address, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.Insert: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if req.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default`, userID); err != nil {
			return nil, fmt.Errorf("repository.Insert: clear default: %w", err)
		}
	}

	query := `
	INSERT INTO addresses (user_id, region_id, street, house, entrance, flat, comment, is_default)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)
	RETURNING ` + addressColumns
	addr, err := scanAddress(tx.QueryRow(ctx, query,
		userID, req.RegionID, req.Street, req.House, req.Entrance, req.Flat, req.Comment, req.IsDefault,
	))
	if err != nil {
		return nil, fmt.Errorf("repository.Insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.Insert: commit: %w", err)
	}
	return addr, nil
}

func (r *Repository) Update(ctx context.Context, id, userID int64, req models.AddressRequest) (*models.Address, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.Update: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if req.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND id <> $2 AND is_default`, userID, id); err != nil {
			return nil, fmt.Errorf("repository.Update: clear default: %w", err)
		}
	}

	query := `
	UPDATE addresses
	SET region_id = $1, street = $2, house = $3, entrance = NULLIF($4, ''), flat = NULLIF($5, ''), comment = NULLIF($6, ''), is_default = $7
	WHERE id = $8 AND user_id = $9
	RETURNING ` + addressColumns
	addr, err := scanAddress(tx.QueryRow(ctx, query,
		req.RegionID, req.Street, req.House, req.Entrance, req.Flat, req.Comment, req.IsDefault, id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.Update: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.Update: commit: %w", err)
	}
	return addr, nil
}

func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("repository.Delete: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
