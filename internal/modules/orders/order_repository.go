package orders

import (
	"context"
	"errors"
	"fmt"

	"street-eats/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines order persistence.
type RepositoryInterface interface {
	FindByClientRequestID(ctx context.Context, userID int64, clientRequestID string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Order, error)
	GetByIDAndUser(ctx context.Context, orderID, userID int64) (*models.Order, error)
	ListAll(ctx context.Context, limit int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (*models.Order, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const orderColumns = `id, client_request_id, user_id, COALESCE(address_id, 0), type, payment_method, status, region_id, delivery_price, items_total, total_price, COALESCE(comment, ''), customer_name, customer_phone, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(
		&o.ID, &o.ClientRequestID, &o.UserID, &o.AddressID, &o.Type, &o.PaymentMethod,
		&o.Status, &o.RegionID, &o.DeliveryPrice, &o.ItemsTotal, &o.TotalPrice,
		&o.Comment, &o.CustomerName, &o.CustomerPhone, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// FindByClientRequestID is the idempotency lookup: a resubmitted payload
// returns the already-created order instead of a duplicate.
func (r *Repository) FindByClientRequestID(ctx context.Context, userID int64, clientRequestID string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 AND client_request_id = $2`
	order, err := scanOrder(r.db.QueryRow(ctx, query, userID, clientRequestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByClientRequestID: %w", err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
	INSERT INTO orders (client_request_id, user_id, address_id, type, payment_method, status, region_id, delivery_price, items_total, total_price, comment, customer_name, customer_phone)
	VALUES ($1, $2, NULLIF($3, 0), $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13)
	RETURNING ` + orderColumns
	created, err := scanOrder(tx.QueryRow(ctx, query,
		order.ClientRequestID, order.UserID, order.AddressID, order.Type, order.PaymentMethod,
		order.Status, order.RegionID, order.DeliveryPrice, order.ItemsTotal, order.TotalPrice,
		order.Comment, order.CustomerName, order.CustomerPhone,
	))
	if err != nil {
		return nil, fmt.Errorf("repository.Create: %w", err)
	}

	itemQuery := `
	INSERT INTO order_items (order_id, product_id, product_name, qty, price, total)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = created.ID
		if err := tx.QueryRow(ctx, itemQuery,
			created.ID, item.ProductID, item.ProductName, item.Qty, item.Price, item.Total,
		).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("repository.Create: insert item: %w", err)
		}
	}
	created.Items = order.Items

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.Create: commit: %w", err)
	}
	return created, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.list(ctx, query, userID, limit)
}

func (r *Repository) ListAll(ctx context.Context, limit int) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.list: %w", err)
	}
	defer rows.Close()

	var list []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.list: %w", err)
		}
		list = append(list, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.list: %w", err)
	}

	for i := range list {
		if err := r.loadItems(ctx, &list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *Repository) GetByIDAndUser(ctx context.Context, orderID, userID int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.GetByIDAndUser: %w", err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + orderColumns
	order, err := scanOrder(r.db.QueryRow(ctx, query, status, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) loadItems(ctx context.Context, order *models.Order) error {
	query := `
	SELECT id, order_id, product_id, product_name, qty, price, total
	FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("repository.loadItems: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Qty, &item.Price, &item.Total); err != nil {
			return fmt.Errorf("repository.loadItems: %w", err)
		}
		items = append(items, item)
	}
	order.Items = items
	return rows.Err()
}
