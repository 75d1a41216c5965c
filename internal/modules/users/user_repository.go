package users

import (
	"context"
	"errors"
	"fmt"

	"street-eats/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines methods for interacting with user storage.
type RepositoryInterface interface {
	FindByID(ctx context.Context, userID int64) (*models.User, error)
	UpsertTelegramUser(ctx context.Context, input models.UpsertTelegramUserInput) (*models.User, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{}
	query := `
	SELECT id, telegram_id, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(username, ''), COALESCE(phone, ''), COALESCE(language, ''), latitude, longitude, created_at
	FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.TelegramID, &user.FirstName, &user.LastName, &user.Username, &user.Phone, &user.Language, &user.Latitude, &user.Longitude, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return user, nil
}

// UpsertTelegramUser inserts the user on first sight and refreshes the
// Telegram profile fields on every subsequent authentication.
func (r *Repository) UpsertTelegramUser(ctx context.Context, input models.UpsertTelegramUserInput) (*models.User, error) {
	user := &models.User{}
	query := `
	INSERT INTO users (telegram_id, first_name, last_name, username, phone, language, latitude, longitude)
	VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8)
	ON CONFLICT (telegram_id) DO UPDATE SET
		first_name = COALESCE(NULLIF(EXCLUDED.first_name, ''), users.first_name),
		last_name  = COALESCE(NULLIF(EXCLUDED.last_name, ''), users.last_name),
		username   = COALESCE(NULLIF(EXCLUDED.username, ''), users.username),
		phone      = COALESCE(NULLIF(EXCLUDED.phone, ''), users.phone),
		language   = COALESCE(NULLIF(EXCLUDED.language, ''), users.language),
		latitude   = COALESCE(EXCLUDED.latitude, users.latitude),
		longitude  = COALESCE(EXCLUDED.longitude, users.longitude)
	RETURNING id, telegram_id, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(username, ''), COALESCE(phone, ''), COALESCE(language, ''), latitude, longitude, created_at`
	err := r.db.QueryRow(ctx, query,
		input.TelegramID, input.FirstName, input.LastName, input.Username, input.Phone, input.Language, input.Latitude, input.Longitude,
	).Scan(
		&user.ID, &user.TelegramID, &user.FirstName, &user.LastName, &user.Username, &user.Phone, &user.Language, &user.Latitude, &user.Longitude, &user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("repository.UpsertTelegramUser: %w", err)
	}
	return user, nil
}
