package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"street-eats/internal/models"
	"street-eats/internal/modules/orders"
	"street-eats/pkg/notify"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CacheInvalidator drops cached menu payloads after catalog edits.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// StatusNotifier tells the customer their order moved.
type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, info notify.OrderInfo, userChatID int64)
}

// UserReader resolves the ordering customer for notifications.
type UserReader interface {
	FindByID(ctx context.Context, userID int64) (*models.User, error)
}

// ServiceInterface defines operator workflows.
type ServiceInterface interface {
	Login(ctx context.Context, username, password string) (string, error)
	EnsureDefaultAdmin(ctx context.Context, username, password string) error

	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req models.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateRegion(ctx context.Context, req models.RegionRequest) (*models.Region, error)
	UpdateRegion(ctx context.Context, id int64, req models.RegionRequest) (*models.Region, error)
	DeleteRegion(ctx context.Context, id int64) error

	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*models.Order, error)
}

type Service struct {
	repo      RepositoryInterface
	orderRepo orders.RepositoryInterface
	cache     CacheInvalidator
	notifier  StatusNotifier
	users     UserReader
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewService(repo RepositoryInterface, orderRepo orders.RepositoryInterface, cache CacheInvalidator, notifier StatusNotifier, users UserReader, jwtSecret string, jwtExpiry time.Duration) *Service {
	if jwtExpiry <= 0 {
		jwtExpiry = 24 * time.Hour
	}
	return &Service{
		repo:      repo,
		orderRepo: orderRepo,
		cache:     cache,
		notifier:  notifier,
		users:     users,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
	}
}

// Login checks operator credentials and issues an admin-role token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", fmt.Errorf("service.Login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: admin.ID,
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(admin.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// EnsureDefaultAdmin creates the bootstrap operator account at startup.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("default admin credentials not provided")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("service.EnsureDefaultAdmin: %w", err)
	}
	return s.repo.EnsureAdmin(ctx, username, string(hash))
}

func (s *Service) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	cat, err := s.repo.InsertCategory(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return cat, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req models.CategoryRequest) (*models.Category, error) {
	cat, err := s.repo.UpdateCategory(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	p, err := s.repo.InsertProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, req models.ProductRequest) (*models.Product, error) {
	p, err := s.repo.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) CreateRegion(ctx context.Context, req models.RegionRequest) (*models.Region, error) {
	reg, err := s.repo.InsertRegion(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return reg, nil
}

func (s *Service) UpdateRegion(ctx context.Context, id int64, req models.RegionRequest) (*models.Region, error) {
	reg, err := s.repo.UpdateRegion(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return reg, nil
}

func (s *Service) DeleteRegion(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRegion(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.ListAll(ctx, 100)
}

var allowedStatuses = map[string]struct{}{
	models.OrderStatusNew:       {},
	models.OrderStatusAccepted:  {},
	models.OrderStatusCooking:   {},
	models.OrderStatusDelivery:  {},
	models.OrderStatusDelivered: {},
	models.OrderStatusCanceled:  {},
}

func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	if _, ok := allowedStatuses[status]; !ok {
		return nil, models.ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && s.users != nil {
		if user, err := s.users.FindByID(ctx, order.UserID); err == nil && user.TelegramID != 0 {
			s.notifier.NotifyStatusChanged(ctx, notify.OrderInfo{
				OrderID:       order.ID,
				Status:        order.Status,
				Total:         order.TotalPrice,
				CustomerName:  order.CustomerName,
				CustomerPhone: order.CustomerPhone,
			}, user.TelegramID)
		}
	}
	return order, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateCache(ctx)
	}
}
