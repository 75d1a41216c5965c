package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"street-eats/internal/models"
	"street-eats/pkg/notify"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// CatalogReader is the slice of the menu module order pricing needs.
type CatalogReader interface {
	GetActiveProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error)
	GetRegionByID(ctx context.Context, id int64) (*models.Region, error)
}

// AddressReader verifies address ownership for delivery orders.
type AddressReader interface {
	GetByIDAndUser(ctx context.Context, id, userID int64) (*models.Address, error)
}

// UserReader resolves the customer for notification delivery.
type UserReader interface {
	FindByID(ctx context.Context, userID int64) (*models.User, error)
}

// Notifier delivers order events to Telegram chats.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, info notify.OrderInfo, userChatID int64)
}

// ReceiptSender emails an order receipt; implementations must be safe to
// call with a nil-configured backend.
type ReceiptSender interface {
	SendOrderReceipt(ctx context.Context, order *models.Order) error
}

// ServiceInterface defines order workflows for customers.
type ServiceInterface interface {
	Create(ctx context.Context, userID int64, req models.CreateOrderRequest) (*models.Order, error)
	ListMyOrders(ctx context.Context, userID int64) ([]models.Order, error)
	GetOrderDetails(ctx context.Context, userID, orderID int64) (*models.Order, error)
}

// Service implements order submission with server-side pricing. The client
// sends only (product id, qty) pairs; every price on the order is read from
// the catalog at submission time.
type Service struct {
	repo      RepositoryInterface
	catalog   CatalogReader
	addresses AddressReader
	users     UserReader
	notifier  Notifier
	receipts  ReceiptSender
	created   prometheus.Counter
	logger    zerolog.Logger
}

func NewService(repo RepositoryInterface, catalog CatalogReader, addresses AddressReader, users UserReader, notifier Notifier, receipts ReceiptSender, created prometheus.Counter, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		addresses: addresses,
		users:     users,
		notifier:  notifier,
		receipts:  receipts,
		created:   created,
		logger:    logger,
	}
}

const listLimit = 50

// Create validates and persists an order. Resubmitting the same
// client_request_id returns the original order unchanged.
func (s *Service) Create(ctx context.Context, userID int64, req models.CreateOrderRequest) (*models.Order, error) {
	if _, err := uuid.Parse(req.ClientRequestID); err != nil {
		return nil, fmt.Errorf("invalid client_request_id: %w", err)
	}
	if len(req.Items) == 0 {
		return nil, models.ErrEmptyOrder
	}

	if existing, err := s.repo.FindByClientRequestID(ctx, userID, req.ClientRequestID); err == nil {
		return existing, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	orderType := strings.ToLower(req.Type)
	if orderType != models.OrderTypeDelivery && orderType != models.OrderTypePickup {
		return nil, errors.New("order type must be delivery or pickup")
	}
	if orderType == models.OrderTypeDelivery && req.AddressID == 0 {
		return nil, errors.New("address is required for delivery")
	}

	region, err := s.catalog.GetRegionByID(ctx, req.RegionID)
	if err != nil || !region.IsActive {
		return nil, models.ErrRegionUnavailable
	}

	var addressID int64
	if req.AddressID > 0 {
		addr, err := s.addresses.GetByIDAndUser(ctx, req.AddressID, userID)
		if err != nil {
			return nil, models.ErrAddressNotOwned
		}
		addressID = addr.ID
	}

	// Duplicate product lines merge into one, mirroring the cart contract.
	merged := make(map[int64]int32)
	for _, item := range req.Items {
		if item.Qty <= 0 {
			return nil, errors.New("item quantity must be > 0")
		}
		merged[item.ProductID] += item.Qty
	}

	productIDs := make([]int64, 0, len(merged))
	for id := range merged {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	catalog, err := s.catalog.GetActiveProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(productIDs))
	var itemsTotal float64
	for _, id := range productIDs {
		product, ok := catalog[id]
		if !ok || !product.IsActive {
			return nil, models.ErrProductUnavailable
		}
		qty := merged[id]
		total := product.Price * float64(qty)
		itemsTotal += total
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Qty:         qty,
			Price:       product.Price,
			Total:       total,
		})
	}

	deliveryPrice := 0.0
	if orderType == models.OrderTypeDelivery {
		deliveryPrice = region.DeliveryPrice
	}

	order := &models.Order{
		ClientRequestID: req.ClientRequestID,
		UserID:          userID,
		AddressID:       addressID,
		Type:            orderType,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusNew,
		RegionID:        region.ID,
		DeliveryPrice:   deliveryPrice,
		ItemsTotal:      itemsTotal,
		TotalPrice:      itemsTotal + deliveryPrice,
		Comment:         req.Comment,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Items:           items,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if s.created != nil {
		s.created.Inc()
	}
	s.notifyCreated(ctx, created)

	return created, nil
}

func (s *Service) notifyCreated(ctx context.Context, order *models.Order) {
	if s.notifier != nil && s.users != nil {
		if user, err := s.users.FindByID(ctx, order.UserID); err == nil && user.TelegramID != 0 {
			s.notifier.NotifyOrderCreated(ctx, notify.OrderInfo{
				OrderID:       order.ID,
				Status:        order.Status,
				Total:         order.TotalPrice,
				CustomerName:  order.CustomerName,
				CustomerPhone: order.CustomerPhone,
			}, user.TelegramID)
		}
	}
	if s.receipts != nil {
		if err := s.receipts.SendOrderReceipt(ctx, order); err != nil {
			s.logger.Warn().Err(err).Int64("order_id", order.ID).Msg("order receipt email failed")
		}
	}
}

func (s *Service) ListMyOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.repo.ListByUser(ctx, userID, listLimit)
}

func (s *Service) GetOrderDetails(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	return s.repo.GetByIDAndUser(ctx, orderID, userID)
}
