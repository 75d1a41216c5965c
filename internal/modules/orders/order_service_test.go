package orders

import (
	"context"
	"testing"

	"street-eats/internal/models"
	"street-eats/pkg/notify"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestID = "3c6e0b8a-9c15-4b1f-8f2a-5f2a1b3c4d5e"

type fakeOrderRepo struct {
	existing map[string]*models.Order
	created  *models.Order
	nextID   int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{existing: make(map[string]*models.Order), nextID: 100}
}

func (f *fakeOrderRepo) FindByClientRequestID(ctx context.Context, userID int64, clientRequestID string) (*models.Order, error) {
	if order, ok := f.existing[clientRequestID]; ok && order.UserID == userID {
		return order, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = f.nextID
	f.nextID++
	f.created = order
	f.existing[order.ClientRequestID] = order
	return order, nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.existing {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByIDAndUser(ctx context.Context, orderID, userID int64) (*models.Order, error) {
	for _, order := range f.existing {
		if order.ID == orderID && order.UserID == userID {
			return order, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeOrderRepo) ListAll(ctx context.Context, limit int) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.existing {
		out = append(out, *order)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	for _, order := range f.existing {
		if order.ID == orderID {
			order.Status = status
			return order, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeCatalog struct {
	products map[int64]models.Product
	regions  map[int64]*models.Region
}

func (f *fakeCatalog) GetActiveProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetRegionByID(ctx context.Context, id int64) (*models.Region, error) {
	region, ok := f.regions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return region, nil
}

type fakeAddresses struct {
	owned map[int64]int64 // address id -> owner user id
}

func (f *fakeAddresses) GetByIDAndUser(ctx context.Context, id, userID int64) (*models.Address, error) {
	if owner, ok := f.owned[id]; ok && owner == userID {
		return &models.Address{ID: id, UserID: userID}, nil
	}
	return nil, models.ErrNotFound
}

type fakeUsers struct{}

func (fakeUsers) FindByID(ctx context.Context, userID int64) (*models.User, error) {
	return &models.User{ID: userID, TelegramID: 555}, nil
}

type fakeNotifier struct {
	calls []notify.OrderInfo
}

func (f *fakeNotifier) NotifyOrderCreated(ctx context.Context, info notify.OrderInfo, userChatID int64) {
	f.calls = append(f.calls, info)
}

func newTestService(repo *fakeOrderRepo, notifier *fakeNotifier) *Service {
	catalog := &fakeCatalog{
		products: map[int64]models.Product{
			1: {ID: 1, Name: "Shawarma", Price: 250, IsActive: true},
			2: {ID: 2, Name: "Lemonade", Price: 100, IsActive: true},
			3: {ID: 3, Name: "Retired dish", Price: 50, IsActive: false},
		},
		regions: map[int64]*models.Region{
			1: {ID: 1, Name: "Center", DeliveryPrice: 150, IsActive: true},
			2: {ID: 2, Name: "Suburbs", DeliveryPrice: 300, IsActive: false},
		},
	}
	addresses := &fakeAddresses{owned: map[int64]int64{10: 7}}
	return NewService(repo, catalog, addresses, fakeUsers{}, notifier, nil, nil, zerolog.Nop())
}

func deliveryRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		ClientRequestID: requestID,
		Type:            "delivery",
		RegionID:        1,
		AddressID:       10,
		PaymentMethod:   "cash",
		CustomerName:    "Ada",
		CustomerPhone:   "+15550001122",
		Items: []models.OrderItemInput{
			{ProductID: 1, Qty: 2},
			{ProductID: 2, Qty: 1},
		},
	}
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	t.Parallel()

	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	order, err := svc.Create(context.Background(), 7, deliveryRequest())
	require.NoError(t, err)

	assert.Equal(t, 600.0, order.ItemsTotal)
	assert.Equal(t, 150.0, order.DeliveryPrice)
	assert.Equal(t, 750.0, order.TotalPrice)
	assert.Equal(t, models.OrderStatusNew, order.Status)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Shawarma", order.Items[0].ProductName)
	assert.Equal(t, 500.0, order.Items[0].Total)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, order.ID, notifier.calls[0].OrderID)
}

func TestCreateOrderMergesDuplicateLines(t *testing.T) {
	t.Parallel()

	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakeNotifier{})

	req := deliveryRequest()
	req.Items = []models.OrderItemInput{
		{ProductID: 1, Qty: 1},
		{ProductID: 1, Qty: 2},
	}

	order, err := svc.Create(context.Background(), 7, req)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, int32(3), order.Items[0].Qty)
	assert.Equal(t, 750.0, order.Items[0].Total)
}

func TestCreateOrderIdempotentResubmit(t *testing.T) {
	t.Parallel()

	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	first, err := svc.Create(context.Background(), 7, deliveryRequest())
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), 7, deliveryRequest())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// The resubmit neither stores a second order nor renotifies.
	assert.Len(t, repo.existing, 1)
	assert.Len(t, notifier.calls, 1)
}

func TestCreateOrderPickupSkipsDeliveryFee(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	req := deliveryRequest()
	req.Type = "pickup"
	req.AddressID = 0

	order, err := svc.Create(context.Background(), 7, req)
	require.NoError(t, err)

	assert.Equal(t, 0.0, order.DeliveryPrice)
	assert.Equal(t, 600.0, order.TotalPrice)
}

func TestCreateOrderDeliveryRequiresAddress(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	req := deliveryRequest()
	req.AddressID = 0

	_, err := svc.Create(context.Background(), 7, req)
	assert.Error(t, err)
}

func TestCreateOrderRejectsForeignAddress(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	// Address 10 belongs to user 7, not user 8.
	_, err := svc.Create(context.Background(), 8, deliveryRequest())
	assert.ErrorIs(t, err, models.ErrAddressNotOwned)
}

func TestCreateOrderRejectsInactiveRegion(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	req := deliveryRequest()
	req.RegionID = 2

	_, err := svc.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, models.ErrRegionUnavailable)
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	req := deliveryRequest()
	req.Items = []models.OrderItemInput{{ProductID: 3, Qty: 1}}

	_, err := svc.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestCreateOrderRejectsUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	req := deliveryRequest()
	req.Items = []models.OrderItemInput{{ProductID: 99, Qty: 1}}

	_, err := svc.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	req := deliveryRequest()
	req.Items = nil

	_, err := svc.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, models.ErrEmptyOrder)
}

func TestCreateOrderRejectsMalformedRequestID(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeOrderRepo(), &fakeNotifier{})

	req := deliveryRequest()
	req.ClientRequestID = "not-a-uuid"

	_, err := svc.Create(context.Background(), 7, req)
	assert.Error(t, err)
}

func TestGetOrderDetailsScopedToOwner(t *testing.T) {
	t.Parallel()

	repo := newFakeOrderRepo()
	svc := newTestService(repo, &fakeNotifier{})

	order, err := svc.Create(context.Background(), 7, deliveryRequest())
	require.NoError(t, err)

	got, err := svc.GetOrderDetails(context.Background(), 7, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.GetOrderDetails(context.Background(), 8, order.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
