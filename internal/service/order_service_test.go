package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/utils"
)

type mockOrderStore struct {
	createFunc       func(ctx context.Context, o *models.Order, items []models.OrderItem) error
	updateStatusFunc func(ctx context.Context, id int, status, changedBy string) (*models.Order, error)
	createCalls      int
}

func (m *mockOrderStore) Create(ctx context.Context, o *models.Order, items []models.OrderItem) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, o, items)
	}
	return nil
}

func (m *mockOrderStore) UpdateStatus(ctx context.Context, id int, status, changedBy string) (*models.Order, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, changedBy)
	}
	return &models.Order{ID: id, Status: status}, nil
}

type mockCatalog struct {
	getByIDFunc func(ctx context.Context, id int) (*models.Product, error)
}

func (m *mockCatalog) GetByID(ctx context.Context, id int) (*models.Product, error) {
	return m.getByIDFunc(ctx, id)
}

type mockInvalidator struct {
	calls int
}

func (m *mockInvalidator) Invalidate(ctx context.Context) error {
	m.calls++
	return nil
}

func fixedCatalog(products map[int]*models.Product) *mockCatalog {
	return &mockCatalog{
		getByIDFunc: func(ctx context.Context, id int) (*models.Product, error) {
			p, ok := products[id]
			if !ok {
				return nil, utils.ErrNotFound
			}
			return p, nil
		},
	}
}

func validInput() *CreateOrderInput {
	return &CreateOrderInput{
		CustomerName:    "Asha Rao",
		CustomerPhone:   "9876543210",
		ShippingAddress: "12 Weaver Lane, Chennai",
		Items: []CreateOrderItemInput{
			{ProductID: 1, Quantity: 2},
		},
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	catalog := fixedCatalog(map[int]*models.Product{
		1: {ID: 1, Name: "Silk Saree", SKU: "SAR-001", Price: 100},
	})

	tests := []struct {
		name   string
		mutate func(in *CreateOrderInput)
	}{
		{
			name:   "empty items",
			mutate: func(in *CreateOrderInput) { in.Items = nil },
		},
		{
			name:   "missing customer name",
			mutate: func(in *CreateOrderInput) { in.CustomerName = "   " },
		},
		{
			name:   "missing phone",
			mutate: func(in *CreateOrderInput) { in.CustomerPhone = "" },
		},
		{
			name:   "missing shipping address",
			mutate: func(in *CreateOrderInput) { in.ShippingAddress = "" },
		},
		{
			name:   "zero quantity",
			mutate: func(in *CreateOrderInput) { in.Items[0].Quantity = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockOrderStore{}
			svc := NewOrderService(store, catalog, nil)

			in := validInput()
			tt.mutate(in)

			_, err := svc.CreateOrder(context.Background(), in)
			assert.ErrorIs(t, err, utils.ErrValidation)
			assert.Equal(t, 0, store.createCalls, "no write should happen on validation failure")
		})
	}
}

func TestCreateOrder_UnknownProductAnywhereWritesNothing(t *testing.T) {
	catalog := fixedCatalog(map[int]*models.Product{
		1: {ID: 1, Name: "Silk Saree", SKU: "SAR-001", Price: 100},
	})
	store := &mockOrderStore{}
	svc := NewOrderService(store, catalog, nil)

	in := validInput()
	in.Items = []CreateOrderItemInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 99, Quantity: 1},
	}

	_, err := svc.CreateOrder(context.Background(), in)
	assert.ErrorIs(t, err, utils.ErrValidation)
	assert.Equal(t, 0, store.createCalls)
}

func TestCreateOrder_ComputesTotalsAndSnapshots(t *testing.T) {
	discount := 80.0
	catalog := fixedCatalog(map[int]*models.Product{
		1: {ID: 1, Name: "Silk Saree", SKU: "SAR-001", Price: 100},
		2: {ID: 2, Name: "Cotton Saree", SKU: "SAR-002", Price: 120, DiscountPrice: &discount},
	})

	var stored *models.Order
	var storedItems []models.OrderItem
	store := &mockOrderStore{
		createFunc: func(ctx context.Context, o *models.Order, items []models.OrderItem) error {
			o.ID = 42
			stored = o
			storedItems = items
			return nil
		},
	}
	inv := &mockInvalidator{}
	svc := NewOrderService(store, catalog, inv)

	in := validInput()
	in.Items = []CreateOrderItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	order, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 42, order.ID)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, stored.PaymentStatus)
	assert.InDelta(t, 280.0, stored.TotalAmount, 0.001)

	require.Len(t, storedItems, 2)
	assert.Equal(t, "Silk Saree", storedItems[0].ProductName)
	assert.Equal(t, "SAR-001", storedItems[0].SKU)
	assert.InDelta(t, 200.0, storedItems[0].Total, 0.001)
	assert.InDelta(t, 80.0, storedItems[1].Price, 0.001, "discount price wins over list price")
	assert.Equal(t, 1, inv.calls, "order write invalidates the dashboard cache")
}

func TestCreateOrder_KnownCustomerReferenceReachesStore(t *testing.T) {
	catalog := fixedCatalog(map[int]*models.Product{
		1: {ID: 1, Name: "Silk Saree", SKU: "SAR-001", Price: 100},
	})
	var stored *models.Order
	store := &mockOrderStore{
		createFunc: func(ctx context.Context, o *models.Order, items []models.OrderItem) error {
			stored = o
			return nil
		},
	}
	svc := NewOrderService(store, catalog, nil)

	customerID := 7
	in := validInput()
	in.CustomerID = &customerID

	_, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, stored.CustomerID, "customer reference from the payload must reach the store")
	assert.Equal(t, 7, *stored.CustomerID)
}

func TestCreateOrder_StatusAndPaymentStatus(t *testing.T) {
	catalog := fixedCatalog(map[int]*models.Product{
		1: {ID: 1, Name: "Silk Saree", SKU: "SAR-001", Price: 100},
	})

	t.Run("caller-supplied values are honored", func(t *testing.T) {
		var stored *models.Order
		store := &mockOrderStore{
			createFunc: func(ctx context.Context, o *models.Order, items []models.OrderItem) error {
				stored = o
				return nil
			},
		}
		svc := NewOrderService(store, catalog, nil)

		in := validInput()
		in.Status = models.OrderStatusProcessing
		in.PaymentStatus = "Paid"

		_, err := svc.CreateOrder(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusProcessing, stored.Status)
		assert.Equal(t, "Paid", stored.PaymentStatus)
	})

	t.Run("absent values default to Pending and Unpaid", func(t *testing.T) {
		var stored *models.Order
		store := &mockOrderStore{
			createFunc: func(ctx context.Context, o *models.Order, items []models.OrderItem) error {
				stored = o
				return nil
			},
		}
		svc := NewOrderService(store, catalog, nil)

		_, err := svc.CreateOrder(context.Background(), validInput())
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, stored.Status)
		assert.Equal(t, models.PaymentStatusUnpaid, stored.PaymentStatus)
	})

	t.Run("unknown status is rejected before any write", func(t *testing.T) {
		store := &mockOrderStore{}
		svc := NewOrderService(store, catalog, nil)

		in := validInput()
		in.Status = "Refunded"

		_, err := svc.CreateOrder(context.Background(), in)
		assert.ErrorIs(t, err, utils.ErrInvalidStatus)
		assert.Equal(t, 0, store.createCalls)
	})
}

func TestCreateOrder_DoubleSubmitCreatesTwoOrders(t *testing.T) {
	// There is no idempotency key; an identical resubmission is a new order.
	catalog := fixedCatalog(map[int]*models.Product{
		1: {ID: 1, Name: "Silk Saree", SKU: "SAR-001", Price: 100},
	})
	store := &mockOrderStore{}
	svc := NewOrderService(store, catalog, nil)

	_, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 2, store.createCalls)
}

func TestCreateOrder_StoreErrorPropagates(t *testing.T) {
	catalog := fixedCatalog(map[int]*models.Product{
		1: {ID: 1, Name: "Silk Saree", SKU: "SAR-001", Price: 100},
	})
	dbErr := errors.New("connection reset")
	store := &mockOrderStore{
		createFunc: func(ctx context.Context, o *models.Order, items []models.OrderItem) error {
			return dbErr
		},
	}
	inv := &mockInvalidator{}
	svc := NewOrderService(store, catalog, inv)

	_, err := svc.CreateOrder(context.Background(), validInput())
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 0, inv.calls)
}

func TestUpdateStatus(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		called := false
		store := &mockOrderStore{
			updateStatusFunc: func(ctx context.Context, id int, status, changedBy string) (*models.Order, error) {
				called = true
				return nil, nil
			},
		}
		svc := NewOrderService(store, nil, nil)

		_, err := svc.UpdateStatus(context.Background(), 1, "Refunded", "Admin")
		assert.ErrorIs(t, err, utils.ErrInvalidStatus)
		assert.False(t, called)
	})

	t.Run("defaults actor to Admin", func(t *testing.T) {
		var gotBy string
		store := &mockOrderStore{
			updateStatusFunc: func(ctx context.Context, id int, status, changedBy string) (*models.Order, error) {
				gotBy = changedBy
				return &models.Order{ID: id, Status: status}, nil
			},
		}
		svc := NewOrderService(store, nil, nil)

		order, err := svc.UpdateStatus(context.Background(), 7, models.OrderStatusShipped, "")
		require.NoError(t, err)
		assert.Equal(t, "Admin", gotBy)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
	})

	t.Run("missing order propagates", func(t *testing.T) {
		store := &mockOrderStore{
			updateStatusFunc: func(ctx context.Context, id int, status, changedBy string) (*models.Order, error) {
				return nil, utils.ErrNotFound
			},
		}
		svc := NewOrderService(store, nil, nil)

		_, err := svc.UpdateStatus(context.Background(), 999, models.OrderStatusDelivered, "Admin")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("invalidates cache on success", func(t *testing.T) {
		inv := &mockInvalidator{}
		svc := NewOrderService(&mockOrderStore{}, nil, inv)

		_, err := svc.UpdateStatus(context.Background(), 1, models.OrderStatusProcessing, "Priya")
		require.NoError(t, err)
		assert.Equal(t, 1, inv.calls)
	})
}
