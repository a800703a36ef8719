package mocks

import (
	"context"

	"vibegadget/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository мок для OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]entity.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *MockOrderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.OrderWithItems, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OrderWithItems), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) SetTrackingID(ctx context.Context, id uuid.UUID, trackingID string) error {
	args := m.Called(ctx, id, trackingID)
	return args.Error(0)
}

// MockStatusHistoryRepository мок для StatusHistoryRepository
type MockStatusHistoryRepository struct {
	mock.Mock
}

func (m *MockStatusHistoryRepository) Append(ctx context.Context, change *entity.OrderStatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderStatusChange, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OrderStatusChange), args.Error(1)
}

// MockCartRepository мок для CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetItems(ctx context.Context, ownerKey string) ([]entity.CartItem, error) {
	args := m.Called(ctx, ownerKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CartItem), args.Error(1)
}

func (m *MockCartRepository) GetItem(ctx context.Context, ownerKey string, productID uuid.UUID) (*entity.CartItem, error) {
	args := m.Called(ctx, ownerKey, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CartItem), args.Error(1)
}

func (m *MockCartRepository) SetItem(ctx context.Context, ownerKey string, item *entity.CartItem) error {
	args := m.Called(ctx, ownerKey, item)
	return args.Error(0)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID) error {
	args := m.Called(ctx, ownerKey, productID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, ownerKey string) error {
	args := m.Called(ctx, ownerKey)
	return args.Error(0)
}

// MockCatalogServiceClient мок для CatalogServiceClient
type MockCatalogServiceClient struct {
	mock.Mock
}

func (m *MockCatalogServiceClient) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

// MockMessagePublisher мок для MessagePublisher (Kafka)
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
