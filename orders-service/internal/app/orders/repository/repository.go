package repository

import (
	"context"
	"errors"

	"vibegadget/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrOrderNotFound = errors.New("order not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Order, error)
	GetAll(ctx context.Context) ([]entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.OrderWithItems, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	SetTrackingID(ctx context.Context, id uuid.UUID, trackingID string) error
}

type StatusHistoryRepository interface {
	Append(ctx context.Context, change *entity.OrderStatusChange) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderStatusChange, error)
}

type CartRepository interface {
	GetItems(ctx context.Context, ownerKey string) ([]entity.CartItem, error)
	GetItem(ctx context.Context, ownerKey string, productID uuid.UUID) (*entity.CartItem, error)
	SetItem(ctx context.Context, ownerKey string, item *entity.CartItem) error
	RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID) error
	Clear(ctx context.Context, ownerKey string) error
}
