package service

import (
	"context"

	"vibegadget/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

type OrderServiceInterface interface {
	Checkout(ctx context.Context, userID uuid.UUID, ownerKey string, req *entity.CheckoutRequest) (*entity.OrderWithItems, error)
	GetOrder(ctx context.Context, orderID uuid.UUID, userID uuid.UUID, isAdmin bool) (*entity.OrderWithItems, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]entity.Order, error)
	GetAllOrders(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus entity.OrderStatus, changedBy string) (*entity.Order, error)
	SetTracking(ctx context.Context, orderID uuid.UUID, trackingID string) error
	GetTracking(ctx context.Context, orderID uuid.UUID, userID uuid.UUID, isAdmin bool) (*entity.TrackingResponse, error)
	GetStatusHistory(ctx context.Context, orderID uuid.UUID, userID uuid.UUID, isAdmin bool) ([]entity.OrderStatusChange, error)
}

type CartServiceInterface interface {
	AddItem(ctx context.Context, ownerKey string, productID uuid.UUID, quantity int) ([]entity.CartItem, error)
	UpdateItemQuantity(ctx context.Context, ownerKey string, productID uuid.UUID, delta int) ([]entity.CartItem, error)
	RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID) ([]entity.CartItem, error)
	GetItems(ctx context.Context, ownerKey string) ([]entity.CartItem, error)
	Clear(ctx context.Context, ownerKey string) error
}
