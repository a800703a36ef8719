package entity

import "github.com/google/uuid"

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,gt=0"` // По умолчанию 1
}

type UpdateCartItemRequest struct {
	Delta int `json:"delta" validate:"required"` // +1 / -1, итог не опускается ниже 1
}

type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=cash card"`
	RecipientName   string `json:"recipient_name" validate:"required"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	TransactionID   string `json:"transaction_id" validate:"omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing packaging shipped on_the_way delivered hold cancelled"`
}

type UpdateTrackingRequest struct {
	TrackingID string `json:"tracking_id" validate:"required"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type CartResponse struct {
	Items       []CartItem `json:"items"`
	Subtotal    int64      `json:"subtotal"`
	DeliveryFee int64      `json:"delivery_fee"`
	Total       int64      `json:"total"`
}

type OrderResponse struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	Subtotal        int64          `json:"subtotal"`
	DeliveryFee     int64          `json:"delivery_fee"`
	Total           int64          `json:"total"`
	Status          OrderStatus    `json:"status"`
	PaymentMethod   string         `json:"payment_method"`
	RecipientName   string         `json:"recipient_name"`
	ShippingAddress string         `json:"shipping_address"`
	Phone           string         `json:"phone"`
	TrackingID      string         `json:"tracking_id,omitempty"`
	CreatedAt       string         `json:"created_at"`
	Items           []ItemResponse `json:"items"`
}

type ItemResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Image      string    `json:"image,omitempty"`
	Quantity   int       `json:"quantity"`
	UnitPrice  int64     `json:"unit_price"`
	TotalPrice int64     `json:"total_price"`
}

type TrackingResponse struct {
	OrderID    uuid.UUID          `json:"order_id"`
	Status     OrderStatus        `json:"status"`
	TrackingID string             `json:"tracking_id,omitempty"`
	Milestones TrackingMilestones `json:"milestones"`
}

type StatusHistoryResponse struct {
	OrderID uuid.UUID           `json:"order_id"`
	History []OrderStatusChange `json:"history"`
}
