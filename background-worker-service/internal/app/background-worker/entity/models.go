package entity

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий из Kafka
const (
	EventTypeOrderCreated       = "ORDER_CREATED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeReviewCreated      = "REVIEW_CREATED"
)

// OrderEvent - событие заказа из топика order_events.
// Схема совпадает с producer-ом Orders Service. ORDER_CREATED несет
// данные получателя для курьерской накладной.
type OrderEvent struct {
	EventType       string      `json:"event_type"`
	OrderID         uuid.UUID   `json:"order_id"`
	UserID          uuid.UUID   `json:"user_id"`
	Total           int64       `json:"total"`
	Status          string      `json:"status"`
	FromStatus      string      `json:"from_status,omitempty"`
	RecipientName   string      `json:"recipient_name,omitempty"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Items           []EventItem `json:"items,omitempty"`
	Timestamp       time.Time   `json:"timestamp"`
}

// EventItem - позиция заказа внутри события
type EventItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

// ReviewEvent - событие отзыва из топика review_events.
// Схема совпадает с producer-ом Reviews Service.
type ReviewEvent struct {
	EventType string    `json:"event_type"`
	ReviewID  string    `json:"review_id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Назначения исходящих задач
const (
	DispatchCourier = "courier"
	DispatchChatBot = "chatbot"
)

// DispatchTask - задача исходящей отправки, попавшая в dead-letter
// очередь после исчерпания ретраев. Хранит все данные для повтора.
type DispatchTask struct {
	TaskType    string              `json:"task_type"` // courier или chatbot
	OrderID     uuid.UUID           `json:"order_id"`
	Consignment *ConsignmentRequest `json:"consignment,omitempty"`
	ChatID      string              `json:"chat_id,omitempty"`
	Text        string              `json:"text,omitempty"`
	Reason      string              `json:"reason"`
	Redrives    int                 `json:"redrives"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ConsignmentRequest - заявка на накладную в API курьерской службы.
// CODAmount - сумма к оплате при получении (наложенный платеж).
type ConsignmentRequest struct {
	OrderID         uuid.UUID         `json:"order_id"`
	RecipientName   string            `json:"recipient_name"`
	Phone           string            `json:"phone"`
	ShippingAddress string            `json:"shipping_address"`
	Items           []ConsignmentItem `json:"items"`
	CODAmount       int64             `json:"cod_amount"`
}

// ConsignmentItem - позиция в заявке курьерской службы
type ConsignmentItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Notification - документ уведомления в MongoDB Accounts Service.
// Worker создает уведомления покупателю о событиях заказа.
type Notification struct {
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Target    string    `bson:"target" json:"target"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// PlatformSettings - read-only срез настроек платформы из MongoDB.
// Worker читает только флаг курьерской интеграции и chat id бота.
type PlatformSettings struct {
	CourierEnabled bool   `bson:"courier_enabled"`
	ChatBotChatID  string `bson:"chat_bot_chat_id"`
}
