package service

import (
	"context"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
)

// CourierClientInterface - HTTP клиент курьерской службы
type CourierClientInterface interface {
	// CreateConsignment создает накладную и возвращает трек-номер
	CreateConsignment(ctx context.Context, consignment *entity.ConsignmentRequest) (string, error)
}

// ChatBotClientInterface - HTTP клиент чат-бота магазина
type ChatBotClientInterface interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// DispatchServiceInterface - исходящие вызовы с ретраями и dead-letter очередью
type DispatchServiceInterface interface {
	// DispatchConsignment создает накладную и записывает трек-номер в заказ
	DispatchConsignment(ctx context.Context, orderID uuid.UUID, consignment *entity.ConsignmentRequest) error

	// DispatchChatMessage отправляет сообщение в чат-бот
	DispatchChatMessage(ctx context.Context, orderID uuid.UUID, chatID, text string) error

	// RedriveDeadLetters повторно обрабатывает накопленные dead-letter задачи
	RedriveDeadLetters(ctx context.Context) error
}

// OrderEventServiceInterface обрабатывает события заказов из Kafka
type OrderEventServiceInterface interface {
	ProcessOrderEvent(ctx context.Context, event *entity.OrderEvent) error
}

// RatingServiceInterface обрабатывает события отзывов из Kafka
type RatingServiceInterface interface {
	ProcessReviewEvent(ctx context.Context, event *entity.ReviewEvent) error
}
