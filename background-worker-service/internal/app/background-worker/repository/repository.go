package repository

import (
	"context"
	"errors"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrQueueEmpty      = errors.New("dead letter queue is empty")
)

// OrderRepository - запись в PostgreSQL Orders Service
type OrderRepository interface {
	// SetTrackingID записывает номер накладной курьерской службы в заказ
	SetTrackingID(ctx context.Context, orderID uuid.UUID, trackingID string) error
}

// ProductRepository - запись в PostgreSQL Catalog Service.
// Агрегаты рейтинга и остатки меняются только worker-ом, одним
// атомарным UPDATE без чтения-модификации на клиенте.
type ProductRepository interface {
	// ApplyReviewRating инкрементально пересчитывает средний рейтинг товара
	ApplyReviewRating(ctx context.Context, productID uuid.UUID, rating int) error

	// DecrementStock уменьшает остаток товара, не опускаясь ниже нуля
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error
}

// DeadLetterRepository - dead-letter очередь исходящих задач в Redis
type DeadLetterRepository interface {
	// Push кладет задачу в хвост очереди
	Push(ctx context.Context, task *entity.DispatchTask) error

	// Pop забирает задачу из головы очереди, ErrQueueEmpty если пусто
	Pop(ctx context.Context) (*entity.DispatchTask, error)

	// Size возвращает текущую длину очереди
	Size(ctx context.Context) (int64, error)
}

// NotificationRepository - запись уведомлений в MongoDB Accounts Service
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
}

// SettingsRepository - чтение настроек платформы из MongoDB
type SettingsRepository interface {
	// Get возвращает настройки платформы; нулевые значения если админ их не сохранял
	Get(ctx context.Context) (*entity.PlatformSettings, error)
}
