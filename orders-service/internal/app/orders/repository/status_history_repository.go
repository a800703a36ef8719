package repository

import (
	"context"

	"vibegadget/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type statusHistoryRepository struct {
	db *gorm.DB
}

// NewStatusHistoryRepository создает репозиторий журнала смены статусов
func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

// Append добавляет запись в журнал.
// Журнал append-only: записи не обновляются и не удаляются.
func (r *statusHistoryRepository) Append(ctx context.Context, change *entity.OrderStatusChange) error {
	result := r.db.WithContext(ctx).Create(change)
	return result.Error
}

// GetByOrderID получает историю смены статусов заказа в хронологическом порядке
func (r *statusHistoryRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderStatusChange, error) {
	var changes []entity.OrderStatusChange
	result := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&changes)

	if result.Error != nil {
		return nil, result.Error
	}

	return changes, nil
}
