package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository создает репозиторий заказов поверх БД Orders Service
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// SetTrackingID записывает номер накладной курьерской службы в заказ
func (r *orderRepository) SetTrackingID(ctx context.Context, orderID uuid.UUID, trackingID string) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE orders SET tracking_id = ? WHERE id = ?`,
		trackingID, orderID,
	)
	if result.Error != nil {
		return fmt.Errorf("failed to set tracking id: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
