package repository

import (
	"context"
	"errors"

	"vibegadget/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewOrderRepository создает новый репозиторий заказов
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create сохраняет заказ вместе с позициями в одной транзакции
func (r *orderRepository) Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID получает заказ по ID из PostgreSQL
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	result := r.db.WithContext(ctx).First(&order, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, result.Error
	}

	return &order, nil
}

// GetByUserID получает все заказы пользователя
func (r *orderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders)

	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}

// GetAll получает все заказы для административной панели
func (r *orderRepository) GetAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orders)

	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}

// GetWithItems получает заказ с полным списком позиций
func (r *orderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.OrderWithItems, error) {
	var order entity.Order
	result := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, result.Error
	}

	return &entity.OrderWithItems{
		Order: order,
		Items: order.Items,
	}, nil
}

// UpdateStatus обновляет статус заказа
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// SetTrackingID записывает номер накладной курьерской службы
func (r *orderRepository) SetTrackingID(ctx context.Context, id uuid.UUID, trackingID string) error {
	result := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("tracking_id", trackingID)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
