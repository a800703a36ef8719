package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vibegadget/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 30 * 24 * time.Hour // Брошенные корзины истекают через месяц
)

// cartRepository хранит корзины в Redis.
// Ключ cart:<owner> - hash, где поле = product_id, значение = JSON позиции.
// Owner - это ID пользователя либо ID устройства для гостей.
type cartRepository struct {
	client *redis.Client
}

// NewCartRepository создает Redis-репозиторий корзин
func NewCartRepository(client *redis.Client) CartRepository {
	return &cartRepository{client: client}
}

func cartKey(ownerKey string) string {
	return cartKeyPrefix + ownerKey
}

// GetItems получает все позиции корзины
func (r *cartRepository) GetItems(ctx context.Context, ownerKey string) ([]entity.CartItem, error) {
	fields, err := r.client.HGetAll(ctx, cartKey(ownerKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	items := make([]entity.CartItem, 0, len(fields))
	for _, raw := range fields {
		var item entity.CartItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cart item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// GetItem получает одну позицию корзины по ID товара
func (r *cartRepository) GetItem(ctx context.Context, ownerKey string, productID uuid.UUID) (*entity.CartItem, error) {
	raw, err := r.client.HGet(ctx, cartKey(ownerKey), productID.String()).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	var item entity.CartItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart item: %w", err)
	}

	return &item, nil
}

// SetItem сохраняет позицию корзины и продлевает TTL ключа
func (r *cartRepository) SetItem(ctx context.Context, ownerKey string, item *entity.CartItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal cart item: %w", err)
	}

	key := cartKey(ownerKey)
	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, item.ProductID.String(), data)
	pipe.Expire(ctx, key, cartTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set cart item: %w", err)
	}

	return nil
}

// RemoveItem удаляет позицию корзины
func (r *cartRepository) RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID) error {
	removed, err := r.client.HDel(ctx, cartKey(ownerKey), productID.String()).Result()
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if removed == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// Clear удаляет корзину целиком (после оформления заказа)
func (r *cartRepository) Clear(ctx context.Context, ownerKey string) error {
	if err := r.client.Del(ctx, cartKey(ownerKey)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
