package service

import (
	"context"
	"errors"
	"fmt"

	"vibegadget/orders-service/internal/app/orders/entity"
	"vibegadget/orders-service/internal/app/orders/infrastructure"
	infrahttp "vibegadget/orders-service/internal/app/orders/infrastructure/http"
	"vibegadget/orders-service/internal/app/orders/repository"
	"vibegadget/pkg/metrics"

	"github.com/google/uuid"
)

// DeliveryFee фиксированная стоимость доставки, добавляется к каждому заказу
const DeliveryFee int64 = 150

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrProductNotFound  = errors.New("product not found in catalog")
)

// CartService обрабатывает бизнес-логику корзины.
// Корзина хранится на сервере в Redis, владелец - пользователь или устройство.
type CartService struct {
	cartRepo      repository.CartRepository
	catalogClient infrastructure.CatalogServiceClient
}

// NewCartService создает новый сервис корзины
func NewCartService(
	cartRepo repository.CartRepository,
	catalogClient infrastructure.CatalogServiceClient,
) *CartService {
	return &CartService{
		cartRepo:      cartRepo,
		catalogClient: catalogClient,
	}
}

// AddItem добавляет товар в корзину.
// Если товар уже в корзине, количества складываются.
// Карточка товара фиксируется на момент добавления.
func (s *CartService) AddItem(ctx context.Context, ownerKey string, productID uuid.UUID, quantity int) ([]entity.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	existing, err := s.cartRepo.GetItem(ctx, ownerKey, productID)
	if err != nil && !errors.Is(err, repository.ErrCartItemNotFound) {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	var item *entity.CartItem
	if existing != nil {
		existing.Quantity += quantity
		item = existing
	} else {
		product, err := s.catalogClient.GetProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, infrahttp.ErrProductNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to get product from catalog: %w", err)
		}

		item = &entity.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			UnitPrice: product.Price,
			Quantity:  quantity,
		}
	}

	if err := s.cartRepo.SetItem(ctx, ownerKey, item); err != nil {
		return nil, fmt.Errorf("failed to save cart item: %w", err)
	}

	metrics.CartOperations.WithLabelValues("add").Inc()

	return s.GetItems(ctx, ownerKey)
}

// UpdateItemQuantity изменяет количество позиции на delta.
// Количество не опускается ниже 1: удаление - отдельная операция.
func (s *CartService) UpdateItemQuantity(ctx context.Context, ownerKey string, productID uuid.UUID, delta int) ([]entity.CartItem, error) {
	item, err := s.cartRepo.GetItem(ctx, ownerKey, productID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	item.Quantity += delta
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	if err := s.cartRepo.SetItem(ctx, ownerKey, item); err != nil {
		return nil, fmt.Errorf("failed to save cart item: %w", err)
	}

	metrics.CartOperations.WithLabelValues("update").Inc()

	return s.GetItems(ctx, ownerKey)
}

// RemoveItem удаляет позицию из корзины
func (s *CartService) RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID) ([]entity.CartItem, error) {
	if err := s.cartRepo.RemoveItem(ctx, ownerKey, productID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	metrics.CartOperations.WithLabelValues("remove").Inc()

	return s.GetItems(ctx, ownerKey)
}

// GetItems получает все позиции корзины
func (s *CartService) GetItems(ctx context.Context, ownerKey string) ([]entity.CartItem, error) {
	items, err := s.cartRepo.GetItems(ctx, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return items, nil
}

// Clear очищает корзину целиком
func (s *CartService) Clear(ctx context.Context, ownerKey string) error {
	if err := s.cartRepo.Clear(ctx, ownerKey); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	metrics.CartOperations.WithLabelValues("clear").Inc()

	return nil
}

// Subtotal считает сумму позиций без доставки
func Subtotal(items []entity.CartItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.UnitPrice * int64(item.Quantity)
	}
	return sum
}

// Total считает итоговую сумму заказа: позиции плюс доставка
func Total(items []entity.CartItem) int64 {
	return Subtotal(items) + DeliveryFee
}
