package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vibegadget/orders-service/internal/app/orders/entity"
	"vibegadget/orders-service/internal/app/orders/infrastructure"
	"vibegadget/orders-service/internal/app/orders/repository"
	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"

	"github.com/google/uuid"
)

// Политики проверки переходов статусов
const (
	TransitionPolicyStrict     = "strict"     // Только последовательное движение вперед плюс hold/cancel
	TransitionPolicyPermissive = "permissive" // Любой известный статус в любой другой
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrUnauthorized            = errors.New("unauthorized access to order")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// Actor при оформлении заказа: первая запись журнала создается системой
const checkoutActor = "checkout"

// OrderService обрабатывает бизнес-логику заказов.
// Координирует репозитории, корзину и Kafka.
type OrderService struct {
	orderRepo        repository.OrderRepository
	historyRepo      repository.StatusHistoryRepository
	cartService      *CartService
	kafkaProducer    infrastructure.MessagePublisher
	transitionPolicy string
}

// NewOrderService создает новый сервис заказов с внедрением зависимостей
func NewOrderService(
	orderRepo repository.OrderRepository,
	historyRepo repository.StatusHistoryRepository,
	cartService *CartService,
	kafkaProducer infrastructure.MessagePublisher,
	transitionPolicy string,
) *OrderService {
	if transitionPolicy != TransitionPolicyPermissive {
		transitionPolicy = TransitionPolicyStrict
	}

	return &OrderService{
		orderRepo:        orderRepo,
		historyRepo:      historyRepo,
		cartService:      cartService,
		kafkaProducer:    kafkaProducer,
		transitionPolicy: transitionPolicy,
	}
}

// Checkout оформляет заказ из серверной корзины владельца.
// 1. Читает корзину и считает суммы по зафиксированным ценам
// 2. Сохраняет заказ с позициями и первой записью журнала
// 3. Очищает корзину
// 4. Отправляет событие ORDER_CREATED в Kafka
// Заказ сразу получает статус processing: оплата подтверждается на клиенте
// до оформления, этап pending для оформленных заказов не используется.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, ownerKey string, req *entity.CheckoutRequest) (*entity.OrderWithItems, error) {
	cartItems, err := s.cartService.GetItems(ctx, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	order := &entity.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Subtotal:        Subtotal(cartItems),
		DeliveryFee:     DeliveryFee,
		Status:          entity.OrderStatusProcessing,
		PaymentMethod:   req.PaymentMethod,
		RecipientName:   req.RecipientName,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		TransactionID:   req.TransactionID,
		CreatedAt:       time.Now(),
	}
	order.Total = order.Subtotal + order.DeliveryFee

	orderItems := make([]entity.OrderItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		orderItems = append(orderItems, entity.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: cartItem.ProductID,
			Name:      cartItem.Name,
			Image:     cartItem.Image,
			UnitPrice: cartItem.UnitPrice,
			Quantity:  cartItem.Quantity,
		})
	}

	if err := s.orderRepo.Create(ctx, order, orderItems); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.historyRepo.Append(ctx, &entity.OrderStatusChange{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ToStatus:  order.Status,
		ChangedBy: checkoutActor,
		CreatedAt: time.Now(),
	}); err != nil {
		// Заказ уже сохранен, отсутствие первой записи журнала не критично
		logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("failed to append status history")
	}

	if err := s.cartService.Clear(ctx, ownerKey); err != nil {
		logger.Warn().Err(err).Str("owner", ownerKey).Msg("failed to clear cart after checkout")
	}

	event := entity.OrderEvent{
		EventType:       "ORDER_CREATED",
		OrderID:         order.ID,
		UserID:          order.UserID,
		Total:           order.Total,
		Status:          order.Status,
		RecipientName:   order.RecipientName,
		ShippingAddress: order.ShippingAddress,
		Phone:           order.Phone,
		Items:           toEventItems(orderItems),
		Timestamp:       time.Now(),
	}
	if err := s.publishOrderEvent(ctx, event); err != nil {
		// Заказ уже создан, проблемы с Kafka не критичны
		logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to publish order created event")
	}

	metrics.OrdersCreated.WithLabelValues(order.PaymentMethod).Inc()
	metrics.OrdersTotalAmount.Add(float64(order.Total))

	return &entity.OrderWithItems{
		Order: *order,
		Items: orderItems,
	}, nil
}

// GetOrder получает заказ по ID с проверкой доступа.
// Администратор видит любой заказ, пользователь - только свой.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID, userID uuid.UUID, isAdmin bool) (*entity.OrderWithItems, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !isAdmin && order.UserID != userID {
		return nil, ErrUnauthorized
	}

	return order, nil
}

// GetUserOrders получает все заказы пользователя
func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}

	return orders, nil
}

// GetAllOrders получает все заказы для административной панели
func (s *OrderService) GetAllOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus меняет статус заказа (только администратор).
// Переход проверяется по настроенной политике, каждая смена
// добавляет запись в журнал и отправляет ORDER_STATUS_CHANGED.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus entity.OrderStatus, changedBy string) (*entity.Order, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatusTransition
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !s.isTransitionAllowed(order.Status, newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	fromStatus := order.Status

	if err := s.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = newStatus

	if err := s.historyRepo.Append(ctx, &entity.OrderStatusChange{
		ID:         uuid.New(),
		OrderID:    orderID,
		FromStatus: fromStatus,
		ToStatus:   newStatus,
		ChangedBy:  changedBy,
		CreatedAt:  time.Now(),
	}); err != nil {
		logger.Warn().Err(err).Str("order_id", orderID.String()).Msg("failed to append status history")
	}

	event := entity.OrderEvent{
		EventType:  "ORDER_STATUS_CHANGED",
		OrderID:    order.ID,
		UserID:     order.UserID,
		Total:      order.Total,
		Status:     newStatus,
		FromStatus: fromStatus,
		Timestamp:  time.Now(),
	}
	if err := s.publishOrderEvent(ctx, event); err != nil {
		logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to publish status changed event")
	}

	metrics.OrderStatusChanges.WithLabelValues(string(newStatus)).Inc()

	return order, nil
}

// SetTracking записывает номер накладной курьерской службы (только администратор)
func (s *OrderService) SetTracking(ctx context.Context, orderID uuid.UUID, trackingID string) error {
	if err := s.orderRepo.SetTrackingID(ctx, orderID, trackingID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to set tracking id: %w", err)
	}

	return nil
}

// GetTracking возвращает проекцию контрольных точек доставки.
// Проекция - чистая функция от статуса, нигде не хранится.
func (s *OrderService) GetTracking(ctx context.Context, orderID uuid.UUID, userID uuid.UUID, isAdmin bool) (*entity.TrackingResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !isAdmin && order.UserID != userID {
		return nil, ErrUnauthorized
	}

	return &entity.TrackingResponse{
		OrderID:    order.ID,
		Status:     order.Status,
		TrackingID: order.TrackingID,
		Milestones: order.Status.Milestones(),
	}, nil
}

// GetStatusHistory возвращает журнал смены статусов заказа
func (s *OrderService) GetStatusHistory(ctx context.Context, orderID uuid.UUID, userID uuid.UUID, isAdmin bool) ([]entity.OrderStatusChange, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !isAdmin && order.UserID != userID {
		return nil, ErrUnauthorized
	}

	history, err := s.historyRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}

	return history, nil
}

// publishOrderEvent отправляет событие о заказе в Kafka
func (s *OrderService) publishOrderEvent(ctx context.Context, event entity.OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	// Ключ = OrderID, чтобы события одного заказа попадали в одну партицию
	if err := s.kafkaProducer.PublishMessage(ctx, event.OrderID.String(), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}

// isTransitionAllowed проверяет допустимость перехода по настроенной политике
func (s *OrderService) isTransitionAllowed(from, to entity.OrderStatus) bool {
	if from == to {
		return false
	}

	if s.transitionPolicy == TransitionPolicyPermissive {
		return true
	}

	return isStrictTransition(from, to)
}

// isStrictTransition реализует строгую политику: последовательное движение
// вперед плюс hold и cancel из любого нефинального состояния.
func isStrictTransition(from, to entity.OrderStatus) bool {
	validTransitions := map[entity.OrderStatus][]entity.OrderStatus{
		entity.OrderStatusPending: {
			entity.OrderStatusProcessing,
			entity.OrderStatusHold,
			entity.OrderStatusCancelled,
		},
		entity.OrderStatusProcessing: {
			entity.OrderStatusPackaging,
			entity.OrderStatusHold,
			entity.OrderStatusCancelled,
		},
		entity.OrderStatusPackaging: {
			entity.OrderStatusShipped,
			entity.OrderStatusHold,
			entity.OrderStatusCancelled,
		},
		entity.OrderStatusShipped: {
			entity.OrderStatusOnTheWay,
			entity.OrderStatusHold,
			entity.OrderStatusCancelled,
		},
		entity.OrderStatusOnTheWay: {
			entity.OrderStatusDelivered,
			entity.OrderStatusHold,
			entity.OrderStatusCancelled,
		},
		// Из hold можно вернуться на любой этап обработки или отменить
		entity.OrderStatusHold: {
			entity.OrderStatusProcessing,
			entity.OrderStatusPackaging,
			entity.OrderStatusShipped,
			entity.OrderStatusOnTheWay,
			entity.OrderStatusCancelled,
		},
		entity.OrderStatusDelivered: {}, // Финальный статус
		entity.OrderStatusCancelled: {}, // Финальный статус
	}

	allowed, exists := validTransitions[from]
	if !exists {
		return false
	}

	for _, status := range allowed {
		if status == to {
			return true
		}
	}

	return false
}

func toEventItems(items []entity.OrderItem) []entity.EventItem {
	eventItems := make([]entity.EventItem, len(items))
	for i, item := range items {
		eventItems[i] = entity.EventItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return eventItems
}
