package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"
	"vibegadget/background-worker-service/internal/app/background-worker/repository"
	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"

	"github.com/google/uuid"
)

// OrderEventService обрабатывает события заказов из Kafka:
// списание остатков, курьерская накладная, сообщение в чат-бот
// и уведомление покупателю.
type OrderEventService struct {
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
	settingsRepo     repository.SettingsRepository
	dispatchSvc      DispatchServiceInterface
}

// NewOrderEventService создает новый сервис обработки событий заказов
func NewOrderEventService(
	productRepo repository.ProductRepository,
	notificationRepo repository.NotificationRepository,
	settingsRepo repository.SettingsRepository,
	dispatchSvc DispatchServiceInterface,
) *OrderEventService {
	return &OrderEventService{
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		settingsRepo:     settingsRepo,
		dispatchSvc:      dispatchSvc,
	}
}

// ProcessOrderEvent обрабатывает событие заказа из Kafka
func (s *OrderEventService) ProcessOrderEvent(ctx context.Context, event *entity.OrderEvent) error {
	switch event.EventType {
	case entity.EventTypeOrderCreated:
		if err := s.processOrderCreated(ctx, event); err != nil {
			metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "failed").Inc()
			return err
		}
	case entity.EventTypeOrderStatusChanged:
		if err := s.processStatusChanged(ctx, event); err != nil {
			metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "failed").Inc()
			return err
		}
	default:
		logger.Warn().
			Str("event_type", event.EventType).
			Str("order_id", event.OrderID.String()).
			Msg("Unknown order event type, skipping")
		return nil
	}

	metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "success").Inc()
	return nil
}

// processOrderCreated списывает остатки, создает курьерскую накладную
// (если интеграция включена), шлет сводку в чат-бот и уведомление
// покупателю. Сбои исходящих вызовов не фатальны: они уходят в
// dead-letter и не блокируют commit offset-а.
func (s *OrderEventService) processOrderCreated(ctx context.Context, event *entity.OrderEvent) error {
	logger.Info().
		Str("order_id", event.OrderID.String()).
		Int("items", len(event.Items)).
		Msg("Processing ORDER_CREATED event")

	for _, item := range event.Items {
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				logger.Warn().
					Str("order_id", event.OrderID.String()).
					Str("product_id", item.ProductID.String()).
					Msg("Stock decrement for unknown product, skipping item")
				continue
			}
			return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Str("order_id", event.OrderID.String()).
			Msg("Failed to read platform settings, skipping integrations")
		settings = &entity.PlatformSettings{}
	}

	if settings.CourierEnabled {
		consignment := buildConsignment(event)
		if err := s.dispatchSvc.DispatchConsignment(ctx, event.OrderID, consignment); err != nil {
			logger.Error().
				Err(err).
				Str("order_id", event.OrderID.String()).
				Msg("Courier dispatch failed")
		}
	}

	if settings.ChatBotChatID != "" {
		text := buildOrderSummary(event)
		if err := s.dispatchSvc.DispatchChatMessage(ctx, event.OrderID, settings.ChatBotChatID, text); err != nil {
			logger.Error().
				Err(err).
				Str("order_id", event.OrderID.String()).
				Msg("Chat bot dispatch failed")
		}
	}

	s.notifyBuyer(ctx, event.UserID, "Order received",
		fmt.Sprintf("Your order %s has been received and is being processed", event.OrderID))

	return nil
}

// processStatusChanged создает уведомление покупателю о смене статуса
func (s *OrderEventService) processStatusChanged(ctx context.Context, event *entity.OrderEvent) error {
	logger.Info().
		Str("order_id", event.OrderID.String()).
		Str("from_status", event.FromStatus).
		Str("status", event.Status).
		Msg("Processing ORDER_STATUS_CHANGED event")

	// Гостевые заказы не имеют адресата уведомлений
	if event.UserID == uuid.Nil {
		return nil
	}

	notification := &entity.Notification{
		Title:   "Order status updated",
		Message: fmt.Sprintf("Your order %s is now %s", event.OrderID, event.Status),
		Target:  event.UserID.String(),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create status notification: %w", err)
	}

	return nil
}

// notifyBuyer создает уведомление покупателю; сбой не фатален
func (s *OrderEventService) notifyBuyer(ctx context.Context, userID uuid.UUID, title, message string) {
	if userID == uuid.Nil {
		return
	}

	notification := &entity.Notification{
		Title:   title,
		Message: message,
		Target:  userID.String(),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error().
			Err(err).
			Str("target", userID.String()).
			Msg("Failed to create buyer notification")
	}
}

// buildConsignment собирает заявку курьерской службы из события:
// получатель, телефон, адрес и сумма наложенного платежа.
func buildConsignment(event *entity.OrderEvent) *entity.ConsignmentRequest {
	items := make([]entity.ConsignmentItem, 0, len(event.Items))
	for _, item := range event.Items {
		items = append(items, entity.ConsignmentItem{
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	return &entity.ConsignmentRequest{
		OrderID:         event.OrderID,
		RecipientName:   event.RecipientName,
		Phone:           event.Phone,
		ShippingAddress: event.ShippingAddress,
		Items:           items,
		CODAmount:       event.Total,
	}
}

// buildOrderSummary собирает текст сводки заказа для чат-бота
func buildOrderSummary(event *entity.OrderEvent) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "New order %s\n", event.OrderID)
	for _, item := range event.Items {
		fmt.Fprintf(&sb, "- %s x%d\n", item.Name, item.Quantity)
	}
	fmt.Fprintf(&sb, "Total: %d", event.Total)

	return sb.String()
}
