package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"vibegadget/orders-service/internal/app/orders/entity"
	"vibegadget/orders-service/internal/app/orders/repository"
	"vibegadget/orders-service/internal/app/orders/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderServiceFixture struct {
	orderRepo     *mocks.MockOrderRepository
	historyRepo   *mocks.MockStatusHistoryRepository
	cartRepo      *mocks.MockCartRepository
	catalogClient *mocks.MockCatalogServiceClient
	kafkaProducer *mocks.MockMessagePublisher
	service       *OrderService
}

func newOrderServiceFixture(policy string) *orderServiceFixture {
	f := &orderServiceFixture{
		orderRepo:     new(mocks.MockOrderRepository),
		historyRepo:   new(mocks.MockStatusHistoryRepository),
		cartRepo:      new(mocks.MockCartRepository),
		catalogClient: new(mocks.MockCatalogServiceClient),
		kafkaProducer: &mocks.MockMessagePublisher{Messages: make([][]byte, 0)},
	}

	cartService := NewCartService(f.cartRepo, f.catalogClient)
	f.service = NewOrderService(f.orderRepo, f.historyRepo, cartService, f.kafkaProducer, policy)
	return f
}

// ===================== Checkout Tests =====================

func TestCheckout_Success(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	userID := uuid.New()
	ownerKey := userID.String()

	cartItems := []entity.CartItem{
		{ProductID: uuid.New(), Name: "Vibe Phone X", UnitPrice: 1000, Quantity: 2},
		{ProductID: uuid.New(), Name: "Vibe Buds", UnitPrice: 200, Quantity: 1},
	}

	f.cartRepo.On("GetItems", ctx, ownerKey).Return(cartItems, nil)
	f.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order"), mock.AnythingOfType("[]entity.OrderItem")).Return(nil)
	f.historyRepo.On("Append", ctx, mock.AnythingOfType("*entity.OrderStatusChange")).Return(nil)
	f.cartRepo.On("Clear", ctx, ownerKey).Return(nil)
	f.kafkaProducer.On("PublishMessage", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	req := &entity.CheckoutRequest{
		PaymentMethod:   "cash",
		RecipientName:   "Aibek Toleu",
		ShippingAddress: "Tastaq 12, apt 7",
		Phone:           "+77010000000",
	}

	// Act
	result, err := f.service.Checkout(ctx, userID, ownerKey, req)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, userID, result.UserID)
	// Subtotal = 1000*2 + 200 = 2200, Total = 2200 + 150
	assert.Equal(t, int64(2200), result.Subtotal)
	assert.Equal(t, DeliveryFee, result.DeliveryFee)
	assert.Equal(t, int64(2350), result.Total)
	// Оформленный заказ сразу в обработке, этап pending пропускается
	assert.Equal(t, entity.OrderStatusProcessing, result.Status)
	assert.Len(t, result.Items, 2)

	f.orderRepo.AssertExpectations(t)
	f.historyRepo.AssertExpectations(t)
	f.cartRepo.AssertExpectations(t)
}

func TestCheckout_FirstHistoryRowIsCheckout(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	userID := uuid.New()
	ownerKey := userID.String()

	cartItems := []entity.CartItem{
		{ProductID: uuid.New(), Name: "Vibe Watch", UnitPrice: 500, Quantity: 1},
	}

	var appended *entity.OrderStatusChange
	f.cartRepo.On("GetItems", ctx, ownerKey).Return(cartItems, nil)
	f.orderRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
	f.historyRepo.On("Append", ctx, mock.Anything).Run(func(args mock.Arguments) {
		appended = args.Get(1).(*entity.OrderStatusChange)
	}).Return(nil)
	f.cartRepo.On("Clear", ctx, ownerKey).Return(nil)
	f.kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	req := &entity.CheckoutRequest{PaymentMethod: "card", ShippingAddress: "addr", Phone: "+7"}

	// Act
	result, err := f.service.Checkout(ctx, userID, ownerKey, req)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, appended)
	assert.Equal(t, result.ID, appended.OrderID)
	assert.Equal(t, entity.OrderStatus(""), appended.FromStatus)
	assert.Equal(t, entity.OrderStatusProcessing, appended.ToStatus)
	assert.Equal(t, "checkout", appended.ChangedBy)
}

func TestCheckout_GuestOrder(t *testing.T) {
	// Гостевой заказ: user_id = uuid.Nil, владелец корзины - устройство
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	ownerKey := "device:abc-123"

	cartItems := []entity.CartItem{
		{ProductID: uuid.New(), Name: "Vibe Case", UnitPrice: 300, Quantity: 1},
	}

	f.cartRepo.On("GetItems", ctx, ownerKey).Return(cartItems, nil)
	f.orderRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
	f.historyRepo.On("Append", ctx, mock.Anything).Return(nil)
	f.cartRepo.On("Clear", ctx, ownerKey).Return(nil)
	f.kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	req := &entity.CheckoutRequest{PaymentMethod: "cash", ShippingAddress: "addr", Phone: "+7"}

	// Act
	result, err := f.service.Checkout(ctx, uuid.Nil, ownerKey, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, result.UserID)
}

func TestCheckout_EmptyCart(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	userID := uuid.New()
	ownerKey := userID.String()

	f.cartRepo.On("GetItems", ctx, ownerKey).Return([]entity.CartItem{}, nil)

	req := &entity.CheckoutRequest{PaymentMethod: "cash", ShippingAddress: "addr", Phone: "+7"}

	// Act
	result, err := f.service.Checkout(ctx, userID, ownerKey, req)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCartEmpty)
	f.orderRepo.AssertNotCalled(t, "Create")
}

func TestCheckout_OrderRepoError(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	userID := uuid.New()
	ownerKey := userID.String()

	cartItems := []entity.CartItem{
		{ProductID: uuid.New(), Name: "Vibe Pad", UnitPrice: 900, Quantity: 1},
	}

	f.cartRepo.On("GetItems", ctx, ownerKey).Return(cartItems, nil)
	f.orderRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(errors.New("db error"))

	req := &entity.CheckoutRequest{PaymentMethod: "cash", ShippingAddress: "addr", Phone: "+7"}

	// Act
	result, err := f.service.Checkout(ctx, userID, ownerKey, req)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to create order")
	// Корзина не очищается, если заказ не сохранился
	f.cartRepo.AssertNotCalled(t, "Clear")
}

func TestCheckout_KafkaErrorIgnored(t *testing.T) {
	// Ошибка Kafka не должна прерывать оформление заказа
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	userID := uuid.New()
	ownerKey := userID.String()

	cartItems := []entity.CartItem{
		{ProductID: uuid.New(), Name: "Vibe Band", UnitPrice: 450, Quantity: 1},
	}

	f.cartRepo.On("GetItems", ctx, ownerKey).Return(cartItems, nil)
	f.orderRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
	f.historyRepo.On("Append", ctx, mock.Anything).Return(nil)
	f.cartRepo.On("Clear", ctx, ownerKey).Return(nil)
	f.kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(errors.New("kafka error"))

	req := &entity.CheckoutRequest{PaymentMethod: "cash", ShippingAddress: "addr", Phone: "+7"}

	// Act
	result, err := f.service.Checkout(ctx, userID, ownerKey, req)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestCheckout_PublishesOrderCreatedEvent(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	userID := uuid.New()
	ownerKey := userID.String()
	productID := uuid.New()

	cartItems := []entity.CartItem{
		{ProductID: productID, Name: "Vibe Phone X", UnitPrice: 1000, Quantity: 2},
	}

	f.cartRepo.On("GetItems", ctx, ownerKey).Return(cartItems, nil)
	f.orderRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
	f.historyRepo.On("Append", ctx, mock.Anything).Return(nil)
	f.cartRepo.On("Clear", ctx, ownerKey).Return(nil)
	f.kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	req := &entity.CheckoutRequest{
		PaymentMethod:   "card",
		RecipientName:   "Aibek Toleu",
		ShippingAddress: "Tastaq 12, apt 7",
		Phone:           "+77010000000",
	}

	// Act
	_, err := f.service.Checkout(ctx, userID, ownerKey, req)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, f.kafkaProducer.Messages, 1)

	var event entity.OrderEvent
	assert.NoError(t, json.Unmarshal(f.kafkaProducer.Messages[0], &event))
	assert.Equal(t, "ORDER_CREATED", event.EventType)
	assert.Equal(t, int64(2150), event.Total)
	assert.Len(t, event.Items, 1)
	assert.Equal(t, productID, event.Items[0].ProductID)
	assert.Equal(t, 2, event.Items[0].Quantity)
	// Данные получателя нужны worker-у для курьерской накладной
	assert.Equal(t, "Aibek Toleu", event.RecipientName)
	assert.Equal(t, "Tastaq 12, apt 7", event.ShippingAddress)
	assert.Equal(t, "+77010000000", event.Phone)
}

// ===================== GetOrder Tests =====================

func TestGetOrder_OwnOrder(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	order := &entity.OrderWithItems{
		Order: entity.Order{ID: orderID, UserID: userID, Total: 2350},
	}

	f.orderRepo.On("GetWithItems", ctx, orderID).Return(order, nil)

	// Act
	result, err := f.service.GetOrder(ctx, orderID, userID, false)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, orderID, result.ID)
}

func TestGetOrder_ForeignOrderDenied(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()

	order := &entity.OrderWithItems{
		Order: entity.Order{ID: orderID, UserID: ownerID},
	}

	f.orderRepo.On("GetWithItems", ctx, orderID).Return(order, nil)

	// Act
	result, err := f.service.GetOrder(ctx, orderID, uuid.New(), false)

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetOrder_AdminSeesAny(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.OrderWithItems{
		Order: entity.Order{ID: orderID, UserID: uuid.New()},
	}

	f.orderRepo.On("GetWithItems", ctx, orderID).Return(order, nil)

	// Act
	result, err := f.service.GetOrder(ctx, orderID, uuid.New(), true)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, orderID, result.ID)
}

func TestGetOrder_NotFound(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	orderID := uuid.New()

	f.orderRepo.On("GetWithItems", ctx, orderID).Return(nil, repository.ErrOrderNotFound)

	// Act
	result, err := f.service.GetOrder(ctx, orderID, uuid.New(), false)

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// ===================== UpdateStatus Tests =====================

func TestUpdateStatus_Success(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	orderID := uuid.New()
	adminID := uuid.New().String()

	order := &entity.Order{
		ID:     orderID,
		UserID: uuid.New(),
		Status: entity.OrderStatusProcessing,
		Total:  2350,
	}

	var appended *entity.OrderStatusChange
	f.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	f.orderRepo.On("UpdateStatus", ctx, orderID, entity.OrderStatusPackaging).Return(nil)
	f.historyRepo.On("Append", ctx, mock.Anything).Run(func(args mock.Arguments) {
		appended = args.Get(1).(*entity.OrderStatusChange)
	}).Return(nil)
	f.kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	result, err := f.service.UpdateStatus(ctx, orderID, entity.OrderStatusPackaging, adminID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPackaging, result.Status)
	assert.NotNil(t, appended)
	assert.Equal(t, entity.OrderStatusProcessing, appended.FromStatus)
	assert.Equal(t, entity.OrderStatusPackaging, appended.ToStatus)
	assert.Equal(t, adminID, appended.ChangedBy)
}

func TestUpdateStatus_PublishesStatusChangedEvent(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{
		ID:     orderID,
		UserID: uuid.New(),
		Status: entity.OrderStatusOnTheWay,
	}

	f.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	f.orderRepo.On("UpdateStatus", ctx, orderID, entity.OrderStatusDelivered).Return(nil)
	f.historyRepo.On("Append", ctx, mock.Anything).Return(nil)
	f.kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	_, err := f.service.UpdateStatus(ctx, orderID, entity.OrderStatusDelivered, "admin")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, f.kafkaProducer.Messages, 1)

	var event entity.OrderEvent
	assert.NoError(t, json.Unmarshal(f.kafkaProducer.Messages[0], &event))
	assert.Equal(t, "ORDER_STATUS_CHANGED", event.EventType)
	assert.Equal(t, entity.OrderStatusDelivered, event.Status)
	assert.Equal(t, entity.OrderStatusOnTheWay, event.FromStatus)
}

func TestUpdateStatus_InvalidTransitionStrict(t *testing.T) {
	// processing -> delivered пропускает этапы и запрещен строгой политикой
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{
		ID:     orderID,
		UserID: uuid.New(),
		Status: entity.OrderStatusProcessing,
	}

	f.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)

	// Act
	result, err := f.service.UpdateStatus(ctx, orderID, entity.OrderStatusDelivered, "admin")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	f.orderRepo.AssertNotCalled(t, "UpdateStatus")
	f.historyRepo.AssertNotCalled(t, "Append")
}

func TestUpdateStatus_PermissiveAllowsSkips(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyPermissive)
	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{
		ID:     orderID,
		UserID: uuid.New(),
		Status: entity.OrderStatusProcessing,
	}

	f.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)
	f.orderRepo.On("UpdateStatus", ctx, orderID, entity.OrderStatusDelivered).Return(nil)
	f.historyRepo.On("Append", ctx, mock.Anything).Return(nil)
	f.kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	result, err := f.service.UpdateStatus(ctx, orderID, entity.OrderStatusDelivered, "admin")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, result.Status)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyPermissive)
	ctx := context.Background()

	// Act
	result, err := f.service.UpdateStatus(ctx, uuid.New(), entity.OrderStatus("teleported"), "admin")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	orderID := uuid.New()

	f.orderRepo.On("GetByID", ctx, orderID).Return(nil, repository.ErrOrderNotFound)

	// Act
	result, err := f.service.UpdateStatus(ctx, orderID, entity.OrderStatusPackaging, "admin")

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// ===================== Strict Transitions Table =====================

func TestStrictTransitions(t *testing.T) {
	testCases := []struct {
		name     string
		from     entity.OrderStatus
		to       entity.OrderStatus
		expected bool
	}{
		{"pending -> processing", entity.OrderStatusPending, entity.OrderStatusProcessing, true},
		{"processing -> packaging", entity.OrderStatusProcessing, entity.OrderStatusPackaging, true},
		{"packaging -> shipped", entity.OrderStatusPackaging, entity.OrderStatusShipped, true},
		{"shipped -> on_the_way", entity.OrderStatusShipped, entity.OrderStatusOnTheWay, true},
		{"on_the_way -> delivered", entity.OrderStatusOnTheWay, entity.OrderStatusDelivered, true},
		{"processing -> shipped skips packaging", entity.OrderStatusProcessing, entity.OrderStatusShipped, false},
		{"processing -> hold", entity.OrderStatusProcessing, entity.OrderStatusHold, true},
		{"shipped -> cancelled", entity.OrderStatusShipped, entity.OrderStatusCancelled, true},
		{"hold -> packaging resume", entity.OrderStatusHold, entity.OrderStatusPackaging, true},
		{"hold -> cancelled", entity.OrderStatusHold, entity.OrderStatusCancelled, true},
		{"hold -> delivered", entity.OrderStatusHold, entity.OrderStatusDelivered, false},
		{"delivered -> any", entity.OrderStatusDelivered, entity.OrderStatusProcessing, false},
		{"cancelled -> any", entity.OrderStatusCancelled, entity.OrderStatusProcessing, false},
		{"backward on_the_way -> packaging", entity.OrderStatusOnTheWay, entity.OrderStatusPackaging, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := isStrictTransition(tc.from, tc.to)
			assert.Equal(t, tc.expected, result)
		})
	}
}

// ===================== Tracking Tests =====================

func TestGetTracking_ShippedOrder(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{
		ID:         orderID,
		UserID:     userID,
		Status:     entity.OrderStatusShipped,
		TrackingID: "KZ123456789",
	}

	f.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)

	// Act
	tracking, err := f.service.GetTracking(ctx, orderID, userID, false)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "KZ123456789", tracking.TrackingID)
	assert.True(t, tracking.Milestones.Placed)
	assert.True(t, tracking.Milestones.QualityCheck)
	assert.True(t, tracking.Milestones.Packed)
	assert.True(t, tracking.Milestones.HandedToCourier)
	assert.False(t, tracking.Milestones.Delivered)
}

func TestGetTracking_ForeignOrderDenied(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{
		ID:     orderID,
		UserID: uuid.New(),
		Status: entity.OrderStatusShipped,
	}

	f.orderRepo.On("GetByID", ctx, orderID).Return(order, nil)

	// Act
	tracking, err := f.service.GetTracking(ctx, orderID, uuid.New(), false)

	// Assert
	assert.Nil(t, tracking)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ===================== SetTracking Tests =====================

func TestSetTracking_Success(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	orderID := uuid.New()

	f.orderRepo.On("SetTrackingID", ctx, orderID, "KZ987").Return(nil)

	// Act
	err := f.service.SetTracking(ctx, orderID, "KZ987")

	// Assert
	assert.NoError(t, err)
	f.orderRepo.AssertExpectations(t)
}

func TestSetTracking_NotFound(t *testing.T) {
	// Arrange
	f := newOrderServiceFixture(TransitionPolicyStrict)
	ctx := context.Background()
	orderID := uuid.New()

	f.orderRepo.On("SetTrackingID", ctx, orderID, "KZ987").Return(repository.ErrOrderNotFound)

	// Act
	err := f.service.SetTracking(ctx, orderID, "KZ987")

	// Assert
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
