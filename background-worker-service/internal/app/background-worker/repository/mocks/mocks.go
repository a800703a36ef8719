package mocks

import (
	"context"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository мок для OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) SetTrackingID(ctx context.Context, orderID uuid.UUID, trackingID string) error {
	args := m.Called(ctx, orderID, trackingID)
	return args.Error(0)
}

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ApplyReviewRating(ctx context.Context, productID uuid.UUID, rating int) error {
	args := m.Called(ctx, productID, rating)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

// MockDeadLetterRepository мок для DeadLetterRepository
type MockDeadLetterRepository struct {
	mock.Mock
}

func (m *MockDeadLetterRepository) Push(ctx context.Context, task *entity.DispatchTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockDeadLetterRepository) Pop(ctx context.Context) (*entity.DispatchTask, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DispatchTask), args.Error(1)
}

func (m *MockDeadLetterRepository) Size(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository мок для NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// MockSettingsRepository мок для SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entity.PlatformSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlatformSettings), args.Error(1)
}

// MockCourierClient мок для CourierClientInterface
type MockCourierClient struct {
	mock.Mock
}

func (m *MockCourierClient) CreateConsignment(ctx context.Context, consignment *entity.ConsignmentRequest) (string, error) {
	args := m.Called(ctx, consignment)
	return args.String(0), args.Error(1)
}

// MockChatBotClient мок для ChatBotClientInterface
type MockChatBotClient struct {
	mock.Mock
}

func (m *MockChatBotClient) SendMessage(ctx context.Context, chatID, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

// MockDispatchService мок для DispatchServiceInterface
type MockDispatchService struct {
	mock.Mock
}

func (m *MockDispatchService) DispatchConsignment(ctx context.Context, orderID uuid.UUID, consignment *entity.ConsignmentRequest) error {
	args := m.Called(ctx, orderID, consignment)
	return args.Error(0)
}

func (m *MockDispatchService) DispatchChatMessage(ctx context.Context, orderID uuid.UUID, chatID, text string) error {
	args := m.Called(ctx, orderID, chatID, text)
	return args.Error(0)
}

func (m *MockDispatchService) RedriveDeadLetters(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
