package mocks

import (
	"context"

	"vibegadget/accounts-service/internal/app/accounts/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository мок для ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileRepository) List(ctx context.Context) ([]entity.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	args := m.Called(ctx, id, banned)
	return args.Error(0)
}

func (m *MockProfileRepository) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

// MockNotificationRepository мок для NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByTargets(ctx context.Context, targets []string) ([]entity.Notification, error) {
	args := m.Called(ctx, targets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Notification), args.Error(1)
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

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings *entity.PlatformSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
