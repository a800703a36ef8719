package service

import (
	"context"

	"vibegadget/accounts-service/internal/app/accounts/entity"

	"github.com/google/uuid"
)

// ProfileServiceInterface - интерфейс сервиса профилей для handlers
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, userID uuid.UUID, email string) (*entity.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, email string, clientIP string, req *entity.UpdateProfileRequest) (*entity.UserProfile, error)
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
	ListProfiles(ctx context.Context) ([]entity.UserProfile, error)
	SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error
	SetRole(ctx context.Context, userID uuid.UUID, role string) error
}

// NotificationServiceInterface - интерфейс сервиса уведомлений для handlers
type NotificationServiceInterface interface {
	CreateNotification(ctx context.Context, req *entity.CreateNotificationRequest) (*entity.Notification, error)
	GetNotificationsForViewer(ctx context.Context, viewerID uuid.UUID) ([]entity.Notification, error)
}

// SettingsServiceInterface - интерфейс сервиса настроек для handlers
type SettingsServiceInterface interface {
	GetSettings(ctx context.Context) (*entity.PlatformSettings, error)
	UpdateSettings(ctx context.Context, req *entity.UpdatePlatformSettingsRequest) (*entity.PlatformSettings, error)
}
