package repository

import (
	"context"
	"errors"

	"vibegadget/accounts-service/internal/app/accounts/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrProfileNotFound  = errors.New("profile not found")
	ErrSettingsNotFound = errors.New("platform settings not found")
)

// ProfileRepository определяет методы для работы с профилями в PostgreSQL
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error)
	Update(ctx context.Context, profile *entity.UserProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.UserProfile, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	SetRole(ctx context.Context, id uuid.UUID, role string) error
}

// NotificationRepository определяет методы для работы с уведомлениями в MongoDB
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// GetByTargets возвращает уведомления, адресованные любому из targets,
	// новые первыми. Фильтрация по дате регистрации - забота service layer.
	GetByTargets(ctx context.Context, targets []string) ([]entity.Notification, error)
}

// SettingsRepository определяет методы для работы с настройками платформы
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.PlatformSettings, error)
	Upsert(ctx context.Context, settings *entity.PlatformSettings) error
}
