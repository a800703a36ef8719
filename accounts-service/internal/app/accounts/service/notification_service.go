package service

import (
	"context"
	"errors"
	"fmt"

	"vibegadget/accounts-service/internal/app/accounts/entity"
	"vibegadget/accounts-service/internal/app/accounts/repository"
	"vibegadget/pkg/metrics"

	"github.com/google/uuid"
)

var ErrInvalidTarget = errors.New("notification target must be a user id or \"all\"")

// NotificationService обрабатывает бизнес-логику уведомлений.
// Уведомления неизменяемы, видимость вычисляется при чтении:
// широковещательное уведомление не показывается пользователям,
// зарегистрированным позже его создания.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
}

// NewNotificationService создает новый сервис уведомлений
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
	}
}

// CreateNotification создает уведомление для пользователя или broadcast
func (s *NotificationService) CreateNotification(ctx context.Context, req *entity.CreateNotificationRequest) (*entity.Notification, error) {
	targetLabel := "user"
	if req.Target != entity.NotificationTargetAll {
		if _, err := uuid.Parse(req.Target); err != nil {
			return nil, ErrInvalidTarget
		}
	} else {
		targetLabel = "broadcast"
	}

	notification := &entity.Notification{
		Title:   req.Title,
		Message: req.Message,
		Image:   req.Image,
		Target:  req.Target,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	metrics.NotificationsCreated.WithLabelValues(targetLabel).Inc()

	return notification, nil
}

// GetNotificationsForViewer возвращает ленту уведомлений пользователя.
// Видимы только уведомления, адресованные ему лично или broadcast,
// созданные после его регистрации.
func (s *NotificationService) GetNotificationsForViewer(ctx context.Context, viewerID uuid.UUID) ([]entity.Notification, error) {
	profile, err := s.profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	notifications, err := s.notificationRepo.GetByTargets(ctx, []string{viewerID.String(), entity.NotificationTargetAll})
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	// У ранних профилей registered_at отсутствует, берем дату создания строки
	cutoff := profile.CreatedAt
	if profile.RegisteredAt != nil {
		cutoff = *profile.RegisteredAt
	}

	visible := make([]entity.Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.CreatedAt.After(cutoff) {
			visible = append(visible, n)
		}
	}

	return visible, nil
}
