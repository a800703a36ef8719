package service

import (
	"context"
	"errors"
	"fmt"

	"vibegadget/accounts-service/internal/app/accounts/entity"
	"vibegadget/accounts-service/internal/app/accounts/repository"
)

// SettingsService обрабатывает бизнес-логику настроек платформы
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService создает новый сервис настроек
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings получает настройки платформы.
// Пока администратор их не сохранял, возвращаются значения по умолчанию.
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.PlatformSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return entity.DefaultPlatformSettings(), nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return settings, nil
}

// UpdateSettings обновляет настройки платформы частичным апдейтом поверх текущих
func (s *SettingsService) UpdateSettings(ctx context.Context, req *entity.UpdatePlatformSettingsRequest) (*entity.PlatformSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.GoogleLogin != nil {
		settings.GoogleLogin = *req.GoogleLogin
	}
	if req.FacebookLogin != nil {
		settings.FacebookLogin = *req.FacebookLogin
	}
	if req.AppleLogin != nil {
		settings.AppleLogin = *req.AppleLogin
	}
	if req.CourierEnabled != nil {
		settings.CourierEnabled = *req.CourierEnabled
	}
	if req.ChatBotChatID != "" {
		settings.ChatBotChatID = req.ChatBotChatID
	}
	if req.Maintenance != nil {
		settings.Maintenance = *req.Maintenance
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}
