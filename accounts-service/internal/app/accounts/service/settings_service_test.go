package service

import (
	"context"
	"testing"

	"vibegadget/accounts-service/internal/app/accounts/entity"
	"vibegadget/accounts-service/internal/app/accounts/repository"
	"vibegadget/accounts-service/internal/app/accounts/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func boolPtr(v bool) *bool {
	return &v
}

// ===================== GetSettings Tests =====================

func TestGetSettings_ReturnsStored(t *testing.T) {
	settingsRepo := new(mocks.MockSettingsRepository)
	svc := NewSettingsService(settingsRepo)

	stored := &entity.PlatformSettings{
		ID:             entity.PlatformSettingsID,
		CourierEnabled: true,
		ChatBotChatID:  "-100200300",
	}
	settingsRepo.On("Get", mock.Anything).Return(stored, nil)

	settings, err := svc.GetSettings(context.Background())

	assert.NoError(t, err)
	assert.True(t, settings.CourierEnabled)
	assert.Equal(t, "-100200300", settings.ChatBotChatID)
}

func TestGetSettings_DefaultsWhenNeverSaved(t *testing.T) {
	settingsRepo := new(mocks.MockSettingsRepository)
	svc := NewSettingsService(settingsRepo)

	settingsRepo.On("Get", mock.Anything).Return(nil, repository.ErrSettingsNotFound)

	settings, err := svc.GetSettings(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, entity.DefaultPlatformSettings(), settings)
}

// ===================== UpdateSettings Tests =====================

func TestUpdateSettings_PartialMerge(t *testing.T) {
	settingsRepo := new(mocks.MockSettingsRepository)
	svc := NewSettingsService(settingsRepo)

	current := &entity.PlatformSettings{
		ID:            entity.PlatformSettingsID,
		GoogleLogin:   true,
		ChatBotChatID: "-100200300",
	}
	settingsRepo.On("Get", mock.Anything).Return(current, nil)
	settingsRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *entity.PlatformSettings) bool {
		// Курьер включился, остальное не тронуто
		return s.CourierEnabled && s.GoogleLogin && s.ChatBotChatID == "-100200300"
	})).Return(nil)

	settings, err := svc.UpdateSettings(context.Background(), &entity.UpdatePlatformSettingsRequest{
		CourierEnabled: boolPtr(true),
	})

	assert.NoError(t, err)
	assert.True(t, settings.CourierEnabled)
	settingsRepo.AssertExpectations(t)
}

func TestUpdateSettings_FirstSaveStartsFromDefaults(t *testing.T) {
	settingsRepo := new(mocks.MockSettingsRepository)
	svc := NewSettingsService(settingsRepo)

	settingsRepo.On("Get", mock.Anything).Return(nil, repository.ErrSettingsNotFound)
	settingsRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *entity.PlatformSettings) bool {
		return s.ID == entity.PlatformSettingsID && s.Maintenance
	})).Return(nil)

	settings, err := svc.UpdateSettings(context.Background(), &entity.UpdatePlatformSettingsRequest{
		Maintenance: boolPtr(true),
	})

	assert.NoError(t, err)
	assert.True(t, settings.Maintenance)
}
