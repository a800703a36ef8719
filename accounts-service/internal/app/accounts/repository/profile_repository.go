package repository

import (
	"context"
	"errors"
	"fmt"

	"vibegadget/accounts-service/internal/app/accounts/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository создает новый репозиторий профилей
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create создает новый профиль
func (r *profileRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID получает профиль по ID
func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error) {
	var profile entity.UserProfile

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", result.Error)
	}

	return &profile, nil
}

// Update сохраняет все поля профиля
func (r *profileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	result := r.db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	return nil
}

// Delete удаляет профиль
func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.UserProfile{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// List получает все профили, новые первыми
func (r *profileRepository) List(ctx context.Context) ([]entity.UserProfile, error) {
	var profiles []entity.UserProfile

	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&profiles)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", result.Error)
	}

	return profiles, nil
}

// SetBanned блокирует или разблокирует пользователя
func (r *profileRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	result := r.db.WithContext(ctx).
		Model(&entity.UserProfile{}).
		Where("id = ?", id).
		Update("banned", banned)

	if result.Error != nil {
		return fmt.Errorf("failed to set banned flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// SetRole меняет роль пользователя
func (r *profileRepository) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.UserProfile{}).
		Where("id = ?", id).
		Update("role", role)

	if result.Error != nil {
		return fmt.Errorf("failed to set role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
