package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibegadget/accounts-service/internal/app/accounts/entity"
	"vibegadget/accounts-service/internal/app/accounts/repository"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidRole     = errors.New("invalid role")
)

// ProfileService обрабатывает бизнес-логику профилей пользователей.
// Аутентификация внешняя: профиль создается лениво при первом обращении
// с валидным токеном.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService создает новый сервис профилей
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// GetProfile получает профиль пользователя, создавая его при первом обращении
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID, email string) (*entity.UserProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	// Первый заход пользователя: создаем профиль из данных токена
	now := time.Now()
	profile = &entity.UserProfile{
		ID:           userID,
		Email:        email,
		Role:         entity.RoleUser,
		RegisteredAt: &now,
		LastActiveAt: now,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// UpdateProfile обновляет собственный профиль и отмечает активность
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, email string, clientIP string, req *entity.UpdateProfileRequest) (*entity.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Photo != "" {
		profile.Photo = req.Photo
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}

	profile.LastActiveAt = time.Now()
	profile.LastIP = clientIP

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

// DeleteProfile удаляет профиль пользователя
func (s *ProfileService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	if err := s.profileRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// ListProfiles получает все профили для админ-панели
func (s *ProfileService) ListProfiles(ctx context.Context) ([]entity.UserProfile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// SetBanned блокирует или разблокирует пользователя
func (s *ProfileService) SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error {
	if err := s.profileRepo.SetBanned(ctx, userID, banned); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to set banned flag: %w", err)
	}
	return nil
}

// SetRole меняет роль пользователя
func (s *ProfileService) SetRole(ctx context.Context, userID uuid.UUID, role string) error {
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return ErrInvalidRole
	}

	if err := s.profileRepo.SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}
