package mocks

import (
	"context"
	"io"
	"time"

	"vibegadget/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBannerRepository мок для BannerRepository
type MockBannerRepository struct {
	mock.Mock
}

func (m *MockBannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Banner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Banner), args.Error(1)
}

func (m *MockBannerRepository) GetActive(ctx context.Context) ([]entity.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Banner), args.Error(1)
}

func (m *MockBannerRepository) GetAll(ctx context.Context) ([]entity.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Banner), args.Error(1)
}

func (m *MockBannerRepository) Update(ctx context.Context, banner *entity.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCatalogCache мок для CatalogCache
type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) GetProducts(ctx context.Context, category string) ([]entity.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockCatalogCache) SetProducts(ctx context.Context, category string, products []entity.Product, ttl time.Duration) error {
	args := m.Called(ctx, category, products, ttl)
	return args.Error(0)
}

func (m *MockCatalogCache) InvalidateProducts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogCache) GetBanners(ctx context.Context) ([]entity.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Banner), args.Error(1)
}

func (m *MockCatalogCache) SetBanners(ctx context.Context, banners []entity.Banner, ttl time.Duration) error {
	args := m.Called(ctx, banners, ttl)
	return args.Error(0)
}

func (m *MockCatalogCache) InvalidateBanners(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockImageStore мок для ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, filename string, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, body)
	return args.String(0), args.Error(1)
}
