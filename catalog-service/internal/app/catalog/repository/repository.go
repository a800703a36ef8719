package repository

import (
	"context"
	"errors"

	"vibegadget/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrBannerNotFound  = errors.New("banner not found")
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByCategory(ctx context.Context, category string) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BannerRepository interface {
	Create(ctx context.Context, banner *entity.Banner) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Banner, error)
	GetActive(ctx context.Context) ([]entity.Banner, error)
	GetAll(ctx context.Context) ([]entity.Banner, error)
	Update(ctx context.Context, banner *entity.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}
