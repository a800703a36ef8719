package service

import (
	"context"
	"io"

	"vibegadget/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

type CatalogServiceInterface interface {
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, category string) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListCategories() []string

	CreateBanner(ctx context.Context, req *entity.CreateBannerRequest) (*entity.Banner, error)
	ListActiveBanners(ctx context.Context) ([]entity.Banner, error)
	ListAllBanners(ctx context.Context) ([]entity.Banner, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, req *entity.UpdateBannerRequest) (*entity.Banner, error)
	DeleteBanner(ctx context.Context, id uuid.UUID) error

	UploadImage(ctx context.Context, filename string, contentType string, body io.Reader) (string, error)
}
