package util

import (
	"context"
	"io"
	"time"

	"vibegadget/catalog-service/internal/app/catalog/entity"
)

// CatalogCache абстрагирует кеш списков каталога для подмены в тестах
type CatalogCache interface {
	GetProducts(ctx context.Context, category string) ([]entity.Product, error)
	SetProducts(ctx context.Context, category string, products []entity.Product, ttl time.Duration) error
	InvalidateProducts(ctx context.Context) error
	GetBanners(ctx context.Context) ([]entity.Banner, error)
	SetBanners(ctx context.Context, banners []entity.Banner, ttl time.Duration) error
	InvalidateBanners(ctx context.Context) error
}

// ImageStore абстрагирует внешний хостинг изображений.
// Upload возвращает публичный URL, который сохраняется на записи
// Product/Banner/Review/UserProfile.
type ImageStore interface {
	Upload(ctx context.Context, filename string, contentType string, body io.Reader) (string, error)
}
