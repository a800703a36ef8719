package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"vibegadget/catalog-service/internal/app/catalog/entity"
	"vibegadget/catalog-service/internal/app/catalog/repository"
	"vibegadget/catalog-service/internal/app/catalog/util"
	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrProductNotFound = errors.New("product not found")
	ErrBannerNotFound  = errors.New("banner not found")
	ErrInvalidCategory = errors.New("invalid product category")
)

const (
	serviceName = "catalog"
	listCacheTTL = 5 * time.Minute
)

// CatalogService обрабатывает бизнес-логику каталога.
// Координирует репозитории PostgreSQL, Redis кеш и хостинг изображений.
type CatalogService struct {
	productRepo repository.ProductRepository
	bannerRepo  repository.BannerRepository
	cache       util.CatalogCache
	imageStore  util.ImageStore
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	productRepo repository.ProductRepository,
	bannerRepo repository.BannerRepository,
	cache util.CatalogCache,
	imageStore util.ImageStore,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		bannerRepo:  bannerRepo,
		cache:       cache,
		imageStore:  imageStore,
	}
}

// === PRODUCTS ===

// CreateProduct создает новый товар и инвалидирует кеш списков.
// Рейтинг нового товара всегда 0 при 0 отзывах.
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if !entity.IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Gallery:     req.Gallery,
		Stock:       req.Stock,
		Rating:      0,
		ReviewCount: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateProductsCache(ctx)

	return product, nil
}

// GetProduct получает товар по ID (без кеша - карточка всегда свежая)
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// ListProducts получает список товаров с кешированием в Redis.
// category == "" означает полный каталог.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]entity.Product, error) {
	if category != "" && !entity.IsValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	// Сначала пробуем кеш
	cached, err := s.cache.GetProducts(ctx, category)
	if err == nil && cached != nil {
		metrics.RecordCacheHit(serviceName, "products")
		return cached, nil
	}
	metrics.RecordCacheMiss(serviceName, "products")

	var products []entity.Product
	if category == "" {
		products, err = s.productRepo.GetAll(ctx)
	} else {
		products, err = s.productRepo.GetByCategory(ctx, category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	if err := s.cache.SetProducts(ctx, category, products, listCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache products")
	}

	return products, nil
}

// UpdateProduct обновляет карточку товара и инвалидирует кеш
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.Image = req.Image
	product.Gallery = req.Gallery
	product.Stock = req.Stock

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidateProductsCache(ctx)

	return product, nil
}

// DeleteProduct жестко удаляет товар (только администратор)
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.invalidateProductsCache(ctx)

	return nil
}

// ListCategories возвращает фиксированный набор категорий
func (s *CatalogService) ListCategories() []string {
	return entity.Categories()
}

// === BANNERS ===

// CreateBanner создает баннер карусели и сбрасывает кеш баннеров
func (s *CatalogService) CreateBanner(ctx context.Context, req *entity.CreateBannerRequest) (*entity.Banner, error) {
	banner := &entity.Banner{
		ID:        uuid.New(),
		Title:     req.Title,
		Image:     req.Image,
		ProductID: req.ProductID,
		Position:  req.Position,
		Active:    req.Active,
		CreatedAt: time.Now(),
	}

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	s.invalidateBannersCache(ctx)

	return banner, nil
}

// ListActiveBanners получает активные баннеры с кешированием
func (s *CatalogService) ListActiveBanners(ctx context.Context) ([]entity.Banner, error) {
	cached, err := s.cache.GetBanners(ctx)
	if err == nil && cached != nil {
		metrics.RecordCacheHit(serviceName, "banners")
		return cached, nil
	}
	metrics.RecordCacheMiss(serviceName, "banners")

	banners, err := s.bannerRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get banners: %w", err)
	}

	if err := s.cache.SetBanners(ctx, banners, listCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache banners")
	}

	return banners, nil
}

// ListAllBanners получает все баннеры для административной панели (без кеша)
func (s *CatalogService) ListAllBanners(ctx context.Context) ([]entity.Banner, error) {
	banners, err := s.bannerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get banners: %w", err)
	}
	return banners, nil
}

// UpdateBanner обновляет баннер и сбрасывает кеш
func (s *CatalogService) UpdateBanner(ctx context.Context, id uuid.UUID, req *entity.UpdateBannerRequest) (*entity.Banner, error) {
	banner, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}

	banner.Title = req.Title
	banner.Image = req.Image
	banner.ProductID = req.ProductID
	banner.Position = req.Position
	banner.Active = req.Active

	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}

	s.invalidateBannersCache(ctx)

	return banner, nil
}

// DeleteBanner удаляет баннер и сбрасывает кеш
func (s *CatalogService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	if err := s.bannerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	s.invalidateBannersCache(ctx)

	return nil
}

// === UPLOADS ===

// UploadImage загружает изображение на внешний хостинг и возвращает URL
func (s *CatalogService) UploadImage(ctx context.Context, filename string, contentType string, body io.Reader) (string, error) {
	url, err := s.imageStore.Upload(ctx, filename, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}

func (s *CatalogService) invalidateProductsCache(ctx context.Context) {
	if err := s.cache.InvalidateProducts(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate products cache")
	}
}

func (s *CatalogService) invalidateBannersCache(ctx context.Context) {
	if err := s.cache.InvalidateBanners(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate banners cache")
	}
}
