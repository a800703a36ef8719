package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vibegadget/catalog-service/internal/app/catalog/entity"

	"github.com/redis/go-redis/v9"
)

const (
	productsCacheKeyAll    = "products:all"
	productsCacheKeyPrefix = "products:category:"
	bannersCacheKey        = "banners:active"
)

// RedisClient кеширует списки товаров и баннеров.
// Витрина читает списки на каждом открытии экрана, поэтому
// кеш заметно разгружает PostgreSQL.
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func productsKey(category string) string {
	if category == "" {
		return productsCacheKeyAll
	}
	return productsCacheKeyPrefix + category
}

func (r *RedisClient) GetProducts(ctx context.Context, category string) ([]entity.Product, error) {
	data, err := r.client.Get(ctx, productsKey(category)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get products from cache: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached products: %w", err)
	}

	return products, nil
}

func (r *RedisClient) SetProducts(ctx context.Context, category string, products []entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}

	if err := r.client.Set(ctx, productsKey(category), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set products in cache: %w", err)
	}

	return nil
}

// InvalidateProducts сбрасывает общий список и все категорийные списки.
// Набор категорий фиксированный, поэтому ключи известны заранее.
func (r *RedisClient) InvalidateProducts(ctx context.Context) error {
	keys := []string{productsCacheKeyAll}
	for _, c := range entity.Categories() {
		keys = append(keys, productsCacheKeyPrefix+c)
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate products cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetBanners(ctx context.Context) ([]entity.Banner, error) {
	data, err := r.client.Get(ctx, bannersCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get banners from cache: %w", err)
	}

	var banners []entity.Banner
	if err := json.Unmarshal(data, &banners); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached banners: %w", err)
	}

	return banners, nil
}

func (r *RedisClient) SetBanners(ctx context.Context, banners []entity.Banner, ttl time.Duration) error {
	data, err := json.Marshal(banners)
	if err != nil {
		return fmt.Errorf("failed to marshal banners: %w", err)
	}

	if err := r.client.Set(ctx, bannersCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set banners in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) InvalidateBanners(ctx context.Context) error {
	if err := r.client.Del(ctx, bannersCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate banners cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
