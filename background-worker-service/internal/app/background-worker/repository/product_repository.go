package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает репозиторий товаров поверх БД Catalog Service
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// ApplyReviewRating инкрементально пересчитывает средний рейтинг товара.
// Один UPDATE: конкурентные отзывы не теряют друг друга, в отличие от
// read-modify-write на стороне сервиса отзывов.
func (r *productRepository) ApplyReviewRating(ctx context.Context, productID uuid.UUID, rating int) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE products
		 SET rating = round(((rating * review_count + ?) / (review_count + 1))::numeric, 1),
		     review_count = review_count + 1,
		     updated_at = now()
		 WHERE id = ?`,
		rating, productID,
	)
	if result.Error != nil {
		return fmt.Errorf("failed to apply review rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStock уменьшает остаток товара, не опускаясь ниже нуля
func (r *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE products
		 SET stock = GREATEST(stock - ?, 0),
		     updated_at = now()
		 WHERE id = ?`,
		quantity, productID,
	)
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
