package repository

import (
	"context"

	"vibegadget/reviews-service/internal/app/reviews/entity"
)

// ReviewRepository определяет методы для работы с отзывами в MongoDB.
// Отзывы неизменяемы, поэтому методов Update/Delete нет.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByProductID(ctx context.Context, productID string) ([]entity.Review, error)
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Review, error)
}
