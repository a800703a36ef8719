package service

import (
	"context"

	"vibegadget/reviews-service/internal/app/reviews/entity"
)

// ReviewServiceInterface - интерфейс сервиса отзывов для handlers
type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, userID string, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetReviewsByProduct(ctx context.Context, productID string) ([]entity.Review, error)
	GetReview(ctx context.Context, reviewID string) (*entity.Review, error)
	GetUserReviews(ctx context.Context, userID string) ([]entity.Review, error)
}
