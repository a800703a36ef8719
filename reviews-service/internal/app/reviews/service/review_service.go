package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"
	"vibegadget/reviews-service/internal/app/reviews/entity"
	"vibegadget/reviews-service/internal/app/reviews/infrastructure"
	"vibegadget/reviews-service/internal/app/reviews/repository"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrEmptyComment   = errors.New("comment must not be empty")
)

// ReviewService обрабатывает бизнес-логику отзывов.
// Отзывы неизменяемы: сервис только создает и читает.
// Пересчет рейтинга товара выполняет background-worker по событию REVIEW_CREATED.
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	kafkaProducer infrastructure.MessagePublisher
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	kafkaProducer infrastructure.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		kafkaProducer: kafkaProducer,
	}
}

// CreateReview создает новый отзыв
// 1. Валидирует оценку и текст до любой записи
// 2. Сохраняет отзыв в MongoDB
// 3. Отправляет событие REVIEW_CREATED в Kafka
func (s *ReviewService) CreateReview(ctx context.Context, userID string, req *entity.CreateReviewRequest) (*entity.Review, error) {
	// Валидация до записи: невалидный отзыв не должен попасть в базу
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, ErrEmptyComment
	}

	review := &entity.Review{
		ProductID:   req.ProductID,
		UserID:      userID,
		AuthorName:  req.AuthorName,
		AuthorPhoto: req.AuthorPhoto,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Images:      req.Images,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	event := entity.ReviewEvent{
		EventType: "REVIEW_CREATED",
		ReviewID:  review.ID.Hex(),
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: time.Now(),
	}

	if err := s.publishReviewEvent(ctx, event); err != nil {
		// Отзыв уже сохранен, проблемы с Kafka не критичны
		logger.Error().Err(err).
			Str("review_id", event.ReviewID).
			Msg("Failed to publish REVIEW_CREATED event")
	}

	return review, nil
}

// GetReviewsByProduct получает все отзывы по ID товара
func (s *ReviewService) GetReviewsByProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// GetReview получает отзыв по ID
func (s *ReviewService) GetReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// GetUserReviews получает все отзывы пользователя
func (s *ReviewService) GetUserReviews(ctx context.Context, userID string) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reviews: %w", err)
	}

	return reviews, nil
}

// publishReviewEvent отправляет событие об отзыве в Kafka
func (s *ReviewService) publishReviewEvent(ctx context.Context, event entity.ReviewEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	// Ключ = ReviewID для партиционирования
	if err := s.kafkaProducer.PublishMessage(ctx, event.ReviewID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
