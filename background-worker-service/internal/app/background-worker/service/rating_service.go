package service

import (
	"context"
	"errors"
	"fmt"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"
	"vibegadget/background-worker-service/internal/app/background-worker/repository"
	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"

	"github.com/google/uuid"
)

// RatingService пересчитывает агрегат рейтинга товара по событиям
// REVIEW_CREATED. Пересчет выполняется одним атомарным UPDATE в БД
// каталога, поэтому конкурентные отзывы не теряются.
type RatingService struct {
	productRepo repository.ProductRepository
}

// NewRatingService создает новый сервис агрегации рейтинга
func NewRatingService(productRepo repository.ProductRepository) *RatingService {
	return &RatingService{
		productRepo: productRepo,
	}
}

// ProcessReviewEvent обрабатывает событие отзыва из Kafka.
// Битые события (неизвестный тип, кривой рейтинг или product id)
// логируются и пропускаются, чтобы не зациклить партицию.
func (s *RatingService) ProcessReviewEvent(ctx context.Context, event *entity.ReviewEvent) error {
	if event.EventType != entity.EventTypeReviewCreated {
		logger.Warn().
			Str("event_type", event.EventType).
			Msg("Unknown review event type, skipping")
		return nil
	}

	if event.Rating < 1 || event.Rating > 5 {
		logger.Warn().
			Str("review_id", event.ReviewID).
			Int("rating", event.Rating).
			Msg("Review event with rating out of range, skipping")
		metrics.RatingUpdates.WithLabelValues("skipped").Inc()
		return nil
	}

	productID, err := uuid.Parse(event.ProductID)
	if err != nil {
		logger.Warn().
			Str("review_id", event.ReviewID).
			Str("product_id", event.ProductID).
			Msg("Review event with invalid product id, skipping")
		metrics.RatingUpdates.WithLabelValues("skipped").Inc()
		return nil
	}

	if err := s.productRepo.ApplyReviewRating(ctx, productID, event.Rating); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			logger.Warn().
				Str("review_id", event.ReviewID).
				Str("product_id", event.ProductID).
				Msg("Review event for unknown product, skipping")
			metrics.RatingUpdates.WithLabelValues("skipped").Inc()
			return nil
		}

		metrics.RatingUpdates.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to apply review rating: %w", err)
	}

	metrics.RatingUpdates.WithLabelValues("success").Inc()
	logger.Info().
		Str("review_id", event.ReviewID).
		Str("product_id", event.ProductID).
		Int("rating", event.Rating).
		Msg("Product rating aggregate updated")

	return nil
}
