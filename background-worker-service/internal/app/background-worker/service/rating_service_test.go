package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"
	"vibegadget/background-worker-service/internal/app/background-worker/repository"
	"vibegadget/background-worker-service/internal/app/background-worker/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func reviewCreatedEvent(productID uuid.UUID, rating int) *entity.ReviewEvent {
	return &entity.ReviewEvent{
		EventType: entity.EventTypeReviewCreated,
		ReviewID:  "66f1a2b3c4d5e6f7a8b9c0d1",
		ProductID: productID.String(),
		UserID:    uuid.New().String(),
		Rating:    rating,
		Timestamp: time.Now(),
	}
}

// ===================== ProcessReviewEvent Tests =====================

func TestProcessReviewEvent_Success(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	svc := NewRatingService(productRepo)

	productID := uuid.New()
	productRepo.On("ApplyReviewRating", mock.Anything, productID, 4).Return(nil)

	err := svc.ProcessReviewEvent(context.Background(), reviewCreatedEvent(productID, 4))

	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestProcessReviewEvent_UnknownEventTypeSkipped(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	svc := NewRatingService(productRepo)

	event := reviewCreatedEvent(uuid.New(), 4)
	event.EventType = "REVIEW_DELETED"

	err := svc.ProcessReviewEvent(context.Background(), event)

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "ApplyReviewRating")
}

func TestProcessReviewEvent_RatingOutOfRangeSkipped(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	svc := NewRatingService(productRepo)

	err := svc.ProcessReviewEvent(context.Background(), reviewCreatedEvent(uuid.New(), 6))

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "ApplyReviewRating")
}

func TestProcessReviewEvent_InvalidProductIDSkipped(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	svc := NewRatingService(productRepo)

	event := reviewCreatedEvent(uuid.New(), 4)
	event.ProductID = "not-a-uuid"

	err := svc.ProcessReviewEvent(context.Background(), event)

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "ApplyReviewRating")
}

func TestProcessReviewEvent_UnknownProductSkipped(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	svc := NewRatingService(productRepo)

	productID := uuid.New()
	productRepo.On("ApplyReviewRating", mock.Anything, productID, 5).Return(repository.ErrProductNotFound)

	// Товар мог быть удален после создания отзыва: не зацикливаем партицию
	err := svc.ProcessReviewEvent(context.Background(), reviewCreatedEvent(productID, 5))

	assert.NoError(t, err)
}

func TestProcessReviewEvent_DatabaseErrorRetried(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	svc := NewRatingService(productRepo)

	productID := uuid.New()
	productRepo.On("ApplyReviewRating", mock.Anything, productID, 3).Return(errors.New("db down"))

	err := svc.ProcessReviewEvent(context.Background(), reviewCreatedEvent(productID, 3))

	// Ошибка БД возвращается наружу: offset не коммитится, событие повторится
	assert.Error(t, err)
}
