package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"vibegadget/reviews-service/internal/app/reviews/entity"
	"vibegadget/reviews-service/internal/app/reviews/repository"
	"vibegadget/reviews-service/internal/app/reviews/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService() (*ReviewService, *mocks.MockReviewRepository, *mocks.MockMessagePublisher) {
	reviewRepo := new(mocks.MockReviewRepository)
	kafkaProducer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	return NewReviewService(reviewRepo, kafkaProducer), reviewRepo, kafkaProducer
}

// ===================== CreateReview Tests =====================

func TestCreateReview_Success(t *testing.T) {
	service, reviewRepo, kafkaProducer := newTestService()

	ctx := context.Background()
	userID := "user-123"
	req := &entity.CreateReviewRequest{ProductID: "product-456", Rating: 5, Comment: "Great product!", AuthorName: "Aida"}

	reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).Return(nil).Run(func(args mock.Arguments) {
		review := args.Get(1).(*entity.Review)
		review.ID = primitive.NewObjectID()
	})
	kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := service.CreateReview(ctx, userID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, userID, result.UserID)
	assert.Equal(t, 5, result.Rating)
	assert.Equal(t, "Aida", result.AuthorName)
}

func TestCreateReview_InvalidRatingRejectedBeforeWrite(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	req := &entity.CreateReviewRequest{ProductID: "product-456", Rating: 6, Comment: "Impossible score"}

	result, err := service.CreateReview(ctx, "user-123", req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidRating)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_ZeroRatingRejected(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	req := &entity.CreateReviewRequest{ProductID: "product-456", Rating: 0, Comment: "No score"}

	result, err := service.CreateReview(ctx, "user-123", req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidRating)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_BlankCommentRejectedBeforeWrite(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	req := &entity.CreateReviewRequest{ProductID: "product-456", Rating: 4, Comment: "   "}

	result, err := service.CreateReview(ctx, "user-123", req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyComment)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_RepoError(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	req := &entity.CreateReviewRequest{ProductID: "product-456", Rating: 4, Comment: "Good product."}

	reviewRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error"))

	result, err := service.CreateReview(ctx, "user-123", req)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCreateReview_KafkaErrorIgnored(t *testing.T) {
	service, reviewRepo, kafkaProducer := newTestService()

	ctx := context.Background()
	req := &entity.CreateReviewRequest{ProductID: "product-456", Rating: 3, Comment: "Average product."}

	reviewRepo.On("Create", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		review := args.Get(1).(*entity.Review)
		review.ID = primitive.NewObjectID()
	})
	kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(errors.New("kafka error"))

	result, err := service.CreateReview(ctx, "user-123", req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestCreateReview_PublishesReviewCreatedEvent(t *testing.T) {
	service, reviewRepo, kafkaProducer := newTestService()

	ctx := context.Background()
	req := &entity.CreateReviewRequest{ProductID: "product-456", Rating: 4, Comment: "Solid build quality."}

	reviewRepo.On("Create", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		review := args.Get(1).(*entity.Review)
		review.ID = primitive.NewObjectID()
	})
	kafkaProducer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	_, err := service.CreateReview(ctx, "user-123", req)

	assert.NoError(t, err)
	assert.Len(t, kafkaProducer.Messages, 1)

	var event entity.ReviewEvent
	assert.NoError(t, json.Unmarshal(kafkaProducer.Messages[0], &event))
	assert.Equal(t, "REVIEW_CREATED", event.EventType)
	assert.Equal(t, "product-456", event.ProductID)
	assert.Equal(t, "user-123", event.UserID)
	assert.Equal(t, 4, event.Rating)
}

// ===================== Read Tests =====================

func TestGetReviewsByProduct_Success(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	productID := "product-456"
	reviews := []entity.Review{
		{ID: primitive.NewObjectID(), ProductID: productID, UserID: "user-1", Rating: 5},
		{ID: primitive.NewObjectID(), ProductID: productID, UserID: "user-2", Rating: 4},
	}

	reviewRepo.On("GetByProductID", ctx, productID).Return(reviews, nil)

	result, err := service.GetReviewsByProduct(ctx, productID)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestGetReviewsByProduct_Empty(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	reviewRepo.On("GetByProductID", ctx, "no-reviews").Return([]entity.Review{}, nil)

	result, err := service.GetReviewsByProduct(ctx, "no-reviews")

	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestGetReview_Success(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	reviewID := primitive.NewObjectID()
	review := &entity.Review{ID: reviewID, ProductID: "product-456", UserID: "user-123", Rating: 5}

	reviewRepo.On("GetByID", ctx, reviewID.Hex()).Return(review, nil)

	result, err := service.GetReview(ctx, reviewID.Hex())

	assert.NoError(t, err)
	assert.Equal(t, reviewID, result.ID)
}

func TestGetReview_NotFound(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	reviewID := primitive.NewObjectID().Hex()

	reviewRepo.On("GetByID", ctx, reviewID).Return(nil, repository.ErrReviewNotFound)

	result, err := service.GetReview(ctx, reviewID)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestGetUserReviews_Success(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	userID := "user-123"
	reviews := []entity.Review{
		{ID: primitive.NewObjectID(), UserID: userID, ProductID: "product-1", Rating: 5, CreatedAt: time.Now()},
		{ID: primitive.NewObjectID(), UserID: userID, ProductID: "product-2", Rating: 4, CreatedAt: time.Now()},
	}

	reviewRepo.On("GetByUserID", ctx, userID).Return(reviews, nil)

	result, err := service.GetUserReviews(ctx, userID)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestGetUserReviews_Empty(t *testing.T) {
	service, reviewRepo, _ := newTestService()

	ctx := context.Background()
	reviewRepo.On("GetByUserID", ctx, "no-reviews-user").Return([]entity.Review{}, nil)

	result, err := service.GetUserReviews(ctx, "no-reviews-user")

	assert.NoError(t, err)
	assert.Empty(t, result)
}
