//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"vibegadget/reviews-service/internal/app/reviews/entity"
	"vibegadget/reviews-service/internal/app/reviews/handler"
	"vibegadget/reviews-service/internal/app/reviews/repository"
	"vibegadget/reviews-service/internal/app/reviews/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MockKafkaProducer struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockKafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKafkaProducer) Close() error { return nil }

type ReviewsIntegrationTestSuite struct {
	suite.Suite
	client        *mongo.Client
	db            *mongo.Database
	router        *gin.Engine
	kafkaProducer *MockKafkaProducer
	testUserID    string
	testProductID string
}

func TestReviewsIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ReviewsIntegrationTestSuite))
}

func (s *ReviewsIntegrationTestSuite) SetupSuite() {
	mongoURI := getEnv("TEST_MONGODB_URI", "mongodb://localhost:27018")
	dbName := getEnv("TEST_MONGODB_DATABASE", "reviews_test_db")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	s.client, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	s.Require().NoError(err)

	s.db = s.client.Database(dbName)

	reviewRepo := repository.NewReviewRepository(s.db)
	s.kafkaProducer = &MockKafkaProducer{Messages: make([][]byte, 0)}
	reviewService := service.NewReviewService(reviewRepo, s.kafkaProducer)

	s.testUserID = uuid.NewString()
	s.testProductID = uuid.NewString()

	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	reviewHandler := handler.NewReviewHandler(reviewService)

	authMiddleware := func(c *gin.Context) {
		c.Set("user_id", s.testUserID)
		c.Next()
	}

	reviews := s.router.Group("/reviews")
	reviews.POST("", authMiddleware, reviewHandler.CreateReview)
	reviews.GET("/product/:product_id", reviewHandler.GetReviewsByProduct)
	reviews.GET("/me", authMiddleware, reviewHandler.GetMyReviews)
	reviews.GET("/:review_id", reviewHandler.GetReview)
}

func (s *ReviewsIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	s.db.Collection("reviews").Drop(ctx)
	s.kafkaProducer.Messages = make([][]byte, 0)
	s.kafkaProducer.ExpectedCalls = nil
	s.kafkaProducer.Calls = nil
}

func (s *ReviewsIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.client.Disconnect(ctx)
	}
}

func (s *ReviewsIntegrationTestSuite) createReview(rating int, comment string) entity.Review {
	body, _ := json.Marshal(entity.CreateReviewRequest{ProductID: s.testProductID, Rating: rating, Comment: comment})
	req, _ := http.NewRequest(http.MethodPost, "/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusCreated, w.Code)

	var created entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func (s *ReviewsIntegrationTestSuite) TestCreateReview_Success() {
	s.kafkaProducer.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created := s.createReview(5, "Excellent product!")

	s.Equal(s.testUserID, created.UserID)
	s.Equal(5, created.Rating)
	s.False(created.ID.IsZero())
	s.Len(s.kafkaProducer.Messages, 1)
}

func (s *ReviewsIntegrationTestSuite) TestCreateReview_InvalidRating() {
	body, _ := json.Marshal(entity.CreateReviewRequest{ProductID: s.testProductID, Rating: 7, Comment: "Too good"})
	req, _ := http.NewRequest(http.MethodPost, "/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)

	// Невалидный отзыв не должен попасть в базу
	count, err := s.db.Collection("reviews").CountDocuments(context.Background(), map[string]interface{}{})
	s.NoError(err)
	s.Zero(count)
}

func (s *ReviewsIntegrationTestSuite) TestGetReviewsByProduct_Success() {
	s.kafkaProducer.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	for i := 1; i <= 3; i++ {
		s.createReview(i+2, "Test review text here.")
	}

	req, _ := http.NewRequest(http.MethodGet, "/reviews/product/"+s.testProductID, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var response entity.ReviewListResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(3, response.Total)
}

func (s *ReviewsIntegrationTestSuite) TestGetReview_Success() {
	s.kafkaProducer.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created := s.createReview(4, "Good product here.")

	req, _ := http.NewRequest(http.MethodGet, "/reviews/"+created.ID.Hex(), nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var fetched entity.Review
	s.NoError(json.Unmarshal(w.Body.Bytes(), &fetched))
	s.Equal(created.ID, fetched.ID)
}

func (s *ReviewsIntegrationTestSuite) TestGetReview_NotFound() {
	req, _ := http.NewRequest(http.MethodGet, "/reviews/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ReviewsIntegrationTestSuite) TestGetMyReviews_Success() {
	s.kafkaProducer.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	s.createReview(5, "First review text.")
	s.createReview(3, "Second review text.")

	req, _ := http.NewRequest(http.MethodGet, "/reviews/me", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var response entity.ReviewListResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(2, response.Total)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
