package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type ProductRepositorySuite struct {
	suite.Suite
	db   *gorm.DB
	mock sqlmock.Sqlmock
	repo ProductRepository
}

func (s *ProductRepositorySuite) SetupTest() {
	sqlDB, mock, err := sqlmock.New()
	s.Require().NoError(err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)

	s.db = db
	s.mock = mock
	s.repo = NewProductRepository(db)
}

func (s *ProductRepositorySuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== ApplyReviewRating Tests =====================

func (s *ProductRepositorySuite) TestApplyReviewRating_Success() {
	productID := uuid.New()

	// Инкрементальное среднее и счетчик меняются одним UPDATE
	s.mock.ExpectExec(`(?s)UPDATE products.*SET rating = round.*review_count = review_count \+ 1`).
		WithArgs(4, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.repo.ApplyReviewRating(context.Background(), productID, 4)

	s.NoError(err)
}

func (s *ProductRepositorySuite) TestApplyReviewRating_ProductNotFound() {
	productID := uuid.New()

	s.mock.ExpectExec(`(?s)UPDATE products.*SET rating`).
		WithArgs(5, productID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.repo.ApplyReviewRating(context.Background(), productID, 5)

	s.ErrorIs(err, ErrProductNotFound)
}

// ===================== DecrementStock Tests =====================

func (s *ProductRepositorySuite) TestDecrementStock_Success() {
	productID := uuid.New()

	// GREATEST не дает остатку уйти ниже нуля
	s.mock.ExpectExec(`(?s)UPDATE products.*SET stock = GREATEST\(stock - \$1, 0\)`).
		WithArgs(2, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.repo.DecrementStock(context.Background(), productID, 2)

	s.NoError(err)
}

func (s *ProductRepositorySuite) TestDecrementStock_ProductNotFound() {
	productID := uuid.New()

	s.mock.ExpectExec(`(?s)UPDATE products.*SET stock`).
		WithArgs(1, productID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.repo.DecrementStock(context.Background(), productID, 1)

	s.ErrorIs(err, ErrProductNotFound)
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductRepositorySuite))
}
