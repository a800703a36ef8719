package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type OrderRepositorySuite struct {
	suite.Suite
	db   *gorm.DB
	mock sqlmock.Sqlmock
	repo OrderRepository
}

func (s *OrderRepositorySuite) SetupTest() {
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
	s.repo = NewOrderRepository(db)
}

func (s *OrderRepositorySuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== SetTrackingID Tests =====================

func (s *OrderRepositorySuite) TestSetTrackingID_Success() {
	orderID := uuid.New()

	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET tracking_id = $1 WHERE id = $2`)).
		WithArgs("KZ123456", orderID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.repo.SetTrackingID(context.Background(), orderID, "KZ123456")

	s.NoError(err)
}

func (s *OrderRepositorySuite) TestSetTrackingID_OrderNotFound() {
	orderID := uuid.New()

	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET tracking_id = $1 WHERE id = $2`)).
		WithArgs("KZ123456", orderID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.repo.SetTrackingID(context.Background(), orderID, "KZ123456")

	s.ErrorIs(err, ErrOrderNotFound)
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrderRepositorySuite))
}
