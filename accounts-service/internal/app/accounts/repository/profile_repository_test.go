package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"vibegadget/accounts-service/internal/app/accounts/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db   *gorm.DB
	mock sqlmock.Sqlmock
	repo ProfileRepository
}

func (s *ProfileRepositorySuite) SetupTest() {
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
	s.repo = NewProfileRepository(db)
}

func (s *ProfileRepositorySuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func profileRows(id uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "email", "name", "photo", "address", "phone", "role", "banned", "registered_at", "last_active_at", "last_ip", "created_at"}).
		AddRow(id, "user@example.com", "Aidar", "", "", "", entity.RoleUser, false, now, now, "203.0.113.7", now)
}

func (s *ProfileRepositorySuite) TestGetByID_Found() {
	id := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_profiles" WHERE id = $1`)).
		WithArgs(id, 1).
		WillReturnRows(profileRows(id))

	profile, err := s.repo.GetByID(context.Background(), id)

	s.NoError(err)
	s.Equal(id, profile.ID)
	s.Equal("user@example.com", profile.Email)
}

func (s *ProfileRepositorySuite) TestGetByID_NotFound() {
	id := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_profiles" WHERE id = $1`)).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.repo.GetByID(context.Background(), id)

	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *ProfileRepositorySuite) TestSetBanned_Success() {
	id := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "user_profiles" SET "banned"=$1 WHERE id = $2`)).
		WithArgs(true, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.SetBanned(context.Background(), id, true)

	s.NoError(err)
}

func (s *ProfileRepositorySuite) TestSetBanned_NotFound() {
	id := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "user_profiles" SET "banned"=$1 WHERE id = $2`)).
		WithArgs(false, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.SetBanned(context.Background(), id, false)

	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *ProfileRepositorySuite) TestSetRole_Success() {
	id := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "user_profiles" SET "role"=$1 WHERE id = $2`)).
		WithArgs(entity.RoleAdmin, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.SetRole(context.Background(), id, entity.RoleAdmin)

	s.NoError(err)
}

func (s *ProfileRepositorySuite) TestDelete_NotFound() {
	id := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "user_profiles" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.Delete(context.Background(), id)

	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *ProfileRepositorySuite) TestList_OrderedByCreatedAt() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_profiles" ORDER BY created_at DESC`)).
		WillReturnRows(profileRows(uuid.New()))

	profiles, err := s.repo.List(context.Background())

	s.NoError(err)
	s.Len(profiles, 1)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}
