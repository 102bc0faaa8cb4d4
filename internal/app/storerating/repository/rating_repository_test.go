package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"storerating/internal/app/storerating/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RatingRepositoryTestSuite тестовый suite для PostgreSQL repository
type RatingRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  RatingRepository
	sqlDB *sql.DB
}

func TestRatingRepositorySuite(t *testing.T) {
	suite.Run(t, new(RatingRepositoryTestSuite))
}

func (s *RatingRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewRatingRepository(s.db)
}

func (s *RatingRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== Upsert Tests =====================

func (s *RatingRepositoryTestSuite) TestUpsert_Inserted() {
	ctx := context.Background()
	userID := uuid.New()
	storeID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"inserted", "created_at", "updated_at"}).
		AddRow(true, now, now)

	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ratings`)).
		WithArgs(userID, storeID, 4).
		WillReturnRows(rows)

	rating := &entity.Rating{UserID: userID, StoreID: storeID, Rating: 4}

	// Act
	created, err := s.repo.Upsert(ctx, rating)

	// Assert
	s.NoError(err)
	s.True(created)
	s.WithinDuration(now, rating.CreatedAt, time.Second)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestUpsert_Updated() {
	ctx := context.Background()
	userID := uuid.New()
	storeID := uuid.New()
	createdAt := time.Now().Add(-24 * time.Hour)
	updatedAt := time.Now()

	// xmax != 0 — строка обновлена, не вставлена
	rows := sqlmock.NewRows([]string{"inserted", "created_at", "updated_at"}).
		AddRow(false, createdAt, updatedAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ratings`)).
		WithArgs(userID, storeID, 2).
		WillReturnRows(rows)

	rating := &entity.Rating{UserID: userID, StoreID: storeID, Rating: 2}

	// Act
	created, err := s.repo.Upsert(ctx, rating)

	// Assert
	s.NoError(err)
	s.False(created)
	// created_at исходной строки сохраняется при обновлении
	s.WithinDuration(createdAt, rating.CreatedAt, time.Second)
	s.WithinDuration(updatedAt, rating.UpdatedAt, time.Second)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestUpsert_DBError() {
	ctx := context.Background()
	userID := uuid.New()
	storeID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ratings`)).
		WithArgs(userID, storeID, 5).
		WillReturnError(sql.ErrConnDone)

	rating := &entity.Rating{UserID: userID, StoreID: storeID, Rating: 5}

	// Act
	created, err := s.repo.Upsert(ctx, rating)

	// Assert
	s.Error(err)
	s.False(created)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== ListByStore Tests =====================

func (s *RatingRepositoryTestSuite) TestListByStore_OrderedNewestFirst() {
	ctx := context.Background()
	storeID := uuid.New()
	newer := time.Now()
	older := newer.Add(-time.Hour)

	rows := sqlmock.NewRows([]string{"user_id", "name", "email", "rating", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Recent Rater", "recent@example.com", 5, newer, newer).
		AddRow(uuid.New(), "Older Rater", "older@example.com", 3, older, older)

	s.mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY r.created_at DESC`)).
		WithArgs(storeID).
		WillReturnRows(rows)

	// Act
	raters, err := s.repo.ListByStore(ctx, storeID)

	// Assert
	s.NoError(err)
	s.Len(raters, 2)
	s.Equal("Recent Rater", raters[0].Name)
	s.Equal(5, raters[0].Rating)
	s.Equal("Older Rater", raters[1].Name)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestListByStore_Empty() {
	ctx := context.Background()
	storeID := uuid.New()

	rows := sqlmock.NewRows([]string{"user_id", "name", "email", "rating", "created_at", "updated_at"})

	s.mock.ExpectQuery(regexp.QuoteMeta(`FROM ratings r`)).
		WithArgs(storeID).
		WillReturnRows(rows)

	// Act
	raters, err := s.repo.ListByStore(ctx, storeID)

	// Assert
	s.NoError(err)
	s.Empty(raters)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== AverageForStore Tests =====================

func (s *RatingRepositoryTestSuite) TestAverageForStore_Success() {
	ctx := context.Background()
	storeID := uuid.New()

	rows := sqlmock.NewRows([]string{"avg"}).AddRow(4.25)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT AVG(rating) FROM ratings WHERE store_id = $1`)).
		WithArgs(storeID).
		WillReturnRows(rows)

	// Act
	avg, err := s.repo.AverageForStore(ctx, storeID)

	// Assert
	s.NoError(err)
	s.Require().NotNil(avg)
	s.InDelta(4.25, *avg, 0.001)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestAverageForStore_NoRatings_ReturnsNil() {
	ctx := context.Background()
	storeID := uuid.New()

	// AVG по пустому набору — SQL NULL, не ноль
	rows := sqlmock.NewRows([]string{"avg"}).AddRow(nil)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT AVG(rating) FROM ratings WHERE store_id = $1`)).
		WithArgs(storeID).
		WillReturnRows(rows)

	// Act
	avg, err := s.repo.AverageForStore(ctx, storeID)

	// Assert
	s.NoError(err)
	s.Nil(avg)

	s.NoError(s.mock.ExpectationsWereMet())
}
