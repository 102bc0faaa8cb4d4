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

type StoreRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  StoreRepository
	sqlDB *sql.DB
}

func TestStoreRepositorySuite(t *testing.T) {
	suite.Run(t, new(StoreRepositoryTestSuite))
}

func (s *StoreRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewStoreRepository(s.db)
}

func (s *StoreRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== GetByOwnerID Tests =====================

func (s *StoreRepositoryTestSuite) TestGetByOwnerID_Success() {
	ctx := context.Background()
	storeID := uuid.New()
	ownerID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "created_at"}).
		AddRow(storeID, "Owned Store Name", "store@example.com", "789 Store Avenue", ownerID, time.Now())

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "stores" WHERE owner_id = $1`)).
		WithArgs(ownerID, 1).
		WillReturnRows(rows)

	store, err := s.repo.GetByOwnerID(ctx, ownerID)

	s.NoError(err)
	s.Require().NotNil(store)
	s.Equal(storeID, store.ID)
	s.Require().NotNil(store.OwnerID)
	s.Equal(ownerID, *store.OwnerID)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *StoreRepositoryTestSuite) TestGetByOwnerID_NotFound() {
	ctx := context.Background()
	ownerID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "stores" WHERE owner_id = $1`)).
		WithArgs(ownerID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	store, err := s.repo.GetByOwnerID(ctx, ownerID)

	s.Nil(store)
	s.ErrorIs(err, ErrStoreNotFound)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetWithRating Tests =====================

func (s *StoreRepositoryTestSuite) TestGetWithRating_AuthenticatedUser() {
	ctx := context.Background()
	storeID := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "created_at", "average_rating", "user_rating"}).
		AddRow(storeID, "Rated Store Name", "store@example.com", "789 Store Avenue", nil, time.Now(), 4.2, 5)

	s.mock.ExpectQuery(regexp.QuoteMeta(`FROM stores s`)).
		WithArgs(userID, storeID).
		WillReturnRows(rows)

	store, err := s.repo.GetWithRating(ctx, storeID, &userID)

	s.NoError(err)
	s.Require().NotNil(store)
	s.Require().NotNil(store.AverageRating)
	s.InDelta(4.2, *store.AverageRating, 0.001)
	s.Require().NotNil(store.UserRating)
	s.Equal(5, *store.UserRating)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *StoreRepositoryTestSuite) TestGetWithRating_Anonymous_NullAnnotations() {
	ctx := context.Background()
	storeID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "created_at", "average_rating", "user_rating"}).
		AddRow(storeID, "Fresh Store Name", "store@example.com", "789 Store Avenue", nil, time.Now(), nil, nil)

	s.mock.ExpectQuery(regexp.QuoteMeta(`FROM stores s`)).
		WithArgs(nil, storeID).
		WillReturnRows(rows)

	store, err := s.repo.GetWithRating(ctx, storeID, nil)

	s.NoError(err)
	s.Require().NotNil(store)
	s.Nil(store.AverageRating)
	s.Nil(store.UserRating)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *StoreRepositoryTestSuite) TestGetWithRating_NotFound() {
	ctx := context.Background()
	storeID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "created_at", "average_rating", "user_rating"})

	s.mock.ExpectQuery(regexp.QuoteMeta(`FROM stores s`)).
		WithArgs(nil, storeID).
		WillReturnRows(rows)

	store, err := s.repo.GetWithRating(ctx, storeID, nil)

	s.Nil(store)
	s.ErrorIs(err, ErrStoreNotFound)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== List Tests =====================

func (s *StoreRepositoryTestSuite) TestList_Anonymous() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "created_at", "average_rating", "user_rating"}).
		AddRow(uuid.New(), "Alpha Store Name", "alpha@example.com", "1 First Street", nil, time.Now(), 3.8, nil).
		AddRow(uuid.New(), "Beta Store Name", "beta@example.com", "2 Second Street", nil, time.Now(), nil, nil)

	s.mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY s.name ASC`)).
		WithArgs(nil).
		WillReturnRows(rows)

	stores, err := s.repo.List(ctx, entity.StoreFilter{}, nil)

	s.NoError(err)
	s.Len(stores, 2)
	s.Require().NotNil(stores[0].AverageRating)
	s.Nil(stores[1].AverageRating)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *StoreRepositoryTestSuite) TestList_WithNameFilter() {
	ctx := context.Background()
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id", "created_at", "average_rating", "user_rating"}).
		AddRow(uuid.New(), "Coffee Store Name", "coffee@example.com", "3 Third Street", nil, time.Now(), 4.9, 5)

	s.mock.ExpectQuery(regexp.QuoteMeta(`AND s.name ILIKE $2`)).
		WithArgs(userID, "%Coffee%").
		WillReturnRows(rows)

	stores, err := s.repo.List(ctx, entity.StoreFilter{Name: "Coffee"}, &userID)

	s.NoError(err)
	s.Require().Len(stores, 1)
	s.Require().NotNil(stores[0].UserRating)
	s.Equal(5, *stores[0].UserRating)

	s.NoError(s.mock.ExpectationsWereMet())
}
