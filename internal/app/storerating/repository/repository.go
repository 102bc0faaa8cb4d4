package repository

import (
	"context"

	"github.com/google/uuid"

	"storerating/internal/app/storerating/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	GetWithRating(ctx context.Context, id uuid.UUID) (*entity.UserWithRating, error)
	List(ctx context.Context, filter entity.UserFilter) ([]entity.UserWithRating, error)
}

type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	GetByEmail(ctx context.Context, email string) (*entity.Store, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error)
	GetWithRating(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*entity.StoreWithRating, error)
	List(ctx context.Context, filter entity.StoreFilter, userID *uuid.UUID) ([]entity.StoreWithRating, error)
}

type RatingRepository interface {
	// Upsert атомарно вставляет или заменяет оценку пары (user_id, store_id).
	// Возвращает true, если оценка создана впервые.
	Upsert(ctx context.Context, rating *entity.Rating) (bool, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.StoreRater, error)
	AverageForStore(ctx context.Context, storeID uuid.UUID) (*float64, error)
}

type StatsRepository interface {
	DashboardStats(ctx context.Context) (*entity.DashboardStats, error)
}

// RatingCacheRepository кеширует производные агрегаты в Redis.
// Кеш инвалидируется при каждой записи оценки, поэтому чтение после
// собственной записи всегда отдает свежее значение.
type RatingCacheRepository interface {
	GetStoreAverage(ctx context.Context, storeID uuid.UUID) (*float64, bool, error)
	SetStoreAverage(ctx context.Context, storeID uuid.UUID, average *float64) error
	InvalidateStoreAverage(ctx context.Context, storeID uuid.UUID) error
}
