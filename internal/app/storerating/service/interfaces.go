package service

import (
	"context"

	"github.com/google/uuid"

	"storerating/internal/app/storerating/entity"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

type UserServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.UserWithRating, error)
	List(ctx context.Context, filter entity.UserFilter) ([]entity.UserWithRating, error)
	DashboardStats(ctx context.Context) (*entity.DashboardStats, error)
}

type StoreServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateStoreRequest) (*entity.Store, error)
	GetByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*entity.StoreWithRating, error)
	List(ctx context.Context, filter entity.StoreFilter, userID *uuid.UUID) ([]entity.StoreWithRating, error)
	OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*entity.OwnerDashboardResponse, error)
}

type RatingServiceInterface interface {
	Submit(ctx context.Context, userID uuid.UUID, req *entity.SubmitRatingRequest) (bool, *entity.Rating, error)
	StoreRatings(ctx context.Context, storeID uuid.UUID) (*entity.StoreRatingsResponse, error)
	WarmStoreAverages(ctx context.Context) error
}

// MessagePublisher абстракция над Kafka producer
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
}
