package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storerating/internal/app/storerating/entity"
	"storerating/internal/app/storerating/repository"
	"storerating/internal/app/storerating/util"
)

// StoreService обрабатывает бизнес-логику магазинов
type StoreService struct {
	storeRepo  repository.StoreRepository
	userRepo   repository.UserRepository
	ratingRepo repository.RatingRepository
	cacheRepo  repository.RatingCacheRepository
}

// NewStoreService создает новый сервис магазинов
func NewStoreService(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	cacheRepo repository.RatingCacheRepository,
) *StoreService {
	return &StoreService{
		storeRepo:  storeRepo,
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		cacheRepo:  cacheRepo,
	}
}

// Create создает магазин. Владелец необязателен, но если указан,
// должен существовать и иметь роль store_owner.
// Имя магазина может быть любым непустым — ограничение 5-20 символов
// действует только для имен пользователей.
func (s *StoreService) Create(ctx context.Context, req *entity.CreateStoreRequest) (*entity.Store, error) {
	if err := util.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := util.ValidateAddress(req.Address); err != nil {
		return nil, err
	}

	existingStore, err := s.storeRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrStoreNotFound) {
		return nil, fmt.Errorf("failed to check existing store: %w", err)
	}
	if existingStore != nil {
		return nil, ErrEmailExists
	}

	if req.OwnerID != nil {
		owner, err := s.userRepo.GetByID(ctx, *req.OwnerID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, ErrInvalidOwner
			}
			return nil, fmt.Errorf("failed to check owner: %w", err)
		}
		if owner.Role != entity.RoleStoreOwner {
			return nil, ErrInvalidOwner
		}
	}

	store := &entity.Store{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Address:   req.Address,
		OwnerID:   req.OwnerID,
		CreatedAt: time.Now(),
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

// GetByID получает магазин с агрегатами. userID nil для анонимного вызова.
func (s *StoreService) GetByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*entity.StoreWithRating, error) {
	store, err := s.storeRepo.GetWithRating(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	return store, nil
}

// List получает магазины по фильтрам с аннотациями агрегатов
func (s *StoreService) List(ctx context.Context, filter entity.StoreFilter, userID *uuid.UUID) ([]entity.StoreWithRating, error) {
	stores, err := s.storeRepo.List(ctx, filter, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	return stores, nil
}

// OwnerDashboard собирает дашборд владельца: его магазин, средняя оценка
// и список оценивших (новые первыми)
func (s *StoreService) OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*entity.OwnerDashboardResponse, error) {
	store, err := s.storeRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrNoStoreAssigned
		}
		return nil, fmt.Errorf("failed to get store for owner: %w", err)
	}

	average, err := lookupStoreAverage(ctx, s.ratingRepo, s.cacheRepo, store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get store average: %w", err)
	}

	raters, err := s.ratingRepo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list raters: %w", err)
	}

	return &entity.OwnerDashboardResponse{
		Store:         *store,
		AverageRating: average,
		Raters:        raters,
	}, nil
}
