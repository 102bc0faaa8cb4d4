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

// UserService обрабатывает административные операции над пользователями
type UserService struct {
	userRepo  repository.UserRepository
	statsRepo repository.StatsRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, statsRepo repository.StatsRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		statsRepo: statsRepo,
	}
}

// Create создает пользователя с явно заданной ролью (только для админа,
// роль проверяется по закрытому набору)
func (s *UserService) Create(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	if err := util.ValidateName(req.Name); err != nil {
		return nil, err
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := util.ValidateAddress(req.Address); err != nil {
		return nil, err
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailExists
	}

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Address:      req.Address,
		Role:         req.Role,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID получает пользователя со средней оценкой его магазина
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.UserWithRating, error) {
	user, err := s.userRepo.GetWithRating(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// List получает пользователей по фильтрам
func (s *UserService) List(ctx context.Context, filter entity.UserFilter) ([]entity.UserWithRating, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, ErrInvalidRole
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// DashboardStats получает счетчики для админского дашборда
func (s *UserService) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	stats, err := s.statsRepo.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	return stats, nil
}
