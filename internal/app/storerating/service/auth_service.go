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
	"storerating/pkg/logger"
	"storerating/pkg/metrics"
)

// AuthService обрабатывает бизнес-логику аутентификации
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *util.JWTManager
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtManager *util.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Register регистрирует нового пользователя.
// Роль всегда user: через регистрацию нельзя создать админа или владельца.
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	if err := s.validateProfile(req.Name, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	// Проверяем, существует ли пользователь с таким email
	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailExists
	}

	// Хэшируем пароль
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
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login выполняет вход пользователя и выдает токен на 24 часа
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	valid, err := s.verifyPassword(ctx, user, req.Password, true)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &entity.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    *user,
	}, nil
}

// UpdatePassword меняет пароль после проверки текущего
func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	valid, err := s.verifyPassword(ctx, user, currentPassword, false)
	if err != nil {
		return err
	}
	if !valid {
		return ErrIncorrectPassword
	}

	passwordHash, err := util.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// verifyPassword сверяет пароль с хранимым креденшлом.
// Миграционный путь для bootstrap-админов: если у пользователя с ролью admin
// хранится незахэшированный пароль, совпадающий с введенным, вход разрешается,
// а при rehash=true креденшл тут же перехэшируется и сохраняется.
// К ролям user и store_owner этот путь не применяется.
func (s *AuthService) verifyPassword(ctx context.Context, user *entity.User, password string, rehash bool) (bool, error) {
	if user.Role == entity.RoleAdmin && user.PasswordHash == password {
		if rehash {
			passwordHash, err := util.HashPassword(password)
			if err != nil {
				return false, fmt.Errorf("failed to hash legacy password: %w", err)
			}
			if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
				return false, fmt.Errorf("failed to migrate legacy password: %w", err)
			}
			user.PasswordHash = passwordHash
			metrics.AuthLegacyMigrations.Inc()
			logger.Warn().
				Str("user_id", user.ID.String()).
				Msg("legacy admin password rehashed on login")
		}
		return true, nil
	}

	return util.CheckPassword(password, user.PasswordHash), nil
}

func (s *AuthService) validateProfile(name, email, address string) error {
	if err := util.ValidateName(name); err != nil {
		return err
	}
	if err := util.ValidateEmail(email); err != nil {
		return err
	}
	if err := util.ValidateAddress(address); err != nil {
		return err
	}
	return nil
}
