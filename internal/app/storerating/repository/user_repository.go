package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storerating/internal/app/storerating/entity"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create создает нового пользователя
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Create(user)
	return result.Error
}

// GetByID получает пользователя по ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// GetByEmail получает пользователя по email (точное совпадение)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", email)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// UpdatePassword заменяет хэш пароля пользователя
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetWithRating получает пользователя со средней оценкой его магазина.
// average_rating NULL для всех, кроме владельцев магазинов с оценками.
func (r *userRepository) GetWithRating(ctx context.Context, id uuid.UUID) (*entity.UserWithRating, error) {
	query := `
		SELECT u.id, u.name, u.email, u.address, u.role, u.created_at,
		       AVG(r.rating) AS average_rating
		FROM users u
		LEFT JOIN stores s ON s.owner_id = u.id
		LEFT JOIN ratings r ON r.store_id = s.id
		WHERE u.id = ?
		GROUP BY u.id
	`

	var user entity.UserWithRating
	result := r.db.WithContext(ctx).Raw(query, id).Scan(&user)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

// List получает пользователей с фильтрами: подстрочный поиск по имени,
// email и адресу, точное совпадение по роли
func (r *userRepository) List(ctx context.Context, filter entity.UserFilter) ([]entity.UserWithRating, error) {
	query := `
		SELECT u.id, u.name, u.email, u.address, u.role, u.created_at,
		       AVG(r.rating) AS average_rating
		FROM users u
		LEFT JOIN stores s ON s.owner_id = u.id
		LEFT JOIN ratings r ON r.store_id = s.id
		WHERE 1=1
	`

	var args []interface{}

	if filter.Name != "" {
		query += " AND u.name ILIKE ?"
		args = append(args, "%"+filter.Name+"%")
	}

	if filter.Email != "" {
		query += " AND u.email ILIKE ?"
		args = append(args, "%"+filter.Email+"%")
	}

	if filter.Address != "" {
		query += " AND u.address ILIKE ?"
		args = append(args, "%"+filter.Address+"%")
	}

	if filter.Role != "" {
		query += " AND u.role = ?"
		args = append(args, filter.Role)
	}

	query += " GROUP BY u.id ORDER BY u.name ASC"

	var users []entity.UserWithRating
	result := r.db.WithContext(ctx).Raw(query, args...).Scan(&users)

	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}
