package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storerating/internal/app/storerating/entity"
)

var (
	ErrStoreNotFound = errors.New("store not found")
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository создает новый репозиторий магазинов
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// Create создает новый магазин
func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	result := r.db.WithContext(ctx).Create(store)
	return result.Error
}

// GetByID получает магазин по ID
func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var store entity.Store
	result := r.db.WithContext(ctx).First(&store, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, result.Error
	}

	return &store, nil
}

// GetByEmail получает магазин по email
func (r *storeRepository) GetByEmail(ctx context.Context, email string) (*entity.Store, error) {
	var store entity.Store
	result := r.db.WithContext(ctx).First(&store, "email = ?", email)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, result.Error
	}

	return &store, nil
}

// GetByOwnerID получает магазин, принадлежащий владельцу
func (r *storeRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	var store entity.Store
	result := r.db.WithContext(ctx).First(&store, "owner_id = ?", ownerID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, result.Error
	}

	return &store, nil
}

// GetWithRating получает магазин со средней оценкой и, если передан userID,
// с собственной оценкой этого пользователя
func (r *storeRepository) GetWithRating(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*entity.StoreWithRating, error) {
	query := `
		SELECT s.id, s.name, s.email, s.address, s.owner_id, s.created_at,
		       (SELECT AVG(r.rating) FROM ratings r WHERE r.store_id = s.id) AS average_rating,
		       (SELECT r.rating FROM ratings r WHERE r.store_id = s.id AND r.user_id = ?) AS user_rating
		FROM stores s
		WHERE s.id = ?
	`

	var store entity.StoreWithRating
	result := r.db.WithContext(ctx).Raw(query, uuidOrNil(userID), id).Scan(&store)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrStoreNotFound
	}

	return &store, nil
}

// List получает магазины с фильтрами (подстрочный поиск по имени и адресу).
// Каждая строка аннотируется средней оценкой и оценкой вызывающего.
func (r *storeRepository) List(ctx context.Context, filter entity.StoreFilter, userID *uuid.UUID) ([]entity.StoreWithRating, error) {
	query := `
		SELECT s.id, s.name, s.email, s.address, s.owner_id, s.created_at,
		       (SELECT AVG(r.rating) FROM ratings r WHERE r.store_id = s.id) AS average_rating,
		       (SELECT r.rating FROM ratings r WHERE r.store_id = s.id AND r.user_id = ?) AS user_rating
		FROM stores s
		WHERE 1=1
	`

	args := []interface{}{uuidOrNil(userID)}

	if filter.Name != "" {
		query += " AND s.name ILIKE ?"
		args = append(args, "%"+filter.Name+"%")
	}

	if filter.Address != "" {
		query += " AND s.address ILIKE ?"
		args = append(args, "%"+filter.Address+"%")
	}

	query += " ORDER BY s.name ASC"

	var stores []entity.StoreWithRating
	result := r.db.WithContext(ctx).Raw(query, args...).Scan(&stores)

	if result.Error != nil {
		return nil, result.Error
	}

	return stores, nil
}

// uuidOrNil разворачивает опциональный UUID в аргумент запроса.
// NULL в сравнении user_id = NULL дает пустой подзапрос и user_rating NULL.
func uuidOrNil(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
