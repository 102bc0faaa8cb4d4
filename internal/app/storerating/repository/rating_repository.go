package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storerating/internal/app/storerating/entity"
)

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository создает новый репозиторий оценок
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// upsertResult — результат атомарного upsert
type upsertResult struct {
	Inserted  bool      `gorm:"column:inserted"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// Upsert вставляет оценку или заменяет существующую для пары (user_id, store_id)
// одним запросом. Составной первичный ключ ratings гарантирует отсутствие
// дубликатов при конкурентных запросах: проверка и запись не разделены.
// xmax = 0 только у свежевставленной строки, по нему отличаем insert от update.
func (r *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) (bool, error) {
	query := `
		INSERT INTO ratings (user_id, store_id, rating, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id, store_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
		RETURNING (xmax = 0) AS inserted, created_at, updated_at
	`

	var res upsertResult
	result := r.db.WithContext(ctx).
		Raw(query, rating.UserID, rating.StoreID, rating.Rating).
		Scan(&res)

	if result.Error != nil {
		return false, result.Error
	}

	rating.CreatedAt = res.CreatedAt
	rating.UpdatedAt = res.UpdatedAt

	return res.Inserted, nil
}

// ListByStore получает все оценки магазина с именами оценивших,
// новые первыми
func (r *ratingRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]entity.StoreRater, error) {
	query := `
		SELECT r.user_id, u.name, u.email, r.rating, r.created_at, r.updated_at
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.store_id = ?
		ORDER BY r.created_at DESC
	`

	var raters []entity.StoreRater
	result := r.db.WithContext(ctx).Raw(query, storeID).Scan(&raters)

	if result.Error != nil {
		return nil, result.Error
	}

	return raters, nil
}

// AverageForStore вычисляет среднюю оценку магазина.
// Возвращает nil, когда оценок нет — не 0.
func (r *ratingRepository) AverageForStore(ctx context.Context, storeID uuid.UUID) (*float64, error) {
	query := `SELECT AVG(rating) FROM ratings WHERE store_id = ?`

	row := r.db.WithContext(ctx).Raw(query, storeID).Row()

	var avg sql.NullFloat64
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}

	if !avg.Valid {
		return nil, nil
	}

	return &avg.Float64, nil
}
