package repository

import (
	"context"

	"gorm.io/gorm"

	"storerating/internal/app/storerating/entity"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository создает репозиторий агрегированной статистики
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// DashboardStats получает счетчики пользователей, магазинов и оценок
// одним запросом
func (r *statsRepository) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM stores) AS total_stores,
			(SELECT COUNT(*) FROM ratings) AS total_ratings
	`

	var stats entity.DashboardStats
	result := r.db.WithContext(ctx).Raw(query).Scan(&stats)

	if result.Error != nil {
		return nil, result.Error
	}

	return &stats, nil
}
