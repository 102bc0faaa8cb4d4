package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storerating/internal/app/storerating/entity"
	"storerating/internal/app/storerating/repository"
	"storerating/internal/app/storerating/util"
	"storerating/pkg/logger"
)

// RatingService обрабатывает бизнес-логику оценок.
// Координирует репозиторий, кеш агрегатов и Kafka producer.
type RatingService struct {
	ratingRepo    repository.RatingRepository
	storeRepo     repository.StoreRepository
	cacheRepo     repository.RatingCacheRepository
	kafkaProducer MessagePublisher
}

// NewRatingService создает новый сервис оценок с внедрением зависимостей
func NewRatingService(
	ratingRepo repository.RatingRepository,
	storeRepo repository.StoreRepository,
	cacheRepo repository.RatingCacheRepository,
	kafkaProducer MessagePublisher,
) *RatingService {
	return &RatingService{
		ratingRepo:    ratingRepo,
		storeRepo:     storeRepo,
		cacheRepo:     cacheRepo,
		kafkaProducer: kafkaProducer,
	}
}

// Submit выставляет оценку магазину. Повторная оценка той же пары
// (user_id, store_id) заменяет значение, а не создает новую запись.
// Возвращает true, если оценка создана впервые.
func (s *RatingService) Submit(ctx context.Context, userID uuid.UUID, req *entity.SubmitRatingRequest) (bool, *entity.Rating, error) {
	if err := util.ValidateRating(req.Rating); err != nil {
		return false, nil, err
	}

	// Магазин должен существовать до записи оценки
	if _, err := s.storeRepo.GetByID(ctx, req.StoreID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return false, nil, ErrStoreNotFound
		}
		return false, nil, fmt.Errorf("failed to check store: %w", err)
	}

	rating := &entity.Rating{
		UserID:  userID,
		StoreID: req.StoreID,
		Rating:  req.Rating,
	}

	created, err := s.ratingRepo.Upsert(ctx, rating)
	if err != nil {
		return false, nil, fmt.Errorf("failed to upsert rating: %w", err)
	}

	// Сбрасываем кеш агрегата, чтобы следующее чтение отдало свежую среднюю
	if err := s.cacheRepo.InvalidateStoreAverage(ctx, req.StoreID); err != nil {
		logger.Warn().
			Err(err).
			Str("store_id", req.StoreID.String()).
			Msg("failed to invalidate store average cache")
	}

	s.publishRatingEvent(ctx, created, rating)

	return created, rating, nil
}

// StoreRatings получает все оценки магазина с агрегатом
func (s *RatingService) StoreRatings(ctx context.Context, storeID uuid.UUID) (*entity.StoreRatingsResponse, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to check store: %w", err)
	}

	raters, err := s.ratingRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	average, err := lookupStoreAverage(ctx, s.ratingRepo, s.cacheRepo, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get average: %w", err)
	}

	return &entity.StoreRatingsResponse{
		Ratings:       raters,
		AverageRating: average,
		TotalRatings:  len(raters),
	}, nil
}

// WarmStoreAverages прогревает кеш средних оценок по всем магазинам.
// Средние уже посчитаны запросом списка, остается разложить их по ключам.
func (s *RatingService) WarmStoreAverages(ctx context.Context) error {
	stores, err := s.storeRepo.List(ctx, entity.StoreFilter{}, nil)
	if err != nil {
		return fmt.Errorf("failed to list stores: %w", err)
	}

	var failed int
	for _, store := range stores {
		if err := s.cacheRepo.SetStoreAverage(ctx, store.ID, store.AverageRating); err != nil {
			failed++
			logger.Warn().
				Err(err).
				Str("store_id", store.ID.String()).
				Msg("failed to warm store average cache")
		}
	}

	logger.Info().
		Int("stores", len(stores)).
		Int("failed", failed).
		Msg("store average cache warmed")

	if failed > 0 {
		return fmt.Errorf("failed to warm %d of %d store averages", failed, len(stores))
	}
	return nil
}

// publishRatingEvent отправляет событие об оценке в Kafka.
// Оценка уже записана, проблемы с Kafka не критичны — только логируем.
func (s *RatingService) publishRatingEvent(ctx context.Context, created bool, rating *entity.Rating) {
	eventType := "RATING_UPDATED"
	if created {
		eventType = "RATING_CREATED"
	}

	event := entity.RatingEvent{
		EventType: eventType,
		UserID:    rating.UserID.String(),
		StoreID:   rating.StoreID.String(),
		Rating:    rating.Rating,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal rating event")
		return
	}

	// Ключ = StoreID, чтобы события одного магазина шли в одну партицию
	if err := s.kafkaProducer.PublishMessage(ctx, event.StoreID, eventData); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", eventType).
			Str("store_id", event.StoreID).
			Msg("failed to publish rating event")
	}
}

// lookupStoreAverage читает среднюю оценку магазина через кеш.
// Ошибки Redis не фатальны: при любой проблеме падаем на запрос в БД.
func lookupStoreAverage(
	ctx context.Context,
	ratingRepo repository.RatingRepository,
	cacheRepo repository.RatingCacheRepository,
	storeID uuid.UUID,
) (*float64, error) {
	average, found, err := cacheRepo.GetStoreAverage(ctx, storeID)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("store_id", storeID.String()).
			Msg("failed to read store average cache")
	} else if found {
		return average, nil
	}

	average, err = ratingRepo.AverageForStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if err := cacheRepo.SetStoreAverage(ctx, storeID, average); err != nil {
		logger.Warn().
			Err(err).
			Str("store_id", storeID.String()).
			Msg("failed to cache store average")
	}

	return average, nil
}
