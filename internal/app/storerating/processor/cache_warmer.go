package processor

import (
	"context"

	"github.com/robfig/cron/v3"

	"storerating/internal/app/storerating/service"
	"storerating/pkg/logger"
	"storerating/pkg/metrics"
)

// CacheWarmer периодически прогревает кеш средних оценок магазинов,
// чтобы первые чтения после инвалидации не били по БД
type CacheWarmer struct {
	cron      *cron.Cron
	ratingSvc service.RatingServiceInterface
}

func NewCacheWarmer(ratingSvc service.RatingServiceInterface) *CacheWarmer {
	return &CacheWarmer{
		cron:      cron.New(),
		ratingSvc: ratingSvc,
	}
}

func (w *CacheWarmer) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting cache warmer")

	_, err := w.cron.AddFunc(schedule, func() {
		w.warm(ctx)
	})
	if err != nil {
		return err
	}

	w.cron.Start()

	// Первичный прогрев сразу при старте, не дожидаясь расписания
	w.warm(ctx)

	return nil
}

func (w *CacheWarmer) Stop() {
	logger.Info().Msg("stopping cache warmer")
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("cache warmer stopped")
}

func (w *CacheWarmer) Entries() []cron.Entry {
	return w.cron.Entries()
}

func (w *CacheWarmer) warm(ctx context.Context) {
	if err := w.ratingSvc.WarmStoreAverages(ctx); err != nil {
		metrics.CacheWarmRuns.WithLabelValues("failed").Inc()
		logger.Error().Err(err).Msg("cache warm run failed")
		return
	}
	metrics.CacheWarmRuns.WithLabelValues("success").Inc()
}
