package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Аутентификация
// =============================================================================

// AuthRegistrations - успешные регистрации
var AuthRegistrations = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Total number of successful user registrations",
	},
)

// AuthLogins - попытки входа по результату
var AuthLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"result"}, // success, failed
)

// AuthLegacyMigrations - перехэширования паролей bootstrap-админов
var AuthLegacyMigrations = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_legacy_password_migrations_total",
		Help: "Total number of legacy admin passwords rehashed on login",
	},
)

// =============================================================================
// Оценки
// =============================================================================

// RatingsSubmitted - выставленные оценки по типу операции
var RatingsSubmitted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ratings_submitted_total",
		Help: "Total number of submitted ratings",
	},
	[]string{"operation"}, // created, updated
)

// RatingValues - распределение значений оценок
var RatingValues = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "rating_values",
		Help:    "Distribution of submitted rating values",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// StoresCreated - созданные магазины
var StoresCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "stores_created_total",
		Help: "Total number of stores created",
	},
)

// =============================================================================
// Redis
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// =============================================================================
// Kafka
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of messages produced to Kafka",
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Фоновые задачи
// =============================================================================

// CacheWarmRuns - запуски прогрева кеша по результату
var CacheWarmRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_warm_runs_total",
		Help: "Total number of cache warm runs",
	},
	[]string{"status"}, // success, failed
)
