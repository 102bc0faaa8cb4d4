package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storerating/internal/app/storerating/entity"
	"storerating/pkg/logger"
	"storerating/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin.
// Таблица авторизации живет здесь: для каждой операции перечислен
// разрешенный набор ролей через RequireRole.
func SetupRoutes(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	storeHandler *StoreHandler,
	ratingHandler *RatingHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("store-rating-api"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "store-rating-api",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Аутентификация
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.PUT("/update-password", authMiddleware.Authenticate(), authHandler.UpdatePassword)
	}

	// Магазины: чтение открыто (с опциональной аннотацией оценкой вызывающего),
	// создание — только админ, дашборд — только владелец
	stores := router.Group("/stores")
	{
		stores.GET("", authMiddleware.OptionalAuthenticate(), storeHandler.List)
		stores.GET("/:id", authMiddleware.OptionalAuthenticate(), storeHandler.GetByID)
		stores.POST("",
			authMiddleware.Authenticate(),
			authMiddleware.RequireRole(entity.RoleAdmin),
			storeHandler.Create,
		)
		stores.GET("/dashboard/owner",
			authMiddleware.Authenticate(),
			authMiddleware.RequireRole(entity.RoleStoreOwner),
			storeHandler.OwnerDashboard,
		)
	}

	// Оценки: выставление требует аутентификации (любая роль), чтение открыто
	ratings := router.Group("/ratings")
	{
		ratings.POST("", authMiddleware.Authenticate(), ratingHandler.Submit)
		ratings.GET("/store/:store_id", ratingHandler.StoreRatings)
	}

	// Пользователи и статистика — только админ
	users := router.Group("/users")
	users.Use(authMiddleware.Authenticate())
	users.Use(authMiddleware.RequireRole(entity.RoleAdmin))
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/stats/dashboard", userHandler.DashboardStats)
		users.GET("/:id", userHandler.GetByID)
	}

	return router
}
