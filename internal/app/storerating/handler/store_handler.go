package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"storerating/internal/app/storerating/entity"
	"storerating/internal/app/storerating/service"
	"storerating/pkg/metrics"
)

type StoreHandler struct {
	storeService service.StoreServiceInterface
	validator    *validator.Validate
}

func NewStoreHandler(storeService service.StoreServiceInterface) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		validator:    validator.New(),
	}
}

// Create создает магазин (только админ, проверяется маршрутом)
func (h *StoreHandler) Create(c *gin.Context) {
	var req entity.CreateStoreRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": formatValidationError(err),
		})
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Store with this email already exists",
			})
		case errors.Is(err, service.ErrInvalidOwner):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Invalid owner ID or user is not a store owner",
			})
		case service.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to create store",
			})
		}
		return
	}

	metrics.StoresCreated.Inc()

	c.JSON(http.StatusCreated, entity.SuccessResponse{
		Message: "Store created successfully",
		Data:    store,
	})
}

// List получает магазины с фильтрами name/address.
// Для аутентифицированного вызывающего строки содержат его оценку.
func (h *StoreHandler) List(c *gin.Context) {
	filter := entity.StoreFilter{
		Name:    c.Query("name"),
		Address: c.Query("address"),
	}

	stores, err := h.storeService.List(c.Request.Context(), filter, optionalUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list stores",
		})
		return
	}

	c.JSON(http.StatusOK, stores)
}

// GetByID получает магазин с агрегатами
func (h *StoreHandler) GetByID(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid store ID",
		})
		return
	}

	store, err := h.storeService.GetByID(c.Request.Context(), storeID, optionalUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Store not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get store",
		})
		return
	}

	c.JSON(http.StatusOK, store)
}

// OwnerDashboard отдает владельцу его магазин с оценками
func (h *StoreHandler) OwnerDashboard(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Unauthorized",
		})
		return
	}

	dashboard, err := h.storeService.OwnerDashboard(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, service.ErrNoStoreAssigned) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "No store found for this owner",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get store dashboard",
		})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
