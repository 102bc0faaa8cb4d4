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

type RatingHandler struct {
	ratingService service.RatingServiceInterface
	validator     *validator.Validate
}

func NewRatingHandler(ratingService service.RatingServiceInterface) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validator.New(),
	}
}

// Submit выставляет оценку магазину.
// 201 при первой оценке пары (user, store), 200 при замене существующей.
func (h *RatingHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Unauthorized",
		})
		return
	}

	var req entity.SubmitRatingRequest

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

	created, rating, err := h.ratingService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case service.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Store not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to submit rating",
			})
		}
		return
	}

	metrics.RatingValues.Observe(float64(rating.Rating))

	if created {
		metrics.RatingsSubmitted.WithLabelValues("created").Inc()
		c.JSON(http.StatusCreated, entity.SuccessResponse{
			Message: "Rating submitted successfully",
			Data:    rating,
		})
		return
	}

	metrics.RatingsSubmitted.WithLabelValues("updated").Inc()
	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Rating updated successfully",
		Data:    rating,
	})
}

// StoreRatings получает оценки магазина со средней
func (h *RatingHandler) StoreRatings(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("store_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid store ID",
		})
		return
	}

	resp, err := h.ratingService.StoreRatings(c.Request.Context(), storeID)
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
			"message": "Failed to get store ratings",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
