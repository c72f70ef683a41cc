package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reservo/database/repository"
	"reservo/models"
	"reservo/services/booking"
)

// BookingHandler exposes the explicit booking endpoints used when the
// caller already holds a complete selection.
type BookingHandler struct {
	Finalizer booking.FinalizerService
	Repo      repository.BookingRepository
	Logger    *zap.Logger
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.TenantID = tenantID(c)

	created, err := h.Finalizer.CreateBooking(c.Request.Context(), req)
	if err != nil {
		var missing *booking.MissingSelectionError
		if errors.As(err, &missing) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "incomplete selection",
				"message": err.Error(),
			})
			return
		}
		h.Logger.Error("CreateBooking: finalize failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to create booking",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")

	bk, err := h.Repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	c.JSON(http.StatusOK, bk)
}
