package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "slotify/database/repository/booking"
	"slotify/services/scheduling"
	"slotify/utils"
)

// BookingHandler serves the booking-confirmation flow.
type BookingHandler struct {
	Scheduler scheduling.SchedulingService
	Cache     *redis.Client
	Logger    *zap.Logger
}

func NewBookingHandler(scheduler scheduling.SchedulingService, cache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Scheduler: scheduler, Cache: cache, Logger: logger}
}

// ConfirmBooking handles POST /api/bookings. The chosen candidate slot is
// re-validated against current bookings before anything is written.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var req scheduling.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	booking, err := h.Scheduler.ConfirmBooking(ctx, req)
	if err != nil {
		var invalid *scheduling.InvalidInputError
		switch {
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			utils.JSONError(c, http.StatusConflict, "slot no longer available", "the selected slot was booked by someone else")
		case errors.As(err, &invalid):
			utils.JSONError(c, http.StatusBadRequest, "invalid input", invalid.Reason)
		default:
			h.Logger.Error("failed to confirm booking", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to confirm booking", err.Error())
		}
		return
	}

	InvalidateProviderAvailability(ctx, h.Cache, req.ProviderID)
	c.JSON(http.StatusCreated, booking)
}

// CancelBooking handles POST /api/bookings/:id/cancel. The freed interval
// shows up again on the next availability query.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")

	if err := h.Scheduler.CancelBooking(c.Request.Context(), bookingID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", bookingID)
			return
		}
		h.Logger.Error("failed to cancel booking", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
		return
	}

	InvalidateProviderAvailability(c.Request.Context(), h.Cache, c.Query("providerId"))
	c.Status(http.StatusNoContent)
}
