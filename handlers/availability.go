package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"slotify/config"
	"slotify/models"
	"slotify/services/scheduling"
	"slotify/utils"
)

// AvailabilityHandler serves the booking flow's slot queries.
type AvailabilityHandler struct {
	Scheduler scheduling.SchedulingService
	Cache     *redis.Client
	Logger    *zap.Logger
}

func NewAvailabilityHandler(scheduler scheduling.SchedulingService, cache *redis.Client, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Scheduler: scheduler, Cache: cache, Logger: logger}
}

// GetAvailableSlots handles GET /api/availability. Defaults to a seven-day
// window starting today when no range is given.
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	req := scheduling.AvailabilityRequest{
		ProviderID: c.Query("providerId"),
		ServiceID:  c.Query("serviceId"),
		LocationID: c.Query("locationId"),
		MemberID:   c.Query("memberId"),
		FromDate:   c.Query("from"),
		ToDate:     c.Query("to"),
	}
	if req.ProviderID == "" || req.ServiceID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "providerId and serviceId are required")
		return
	}
	if req.FromDate == "" {
		req.FromDate = time.Now().Format(models.DateLayout)
	}
	if req.ToDate == "" {
		from, err := models.ParseDate(req.FromDate, time.Local)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", fmt.Sprintf("from: %v", err))
			return
		}
		req.ToDate = from.AddDate(0, 0, 6).Format(models.DateLayout)
	}

	ctx := c.Request.Context()
	cacheKey := availabilityCacheKey(req)
	cacheTTL := time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second

	if h.Cache != nil && cacheTTL > 0 {
		if cached, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		} else if err != redis.Nil {
			h.Logger.Warn("availability cache read failed", zap.Error(err))
		}
	}

	result, err := h.Scheduler.GetAvailableSlots(ctx, req)
	if err != nil {
		var invalid *scheduling.InvalidInputError
		var unavailable *scheduling.DataUnavailableError
		switch {
		case errors.As(err, &invalid):
			utils.JSONError(c, http.StatusBadRequest, "invalid input", invalid.Reason)
		case errors.As(err, &unavailable):
			// All members failed: distinct from an empty slot list.
			c.JSON(http.StatusServiceUnavailable, result)
		default:
			h.Logger.Error("availability query failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to load availability", err.Error())
		}
		return
	}

	if h.Cache != nil && cacheTTL > 0 {
		if payload, err := json.Marshal(result); err == nil {
			if err := h.Cache.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
				h.Logger.Warn("availability cache write failed", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, result)
}

func availabilityCacheKey(req scheduling.AvailabilityRequest) string {
	return fmt.Sprintf("availability:%s:%s:%s:%s:%s:%s",
		req.ProviderID, req.ServiceID, req.LocationID, req.MemberID, req.FromDate, req.ToDate)
}

// InvalidateProviderAvailability drops all cached availability responses
// for one provider. Called from the write paths.
func InvalidateProviderAvailability(ctx context.Context, cache *redis.Client, providerID string) {
	if cache == nil || providerID == "" {
		return
	}
	utils.InvalidateCachePrefix(ctx, cache, "availability:"+providerID+":")
}
