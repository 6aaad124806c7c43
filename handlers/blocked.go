package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"slotify/services/scheduling"
	"slotify/utils"
)

// BlockedPeriodHandler serves the pro surface's block-slot flow.
type BlockedPeriodHandler struct {
	Scheduler scheduling.SchedulingService
	Cache     *redis.Client
	Logger    *zap.Logger
}

func NewBlockedPeriodHandler(scheduler scheduling.SchedulingService, cache *redis.Client, logger *zap.Logger) *BlockedPeriodHandler {
	return &BlockedPeriodHandler{Scheduler: scheduler, Cache: cache, Logger: logger}
}

type createBlockedPeriodRequest struct {
	ProviderID string   `json:"providerId" binding:"required"`
	MemberIDs  []string `json:"memberIds,omitempty"` // multi-member convenience
	scheduling.BlockPeriodInput
}

// CreateBlockedPeriod handles POST /api/members/blocked-periods. With
// memberIds set, the period is created for each member independently and
// the per-member outcomes are returned; otherwise a single create.
func (h *BlockedPeriodHandler) CreateBlockedPeriod(c *gin.Context) {
	var req createBlockedPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()

	if len(req.MemberIDs) > 0 {
		results := h.Scheduler.BlockPeriodForMembers(ctx, req.MemberIDs, req.BlockPeriodInput)
		InvalidateProviderAvailability(ctx, h.Cache, req.ProviderID)
		c.JSON(http.StatusOK, gin.H{"results": results})
		return
	}

	period, err := h.Scheduler.BlockPeriod(ctx, req.BlockPeriodInput)
	if err != nil {
		var validation *scheduling.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusUnprocessableEntity, utils.ErrorResponse{
				Message: "validation failed",
				Details: validation.Reason,
				Field:   validation.Field,
			})
			return
		}
		h.Logger.Error("failed to create blocked period", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create blocked period", err.Error())
		return
	}

	InvalidateProviderAvailability(ctx, h.Cache, req.ProviderID)
	c.JSON(http.StatusCreated, period)
}

// DeleteBlockedPeriod handles
// DELETE /api/members/:memberId/blocked-periods/:id.
func (h *BlockedPeriodHandler) DeleteBlockedPeriod(c *gin.Context) {
	memberID := c.Param("memberId")
	periodID := c.Param("id")

	if err := h.Scheduler.RemoveBlockedPeriod(c.Request.Context(), memberID, periodID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "blocked period not found", periodID)
			return
		}
		h.Logger.Error("failed to delete blocked period", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete blocked period", err.Error())
		return
	}

	InvalidateProviderAvailability(c.Request.Context(), h.Cache, c.Query("providerId"))
	c.Status(http.StatusNoContent)
}
