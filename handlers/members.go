package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	memberRepo "slotify/database/repository/member"
	"slotify/utils"
)

// MemberHandler serves member listings for both surfaces.
type MemberHandler struct {
	Members memberRepo.MemberRepository
	Logger  *zap.Logger
}

func NewMemberHandler(members memberRepo.MemberRepository, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{Members: members, Logger: logger}
}

// ListActiveMembers handles GET /api/providers/:id/members.
func (h *MemberHandler) ListActiveMembers(c *gin.Context) {
	providerID := c.Param("id")
	locationID := c.Query("locationId")

	members, err := h.Members.ListActiveByProvider(c.Request.Context(), providerID, locationID)
	if err != nil {
		h.Logger.Error("failed to list members", zap.String("providerId", providerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list members", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}
