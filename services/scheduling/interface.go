package scheduling

import (
	"context"

	"slotify/models"
)

// AvailabilityRequest asks for bookable slots for one service across a
// provider's members (or a single member when MemberID is set).
type AvailabilityRequest struct {
	ProviderID string
	ServiceID  string
	LocationID string
	MemberID   string
	FromDate   string // "2006-01-02", inclusive
	ToDate     string // inclusive
}

// BookingRequest confirms a candidate slot the client picked.
type BookingRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	ServiceID  string `json:"serviceId" binding:"required"`
	MemberID   string `json:"memberId" binding:"required"`
	ClientID   string `json:"clientId,omitempty"`
	Date       string `json:"date" binding:"required"`      // "2006-01-02"
	StartTime  string `json:"startTime" binding:"required"` // "HH:MM"
}

// SchedulingService is the availability core exposed to the booking and
// block-slot flows.
type SchedulingService interface {
	GetAvailableSlots(ctx context.Context, req AvailabilityRequest) (models.AvailabilityResult, error)
	BlockPeriod(ctx context.Context, in BlockPeriodInput) (*models.BlockedPeriod, error)
	BlockPeriodForMembers(ctx context.Context, memberIDs []string, in BlockPeriodInput) []MemberBlockResult
	RemoveBlockedPeriod(ctx context.Context, memberID, periodID string) error
	ConfirmBooking(ctx context.Context, req BookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
}
