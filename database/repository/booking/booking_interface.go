package bookingRepo

import (
	"context"
	"time"

	"slotify/models"
)

// BookingRepository defines access to appointment bookings. Slot generation
// consumes ListActiveForMember read-only; Create re-validates member
// exclusivity at write time since the read snapshot used for generation may
// be stale by the time the client confirms.
type BookingRepository interface {
	// ListActiveForMember returns pending and confirmed bookings whose
	// interval intersects [from, to), ordered by start time.
	ListActiveForMember(ctx context.Context, memberID string, from, to time.Time) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, bookingID, status string) error
	EnsureIndexes() error
}
