package models

import "time"

// Booking statuses. Only pending and confirmed bookings occupy a member's
// time; cancelled and no-show bookings no longer block slot generation.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusNoShow    = "noshow"
)

// ActiveBookingStatuses are the statuses that hold a member's time.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

// Booking is a client appointment occupying a fixed interval for one member.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	MemberID   string    `bson:"memberId" json:"memberId"`
	LocationID string    `bson:"locationId" json:"locationId"`
	ServiceID  string    `bson:"serviceId" json:"serviceId"`
	ClientID   string    `bson:"clientId,omitempty" json:"clientId,omitempty"`
	Date       string    `bson:"date" json:"date"` // "2006-01-02", primary query key
	StartsAt   time.Time `bson:"startsAt" json:"startsAt"`
	EndsAt     time.Time `bson:"endsAt" json:"endsAt"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsActive reports whether the booking still occupies its interval.
func (b Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Overlaps reports whether [start, end) intersects the booking's interval.
func (b Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndsAt) && end.After(b.StartsAt)
}
