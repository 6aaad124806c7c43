package models

import "time"

// BlockedPeriod removes availability for a member across a date range:
// a vacation, an absence, or an ad-hoc closure. When AllDay is false the
// block applies only between StartTime and EndTime on each covered day.
type BlockedPeriod struct {
	ID         string    `bson:"id" json:"id"`
	MemberID   string    `bson:"memberId" json:"memberId"`
	LocationID string    `bson:"locationId" json:"locationId"`
	StartDate  string    `bson:"startDate" json:"startDate"` // "2006-01-02"
	EndDate    string    `bson:"endDate" json:"endDate"`     // inclusive
	AllDay     bool      `bson:"allDay" json:"allDay"`
	StartTime  string    `bson:"startTime,omitempty" json:"startTime,omitempty"` // "HH:MM"
	EndTime    string    `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Recurring  bool      `bson:"recurring" json:"recurring"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// CoversDate reports whether the period's date span includes the given day.
// Date strings in DateLayout compare correctly as plain strings.
func (bp BlockedPeriod) CoversDate(date string) bool {
	return bp.StartDate <= date && date <= bp.EndDate
}
