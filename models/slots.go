package models

import "time"

// CandidateSlot is a bookable interval proposed by the slot generator.
// It is never persisted; the booking flow uses it as its selection key.
type CandidateSlot struct {
	Date      string    `json:"date"`  // "2006-01-02"
	Start     int       `json:"start"` // minutes from midnight
	End       int       `json:"end"`
	StartTime string    `json:"startTime"` // "HH:MM"
	EndTime   string    `json:"endTime"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	MemberID  string    `json:"memberId"`
}

// SchedulingPolicy carries the provider-configurable knobs applied during
// slot generation.
type SchedulingPolicy struct {
	SlotGranularityMinutes int `bson:"slotGranularityMinutes" json:"slotGranularityMinutes"`
	MinLeadTimeMinutes     int `bson:"minLeadTimeMinutes" json:"minLeadTimeMinutes"`
	MaxAdvanceDays         int `bson:"maxAdvanceDays" json:"maxAdvanceDays"`
}

// DefaultSchedulingPolicy returns the policy used when a provider has not
// configured its own.
func DefaultSchedulingPolicy() SchedulingPolicy {
	return SchedulingPolicy{
		SlotGranularityMinutes: 15,
		MinLeadTimeMinutes:     0,
		MaxAdvanceDays:         60,
	}
}

// Normalize fills zero-valued fields with defaults so a partially
// configured provider policy still behaves sensibly.
func (p SchedulingPolicy) Normalize() SchedulingPolicy {
	def := DefaultSchedulingPolicy()
	if p.SlotGranularityMinutes <= 0 {
		p.SlotGranularityMinutes = def.SlotGranularityMinutes
	}
	if p.MinLeadTimeMinutes < 0 {
		p.MinLeadTimeMinutes = def.MinLeadTimeMinutes
	}
	if p.MaxAdvanceDays <= 0 {
		p.MaxAdvanceDays = def.MaxAdvanceDays
	}
	return p
}

// AvailabilityResult is the aggregator's merged output across members.
type AvailabilityResult struct {
	Slots             []CandidateSlot `json:"slots"`
	FailedMembers     int             `json:"failedMembers,omitempty"`
	AvailabilityError string          `json:"availabilityError,omitempty"`
}
