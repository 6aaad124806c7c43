package models

import "time"

// TimeRange is one working window within a day, in minutes from midnight.
// Start is inclusive, End exclusive; 0 <= Start < End <= 1440.
type TimeRange struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// DayHours describes a member's availability template for one weekday.
// Open implies at least one range; ranges are sorted and non-overlapping.
type DayHours struct {
	Open   bool        `bson:"open" json:"open"`
	Ranges []TimeRange `bson:"ranges,omitempty" json:"ranges,omitempty"`
}

// WeeklySchedule is a member's recurring weekly template, indexed by
// time.Weekday (Sunday = 0).
type WeeklySchedule [7]DayHours

// Day returns the template for the given weekday.
func (ws WeeklySchedule) Day(d time.Weekday) DayHours {
	return ws[int(d)]
}

// HasOpenDay reports whether any weekday is open.
func (ws WeeklySchedule) HasOpenDay() bool {
	for _, day := range ws {
		if day.Open {
			return true
		}
	}
	return false
}

// Member is a bookable staff member at a provider location.
type Member struct {
	ID         string         `bson:"id" json:"id"`
	ProviderID string         `bson:"providerId" json:"providerId"`
	LocationID string         `bson:"locationId" json:"locationId"`
	Name       string         `bson:"name" json:"name"`
	Active     bool           `bson:"active" json:"active"`
	Schedule   WeeklySchedule `bson:"schedule" json:"schedule"`
	CreatedAt  time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time      `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
