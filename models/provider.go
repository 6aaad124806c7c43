package models

import "time"

// Service is one bookable offering from a provider's catalogue.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64 `bson:"price,omitempty" json:"price,omitempty"`
	Currency        string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

// Location is a physical site where a provider's members take bookings.
type Location struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Address  string `bson:"address,omitempty" json:"address,omitempty"`
	Timezone string `bson:"timezone,omitempty" json:"timezone,omitempty"` // IANA name, e.g. "Europe/Paris"
}

// Provider is a business account: its catalogue, its locations, and its
// scheduling policy. Members reference the provider by ID.
type Provider struct {
	ID        string           `bson:"id" json:"id"`
	Name      string           `bson:"name" json:"name"`
	Active    bool             `bson:"active" json:"active"`
	Services  []Service        `bson:"services,omitempty" json:"services,omitempty"`
	Locations []Location       `bson:"locations,omitempty" json:"locations,omitempty"`
	Policy    SchedulingPolicy `bson:"policy" json:"policy"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time        `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ServiceByID looks up a catalogue entry.
func (p Provider) ServiceByID(id string) (Service, bool) {
	for _, s := range p.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// LocationByID looks up a location.
func (p Provider) LocationByID(id string) (Location, bool) {
	for _, l := range p.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}
