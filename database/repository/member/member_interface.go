package memberRepo

import (
	"context"

	"slotify/models"
)

// MemberRepository defines read access to staff members and their weekly
// working-hours templates.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*models.Member, error)
	// GetWeeklySchedule returns only the member's recurring template.
	GetWeeklySchedule(ctx context.Context, memberID string) (models.WeeklySchedule, error)
	// ListActiveByProvider returns active members for a provider,
	// optionally restricted to one location (empty locationID means all).
	ListActiveByProvider(ctx context.Context, providerID, locationID string) ([]models.Member, error)
	EnsureIndexes() error
}
