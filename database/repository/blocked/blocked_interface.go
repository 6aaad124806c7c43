package blockedRepo

import (
	"context"

	"slotify/models"
)

// BlockedRepository defines access to blocked periods (vacations, absences,
// ad-hoc closures) for members.
type BlockedRepository interface {
	// ListForMemberRange returns every period whose date span intersects
	// the inclusive [fromDate, toDate] range ("2006-01-02" strings), plus
	// every recurring period anchored on or before the range.
	ListForMemberRange(ctx context.Context, memberID, fromDate, toDate string) ([]models.BlockedPeriod, error)
	Create(ctx context.Context, period *models.BlockedPeriod) error
	Delete(ctx context.Context, memberID, periodID string) error
	// DeleteExpired removes periods whose end date falls strictly before
	// the given date. Used by the maintenance worker.
	DeleteExpired(ctx context.Context, beforeDate string) (int64, error)
	EnsureIndexes() error
}
