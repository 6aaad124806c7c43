package scheduling

import (
	"context"
	"fmt"
	"time"

	bookingRepo "slotify/database/repository/booking"
	"slotify/models"
)

// In-memory repository fakes for service-layer tests.

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider %s not found", id)
	}
	return p, nil
}

func (f *fakeProviderRepo) EnsureIndexes() error { return nil }

type fakeMemberRepo struct {
	members      map[string]*models.Member
	scheduleErrs map[string]error
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id string) (*models.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, fmt.Errorf("member %s not found", id)
	}
	return m, nil
}

func (f *fakeMemberRepo) GetWeeklySchedule(_ context.Context, memberID string) (models.WeeklySchedule, error) {
	if err := f.scheduleErrs[memberID]; err != nil {
		return models.WeeklySchedule{}, err
	}
	m, ok := f.members[memberID]
	if !ok {
		return models.WeeklySchedule{}, fmt.Errorf("member %s not found", memberID)
	}
	return m.Schedule, nil
}

func (f *fakeMemberRepo) ListActiveByProvider(_ context.Context, providerID, locationID string) ([]models.Member, error) {
	var out []models.Member
	for _, m := range f.members {
		if m.ProviderID != providerID || !m.Active {
			continue
		}
		if locationID != "" && m.LocationID != locationID {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMemberRepo) EnsureIndexes() error { return nil }

type fakeBlockedRepo struct {
	periods []models.BlockedPeriod
	created []*models.BlockedPeriod
	listErr error
}

func (f *fakeBlockedRepo) ListForMemberRange(_ context.Context, memberID, fromDate, toDate string) ([]models.BlockedPeriod, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.BlockedPeriod
	for _, bp := range f.periods {
		if bp.MemberID != memberID {
			continue
		}
		spanIntersects := bp.StartDate <= toDate && bp.EndDate >= fromDate
		recursInto := bp.Recurring && bp.StartDate <= toDate
		if spanIntersects || recursInto {
			out = append(out, bp)
		}
	}
	return out, nil
}

func (f *fakeBlockedRepo) Create(_ context.Context, period *models.BlockedPeriod) error {
	period.ID = fmt.Sprintf("bp-%d", len(f.created)+1)
	f.created = append(f.created, period)
	f.periods = append(f.periods, *period)
	return nil
}

func (f *fakeBlockedRepo) Delete(_ context.Context, memberID, periodID string) error {
	for i, bp := range f.periods {
		if bp.ID == periodID && bp.MemberID == memberID {
			f.periods = append(f.periods[:i], f.periods[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("blocked period %s not found", periodID)
}

func (f *fakeBlockedRepo) DeleteExpired(_ context.Context, beforeDate string) (int64, error) {
	var kept []models.BlockedPeriod
	var deleted int64
	for _, bp := range f.periods {
		if !bp.Recurring && bp.EndDate < beforeDate {
			deleted++
			continue
		}
		kept = append(kept, bp)
	}
	f.periods = kept
	return deleted, nil
}

func (f *fakeBlockedRepo) EnsureIndexes() error { return nil }

type fakeBookingRepo struct {
	bookings []models.Booking
	listErr  error
}

func (f *fakeBookingRepo) ListActiveForMember(_ context.Context, memberID string, from, to time.Time) ([]models.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.MemberID == memberID && b.IsActive() && b.StartsAt.Before(to) && b.EndsAt.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	for _, b := range f.bookings {
		if b.MemberID == booking.MemberID && b.IsActive() && b.Overlaps(booking.StartsAt, booking.EndsAt) {
			return bookingRepo.ErrSlotTaken
		}
	}
	booking.ID = fmt.Sprintf("bk-%d", len(f.bookings)+1)
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID, status string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			f.bookings[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", bookingID)
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

// daySchedule opens a single weekday with the given working windows.
func daySchedule(day time.Weekday, ranges ...models.TimeRange) models.WeeklySchedule {
	var ws models.WeeklySchedule
	ws[day] = models.DayHours{Open: true, Ranges: ranges}
	return ws
}
