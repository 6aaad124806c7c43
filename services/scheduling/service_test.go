package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "slotify/database/repository/booking"
	"slotify/models"
)

type serviceFixture struct {
	svc      *DefaultSchedulingService
	members  *fakeMemberRepo
	blocked  *fakeBlockedRepo
	bookings *fakeBookingRepo
}

func newServiceFixture() *serviceFixture {
	providers := &fakeProviderRepo{providers: map[string]*models.Provider{
		"prov-1": {
			ID:     "prov-1",
			Name:   "Shear Genius",
			Active: true,
			Services: []models.Service{
				{ID: "svc-cut", Name: "Haircut", DurationMinutes: 30},
				{ID: "svc-color", Name: "Coloring", DurationMinutes: 90},
			},
			Locations: []models.Location{
				{ID: "loc-1", Name: "Downtown", Timezone: "UTC"},
			},
			Policy: models.DefaultSchedulingPolicy(),
		},
	}}

	mondayMorning := daySchedule(time.Monday, models.TimeRange{Start: 9 * 60, End: 12 * 60})
	members := &fakeMemberRepo{
		members: map[string]*models.Member{
			"member-a": {ID: "member-a", ProviderID: "prov-1", LocationID: "loc-1", Active: true, Schedule: mondayMorning},
			"member-b": {ID: "member-b", ProviderID: "prov-1", LocationID: "loc-1", Active: true,
				Schedule: daySchedule(time.Monday, models.TimeRange{Start: 14 * 60, End: 16 * 60})},
		},
		scheduleErrs: map[string]error{},
	}

	blocked := &fakeBlockedRepo{}
	bookings := &fakeBookingRepo{}

	svc := &DefaultSchedulingService{
		ProviderRepo: providers,
		MemberRepo:   members,
		BlockedRepo:  blocked,
		BookingRepo:  bookings,
		Clock:        func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) },
	}
	return &serviceFixture{svc: svc, members: members, blocked: blocked, bookings: bookings}
}

func mondayRequest() AvailabilityRequest {
	return AvailabilityRequest{
		ProviderID: "prov-1",
		ServiceID:  "svc-cut",
		LocationID: "loc-1",
		FromDate:   testMonday,
		ToDate:     testMonday,
	}
}

func TestGetAvailableSlotsSingleMember(t *testing.T) {
	f := newServiceFixture()
	req := mondayRequest()
	req.MemberID = "member-a"

	result, err := f.svc.GetAvailableSlots(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Slots, 11)
	assert.Equal(t, "09:00", result.Slots[0].StartTime)
	assert.Equal(t, "11:30", result.Slots[10].StartTime)
}

func TestGetAvailableSlotsAcrossMembers(t *testing.T) {
	f := newServiceFixture()

	result, err := f.svc.GetAvailableSlots(context.Background(), mondayRequest())
	require.NoError(t, err)

	memberIDs := map[string]int{}
	for i, s := range result.Slots {
		memberIDs[s.MemberID]++
		if i > 0 {
			assert.False(t, s.StartsAt.Before(result.Slots[i-1].StartsAt))
		}
	}
	assert.Equal(t, 11, memberIDs["member-a"]) // 09:00–11:30
	assert.Equal(t, 7, memberIDs["member-b"])  // 14:00–15:30
}

func TestGetAvailableSlotsUnknownService(t *testing.T) {
	f := newServiceFixture()
	req := mondayRequest()
	req.ServiceID = "svc-massage"

	_, err := f.svc.GetAvailableSlots(context.Background(), req)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestGetAvailableSlotsInvertedRange(t *testing.T) {
	f := newServiceFixture()
	req := mondayRequest()
	req.FromDate, req.ToDate = "2025-06-09", "2025-06-02"

	_, err := f.svc.GetAvailableSlots(context.Background(), req)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestGetAvailableSlotsDropsMemberOnScheduleFetchFailure(t *testing.T) {
	f := newServiceFixture()
	f.members.scheduleErrs["member-a"] = assert.AnError

	result, err := f.svc.GetAvailableSlots(context.Background(), mondayRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, result.FailedMembers)
	for _, s := range result.Slots {
		assert.Equal(t, "member-b", s.MemberID)
	}
}

func TestGetAvailableSlotsRespectsBlockedPeriods(t *testing.T) {
	f := newServiceFixture()
	f.blocked.periods = []models.BlockedPeriod{{
		ID:        "bp-1",
		MemberID:  "member-a",
		StartDate: testMonday,
		EndDate:   testMonday,
		AllDay:    true,
	}}

	result, err := f.svc.GetAvailableSlots(context.Background(), mondayRequest())
	require.NoError(t, err)

	for _, s := range result.Slots {
		assert.Equal(t, "member-b", s.MemberID)
	}
}

func TestGetAvailableSlotsRecurringBlockPastAnchor(t *testing.T) {
	f := newServiceFixture()
	// Weekly Monday block anchored a week before the requested range: its
	// anchor span ended, but the recurrence still removes the day.
	f.blocked.periods = []models.BlockedPeriod{{
		ID:        "bp-rec",
		MemberID:  "member-a",
		StartDate: "2025-05-26",
		EndDate:   "2025-05-26",
		AllDay:    true,
		Recurring: true,
	}}

	result, err := f.svc.GetAvailableSlots(context.Background(), mondayRequest())
	require.NoError(t, err)

	require.NotEmpty(t, result.Slots)
	for _, s := range result.Slots {
		assert.Equal(t, "member-b", s.MemberID)
	}
}

func TestConfirmBookingThenSlotDisappears(t *testing.T) {
	f := newServiceFixture()

	booking, err := f.svc.ConfirmBooking(context.Background(), BookingRequest{
		ProviderID: "prov-1",
		ServiceID:  "svc-cut",
		MemberID:   "member-a",
		ClientID:   "client-7",
		Date:       testMonday,
		StartTime:  "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, testMonday, booking.Date)
	assert.Equal(t, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), booking.StartsAt.UTC())
	assert.Equal(t, time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC), booking.EndsAt.UTC())

	req := mondayRequest()
	req.MemberID = "member-a"
	result, err := f.svc.GetAvailableSlots(context.Background(), req)
	require.NoError(t, err)

	for _, s := range result.Slots {
		assert.False(t, booking.Overlaps(s.StartsAt, s.EndsAt), "slot %s overlaps confirmed booking", s.StartTime)
	}
}

func TestCancelBookingFreesSlot(t *testing.T) {
	f := newServiceFixture()
	req := mondayRequest()
	req.MemberID = "member-a"

	booking, err := f.svc.ConfirmBooking(context.Background(), BookingRequest{
		ProviderID: "prov-1",
		ServiceID:  "svc-cut",
		MemberID:   "member-a",
		Date:       testMonday,
		StartTime:  "10:00",
	})
	require.NoError(t, err)

	before, err := f.svc.GetAvailableSlots(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, slotStartTimes(before.Slots), "10:00")

	require.NoError(t, f.svc.CancelBooking(context.Background(), booking.ID))

	after, err := f.svc.GetAvailableSlots(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, slotStartTimes(after.Slots), "10:00")
	require.Len(t, after.Slots, 11)
}

func TestCancelBookingUnknownID(t *testing.T) {
	f := newServiceFixture()
	err := f.svc.CancelBooking(context.Background(), "bk-missing")
	require.Error(t, err)
}

func TestConfirmBookingSlotTaken(t *testing.T) {
	f := newServiceFixture()
	req := BookingRequest{
		ProviderID: "prov-1",
		ServiceID:  "svc-cut",
		MemberID:   "member-a",
		Date:       testMonday,
		StartTime:  "10:00",
	}

	_, err := f.svc.ConfirmBooking(context.Background(), req)
	require.NoError(t, err)

	// Second client confirming the same snapshot loses the race.
	_, err = f.svc.ConfirmBooking(context.Background(), req)
	require.ErrorIs(t, err, bookingRepo.ErrSlotTaken)
}

func TestConfirmBookingInPast(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.ConfirmBooking(context.Background(), BookingRequest{
		ProviderID: "prov-1",
		ServiceID:  "svc-cut",
		MemberID:   "member-a",
		Date:       "2025-05-26",
		StartTime:  "10:00",
	})

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}
