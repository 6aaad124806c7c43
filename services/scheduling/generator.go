package scheduling

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"slotify/models"
	"slotify/utils"
)

// GeneratorInput carries everything GenerateSlots needs. The clock is
// injected through Now so generation stays a pure function of its inputs.
type GeneratorInput struct {
	MemberID               string
	ServiceDurationMinutes int
	FromDate               string // "2006-01-02", inclusive
	ToDate                 string // inclusive
	Schedule               models.WeeklySchedule
	BlockedPeriods         []models.BlockedPeriod
	Bookings               []models.Booking
	Policy                 models.SchedulingPolicy
	Now                    time.Time
	Location               *time.Location // nil means Now's location
}

// minuteRange is a resolved time-of-day window a blocked period occupies.
type minuteRange struct {
	start, end int
}

// GenerateSlots computes the ordered bookable slots for one member across
// an inclusive date range. It walks each open day's working windows on the
// policy's granularity grid, then removes candidates that fall inside a
// blocked period, overlap an active booking, start before the lead-time
// cutoff, or lie beyond the advance window.
//
// Malformed blocked periods and bookings (inverted intervals) are skipped
// with a warning rather than failing the whole computation.
func GenerateSlots(in GeneratorInput) ([]models.CandidateSlot, error) {
	logger := utils.GetLogger()

	if in.ServiceDurationMinutes <= 0 {
		return nil, NewInvalidInputError("serviceDurationMinutes must be positive, got %d", in.ServiceDurationMinutes)
	}

	loc := in.Location
	if loc == nil {
		loc = in.Now.Location()
	}

	from, err := models.ParseDate(in.FromDate, loc)
	if err != nil {
		return nil, NewInvalidInputError("fromDate: %v", err)
	}
	to, err := models.ParseDate(in.ToDate, loc)
	if err != nil {
		return nil, NewInvalidInputError("toDate: %v", err)
	}
	if from.After(to) {
		return nil, NewInvalidInputError("date range inverted: %s > %s", in.FromDate, in.ToDate)
	}
	if !in.Schedule.HasOpenDay() {
		return nil, nil
	}

	policy := in.Policy.Normalize()
	leadCutoff := in.Now.Add(time.Duration(policy.MinLeadTimeMinutes) * time.Minute)

	// The advance window allows booking through the whole of
	// today + MaxAdvanceDays.
	nowMidnight := time.Date(in.Now.Year(), in.Now.Month(), in.Now.Day(), 0, 0, 0, 0, loc)
	horizon := nowMidnight.AddDate(0, 0, policy.MaxAdvanceDays+1)

	bookings := sanitizeBookings(in.Bookings, in.MemberID, logger)

	var slots []models.CandidateSlot
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format(models.DateLayout)
		template := in.Schedule.Day(day.Weekday())
		if !template.Open {
			continue
		}

		blocked, allDayBlocked := blockedRangesForDate(in.BlockedPeriods, dateStr, logger)
		if allDayBlocked {
			continue
		}

		for _, window := range template.Ranges {
			if window.Start < 0 || window.End > models.MinutesPerDay || window.Start >= window.End {
				logger.Warn("skipping malformed working-hours range",
					zap.String("memberId", in.MemberID),
					zap.String("date", dateStr),
					zap.Int("start", window.Start),
					zap.Int("end", window.End))
				continue
			}

			for start := window.Start; start+in.ServiceDurationMinutes <= window.End; start += policy.SlotGranularityMinutes {
				end := start + in.ServiceDurationMinutes

				if overlapsAny(blocked, start, end) {
					continue
				}

				startsAt := day.Add(time.Duration(start) * time.Minute)
				endsAt := day.Add(time.Duration(end) * time.Minute)

				if bookingConflicts(bookings, startsAt, endsAt) {
					continue
				}
				if startsAt.Before(leadCutoff) {
					continue
				}
				if !startsAt.Before(horizon) {
					continue
				}

				slots = append(slots, models.CandidateSlot{
					Date:      dateStr,
					Start:     start,
					End:       end,
					StartTime: models.MinutesToClock(start),
					EndTime:   models.MinutesToClock(end),
					StartsAt:  startsAt,
					EndsAt:    endsAt,
					MemberID:  in.MemberID,
				})
			}
		}
	}

	// Construction order is already chronological for sorted templates;
	// the sort keeps the ordering guarantee even for unsorted input.
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartsAt.Before(slots[j].StartsAt)
	})
	return slots, nil
}

// sanitizeBookings drops records that cannot block time: wrong member,
// inactive status, or an inverted interval.
func sanitizeBookings(bookings []models.Booking, memberID string, logger *zap.Logger) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.MemberID != "" && b.MemberID != memberID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if !b.EndsAt.After(b.StartsAt) {
			logger.Warn("skipping booking with inverted interval",
				zap.String("bookingId", b.ID),
				zap.Time("startsAt", b.StartsAt),
				zap.Time("endsAt", b.EndsAt))
			continue
		}
		out = append(out, b)
	}
	return out
}

// blockedRangesForDate resolves the blocked periods applying to one date
// into minute ranges. The second return value reports a full-day block.
func blockedRangesForDate(periods []models.BlockedPeriod, date string, logger *zap.Logger) ([]minuteRange, bool) {
	var ranges []minuteRange
	for _, bp := range periods {
		if !blockAppliesToDate(bp, date) {
			continue
		}
		if bp.AllDay {
			return nil, true
		}

		start, errStart := models.ClockToMinutes(bp.StartTime)
		end, errEnd := models.ClockToMinutes(bp.EndTime)
		if errStart != nil || errEnd != nil || start >= end {
			logger.Warn("skipping malformed blocked period",
				zap.String("blockedPeriodId", bp.ID),
				zap.String("startTime", bp.StartTime),
				zap.String("endTime", bp.EndTime))
			continue
		}
		ranges = append(ranges, minuteRange{start: start, end: end})
	}
	return ranges, false
}

// blockAppliesToDate covers both one-off spans and weekly recurring blocks.
// A recurring block repeats on its start date's weekday from that date on.
func blockAppliesToDate(bp models.BlockedPeriod, date string) bool {
	if bp.CoversDate(date) {
		return true
	}
	if !bp.Recurring || date < bp.StartDate {
		return false
	}
	day, err := models.ParseDate(date, time.UTC)
	if err != nil {
		return false
	}
	anchor, err := models.ParseDate(bp.StartDate, time.UTC)
	if err != nil {
		return false
	}
	return day.Weekday() == anchor.Weekday()
}

func overlapsAny(ranges []minuteRange, start, end int) bool {
	for _, r := range ranges {
		if start < r.end && end > r.start {
			return true
		}
	}
	return false
}

func bookingConflicts(bookings []models.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
