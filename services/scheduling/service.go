package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	blockedRepo "slotify/database/repository/blocked"
	bookingRepo "slotify/database/repository/booking"
	memberRepo "slotify/database/repository/member"
	providerRepo "slotify/database/repository/provider"
	"slotify/models"
	"slotify/utils"
)

// DefaultSchedulingService is the production scheduling engine. The clock
// is injected so availability computation stays reproducible under test.
type DefaultSchedulingService struct {
	ProviderRepo providerRepo.ProviderRepository
	MemberRepo   memberRepo.MemberRepository
	BlockedRepo  blockedRepo.BlockedRepository
	BookingRepo  bookingRepo.BookingRepository
	Clock        func() time.Time
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// GetAvailableSlots resolves the provider's catalogue and policy, then fans
// slot generation out across the eligible members. Each member's schedule,
// blocked periods, and bookings are fetched concurrently inside the
// aggregation; a member whose fetch fails is dropped from the merged result.
func (s *DefaultSchedulingService) GetAvailableSlots(ctx context.Context, req AvailabilityRequest) (models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	provider, err := s.ProviderRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		return models.AvailabilityResult{}, fmt.Errorf("failed to resolve provider %s: %w", req.ProviderID, err)
	}
	service, ok := provider.ServiceByID(req.ServiceID)
	if !ok {
		return models.AvailabilityResult{}, NewInvalidInputError("unknown service %s for provider %s", req.ServiceID, req.ProviderID)
	}
	if service.DurationMinutes <= 0 {
		return models.AvailabilityResult{}, NewInvalidInputError("service %s has no positive duration", req.ServiceID)
	}
	if req.FromDate > req.ToDate {
		return models.AvailabilityResult{}, NewInvalidInputError("date range inverted: %s > %s", req.FromDate, req.ToDate)
	}

	loc := s.resolveLocation(provider, req.LocationID, logger)
	rangeStart, err := models.ParseDate(req.FromDate, loc)
	if err != nil {
		return models.AvailabilityResult{}, NewInvalidInputError("fromDate: %v", err)
	}
	rangeEnd, err := models.ParseDate(req.ToDate, loc)
	if err != nil {
		return models.AvailabilityResult{}, NewInvalidInputError("toDate: %v", err)
	}

	members, err := s.eligibleMembers(ctx, provider.ID, req)
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	policy := provider.Policy.Normalize()
	now := s.now().In(loc)
	fetchEnd := rangeEnd.AddDate(0, 0, 1) // bookings query is half-open

	return AggregateAcrossMembers(ctx, members, func(ctx context.Context, m models.Member) ([]models.CandidateSlot, error) {
		schedule, err := s.MemberRepo.GetWeeklySchedule(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("schedule fetch: %w", err)
		}
		blocked, err := s.BlockedRepo.ListForMemberRange(ctx, m.ID, req.FromDate, req.ToDate)
		if err != nil {
			return nil, fmt.Errorf("blocked periods fetch: %w", err)
		}
		bookings, err := s.BookingRepo.ListActiveForMember(ctx, m.ID, rangeStart, fetchEnd)
		if err != nil {
			return nil, fmt.Errorf("bookings fetch: %w", err)
		}

		return GenerateSlots(GeneratorInput{
			MemberID:               m.ID,
			ServiceDurationMinutes: service.DurationMinutes,
			FromDate:               req.FromDate,
			ToDate:                 req.ToDate,
			Schedule:               schedule,
			BlockedPeriods:         blocked,
			Bookings:               bookings,
			Policy:                 policy,
			Now:                    now,
			Location:               loc,
		})
	})
}

// ConfirmBooking turns a chosen candidate slot into a persisted booking.
// The repository re-validates member exclusivity at write time, since the
// availability snapshot the client saw may have gone stale.
func (s *DefaultSchedulingService) ConfirmBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	provider, err := s.ProviderRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider %s: %w", req.ProviderID, err)
	}
	service, ok := provider.ServiceByID(req.ServiceID)
	if !ok {
		return nil, NewInvalidInputError("unknown service %s for provider %s", req.ServiceID, req.ProviderID)
	}
	if service.DurationMinutes <= 0 {
		return nil, NewInvalidInputError("service %s has no positive duration", req.ServiceID)
	}

	member, err := s.MemberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member %s: %w", req.MemberID, err)
	}
	if !member.Active {
		return nil, NewInvalidInputError("member %s is not active", req.MemberID)
	}

	loc := s.resolveLocation(provider, member.LocationID, utils.GetLogger())
	day, err := models.ParseDate(req.Date, loc)
	if err != nil {
		return nil, NewInvalidInputError("date: %v", err)
	}
	startMin, err := models.ClockToMinutes(req.StartTime)
	if err != nil {
		return nil, NewInvalidInputError("startTime: %v", err)
	}

	startsAt := day.Add(time.Duration(startMin) * time.Minute)
	endsAt := startsAt.Add(time.Duration(service.DurationMinutes) * time.Minute)
	if startsAt.Before(s.now().In(loc)) {
		return nil, NewInvalidInputError("slot at %s %s is in the past", req.Date, req.StartTime)
	}

	booking := &models.Booking{
		MemberID:   member.ID,
		LocationID: member.LocationID,
		ServiceID:  service.ID,
		ClientID:   req.ClientID,
		Date:       req.Date,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Status:     models.BookingStatusConfirmed,
		CreatedAt:  s.now(),
	}
	if err := s.BookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking releases a booking's interval. The slot becomes bookable
// again on the next availability query.
func (s *DefaultSchedulingService) CancelBooking(ctx context.Context, bookingID string) error {
	if err := s.BookingRepo.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}
	return nil
}

// eligibleMembers resolves the member set to aggregate over.
func (s *DefaultSchedulingService) eligibleMembers(ctx context.Context, providerID string, req AvailabilityRequest) ([]models.Member, error) {
	if req.MemberID != "" {
		member, err := s.MemberRepo.GetByID(ctx, req.MemberID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve member %s: %w", req.MemberID, err)
		}
		if member.ProviderID != providerID {
			return nil, NewInvalidInputError("member %s does not belong to provider %s", req.MemberID, providerID)
		}
		return []models.Member{*member}, nil
	}

	members, err := s.MemberRepo.ListActiveByProvider(ctx, providerID, req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for provider %s: %w", providerID, err)
	}
	return members, nil
}

// resolveLocation picks the timezone slots are computed in. Falls back to
// the server's local zone when the location has none configured.
func (s *DefaultSchedulingService) resolveLocation(provider *models.Provider, locationID string, logger *zap.Logger) *time.Location {
	if locationID != "" {
		if location, ok := provider.LocationByID(locationID); ok && location.Timezone != "" {
			loc, err := time.LoadLocation(location.Timezone)
			if err == nil {
				return loc
			}
			logger.Warn("invalid location timezone, falling back to local",
				zap.String("locationId", locationID),
				zap.String("timezone", location.Timezone),
				zap.Error(err))
		}
	}
	return time.Local
}
