package scheduling

import (
	"context"
	"fmt"
	"time"

	"slotify/models"
)

// BlockPeriodInput is the block-slot flow's request to remove availability.
type BlockPeriodInput struct {
	MemberID   string `json:"memberId"`
	LocationID string `json:"locationId"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
	AllDay     bool   `json:"allDay"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Recurring  bool   `json:"recurring,omitempty"`
}

// MemberBlockResult is the per-member outcome of a multi-member block
// request. Each member's create succeeds or fails on its own.
type MemberBlockResult struct {
	MemberID string                `json:"memberId"`
	Period   *models.BlockedPeriod `json:"period,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// validateBlockPeriodInput checks the field-level rules before anything is
// persisted. Violations surface as ValidationError naming the field.
func validateBlockPeriodInput(in BlockPeriodInput) error {
	if in.MemberID == "" {
		return NewValidationError("memberId", "required")
	}
	if _, err := models.ParseDate(in.StartDate, time.UTC); err != nil {
		return NewValidationError("startDate", fmt.Sprintf("must be a %s date", models.DateLayout))
	}
	if _, err := models.ParseDate(in.EndDate, time.UTC); err != nil {
		return NewValidationError("endDate", fmt.Sprintf("must be a %s date", models.DateLayout))
	}
	if in.StartDate > in.EndDate {
		return NewValidationError("endDate", "must not be before startDate")
	}
	if in.AllDay {
		return nil
	}
	if in.StartTime == "" {
		return NewValidationError("startTime", "required when allDay is false")
	}
	if in.EndTime == "" {
		return NewValidationError("endTime", "required when allDay is false")
	}
	start, err := models.ClockToMinutes(in.StartTime)
	if err != nil {
		return NewValidationError("startTime", "must be HH:MM")
	}
	end, err := models.ClockToMinutes(in.EndTime)
	if err != nil {
		return NewValidationError("endTime", "must be HH:MM")
	}
	if start >= end {
		return NewValidationError("endTime", "must be after startTime")
	}
	return nil
}

// BlockPeriod validates and persists one blocked period for one member.
func (s *DefaultSchedulingService) BlockPeriod(ctx context.Context, in BlockPeriodInput) (*models.BlockedPeriod, error) {
	if err := validateBlockPeriodInput(in); err != nil {
		return nil, err
	}

	member, err := s.MemberRepo.GetByID(ctx, in.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member %s: %w", in.MemberID, err)
	}
	if !member.Active {
		return nil, NewValidationError("memberId", "member is not active")
	}
	if in.LocationID == "" {
		in.LocationID = member.LocationID
	} else if in.LocationID != member.LocationID {
		return nil, NewValidationError("locationId", "member does not work at this location")
	}

	period := &models.BlockedPeriod{
		MemberID:   in.MemberID,
		LocationID: in.LocationID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		AllDay:     in.AllDay,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Reason:     in.Reason,
		Recurring:  in.Recurring,
		CreatedAt:  s.now(),
	}
	if err := s.BlockedRepo.Create(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to persist blocked period: %w", err)
	}
	return period, nil
}

// BlockPeriodForMembers applies the same blocked period to several members
// as independent creates. A partial outcome is returned as-is rather than
// collapsed into a single success or failure.
func (s *DefaultSchedulingService) BlockPeriodForMembers(ctx context.Context, memberIDs []string, in BlockPeriodInput) []MemberBlockResult {
	results := make([]MemberBlockResult, 0, len(memberIDs))
	for _, id := range memberIDs {
		memberInput := in
		memberInput.MemberID = id
		period, err := s.BlockPeriod(ctx, memberInput)
		res := MemberBlockResult{MemberID: id, Period: period}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results
}

// RemoveBlockedPeriod deletes a previously created blocked period.
func (s *DefaultSchedulingService) RemoveBlockedPeriod(ctx context.Context, memberID, periodID string) error {
	if err := s.BlockedRepo.Delete(ctx, memberID, periodID); err != nil {
		return fmt.Errorf("failed to remove blocked period %s: %w", periodID, err)
	}
	return nil
}
