package scheduling

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"slotify/models"
	"slotify/utils"
)

// memberSlotsFunc fetches one member's availability inputs and generates
// its candidate slots. Implemented by the scheduling service; injected here
// so the fan-out logic stays independently testable.
type memberSlotsFunc func(ctx context.Context, member models.Member) ([]models.CandidateSlot, error)

// AggregateAcrossMembers fans out slot generation over the given members,
// one goroutine each. Generation is side-effect-free, so the only shared
// state is the per-member result cell each goroutine owns.
//
// A member whose fetch or generation fails is dropped from the merged
// output; the aggregation degrades to a best-effort result instead of
// failing outright. Only when every member fails does the second return
// value carry a DataUnavailableError, so the caller can distinguish "no
// slots available" from "could not load availability".
func AggregateAcrossMembers(ctx context.Context, members []models.Member, generate memberSlotsFunc) (models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	active := make([]models.Member, 0, len(members))
	for _, m := range members {
		if m.Active {
			active = append(active, m)
		}
	}
	if len(active) == 0 {
		return models.AvailabilityResult{Slots: []models.CandidateSlot{}}, nil
	}

	type memberResult struct {
		slots []models.CandidateSlot
		err   error
	}
	results := make([]memberResult, len(active))

	var wg sync.WaitGroup
	for i, m := range active {
		wg.Add(1)
		go func(i int, m models.Member) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic generating slots for member",
						zap.String("memberId", m.ID), zap.Any("recover", r))
					results[i].err = fmt.Errorf("panic: %v", r)
				}
			}()
			results[i].slots, results[i].err = generate(ctx, m)
		}(i, m)
	}
	wg.Wait()

	var merged []models.CandidateSlot
	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			logger.Warn("dropping member from availability aggregation",
				zap.String("memberId", active[i].ID), zap.Error(res.err))
			continue
		}
		merged = append(merged, res.slots...)
	}

	if failed == len(active) {
		return models.AvailabilityResult{
			Slots:             []models.CandidateSlot{},
			FailedMembers:     failed,
			AvailabilityError: "could not load availability for any member",
		}, &DataUnavailableError{FailedMembers: failed}
	}

	merged = dedupeSlots(merged)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].StartsAt.Equal(merged[j].StartsAt) {
			return merged[i].MemberID < merged[j].MemberID
		}
		return merged[i].StartsAt.Before(merged[j].StartsAt)
	})

	return models.AvailabilityResult{Slots: merged, FailedMembers: failed}, nil
}

// dedupeSlots guards against double-invocation: a single generator cannot
// emit the same (start, member) pair twice, but the merge must not either.
func dedupeSlots(slots []models.CandidateSlot) []models.CandidateSlot {
	type key struct {
		start    int64
		memberID string
	}
	seen := make(map[key]struct{}, len(slots))
	out := slots[:0]
	for _, s := range slots {
		k := key{start: s.StartsAt.Unix(), memberID: s.MemberID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
