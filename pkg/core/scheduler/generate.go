package scheduler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
	"github.com/jakechorley/smart-schedule/pkg/core/allocator/criteria"
)

// ScheduleResult is the outcome of one generation run. It is always renderable,
// even at 0% coverage.
type ScheduleResult struct {
	WeekStart       string                `json:"weekStart"`
	Assignments     allocator.Assignments `json:"assignments"`
	Warnings        []allocator.Warning   `json:"warnings"`
	Stats           allocator.Stats       `json:"stats"`
	StaffHours      map[string]float64    `json:"staffHours"`
	StaffShiftCount map[string]int        `json:"staffShiftCount"`

	// Slots holds per-slot fill detail in processing order
	Slots []allocator.ShiftSlot `json:"slots"`

	// Seed is the seed the tie-break was drawn from, if any
	Seed *int64 `json:"seed,omitempty"`
}

// Generate validates the request, builds the week's demand, solves it, and gathers
// warnings and stats.
//
// rng breaks ties between equally loaded staff. When rng is nil and the request carries a
// seed, a source is created from it; when both are nil, ties keep roster order.
// Invalid input returns a *ValidationError and no result.
func Generate(req Request, opts Options, rng *rand.Rand) (*ScheduleResult, error) {
	if err := Validate(req, opts.Limits); err != nil {
		return nil, err
	}

	weekStart, err := time.Parse(allocator.DateLayout, req.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week start: %w", err)
	}

	slots, err := allocator.BuildSlots(allocator.DemandInput{
		WeekStart:    weekStart,
		Templates:    req.Templates,
		Requirements: req.Requirements,
		Overrides:    opts.Overrides,
	})
	if err != nil {
		return nil, &ValidationError{Issues: []Issue{{Field: "requirements", Message: err.Error()}}}
	}

	if len(req.StaffIDs) == 0 && len(slots) > 0 {
		return nil, &ValidationError{Issues: []Issue{{
			Field:   "staffIds",
			Message: fmt.Sprintf("roster is empty but %d shifts need staff", len(slots)),
		}}}
	}

	if rng == nil && req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}

	scheduleCriteria := criteria.Defaults(criteria.Limits{
		MaxConsecutiveDays: opts.MaxConsecutiveDays,
		MaxWeeklyHours:     opts.MaxWeeklyHours,
		EnforceWeeklyHours: opts.EnforceWeeklyHours,
	})

	state := allocator.Solve(allocator.SolveConfig{
		Slots:        slots,
		Availability: allocator.NewAvailabilityIndex(weekStart, req.Availability),
		StaffIDs:     req.StaffIDs,
		Rand:         rng,
		Criteria:     scheduleCriteria,
	})

	if violations := allocator.ValidateScheduleState(state); len(violations) > 0 {
		return nil, fmt.Errorf("schedule failed invariant checks: %d violations, first: %s", len(violations), violations[0].Description)
	}

	return &ScheduleResult{
		WeekStart:       req.WeekStart,
		Assignments:     state.Assignments.Clone(),
		Warnings:        allocator.DetectWarnings(state, scheduleCriteria, opts.Renderer),
		Stats:           allocator.CalculateStats(state),
		StaffHours:      state.Workload.HoursByStaff(),
		StaffShiftCount: state.Workload.ShiftCountByStaff(),
		Slots:           snapshotSlots(state.Slots),
		Seed:            req.Seed,
	}, nil
}

func snapshotSlots(slots []*allocator.ShiftSlot) []allocator.ShiftSlot {
	out := make([]allocator.ShiftSlot, len(slots))
	for i, slot := range slots {
		out[i] = *slot
	}
	return out
}
