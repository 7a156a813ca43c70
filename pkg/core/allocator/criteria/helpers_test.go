package criteria

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
)

// 2025-01-06 is a Monday
var weekStart = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

var allDays = []int{0, 1, 2, 3, 4, 5, 6}

func available(staffID, shiftID string, days ...int) []allocator.Availability {
	entries := make([]allocator.Availability, len(days))
	for i, day := range days {
		entries[i] = allocator.Availability{StaffID: staffID, DayOfWeek: day, ShiftID: shiftID, Available: true}
	}
	return entries
}

func required(shiftID string, count int, days ...int) []allocator.Requirement {
	reqs := make([]allocator.Requirement, len(days))
	for i, day := range days {
		reqs[i] = allocator.Requirement{DayOfWeek: day, ShiftID: shiftID, Required: count}
	}
	return reqs
}

// solve builds the week's slots and runs the solver with roster-order tie-breaks
func solve(
	t *testing.T,
	templates []allocator.ShiftTemplate,
	requirements []allocator.Requirement,
	availability []allocator.Availability,
	staffIDs []string,
	criteria ...allocator.Criterion,
) *allocator.ScheduleState {
	t.Helper()
	slots, err := allocator.BuildSlots(allocator.DemandInput{
		WeekStart:    weekStart,
		Templates:    templates,
		Requirements: requirements,
	})
	require.NoError(t, err)

	return allocator.Solve(allocator.SolveConfig{
		Slots:        slots,
		Availability: allocator.NewAvailabilityIndex(weekStart, availability),
		StaffIDs:     staffIDs,
		Criteria:     criteria,
	})
}

var morning = allocator.ShiftTemplate{ID: "morning", Name: "Morning", StartTime: "08:00", EndTime: "12:00"}
