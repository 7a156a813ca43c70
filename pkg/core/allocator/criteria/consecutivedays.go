package criteria

import (
	"time"

	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
)

// ConsecutiveDaysCriterion flags staff scheduled on too many days in a row.
//
// Validity:
//   - No validity constraints (always returns true)
//
// Detection:
//   - One warning per staff member whose longest run of consecutive working dates exceeds maxDays.
//     Overnight shifts count toward the date they start on.
type ConsecutiveDaysCriterion struct {
	maxDays int
}

// NewConsecutiveDaysCriterion creates a new ConsecutiveDaysCriterion.
// A maxDays of 0 or less disables the criterion.
func NewConsecutiveDaysCriterion(maxDays int) *ConsecutiveDaysCriterion {
	return &ConsecutiveDaysCriterion{
		maxDays: maxDays,
	}
}

func (c *ConsecutiveDaysCriterion) Name() string {
	return "ConsecutiveDays"
}

func (c *ConsecutiveDaysCriterion) IsSlotValid(state *allocator.ScheduleState, staffID string, slot *allocator.ShiftSlot) bool {
	return true
}

func (c *ConsecutiveDaysCriterion) Detect(state *allocator.ScheduleState) []allocator.Warning {
	if c.maxDays <= 0 {
		return nil
	}

	var warnings []allocator.Warning
	for _, staffID := range state.StaffIDs {
		run := longestRun(state.Assignments.Dates(staffID))
		if run <= c.maxDays {
			continue
		}
		warnings = append(warnings, allocator.Warning{
			Kind:     allocator.KindConsecutiveDays,
			Severity: allocator.SeverityWarning,
			StaffID:  staffID,
			Days:     run,
			Limit:    float64(c.maxDays),
		})
	}
	return warnings
}

// longestRun returns the length of the longest streak of consecutive calendar dates.
// dates must be sorted.
func longestRun(dates []string) int {
	longest, current := 0, 0
	var previous time.Time

	for _, date := range dates {
		day, err := time.Parse(allocator.DateLayout, date)
		if err != nil {
			current = 0
			continue
		}
		if current > 0 && day.Equal(previous.AddDate(0, 0, 1)) {
			current++
		} else {
			current = 1
		}
		previous = day
		longest = max(longest, current)
	}

	return longest
}
