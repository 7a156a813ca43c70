package criteria

import (
	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
)

// WeeklyHoursCriterion caps the hours a staff member works in the week.
//
// Validity:
//   - Returns false if enforce is set and the slot would take the staff member past maxHours
//   - Otherwise no constraint; the cap is advisory
//
// Detection:
//   - One overwork warning per staff member whose total hours exceed maxHours
type WeeklyHoursCriterion struct {
	maxHours float64
	enforce  bool
}

// NewWeeklyHoursCriterion creates a new WeeklyHoursCriterion.
// A maxHours of 0 or less disables the criterion.
func NewWeeklyHoursCriterion(maxHours float64, enforce bool) *WeeklyHoursCriterion {
	return &WeeklyHoursCriterion{
		maxHours: maxHours,
		enforce:  enforce,
	}
}

func (c *WeeklyHoursCriterion) Name() string {
	return "WeeklyHours"
}

func (c *WeeklyHoursCriterion) IsSlotValid(state *allocator.ScheduleState, staffID string, slot *allocator.ShiftSlot) bool {
	if !c.enforce || c.maxHours <= 0 {
		return true
	}
	return float64(state.Workload.Minutes(staffID)+slot.DurationMinutes())/60 <= c.maxHours
}

func (c *WeeklyHoursCriterion) Detect(state *allocator.ScheduleState) []allocator.Warning {
	if c.maxHours <= 0 {
		return nil
	}

	var warnings []allocator.Warning
	for _, staffID := range state.StaffIDs {
		hours := state.Workload.Hours(staffID)
		if hours <= c.maxHours {
			continue
		}
		warnings = append(warnings, allocator.Warning{
			Kind:     allocator.KindOverwork,
			Severity: allocator.SeverityWarning,
			StaffID:  staffID,
			Hours:    hours,
			Limit:    c.maxHours,
		})
	}
	return warnings
}
