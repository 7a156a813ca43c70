package criteria

import (
	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
)

// UtilizationCriterion reports staff who offered availability but received no shifts.
//
// Validity:
//   - No validity constraints (always returns true)
//
// Detection:
//   - One info warning per staff member with any availability marked and zero assignments
type UtilizationCriterion struct{}

// NewUtilizationCriterion creates a new UtilizationCriterion
func NewUtilizationCriterion() *UtilizationCriterion {
	return &UtilizationCriterion{}
}

func (c *UtilizationCriterion) Name() string {
	return "Utilization"
}

func (c *UtilizationCriterion) IsSlotValid(state *allocator.ScheduleState, staffID string, slot *allocator.ShiftSlot) bool {
	return true
}

func (c *UtilizationCriterion) Detect(state *allocator.ScheduleState) []allocator.Warning {
	var warnings []allocator.Warning
	for _, staffID := range state.StaffIDs {
		if !state.Availability.HasAny(staffID) || state.Workload.ShiftCount(staffID) > 0 {
			continue
		}
		warnings = append(warnings, allocator.Warning{
			Kind:     allocator.KindLowUtilization,
			Severity: allocator.SeverityInfo,
			StaffID:  staffID,
		})
	}
	return warnings
}
