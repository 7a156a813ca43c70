package criteria

import (
	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
)

// CoverageCriterion reports slots the solver could not fill.
//
// Validity:
//   - No validity constraints (always returns true). Capacity is enforced by the solver.
//
// Detection:
//   - One critical understaffed warning per slot with fewer staff than required
type CoverageCriterion struct{}

// NewCoverageCriterion creates a new CoverageCriterion
func NewCoverageCriterion() *CoverageCriterion {
	return &CoverageCriterion{}
}

func (c *CoverageCriterion) Name() string {
	return "Coverage"
}

func (c *CoverageCriterion) IsSlotValid(state *allocator.ScheduleState, staffID string, slot *allocator.ShiftSlot) bool {
	return true
}

func (c *CoverageCriterion) Detect(state *allocator.ScheduleState) []allocator.Warning {
	var warnings []allocator.Warning
	for _, slot := range state.Slots {
		if slot.IsFull() {
			continue
		}
		warnings = append(warnings, allocator.Warning{
			Kind:      allocator.KindUnderstaffed,
			Severity:  allocator.SeverityCritical,
			Date:      slot.Date,
			ShiftID:   slot.ShiftID,
			ShiftName: slot.Name,
			Filled:    slot.Filled(),
			Required:  slot.Required,
		})
	}
	return warnings
}
