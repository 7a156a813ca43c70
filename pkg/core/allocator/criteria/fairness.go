package criteria

import (
	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
)

// FairnessCriterion reports an uneven shift distribution that the availability did not force.
//
// Validity:
//   - No validity constraints (always returns true). The solver's ranking already balances load.
//
// Detection:
//   - At most one info warning when the shift count spread across eligible staff is greater
//     than 1 and a least-loaded staff member was available for a slot they did not receive.
//     The warning names the first such staff member in roster order.
type FairnessCriterion struct{}

// NewFairnessCriterion creates a new FairnessCriterion
func NewFairnessCriterion() *FairnessCriterion {
	return &FairnessCriterion{}
}

func (c *FairnessCriterion) Name() string {
	return "Fairness"
}

func (c *FairnessCriterion) IsSlotValid(state *allocator.ScheduleState, staffID string, slot *allocator.ShiftSlot) bool {
	return true
}

func (c *FairnessCriterion) Detect(state *allocator.ScheduleState) []allocator.Warning {
	spread := allocator.ShiftCountSpread(state)
	if spread <= 1 {
		return nil
	}

	eligible := state.EligibleStaffIDs()
	minCount := state.Workload.ShiftCount(eligible[0])
	for _, staffID := range eligible[1:] {
		minCount = min(minCount, state.Workload.ShiftCount(staffID))
	}

	for _, staffID := range eligible {
		if state.Workload.ShiftCount(staffID) != minCount {
			continue
		}
		if !missedAvailableSlot(state, staffID) {
			continue
		}
		return []allocator.Warning{{
			Kind:     allocator.KindFairnessSpread,
			Severity: allocator.SeverityInfo,
			StaffID:  staffID,
			Spread:   spread,
		}}
	}

	return nil
}

// missedAvailableSlot returns true if the staff member was available for a slot given to someone else
func missedAvailableSlot(state *allocator.ScheduleState, staffID string) bool {
	for _, slot := range state.EligibleSlots(staffID) {
		if !state.IsAssigned(staffID, slot) {
			return true
		}
	}
	return false
}
