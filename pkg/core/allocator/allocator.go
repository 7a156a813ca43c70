package allocator

import (
	"math/rand"
	"slices"
	"strings"
)

// SolveConfig contains everything the solver needs for one week
type SolveConfig struct {
	// Slots to fill. They are copied; the caller's slice is never modified.
	Slots []ShiftSlot

	// Availability is the eligibility lookup for the week
	Availability *AvailabilityIndex

	// StaffIDs is the roster. Duplicates are ignored.
	StaffIDs []string

	// Rand breaks ties between equally loaded candidates.
	// Nil keeps roster order, which makes the solve fully deterministic.
	Rand *rand.Rand

	// Criteria add vetoes on top of the built-in availability and overlap rules
	Criteria []Criterion
}

// Solve fills every slot, in chronological order, with up to Required staff.
//
// For each slot the eligible candidates (available, no overlapping assignment, not vetoed
// by a criterion) are ranked by assigned hours, then shift count, then a random tie-break,
// and the first Required are taken. Slots that cannot be filled are left partially filled;
// the solver never fails on infeasible input.
func Solve(config SolveConfig) *ScheduleState {
	state := initState(config)

	for _, slot := range state.Slots {
		candidates := eligibleCandidates(state, slot, config.Criteria)
		RankCandidates(state.Workload, candidates, config.Rand)

		for _, staffID := range candidates[:min(slot.Required, len(candidates))] {
			state.assign(staffID, slot)
		}
	}

	return state
}

// initState copies the slots and builds the empty workload and assignment maps
func initState(config SolveConfig) *ScheduleState {
	staffIDs := make([]string, 0, len(config.StaffIDs))
	for _, staffID := range config.StaffIDs {
		if !slices.Contains(staffIDs, staffID) {
			staffIDs = append(staffIDs, staffID)
		}
	}

	slots := make([]*ShiftSlot, len(config.Slots))
	for i := range config.Slots {
		slot := config.Slots[i]
		slot.Assigned = []string{}
		slots[i] = &slot
	}
	sortSlotPointers(slots)
	for i, slot := range slots {
		slot.Index = i
	}

	availability := config.Availability
	if availability == nil {
		availability = &AvailabilityIndex{}
	}

	return &ScheduleState{
		Slots:         slots,
		Availability:  availability,
		StaffIDs:      staffIDs,
		Workload:      NewWorkload(staffIDs),
		Assignments:   make(Assignments),
		assignedSlots: make(map[string][]*ShiftSlot),
	}
}

func sortSlotPointers(slots []*ShiftSlot) {
	slices.SortStableFunc(slots, compareSlots)
}

// compareSlots orders by position on the week timeline, then by shift ID
func compareSlots(a, b *ShiftSlot) int {
	if a.StartMinute != b.StartMinute {
		return a.StartMinute - b.StartMinute
	}
	return strings.Compare(a.ShiftID, b.ShiftID)
}

// eligibleCandidates returns the roster members who may take the slot, in roster order
func eligibleCandidates(state *ScheduleState, slot *ShiftSlot, criteria []Criterion) []string {
	candidates := make([]string, 0, len(state.StaffIDs))
	for _, staffID := range state.StaffIDs {
		if IsSlotValidForStaff(state, staffID, slot, criteria) {
			candidates = append(candidates, staffID)
		}
	}
	return candidates
}
