package allocator

// IsSlotValidForStaff checks if a staff member can be assigned to a slot.
//
// Returns false if:
//   - The staff member is not available for this slot
//   - The staff member already holds this slot
//   - The staff member holds another slot whose window overlaps this one
//   - Any criterion's IsSlotValid hook returns false
//
// Otherwise returns true.
func IsSlotValidForStaff(state *ScheduleState, staffID string, slot *ShiftSlot, criteria []Criterion) bool {
	if !state.Availability.IsAvailable(staffID, slot.Date, slot.ShiftID) {
		return false
	}

	if state.IsAssigned(staffID, slot) {
		return false
	}

	if state.HasOverlap(staffID, slot) {
		return false
	}

	for _, criterion := range criteria {
		if !criterion.IsSlotValid(state, staffID, slot) {
			return false
		}
	}

	return true
}
