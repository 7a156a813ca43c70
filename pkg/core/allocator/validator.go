package allocator

import "fmt"

// InvariantViolation describes a hard-constraint breach found in a schedule
type InvariantViolation struct {
	StaffID     string
	Date        string
	ShiftID     string
	Description string
}

// ValidateScheduleState checks the hard constraints every solved schedule must satisfy:
//   - every assignment is backed by explicit availability
//   - no staff member holds two overlapping slots
//   - no staff member appears twice on the same slot
//   - no slot holds more staff than it requires
//
// An empty slice means the schedule is sound.
func ValidateScheduleState(state *ScheduleState) []InvariantViolation {
	var violations []InvariantViolation

	held := make(map[string][]*ShiftSlot)
	for _, slot := range state.Slots {
		if slot.Filled() > slot.Required {
			violations = append(violations, InvariantViolation{
				Date:        slot.Date,
				ShiftID:     slot.ShiftID,
				Description: fmt.Sprintf("slot is overfilled: %d assigned but %d required", slot.Filled(), slot.Required),
			})
		}

		seen := make(map[string]bool, len(slot.Assigned))
		for _, staffID := range slot.Assigned {
			if seen[staffID] {
				violations = append(violations, InvariantViolation{
					StaffID:     staffID,
					Date:        slot.Date,
					ShiftID:     slot.ShiftID,
					Description: "staff member assigned multiple times to the same slot",
				})
				continue
			}
			seen[staffID] = true

			if !state.Availability.IsAvailable(staffID, slot.Date, slot.ShiftID) {
				violations = append(violations, InvariantViolation{
					StaffID:     staffID,
					Date:        slot.Date,
					ShiftID:     slot.ShiftID,
					Description: "staff member assigned without availability",
				})
			}

			for _, other := range held[staffID] {
				if other.Overlaps(slot) {
					violations = append(violations, InvariantViolation{
						StaffID:     staffID,
						Date:        slot.Date,
						ShiftID:     slot.ShiftID,
						Description: fmt.Sprintf("overlaps %s on %s", other.ShiftID, other.Date),
					})
				}
			}
			held[staffID] = append(held[staffID], slot)
		}
	}

	return violations
}
