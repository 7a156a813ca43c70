package allocator

// Criterion defines the interface for pluggable scheduling rules.
// Criteria can veto candidates while solving and report problems once the schedule is built.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsSlotValid determines if the staff member may be assigned to the slot.
	// Returning false is a veto: the candidate is skipped for this slot.
	// Availability and overlap are always enforced by the solver and need not be repeated here.
	IsSlotValid(state *ScheduleState, staffID string, slot *ShiftSlot) bool

	// Detect inspects the finished schedule and returns advisory warnings (empty if none).
	// It must not modify the state.
	Detect(state *ScheduleState) []Warning
}
