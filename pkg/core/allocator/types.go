package allocator

import (
	"slices"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used for slot dates and assignment keys
const DateLayout = "2006-01-02"

const (
	minutesPerDay = 24 * 60
	daysPerWeek   = 7
)

// ShiftTemplate is a store-defined time window reused across the days of a week.
// Color and GracePeriodMinutes belong to the UI and the check-in subsystem; the solver
// only reads StartTime and EndTime.
type ShiftTemplate struct {
	ID                 string `json:"id" validate:"required"`
	Name               string `json:"name"`
	StartTime          string `json:"startTime" validate:"required"`
	EndTime            string `json:"endTime" validate:"required"`
	Color              string `json:"color,omitempty"`
	GracePeriodMinutes int    `json:"gracePeriodMinutes" validate:"min=0"`
}

// Requirement is one cell of the weekly requirement matrix.
// DayOfWeek counts from the Monday week anchor (0 = Monday, 6 = Sunday).
type Requirement struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	ShiftID   string `json:"shiftId" validate:"required"`
	Required  int    `json:"required" validate:"min=0"`
}

// Availability is one cell of the staff availability matrix.
// Only entries with Available set are materialized; a missing entry means unavailable.
type Availability struct {
	StaffID   string `json:"staffId" validate:"required"`
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	ShiftID   string `json:"shiftId" validate:"required"`
	Available bool   `json:"isAvailable"`
}

// ShiftSlot is one (date, shift template) pair with a nonzero staffing requirement
type ShiftSlot struct {
	// Date of the slot (start date for overnight shifts)
	Date string `json:"date"`

	ShiftID   string `json:"shiftId"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	// DurationHours is computed modulo 24h so overnight shifts stay positive
	DurationHours float64 `json:"durationHours"`

	// Required is the number of staff this slot needs
	Required int `json:"required"`

	// DayOfWeek is the offset from the week anchor (0 = Monday)
	DayOfWeek int `json:"dayOfWeek"`

	// Index is the slot position in processing order
	Index int `json:"-"`

	// StartMinute and EndMinute place the slot on the week timeline (minutes since the
	// anchor's midnight). EndMinute may run past the end of the slot's date.
	StartMinute int `json:"-"`
	EndMinute   int `json:"-"`

	// Assigned holds the staff IDs chosen for this slot, in selection order
	Assigned []string `json:"assigned"`
}

// Filled returns the number of staff assigned to the slot
func (s *ShiftSlot) Filled() int {
	return len(s.Assigned)
}

// IsFull returns true if the slot has reached its required count
func (s *ShiftSlot) IsFull() bool {
	return s.Filled() >= s.Required
}

// Shortfall returns how many more staff the slot needs
func (s *ShiftSlot) Shortfall() int {
	return max(s.Required-s.Filled(), 0)
}

// DurationMinutes returns the slot length on the week timeline
func (s *ShiftSlot) DurationMinutes() int {
	return s.EndMinute - s.StartMinute
}

// Overlaps reports whether the two slots' [start, end) windows intersect on the week timeline
func (s *ShiftSlot) Overlaps(other *ShiftSlot) bool {
	return s.StartMinute < other.EndMinute && other.StartMinute < s.EndMinute
}

// Assignments maps staffID -> date -> shift IDs held that day
type Assignments map[string]map[string][]string

// Add records a shift for a staff member on a date. Duplicates are ignored.
func (a Assignments) Add(staffID, date, shiftID string) {
	byDate, ok := a[staffID]
	if !ok {
		byDate = make(map[string][]string)
		a[staffID] = byDate
	}
	if slices.Contains(byDate[date], shiftID) {
		return
	}
	byDate[date] = append(byDate[date], shiftID)
}

// Contains returns true if the staff member holds the shift on the date
func (a Assignments) Contains(staffID, date, shiftID string) bool {
	return slices.Contains(a[staffID][date], shiftID)
}

// Dates returns the sorted dates on which the staff member works
func (a Assignments) Dates(staffID string) []string {
	dates := make([]string, 0, len(a[staffID]))
	for date, shifts := range a[staffID] {
		if len(shifts) > 0 {
			dates = append(dates, date)
		}
	}
	slices.Sort(dates)
	return dates
}

// Clone returns a deep copy
func (a Assignments) Clone() Assignments {
	clone := make(Assignments, len(a))
	for staffID, byDate := range a {
		dates := make(map[string][]string, len(byDate))
		for date, shifts := range byDate {
			dates[date] = slices.Clone(shifts)
		}
		clone[staffID] = dates
	}
	return clone
}

// ScheduleState represents the state of the schedule during and after solving
type ScheduleState struct {
	// Slots in processing order (chronological)
	Slots []*ShiftSlot

	// Availability is the immutable eligibility lookup for this week
	Availability *AvailabilityIndex

	// StaffIDs is the roster in caller order, without duplicates
	StaffIDs []string

	// Workload tracks running hours and shift counts per staff member
	Workload *Workload

	// Assignments is the staff -> date -> shifts view of the slots' Assigned lists
	Assignments Assignments

	// assignedSlots indexes each staff member's assigned slots for overlap checks
	assignedSlots map[string][]*ShiftSlot
}

// AssignedSlots returns the slots a staff member holds, in assignment order
func (s *ScheduleState) AssignedSlots(staffID string) []*ShiftSlot {
	return s.assignedSlots[staffID]
}

// HasOverlap returns true if the staff member already holds a slot overlapping the given one
func (s *ScheduleState) HasOverlap(staffID string, slot *ShiftSlot) bool {
	for _, held := range s.assignedSlots[staffID] {
		if held.Overlaps(slot) {
			return true
		}
	}
	return false
}

// IsAssigned returns true if the staff member already holds this exact slot
func (s *ScheduleState) IsAssigned(staffID string, slot *ShiftSlot) bool {
	return slices.Contains(slot.Assigned, staffID)
}

// EligibleSlots returns the slots the staff member is available for
func (s *ScheduleState) EligibleSlots(staffID string) []*ShiftSlot {
	var eligible []*ShiftSlot
	for _, slot := range s.Slots {
		if s.Availability.IsAvailable(staffID, slot.Date, slot.ShiftID) {
			eligible = append(eligible, slot)
		}
	}
	return eligible
}

// EligibleStaffIDs returns roster members available for at least one slot this week
func (s *ScheduleState) EligibleStaffIDs() []string {
	var eligible []string
	for _, staffID := range s.StaffIDs {
		if len(s.EligibleSlots(staffID)) > 0 {
			eligible = append(eligible, staffID)
		}
	}
	return eligible
}

// assign records the staff member on the slot and updates the workload immediately
func (s *ScheduleState) assign(staffID string, slot *ShiftSlot) {
	slot.Assigned = append(slot.Assigned, staffID)
	s.assignedSlots[staffID] = append(s.assignedSlots[staffID], slot)
	s.Assignments.Add(staffID, slot.Date, slot.ShiftID)
	s.Workload.Record(staffID, slot.DurationMinutes())
}

// WeekDates returns the seven ISO dates starting at the week anchor
func WeekDates(weekStart time.Time) []string {
	dates := make([]string, daysPerWeek)
	for i := range dates {
		dates[i] = weekStart.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates
}
