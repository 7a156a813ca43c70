package allocator

import "time"

// AvailabilityIndex is an immutable staffID -> date -> shiftID lookup.
// Any miss is treated as unavailable.
type AvailabilityIndex struct {
	entries map[string]map[string]map[string]bool
}

// NewAvailabilityIndex materializes the positive availability entries for the week.
// Entries with Available unset or a day of week outside 0..6 are ignored.
func NewAvailabilityIndex(weekStart time.Time, entries []Availability) *AvailabilityIndex {
	dates := WeekDates(weekStart)
	index := &AvailabilityIndex{
		entries: make(map[string]map[string]map[string]bool),
	}

	for _, entry := range entries {
		if !entry.Available {
			continue
		}
		if entry.DayOfWeek < 0 || entry.DayOfWeek >= daysPerWeek {
			continue
		}
		date := dates[entry.DayOfWeek]

		byDate, ok := index.entries[entry.StaffID]
		if !ok {
			byDate = make(map[string]map[string]bool)
			index.entries[entry.StaffID] = byDate
		}
		byShift, ok := byDate[date]
		if !ok {
			byShift = make(map[string]bool)
			byDate[date] = byShift
		}
		byShift[entry.ShiftID] = true
	}

	return index
}

// IsAvailable returns true only if the staff member was explicitly marked available
func (ix *AvailabilityIndex) IsAvailable(staffID, date, shiftID string) bool {
	if ix == nil {
		return false
	}
	return ix.entries[staffID][date][shiftID]
}

// HasAny returns true if the staff member marked any availability this week
func (ix *AvailabilityIndex) HasAny(staffID string) bool {
	return ix.Count(staffID) > 0
}

// Count returns the number of (date, shift) pairs the staff member marked available
func (ix *AvailabilityIndex) Count(staffID string) int {
	if ix == nil {
		return 0
	}
	count := 0
	for _, byShift := range ix.entries[staffID] {
		count += len(byShift)
	}
	return count
}
