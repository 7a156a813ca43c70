package db

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Store is a shop whose weekly schedule is generated
type Store struct {
	ID       string
	Name     string
	Timezone string
}

// Staff is a member of a store's roster
type Staff struct {
	ID      string
	StoreID string
	Name    string
	Active  bool
}

// ShiftTemplate is a store's reusable shift definition
type ShiftTemplate struct {
	ID                 string
	StoreID            string
	Name               string
	StartTime          string // HH:MM
	EndTime            string // HH:MM
	Color              string
	GracePeriodMinutes int
}

// ShiftRequirement is one cell of a store's weekly requirement matrix
type ShiftRequirement struct {
	StoreID   string
	DayOfWeek int // 0 = Monday
	ShiftID   string
	Required  int
}

// StaffAvailability is one availability answer for a specific week
type StaffAvailability struct {
	StaffID   string
	WeekStart string // YYYY-MM-DD, always a Monday
	DayOfWeek int
	ShiftID   string
	Available bool
}

// Schedule is a generated weekly schedule and its headline stats
type Schedule struct {
	ID              string
	StoreID         string
	WeekStart       string
	Seed            int64
	CoveragePercent int
	FairnessScore   float64
	WarningCount    int
	GeneratedAt     time.Time
}

// ScheduleAssignment places one staff member on one shift of a schedule
type ScheduleAssignment struct {
	ScheduleID string
	StaffID    string
	ShiftDate  string // YYYY-MM-DD
	ShiftID    string
}
