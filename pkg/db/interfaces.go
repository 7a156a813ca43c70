package db

import "context"

// CatalogStore reads a store's shift templates and staffing requirements
type CatalogStore interface {
	GetStore(ctx context.Context, storeID string) (*Store, error)
	GetShiftTemplates(ctx context.Context, storeID string) ([]ShiftTemplate, error)
	GetShiftRequirements(ctx context.Context, storeID string) ([]ShiftRequirement, error)
}

// RosterStore reads a store's staff and their availability
type RosterStore interface {
	GetActiveStaff(ctx context.Context, storeID string) ([]Staff, error)
	GetStaffAvailability(ctx context.Context, storeID, weekStart string) ([]StaffAvailability, error)
}

// ScheduleStore persists generated schedules
type ScheduleStore interface {
	InsertSchedule(ctx context.Context, schedule *Schedule, assignments []ScheduleAssignment) error
	GetLatestSchedule(ctx context.Context, storeID, weekStart string) (*Schedule, []ScheduleAssignment, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	CatalogStore
	RosterStore
	ScheduleStore
}
