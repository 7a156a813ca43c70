package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jakechorley/smart-schedule/internal/config"
	"github.com/jakechorley/smart-schedule/pkg/db"
)

// mockScheduleStore implements GenerateScheduleStore and ViewScheduleStore for testing
type mockScheduleStore struct {
	mu sync.Mutex

	stores       map[string]*db.Store
	templates    []db.ShiftTemplate
	requirements []db.ShiftRequirement
	staff        []db.Staff
	availability []db.StaffAvailability

	insertedSchedules   []db.Schedule
	insertedAssignments []db.ScheduleAssignment

	availabilityWeek string
	getStaffErr      error
	insertErr        error
}

func (m *mockScheduleStore) GetStore(ctx context.Context, storeID string) (*db.Store, error) {
	store, ok := m.stores[storeID]
	if !ok {
		return nil, fmt.Errorf("store %s: %w", storeID, db.ErrNotFound)
	}
	return store, nil
}

func (m *mockScheduleStore) GetShiftTemplates(ctx context.Context, storeID string) ([]db.ShiftTemplate, error) {
	return m.templates, nil
}

func (m *mockScheduleStore) GetShiftRequirements(ctx context.Context, storeID string) ([]db.ShiftRequirement, error) {
	return m.requirements, nil
}

func (m *mockScheduleStore) GetActiveStaff(ctx context.Context, storeID string) ([]db.Staff, error) {
	if m.getStaffErr != nil {
		return nil, m.getStaffErr
	}
	return m.staff, nil
}

func (m *mockScheduleStore) GetStaffAvailability(ctx context.Context, storeID, weekStart string) ([]db.StaffAvailability, error) {
	m.mu.Lock()
	m.availabilityWeek = weekStart
	m.mu.Unlock()
	return m.availability, nil
}

func (m *mockScheduleStore) InsertSchedule(ctx context.Context, schedule *db.Schedule, assignments []db.ScheduleAssignment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertedSchedules = append(m.insertedSchedules, *schedule)
	m.insertedAssignments = append(m.insertedAssignments, assignments...)
	return nil
}

func (m *mockScheduleStore) GetLatestSchedule(ctx context.Context, storeID, weekStart string) (*db.Schedule, []db.ScheduleAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.insertedSchedules) - 1; i >= 0; i-- {
		s := m.insertedSchedules[i]
		if s.StoreID != storeID || s.WeekStart != weekStart {
			continue
		}
		var rows []db.ScheduleAssignment
		for _, a := range m.insertedAssignments {
			if a.ScheduleID == s.ID {
				rows = append(rows, a)
			}
		}
		return &s, rows, nil
	}
	return nil, nil, fmt.Errorf("schedule for %s week %s: %w", storeID, weekStart, db.ErrNotFound)
}

// newTestStore returns a store with one morning shift needing one person every day,
// and two staff available for all of it
func newTestStore() *mockScheduleStore {
	store := &mockScheduleStore{
		stores: map[string]*db.Store{
			"store-1": {ID: "store-1", Name: "Quận 1", Timezone: "Asia/Ho_Chi_Minh"},
		},
		templates: []db.ShiftTemplate{
			{ID: "morning", StoreID: "store-1", Name: "Morning", StartTime: "08:00", EndTime: "16:00"},
		},
		staff: []db.Staff{
			{ID: "alice", StoreID: "store-1", Name: "Alice Nguyen", Active: true},
			{ID: "bob", StoreID: "store-1", Name: "Bob Tran", Active: true},
		},
	}

	for day := 0; day < 7; day++ {
		store.requirements = append(store.requirements, db.ShiftRequirement{
			StoreID: "store-1", DayOfWeek: day, ShiftID: "morning", Required: 1,
		})
		for _, staffID := range []string{"alice", "bob"} {
			store.availability = append(store.availability, db.StaffAvailability{
				StaffID: staffID, WeekStart: "2025-01-06", DayOfWeek: day, ShiftID: "morning", Available: true,
			})
		}
	}

	return store
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.DatabaseURL = "postgres://localhost/schedule_test"
	return &cfg
}

func seedPtr(v int64) *int64 {
	return &v
}
