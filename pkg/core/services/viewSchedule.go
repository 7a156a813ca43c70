package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
	"github.com/jakechorley/smart-schedule/pkg/core/scheduler"
	"github.com/jakechorley/smart-schedule/pkg/db"
	"github.com/jakechorley/smart-schedule/pkg/utils/logging"
)

// ViewScheduleStore defines the database operations needed to view a saved schedule
type ViewScheduleStore interface {
	db.RosterStore
	db.ScheduleStore
}

// ScheduleShift is one filled shift of a saved schedule
type ScheduleShift struct {
	Date       string   `json:"date"`
	ShiftID    string   `json:"shiftId"`
	StaffNames []string `json:"staffNames"`
}

// ViewScheduleResult contains a saved schedule ready for display
type ViewScheduleResult struct {
	Schedule *db.Schedule
	Shifts   []ScheduleShift // sorted by date then shift
}

// ViewSchedule loads the most recently generated schedule for a store and week
func ViewSchedule(
	ctx context.Context,
	database ViewScheduleStore,
	logger *zap.Logger,
	storeID string,
	weekStart time.Time,
) (*ViewScheduleResult, error) {
	logger = logging.OrNop(logger)
	weekStr := scheduler.WeekStart(weekStart).Format(allocator.DateLayout)

	logger.Debug("Starting viewSchedule", zap.String("store_id", storeID), zap.String("week_start", weekStr))

	schedule, assignments, err := database.GetLatestSchedule(ctx, storeID, weekStr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	staff, err := database.GetActiveStaff(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	names := make(map[string]string, len(staff))
	for _, s := range staff {
		names[s.ID] = s.Name
	}

	type shiftKey struct {
		date    string
		shiftID string
	}

	grouped := make(map[shiftKey][]string)
	for _, a := range assignments {
		name, ok := names[a.StaffID]
		if !ok {
			// Staff member has since left the roster
			name = a.StaffID
		}
		key := shiftKey{date: a.ShiftDate, shiftID: a.ShiftID}
		grouped[key] = append(grouped[key], name)
	}

	shifts := make([]ScheduleShift, 0, len(grouped))
	for key, staffNames := range grouped {
		sort.Strings(staffNames)
		shifts = append(shifts, ScheduleShift{Date: key.date, ShiftID: key.shiftID, StaffNames: staffNames})
	}
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		return shifts[i].ShiftID < shifts[j].ShiftID
	})

	logger.Debug("ViewSchedule completed", zap.String("schedule_id", schedule.ID), zap.Int("shifts", len(shifts)))

	return &ViewScheduleResult{Schedule: schedule, Shifts: shifts}, nil
}
