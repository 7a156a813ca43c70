package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/smart-schedule/pkg/db"
)

// GetActiveStaff retrieves a store's active staff in roster order
func (d *DB) GetActiveStaff(ctx context.Context, storeID string) ([]db.Staff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, store_id, name, active
		FROM staff
		WHERE store_id = $1 AND active
		ORDER BY created_at, id
	`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []db.Staff
	for rows.Next() {
		var s db.Staff
		if err := rows.Scan(&s.ID, &s.StoreID, &s.Name, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// GetStaffAvailability retrieves the availability answers of a store's staff for one week
func (d *DB) GetStaffAvailability(ctx context.Context, storeID, weekStart string) ([]db.StaffAvailability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.staff_id, a.day_of_week, a.shift_id, a.is_available
		FROM staff_availability a
		JOIN staff s ON s.id = a.staff_id
		WHERE s.store_id = $1 AND a.week_start = $2
	`, storeID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff availability: %w", err)
	}
	defer rows.Close()

	var availability []db.StaffAvailability
	for rows.Next() {
		a := db.StaffAvailability{WeekStart: weekStart}
		var day int16
		if err := rows.Scan(&a.StaffID, &day, &a.ShiftID, &a.Available); err != nil {
			return nil, fmt.Errorf("failed to scan staff availability: %w", err)
		}
		a.DayOfWeek = int(day)
		availability = append(availability, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff availability: %w", err)
	}

	return availability, nil
}
