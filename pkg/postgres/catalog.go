package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/smart-schedule/pkg/db"
)

// GetStore retrieves a store by ID
func (d *DB) GetStore(ctx context.Context, storeID string) (*db.Store, error) {
	var s db.Store
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, timezone
		FROM store
		WHERE id = $1
	`, storeID).Scan(&s.ID, &s.Name, &s.Timezone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("store %s: %w", storeID, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query store: %w", err)
	}
	return &s, nil
}

// GetShiftTemplates retrieves a store's shift templates ordered by start time
func (d *DB) GetShiftTemplates(ctx context.Context, storeID string) ([]db.ShiftTemplate, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, store_id, name, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), color, grace_period_minutes
		FROM shift_template
		WHERE store_id = $1
		ORDER BY start_time, id
	`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	var templates []db.ShiftTemplate
	for rows.Next() {
		var t db.ShiftTemplate
		if err := rows.Scan(&t.ID, &t.StoreID, &t.Name, &t.StartTime, &t.EndTime, &t.Color, &t.GracePeriodMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift templates: %w", err)
	}

	return templates, nil
}

// GetShiftRequirements retrieves a store's weekly requirement matrix
func (d *DB) GetShiftRequirements(ctx context.Context, storeID string) ([]db.ShiftRequirement, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT store_id, day_of_week, shift_id, required
		FROM shift_requirement
		WHERE store_id = $1
		ORDER BY day_of_week, shift_id
	`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift requirements: %w", err)
	}
	defer rows.Close()

	var requirements []db.ShiftRequirement
	for rows.Next() {
		var r db.ShiftRequirement
		var day int16
		if err := rows.Scan(&r.StoreID, &day, &r.ShiftID, &r.Required); err != nil {
			return nil, fmt.Errorf("failed to scan shift requirement: %w", err)
		}
		r.DayOfWeek = int(day)
		requirements = append(requirements, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift requirements: %w", err)
	}

	return requirements, nil
}
