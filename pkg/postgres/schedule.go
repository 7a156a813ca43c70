package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/smart-schedule/pkg/db"
)

// InsertSchedule stores a schedule and its assignments in a single transaction
func (d *DB) InsertSchedule(ctx context.Context, schedule *db.Schedule, assignments []db.ScheduleAssignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedule (id, store_id, week_start, seed, coverage_percent, fairness_score, warning_count, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, schedule.ID, schedule.StoreID, schedule.WeekStart, schedule.Seed, schedule.CoveragePercent,
		schedule.FairnessScore, schedule.WarningCount, schedule.GeneratedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}

	if len(assignments) > 0 {
		rows := make([][]any, len(assignments))
		for i, a := range assignments {
			shiftDate, err := time.Parse("2006-01-02", a.ShiftDate)
			if err != nil {
				return fmt.Errorf("invalid shift date %q: %w", a.ShiftDate, err)
			}
			rows[i] = []any{schedule.ID, a.StaffID, shiftDate, a.ShiftID}
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"schedule_assignment"},
			[]string{"schedule_id", "staff_id", "shift_date", "shift_id"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to insert schedule assignments: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetLatestSchedule retrieves the most recently generated schedule for a store's week
func (d *DB) GetLatestSchedule(ctx context.Context, storeID, weekStart string) (*db.Schedule, []db.ScheduleAssignment, error) {
	var s db.Schedule
	var week time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT id, store_id, week_start, seed, coverage_percent, fairness_score, warning_count, generated_at
		FROM schedule
		WHERE store_id = $1 AND week_start = $2
		ORDER BY generated_at DESC
		LIMIT 1
	`, storeID, weekStart).Scan(&s.ID, &s.StoreID, &week, &s.Seed, &s.CoveragePercent, &s.FairnessScore, &s.WarningCount, &s.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("schedule for store %s week %s: %w", storeID, weekStart, db.ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	s.WeekStart = week.Format("2006-01-02")

	rows, err := d.pool.Query(ctx, `
		SELECT schedule_id, staff_id, shift_date, shift_id
		FROM schedule_assignment
		WHERE schedule_id = $1
		ORDER BY shift_date, shift_id, staff_id
	`, s.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query schedule assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.ScheduleAssignment
	for rows.Next() {
		var a db.ScheduleAssignment
		var shiftDate time.Time
		if err := rows.Scan(&a.ScheduleID, &a.StaffID, &shiftDate, &a.ShiftID); err != nil {
			return nil, nil, fmt.Errorf("failed to scan schedule assignment: %w", err)
		}
		a.ShiftDate = shiftDate.Format("2006-01-02")
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating schedule assignments: %w", err)
	}

	return &s, assignments, nil
}
