package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/internal/config"
	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
	"github.com/jakechorley/smart-schedule/pkg/core/scheduler"
	"github.com/jakechorley/smart-schedule/pkg/db"
	"github.com/jakechorley/smart-schedule/pkg/utils/logging"
)

// GenerateScheduleStore defines the database operations needed to generate a schedule
type GenerateScheduleStore interface {
	db.CatalogStore
	db.RosterStore
	db.ScheduleStore
}

// GenerateRequest identifies the store and week to schedule
type GenerateRequest struct {
	StoreID string

	// WeekStart may be any day of the target week; it is normalised to the Monday
	WeekStart time.Time

	// Seed replays a previous run. Nil draws a fresh seed from the clock.
	Seed *int64

	// DryRun skips persisting the result
	DryRun bool
}

// GenerateResult is a generated schedule together with the data needed to display it
type GenerateResult struct {
	// ScheduleID is empty on a dry run
	ScheduleID string
	Store      *db.Store
	StaffNames map[string]string
	Schedule   *scheduler.ScheduleResult
}

// GenerateSchedule loads a store's templates, requirements, roster and availability for the week,
// runs the scheduler and stores the result.
//
// Invalid store data is reported as a *scheduler.ValidationError (wrapped).
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	req GenerateRequest,
) (*GenerateResult, error) {
	logger = logging.OrNop(logger).With(zap.String("store_id", req.StoreID))

	weekStart := scheduler.WeekStart(req.WeekStart)
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	weekStr := weekStart.Format(allocator.DateLayout)

	logger.Debug("Generating schedule", zap.String("week_start", weekStr), zap.Bool("dry_run", req.DryRun))

	store, err := database.GetStore(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store: %w", err)
	}

	templates, err := database.GetShiftTemplates(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift templates: %w", err)
	}

	requirements, err := database.GetShiftRequirements(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift requirements: %w", err)
	}

	staff, err := database.GetActiveStaff(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	availability, err := database.GetStaffAvailability(ctx, req.StoreID, weekStr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff availability: %w", err)
	}

	logger.Debug("Loaded store data",
		zap.Int("templates", len(templates)),
		zap.Int("requirements", len(requirements)),
		zap.Int("staff", len(staff)),
		zap.Int("availability", len(availability)))

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	opts, err := SolverOptions(cfg, weekStart, logger)
	if err != nil {
		return nil, err
	}

	schedReq, staffNames := buildSchedulerRequest(weekStr, templates, requirements, staff, availability)
	schedReq.Seed = &seed

	result, err := scheduler.Generate(schedReq, opts, nil)
	if err != nil {
		var verr *scheduler.ValidationError
		if errors.As(err, &verr) {
			logger.Warn("Store data failed validation", zap.Int("issues", len(verr.Issues)))
		}
		return nil, fmt.Errorf("failed to generate schedule for store %s: %w", req.StoreID, err)
	}

	logger.Info("Schedule generated",
		zap.String("week_start", weekStr),
		zap.Int64("seed", seed),
		zap.Int("coverage_percent", result.Stats.CoveragePercent),
		zap.Float64("fairness_score", result.Stats.FairnessScore),
		zap.Int("warnings", len(result.Warnings)))

	out := &GenerateResult{
		Store:      store,
		StaffNames: staffNames,
		Schedule:   result,
	}

	if req.DryRun {
		logger.Info("Dry run: schedule not saved")
		return out, nil
	}

	schedule := &db.Schedule{
		ID:              uuid.New().String(),
		StoreID:         req.StoreID,
		WeekStart:       weekStr,
		Seed:            seed,
		CoveragePercent: result.Stats.CoveragePercent,
		FairnessScore:   result.Stats.FairnessScore,
		WarningCount:    len(result.Warnings),
		GeneratedAt:     time.Now().UTC(),
	}

	if err := database.InsertSchedule(ctx, schedule, flattenAssignments(schedule.ID, result.Assignments)); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	logger.Info("Schedule saved", zap.String("schedule_id", schedule.ID))
	out.ScheduleID = schedule.ID

	return out, nil
}

// buildSchedulerRequest converts store records into a scheduler request and a staff name lookup
func buildSchedulerRequest(
	weekStart string,
	templates []db.ShiftTemplate,
	requirements []db.ShiftRequirement,
	staff []db.Staff,
	availability []db.StaffAvailability,
) (scheduler.Request, map[string]string) {
	req := scheduler.Request{
		WeekStart:    weekStart,
		Templates:    make([]allocator.ShiftTemplate, len(templates)),
		Requirements: make([]allocator.Requirement, len(requirements)),
		Availability: make([]allocator.Availability, 0, len(availability)),
		StaffIDs:     make([]string, len(staff)),
	}

	for i, t := range templates {
		req.Templates[i] = allocator.ShiftTemplate{
			ID:                 t.ID,
			Name:               t.Name,
			StartTime:          t.StartTime,
			EndTime:            t.EndTime,
			Color:              t.Color,
			GracePeriodMinutes: t.GracePeriodMinutes,
		}
	}

	for i, r := range requirements {
		req.Requirements[i] = allocator.Requirement{
			DayOfWeek: r.DayOfWeek,
			ShiftID:   r.ShiftID,
			Required:  r.Required,
		}
	}

	staffNames := make(map[string]string, len(staff))
	for i, s := range staff {
		req.StaffIDs[i] = s.ID
		staffNames[s.ID] = s.Name
	}

	for _, a := range availability {
		if a.WeekStart != "" && a.WeekStart != weekStart {
			continue
		}
		req.Availability = append(req.Availability, allocator.Availability{
			StaffID:   a.StaffID,
			DayOfWeek: a.DayOfWeek,
			ShiftID:   a.ShiftID,
			Available: a.Available,
		})
	}

	return req, staffNames
}

// flattenAssignments converts the staff -> date -> shifts map into rows, sorted by date, shift and staff
func flattenAssignments(scheduleID string, assignments allocator.Assignments) []db.ScheduleAssignment {
	var rows []db.ScheduleAssignment
	for staffID, byDate := range assignments {
		for date, shifts := range byDate {
			for _, shiftID := range shifts {
				rows = append(rows, db.ScheduleAssignment{
					ScheduleID: scheduleID,
					StaffID:    staffID,
					ShiftDate:  date,
					ShiftID:    shiftID,
				})
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ShiftDate != rows[j].ShiftDate {
			return rows[i].ShiftDate < rows[j].ShiftDate
		}
		if rows[i].ShiftID != rows[j].ShiftID {
			return rows[i].ShiftID < rows[j].ShiftID
		}
		return rows[i].StaffID < rows[j].StaffID
	})

	return rows
}
