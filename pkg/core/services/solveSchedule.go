package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/internal/config"
	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
	"github.com/jakechorley/smart-schedule/pkg/core/scheduler"
	"github.com/jakechorley/smart-schedule/pkg/utils/logging"
)

// SolveSchedule runs the scheduler on a self-contained request, applying the configured
// soft constraints, limits and demand overrides. No database is involved.
func SolveSchedule(cfg *config.Config, logger *zap.Logger, req scheduler.Request) (*scheduler.ScheduleResult, error) {
	logger = logging.OrNop(logger)

	limits := scheduler.Limits{
		MaxStaff:          cfg.Solver.MaxStaff,
		MaxShiftTemplates: cfg.Solver.MaxShiftTemplates,
	}
	// Validate before expanding overrides, which need a parsable week
	if err := scheduler.Validate(req, limits); err != nil {
		return nil, err
	}

	weekStart, err := time.Parse(allocator.DateLayout, req.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week start: %w", err)
	}

	opts, err := SolverOptions(cfg, weekStart, logger)
	if err != nil {
		return nil, err
	}

	if req.Seed == nil {
		seed := time.Now().UnixNano()
		req.Seed = &seed
	}

	result, err := scheduler.Generate(req, opts, nil)
	if err != nil {
		return nil, err
	}

	logger.Debug("Solved schedule request",
		zap.String("week_start", req.WeekStart),
		zap.Int("slots", len(result.Slots)),
		zap.Int("coverage_percent", result.Stats.CoveragePercent))

	return result, nil
}
