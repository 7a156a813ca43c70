package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/internal/config"
	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
	"github.com/jakechorley/smart-schedule/pkg/core/scheduler"
)

// SolverOptions builds the scheduler options for one week from the configuration
func SolverOptions(cfg *config.Config, weekStart time.Time, logger *zap.Logger) (scheduler.Options, error) {
	opts := scheduler.Options{
		MaxConsecutiveDays: cfg.Solver.MaxConsecutiveDays,
		MaxWeeklyHours:     cfg.Solver.MaxWeeklyHours,
		EnforceWeeklyHours: cfg.Solver.EnforceWeeklyHours,
		Limits: scheduler.Limits{
			MaxStaff:          cfg.Solver.MaxStaff,
			MaxShiftTemplates: cfg.Solver.MaxShiftTemplates,
		},
		Renderer: rendererFor(cfg.Solver.Locale),
	}

	overrides, err := convertDemandOverrides(cfg.DemandOverrides, weekStart, logger)
	if err != nil {
		return scheduler.Options{}, err
	}
	opts.Overrides = overrides

	return opts, nil
}

func rendererFor(locale string) allocator.MessageRenderer {
	if locale == "vi" {
		return allocator.VietnameseRenderer{}
	}
	return allocator.EnglishRenderer{}
}

// convertDemandOverrides converts config overrides into allocator overrides.
// Each rrule is expanded once over the week (with a week of margin either side)
// and AppliesTo checks membership of the resulting date set.
func convertDemandOverrides(configOverrides []config.DemandOverride, weekStart time.Time, logger *zap.Logger) ([]allocator.DemandOverride, error) {
	result := make([]allocator.DemandOverride, 0, len(configOverrides))

	searchStart := weekStart.AddDate(0, 0, -7)
	searchEnd := weekStart.AddDate(0, 0, 14)

	for i, override := range configOverrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}
		rule.DTStart(searchStart)

		matches := make(map[string]bool)
		for _, occurrence := range rule.Between(searchStart, searchEnd, true) {
			matches[occurrence.Format(allocator.DateLayout)] = true
		}

		result = append(result, allocator.DemandOverride{
			AppliesTo: func(date string) bool { return matches[date] },
			ShiftID:   override.ShiftID,
			Required:  override.Required,
			Closed:    override.Closed,
		})

		logger.Debug("Converted demand override",
			zap.Int("index", i),
			zap.String("rrule", override.RRule),
			zap.String("shift_id", override.ShiftID),
			zap.Bool("closed", override.Closed),
			zap.Int("matching_dates", len(matches)))
	}

	return result, nil
}
