package criteria

import (
	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
)

// Limits configures the default criteria set
type Limits struct {
	MaxConsecutiveDays int
	MaxWeeklyHours     float64
	EnforceWeeklyHours bool
}

// Defaults returns the standard criteria, in the order their warnings are gathered
func Defaults(limits Limits) []allocator.Criterion {
	return []allocator.Criterion{
		NewCoverageCriterion(),
		NewWeeklyHoursCriterion(limits.MaxWeeklyHours, limits.EnforceWeeklyHours),
		NewConsecutiveDaysCriterion(limits.MaxConsecutiveDays),
		NewUtilizationCriterion(),
		NewFairnessCriterion(),
	}
}
