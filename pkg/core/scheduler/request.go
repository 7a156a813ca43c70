package scheduler

import (
	"time"

	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
)

// Request is everything needed to generate one store's weekly schedule
type Request struct {
	// WeekStart is the Monday the week is anchored on, as YYYY-MM-DD
	WeekStart string `json:"weekStart" validate:"required"`

	Templates    []allocator.ShiftTemplate `json:"shiftTemplates" validate:"dive"`
	Requirements []allocator.Requirement   `json:"requirements" validate:"dive"`
	Availability []allocator.Availability  `json:"availability" validate:"dive"`

	// StaffIDs is the roster in display order
	StaffIDs []string `json:"staffIds" validate:"dive,required"`

	// Seed makes the random tie-break reproducible. Nil keeps roster order.
	Seed *int64 `json:"seed,omitempty"`
}

// Limits bounds the size of a request. Zero disables a limit.
type Limits struct {
	MaxStaff          int
	MaxShiftTemplates int
}

// Options tunes validation, soft constraints and message rendering
type Options struct {
	MaxConsecutiveDays int
	MaxWeeklyHours     float64

	// EnforceWeeklyHours turns MaxWeeklyHours into a hard cap while solving
	EnforceWeeklyHours bool

	Limits Limits

	// Overrides adjust demand on specific dates after the matrix lookup
	Overrides []allocator.DemandOverride

	// Renderer produces warning messages. Nil renders English.
	Renderer allocator.MessageRenderer
}

// DefaultOptions returns the product defaults: six days in a row, 48 hours a week,
// 10 staff and 3 shift templates per store.
func DefaultOptions() Options {
	return Options{
		MaxConsecutiveDays: 6,
		MaxWeeklyHours:     48,
		Limits: Limits{
			MaxStaff:          10,
			MaxShiftTemplates: 3,
		},
	}
}

// WeekStart returns midnight on the Monday of the week containing t, in t's location
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}
