package allocator

import (
	"fmt"
	"slices"
	"time"
)

// DemandOverride customises the requirement matrix for specific dates
type DemandOverride struct {
	// AppliesTo returns true if this override applies to the given slot date
	AppliesTo func(date string) bool

	// ShiftID restricts the override to one template. Empty applies to every template.
	ShiftID string

	// Required replaces the matrix count (if set)
	Required *int

	// Closed drops the demand entirely on matching dates
	Closed bool
}

// DemandInput contains the data needed to build the week's slots
type DemandInput struct {
	// WeekStart is the Monday the week is anchored on
	WeekStart time.Time

	// Templates is the store's shift template catalog
	Templates []ShiftTemplate

	// Requirements is the sparse (dayOfWeek, shiftID) -> required matrix
	Requirements []Requirement

	// Overrides are applied per date after the matrix lookup, in order
	Overrides []DemandOverride
}

type demandKey struct {
	day     int
	shiftID string
}

// BuildSlots expands the requirement matrix into the week's fillable slots.
//
// Returns slots ordered by date, then start time, then shift ID. Entries whose required
// count ends up <= 0 are dropped. Requirements for unknown templates or templates with
// unparsable times are an error.
func BuildSlots(input DemandInput) ([]ShiftSlot, error) {
	matrix := make(map[demandKey]int, len(input.Requirements))
	templatesByID := make(map[string]ShiftTemplate, len(input.Templates))
	for _, tpl := range input.Templates {
		templatesByID[tpl.ID] = tpl
	}

	for _, req := range input.Requirements {
		if _, ok := templatesByID[req.ShiftID]; !ok {
			return nil, fmt.Errorf("requirement references unknown shift template %q", req.ShiftID)
		}
		if req.DayOfWeek < 0 || req.DayOfWeek >= daysPerWeek {
			return nil, fmt.Errorf("requirement for shift %q has day of week %d out of range", req.ShiftID, req.DayOfWeek)
		}
		matrix[demandKey{day: req.DayOfWeek, shiftID: req.ShiftID}] = req.Required
	}

	dates := WeekDates(input.WeekStart)
	slots := make([]ShiftSlot, 0, len(matrix))

	for day, date := range dates {
		for _, tpl := range input.Templates {
			required := matrix[demandKey{day: day, shiftID: tpl.ID}]

			for _, override := range input.Overrides {
				if override.ShiftID != "" && override.ShiftID != tpl.ID {
					continue
				}
				if override.AppliesTo == nil || !override.AppliesTo(date) {
					continue
				}
				if override.Closed {
					required = 0
				} else if override.Required != nil {
					required = *override.Required
				}
			}

			if required <= 0 {
				continue
			}

			start, err := ParseClock(tpl.StartTime)
			if err != nil {
				return nil, fmt.Errorf("shift template %q: %w", tpl.ID, err)
			}
			end, err := ParseClock(tpl.EndTime)
			if err != nil {
				return nil, fmt.Errorf("shift template %q: %w", tpl.ID, err)
			}
			durationMinutes := DurationMinutes(start, end)

			startMinute := day*minutesPerDay + start
			slots = append(slots, ShiftSlot{
				Date:          date,
				ShiftID:       tpl.ID,
				Name:          tpl.Name,
				StartTime:     tpl.StartTime,
				EndTime:       tpl.EndTime,
				DurationHours: float64(durationMinutes) / 60,
				Required:      required,
				DayOfWeek:     day,
				StartMinute:   startMinute,
				EndMinute:     startMinute + durationMinutes,
				Assigned:      []string{},
			})
		}
	}

	SortSlots(slots)
	for i := range slots {
		slots[i].Index = i
	}

	return slots, nil
}

// SortSlots orders slots chronologically: date ascending, start time ascending, then shift ID.
// This is the solver's processing order, so it is fixed for reproducibility.
func SortSlots(slots []ShiftSlot) {
	slices.SortStableFunc(slots, func(a, b ShiftSlot) int {
		return compareSlots(&a, &b)
	})
}

// ParseClock parses "HH:MM" (or "HH:MM:SS") into minutes after midnight
func ParseClock(value string) (int, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q (expected HH:MM)", value)
}

// DurationMinutes returns the length of a start/end window modulo 24h.
// An end earlier than the start is an overnight shift: 22:00-06:00 is 480 minutes.
func DurationMinutes(start, end int) int {
	return ((end-start)%minutesPerDay + minutesPerDay) % minutesPerDay
}

// DurationHours returns the length of a "HH:MM" window in hours, handling overnight shifts
func DurationHours(startTime, endTime string) (float64, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return 0, err
	}
	return float64(DurationMinutes(start, end)) / 60, nil
}
