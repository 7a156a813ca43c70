package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
	"github.com/jakechorley/smart-schedule/pkg/core/scheduler"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// fillColor returns green when a slot is full, red when nobody is on it and yellow otherwise
func fillColor(filled, required int, green, yellow, red string) string {
	switch {
	case filled >= required:
		return green
	case filled == 0:
		return red
	default:
		return yellow
	}
}

func severityColor(severity allocator.Severity) string {
	switch severity {
	case allocator.SeverityCritical:
		return colorRed
	case allocator.SeverityWarning:
		return colorYellow
	default:
		return colorDim
	}
}

// displayName falls back to the staff ID when no name is known
func displayName(names map[string]string, staffID string) string {
	if name, ok := names[staffID]; ok && name != "" {
		return name
	}
	return staffID
}

// printSchedule writes the slot table, per-staff totals, warnings and stats
func printSchedule(w io.Writer, result *scheduler.ScheduleResult, names map[string]string) {
	fmt.Fprintf(w, "📅 Week of %s\n\n", result.WeekStart)

	if len(result.Slots) == 0 {
		fmt.Fprintln(w, "No shifts need staff this week.")
		fmt.Fprintln(w)
	} else {
		printSlots(w, result.Slots, names)
	}

	printStaffTotals(w, result, names)
	printWarnings(w, result.Warnings)

	stats := result.Stats
	fmt.Fprintf(w, "%sStats%s\n", colorBold, colorReset)
	fmt.Fprintf(w, "  Coverage:       %d%% (%d/%d shifts)\n", stats.CoveragePercent, stats.TotalShiftsFilled, stats.TotalShiftsRequired)
	fmt.Fprintf(w, "  Fairness:       %.1f\n", stats.FairnessScore)
	fmt.Fprintf(w, "  Hours per head: avg %.1f, min %.1f, max %.1f\n", stats.AvgHoursPerStaff, stats.MinHours, stats.MaxHours)
	if result.Seed != nil {
		fmt.Fprintf(w, "  Seed:           %d\n", *result.Seed)
	}
	fmt.Fprintln(w)
}

func printSlots(w io.Writer, slots []allocator.ShiftSlot, names map[string]string) {
	dateColWidth := 12
	shiftColWidth := 10
	for _, slot := range slots {
		if n := len(slotLabel(slot)); n > shiftColWidth {
			shiftColWidth = n
		}
	}
	shiftColWidth += 2

	fmt.Fprintf(w, "%s%-*s  %-*s  %-6s  %s%s\n",
		colorBold,
		dateColWidth, "Date",
		shiftColWidth, "Shift",
		"Filled",
		"Staff",
		colorReset)
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		strings.Repeat("-", dateColWidth),
		strings.Repeat("-", shiftColWidth),
		strings.Repeat("-", 6),
		strings.Repeat("-", 30))

	for _, slot := range slots {
		staff := make([]string, len(slot.Assigned))
		for i, staffID := range slot.Assigned {
			staff[i] = displayName(names, staffID)
		}
		staffStr := "—"
		if len(staff) > 0 {
			staffStr = strings.Join(staff, ", ")
		}

		filled := fmt.Sprintf("%d/%d", len(slot.Assigned), slot.Required)
		color := fillColor(len(slot.Assigned), slot.Required, colorGreen, colorYellow, colorRed)

		fmt.Fprintf(w, "%-*s  %-*s  %s%-6s%s  %s\n",
			dateColWidth, slot.Date,
			shiftColWidth, slotLabel(slot),
			color, filled, colorReset,
			staffStr)
	}
	fmt.Fprintln(w)
}

func slotLabel(slot allocator.ShiftSlot) string {
	if slot.Name != "" {
		return slot.Name
	}
	return slot.ShiftID
}

func printStaffTotals(w io.Writer, result *scheduler.ScheduleResult, names map[string]string) {
	if len(result.StaffHours) == 0 {
		return
	}

	staffIDs := make([]string, 0, len(result.StaffHours))
	for staffID := range result.StaffHours {
		staffIDs = append(staffIDs, staffID)
	}
	sort.Slice(staffIDs, func(i, j int) bool {
		return displayName(names, staffIDs[i]) < displayName(names, staffIDs[j])
	})

	fmt.Fprintf(w, "%sStaff%s\n", colorBold, colorReset)
	for _, staffID := range staffIDs {
		fmt.Fprintf(w, "  %-24s %5.1fh  %d shifts\n",
			displayName(names, staffID),
			result.StaffHours[staffID],
			result.StaffShiftCount[staffID])
	}
	fmt.Fprintln(w)
}

func printWarnings(w io.Writer, warnings []allocator.Warning) {
	if len(warnings) == 0 {
		fmt.Fprintf(w, "%s✅ No warnings%s\n\n", colorGreen, colorReset)
		return
	}

	fmt.Fprintf(w, "⚠️  Warnings (%d):\n", len(warnings))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  %s%-8s%s %s\n", severityColor(warning.Severity), warning.Severity, colorReset, warning.Message)
	}
	fmt.Fprintln(w)
}
