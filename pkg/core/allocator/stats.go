package allocator

import "math"

// fairnessSpreadScale controls how fast the fairness score falls as the spread grows.
// A spread of 1 scores 80, 2 scores about 66.7, 4 scores 50.
const fairnessSpreadScale = 4.0

// Stats summarises coverage and workload distribution for a schedule
type Stats struct {
	TotalShiftsRequired int     `json:"totalShiftsRequired"`
	TotalShiftsFilled   int     `json:"totalShiftsFilled"`
	CoveragePercent     int     `json:"coveragePercent"`
	FairnessScore       float64 `json:"fairnessScore"`
	AvgHoursPerStaff    float64 `json:"avgHoursPerStaff"`
	MinHours            float64 `json:"minHours"`
	MaxHours            float64 `json:"maxHours"`
}

// CalculateStats computes the summary metrics for a solved schedule
func CalculateStats(state *ScheduleState) Stats {
	var stats Stats

	for _, slot := range state.Slots {
		stats.TotalShiftsRequired += slot.Required
		stats.TotalShiftsFilled += min(slot.Filled(), slot.Required)
	}
	stats.CoveragePercent = CoveragePercent(stats.TotalShiftsFilled, stats.TotalShiftsRequired)

	stats.FairnessScore = FairnessScore(ShiftCountSpread(state))

	if len(state.StaffIDs) > 0 {
		stats.MinHours = math.Inf(1)
		var total float64
		for _, staffID := range state.StaffIDs {
			hours := state.Workload.Hours(staffID)
			total += hours
			stats.MinHours = math.Min(stats.MinHours, hours)
			stats.MaxHours = math.Max(stats.MaxHours, hours)
		}
		stats.MinHours = round1(stats.MinHours)
		stats.MaxHours = round1(stats.MaxHours)
		stats.AvgHoursPerStaff = round1(total / float64(len(state.StaffIDs)))
	}

	return stats
}

// CoveragePercent returns round(100 * filled / required), or 100 when nothing is required
func CoveragePercent(filled, required int) int {
	if required <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(filled) / float64(required)))
}

// FairnessScore maps a max-min shift count spread onto (0, 100].
// A spread of 0 scores 100 and every additional shift of spread strictly lowers the score.
// The value is left unrounded so large spreads never tie; round for display only.
func FairnessScore(spread int) float64 {
	if spread <= 0 {
		return 100
	}
	return 100 * fairnessSpreadScale / (fairnessSpreadScale + float64(spread))
}

// ShiftCountSpread returns max - min shift count across the staff members eligible this week
func ShiftCountSpread(state *ScheduleState) int {
	eligible := state.EligibleStaffIDs()
	counts := make([]int, len(eligible))
	for i, staffID := range eligible {
		counts[i] = state.Workload.ShiftCount(staffID)
	}
	return spread(counts)
}

func spread(counts []int) int {
	if len(counts) == 0 {
		return 0
	}
	lo, hi := counts[0], counts[0]
	for _, c := range counts[1:] {
		lo = min(lo, c)
		hi = max(hi, c)
	}
	return hi - lo
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
