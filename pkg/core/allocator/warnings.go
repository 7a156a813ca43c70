package allocator

import (
	"cmp"
	"fmt"
	"slices"
)

// Severity grades how urgently a warning needs a manager's attention
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// WarningKind identifies which problem a warning describes
type WarningKind string

const (
	// KindUnderstaffed uses Date, ShiftID, ShiftName, Filled and Required
	KindUnderstaffed WarningKind = "understaffed"
	// KindOverwork uses StaffID and Hours
	KindOverwork WarningKind = "overwork"
	// KindConsecutiveDays uses StaffID and Days
	KindConsecutiveDays WarningKind = "consecutive_days"
	// KindLowUtilization uses StaffID
	KindLowUtilization WarningKind = "low_utilization"
	// KindFairnessSpread uses StaffID (a least-loaded staff member) and Spread
	KindFairnessSpread WarningKind = "fairness_spread"
)

// Warning is an advisory finding about a finished schedule.
// Only the fields listed for its Kind are set.
type Warning struct {
	Kind      WarningKind `json:"kind"`
	Severity  Severity    `json:"severity"`
	Message   string      `json:"message"`
	Date      string      `json:"date,omitempty"`
	ShiftID   string      `json:"shiftId,omitempty"`
	ShiftName string      `json:"shiftName,omitempty"`
	StaffID   string      `json:"staffId,omitempty"`
	Filled    int         `json:"filled,omitempty"`
	Required  int         `json:"required,omitempty"`
	Hours     float64     `json:"hours,omitempty"`
	Limit     float64     `json:"limit,omitempty"`
	Days      int         `json:"days,omitempty"`
	Spread    int         `json:"spread,omitempty"`
}

// MessageRenderer turns a structured warning into display text
type MessageRenderer interface {
	Render(w Warning) string
}

// DetectWarnings runs every criterion's Detect hook against the finished schedule,
// renders messages, and returns the warnings ordered by severity (critical first),
// then date, shift and staff. The schedule itself is not modified.
func DetectWarnings(state *ScheduleState, criteria []Criterion, renderer MessageRenderer) []Warning {
	if renderer == nil {
		renderer = EnglishRenderer{}
	}

	warnings := []Warning{}
	for _, criterion := range criteria {
		warnings = append(warnings, criterion.Detect(state)...)
	}

	for i := range warnings {
		warnings[i].Message = renderer.Render(warnings[i])
	}

	slices.SortStableFunc(warnings, func(a, b Warning) int {
		return cmp.Or(
			cmp.Compare(a.Severity.rank(), b.Severity.rank()),
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(a.ShiftID, b.ShiftID),
			cmp.Compare(a.StaffID, b.StaffID),
		)
	})

	return warnings
}

// EnglishRenderer renders warnings in English
type EnglishRenderer struct{}

func (EnglishRenderer) Render(w Warning) string {
	switch w.Kind {
	case KindUnderstaffed:
		return fmt.Sprintf("%s on %s is understaffed: %d/%d filled", shiftLabel(w), w.Date, w.Filled, w.Required)
	case KindOverwork:
		return fmt.Sprintf("%s is scheduled for %.1f hours, above the weekly limit of %.1f", w.StaffID, w.Hours, w.Limit)
	case KindConsecutiveDays:
		return fmt.Sprintf("%s works %d consecutive days (limit %d)", w.StaffID, w.Days, int(w.Limit))
	case KindLowUtilization:
		return fmt.Sprintf("%s marked availability but has no shifts this week", w.StaffID)
	case KindFairnessSpread:
		return fmt.Sprintf("Shift counts differ by %d between staff; %s could take more shifts", w.Spread, w.StaffID)
	}
	return string(w.Kind)
}

// VietnameseRenderer renders warnings in Vietnamese
type VietnameseRenderer struct{}

func (VietnameseRenderer) Render(w Warning) string {
	switch w.Kind {
	case KindUnderstaffed:
		return fmt.Sprintf("Ca %s ngày %s thiếu người: %d/%d", shiftLabel(w), w.Date, w.Filled, w.Required)
	case KindOverwork:
		return fmt.Sprintf("%s được xếp %.1f giờ, vượt giới hạn %.1f giờ/tuần", w.StaffID, w.Hours, w.Limit)
	case KindConsecutiveDays:
		return fmt.Sprintf("%s làm %d ngày liên tiếp (tối đa %d)", w.StaffID, w.Days, int(w.Limit))
	case KindLowUtilization:
		return fmt.Sprintf("%s đã đăng ký lịch rảnh nhưng chưa được xếp ca nào", w.StaffID)
	case KindFairnessSpread:
		return fmt.Sprintf("Số ca chênh lệch %d giữa các nhân viên; %s có thể nhận thêm ca", w.Spread, w.StaffID)
	}
	return string(w.Kind)
}

func shiftLabel(w Warning) string {
	if w.ShiftName != "" {
		return w.ShiftName
	}
	return w.ShiftID
}
