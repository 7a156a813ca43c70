package scheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/smart-schedule/pkg/core/allocator"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Issue is a single problem found in a request
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a request is rejected before solving.
// No partial schedule is produced.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Message)
	}
	return "invalid schedule request: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Issues = append(e.Issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a request against the structural rules and the size limits.
// Returns a *ValidationError listing every issue found, or nil.
func Validate(req Request, limits Limits) error {
	verr := &ValidationError{}

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate request: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(fieldName(fe), "failed %q rule", fe.Tag())
		}
	}

	if req.WeekStart != "" {
		weekStart, err := time.Parse(allocator.DateLayout, req.WeekStart)
		if err != nil {
			verr.add("weekStart", "must be a date in YYYY-MM-DD format")
		} else if weekStart.Weekday() != time.Monday {
			verr.add("weekStart", "%s is a %s, not a Monday", req.WeekStart, weekStart.Weekday())
		}
	}

	templateIDs := make(map[string]bool, len(req.Templates))
	for i, tpl := range req.Templates {
		field := fmt.Sprintf("shiftTemplates[%d]", i)
		if tpl.ID != "" && templateIDs[tpl.ID] {
			verr.add(field+".id", "duplicate shift template %q", tpl.ID)
		}
		templateIDs[tpl.ID] = true

		start, startErr := allocator.ParseClock(tpl.StartTime)
		if startErr != nil && tpl.StartTime != "" {
			verr.add(field+".startTime", "%v", startErr)
		}
		end, endErr := allocator.ParseClock(tpl.EndTime)
		if endErr != nil && tpl.EndTime != "" {
			verr.add(field+".endTime", "%v", endErr)
		}
		if startErr == nil && endErr == nil && start == end {
			verr.add(field, "start time and end time are both %s", tpl.StartTime)
		}
	}

	for i, requirement := range req.Requirements {
		if requirement.ShiftID != "" && !templateIDs[requirement.ShiftID] {
			verr.add(fmt.Sprintf("requirements[%d].shiftId", i), "unknown shift template %q", requirement.ShiftID)
		}
	}

	staffIDs := make(map[string]bool, len(req.StaffIDs))
	for i, staffID := range req.StaffIDs {
		if staffID != "" && staffIDs[staffID] {
			verr.add(fmt.Sprintf("staffIds[%d]", i), "duplicate staff member %q", staffID)
		}
		staffIDs[staffID] = true
	}

	if limits.MaxStaff > 0 && len(req.StaffIDs) > limits.MaxStaff {
		verr.add("staffIds", "%d staff exceeds the limit of %d", len(req.StaffIDs), limits.MaxStaff)
	}
	if limits.MaxShiftTemplates > 0 && len(req.Templates) > limits.MaxShiftTemplates {
		verr.add("shiftTemplates", "%d shift templates exceeds the limit of %d", len(req.Templates), limits.MaxShiftTemplates)
	}

	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}

// fieldName converts a validator namespace such as Request.Templates[0].StartTime
// into the JSON path shiftTemplates[0].startTime
func fieldName(fe validator.FieldError) string {
	ns := strings.TrimPrefix(fe.Namespace(), "Request.")
	parts := strings.Split(ns, ".")
	for i, part := range parts {
		name, index, _ := strings.Cut(part, "[")
		if json, ok := jsonNames[name]; ok {
			name = json
		} else if name != "" {
			name = strings.ToLower(name[:1]) + name[1:]
		}
		if index != "" {
			name += "[" + index
		}
		parts[i] = name
	}
	return strings.Join(parts, ".")
}

var jsonNames = map[string]string{
	"Templates": "shiftTemplates",
	"StaffIDs":  "staffIds",
	"ShiftID":   "shiftId",
	"StaffID":   "staffId",
	"ID":        "id",
	"Available": "isAvailable",
}
