package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatorFixture(t *testing.T) *ScheduleState {
	t.Helper()
	slots := mustBuildSlots(t,
		[]ShiftTemplate{
			{ID: "morning", StartTime: "08:00", EndTime: "14:00"},
			{ID: "midday", StartTime: "12:00", EndTime: "16:00"},
		},
		[]Requirement{
			{DayOfWeek: 0, ShiftID: "morning", Required: 1},
			{DayOfWeek: 0, ShiftID: "midday", Required: 1},
		},
	)
	availability := append(availableOn("alice", "morning", 0), availableOn("alice", "midday", 0)...)
	availability = append(availability, availableOn("bob", "morning", 0)...)

	return initState(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availability),
		StaffIDs:     []string{"alice", "bob"},
	})
}

func TestValidateScheduleState_AllValid(t *testing.T) {
	state := validatorFixture(t)
	state.assign("alice", state.Slots[0])

	assert.Empty(t, ValidateScheduleState(state))
}

func TestValidateScheduleState_OverFilled(t *testing.T) {
	state := validatorFixture(t)
	state.Slots[0].Assigned = []string{"alice", "bob"}

	violations := ValidateScheduleState(state)
	require.Len(t, violations, 1)
	assert.Equal(t, "morning", violations[0].ShiftID)
	assert.Contains(t, violations[0].Description, "overfilled")
}

func TestValidateScheduleState_DuplicateAssignment(t *testing.T) {
	state := validatorFixture(t)
	state.Slots[0].Required = 2
	state.Slots[0].Assigned = []string{"alice", "alice"}

	violations := ValidateScheduleState(state)
	require.Len(t, violations, 1)
	assert.Equal(t, "alice", violations[0].StaffID)
	assert.Contains(t, violations[0].Description, "multiple times")
}

func TestValidateScheduleState_AvailabilityViolation(t *testing.T) {
	state := validatorFixture(t)
	state.Slots[1].Assigned = []string{"bob"}

	violations := ValidateScheduleState(state)
	require.Len(t, violations, 1)
	assert.Equal(t, "bob", violations[0].StaffID)
	assert.Equal(t, "midday", violations[0].ShiftID)
	assert.Contains(t, violations[0].Description, "without availability")
}

func TestValidateScheduleState_Overlap(t *testing.T) {
	state := validatorFixture(t)
	state.Slots[0].Assigned = []string{"alice"}
	state.Slots[1].Assigned = []string{"alice"}

	violations := ValidateScheduleState(state)
	require.Len(t, violations, 1)
	assert.Equal(t, "alice", violations[0].StaffID)
	assert.Contains(t, violations[0].Description, "overlaps morning")
}
