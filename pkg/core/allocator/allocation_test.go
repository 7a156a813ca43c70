package allocator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCriterion vetoes staff listed in vetoed and returns a fixed set of warnings
type mockCriterion struct {
	name     string
	vetoed   map[string]bool
	warnings []Warning
}

func (m *mockCriterion) Name() string {
	return m.name
}

func (m *mockCriterion) IsSlotValid(state *ScheduleState, staffID string, slot *ShiftSlot) bool {
	return !m.vetoed[staffID]
}

func (m *mockCriterion) Detect(state *ScheduleState) []Warning {
	return m.warnings
}

// everyDay returns a requirement for the template on all seven days
func everyDay(shiftID string, required int) []Requirement {
	reqs := make([]Requirement, daysPerWeek)
	for day := range reqs {
		reqs[day] = Requirement{DayOfWeek: day, ShiftID: shiftID, Required: required}
	}
	return reqs
}

// availableOn marks the staff member available for the template on the given days
func availableOn(staffID, shiftID string, days ...int) []Availability {
	entries := make([]Availability, len(days))
	for i, day := range days {
		entries[i] = Availability{StaffID: staffID, DayOfWeek: day, ShiftID: shiftID, Available: true}
	}
	return entries
}

var allDays = []int{0, 1, 2, 3, 4, 5, 6}

func mustBuildSlots(t *testing.T, templates []ShiftTemplate, requirements []Requirement) []ShiftSlot {
	t.Helper()
	slots, err := BuildSlots(DemandInput{
		WeekStart:    testWeekStart,
		Templates:    templates,
		Requirements: requirements,
	})
	require.NoError(t, err)
	return slots
}

func TestIsSlotValidForStaff_NotAvailable(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", StartTime: "08:00", EndTime: "12:00"}},
		[]Requirement{{DayOfWeek: 0, ShiftID: "morning", Required: 1}},
	)
	state := initState(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availableOn("alice", "morning", 1)),
		StaffIDs:     []string{"alice"},
	})

	valid := IsSlotValidForStaff(state, "alice", state.Slots[0], nil)
	assert.False(t, valid, "Should return false for a slot the staff member is not available for")
}

func TestIsSlotValidForStaff_AlreadyAssigned(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", StartTime: "08:00", EndTime: "12:00"}},
		[]Requirement{{DayOfWeek: 0, ShiftID: "morning", Required: 2}},
	)
	state := initState(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availableOn("alice", "morning", 0)),
		StaffIDs:     []string{"alice"},
	})
	state.assign("alice", state.Slots[0])

	valid := IsSlotValidForStaff(state, "alice", state.Slots[0], nil)
	assert.False(t, valid, "Should return false for a slot the staff member already holds")
}

func TestIsSlotValidForStaff_OverlappingAssignment(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{
			{ID: "morning", StartTime: "08:00", EndTime: "14:00"},
			{ID: "midday", StartTime: "12:00", EndTime: "16:00"},
			{ID: "evening", StartTime: "16:00", EndTime: "20:00"},
		},
		[]Requirement{
			{DayOfWeek: 0, ShiftID: "morning", Required: 1},
			{DayOfWeek: 0, ShiftID: "midday", Required: 1},
			{DayOfWeek: 0, ShiftID: "evening", Required: 1},
		},
	)
	availability := append(availableOn("alice", "morning", 0), availableOn("alice", "midday", 0)...)
	availability = append(availability, availableOn("alice", "evening", 0)...)
	state := initState(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availability),
		StaffIDs:     []string{"alice"},
	})
	state.assign("alice", state.Slots[0])

	assert.False(t, IsSlotValidForStaff(state, "alice", state.Slots[1], nil), "midday overlaps morning")
	assert.True(t, IsSlotValidForStaff(state, "alice", state.Slots[2], nil), "back-to-back shifts do not overlap")
}

func TestIsSlotValidForStaff_CriterionVeto(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", StartTime: "08:00", EndTime: "12:00"}},
		[]Requirement{{DayOfWeek: 0, ShiftID: "morning", Required: 1}},
	)
	state := initState(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availableOn("alice", "morning", 0)),
		StaffIDs:     []string{"alice"},
	})

	veto := &mockCriterion{name: "veto", vetoed: map[string]bool{"alice": true}}
	assert.False(t, IsSlotValidForStaff(state, "alice", state.Slots[0], []Criterion{veto}))

	allow := &mockCriterion{name: "allow"}
	assert.True(t, IsSlotValidForStaff(state, "alice", state.Slots[0], []Criterion{allow}))
}

func TestSolve_FillsUpToRequired(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", StartTime: "08:00", EndTime: "12:00"}},
		[]Requirement{{DayOfWeek: 0, ShiftID: "morning", Required: 2}},
	)
	var availability []Availability
	for _, staffID := range []string{"alice", "bob", "carol", "dave"} {
		availability = append(availability, availableOn(staffID, "morning", 0)...)
	}

	state := Solve(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availability),
		StaffIDs:     []string{"alice", "bob", "carol", "dave"},
	})

	require.Len(t, state.Slots, 1)
	assert.Equal(t, []string{"alice", "bob"}, state.Slots[0].Assigned, "nil rng keeps roster order for ties")
	assert.True(t, state.Assignments.Contains("alice", "2025-01-06", "morning"))
	assert.Equal(t, 4.0, state.Workload.Hours("alice"))
	assert.Equal(t, 0, state.Workload.ShiftCount("carol"))
}

func TestSolve_PartialFillWhenInfeasible(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", StartTime: "08:00", EndTime: "12:00"}},
		[]Requirement{
			{DayOfWeek: 0, ShiftID: "morning", Required: 3},
			{DayOfWeek: 1, ShiftID: "morning", Required: 1},
		},
	)

	state := Solve(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availableOn("alice", "morning", 0)),
		StaffIDs:     []string{"alice", "bob"},
	})

	require.Len(t, state.Slots, 2)
	assert.Equal(t, []string{"alice"}, state.Slots[0].Assigned)
	assert.Equal(t, 2, state.Slots[0].Shortfall())
	assert.Empty(t, state.Slots[1].Assigned)
	assert.Equal(t, 1, state.Slots[1].Shortfall())
}

func TestSolve_EmptyInputs(t *testing.T) {
	state := Solve(SolveConfig{})

	assert.Empty(t, state.Slots)
	assert.Empty(t, state.Assignments)
	assert.Empty(t, ValidateScheduleState(state))
}

func TestSolve_DoesNotMutateInputSlots(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", StartTime: "08:00", EndTime: "12:00"}},
		everyDay("morning", 1),
	)

	Solve(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availableOn("alice", "morning", allDays...)),
		StaffIDs:     []string{"alice"},
	})

	for _, slot := range slots {
		assert.Empty(t, slot.Assigned)
	}
}

func TestSolve_DuplicateRosterEntriesIgnored(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", StartTime: "08:00", EndTime: "12:00"}},
		[]Requirement{{DayOfWeek: 0, ShiftID: "morning", Required: 2}},
	)

	state := Solve(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availableOn("alice", "morning", 0)),
		StaffIDs:     []string{"alice", "alice"},
	})

	assert.Equal(t, []string{"alice"}, state.StaffIDs)
	assert.Equal(t, []string{"alice"}, state.Slots[0].Assigned)
}

func TestSolve_NoDoubleBookingOnOverlappingTemplates(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{
			{ID: "morning", StartTime: "08:00", EndTime: "14:00"},
			{ID: "midday", StartTime: "12:00", EndTime: "16:00"},
		},
		append(everyDay("morning", 1), everyDay("midday", 1)...),
	)
	availability := append(availableOn("alice", "morning", allDays...), availableOn("alice", "midday", allDays...)...)

	state := Solve(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availability),
		StaffIDs:     []string{"alice"},
	})

	for _, slot := range state.Slots {
		if slot.ShiftID == "morning" {
			assert.Equal(t, []string{"alice"}, slot.Assigned)
		} else {
			assert.Empty(t, slot.Assigned, "midday on %s overlaps morning", slot.Date)
		}
	}
	assert.Empty(t, ValidateScheduleState(state))
}

func TestSolve_OvernightShiftBlocksNextMorning(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{
			{ID: "night", StartTime: "22:00", EndTime: "06:00"},
			{ID: "dawn", StartTime: "05:00", EndTime: "09:00"},
		},
		[]Requirement{
			{DayOfWeek: 0, ShiftID: "night", Required: 1},
			{DayOfWeek: 1, ShiftID: "dawn", Required: 1},
		},
	)
	availability := append(availableOn("alice", "night", 0), availableOn("alice", "dawn", 1)...)

	state := Solve(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availability),
		StaffIDs:     []string{"alice"},
	})

	require.Len(t, state.Slots, 2)
	assert.Equal(t, []string{"alice"}, state.Slots[0].Assigned)
	assert.Empty(t, state.Slots[1].Assigned, "the night shift runs until 06:00 the next day")
}

func TestSolve_CriterionVetoSkipsCandidate(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", StartTime: "08:00", EndTime: "12:00"}},
		[]Requirement{{DayOfWeek: 0, ShiftID: "morning", Required: 1}},
	)
	availability := append(availableOn("alice", "morning", 0), availableOn("bob", "morning", 0)...)

	state := Solve(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availability),
		StaffIDs:     []string{"alice", "bob"},
		Criteria:     []Criterion{&mockCriterion{name: "veto", vetoed: map[string]bool{"alice": true}}},
	})

	assert.Equal(t, []string{"bob"}, state.Slots[0].Assigned)
}

func TestSolve_PrefersLeastLoadedCandidate(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{
			{ID: "long", StartTime: "06:00", EndTime: "14:00"},
			{ID: "short", StartTime: "15:00", EndTime: "17:00"},
		},
		[]Requirement{
			{DayOfWeek: 0, ShiftID: "long", Required: 1},
			{DayOfWeek: 0, ShiftID: "short", Required: 1},
			{DayOfWeek: 1, ShiftID: "short", Required: 1},
		},
	)
	availability := append(availableOn("alice", "long", 0), availableOn("alice", "short", 0, 1)...)
	availability = append(availability, availableOn("bob", "short", 0, 1)...)

	state := Solve(SolveConfig{
		Slots:        slots,
		Availability: NewAvailabilityIndex(testWeekStart, availability),
		StaffIDs:     []string{"alice", "bob"},
	})

	require.Len(t, state.Slots, 3)
	assert.Equal(t, []string{"alice"}, state.Slots[0].Assigned)
	assert.Equal(t, []string{"bob"}, state.Slots[1].Assigned, "bob has fewer hours")
	assert.Equal(t, []string{"bob"}, state.Slots[2].Assigned, "bob still has fewer hours (2 vs 8)")
}

func TestSolve_ReproducibleWithSeed(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{
			{ID: "morning", StartTime: "08:00", EndTime: "12:00"},
			{ID: "evening", StartTime: "17:00", EndTime: "21:00"},
		},
		append(everyDay("morning", 2), everyDay("evening", 1)...),
	)
	staff := []string{"alice", "bob", "carol", "dave", "erin"}
	var availability []Availability
	for _, staffID := range staff {
		availability = append(availability, availableOn(staffID, "morning", allDays...)...)
		availability = append(availability, availableOn(staffID, "evening", allDays...)...)
	}
	index := NewAvailabilityIndex(testWeekStart, availability)

	solve := func(seed int64) *ScheduleState {
		return Solve(SolveConfig{
			Slots:        slots,
			Availability: index,
			StaffIDs:     staff,
			Rand:         rand.New(rand.NewSource(seed)),
		})
	}

	first := solve(42)
	second := solve(42)

	assert.Equal(t, first.Assignments, second.Assignments)
	for i := range first.Slots {
		assert.Equal(t, first.Slots[i].Assigned, second.Slots[i].Assigned)
	}
}

func TestSolve_SurplusStaffGivesFullCoverage(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{
			{ID: "morning", StartTime: "08:00", EndTime: "12:00"},
			{ID: "evening", StartTime: "17:00", EndTime: "21:00"},
		},
		append(everyDay("morning", 2), everyDay("evening", 2)...),
	)
	staff := []string{"alice", "bob", "carol", "dave", "erin"}
	var availability []Availability
	for _, staffID := range staff {
		availability = append(availability, availableOn(staffID, "morning", allDays...)...)
		availability = append(availability, availableOn(staffID, "evening", allDays...)...)
	}

	for seed := int64(1); seed <= 10; seed++ {
		state := Solve(SolveConfig{
			Slots:        slots,
			Availability: NewAvailabilityIndex(testWeekStart, availability),
			StaffIDs:     staff,
			Rand:         rand.New(rand.NewSource(seed)),
		})

		stats := CalculateStats(state)
		assert.Equal(t, 100, stats.CoveragePercent, "seed %d", seed)
		assert.Empty(t, ValidateScheduleState(state), "seed %d", seed)
	}
}

// Scenario: 3 staff, one 4h template, 2 required every day, everyone available
func TestSolve_FairnessUnderFullAvailability(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", Name: "Morning", StartTime: "08:00", EndTime: "12:00"}},
		everyDay("morning", 2),
	)
	staff := []string{"a", "b", "c"}
	var availability []Availability
	for _, staffID := range staff {
		availability = append(availability, availableOn(staffID, "morning", allDays...)...)
	}
	index := NewAvailabilityIndex(testWeekStart, availability)

	rngs := []*rand.Rand{nil}
	for seed := int64(1); seed <= 20; seed++ {
		rngs = append(rngs, rand.New(rand.NewSource(seed)))
	}

	for _, rng := range rngs {
		state := Solve(SolveConfig{Slots: slots, Availability: index, StaffIDs: staff, Rand: rng})

		stats := CalculateStats(state)
		assert.Equal(t, 100, stats.CoveragePercent)
		assert.Equal(t, 14, stats.TotalShiftsFilled)

		for _, staffID := range staff {
			count := state.Workload.ShiftCount(staffID)
			assert.True(t, count == 4 || count == 5, "%s has %d shifts", staffID, count)
		}
		assert.LessOrEqual(t, ShiftCountSpread(state), 1)
	}
}

// Scenario: a weekend-only staff member is never placed on a weekday
func TestSolve_WeekendOnlyStaff(t *testing.T) {
	slots := mustBuildSlots(t,
		[]ShiftTemplate{{ID: "morning", StartTime: "08:00", EndTime: "12:00"}},
		everyDay("morning", 1),
	)

	t.Run("others cover weekdays", func(t *testing.T) {
		availability := append(availableOn("weekender", "morning", 5, 6), availableOn("alice", "morning", allDays...)...)

		state := Solve(SolveConfig{
			Slots:        slots,
			Availability: NewAvailabilityIndex(testWeekStart, availability),
			StaffIDs:     []string{"weekender", "alice"},
			Rand:         rand.New(rand.NewSource(7)),
		})

		assert.Subset(t, []string{"2025-01-11", "2025-01-12"}, state.Assignments.Dates("weekender"))
		assert.Equal(t, 100, CalculateStats(state).CoveragePercent)
	})

	t.Run("nobody else available", func(t *testing.T) {
		state := Solve(SolveConfig{
			Slots:        slots,
			Availability: NewAvailabilityIndex(testWeekStart, availableOn("weekender", "morning", 5, 6)),
			StaffIDs:     []string{"weekender"},
		})

		assert.Equal(t, []string{"2025-01-11", "2025-01-12"}, state.Assignments.Dates("weekender"))
		for _, slot := range state.Slots {
			if slot.DayOfWeek < 5 {
				assert.Equal(t, 1, slot.Shortfall(), "weekday %s should be left unfilled", slot.Date)
			}
		}
	})
}

func TestRankCandidates(t *testing.T) {
	workload := NewWorkload([]string{"alice", "bob", "carol", "dave"})
	workload.Record("alice", 480)
	workload.Record("bob", 240)
	workload.Record("carol", 240)
	workload.Record("carol", 0)

	candidates := []string{"alice", "carol", "bob", "dave"}
	RankCandidates(workload, candidates, nil)

	assert.Equal(t, []string{"dave", "bob", "carol", "alice"}, candidates,
		"hours first, then shift count breaks the bob/carol tie")
}

func TestRankCandidates_ShortShiftsSumExactly(t *testing.T) {
	workload := NewWorkload([]string{"short", "long"})
	for range 10 {
		workload.Record("short", 6)
	}
	workload.Record("long", 60)
	workload.Record("long", 0)

	candidates := []string{"long", "short"}
	RankCandidates(workload, candidates, nil)

	assert.Equal(t, []string{"short", "long"}, candidates,
		"ten 6-minute shifts equal one hour, so shift count decides")
	assert.Equal(t, 1.0, workload.Hours("short"))
	assert.Equal(t, 60, workload.Minutes("short"))
}

func TestRankCandidates_RandomTieBreakIsSeeded(t *testing.T) {
	staff := []string{"a", "b", "c", "d", "e", "f"}
	workload := NewWorkload(staff)

	first := append([]string(nil), staff...)
	RankCandidates(workload, first, rand.New(rand.NewSource(99)))

	second := append([]string(nil), staff...)
	RankCandidates(workload, second, rand.New(rand.NewSource(99)))

	assert.Equal(t, first, second)
	assert.ElementsMatch(t, staff, first)
}
