package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAvailabilityIndex_OnlyPositiveEntries(t *testing.T) {
	index := NewAvailabilityIndex(testWeekStart, []Availability{
		{StaffID: "alice", DayOfWeek: 0, ShiftID: "morning", Available: true},
		{StaffID: "alice", DayOfWeek: 1, ShiftID: "morning", Available: false},
		{StaffID: "bob", DayOfWeek: 6, ShiftID: "evening", Available: true},
	})

	assert.True(t, index.IsAvailable("alice", "2025-01-06", "morning"))
	assert.False(t, index.IsAvailable("alice", "2025-01-07", "morning"), "explicit false stays unavailable")
	assert.True(t, index.IsAvailable("bob", "2025-01-12", "evening"))
}

func TestAvailabilityIndex_MissingEntriesAreUnavailable(t *testing.T) {
	index := NewAvailabilityIndex(testWeekStart, []Availability{
		{StaffID: "alice", DayOfWeek: 0, ShiftID: "morning", Available: true},
	})

	assert.False(t, index.IsAvailable("alice", "2025-01-06", "evening"), "unknown shift")
	assert.False(t, index.IsAvailable("alice", "2025-01-08", "morning"), "unknown date")
	assert.False(t, index.IsAvailable("carol", "2025-01-06", "morning"), "unknown staff")
}

func TestAvailabilityIndex_IgnoresDaysOutOfRange(t *testing.T) {
	index := NewAvailabilityIndex(testWeekStart, []Availability{
		{StaffID: "alice", DayOfWeek: -1, ShiftID: "morning", Available: true},
		{StaffID: "alice", DayOfWeek: 7, ShiftID: "morning", Available: true},
	})

	assert.False(t, index.HasAny("alice"))
}

func TestAvailabilityIndex_Count(t *testing.T) {
	index := NewAvailabilityIndex(testWeekStart, []Availability{
		{StaffID: "alice", DayOfWeek: 0, ShiftID: "morning", Available: true},
		{StaffID: "alice", DayOfWeek: 0, ShiftID: "morning", Available: true},
		{StaffID: "alice", DayOfWeek: 0, ShiftID: "evening", Available: true},
		{StaffID: "alice", DayOfWeek: 3, ShiftID: "morning", Available: true},
	})

	assert.Equal(t, 3, index.Count("alice"), "duplicate entries count once")
	assert.True(t, index.HasAny("alice"))
	assert.Equal(t, 0, index.Count("bob"))
	assert.False(t, index.HasAny("bob"))
}

func TestAvailabilityIndex_Nil(t *testing.T) {
	var index *AvailabilityIndex

	assert.False(t, index.IsAvailable("alice", "2025-01-06", "morning"))
	assert.Equal(t, 0, index.Count("alice"))
}
