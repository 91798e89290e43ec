package scheduling

import (
	"testing"
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, duration, recruiters int) []CandidateSlot {
	t.Helper()
	slots, err := GenerateSlots(testDay, entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(10, 0), duration, recruiters)
	require.NoError(t, err)
	return slots
}

func TestFindAvailableSlotFirstFit(t *testing.T) {
	grid := mustGrid(t, 10, 2)

	slot, ok := FindAvailableSlot(grid, nil, 2)
	require.True(t, ok)
	assert.Equal(t, "09:00", slot.Start.Format("15:04"))

	// One booking at 09:00 leaves a second seat there.
	booked := []time.Time{grid[0].Start}
	slot, ok = FindAvailableSlot(grid, booked, 2)
	require.True(t, ok)
	assert.Equal(t, "09:00", slot.Start.Format("15:04"))

	// Both seats taken at 09:00 pushes allocation to 09:10.
	booked = append(booked, grid[0].Start)
	slot, ok = FindAvailableSlot(grid, booked, 2)
	require.True(t, ok)
	assert.Equal(t, "09:10", slot.Start.Format("15:04"))
}

// Sequential registrations land on floor((k-1)/R)-th distinct timestamp.
func TestMonotonicAllocation(t *testing.T) {
	const recruiters = 2
	grid := mustGrid(t, 10, recruiters)
	timestamps := []string{"09:00", "09:10", "09:20", "09:30", "09:40", "09:50"}

	var booked []time.Time
	for k := 1; k <= len(grid); k++ {
		slot, ok := FindAvailableSlot(grid, booked, recruiters)
		require.True(t, ok, "registration %d should find a slot", k)

		wantIdx := (k - 1) / recruiters
		assert.Equal(t, timestamps[wantIdx], slot.Start.Format("15:04"), "registration %d", k)
		booked = append(booked, slot.Start)
	}

	// Grid is now saturated.
	_, ok := FindAvailableSlot(grid, booked, recruiters)
	assert.False(t, ok)
}

func TestFindAvailableSlotExhaustion(t *testing.T) {
	grid := mustGrid(t, 30, 1)
	require.Len(t, grid, 2)

	booked := []time.Time{grid[0].Start, grid[1].Start}
	_, ok := FindAvailableSlot(grid, booked, 1)
	assert.False(t, ok)
}

func TestFindAvailableSlotIgnoresForeignTimestamps(t *testing.T) {
	grid := mustGrid(t, 30, 1)

	// Bookings outside the grid never block candidates.
	booked := []time.Time{testDay.Add(22 * time.Hour)}
	slot, ok := FindAvailableSlot(grid, booked, 1)
	require.True(t, ok)
	assert.Equal(t, "09:00", slot.Start.Format("15:04"))
}

func TestFindAvailableSlotZeroCapacity(t *testing.T) {
	grid := mustGrid(t, 30, 1)
	_, ok := FindAvailableSlot(grid, nil, 0)
	assert.False(t, ok)
}

func TestCountOccupancy(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 6, 10, h, m, 0, 0, time.UTC) }

	occupancy := CountOccupancy([]time.Time{at(9, 0), at(9, 0), at(9, 30)})
	assert.Equal(t, 2, occupancy[at(9, 0).Unix()])
	assert.Equal(t, 1, occupancy[at(9, 30).Unix()])
	assert.Equal(t, 0, occupancy[at(10, 0).Unix()])
}
