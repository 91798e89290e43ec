package scheduling

import (
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
)

// CandidateSlot is one (timestamp, recruiter) unit of interview capacity.
// Slots sharing a start timestamp are interchangeable: they model recruiters
// interviewing in parallel during the same window.
type CandidateSlot struct {
	Start     time.Time
	End       time.Time
	Recruiter int
}

// GenerateSlots builds the full candidate grid for one event day: stepping
// from start to end in duration-sized increments, emitting one slot per
// recruiter at each step. The wall-clock bounds are anchored to day's
// calendar date. A trailing interval shorter than the duration is dropped.
func GenerateSlots(day time.Time, start, end entity.TimeOfDay, durationMinutes, recruiters int) ([]CandidateSlot, error) {
	if !start.Before(end) {
		return nil, entity.ErrInvalidSlotConfig
	}
	if durationMinutes <= 0 || recruiters < 1 {
		return nil, entity.ErrInvalidSlotConfig
	}

	step := time.Duration(durationMinutes) * time.Minute
	current := start.On(day)
	limit := end.On(day)

	var slots []CandidateSlot
	for next := current.Add(step); !next.After(limit); next = next.Add(step) {
		for r := 1; r <= recruiters; r++ {
			slots = append(slots, CandidateSlot{Start: current, End: next, Recruiter: r})
		}
		current = next
	}
	return slots, nil
}

// GridCapacity returns the total number of candidate slots a configuration
// yields without materializing the grid.
func GridCapacity(start, end entity.TimeOfDay, durationMinutes, recruiters int) int {
	if !start.Before(end) || durationMinutes <= 0 || recruiters < 1 {
		return 0
	}
	return (end.Minutes() - start.Minutes()) / durationMinutes * recruiters
}
