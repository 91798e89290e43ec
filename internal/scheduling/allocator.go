package scheduling

import (
	"time"
)

// CountOccupancy tallies how many committed appointments share each distinct
// start timestamp.
func CountOccupancy(booked []time.Time) map[int64]int {
	occupancy := make(map[int64]int, len(booked))
	for _, t := range booked {
		occupancy[t.Unix()]++
	}
	return occupancy
}

// FindAvailableSlot walks the candidate grid in order and returns the first
// slot whose timestamp holds fewer bookings than the recruiter capacity.
// First fit, earliest first: appointments pack toward the start of the day.
// ok is false when every timestamp is saturated.
func FindAvailableSlot(candidates []CandidateSlot, booked []time.Time, capacity int) (CandidateSlot, bool) {
	if capacity < 1 {
		return CandidateSlot{}, false
	}

	occupancy := CountOccupancy(booked)
	for _, slot := range candidates {
		if occupancy[slot.Start.Unix()] < capacity {
			return slot, true
		}
	}
	return CandidateSlot{}, false
}
