package entity

import (
	"time"
)

// TimeSlot is a recurring daily interview window attached to an event.
// The legacy schema overloaded a single `slot` column as both a capacity
// count and an appointment duration in minutes; the two meanings are split
// into CapacityHint and DurationMinutes here.
type TimeSlot struct {
	ID              int64     `json:"id" db:"id"`
	EventID         int64     `json:"event_id" db:"event_id"`
	StartTime       TimeOfDay `json:"start_time" db:"start_time"`
	EndTime         TimeOfDay `json:"end_time" db:"end_time"`
	CapacityHint    int       `json:"capacity_hint" db:"capacity_hint"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
