package entity

import (
	"time"
)

type Event struct {
	ID                int64     `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Caption           string    `json:"caption" db:"caption"`
	Description       string    `json:"description" db:"description"`
	StartDate         time.Time `json:"start_date" db:"start_date"`
	EndDate           time.Time `json:"end_date" db:"end_date"`
	Location          string    `json:"location" db:"location"`
	IsOnline          bool      `json:"is_online" db:"is_online"`
	MeetingLink       string    `json:"meeting_link" db:"meeting_link"`
	RecruitersNumber  int       `json:"recruiters_number" db:"recruiters_number"`
	IsTimeSlotEnabled bool      `json:"is_time_slot_enabled" db:"is_time_slot_enabled"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// IsArchived is derived, never stored: an event is archived once its end date
// has passed.
func (e *Event) IsArchived(now time.Time) bool {
	return e.EndDate.Before(now)
}

type EventWithStats struct {
	Event
	ParticipantsCount int     `json:"participants_count"`
	AttendedCount     int     `json:"attended_count"`
	SelectedCount     int     `json:"selected_count"`
	AverageNote       float64 `json:"average_note"`
}
