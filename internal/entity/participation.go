package entity

import (
	"time"
)

// Participation is the booking ledger row: one talent registered for one
// event, optionally holding an allocated appointment (RDV) timestamp bound
// to one of the event's time slots. Unique per (talent, event).
type Participation struct {
	ID                 int64      `json:"id" db:"id"`
	TalentID           int64      `json:"talent_id" db:"talent_id"`
	EventID            int64      `json:"event_id" db:"event_id"`
	TimeSlotID         *int64     `json:"time_slot_id,omitempty" db:"time_slot_id"`
	RDV                *time.Time `json:"rdv,omitempty" db:"rdv"`
	HasAttended        bool       `json:"has_attended" db:"has_attended"`
	Note               int        `json:"note" db:"note"`
	Comment            string     `json:"comment" db:"comment"`
	IsSelected         bool       `json:"is_selected" db:"is_selected"`
	ReminderSent       bool       `json:"reminder_sent" db:"reminder_sent"`
	UrgentReminderSent bool       `json:"urgent_reminder_sent" db:"urgent_reminder_sent"`
	DateInscription    time.Time  `json:"date_inscription" db:"date_inscription"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// RDVReminder carries everything the notification pipeline needs to remind a
// talent about an upcoming appointment, denormalized from the talent and
// event rows.
type RDVReminder struct {
	ParticipationID int64     `json:"participation_id"`
	RDV             time.Time `json:"rdv"`
	TalentName      string    `json:"talent_name"`
	TalentEmail     string    `json:"talent_email"`
	EventTitle      string    `json:"event_title"`
	EventLocation   string    `json:"event_location"`
	IsOnline        bool      `json:"is_online"`
	MeetingLink     string    `json:"meeting_link"`
}

// EventParticipationStats aggregates recruiter review state for one event.
type EventParticipationStats struct {
	ParticipantsCount int     `json:"participants_count"`
	WithRDVCount      int     `json:"with_rdv_count"`
	AttendedCount     int     `json:"attended_count"`
	SelectedCount     int     `json:"selected_count"`
	AverageNote       float64 `json:"average_note"`
}
