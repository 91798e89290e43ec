package service

import (
	"context"
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
)

// EventService manages recruiting events and their interview time slots.
type EventService interface {
	CreateEvent(ctx context.Context, event *entity.Event) error
	GetEvent(ctx context.Context, id int64) (*entity.Event, error)
	GetAllEvents(ctx context.Context) ([]*entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	SearchEvents(ctx context.Context, title string) ([]*entity.Event, error)
	GetEventsByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error)
	GetEventStats(ctx context.Context, eventID int64) (*entity.EventParticipationStats, error)

	AddTimeSlot(ctx context.Context, slot *entity.TimeSlot) error
	GetTimeSlots(ctx context.Context, eventID int64) ([]*entity.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, id int64) error
}

// RegisterRequest carries everything a talent submits when joining an event.
// TimeSlotID is optional: when nil the earliest configured slot is used.
type RegisterRequest struct {
	EventID    int64  `json:"event_id" binding:"required"`
	TimeSlotID *int64 `json:"time_slot_id"`

	UserID    *int64 `json:"user_id"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	School    string `json:"school"`
	Program   string `json:"program"`
	ResumeURL string `json:"resume_url"`
}

// RegistrationResult is what the talent gets back: the committed
// participation and, when slots are enabled, the assigned appointment.
type RegistrationResult struct {
	Participation *entity.Participation `json:"participation"`
	Talent        *entity.Talent        `json:"talent"`
	RDV           *time.Time            `json:"rdv,omitempty"`
}

// RegistrationService commits event registrations and appointment
// allocations.
type RegistrationService interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegistrationResult, error)
}

// ReviewRequest carries a recruiter's post-interview review.
type ReviewRequest struct {
	Note    int    `json:"note"`
	Comment string `json:"comment"`
}

// ParticipationService manages registrations after they were committed.
type ParticipationService interface {
	GetParticipation(ctx context.Context, id int64) (*entity.Participation, error)
	GetEventParticipations(ctx context.Context, eventID int64) ([]*entity.Participation, error)
	GetTalentParticipations(ctx context.Context, talentID int64) ([]*entity.Participation, error)
	CancelParticipation(ctx context.Context, id int64) error

	SetAttendance(ctx context.Context, id int64, attended bool) error
	SetReview(ctx context.Context, id int64, req *ReviewRequest) error
	SetSelected(ctx context.Context, id int64, selected bool) error

	// ScanReminders finds appointments entering the reminder window and
	// enqueues a reminder task for each. Returns how many were enqueued.
	ScanReminders(ctx context.Context, urgent bool) (int, error)
	MarkReminderSent(ctx context.Context, id int64, urgent bool) error
}

// TalentService manages talent profiles.
type TalentService interface {
	CreateTalent(ctx context.Context, talent *entity.Talent) error
	GetTalent(ctx context.Context, id int64) (*entity.Talent, error)
	GetAllTalents(ctx context.Context) ([]*entity.Talent, error)
	UpdateTalent(ctx context.Context, talent *entity.Talent) error
}
