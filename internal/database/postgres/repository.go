package repository

import (
	"context"
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/jobgate/jobgate-backend/internal/scheduling"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id int64) error

	GetByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error)
	SearchByTitle(ctx context.Context, title string) ([]*entity.Event, error)
}

type TimeSlotRepository interface {
	Create(ctx context.Context, slot *entity.TimeSlot) error
	GetByID(ctx context.Context, id int64) (*entity.TimeSlot, error)
	// GetByEventID returns the event's slots ordered by start time.
	GetByEventID(ctx context.Context, eventID int64) ([]*entity.TimeSlot, error)
	Delete(ctx context.Context, id int64) error
}

type TalentRepository interface {
	Create(ctx context.Context, talent *entity.Talent) error
	GetByID(ctx context.Context, id int64) (*entity.Talent, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.Talent, error)
	GetByEmail(ctx context.Context, email string) (*entity.Talent, error)
	Update(ctx context.Context, talent *entity.Talent) error
	GetAll(ctx context.Context) ([]*entity.Talent, error)
}

type ParticipationRepository interface {
	// Create commits a registration without an appointment (the no-timeslot
	// path). The unique (talent, event) guard applies.
	Create(ctx context.Context, p *entity.Participation) error

	// CreateWithAppointment atomically allocates the earliest free candidate
	// slot against the committed ledger and inserts the participation
	// carrying it. Occupancy reads are scoped to p's (event, time slot) pair.
	CreateWithAppointment(ctx context.Context, p *entity.Participation, grid []scheduling.CandidateSlot, capacity int) error

	GetByID(ctx context.Context, id int64) (*entity.Participation, error)
	GetByEventAndTalent(ctx context.Context, eventID, talentID int64) (*entity.Participation, error)
	GetByEventID(ctx context.Context, eventID int64) ([]*entity.Participation, error)
	GetByTalentID(ctx context.Context, talentID int64) ([]*entity.Participation, error)
	Delete(ctx context.Context, id int64) error

	// Review mutations
	SetAttendance(ctx context.Context, id int64, attended bool) error
	SetReview(ctx context.Context, id int64, note int, comment string) error
	SetSelected(ctx context.Context, id int64, selected bool) error

	// Reminder pipeline
	GetUpcomingRDVs(ctx context.Context, from, to time.Time, urgent bool) ([]*entity.RDVReminder, error)
	MarkReminderSent(ctx context.Context, id int64, urgent bool) error

	// Statistics
	GetStatsByEvent(ctx context.Context, eventID int64) (*entity.EventParticipationStats, error)
}
