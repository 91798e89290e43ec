package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, caption, description, start_date, end_date, location,
		is_online, meeting_link, recruiters_number, is_time_slot_enabled, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (title, caption, description, start_date, end_date, location,
			is_online, meeting_link, recruiters_number, is_time_slot_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Caption,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Location,
		event.IsOnline,
		event.MeetingLink,
		event.RecruitersNumber,
		event.IsTimeSlotEnabled,
		now,
		now,
	).Scan(&event.ID)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	event.CreatedAt = now
	event.UpdatedAt = now
	return nil
}

func scanEvent(row interface{ Scan(...interface{}) error }, event *entity.Event) error {
	return row.Scan(
		&event.ID,
		&event.Title,
		&event.Caption,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.Location,
		&event.IsOnline,
		&event.MeetingLink,
		&event.RecruitersNumber,
		&event.IsTimeSlotEnabled,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := scanEvent(r.db.QueryRowContext(ctx, query, id), &event)
	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (r *eventRepository) GetAll(ctx context.Context) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $1, caption = $2, description = $3, start_date = $4, end_date = $5,
		    location = $6, is_online = $7, meeting_link = $8, recruiters_number = $9,
		    is_time_slot_enabled = $10, updated_at = $11
		WHERE id = $12
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Caption,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Location,
		event.IsOnline,
		event.MeetingLink,
		event.RecruitersNumber,
		event.IsTimeSlotEnabled,
		time.Now(),
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

// Delete removes the event; time slots and participations go with it via
// ON DELETE CASCADE.
func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date ASC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by date range: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *eventRepository) SearchByTitle(ctx context.Context, title string) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE title ILIKE $1 ORDER BY start_date ASC`

	rows, err := r.db.QueryContext(ctx, query, "%"+title+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search events by title: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]*entity.Event, error) {
	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
