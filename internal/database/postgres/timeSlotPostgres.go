package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/lib/pq"
)

type timeSlotRepository struct {
	db *sql.DB
}

func NewTimeSlotRepository(db *sql.DB) TimeSlotRepository {
	return &timeSlotRepository{db: db}
}

func (r *timeSlotRepository) Create(ctx context.Context, slot *entity.TimeSlot) error {
	query := `
		INSERT INTO time_slots (event_id, start_time, end_time, capacity_hint, duration_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		slot.EventID,
		slot.StartTime,
		slot.EndTime,
		slot.CapacityHint,
		slot.DurationMinutes,
		now,
	).Scan(&slot.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return entity.ErrTimeSlotExists
	}
	if err != nil {
		return fmt.Errorf("failed to create time slot: %w", err)
	}

	slot.CreatedAt = now
	return nil
}

func (r *timeSlotRepository) GetByID(ctx context.Context, id int64) (*entity.TimeSlot, error) {
	query := `
		SELECT id, event_id, start_time, end_time, capacity_hint, duration_minutes, created_at
		FROM time_slots
		WHERE id = $1
	`

	var slot entity.TimeSlot
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&slot.ID,
		&slot.EventID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.CapacityHint,
		&slot.DurationMinutes,
		&slot.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrTimeSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time slot: %w", err)
	}

	return &slot, nil
}

func (r *timeSlotRepository) GetByEventID(ctx context.Context, eventID int64) ([]*entity.TimeSlot, error) {
	query := `
		SELECT id, event_id, start_time, end_time, capacity_hint, duration_minutes, created_at
		FROM time_slots
		WHERE event_id = $1
		ORDER BY start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.TimeSlot
	for rows.Next() {
		var slot entity.TimeSlot
		err := rows.Scan(
			&slot.ID,
			&slot.EventID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.CapacityHint,
			&slot.DurationMinutes,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time slots: %w", err)
	}

	return slots, nil
}

func (r *timeSlotRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time slot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrTimeSlotNotFound
	}

	return nil
}
