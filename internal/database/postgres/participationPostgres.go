package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/jobgate/jobgate-backend/internal/scheduling"
	"github.com/lib/pq"
)

// allocationRetries bounds how often a losing writer re-runs the
// count-then-insert transaction after a serialization failure before the
// caller sees ErrSlotsExhausted.
const allocationRetries = 3

type participationRepository struct {
	db *sql.DB
}

func NewParticipationRepository(db *sql.DB) ParticipationRepository {
	return &participationRepository{db: db}
}

const participationColumns = `id, talent_id, event_id, time_slot_id, rdv, has_attended, note, comment,
		is_selected, reminder_sent, urgent_reminder_sent, date_inscription, updated_at`

func (r *participationRepository) Create(ctx context.Context, p *entity.Participation) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkNotRegistered(ctx, tx, p.EventID, p.TalentID); err != nil {
		return err
	}

	if err := insertParticipation(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CreateWithAppointment runs the occupancy count and the insert inside one
// serializable transaction, so two concurrent registrations can never both
// claim the last seat of a timestamp. The losing writer's commit fails with
// a serialization error and the whole transaction is retried against the
// fresh ledger.
func (r *participationRepository) CreateWithAppointment(ctx context.Context, p *entity.Participation, grid []scheduling.CandidateSlot, capacity int) error {
	if p.TimeSlotID == nil {
		return entity.ErrInvalidSlotConfig
	}

	var lastErr error
	for attempt := 0; attempt <= allocationRetries; attempt++ {
		err := r.tryAllocate(ctx, p, grid, capacity)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("allocation retries exhausted: %w", lastErr)
}

func (r *participationRepository) tryAllocate(ctx context.Context, p *entity.Participation, grid []scheduling.CandidateSlot, capacity int) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkNotRegistered(ctx, tx, p.EventID, p.TalentID); err != nil {
		return err
	}

	// Occupancy snapshot scoped to this (event, time slot) pair only.
	query := `
		SELECT rdv FROM participations
		WHERE event_id = $1 AND time_slot_id = $2 AND rdv IS NOT NULL
	`
	rows, err := tx.QueryContext(ctx, query, p.EventID, *p.TimeSlotID)
	if err != nil {
		return fmt.Errorf("failed to query booked appointments: %w", err)
	}

	var booked []time.Time
	for rows.Next() {
		var rdv time.Time
		if err := rows.Scan(&rdv); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan appointment: %w", err)
		}
		booked = append(booked, rdv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating appointments: %w", err)
	}

	slot, ok := scheduling.FindAvailableSlot(grid, booked, capacity)
	if !ok {
		return entity.ErrSlotsExhausted
	}

	rdv := slot.Start
	p.RDV = &rdv

	if err := insertParticipation(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func checkNotRegistered(ctx context.Context, tx *sql.Tx, eventID, talentID int64) error {
	var count int
	query := `SELECT COUNT(*) FROM participations WHERE event_id = $1 AND talent_id = $2`
	if err := tx.QueryRowContext(ctx, query, eventID, talentID).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing registration: %w", err)
	}
	if count > 0 {
		return entity.ErrDuplicateRegistration
	}
	return nil
}

func insertParticipation(ctx context.Context, tx *sql.Tx, p *entity.Participation) error {
	query := `
		INSERT INTO participations (talent_id, event_id, time_slot_id, rdv, has_attended, note,
			comment, is_selected, reminder_sent, urgent_reminder_sent, date_inscription, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := time.Now()
	err := tx.QueryRowContext(ctx, query,
		p.TalentID,
		p.EventID,
		p.TimeSlotID,
		p.RDV,
		p.HasAttended,
		p.Note,
		p.Comment,
		p.IsSelected,
		false,
		false,
		now,
		now,
	).Scan(&p.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		// The (talent, event) unique constraint backstops the duplicate
		// check against a concurrent insert.
		return entity.ErrDuplicateRegistration
	}
	if err != nil {
		return fmt.Errorf("failed to create participation: %w", err)
	}

	p.DateInscription = now
	p.UpdatedAt = now
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "serialization_failure"
}

func scanParticipation(row interface{ Scan(...interface{}) error }, p *entity.Participation) error {
	return row.Scan(
		&p.ID,
		&p.TalentID,
		&p.EventID,
		&p.TimeSlotID,
		&p.RDV,
		&p.HasAttended,
		&p.Note,
		&p.Comment,
		&p.IsSelected,
		&p.ReminderSent,
		&p.UrgentReminderSent,
		&p.DateInscription,
		&p.UpdatedAt,
	)
}

func (r *participationRepository) GetByID(ctx context.Context, id int64) (*entity.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations WHERE id = $1`

	var p entity.Participation
	err := scanParticipation(r.db.QueryRowContext(ctx, query, id), &p)
	if err == sql.ErrNoRows {
		return nil, entity.ErrParticipationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}

	return &p, nil
}

func (r *participationRepository) GetByEventAndTalent(ctx context.Context, eventID, talentID int64) (*entity.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations WHERE event_id = $1 AND talent_id = $2`

	var p entity.Participation
	err := scanParticipation(r.db.QueryRowContext(ctx, query, eventID, talentID), &p)
	if err == sql.ErrNoRows {
		return nil, entity.ErrParticipationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participation by event and talent: %w", err)
	}

	return &p, nil
}

func (r *participationRepository) GetByEventID(ctx context.Context, eventID int64) ([]*entity.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations
		WHERE event_id = $1
		ORDER BY rdv ASC NULLS LAST, date_inscription ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participations by event: %w", err)
	}
	defer rows.Close()

	return collectParticipations(rows)
}

func (r *participationRepository) GetByTalentID(ctx context.Context, talentID int64) ([]*entity.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations
		WHERE talent_id = $1
		ORDER BY date_inscription DESC`

	rows, err := r.db.QueryContext(ctx, query, talentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participations by talent: %w", err)
	}
	defer rows.Close()

	return collectParticipations(rows)
}

func (r *participationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM participations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrParticipationNotFound
	}

	return nil
}

func (r *participationRepository) SetAttendance(ctx context.Context, id int64, attended bool) error {
	return r.updateFlag(ctx, id, `UPDATE participations SET has_attended = $1, updated_at = $2 WHERE id = $3`, attended)
}

func (r *participationRepository) SetSelected(ctx context.Context, id int64, selected bool) error {
	return r.updateFlag(ctx, id, `UPDATE participations SET is_selected = $1, updated_at = $2 WHERE id = $3`, selected)
}

func (r *participationRepository) updateFlag(ctx context.Context, id int64, query string, value bool) error {
	result, err := r.db.ExecContext(ctx, query, value, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update participation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrParticipationNotFound
	}

	return nil
}

func (r *participationRepository) SetReview(ctx context.Context, id int64, note int, comment string) error {
	query := `UPDATE participations SET note = $1, comment = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, note, comment, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrParticipationNotFound
	}

	return nil
}

func (r *participationRepository) GetUpcomingRDVs(ctx context.Context, from, to time.Time, urgent bool) ([]*entity.RDVReminder, error) {
	flag := "p.reminder_sent"
	if urgent {
		flag = "p.urgent_reminder_sent"
	}

	query := `
		SELECT
			p.id, p.rdv,
			t.first_name || ' ' || t.last_name AS talent_name, t.email,
			e.title, e.location, e.is_online, e.meeting_link
		FROM participations p
		JOIN talents t ON p.talent_id = t.id
		JOIN events e ON p.event_id = e.id
		WHERE p.rdv IS NOT NULL
		  AND p.rdv BETWEEN $1 AND $2
		  AND t.email <> ''
		  AND NOT ` + flag + `
		ORDER BY p.rdv ASC
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming appointments: %w", err)
	}
	defer rows.Close()

	var reminders []*entity.RDVReminder
	for rows.Next() {
		var rem entity.RDVReminder
		err := rows.Scan(
			&rem.ParticipationID,
			&rem.RDV,
			&rem.TalentName,
			&rem.TalentEmail,
			&rem.EventTitle,
			&rem.EventLocation,
			&rem.IsOnline,
			&rem.MeetingLink,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, &rem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}

	return reminders, nil
}

func (r *participationRepository) MarkReminderSent(ctx context.Context, id int64, urgent bool) error {
	column := "reminder_sent"
	if urgent {
		column = "urgent_reminder_sent"
	}

	query := `UPDATE participations SET ` + column + ` = TRUE, updated_at = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrParticipationNotFound
	}

	return nil
}

func (r *participationRepository) GetStatsByEvent(ctx context.Context, eventID int64) (*entity.EventParticipationStats, error) {
	query := `
		SELECT
			COUNT(*) AS participants_count,
			COUNT(rdv) AS with_rdv_count,
			COALESCE(SUM(CASE WHEN has_attended THEN 1 ELSE 0 END), 0) AS attended_count,
			COALESCE(SUM(CASE WHEN is_selected THEN 1 ELSE 0 END), 0) AS selected_count,
			COALESCE(AVG(CASE WHEN note > 0 THEN note END), 0) AS average_note
		FROM participations
		WHERE event_id = $1
	`

	var stats entity.EventParticipationStats
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&stats.ParticipantsCount,
		&stats.WithRDVCount,
		&stats.AttendedCount,
		&stats.SelectedCount,
		&stats.AverageNote,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participation stats: %w", err)
	}

	return &stats, nil
}

func collectParticipations(rows *sql.Rows) ([]*entity.Participation, error) {
	var participations []*entity.Participation
	for rows.Next() {
		var p entity.Participation
		if err := scanParticipation(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan participation: %w", err)
		}
		participations = append(participations, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participations: %w", err)
	}

	return participations, nil
}
