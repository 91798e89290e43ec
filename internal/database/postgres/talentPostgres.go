package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
)

type talentRepository struct {
	db *sql.DB
}

func NewTalentRepository(db *sql.DB) TalentRepository {
	return &talentRepository{db: db}
}

const talentColumns = `id, user_id, first_name, last_name, email, phone, school, program, resume_url, created_at, updated_at`

func (r *talentRepository) Create(ctx context.Context, talent *entity.Talent) error {
	query := `
		INSERT INTO talents (user_id, first_name, last_name, email, phone, school, program, resume_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		talent.UserID,
		talent.FirstName,
		talent.LastName,
		talent.Email,
		talent.Phone,
		talent.School,
		talent.Program,
		talent.ResumeURL,
		now,
		now,
	).Scan(&talent.ID)

	if err != nil {
		return fmt.Errorf("failed to create talent: %w", err)
	}

	talent.CreatedAt = now
	talent.UpdatedAt = now
	return nil
}

func scanTalent(row interface{ Scan(...interface{}) error }, talent *entity.Talent) error {
	return row.Scan(
		&talent.ID,
		&talent.UserID,
		&talent.FirstName,
		&talent.LastName,
		&talent.Email,
		&talent.Phone,
		&talent.School,
		&talent.Program,
		&talent.ResumeURL,
		&talent.CreatedAt,
		&talent.UpdatedAt,
	)
}

func (r *talentRepository) GetByID(ctx context.Context, id int64) (*entity.Talent, error) {
	query := `SELECT ` + talentColumns + ` FROM talents WHERE id = $1`

	var talent entity.Talent
	err := scanTalent(r.db.QueryRowContext(ctx, query, id), &talent)
	if err == sql.ErrNoRows {
		return nil, entity.ErrTalentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get talent: %w", err)
	}

	return &talent, nil
}

func (r *talentRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Talent, error) {
	query := `SELECT ` + talentColumns + ` FROM talents WHERE user_id = $1`

	var talent entity.Talent
	err := scanTalent(r.db.QueryRowContext(ctx, query, userID), &talent)
	if err == sql.ErrNoRows {
		return nil, entity.ErrTalentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get talent by user: %w", err)
	}

	return &talent, nil
}

func (r *talentRepository) GetByEmail(ctx context.Context, email string) (*entity.Talent, error) {
	query := `SELECT ` + talentColumns + ` FROM talents WHERE email = $1 LIMIT 1`

	var talent entity.Talent
	err := scanTalent(r.db.QueryRowContext(ctx, query, email), &talent)
	if err == sql.ErrNoRows {
		return nil, entity.ErrTalentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get talent by email: %w", err)
	}

	return &talent, nil
}

func (r *talentRepository) Update(ctx context.Context, talent *entity.Talent) error {
	query := `
		UPDATE talents
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
		    school = $5, program = $6, resume_url = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		talent.FirstName,
		talent.LastName,
		talent.Email,
		talent.Phone,
		talent.School,
		talent.Program,
		talent.ResumeURL,
		time.Now(),
		talent.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update talent: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrTalentNotFound
	}

	return nil
}

func (r *talentRepository) GetAll(ctx context.Context) ([]*entity.Talent, error) {
	query := `SELECT ` + talentColumns + ` FROM talents ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query talents: %w", err)
	}
	defer rows.Close()

	var talents []*entity.Talent
	for rows.Next() {
		var talent entity.Talent
		if err := scanTalent(rows, &talent); err != nil {
			return nil, fmt.Errorf("failed to scan talent: %w", err)
		}
		talents = append(talents, &talent)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating talents: %w", err)
	}

	return talents, nil
}
