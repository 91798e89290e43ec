package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/jobgate/jobgate-backend/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	// Read migration files and execute them
	// This is a simplified version - you might want to use a proper migration tool
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			caption VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			start_date TIMESTAMP NOT NULL,
			end_date TIMESTAMP NOT NULL,
			location VARCHAR(255) NOT NULL DEFAULT '',
			is_online BOOLEAN NOT NULL DEFAULT FALSE,
			meeting_link TEXT NOT NULL DEFAULT '',
			recruiters_number INTEGER NOT NULL DEFAULT 1,
			is_time_slot_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS time_slots (
			id SERIAL PRIMARY KEY,
			event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			start_time TIME NOT NULL,
			end_time TIME NOT NULL,
			capacity_hint INTEGER NOT NULL DEFAULT 0,
			duration_minutes INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (event_id, start_time, end_time)
		)`,

		`CREATE TABLE IF NOT EXISTS talents (
			id SERIAL PRIMARY KEY,
			user_id INTEGER,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			school VARCHAR(255) NOT NULL DEFAULT '',
			program VARCHAR(255) NOT NULL DEFAULT '',
			resume_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS participations (
			id SERIAL PRIMARY KEY,
			talent_id INTEGER NOT NULL REFERENCES talents(id) ON DELETE CASCADE,
			event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			time_slot_id INTEGER REFERENCES time_slots(id) ON DELETE SET NULL,
			rdv TIMESTAMP,
			has_attended BOOLEAN NOT NULL DEFAULT FALSE,
			note INTEGER NOT NULL DEFAULT 0,
			comment TEXT NOT NULL DEFAULT '',
			is_selected BOOLEAN NOT NULL DEFAULT FALSE,
			reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
			urgent_reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
			date_inscription TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (talent_id, event_id)
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_time_slots_event_id ON time_slots(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_talents_user_id ON talents(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_talents_email ON talents(email)`,
		`CREATE INDEX IF NOT EXISTS idx_participations_event_id ON participations(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_participations_talent_id ON participations(talent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_participations_rdv ON participations(rdv)`,
		`CREATE INDEX IF NOT EXISTS idx_participations_event_slot ON participations(event_id, time_slot_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
