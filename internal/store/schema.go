package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema is created on open; statements are idempotent so opening an
// existing database is a no-op.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           TEXT PRIMARY KEY,
		email        TEXT NOT NULL DEFAULT '',
		display_name TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMP NOT NULL,
		last_active  TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS quiz_sessions (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id),
		quiz_type        TEXT NOT NULL,
		difficulty_level INTEGER NOT NULL,
		start_time       TIMESTAMP NOT NULL,
		end_time         TIMESTAMP,
		total_problems   INTEGER NOT NULL DEFAULT 0,
		correct_answers  INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'active'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_sessions_user_start
		ON quiz_sessions (user_id, start_time DESC)`,

	`CREATE TABLE IF NOT EXISTS problem_attempts (
		id               TEXT PRIMARY KEY,
		session_id       TEXT NOT NULL REFERENCES quiz_sessions(id),
		problem          TEXT NOT NULL,
		user_answer      INTEGER,
		correct_answer   INTEGER NOT NULL,
		is_correct       BOOLEAN NOT NULL,
		response_time_ms INTEGER NOT NULL,
		timestamp        TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_problem_attempts_session
		ON problem_attempts (session_id, timestamp)`,

	`CREATE TABLE IF NOT EXISTS fact_performances (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL REFERENCES users(id),
		fact_key          TEXT NOT NULL,
		total_attempts    INTEGER NOT NULL DEFAULT 0,
		correct_attempts  INTEGER NOT NULL DEFAULT 0,
		total_response_ms INTEGER NOT NULL DEFAULT 0,
		fastest_ms        INTEGER NOT NULL DEFAULT 0,
		slowest_ms        INTEGER NOT NULL DEFAULT 0,
		last_attempted    TIMESTAMP,
		repetition        INTEGER NOT NULL DEFAULT 0,
		ease              REAL NOT NULL DEFAULT 2.5,
		interval_days     INTEGER NOT NULL DEFAULT 1,
		next_review       TIMESTAMP NOT NULL,
		created_at        TIMESTAMP NOT NULL,
		updated_at        TIMESTAMP NOT NULL,
		UNIQUE (user_id, fact_key)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fact_performances_due
		ON fact_performances (user_id, next_review)`,

	`CREATE TABLE IF NOT EXISTS fact_attempts (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id),
		fact_key         TEXT NOT NULL,
		operand1         INTEGER NOT NULL,
		operand2         INTEGER NOT NULL,
		user_answer      INTEGER,
		is_correct       BOOLEAN NOT NULL,
		response_time_ms INTEGER NOT NULL,
		prior_wrong      INTEGER NOT NULL DEFAULT 0,
		sm2_grade        INTEGER NOT NULL,
		timestamp        TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fact_attempts_user_fact
		ON fact_attempts (user_id, fact_key, timestamp)`,
}

func migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
