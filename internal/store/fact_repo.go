package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/BarryMolina/mathsfun-sub001/internal/facts"
)

// FactRepo is the SQLite-backed facts.Repository.
type FactRepo struct {
	db *sqlx.DB
}

var _ facts.Repository = (*FactRepo)(nil)

// GetPerformance returns the record for (userID, factKey), or nil if the
// fact has never been attempted.
func (r *FactRepo) GetPerformance(ctx context.Context, userID, factKey string) (*facts.Performance, error) {
	var row factPerformanceRow
	err := r.db.GetContext(ctx, &row, `
		SELECT * FROM fact_performances
		WHERE user_id = ? AND fact_key = ?`, userID, factKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get performance %s/%s: %w", userID, factKey, err)
	}
	return row.toDomain(), nil
}

// SavePerformance inserts or updates a performance record.
func (r *FactRepo) SavePerformance(ctx context.Context, p *facts.Performance) error {
	row := fromDomain(p)
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO fact_performances
			(id, user_id, fact_key, total_attempts, correct_attempts, total_response_ms,
			 fastest_ms, slowest_ms, last_attempted, repetition, ease, interval_days,
			 next_review, created_at, updated_at)
		VALUES
			(:id, :user_id, :fact_key, :total_attempts, :correct_attempts, :total_response_ms,
			 :fastest_ms, :slowest_ms, :last_attempted, :repetition, :ease, :interval_days,
			 :next_review, :created_at, :updated_at)
		ON CONFLICT (user_id, fact_key) DO UPDATE SET
			total_attempts = excluded.total_attempts,
			correct_attempts = excluded.correct_attempts,
			total_response_ms = excluded.total_response_ms,
			fastest_ms = excluded.fastest_ms,
			slowest_ms = excluded.slowest_ms,
			last_attempted = excluded.last_attempted,
			repetition = excluded.repetition,
			ease = excluded.ease,
			interval_days = excluded.interval_days,
			next_review = excluded.next_review,
			updated_at = excluded.updated_at`, row)
	if err != nil {
		return fmt.Errorf("save performance %s: %w", p.FactKey, err)
	}
	return nil
}

// SaveAttempt appends one fact attempt.
func (r *FactRepo) SaveAttempt(ctx context.Context, a *facts.Attempt) error {
	var answer sql.NullInt64
	if a.Answer != nil {
		answer = sql.NullInt64{Int64: int64(*a.Answer), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fact_attempts
			(id, user_id, fact_key, operand1, operand2, user_answer, is_correct,
			 response_time_ms, prior_wrong, sm2_grade, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.FactKey, a.Operand1, a.Operand2, answer, a.Correct,
		a.ResponseMs, a.PriorWrong, a.SM2Grade, a.Timestamp)
	if err != nil {
		return fmt.Errorf("save fact attempt %s: %w", a.FactKey, err)
	}
	return nil
}

// DuePerformances returns facts due for review at now, soonest first.
func (r *FactRepo) DuePerformances(ctx context.Context, userID string, now time.Time, limit int) ([]*facts.Performance, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []factPerformanceRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM fact_performances
		WHERE user_id = ? AND next_review <= ?
		ORDER BY next_review
		LIMIT ?`, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("due performances for %s: %w", userID, err)
	}
	return rowsToDomain(rows), nil
}

// Struggling returns facts below maxAccuracy with at least minAttempts,
// worst accuracy first.
func (r *FactRepo) Struggling(ctx context.Context, userID string, maxAccuracy float64, minAttempts, limit int) ([]*facts.Performance, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []factPerformanceRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM fact_performances
		WHERE user_id = ?
		  AND total_attempts >= ?
		  AND (correct_attempts * 100.0 / total_attempts) < ?
		ORDER BY (correct_attempts * 100.0 / total_attempts)
		LIMIT ?`, userID, minAttempts, maxAccuracy, limit)
	if err != nil {
		return nil, fmt.Errorf("struggling facts for %s: %w", userID, err)
	}
	return rowsToDomain(rows), nil
}

// AllPerformances returns every tracked fact for the user, keyed order by
// fact key, for the stats view.
func (r *FactRepo) AllPerformances(ctx context.Context, userID string) ([]*facts.Performance, error) {
	var rows []factPerformanceRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM fact_performances
		WHERE user_id = ?
		ORDER BY fact_key`, userID)
	if err != nil {
		return nil, fmt.Errorf("all performances for %s: %w", userID, err)
	}
	return rowsToDomain(rows), nil
}

func rowsToDomain(rows []factPerformanceRow) []*facts.Performance {
	out := make([]*facts.Performance, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out
}
