package store

import (
	"database/sql"
	"time"

	"github.com/BarryMolina/mathsfun-sub001/internal/facts"
)

// Quiz type and session status values mirror what the quiz shell runs.
const (
	QuizTypeAddition = "addition"
	QuizTypeTables   = "tables"
	QuizTypeReview   = "review"

	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusAbandoned = "abandoned"
)

// User is a learner profile. Signed-out play records against a local
// profile; OAuth sign-in upserts the provider identity.
type User struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	DisplayName string    `db:"display_name"`
	CreatedAt   time.Time `db:"created_at"`
	LastActive  time.Time `db:"last_active"`
}

// QuizSession is one recorded practice session.
type QuizSession struct {
	ID              string       `db:"id"`
	UserID          string       `db:"user_id"`
	QuizType        string       `db:"quiz_type"`
	DifficultyLevel int          `db:"difficulty_level"`
	StartTime       time.Time    `db:"start_time"`
	EndTime         sql.NullTime `db:"end_time"`
	TotalProblems   int          `db:"total_problems"`
	CorrectAnswers  int          `db:"correct_answers"`
	Status          string       `db:"status"`
}

// Accuracy returns the session's correct percentage.
func (s *QuizSession) Accuracy() float64 {
	if s.TotalProblems == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalProblems) * 100
}

// DurationSeconds returns the session length, or 0 while still active.
func (s *QuizSession) DurationSeconds() float64 {
	if !s.EndTime.Valid {
		return 0
	}
	return s.EndTime.Time.Sub(s.StartTime).Seconds()
}

// ProblemAttempt is one submitted answer or skip within a session.
type ProblemAttempt struct {
	ID             string        `db:"id"`
	SessionID      string        `db:"session_id"`
	Problem        string        `db:"problem"`
	UserAnswer     sql.NullInt64 `db:"user_answer"`
	CorrectAnswer  int           `db:"correct_answer"`
	IsCorrect      bool          `db:"is_correct"`
	ResponseTimeMs int64         `db:"response_time_ms"`
	Timestamp      time.Time     `db:"timestamp"`
}

// factPerformanceRow is the flat row shape for facts.Performance.
type factPerformanceRow struct {
	ID              string       `db:"id"`
	UserID          string       `db:"user_id"`
	FactKey         string       `db:"fact_key"`
	TotalAttempts   int          `db:"total_attempts"`
	CorrectAttempts int          `db:"correct_attempts"`
	TotalResponseMs int64        `db:"total_response_ms"`
	FastestMs       int64        `db:"fastest_ms"`
	SlowestMs       int64        `db:"slowest_ms"`
	LastAttempted   sql.NullTime `db:"last_attempted"`
	Repetition      int          `db:"repetition"`
	Ease            float64      `db:"ease"`
	IntervalDays    int          `db:"interval_days"`
	NextReview      time.Time    `db:"next_review"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

func (r *factPerformanceRow) toDomain() *facts.Performance {
	p := &facts.Performance{
		ID:              r.ID,
		UserID:          r.UserID,
		FactKey:         r.FactKey,
		TotalAttempts:   r.TotalAttempts,
		CorrectAttempts: r.CorrectAttempts,
		TotalResponseMs: r.TotalResponseMs,
		FastestMs:       r.FastestMs,
		SlowestMs:       r.SlowestMs,
		Schedule: facts.Schedule{
			Repetition:   r.Repetition,
			Ease:         r.Ease,
			IntervalDays: r.IntervalDays,
			NextReview:   r.NextReview,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.LastAttempted.Valid {
		p.LastAttempted = r.LastAttempted.Time
	}
	return p
}

func fromDomain(p *facts.Performance) *factPerformanceRow {
	r := &factPerformanceRow{
		ID:              p.ID,
		UserID:          p.UserID,
		FactKey:         p.FactKey,
		TotalAttempts:   p.TotalAttempts,
		CorrectAttempts: p.CorrectAttempts,
		TotalResponseMs: p.TotalResponseMs,
		FastestMs:       p.FastestMs,
		SlowestMs:       p.SlowestMs,
		Repetition:      p.Schedule.Repetition,
		Ease:            p.Schedule.Ease,
		IntervalDays:    p.Schedule.IntervalDays,
		NextReview:      p.Schedule.NextReview,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if !p.LastAttempted.IsZero() {
		r.LastAttempted = sql.NullTime{Time: p.LastAttempted, Valid: true}
	}
	return r
}
