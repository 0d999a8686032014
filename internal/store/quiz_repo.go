package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// QuizRepo persists quiz sessions and their attempts.
type QuizRepo struct {
	db *sqlx.DB
}

// CreateSession starts a new active session.
func (r *QuizRepo) CreateSession(ctx context.Context, userID, quizType string, difficulty int) (*QuizSession, error) {
	s := &QuizSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		QuizType:        quizType,
		DifficultyLevel: difficulty,
		StartTime:       time.Now().UTC(),
		Status:          StatusActive,
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO quiz_sessions
			(id, user_id, quiz_type, difficulty_level, start_time, total_problems, correct_answers, status)
		VALUES
			(:id, :user_id, :quiz_type, :difficulty_level, :start_time, :total_problems, :correct_answers, :status)`, s)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// GetSession returns a session by id, or nil if unknown.
func (r *QuizRepo) GetSession(ctx context.Context, id string) (*QuizSession, error) {
	var s QuizSession
	err := r.db.GetContext(ctx, &s, `SELECT * FROM quiz_sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return &s, nil
}

// SaveAttempt appends one problem attempt to a session.
func (r *QuizRepo) SaveAttempt(ctx context.Context, a *ProblemAttempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO problem_attempts
			(id, session_id, problem, user_answer, correct_answer, is_correct, response_time_ms, timestamp)
		VALUES
			(:id, :session_id, :problem, :user_answer, :correct_answer, :is_correct, :response_time_ms, :timestamp)`, a)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

// IncrementStats bumps the session's problem count, and the correct count
// when the attempt was right.
func (r *QuizRepo) IncrementStats(ctx context.Context, sessionID string, correct bool) error {
	inc := 0
	if correct {
		inc = 1
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE quiz_sessions
		SET total_problems = total_problems + 1,
		    correct_answers = correct_answers + ?
		WHERE id = ?`, inc, sessionID)
	if err != nil {
		return fmt.Errorf("increment stats for %s: %w", sessionID, err)
	}
	return nil
}

// CompleteSession marks the session completed with an end time.
func (r *QuizRepo) CompleteSession(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quiz_sessions
		SET status = ?, end_time = ?
		WHERE id = ?`, StatusCompleted, time.Now().UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("complete session %s: %w", sessionID, err)
	}
	return nil
}

// SessionAttempts returns a session's attempts in submission order.
func (r *QuizRepo) SessionAttempts(ctx context.Context, sessionID string) ([]ProblemAttempt, error) {
	var out []ProblemAttempt
	err := r.db.SelectContext(ctx, &out, `
		SELECT * FROM problem_attempts
		WHERE session_id = ?
		ORDER BY timestamp`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session attempts for %s: %w", sessionID, err)
	}
	return out, nil
}

// UserSessions returns the user's sessions, most recent first.
func (r *QuizRepo) UserSessions(ctx context.Context, userID string, limit int) ([]QuizSession, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []QuizSession
	err := r.db.SelectContext(ctx, &out, `
		SELECT * FROM quiz_sessions
		WHERE user_id = ?
		ORDER BY start_time DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("sessions for %s: %w", userID, err)
	}
	return out, nil
}

// Progress is the aggregate view of a learner's completed sessions.
type Progress struct {
	TotalSessions     int
	TotalProblems     int
	TotalCorrect      int
	OverallAccuracy   float64
	BestAccuracy      float64
	AvgSessionSeconds float64
	RecentSessions    []QuizSession
}

// UserProgress aggregates completed sessions into a progress summary.
func (r *QuizRepo) UserProgress(ctx context.Context, userID string) (*Progress, error) {
	sessions, err := r.UserSessions(ctx, userID, 200)
	if err != nil {
		return nil, err
	}

	p := &Progress{}
	var durationSum float64
	for _, s := range sessions {
		if s.Status != StatusCompleted || s.TotalProblems == 0 {
			continue
		}
		p.TotalSessions++
		p.TotalProblems += s.TotalProblems
		p.TotalCorrect += s.CorrectAnswers
		if acc := s.Accuracy(); acc > p.BestAccuracy {
			p.BestAccuracy = acc
		}
		durationSum += s.DurationSeconds()
		if len(p.RecentSessions) < 5 {
			p.RecentSessions = append(p.RecentSessions, s)
		}
	}
	if p.TotalProblems > 0 {
		p.OverallAccuracy = float64(p.TotalCorrect) / float64(p.TotalProblems) * 100
	}
	if p.TotalSessions > 0 {
		p.AvgSessionSeconds = durationSum / float64(p.TotalSessions)
	}
	return p, nil
}
