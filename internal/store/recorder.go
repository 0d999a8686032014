package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/BarryMolina/mathsfun-sub001/internal/facts"
	"github.com/BarryMolina/mathsfun-sub001/internal/quiz"
)

// SessionRecorder implements quiz.Recorder on top of the quiz and fact
// repositories. Recording is best-effort by contract: failures are logged
// and swallowed so a storage hiccup never interrupts a running quiz.
type SessionRecorder struct {
	quizzes *QuizRepo
	tracker *facts.Service
	log     *zap.Logger

	userID     string
	quizType   string
	difficulty int

	session *QuizSession
}

var _ quiz.Recorder = (*SessionRecorder)(nil)

// NewSessionRecorder binds a recorder to one upcoming session. Pass
// tracker nil to skip fact tracking.
func NewSessionRecorder(quizzes *QuizRepo, tracker *facts.Service, log *zap.Logger, userID, quizType string, difficulty int) *SessionRecorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionRecorder{
		quizzes:    quizzes,
		tracker:    tracker,
		log:        log,
		userID:     userID,
		quizType:   quizType,
		difficulty: difficulty,
	}
}

// SessionID returns the recorded session's id, or "" before Start.
func (r *SessionRecorder) SessionID() string {
	if r.session == nil {
		return ""
	}
	return r.session.ID
}

// Start creates the active session row.
func (r *SessionRecorder) Start(ctx context.Context) error {
	s, err := r.quizzes.CreateSession(ctx, r.userID, r.quizType, r.difficulty)
	if err != nil {
		r.log.Warn("start session failed", zap.Error(err))
		return nil
	}
	r.session = s
	r.log.Info("quiz session started",
		zap.String("session_id", s.ID),
		zap.String("quiz_type", r.quizType),
		zap.Int("difficulty", r.difficulty))
	return nil
}

// RecordAttempt persists the attempt, bumps session counters, and feeds
// fact tracking.
//
// The session log keeps every integer submission plus clean skips, so the
// transcript mirrors what the learner typed. Fact tracking sees exactly
// one record per problem, after the learner is done with it: the final
// correct answer (carrying the count of wrong tries), or the skip that
// abandons a problem answered wrong at least once. Intermediate wrong
// answers only raise PriorWrong on the final record, and a skip with no
// wrong attempts is not a recall at all.
func (r *SessionRecorder) RecordAttempt(ctx context.Context, rec quiz.AttemptRecord) error {
	if r.session != nil && (rec.Answer != nil || rec.PriorWrong == 0) {
		attempt := &ProblemAttempt{
			SessionID:      r.session.ID,
			Problem:        rec.Problem.Text,
			CorrectAnswer:  rec.Problem.Answer,
			IsCorrect:      rec.Correct,
			ResponseTimeMs: rec.ResponseTime.Milliseconds(),
		}
		if rec.Answer != nil {
			attempt.UserAnswer = sql.NullInt64{Int64: int64(*rec.Answer), Valid: true}
		}
		if err := r.quizzes.SaveAttempt(ctx, attempt); err != nil {
			r.log.Warn("save attempt failed", zap.Error(err))
		}
		if err := r.quizzes.IncrementStats(ctx, r.session.ID, rec.Correct); err != nil {
			r.log.Warn("increment stats failed", zap.Error(err))
		}
	}

	finalCorrect := rec.Answer != nil && rec.Correct
	failedSkip := rec.Answer == nil && rec.PriorWrong > 0
	if r.tracker != nil && (finalCorrect || failedSkip) {
		_, err := r.tracker.TrackAttempt(ctx, r.userID,
			rec.Problem.A, rec.Problem.B, rec.Answer, rec.Correct,
			rec.ResponseTime, rec.PriorWrong)
		if err != nil {
			r.log.Warn("fact tracking failed", zap.Error(err))
		}
	}
	return nil
}

// Complete marks the session done. Called exactly once per session by the
// runner.
func (r *SessionRecorder) Complete(ctx context.Context) error {
	if r.session == nil {
		return nil
	}
	if err := r.quizzes.CompleteSession(ctx, r.session.ID); err != nil {
		r.log.Warn("complete session failed", zap.Error(err))
		return nil
	}
	r.log.Info("quiz session completed", zap.String("session_id", r.session.ID))
	return nil
}
