package facts

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository is the persistence surface the service needs. The store
// package provides the SQLite-backed implementation.
type Repository interface {
	// GetPerformance returns the record for (userID, factKey), or nil if
	// the fact has never been attempted.
	GetPerformance(ctx context.Context, userID, factKey string) (*Performance, error)

	// SavePerformance inserts or updates a performance record.
	SavePerformance(ctx context.Context, p *Performance) error

	// SaveAttempt appends one attempt record.
	SaveAttempt(ctx context.Context, a *Attempt) error

	// DuePerformances returns facts due for review at now, soonest first.
	DuePerformances(ctx context.Context, userID string, now time.Time, limit int) ([]*Performance, error)

	// Struggling returns facts below the given accuracy with at least
	// minAttempts, worst first.
	Struggling(ctx context.Context, userID string, maxAccuracy float64, minAttempts, limit int) ([]*Performance, error)
}

// Service tracks per-fact performance with SM-2 scheduling.
type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

// NewService creates a fact-tracking service. Pass log nil for a no-op
// logger.
func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

// TrackAttempt records one recall of the fact (a, b): it updates the
// aggregates, grades the recall, advances the SM-2 schedule, and persists
// both the performance and the attempt.
func (s *Service) TrackAttempt(ctx context.Context, userID string, a, b int, answer *int, correct bool, responseTime time.Duration, priorWrong int) (*Performance, error) {
	key := FactKey(a, b)
	now := s.now().UTC()

	perf, err := s.repo.GetPerformance(ctx, userID, key)
	if err != nil {
		return nil, fmt.Errorf("load performance %s: %w", key, err)
	}
	if perf == nil {
		perf = NewPerformance(userID, key, now)
	}

	responseMs := responseTime.Milliseconds()
	perf.Update(correct, responseMs, now)

	grade := Grade(responseTime, priorWrong)
	if err := perf.Schedule.Apply(grade, now); err != nil {
		return nil, fmt.Errorf("apply sm2 for %s: %w", key, err)
	}

	if err := s.repo.SavePerformance(ctx, perf); err != nil {
		return nil, fmt.Errorf("save performance %s: %w", key, err)
	}

	attempt := &Attempt{
		ID:         uuid.NewString(),
		UserID:     userID,
		FactKey:    key,
		Operand1:   a,
		Operand2:   b,
		Answer:     answer,
		Correct:    correct,
		ResponseMs: responseMs,
		PriorWrong: priorWrong,
		SM2Grade:   grade,
		Timestamp:  now,
	}
	if err := s.repo.SaveAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("save attempt %s: %w", key, err)
	}

	s.log.Debug("tracked fact attempt",
		zap.String("fact", key),
		zap.Bool("correct", correct),
		zap.Int("grade", grade),
		zap.Int("interval_days", perf.Schedule.IntervalDays))

	return perf, nil
}

// DueFacts returns up to limit facts due for review now.
func (s *Service) DueFacts(ctx context.Context, userID string, limit int) ([]*Performance, error) {
	return s.repo.DuePerformances(ctx, userID, s.now().UTC(), limit)
}

// StrugglingFacts returns facts with accuracy under 70% across 3+
// attempts, the ones most in need of remedial practice.
func (s *Service) StrugglingFacts(ctx context.Context, userID string, limit int) ([]*Performance, error) {
	return s.repo.Struggling(ctx, userID, 70, 3, limit)
}

// ParseFactKey splits a stored key back into its operands.
func ParseFactKey(key string) (a, b int, err error) {
	parts := strings.SplitN(key, "+", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed fact key %q", key)
	}
	if a, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("malformed fact key %q: %w", key, err)
	}
	if b, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("malformed fact key %q: %w", key, err)
	}
	return a, b, nil
}
