package facts

import (
	"context"
	"testing"
	"time"
)

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	perfs    map[string]*Performance
	attempts []*Attempt
}

func newMemRepo() *memRepo {
	return &memRepo{perfs: map[string]*Performance{}}
}

func (m *memRepo) key(userID, factKey string) string { return userID + "|" + factKey }

func (m *memRepo) GetPerformance(_ context.Context, userID, factKey string) (*Performance, error) {
	return m.perfs[m.key(userID, factKey)], nil
}

func (m *memRepo) SavePerformance(_ context.Context, p *Performance) error {
	m.perfs[m.key(p.UserID, p.FactKey)] = p
	return nil
}

func (m *memRepo) SaveAttempt(_ context.Context, a *Attempt) error {
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memRepo) DuePerformances(_ context.Context, userID string, now time.Time, limit int) ([]*Performance, error) {
	var due []*Performance
	for _, p := range m.perfs {
		if p.UserID == userID && p.Schedule.Due(now) {
			due = append(due, p)
		}
		if limit > 0 && len(due) == limit {
			break
		}
	}
	return due, nil
}

func (m *memRepo) Struggling(_ context.Context, userID string, maxAccuracy float64, minAttempts, limit int) ([]*Performance, error) {
	var out []*Performance
	for _, p := range m.perfs {
		if p.UserID == userID && p.TotalAttempts >= minAttempts && p.Accuracy() < maxAccuracy {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestTrackAttemptCreatesAndUpdates(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	answer := 15
	perf, err := svc.TrackAttempt(ctx, "user-1", 7, 8, &answer, true, 1500*time.Millisecond, 0)
	if err != nil {
		t.Fatalf("TrackAttempt error: %v", err)
	}
	if perf.FactKey != "7+8" {
		t.Errorf("FactKey = %q, want 7+8", perf.FactKey)
	}
	if perf.TotalAttempts != 1 || perf.CorrectAttempts != 1 {
		t.Errorf("attempts = %d/%d, want 1/1", perf.CorrectAttempts, perf.TotalAttempts)
	}
	if perf.Schedule.Repetition != 1 {
		t.Errorf("Repetition = %d, want 1 after grade-5 recall", perf.Schedule.Repetition)
	}

	if len(repo.attempts) != 1 {
		t.Fatalf("saved attempts = %d, want 1", len(repo.attempts))
	}
	a := repo.attempts[0]
	if a.SM2Grade != 5 {
		t.Errorf("SM2Grade = %d, want 5 for fast first-try recall", a.SM2Grade)
	}
	if a.Operand1 != 7 || a.Operand2 != 8 {
		t.Errorf("operands = %d, %d, want 7, 8", a.Operand1, a.Operand2)
	}

	// Second attempt updates the same record.
	perf2, err := svc.TrackAttempt(ctx, "user-1", 7, 8, nil, false, 5*time.Second, 2)
	if err != nil {
		t.Fatalf("TrackAttempt error: %v", err)
	}
	if perf2.TotalAttempts != 2 {
		t.Errorf("TotalAttempts = %d, want 2", perf2.TotalAttempts)
	}
	if perf2.Schedule.Repetition != 0 {
		t.Errorf("Repetition = %d, want 0 after blackout", perf2.Schedule.Repetition)
	}
	if repo.attempts[1].Answer != nil {
		t.Error("skipped attempt should persist a nil answer")
	}
}

func TestTrackAttemptGradesFailedRecalls(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	// Correct after one wrong try: the recall failed, so the grade stays
	// in the saw-the-answer tier and the schedule does not advance.
	answer := 11
	perf, err := svc.TrackAttempt(ctx, "user-1", 4, 7, &answer, true, time.Second, 1)
	if err != nil {
		t.Fatalf("TrackAttempt error: %v", err)
	}
	if got := repo.attempts[0].SM2Grade; got != 2 {
		t.Errorf("SM2Grade = %d, want 2 after one wrong try", got)
	}
	if perf.Schedule.Repetition != 0 {
		t.Errorf("Repetition = %d, want 0 for a sub-passing grade", perf.Schedule.Repetition)
	}
	if perf.CorrectAttempts != 1 {
		t.Errorf("CorrectAttempts = %d, want 1 (the final answer was right)", perf.CorrectAttempts)
	}

	// Skipped after one wrong try, slow: familiar but failed.
	_, err = svc.TrackAttempt(ctx, "user-1", 9, 9, nil, false, 4*time.Second, 1)
	if err != nil {
		t.Fatalf("TrackAttempt error: %v", err)
	}
	a := repo.attempts[1]
	if a.SM2Grade != 1 {
		t.Errorf("SM2Grade = %d, want 1 for a slow failed recall", a.SM2Grade)
	}
	if a.Correct {
		t.Error("abandoned problem should persist as incorrect")
	}
}

func TestDueFacts(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	now := time.Now().UTC()
	overdue := NewPerformance("user-1", "2+2", now.AddDate(0, 0, -3))
	fresh := NewPerformance("user-1", "3+3", now)
	repo.SavePerformance(ctx, overdue)
	repo.SavePerformance(ctx, fresh)

	due, err := svc.DueFacts(ctx, "user-1", 10)
	if err != nil {
		t.Fatalf("DueFacts error: %v", err)
	}
	if len(due) != 1 || due[0].FactKey != "2+2" {
		t.Errorf("due = %v, want only the overdue fact", due)
	}
}

func TestStrugglingFacts(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	weak := &Performance{UserID: "user-1", FactKey: "9+6", TotalAttempts: 5, CorrectAttempts: 2}
	strong := &Performance{UserID: "user-1", FactKey: "1+1", TotalAttempts: 10, CorrectAttempts: 10}
	repo.SavePerformance(ctx, weak)
	repo.SavePerformance(ctx, strong)

	out, err := svc.StrugglingFacts(ctx, "user-1", 10)
	if err != nil {
		t.Fatalf("StrugglingFacts error: %v", err)
	}
	if len(out) != 1 || out[0].FactKey != "9+6" {
		t.Errorf("struggling = %v, want only the weak fact", out)
	}
}
