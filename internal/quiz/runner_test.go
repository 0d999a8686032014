package quiz

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/BarryMolina/mathsfun-sub001/internal/problemgen"
)

// spyRecorder captures recorder calls for assertions.
type spyRecorder struct {
	starts    int
	completes int
	attempts  []AttemptRecord
}

func (s *spyRecorder) Start(context.Context) error { s.starts++; return nil }
func (s *spyRecorder) RecordAttempt(_ context.Context, rec AttemptRecord) error {
	s.attempts = append(s.attempts, rec)
	return nil
}
func (s *spyRecorder) Complete(context.Context) error { s.completes++; return nil }

// runScripted runs a session over fixed problems with scripted input lines.
// The leading empty line satisfies the ready prompt.
func runScripted(t *testing.T, problems []problemgen.Problem, lines ...string) (Outcome, *ReviewInfo, *spyRecorder, string) {
	t.Helper()
	gen := problemgen.NewReviewSet(problems, false, nil)
	rec := &spyRecorder{}
	var out bytes.Buffer
	input := "\n" + strings.Join(lines, "\n") + "\n"

	r := NewRunner(strings.NewReader(input), &out, rec)
	outcome, err := r.Run(context.Background(), gen)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return outcome, &ReviewInfo{Produced: gen.TotalGenerated()}, rec, out.String()
}

// ReviewInfo carries generator-side counts out of runScripted.
type ReviewInfo struct {
	Produced int
}

func TestRunnerAllCorrect(t *testing.T) {
	problems := []problemgen.Problem{
		problemgen.NewProblem(1, 4),
		problemgen.NewProblem(3, 4),
	}
	outcome, info, rec, _ := runScripted(t, problems, "5", "7")

	if outcome.Correct != 2 || outcome.Attempted != 2 {
		t.Errorf("outcome = %+v, want Correct=2 Attempted=2", outcome)
	}
	if outcome.Elapsed < 0 {
		t.Errorf("Elapsed = %v, want >= 0", outcome.Elapsed)
	}
	if info.Produced != 2 {
		t.Errorf("produced = %d, want 2", info.Produced)
	}
	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("recorder starts=%d completes=%d, want 1/1", rec.starts, rec.completes)
	}
	if len(rec.attempts) != 2 {
		t.Errorf("recorded attempts = %d, want 2", len(rec.attempts))
	}
}

func TestRunnerStopEndsEarly(t *testing.T) {
	problems := []problemgen.Problem{
		problemgen.NewProblem(3, 5),
		problemgen.NewProblem(1, 1),
		problemgen.NewProblem(2, 2),
		problemgen.NewProblem(3, 3),
		problemgen.NewProblem(4, 4),
	}
	outcome, info, rec, _ := runScripted(t, problems, "8", "stop")

	if outcome.Correct != 1 || outcome.Attempted != 1 {
		t.Errorf("outcome = %+v, want Correct=1 Attempted=1", outcome)
	}
	// The loop exits before drawing further problems.
	if info.Produced != 2 {
		t.Errorf("produced = %d, want 2", info.Produced)
	}
	if rec.completes != 1 {
		t.Errorf("completes = %d, want exactly 1 on stop", rec.completes)
	}
}

func TestRunnerExitBehavesLikeStop(t *testing.T) {
	problems := []problemgen.Problem{problemgen.NewProblem(1, 2)}
	outcome, _, rec, _ := runScripted(t, problems, "exit")

	if outcome.Attempted != 0 || outcome.Correct != 0 {
		t.Errorf("outcome = %+v, want zero counts", outcome)
	}
	if rec.completes != 1 {
		t.Errorf("completes = %d, want 1", rec.completes)
	}
}

func TestRunnerRetriesAndSkip(t *testing.T) {
	problems := []problemgen.Problem{
		problemgen.NewProblem(2, 3),
		problemgen.NewProblem(5, 7),
	}
	// Two wrong answers, skip, then correct on the next problem.
	outcome, info, rec, output := runScripted(t, problems, "3", "4", "next", "12")

	if outcome.Attempted != 3 {
		t.Errorf("Attempted = %d, want 3 (retries count)", outcome.Attempted)
	}
	if outcome.Correct != 1 {
		t.Errorf("Correct = %d, want 1", outcome.Correct)
	}
	if info.Produced != 2 {
		t.Errorf("produced = %d, want 2", info.Produced)
	}
	// Three integer submissions plus the skip that abandoned the first
	// problem.
	if len(rec.attempts) != 4 {
		t.Fatalf("recorded attempts = %d, want 4", len(rec.attempts))
	}
	if rec.attempts[1].PriorWrong != 1 {
		t.Errorf("second attempt PriorWrong = %d, want 1", rec.attempts[1].PriorWrong)
	}
	skip := rec.attempts[2]
	if skip.Answer != nil || skip.Correct {
		t.Errorf("skip record = %+v, want nil answer and not correct", skip)
	}
	if skip.PriorWrong != 2 {
		t.Errorf("skip PriorWrong = %d, want 2 (wrong tries before abandoning)", skip.PriorWrong)
	}
	if !strings.Contains(output, "Skipped! The answer was 5") {
		t.Error("skip should reveal the correct answer")
	}
}

func TestRunnerFirstAttemptSkipIsRecorded(t *testing.T) {
	problems := []problemgen.Problem{problemgen.NewProblem(7, 8)}
	outcome, _, rec, _ := runScripted(t, problems, "next")

	if outcome.Attempted != 0 {
		t.Errorf("Attempted = %d, want 0", outcome.Attempted)
	}
	if len(rec.attempts) != 1 {
		t.Fatalf("recorded attempts = %d, want 1 skip record", len(rec.attempts))
	}
	if rec.attempts[0].Answer != nil {
		t.Error("skip record should have a nil answer")
	}
	if rec.attempts[0].Correct {
		t.Error("skip record should not be marked correct")
	}
	if rec.attempts[0].PriorWrong != 0 {
		t.Errorf("PriorWrong = %d, want 0 on a clean skip", rec.attempts[0].PriorWrong)
	}
}

func TestRunnerEOFBeforeReadyStartsNothing(t *testing.T) {
	gen := problemgen.NewReviewSet([]problemgen.Problem{problemgen.NewProblem(1, 1)}, false, nil)
	rec := &spyRecorder{}
	var out bytes.Buffer

	// Input ends at the ready prompt; the timer never starts.
	r := NewRunner(strings.NewReader(""), &out, rec)
	outcome, err := r.Run(context.Background(), gen)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if outcome != (Outcome{}) {
		t.Errorf("outcome = %+v, want zero", outcome)
	}
	if rec.starts != 0 || rec.completes != 0 {
		t.Errorf("recorder starts=%d completes=%d, want 0/0", rec.starts, rec.completes)
	}
}

func TestRunnerMalformedInputKeepsState(t *testing.T) {
	problems := []problemgen.Problem{problemgen.NewProblem(2, 2)}
	outcome, _, rec, output := runScripted(t, problems, "banana", "4")

	if outcome.Attempted != 1 || outcome.Correct != 1 {
		t.Errorf("outcome = %+v, want Attempted=1 Correct=1", outcome)
	}
	if len(rec.attempts) != 1 {
		t.Errorf("recorded attempts = %d, want 1 (malformed lines record nothing)", len(rec.attempts))
	}
	if !strings.Contains(output, "Please enter a number") {
		t.Error("malformed input should print a format-error message")
	}
}

func TestRunnerEOFEndsSession(t *testing.T) {
	gen := problemgen.NewReviewSet([]problemgen.Problem{problemgen.NewProblem(1, 1)}, false, nil)
	rec := &spyRecorder{}
	var out bytes.Buffer

	// Input ends after the ready acknowledgment.
	r := NewRunner(strings.NewReader("\n"), &out, rec)
	outcome, err := r.Run(context.Background(), gen)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if outcome.Attempted != 0 {
		t.Errorf("Attempted = %d, want 0", outcome.Attempted)
	}
	if rec.completes != 1 {
		t.Errorf("completes = %d, want 1 even at EOF", rec.completes)
	}
}

func TestRunnerNilRecorder(t *testing.T) {
	gen := problemgen.NewReviewSet([]problemgen.Problem{problemgen.NewProblem(1, 1)}, false, nil)
	var out bytes.Buffer

	r := NewRunner(strings.NewReader("\n2\n"), &out, nil)
	outcome, err := r.Run(context.Background(), gen)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if outcome.Correct != 1 {
		t.Errorf("Correct = %d, want 1", outcome.Correct)
	}
}
