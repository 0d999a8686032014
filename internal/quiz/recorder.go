package quiz

import (
	"context"
	"time"

	"github.com/BarryMolina/mathsfun-sub001/internal/problemgen"
)

// AttemptRecord describes one submitted answer or skip. The runner
// forwards these to the Recorder and otherwise only aggregates counts; it
// does not retain them. Recorders decide which records to persist.
type AttemptRecord struct {
	Problem problemgen.Problem

	// Answer is nil when the problem was skipped without an answer.
	Answer *int

	Correct      bool
	ResponseTime time.Duration

	// PriorWrong counts the wrong answers given on this problem before
	// this input. Fact tracking uses it to grade recall quality.
	PriorWrong int
}

// Recorder receives session lifecycle events. Recording is best-effort:
// implementations log their own failures and must not disturb the quiz
// loop. The runner calls Start once after the ready acknowledgment,
// RecordAttempt per answer or skip, and Complete exactly once on every
// exit path after Start.
type Recorder interface {
	Start(ctx context.Context) error
	RecordAttempt(ctx context.Context, rec AttemptRecord) error
	Complete(ctx context.Context) error
}

// NopRecorder is the default Recorder. Having a no-op implementation keeps
// the runner free of nil checks and conditional recording branches.
type NopRecorder struct{}

func (NopRecorder) Start(context.Context) error                        { return nil }
func (NopRecorder) RecordAttempt(context.Context, AttemptRecord) error { return nil }
func (NopRecorder) Complete(context.Context) error                     { return nil }

var _ Recorder = NopRecorder{}
