package quiz

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BarryMolina/mathsfun-sub001/internal/problemgen"
)

// Outcome is the result of one quiz session. Skipped problems are derived
// by the caller as generator.TotalGenerated() - Attempted.
type Outcome struct {
	// Correct counts answers that matched on any attempt.
	Correct int

	// Attempted counts integer submissions; retries on the same problem
	// each count.
	Attempted int

	// Elapsed runs from just after the ready acknowledgment to session end.
	Elapsed time.Duration
}

// Runner drives a generator through the interactive answer/skip/stop loop.
// All I/O is synchronous and blocking: one problem is presented, then the
// runner waits indefinitely for input. One session runs at a time.
type Runner struct {
	in  *bufio.Scanner
	out io.Writer
	rec Recorder

	// now is swappable for tests.
	now func() time.Time
}

// NewRunner creates a runner reading learner input from in and writing
// prompts to out. Pass rec nil to run without recording.
func NewRunner(in io.Reader, out io.Writer, rec Recorder) *Runner {
	if rec == nil {
		rec = NopRecorder{}
	}
	return &Runner{
		in:  bufio.NewScanner(in),
		out: out,
		rec: rec,
		now: time.Now,
	}
}

// Run executes the session: ready prompt, timed problem loop, outcome.
// The loop ends when the generator is exhausted, the learner types stop or
// exit, or input reaches EOF. Recorder.Complete is called exactly once on
// every path out.
func (r *Runner) Run(ctx context.Context, gen problemgen.Generator) (Outcome, error) {
	if !r.promptReady(gen) {
		// EOF before the learner confirmed; nothing started, nothing to
		// record.
		return Outcome{}, nil
	}

	// Timer starts only after the learner confirms readiness.
	start := r.now()
	r.record(func() error { return r.rec.Start(ctx) })

	var out Outcome
	defer func() {
		r.record(func() error { return r.rec.Complete(ctx) })
	}()

	for gen.HasMore() {
		problem, err := gen.Next()
		if err != nil {
			return out, fmt.Errorf("next problem: %w", err)
		}
		fmt.Fprintf(r.out, "\n📝 Problem %s: %s\n", gen.Progress(), problem.Text)

		problemStart := r.now()
		wrongSoFar := 0
		answered := false

		for !answered {
			fmt.Fprint(r.out, "Your answer: ")
			line, ok := r.readLine()
			if !ok {
				// EOF behaves like stop.
				out.Elapsed = r.now().Sub(start)
				return out, nil
			}

			in := ParseInput(line)
			switch in.Kind {
			case KindStop, KindExit:
				out.Elapsed = r.now().Sub(start)
				return out, nil

			case KindNext:
				r.record(func() error {
					return r.rec.RecordAttempt(ctx, AttemptRecord{
						Problem:      problem,
						Answer:       nil,
						Correct:      false,
						ResponseTime: r.now().Sub(problemStart),
						PriorWrong:   wrongSoFar,
					})
				})
				fmt.Fprintf(r.out, "⏭️  Skipped! The answer was %d\n", problem.Answer)
				answered = true

			case KindAnswer:
				out.Attempted++
				answer := in.Value
				correct := answer == problem.Answer
				r.record(func() error {
					return r.rec.RecordAttempt(ctx, AttemptRecord{
						Problem:      problem,
						Answer:       &answer,
						Correct:      correct,
						ResponseTime: r.now().Sub(problemStart),
						PriorWrong:   wrongSoFar,
					})
				})
				if correct {
					out.Correct++
					fmt.Fprintln(r.out, "✅ Correct! Great job!")
					answered = true
				} else {
					wrongSoFar++
					fmt.Fprintln(r.out, "❌ Not quite right. Try again!")
					fmt.Fprintln(r.out, "You can type 'next' to move on to the next problem.")
				}

			case KindMalformed:
				fmt.Fprintln(r.out, "❌ Please enter a number, 'next', 'stop', or 'exit'")
			}
		}
	}

	out.Elapsed = r.now().Sub(start)
	return out, nil
}

// promptReady blocks until the learner confirms they want the timer to
// start. ok is false when input ends before the confirmation.
func (r *Runner) promptReady(gen problemgen.Generator) bool {
	unlimited, total := supplyInfo(gen)
	if unlimited {
		fmt.Fprintln(r.out, "\n✅ Ready to start unlimited session!")
		fmt.Fprintln(r.out, "Solve problems until you're ready to stop.")
	} else {
		fmt.Fprintf(r.out, "\n✅ Ready to start! %d problems prepared.\n", total)
	}
	fmt.Fprintln(r.out, "Commands: 'next' (skip), 'stop' (end session), 'exit' (quit)")
	fmt.Fprintln(r.out, "Press Enter when you're ready to start the timer and begin...")
	if _, ok := r.readLine(); !ok {
		return false
	}
	fmt.Fprintln(r.out, strings.Repeat("=", 60))
	return true
}

// readLine blocks for one line of input. ok is false at EOF.
func (r *Runner) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return r.in.Text(), true
}

// record invokes a best-effort recorder call. Recording failures never
// disturb the session; implementations log them.
func (r *Runner) record(fn func() error) {
	_ = fn()
}

// supplyInfo extracts the problem-supply shape for display purposes.
// Range generators expose Unlimited/Target; table and review sets expose
// their fixed length.
func supplyInfo(gen problemgen.Generator) (unlimited bool, total int) {
	if g, ok := gen.(interface {
		Unlimited() bool
		Target() int
	}); ok {
		return g.Unlimited(), g.Target()
	}
	if g, ok := gen.(interface{ Len() int }); ok {
		return false, g.Len()
	}
	return false, 0
}
