package problemgen

import (
	"fmt"
	"math/rand"
	"time"
)

// Problem is a single addition problem ready for display.
type Problem struct {
	// Text is the prompt shown to the learner, e.g. "42 + 17".
	Text string

	// Answer is the correct sum.
	Answer int

	// A and B are the operands, retained so fact tracking can key on the
	// exact pair as presented.
	A, B int
}

// NewProblem builds a Problem from an operand pair.
func NewProblem(a, b int) Problem {
	return Problem{
		Text:   fmt.Sprintf("%d + %d", a, b),
		Answer: a + b,
		A:      a,
		B:      b,
	}
}

// Generator is the capability set shared by all problem sources. The quiz
// runner holds only this interface; the concrete variants differ in how the
// next problem is chosen and when the supply runs out.
type Generator interface {
	// Next produces the next problem. Callers must check HasMore first;
	// calling Next on an exhausted bounded generator is an error.
	Next() (Problem, error)

	// HasMore reports whether Next can produce another problem.
	HasMore() bool

	// Progress returns a short display string for the current position,
	// e.g. "#7" (unlimited) or "3/20" (bounded or table).
	Progress() string

	// TotalGenerated returns how many problems have been produced so far.
	// This is the authoritative count of presented problems.
	TotalGenerated() int
}

// ErrExhausted is returned by Next when a bounded generator has no
// problems left. The runner always checks HasMore first, so this surfaces
// only on caller bugs.
var ErrExhausted = fmt.Errorf("no more problems available")

// newRand returns a freshly seeded source for generators constructed
// without an explicit one.
func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
