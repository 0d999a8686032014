package problemgen

import (
	"fmt"
	"math/rand"
)

// problemSet walks a pre-built sequence of problems. It backs both the
// addition-table generator and the due-fact review set.
type problemSet struct {
	problems []Problem
	cursor   int
}

func (s *problemSet) Next() (Problem, error) {
	if s.cursor >= len(s.problems) {
		return Problem{}, ErrExhausted
	}
	p := s.problems[s.cursor]
	s.cursor++
	return p, nil
}

func (s *problemSet) HasMore() bool {
	return s.cursor < len(s.problems)
}

func (s *problemSet) Progress() string {
	return fmt.Sprintf("%d/%d", s.cursor, len(s.problems))
}

func (s *problemSet) TotalGenerated() int {
	return s.cursor
}

// Len returns the total number of problems in the set.
func (s *problemSet) Len() int {
	return len(s.problems)
}

// TableGenerator serves the full addition table for operands in
// [low, high]: every ordered pair (i, j), (high-low+1)^2 problems in all.
// The sequence is built eagerly at construction; with operands capped at
// 100 that is at most 10,000 entries, small enough to hold in memory.
type TableGenerator struct {
	problemSet
	low, high int
	random    bool
}

// NewTableGenerator enumerates the table in row-major order (i outer,
// j inner, both ascending) and shuffles it once when randomize is set.
// Pass rng nil for a time-seeded shuffle.
func NewTableGenerator(low, high int, randomize bool, rng *rand.Rand) *TableGenerator {
	n := high - low + 1
	problems := make([]Problem, 0, n*n)
	for i := low; i <= high; i++ {
		for j := low; j <= high; j++ {
			problems = append(problems, NewProblem(i, j))
		}
	}
	if randomize {
		if rng == nil {
			rng = newRand()
		}
		rng.Shuffle(len(problems), func(a, b int) {
			problems[a], problems[b] = problems[b], problems[a]
		})
	}
	return &TableGenerator{
		problemSet: problemSet{problems: problems},
		low:        low,
		high:       high,
		random:     randomize,
	}
}

// Randomized reports whether the table was shuffled at construction.
func (g *TableGenerator) Randomized() bool {
	return g.random
}

// Bounds returns the operand range of the table.
func (g *TableGenerator) Bounds() (low, high int) {
	return g.low, g.high
}

var _ Generator = (*TableGenerator)(nil)

// ReviewSet is a generator over an explicit list of problems, used for
// spaced-repetition review of due facts.
type ReviewSet struct {
	problemSet
}

// NewReviewSet wraps problems in generator form, shuffling when randomize
// is set.
func NewReviewSet(problems []Problem, randomize bool, rng *rand.Rand) *ReviewSet {
	ps := make([]Problem, len(problems))
	copy(ps, problems)
	if randomize {
		if rng == nil {
			rng = newRand()
		}
		rng.Shuffle(len(ps), func(a, b int) {
			ps[a], ps[b] = ps[b], ps[a]
		})
	}
	return &ReviewSet{problemSet{problems: ps}}
}

var _ Generator = (*ReviewSet)(nil)
