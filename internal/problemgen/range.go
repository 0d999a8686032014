package problemgen

import (
	"fmt"
	"math/rand"
)

// RangeGenerator produces problems on demand, picking a difficulty
// uniformly from [low, high] for each draw. A target of 0 means unlimited.
//
// Bounds are validated by the mode-configuration layer before construction;
// the generator trusts its inputs.
type RangeGenerator struct {
	low, high Difficulty
	target    int
	generated int
	rng       *rand.Rand
}

// NewRangeGenerator creates a range-mode generator. Pass rng nil to use a
// time-seeded source; tests pass a fixed seed.
func NewRangeGenerator(low, high Difficulty, target int, rng *rand.Rand) *RangeGenerator {
	if rng == nil {
		rng = newRand()
	}
	return &RangeGenerator{
		low:    low,
		high:   high,
		target: target,
		rng:    rng,
	}
}

// Unlimited reports whether the generator has no target count.
func (g *RangeGenerator) Unlimited() bool {
	return g.target == 0
}

// Target returns the configured problem count (0 = unlimited).
func (g *RangeGenerator) Target() int {
	return g.target
}

// HighDifficulty returns the top of the configured difficulty range.
func (g *RangeGenerator) HighDifficulty() Difficulty {
	return g.high
}

// Next draws a difficulty from the range and generates one problem for it.
func (g *RangeGenerator) Next() (Problem, error) {
	d := g.low + Difficulty(g.rng.Intn(int(g.high-g.low)+1))
	a, b, err := Operands(g.rng, d)
	if err != nil {
		return Problem{}, err
	}
	g.generated++
	return NewProblem(a, b), nil
}

// HasMore is always true in unlimited mode, otherwise true until the
// target count has been generated.
func (g *RangeGenerator) HasMore() bool {
	if g.Unlimited() {
		return true
	}
	return g.generated < g.target
}

// Progress renders "#<n>" in unlimited mode and "<n>/<target>" otherwise.
func (g *RangeGenerator) Progress() string {
	if g.Unlimited() {
		return fmt.Sprintf("#%d", g.generated)
	}
	return fmt.Sprintf("%d/%d", g.generated, g.target)
}

// TotalGenerated returns the number of problems produced so far.
func (g *RangeGenerator) TotalGenerated() int {
	return g.generated
}

var _ Generator = (*RangeGenerator)(nil)
