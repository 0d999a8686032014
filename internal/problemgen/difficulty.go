package problemgen

import (
	"errors"
	"fmt"
	"math/rand"
)

// Difficulty selects the operand policy for generated problems: digit
// width plus a carrying constraint.
type Difficulty int

const (
	DifficultyMin Difficulty = 1
	DifficultyMax Difficulty = 5
)

// ErrInvalidDifficulty signals a level outside 1..5. The configuration
// layer validates user input first, so hitting this is a programming
// error, not a user mistake.
var ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 5")

var descriptions = [...]string{
	"Two single-digit numbers",
	"Two two-digit numbers, no carrying",
	"Two two-digit numbers with carrying",
	"Two three-digit numbers, no carrying",
	"Two three-digit numbers with carrying",
}

// Valid reports whether d is a known level.
func (d Difficulty) Valid() bool {
	return d >= DifficultyMin && d <= DifficultyMax
}

// Description returns the display text for the level, or "" for an
// invalid one.
func (d Difficulty) Description() string {
	if !d.Valid() {
		return ""
	}
	return descriptions[d-1]
}

type operandRange struct {
	min, max int
}

var ranges = map[Difficulty]operandRange{
	1: {0, 9},
	2: {10, 99},
	3: {10, 99},
	4: {100, 999},
	5: {100, 999},
}

// Operands draws one operand pair satisfying the level's policy. Levels
// with carrying constraints use rejection sampling; the loops have no
// iteration cap, but the acceptance probability is high enough that a
// couple of draws suffice in practice.
func Operands(r *rand.Rand, d Difficulty) (int, int, error) {
	or, ok := ranges[d]
	if !ok {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidDifficulty, d)
	}
	draw := func() int {
		return or.min + r.Intn(or.max-or.min+1)
	}

	switch d {
	case 2, 4:
		for {
			a, b := draw(), draw()
			if sumsWithoutCarrying(a, b) {
				return a, b, nil
			}
		}
	case 3, 5:
		for {
			a, b := draw(), draw()
			if a%10+b%10 > 9 {
				return a, b, nil
			}
		}
	default:
		return draw(), draw(), nil
	}
}

// sumsWithoutCarrying reports whether every digit pair of a and b sums
// to at most 9.
func sumsWithoutCarrying(a, b int) bool {
	for a > 0 || b > 0 {
		if a%10+b%10 > 9 {
			return false
		}
		a /= 10
		b /= 10
	}
	return true
}
