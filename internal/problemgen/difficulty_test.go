package problemgen

import (
	"errors"
	"math/rand"
	"testing"
)

func TestOperandsConstraints(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		difficulty Difficulty
		min, max   int
		check      func(a, b int) bool
		desc       string
	}{
		{1, 0, 9, func(a, b int) bool { return true }, "single digit"},
		{2, 10, 99, sumsWithoutCarrying, "no carrying"},
		{3, 10, 99, func(a, b int) bool { return a%10+b%10 > 9 }, "ones carry"},
		{4, 100, 999, sumsWithoutCarrying, "no carrying"},
		{5, 100, 999, func(a, b int) bool { return a%10+b%10 > 9 }, "ones carry"},
	}

	for _, tt := range tests {
		for i := 0; i < 10000; i++ {
			a, b, err := Operands(rng, tt.difficulty)
			if err != nil {
				t.Fatalf("Operands(%d) error: %v", tt.difficulty, err)
			}
			if a < tt.min || a > tt.max || b < tt.min || b > tt.max {
				t.Fatalf("Operands(%d) = (%d, %d), out of range [%d, %d]",
					tt.difficulty, a, b, tt.min, tt.max)
			}
			if !tt.check(a, b) {
				t.Fatalf("Operands(%d) = (%d, %d), violates %s constraint",
					tt.difficulty, a, b, tt.desc)
			}
		}
	}
}

func TestOperandsInvalidDifficulty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, d := range []Difficulty{0, 6, -1, 100} {
		_, _, err := Operands(rng, d)
		if !errors.Is(err, ErrInvalidDifficulty) {
			t.Errorf("Operands(%d) error = %v, want ErrInvalidDifficulty", d, err)
		}
	}
}

func TestSumsWithoutCarrying(t *testing.T) {
	tests := []struct {
		a, b int
		want bool
	}{
		{12, 34, true},
		{15, 15, false},  // ones carry
		{91, 18, false},  // tens carry
		{123, 456, true},
		{190, 420, false}, // tens carry
		{500, 600, false}, // hundreds carry
		{0, 0, true},
	}
	for _, tt := range tests {
		if got := sumsWithoutCarrying(tt.a, tt.b); got != tt.want {
			t.Errorf("sumsWithoutCarrying(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDescriptions(t *testing.T) {
	for d := DifficultyMin; d <= DifficultyMax; d++ {
		if d.Description() == "" {
			t.Errorf("Description(%d) is empty", d)
		}
	}
	if Difficulty(0).Description() != "" || Difficulty(6).Description() != "" {
		t.Error("invalid difficulty should have an empty description")
	}
}
