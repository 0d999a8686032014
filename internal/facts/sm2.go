package facts

import (
	"fmt"
	"math"
	"time"
)

// SM-2 spaced repetition parameters.
const (
	InitialEase     = 2.5
	MinEase         = 1.3
	MaxEase         = 4.0
	InitialInterval = 1 // days
)

// Grade scores one recall on the 0-5 SM-2 quality scale from the response
// time of the final (correct or skipped) input and the number of wrong
// answers given on the problem before it:
//
//	0 — total blackout (two or more wrong attempts)
//	1 — familiar but slow after seeing the answer
//	2 — easy to remember after seeing the answer
//	3 — correct first try with significant effort
//	4 — correct first try with some hesitation
//	5 — perfect recall
func Grade(responseTime time.Duration, priorWrong int) int {
	ms := responseTime.Milliseconds()
	switch {
	case priorWrong >= 2:
		return 0
	case priorWrong == 1:
		if ms < 3000 {
			return 2
		}
		return 1
	default:
		switch {
		case ms < 2000:
			return 5
		case ms < 3000:
			return 4
		default:
			return 3
		}
	}
}

// Schedule is the SM-2 scheduling state carried by each fact.
type Schedule struct {
	// Repetition is the count of consecutive reviews graded 3 or better.
	Repetition int

	// Ease is the easiness factor, clamped to [MinEase, MaxEase].
	Ease float64

	// IntervalDays is the current review interval.
	IntervalDays int

	// NextReview is when the fact becomes due again.
	NextReview time.Time
}

// NewSchedule returns the starting state: ease 2.5, one-day interval, due
// tomorrow.
func NewSchedule(now time.Time) Schedule {
	return Schedule{
		Ease:         InitialEase,
		IntervalDays: InitialInterval,
		NextReview:   now.AddDate(0, 0, InitialInterval),
	}
}

// Due reports whether the fact should be reviewed at t.
func (s Schedule) Due(t time.Time) bool {
	return s.NextReview.IsZero() || !t.Before(s.NextReview)
}

// Apply advances the schedule with one graded review. A grade below 3
// resets the repetition count and interval but keeps the ease factor; a
// passing grade walks the 1, 6, interval*ease progression. The ease factor
// is adjusted on every review and clamped.
func (s *Schedule) Apply(grade int, now time.Time) error {
	if grade < 0 || grade > 5 {
		return fmt.Errorf("sm2 grade must be between 0 and 5, got %d", grade)
	}

	if grade < 3 {
		s.Repetition = 0
		s.IntervalDays = 1
	} else {
		switch s.Repetition {
		case 0:
			s.IntervalDays = 1
		case 1:
			s.IntervalDays = 6
		default:
			s.IntervalDays = int(float64(s.IntervalDays) * s.Ease)
		}
		s.Repetition++
	}

	q := float64(grade)
	ease := s.Ease + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	ease = math.Round(ease*100) / 100
	if ease < MinEase {
		ease = MinEase
	}
	if ease > MaxEase {
		ease = MaxEase
	}
	s.Ease = ease

	s.NextReview = now.AddDate(0, 0, s.IntervalDays)
	return nil
}
