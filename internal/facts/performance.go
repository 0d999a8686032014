package facts

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MasteryLevel is the learning progression of a single fact.
type MasteryLevel string

const (
	MasteryLearning   MasteryLevel = "learning"
	MasteryPracticing MasteryLevel = "practicing"
	MasteryMastered   MasteryLevel = "mastered"
)

// FactKey renders the canonical key for an operand pair. Facts are tracked
// exactly as presented: "8+3" and "3+8" are distinct facts.
func FactKey(a, b int) string {
	return fmt.Sprintf("%d+%d", a, b)
}

// Performance tracks one learner's history with one fact: accuracy, speed,
// and spaced-repetition scheduling.
type Performance struct {
	ID      string
	UserID  string
	FactKey string

	TotalAttempts   int
	CorrectAttempts int

	// Response-time aggregates cover correct attempts only.
	TotalResponseMs int64
	FastestMs       int64 // 0 until the first correct attempt
	SlowestMs       int64

	LastAttempted time.Time
	Schedule      Schedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPerformance creates a fresh record with SM-2 defaults.
func NewPerformance(userID, factKey string, now time.Time) *Performance {
	return &Performance{
		ID:        uuid.NewString(),
		UserID:    userID,
		FactKey:   factKey,
		Schedule:  NewSchedule(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Accuracy returns the correct percentage over all attempts.
func (p *Performance) Accuracy() float64 {
	if p.TotalAttempts == 0 {
		return 0
	}
	return float64(p.CorrectAttempts) / float64(p.TotalAttempts) * 100
}

// AverageResponseMs averages response time over correct attempts.
func (p *Performance) AverageResponseMs() float64 {
	if p.CorrectAttempts == 0 {
		return 0
	}
	return float64(p.TotalResponseMs) / float64(p.CorrectAttempts)
}

// Mastery derives the level from accuracy and volume:
// learning below 5 attempts or under 80% accuracy, mastered at 95%+
// accuracy with 10+ attempts, practicing in between.
func (p *Performance) Mastery() MasteryLevel {
	if p.TotalAttempts < 5 {
		return MasteryLearning
	}
	acc := p.Accuracy()
	switch {
	case acc >= 95 && p.TotalAttempts >= 10:
		return MasteryMastered
	case acc >= 80:
		return MasteryPracticing
	default:
		return MasteryLearning
	}
}

// Update folds one attempt into the aggregates. Fastest/slowest track
// correct responses only.
func (p *Performance) Update(correct bool, responseMs int64, now time.Time) {
	p.TotalAttempts++
	p.LastAttempted = now
	p.UpdatedAt = now

	if !correct {
		return
	}
	p.CorrectAttempts++
	p.TotalResponseMs += responseMs
	if p.FastestMs == 0 || responseMs < p.FastestMs {
		p.FastestMs = responseMs
	}
	if responseMs > p.SlowestMs {
		p.SlowestMs = responseMs
	}
}

// Attempt is the persisted record of one fact recall.
type Attempt struct {
	ID         string
	UserID     string
	FactKey    string
	Operand1   int
	Operand2   int
	Answer     *int // nil when skipped
	Correct    bool
	ResponseMs int64
	PriorWrong int
	SM2Grade   int
	Timestamp  time.Time
}
