package quiz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BarryMolina/mathsfun-sub001/internal/problemgen"
)

// Summary is everything the results reporter needs: the session outcome
// plus the generator-side view of how many problems were presented.
type Summary struct {
	Outcome

	// Produced is the generator's count of presented problems.
	Produced int

	// Target is the configured problem count; meaningless when Unlimited.
	Target int

	Unlimited bool
}

// Skipped is the number of presented problems that were never answered.
func (s Summary) Skipped() int {
	return s.Produced - s.Attempted
}

// Completed reports whether every configured problem was presented.
// Unlimited sessions only ever end by user choice.
func (s Summary) Completed() bool {
	return !s.Unlimited && s.Produced >= s.Target
}

// Accuracy returns the percentage of attempts that were correct.
func (s Summary) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted) * 100
}

// BuildSummary combines an outcome with the generator that produced the
// session's problems.
func BuildSummary(o Outcome, gen problemgen.Generator) Summary {
	unlimited, total := supplyInfo(gen)
	return Summary{
		Outcome:   o,
		Produced:  gen.TotalGenerated(),
		Target:    total,
		Unlimited: unlimited,
	}
}

// FormatDuration renders a duration the way the session report shows it:
// seconds with one decimal under a minute, "Mm S.Ss" under an hour, and
// "Hh Mm S.Ss" beyond. Minutes and hours truncate; seconds keep one
// decimal.
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs < 60:
		return fmt.Sprintf("%.1f seconds", secs)
	case secs < 3600:
		m := int(secs) / 60
		return fmt.Sprintf("%dm %.1fs", m, secs-float64(m)*60)
	default:
		h := int(secs) / 3600
		m := (int(secs) % 3600) / 60
		return fmt.Sprintf("%dh %dm %.1fs", h, m, secs-float64(h)*3600-float64(m)*60)
	}
}

// encouragement picks the message tier for an accuracy percentage.
// Four tiers, inclusive lower bounds, highest first.
func encouragement(accuracy float64) string {
	switch {
	case accuracy >= 90:
		return "🌟 Outstanding! You're a math superstar!"
	case accuracy >= 80:
		return "🎊 Excellent work! Keep it up!"
	case accuracy >= 70:
		return "👍 Good job! Practice makes perfect!"
	default:
		return "💪 Keep practicing! You'll get better!"
	}
}

// WriteReport renders the end-of-session report as plain text lines.
func WriteReport(w io.Writer, s Summary) {
	divider := strings.Repeat("=", 60)
	fmt.Fprintln(w, "\n"+divider)

	completionText := "Session ended by user"
	if s.Completed() {
		fmt.Fprintln(w, "🎉 Quiz Complete! 🎉")
		completionText = "All problems completed"
	} else {
		fmt.Fprintln(w, "🎉 Session Complete! 🎉")
	}

	fmt.Fprintf(w, "📊 Problems presented: %d\n", s.Produced)
	fmt.Fprintf(w, "✅ Correct answers: %d\n", s.Correct)
	fmt.Fprintf(w, "📝 Total attempted: %d\n", s.Attempted)
	fmt.Fprintf(w, "⏭️  Skipped: %d\n", s.Skipped())
	fmt.Fprintf(w, "⏱️  Time taken: %s\n", FormatDuration(s.Elapsed))
	fmt.Fprintf(w, "ℹ️  %s\n", completionText)

	if s.Attempted > 0 {
		fmt.Fprintf(w, "🎯 Accuracy: %.1f%%\n", s.Accuracy())
		avg := time.Duration(float64(s.Elapsed) / float64(s.Attempted))
		fmt.Fprintf(w, "📈 Average time per attempted problem: %s\n", FormatDuration(avg))
		fmt.Fprintln(w, encouragement(s.Accuracy()))
	} else {
		fmt.Fprintln(w, "🤔 No problems attempted this time.")
	}

	fmt.Fprintln(w, divider)
}
