package quiz

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/BarryMolina/mathsfun-sub001/internal/problemgen"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{4500 * time.Millisecond, "4.5 seconds"},
		{59900 * time.Millisecond, "59.9 seconds"},
		{60 * time.Second, "1m 0.0s"},
		{125500 * time.Millisecond, "2m 5.5s"},
		{59*time.Minute + 59*time.Second, "59m 59.0s"},
		{time.Hour + 2*time.Minute + 5500*time.Millisecond, "1h 2m 5.5s"},
		{3 * time.Hour, "3h 0m 0.0s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWriteReportTierAndFormat(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, Summary{
		Outcome:  Outcome{Correct: 8, Attempted: 10, Elapsed: 125500 * time.Millisecond},
		Produced: 10,
		Target:   10,
	})
	out := buf.String()

	for _, want := range []string{
		"Accuracy: 80.0%",
		"Time taken: 2m 5.5s",
		"Excellent work! Keep it up!",
		"All problems completed",
		"Problems presented: 10",
		"Skipped: 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReportEndedByUser(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, Summary{
		Outcome:  Outcome{Correct: 1, Attempted: 1, Elapsed: 5 * time.Second},
		Produced: 2,
		Target:   5,
	})
	if !strings.Contains(buf.String(), "Session ended by user") {
		t.Errorf("partial session should report user-ended:\n%s", buf.String())
	}
}

func TestWriteReportUnlimitedAlwaysEndedByUser(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, Summary{
		Outcome:   Outcome{Correct: 50, Attempted: 50, Elapsed: time.Minute},
		Produced:  50,
		Unlimited: true,
	})
	if !strings.Contains(buf.String(), "Session ended by user") {
		t.Errorf("unlimited session should report user-ended:\n%s", buf.String())
	}
}

func TestWriteReportNoAttempts(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, Summary{
		Outcome:  Outcome{Elapsed: 3 * time.Second},
		Produced: 1,
		Target:   5,
	})
	out := buf.String()
	if !strings.Contains(out, "No problems attempted") {
		t.Errorf("report missing no-attempts line:\n%s", out)
	}
	if strings.Contains(out, "Accuracy") {
		t.Errorf("no-attempts report should skip accuracy:\n%s", out)
	}
}

func TestEncouragementTiers(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{100, "Outstanding"},
		{90, "Outstanding"},
		{89.9, "Excellent"},
		{80, "Excellent"},
		{79.9, "Good job"},
		{70, "Good job"},
		{69.9, "Keep practicing"},
		{0, "Keep practicing"},
	}
	for _, tt := range tests {
		if got := encouragement(tt.accuracy); !strings.Contains(got, tt.want) {
			t.Errorf("encouragement(%.1f) = %q, want tier %q", tt.accuracy, got, tt.want)
		}
	}
}

func TestBuildSummary(t *testing.T) {
	gen := problemgen.NewRangeGenerator(1, 1, 4, nil)
	gen.Next()
	gen.Next()

	s := BuildSummary(Outcome{Correct: 1, Attempted: 2}, gen)
	if s.Produced != 2 || s.Target != 4 || s.Unlimited {
		t.Errorf("summary = %+v, want Produced=2 Target=4 bounded", s)
	}
	if s.Skipped() != 0 {
		t.Errorf("Skipped() = %d, want 0", s.Skipped())
	}
	if s.Completed() {
		t.Error("Completed() = true for partial session")
	}

	unl := BuildSummary(Outcome{}, problemgen.NewRangeGenerator(1, 5, 0, nil))
	if !unl.Unlimited {
		t.Error("unlimited generator should yield an unlimited summary")
	}
	if unl.Completed() {
		t.Error("unlimited sessions never complete")
	}
}
