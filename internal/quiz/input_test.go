package quiz

import "testing"

func TestParseInput(t *testing.T) {
	tests := []struct {
		line string
		want Input
	}{
		{"42", Input{Kind: KindAnswer, Value: 42}},
		{"  -7 ", Input{Kind: KindAnswer, Value: -7}},
		{"next", Input{Kind: KindNext}},
		{"NEXT", Input{Kind: KindNext}},
		{" Stop ", Input{Kind: KindStop}},
		{"exit", Input{Kind: KindExit}},
		{"EXIT", Input{Kind: KindExit}},
		{"", Input{Kind: KindMalformed}},
		{"hello", Input{Kind: KindMalformed}},
		{"4.5", Input{Kind: KindMalformed}},
		{"12abc", Input{Kind: KindMalformed}},
	}

	for _, tt := range tests {
		if got := ParseInput(tt.line); got != tt.want {
			t.Errorf("ParseInput(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}
