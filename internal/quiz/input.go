package quiz

import (
	"strconv"
	"strings"
)

// InputKind tags one parsed line of quiz input.
type InputKind int

const (
	// KindAnswer is a line that parsed as an integer answer.
	KindAnswer InputKind = iota

	// KindNext skips the current problem.
	KindNext

	// KindStop ends the session and returns to the menu.
	KindStop

	// KindExit ends the session; the shell decides whether it also quits
	// the application. Identical to KindStop inside the runner.
	KindExit

	// KindMalformed is anything else. The runner re-prompts without
	// touching session state.
	KindMalformed
)

// Input is one line of learner input, parsed exactly once before the state
// machine inspects it. Value is meaningful only for KindAnswer.
type Input struct {
	Kind  InputKind
	Value int
}

// ParseInput interprets a raw line: recognized commands first
// (case-insensitive, whitespace-trimmed), then an integer parse, otherwise
// malformed.
func ParseInput(line string) Input {
	s := strings.ToLower(strings.TrimSpace(line))
	switch s {
	case "next":
		return Input{Kind: KindNext}
	case "stop":
		return Input{Kind: KindStop}
	case "exit":
		return Input{Kind: KindExit}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Input{Kind: KindMalformed}
	}
	return Input{Kind: KindAnswer, Value: n}
}
