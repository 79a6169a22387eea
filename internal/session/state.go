package session

import (
	"errors"
	"fmt"
	"time"
)

// Phase represents the current phase of a session.
type Phase int

const (
	PhaseIdle          Phase = iota // No active problem
	PhaseDisplaying                 // Revealing the timeline step by step
	PhaseAwaitingInput              // Collecting the learner's answer
	PhaseGrading                    // Transient, only observed inside a single event
	PhaseResult                     // Showing the graded answer
)

var phaseNames = map[Phase]string{
	PhaseIdle:          "idle",
	PhaseDisplaying:    "displaying",
	PhaseAwaitingInput: "awaiting_input",
	PhaseGrading:       "grading",
	PhaseResult:        "result",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

var (
	// ErrNotAccepting is returned for events that are invalid in the current
	// phase. The state is left untouched.
	ErrNotAccepting = errors.New("event not accepted in current phase")

	// ErrTickTooEarly is returned when a tick arrives before the reveal
	// interval has elapsed since the previous step.
	ErrTickTooEarly = errors.New("tick arrived before reveal interval elapsed")

	// ErrInvalidInput is returned for a key the current drill does not accept.
	ErrInvalidInput = errors.New("input not accepted")

	// ErrUnknownOption is returned when a selected label is not one of the
	// current options.
	ErrUnknownOption = errors.New("unknown option")

	// ErrNoSession is returned by registries when a session id is unknown.
	ErrNoSession = errors.New("session not found")
)

// Result is the outcome of the most recent graded answer.
type Result struct {
	Correct   bool          `json:"correct"`
	Elapsed   time.Duration `json:"elapsed"`
	Expected  string        `json:"expected"`
	Submitted string        `json:"submitted"`
}

// MaxArithmeticInput caps the number of characters collected for an
// arithmetic answer.
const MaxArithmeticInput = 16

// HistoryTail is the number of answer records included in a snapshot.
const HistoryTail = 10
