package problemgen

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by Evaluate when a divisor in the chain is zero.
var ErrDivisionByZero = errors.New("division by zero")

// ConfigurationError reports an invalid quiz configuration. It is raised at
// session start, never mid-session.
type ConfigurationError struct {
	Field  string // Name of the offending setting
	Reason string // Human-readable description
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Field, e.Reason)
}

// ParseError reports a submitted answer that is not a decimal number.
// It is recoverable: the learner re-enters the answer.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a number: %q", e.Input)
}

// InsufficientPoolError reports that a candidate pool is too small to build
// the requested number of distinct options.
type InsufficientPoolError struct {
	Need int // Candidates required
	Have int // Candidates available
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("insufficient pool: need %d candidates, have %d", e.Need, e.Have)
}
