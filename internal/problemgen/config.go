package problemgen

import (
	"fmt"
	"time"
)

// Configuration bounds.
const (
	MinTerms = 2
	MaxTerms = 10

	MinDigitCount = 1
	MaxDigitCount = 3

	MinRevealInterval = 10 * time.Millisecond
	MaxRevealInterval = 2 * time.Second

	MinSequenceLength = 2
	MaxSequenceLength = 10

	MinSequenceDigit = 0
	MaxSequenceDigit = 9

	MinOptionCount     = 2
	DefaultOptionCount = 4
)

// DefaultRevealInterval is the reveal pace both flash drills start with.
const DefaultRevealInterval = 800 * time.Millisecond

// FlagPresets are the question counts offered for the flag quiz.
// Zero means every country in the catalog.
var FlagPresets = []int{10, 30, 100, 0}

// Config is the immutable per-session quiz configuration.
type Config struct {
	Kind Kind `json:"kind" mapstructure:"kind"`

	// Arithmetic settings.
	Terms     int      `json:"terms,omitempty" mapstructure:"terms"`
	MinDigits int      `json:"min_digits,omitempty" mapstructure:"min_digits"`
	MaxDigits int      `json:"max_digits,omitempty" mapstructure:"max_digits"`
	Operator  Operator `json:"operator,omitempty" mapstructure:"operator"`

	// RevealInterval is the minimum spacing between reveal steps.
	RevealInterval time.Duration `json:"reveal_interval,omitempty" mapstructure:"interval"`

	// Sequence settings.
	SequenceLength int `json:"sequence_length,omitempty" mapstructure:"length"`
	SequenceMin    int `json:"sequence_min,omitempty" mapstructure:"min"`
	SequenceMax    int `json:"sequence_max,omitempty" mapstructure:"max"`

	// ProblemCount is the number of problems in the session. Zero means
	// unlimited for flash drills and the whole catalog for the flag quiz.
	ProblemCount int `json:"problem_count,omitempty" mapstructure:"problems"`

	// OptionCount is the number of choices per flag question.
	OptionCount int `json:"option_count,omitempty" mapstructure:"options"`
}

// DefaultConfig returns the starting configuration for a drill kind.
func DefaultConfig(kind Kind) Config {
	switch kind {
	case KindSequence:
		return Config{
			Kind:           KindSequence,
			SequenceLength: 3,
			SequenceMin:    1,
			SequenceMax:    9,
			RevealInterval: DefaultRevealInterval,
		}
	case KindFlags:
		return Config{
			Kind:         KindFlags,
			ProblemCount: 10,
			OptionCount:  DefaultOptionCount,
		}
	default:
		return Config{
			Kind:           KindArithmetic,
			Terms:          2,
			MinDigits:      1,
			MaxDigits:      1,
			Operator:       OpAdd,
			RevealInterval: DefaultRevealInterval,
		}
	}
}

// Normalize clamps every numeric setting into its allowed range and fills
// zero values with defaults. It never reorders bounds: MinDigits > MaxDigits
// survives Normalize and is rejected by Validate. A sequence range is only
// defaulted when the length is unset as well, so an explicit 0..0 range
// reaches Validate.
func (c Config) Normalize() Config {
	switch c.Kind {
	case KindArithmetic:
		c.Terms = clamp(c.Terms, MinTerms, MaxTerms)
		c.MinDigits = clamp(c.MinDigits, MinDigitCount, MaxDigitCount)
		c.MaxDigits = clamp(c.MaxDigits, MinDigitCount, MaxDigitCount)
		if op, ok := ParseOperator(string(c.Operator)); ok {
			c.Operator = op
		}
		c.RevealInterval = clampInterval(c.RevealInterval)
	case KindSequence:
		if c.SequenceLength == 0 && c.SequenceMin == 0 && c.SequenceMax == 0 {
			c.SequenceMin, c.SequenceMax = 1, 9
		}
		c.SequenceLength = clamp(c.SequenceLength, MinSequenceLength, MaxSequenceLength)
		c.SequenceMin = clamp(c.SequenceMin, MinSequenceDigit, MaxSequenceDigit)
		c.SequenceMax = clamp(c.SequenceMax, MinSequenceDigit, MaxSequenceDigit)
		c.RevealInterval = clampInterval(c.RevealInterval)
	case KindFlags:
		if c.OptionCount == 0 {
			c.OptionCount = DefaultOptionCount
		}
		if c.OptionCount < MinOptionCount {
			c.OptionCount = MinOptionCount
		}
	}
	if c.ProblemCount < 0 {
		c.ProblemCount = 0
	}
	return c
}

// Validate rejects configurations that cannot generate problems.
func (c Config) Validate() error {
	switch c.Kind {
	case KindArithmetic:
		if _, ok := ParseOperator(string(c.Operator)); !ok {
			return &ConfigurationError{Field: "operator", Reason: fmt.Sprintf("unknown operator %q", c.Operator)}
		}
		if c.Terms < MinTerms || c.Terms > MaxTerms {
			return &ConfigurationError{Field: "terms", Reason: fmt.Sprintf("must be between %d and %d", MinTerms, MaxTerms)}
		}
		if c.MinDigits < MinDigitCount || c.MaxDigits > MaxDigitCount {
			return &ConfigurationError{Field: "digits", Reason: fmt.Sprintf("must be between %d and %d", MinDigitCount, MaxDigitCount)}
		}
		if c.MinDigits > c.MaxDigits {
			return &ConfigurationError{Field: "min_digits", Reason: fmt.Sprintf("min digits %d exceeds max digits %d", c.MinDigits, c.MaxDigits)}
		}
		if c.RevealInterval < MinRevealInterval || c.RevealInterval > MaxRevealInterval {
			return &ConfigurationError{Field: "interval", Reason: fmt.Sprintf("must be between %s and %s", MinRevealInterval, MaxRevealInterval)}
		}
	case KindSequence:
		if c.SequenceLength < MinSequenceLength || c.SequenceLength > MaxSequenceLength {
			return &ConfigurationError{Field: "length", Reason: fmt.Sprintf("must be between %d and %d", MinSequenceLength, MaxSequenceLength)}
		}
		if err := validateSequenceRange(c.SequenceLength, c.SequenceMin, c.SequenceMax); err != nil {
			return err
		}
		if c.RevealInterval < MinRevealInterval || c.RevealInterval > MaxRevealInterval {
			return &ConfigurationError{Field: "interval", Reason: fmt.Sprintf("must be between %s and %s", MinRevealInterval, MaxRevealInterval)}
		}
	case KindFlags:
		if c.OptionCount < MinOptionCount {
			return &ConfigurationError{Field: "options", Reason: fmt.Sprintf("need at least %d options", MinOptionCount)}
		}
	default:
		return &ConfigurationError{Field: "kind", Reason: fmt.Sprintf("unknown drill %q", c.Kind)}
	}
	if c.ProblemCount < 0 {
		return &ConfigurationError{Field: "problems", Reason: "must not be negative"}
	}
	return nil
}

func validateSequenceRange(length, lo, hi int) error {
	if lo > hi {
		return &ConfigurationError{Field: "min", Reason: fmt.Sprintf("range %d..%d is empty", lo, hi)}
	}
	if lo == hi && length > 1 {
		return &ConfigurationError{Field: "max", Reason: "a single-value range cannot avoid adjacent repeats"}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInterval(d time.Duration) time.Duration {
	if d == 0 {
		return DefaultRevealInterval
	}
	if d < MinRevealInterval {
		return MinRevealInterval
	}
	if d > MaxRevealInterval {
		return MaxRevealInterval
	}
	return d
}
