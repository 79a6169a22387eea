package setup

import (
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/flashquiz/internal/problemgen"
)

// field is one adjustable setting of a drill configuration.
type field struct {
	label  string
	value  func(c problemgen.Config) string
	adjust func(c *problemgen.Config, delta int)
}

const (
	intervalStep = 50 * time.Millisecond
	problemStep  = 5
	maxProblems  = 200
	maxOptions   = 6
)

var operators = []problemgen.Operator{problemgen.OpAdd, problemgen.OpSub, problemgen.OpMul, problemgen.OpDiv}

func fieldsFor(kind problemgen.Kind) []field {
	switch kind {
	case problemgen.KindSequence:
		return []field{
			intField("Length", func(c *problemgen.Config) *int { return &c.SequenceLength },
				problemgen.MinSequenceLength, problemgen.MaxSequenceLength, 1),
			intField("Smallest digit", func(c *problemgen.Config) *int { return &c.SequenceMin },
				problemgen.MinSequenceDigit, problemgen.MaxSequenceDigit, 1),
			intField("Largest digit", func(c *problemgen.Config) *int { return &c.SequenceMax },
				problemgen.MinSequenceDigit, problemgen.MaxSequenceDigit, 1),
			intervalField(),
			problemsField(),
		}
	case problemgen.KindFlags:
		return []field{
			{
				label: "Questions",
				value: func(c problemgen.Config) string { return countLabel(c.ProblemCount, "All") },
				adjust: func(c *problemgen.Config, delta int) {
					i := slices.Index(problemgen.FlagPresets, c.ProblemCount)
					c.ProblemCount = problemgen.FlagPresets[wrap(i+delta, len(problemgen.FlagPresets))]
				},
			},
			intField("Choices", func(c *problemgen.Config) *int { return &c.OptionCount },
				problemgen.MinOptionCount, maxOptions, 1),
		}
	}
	return []field{
		intField("Numbers", func(c *problemgen.Config) *int { return &c.Terms },
			problemgen.MinTerms, problemgen.MaxTerms, 1),
		intField("Min digits", func(c *problemgen.Config) *int { return &c.MinDigits },
			problemgen.MinDigitCount, problemgen.MaxDigitCount, 1),
		intField("Max digits", func(c *problemgen.Config) *int { return &c.MaxDigits },
			problemgen.MinDigitCount, problemgen.MaxDigitCount, 1),
		{
			label: "Operator",
			value: func(c problemgen.Config) string { return string(c.Operator) },
			adjust: func(c *problemgen.Config, delta int) {
				i := slices.Index(operators, c.Operator)
				c.Operator = operators[wrap(i+delta, len(operators))]
			},
		},
		intervalField(),
		problemsField(),
	}
}

func intField(label string, ptr func(c *problemgen.Config) *int, lo, hi, step int) field {
	return field{
		label: label,
		value: func(c problemgen.Config) string { return fmt.Sprint(*ptr(&c)) },
		adjust: func(c *problemgen.Config, delta int) {
			p := ptr(c)
			*p = min(max(*p+delta*step, lo), hi)
		},
	}
}

func intervalField() field {
	return field{
		label: "Interval",
		value: func(c problemgen.Config) string { return c.RevealInterval.String() },
		adjust: func(c *problemgen.Config, delta int) {
			d := c.RevealInterval + time.Duration(delta)*intervalStep
			c.RevealInterval = min(max(d, problemgen.MinRevealInterval), problemgen.MaxRevealInterval)
		},
	}
}

func problemsField() field {
	return field{
		label: "Problems",
		value: func(c problemgen.Config) string { return countLabel(c.ProblemCount, "∞") },
		adjust: func(c *problemgen.Config, delta int) {
			c.ProblemCount = min(max(c.ProblemCount+delta*problemStep, 0), maxProblems)
		},
	}
}

func countLabel(n int, zero string) string {
	if n == 0 {
		return zero
	}
	return fmt.Sprint(n)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
