package problemgen

import (
	"fmt"
	"math/big"
	"strings"
)

// Validator checks a generated problem against its configuration.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate returns nil if the problem passes.
	Validate(p Problem, cfg Config) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is the chain every Generator runs.
func DefaultValidators() []Validator {
	return []Validator{&StructuralValidator{}, &ExactDivisionValidator{}}
}

// StructuralValidator checks operand counts and widths, sequence ranges and
// adjacency, and the option set of flag problems.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p Problem, cfg Config) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	switch p.Kind {
	case KindArithmetic:
		if len(p.Operands) != cfg.Terms {
			return fail("expected %d operands, got %d", cfg.Terms, len(p.Operands))
		}
		// The division dividend is a product and may be wider than MaxDigits.
		first := 0
		if p.Operator == OpDiv {
			first = 1
		}
		for _, n := range p.Operands[first:] {
			d := len(n.String())
			if n.Sign() <= 0 || d < cfg.MinDigits || d > cfg.MaxDigits {
				return fail("operand %d outside %d..%d digits", n, cfg.MinDigits, cfg.MaxDigits)
			}
		}

	case KindSequence:
		if len(p.Digits) != cfg.SequenceLength {
			return fail("expected %d digits, got %d", cfg.SequenceLength, len(p.Digits))
		}
		for i, d := range p.Digits {
			if d < cfg.SequenceMin || d > cfg.SequenceMax {
				return fail("digit %d outside %d..%d", d, cfg.SequenceMin, cfg.SequenceMax)
			}
			if i > 0 && p.Digits[i-1] == d {
				return fail("digit %d repeats at position %d", d, i)
			}
		}

	case KindFlags:
		if strings.TrimSpace(p.Country.Name) == "" {
			return fail("country name is empty")
		}
		seen := make(map[string]bool, len(p.Options))
		found := false
		for _, o := range p.Options {
			if seen[o] {
				return fail("duplicate option %q", o)
			}
			seen[o] = true
			if o == p.Country.Name {
				found = true
			}
		}
		if !found {
			return fail("answer %q not among options", p.Country.Name)
		}
	}
	return nil
}

// ExactDivisionValidator recomputes division chains and requires every
// intermediate result to be an integer.
type ExactDivisionValidator struct{}

func (v *ExactDivisionValidator) Name() string { return "exact-division" }

func (v *ExactDivisionValidator) Validate(p Problem, _ Config) *ValidationError {
	if p.Kind != KindArithmetic || p.Operator != OpDiv || len(p.Operands) == 0 {
		return nil
	}
	acc := new(big.Int).Set(p.Operands[0])
	rem := new(big.Int)
	for _, n := range p.Operands[1:] {
		if n.Sign() == 0 {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%s is divided by zero", acc)}
		}
		acc.QuoRem(acc, n, rem)
		if rem.Sign() != 0 {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("chain is not divisible by %s", n)}
		}
	}
	return nil
}
