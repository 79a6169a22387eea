package problemgen

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Tolerance is the absolute distance within which an arithmetic answer is
// accepted as correct.
const Tolerance = 0.01

var decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// NormalizeInput folds full-width digits, signs and decimal points to their
// ASCII forms and trims surrounding whitespace.
func NormalizeInput(s string) string {
	s = width.Narrow.String(s)
	s = strings.NewReplacer("−", "-", "ー", "-", "。", ".").Replace(s)
	return strings.TrimSpace(s)
}

// CheckArithmetic parses submitted as a decimal number and compares it with
// the left-to-right result of the problem. It returns a *ParseError for
// non-numeric input; the expected value is still reported in that case.
func CheckArithmetic(submitted string, p Problem) (bool, float64, error) {
	expected := ExpectedValue(p)

	normalized := NormalizeInput(submitted)
	if !decimalRe.MatchString(normalized) {
		return false, expected, &ParseError{Input: submitted}
	}
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return false, expected, &ParseError{Input: submitted}
	}

	return math.Abs(value-expected) < Tolerance, expected, nil
}

// Evaluate reduces the operands left to right with exact rational arithmetic.
func Evaluate(p Problem) (*big.Rat, error) {
	if len(p.Operands) == 0 {
		return new(big.Rat), nil
	}
	result := new(big.Rat).SetInt(p.Operands[0])
	for _, n := range p.Operands[1:] {
		operand := new(big.Rat).SetInt(n)
		switch p.Operator {
		case OpAdd:
			result.Add(result, operand)
		case OpSub:
			result.Sub(result, operand)
		case OpMul:
			result.Mul(result, operand)
		case OpDiv:
			if n.Sign() == 0 {
				return nil, ErrDivisionByZero
			}
			result.Quo(result, operand)
		}
	}
	return result, nil
}

// ExpectedValue is the float form of Evaluate. A zero divisor anywhere in
// the chain yields +Inf, so no finite answer can match.
func ExpectedValue(p Problem) float64 {
	r, err := Evaluate(p)
	if err != nil {
		return math.Inf(1)
	}
	f, _ := r.Float64()
	return f
}

// FormatNumber renders an expected value rounded to two decimals, without
// trailing zeros.
func FormatNumber(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "∞"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// CheckSequence reports whether submitted matches expected element by
// element. A length mismatch is simply incorrect.
func CheckSequence(submitted, expected []int) bool {
	if len(submitted) != len(expected) {
		return false
	}
	for i := range submitted {
		if submitted[i] != expected[i] {
			return false
		}
	}
	return true
}

// CheckMultipleChoice is an exact label comparison.
func CheckMultipleChoice(submitted, correct string) bool {
	return submitted == correct
}

// Timeline returns the reveal tokens of a problem in display order.
// Arithmetic alternates operands and the operator (2n-1 steps), sequences
// reveal one digit per step, flag problems have no reveal.
func Timeline(p Problem) []string {
	switch p.Kind {
	case KindArithmetic:
		if len(p.Operands) == 0 {
			return nil
		}
		tokens := make([]string, 0, 2*len(p.Operands)-1)
		for i, n := range p.Operands {
			if i > 0 {
				tokens = append(tokens, string(p.Operator))
			}
			tokens = append(tokens, n.String())
		}
		return tokens
	case KindSequence:
		tokens := make([]string, len(p.Digits))
		for i, d := range p.Digits {
			tokens[i] = strconv.Itoa(d)
		}
		return tokens
	}
	return nil
}
