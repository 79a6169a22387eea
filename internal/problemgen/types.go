package problemgen

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/abhisek/flashquiz/internal/catalog"
)

// Kind identifies which drill a problem belongs to.
type Kind string

const (
	KindArithmetic Kind = "arithmetic" // flash mental arithmetic
	KindSequence   Kind = "sequence"   // flash number sequence
	KindFlags      Kind = "flags"      // flag multiple choice
)

// Operator is one of the four arithmetic operators shown during reveal.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "×"
	OpDiv Operator = "÷"
)

// ParseOperator accepts the display symbol or a common ASCII alias.
func ParseOperator(s string) (Operator, bool) {
	switch strings.TrimSpace(s) {
	case "+", "add":
		return OpAdd, true
	case "-", "−", "sub":
		return OpSub, true
	case "×", "*", "x", "mul":
		return OpMul, true
	case "÷", "/", ":", "div":
		return OpDiv, true
	}
	return "", false
}

// Problem is a single generated quiz item. Only the fields for its Kind are set.
type Problem struct {
	Kind Kind `json:"kind"`

	// Operands and Operator are set for arithmetic problems.
	// len(Operands) equals the configured term count. A division dividend is
	// the product of every term and can outgrow int64.
	Operands []*big.Int `json:"operands,omitempty"`
	Operator Operator   `json:"operator,omitempty"`

	// Digits is set for sequence problems. No two adjacent digits are equal.
	Digits []int `json:"digits,omitempty"`

	// Country and Options are set for flag problems. Options holds distinct
	// labels, exactly one of which is Country.Name.
	Country catalog.Country `json:"country,omitzero"`
	Options []string        `json:"options,omitempty"`
}

// Prompt renders the problem as a single line for history and summaries.
func (p Problem) Prompt() string {
	switch p.Kind {
	case KindArithmetic:
		parts := make([]string, len(p.Operands))
		for i, n := range p.Operands {
			parts[i] = n.String()
		}
		return strings.Join(parts, " "+string(p.Operator)+" ")
	case KindSequence:
		return joinDigits(p.Digits, " ")
	case KindFlags:
		return p.Country.Name
	}
	return ""
}

// Answer renders the canonical correct answer.
func (p Problem) Answer() string {
	switch p.Kind {
	case KindArithmetic:
		return FormatNumber(ExpectedValue(p))
	case KindSequence:
		return joinDigits(p.Digits, " ")
	case KindFlags:
		return p.Country.Name
	}
	return ""
}

// Clone returns a deep copy so snapshots never alias live state.
func (p Problem) Clone() Problem {
	c := p
	if p.Operands != nil {
		c.Operands = make([]*big.Int, len(p.Operands))
		for i, n := range p.Operands {
			c.Operands[i] = new(big.Int).Set(n)
		}
	}
	if p.Digits != nil {
		c.Digits = append([]int(nil), p.Digits...)
	}
	if p.Options != nil {
		c.Options = append([]string(nil), p.Options...)
	}
	return c
}

// AnswerLength is the number of keypad entries a complete sequence answer has.
// It is zero for kinds without a fixed answer length.
func (p Problem) AnswerLength() int {
	if p.Kind == KindSequence {
		return len(p.Digits)
	}
	return 0
}

// Operands converts plain integers into problem operands.
func Operands(ns ...int64) []*big.Int {
	out := make([]*big.Int, len(ns))
	for i, n := range ns {
		out[i] = big.NewInt(n)
	}
	return out
}

func joinDigits(digits []int, sep string) string {
	parts := make([]string, len(digits))
	for i, d := range digits {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, sep)
}
