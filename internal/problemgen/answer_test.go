package problemgen

import (
	"errors"
	"math"
	"testing"
)

func arith(op Operator, operands ...int64) Problem {
	return Problem{Kind: KindArithmetic, Operator: op, Operands: Operands(operands...)}
}

func TestCheckArithmetic_Tolerance(t *testing.T) {
	p := arith(OpAdd, 3, 7)

	tests := []struct {
		input string
		want  bool
	}{
		{"10", true},
		{" 10 ", true},
		{"10.0", true},
		{"9.996", true},
		{"10.009", true},
		{"9.98", false},
		{"11", false},
		{"+10", true},
		{"１０", true},
	}

	for _, tc := range tests {
		got, expected, err := CheckArithmetic(tc.input, p)
		if err != nil {
			t.Fatalf("CheckArithmetic(%q) unexpected error: %v", tc.input, err)
		}
		if expected != 10 {
			t.Errorf("CheckArithmetic(%q) expected = %v, want 10", tc.input, expected)
		}
		if got != tc.want {
			t.Errorf("CheckArithmetic(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckArithmetic_ParseError(t *testing.T) {
	p := arith(OpAdd, 3, 7)

	for _, input := range []string{"", "abc", "1.2.3", "--4", "1e3", "12a"} {
		ok, expected, err := CheckArithmetic(input, p)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("CheckArithmetic(%q) error = %v, want *ParseError", input, err)
			continue
		}
		if perr.Input != input {
			t.Errorf("ParseError.Input = %q, want %q", perr.Input, input)
		}
		if ok {
			t.Errorf("CheckArithmetic(%q) reported correct on parse failure", input)
		}
		if expected != 10 {
			t.Errorf("CheckArithmetic(%q) expected = %v, want 10", input, expected)
		}
	}
}

func TestCheckArithmetic_Negative(t *testing.T) {
	ok, expected, err := CheckArithmetic("-5", arith(OpSub, 3, 8))
	if err != nil {
		t.Fatal(err)
	}
	if !ok || expected != -5 {
		t.Errorf("got ok=%v expected=%v, want ok=true expected=-5", ok, expected)
	}
}

func TestEvaluate_LeftToRight(t *testing.T) {
	tests := []struct {
		name string
		p    Problem
		want string
	}{
		{"add", arith(OpAdd, 3, 4, 5), "12"},
		{"sub", arith(OpSub, 20, 4, 5), "11"},
		{"mul no precedence", arith(OpMul, 2, 3, 4), "24"},
		{"div chain", arith(OpDiv, 120, 2, 3), "20"},
		{"div fraction", arith(OpDiv, 7, 2), "7/2"},
		{"single operand", arith(OpAdd, 9), "9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Evaluate(tc.p)
			if err != nil {
				t.Fatal(err)
			}
			if r.RatString() != tc.want {
				t.Errorf("Evaluate = %s, want %s", r.RatString(), tc.want)
			}
		})
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	p := arith(OpDiv, 10, 0)
	if _, err := Evaluate(p); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("Evaluate error = %v, want ErrDivisionByZero", err)
	}
	if v := ExpectedValue(p); !math.IsInf(v, 1) {
		t.Errorf("ExpectedValue = %v, want +Inf", v)
	}
	ok, _, err := CheckArithmetic("0", p)
	if err != nil || ok {
		t.Errorf("CheckArithmetic on zero divisor = %v, %v; want false, nil", ok, err)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "12"},
		{-3, "-3"},
		{3.5, "3.5"},
		{2.0 / 3.0, "0.67"},
		{math.Inf(1), "∞"},
	}
	for _, tc := range tests {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCheckSequence(t *testing.T) {
	tests := []struct {
		name      string
		submitted []int
		expected  []int
		want      bool
	}{
		{"match", []int{3, 1, 4}, []int{3, 1, 4}, true},
		{"one wrong", []int{3, 1, 5}, []int{3, 1, 4}, false},
		{"short", []int{3, 1}, []int{3, 1, 4}, false},
		{"long", []int{3, 1, 4, 1}, []int{3, 1, 4}, false},
		{"empty", nil, nil, true},
	}
	for _, tc := range tests {
		if got := CheckSequence(tc.submitted, tc.expected); got != tc.want {
			t.Errorf("%s: CheckSequence = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCheckMultipleChoice(t *testing.T) {
	if !CheckMultipleChoice("Japan", "Japan") {
		t.Error("expected exact label to match")
	}
	if CheckMultipleChoice("japan", "Japan") {
		t.Error("expected comparison to be case-sensitive")
	}
}

func TestTimeline(t *testing.T) {
	got := Timeline(arith(OpMul, 12, 3, 4))
	want := []string{"12", "×", "3", "×", "4"}
	if len(got) != len(want) {
		t.Fatalf("Timeline = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Timeline[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	seq := Timeline(Problem{Kind: KindSequence, Digits: []int{5, 2, 5}})
	if len(seq) != 3 || seq[0] != "5" || seq[2] != "5" {
		t.Errorf("sequence Timeline = %v", seq)
	}

	if flags := Timeline(Problem{Kind: KindFlags}); len(flags) != 0 {
		t.Errorf("flag Timeline = %v, want empty", flags)
	}
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  42 ", "42"},
		{"４２．５", "42.5"},
		{"－３", "-3"},
	}
	for _, tc := range tests {
		if got := NormalizeInput(tc.in); got != tc.want {
			t.Errorf("NormalizeInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
