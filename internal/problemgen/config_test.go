package problemgen

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	for _, kind := range []Kind{KindArithmetic, KindSequence, KindFlags} {
		assert.NoError(t, DefaultConfig(kind).Validate(), "default %s config", kind)
	}
}

func TestNormalize_Clamps(t *testing.T) {
	cfg := Config{Kind: KindArithmetic, Terms: 50, MinDigits: 0, MaxDigits: 9, Operator: "*", RevealInterval: time.Millisecond}.Normalize()

	assert.Equal(t, MaxTerms, cfg.Terms)
	assert.Equal(t, MinDigitCount, cfg.MinDigits)
	assert.Equal(t, MaxDigitCount, cfg.MaxDigits)
	assert.Equal(t, OpMul, cfg.Operator)
	assert.Equal(t, MinRevealInterval, cfg.RevealInterval)
	assert.NoError(t, cfg.Validate())
}

func TestNormalize_KeepsInvertedDigits(t *testing.T) {
	cfg := Config{Kind: KindArithmetic, Terms: 2, MinDigits: 3, MaxDigits: 1, Operator: OpAdd}.Normalize()
	require.Equal(t, 3, cfg.MinDigits)

	var cerr *ConfigurationError
	require.True(t, errors.As(cfg.Validate(), &cerr))
	assert.Equal(t, "min_digits", cerr.Field)
}

func TestNormalize_SequenceDefaults(t *testing.T) {
	cfg := Config{Kind: KindSequence}.Normalize()
	assert.Equal(t, MinSequenceLength, cfg.SequenceLength)
	assert.Equal(t, 1, cfg.SequenceMin)
	assert.Equal(t, 9, cfg.SequenceMax)
	assert.Equal(t, DefaultRevealInterval, cfg.RevealInterval)
}

func TestNormalize_ExplicitZeroRange(t *testing.T) {
	cfg := Config{Kind: KindSequence, SequenceLength: 3}.Normalize()
	assert.Equal(t, 0, cfg.SequenceMin)
	assert.Equal(t, 0, cfg.SequenceMax)

	var cerr *ConfigurationError
	require.True(t, errors.As(cfg.Validate(), &cerr))
	assert.Equal(t, "max", cerr.Field)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"unknown kind", Config{Kind: "chess"}, "kind"},
		{"unknown operator", Config{Kind: KindArithmetic, Terms: 2, MinDigits: 1, MaxDigits: 1, Operator: "%", RevealInterval: time.Second}, "operator"},
		{"too few terms", Config{Kind: KindArithmetic, Terms: 1, MinDigits: 1, MaxDigits: 1, Operator: OpAdd, RevealInterval: time.Second}, "terms"},
		{"interval too long", Config{Kind: KindArithmetic, Terms: 2, MinDigits: 1, MaxDigits: 1, Operator: OpAdd, RevealInterval: time.Minute}, "interval"},
		{"empty range", Config{Kind: KindSequence, SequenceLength: 3, SequenceMin: 7, SequenceMax: 2, RevealInterval: time.Second}, "min"},
		{"single value range", Config{Kind: KindSequence, SequenceLength: 3, SequenceMin: 4, SequenceMax: 4, RevealInterval: time.Second}, "max"},
		{"one option", Config{Kind: KindFlags, OptionCount: 1}, "options"},
		{"negative count", Config{Kind: KindFlags, OptionCount: 4, ProblemCount: -1}, "problems"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cerr *ConfigurationError
			require.True(t, errors.As(tc.cfg.Validate(), &cerr))
			assert.Equal(t, tc.field, cerr.Field)
		})
	}
}

func TestValidate_DivisionAcceptsEveryTermCount(t *testing.T) {
	for terms := MinTerms; terms <= MaxTerms; terms++ {
		for digits := MinDigitCount; digits <= MaxDigitCount; digits++ {
			cfg := Config{Kind: KindArithmetic, Terms: terms, MinDigits: digits, MaxDigits: digits, Operator: OpDiv, RevealInterval: time.Second}
			assert.NoError(t, cfg.Validate(), "%d terms of %d digits", terms, digits)
		}
	}
}

func TestParseOperator(t *testing.T) {
	for in, want := range map[string]Operator{"+": OpAdd, "sub": OpSub, "*": OpMul, "x": OpMul, "/": OpDiv, "÷": OpDiv} {
		got, ok := ParseOperator(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseOperator("%")
	assert.False(t, ok)
}
