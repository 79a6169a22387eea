package problemgen

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/catalog"
)

func seeded(seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed+1)))
}

func TestGenerateArithmetic_OperandWidths(t *testing.T) {
	g := seeded(1)
	cfg := Config{Kind: KindArithmetic, Terms: 5, MinDigits: 2, MaxDigits: 3, Operator: OpAdd, RevealInterval: DefaultRevealInterval}

	for i := 0; i < 200; i++ {
		p, err := g.Generate(cfg, catalog.Country{}, nil)
		require.NoError(t, err)
		require.Len(t, p.Operands, 5)
		for _, n := range p.Operands {
			d := len(n.String())
			assert.GreaterOrEqual(t, d, 2)
			assert.LessOrEqual(t, d, 3)
		}
	}
}

func TestGenerateArithmetic_DivisionIsExact(t *testing.T) {
	g := seeded(7)
	for _, terms := range []int{2, 3, 6} {
		cfg := Config{Kind: KindArithmetic, Terms: terms, MinDigits: 1, MaxDigits: 3, Operator: OpDiv, RevealInterval: DefaultRevealInterval}
		for i := 0; i < 200; i++ {
			p, err := g.Generate(cfg, catalog.Country{}, nil)
			require.NoError(t, err)

			r, err := Evaluate(p)
			require.NoError(t, err)
			assert.True(t, r.IsInt(), "%v evaluates to %s", p.Operands, r.RatString())

			acc := new(big.Int).Set(p.Operands[0])
			rem := new(big.Int)
			for _, n := range p.Operands[1:] {
				require.NotZero(t, n.Sign())
				acc.QuoRem(acc, n, rem)
				require.Zero(t, rem.Sign(), "intermediate result not divisible by %s", n)
			}
		}
	}
}

func TestGenerateArithmetic_LongDivisionChain(t *testing.T) {
	g := seeded(11)
	cfg := Config{Kind: KindArithmetic, Terms: 10, MinDigits: 1, MaxDigits: 3, Operator: OpDiv, RevealInterval: DefaultRevealInterval}
	for i := 0; i < 50; i++ {
		p, err := g.Generate(cfg, catalog.Country{}, nil)
		require.NoError(t, err)
		require.Len(t, p.Operands, 10)

		// the dividend is the first sampled term times every divisor
		product := big.NewInt(1)
		for _, n := range p.Operands[1:] {
			product.Mul(product, n)
		}
		r, err := Evaluate(p)
		require.NoError(t, err)
		require.True(t, r.IsInt())
		first := r.Num()
		assert.Equal(t, 0, new(big.Int).Mul(first, product).Cmp(p.Operands[0]))
		assert.LessOrEqual(t, len(first.String()), 3)

		tokens := Timeline(p)
		assert.Equal(t, p.Operands[0].String(), tokens[0])
		assert.Equal(t, FormatNumber(ExpectedValue(p)), first.String())
	}
}

func TestGenerateArithmetic_ThreeByFour(t *testing.T) {
	g := seeded(3)
	cfg := Config{Kind: KindArithmetic, Terms: 3, MinDigits: 1, MaxDigits: 1, Operator: OpAdd, RevealInterval: DefaultRevealInterval}
	p, err := g.Generate(cfg, catalog.Country{}, nil)
	require.NoError(t, err)

	var sum int64
	for _, n := range p.Operands {
		assert.True(t, n.Int64() >= 1 && n.Int64() <= 9)
		sum += n.Int64()
	}
	assert.Equal(t, float64(sum), ExpectedValue(p))
	assert.Len(t, Timeline(p), 5)
}

func TestGenerateArithmetic_InvalidConfig(t *testing.T) {
	g := seeded(1)
	_, err := g.GenerateArithmetic(Config{Kind: KindArithmetic, Terms: 2, MinDigits: 3, MaxDigits: 1, Operator: OpAdd, RevealInterval: DefaultRevealInterval})
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "min_digits", cerr.Field)
}

func TestGenerateSequence_NoAdjacentRepeats(t *testing.T) {
	g := seeded(11)
	ranges := [][2]int{{0, 1}, {1, 9}, {4, 6}, {0, 9}}
	for _, r := range ranges {
		for length := 2; length <= MaxSequenceLength; length++ {
			seq, err := g.GenerateSequence(length, r[0], r[1])
			require.NoError(t, err)
			require.Len(t, seq, length)
			for i, d := range seq {
				assert.True(t, d >= r[0] && d <= r[1], "digit %d outside %v", d, r)
				if i > 0 {
					assert.NotEqual(t, seq[i-1], d, "adjacent repeat in %v", seq)
				}
			}
			assert.True(t, CheckSequence(seq, seq))
		}
	}
}

func TestGenerateSequence_SingleValueRange(t *testing.T) {
	g := seeded(1)

	seq, err := g.GenerateSequence(1, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, seq)

	_, err = g.GenerateSequence(3, 5, 5)
	var cerr *ConfigurationError
	assert.True(t, errors.As(err, &cerr))

	_, err = g.GenerateSequence(3, 6, 2)
	assert.True(t, errors.As(err, &cerr))
}

func TestGenerateMultipleChoice(t *testing.T) {
	g := seeded(5)
	pool := []string{"Japan", "France", "Brazil", "Kenya", "Canada"}

	for i := 0; i < 100; i++ {
		options, err := g.GenerateMultipleChoice(pool, "Japan", 4)
		require.NoError(t, err)
		require.Len(t, options, 4)
		assert.Contains(t, options, "Japan")

		seen := map[string]bool{}
		for _, o := range options {
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
			assert.Contains(t, pool, o)
		}
	}
}

func TestGenerateMultipleChoice_InsufficientPool(t *testing.T) {
	g := seeded(5)
	_, err := g.GenerateMultipleChoice([]string{"Japan", "France", "France"}, "Japan", 4)

	var perr *InsufficientPoolError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Need)
	assert.Equal(t, 1, perr.Have)
}

func TestGenerate_Flags(t *testing.T) {
	g := seeded(9)
	cfg := DefaultConfig(KindFlags)
	japan := catalog.Country{Name: "Japan", Code: "JP", Flag: "jp.png"}

	p, err := g.Generate(cfg, japan, []string{"Japan", "France", "Brazil", "Kenya", "Canada"})
	require.NoError(t, err)
	assert.Equal(t, KindFlags, p.Kind)
	assert.Equal(t, "Japan", p.Answer())
	assert.Len(t, p.Options, DefaultOptionCount)
	assert.Empty(t, Timeline(p))
}

func TestDrawCountries(t *testing.T) {
	g := seeded(2)
	pool := []catalog.Country{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	all, err := g.DrawCountries(pool, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, pool, all)

	two, err := g.DrawCountries(pool, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
	assert.NotEqual(t, two[0].Name, two[1].Name)

	_, err = g.DrawCountries(pool, 4)
	var perr *InsufficientPoolError
	assert.True(t, errors.As(err, &perr))
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}
	cfg := Config{Kind: KindSequence, SequenceLength: 3, SequenceMin: 1, SequenceMax: 9}

	assert.Nil(t, v.Validate(Problem{Kind: KindSequence, Digits: []int{1, 2, 1}}, cfg))

	verr := v.Validate(Problem{Kind: KindSequence, Digits: []int{1, 1, 2}}, cfg)
	require.NotNil(t, verr)
	assert.Equal(t, "structural", verr.Validator)

	flags := Problem{Kind: KindFlags, Country: catalog.Country{Name: "Japan"}, Options: []string{"France", "Kenya"}}
	assert.NotNil(t, v.Validate(flags, DefaultConfig(KindFlags)))
}

func TestExactDivisionValidator(t *testing.T) {
	v := &ExactDivisionValidator{}
	assert.Nil(t, v.Validate(arith(OpDiv, 24, 2, 3), Config{}))
	assert.NotNil(t, v.Validate(arith(OpDiv, 25, 2), Config{}))
	assert.NotNil(t, v.Validate(arith(OpDiv, 25, 0), Config{}))
	assert.Nil(t, v.Validate(arith(OpAdd, 25, 2), Config{}))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "structural", Message: "something went wrong"}
	assert.Equal(t, `validator "structural": something went wrong`, err.Error())
}
