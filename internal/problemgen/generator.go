package problemgen

import (
	"math/big"
	"math/rand/v2"
	"time"

	"github.com/abhisek/flashquiz/internal/catalog"
)

// Generator produces quiz problems from a random source.
// A Generator is not safe for concurrent use; give each session its own.
type Generator struct {
	rng        *rand.Rand
	validators []Validator
}

// New creates a Generator backed by rng. A nil rng seeds from the clock.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	return &Generator{rng: rng, validators: DefaultValidators()}
}

// Generate produces the next problem for cfg and runs it through the
// validator chain. Flag problems need the country to ask about and the pool
// of option labels.
func (g *Generator) Generate(cfg Config, country catalog.Country, pool []string) (Problem, error) {
	p, err := g.generate(cfg, country, pool)
	if err != nil {
		return Problem{}, err
	}
	for _, v := range g.validators {
		if verr := v.Validate(p, cfg); verr != nil {
			return Problem{}, verr
		}
	}
	return p, nil
}

func (g *Generator) generate(cfg Config, country catalog.Country, pool []string) (Problem, error) {
	switch cfg.Kind {
	case KindArithmetic:
		return g.GenerateArithmetic(cfg)
	case KindSequence:
		digits, err := g.GenerateSequence(cfg.SequenceLength, cfg.SequenceMin, cfg.SequenceMax)
		if err != nil {
			return Problem{}, err
		}
		return Problem{Kind: KindSequence, Digits: digits}, nil
	case KindFlags:
		options, err := g.GenerateMultipleChoice(pool, country.Name, cfg.OptionCount)
		if err != nil {
			return Problem{}, err
		}
		return Problem{Kind: KindFlags, Country: country, Options: options}, nil
	}
	return Problem{}, &ConfigurationError{Field: "kind", Reason: "unknown drill " + string(cfg.Kind)}
}

// GenerateArithmetic draws cfg.Terms operands. Each operand has its own digit
// count sampled from [MinDigits, MaxDigits].
//
// For division the divisors are re-sampled and the first operand is replaced
// by the product of the originally sampled first operand and every divisor,
// so left-to-right division always lands on an integer.
func (g *Generator) GenerateArithmetic(cfg Config) (Problem, error) {
	if err := cfg.Validate(); err != nil {
		return Problem{}, err
	}
	operands := make([]*big.Int, cfg.Terms)
	for i := range operands {
		operands[i] = big.NewInt(g.operand(cfg.MinDigits, cfg.MaxDigits))
	}

	op, _ := ParseOperator(string(cfg.Operator))
	if op == OpDiv {
		dividend := new(big.Int).Set(operands[0])
		for i := 1; i < len(operands); i++ {
			divisor := big.NewInt(g.operand(cfg.MinDigits, cfg.MaxDigits))
			dividend.Mul(dividend, divisor)
			operands[i] = divisor
		}
		operands[0] = dividend
	}

	return Problem{Kind: KindArithmetic, Operands: operands, Operator: op}, nil
}

// operand samples a digit count, then a value with exactly that many digits.
func (g *Generator) operand(minDigits, maxDigits int) int64 {
	d := minDigits + g.rng.IntN(maxDigits-minDigits+1)
	lo := pow10(d - 1)
	hi := pow10(d) - 1
	return lo + g.rng.Int64N(hi-lo+1)
}

// GenerateSequence returns length digits from [lo, hi] where no element
// equals its predecessor. A single-value range is only valid for length <= 1.
func (g *Generator) GenerateSequence(length, lo, hi int) ([]int, error) {
	if length < 0 {
		return nil, &ConfigurationError{Field: "length", Reason: "must not be negative"}
	}
	if length > 1 || lo > hi {
		if err := validateSequenceRange(length, lo, hi); err != nil {
			return nil, err
		}
	}

	seq := make([]int, 0, length)
	available := make([]int, 0, hi-lo+1)
	last := lo - 1
	for i := 0; i < length; i++ {
		available = available[:0]
		for n := lo; n <= hi; n++ {
			if n != last {
				available = append(available, n)
			}
		}
		n := available[g.rng.IntN(len(available))]
		seq = append(seq, n)
		last = n
	}
	return seq, nil
}

// GenerateMultipleChoice picks optionCount-1 distinct distractors from pool,
// adds correct, and returns the labels freshly shuffled.
func (g *Generator) GenerateMultipleChoice(pool []string, correct string, optionCount int) ([]string, error) {
	if optionCount < 1 {
		return nil, &ConfigurationError{Field: "options", Reason: "need at least one option"}
	}

	seen := map[string]bool{correct: true}
	candidates := make([]string, 0, len(pool))
	for _, label := range pool {
		if seen[label] {
			continue
		}
		seen[label] = true
		candidates = append(candidates, label)
	}

	need := optionCount - 1
	if len(candidates) < need {
		return nil, &InsufficientPoolError{Need: need, Have: len(candidates)}
	}

	// Partial Fisher-Yates: the first need entries become a uniform sample.
	for i := 0; i < need; i++ {
		j := i + g.rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	options := make([]string, 0, optionCount)
	options = append(options, correct)
	options = append(options, candidates[:need]...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options, nil
}

// DrawCountries returns n distinct countries in random order. n == 0 draws
// the whole pool.
func (g *Generator) DrawCountries(pool []catalog.Country, n int) ([]catalog.Country, error) {
	if n == 0 {
		n = len(pool)
	}
	if n > len(pool) {
		return nil, &InsufficientPoolError{Need: n, Have: len(pool)}
	}
	deck := append([]catalog.Country(nil), pool...)
	g.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck[:n], nil
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
