package session

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/abhisek/flashquiz/internal/catalog"
	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/score"
)

// Options configures a Machine. Zero fields get defaults.
type Options struct {
	// Clock supplies timestamps. Defaults to the real clock.
	Clock clock.PassiveClock

	// Generator produces problems. Defaults to a clock-seeded generator.
	Generator *problemgen.Generator

	// Catalog is the flag quiz country list. Defaults to the embedded one.
	Catalog *catalog.Catalog

	// Observers are notified of session lifecycle events.
	Observers []Observer
}

// Machine is the session state machine shared by every drill. It owns all
// mutable session state; events are the only way to change it.
// A Machine is not safe for concurrent use.
type Machine struct {
	clock     clock.PassiveClock
	gen       *problemgen.Generator
	catalog   *catalog.Catalog
	observers []Observer

	id        string
	phase     Phase
	cfg       problemgen.Config
	problem   problemgen.Problem
	timeline  []string
	reveal    int
	input     []rune
	deck      []catalog.Country
	served    int
	result    *Result
	tracker   score.Tracker
	summary   *score.Summary
	startedAt time.Time
	revealAt  time.Time
	answerAt  time.Time
}

// New creates an idle Machine.
func New(opts Options) *Machine {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Generator == nil {
		opts.Generator = problemgen.New(nil)
	}
	return &Machine{
		clock:     opts.Clock,
		gen:       opts.Generator,
		catalog:   opts.Catalog,
		observers: opts.Observers,
		phase:     PhaseIdle,
	}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Start begins a fresh session. It is accepted from Idle and Result; any
// error leaves the machine exactly as it was.
func (m *Machine) Start(cfg problemgen.Config) error {
	if m.phase != PhaseIdle && m.phase != PhaseResult {
		return ErrNotAccepting
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var deck []catalog.Country
	if cfg.Kind == problemgen.KindFlags {
		cat, err := m.countries()
		if err != nil {
			return err
		}
		n := cfg.ProblemCount
		if n == 0 || n > cat.Len() {
			n = cat.Len()
		}
		deck, err = m.gen.DrawCountries(cat.Countries(), n)
		if err != nil {
			return err
		}
		cfg.ProblemCount = n
	}

	p, err := m.generate(cfg, deck, 0)
	if err != nil {
		return err
	}

	if m.phase == PhaseResult && m.tracker.Attempts() > 0 {
		sum := m.summarize()
		info := m.info()
		for _, o := range m.observers {
			o.SessionFinished(info, sum, EndRestart)
		}
	}

	now := m.clock.Now()
	m.id = uuid.NewString()
	m.cfg = cfg
	m.deck = deck
	m.served = 0
	m.result = nil
	m.summary = nil
	m.tracker.Reset()
	m.startedAt = now
	m.present(p, now)

	info := m.info()
	for _, o := range m.observers {
		o.SessionStarted(info)
	}
	return nil
}

// Tick advances the reveal by one step. Ticks outside Displaying are stale
// and return ErrNotAccepting.
func (m *Machine) Tick() error {
	if m.phase != PhaseDisplaying {
		return ErrNotAccepting
	}
	now := m.clock.Now()
	if now.Sub(m.revealAt) < m.cfg.RevealInterval {
		return ErrTickTooEarly
	}

	m.reveal++
	m.revealAt = now
	if m.reveal >= len(m.timeline) {
		m.awaitInput(now)
	}
	return nil
}

// AppendDigit adds one key to the collected answer. Arithmetic accepts
// digits, one decimal point and a leading minus sign. Sequences accept
// digits and grade as soon as the input is complete.
func (m *Machine) AppendDigit(r rune) error {
	if m.phase != PhaseAwaitingInput {
		return ErrNotAccepting
	}
	key, ok := normalizeKey(r)
	if !ok {
		return ErrInvalidInput
	}

	switch m.problem.Kind {
	case problemgen.KindArithmetic:
		if !m.acceptsArithmeticKey(key) {
			return ErrInvalidInput
		}
		m.input = append(m.input, key)
		return nil

	case problemgen.KindSequence:
		if key < '0' || key > '9' {
			return ErrInvalidInput
		}
		m.input = append(m.input, key)
		if len(m.input) == m.problem.AnswerLength() {
			return m.grade()
		}
		return nil
	}
	return ErrNotAccepting
}

func (m *Machine) acceptsArithmeticKey(key rune) bool {
	if len(m.input) >= MaxArithmeticInput {
		return false
	}
	switch {
	case key >= '0' && key <= '9':
		return true
	case key == '-':
		return len(m.input) == 0
	case key == '.':
		for _, r := range m.input {
			if r == '.' {
				return false
			}
		}
		return true
	}
	return false
}

// Backspace removes the last collected key.
func (m *Machine) Backspace() error {
	if m.phase != PhaseAwaitingInput || m.problem.Kind == problemgen.KindFlags {
		return ErrNotAccepting
	}
	if len(m.input) > 0 {
		m.input = m.input[:len(m.input)-1]
	}
	return nil
}

// SelectOption answers a flag question. Unknown labels are rejected without
// changing state.
func (m *Machine) SelectOption(label string) error {
	if m.phase != PhaseAwaitingInput || m.problem.Kind != problemgen.KindFlags {
		return ErrNotAccepting
	}
	for _, o := range m.problem.Options {
		if o == label {
			m.input = []rune(label)
			return m.grade()
		}
	}
	return ErrUnknownOption
}

// Submit grades the collected input. A sequence answer that is still
// incomplete is left alone; flag questions are answered by SelectOption.
func (m *Machine) Submit() error {
	if m.phase != PhaseAwaitingInput {
		return ErrNotAccepting
	}
	switch m.problem.Kind {
	case problemgen.KindArithmetic:
		return m.grade()
	case problemgen.KindSequence:
		if len(m.input) < m.problem.AnswerLength() {
			return nil
		}
		return m.grade()
	}
	return ErrNotAccepting
}

// NextProblem moves on from Result. When the configured problem count has
// been served the session finishes and a summary becomes available.
func (m *Machine) NextProblem() error {
	if m.phase != PhaseResult {
		return ErrNotAccepting
	}

	if m.cfg.ProblemCount > 0 && m.served >= m.cfg.ProblemCount {
		m.finish(EndExhausted)
		return nil
	}

	p, err := m.generate(m.cfg, m.deck, m.served)
	if err != nil {
		return err
	}
	m.result = nil
	m.present(p, m.clock.Now())
	return nil
}

// Reset discards the session and its history together. A session with at
// least one answer is reported to observers as finished.
func (m *Machine) Reset() error {
	if m.phase != PhaseIdle && m.tracker.Attempts() > 0 {
		sum := m.summarize()
		info := m.info()
		for _, o := range m.observers {
			o.SessionFinished(info, sum, EndReset)
		}
	}

	m.id = ""
	m.phase = PhaseIdle
	m.cfg = problemgen.Config{}
	m.problem = problemgen.Problem{}
	m.timeline = nil
	m.reveal = 0
	m.input = nil
	m.deck = nil
	m.served = 0
	m.result = nil
	m.summary = nil
	m.tracker.Reset()
	m.startedAt = time.Time{}
	m.revealAt = time.Time{}
	m.answerAt = time.Time{}
	return nil
}

// grade checks the collected input. On error nothing changes and the
// machine stays in AwaitingInput.
func (m *Machine) grade() error {
	m.phase = PhaseGrading
	submitted := string(m.input)

	var correct bool
	switch m.problem.Kind {
	case problemgen.KindArithmetic:
		ok, _, err := problemgen.CheckArithmetic(submitted, m.problem)
		if err != nil {
			m.phase = PhaseAwaitingInput
			return err
		}
		correct = ok
	case problemgen.KindSequence:
		digits := make([]int, len(m.input))
		for i, r := range m.input {
			digits[i] = int(r - '0')
		}
		correct = problemgen.CheckSequence(digits, m.problem.Digits)
	case problemgen.KindFlags:
		correct = problemgen.CheckMultipleChoice(submitted, m.problem.Country.Name)
	}

	now := m.clock.Now()
	rec := score.AnswerRecord{
		Kind:      m.problem.Kind,
		Prompt:    m.problem.Prompt(),
		Expected:  m.problem.Answer(),
		Submitted: submitted,
		Correct:   correct,
		Elapsed:   now.Sub(m.answerAt),
		AnswerAt:  now,
	}
	m.tracker.Record(rec)
	m.served++
	m.result = &Result{
		Correct:   rec.Correct,
		Elapsed:   rec.Elapsed,
		Expected:  rec.Expected,
		Submitted: rec.Submitted,
	}
	m.phase = PhaseResult

	info := m.info()
	for _, o := range m.observers {
		o.AnswerGraded(info, rec)
	}
	return nil
}

func (m *Machine) finish(reason EndReason) {
	sum := m.summarize()
	info := m.info()

	m.phase = PhaseIdle
	m.problem = problemgen.Problem{}
	m.timeline = nil
	m.reveal = 0
	m.input = nil
	m.result = nil
	m.summary = &sum

	for _, o := range m.observers {
		o.SessionFinished(info, sum, reason)
	}
}

// summarize closes out the tracker. Only the flag quiz earns a rank.
func (m *Machine) summarize() score.Summary {
	sum := m.tracker.Summarize(m.clock.Since(m.startedAt))
	if m.cfg.Kind == problemgen.KindFlags {
		sum.Rank = score.RankFor(sum.Accuracy)
	}
	return sum
}

// present makes p the active problem and starts its reveal. Problems with
// an empty timeline go straight to AwaitingInput.
func (m *Machine) present(p problemgen.Problem, now time.Time) {
	m.problem = p
	m.timeline = problemgen.Timeline(p)
	m.reveal = 0
	m.input = nil
	m.revealAt = now
	if len(m.timeline) == 0 {
		m.awaitInput(now)
		return
	}
	m.phase = PhaseDisplaying
}

func (m *Machine) awaitInput(now time.Time) {
	m.phase = PhaseAwaitingInput
	m.answerAt = now
}

// generate builds problem index of the session. Flag questions fall back to
// fewer options when the catalog is too small for the configured count.
func (m *Machine) generate(cfg problemgen.Config, deck []catalog.Country, index int) (problemgen.Problem, error) {
	if cfg.Kind != problemgen.KindFlags {
		return m.gen.Generate(cfg, catalog.Country{}, nil)
	}

	cat, err := m.countries()
	if err != nil {
		return problemgen.Problem{}, err
	}
	if index >= len(deck) {
		return problemgen.Problem{}, &problemgen.InsufficientPoolError{Need: index + 1, Have: len(deck)}
	}
	pool := cat.Names()
	for {
		p, err := m.gen.Generate(cfg, deck[index], pool)
		var perr *problemgen.InsufficientPoolError
		if errors.As(err, &perr) && cfg.OptionCount > problemgen.MinOptionCount {
			cfg.OptionCount = max(perr.Have+1, problemgen.MinOptionCount)
			continue
		}
		return p, err
	}
}

func (m *Machine) countries() (*catalog.Catalog, error) {
	if m.catalog != nil {
		return m.catalog, nil
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	m.catalog = cat
	return cat, nil
}

func (m *Machine) info() Info {
	return Info{ID: m.id, Config: m.cfg, StartedAt: m.startedAt}
}

// normalizeKey folds full-width digits and signs to ASCII.
func normalizeKey(r rune) (rune, bool) {
	s := problemgen.NormalizeInput(string(r))
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	key, _ := utf8.DecodeRuneInString(s)
	return key, true
}
