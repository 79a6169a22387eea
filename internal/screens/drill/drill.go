// Package drill is the screen that runs one quiz session: it paces the
// reveal with ticks, forwards keys to the session machine and hands the
// final summary to the summary screen.
package drill

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/summary"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

// tickMsg drives the reveal. gen ties it to the tick that scheduled it so
// ticks left over from an earlier problem are dropped.
type tickMsg struct{ gen int }

// retryDelay is how long to wait after a tick arrived too early.
const retryDelay = problemgen.MinRevealInterval

// Screen runs a drill on a session machine.
type Screen struct {
	m   *session.Machine
	cfg problemgen.Config

	snap    session.Snapshot
	choices components.MultiChoice
	gen     int

	confirmQuit bool
	notice      string
	errMsg      string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)
var _ screen.BackHandler = (*Screen)(nil)

// New creates a drill screen that starts cfg on m when initialized.
func New(m *session.Machine, cfg problemgen.Config) *Screen {
	return &Screen{m: m, cfg: cfg}
}

func (s *Screen) Init() tea.Cmd {
	if err := s.m.Start(s.cfg); err != nil {
		s.errMsg = err.Error()
		s.snap = s.m.Snapshot()
		return nil
	}
	return s.refresh()
}

func (s *Screen) Title() string {
	switch s.cfg.Kind {
	case problemgen.KindSequence:
		return "Flash Sequence"
	case problemgen.KindFlags:
		return "Flag Quiz"
	}
	return "Flash Arithmetic"
}

func (s *Screen) HandlesBack() bool { return true }

// Status shows the running score in the header.
func (s *Screen) Status() string {
	if s.snap.Attempts == 0 {
		return ""
	}
	return fmt.Sprintf("✓ %d/%d  %.0f%%", s.snap.Correct, s.snap.Attempts, s.snap.Accuracy)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.confirmQuit {
		return hints(keys.Confirm, keys.Cancel)
	}
	switch s.snap.Phase {
	case session.PhaseAwaitingInput:
		if s.cfg.Kind == problemgen.KindFlags {
			return hints(keys.Move, keys.Choose, keys.Quit)
		}
		return hints(keys.Submit, keys.Backspace, keys.Quit)
	case session.PhaseResult:
		return hints(keys.Next, keys.Quit)
	}
	return hints(keys.Quit)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s, s.handleTick(msg)
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

// handleTick advances the reveal. The reveal holds while the quit prompt
// is open and resumes on Cancel.
func (s *Screen) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != s.gen || s.confirmQuit {
		return nil
	}
	err := s.m.Tick()
	switch {
	case errors.Is(err, session.ErrTickTooEarly):
		return s.schedule(retryDelay)
	case err != nil:
		return nil
	}
	return s.refresh()
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.errMsg != "" {
		return popToRoot
	}

	if s.confirmQuit {
		switch {
		case key.Matches(msg, keys.Confirm):
			s.confirmQuit = false
			s.m.Reset()
			s.gen++
			return popToRoot
		case key.Matches(msg, keys.Cancel):
			s.confirmQuit = false
			if s.snap.Phase == session.PhaseDisplaying {
				return s.schedule(s.snap.Config.RevealInterval)
			}
		}
		return nil
	}

	if key.Matches(msg, keys.Quit) {
		s.confirmQuit = true
		return nil
	}

	s.notice = ""
	switch s.snap.Phase {
	case session.PhaseAwaitingInput:
		if s.cfg.Kind == problemgen.KindFlags {
			return s.handleChoiceKey(msg)
		}
		return s.handleInputKey(msg)
	case session.PhaseResult:
		if key.Matches(msg, keys.Next) {
			return s.next()
		}
	}
	return nil
}

func (s *Screen) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Submit):
		s.apply(s.m.Submit())
	case key.Matches(msg, keys.Backspace):
		s.apply(s.m.Backspace())
	default:
		text := msg.String()
		if utf8.RuneCountInString(text) != 1 {
			return nil
		}
		r, _ := utf8.DecodeRuneInString(text)
		s.apply(s.m.AppendDigit(r))
	}
	return s.refresh()
}

func (s *Screen) handleChoiceKey(msg tea.KeyMsg) tea.Cmd {
	if label, ok := s.choices.Shortcut(msg.String()); ok {
		s.apply(s.m.SelectOption(label))
		return s.refresh()
	}
	if key.Matches(msg, keys.Choose) {
		s.apply(s.m.SelectOption(s.choices.Current()))
		return s.refresh()
	}
	if key.Matches(msg, keys.Move) {
		s.choices, _ = s.choices.Update(msg)
	}
	return nil
}

// apply turns rejected input into a short notice. Rejections never change
// the machine state.
func (s *Screen) apply(err error) {
	var parseErr *problemgen.ParseError
	switch {
	case err == nil:
	case errors.As(err, &parseErr):
		s.notice = "Not a number, try again"
	case errors.Is(err, session.ErrInvalidInput):
		if s.cfg.Kind == problemgen.KindSequence {
			s.notice = "Digits only"
		} else {
			s.notice = "Digits, one point and a leading minus only"
		}
	}
}

func (s *Screen) next() tea.Cmd {
	if err := s.m.NextProblem(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	snap := s.m.Snapshot()
	if snap.Phase == session.PhaseIdle && snap.Summary != nil {
		s.snap = snap
		s.gen++
		sum := summary.New(*snap.Summary, s.cfg, func() screen.Screen {
			return New(s.m, s.cfg)
		})
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
	}
	return s.refresh()
}

// refresh takes a new snapshot and schedules the next reveal step when the
// machine is displaying.
func (s *Screen) refresh() tea.Cmd {
	prev := s.snap
	s.snap = s.m.Snapshot()

	if s.snap.Problem != nil && s.snap.Problem.Kind == problemgen.KindFlags &&
		(prev.Problem == nil || prev.Served != s.snap.Served || prev.Phase == session.PhaseResult) {
		s.choices = components.NewMultiChoice(s.snap.Problem.Options)
	}

	if s.snap.Phase == session.PhaseDisplaying {
		return s.schedule(s.snap.Config.RevealInterval)
	}
	return nil
}

func (s *Screen) schedule(d time.Duration) tea.Cmd {
	s.gen++
	gen := s.gen
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func popToRoot() tea.Msg { return router.PopToRootMsg{} }
