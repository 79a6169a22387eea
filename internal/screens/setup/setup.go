// Package setup is the pre-drill screen where a drill's settings are
// adjusted before it starts.
package setup

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/drill"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Start key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Setting")),
	Down:  key.NewBinding(key.WithKeys("down", "j")),
	Left:  key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←→", "Adjust")),
	Right: key.NewBinding(key.WithKeys("right", "l", "+")),
	Start: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Start")),
}

// SetupScreen edits a drill configuration.
type SetupScreen struct {
	cfg        problemgen.Config
	fields     []field
	cursor     int
	newMachine func() *session.Machine
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen starting from cfg. newMachine supplies the
// session machine the drill runs on.
func New(cfg problemgen.Config, newMachine func() *session.Machine) *SetupScreen {
	return &SetupScreen{
		cfg:        cfg.Normalize(),
		fields:     fieldsFor(cfg.Kind),
		newMachine: newMachine,
	}
}

func (s *SetupScreen) Init() tea.Cmd { return nil }

func (s *SetupScreen) Title() string {
	switch s.cfg.Kind {
	case problemgen.KindSequence:
		return "Flash Sequence Setup"
	case problemgen.KindFlags:
		return "Flag Quiz Setup"
	}
	return "Flash Arithmetic Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	var out []layout.KeyHint
	for _, b := range []key.Binding{keys.Up, keys.Left, keys.Start} {
		out = append(out, layout.KeyHint{Key: b.Help().Key, Description: b.Help().Desc})
	}
	return append(out, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Config returns the configuration as currently edited.
func (s *SetupScreen) Config() problemgen.Config { return s.cfg }

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		s.cursor = (s.cursor - 1 + len(s.fields)) % len(s.fields)
	case key.Matches(kmsg, keys.Down):
		s.cursor = (s.cursor + 1) % len(s.fields)
	case key.Matches(kmsg, keys.Left):
		s.fields[s.cursor].adjust(&s.cfg, -1)
		s.errMsg = ""
	case key.Matches(kmsg, keys.Right):
		s.fields[s.cursor].adjust(&s.cfg, 1)
		s.errMsg = ""
	case key.Matches(kmsg, keys.Start):
		return s, s.start()
	}
	return s, nil
}

func (s *SetupScreen) start() tea.Cmd {
	cfg := s.cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		var cerr *problemgen.ConfigurationError
		if errors.As(err, &cerr) {
			s.errMsg = fmt.Sprintf("%s %s", cerr.Field, cerr.Reason)
		} else {
			s.errMsg = err.Error()
		}
		return nil
	}
	next := drill.New(s.newMachine(), cfg)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var rows []string
	for i, f := range s.fields {
		label := fmt.Sprintf("%-16s", f.label)
		value := fmt.Sprintf("◂ %s ▸", f.value(s.cfg))
		if i == s.cursor {
			rows = append(rows, theme.Selected.Render("▸ "+label+value))
		} else {
			rows = append(rows, theme.Unselected.Render("  "+label+value))
		}
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.Title()))
	b.WriteString("\n\n")
	b.WriteString(components.ArcadeCard(strings.Join(rows, "\n"), min(cw, 48)))
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
