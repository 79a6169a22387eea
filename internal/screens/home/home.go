package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashquiz/internal/config"
	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/history"
	"github.com/abhisek/flashquiz/internal/screens/placeholder"
	"github.com/abhisek/flashquiz/internal/screens/setup"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/store"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

// Deps are what the home screen needs to launch drills and history.
type Deps struct {
	Drills     config.Drills
	NewMachine func() *session.Machine
	Journal    store.EventRepo // nil disables history and stats
}

type statsLoadedMsg struct {
	Stats []store.DrillStat
	Last  *store.SessionSummaryRecord
	Err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps          Deps
	menu          components.Menu
	menuLabels    []string
	stats         []store.DrillStat
	last          *store.SessionSummaryRecord
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ router.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.NewMachine == nil {
		deps.NewMachine = func() *session.Machine { return session.New(session.Options{}) }
	}

	menuLabels := []string{"FLASH ARITHMETIC", "FLASH SEQUENCE", "FLAG QUIZ", "HISTORY", "QUIT"}

	drill := func(kind problemgen.Kind) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(deps.Drills.For(kind), deps.NewMachine)}
			}
		}
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: drill(problemgen.KindArithmetic)},
		{Label: menuLabels[1], Action: drill(problemgen.KindSequence)},
		{Label: menuLabels[2], Action: drill(problemgen.KindFlags)},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			if deps.Journal == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("History", "History is off: no journal database is open.")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Journal)}
			}
		}},
		{Label: menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

// NewMachine returns the session machine factory drills run on.
func (h *HomeScreen) NewMachine() func() *session.Machine {
	return h.deps.NewMachine
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.Refresh()
}

// Refresh reloads the stats bar from the journal.
func (h *HomeScreen) Refresh() tea.Cmd {
	repo := h.deps.Journal
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := repo.DrillStats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		recent, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 1})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		msg := statsLoadedMsg{Stats: stats}
		if len(recent) > 0 {
			msg.Last = &recent[0]
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		// A broken journal leaves the bar empty rather than blocking the menu.
		if msg.Err == nil {
			h.stats = msg.Stats
			h.last = msg.Last
			h.mascotVariant = mascotFor(msg.Last)
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mascotFor picks the mascot mood from the most recent session.
func mascotFor(last *store.SessionSummaryRecord) MascotVariant {
	if last == nil || last.QuestionsServed == 0 {
		return MascotIdle
	}
	accuracy := 100 * float64(last.CorrectAnswers) / float64(last.QuestionsServed)
	switch {
	case accuracy >= 90:
		return MascotCelebrating
	case accuracy < 50:
		return MascotAlert
	}
	return MascotIdle
}
