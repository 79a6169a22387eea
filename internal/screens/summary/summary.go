package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/score"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

// maxRecords caps the answer list so the summary fits a small terminal.
const maxRecords = 10

// SummaryScreen displays the result of a finished drill.
type SummaryScreen struct {
	summary score.Summary
	cfg     problemgen.Config
	retry   func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. retry builds the screen that replays the
// same configuration; it may be nil.
func New(sum score.Summary, cfg problemgen.Config, retry func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{summary: sum, cfg: cfg, retry: retry}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Menu"}}
	if s.retry != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "r", "R":
			if s.retry != nil {
				next := s.retry()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	centered := func(style lipgloss.Style, text string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(style.Render(text))
	}

	var b strings.Builder
	b.WriteString(centered(theme.Title, "Drill complete!"))
	b.WriteString("\n\n")

	if s.cfg.Kind == problemgen.KindFlags {
		b.WriteString(centered(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), "🏅 "+sum.Rank))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(lipgloss.NewStyle().Foreground(theme.TextDim),
		"Duration: "+layout.FormatDuration(sum.Duration)))
	b.WriteString("\n\n")

	b.WriteString(centered(theme.Body, fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.1f%%",
		sum.Questions, sum.Correct, sum.Accuracy)))
	b.WriteString("\n")

	timing := "Average: -        Fastest: -"
	if sum.HasTiming {
		timing = fmt.Sprintf("Average: %.2fs        Fastest: %.2fs", sum.Average.Seconds(), sum.Fastest.Seconds())
	}
	b.WriteString(centered(theme.Body, timing))
	b.WriteString("\n\n")

	if s.cfg.Kind == problemgen.KindFlags {
		b.WriteString(centered(lipgloss.NewStyle().Foreground(theme.TextDim), "Share your result"))
		b.WriteString("\n")
		share := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 2).
			Render(strings.TrimRight(score.ShareText(sum), "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, share))
		b.WriteString("\n\n")
	}

	if len(sum.Records) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(centered(lipgloss.NewStyle().Foreground(theme.TextDim), "Answers"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	records := sum.Records
	if len(records) > maxRecords {
		records = records[len(records)-maxRecords:]
	}
	for _, rec := range records {
		mark, style := "✓", theme.Correct
		if !rec.Correct {
			mark, style = "✗", theme.Incorrect
		}
		line := fmt.Sprintf("%s  %s  →  %s", mark, rec.Prompt, rec.Expected)
		if !rec.Correct {
			line += fmt.Sprintf("  (you: %s)", rec.Submitted)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
