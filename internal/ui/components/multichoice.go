package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/ui/theme"
)

// MultiChoice is a cursor over a fixed list of answer labels. It only moves
// the cursor; choosing is left to the owner so the session machine stays
// the single source of truth for grading.
type MultiChoice struct {
	Options  []string
	Selected int
}

// NewMultiChoice creates a selector over options with the cursor on the first.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: append([]string(nil), options...)}
}

// Update handles cursor movement.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}
	return m, nil
}

// Current returns the label under the cursor.
func (m MultiChoice) Current() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Shortcut maps a number key ("1".."9") to its label.
func (m MultiChoice) Shortcut(key string) (string, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(m.Options) {
		return "", false
	}
	return m.Options[n-1], true
}

// View renders the options. Once answered, the correct label is shown in
// green and a wrong choice in red.
func (m MultiChoice) View(answered bool, chosen, correct string) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !answered {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case answered && opt == correct:
			style = theme.Correct
		case answered && opt == chosen:
			style = theme.Incorrect
		case answered:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
