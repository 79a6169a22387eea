package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/store"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

const arcadeTitleFull = `███████╗██╗      █████╗ ███████╗██╗  ██╗
██╔════╝██║     ██╔══██╗██╔════╝██║  ██║
█████╗  ██║     ███████║███████╗███████║
██╔══╝  ██║     ██╔══██║╚════██║██╔══██║
██║     ███████╗██║  ██║███████║██║  ██║
╚═╝     ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
              Q · U · I · Z`

const arcadeTitleCompact = "F · L · A · S · H · Q · U · I · Z"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders per-drill accuracy in a double-bordered box.
func renderStatsBar(stats []store.DrillStat, cw int, compact bool) string {
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	styles := map[string]lipgloss.Style{
		string(problemgen.KindArithmetic): lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
		string(problemgen.KindSequence):   lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		string(problemgen.KindFlags):      lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true),
	}
	icons := map[string]string{
		string(problemgen.KindArithmetic): "±",
		string(problemgen.KindSequence):   "#",
		string(problemgen.KindFlags):      "⚑",
	}

	var parts []string
	for _, st := range stats {
		style, ok := styles[st.Drill]
		if !ok {
			continue
		}
		if compact {
			parts = append(parts, style.Render(fmt.Sprintf("%s%.0f%%", icons[st.Drill], st.Accuracy())))
		} else {
			parts = append(parts, style.Render(fmt.Sprintf("%s %.0f%% OF %d", icons[st.Drill], st.Accuracy(), st.Answers)))
		}
	}

	text := dimStyle.Render("NO DRILLS PLAYED YET")
	if len(parts) > 0 {
		sep := "  "
		if compact {
			sep = " "
		}
		text = strings.Join(parts, sep)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
