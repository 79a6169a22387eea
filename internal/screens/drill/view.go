package drill

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return center(width, height, theme.Incorrect.Render("Error: "+s.errMsg)+"\n\n"+
			theme.Hint.Render("Press any key to return to the menu"))
	}
	if s.confirmQuit {
		return center(width, height, components.ArcadeCard(
			theme.Body.Bold(true).Render("End this drill?")+"\n\n"+
				theme.Hint.Render("Progress so far is discarded"), 40))
	}

	cw := components.ContentWidth(width)
	var sections []string
	sections = append(sections, s.renderProgress(cw))

	switch s.snap.Phase {
	case session.PhaseDisplaying:
		sections = append(sections, s.renderFlash(cw))
	case session.PhaseAwaitingInput:
		sections = append(sections, s.renderPrompt(cw))
	case session.PhaseResult:
		sections = append(sections, s.renderResult(cw))
	}

	if s.notice != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
	}
	return center(width, height, strings.Join(sections, "\n\n"))
}

func (s *Screen) renderProgress(cw int) string {
	label := fmt.Sprintf("Problem %d", s.snap.Served+1)
	if s.snap.Total > 0 {
		label = fmt.Sprintf("Problem %d/%d", min(s.snap.Served+1, s.snap.Total), s.snap.Total)
	}
	if s.snap.Total == 0 {
		return theme.Subtitle.Render(label)
	}
	return components.NewProgressBar(label, float64(s.snap.Served)/float64(s.snap.Total), false, cw).View()
}

func (s *Screen) renderFlash(cw int) string {
	token := s.snap.CurrentToken
	if token == "" {
		token = " "
	}
	step := fmt.Sprintf("%d / %d", s.snap.RevealIndex+1, len(s.snap.Timeline))
	return components.ArcadeCard(theme.Flash.Render(token), cw) + "\n" + theme.Hint.Render(step)
}

func (s *Screen) renderPrompt(cw int) string {
	p := s.snap.Problem
	if p == nil {
		return ""
	}

	switch p.Kind {
	case problemgen.KindFlags:
		flag := theme.Flash.Render(p.Country.Emoji())
		return components.ArcadeCard(flag, cw) + "\n\n" +
			theme.Body.Bold(true).Render("Which country is this?") + "\n\n" +
			s.choices.View(false, "", "")

	case problemgen.KindSequence:
		typed := make([]string, p.AnswerLength())
		for i := range typed {
			typed[i] = "_"
		}
		for i, r := range s.snap.Input {
			if i < len(typed) {
				typed[i] = string(r)
			}
		}
		return theme.Body.Bold(true).Render(fmt.Sprintf("Type the %d digits you saw", len(typed))) + "\n\n" +
			components.ArcadeCard(theme.Flash.Render(strings.Join(typed, " ")), cw)
	}

	return theme.Body.Bold(true).Render(fmt.Sprintf("%d numbers, operator %s. Your answer?", len(p.Operands), p.Operator)) + "\n\n" +
		components.ArcadeCard(theme.Flash.Render(s.snap.Input+"▏"), cw)
}

func (s *Screen) renderResult(cw int) string {
	r := s.snap.LastResult
	p := s.snap.Problem
	if r == nil || p == nil {
		return ""
	}

	verdict := theme.Correct.Render("✓ Correct!")
	if !r.Correct {
		verdict = theme.Incorrect.Render("✗ Not quite")
	}

	var body string
	switch p.Kind {
	case problemgen.KindFlags:
		body = theme.Flash.Render(p.Country.Emoji()+"  "+p.Country.Name) + "\n\n" +
			s.choices.View(true, r.Submitted, r.Expected)
	case problemgen.KindArithmetic:
		body = theme.Body.Render(p.Prompt()+" = "+r.Expected) + "\n" +
			theme.Hint.Render("You answered "+r.Submitted)
	default:
		body = theme.Body.Render("Sequence: "+r.Expected) + "\n" +
			theme.Hint.Render("You typed "+spaced(r.Submitted))
	}

	return components.ArcadeCard(verdict+"\n\n"+body, cw) + "\n" +
		theme.Hint.Render("Answered in "+formatElapsed(r.Elapsed))
}

func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func center(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
