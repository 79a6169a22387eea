package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/score"
	"github.com/abhisek/flashquiz/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play a drill in plain line mode (no database)",
	Long: `Play a short drill without the TUI.

This is a stateless tool: nothing is written to the journal. Useful for
trying settings or playing over a plain terminal.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("drill", "arithmetic", "Drill: arithmetic, sequence or flags")
	previewCmd.Flags().Int("count", 5, "Number of problems")
}

func runPreview(cmd *cobra.Command, args []string) error {
	drill, _ := cmd.Flags().GetString("drill")
	count, _ := cmd.Flags().GetInt("count")

	kind, err := parseKind(drill)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("invalid count %d: must be at least 1", count)
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	dc := cfg.Drills.For(kind)
	dc.ProblemCount = count
	m := machineFactory(cat)()
	if err := m.Start(dc); err != nil {
		return err
	}
	return playLines(m, bufio.NewScanner(os.Stdin), os.Stdout)
}

// clearLine returns the cursor to column zero and erases the line.
const clearLine = "\r\033[K"

// playLines drives m until it finishes, flashing tokens in place and
// reading one answer per line.
func playLines(m *session.Machine, in *bufio.Scanner, out io.Writer) error {
	for {
		snap := m.Snapshot()
		switch snap.Phase {
		case session.PhaseIdle:
			if s := snap.Summary; s != nil {
				fmt.Fprintf(out, "── Summary: %d/%d correct (%.0f%%) ──\n", s.Correct, s.Questions, s.Accuracy)
				if snap.Config.Kind == problemgen.KindFlags {
					fmt.Fprint(out, "\n"+score.ShareText(*s))
				}
			}
			return nil

		case session.PhaseDisplaying:
			fmt.Fprintf(out, "%s%s", clearLine, snap.CurrentToken)
			time.Sleep(snap.Config.RevealInterval)
			if err := m.Tick(); err != nil && !errors.Is(err, session.ErrTickTooEarly) {
				return err
			}
			if m.Phase() != session.PhaseDisplaying {
				fmt.Fprint(out, clearLine)
			}

		case session.PhaseAwaitingInput:
			fmt.Fprintf(out, "── Problem %d ──\n", snap.Served+1)
			if p := snap.Problem; p.Kind == problemgen.KindFlags {
				fmt.Fprintf(out, "%s  Which country?\n", p.Country.Emoji())
				for i, o := range p.Options {
					fmt.Fprintf(out, "  %d) %s\n", i+1, o)
				}
			}
			fmt.Fprint(out, "Your answer: ")
			if !in.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return m.Reset()
			}
			if err := answerLine(m, snap, strings.TrimSpace(in.Text())); err != nil {
				fmt.Fprintf(out, "%v, try again\n", err)
			}

		case session.PhaseResult:
			r := m.Snapshot().LastResult
			if r.Correct {
				fmt.Fprintf(out, "\033[32m✓ Correct!\033[0m (%.2fs)\n\n", r.Elapsed.Seconds())
			} else {
				fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n\n", r.Expected)
			}
			if err := m.NextProblem(); err != nil {
				return err
			}
		}
	}
}

// answerLine submits one typed line. Flag questions take either the option
// number or its label.
func answerLine(m *session.Machine, snap session.Snapshot, line string) error {
	if snap.Problem.Kind == problemgen.KindFlags {
		for i, o := range snap.Problem.Options {
			if line == fmt.Sprint(i+1) || strings.EqualFold(line, o) {
				return m.SelectOption(o)
			}
		}
		return session.ErrUnknownOption
	}

	for m.Snapshot().Input != "" {
		_ = m.Backspace()
	}
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		if err := m.AppendDigit(r); err != nil {
			return err
		}
		if m.Phase() != session.PhaseAwaitingInput {
			return nil
		}
	}
	return m.Submit()
}
