package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/problemgen"
)

var drillKinds = []string{
	string(problemgen.KindArithmetic),
	string(problemgen.KindSequence),
	string(problemgen.KindFlags),
}

var playCmd = &cobra.Command{
	Use:       "play [arithmetic|sequence|flags]",
	Short:     "Start the TUI, optionally on a drill's setup screen",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: drillKinds,
	RunE: func(cmd *cobra.Command, args []string) error {
		var start problemgen.Kind
		if len(args) == 1 {
			start = problemgen.Kind(args[0])
		}
		return runApp(cmd, start)
	},
}

func parseKind(s string) (problemgen.Kind, error) {
	for _, k := range drillKinds {
		if s == k {
			return problemgen.Kind(s), nil
		}
	}
	return "", fmt.Errorf("unknown drill %q: must be one of arithmetic, sequence or flags", s)
}
