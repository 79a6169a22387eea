package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show drill statistics and recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		drill, _ := cmd.Flags().GetString("drill")
		if drill != "" {
			if _, err := parseKind(drill); err != nil {
				return err
			}
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.EventRepo()

		stats, err := repo.DrillStats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit, Drill: drill})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		if len(stats) == 0 {
			fmt.Println("No drills played yet.")
			return nil
		}

		fmt.Printf("%-12s  %8s  %8s  %8s  %9s\n", "Drill", "Sessions", "Answers", "Accuracy", "Avg time")
		fmt.Println(strings.Repeat("─", 53))
		for _, s := range stats {
			if drill != "" && s.Drill != drill {
				continue
			}
			fmt.Printf("%-12s  %8d  %8d  %7.1f%%  %8.2fs\n",
				s.Drill, s.Sessions, s.Answers, s.Accuracy(), s.AvgElapsed.Seconds())
		}

		if len(sessions) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Printf("%-19s  %-12s  %9s  %7s  %6s  %-10s  %s\n",
			"Finished", "Drill", "Questions", "Correct", "Time", "Reason", "Rank")
		fmt.Println(strings.Repeat("─", 90))
		for _, s := range sessions {
			fmt.Printf("%-19s  %-12s  %9d  %7d  %6s  %-10s  %s\n",
				s.Timestamp.Local().Format("2006-01-02 15:04:05"),
				s.Drill,
				s.QuestionsServed,
				s.CorrectAnswers,
				s.Duration.Round(1e9).String(),
				s.EndReason,
				s.Rank,
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 20, "Number of recent sessions to list")
	statsCmd.Flags().String("drill", "", "Only this drill: arithmetic, sequence or flags")
}
