package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/config"
	"github.com/abhisek/flashquiz/internal/store"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "flashquiz",
	Short: "Flash arithmetic, number sequence and flag quiz drills",
	Long: `flashquiz is a terminal trainer for mental arithmetic.

Numbers flash one at a time and you answer once the last one is gone.
The same drills are available over HTTP with "flashquiz serve".`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/flashquiz/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides FLASHQUIZ_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-file", "", "Write TUI logs to this file")
	pf.String("catalog", "", "Country catalog JSON file (default: built in)")
	pf.String("flag-dir", "", "Directory of local flag images")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("config")
	c, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	return nil
}

// resolveDBPath returns the database path using --db or FLASHQUIZ_DB
// (through the config), then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the journal database.
func openStore() (*store.Store, string, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, "", fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open store: %w", err)
	}
	return st, dbPath, nil
}
