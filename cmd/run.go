package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/app"
	"github.com/abhisek/flashquiz/internal/catalog"
	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/screens/home"
	"github.com/abhisek/flashquiz/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, start problemgen.Kind) error {
	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	st, dbPath, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info("journal opened", "path", dbPath)

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	journal := session.NewJournal(st.EventRepo(), logger)
	return app.Run(app.Options{
		Deps: home.Deps{
			Drills:     cfg.Drills,
			NewMachine: machineFactory(cat, journal),
			Journal:    st.EventRepo(),
		},
		Start: start,
	})
}

// tuiLogger writes text logs to the configured file. The terminal belongs
// to the TUI, so without a file logs are discarded.
func tuiLogger() (*slog.Logger, func(), error) {
	if cfg.Log.File == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, false), func() { f.Close() }, nil
}

func newLogger(w io.Writer, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadCatalog reads the configured catalog file or the built-in one.
func loadCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// machineFactory builds session machines that share the catalog and
// report to observers. Each machine gets its own generator.
func machineFactory(cat *catalog.Catalog, observers ...session.Observer) func() *session.Machine {
	return func() *session.Machine {
		return session.New(session.Options{
			Generator: problemgen.New(nil),
			Catalog:   cat,
			Observers: observers,
		})
	}
}
