package cmd

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/flashquiz/internal/server"
	"github.com/abhisek/flashquiz/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve drills over a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		logger := newLogger(os.Stdout, true)

		st, dbPath, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		logger.Info("connected to sqlite", "path", dbPath)

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		journal := session.NewJournal(st.EventRepo(), logger)
		registry := server.NewRegistry(machineFactory(cat, journal))
		defer registry.Close()

		srv := server.New(cfg.Server.Addr, logger, server.Deps{
			Registry: registry,
			Catalog:  cat,
			FlagDir:  cfg.Catalog.FlagDir,
			Defaults: cfg.Drills.For,
			Journal:  st.EventRepo(),
			Checks:   map[string]server.Checker{"sqlite": dbChecker{st.DB()}},
		}).WithShutdownTimeout(cfg.Server.ShutdownTimeout)

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			logger.Info("starting http server", "addr", cfg.Server.Addr)
			return srv.Run(gctx)
		})

		g.Go(func() error {
			return registry.RunSweeper(gctx, cfg.Server.SessionTTL, logger)
		})

		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down http server")
			return srv.Shutdown(context.Background())
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
}

// dbChecker adapts *sql.DB to server.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }
