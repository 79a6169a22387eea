package server

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/flashquiz/internal/catalog"
	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/store"
)

// Checker reports whether a dependency is healthy.
type Checker interface {
	Check(ctx context.Context) error
}

// Deps are the collaborators the HTTP handlers need. Zero fields get
// defaults.
type Deps struct {
	Registry *Registry
	Catalog  *catalog.Catalog
	FlagDir  string

	// Defaults supplies the starting configuration a request overrides.
	Defaults func(problemgen.Kind) problemgen.Config

	// Journal backs /api/stats. The route is omitted when nil.
	Journal store.EventRepo

	Checks map[string]Checker
}

func (d Deps) withDefaults() Deps {
	if d.Registry == nil {
		d.Registry = NewRegistry(nil)
	}
	if d.Catalog == nil {
		if cat, err := catalog.Default(); err == nil {
			d.Catalog = cat
		}
	}
	if d.Defaults == nil {
		d.Defaults = problemgen.DefaultConfig
	}
	return d
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	reg := deps.Registry

	r.Get("/healthz", handleHealth(logger, deps.Checks))

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handleCreateSession(reg, deps.Defaults))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handleGetSession(reg))
			r.Delete("/", handleDeleteSession(reg))
			r.Post("/start", handleEvent(reg, decodeStart(deps.Defaults)))
			r.Post("/tick", handleEvent(reg, constEvent(session.TickEvent{})))
			r.Post("/digits", handleEvent(reg, decodeDigit))
			r.Post("/backspace", handleEvent(reg, constEvent(session.BackspaceEvent{})))
			r.Post("/options", handleEvent(reg, decodeOption))
			r.Post("/submit", handleEvent(reg, constEvent(session.SubmitEvent{})))
			r.Post("/next", handleEvent(reg, constEvent(session.NextEvent{})))
			r.Post("/reset", handleEvent(reg, constEvent(session.ResetEvent{})))
		})
	})

	r.Get("/api/countries", handleListCountries(deps.Catalog))
	r.Get("/api/countries/{code}/flag", handleFlagAsset(deps.Catalog, deps.FlagDir))

	if deps.Journal != nil {
		r.Get("/api/stats", handleStats(logger, deps.Journal))
	}
}
