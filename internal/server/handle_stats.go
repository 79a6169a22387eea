package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/abhisek/flashquiz/internal/store"
)

type DrillStatResponse struct {
	Drill        string  `json:"drill"`
	Sessions     int     `json:"sessions"`
	Answers      int     `json:"answers"`
	Correct      int     `json:"correct"`
	Accuracy     float64 `json:"accuracy"`
	AvgElapsedMS int64   `json:"avg_elapsed_ms"`
}

type SessionSummaryResponse struct {
	SessionID  string `json:"session_id"`
	Drill      string `json:"drill"`
	FinishedAt string `json:"finished_at"`
	EndReason  string `json:"end_reason"`
	Questions  int    `json:"questions"`
	Correct    int    `json:"correct"`
	DurationMS int64  `json:"duration_ms"`
	Rank       string `json:"rank,omitempty"`
}

type StatsResponse struct {
	Drills   []DrillStatResponse      `json:"drills"`
	Sessions []SessionSummaryResponse `json:"sessions"`
}

// handleStats reports per-drill aggregates and the most recent finished
// sessions. ?drill= filters the sessions, ?limit= caps them (default 20).
func handleStats(logger *slog.Logger, repo store.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := store.QueryOpts{Limit: 20, Drill: r.URL.Query().Get("drill")}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			opts.Limit = n
		}

		stats, err := repo.DrillStats(r.Context())
		if err != nil {
			logger.Error("query drill stats", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		sessions, err := repo.QuerySessionSummaries(r.Context(), opts)
		if err != nil {
			logger.Error("query session summaries", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := StatsResponse{
			Drills:   make([]DrillStatResponse, len(stats)),
			Sessions: make([]SessionSummaryResponse, len(sessions)),
		}
		for i, s := range stats {
			resp.Drills[i] = DrillStatResponse{
				Drill:        s.Drill,
				Sessions:     s.Sessions,
				Answers:      s.Answers,
				Correct:      s.Correct,
				Accuracy:     s.Accuracy(),
				AvgElapsedMS: s.AvgElapsed.Milliseconds(),
			}
		}
		for i, s := range sessions {
			resp.Sessions[i] = SessionSummaryResponse{
				SessionID:  s.SessionID,
				Drill:      s.Drill,
				FinishedAt: s.Timestamp.UTC().Format(time.RFC3339),
				EndReason:  s.EndReason,
				Questions:  s.QuestionsServed,
				Correct:    s.CorrectAnswers,
				DurationMS: s.Duration.Milliseconds(),
				Rank:       s.Rank,
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
