package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/abhisek/flashquiz/internal/score"
	"github.com/abhisek/flashquiz/internal/store"
)

// journalTimeout bounds each journal write so a slow disk never stalls a
// transition for long.
const journalTimeout = 2 * time.Second

// Journal is an Observer that appends session and answer events to the
// event store. Write failures are logged and never fail the transition.
type Journal struct {
	repo   store.EventRepo
	logger *slog.Logger
}

// NewJournal creates a Journal writing to repo. A nil logger uses slog.Default.
func NewJournal(repo store.EventRepo, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{repo: repo, logger: logger}
}

func (j *Journal) SessionStarted(info Info) {
	cfg, err := json.Marshal(info.Config)
	if err != nil {
		j.logger.Warn("encode session config", "session_id", info.ID, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	err = j.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: info.ID,
		Drill:     string(info.Config.Kind),
		Action:    "start",
		Config:    string(cfg),
	})
	if err != nil {
		j.logger.Error("journal session start", "session_id", info.ID, "error", err)
	}
}

func (j *Journal) AnswerGraded(info Info, rec score.AnswerRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	err := j.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID: info.ID,
		Drill:     string(rec.Kind),
		Prompt:    rec.Prompt,
		Expected:  rec.Expected,
		Submitted: rec.Submitted,
		Correct:   rec.Correct,
		Elapsed:   rec.Elapsed,
	})
	if err != nil {
		j.logger.Error("journal answer", "session_id", info.ID, "error", err)
	}
}

func (j *Journal) SessionFinished(info Info, summary score.Summary, reason EndReason) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	err := j.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       info.ID,
		Drill:           string(info.Config.Kind),
		Action:          "end",
		EndReason:       string(reason),
		QuestionsServed: summary.Questions,
		CorrectAnswers:  summary.Correct,
		Duration:        summary.Duration,
		Rank:            summary.Rank,
	})
	if err != nil {
		j.logger.Error("journal session end", "session_id", info.ID, "error", err)
		return
	}
	j.logger.Info("session finished",
		"session_id", info.ID,
		"drill", info.Config.Kind,
		"reason", reason,
		"questions", summary.Questions,
		"accuracy", summary.Accuracy,
	)
}
