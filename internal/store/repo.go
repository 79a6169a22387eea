package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int    // max results (0 = unlimited)
	Drill string // only this drill kind ("" = all)
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	Drill           string
	Action          string // "start" or "end"
	EndReason       string
	QuestionsServed int
	CorrectAnswers  int
	Duration        time.Duration
	Rank            string
	Config          string // JSON, on start only
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID string
	Drill     string
	Prompt    string
	Expected  string
	Submitted string
	Correct   bool
	Elapsed   time.Duration
}

// SessionSummaryRecord is a finished session as read back from the journal.
type SessionSummaryRecord struct {
	SessionID       string
	Drill           string
	Timestamp       time.Time
	EndReason       string
	QuestionsServed int
	CorrectAnswers  int
	Duration        time.Duration
	Rank            string
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// DrillStat aggregates every stored answer for one drill.
type DrillStat struct {
	Drill      string
	Sessions   int
	Answers    int
	Correct    int
	AvgElapsed time.Duration
}

// Accuracy returns the percentage of correct answers, 0 when there are none.
func (d DrillStat) Accuracy() float64 {
	if d.Answers == 0 {
		return 0
	}
	return 100 * float64(d.Correct) / float64(d.Answers)
}

// EventRepo provides append and query access to the session journal.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a graded answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// SessionAnswers returns the answers of one session in order.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// DrillStats aggregates answers per drill.
	DrillStats(ctx context.Context) ([]DrillStat, error)
}
