package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert("session_events").
		Columns("sequence", "timestamp", "session_id", "drill", "action", "end_reason",
			"questions_served", "correct_answers", "duration_ms", "rank", "config").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Drill, data.Action, data.EndReason,
			data.QuestionsServed, data.CorrectAnswers, data.Duration.Milliseconds(), data.Rank, data.Config).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert("answer_events").
		Columns("sequence", "timestamp", "session_id", "drill", "prompt", "expected",
			"submitted", "correct", "elapsed_ms").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Drill, data.Prompt, data.Expected,
			data.Submitted, data.Correct, data.Elapsed.Milliseconds()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().
		Select("session_id", "drill", "timestamp", "end_reason", "questions_served",
			"correct_answers", "duration_ms", "rank").
		From(entsql.Table("session_events")).
		Where(entsql.EQ("action", "end")).
		OrderBy(entsql.Desc("sequence"))
	if opts.Drill != "" {
		sel.Where(entsql.EQ("drill", opts.Drill))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec        SessionSummaryRecord
			reason     sql.NullString
			rank       sql.NullString
			durationMs int64
		)
		if err := rows.Scan(&rec.SessionID, &rec.Drill, &rec.Timestamp, &reason,
			&rec.QuestionsServed, &rec.CorrectAnswers, &durationMs, &rank); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.EndReason = reason.String
		rec.Rank = rank.String
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	query, args := builder().
		Select("sequence", "timestamp", "session_id", "drill", "prompt", "expected",
			"submitted", "correct", "elapsed_ms").
		From(entsql.Table("answer_events")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session answers: %w", err)
	}
	defer rows.Close()

	var records []AnswerRecord
	for rows.Next() {
		var (
			rec       AnswerRecord
			submitted sql.NullString
			elapsedMs int64
		)
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Drill,
			&rec.Prompt, &rec.Expected, &submitted, &rec.Correct, &elapsedMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.Submitted = submitted.String
		rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) DrillStats(ctx context.Context) ([]DrillStat, error) {
	query, args := builder().
		Select("drill", "COUNT(DISTINCT session_id)", "COUNT(*)",
			"SUM(CASE WHEN correct THEN 1 ELSE 0 END)", "AVG(elapsed_ms)").
		From(entsql.Table("answer_events")).
		GroupBy("drill").
		OrderBy("drill").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query drill stats: %w", err)
	}
	defer rows.Close()

	var stats []DrillStat
	for rows.Next() {
		var (
			st  DrillStat
			avg sql.NullFloat64
		)
		if err := rows.Scan(&st.Drill, &st.Sessions, &st.Answers, &st.Correct, &avg); err != nil {
			return nil, fmt.Errorf("scan drill stat: %w", err)
		}
		st.AvgElapsed = time.Duration(avg.Float64 * float64(time.Millisecond))
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
