// Package score tracks per-session answer statistics.
package score

import (
	"time"

	"github.com/abhisek/flashquiz/internal/problemgen"
)

// AnswerRecord is one graded answer.
type AnswerRecord struct {
	Kind      problemgen.Kind `json:"kind"`
	Prompt    string          `json:"prompt"`
	Expected  string          `json:"expected"`
	Submitted string          `json:"submitted"`
	Correct   bool            `json:"correct"`
	Elapsed   time.Duration   `json:"elapsed"`
	AnswerAt  time.Time       `json:"answered_at"`
}

// Tracker accumulates answer records for one session. The zero value is
// ready to use. A Tracker is not safe for concurrent use.
type Tracker struct {
	attempts int
	correct  int
	history  []AnswerRecord
}

// Record adds a graded answer.
func (t *Tracker) Record(rec AnswerRecord) {
	t.attempts++
	if rec.Correct {
		t.correct++
	}
	t.history = append(t.history, rec)
}

// Attempts is the number of graded answers.
func (t *Tracker) Attempts() int { return t.attempts }

// Correct is the number of correct answers.
func (t *Tracker) Correct() int { return t.correct }

// AccuracyPercent returns 100*correct/attempts, or 0 before any attempt.
func (t *Tracker) AccuracyPercent() float64 {
	if t.attempts == 0 {
		return 0
	}
	return 100 * float64(t.correct) / float64(t.attempts)
}

// AverageLatency returns the mean answer time. ok is false when nothing has
// been answered yet.
func (t *Tracker) AverageLatency() (avg time.Duration, ok bool) {
	if len(t.history) == 0 {
		return 0, false
	}
	var total time.Duration
	for _, r := range t.history {
		total += r.Elapsed
	}
	return total / time.Duration(len(t.history)), true
}

// FastestLatency returns the quickest answer time. ok is false when nothing
// has been answered yet.
func (t *Tracker) FastestLatency() (fastest time.Duration, ok bool) {
	if len(t.history) == 0 {
		return 0, false
	}
	fastest = t.history[0].Elapsed
	for _, r := range t.history[1:] {
		if r.Elapsed < fastest {
			fastest = r.Elapsed
		}
	}
	return fastest, true
}

// History returns a copy of every record in answer order.
func (t *Tracker) History() []AnswerRecord {
	return append([]AnswerRecord(nil), t.history...)
}

// Tail returns a copy of the last n records.
func (t *Tracker) Tail(n int) []AnswerRecord {
	if n <= 0 {
		return nil
	}
	start := len(t.history) - n
	if start < 0 {
		start = 0
	}
	return append([]AnswerRecord(nil), t.history[start:]...)
}

// Reset clears every counter and the history.
func (t *Tracker) Reset() {
	*t = Tracker{}
}
