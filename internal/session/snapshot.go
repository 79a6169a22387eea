package session

import (
	"time"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/score"
)

// Snapshot is an immutable copy of the machine's state for rendering.
// Nothing in it aliases the machine.
type Snapshot struct {
	SessionID string            `json:"session_id,omitempty"`
	Phase     Phase             `json:"phase"`
	Config    problemgen.Config `json:"config"`

	// Problem is nil while Idle.
	Problem      *problemgen.Problem `json:"problem,omitempty"`
	Timeline     []string            `json:"timeline,omitempty"`
	RevealIndex  int                 `json:"reveal_index"`
	CurrentToken string              `json:"current_token,omitempty"`
	Input        string              `json:"input"`

	LastResult *Result `json:"last_result,omitempty"`

	SessionStartedAt time.Time `json:"session_started_at,omitzero"`
	AnswerStartedAt  time.Time `json:"answer_started_at,omitzero"`

	Served   int     `json:"served"`
	Total    int     `json:"total"` // zero means unlimited
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`

	History []score.AnswerRecord `json:"history"`
	Summary *score.Summary       `json:"summary,omitempty"`
}

// Snapshot returns a deep copy of the current state with the last
// HistoryTail answer records.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		SessionID:        m.id,
		Phase:            m.phase,
		Config:           m.cfg,
		RevealIndex:      m.reveal,
		Input:            string(m.input),
		SessionStartedAt: m.startedAt,
		Served:           m.served,
		Total:            m.cfg.ProblemCount,
		Attempts:         m.tracker.Attempts(),
		Correct:          m.tracker.Correct(),
		Accuracy:         m.tracker.AccuracyPercent(),
		History:          m.tracker.Tail(HistoryTail),
	}

	if m.phase != PhaseIdle {
		p := m.problem.Clone()
		s.Problem = &p
		s.Timeline = append([]string(nil), m.timeline...)
		if m.phase == PhaseDisplaying && m.reveal < len(m.timeline) {
			s.CurrentToken = m.timeline[m.reveal]
		}
	}
	if m.phase == PhaseAwaitingInput || m.phase == PhaseResult {
		s.AnswerStartedAt = m.answerAt
	}
	if m.result != nil {
		r := *m.result
		s.LastResult = &r
	}
	if m.summary != nil {
		sum := *m.summary
		sum.Records = append([]score.AnswerRecord(nil), m.summary.Records...)
		s.Summary = &sum
	}
	return s
}
