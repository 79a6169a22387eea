package session

import (
	"time"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/score"
)

// Info identifies a running session to observers.
type Info struct {
	ID        string
	Config    problemgen.Config
	StartedAt time.Time
}

// EndReason tells why a session finished.
type EndReason string

const (
	EndExhausted EndReason = "exhausted" // every problem was answered
	EndReset     EndReason = "reset"     // the learner returned to the menu
	EndRestart   EndReason = "restart"   // a new session replaced it
)

// Observer is notified after each committed transition that matters
// outside the machine. Calls happen synchronously on the event's goroutine.
type Observer interface {
	SessionStarted(info Info)
	AnswerGraded(info Info, rec score.AnswerRecord)
	SessionFinished(info Info, summary score.Summary, reason EndReason)
}
