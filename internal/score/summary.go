package score

import (
	"fmt"
	"time"
)

// Summary holds the data displayed once a session ends.
type Summary struct {
	Questions int            `json:"questions"`
	Correct   int            `json:"correct"`
	Accuracy  float64        `json:"accuracy"`
	Average   time.Duration  `json:"average"`
	Fastest   time.Duration  `json:"fastest"`
	HasTiming bool           `json:"has_timing"`
	Duration  time.Duration  `json:"duration"`
	Rank      string         `json:"rank,omitempty"` // flag quiz only
	Records   []AnswerRecord `json:"records"`
}

// Summarize builds a Summary from the tracker. total is the wall time the
// session took. Rank is left for the caller; see RankFor.
func (t *Tracker) Summarize(total time.Duration) Summary {
	s := Summary{
		Questions: t.attempts,
		Correct:   t.correct,
		Accuracy:  t.AccuracyPercent(),
		Duration:  total,
		Records:   t.History(),
	}
	if avg, ok := t.AverageLatency(); ok {
		s.Average = avg
		s.Fastest, _ = t.FastestLatency()
		s.HasTiming = true
	}
	return s
}

// Ranks awarded by the flag quiz, highest first.
const (
	RankDoctor       = "Flag Doctor"
	RankExpert       = "Flag Expert"
	RankIntermediate = "Flag Intermediate"
	RankBeginner     = "Flag Beginner"
)

// RankFor maps an accuracy percentage to a title.
func RankFor(accuracy float64) string {
	switch {
	case accuracy >= 98:
		return RankDoctor
	case accuracy >= 70:
		return RankExpert
	case accuracy >= 50:
		return RankIntermediate
	default:
		return RankBeginner
	}
}

// ShareText is the plain-text result a player can paste elsewhere after a
// flag quiz: rank, accuracy, score and time.
func ShareText(s Summary) string {
	secs := int(s.Duration.Seconds())
	return fmt.Sprintf("🏳 Flag Quiz 🏳\nI became a %s!\n\nAccuracy: %.1f%%\nScore: %d/%d\nTime: %d min %d sec\n",
		s.Rank, s.Accuracy, s.Correct, s.Questions, secs/60, secs%60)
}
