package score

import (
	"testing"
	"time"
)

func rec(correct bool, elapsed time.Duration) AnswerRecord {
	return AnswerRecord{Correct: correct, Elapsed: elapsed}
}

func TestTracker_Empty(t *testing.T) {
	var tr Tracker

	if got := tr.AccuracyPercent(); got != 0 {
		t.Errorf("AccuracyPercent() = %v, want 0", got)
	}
	if _, ok := tr.AverageLatency(); ok {
		t.Error("AverageLatency() ok = true on empty tracker")
	}
	if _, ok := tr.FastestLatency(); ok {
		t.Error("FastestLatency() ok = true on empty tracker")
	}
	if len(tr.History()) != 0 {
		t.Error("expected empty history")
	}
}

func TestTracker_Record(t *testing.T) {
	var tr Tracker
	tr.Record(rec(true, 2*time.Second))
	tr.Record(rec(false, 4*time.Second))
	tr.Record(rec(true, 1*time.Second))
	tr.Record(rec(true, 5*time.Second))

	if tr.Attempts() != 4 || tr.Correct() != 3 {
		t.Fatalf("attempts/correct = %d/%d, want 4/3", tr.Attempts(), tr.Correct())
	}
	if got := tr.AccuracyPercent(); got != 75 {
		t.Errorf("AccuracyPercent() = %v, want 75", got)
	}
	avg, ok := tr.AverageLatency()
	if !ok || avg != 3*time.Second {
		t.Errorf("AverageLatency() = %v, %v; want 3s, true", avg, ok)
	}
	fastest, ok := tr.FastestLatency()
	if !ok || fastest != time.Second {
		t.Errorf("FastestLatency() = %v, %v; want 1s, true", fastest, ok)
	}
}

func TestTracker_AccuracyBounds(t *testing.T) {
	var tr Tracker
	for i := 0; i < 7; i++ {
		tr.Record(rec(i%3 == 0, time.Second))
		acc := tr.AccuracyPercent()
		if acc < 0 || acc > 100 {
			t.Fatalf("AccuracyPercent() = %v out of range", acc)
		}
		if tr.Correct() > tr.Attempts() {
			t.Fatalf("correct %d exceeds attempts %d", tr.Correct(), tr.Attempts())
		}
	}
}

func TestTracker_TailAndHistoryCopies(t *testing.T) {
	var tr Tracker
	for i := 0; i < 15; i++ {
		tr.Record(AnswerRecord{Prompt: string(rune('a' + i))})
	}

	tail := tr.Tail(10)
	if len(tail) != 10 {
		t.Fatalf("Tail(10) len = %d", len(tail))
	}
	if tail[0].Prompt != "f" || tail[9].Prompt != "o" {
		t.Errorf("Tail(10) = %q..%q, want f..o", tail[0].Prompt, tail[9].Prompt)
	}
	if len(tr.Tail(50)) != 15 {
		t.Error("Tail larger than history should return everything")
	}
	if tr.Tail(0) != nil {
		t.Error("Tail(0) should be nil")
	}

	tail[0].Prompt = "changed"
	history := tr.History()
	history[1].Prompt = "changed"
	if tr.Tail(10)[0].Prompt != "f" || tr.History()[1].Prompt != "b" {
		t.Error("Tail/History must return copies")
	}
}

func TestTracker_Reset(t *testing.T) {
	var tr Tracker
	tr.Record(rec(true, time.Second))
	tr.Reset()

	if tr.Attempts() != 0 || tr.Correct() != 0 || len(tr.History()) != 0 {
		t.Error("Reset should clear everything")
	}
}

func TestSummarize(t *testing.T) {
	var tr Tracker
	tr.Record(rec(true, 2*time.Second))
	tr.Record(rec(true, 4*time.Second))

	s := tr.Summarize(time.Minute)
	if s.Questions != 2 || s.Correct != 2 || s.Accuracy != 100 {
		t.Errorf("summary = %+v", s)
	}
	if !s.HasTiming || s.Average != 3*time.Second || s.Fastest != 2*time.Second {
		t.Errorf("timing = %v avg %v fastest %v", s.HasTiming, s.Average, s.Fastest)
	}
	if s.Rank != "" {
		t.Errorf("Rank = %q, want none", s.Rank)
	}
	if s.Duration != time.Minute {
		t.Errorf("Duration = %v", s.Duration)
	}

	var empty Tracker
	if es := empty.Summarize(0); es.HasTiming || es.Rank != "" {
		t.Errorf("empty summary = %+v", es)
	}
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{100, RankDoctor},
		{98, RankDoctor},
		{97.9, RankExpert},
		{70, RankExpert},
		{69.9, RankIntermediate},
		{50, RankIntermediate},
		{49.9, RankBeginner},
		{0, RankBeginner},
	}
	for _, tc := range tests {
		if got := RankFor(tc.accuracy); got != tc.want {
			t.Errorf("RankFor(%v) = %q, want %q", tc.accuracy, got, tc.want)
		}
	}
}

func TestShareText(t *testing.T) {
	s := Summary{Questions: 20, Correct: 17, Accuracy: 85, Duration: 95*time.Second + 400*time.Millisecond, Rank: RankExpert}
	want := "🏳 Flag Quiz 🏳\nI became a Flag Expert!\n\nAccuracy: 85.0%\nScore: 17/20\nTime: 1 min 35 sec\n"
	if got := ShareText(s); got != want {
		t.Errorf("ShareText =\n%s\nwant\n%s", got, want)
	}
}
