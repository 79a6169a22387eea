package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/store"
)

type fakeRepo struct {
	store.EventRepo

	sessions    []store.SessionSummaryRecord
	answers     map[string][]store.AnswerRecord
	stats       []store.DrillStat
	queryErr    error
	answerCalls int
	lastOpts    store.QueryOpts
}

func (f *fakeRepo) QuerySessionSummaries(_ context.Context, opts store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	f.lastOpts = opts
	return f.sessions, f.queryErr
}

func (f *fakeRepo) SessionAnswers(_ context.Context, id string) ([]store.AnswerRecord, error) {
	f.answerCalls++
	return f.answers[id], nil
}

func (f *fakeRepo) DrillStats(context.Context) ([]store.DrillStat, error) {
	return f.stats, nil
}

func testRepo() *fakeRepo {
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &fakeRepo{
		sessions: []store.SessionSummaryRecord{
			{SessionID: "s2", Drill: "flags", Timestamp: ts, QuestionsServed: 4, CorrectAnswers: 3, Duration: 65 * time.Second, Rank: "Flag Expert"},
			{SessionID: "s1", Drill: "arithmetic", Timestamp: ts.Add(-time.Hour), QuestionsServed: 2, CorrectAnswers: 2, Duration: 20 * time.Second},
		},
		answers: map[string][]store.AnswerRecord{
			"s2": {{AnswerEventData: store.AnswerEventData{SessionID: "s2", Prompt: "Kenya", Expected: "Kenya", Submitted: "Chad", Elapsed: 1500 * time.Millisecond}}},
		},
		stats: []store.DrillStat{{Drill: "flags", Sessions: 1, Answers: 4, Correct: 3}},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistory_LoadAndRender(t *testing.T) {
	repo := testRepo()
	s := New(repo)
	assert.Contains(t, s.View(120, 30), "Loading history")

	load(t, s)
	assert.Equal(t, sessionLimit, repo.lastOpts.Limit)

	view := s.View(120, 30)
	assert.Contains(t, view, "Flag Expert")
	assert.Contains(t, view, "1:05")
	assert.Contains(t, view, "75% accuracy")
	assert.Contains(t, view, "flags 1 sessions 75%")
}

func TestHistory_Empty(t *testing.T) {
	s := New(&fakeRepo{})
	load(t, s)
	assert.Contains(t, s.View(80, 24), "No sessions yet")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestHistory_QueryError(t *testing.T) {
	s := New(&fakeRepo{queryErr: errors.New("db locked")})
	load(t, s)
	assert.Contains(t, s.View(80, 24), "db locked")
}

func TestHistory_ExpandLoadsAnswersOnce(t *testing.T) {
	repo := testRepo()
	s := New(repo)
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(120, 30), "Loading answers")
	s.Update(cmd())
	assert.Contains(t, s.View(120, 30), "you: Chad")

	// Collapse and expand again: cached.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, repo.answerCalls)

	// Second session has no answers stored.
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Contains(t, s.View(120, 30), "No answers this session")
}

func TestHistory_Navigation(t *testing.T) {
	s := New(testRepo())
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
