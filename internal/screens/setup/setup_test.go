package setup

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/session"
)

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newMachine() *session.Machine {
	return session.New(session.Options{})
}

func TestSetup_ArithmeticAdjust(t *testing.T) {
	s := New(problemgen.DefaultConfig(problemgen.KindArithmetic), newMachine)
	assert.Equal(t, "Flash Arithmetic Setup", s.Title())

	// Numbers: 2 → 3
	s.Update(press(tea.KeyRight))
	assert.Equal(t, 3, s.Config().Terms)

	// Operator cycles and wraps backwards to ÷.
	for range 3 {
		s.Update(press(tea.KeyDown))
	}
	s.Update(press(tea.KeyLeft))
	assert.Equal(t, problemgen.OpDiv, s.Config().Operator)
	s.Update(press(tea.KeyRight))
	assert.Equal(t, problemgen.OpAdd, s.Config().Operator)

	// Interval steps by 50ms and clamps at the maximum.
	s.Update(press(tea.KeyDown))
	s.Update(press(tea.KeyRight))
	assert.Equal(t, problemgen.DefaultRevealInterval+50*time.Millisecond, s.Config().RevealInterval)
	for range 100 {
		s.Update(press(tea.KeyRight))
	}
	assert.Equal(t, problemgen.MaxRevealInterval, s.Config().RevealInterval)

	view := s.View(100, 30)
	assert.Contains(t, view, "Interval")
	assert.Contains(t, view, "2s")
}

func TestSetup_CursorWraps(t *testing.T) {
	s := New(problemgen.DefaultConfig(problemgen.KindFlags), newMachine)
	s.Update(press(tea.KeyUp))
	assert.Equal(t, 1, s.cursor)
	s.Update(press(tea.KeyDown))
	assert.Equal(t, 0, s.cursor)
}

func TestSetup_FlagPresets(t *testing.T) {
	s := New(problemgen.DefaultConfig(problemgen.KindFlags), newMachine)
	require.Equal(t, 10, s.Config().ProblemCount)

	s.Update(press(tea.KeyRight))
	assert.Equal(t, 30, s.Config().ProblemCount)
	s.Update(press(tea.KeyRight))
	s.Update(press(tea.KeyRight))
	assert.Equal(t, 0, s.Config().ProblemCount)
	assert.Contains(t, s.View(100, 30), "All")
	s.Update(press(tea.KeyRight))
	assert.Equal(t, 10, s.Config().ProblemCount)

	s.Update(press(tea.KeyDown))
	for range 10 {
		s.Update(press(tea.KeyRight))
	}
	assert.Equal(t, maxOptions, s.Config().OptionCount)
}

func TestSetup_InvalidConfigShowsError(t *testing.T) {
	s := New(problemgen.DefaultConfig(problemgen.KindArithmetic), newMachine)

	// Min digits 3, max digits 1.
	s.Update(press(tea.KeyDown))
	s.Update(press(tea.KeyRight))
	s.Update(press(tea.KeyRight))
	require.Equal(t, 3, s.Config().MinDigits)

	_, cmd := s.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(100, 30), "min_digits")

	// Adjusting clears the error.
	s.Update(press(tea.KeyLeft))
	assert.Empty(t, s.errMsg)
}

func TestSetup_SequenceSingleValueRange(t *testing.T) {
	s := New(problemgen.DefaultConfig(problemgen.KindSequence), newMachine)
	s.Update(press(tea.KeyDown))
	for range 8 {
		s.Update(press(tea.KeyRight))
	}
	require.Equal(t, 9, s.Config().SequenceMin)

	_, cmd := s.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, s.errMsg)
}

func TestSetup_StartReplacesWithDrill(t *testing.T) {
	calls := 0
	s := New(problemgen.DefaultConfig(problemgen.KindSequence), func() *session.Machine {
		calls++
		return newMachine()
	})

	_, cmd := s.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Flash Sequence", msg.Screen.Title())
	assert.Equal(t, 1, calls)
}
