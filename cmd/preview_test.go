package cmd

import (
	"bufio"
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/catalog"
	"github.com/abhisek/flashquiz/internal/problemgen"
	"github.com/abhisek/flashquiz/internal/session"
)

func TestParseKind(t *testing.T) {
	k, err := parseKind("flags")
	require.NoError(t, err)
	assert.Equal(t, problemgen.KindFlags, k)

	_, err = parseKind("chess")
	assert.Error(t, err)
}

func TestPlayLines_Sequence(t *testing.T) {
	m := session.New(session.Options{Generator: problemgen.New(rand.New(rand.NewPCG(3, 4)))})
	require.NoError(t, m.Start(problemgen.Config{
		Kind:           problemgen.KindSequence,
		SequenceLength: 2,
		SequenceMin:    1,
		SequenceMax:    9,
		RevealInterval: problemgen.MinRevealInterval,
		ProblemCount:   1,
	}))
	answer := m.Snapshot().Problem.Answer()

	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader(answer + "\n"))
	require.NoError(t, playLines(m, in, &out))

	assert.Contains(t, out.String(), "Correct!")
	assert.Contains(t, out.String(), "Summary: 1/1 correct")
}

func TestPlayLines_FlashesEveryToken(t *testing.T) {
	m := session.New(session.Options{Generator: problemgen.New(rand.New(rand.NewPCG(9, 10)))})
	require.NoError(t, m.Start(problemgen.Config{
		Kind:           problemgen.KindSequence,
		SequenceLength: 4,
		SequenceMin:    0,
		SequenceMax:    9,
		RevealInterval: problemgen.MinRevealInterval,
		ProblemCount:   1,
	}))
	snap := m.Snapshot()
	timeline := problemgen.Timeline(snap.Problem)

	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader(snap.Problem.Answer() + "\n"))
	require.NoError(t, playLines(m, in, &out))

	// Each token is drawn on a freshly cleared line; the line is cleared
	// once more before the answer prompt.
	frames := strings.Split(out.String(), clearLine)
	require.Greater(t, len(frames), len(timeline)+1)
	assert.Empty(t, frames[0])
	assert.Equal(t, timeline, frames[1:len(timeline)+1])
	assert.True(t, strings.HasPrefix(frames[len(timeline)+1], "── Problem 1 ──"), frames[len(timeline)+1])
}

func TestPlayLines_FlagsByNumberAndName(t *testing.T) {
	cat, err := catalog.Parse([]byte(`[
		{"name": "Japan", "code": "JP", "flag": "jp.png"},
		{"name": "France", "code": "FR", "flag": "fr.png"}
	]`))
	require.NoError(t, err)

	m := session.New(session.Options{
		Generator: problemgen.New(rand.New(rand.NewPCG(5, 6))),
		Catalog:   cat,
	})
	require.NoError(t, m.Start(problemgen.Config{Kind: problemgen.KindFlags, OptionCount: 2}))

	// An unknown label is retried; answering "1" always picks a valid option.
	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader("Atlantis\n1\nfrance\njapan\n"))
	require.NoError(t, playLines(m, in, &out))

	assert.Contains(t, out.String(), "unknown option, try again")
	assert.Contains(t, out.String(), "Summary:")
	assert.Contains(t, out.String(), "🏳 Flag Quiz 🏳")
	assert.Contains(t, out.String(), "Score: ")
	assert.Equal(t, session.PhaseIdle, m.Phase())
}

func TestPlayLines_InputClosedResets(t *testing.T) {
	m := session.New(session.Options{})
	require.NoError(t, m.Start(problemgen.Config{
		Kind:           problemgen.KindArithmetic,
		Terms:          2,
		MinDigits:      1,
		MaxDigits:      1,
		Operator:       problemgen.OpAdd,
		RevealInterval: 10 * time.Millisecond,
	}))

	var out bytes.Buffer
	require.NoError(t, playLines(m, bufio.NewScanner(strings.NewReader("")), &out))
	assert.Contains(t, out.String(), "(input closed)")
	assert.Equal(t, session.PhaseIdle, m.Phase())
}
