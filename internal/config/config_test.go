package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/problemgen"
)

// isolate points the XDG config dir at an empty temp dir so a developer's
// own config never leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{SkipDotenv: true})
	require.NoError(t, err)

	assert.Empty(t, cfg.DB)
	assert.Empty(t, cfg.File)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())

	assert.Equal(t, problemgen.DefaultConfig(problemgen.KindArithmetic), cfg.Drills.Arithmetic)
	assert.Equal(t, problemgen.DefaultConfig(problemgen.KindSequence), cfg.Drills.Sequence)
	assert.Equal(t, problemgen.DefaultConfig(problemgen.KindFlags), cfg.Drills.Flags)
}

func TestLoad_XDGConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "flashquiz", "config.yaml"), `
log:
  level: debug
server:
  addr: 127.0.0.1:9000
drills:
  arithmetic:
    terms: 5
    max_digits: 2
    operator: "*"
    interval: 250ms
  flags:
    problems: 30
    options: 6
`)

	cfg, err := Load(Options{SkipDotenv: true})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "flashquiz", "config.yaml"), cfg.File)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)

	a := cfg.Drills.Arithmetic
	assert.Equal(t, problemgen.KindArithmetic, a.Kind)
	assert.Equal(t, 5, a.Terms)
	assert.Equal(t, 2, a.MaxDigits)
	assert.Equal(t, problemgen.OpMul, a.Operator)
	assert.Equal(t, 250*time.Millisecond, a.RevealInterval)

	assert.Equal(t, 30, cfg.Drills.Flags.ProblemCount)
	assert.Equal(t, 6, cfg.Drills.Flags.OptionCount)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.yaml"), SkipDotenv: true})
	require.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "flashquiz.yaml")
	writeFile(t, file, "db: from-file.db\nserver:\n  addr: :7000\n")

	t.Setenv("FLASHQUIZ_DB", "from-env.db")
	t.Setenv("FLASHQUIZ_DRILLS_SEQUENCE_LENGTH", "7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("addr", "", "")
	require.NoError(t, fs.Parse([]string{"--addr", ":6000"}))

	cfg, err := Load(Options{File: file, Flags: fs, SkipDotenv: true})
	require.NoError(t, err)

	// env beats file, a changed flag beats env, an unchanged flag is ignored
	assert.Equal(t, "from-env.db", cfg.DB)
	assert.Equal(t, ":6000", cfg.Server.Addr)
	assert.Equal(t, 7, cfg.Drills.Sequence.SequenceLength)
}

func TestLoad_ClampsDrillSettings(t *testing.T) {
	isolate(t)
	t.Setenv("FLASHQUIZ_DRILLS_ARITHMETIC_TERMS", "50")
	t.Setenv("FLASHQUIZ_DRILLS_ARITHMETIC_INTERVAL", "1ms")

	cfg, err := Load(Options{SkipDotenv: true})
	require.NoError(t, err)
	assert.Equal(t, problemgen.MaxTerms, cfg.Drills.Arithmetic.Terms)
	assert.Equal(t, problemgen.MinRevealInterval, cfg.Drills.Arithmetic.RevealInterval)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"log level", map[string]string{"FLASHQUIZ_LOG_LEVEL": "loud"}},
		{"operator", map[string]string{"FLASHQUIZ_DRILLS_ARITHMETIC_OPERATOR": "%"}},
		{"digit bounds", map[string]string{
			"FLASHQUIZ_DRILLS_ARITHMETIC_MIN_DIGITS": "3",
			"FLASHQUIZ_DRILLS_ARITHMETIC_MAX_DIGITS": "1",
		}},
		{"sequence range", map[string]string{
			"FLASHQUIZ_DRILLS_SEQUENCE_MIN": "5",
			"FLASHQUIZ_DRILLS_SEQUENCE_MAX": "5",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(Options{SkipDotenv: true})
			require.Error(t, err)
		})
	}
}

func TestDrills_For(t *testing.T) {
	d := Drills{
		Arithmetic: problemgen.Config{Kind: problemgen.KindArithmetic},
		Sequence:   problemgen.Config{Kind: problemgen.KindSequence},
		Flags:      problemgen.Config{Kind: problemgen.KindFlags},
	}
	for _, k := range []problemgen.Kind{problemgen.KindArithmetic, problemgen.KindSequence, problemgen.KindFlags} {
		assert.Equal(t, k, d.For(k).Kind)
	}
}

func TestSlogLevel_FallsBackToInfo(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, Log{Level: " warn "}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Log{Level: "bogus"}.SlogLevel())
}
