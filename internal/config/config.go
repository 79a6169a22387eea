package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/flashquiz/internal/problemgen"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. FLASHQUIZ_SERVER_ADDR for server.addr.
const EnvPrefix = "FLASHQUIZ"

// Config holds application settings loaded from defaults, an optional
// YAML file, the environment and command line flags.
type Config struct {
	DB      string  `mapstructure:"db"` // journal database path; empty means the XDG default
	Log     Log     `mapstructure:"log"`
	Server  Server  `mapstructure:"server"`
	Catalog Catalog `mapstructure:"catalog"`
	Drills  Drills  `mapstructure:"drills"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Log configures the slog handler.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // TUI log destination; empty discards
}

// Server configures `flashquiz serve`.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"` // idle API sessions expire after this
}

// Catalog points at an alternative country list and local flag images.
type Catalog struct {
	Path    string `mapstructure:"path"`
	FlagDir string `mapstructure:"flag_dir"`
}

// Drills holds the starting configuration of each drill.
type Drills struct {
	Arithmetic problemgen.Config `mapstructure:"arithmetic"`
	Sequence   problemgen.Config `mapstructure:"sequence"`
	Flags      problemgen.Config `mapstructure:"flags"`
}

// For returns the starting configuration of a drill kind.
func (d Drills) For(kind problemgen.Kind) problemgen.Config {
	switch kind {
	case problemgen.KindSequence:
		return d.Sequence
	case problemgen.KindFlags:
		return d.Flags
	}
	return d.Arithmetic
}

// SlogLevel parses the configured log level, defaulting to info.
func (l Log) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. When empty the XDG config dir and
	// the working directory are searched for config.yaml.
	File string

	// Flags are bound to their config keys (see FlagKeys) so that a flag
	// set on the command line wins over every other source.
	Flags *pflag.FlagSet

	// SkipDotenv disables loading .env from the working directory.
	SkipDotenv bool
}

// FlagKeys maps command line flag names to config keys.
var FlagKeys = map[string]string{
	"db":        "db",
	"log-level": "log.level",
	"log-file":  "log.file",
	"addr":      "server.addr",
	"catalog":   "catalog.path",
	"flag-dir":  "catalog.flag_dir",
}

// Load reads configuration from defaults, the config file, the environment
// and flags, in increasing order of precedence.
func Load(opts Options) (*Config, error) {
	if !opts.SkipDotenv {
		// A missing .env is the common case.
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var fileLookupErr viper.ConfigFileNotFoundError
			if !errors.As(err, &fileLookupErr) {
				return nil, fmt.Errorf("error loading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.session_ttl", "30m")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.flag_dir", "")

	arith := problemgen.DefaultConfig(problemgen.KindArithmetic)
	v.SetDefault("drills.arithmetic.terms", arith.Terms)
	v.SetDefault("drills.arithmetic.min_digits", arith.MinDigits)
	v.SetDefault("drills.arithmetic.max_digits", arith.MaxDigits)
	v.SetDefault("drills.arithmetic.operator", string(arith.Operator))
	v.SetDefault("drills.arithmetic.interval", arith.RevealInterval.String())
	v.SetDefault("drills.arithmetic.problems", arith.ProblemCount)

	seq := problemgen.DefaultConfig(problemgen.KindSequence)
	v.SetDefault("drills.sequence.length", seq.SequenceLength)
	v.SetDefault("drills.sequence.min", seq.SequenceMin)
	v.SetDefault("drills.sequence.max", seq.SequenceMax)
	v.SetDefault("drills.sequence.interval", seq.RevealInterval.String())
	v.SetDefault("drills.sequence.problems", seq.ProblemCount)

	flags := problemgen.DefaultConfig(problemgen.KindFlags)
	v.SetDefault("drills.flags.problems", flags.ProblemCount)
	v.SetDefault("drills.flags.options", flags.OptionCount)
}

// finish fills in drill kinds, folds operator aliases and validates the
// result so bad settings fail at startup rather than on first use.
func (c *Config) finish() error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	c.Drills.Arithmetic.Kind = problemgen.KindArithmetic
	c.Drills.Sequence.Kind = problemgen.KindSequence
	c.Drills.Flags.Kind = problemgen.KindFlags

	op, ok := problemgen.ParseOperator(string(c.Drills.Arithmetic.Operator))
	if !ok {
		return fmt.Errorf("drills.arithmetic.operator: unknown operator %q", c.Drills.Arithmetic.Operator)
	}
	c.Drills.Arithmetic.Operator = op

	for _, d := range []*problemgen.Config{&c.Drills.Arithmetic, &c.Drills.Sequence, &c.Drills.Flags} {
		*d = d.Normalize()
		if err := d.Validate(); err != nil {
			return fmt.Errorf("drills.%s: %w", d.Kind, err)
		}
	}

	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.SessionTTL <= 0 {
		c.Server.SessionTTL = 30 * time.Minute
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/flashquiz, falling back to
// ~/.config/flashquiz.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "flashquiz"), nil
}
