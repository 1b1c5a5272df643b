package launcher

import (
	"fmt"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/rony4d/go-forkset/forkset"
)

// Config aggregates everything the launcher's commands need.
type Config struct {
	Chain   ChainConfig
	Query   QueryConfig
	Logging LoggingConfig
	Sentry  SentryConfig
}

type ChainConfig struct {
	Preset  string
	ChainID string // empty: use the preset's partition
}

type QueryConfig struct {
	Block           uint64
	Time            uint64
	Kind            string
	DeployedOnly    bool
	DevelopmentOnly bool
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
}

type SentryConfig struct {
	DSN string
}

// Position returns the query position as engine types.
func (q QueryConfig) Position() (idx.Block, forkset.Timestamp) {
	return idx.Block(q.Block), forkset.Timestamp(q.Time)
}

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Chain: ChainConfig{
			Preset:  d.Chain.Preset,
			ChainID: d.Chain.ChainID,
		},
		Query: QueryConfig{
			Block: d.Query.Block,
			Time:  d.Query.Time,
			Kind:  d.Query.Kind,
		},
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
		},
		Sentry: SentryConfig{
			DSN: d.Sentry.DSN,
		},
	}
}

// MakeAllConfigs merges defaults with CLI flag overrides into a single
// config struct.
func MakeAllConfigs(ctx *cli.Context) Config {
	cfg := defaultConfig()
	applyCLIOverrides(ctx, &cfg)
	return cfg
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("preset") {
		cfg.Chain.Preset = ctx.GlobalString("preset")
	}
	if ctx.GlobalIsSet("chain") {
		cfg.Chain.ChainID = ctx.GlobalString("chain")
	}

	if ctx.GlobalIsSet("block") {
		cfg.Query.Block = ctx.GlobalUint64("block")
	}
	if ctx.GlobalIsSet("time") {
		cfg.Query.Time = ctx.GlobalUint64("time")
	}
	if ctx.GlobalIsSet("kind") {
		cfg.Query.Kind = ctx.GlobalString("kind")
	}
	cfg.Query.DeployedOnly = ctx.GlobalBool("deployed")
	cfg.Query.DevelopmentOnly = ctx.GlobalBool("development")

	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Logging.Color = ctx.GlobalBool("log.color")
	}
	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.Sentry.DSN = ctx.GlobalString("sentry.dsn")
	}
}

// parseKind maps the --kind flag to the engine's enumeration kinds.
func parseKind(s string) (forkset.Kind, error) {
	switch s {
	case "all":
		return forkset.All, nil
	case "base":
		return forkset.Base, nil
	case "transition":
		return forkset.Transition, nil
	default:
		return 0, fmt.Errorf("unknown kind %q (valid: all, base, transition)", s)
	}
}

var verbosityLevels = map[int]logrus.Level{
	0: logrus.FatalLevel,
	1: logrus.ErrorLevel,
	2: logrus.WarnLevel,
	3: logrus.InfoLevel,
	4: logrus.DebugLevel,
	5: logrus.TraceLevel,
}

// setupLogging configures the process logger from the aggregated config and
// attaches the Sentry hook when a DSN is set.
func setupLogging(cfg Config) error {
	level, ok := verbosityLevels[cfg.Logging.Verbosity]
	if !ok {
		return fmt.Errorf("invalid log verbosity %d (valid: 0..5)", cfg.Logging.Verbosity)
	}
	logrus.SetLevel(level)

	switch cfg.Logging.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Logging.Color,
			DisableColors: !cfg.Logging.Color,
		})
	default:
		return fmt.Errorf("unknown log format %q (valid: text, json)", cfg.Logging.Format)
	}

	if cfg.Sentry.DSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.Sentry.DSN, []logrus.Level{
			logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel,
		})
		if err != nil {
			return fmt.Errorf("sentry hook: %w", err)
		}
		logrus.AddHook(hook)
	}
	return nil
}
