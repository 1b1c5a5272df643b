package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before CLI flags override them.

type Defaults struct {
	Chain   ChainDefaults
	Query   QueryDefaults
	Logging LoggingDefaults
	Sentry  SentryDefaults
}

// ChainDefaults selects the registry partition the commands operate on.
type ChainDefaults struct {
	Preset  string // chain preset populating the registry (mainnet, devnet)
	ChainID string // registry partition; empty means the preset's own partition
}

// QueryDefaults positions attribute queries. Head sentinels mean "fully
// transitioned": every transition rule set resolves to its destination side.
type QueryDefaults struct {
	Block uint64 // block number attribute queries resolve at
	Time  uint64 // block timestamp attribute queries resolve at
	Kind  string // rule set kind enumerations cover (all, base, transition)
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    // log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace)
	Format    string // log output format (text vs json)
	Color     bool   // whether to use ANSI color codes in logs
}

// SentryDefaults controls error reporting. An empty DSN disables it.
type SentryDefaults struct {
	DSN string
}

// DefaultConfig returns a fully populated Defaults instance.
func DefaultConfig() Defaults {
	return Defaults{
		Chain: ChainDefaults{
			Preset: "mainnet",
		},
		Query: QueryDefaults{
			Block: ^uint64(0),
			Time:  ^uint64(0),
			Kind:  "base",
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     true,
		},
		Sentry: SentryDefaults{},
	}
}
