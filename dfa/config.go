package dfa

import (
	"fmt"

	"go.uber.org/zap"
)

// TransitionStorage selects the layout of the transition table.
type TransitionStorage uint8

const (
	// TransitionAuto measures the compacted table after construction and
	// picks Sparse when the mean number of ranges per state is at most
	// Config.SparseDensityThreshold, Dense otherwise.
	TransitionAuto TransitionStorage = iota

	// TransitionDense stores one contiguous row per state with one column
	// per byte equivalence class. Stepping is a single indexed load.
	TransitionDense

	// TransitionSparse stores each state as an ordered list of
	// (upper bound, target) ranges. Smaller, one comparison chain per step.
	TransitionSparse
)

func (t TransitionStorage) String() string {
	switch t {
	case TransitionAuto:
		return "auto"
	case TransitionDense:
		return "dense"
	case TransitionSparse:
		return "sparse"
	default:
		return fmt.Sprintf("TransitionStorage(%d)", t)
	}
}

// FinalStorage selects where final-state information lives.
type FinalStorage uint8

const (
	// FinalInline stores the accepted pattern in the state record itself.
	FinalInline FinalStorage = iota

	// FinalOutOfBand stores finality in a bitset indexed by state, with
	// pattern IDs in a side table consulted only for final states.
	FinalOutOfBand
)

func (f FinalStorage) String() string {
	switch f {
	case FinalInline:
		return "inline"
	case FinalOutOfBand:
		return "out-of-band"
	default:
		return fmt.Sprintf("FinalStorage(%d)", f)
	}
}

// Config configures eager DFA construction.
type Config struct {
	// Transitions selects the transition table layout.
	//
	// Default: TransitionAuto
	Transitions TransitionStorage

	// Finals selects where final-state information is stored.
	//
	// Default: FinalInline
	Finals FinalStorage

	// StateLimit is the maximum number of states (not counting the dead
	// state) construction may create before failing with
	// ErrStateLimitExceeded.
	//
	// Default: 10,000 states
	StateLimit int

	// SparseDensityThreshold is the mean ranges-per-state at or below which
	// TransitionAuto chooses the sparse layout.
	//
	// Default: 8
	SparseDensityThreshold int

	// Accelerate records, for states that loop on all but one to three
	// bytes, the bytes that leave the state so searches can skip ahead.
	//
	// Default: true
	Accelerate bool

	// Logger receives construction events. Stepping never logs.
	//
	// Default: zap.NewNop()
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Transitions:            TransitionAuto,
		Finals:                 FinalInline,
		StateLimit:             10_000,
		SparseDensityThreshold: 8,
		Accelerate:             true,
		Logger:                 zap.NewNop(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StateLimit < 1 {
		return InvalidConfigError("StateLimit must be >= 1")
	}
	if c.Transitions > TransitionSparse {
		return InvalidConfigError(fmt.Sprintf("unknown transition storage %d", c.Transitions))
	}
	if c.Finals > FinalOutOfBand {
		return InvalidConfigError(fmt.Sprintf("unknown final storage %d", c.Finals))
	}
	if c.SparseDensityThreshold < 0 {
		return InvalidConfigError("SparseDensityThreshold must be >= 0")
	}
	return nil
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// WithTransitions returns a new config with the specified transition layout
func (c Config) WithTransitions(t TransitionStorage) Config {
	c.Transitions = t
	return c
}

// WithFinals returns a new config with the specified final storage
func (c Config) WithFinals(f FinalStorage) Config {
	c.Finals = f
	return c
}

// WithStateLimit returns a new config with the specified state limit
func (c Config) WithStateLimit(limit int) Config {
	c.StateLimit = limit
	return c
}

// WithAccelerate returns a new config with acceleration enabled/disabled
func (c Config) WithAccelerate(enabled bool) Config {
	c.Accelerate = enabled
	return c
}

// WithLogger returns a new config with the specified logger
func (c Config) WithLogger(l *zap.Logger) Config {
	c.Logger = l
	return c
}
