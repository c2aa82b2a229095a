package lazy

import (
	"go.uber.org/zap"

	"github.com/coregx/dnfa/dfa"
)

// minStateLimit covers the start state, the state a search is in and the
// state being added.
const minStateLimit = 3

// Config configures the behavior of the lazy DFA.
//
// The state limit trades memory for recomputation. States beyond the limit
// are not an error: the least recently used one is evicted and rebuilt if a
// later search needs it again.
type Config struct {
	// StateLimit is the maximum number of states retained at once, counting
	// the start state but not the dead state.
	//
	// Default: 10,000 states
	StateLimit int

	// Logger receives eviction events at debug level.
	//
	// Default: zap.NewNop()
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		StateLimit: 10_000,
		Logger:     zap.NewNop(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StateLimit < minStateLimit {
		return dfa.InvalidConfigError("lazy StateLimit must be >= 3")
	}
	return nil
}

// WithStateLimit returns a new config with the specified state limit
func (c Config) WithStateLimit(limit int) Config {
	c.StateLimit = limit
	return c
}

// WithLogger returns a new config with the specified logger
func (c Config) WithLogger(l *zap.Logger) Config {
	c.Logger = l
	return c
}
