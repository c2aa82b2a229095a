package dnfa

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/coregx/dnfa/dfa"
	"github.com/coregx/dnfa/dfa/lazy"
	"github.com/coregx/dnfa/search"
)

// Determinization selects when DFA states are built.
type Determinization uint8

const (
	// Eager runs the whole subset construction at compile time. Compilation
	// fails with ErrStateLimitExceeded when the DFA is too large.
	Eager Determinization = iota

	// Lazy builds states while searching and evicts the least recently used
	// ones once StateLimit states are retained.
	Lazy
)

func (d Determinization) String() string {
	switch d {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	default:
		return fmt.Sprintf("Determinization(%d)", d)
	}
}

// Representation selects how an eager DFA is stepped.
type Representation uint8

const (
	// Indexed steps through a transition table by state index.
	Indexed Representation = iota

	// Direct converts the finished DFA so transitions are pointers to state
	// records. Requires Eager and inline final storage.
	Direct
)

func (r Representation) String() string {
	switch r {
	case Indexed:
		return "indexed"
	case Direct:
		return "direct"
	default:
		return fmt.Sprintf("Representation(%d)", r)
	}
}

// Storage and search mode knobs are shared with the packages that implement
// them.
type (
	TransitionStorage = dfa.TransitionStorage
	FinalStorage      = dfa.FinalStorage
	SearchMode        = search.Mode
	Match             = search.Match
)

const (
	TransitionAuto   = dfa.TransitionAuto
	TransitionDense  = dfa.TransitionDense
	TransitionSparse = dfa.TransitionSparse

	FinalInline    = dfa.FinalInline
	FinalOutOfBand = dfa.FinalOutOfBand

	LeftmostLongest = search.LeftmostLongest
	First           = search.First
	Overlapping     = search.Overlapping
)

// Config controls how a pattern is compiled and searched.
//
// Example:
//
//	config := dnfa.DefaultConfig()
//	config.Determinization = dnfa.Lazy
//	config.StateLimit = 1_000
//	re, err := dnfa.Compile(`(a|b)*a(a|b){12}`, dnfa.WithConfig(config))
type Config struct {
	// Determinization selects eager or lazy construction.
	// Default: Eager
	Determinization Determinization

	// Transitions selects the eager transition table layout.
	// Default: TransitionAuto
	Transitions TransitionStorage

	// Finals selects where final-state information is stored.
	// Default: FinalInline
	Finals FinalStorage

	// Representation selects indexed or direct stepping.
	// Default: Indexed
	Representation Representation

	// SearchMode selects the match reported by Find and All.
	// Default: LeftmostLongest
	SearchMode SearchMode

	// StateLimit caps the number of DFA states, dead state excluded. Eager
	// compilation fails beyond it; lazy automatons evict instead.
	// Default: 10000
	StateLimit int

	// Minimize runs partition refinement on the eager DFA.
	// Default: false
	Minimize bool

	// Logger receives compilation events.
	// Default: zap.NewNop()
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Determinization: Eager,
		Transitions:     TransitionAuto,
		Finals:          FinalInline,
		Representation:  Indexed,
		SearchMode:      LeftmostLongest,
		StateLimit:      10_000,
		Logger:          zap.NewNop(),
	}
}

// Validate checks the configuration for unsupported combinations.
func (c *Config) Validate() error {
	if c.Determinization > Lazy {
		return dfa.InvalidConfigError(fmt.Sprintf("unknown determinization %d", c.Determinization))
	}
	if c.Representation > Direct {
		return dfa.InvalidConfigError(fmt.Sprintf("unknown representation %d", c.Representation))
	}
	if c.SearchMode > Overlapping {
		return dfa.InvalidConfigError(fmt.Sprintf("unknown search mode %d", c.SearchMode))
	}
	if c.Representation == Direct && c.Determinization == Lazy {
		return dfa.InvalidConfigError("direct representation requires eager determinization")
	}
	if c.Representation == Direct && c.Finals == FinalOutOfBand {
		return dfa.InvalidConfigError("direct representation requires inline final storage")
	}
	if c.Determinization == Lazy {
		lc := c.lazyConfig()
		return lc.Validate()
	}
	dc := c.dfaConfig()
	return dc.Validate()
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Config) dfaConfig() dfa.Config {
	return dfa.DefaultConfig().
		WithTransitions(c.Transitions).
		WithFinals(c.Finals).
		WithStateLimit(c.StateLimit).
		WithLogger(c.logger())
}

func (c *Config) lazyConfig() lazy.Config {
	return lazy.DefaultConfig().
		WithStateLimit(c.StateLimit).
		WithLogger(c.logger())
}

// Option customizes compilation.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(c *Config) { *c = config }
}

// WithDeterminization selects eager or lazy construction.
func WithDeterminization(d Determinization) Option {
	return func(c *Config) { c.Determinization = d }
}

// WithTransitions selects the transition table layout.
func WithTransitions(t TransitionStorage) Option {
	return func(c *Config) { c.Transitions = t }
}

// WithFinals selects the final-state storage.
func WithFinals(f FinalStorage) Option {
	return func(c *Config) { c.Finals = f }
}

// WithRepresentation selects indexed or direct stepping.
func WithRepresentation(r Representation) Option {
	return func(c *Config) { c.Representation = r }
}

// WithSearchMode selects the match semantics of Find and All.
func WithSearchMode(m SearchMode) Option {
	return func(c *Config) { c.SearchMode = m }
}

// WithStateLimit sets the state cap.
func WithStateLimit(limit int) Option {
	return func(c *Config) { c.StateLimit = limit }
}

// WithMinimize enables DFA minimization.
func WithMinimize(enabled bool) Option {
	return func(c *Config) { c.Minimize = enabled }
}

// WithLogger sets the logger for compilation events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func newConfig(opts []Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
