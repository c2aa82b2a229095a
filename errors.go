package dnfa

import (
	"github.com/coregx/dnfa/dfa"
	"github.com/coregx/dnfa/nfa"
)

// Errors returned by compilation. Compare with errors.Is.
var (
	// ErrStateLimitExceeded reports an eager DFA larger than Config.StateLimit.
	ErrStateLimitExceeded = dfa.ErrStateLimitExceeded

	// ErrInvalidAutomaton reports a malformed NFA.
	ErrInvalidAutomaton = dfa.ErrInvalidAutomaton

	// ErrInvalidConfig reports an unsupported configuration.
	ErrInvalidConfig = dfa.ErrInvalidConfig

	// ErrUnsupported reports a pattern construct outside regular languages
	// over bytes, such as anchors and word boundaries.
	ErrUnsupported = nfa.ErrUnsupported
)
