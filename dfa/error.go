package dfa

import (
	"fmt"

	"github.com/coregx/dnfa/nfa"
)

// ErrorKind tells apart the ways building or configuring a DFA can fail.
type ErrorKind uint8

const (
	// StateLimitExceeded: subset construction produced more states than
	// Config.StateLimit.
	StateLimitExceeded ErrorKind = iota

	// InvalidAutomaton: the source automaton is nil, empty or malformed.
	InvalidAutomaton

	// InvalidConfig: a Config field is out of range.
	InvalidConfig
)

var kindNames = [...]string{
	StateLimitExceeded: "StateLimitExceeded",
	InvalidAutomaton:   "InvalidAutomaton",
	InvalidConfig:      "InvalidConfig",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Sentinels for errors.Is. Any *DFAError of the same Kind matches.
var (
	// ErrStateLimitExceeded is returned by Build when the eager DFA would
	// not fit. Nothing partial is returned; raise the limit or determinize
	// lazily instead.
	ErrStateLimitExceeded = &DFAError{Kind: StateLimitExceeded, Message: "DFA state limit exceeded"}

	ErrInvalidAutomaton = &DFAError{Kind: InvalidAutomaton, Message: "invalid automaton"}
	ErrInvalidConfig    = &DFAError{Kind: InvalidConfig, Message: "invalid DFA configuration"}
)

// DFAError carries the kind of failure, a message, and optionally the error
// that caused it.
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *DFAError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is matches on Kind alone, so a detailed error compares equal to its
// sentinel.
func (e *DFAError) Is(target error) bool {
	if t, ok := target.(*DFAError); ok {
		return t.Kind == e.Kind
	}
	return false
}

// invalidAutomaton matches both ErrInvalidAutomaton and
// nfa.ErrInvalidAutomaton.
func invalidAutomaton(msg string) error {
	return &DFAError{Kind: InvalidAutomaton, Message: msg, Cause: nfa.ErrInvalidAutomaton}
}

// InvalidConfigError returns an error matching ErrInvalidConfig.
func InvalidConfigError(msg string) error {
	return &DFAError{Kind: InvalidConfig, Message: msg}
}
