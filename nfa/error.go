// Package nfa provides the byte-level non-deterministic automaton consumed by
// the determinizer.
//
// States carry disjoint byte-range transitions, epsilon transitions and an
// optional accepted pattern. An NFA is produced by the low-level Builder, by
// compiling a regexp/syntax tree, or from a word list, and is immutable once
// built.
package nfa

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAutomaton: overlapping ranges in one state, or a start,
	// final or target state that does not exist.
	ErrInvalidAutomaton = errors.New("invalid automaton")

	// ErrUnsupported: a construct that is not regular over bytes, such as an
	// assertion.
	ErrUnsupported = errors.New("unsupported pattern construct")

	// ErrTooComplex: the syntax tree nests deeper than
	// CompilerConfig.MaxRecursionDepth.
	ErrTooComplex = errors.New("pattern nests too deeply")
)

// CompileError ties a compilation failure to the pattern that caused it.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pattern == "" {
		return "nfa: compile: " + e.Err.Error()
	}
	return fmt.Sprintf("nfa: compile %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError is returned by Builder when the automaton it holds is
// malformed. StateID is InvalidState when no single state is at fault.
type BuildError struct {
	Message string
	StateID StateID
}

func (e *BuildError) Error() string {
	if e.StateID == InvalidState {
		return "nfa: build: " + e.Message
	}
	return fmt.Sprintf("nfa: build: state %d: %s", e.StateID, e.Message)
}

// Is makes every BuildError match ErrInvalidAutomaton.
func (e *BuildError) Is(target error) bool {
	return target == ErrInvalidAutomaton
}
