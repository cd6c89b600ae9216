// errors.go: the engine's error taxonomy
//
// Every failure a run can produce is one of the typed errors below. They are
// all local, run-scoped failures: the interpreter halts on the first one,
// appends its message to the run's diagnostic buffer, and returns it to the
// caller. There is no panic-based control flow inside the engine; command
// implementations return errors and the run loop does the bookkeeping.
//
// Taxonomy:
//   - *LexError            tokenizer failures (dangling prefix) and failed
//     prefix expansions during parsing
//   - *SyntaxError         wrong arity, malformed control-word usage,
//     missing macro name
//   - *TypeError           a command's pattern match over its argument
//     shapes failed
//   - *DomainError         out-of-range index, broadcast length mismatch,
//     ambiguous/missing host-name resolution, stale host handle
//   - *ConflictError       language extension merge collisions
//   - *IterationLimitError the hard dispatch-count abort
package fyfth

import "fmt"

// LexError reports a tokenizer failure. Line is 1-based.
type LexError struct {
	Line int
	Msg  string
}

func (e *LexError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Lex error on line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("Lex error: %s", e.Msg)
}

// SyntaxError reports malformed use of the language surface itself.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return "Syntax error: " + e.Msg }

// TypeError reports that a command has no behavior for the argument shapes
// it was handed.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return "Type error: " + e.Msg }

// DomainError reports arguments of the right shape but an impossible value.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return "Error: " + e.Msg }

// ConflictError reports a language extension merge collision.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Msg }

// IterationLimitError is returned when a run exceeds the dispatch-step cap.
// It guards against runaway macros and self-requeuing loops.
type IterationLimitError struct {
	Steps int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("Error: reached iteration limit (%d steps)", e.Steps)
}

func syntaxf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

func typef(format string, args ...any) error {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

func domainf(format string, args ...any) error {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}
