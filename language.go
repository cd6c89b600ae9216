// language.go
//
// The language extension registry. A Language maps keyword text to command
// implementations and prefix characters to expansion functions. Extensions
// are built once per host configuration, frozen by convention, and shared
// read-only by every interpreter that references them.
//
// Independent extensions combine through Merge, which refuses colliding
// keywords or prefix characters and renumbers the absorbed extension's
// command indices so CTCommand values minted against the merged language
// stay valid.
package fyfth

import (
	"fmt"
	"strings"
)

// BroadcastBehavior controls whether a command argument participates in
// iterator broadcasting.
type BroadcastBehavior int

const (
	// IgnoreIter passes the argument through unchanged on every
	// broadcast invocation.
	IgnoreIter BroadcastBehavior = iota
	// MayIter substitutes the argument's i-th element when it is bound
	// to an iter during a broadcast.
	MayIter
)

// Context is handed to every command invocation. Out is the run's
// append-only diagnostic sink; Vars is the owning interpreter's variable
// environment; World is the host capability handle for this run (may be
// nil for pure scripts); Lang is the active language, for name lookups.
type Context struct {
	Out   *strings.Builder
	World World
	Vars  map[string]Variant
	Lang  *Language
}

// CommandFunc implements one registered command. args holds exactly
// arity values in stack order (bottom first). The returned Variant, when
// non-nil, is pushed; nil means the command was side-effect only.
type CommandFunc func(ctx *Context, args []Variant) (*Variant, error)

// PrefixFunc expands a prefixed source word into a sequence of queue
// entries at parse time.
type PrefixFunc func(word string, lang *Language) ([]Variant, error)

type commandInfo struct {
	keyword   string
	fn        CommandFunc
	behaviors []BroadcastBehavior
}

type prefixInfo struct {
	ch rune
	fn PrefixFunc
}

// Language is an immutable-after-construction bundle of keywords,
// commands, and prefixes.
type Language struct {
	keywords map[string]int
	commands []commandInfo
	prefixes []prefixInfo
}

// NewLanguage returns an empty language with no vocabulary at all.
func NewLanguage() *Language {
	return &Language{keywords: map[string]int{}}
}

// Register adds a command under the given keyword. The number of
// behaviors is the command's arity. Registering an existing keyword
// overwrites the mapping; that is reserved for deliberate shadowing
// during construction, not for merged extensions (Merge checks).
func (l *Language) Register(keyword string, fn CommandFunc, behaviors ...BroadcastBehavior) *Language {
	index := len(l.commands)
	l.commands = append(l.commands, commandInfo{
		keyword:   keyword,
		fn:        fn,
		behaviors: append([]BroadcastBehavior(nil), behaviors...),
	})
	l.keywords[keyword] = index
	return l
}

// RegisterPrefix adds a single-character prefix trigger. The quote
// character is reserved by the tokenizer, and a duplicate registration is
// a programming error; both panic, matching construction-time misuse.
func (l *Language) RegisterPrefix(ch rune, fn PrefixFunc) *Language {
	if ch == '"' {
		panic(`fyfth: prefix cannot be '"'`)
	}
	for _, pi := range l.prefixes {
		if pi.ch == ch {
			panic(fmt.Sprintf("fyfth: prefix %q already in use", ch))
		}
	}
	l.prefixes = append(l.prefixes, prefixInfo{ch: ch, fn: fn})
	return l
}

// Merge absorbs other into l. The keyword sets and prefix-character sets
// must be disjoint; other's command indices are renumbered past l's.
// other is not modified and must not be used afterwards for dispatch
// against l's interpreters.
func (l *Language) Merge(other *Language) error {
	for kw := range other.keywords {
		if _, exists := l.keywords[kw]; exists {
			return &ConflictError{Msg: fmt.Sprintf("keyword %q registered by both extensions", kw)}
		}
	}
	for _, op := range other.prefixes {
		for _, sp := range l.prefixes {
			if op.ch == sp.ch {
				return &ConflictError{Msg: fmt.Sprintf("prefix %q registered by both extensions", op.ch)}
			}
		}
	}

	offset := len(l.commands)
	l.commands = append(l.commands, other.commands...)
	for kw, id := range other.keywords {
		l.keywords[kw] = id + offset
	}
	l.prefixes = append(l.prefixes, other.prefixes...)
	return nil
}

// CommandID resolves a keyword to its command index.
func (l *Language) CommandID(keyword string) (int, bool) {
	id, ok := l.keywords[keyword]
	return id, ok
}

// Keyword returns the spelling of a command index, or "" if out of range.
func (l *Language) Keyword(id int) string {
	if id < 0 || id >= len(l.commands) {
		return ""
	}
	return l.commands[id].keyword
}

// NumCommands reports the size of the command table.
func (l *Language) NumCommands() int { return len(l.commands) }
