// lexer.go
//
// The tokenizer. Source text is split into Words lazily: each call to Next
// scans just far enough to produce the next word, so a caller may stop early
// without paying for the rest of the input.
//
// Rules:
//   - Each line is comment-stripped at the first `#`.
//   - Blank lines (after stripping) are skipped.
//   - Unquoted words are maximal runs of non-whitespace characters. A
//     leading character registered as a prefix is consumed as a prefix tag
//     and does not become part of the word text.
//   - Quoted words run from `"` to the next unescaped `"`, or to the end of
//     the line if unterminated (lenient: the captured text is the word).
//     Escapes: \n \t \r \" \\. Any other \X is reported through Diag and X
//     is dropped from the output.
//   - A prefix character with nothing following it before the end of the
//     line is a lex error.
package fyfth

import (
	"fmt"
	"strings"
	"unicode"
)

// Word is one token of source text.
type Word struct {
	Text   string
	Prefix int // index into the language's prefix table; -1 when absent
	Quoted bool
}

// Lexer produces Words one at a time. The zero value is not usable; build
// one with NewLexer.
type Lexer struct {
	lines []string
	line  int // index into lines; -1 before the first call
	pos   int // byte offset into the comment-stripped current line
	lang  *Language

	// Diag, when non-nil, receives best-effort diagnostics that do not
	// abort lexing (currently only illegal escape codes).
	Diag func(msg string)
}

// NewLexer builds a lexer over src. lang supplies the registered prefix
// characters and may be nil, in which case no prefixes are recognized.
func NewLexer(src string, lang *Language) *Lexer {
	return &Lexer{lines: strings.Split(src, "\n"), line: -1, lang: lang}
}

type lexState int

const (
	lexBase lexState = iota
	lexPrefixed
	lexWord
	lexQuoteStart
	lexQuoted
	lexDoneWord
	lexDoneQuoted
)

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// Next returns the next word. ok is false once the input is exhausted.
// A non-nil error is fatal for the whole parse call.
func (lx *Lexer) Next() (w Word, ok bool, err error) {
	// advance to a line with remaining content
	for lx.line < 0 || strings.TrimSpace(stripComment(lx.lines[lx.line])[lx.pos:]) == "" {
		lx.line++
		lx.pos = 0
		if lx.line >= len(lx.lines) {
			return Word{}, false, nil
		}
	}

	cur := stripComment(lx.lines[lx.line])[lx.pos:]

	state := lexBase
	start, end := 0, 0
	escaped := false
	prefix := -1

	for i, ch := range cur {
		if state == lexDoneWord || state == lexDoneQuoted {
			break
		}
		switch state {
		case lexBase:
			switch {
			case ch == '"':
				state = lexQuoteStart
			case unicode.IsSpace(ch):
			default:
				if p := lx.prefixIndex(ch); p >= 0 {
					state = lexPrefixed
					prefix = p
				} else {
					start = i
					state = lexWord
				}
			}
		case lexPrefixed:
			switch {
			case ch == '"':
				state = lexQuoteStart
			case unicode.IsSpace(ch):
			default:
				start = i
				state = lexWord
			}
		case lexWord:
			if unicode.IsSpace(ch) {
				end = i
				state = lexDoneWord
			}
		case lexQuoteStart:
			if ch == '"' {
				// empty string
				start = i
				end = i
				state = lexDoneQuoted
			} else {
				start = i
				state = lexQuoted
			}
		case lexQuoted:
			switch {
			case ch == '\\':
				escaped = !escaped
			case ch == '"' && !escaped:
				end = i
				state = lexDoneQuoted
			default:
				escaped = false
			}
		}
	}

	// finish off words that ran to the end of the line
	switch state {
	case lexPrefixed:
		lx.pos = len(stripComment(lx.lines[lx.line]))
		return Word{}, false, &LexError{Line: lx.line + 1, Msg: "prefix character with no word following it"}
	case lexWord:
		end = len(cur)
		state = lexDoneWord
	case lexQuoteStart, lexQuoted:
		end = len(cur)
		state = lexDoneQuoted
	case lexDoneQuoted:
		// skip the closing `"`
		lx.pos++
	}

	lx.pos += end

	switch state {
	case lexDoneWord:
		return Word{Text: cur[start:end], Prefix: prefix}, true, nil
	case lexDoneQuoted:
		return Word{Text: lx.decodeEscapes(cur[start:end]), Prefix: prefix, Quoted: true}, true, nil
	default:
		// only blank input reaches here, and that is handled above
		return Word{}, false, nil
	}
}

func (lx *Lexer) decodeEscapes(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	escaped := false
	for _, ch := range raw {
		if !escaped {
			if ch == '\\' {
				escaped = true
			} else {
				b.WriteRune(ch)
			}
			continue
		}
		switch ch {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			if lx.Diag != nil {
				lx.Diag(fmt.Sprintf("illegal escape code `\\%c` on line %d", ch, lx.line+1))
			}
		}
		escaped = false
	}
	return b.String()
}

func (lx *Lexer) prefixIndex(ch rune) int {
	if lx.lang == nil {
		return -1
	}
	for i, pi := range lx.lang.prefixes {
		if pi.ch == ch {
			return i
		}
	}
	return -1
}

// Scan drains the lexer and returns all remaining words.
func (lx *Lexer) Scan() ([]Word, error) {
	var out []Word
	for {
		w, ok, err := lx.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, w)
	}
}
