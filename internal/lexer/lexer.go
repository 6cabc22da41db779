// Package lexer segments R source code into an ordered sequence of
// lexemes using longest-match extension and a bracket-depth stack for the
// "[" / "[[" / "]" / "]]" subscript operators.
//
// The segmentation algorithm never looks at token context (that is the
// tokenizer's job, one layer up): it only ever asks internal/lexeme
// whether the buffer it is growing is still a legitimate lexeme prefix.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/juju/loggo"

	"github.com/lloyddewit/rinsight/internal/lexeme"
)

var logger = loggo.GetLogger("rinsight.lexer")

// Lexeme pairs a segmented substring with its absolute byte offset in the
// original source.
type Lexeme struct {
	Text string
	Pos  int
}

// MalformedInputError reports a lexer-level failure: an unmatched close
// bracket, or a final buffer that never became a complete lexeme.
type MalformedInputError struct {
	Message string
	Pos     int
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at byte %d: %s", e.Pos, e.Message)
}

// Option configures a Lexer. Modeled on the teacher's functional-options
// lexer API.
type Option func(*Lexer)

// WithTracing enables per-character TRACE logging of buffer-extension
// decisions, useful when diagnosing why a lexeme split where it did.
func WithTracing(trace bool) Option {
	return func(l *Lexer) {
		if trace {
			logger.SetLogLevel(loggo.TRACE)
		}
	}
}

// Lexer holds the bracket-depth stack and growing buffer used to segment
// one source string.
type Lexer struct {
	input string
	// bracketStack records, for each unmatched open "[" / "[[", whether
	// the opener was single (true) or double (false).
	bracketStack []bool
}

// New creates a Lexer for the given input string.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lex segments the input in a single pass and returns the complete ordered
// lexeme sequence, or a MalformedInputError.
func Lex(input string, opts ...Option) ([]Lexeme, error) {
	return New(input, opts...).Lex()
}

// Lex runs the longest-match segmentation described in spec §4.2.
func (l *Lexer) Lex() ([]Lexeme, error) {
	var result []Lexeme
	buffer := ""
	bufStart := 0
	i := 0
	n := len(l.input)

	for i < n {
		r, size := decodeRune(l.input[i:])
		candidate := buffer + string(r)

		if l.canExtend(candidate) {
			logger.Tracef("extend buffer %q -> %q at byte %d", buffer, candidate, i)
			buffer = candidate
			i += size
			continue
		}

		if buffer == "" {
			// Only the first character of the input can get here (after
			// it, the buffer always holds at least one character): it
			// starts no valid lexeme, so there is nothing sensible to
			// flush; fail here rather than emit an empty lexeme.
			return nil, &MalformedInputError{Message: "invalid character", Pos: i}
		}

		if err := l.flush(buffer, bufStart, &result); err != nil {
			return nil, err
		}
		buffer = string(r)
		bufStart = i
		i += size
	}

	if buffer != "" {
		// A quoted literal or %...% operator still open at end of input
		// stays valid with one more copy of its opening character
		// appended; a closed one does not.
		unclosed := (lexeme.IsStringLiteral(buffer) || lexeme.IsUserDefinedOperatorPartial(buffer)) &&
			lexeme.IsValid(buffer+buffer[:1])
		if !lexeme.IsValid(buffer) || unclosed {
			return nil, &MalformedInputError{Message: "incomplete final lexeme", Pos: bufStart}
		}
		if err := l.flush(buffer, bufStart, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// canExtend reports whether appending the next rune keeps buffer a valid
// lexeme, honoring the bracket-stack carve-out: a "]" never grows into a
// "]]" while the innermost unmatched opener was a single "[".
func (l *Lexer) canExtend(candidate string) bool {
	if !lexeme.IsValid(candidate) {
		return false
	}
	if candidate == "]]" && l.topExpectsSingleClose() {
		return false
	}
	return true
}

func (l *Lexer) topExpectsSingleClose() bool {
	if len(l.bracketStack) == 0 {
		return false
	}
	return l.bracketStack[len(l.bracketStack)-1]
}

// flush finalizes buffer as a lexeme, updates the bracket stack, and
// appends it to result.
func (l *Lexer) flush(buffer string, pos int, result *[]Lexeme) error {
	switch buffer {
	case "[":
		l.bracketStack = append(l.bracketStack, true)
	case "[[":
		l.bracketStack = append(l.bracketStack, false)
	case "]", "]]":
		if len(l.bracketStack) == 0 {
			return &MalformedInputError{Message: "unmatched close bracket " + buffer, Pos: pos}
		}
		l.bracketStack = l.bracketStack[:len(l.bracketStack)-1]
	}
	logger.Tracef("emit lexeme %q at byte %d", buffer, pos)
	*result = append(*result, Lexeme{Text: buffer, Pos: pos})
	return nil
}

// decodeRune decodes the first rune of s. An invalid UTF-8 byte decodes as
// itself with size 1, so the lexer always makes forward progress instead
// of looping on malformed encoding.
func decodeRune(s string) (rune, int) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		if len(s) == 0 {
			return 0, 0
		}
		return rune(s[0]), 1
	}
	return r, size
}
