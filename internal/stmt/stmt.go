// Package stmt implements the statement view (spec §4.5) and the edit
// primitives built on it (spec §4.6): re-parse-and-splice operations
// that rewrite one statement's tree in place while keeping every other
// token's position correct.
package stmt

import (
	"strings"

	"github.com/lloyddewit/rinsight/internal/rtoken"
)

// assignmentOperators is the closed set of operator lexemes that make a
// statement an assignment (spec §4.5's is_assignment flag).
var assignmentOperators = map[string]bool{
	"<-": true, "<<-": true, "->": true, "->>": true, "=": true, ":=": true,
}

// StatementView wraps one shaped statement-root token with the read-only
// accessors and edit primitives spec §4.5/§4.6 define over it.
type StatementView struct {
	Root *rtoken.Token
}

// New wraps root as a StatementView.
func New(root *rtoken.Token) *StatementView {
	return &StatementView{Root: root}
}

// StartPos returns the statement's first byte offset in the original
// script, including any leading presentation it owns.
func (v *StatementView) StartPos() int {
	return v.Root.ScriptPosStartStatement()
}

// EndPos returns one past the statement's last byte offset, including
// its terminator if it has one.
func (v *StatementView) EndPos() int {
	return v.Root.ScriptPosEndStatement()
}

// IsAssignment reports whether the statement's root token is one of R's
// assignment operators.
func (v *StatementView) IsAssignment() bool {
	return v.Root.Kind == rtoken.OperatorBinary && assignmentOperators[v.Root.Lexeme]
}

// Text returns the statement's exact original source text.
func (v *StatementView) Text() string {
	return v.Root.Text()
}

// spacedKeywords are the reserved words spec §6 requires
// TextNoFormatting to surround with exactly one space on each side,
// since removing their surrounding whitespace would otherwise merge
// them into an adjacent identifier ("i in x" -> "iinx").
var spacedKeywords = map[string]bool{
	"else": true, "in": true, "repeat": true,
}

// TextNoFormatting returns the statement's text with every Presentation
// and synthetic Empty token (whitespace, comments, non-terminating
// newlines) removed, leaving only the lexemes that carry meaning: every
// EndStatement becomes ";", a trailing ";" is trimmed, and else/in/repeat
// are padded with a single space on each side.
func (v *StatementView) TextNoFormatting() string {
	var sb strings.Builder
	writeNoFormatting(v.Root, &sb)
	return strings.TrimSuffix(sb.String(), ";")
}

func writeNoFormatting(t *rtoken.Token, sb *strings.Builder) {
	if t.Kind == rtoken.Presentation || t.Kind == rtoken.Empty {
		return
	}
	if t.Kind == rtoken.EndStatement {
		sb.WriteString(";")
		return
	}
	lexeme := t.Lexeme
	if t.Kind == rtoken.KeyWord && spacedKeywords[lexeme] {
		lexeme = " " + lexeme + " "
	}
	inserted := false
	for _, c := range t.Children {
		if c.Kind == rtoken.Presentation || c.Kind == rtoken.Empty {
			continue
		}
		if !inserted && c.ScriptPos > t.ScriptPos {
			sb.WriteString(lexeme)
			inserted = true
		}
		writeNoFormatting(c, sb)
	}
	if !inserted {
		sb.WriteString(lexeme)
	}
}

// AdjustStartPos shifts every token's ScriptPos at or after minPos by
// delta. pkg/rinsight calls this on every statement after the one just
// edited, so the whole script's positions stay correct following a
// length-changing edit.
func (v *StatementView) AdjustStartPos(delta, minPos int) {
	v.Root.AdjustStartPos(delta, minPos)
}
