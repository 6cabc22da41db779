// Package rerrors defines the parser's user-visible error surface (spec
// §7): two abort-the-parse kinds surfaced as Go errors, and two
// edit-primitive kinds raised by internal/stmt.
//
// Formatting follows the teacher's internal/errors package: a source line
// plus a caret pointing at the offending column. Error-kind codes follow
// internal/parser/error.go's ErrXxx string-constant convention.
package rerrors

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
)

// Code identifies which of spec §7's four error kinds a SourceError
// represents.
type Code string

const (
	// CodeMalformedInput names a lexer-level failure: an unmatched close
	// bracket, or a final buffer that never completed a lexeme. The lexer
	// itself reports these as *lexer.MalformedInputError.
	CodeMalformedInput Code = "E_MALFORMED_INPUT"
	// CodeUnexpectedTokenShape names a tokenizer or shaper failure: a
	// structure forbidden by a pass's precondition. Those stages report it
	// as their own UnexpectedTokenShapeError type.
	CodeUnexpectedTokenShape Code = "E_UNEXPECTED_TOKEN_SHAPE"
	// CodeEditTargetNotFound is raised by an edit primitive that could
	// not locate the requested function or operator.
	CodeEditTargetNotFound Code = "E_EDIT_TARGET_NOT_FOUND"
	// CodeEditPreconditionViolated is raised by an edit primitive whose
	// precondition does not hold (e.g. a non-zero operand index on a
	// unary operator).
	CodeEditPreconditionViolated Code = "E_EDIT_PRECONDITION_VIOLATED"
)

// SourceError is a single parse or edit failure with position and source
// context, formatted like the teacher's CompilerError.
type SourceError struct {
	Code    Code
	Message string
	Source  string
	Pos     int // absolute byte offset into Source
}

// New constructs a SourceError.
func New(code Code, pos int, source, message string) *SourceError {
	return &SourceError{Code: code, Message: message, Source: source, Pos: pos}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source line and a caret under the
// offending byte offset. If color is true, the caret is wrapped in ANSI
// red-bold escapes.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder
	line, col, lineText := locate(e.Source, e.Pos)

	fmt.Fprintf(&sb, "%s at line %d, column %d\n", e.Message, line, col)
	if lineText != "" {
		prefix := fmt.Sprintf("%4d | ", line)
		sb.WriteString(prefix)
		sb.WriteString(lineText)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}
	return sb.String()
}

// locate converts an absolute byte offset into a 1-based line/column and
// returns that line's text (without its terminator).
func locate(source string, pos int) (line, col int, lineText string) {
	line, col = 1, 1
	lineStart := 0
	for i := 0; i < pos && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
			lineStart = i + 1
		} else {
			col++
		}
	}
	lineEnd := len(source)
	if idx := strings.IndexByte(source[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	if lineStart <= len(source) {
		lineText = source[lineStart:min(lineEnd, len(source))]
	}
	return
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// WrapEdit annotates err as an edit-primitive failure using juju/errors,
// so callers can still recover the original *SourceError with
// errors.Cause.
func WrapEdit(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Annotate(err, context)
}

// NotFound builds an EditTargetNotFound error for an edit primitive that
// could not locate its target.
func NotFound(what string) *SourceError {
	return &SourceError{Code: CodeEditTargetNotFound, Message: "edit target not found: " + what}
}

// PreconditionViolated builds an EditPreconditionViolated error.
func PreconditionViolated(what string) *SourceError {
	return &SourceError{Code: CodeEditPreconditionViolated, Message: "edit precondition violated: " + what}
}
