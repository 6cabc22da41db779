// Package tokenizer classifies a flat lexeme sequence into a flat sequence
// of typed rtoken.Tokens, in a single left-to-right pass (spec §4.3).
//
// Classification of any one lexeme depends only on a small rolling
// context — the previous functional element, whether it shares a line
// with the current lexeme, the open-bracket depth, and whether the
// current statement has seen an element yet — never on tokens further
// back or on anything the tree shaper produces later.
package tokenizer

import (
	"fmt"

	"github.com/lloyddewit/rinsight/internal/lexeme"
	"github.com/lloyddewit/rinsight/internal/lexer"
	"github.com/lloyddewit/rinsight/internal/rtoken"
)

// UnexpectedTokenShapeError reports a lexeme the classification cascade
// could not place into any kind (spec §4.3 step 14, "Invalid").
type UnexpectedTokenShapeError struct {
	Lexeme string
	Pos    int
}

func (e *UnexpectedTokenShapeError) Error() string {
	return fmt.Sprintf("unclassifiable lexeme %q at byte %d", e.Lexeme, e.Pos)
}

// context is the rolling state the single tokenizing pass threads through
// the lexeme list.
type context struct {
	prevElement     string
	havePrevElement bool
	sameLine        bool
	bracketDepth    int
	statementHasEl  bool
}

// Tokenize converts a lexeme sequence into a flat token sequence.
func Tokenize(lexemes []lexer.Lexeme) ([]*rtoken.Token, error) {
	ctx := &context{sameLine: true}
	tokens := make([]*rtoken.Token, 0, len(lexemes))

	for i, lx := range lexemes {
		kind, err := classify(lexemes, i, ctx)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, rtoken.New(kind, lx.Text, lx.Pos))
		ctx.advance(lx.Text, kind)
	}
	return tokens, nil
}

// advance updates the rolling context after lx has been classified as
// kind.
func (ctx *context) advance(text string, kind rtoken.Kind) {
	switch kind {
	case rtoken.Bracket:
		if text == "(" || text == "{" {
			ctx.bracketDepth++
		} else {
			ctx.bracketDepth--
		}
	case rtoken.OperatorBracket:
		if text == "[" || text == "[[" {
			ctx.bracketDepth++
		} else {
			ctx.bracketDepth--
		}
	}

	switch kind {
	case rtoken.Space, rtoken.Comment:
		return // presentation, not an element: context otherwise unchanged
	case rtoken.NewLine:
		ctx.sameLine = false
		return
	case rtoken.EndStatement:
		ctx.statementHasEl = false
		ctx.prevElement = text
		ctx.havePrevElement = true
		ctx.sameLine = true
		return
	default:
		ctx.statementHasEl = true
		ctx.prevElement = text
		ctx.havePrevElement = true
		ctx.sameLine = true
	}
}

// classify runs the 14-step cascade of spec §4.3 against lexemes[i].
func classify(lexemes []lexer.Lexeme, i int, ctx *context) (rtoken.Kind, error) {
	text := lexemes[i].Text

	switch {
	case lexeme.IsKeyword(text):
		return rtoken.KeyWord, nil

	case lexeme.IsSyntacticName(text):
		nextText, sameLine, ok := nextElement(lexemes, i+1)
		if ok && sameLine && nextText == "(" {
			return rtoken.FunctionName, nil
		}
		return rtoken.SyntacticName, nil

	case lexeme.IsComment(text):
		return rtoken.Comment, nil

	case lexeme.IsStringLiteral(text):
		return rtoken.ConstantString, nil

	case lexeme.IsNumber(text):
		return rtoken.ConstantNumber, nil

	case lexeme.IsNewline(text):
		if ctx.statementHasEl && ctx.bracketDepth == 0 && !prevSuppressesEndStatement(ctx) {
			return rtoken.EndStatement, nil
		}
		return rtoken.NewLine, nil

	case text == ";":
		return rtoken.EndStatement, nil

	case text == ",":
		return rtoken.Separator, nil

	case lexeme.IsSpaces(text):
		return rtoken.Space, nil

	case lexeme.IsBracket(text):
		return rtoken.Bracket, nil

	case lexeme.IsBracketOperator(text):
		return rtoken.OperatorBracket, nil

	case lexeme.IsUnaryCapable(text):
		if !ctx.havePrevElement || !lexeme.IsValidBinaryLeftOperand(ctx.prevElement) || !ctx.sameLine {
			return rtoken.OperatorUnaryRight, nil
		}
		if text == "~" && noValidRightOperandAhead(lexemes, i+1) {
			return rtoken.OperatorUnaryLeft, nil
		}
		return rtoken.OperatorBinary, nil

	case lexeme.IsReservedOperator(text), lexeme.IsUserDefinedOperatorComplete(text):
		return rtoken.OperatorBinary, nil

	default:
		return 0, &UnexpectedTokenShapeError{Lexeme: text, Pos: lexemes[i].Pos}
	}
}

// prevSuppressesEndStatement reports whether the previous element's text
// is an operator that keeps an expression open across a line break — any
// reserved or complete user-defined operator except "~", which may stand
// as a complete one-sided statement.
func prevSuppressesEndStatement(ctx *context) bool {
	if !ctx.havePrevElement {
		return false
	}
	if ctx.prevElement == "~" {
		return false
	}
	return lexeme.IsReservedOperator(ctx.prevElement) || lexeme.IsUserDefinedOperatorComplete(ctx.prevElement)
}

// nextElement scans forward from index i for the next functional
// (non-presentation) lexeme, skipping spaces and comments. It reports
// whether that element is still on the same physical line as lexemes[i-1]
// (i.e. no newline lexeme was skipped to reach it).
func nextElement(lexemes []lexer.Lexeme, i int) (text string, sameLine bool, ok bool) {
	sameLine = true
	for ; i < len(lexemes); i++ {
		t := lexemes[i].Text
		switch {
		case lexeme.IsSpaces(t), lexeme.IsComment(t):
			continue
		case lexeme.IsNewline(t):
			sameLine = false
			continue
		default:
			return t, sameLine, true
		}
	}
	return "", sameLine, false
}

// noValidRightOperandAhead reports that scanning forward from i, either
// the lexeme stream ends, a newline is hit, or the next functional lexeme
// is not a valid binary right operand — all on the current physical line.
func noValidRightOperandAhead(lexemes []lexer.Lexeme, i int) bool {
	text, sameLine, ok := nextElement(lexemes, i)
	if !ok || !sameLine {
		return true
	}
	return !lexeme.IsValidBinaryRightOperand(text)
}
