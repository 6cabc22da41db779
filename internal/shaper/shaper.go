// Package shaper runs the ordered sequence of structural passes (spec
// §4.4) that turn a flat token list into one tree per top-level R
// statement.
//
// Every pass recurses into whatever subtrees earlier passes have already
// built; Shape drives the fixed pass order and returns the resulting
// statement-root tokens.
package shaper

import (
	"fmt"

	"github.com/lloyddewit/rinsight/internal/rtoken"
)

// UnexpectedTokenShapeError reports a structure a shaping pass's
// precondition forbids (spec §7).
type UnexpectedTokenShapeError struct {
	Token   *rtoken.Token
	Message string
}

func (e *UnexpectedTokenShapeError) Error() string {
	if e.Token == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (at byte %d, lexeme %q)", e.Message, e.Token.ScriptPos, e.Token.Lexeme)
}

func unexpectedShape(t *rtoken.Token, message string) error {
	return &UnexpectedTokenShapeError{Token: t, Message: message}
}

// Shape runs the eight ordered passes over flat (the tokenizer's output)
// and returns one statement-root token per top-level R statement.
func Shape(flat []*rtoken.Token) ([]*rtoken.Token, error) {
	level := attachPresentation(flat)

	level, err := nestBrackets(level)
	if err != nil {
		return nil, err
	}

	level = recurse(level, groupCommas)

	level, err = recurseErr(level, bindFunctionCalls)
	if err != nil {
		return nil, err
	}

	level, err = applyPrecedence(level)
	if err != nil {
		return nil, err
	}

	level, err = recurseErr(level, bindTopLevelKeywords)
	if err != nil {
		return nil, err
	}

	level = recurse(level, attachEndStatements)

	for _, stmt := range level {
		promoteBraceBlockNewlines(stmt)
	}

	return level, nil
}

// recurse applies passFn to siblings at every level of the tree: once to
// the given level, then once more to every token's Children, recursively.
func recurse(siblings []*rtoken.Token, passFn func([]*rtoken.Token) []*rtoken.Token) []*rtoken.Token {
	out := passFn(siblings)
	for _, t := range out {
		t.Children = recurse(t.Children, passFn)
	}
	return out
}

// recurseErr is recurse for passes that can fail.
func recurseErr(siblings []*rtoken.Token, passFn func([]*rtoken.Token) ([]*rtoken.Token, error)) ([]*rtoken.Token, error) {
	out, err := passFn(siblings)
	if err != nil {
		return nil, err
	}
	for _, t := range out {
		t.Children, err = recurseErr(t.Children, passFn)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
