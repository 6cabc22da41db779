// Package rinsight is the public façade over the lossless R parser: it
// runs the lexer/tokenizer/shaper pipeline and exposes the result as an
// ordered set of editable StatementViews (spec §1, §6).
package rinsight

import (
	"github.com/lloyddewit/rinsight/internal/lexer"
	"github.com/lloyddewit/rinsight/internal/rerrors"
	"github.com/lloyddewit/rinsight/internal/shaper"
	"github.com/lloyddewit/rinsight/internal/stmt"
	"github.com/lloyddewit/rinsight/internal/tokenizer"
)

// Script holds every statement parsed from one source string, ordered by
// original start position, along with the source text itself.
type Script struct {
	source     string
	statements []*stmt.StatementView
}

// Parse runs the full lexer -> tokenizer -> shaper pipeline over source
// and returns the resulting Script, or the first MalformedInputError /
// UnexpectedTokenShapeError encountered.
func Parse(source string) (*Script, error) {
	lexemes, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}
	tokens, err := tokenizer.Tokenize(lexemes)
	if err != nil {
		return nil, err
	}
	roots, err := shaper.Shape(tokens)
	if err != nil {
		return nil, err
	}

	statements := make([]*stmt.StatementView, len(roots))
	for i, root := range roots {
		statements[i] = stmt.New(root)
	}
	return &Script{source: source, statements: statements}, nil
}

// Source returns the original text Parse was called with. It does not
// reflect edits made since parsing; call Text to get the current
// reconstructed source.
func (s *Script) Source() string {
	return s.source
}

// Statements returns every statement in the script, in original script
// order.
func (s *Script) Statements() []*stmt.StatementView {
	return s.statements
}

// StatementAt returns the statement whose StartPos equals pos, or nil if
// no statement starts there.
func (s *Script) StatementAt(pos int) *stmt.StatementView {
	for _, v := range s.statements {
		if v.StartPos() == pos {
			return v
		}
	}
	return nil
}

// Text reconstructs the script's current full text by concatenating
// every statement's Text() in order. This always matches the original
// source byte-for-byte unless Apply has been called since Parse.
func (s *Script) Text() string {
	var out string
	for _, v := range s.statements {
		out += v.Text()
	}
	return out
}

// Apply runs edit against the statement starting at pos, then shifts
// every later statement's positions by the resulting length delta so
// the whole script's bookkeeping stays correct (spec §6's
// rekeying contract). It returns rerrors.NotFound if no statement starts
// at pos.
func (s *Script) Apply(pos int, edit func(*stmt.StatementView) (int, error)) error {
	target := s.StatementAt(pos)
	if target == nil {
		return rerrors.NotFound("no statement starts at the given position")
	}

	oldEnd := target.EndPos()
	delta, err := edit(target)
	if err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}

	for _, v := range s.statements {
		if v == target {
			continue
		}
		v.AdjustStartPos(delta, oldEnd)
	}
	return nil
}

// Dump renders every statement's token tree as an indented debug tree,
// the format internal/rtoken.Token.Dump produces for one root.
func (s *Script) Dump() string {
	var out string
	for _, v := range s.statements {
		out += v.Root.Dump()
	}
	return out
}
