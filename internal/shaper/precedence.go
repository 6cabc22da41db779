package shaper

import "github.com/lloyddewit/rinsight/internal/rtoken"

// precGroup is one row of the operator precedence table (spec §4.4.5),
// ordered highest-precedence first. kinds restricts which of the
// lexeme's possible tokenizer-assigned Kinds this row matches: the same
// operator text can carry different Kinds (e.g. unary "-" vs binary "-"),
// and the table separates those into different rows.
type precGroup struct {
	operators  map[string]bool
	kinds      map[rtoken.Kind]bool
	rightAssoc bool
}

func ops(texts ...string) map[string]bool {
	m := make(map[string]bool, len(texts))
	for _, t := range texts {
		m[t] = true
	}
	return m
}

func kinds(ks ...rtoken.Kind) map[rtoken.Kind]bool {
	m := make(map[rtoken.Kind]bool, len(ks))
	for _, k := range ks {
		m[k] = true
	}
	return m
}

// precedenceTable is spec §4.4.5's 19-row table, highest precedence
// (binds tightest, structured first) to lowest.
var precedenceTable = []precGroup{
	{operators: ops("::", ":::"), kinds: kinds(rtoken.OperatorBinary)},
	{operators: ops("$", "@"), kinds: kinds(rtoken.OperatorBinary)},
	{operators: ops("[", "[["), kinds: kinds(rtoken.OperatorBracket)},
	{operators: ops("^"), kinds: kinds(rtoken.OperatorBinary), rightAssoc: true},
	{operators: ops("+", "-"), kinds: kinds(rtoken.OperatorUnaryRight)},
	{operators: ops(":"), kinds: kinds(rtoken.OperatorBinary)},
	// nil operators is the sentinel matches() reads as "any %...%
	// spelling", covering both the handful of reserved %op% forms and
	// arbitrary user-defined ones.
	{operators: nil, kinds: kinds(rtoken.OperatorBinary)},
	{operators: ops("|>"), kinds: kinds(rtoken.OperatorBinary)},
	{operators: ops("*", "/"), kinds: kinds(rtoken.OperatorBinary)},
	{operators: ops("+", "-"), kinds: kinds(rtoken.OperatorBinary)},
	{operators: ops("<", ">", "<>", "<=", ">=", "==", "!="), kinds: kinds(rtoken.OperatorBinary)},
	{operators: ops("!", "!!", "!!!"), kinds: kinds(rtoken.OperatorUnaryRight)},
	{operators: ops("&", "&&"), kinds: kinds(rtoken.OperatorBinary)},
	{operators: ops("|", "||"), kinds: kinds(rtoken.OperatorBinary)},
	{operators: ops("~"), kinds: kinds(rtoken.OperatorBinary, rtoken.OperatorUnaryLeft, rtoken.OperatorUnaryRight)},
	{operators: ops("->", "->>"), kinds: kinds(rtoken.OperatorBinary), rightAssoc: true},
	{operators: ops("<-", "<<-", ":="), kinds: kinds(rtoken.OperatorBinary), rightAssoc: true},
	{operators: ops("="), kinds: kinds(rtoken.OperatorBinary), rightAssoc: true},
	{operators: ops("?", "??"), kinds: kinds(rtoken.OperatorBinary, rtoken.OperatorUnaryRight)},
}

func (g precGroup) matches(t *rtoken.Token) bool {
	if !g.kinds[t.Kind] {
		return false
	}
	if g.operators == nil {
		return len(t.Lexeme) >= 2 && t.Lexeme[0] == '%' && t.Lexeme[len(t.Lexeme)-1] == '%'
	}
	return g.operators[t.Lexeme]
}

// applyPrecedence implements spec §4.4.5: each table row is swept over
// every level of the tree, highest precedence first, so tighter-binding
// operators are structured (and so become non-splittable units) before
// looser ones are considered. A visited set spans the whole pass so an
// operator token is restructured exactly once, at whichever row its
// lexeme and Kind belong to.
func applyPrecedence(top []*rtoken.Token) ([]*rtoken.Token, error) {
	done := map[*rtoken.Token]bool{}
	return applyPrecedenceLevel(top, done)
}

func applyPrecedenceLevel(level []*rtoken.Token, done map[*rtoken.Token]bool) ([]*rtoken.Token, error) {
	var err error
	for _, g := range precedenceTable {
		level, err = sweep(level, g, done)
		if err != nil {
			return nil, err
		}
	}
	for _, t := range level {
		t.Children, err = applyPrecedenceLevel(t.Children, done)
		if err != nil {
			return nil, err
		}
	}
	return level, nil
}

// sweep scans level once for g's operators, left-to-right or
// right-to-left per g.rightAssoc, restructuring each match in place.
func sweep(level []*rtoken.Token, g precGroup, done map[*rtoken.Token]bool) ([]*rtoken.Token, error) {
	work := append([]*rtoken.Token(nil), level...)

	start, step := 0, 1
	if g.rightAssoc {
		start, step = len(work)-1, -1
	}

	for i := start; i >= 0 && i < len(work); i += step {
		t := work[i]
		if done[t] || !g.matches(t) {
			continue
		}

		var loIdx, hiIdx int // inclusive range of siblings consumed besides t
		switch t.Kind {
		case rtoken.OperatorBracket, rtoken.OperatorUnaryLeft:
			if i == 0 {
				return nil, unexpectedShape(t, "operator missing its left operand")
			}
			loIdx, hiIdx = i-1, i-1
			t.Children = prependOperand(t, work[i-1])

		case rtoken.OperatorUnaryRight:
			if i == len(work)-1 {
				return nil, unexpectedShape(t, "operator missing its right operand")
			}
			loIdx, hiIdx = i+1, i+1
			t.Children = append(t.Children, work[i+1])

		case rtoken.OperatorBinary:
			if i == 0 || i == len(work)-1 {
				return nil, unexpectedShape(t, "operator missing an operand")
			}
			extra := 0
			if work[i+1].Kind == rtoken.KeyWord {
				var err error
				extra, err = bindKeyword(work, i+1)
				if err != nil {
					return nil, err
				}
			}
			t.Children = append(t.Children, work[i-1], work[i+1])
			loIdx, hiIdx = i-1, i+1+extra

		default:
			continue
		}

		// A token may already carry a leading Presentation child from
		// the earlier presentation pass; re-sort rather than reason
		// case-by-case about where each new operand lands relative to
		// it.
		t.SortChildren()
		done[t] = true
		newWork := make([]*rtoken.Token, 0, len(work)-(hiIdx-loIdx+1))
		newWork = append(newWork, work[:loIdx]...)
		newWork = append(newWork, t)
		newWork = append(newWork, work[hiIdx+1:]...)

		// t now lives at loIdx in the shrunk slice. Setting i = loIdx and
		// letting the loop's own i += step run next lands one past t in
		// whichever direction this sweep travels (loIdx+1 going forward,
		// loIdx-1 going backward), so scanning resumes right after t
		// without revisiting operands it just consumed.
		work = newWork
		i = loIdx
	}

	return work, nil
}

// prependOperand inserts operand as t's first non-presentation child,
// keeping any leading Presentation child first (spec §4.4.5's bracket
// operator row: existing bracket-pass children remain trailing).
func prependOperand(t, operand *rtoken.Token) []*rtoken.Token {
	insertAt := 0
	if len(t.Children) > 0 && t.Children[0].Kind == rtoken.Presentation {
		insertAt = 1
	}
	out := make([]*rtoken.Token, 0, len(t.Children)+1)
	out = append(out, t.Children[:insertAt]...)
	out = append(out, operand)
	out = append(out, t.Children[insertAt:]...)
	return out
}
