package stmt

import (
	"fmt"
	"strings"

	"github.com/lloyddewit/rinsight/internal/rerrors"
	"github.com/lloyddewit/rinsight/internal/rtoken"
)

// findAll walks t's subtree in document order, returning every token
// matching pred.
func findAll(t *rtoken.Token, pred func(*rtoken.Token) bool) []*rtoken.Token {
	var out []*rtoken.Token
	var walk func(*rtoken.Token)
	walk = func(n *rtoken.Token) {
		if pred(n) {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t)
	return out
}

// findParent returns whichever token in root's subtree has target as a
// direct child, or nil if target is not present.
func findParent(root, target *rtoken.Token) *rtoken.Token {
	for _, c := range root.Children {
		if c == target {
			return root
		}
		if p := findParent(c, target); p != nil {
			return p
		}
	}
	return nil
}

// findFunctionCall returns the occurrence-th (0-indexed, document order)
// FunctionName token named name.
func findFunctionCall(root *rtoken.Token, name string, occurrence int) (*rtoken.Token, error) {
	matches := findAll(root, func(t *rtoken.Token) bool {
		return t.Kind == rtoken.FunctionName && t.Lexeme == name
	})
	if occurrence < 0 || occurrence >= len(matches) {
		return nil, rerrors.NotFound(fmt.Sprintf("call to %q (occurrence %d of %d)", name, occurrence, len(matches)))
	}
	return matches[occurrence], nil
}

// findOperator returns the occurrence-th (0-indexed, document order)
// operator token (of any operator Kind) whose lexeme is lexemeText.
func findOperator(root *rtoken.Token, lexemeText string, occurrence int) (*rtoken.Token, error) {
	matches := findAll(root, func(t *rtoken.Token) bool {
		if t.Lexeme != lexemeText {
			return false
		}
		switch t.Kind {
		case rtoken.OperatorBinary, rtoken.OperatorUnaryLeft, rtoken.OperatorUnaryRight, rtoken.OperatorBracket:
			return true
		}
		return false
	})
	if occurrence < 0 || occurrence >= len(matches) {
		return nil, rerrors.NotFound(fmt.Sprintf("operator %q (occurrence %d of %d)", lexemeText, occurrence, len(matches)))
	}
	return matches[occurrence], nil
}

// argListHost returns fn's "(" argument-list token.
func argListHost(fn *rtoken.Token) *rtoken.Token {
	for _, c := range fn.Children {
		if c.Kind == rtoken.Bracket && c.Lexeme == "(" {
			return c
		}
	}
	return nil
}

// argSlots returns host's argument slots in order: the bare first
// argument (if the call has one and it isn't itself led by a comma) and
// every Separator token after it. A bracket-subscript host's own left
// operand (the object being subscripted, which always has a ScriptPos
// before host's own) is excluded; a function call's "(" has no such
// operand to exclude.
func argSlots(host *rtoken.Token) []*rtoken.Token {
	var slots []*rtoken.Token
	seenFirst := false
	for _, c := range host.Children {
		switch {
		case c.Kind == rtoken.Presentation, c.Kind == rtoken.Empty:
			continue
		case isCloser(c):
			continue
		case c.Kind == rtoken.Separator:
			slots = append(slots, c)
		case !seenFirst && c.ScriptPos < host.ScriptPos:
			seenFirst = true // the bracket's left operand, not an argument
		default:
			seenFirst = true
			slots = append(slots, c)
		}
	}
	return slots
}

func isCloser(t *rtoken.Token) bool {
	switch t.Kind {
	case rtoken.Bracket:
		return t.Lexeme == ")" || t.Lexeme == "}"
	case rtoken.OperatorBracket:
		return t.Lexeme == "]" || t.Lexeme == "]]"
	}
	return false
}

// argExpr returns the argument expression a slot carries: a separator's
// single child, or the slot itself for a bare first argument. It is nil
// for an empty argument (e.g. the middle slot of "f(a, , b)").
func argExpr(slot *rtoken.Token) *rtoken.Token {
	if slot.Kind == rtoken.Separator {
		ops := realOperands(slot)
		if len(ops) == 0 {
			return nil
		}
		return ops[0]
	}
	return slot
}

// namedValue returns expr's value operand if expr is a named-argument
// "=" binding, or expr itself otherwise.
func namedValue(expr *rtoken.Token) *rtoken.Token {
	if expr.Kind == rtoken.OperatorBinary && expr.Lexeme == "=" && len(expr.Children) > 0 {
		return expr.Children[len(expr.Children)-1]
	}
	return expr
}

// realOperands returns t's non-presentation children, in position order.
func realOperands(t *rtoken.Token) []*rtoken.Token {
	var out []*rtoken.Token
	for _, c := range t.Children {
		if c.Kind == rtoken.Presentation || c.Kind == rtoken.Empty {
			continue
		}
		out = append(out, c)
	}
	return out
}

// collectArgTexts renders every argument slot of host back to source
// text, in order, with surrounding whitespace trimmed and an empty string
// for an omitted argument.
func collectArgTexts(host *rtoken.Token) []string {
	slots := argSlots(host)
	texts := make([]string, len(slots))
	for i, s := range slots {
		if expr := argExpr(s); expr != nil {
			texts[i] = strings.TrimSpace(expr.Text())
		}
	}
	return texts
}

func closingFor(opener string) string {
	switch opener {
	case "(":
		return ")"
	case "[":
		return "]"
	case "[[":
		return "]]"
	}
	return ""
}
