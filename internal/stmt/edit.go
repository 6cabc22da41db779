package stmt

import (
	"fmt"
	"strings"

	"github.com/lloyddewit/rinsight/internal/lexer"
	"github.com/lloyddewit/rinsight/internal/rerrors"
	"github.com/lloyddewit/rinsight/internal/rtoken"
	"github.com/lloyddewit/rinsight/internal/shaper"
	"github.com/lloyddewit/rinsight/internal/tokenizer"
)

// Side picks which operand of a binary (or unary) operator an edit
// targets.
type Side int

const (
	LeftOperand Side = iota
	RightOperand
)

// parseExpression re-lexes, re-tokenizes, and re-shapes text as a single
// self-contained expression, the replacement material every edit
// primitive below builds before splicing it into the live tree (spec
// §5's non-transactional contract: the new subtree is complete before
// anything live is touched).
func parseExpression(text string) (*rtoken.Token, error) {
	lexemes, err := lexer.Lex(text)
	if err != nil {
		return nil, rerrors.WrapEdit(err, fmt.Sprintf("parsing replacement text %q", text))
	}
	tokens, err := tokenizer.Tokenize(lexemes)
	if err != nil {
		return nil, rerrors.WrapEdit(err, fmt.Sprintf("parsing replacement text %q", text))
	}
	stmts, err := shaper.Shape(tokens)
	if err != nil {
		return nil, rerrors.WrapEdit(err, fmt.Sprintf("parsing replacement text %q", text))
	}
	if len(stmts) != 1 {
		return nil, rerrors.PreconditionViolated(fmt.Sprintf("replacement text %q must parse as exactly one expression, got %d", text, len(stmts)))
	}
	root := stmts[0]
	if n := len(root.Children); n > 0 && root.Children[n-1].Kind == rtoken.EndStatement {
		root.Children = root.Children[:n-1]
	}
	return root, nil
}

// replaceSubtree swaps target, wherever it sits inside view.Root, for a
// freshly parsed subtree built from newText, then shifts every position
// after the old subtree by the resulting length delta. The target's
// leading presentation (the whitespace or comment in front of it) is kept
// in front of the new subtree; only the text after it is replaced. It
// returns the delta.
func replaceSubtree(v *StatementView, target *rtoken.Token, newText string) (int, error) {
	parent := findParent(v.Root, target)
	if parent == nil {
		return 0, rerrors.NotFound("edit target is not part of this statement")
	}

	newRoot, err := parseExpression(newText)
	if err != nil {
		return 0, err
	}

	oldStart := target.ScriptPosStartStatement()
	oldEnd := target.ScriptPosEndStatement()
	lead := target
	for len(lead.Children) > 0 && lead.Children[0].ScriptPosStartStatement() < lead.ScriptPos {
		lead = lead.Children[0]
	}
	newStart := oldStart
	if lead.Kind == rtoken.Presentation {
		newStart = lead.End()
	} else {
		lead = nil
	}
	delta := len(newText) - (oldEnd - newStart)

	// Shift everything strictly after the old subtree first, while
	// target (not yet replaced) still occupies [oldStart, oldEnd): its
	// own nodes all have ScriptPos < oldEnd, so this leaves them alone.
	v.Root.AdjustStartPos(delta, oldEnd)

	// Only now remap the new subtree into place and splice it in.
	newRoot.AdjustStartPos(newStart, 0)
	if lead != nil {
		newRoot.PrependChild(lead)
	}
	for i, c := range parent.Children {
		if c == target {
			parent.Children[i] = newRoot
			break
		}
	}
	parent.SortChildren()

	return delta, nil
}

// rebuildBracketArgs replaces the subscript-argument portion of a
// bracket-operator host (everything after its opening "[" / "[[" except
// the existing left operand) with freshly parsed text built from
// newArgTexts, preserving the real left operand untouched.
func rebuildBracketArgs(v *StatementView, host *rtoken.Token, newArgTexts []string) (int, error) {
	const placeholder = "a"
	scratchText := placeholder + host.Lexeme + strings.Join(newArgTexts, ", ") + closingFor(host.Lexeme)

	parsed, err := parseExpression(scratchText)
	if err != nil {
		return 0, err
	}
	if parsed.Kind != rtoken.OperatorBracket {
		return 0, rerrors.PreconditionViolated("internal: rebuilt subscript did not reparse as a bracket operator")
	}

	var body []*rtoken.Token
	for _, c := range parsed.Children {
		if c.ScriptPos > parsed.ScriptPos {
			body = append(body, c)
		}
	}

	oldBodyStart := host.End()
	oldBodyEnd := host.ScriptPosEndStatement()

	scratchBodyStart := len(placeholder) + len(host.Lexeme)
	shift := oldBodyStart - scratchBodyStart
	for _, b := range body {
		b.AdjustStartPos(shift, 0)
	}

	newBodyEnd := oldBodyStart
	if len(body) > 0 {
		newBodyEnd = body[len(body)-1].ScriptPosEndStatement()
	}
	delta := newBodyEnd - oldBodyEnd

	v.Root.AdjustStartPos(delta, oldBodyEnd)

	var preHost []*rtoken.Token
	for _, c := range host.Children {
		if c.ScriptPos < host.ScriptPos {
			preHost = append(preHost, c)
		}
	}
	host.Children = append(preHost, body...)
	host.SortChildren()

	return delta, nil
}

// UpdateFunctionArgumentValue replaces the value of the argIndex-th
// argument of the occurrence-th call to funcName with newValue, leaving
// an argument name ("name = ") untouched if the argument is named.
func (v *StatementView) UpdateFunctionArgumentValue(funcName string, occurrence, argIndex int, newValue string) (int, error) {
	fn, err := findFunctionCall(v.Root, funcName, occurrence)
	if err != nil {
		return 0, err
	}
	host := argListHost(fn)
	if host == nil {
		return 0, rerrors.NotFound(fmt.Sprintf("call to %q has no argument list", funcName))
	}
	slots := argSlots(host)
	if argIndex < 0 || argIndex >= len(slots) {
		return 0, rerrors.PreconditionViolated(fmt.Sprintf("argument index %d out of range for %q (%d arguments)", argIndex, funcName, len(slots)))
	}
	expr := argExpr(slots[argIndex])
	if expr == nil {
		return 0, rerrors.PreconditionViolated(fmt.Sprintf("argument %d of %q is empty; nothing to update", argIndex, funcName))
	}
	return replaceSubtree(v, namedValue(expr), newValue)
}

// UpdateOperatorOperand replaces one operand of the occurrence-th
// operatorLexeme operator with newValue. Bracket-subscript operators are
// not supported here (their subscript arguments use AddOperatorOperand
// and their left operand is an ordinary operand of whatever operator
// built the subscripted expression).
func (v *StatementView) UpdateOperatorOperand(operatorLexeme string, occurrence int, side Side, newValue string) (int, error) {
	op, err := findOperator(v.Root, operatorLexeme, occurrence)
	if err != nil {
		return 0, err
	}
	if op.Kind == rtoken.OperatorBracket {
		return 0, rerrors.PreconditionViolated("bracket operators do not support UpdateOperatorOperand; use AddOperatorOperand for subscript arguments")
	}

	operands := realOperands(op)
	var target *rtoken.Token
	switch op.Kind {
	case rtoken.OperatorBinary:
		if len(operands) != 2 {
			return 0, rerrors.PreconditionViolated("binary operator does not have two operands")
		}
		if side == LeftOperand {
			target = operands[0]
		} else {
			target = operands[1]
		}
	case rtoken.OperatorUnaryRight:
		if side != RightOperand {
			return 0, rerrors.PreconditionViolated("unary-right operator has no left operand")
		}
		if len(operands) != 1 {
			return 0, rerrors.PreconditionViolated("unary operator does not have exactly one operand")
		}
		target = operands[0]
	case rtoken.OperatorUnaryLeft:
		if side != LeftOperand {
			return 0, rerrors.PreconditionViolated("unary-left operator has no right operand")
		}
		if len(operands) != 1 {
			return 0, rerrors.PreconditionViolated("unary operator does not have exactly one operand")
		}
		target = operands[0]
	default:
		return 0, rerrors.PreconditionViolated("unrecognized operator shape")
	}

	return replaceSubtree(v, target, newValue)
}

// AddFunctionParameter inserts paramText as a new argument at index
// (0-based) in the occurrence-th call to funcName.
func (v *StatementView) AddFunctionParameter(funcName string, occurrence, index int, paramText string) (int, error) {
	fn, err := findFunctionCall(v.Root, funcName, occurrence)
	if err != nil {
		return 0, err
	}
	host := argListHost(fn)
	if host == nil {
		return 0, rerrors.NotFound(fmt.Sprintf("call to %q has no argument list", funcName))
	}
	argTexts := collectArgTexts(host)
	if index < 0 || index > len(argTexts) {
		return 0, rerrors.PreconditionViolated(fmt.Sprintf("parameter index %d out of range (%d parameters)", index, len(argTexts)))
	}
	newArgTexts := make([]string, 0, len(argTexts)+1)
	newArgTexts = append(newArgTexts, argTexts[:index]...)
	newArgTexts = append(newArgTexts, paramText)
	newArgTexts = append(newArgTexts, argTexts[index:]...)

	newHostText := "(" + strings.Join(newArgTexts, ", ") + ")"
	return replaceSubtree(v, host, newHostText)
}

// RemoveFunctionParameter deletes the argument at index (0-based) from
// the occurrence-th call to funcName.
func (v *StatementView) RemoveFunctionParameter(funcName string, occurrence, index int) (int, error) {
	fn, err := findFunctionCall(v.Root, funcName, occurrence)
	if err != nil {
		return 0, err
	}
	host := argListHost(fn)
	if host == nil {
		return 0, rerrors.NotFound(fmt.Sprintf("call to %q has no argument list", funcName))
	}
	argTexts := collectArgTexts(host)
	if index < 0 || index >= len(argTexts) {
		return 0, rerrors.PreconditionViolated(fmt.Sprintf("parameter index %d out of range (%d parameters)", index, len(argTexts)))
	}
	argTexts = append(argTexts[:index], argTexts[index+1:]...)

	newHostText := "(" + strings.Join(argTexts, ", ") + ")"
	return replaceSubtree(v, host, newHostText)
}

// AddOperatorOperand inserts operandText as a new subscript argument at
// index (0-based) of the occurrence-th "[" / "[[" bracket operator.
func (v *StatementView) AddOperatorOperand(operatorLexeme string, occurrence, index int, operandText string) (int, error) {
	op, err := findOperator(v.Root, operatorLexeme, occurrence)
	if err != nil {
		return 0, err
	}
	if op.Kind != rtoken.OperatorBracket {
		return 0, rerrors.PreconditionViolated("AddOperatorOperand only supports bracket-subscript operators ([ and [[)")
	}
	argTexts := collectArgTexts(op)
	if index < 0 || index > len(argTexts) {
		return 0, rerrors.PreconditionViolated(fmt.Sprintf("operand index %d out of range (%d operands)", index, len(argTexts)))
	}
	newArgTexts := make([]string, 0, len(argTexts)+1)
	newArgTexts = append(newArgTexts, argTexts[:index]...)
	newArgTexts = append(newArgTexts, operandText)
	newArgTexts = append(newArgTexts, argTexts[index:]...)

	return rebuildBracketArgs(v, op, newArgTexts)
}
