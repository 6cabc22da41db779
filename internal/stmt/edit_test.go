package stmt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lloyddewit/rinsight/internal/rerrors"
	"github.com/lloyddewit/rinsight/internal/rtoken"
)

// lexemeShape flattens a token's subtree into a pre-order sequence of
// "kind:lexeme" strings, for structural comparison with cmp.Diff that
// ignores exact byte offsets.
func lexemeShape(t *rtoken.Token) []string {
	var shape []string
	var walk func(*rtoken.Token)
	walk = func(n *rtoken.Token) {
		shape = append(shape, n.Kind.String()+":"+n.Lexeme)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t)
	return shape
}

func TestUpdateFunctionArgumentValuePositional(t *testing.T) {
	v := viewOf(t, "f(a, b)")
	delta, err := v.UpdateFunctionArgumentValue("f", 0, 1, "z")
	if err != nil {
		t.Fatalf("UpdateFunctionArgumentValue error: %v", err)
	}
	if want := "f(a, z)"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
	if delta != 0 {
		t.Errorf("delta = %d, want 0", delta)
	}
}

func TestUpdateFunctionArgumentValueNamed(t *testing.T) {
	v := viewOf(t, "f(x = 1, y = 2)")
	delta, err := v.UpdateFunctionArgumentValue("f", 0, 0, "99")
	if err != nil {
		t.Fatalf("UpdateFunctionArgumentValue error: %v", err)
	}
	if want := "f(x = 99, y = 2)"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
	if delta != 1 {
		t.Errorf("delta = %d, want 1", delta)
	}
}

func TestUpdateFunctionArgumentValueNotFound(t *testing.T) {
	v := viewOf(t, "f(a, b)")
	_, err := v.UpdateFunctionArgumentValue("g", 0, 0, "z")
	assertCode(t, err, rerrors.CodeEditTargetNotFound)
}

func TestUpdateFunctionArgumentValueIndexOutOfRange(t *testing.T) {
	v := viewOf(t, "f(a, b)")
	_, err := v.UpdateFunctionArgumentValue("f", 0, 5, "z")
	assertCode(t, err, rerrors.CodeEditPreconditionViolated)
}

func TestUpdateOperatorOperand(t *testing.T) {
	v := viewOf(t, "a + b")
	delta, err := v.UpdateOperatorOperand("+", 0, RightOperand, "z")
	if err != nil {
		t.Fatalf("UpdateOperatorOperand error: %v", err)
	}
	if want := "a + z"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
	if delta != 0 {
		t.Errorf("delta = %d, want 0", delta)
	}
}

func TestUpdateOperatorOperandLeftSide(t *testing.T) {
	v := viewOf(t, "a + b")
	_, err := v.UpdateOperatorOperand("+", 0, LeftOperand, "zz")
	if err != nil {
		t.Fatalf("UpdateOperatorOperand error: %v", err)
	}
	if want := "zz + b"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
}

func TestUpdateOperatorOperandUnaryRight(t *testing.T) {
	v := viewOf(t, "-x")
	_, err := v.UpdateOperatorOperand("-", 0, RightOperand, "y")
	if err != nil {
		t.Fatalf("UpdateOperatorOperand error: %v", err)
	}
	if want := "-y"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
}

func TestUpdateOperatorOperandRejectsBracket(t *testing.T) {
	v := viewOf(t, "x[1]")
	_, err := v.UpdateOperatorOperand("[", 0, LeftOperand, "y")
	assertCode(t, err, rerrors.CodeEditPreconditionViolated)
}

func TestAddFunctionParameter(t *testing.T) {
	v := viewOf(t, "f(a, b)")
	delta, err := v.AddFunctionParameter("f", 0, 1, "c")
	if err != nil {
		t.Fatalf("AddFunctionParameter error: %v", err)
	}
	if want := "f(a, c, b)"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
	if want := len("f(a, c, b)") - len("f(a, b)"); delta != want {
		t.Errorf("delta = %d, want %d", delta, want)
	}
}

func TestAddFunctionParameterAtEnd(t *testing.T) {
	v := viewOf(t, "f(a)")
	_, err := v.AddFunctionParameter("f", 0, 1, "b")
	if err != nil {
		t.Fatalf("AddFunctionParameter error: %v", err)
	}
	if want := "f(a, b)"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
}

func TestRemoveFunctionParameter(t *testing.T) {
	v := viewOf(t, "f(a, b, c)")
	_, err := v.RemoveFunctionParameter("f", 0, 1)
	if err != nil {
		t.Fatalf("RemoveFunctionParameter error: %v", err)
	}
	if want := "f(a, c)"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
}

// TestRemoveFunctionParameterShape compares the resulting tree's
// (kind, lexeme) shape against a hand-built expectation, so a shape
// regression (wrong nesting, stray tokens) is caught even when Text()
// happens to still reconstruct correctly.
func TestRemoveFunctionParameterShape(t *testing.T) {
	v := viewOf(t, "f(a, b, c)")
	if _, err := v.RemoveFunctionParameter("f", 0, 1); err != nil {
		t.Fatalf("RemoveFunctionParameter error: %v", err)
	}

	got := lexemeShape(v.Root)
	want := lexemeShape(viewOf(t, "f(a, c)").Root)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree shape mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveFunctionParameterIndexOutOfRange(t *testing.T) {
	v := viewOf(t, "f(a)")
	_, err := v.RemoveFunctionParameter("f", 0, 3)
	assertCode(t, err, rerrors.CodeEditPreconditionViolated)
}

func TestAddOperatorOperandBracket(t *testing.T) {
	v := viewOf(t, "x[1]")
	delta, err := v.AddOperatorOperand("[", 0, 1, "2")
	if err != nil {
		t.Fatalf("AddOperatorOperand error: %v", err)
	}
	if want := "x[1, 2]"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
	if want := len("x[1, 2]") - len("x[1]"); delta != want {
		t.Errorf("delta = %d, want %d", delta, want)
	}
}

func TestAddOperatorOperandDoubleBracket(t *testing.T) {
	v := viewOf(t, "x[[1]]")
	_, err := v.AddOperatorOperand("[[", 0, 0, "0")
	if err != nil {
		t.Fatalf("AddOperatorOperand error: %v", err)
	}
	if want := "x[[0, 1]]"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
}

func TestAddOperatorOperandRejectsNonBracket(t *testing.T) {
	v := viewOf(t, "a + b")
	_, err := v.AddOperatorOperand("+", 0, 0, "c")
	assertCode(t, err, rerrors.CodeEditPreconditionViolated)
}

// TestEditReportsDeltaForLaterStatements asserts that an edit inside one
// statement correctly reports its delta so a caller can shift every later
// statement's positions. The shift itself is pkg/rinsight's job and is
// checked there (TestApplyRekeysLaterStatements); this test edits a
// single statement only.
func TestEditReportsDeltaForLaterStatements(t *testing.T) {
	v := viewOf(t, "f(a, bb)")
	delta, err := v.UpdateFunctionArgumentValue("f", 0, 1, "b")
	if err != nil {
		t.Fatalf("UpdateFunctionArgumentValue error: %v", err)
	}
	if delta != -1 {
		t.Fatalf("delta = %d, want -1 (bb -> b shortens by one byte)", delta)
	}
	if want := "f(a, b)"; v.Text() != want {
		t.Errorf("Text() = %q, want %q", v.Text(), want)
	}
}

func assertCode(t *testing.T, err error, want rerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("want error, got nil")
	}
	se, ok := err.(*rerrors.SourceError)
	if !ok {
		t.Fatalf("error type = %T, want *rerrors.SourceError", err)
	}
	if se.Code != want {
		t.Errorf("error code = %v, want %v", se.Code, want)
	}
}
