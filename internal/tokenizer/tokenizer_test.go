package tokenizer

import (
	"testing"

	"github.com/lloyddewit/rinsight/internal/lexer"
	"github.com/lloyddewit/rinsight/internal/rtoken"
)

func tokenize(t *testing.T, src string) []*rtoken.Token {
	t.Helper()
	lexemes, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", src, err)
	}
	tokens, err := Tokenize(lexemes)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	return tokens
}

func kinds(tokens []*rtoken.Token) []rtoken.Kind {
	out := make([]rtoken.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeFunctionNameVsSyntacticName(t *testing.T) {
	tokens := tokenize(t, "f(x)")
	if tokens[0].Kind != rtoken.FunctionName {
		t.Errorf("tokens[0].Kind = %v, want FunctionName", tokens[0].Kind)
	}
	// "x" is not followed by "(" so it stays a plain name.
	for _, tok := range tokens {
		if tok.Lexeme == "x" && tok.Kind != rtoken.SyntacticName {
			t.Errorf("x.Kind = %v, want SyntacticName", tok.Kind)
		}
	}
}

func TestTokenizeFunctionNameRequiresSameLine(t *testing.T) {
	tokens := tokenize(t, "f\n(x)")
	if tokens[0].Kind != rtoken.SyntacticName {
		t.Errorf("tokens[0].Kind = %v, want SyntacticName (\"(\" is on the next line)", tokens[0].Kind)
	}
}

func TestTokenizeUnaryVsBinary(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want rtoken.Kind
	}{
		{"leading minus is unary", "-x", rtoken.OperatorUnaryRight},
		{"minus after name is binary", "a-b", rtoken.OperatorBinary},
		{"minus after open paren is unary", "(-x)", rtoken.OperatorUnaryRight},
		{"minus after close paren is binary", "(a)-b", rtoken.OperatorBinary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenize(t, tt.src)
			for _, tok := range tokens {
				if tok.Lexeme == "-" {
					if tok.Kind != tt.want {
						t.Errorf("%q: \"-\".Kind = %v, want %v", tt.src, tok.Kind, tt.want)
					}
					return
				}
			}
			t.Fatalf("%q: no \"-\" token found", tt.src)
		})
	}
}

func TestTokenizeFormulaUnaryLeft(t *testing.T) {
	// A trailing "~" with no right operand on the same line is
	// unary-left (a one-sided formula); followed by a right operand it
	// is binary.
	tokens := tokenize(t, "y ~\n")
	for _, tok := range tokens {
		if tok.Lexeme == "~" {
			if tok.Kind != rtoken.OperatorUnaryLeft {
				t.Errorf("\"~\".Kind = %v, want OperatorUnaryLeft", tok.Kind)
			}
			return
		}
	}
	t.Fatal("no \"~\" token found")
}

func TestTokenizeNewlineEndsStatementOnlyAtDepthZero(t *testing.T) {
	tokens := tokenize(t, "f(a,\nb)")
	for _, tok := range tokens {
		if tok.Kind == rtoken.EndStatement {
			t.Errorf("newline inside open parens classified as EndStatement")
		}
	}

	tokens = tokenize(t, "a\nb")
	var sawEndStatement bool
	for _, tok := range tokens {
		if tok.Kind == rtoken.EndStatement {
			sawEndStatement = true
		}
	}
	if !sawEndStatement {
		t.Error("newline between two complete statements should be EndStatement")
	}
}

func TestTokenizeOperatorSuppressesEndStatement(t *testing.T) {
	// A trailing binary operator keeps the expression open across the
	// line break, so the newline must not become an EndStatement.
	tokens := tokenize(t, "a +\nb")
	for _, tok := range tokens {
		if tok.Kind == rtoken.EndStatement {
			t.Error("newline after a trailing operator classified as EndStatement")
		}
	}
}

func TestTokenizeKeyword(t *testing.T) {
	tokens := tokenize(t, "if (a) b")
	if tokens[0].Kind != rtoken.KeyWord {
		t.Errorf("tokens[0].Kind = %v, want KeyWord", tokens[0].Kind)
	}
}

func TestTokenizeUnexpectedTokenShapeError(t *testing.T) {
	// Construct a lexeme stream directly with something Tokenize cannot
	// classify: a lone "\" that matches no lexeme class, so this
	// exercises the cascade's default branch without going through the
	// lexer.
	lexemes := []lexer.Lexeme{{Text: "\\", Pos: 0}}
	_, err := Tokenize(lexemes)
	if err == nil {
		t.Fatal("Tokenize: want error for unclassifiable lexeme, got nil")
	}
	if _, ok := err.(*UnexpectedTokenShapeError); !ok {
		t.Errorf("error type = %T, want *UnexpectedTokenShapeError", err)
	}
}

func TestTokenizeKindSequenceSimpleAssignment(t *testing.T) {
	tokens := tokenize(t, "x <- 1")
	got := kinds(tokens)
	want := []rtoken.Kind{
		rtoken.SyntacticName, rtoken.Space, rtoken.OperatorBinary, rtoken.Space, rtoken.ConstantNumber,
	}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
