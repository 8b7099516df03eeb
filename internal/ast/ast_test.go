package ast

import (
	"testing"

	"github.com/cwbudde/minilang/internal/token"
)

func TestBinaryExpressionStringIsFullyParenthesized(t *testing.T) {
	expr := &BinaryExpression{
		Left:     &IntegerLiteral{Token: token.Token{Literal: "2"}, Value: 2},
		Operator: "+",
		Right: &BinaryExpression{
			Left:     &IntegerLiteral{Token: token.Token{Literal: "3"}, Value: 3},
			Operator: "*",
			Right:    &IntegerLiteral{Token: token.Token{Literal: "4"}, Value: 4},
		},
	}
	want := "(2 + (3 * 4))"
	if got := expr.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBlockStatementStringIndentsNestedStatements(t *testing.T) {
	block := &BlockStatement{
		Statements: []Statement{
			&ExpressionStatement{Expression: &Identifier{Value: "x"}},
		},
	}
	want := "{\n  x\n}"
	if got := block.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFunctionDeclarationStringIncludesParameterList(t *testing.T) {
	decl := &FunctionDeclaration{
		Name:       "add",
		Parameters: []*Identifier{{Value: "a"}, {Value: "b"}},
		Body: &BlockStatement{
			Statements: []Statement{
				&ReturnStatement{ReturnValue: &Identifier{Value: "a"}},
			},
		},
	}
	want := "add = (a, b) {\n  return a\n}"
	if got := decl.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestProgramStringJoinsStatementsWithNewlines(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&ExpressionStatement{Expression: &Identifier{Value: "x"}},
			&ExpressionStatement{Expression: &Identifier{Value: "y"}},
		},
	}
	want := "x\ny\n"
	if got := prog.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestListLiteralStringJoinsElementsWithCommaSpace(t *testing.T) {
	list := &ListLiteral{
		Elements: []Expression{
			&IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1},
			&IntegerLiteral{Token: token.Token{Literal: "2"}, Value: 2},
		},
	}
	want := "[1, 2]"
	if got := list.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
