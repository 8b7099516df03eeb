package parser

import (
	"testing"

	"github.com/cwbudde/minilang/internal/ast"
)

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	return prog
}

func TestParsesOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, "2 + 3 * 4")
	got := prog.Statements[0].String()
	want := "(2 + (3 * 4))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParsesComparisonBelowArithmetic(t *testing.T) {
	prog := mustParse(t, "1 + 2 < 3 * 4")
	got := prog.Statements[0].String()
	want := "((1 + 2) < (3 * 4))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParsesLogicalOperatorsBelowComparison(t *testing.T) {
	prog := mustParse(t, "a < b && c > d")
	got := prog.Statements[0].String()
	want := "((a < b) && (c > d))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParsesAssignmentAsDeclaration(t *testing.T) {
	prog := mustParse(t, "x = 1 + 2")
	got := prog.Statements[0].String()
	want := "x = (1 + 2)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParsesCompoundAssignmentAsDesugaredBinary(t *testing.T) {
	prog := mustParse(t, "x += 1")
	assign, ok := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("expected an AssignmentExpression, got %T", prog.Statements[0])
	}
	bin, ok := assign.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected desugared compound assignment to carry a BinaryExpression, got %T", assign.Value)
	}
	if bin.Operator != "+" {
		t.Errorf("expected '+' operator, got %q", bin.Operator)
	}
}

func TestParsesFunctionDeclaration(t *testing.T) {
	prog := mustParse(t, "add = (a, b) { return a + b }")
	exprStmt := prog.Statements[0].(*ast.ExpressionStatement)
	decl, ok := exprStmt.Expression.(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected a FunctionDeclaration, got %T", exprStmt.Expression)
	}
	if decl.Name != "add" || len(decl.Parameters) != 2 {
		t.Errorf("got name=%q params=%d", decl.Name, len(decl.Parameters))
	}
}

func TestDistinguishesPlainAssignmentFromFunctionDeclaration(t *testing.T) {
	prog := mustParse(t, "x = (1 + 2)")
	exprStmt := prog.Statements[0].(*ast.ExpressionStatement)
	assign, ok := exprStmt.Expression.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("expected an AssignmentExpression (not a function declaration), got %T", exprStmt.Expression)
	}
	if _, ok := assign.Value.(*ast.GroupedExpression); !ok {
		t.Fatalf("expected the grouped expression on the right-hand side, got %T", assign.Value)
	}
}

func TestParsesIfElifElseChain(t *testing.T) {
	prog := mustParse(t, `
if a {
  1
} elif b {
  2
} else {
  3
}
`)
	ifStmt := prog.Statements[0].(*ast.IfStatement)
	elif, ok := ifStmt.Alternative.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected the elif branch to be a nested IfStatement, got %T", ifStmt.Alternative)
	}
	if _, ok := elif.Alternative.(*ast.BlockStatement); !ok {
		t.Fatalf("expected the final else branch to be a BlockStatement, got %T", elif.Alternative)
	}
}

func TestParsesWhileLoop(t *testing.T) {
	prog := mustParse(t, "while x < 3 { x = x + 1 }")
	if _, ok := prog.Statements[0].(*ast.WhileStatement); !ok {
		t.Fatalf("expected a WhileStatement, got %T", prog.Statements[0])
	}
}

func TestParsesForLoop(t *testing.T) {
	prog := mustParse(t, "for (i = 0; i < 5; i = i + 1) { x = i }")
	forStmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected a ForStatement, got %T", prog.Statements[0])
	}
	if forStmt.Init == nil || forStmt.Condition == nil || forStmt.Step == nil {
		t.Fatalf("expected init/condition/step to all be populated, got %#v", forStmt)
	}
}

func TestParsesCallExpression(t *testing.T) {
	prog := mustParse(t, "add(1, 2)")
	exprStmt := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := exprStmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected a CallExpression, got %T", exprStmt.Expression)
	}
	if call.Name != "add" || len(call.Arguments) != 2 {
		t.Errorf("got name=%q args=%d", call.Name, len(call.Arguments))
	}
}

func TestParsesListLiteral(t *testing.T) {
	prog := mustParse(t, "[1, 2, 3]")
	exprStmt := prog.Statements[0].(*ast.ExpressionStatement)
	list, ok := exprStmt.Expression.(*ast.ListLiteral)
	if !ok {
		t.Fatalf("expected a ListLiteral, got %T", exprStmt.Expression)
	}
	if len(list.Elements) != 3 {
		t.Errorf("expected 3 elements, got %d", len(list.Elements))
	}
}

func TestParsesBlockAsExpression(t *testing.T) {
	prog := mustParse(t, "x = { 1 }")
	exprStmt := prog.Statements[0].(*ast.ExpressionStatement)
	assign := exprStmt.Expression.(*ast.AssignmentExpression)
	if _, ok := assign.Value.(*ast.BlockExpression); !ok {
		t.Fatalf("expected a BlockExpression, got %T", assign.Value)
	}
}

func TestMissingClosingParenIsAnError(t *testing.T) {
	_, err := Parse("add(1, 2")
	if err == nil {
		t.Fatal("expected an error for a missing ')'")
	}
}

func TestUnterminatedBlockIsAnError(t *testing.T) {
	_, err := Parse("if x { 1")
	if err == nil {
		t.Fatal("expected an error for an unterminated block")
	}
}

func TestBreakAndContinueParseAsDistinctNodes(t *testing.T) {
	prog := mustParse(t, "while true { break; continue }")
	while := prog.Statements[0].(*ast.WhileStatement)
	if _, ok := while.Body.Statements[0].(*ast.BreakStatement); !ok {
		t.Fatalf("expected a BreakStatement, got %T", while.Body.Statements[0])
	}
	if _, ok := while.Body.Statements[1].(*ast.ContinueStatement); !ok {
		t.Fatalf("expected a ContinueStatement, got %T", while.Body.Statements[1])
	}
}

func TestReturnWithoutValue(t *testing.T) {
	prog := mustParse(t, "f = () { return }")
	decl := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.FunctionDeclaration)
	ret := decl.Body.Statements[0].(*ast.ReturnStatement)
	if ret.ReturnValue != nil {
		t.Errorf("expected a nil return value, got %v", ret.ReturnValue)
	}
}

func TestDigitRunOverflowingInt32ParsesAsFloatLiteral(t *testing.T) {
	prog := mustParse(t, "2147483648")
	lit, ok := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.FloatLiteral)
	if !ok {
		t.Fatalf("expected a FloatLiteral for an int32-overflowing digit run, got %T", prog.Statements[0].(*ast.ExpressionStatement).Expression)
	}
	if lit.Value != 2147483648.0 {
		t.Errorf("got %v, want 2147483648", lit.Value)
	}
}
