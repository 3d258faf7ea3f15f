package parser

import (
	"testing"
	"turtle-lang/internal/ast"
	"turtle-lang/internal/diag"
	"turtle-lang/internal/lexer"
	"turtle-lang/internal/token"
)

func parse(t *testing.T, source string) (*ast.Program, []diag.Diagnostic) {
	t.Helper()
	tokens, lexDiags := lexer.New(source, "test.draw").Tokenize()
	if diag.HasErrors(lexDiags) {
		t.Fatalf("unexpected lex diagnostics: %v", lexDiags)
	}
	return New(tokens).ParseProgram()
}

func parseOK(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, diags := parse(t, source)
	if diag.HasErrors(diags) {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	return program
}

func parseExprOK(t *testing.T, source string) ast.Expr {
	t.Helper()
	program := parseOK(t, "var r = "+source)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected VarDecl, got %T", program.Statements[0])
	}
	return decl.Init
}

func expectParseError(t *testing.T, source, contains string) {
	t.Helper()
	_, diags := parse(t, source)
	if !diag.HasErrors(diags) {
		t.Fatalf("expected a parse error for %q", source)
	}
	for _, d := range diags {
		if d.Severity == diag.Error && containsStr(d.Message, contains) {
			return
		}
	}
	t.Errorf("no diagnostic containing %q, got: %v", contains, diags)
}

func containsStr(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func asBinary(t *testing.T, e ast.Expr, op token.Kind) *ast.BinaryExpr {
	t.Helper()
	bin, ok := e.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", e)
	}
	if bin.Op != op {
		t.Fatalf("expected operator %s, got %s", op, bin.Op)
	}
	return bin
}

func asNumber(t *testing.T, e ast.Expr, value float64) {
	t.Helper()
	num, ok := e.(*ast.NumberLit)
	if !ok {
		t.Fatalf("expected NumberLit, got %T", e)
	}
	if num.Value != value {
		t.Errorf("expected %g, got %g", value, num.Value)
	}
}

// ---- expressions ----

func TestPrecedenceMulOverAdd(t *testing.T) {
	// 2 + 3 * 4 parses as 2 + (3 * 4)
	root := asBinary(t, parseExprOK(t, "2 + 3 * 4"), token.PLUS)
	asNumber(t, root.Left, 2)
	inner := asBinary(t, root.Right, token.STAR)
	asNumber(t, inner.Left, 3)
	asNumber(t, inner.Right, 4)
}

func TestPowerLeftAssociative(t *testing.T) {
	// 2 ^ 3 ^ 2 parses as (2 ^ 3) ^ 2
	root := asBinary(t, parseExprOK(t, "2 ^ 3 ^ 2"), token.CARET)
	inner := asBinary(t, root.Left, token.CARET)
	asNumber(t, inner.Left, 2)
	asNumber(t, inner.Right, 3)
	asNumber(t, root.Right, 2)
}

func TestUnaryBindsLooserThanPower(t *testing.T) {
	// -2 ^ 2 parses as -(2 ^ 2)
	unary, ok := parseExprOK(t, "-2 ^ 2").(*ast.UnaryExpr)
	if !ok {
		t.Fatalf("expected UnaryExpr at the root")
	}
	if unary.Op != token.MINUS {
		t.Fatalf("expected unary minus, got %s", unary.Op)
	}
	inner := asBinary(t, unary.Operand, token.CARET)
	asNumber(t, inner.Left, 2)
	asNumber(t, inner.Right, 2)
}

func TestComparisonChain(t *testing.T) {
	// 1 + 2 < 3 * 4 parses as (1 + 2) < (3 * 4)
	root := asBinary(t, parseExprOK(t, "1 + 2 < 3 * 4"), token.LT)
	asBinary(t, root.Left, token.PLUS)
	asBinary(t, root.Right, token.STAR)
}

func TestLogicalPrecedence(t *testing.T) {
	// a or b and c parses as a or (b and c)
	root := asBinary(t, parseExprOK(t, "a or b and c"), token.KW_OR)
	asBinary(t, root.Right, token.KW_AND)
}

func TestGrouping(t *testing.T) {
	root := asBinary(t, parseExprOK(t, "(2 + 3) * 4"), token.STAR)
	asBinary(t, root.Left, token.PLUS)
	asNumber(t, root.Right, 4)
}

func TestNotExpression(t *testing.T) {
	unary, ok := parseExprOK(t, "not true").(*ast.UnaryExpr)
	if !ok {
		t.Fatalf("expected UnaryExpr")
	}
	if unary.Op != token.KW_NOT {
		t.Errorf("expected not, got %s", unary.Op)
	}
	if _, ok := unary.Operand.(*ast.BoolLit); !ok {
		t.Errorf("expected BoolLit operand, got %T", unary.Operand)
	}
}

func TestCallArguments(t *testing.T) {
	call, ok := parseExprOK(t, "max(1, 2 + 3)").(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr")
	}
	if call.Name != "max" {
		t.Errorf("expected name max, got %q", call.Name)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	asBinary(t, call.Args[1], token.PLUS)
}

func TestStringLiteral(t *testing.T) {
	lit, ok := parseExprOK(t, `"red"`).(*ast.StringLit)
	if !ok {
		t.Fatalf("expected StringLit")
	}
	if lit.Value != "red" {
		t.Errorf("expected %q, got %q", "red", lit.Value)
	}
}

// ---- statements ----

func TestVarDeclWithoutInit(t *testing.T) {
	program := parseOK(t, "var x")
	decl := program.Statements[0].(*ast.VarDecl)
	if decl.Name != "x" || decl.Init != nil {
		t.Errorf("expected bare declaration of x, got %+v", decl)
	}
}

func TestAssignVsCallLookahead(t *testing.T) {
	program := parseOK(t, "x = 1\nf()")
	if _, ok := program.Statements[0].(*ast.Assign); !ok {
		t.Errorf("expected Assign, got %T", program.Statements[0])
	}
	if _, ok := program.Statements[1].(*ast.CallStmt); !ok {
		t.Errorf("expected CallStmt, got %T", program.Statements[1])
	}
}

func TestIfElse(t *testing.T) {
	program := parseOK(t, `if x > 0 {
	forward(10)
} else {
	backward(10)
}`)
	stmt := program.Statements[0].(*ast.If)
	if len(stmt.Then) != 1 || len(stmt.Else) != 1 {
		t.Errorf("expected 1 statement in each branch, got %d/%d", len(stmt.Then), len(stmt.Else))
	}
}

func TestIfWithoutElse(t *testing.T) {
	program := parseOK(t, "if x { forward(1) }")
	stmt := program.Statements[0].(*ast.If)
	if stmt.Else != nil {
		t.Errorf("expected no else branch")
	}
}

func TestWhile(t *testing.T) {
	program := parseOK(t, "while x < 10 { x = x + 1 }")
	stmt := program.Statements[0].(*ast.While)
	if len(stmt.Body) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(stmt.Body))
	}
}

func TestForWithStep(t *testing.T) {
	program := parseOK(t, "for i = 10 to 1 step -1 { forward(i) }")
	stmt := program.Statements[0].(*ast.For)
	if stmt.Var != "i" {
		t.Errorf("expected loop variable i, got %q", stmt.Var)
	}
	if stmt.Step == nil {
		t.Fatal("expected explicit step expression")
	}
	if _, ok := stmt.Step.(*ast.UnaryExpr); !ok {
		t.Errorf("expected unary step expression, got %T", stmt.Step)
	}
}

func TestForWithoutStep(t *testing.T) {
	program := parseOK(t, "for i = 1 to 3 { forward(i) }")
	stmt := program.Statements[0].(*ast.For)
	if stmt.Step != nil {
		t.Errorf("expected nil step when omitted")
	}
}

func TestFunctionDef(t *testing.T) {
	program := parseOK(t, `function square(size, n) {
	forward(size)
	return n
}`)
	def := program.Statements[0].(*ast.FuncDef)
	if def.Name != "square" {
		t.Errorf("expected name square, got %q", def.Name)
	}
	if len(def.Params) != 2 || def.Params[0] != "size" || def.Params[1] != "n" {
		t.Errorf("unexpected params: %v", def.Params)
	}
	if len(def.Body) != 2 {
		t.Errorf("expected 2 body statements, got %d", len(def.Body))
	}
}

func TestFunctionDefDrawingCommandName(t *testing.T) {
	// A drawing-command keyword is a valid function name. It is shadowed
	// by the command at call time, but the definition must parse.
	program := parseOK(t, `function forward(n) {
	return 0
}`)
	def := program.Statements[0].(*ast.FuncDef)
	if def.Name != "forward" {
		t.Errorf("expected name forward, got %q", def.Name)
	}
	if len(def.Params) != 1 || def.Params[0] != "n" {
		t.Errorf("unexpected params: %v", def.Params)
	}
}

func TestReturnWithoutValue(t *testing.T) {
	program := parseOK(t, "function f() {\n\treturn\n}")
	def := program.Statements[0].(*ast.FuncDef)
	ret := def.Body[0].(*ast.Return)
	if ret.Value != nil {
		t.Errorf("expected bare return")
	}
}

func TestDrawingCommandStatement(t *testing.T) {
	program := parseOK(t, "fd(10)")
	stmt := program.Statements[0].(*ast.CallStmt)
	if stmt.Call.Name != "fd" {
		t.Errorf("expected call name fd, got %q", stmt.Call.Name)
	}
}

func TestMultipleStatementsBlankLines(t *testing.T) {
	program := parseOK(t, "\n\nforward(1)\n\n\nright(90)\n\n")
	if len(program.Statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(program.Statements))
	}
}

// ---- errors ----

func TestDrawingCommandWithoutParens(t *testing.T) {
	expectParseError(t, "forward 10", "Drawing command 'forward' must be called with parentheses")
}

func TestMissingClosingBrace(t *testing.T) {
	expectParseError(t, "if true { ", "Expected '}'")
}

func TestBareExpressionStatement(t *testing.T) {
	expectParseError(t, "1 + 2", "only calls may be used as statements")
}

func TestMissingForTo(t *testing.T) {
	expectParseError(t, "for i = 1 { }", "Expected 'to'")
}

func TestErrorRecovery(t *testing.T) {
	// One bad statement must not swallow the rest of the program.
	program, diags := parse(t, "forward 10\nright(90)")
	if !diag.HasErrors(diags) {
		t.Fatal("expected a parse error")
	}
	found := false
	for _, stmt := range program.Statements {
		if call, ok := stmt.(*ast.CallStmt); ok && call.Call.Name == "right" {
			found = true
		}
	}
	if !found {
		t.Error("expected the statement after the error to be parsed")
	}
}
