// Package ast defines the abstract syntax tree for the drawing language.
package ast

import (
	"turtle-lang/internal/span"
	"turtle-lang/internal/token"
)

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	GetSpan() span.Span
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeBase provides the common Span field for all AST nodes.
type NodeBase struct {
	Span span.Span
}

func (n NodeBase) nodeNode()          {}
func (n NodeBase) GetSpan() span.Span { return n.Span }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (ExprBase) exprNode() {}

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ NodeBase }

func (StmtBase) stmtNode() {}

// ============================================================
// Program (top-level AST root)
// ============================================================

// Program represents an entire parsed source text.
type Program struct {
	NodeBase
	Statements []Stmt
}

// ============================================================
// Expressions
// ============================================================

// NumberLit represents a numeric literal. The language has a single numeric
// type, double-precision float.
type NumberLit struct {
	ExprBase
	Value float64
}

// StringLit represents a string literal.
type StringLit struct {
	ExprBase
	Value string
}

// BoolLit represents true or false.
type BoolLit struct {
	ExprBase
	Value bool
}

// Ident represents an identifier reference.
type Ident struct {
	ExprBase
	Name string
}

// UnaryExpr represents a unary operation: -x, not x.
type UnaryExpr struct {
	ExprBase
	Op      token.Kind
	Operand Expr
}

// BinaryExpr represents a binary operation: a + b, x == y, p and q.
type BinaryExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// CallExpr represents a call: name(args). Name is either an identifier or
// the lowercased lexeme of a drawing-command keyword (possibly an alias
// such as "fd").
type CallExpr struct {
	ExprBase
	Name string
	Args []Expr
}

// ============================================================
// Statements
// ============================================================

// VarDecl represents a declaration: var x [= expr] / let x [= expr].
type VarDecl struct {
	StmtBase
	Name string
	Init Expr // may be nil
}

// Assign represents an assignment: name = expr.
type Assign struct {
	StmtBase
	Name  string
	Value Expr
}

// CallStmt wraps a call used as a statement; the only expression form legal
// standalone.
type CallStmt struct {
	StmtBase
	Call *CallExpr
}

// If represents: if cond { then } [ else { else } ].
type If struct {
	StmtBase
	Cond Expr
	Then []Stmt
	Else []Stmt // nil when there is no else branch
}

// While represents: while cond { body }.
type While struct {
	StmtBase
	Cond Expr
	Body []Stmt
}

// For represents: for var = start to end [step s] { body }.
type For struct {
	StmtBase
	Var   string
	Start Expr
	End   Expr
	Step  Expr // nil means step 1
	Body  []Stmt
}

// FuncDef represents: function name(params) { body }.
type FuncDef struct {
	StmtBase
	Name   string
	Params []string
	Body   []Stmt
}

// Return represents: return [expr].
type Return struct {
	StmtBase
	Value Expr // may be nil
}
