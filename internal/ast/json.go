package ast

import (
	"turtle-lang/internal/span"
	"turtle-lang/internal/token"
)

// NodeToMap converts an AST node to a map suitable for JSON serialization.
// This produces a tagged-union structure: every node has a "kind" field.
func NodeToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return m("Program", n.Span, "statements", stmtSlice(n.Statements))

	// ---- Expressions ----
	case *NumberLit:
		return m("NumberLit", n.Span, "value", n.Value)
	case *StringLit:
		return m("StringLit", n.Span, "value", n.Value)
	case *BoolLit:
		return m("BoolLit", n.Span, "value", n.Value)
	case *Ident:
		return m("Ident", n.Span, "name", n.Name)
	case *UnaryExpr:
		return m("UnaryExpr", n.Span, "op", opStr(n.Op), "operand", NodeToMap(n.Operand))
	case *BinaryExpr:
		return m("BinaryExpr", n.Span,
			"op", opStr(n.Op),
			"left", NodeToMap(n.Left),
			"right", NodeToMap(n.Right))
	case *CallExpr:
		return m("CallExpr", n.Span, "name", n.Name, "args", exprSlice(n.Args))

	// ---- Statements ----
	case *VarDecl:
		return m("VarDecl", n.Span, "name", n.Name, "init", NodeToMap(n.Init))
	case *Assign:
		return m("Assign", n.Span, "name", n.Name, "value", NodeToMap(n.Value))
	case *CallStmt:
		return m("CallStmt", n.Span, "call", NodeToMap(n.Call))
	case *If:
		return m("If", n.Span,
			"cond", NodeToMap(n.Cond),
			"then", stmtSlice(n.Then),
			"else", stmtSlice(n.Else))
	case *While:
		return m("While", n.Span, "cond", NodeToMap(n.Cond), "body", stmtSlice(n.Body))
	case *For:
		return m("For", n.Span,
			"var", n.Var,
			"start", NodeToMap(n.Start),
			"end", NodeToMap(n.End),
			"step", NodeToMap(n.Step),
			"body", stmtSlice(n.Body))
	case *FuncDef:
		return m("FuncDef", n.Span, "name", n.Name, "params", n.Params, "body", stmtSlice(n.Body))
	case *Return:
		return m("Return", n.Span, "value", NodeToMap(n.Value))

	default:
		return m("Unknown", node.GetSpan())
	}
}

// m builds a node map with kind, span, and alternating key/value pairs.
func m(kind string, s span.Span, kv ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"span": map[string]interface{}{
			"start": map[string]int{"line": s.Start.Line, "column": s.Start.Column, "offset": s.Start.Offset},
			"end":   map[string]int{"line": s.End.Line, "column": s.End.Column, "offset": s.End.Offset},
		},
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key := kv[i].(string)
		result[key] = kv[i+1]
	}
	return result
}

func opStr(k token.Kind) string {
	return k.String()
}

func stmtSlice(stmts []Stmt) []map[string]interface{} {
	if stmts == nil {
		return nil
	}
	result := make([]map[string]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = NodeToMap(s)
	}
	return result
}

func exprSlice(exprs []Expr) []map[string]interface{} {
	if exprs == nil {
		return nil
	}
	result := make([]map[string]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = NodeToMap(e)
	}
	return result
}
