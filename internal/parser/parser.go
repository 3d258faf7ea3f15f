// Package parser implements syntax analysis for the drawing language.
// It uses Pratt parsing for expressions and recursive descent for statements.
package parser

import (
	"fmt"
	"strconv"
	"turtle-lang/internal/ast"
	"turtle-lang/internal/diag"
	"turtle-lang/internal/span"
	"turtle-lang/internal/token"
)

// ============================================================
// Binding power (precedence) levels
// ============================================================

const (
	bpNone       = 0
	bpOr         = 10 // or
	bpAnd        = 20 // and
	bpEquality   = 30 // == !=
	bpComparison = 40 // < <= > >=
	bpAdditive   = 50 // + -
	bpMultiply   = 60 // * / %
	bpPrefix     = 70 // - not
	bpPower      = 80 // ^
)

// infixBP returns the left binding power for an infix operator. The power
// operator sits above unary, so -2^2 parses as -(2^2); its right operand is
// parsed at the same binding power, which makes ^ left-associative
// (2^3^2 == (2^3)^2).
func infixBP(kind token.Kind) int {
	switch kind {
	case token.KW_OR:
		return bpOr
	case token.KW_AND:
		return bpAnd
	case token.EQ, token.NEQ:
		return bpEquality
	case token.LT, token.LTE, token.GT, token.GTE:
		return bpComparison
	case token.PLUS, token.MINUS:
		return bpAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return bpMultiply
	case token.CARET:
		return bpPower
	default:
		return bpNone
	}
}

// ============================================================
// Parser
// ============================================================

// Parser performs syntax analysis on a stream of tokens.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  []diag.Diagnostic
}

// New creates a new parser from a token slice.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, pos: 0}
}

// ParseProgram parses the entire token stream and returns the AST root and
// diagnostics.
func (p *Parser) ParseProgram() (*ast.Program, []diag.Diagnostic) {
	program := &ast.Program{}
	startPos := p.peek().Span.Start

	p.skipNewlines()
	for !p.isAtEnd() {
		stmt := p.parseStmt()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.skipNewlines()
	}

	endPos := p.peek().Span.End
	program.Span = span.Span{Start: startPos, End: endPos}
	return program, p.diags
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekKind() token.Kind {
	return p.peek().Kind
}

func (p *Parser) peekAhead(offset int) token.Kind {
	if p.pos+offset >= len(p.tokens) {
		return token.EOF
	}
	return p.tokens[p.pos+offset].Kind
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peekKind() == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind, errMsg string) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	tok := p.peek()
	if errMsg == "" {
		errMsg = fmt.Sprintf("Expected '%s', got '%s'", kind, tok.Kind)
	}
	p.error("E2001", tok.Span, errMsg)
	return tok, false
}

func (p *Parser) isAtEnd() bool {
	return p.peekKind() == token.EOF
}

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) error(code string, s span.Span, msg string) {
	p.diags = append(p.diags, diag.Errorf(code, s, "%s", msg))
}

// synchronize skips tokens until a likely statement boundary so that one
// syntax error does not cascade. It always consumes at least one token.
func (p *Parser) synchronize() {
	if !p.isAtEnd() {
		p.advance()
	}
	for !p.isAtEnd() {
		if p.match(token.NEWLINE, token.SEMICOLON) {
			p.advance()
			return
		}
		if p.check(token.RBRACE) {
			return
		}
		if p.match(token.KW_IF, token.KW_WHILE, token.KW_FOR, token.KW_FUNCTION,
			token.KW_RETURN, token.KW_VAR, token.KW_LET) {
			return
		}
		p.advance()
	}
}

// ============================================================
// Statement parsing
// ============================================================

func (p *Parser) parseStmt() ast.Stmt {
	tok := p.peek()

	switch {
	case tok.Kind == token.KW_VAR || tok.Kind == token.KW_LET:
		return p.parseVarDecl()
	case tok.Kind == token.KW_IF:
		return p.parseIf()
	case tok.Kind == token.KW_WHILE:
		return p.parseWhile()
	case tok.Kind == token.KW_FOR:
		return p.parseFor()
	case tok.Kind == token.KW_FUNCTION:
		return p.parseFuncDef()
	case tok.Kind == token.KW_RETURN:
		return p.parseReturn()
	case tok.Kind == token.IDENT && p.peekAhead(1) == token.ASSIGN:
		return p.parseAssign()
	default:
		return p.parseCallStmt()
	}
}

// parseVarDecl parses: (var | let) IDENT [ = expr ]
func (p *Parser) parseVarDecl() ast.Stmt {
	start := p.advance() // var or let
	decl := &ast.VarDecl{}

	nameTok, ok := p.expect(token.IDENT, "")
	if !ok {
		p.synchronize()
		decl.Span = p.makeSpan(start.Span.Start)
		return decl
	}
	decl.Name = nameTok.Lexeme

	if p.check(token.ASSIGN) {
		p.advance()
		decl.Init = p.parseExpr(bpNone)
	}

	decl.Span = p.makeSpan(start.Span.Start)
	return decl
}

// parseAssign parses: IDENT = expr
func (p *Parser) parseAssign() ast.Stmt {
	nameTok := p.advance() // IDENT
	p.expect(token.ASSIGN, "Expected '=' after identifier")
	value := p.parseExpr(bpNone)
	return &ast.Assign{
		StmtBase: makeStmtBase(nameTok.Span.Start, p.prevEnd()),
		Name:     nameTok.Lexeme,
		Value:    value,
	}
}

// parseCallStmt parses a bare call used as a statement; a call is the only
// expression form legal standalone.
func (p *Parser) parseCallStmt() ast.Stmt {
	tok := p.peek()
	expr := p.parseExpr(bpNone)
	if expr == nil {
		p.error("E2002", tok.Span, fmt.Sprintf("Unexpected token: '%s'", tok.Lexeme))
		p.synchronize()
		return nil
	}

	call, ok := expr.(*ast.CallExpr)
	if !ok {
		p.error("E2002", expr.GetSpan(), "Unexpected expression: only calls may be used as statements")
		p.synchronize()
		return nil
	}

	return &ast.CallStmt{
		StmtBase: makeStmtBase(call.Span.Start, call.Span.End),
		Call:     call,
	}
}

// parseIf parses: if expr { block } [ else { block } ]
// The else keyword must follow the closing brace on the same line.
func (p *Parser) parseIf() ast.Stmt {
	start := p.advance() // if
	stmt := &ast.If{}

	stmt.Cond = p.parseExpr(bpNone)
	if _, ok := p.expect(token.LBRACE, "Expected '{' after if condition"); !ok {
		p.synchronize()
		stmt.Span = p.makeSpan(start.Span.Start)
		return stmt
	}
	stmt.Then = p.parseBlock()
	p.expect(token.RBRACE, "Expected '}' after if block")

	if p.check(token.KW_ELSE) {
		p.advance()
		if _, ok := p.expect(token.LBRACE, "Expected '{' after else"); ok {
			stmt.Else = p.parseBlock()
			p.expect(token.RBRACE, "Expected '}' after else block")
		}
	}

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseWhile parses: while expr { block }
func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance() // while
	stmt := &ast.While{}

	stmt.Cond = p.parseExpr(bpNone)
	if _, ok := p.expect(token.LBRACE, "Expected '{' after while condition"); !ok {
		p.synchronize()
		stmt.Span = p.makeSpan(start.Span.Start)
		return stmt
	}
	stmt.Body = p.parseBlock()
	p.expect(token.RBRACE, "Expected '}' after while block")

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseFor parses: for IDENT = expr to expr [ step expr ] { block }
func (p *Parser) parseFor() ast.Stmt {
	start := p.advance() // for
	stmt := &ast.For{}

	nameTok, ok := p.expect(token.IDENT, "")
	if !ok {
		p.synchronize()
		stmt.Span = p.makeSpan(start.Span.Start)
		return stmt
	}
	stmt.Var = nameTok.Lexeme

	p.expect(token.ASSIGN, "Expected '=' after for variable")
	stmt.Start = p.parseExpr(bpNone)
	p.expect(token.KW_TO, "Expected 'to' after start value")
	stmt.End = p.parseExpr(bpNone)

	if p.check(token.KW_STEP) {
		p.advance()
		stmt.Step = p.parseExpr(bpNone)
	}

	if _, ok := p.expect(token.LBRACE, "Expected '{' after for statement"); !ok {
		p.synchronize()
		stmt.Span = p.makeSpan(start.Span.Start)
		return stmt
	}
	stmt.Body = p.parseBlock()
	p.expect(token.RBRACE, "Expected '}' after for block")

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseFuncDef parses: function IDENT ( params ) { block }
//
// A drawing-command keyword is also accepted as the name. The definition is
// registered but the call resolver dispatches the command first, so such a
// function can never be reached.
func (p *Parser) parseFuncDef() ast.Stmt {
	start := p.advance() // function
	def := &ast.FuncDef{}

	if !p.check(token.IDENT) && !p.peekKind().IsDrawingCommand() {
		p.error("E2001", p.peek().Span, fmt.Sprintf("Expected function name, got '%s'", p.peek().Lexeme))
		p.synchronize()
		def.Span = p.makeSpan(start.Span.Start)
		return def
	}
	nameTok := p.advance()
	def.Name = nameTok.Lexeme

	if _, ok := p.expect(token.LPAREN, "Expected '(' after function name"); !ok {
		p.synchronize()
		def.Span = p.makeSpan(start.Span.Start)
		return def
	}
	if !p.check(token.RPAREN) {
		if paramTok, ok := p.expect(token.IDENT, ""); ok {
			def.Params = append(def.Params, paramTok.Lexeme)
		}
		for p.check(token.COMMA) {
			p.advance()
			if paramTok, ok := p.expect(token.IDENT, ""); ok {
				def.Params = append(def.Params, paramTok.Lexeme)
			}
		}
	}
	p.expect(token.RPAREN, "Expected ')' after function parameters")

	if _, ok := p.expect(token.LBRACE, "Expected '{' after function parameters"); !ok {
		p.synchronize()
		def.Span = p.makeSpan(start.Span.Start)
		return def
	}
	def.Body = p.parseBlock()
	p.expect(token.RBRACE, "Expected '}' after function body")

	def.Span = p.makeSpan(start.Span.Start)
	return def
}

// parseReturn parses: return [ expr ]
func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance() // return
	stmt := &ast.Return{}

	if !p.match(token.NEWLINE, token.RBRACE, token.EOF) {
		stmt.Value = p.parseExpr(bpNone)
	}

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseBlock parses statements up to the closing brace. The braces
// themselves are consumed by the caller.
func (p *Parser) parseBlock() []ast.Stmt {
	var stmts []ast.Stmt

	p.skipNewlines()
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		stmt := p.parseStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}

	return stmts
}

// ============================================================
// Expression parsing (Pratt / precedence climbing)
// ============================================================

// parseExpr parses an expression with the given minimum binding power.
func (p *Parser) parseExpr(minBP int) ast.Expr {
	left := p.nud()
	if left == nil {
		return nil
	}

	for {
		bp := infixBP(p.peekKind())
		if bp <= minBP {
			break
		}
		left = p.led(left)
	}

	return left
}

// nud handles prefix (null denotation) parsing.
func (p *Parser) nud() ast.Expr {
	tok := p.peek()

	switch {
	case tok.Kind == token.NUMBER:
		p.advance()
		val, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.NumberLit{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Value:    val,
		}

	case tok.Kind == token.STRING:
		p.advance()
		return &ast.StringLit{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Value:    tok.Lexeme,
		}

	case tok.Kind == token.BOOLEAN:
		p.advance()
		return &ast.BoolLit{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Value:    tok.Lexeme == "true",
		}

	case tok.Kind == token.IDENT:
		p.advance()
		if p.check(token.LPAREN) {
			return p.parseCallArgs(tok)
		}
		return &ast.Ident{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Name:     tok.Lexeme,
		}

	case tok.Kind.IsDrawingCommand():
		// Drawing commands are reserved words; they are only legal as calls.
		if p.peekAhead(1) != token.LPAREN {
			p.error("E2003", tok.Span,
				fmt.Sprintf("Drawing command '%s' must be called with parentheses", tok.Lexeme))
			p.advance()
			return nil
		}
		p.advance()
		return p.parseCallArgs(tok)

	case tok.Kind == token.LPAREN:
		p.advance()
		p.skipNewlines()
		expr := p.parseExpr(bpNone)
		p.skipNewlines()
		p.expect(token.RPAREN, "Expected ')' after expression")
		return expr

	case tok.Kind == token.MINUS || tok.Kind == token.KW_NOT:
		p.advance()
		operand := p.parseExpr(bpPrefix)
		if operand == nil {
			p.error("E2002", tok.Span, fmt.Sprintf("Expected expression after '%s'", tok.Lexeme))
			return nil
		}
		return &ast.UnaryExpr{
			ExprBase: makeExprBase(tok.Span.Start, operand.GetSpan().End),
			Op:       tok.Kind,
			Operand:  operand,
		}

	default:
		p.error("E2002", tok.Span, fmt.Sprintf("Unexpected token in expression: '%s'", tok.Kind))
		return nil
	}
}

// led handles infix (left denotation) parsing.
func (p *Parser) led(left ast.Expr) ast.Expr {
	tok := p.advance()
	bp := infixBP(tok.Kind)

	p.skipNewlines() // allow continuation on the next line after an operator
	right := p.parseExpr(bp)
	if right == nil {
		p.error("E2002", tok.Span, fmt.Sprintf("Expected expression after '%s'", tok.Kind))
		return left
	}
	return &ast.BinaryExpr{
		ExprBase: makeExprBase(left.GetSpan().Start, right.GetSpan().End),
		Op:       tok.Kind,
		Left:     left,
		Right:    right,
	}
}

// parseCallArgs parses the parenthesized argument list of a call whose name
// token has already been consumed.
func (p *Parser) parseCallArgs(nameTok token.Token) *ast.CallExpr {
	p.advance() // (
	var args []ast.Expr

	p.skipNewlines()
	if !p.check(token.RPAREN) {
		if arg := p.parseExpr(bpNone); arg != nil {
			args = append(args, arg)
		}
		for p.check(token.COMMA) {
			p.advance()
			p.skipNewlines()
			if arg := p.parseExpr(bpNone); arg != nil {
				args = append(args, arg)
			}
		}
	}
	p.skipNewlines()
	end, _ := p.expect(token.RPAREN, "Expected ')' after function arguments")

	return &ast.CallExpr{
		ExprBase: makeExprBase(nameTok.Span.Start, end.Span.End),
		Name:     nameTok.Lexeme,
		Args:     args,
	}
}

// ============================================================
// Span helpers
// ============================================================

func (p *Parser) prevEnd() span.Position {
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		return p.tokens[p.pos-1].Span.End
	}
	return p.peek().Span.Start
}

func (p *Parser) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: p.prevEnd()}
}

func makeExprBase(start, end span.Position) ast.ExprBase {
	return ast.ExprBase{NodeBase: ast.NodeBase{Span: span.Span{Start: start, End: end}}}
}

func makeStmtBase(start, end span.Position) ast.StmtBase {
	return ast.StmtBase{NodeBase: ast.NodeBase{Span: span.Span{Start: start, End: end}}}
}
