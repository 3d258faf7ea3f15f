// Package lexer implements lexical analysis (tokenization) for the drawing
// language.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"turtle-lang/internal/diag"
	"turtle-lang/internal/span"
	"turtle-lang/internal/token"
)

// Lexer tokenizes source text into a sequence of tokens.
type Lexer struct {
	source   string
	filename string

	pos  int // current read position in source
	line int // current line (1-based)
	col  int // current column (1-based)

	diags []diag.Diagnostic
}

// New creates a new Lexer for the given source text.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		pos:      0,
		line:     1,
		col:      1,
	}
}

// Tokenize scans the entire source and returns all tokens and diagnostics.
// The token slice always ends with an EOF token.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	var tokens []token.Token
	for {
		tok := l.nextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.diags
}

// ---- internal helpers ----

// peek returns the current character without advancing, or 0 if at end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

// peekNext returns the character after current, or 0 if at end.
func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

// advance consumes the current character and returns it.
func (l *Lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// curPos returns the current position as a span.Position.
func (l *Lexer) curPos() span.Position {
	return span.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// makeSpan returns a span from start to current position.
func (l *Lexer) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: l.curPos()}
}

// skipWhitespace skips spaces, tabs and carriage returns (not newlines).
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
		} else {
			break
		}
	}
}

// skipLineComment skips from # to end of line.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.advance()
	}
}

// addError records a diagnostic error.
func (l *Lexer) addError(code string, s span.Span, msg string) {
	l.diags = append(l.diags, diag.Errorf(code, s, "%s", msg))
}

// ---- token reading ----

func (l *Lexer) nextToken() token.Token {
	l.skipWhitespace()

	if l.pos >= len(l.source) {
		return token.Token{Kind: token.EOF, Lexeme: "", Span: l.makeSpan(l.curPos())}
	}

	start := l.curPos()
	ch := l.peek()

	// Newline is a statement separator and therefore a token of its own
	if ch == '\n' {
		l.advance()
		return token.Token{Kind: token.NEWLINE, Lexeme: "\\n", Span: l.makeSpan(start)}
	}

	// Line comment
	if ch == '#' {
		l.skipLineComment()
		return l.nextToken()
	}

	// String literal, single- or double-quoted
	if ch == '"' || ch == '\'' {
		return l.readString(start)
	}

	// Number literal; a leading dot with a digit after it also starts one
	if isDigit(ch) || (ch == '.' && isDigit(l.peekNext())) {
		return l.readNumber(start)
	}

	// Identifier or keyword
	if isIdentStart(ch) {
		return l.readIdentifier(start)
	}

	// Operators and delimiters
	return l.readOperator(start)
}

// readString reads a string literal. Both quote characters are accepted; the
// closing quote must match the opening one. Newlines are allowed inside.
func (l *Lexer) readString(start span.Position) token.Token {
	quote := l.advance() // opening quote
	var value []byte

	for l.pos < len(l.source) {
		ch := l.peek()
		if ch == quote {
			l.advance() // closing quote
			return token.Token{
				Kind:   token.STRING,
				Lexeme: string(value),
				Span:   l.makeSpan(start),
			}
		}
		if ch == '\\' {
			l.advance()
			if l.pos >= len(l.source) {
				break
			}
			esc := l.peek()
			switch esc {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			case '\\':
				value = append(value, '\\')
			case quote:
				value = append(value, quote)
			default:
				// Unknown escapes pass the character through unchanged
				value = append(value, esc)
			}
			l.advance()
			continue
		}
		value = append(value, ch)
		l.advance()
	}

	l.addError("E1001", l.makeSpan(start), "Unterminated string")
	return token.Token{Kind: token.STRING, Lexeme: string(value), Span: l.makeSpan(start)}
}

// readNumber reads a numeric literal: integer part, optional fraction,
// optional exponent. Every number is a float; there is no integer type.
func (l *Lexer) readNumber(start span.Position) token.Token {
	numStart := l.pos

	for l.pos < len(l.source) && isDigit(l.peek()) {
		l.advance()
	}

	if l.pos < len(l.source) && l.peek() == '.' {
		l.advance()
		for l.pos < len(l.source) && isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.pos < len(l.source) && (l.peek() == 'e' || l.peek() == 'E') {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for l.pos < len(l.source) && isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := l.source[numStart:l.pos]
	if _, err := strconv.ParseFloat(lexeme, 64); err != nil {
		l.addError("E1002", l.makeSpan(start), fmt.Sprintf("Invalid number format: %s", lexeme))
		return token.Token{Kind: token.ILLEGAL, Lexeme: lexeme, Span: l.makeSpan(start)}
	}
	return token.Token{Kind: token.NUMBER, Lexeme: lexeme, Span: l.makeSpan(start)}
}

// readIdentifier reads an identifier or keyword. Keyword matching is
// case-insensitive; a matched keyword token carries the lowercased text so
// that aliases like FD report as "fd". Identifiers keep their case.
func (l *Lexer) readIdentifier(start span.Position) token.Token {
	identStart := l.pos

	for l.pos < len(l.source) && isIdentPart(l.peek()) {
		l.advance()
	}

	lexeme := l.source[identStart:l.pos]
	kind := token.LookupIdent(lexeme)
	if kind != token.IDENT {
		lexeme = strings.ToLower(lexeme)
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Span: l.makeSpan(start)}
}

// readOperator reads an operator or delimiter token. Two-character operators
// are matched before their one-character prefixes.
func (l *Lexer) readOperator(start span.Position) token.Token {
	ch := l.advance()

	switch ch {
	case '(':
		return l.tok(token.LPAREN, "(", start)
	case ')':
		return l.tok(token.RPAREN, ")", start)
	case '{':
		return l.tok(token.LBRACE, "{", start)
	case '}':
		return l.tok(token.RBRACE, "}", start)
	case '[':
		return l.tok(token.LBRACKET, "[", start)
	case ']':
		return l.tok(token.RBRACKET, "]", start)
	case ',':
		return l.tok(token.COMMA, ",", start)
	case ';':
		return l.tok(token.SEMICOLON, ";", start)
	case ':':
		return l.tok(token.COLON, ":", start)
	case '+':
		return l.tok(token.PLUS, "+", start)
	case '-':
		return l.tok(token.MINUS, "-", start)
	case '*':
		return l.tok(token.STAR, "*", start)
	case '/':
		return l.tok(token.SLASH, "/", start)
	case '%':
		return l.tok(token.PERCENT, "%", start)
	case '^':
		return l.tok(token.CARET, "^", start)
	case '=':
		if l.peek() == '=' {
			l.advance()
			return l.tok(token.EQ, "==", start)
		}
		return l.tok(token.ASSIGN, "=", start)
	case '!':
		if l.peek() == '=' {
			l.advance()
			return l.tok(token.NEQ, "!=", start)
		}
		l.addError("E1003", l.makeSpan(start), "Unexpected character: '!'")
		return l.tok(token.ILLEGAL, "!", start)
	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.tok(token.LTE, "<=", start)
		}
		return l.tok(token.LT, "<", start)
	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.tok(token.GTE, ">=", start)
		}
		return l.tok(token.GT, ">", start)
	default:
		l.addError("E1003", l.makeSpan(start), fmt.Sprintf("Unexpected character: %q", ch))
		return l.tok(token.ILLEGAL, string(ch), start)
	}
}

func (l *Lexer) tok(kind token.Kind, lexeme string, start span.Position) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme, Span: l.makeSpan(start)}
}

// ---- character classification ----

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
