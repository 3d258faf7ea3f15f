// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"
	"strings"
	"turtle-lang/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota
	EOF
	NEWLINE

	// Literals
	IDENT   // identifiers: x, size, myVar
	NUMBER  // numeric literals: 42, 3.14, 1e3
	STRING  // string literals: "red", 'blue'
	BOOLEAN // true, false

	// Operators
	ASSIGN  // =
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	CARET   // ^

	EQ  // ==
	NEQ // !=
	LT  // <
	LTE // <=
	GT  // >
	GTE // >=

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :

	// Control-flow and declaration keywords
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_FOR
	KW_TO
	KW_STEP
	KW_FUNCTION
	KW_RETURN
	KW_VAR
	KW_LET

	// Word operators
	KW_AND
	KW_OR
	KW_NOT

	// Drawing commands (aliases share a kind: fd=forward, bk=backward, ...)
	CMD_FORWARD
	CMD_BACKWARD
	CMD_LEFT
	CMD_RIGHT
	CMD_PENUP
	CMD_PENDOWN
	CMD_CIRCLE
	CMD_RECTANGLE
	CMD_LINE
	CMD_POLYGON
	CMD_ARC
	CMD_CLEAR
	CMD_RESET
	CMD_COLOR
	CMD_FILL
	CMD_NOFILL
	CMD_WIDTH
	CMD_GOTO
	CMD_POSITION
	CMD_SHOW
	CMD_HIDE
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	NEWLINE: "NEWLINE",

	IDENT:   "IDENT",
	NUMBER:  "NUMBER",
	STRING:  "STRING",
	BOOLEAN: "BOOLEAN",

	ASSIGN:  "=",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	CARET:   "^",
	EQ:      "==",
	NEQ:     "!=",
	LT:      "<",
	LTE:     "<=",
	GT:      ">",
	GTE:     ">=",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",

	KW_IF:       "if",
	KW_ELSE:     "else",
	KW_WHILE:    "while",
	KW_FOR:      "for",
	KW_TO:       "to",
	KW_STEP:     "step",
	KW_FUNCTION: "function",
	KW_RETURN:   "return",
	KW_VAR:      "var",
	KW_LET:      "let",

	KW_AND: "and",
	KW_OR:  "or",
	KW_NOT: "not",

	CMD_FORWARD:   "forward",
	CMD_BACKWARD:  "backward",
	CMD_LEFT:      "left",
	CMD_RIGHT:     "right",
	CMD_PENUP:     "penup",
	CMD_PENDOWN:   "pendown",
	CMD_CIRCLE:    "circle",
	CMD_RECTANGLE: "rectangle",
	CMD_LINE:      "line",
	CMD_POLYGON:   "polygon",
	CMD_ARC:       "arc",
	CMD_CLEAR:     "clear",
	CMD_RESET:     "reset",
	CMD_COLOR:     "color",
	CMD_FILL:      "fill",
	CMD_NOFILL:    "nofill",
	CMD_WIDTH:     "width",
	CMD_GOTO:      "goto",
	CMD_POSITION:  "position",
	CMD_SHOW:      "show",
	CMD_HIDE:      "hide",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword returns true if the kind is a reserved word of any sort,
// including the word operators and drawing commands.
func (k Kind) IsKeyword() bool {
	return k >= KW_IF && k <= CMD_HIDE
}

// IsDrawingCommand returns true if the kind names a drawing command.
func (k Kind) IsDrawingCommand() bool {
	return k >= CMD_FORWARD && k <= CMD_HIDE
}

// keywords maps lowercased reserved words to their kinds. Drawing commands
// carry their short aliases as well; all of them resolve to the same kind.
var keywords = map[string]Kind{
	"if":       KW_IF,
	"else":     KW_ELSE,
	"while":    KW_WHILE,
	"for":      KW_FOR,
	"to":       KW_TO,
	"step":     KW_STEP,
	"function": KW_FUNCTION,
	"return":   KW_RETURN,
	"var":      KW_VAR,
	"let":      KW_LET,

	"and": KW_AND,
	"or":  KW_OR,
	"not": KW_NOT,

	"true":  BOOLEAN,
	"false": BOOLEAN,

	"forward":   CMD_FORWARD,
	"fd":        CMD_FORWARD,
	"backward":  CMD_BACKWARD,
	"bk":        CMD_BACKWARD,
	"left":      CMD_LEFT,
	"lt":        CMD_LEFT,
	"right":     CMD_RIGHT,
	"rt":        CMD_RIGHT,
	"penup":     CMD_PENUP,
	"pu":        CMD_PENUP,
	"pendown":   CMD_PENDOWN,
	"pd":        CMD_PENDOWN,
	"circle":    CMD_CIRCLE,
	"rectangle": CMD_RECTANGLE,
	"rect":      CMD_RECTANGLE,
	"line":      CMD_LINE,
	"polygon":   CMD_POLYGON,
	"arc":       CMD_ARC,
	"clear":     CMD_CLEAR,
	"reset":     CMD_RESET,
	"color":     CMD_COLOR,
	"fill":      CMD_FILL,
	"nofill":    CMD_NOFILL,
	"width":     CMD_WIDTH,
	"goto":      CMD_GOTO,
	"position":  CMD_POSITION,
	"pos":       CMD_POSITION,
	"show":      CMD_SHOW,
	"hide":      CMD_HIDE,
}

// LookupIdent returns the keyword Kind for ident, or IDENT if it is not a
// reserved word. Keyword matching is case-insensitive; identifiers keep
// their case.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[strings.ToLower(ident)]; ok {
		return kind
	}
	return IDENT
}

// Token represents a lexical token with its kind, text, and source location.
// For keyword tokens (including drawing-command aliases) Lexeme is the
// lowercased reserved word; identifier lexemes keep their original case.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Span   span.Span `json:"span"`
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}
