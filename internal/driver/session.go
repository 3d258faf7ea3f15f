package driver

import (
	"errors"
	"fmt"

	"turtle-lang/internal/canvas"
	"turtle-lang/internal/diag"
	"turtle-lang/internal/lexer"
	"turtle-lang/internal/parser"
	"turtle-lang/internal/runtime"
	"turtle-lang/internal/span"
)

// Session owns one canvas engine and one interpreter. Variables, functions
// and pen state persist across Execute calls, so a REPL or a sequence of
// scripts can build on earlier state.
type Session struct {
	engine *canvas.Engine
	interp *runtime.Interpreter
}

// NewSession creates a session from the given config.
func NewSession(cfg *Config) *Session {
	engine := canvas.NewEngine(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Title)
	return &Session{
		engine: engine,
		interp: runtime.NewInterpreter(engine),
	}
}

// Engine returns the session's canvas engine.
func (s *Session) Engine() *canvas.Engine {
	return s.engine
}

// Interpreter returns the session's interpreter.
func (s *Session) Interpreter() *runtime.Interpreter {
	return s.interp
}

// Execute runs one program through lex, parse and interpret. Lex and parse
// failures abort before any statement executes. A runtime failure stops the
// program but leaves session state exactly as the failure point left it.
func (s *Session) Execute(code string) (bool, string) {
	tokens, lexDiags := lexer.New(code, "<input>").Tokenize()
	if diag.HasErrors(lexDiags) {
		return false, formatDiag("Lexer", firstError(lexDiags))
	}

	program, parseDiags := parser.New(tokens).ParseProgram()
	if diag.HasErrors(parseDiags) {
		return false, formatDiag("Parser", firstError(parseDiags))
	}

	if err := s.interp.Run(program); err != nil {
		var rerr *runtime.RuntimeError
		if errors.As(err, &rerr) {
			return false, formatError("Runtime", rerr.Message, rerr.Span)
		}
		return false, fmt.Sprintf("Runtime Error: %s", err)
	}

	return true, "Execution successful"
}

func firstError(diags []diag.Diagnostic) diag.Diagnostic {
	for _, d := range diags {
		if d.Severity == diag.Error {
			return d
		}
	}
	return diags[0]
}

func formatDiag(kind string, d diag.Diagnostic) string {
	return formatError(kind, d.Message, d.Span)
}

func formatError(kind, message string, s span.Span) string {
	return fmt.Sprintf("%s Error: %s (line %d, column %d)", kind, message, s.Start.Line, s.Start.Column)
}
