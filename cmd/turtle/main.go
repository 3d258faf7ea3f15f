// Command turtle is the CLI entry point for the drawing language toolchain.
//
// Usage:
//
//	turtle tokens <file>            Print tokens
//	turtle tokens <file> --json     Print tokens as JSON
//	turtle parse  <file>            Print AST as JSON
//	turtle run    <file>            Run a drawing script
//	turtle repl                     Start interactive REPL
//
// All commands accept --config <file> to load a YAML session config.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"turtle-lang/internal/ast"
	"turtle-lang/internal/canvas"
	"turtle-lang/internal/diag"
	"turtle-lang/internal/driver"
	"turtle-lang/internal/lexer"
	"turtle-lang/internal/parser"
	"turtle-lang/internal/token"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]

	cfg, err := driver.LoadConfig(flagValue("--config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "tokens":
		source, filename := readFileArg()
		cmdTokens(source, filename, hasFlag("--json"))
	case "parse":
		source, filename := readFileArg()
		cmdParse(source, filename)
	case "run":
		source, _ := readFileArg()
		cmdRun(source, cfg)
	case "repl":
		cmdRepl(cfg)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command '%s'\n", command)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  turtle tokens <file> [--json]   Tokenize and print tokens")
	fmt.Fprintln(os.Stderr, "  turtle parse  <file>            Parse and print AST (JSON)")
	fmt.Fprintln(os.Stderr, "  turtle run    <file>            Run a drawing script")
	fmt.Fprintln(os.Stderr, "  turtle repl                     Start interactive REPL")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --config <file>                 Load a YAML session config")
}

func readFileArg() (source, filename string) {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "error: missing file argument")
		os.Exit(1)
	}
	filename = os.Args[2]
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot read file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(data), filename
}

func hasFlag(flag string) bool {
	for _, arg := range os.Args[2:] {
		if arg == flag {
			return true
		}
	}
	return false
}

func flagValue(flag string) string {
	for i, arg := range os.Args[2:] {
		if arg == flag && 2+i+1 < len(os.Args) {
			return os.Args[2+i+1]
		}
	}
	return ""
}

// ---- tokens command ----

func cmdTokens(source, filename string, jsonMode bool) {
	tokens, diags := lexer.New(source, filename).Tokenize()

	if jsonMode {
		printTokensJSON(tokens, diags)
	} else {
		printTokensText(tokens, diags)
	}

	if diag.HasErrors(diags) {
		os.Exit(1)
	}
}

func printTokensText(tokens []token.Token, diags []diag.Diagnostic) {
	for _, tok := range tokens {
		lexeme := tok.Lexeme
		if tok.Kind == token.NEWLINE {
			lexeme = "\\n"
		}
		fmt.Printf("%-12s %-20s %d:%d\n", tok.Kind, lexeme, tok.Span.Start.Line, tok.Span.Start.Column)
	}
	printDiagsText(diags)
}

func printTokensJSON(tokens []token.Token, diags []diag.Diagnostic) {
	type tokenJSON struct {
		Kind   string `json:"kind"`
		Lexeme string `json:"lexeme"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
		Offset int    `json:"offset"`
	}

	var toks []tokenJSON
	for _, tok := range tokens {
		toks = append(toks, tokenJSON{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme,
			Line:   tok.Span.Start.Line,
			Column: tok.Span.Start.Column,
			Offset: tok.Span.Start.Offset,
		})
	}

	printJSON(map[string]interface{}{
		"tokens":      toks,
		"diagnostics": diagsToSlice(diags),
	})
}

// ---- parse command ----

func cmdParse(source, filename string) {
	tokens, lexDiags := lexer.New(source, filename).Tokenize()
	program, parseDiags := parser.New(tokens).ParseProgram()

	allDiags := append(lexDiags, parseDiags...)

	printJSON(map[string]interface{}{
		"ast":         ast.NodeToMap(program),
		"diagnostics": diagsToSlice(allDiags),
	})

	if diag.HasErrors(allDiags) {
		os.Exit(1)
	}
}

// ---- run command ----

func cmdRun(source string, cfg *driver.Config) {
	session := driver.NewSession(cfg)
	ok, message := session.Execute(source)
	if !ok {
		fmt.Fprintln(os.Stderr, message)
		os.Exit(1)
	}

	// There is no window in script mode, so report what was drawn.
	fmt.Println(message)
	printSummary(session.Engine())
}

func printSummary(engine *canvas.Engine) {
	fmt.Printf("Shapes drawn: %d (lines: %d, circles: %d, rectangles: %d, polygons: %d, arcs: %d)\n",
		engine.ShapeCount(),
		len(engine.Lines()), len(engine.Circles()), len(engine.Rects()),
		len(engine.Polygons()), len(engine.Arcs()))
	x, y := engine.Position()
	fmt.Printf("Pen position: (%g, %g), heading %g\n", x, y, engine.Heading())
}

// ---- output helpers ----

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "error: JSON encoding failed: %v\n", err)
		os.Exit(1)
	}
}

func printDiagsText(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

func diagsToSlice(diags []diag.Diagnostic) []map[string]interface{} {
	result := make([]map[string]interface{}, len(diags))
	for i, d := range diags {
		result[i] = map[string]interface{}{
			"code":     d.Code,
			"severity": d.Severity.String(),
			"message":  d.Message,
			"line":     d.Span.Start.Line,
			"column":   d.Span.Start.Column,
			"offset":   d.Span.Start.Offset,
		}
		if d.Hint != "" {
			result[i]["hint"] = d.Hint
		}
	}
	return result
}
