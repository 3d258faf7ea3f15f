package runtime

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"turtle-lang/internal/canvas"
	"turtle-lang/internal/diag"
	"turtle-lang/internal/lexer"
	"turtle-lang/internal/parser"
)

// goldenTest runs a .draw file against a real engine and compares the final
// canvas state to a .expected file.
func goldenTest(t *testing.T, name string) {
	t.Helper()

	drawPath := filepath.Join("..", "..", "testdata", name+".draw")
	expectedPath := filepath.Join("..", "..", "testdata", name+".expected")

	source, err := os.ReadFile(drawPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", drawPath, err)
	}
	expected, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", expectedPath, err)
	}

	tokens, lexDiags := lexer.New(string(source), name+".draw").Tokenize()
	if diag.HasErrors(lexDiags) {
		t.Fatalf("lex diagnostics: %v", lexDiags)
	}
	program, parseDiags := parser.New(tokens).ParseProgram()
	if diag.HasErrors(parseDiags) {
		t.Fatalf("parse diagnostics: %v", parseDiags)
	}

	engine := canvas.NewEngine(800, 600, "golden")
	interp := NewInterpreter(engine)
	if err := interp.Run(program); err != nil {
		t.Fatalf("runtime error: %v", err)
	}

	got := dumpEngine(engine)
	expectedStr := strings.TrimRight(string(expected), "\n")
	gotStr := strings.TrimRight(got, "\n")

	if gotStr != expectedStr {
		expectedLines := strings.Split(expectedStr, "\n")
		gotLines := strings.Split(gotStr, "\n")

		t.Errorf("canvas state mismatch for %s", name)
		maxLines := len(expectedLines)
		if len(gotLines) > maxLines {
			maxLines = len(gotLines)
		}
		for i := 0; i < maxLines; i++ {
			exp, g := "<missing>", "<missing>"
			if i < len(expectedLines) {
				exp = expectedLines[i]
			}
			if i < len(gotLines) {
				g = gotLines[i]
			}
			prefix := "  "
			if exp != g {
				prefix = "! "
			}
			t.Logf("%sline %d: expected=%q got=%q", prefix, i+1, exp, g)
		}
	}
}

// dumpEngine renders the engine state as stable text. Coordinates are
// rounded to 3 decimals so trig residue does not leak into golden files.
func dumpEngine(e *canvas.Engine) string {
	var b strings.Builder

	for _, l := range e.Lines() {
		fmt.Fprintf(&b, "line (%s, %s) -> (%s, %s) color=%s width=%s\n",
			f(l.From.X), f(l.From.Y), f(l.To.X), f(l.To.Y), l.Color, f(l.Width))
	}
	for _, c := range e.Circles() {
		fmt.Fprintf(&b, "circle center=(%s, %s) radius=%s color=%s width=%s fill=%s\n",
			f(c.Center.X), f(c.Center.Y), f(c.Radius), c.Color, f(c.Width), fill(c.Fill))
	}
	for _, r := range e.Rects() {
		fmt.Fprintf(&b, "rect corner=(%s, %s) w=%s h=%s color=%s width=%s fill=%s\n",
			f(r.Corner.X), f(r.Corner.Y), f(r.W), f(r.H), r.Color, f(r.Width), fill(r.Fill))
	}
	for _, p := range e.Polygons() {
		points := make([]string, len(p.Points))
		for i, pt := range p.Points {
			points[i] = fmt.Sprintf("(%s, %s)", f(pt.X), f(pt.Y))
		}
		fmt.Fprintf(&b, "polygon points=%s color=%s width=%s fill=%s\n",
			strings.Join(points, " "), p.Color, f(p.Width), fill(p.Fill))
	}
	for _, a := range e.Arcs() {
		fmt.Fprintf(&b, "arc center=(%s, %s) w=%s h=%s angle=%s color=%s width=%s\n",
			f(a.Center.X), f(a.Center.Y), f(a.W), f(a.H), f(a.Angle), a.Color, f(a.Width))
	}

	x, y := e.Position()
	fmt.Fprintf(&b, "pen (%s, %s) heading=%s down=%t color=%s width=%s filling=%t\n",
		f(x), f(y), f(e.Heading()), e.IsPenDown(), e.Color(), f(e.StrokeWidth()), e.Filling())

	return b.String()
}

func f(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(r, 'g', -1, 64)
}

func fill(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func TestGoldenSquare(t *testing.T) {
	goldenTest(t, "golden_square")
}

func TestGoldenShapes(t *testing.T) {
	goldenTest(t, "golden_shapes")
}

func TestGoldenFunctions(t *testing.T) {
	goldenTest(t, "golden_functions")
}
