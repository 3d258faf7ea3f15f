package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSession() *Session {
	return NewSession(DefaultConfig())
}

func TestNewSessionAppliesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Canvas.Width = 400
	cfg.Canvas.Height = 300
	cfg.Canvas.Title = "sketchpad"

	s := NewSession(cfg)
	w, h := s.Engine().Size()
	if w != 400 || h != 300 {
		t.Errorf("unexpected engine size: %dx%d", w, h)
	}
	if s.Engine().Title() != "sketchpad" {
		t.Errorf("unexpected title: %q", s.Engine().Title())
	}
}

func TestExecuteSuccess(t *testing.T) {
	s := newTestSession()
	ok, message := s.Execute("forward(100)\nright(90)")
	if !ok {
		t.Fatalf("expected success, got: %s", message)
	}
	if message != "Execution successful" {
		t.Errorf("unexpected message: %q", message)
	}
	if len(s.Engine().Lines()) != 1 {
		t.Errorf("expected 1 line drawn, got %d", len(s.Engine().Lines()))
	}
}

func TestExecuteLexerErrorFormat(t *testing.T) {
	s := newTestSession()
	ok, message := s.Execute(`"unterminated`)
	if ok {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(message, "Lexer Error: ") {
		t.Errorf("unexpected message: %q", message)
	}
	if !strings.Contains(message, "(line 1, column 1)") {
		t.Errorf("message should carry the position: %q", message)
	}
}

func TestExecuteParserErrorFormat(t *testing.T) {
	s := newTestSession()
	ok, message := s.Execute("if true { ")
	if ok {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(message, "Parser Error: ") {
		t.Errorf("unexpected message: %q", message)
	}
}

func TestExecuteRuntimeErrorFormat(t *testing.T) {
	s := newTestSession()
	ok, message := s.Execute("var x = 1 / 0")
	if ok {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(message, "Runtime Error: Division by zero") {
		t.Errorf("unexpected message: %q", message)
	}
	if !strings.Contains(message, "line 1, column") {
		t.Errorf("message should carry the position: %q", message)
	}
}

func TestParseErrorAbortsBeforeExecution(t *testing.T) {
	s := newTestSession()
	ok, _ := s.Execute("forward(10)\nif true { ")
	if ok {
		t.Fatal("expected failure")
	}
	if len(s.Engine().Lines()) != 0 {
		t.Error("no statement may execute when parsing fails")
	}
}

func TestStatePersistsAcrossExecutes(t *testing.T) {
	s := newTestSession()
	if ok, msg := s.Execute("var size = 50"); !ok {
		t.Fatalf("first execute failed: %s", msg)
	}
	if ok, msg := s.Execute("forward(size)"); !ok {
		t.Fatalf("second execute failed: %s", msg)
	}
	if len(s.Engine().Lines()) != 1 {
		t.Errorf("expected 1 line, got %d", len(s.Engine().Lines()))
	}
}

func TestRuntimeErrorKeepsPriorState(t *testing.T) {
	s := newTestSession()
	s.Execute("forward(10)\nvar x = 1 / 0")
	if len(s.Engine().Lines()) != 1 {
		t.Error("work done before the failure must be kept")
	}
	if ok, _ := s.Execute("forward(10)"); !ok {
		t.Error("the session must stay usable after a failure")
	}
}

// ---- config ----

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Errorf("unexpected default canvas: %+v", cfg.Canvas)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Canvas.Width != 800 {
		t.Errorf("expected defaults, got %+v", cfg.Canvas)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "canvas:\n  width: 1024\n  height: 768\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Canvas.Width != 1024 || cfg.Canvas.Height != 768 {
		t.Errorf("unexpected canvas config: %+v", cfg.Canvas)
	}
	if cfg.Canvas.Title != "Drawing Interpreter" {
		t.Errorf("unset keys should keep defaults, got %q", cfg.Canvas.Title)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cnavas:\n  width: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("unknown keys should be rejected")
	}
}

func TestLoadConfigInvalidDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("canvas:\n  width: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("non-positive dimensions should be rejected")
	}
}
