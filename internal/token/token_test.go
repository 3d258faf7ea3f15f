package token

import "testing"

func TestKindClassification(t *testing.T) {
	tests := []struct {
		kind       Kind
		keyword    bool
		drawingCmd bool
	}{
		{IDENT, false, false},
		{NUMBER, false, false},
		{PLUS, false, false},
		{KW_IF, true, false},
		{KW_RETURN, true, false},
		{KW_NOT, true, false},
		{CMD_FORWARD, true, true},
		{CMD_RECTANGLE, true, true},
		{CMD_HIDE, true, true},
	}
	for _, tt := range tests {
		if got := tt.kind.IsKeyword(); got != tt.keyword {
			t.Errorf("%s.IsKeyword() = %t, want %t", tt.kind, got, tt.keyword)
		}
		if got := tt.kind.IsDrawingCommand(); got != tt.drawingCmd {
			t.Errorf("%s.IsDrawingCommand() = %t, want %t", tt.kind, got, tt.drawingCmd)
		}
	}
}

func TestLookupIdentAliases(t *testing.T) {
	if LookupIdent("FD") != CMD_FORWARD {
		t.Errorf("expected FD to resolve to the forward command")
	}
	if LookupIdent("rect") != CMD_RECTANGLE {
		t.Errorf("expected rect to resolve to the rectangle command")
	}
	if LookupIdent("radius") != IDENT {
		t.Errorf("expected radius to stay an identifier")
	}
}
