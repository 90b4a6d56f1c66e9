package command

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		name string
		args int
		ok   bool
	}{
		{"today", Today, 0, true},
		{":general", General, 0, true},
		{"  THEME ", Theme, 0, true},
		{"month 2026-11", Month, 1, true},
		{"mo 2026-11", Month, 1, true},
		{"q", Quit, 0, true},
		{"t", "", 0, false}, // today and theme share the prefix
		{"refresh", "", 0, false},
		{"   ", "", 0, false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.line)
		if ok != tt.ok {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if got.Name != tt.name || len(got.Args) != tt.args {
			t.Errorf("Parse(%q) = %+v, want %s with %d args", tt.line, got, tt.name, tt.args)
		}
	}
}
