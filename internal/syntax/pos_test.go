package syntax

import "testing"

func TestPos(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		str   string
		valid bool
	}{
		{"file", NewPos("demo.pro", 10, 5), "demo.pro:10:5", true},
		{"no_file", NewPos("", 3, 7), "3:7", true},
		{"zero_line", NewPos("demo.pro", 0, 1), "demo.pro:0:1", false},
		{"zero_value", Pos{}, "0:0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}

	p := NewPos("lib.pro", 42, 13)
	if p.Line() != 42 || p.Col() != 13 || p.Filename() != "lib.pro" {
		t.Errorf("getters = %d, %d, %q", p.Line(), p.Col(), p.Filename())
	}
}

// TestTokenPositions checks where the scanner places tokens across the
// constructs that change line accounting.
func TestTokenPositions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		lit  string // literal of the token to locate
		want string
	}{
		{"first", "x = 1", "x", "t.pro:1:1"},
		{"characters_not_bytes", "é = 1", "1", "t.pro:1:5"},
		{"after_comment", "; note\ny = 2", "y", "t.pro:2:1"},
		{"after_continuation", "PRINT, $\n  z", "z", "t.pro:2:3"},
		{"after_ampersand", "a = 1 & b = 2", "b", "t.pro:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Tokenize("t.pro", []byte(tt.src))
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			for _, it := range items {
				if it.Lit == tt.lit {
					if got := it.Pos.String(); got != tt.want {
						t.Errorf("%s at %s, want %s", tt.lit, got, tt.want)
					}
					return
				}
			}
			t.Fatalf("no token %q in %q", tt.lit, tt.src)
		})
	}
}

func TestErrorPositions(t *testing.T) {
	_, err := Tokenize("bad.pro", []byte("x = 1\ny = 2 @ 3"))
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("Tokenize error = %v, want *LexError", err)
	}
	if le.Pos.Filename() != "bad.pro" || le.Pos.Line() != 2 {
		t.Errorf("LexError at %s, want bad.pro line 2", le.Pos)
	}

	_, err = Parse("bad.pro", []byte("x = 1\ny = )"))
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Parse error = %v, want *ParseError", err)
	}
	if pe.Pos.Line() != 2 {
		t.Errorf("ParseError at %s, want line 2", pe.Pos)
	}
}
