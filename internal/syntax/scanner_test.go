package syntax

import (
	"strings"
	"testing"
)

// scanAll returns the tokens and literals of src, without the final EOF.
func scanAll(t *testing.T, src string) ([]Token, []string) {
	t.Helper()
	items, err := Tokenize("test.pro", []byte(src))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	var toks []Token
	var lits []string
	for _, it := range items[:len(items)-1] {
		toks = append(toks, it.Tok)
		lits = append(lits, it.Lit)
	}
	return toks, lits
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		// Identifiers and keywords
		{"ident", "foo", []Token{_Name}, []string{"foo"}},
		{"ident_case_kept", "MyVar_2", []Token{_Name}, []string{"MyVar_2"}},
		{"ident_unicode", "größe", []Token{_Name}, []string{"größe"}},
		{"keyword_lower", "endfor", []Token{_EndFor}, []string{"endfor"}},
		{"word_operators", "a eq b and not c", []Token{_Name, _Eq, _Name, _And, _Not, _Name}, nil},
		{"keyword_after_dot", "s.end", []Token{_Name, _Dot, _Name}, []string{"s", ".", "end"}},
		{"keyword_after_arrow", "o->Do", []Token{_Name, _Arrow, _Name}, nil},
		{"sysvar", "!pi", []Token{_SysVar}, []string{"!pi"}},

		// Numbers (verbatim text)
		{"int", "123", []Token{_Literal}, []string{"123"}},
		{"int_hex", "0x1F", []Token{_Literal}, []string{"0x1F"}},
		{"int_oct", "0o17", []Token{_Literal}, []string{"0o17"}},
		{"int_bin", "0b101", []Token{_Literal}, []string{"0b101"}},
		{"byte_zero", "0B", []Token{_Literal}, []string{"0B"}},
		{"suffix_long", "12L", []Token{_Literal}, []string{"12L"}},
		{"suffix_ull", "7ull", []Token{_Literal}, []string{"7ull"}},
		{"suffix_not_word", "12lx", []Token{_Literal, _Name}, []string{"12", "lx"}},
		{"float", "3.14", []Token{_Literal}, []string{"3.14"}},
		{"float_trailing_dot", "3.", []Token{_Literal}, []string{"3."}},
		{"float_leading_dot", ".5", []Token{_Literal}, []string{".5"}},
		{"float_exp", "2.5e-3", []Token{_Literal}, []string{"2.5e-3"}},
		{"double_exp", "1d10", []Token{_Literal}, []string{"1d10"}},
		{"double_suffix", "2D", []Token{_Literal}, []string{"2D"}},
		{"e_not_exponent", "2 eq 3", []Token{_Literal, _Eq, _Literal}, nil},

		// Strings
		{"string_single", "'hi'", []Token{_Literal}, []string{"hi"}},
		{"string_double", `"hi"`, []Token{_Literal}, []string{"hi"}},
		{"string_doubled_quote", "'it''s'", []Token{_Literal}, []string{"it's"}},
		{"string_other_quote", `"it's"`, []Token{_Literal}, []string{"it's"}},
		{"string_empty", "''", []Token{_Literal}, []string{""}},
		{"radix_hex", "'FF'x", []Token{_Literal}, []string{"'FF'x"}},
		{"radix_oct_suffix", "'17'oL", []Token{_Literal}, []string{"'17'oL"}},
		{"radix_bin", "'101'b", []Token{_Literal}, []string{"'101'b"}},
		{"not_radix", "'hello'", []Token{_Literal}, []string{"hello"}},

		// Operators and delimiters
		{"arith", "a+b-c*d/e^f", []Token{_Name, _Add, _Name, _Sub, _Name, _Mul, _Name, _Div, _Name, _Pow, _Name}, nil},
		{"compound", "x += 1", []Token{_Name, _AddAssign, _Literal}, nil},
		{"compound_all", "-= *= /=", []Token{_SubAssign, _MulAssign, _DivAssign}, nil},
		{"arrow", "o->m", []Token{_Name, _Arrow, _Name}, nil},
		{"dcolon", "A::B", []Token{_Name, _DColon, _Name}, nil},
		{"logical", "a && b || ~c", []Token{_Name, _AndAnd, _Name, _OrOr, _Tilde, _Name}, nil},
		{"ternary", "c ? a : b", []Token{_Name, _Question, _Name, _Colon, _Name}, nil},
		{"flag", "/VERBOSE", []Token{_Div, _Name}, nil},
		{"brackets", "a[*, 0:2]", []Token{_Name, _Lbrack, _Mul, _Comma, _Literal, _Colon, _Literal, _Rbrack}, nil},
		{"struct", "{P, x: 1}", []Token{_Lbrace, _Name, _Comma, _Name, _Colon, _Literal, _Rbrace}, nil},

		// Lines
		{"amp_separator", "a & b", []Token{_Name, _Amp, _Name}, nil},
		{"newline", "a\nb", []Token{_Name, _Newline, _Name}, nil},
		{"blank_lines_collapse", "\n\na\n\n\nb\n", []Token{_Name, _Newline, _Name, _Newline}, nil},
		{"comment", "a ; comment\nb", []Token{_Name, _Newline, _Name}, nil},
		{"comment_only_line", "; hello\na", []Token{_Name}, nil},
		{"continuation", "a = 1 + $\n 2", []Token{_Name, _Assign, _Literal, _Add, _Literal}, nil},
		{"continuation_comment", "a, $ ; more\n b", []Token{_Name, _Comma, _Name}, nil},
		{"newline_in_parens", "f(1,\n2)", []Token{_Name, _Lparen, _Literal, _Comma, _Literal, _Rparen}, nil},
		{"newline_in_brackets", "[1,\n2]", []Token{_Lbrack, _Literal, _Comma, _Literal, _Rbrack}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, lits := scanAll(t, tt.src)
			if len(toks) != len(tt.tokens) {
				t.Fatalf("got %d tokens %v, want %d %v", len(toks), toks, len(tt.tokens), tt.tokens)
			}
			for i := range toks {
				if toks[i] != tt.tokens[i] {
					t.Errorf("token[%d] = %s, want %s", i, toks[i], tt.tokens[i])
				}
			}
			if tt.lits == nil {
				return
			}
			for i := range lits {
				if lits[i] != tt.lits[i] {
					t.Errorf("lit[%d] = %q, want %q", i, lits[i], tt.lits[i])
				}
			}
		})
	}
}

func TestScanLitKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind LitKind
	}{
		{"1", IntLit},
		{"1L", IntLit},
		{"'F'x", IntLit},
		{"1.", FloatLit},
		{"1e3", FloatLit},
		{"1D", FloatLit},
		{"'1'", StringLit},
		{`"abc"`, StringLit},
	}
	for _, tt := range tests {
		items, err := Tokenize("", []byte(tt.src))
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tt.src, err)
		}
		if items[0].Kind != tt.kind {
			t.Errorf("%q: kind = %s, want %s", tt.src, items[0].Kind, tt.kind)
		}
	}
}

func TestScanPositions(t *testing.T) {
	items, err := Tokenize("p.pro", []byte("x = 1\n  PRINT, x"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"p.pro:1:1", "p.pro:1:3", "p.pro:1:5", "p.pro:1:6", "p.pro:2:3", "p.pro:2:8", "p.pro:2:10"}
	for i, w := range want {
		if got := items[i].Pos.String(); got != w {
			t.Errorf("item %d (%s) at %s, want %s", i, items[i], got, w)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
		pos  string
	}{
		{"unterminated_string", "x = 'abc", "not terminated", "1:9"},
		{"string_across_line", "x = \"ab\ny\"", "not terminated", "1:8"},
		{"bad_char", "x = 1 # 2", "unexpected character", "1:7"},
		{"single_bar", "a | b", "use || or OR", "1:3"},
		{"junk_after_continuation", "a $ b", "after line continuation", "1:5"},
		{"bad_sysvar", "!1", "system variable", "1:2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize("", []byte(tt.src))
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want error", tt.src)
			}
			le, ok := err.(*LexError)
			if !ok {
				t.Fatalf("error type %T, want *LexError", err)
			}
			if !strings.Contains(le.Msg, tt.msg) {
				t.Errorf("message %q does not contain %q", le.Msg, tt.msg)
			}
			if got := le.Pos.String(); got != tt.pos {
				t.Errorf("error at %s, want %s", got, tt.pos)
			}
		})
	}
}

func TestScannerNextAPI(t *testing.T) {
	s := NewScanner("t", strings.NewReader("x = 'a'"), nil)
	s.Next()
	if s.Token() != _Name || s.Literal() != "x" {
		t.Fatalf("got %s %q", s.Token(), s.Literal())
	}
	s.Next()
	s.Next()
	if s.Token() != _Literal || s.LitKind() != StringLit || s.Literal() != "a" {
		t.Errorf("got %s %s %q", s.Token(), s.LitKind(), s.Literal())
	}
	if s.Pos().Col() != 5 {
		t.Errorf("col = %d, want 5", s.Pos().Col())
	}
	s.Next()
	if !s.Token().IsEOF() {
		t.Errorf("got %s, want EOF", s.Token())
	}
}
