package builtin

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/you-not-fish/xdl/internal/interp"
	"github.com/you-not-fish/xdl/internal/value"
)

// eval runs "x = <src>" with the library and returns x rendered by PRINT.
func eval(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	in := interp.New(New(&out))
	if err := in.RunSource("test.pro", []byte("x = "+src+"\nPRINT, x")); err != nil {
		t.Fatalf("x = %s: %v", src, err)
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"FLTARR(3)", "0.0 0.0 0.0"},
		{"INTARR(2, 3)", "0 0 0\n0 0 0"},
		{"STRARR(2) + 'a'", "a a"},
		{"INDGEN(4)", "0 1 2 3"},
		{"FINDGEN(2, 2)", "0.0 1.0\n2.0 3.0"},
		{"SINDGEN(3)", "0 1 2"},
		{"LINDGEN([2, 2])", "0 1\n2 3"},
		{"N_ELEMENTS(INDGEN(2, 5))", "10"},
		{"N_ELEMENTS(undefined_thing)", "0"},
		{"SIZE(FLTARR(2, 3))", "2 2 3 4 6"},
		{"SIZE(5)", "0 3 1"},
		{"SIZE('s', /TYPE)", "7"},
		{"SIZE(INDGEN(4, 2), /DIMENSIONS)", "4 2"},
		{"SIZE(nothing)", "0 0 0"},
		{"KEYWORD_SET(nothing)", "0"},
		{"KEYWORD_SET(0)", "0"},
		{"KEYWORD_SET([0, 0])", "1"},
		{"FIX(3.7)", "3"},
		{"FIX('42')", "42"},
		{"FLOAT(2)", "2.0"},
		{"BYTE(300)", "44"},
		{"STRING(12)", "12"},
		{"STRING('a', 1, 'b')", "a1b"},
		{"LONG([1.5, 2.5])", "1 2"},
		{"STRTRIM('  ab  ', 2) + '|'", "ab|"},
		{"STRTRIM('  ab  ') + '|'", "  ab|"},
		{"STRUPCASE('abc')", "ABC"},
		{"STRLOWCASE(['A', 'B'])", "a b"},
		{"STRLEN('hello')", "5"},
		{"STRMID('abcdef', 2, 3)", "cde"},
		{"STRMID('abcdef', 4)", "ef"},
		{"STRPOS('hello', 'll')", "2"},
		{"STRPOS('hello', 'z')", "-1"},
		{"STRJOIN(['a', 'b', 'c'], '-')", "a-b-c"},
		{"STRSPLIT('a b  c')", "a b c"},
		{"STRCOMPRESS('a   b', /REMOVE_ALL)", "ab"},
		{"TOTAL([1, 2, 3])", "6.0"},
		{"TOTAL(DOUBLE([1, 2]))", "3.0"},
		{"MEAN([1, 2, 3, 4])", "2.5"},
		{"MIN([3, 1, 2])", "1"},
		{"MAX([3, 1, 2])", "3"},
		{"MAX(['b', 'c', 'a'])", "c"},
		{"SQRT(16)", "4.0"},
		{"ABS([-2, 3])", "2 3"},
		{"ABS(-1.5)", "1.5"},
		{"FLOOR(2.7)", "2"},
		{"CEIL(2.1)", "3"},
		{"ROUND(-2.5)", "-3"},
		{"REFORM(INDGEN(2, 3), 3, 2)", "0 1\n2 3\n4 5"},
		{"REFORM(INDGEN(1, 3))", "0 1 2"},
		{"REVERSE([1, 2, 3])", "3 2 1"},
		{"REVERSE(INDGEN(2, 2))", "2 3\n0 1"},
		{"REVERSE(INDGEN(2, 2), 2)", "1 0\n3 2"},
		{"WHERE([0, 5, 0, 7])", "1 3"},
		{"WHERE([0, 0])", "-1"},
		{"SORT([30, 10, 20])", "1 2 0"},
		{"SORT(['b', 'a'])", "1 0"},
		{"REPLICATE(7, 3)", "7 7 7"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := eval(t, tt.src); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCallBuiltinErrors(t *testing.T) {
	l := New(&bytes.Buffer{})
	tests := []struct {
		name string
		args []value.Value
		kw   map[string]value.Value
		kind interp.ErrorKind
	}{
		{"FLTARR", nil, nil, interp.ArityMismatch},
		{"STRLEN", []value.Value{value.String("a"), value.String("b")}, nil, interp.ArityMismatch},
		{"SIZE", []value.Value{value.Long(1)}, map[string]value.Value{"BOGUS": value.Long(1)}, interp.ArityMismatch},
		{"FLTARR", []value.Value{value.Long(0)}, nil, interp.DimensionMismatch},
		{"FLTARR", []value.Value{value.Long(65536), value.Long(65536), value.Long(65536), value.Long(65536)}, nil, interp.DimensionMismatch},
		{"SQRT", []value.Value{value.ObjRef(0)}, nil, interp.TypeMismatch},
		{"REVERSE", []value.Value{value.NewLongs(1, 2), value.Long(3)}, nil, interp.IndexOutOfBounds},
		{"MESSAGE", []value.Value{value.String("stop here")}, nil, interp.Runtime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.CallBuiltin(tt.name, tt.args, tt.kw)
			if err == nil {
				t.Fatalf("%s succeeded, want error", tt.name)
			}
			if k := interp.KindOf(err); k != tt.kind {
				t.Errorf("kind %s (%v), want %s", k, err, tt.kind)
			}
		})
	}

	if _, err := l.CallBuiltin("NO_SUCH_ROUTINE", nil, nil); !errors.Is(err, interp.ErrNoBuiltin) {
		t.Errorf("unknown name: got %v, want ErrNoBuiltin", err)
	}
}

func TestKeywordAbbreviation(t *testing.T) {
	l := New(nil)
	v, err := l.CallBuiltin("SIZE", []value.Value{value.NewLongs(1, 2, 3)}, map[string]value.Value{"N_E": value.Long(1)})
	if err != nil {
		t.Fatal(err)
	}
	if v != value.Long(3) {
		t.Errorf("SIZE(/N_E) = %v, want 3", v)
	}
	if _, err := l.CallBuiltin("SIZE", []value.Value{value.Long(1)}, map[string]value.Value{"N_": value.Long(1)}); interp.KindOf(err) != interp.ArityMismatch {
		t.Errorf("ambiguous abbreviation: got %v", err)
	}
}

func TestPrintAndMessage(t *testing.T) {
	var out bytes.Buffer
	in := interp.New(New(&out))
	src := `PRINT, 'sum:', 1 + 2
PRINT, [1, 2, 3]
PRINT
MESSAGE, 'just saying', /INFORMATIONAL
HELP, 5`
	if err := in.RunSource("test.pro", []byte(src)); err != nil {
		t.Fatal(err)
	}
	want := "sum: 3\n1 2 3\n\n% just saying\nLONG       = 5\n"
	if out.String() != want {
		t.Errorf("output %q, want %q", out.String(), want)
	}

	err := in.RunSource("test.pro", []byte("MESSAGE, 'bad input'"))
	if err == nil || !strings.Contains(err.Error(), "bad input") {
		t.Fatalf("MESSAGE error = %v", err)
	}
	if k := interp.KindOf(err); k != interp.Runtime {
		t.Errorf("MESSAGE kind %s, want Runtime", k)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	for _, want := range []string{"PRINT", "FLTARR", "N_ELEMENTS", "TOTAL", "STRTRIM"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Names() missing %s", want)
		}
	}
}
