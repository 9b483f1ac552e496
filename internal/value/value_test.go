package value

import (
	"errors"
	"math"
	"testing"
)

func longs(t *testing.T, shape []int, vals ...int) *Array {
	t.Helper()
	data := make([]Value, len(vals))
	for i, v := range vals {
		data[i] = Long(v)
	}
	a, err := NewArray(KindLong, data, shape)
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}
	return a
}

func TestNewArrayShapeCheck(t *testing.T) {
	if _, err := NewArray(KindLong, []Value{Long(1), Long(2)}, []int{3}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
	if _, err := Make(KindFloat, 2, 0); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("zero dimension: got %v", err)
	}
	a, err := NewArray(KindFloat, []Value{Long(1), Double(2.5)}, []int{2})
	if err != nil {
		t.Fatal(err)
	}
	if a.At(0) != Float(1) || a.At(1) != Float(2.5) {
		t.Errorf("elements not converted: %v", a.Data())
	}
}

func TestElementLimit(t *testing.T) {
	shapes := [][]int{
		{65536, 65536, 65536, 65536},
		{MaxElems + 1},
		{1 << 20, 1 << 20},
	}
	for _, shape := range shapes {
		if _, err := Make(KindFloat, shape...); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("Make(%v): got %v, want ErrDimensionMismatch", shape, err)
		}
	}
	if _, err := longs(t, []int{4}, 1, 2, 3, 4).Reshape(65536, 65536, 65536, 65536); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Reshape: got %v, want ErrDimensionMismatch", err)
	}

	zeros := make([]int, 1<<10)
	a := longs(t, []int{2, 2, 2}, 0, 1, 2, 3, 4, 5, 6, 7)
	if _, err := Index(a, []Subscript{List(zeros...), List(zeros...), List(zeros...)}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Index with huge selection: got %v, want ErrDimensionMismatch", err)
	}
}

func TestKindInfo(t *testing.T) {
	if KindFloat.TypeCode() != 4 || KindString.TypeCode() != 7 || KindULong64.TypeCode() != 15 {
		t.Errorf("type codes wrong")
	}
	if !KindByte.IsUnsigned() || KindLong.IsUnsigned() {
		t.Errorf("IsUnsigned wrong")
	}
	if KindString.IsNumeric() || !KindDComplex.IsNumeric() {
		t.Errorf("IsNumeric wrong")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Long(-3), "-3"},
		{Byte(200), "200"},
		{Float(7), "7.0"},
		{Float(0.1), "0.1"},
		{Double(1.5e300), "1.5e+300"},
		{Double(math.Inf(1)), "Infinity"},
		{Complex(complex(1, -2)), "(1.0, -2.0)"},
		{String("hi"), "hi"},
		{ObjRef(0), "<NullObject>"},
		{ObjRef(3), "<ObjHeapVar3>"},
		{PtrRef(2), "<PtrHeapVar2>"},
		{Null, "!NULL"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}

	m := longs(t, []int{2, 3}, 1, 2, 3, 4, 5, 6)
	if got, want := m.String(), "1 2 3\n4 5 6"; got != want {
		t.Errorf("2-D array = %q, want %q", got, want)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Long(0), false},
		{Long(-1), true},
		{Double(0.5), true},
		{String(""), false},
		{String("a"), true},
		{ObjRef(0), false},
		{PtrRef(1), true},
		{longs(t, []int{1}, 4), true},
	}
	for _, tt := range tests {
		got, err := Truthy(tt.v)
		if err != nil {
			t.Fatalf("Truthy(%v): %v", tt.v, err)
		}
		if got != tt.want {
			t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if _, err := Truthy(longs(t, []int{2}, 1, 2)); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("array condition: got %v", err)
	}
	if _, err := Truthy(Null); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("undefined condition: got %v", err)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		v    Value
		k    Kind
		want Value
	}{
		{Long(300), KindByte, Byte(44)},
		{Double(2.9), KindLong, Long(2)},
		{Double(-2.9), KindInt, Int(-2)},
		{String(" 12 "), KindLong, Long(12)},
		{String("1.5d2"), KindDouble, Double(150)},
		{String(""), KindFloat, Float(0)},
		{Long(5), KindString, String("5")},
		{Float(1.5), KindString, String("1.5")},
		{Long(2), KindComplex, Complex(complex(2, 0))},
		{DComplex(complex(3, 4)), KindDouble, Double(3)},
	}
	for _, tt := range tests {
		got, err := Convert(tt.v, tt.k)
		if err != nil {
			t.Fatalf("Convert(%v, %s): %v", tt.v, tt.k, err)
		}
		if got != tt.want {
			t.Errorf("Convert(%v, %s) = %#v, want %#v", tt.v, tt.k, got, tt.want)
		}
	}

	if _, err := Convert(String("abc"), KindLong); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("bad string: got %v", err)
	}
	if _, err := Convert(ObjRef(1), KindLong); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("object to number: got %v", err)
	}
	a, err := Convert(longs(t, []int{2, 1}, 1, 2), KindDouble)
	if err != nil {
		t.Fatal(err)
	}
	arr := a.(*Array)
	if arr.ElemKind() != KindDouble || arr.Rank() != 2 || arr.At(1) != Double(2) {
		t.Errorf("array conversion: %s %v", Describe(arr), arr.Data())
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		lit  string
		want Value
	}{
		{"0", Long(0)},
		{"123", Long(123)},
		{"3000000000", Long64(3000000000)},
		{"12L", Long(12)},
		{"5b", Byte(5)},
		{"0B", Byte(0)},
		{"7s", Int(7)},
		{"7us", UInt(7)},
		{"7ul", ULong(7)},
		{"7ll", Long64(7)},
		{"7ULL", ULong64(7)},
		{"0x1F", Long(31)},
		{"0xFFL", Long(255)},
		{"0o17", Long(15)},
		{"0b101", Long(5)},
		{"'FF'x", Long(255)},
		{"'17'o", Long(15)},
		{"'101'b", Long(5)},
		{"'FF'xB", Byte(255)},
		{"255B", Byte(255)},
		{"32767S", Int(32767)},
		{"'FFFF'xS", Int(-1)},
		{"0xFFFFFFFFL", Long(-1)},
		{"2147483647L", Long(2147483647)},
	}
	for _, tt := range tests {
		got, err := ParseInt(tt.lit)
		if err != nil {
			t.Fatalf("ParseInt(%q): %v", tt.lit, err)
		}
		if got != tt.want {
			t.Errorf("ParseInt(%q) = %#v, want %#v", tt.lit, got, tt.want)
		}
	}
	for _, lit := range []string{
		"0o9", "'12'q", "99999999999999999999999",
		"300B", "32768S", "65536US", "3000000000L", "4294967296UL",
		"9223372036854775808LL", "'1FF'xB", "0x1FFFFS",
	} {
		if _, err := ParseInt(lit); err == nil {
			t.Errorf("ParseInt(%q) succeeded, want error", lit)
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		lit  string
		want Value
	}{
		{"3.5", Float(3.5)},
		{"3.", Float(3)},
		{".25", Float(0.25)},
		{"1e3", Float(1000)},
		{"2.5e-1", Float(0.25)},
		{"1d3", Double(1000)},
		{"2D", Double(2)},
		{"2.5d", Double(2.5)},
		{"1D-2", Double(0.01)},
	}
	for _, tt := range tests {
		got, err := ParseFloat(tt.lit)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", tt.lit, err)
		}
		if got != tt.want {
			t.Errorf("ParseFloat(%q) = %#v, want %#v", tt.lit, got, tt.want)
		}
	}
}
