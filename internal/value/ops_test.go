package value

import (
	"errors"
	"testing"
)

func TestPromote(t *testing.T) {
	tests := []struct {
		a, b, want Kind
	}{
		{KindByte, KindInt, KindInt},
		{KindLong, KindFloat, KindFloat},
		{KindFloat, KindDouble, KindDouble},
		{KindComplex, KindFloat, KindComplex},
		{KindComplex, KindDouble, KindDComplex},
		{KindDouble, KindComplex, KindDComplex},
		{KindULong64, KindLong64, KindULong64},
	}
	for _, tt := range tests {
		if got := Promote(tt.a, tt.b); got != tt.want {
			t.Errorf("Promote(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBinaryScalars(t *testing.T) {
	tests := []struct {
		op   Op
		x, y Value
		want Value
	}{
		{OpAdd, Long(2), Long(3), Long(5)},
		{OpAdd, Long(2), Float(0.5), Float(2.5)},
		{OpSub, Byte(1), Byte(2), Byte(255)},
		{OpMul, Int(300), Int(300), Int(24464)},
		{OpDiv, Long(7), Long(2), Long(3)},
		{OpDiv, Long(-7), Long(2), Long(-3)},
		{OpDiv, Double(1), Double(4), Double(0.25)},
		{OpMod, Long(7), Long(3), Long(1)},
		{OpMod, Double(7.5), Double(2), Double(1.5)},
		{OpPow, Long(2), Long(10), Long(1024)},
		{OpPow, Long(2), Long(-1), Long(0)},
		{OpPow, Long(-1), Long(-3), Long(-1)},
		{OpPow, Long(4), Double(0.5), Double(2)},
		{OpEq, Long(1), Double(1), Byte(1)},
		{OpLt, Long(1), Long(2), Byte(1)},
		{OpGe, Float(1), Long(2), Byte(0)},
		{OpAnd, Long(2), Long(4), Byte(1)},
		{OpAnd, Long(2), Long(0), Byte(0)},
		{OpOr, Long(0), String("x"), Byte(1)},
		{OpXor, Long(1), Long(1), Byte(0)},
		{OpAdd, String("ab"), String("cd"), String("abcd")},
		{OpLt, String("abc"), String("abd"), Byte(1)},
		{OpEq, ObjRef(1), ObjRef(1), Byte(1)},
		{OpNe, PtrRef(1), PtrRef(2), Byte(1)},
		{OpAdd, Complex(complex(1, 1)), Long(1), Complex(complex(2, 1))},
		{OpAdd, ULong(1), ULong(2), ULong(3)},
	}
	for _, tt := range tests {
		got, err := Binary(tt.op, tt.x, tt.y)
		if err != nil {
			t.Fatalf("%v %s %v: %v", tt.x, tt.op, tt.y, err)
		}
		if got != tt.want {
			t.Errorf("%v %s %v = %#v, want %#v", tt.x, tt.op, tt.y, got, tt.want)
		}
	}
}

func TestBinaryErrors(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		x, y Value
		want error
	}{
		{"int_div_zero", OpDiv, Long(1), Long(0), ErrDivideByZero},
		{"int_mod_zero", OpMod, Long(1), Long(0), ErrDivideByZero},
		{"string_plus_number", OpAdd, String("a"), Long(1), ErrTypeMismatch},
		{"string_minus", OpSub, String("a"), String("b"), ErrTypeMismatch},
		{"object_arith", OpAdd, ObjRef(1), Long(1), ErrTypeMismatch},
		{"array_vs_object", OpEq, NewLongs(1, 2), ObjRef(1), ErrTypeMismatch},
		{"object_vs_pointer", OpEq, ObjRef(1), PtrRef(1), ErrTypeMismatch},
		{"complex_order", OpLt, Complex(1), Complex(2), ErrTypeMismatch},
		{"undefined", OpAdd, Null, Long(1), ErrTypeMismatch},
		{"shape_mismatch", OpAdd, NewLongs(1, 2), NewLongs(1, 2, 3), ErrDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Binary(tt.op, tt.x, tt.y)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
	if v, err := Binary(OpDiv, Double(1), Double(0)); err != nil || v.String() != "Infinity" {
		t.Errorf("float division by zero = %v, %v; want Infinity", v, err)
	}
}

func TestBinaryBroadcast(t *testing.T) {
	m := longs(t, []int{2, 2}, 1, 2, 3, 4)
	r, err := Binary(OpMul, m, Float(2))
	if err != nil {
		t.Fatal(err)
	}
	a := r.(*Array)
	if a.ElemKind() != KindFloat || !sameShape(a.Shape(), []int{2, 2}) {
		t.Fatalf("got %s", Describe(a))
	}
	if a.String() != "2.0 4.0\n6.0 8.0" {
		t.Errorf("got %q", a.String())
	}

	r, err = Binary(OpSub, Long(10), m)
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "9 8\n7 6" {
		t.Errorf("scalar - array = %q", r.String())
	}

	r, err = Binary(OpGt, m, m)
	if err != nil {
		t.Fatal(err)
	}
	if ElemKind(r) != KindByte || r.String() != "0 0\n0 0" {
		t.Errorf("array comparison = %s %q", Describe(r), r.String())
	}

	// Same element count, different shape.
	if _, err := Binary(OpAdd, m, NewLongs(1, 2, 3, 4)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestUnary(t *testing.T) {
	v, err := Negate(NewLongs(1, -2))
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "-1 2" {
		t.Errorf("Negate = %q", v.String())
	}
	if v, _ := Negate(Byte(1)); v != Byte(255) {
		t.Errorf("Negate(BYTE 1) = %v", v)
	}
	if _, err := Negate(String("a")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Negate(string): %v", err)
	}
	v, err = LogicalNot(NewLongs(0, 3))
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "1 0" || ElemKind(v) != KindByte {
		t.Errorf("LogicalNot = %s %q", Describe(v), v.String())
	}
}

func TestMap(t *testing.T) {
	v, err := Map(NewLongs(1, 2), KindDouble, func(e Value) (Value, error) {
		f, _ := AsFloat(e)
		return Double(f / 2), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if ElemKind(v) != KindDouble || v.String() != "0.5 1.0" {
		t.Errorf("Map = %s %q", Describe(v), v.String())
	}
}
