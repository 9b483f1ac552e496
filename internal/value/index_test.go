package value

import (
	"errors"
	"testing"
)

func TestIndexRead(t *testing.T) {
	v := NewLongs(10, 20, 30, 40, 50)
	m := longs(t, []int{2, 3}, 0, 1, 2, 3, 4, 5)
	tests := []struct {
		name string
		base Value
		subs []Subscript
		want string
	}{
		{"point", v, []Subscript{Point(1)}, "20"},
		{"negative", v, []Subscript{Point(-1)}, "50"},
		{"range", v, []Subscript{Range(1, 3, 0)}, "20 30 40"},
		{"range_negative_end", v, []Subscript{Range(0, -2, 0)}, "10 20 30 40"},
		{"range_to_end", v, []Subscript{{Kind: SubRange, Lo: 2, ToEnd: true}}, "30 40 50"},
		{"range_step", v, []Subscript{Range(0, 4, 2)}, "10 30 50"},
		{"range_reverse", v, []Subscript{Range(4, 0, -2)}, "50 30 10"},
		{"all", v, []Subscript{All()}, "10 20 30 40 50"},
		{"list", v, []Subscript{List(4, 0, -2)}, "50 10 40"},
		{"matrix_point", m, []Subscript{Point(1), Point(2)}, "5"},
		{"matrix_negative", m, []Subscript{Point(-1), Point(-1)}, "5"},
		{"matrix_row", m, []Subscript{Point(1)}, "3 4 5"},
		{"matrix_column", m, []Subscript{All(), Point(1)}, "1 4"},
		{"matrix_block", m, []Subscript{All(), Range(1, 2, 0)}, "1 2\n4 5"},
		{"scalar_zero", Long(7), []Subscript{Point(0)}, "7"},
		{"extra_zero_subscript", v, []Subscript{Point(2), Point(0)}, "30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Index(tt.base, tt.subs)
			if err != nil {
				t.Fatalf("Index: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestIndexShapes(t *testing.T) {
	m := longs(t, []int{2, 3}, 0, 1, 2, 3, 4, 5)
	tests := []struct {
		subs  []Subscript
		shape []int
	}{
		{[]Subscript{Point(0)}, []int{3}},
		{[]Subscript{All(), Point(0)}, []int{2}},
		{[]Subscript{All(), All()}, []int{2, 3}},
		{[]Subscript{Range(0, 1, 0), Range(1, 1, 0)}, []int{2, 1}},
		{[]Subscript{List(1), All()}, []int{1, 3}},
	}
	for _, tt := range tests {
		got, err := Index(m, tt.subs)
		if err != nil {
			t.Fatal(err)
		}
		a, ok := got.(*Array)
		if !ok {
			t.Fatalf("%v: got scalar %v", tt.subs, got)
		}
		if !sameShape(a.Shape(), tt.shape) {
			t.Errorf("%v: shape %v, want %v", tt.subs, a.Shape(), tt.shape)
		}
	}
	if _, ok := mustIndex(t, m, Point(1), Point(1)).(*Array); ok {
		t.Errorf("all-point subscripts should yield a scalar")
	}
}

func mustIndex(t *testing.T, v Value, subs ...Subscript) Value {
	t.Helper()
	r, err := Index(v, subs)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	return r
}

func TestIndexErrors(t *testing.T) {
	v := NewLongs(1, 2, 3)
	m := longs(t, []int{2, 3}, 0, 1, 2, 3, 4, 5)
	tests := []struct {
		name string
		base Value
		subs []Subscript
	}{
		{"past_end", v, []Subscript{Point(3)}},
		{"too_negative", v, []Subscript{Point(-4)}},
		{"range_past_end", v, []Subscript{Range(1, 5, 0)}},
		{"empty_range", v, []Subscript{Range(2, 1, 0)}},
		{"matrix_col", m, []Subscript{Point(0), Point(3)}},
		{"extra_nonzero", v, []Subscript{Point(0), Point(1)}},
		{"list_out", v, []Subscript{List(0, 9)}},
		{"scalar_one", Long(1), []Subscript{Point(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Index(tt.base, tt.subs); !errors.Is(err, ErrIndexOutOfBounds) {
				t.Errorf("got %v, want ErrIndexOutOfBounds", err)
			}
		})
	}
	if _, err := Index(Null, []Subscript{Point(0)}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("undefined base: got %v", err)
	}
}

func TestAssignElement(t *testing.T) {
	v := NewLongs(1, 2, 3)
	r, err := Assign(v, []Subscript{Point(-1)}, Long(99))
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "1 2 99" {
		t.Errorf("got %q", r.String())
	}

	m, _ := Make(KindFloat, 2, 3)
	r, err = Assign(m, []Subscript{Point(1), Point(2)}, Double(7))
	if err != nil {
		t.Fatal(err)
	}
	got := r.(*Array)
	for i, e := range got.Data() {
		want := Float(0)
		if i == 5 {
			want = Float(7)
		}
		if e != want {
			t.Errorf("element %d = %#v, want %#v", i, e, want)
		}
	}

	s, err := Assign(Long(5), []Subscript{Point(0)}, Long(6))
	if err != nil || s != Long(6) {
		t.Errorf("scalar element write = %v, %v", s, err)
	}
}

func TestAssignSlices(t *testing.T) {
	tests := []struct {
		name string
		subs []Subscript
		rhs  Value
		want string
	}{
		{"broadcast", []Subscript{Range(1, 3, 0)}, Long(0), "1 0 0 0 5"},
		{"exact", []Subscript{Range(0, 1, 0)}, NewLongs(8, 9), "8 9 3 4 5"},
		{"all", []Subscript{All()}, Long(7), "7 7 7 7 7"},
		{"list", []Subscript{List(0, 4)}, NewLongs(-1, -5), "-1 2 3 4 -5"},
		{"converts", []Subscript{Point(0)}, Double(2.7), "2 2 3 4 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Assign(NewLongs(1, 2, 3, 4, 5), tt.subs, tt.rhs)
			if err != nil {
				t.Fatal(err)
			}
			if r.String() != tt.want {
				t.Errorf("got %q, want %q", r.String(), tt.want)
			}
		})
	}

	m := longs(t, []int{2, 3}, 0, 0, 0, 0, 0, 0)
	if _, err := Assign(m, []Subscript{Point(1)}, NewLongs(7, 8, 9)); err != nil {
		t.Fatal(err)
	}
	if m.String() != "0 0 0\n7 8 9" {
		t.Errorf("row write = %q", m.String())
	}
}

func TestAssignChecksBeforeWrite(t *testing.T) {
	tests := []struct {
		name string
		subs []Subscript
		rhs  Value
		want error
	}{
		{"length_short", []Subscript{Range(0, 2, 0)}, NewLongs(1, 2), ErrDimensionMismatch},
		{"length_long", []Subscript{Range(0, 1, 0)}, NewLongs(1, 2, 3), ErrDimensionMismatch},
		{"one_element_array", []Subscript{Range(0, 1, 0)}, NewLongs(1), ErrDimensionMismatch},
		{"out_of_range", []Subscript{Point(5)}, Long(1), ErrIndexOutOfBounds},
		{"bad_type", []Subscript{Point(0)}, ObjRef(1), ErrTypeMismatch},
		{"bad_string", []Subscript{Point(0)}, String("x"), ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewLongs(1, 2, 3, 4, 5)
			_, err := Assign(a, tt.subs, tt.rhs)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if a.String() != "1 2 3 4 5" {
				t.Errorf("array modified on error: %q", a.String())
			}
		})
	}
}

// Writing one element and reading it back changes nothing else, for every
// index of several shapes.
func TestFlatIndexRoundTrip(t *testing.T) {
	shapes := [][]int{{4}, {2, 3}, {3, 2}, {2, 3, 4}, {1, 5}, {2, 1, 2, 2}}
	for _, shape := range shapes {
		base, err := Make(KindLong, shape...)
		if err != nil {
			t.Fatal(err)
		}
		strides := Strides(shape)
		idx := make([]int, len(shape))
		for flat := 0; flat < base.Len(); flat++ {
			rem := flat
			for d := range shape {
				idx[d] = rem / strides[d]
				rem %= strides[d]
			}
			subs := make([]Subscript, len(idx))
			neg := make([]Subscript, len(idx))
			for d, i := range idx {
				subs[d] = Point(i)
				neg[d] = Point(i - shape[d])
			}

			a := base.Copy()
			if _, err := Assign(a, subs, Long(42)); err != nil {
				t.Fatalf("%v %v: %v", shape, idx, err)
			}
			for i, e := range a.Data() {
				want := Long(0)
				if i == flat {
					want = Long(42)
				}
				if e != want {
					t.Fatalf("shape %v index %v: element %d = %v, want %v", shape, idx, i, e, want)
				}
			}
			if got := mustIndex(t, a, subs...); got != Long(42) {
				t.Errorf("shape %v index %v: read back %v", shape, idx, got)
			}
			if got := mustIndex(t, a, neg...); got != Long(42) {
				t.Errorf("shape %v negative index %v: read back %v", shape, idx, got)
			}
		}
	}
}

func TestConcatAndStack(t *testing.T) {
	tests := []struct {
		name  string
		build func() (Value, error)
		want  string
		shape []int
	}{
		{"scalars", func() (Value, error) { return Concat([]Value{Long(1), Long(2), Long(3)}) }, "1 2 3", []int{3}},
		{"promote", func() (Value, error) { return Concat([]Value{Long(1), Float(2.5)}) }, "1.0 2.5", []int{2}},
		{"flatten", func() (Value, error) { return Concat([]Value{NewLongs(1, 2), Long(3)}) }, "1 2 3", []int{3}},
		{"skip_null", func() (Value, error) { return Concat([]Value{Null, Long(4)}) }, "4", []int{1}},
		{"strings", func() (Value, error) { return Concat([]Value{String("a"), String("b")}) }, "a b", []int{2}},
		{"stack", func() (Value, error) { return Stack([]Value{NewLongs(1, 2), NewLongs(3, 4)}) }, "1 2\n3 4", []int{2, 2}},
		{"stack_rows", func() (Value, error) {
			m, _ := Stack([]Value{NewLongs(1, 2, 3), NewLongs(4, 5, 6)})
			return Concat([]Value{m, m})
		}, "1 2 3\n4 5 6\n1 2 3\n4 5 6", []int{4, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.build()
			if err != nil {
				t.Fatal(err)
			}
			a, ok := v.(*Array)
			if !ok {
				t.Fatalf("got %T", v)
			}
			if a.String() != tt.want || !sameShape(a.Shape(), tt.shape) {
				t.Errorf("got %q %v, want %q %v", a.String(), a.Shape(), tt.want, tt.shape)
			}
		})
	}

	if v, err := Concat(nil); err != nil || !IsUndefined(v) {
		t.Errorf("empty literal = %v, %v; want !NULL", v, err)
	}
	if _, err := Concat([]Value{String("a"), Long(1)}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("mixed literal: %v", err)
	}
	if _, err := Stack([]Value{NewLongs(1, 2), NewLongs(3)}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("ragged rows: %v", err)
	}
}

func TestReshape(t *testing.T) {
	a := NewLongs(1, 2, 3, 4, 5, 6)
	b, err := a.Reshape(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != "1 2\n3 4\n5 6" || a.Rank() != 1 {
		t.Errorf("Reshape = %q, original rank %d", b.String(), a.Rank())
	}
	if _, err := a.Reshape(4, 2); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("bad reshape: %v", err)
	}
}
