package value

// SubKind says how a subscript selects along one dimension.
type SubKind uint8

const (
	SubPoint SubKind = iota // a[i]: one index, dimension dropped
	SubRange                // a[lo:hi:step], hi inclusive
	SubAll                  // a[*]
	SubList                 // a[[i, j, k]]
)

// A Subscript selects indices along one dimension. Negative indices count
// from the end of the dimension.
type Subscript struct {
	Kind   SubKind
	Index  int   // SubPoint
	Lo, Hi int   // SubRange
	ToEnd  bool  // SubRange: Hi is the last index
	Step   int   // SubRange: 0 means 1
	List   []int // SubList
}

// Point returns a subscript selecting index i.
func Point(i int) Subscript { return Subscript{Kind: SubPoint, Index: i} }

// All returns a subscript selecting a whole dimension.
func All() Subscript { return Subscript{Kind: SubAll} }

// Range returns a subscript selecting lo through hi inclusive.
func Range(lo, hi, step int) Subscript {
	return Subscript{Kind: SubRange, Lo: lo, Hi: hi, Step: step}
}

// List returns a subscript selecting the given indices in order.
func List(idx ...int) Subscript { return Subscript{Kind: SubList, List: idx} }

func normIndex(i, dim int) (int, error) {
	j := i
	if j < 0 {
		j += dim
	}
	if j < 0 || j >= dim {
		return 0, boundsErrorf("index %d out of range for dimension of size %d", i, dim)
	}
	return j, nil
}

// resolve returns the indices s selects from a dimension of size dim and
// whether the dimension collapses.
func (s Subscript) resolve(dim int) ([]int, bool, error) {
	switch s.Kind {
	case SubPoint:
		i, err := normIndex(s.Index, dim)
		if err != nil {
			return nil, false, err
		}
		return []int{i}, true, nil
	case SubAll:
		idx := make([]int, dim)
		for i := range idx {
			idx[i] = i
		}
		return idx, false, nil
	case SubList:
		if len(s.List) == 0 {
			return nil, false, boundsErrorf("empty index list")
		}
		idx := make([]int, len(s.List))
		for k, i := range s.List {
			j, err := normIndex(i, dim)
			if err != nil {
				return nil, false, err
			}
			idx[k] = j
		}
		return idx, false, nil
	}
	lo, err := normIndex(s.Lo, dim)
	if err != nil {
		return nil, false, err
	}
	hi := dim - 1
	if !s.ToEnd {
		if hi, err = normIndex(s.Hi, dim); err != nil {
			return nil, false, err
		}
	}
	step := s.Step
	if step == 0 {
		step = 1
	}
	if (step > 0 && lo > hi) || (step < 0 && lo < hi) {
		return nil, false, boundsErrorf("empty range %d:%d:%d", lo, hi, step)
	}
	var idx []int
	if step > 0 {
		for i := lo; i <= hi; i += step {
			idx = append(idx, i)
		}
	} else {
		for i := lo; i >= hi; i += step {
			idx = append(idx, i)
		}
	}
	return idx, false, nil
}

// selection is the flat offsets picked by a list of subscripts, in
// row-major order, plus the shape of the result.
type selection struct {
	offsets []int
	shape   []int // nil when every subscript was a point
}

// selectElems resolves subs against shape. Missing trailing subscripts
// select whole dimensions; extra subscripts address implicit dimensions of
// size 1.
func selectElems(shape []int, subs []Subscript) (*selection, error) {
	if len(subs) > MaxRank {
		return nil, boundsErrorf("%d subscripts exceed the limit of %d", len(subs), MaxRank)
	}
	dims := append([]int(nil), shape...)
	for len(dims) < len(subs) {
		dims = append(dims, 1)
	}
	strides := Strides(dims)
	picks := make([][]int, len(dims))
	var out []int
	for d := range dims {
		s := All()
		if d < len(subs) {
			s = subs[d]
		}
		idx, point, err := s.resolve(dims[d])
		if err != nil {
			return nil, err
		}
		picks[d] = idx
		if !point {
			out = append(out, len(idx))
		}
	}

	n := 1
	for _, p := range picks {
		if len(p) > 0 && n > MaxElems/len(p) {
			return nil, dimErrorf("subscripts select more than %d elements", MaxElems)
		}
		n *= len(p)
	}
	offsets := make([]int, 0, n)
	pos := make([]int, len(dims))
	for {
		off := 0
		for d, p := range pos {
			off += picks[d][p] * strides[d]
		}
		offsets = append(offsets, off)

		d := len(dims) - 1
		for ; d >= 0; d-- {
			pos[d]++
			if pos[d] < len(picks[d]) {
				break
			}
			pos[d] = 0
		}
		if d < 0 {
			break
		}
	}
	return &selection{offsets: offsets, shape: out}, nil
}

// asArray views a scalar as a one-element array.
func asArray(v Value) (*Array, bool, error) {
	switch v := v.(type) {
	case nil, Undefined:
		return nil, false, typeErrorf("cannot subscript an undefined value")
	case *Array:
		return v, false, nil
	}
	return fromData(v.Kind(), []Value{v}, []int{1}), true, nil
}

// Index returns the elements of v selected by subs as a new value: a scalar
// when every subscript is a point, otherwise an array whose shape keeps the
// non-point dimensions in order.
func Index(v Value, subs []Subscript) (Value, error) {
	a, _, err := asArray(v)
	if err != nil {
		return nil, err
	}
	sel, err := selectElems(a.shape, subs)
	if err != nil {
		return nil, err
	}
	if sel.shape == nil {
		return a.data[sel.offsets[0]], nil
	}
	data := make([]Value, len(sel.offsets))
	for i, off := range sel.offsets {
		data[i] = a.data[off]
	}
	return fromData(a.elem, data, sel.shape), nil
}

// Assign writes rhs into the elements of base selected by subs and returns
// the updated value. Arrays are updated in place. A scalar rhs is broadcast
// over the selection; an array rhs must supply exactly one element per
// selected position. Every index and conversion is checked before any
// element changes.
func Assign(base Value, subs []Subscript, rhs Value) (Value, error) {
	if IsUndefined(rhs) {
		return nil, typeErrorf("cannot assign an undefined value to an element")
	}
	a, wasScalar, err := asArray(base)
	if err != nil {
		return nil, err
	}
	sel, err := selectElems(a.shape, subs)
	if err != nil {
		return nil, err
	}
	src := Elements(rhs)
	if _, ok := rhs.(*Array); ok && len(src) != len(sel.offsets) {
		return nil, dimErrorf("cannot assign %d elements to %d selected positions", len(src), len(sel.offsets))
	}
	conv := make([]Value, len(src))
	for i, e := range src {
		c, err := convertScalar(e, a.elem)
		if err != nil {
			return nil, err
		}
		conv[i] = c
	}
	for i, off := range sel.offsets {
		if len(conv) == 1 {
			a.data[off] = conv[0]
		} else {
			a.data[off] = conv[i]
		}
	}
	if wasScalar {
		return a.data[0], nil
	}
	return a, nil
}
