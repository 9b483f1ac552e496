package value

import (
	"fmt"
	"strings"
)

// Array is an N-dimensional array of a single element kind. Elements are
// stored flat in row-major order: the last dimension varies fastest.
type Array struct {
	elem  Kind
	data  []Value
	shape []int
}

func (*Array) Kind() Kind { return KindArray }

// NewArray builds an array of kind elem from data, converting each element.
// The product of shape must equal len(data).
func NewArray(elem Kind, data []Value, shape []int) (*Array, error) {
	if elem == KindUndefined || elem == KindArray {
		return nil, typeErrorf("invalid array element kind %s", elem)
	}
	n, err := product(shape)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, dimErrorf("%d elements do not fill shape %s", len(data), dimsString(shape))
	}
	out := make([]Value, len(data))
	for i, d := range data {
		c, err := Convert(d, elem)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return &Array{elem: elem, data: out, shape: append([]int(nil), shape...)}, nil
}

// Make returns a zero-filled array of kind elem with the given shape.
func Make(elem Kind, shape ...int) (*Array, error) {
	if elem == KindUndefined || elem == KindArray {
		return nil, typeErrorf("invalid array element kind %s", elem)
	}
	n, err := product(shape)
	if err != nil {
		return nil, err
	}
	z := Zero(elem)
	data := make([]Value, n)
	for i := range data {
		data[i] = z
	}
	return &Array{elem: elem, data: data, shape: append([]int(nil), shape...)}, nil
}

// NewLongs returns a one-dimensional LONG array.
func NewLongs(vals ...int) *Array {
	data := make([]Value, len(vals))
	for i, v := range vals {
		data[i] = Long(v)
	}
	return fromData(KindLong, data, []int{len(vals)})
}

// fromData wraps already-converted elements without copying them.
func fromData(elem Kind, data []Value, shape []int) *Array {
	return &Array{elem: elem, data: data, shape: shape}
}

func product(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, dimErrorf("array needs at least one dimension")
	}
	if len(shape) > MaxRank {
		return 0, dimErrorf("%d dimensions exceed the limit of %d", len(shape), MaxRank)
	}
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0, dimErrorf("dimension %d must be positive", d)
		}
		if n > MaxElems/d {
			return 0, dimErrorf("array of dimensions %v exceeds the limit of %d elements", shape, MaxElems)
		}
		n *= d
	}
	return n, nil
}

// MaxRank is the largest number of dimensions an array may have.
const MaxRank = 8

// MaxElems is the largest number of elements an array may have.
const MaxElems = 1 << 28

// ElemKind returns the kind shared by all elements.
func (a *Array) ElemKind() Kind { return a.elem }

// Shape returns a copy of the dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.data) }

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.shape) }

// At returns the element at flat index i.
func (a *Array) At(i int) Value { return a.data[i] }

// Data returns the flat elements. Callers must not modify the slice.
func (a *Array) Data() []Value { return a.data }

// Copy returns a deep copy of a.
func (a *Array) Copy() *Array {
	return &Array{
		elem:  a.elem,
		data:  append([]Value(nil), a.data...),
		shape: append([]int(nil), a.shape...),
	}
}

// Reshape returns a copy of a with a new shape of the same element count.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	n, err := product(shape)
	if err != nil {
		return nil, err
	}
	if n != len(a.data) {
		return nil, dimErrorf("cannot reshape %d elements to %s", len(a.data), dimsString(shape))
	}
	b := a.Copy()
	b.shape = append([]int(nil), shape...)
	return b, nil
}

// String formats a with one row per line of the last dimension, with a blank
// line between planes of higher rank.
func (a *Array) String() string {
	var b strings.Builder
	row := a.shape[len(a.shape)-1]
	plane := row
	if len(a.shape) > 1 {
		plane *= a.shape[len(a.shape)-2]
	}
	for i, v := range a.data {
		if i > 0 {
			switch {
			case len(a.shape) > 2 && i%plane == 0:
				b.WriteString("\n\n")
			case i%row == 0:
				b.WriteByte('\n')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// dimsString formats a shape as "[2, 3]".
func dimsString(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = fmt.Sprint(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Strides returns the row-major stride of each dimension.
func Strides(shape []int) []int {
	s := make([]int, len(shape))
	n := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = n
		n *= shape[i]
	}
	return s
}
