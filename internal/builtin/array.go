package builtin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/you-not-fish/xdl/internal/value"
)

func init() {
	for name, k := range map[string]value.Kind{
		"BYTARR":      value.KindByte,
		"INTARR":      value.KindInt,
		"UINTARR":     value.KindUInt,
		"LONARR":      value.KindLong,
		"ULONARR":     value.KindULong,
		"LON64ARR":    value.KindLong64,
		"ULON64ARR":   value.KindULong64,
		"FLTARR":      value.KindFloat,
		"DBLARR":      value.KindDouble,
		"COMPLEXARR":  value.KindComplex,
		"DCOMPLEXARR": value.KindDComplex,
		"STRARR":      value.KindString,
		"OBJARR":      value.KindObject,
		"PTRARR":      value.KindPointer,
	} {
		register(name, 1, value.MaxRank, []string{"NOZERO"}, makeArray(k))
	}
	for name, k := range map[string]value.Kind{
		"BINDGEN":   value.KindByte,
		"INDGEN":    value.KindInt,
		"UINDGEN":   value.KindUInt,
		"LINDGEN":   value.KindLong,
		"ULINDGEN":  value.KindULong,
		"L64INDGEN": value.KindLong64,
		"FINDGEN":   value.KindFloat,
		"DINDGEN":   value.KindDouble,
		"CINDGEN":   value.KindComplex,
		"SINDGEN":   value.KindString,
	} {
		register(name, 1, value.MaxRank, nil, indgen(k))
	}
	register("N_ELEMENTS", 1, 1, nil, nElements)
	register("KEYWORD_SET", 1, 1, nil, keywordSet)
	register("SIZE", 1, 1, []string{"N_ELEMENTS", "TYPE", "N_DIMENSIONS", "DIMENSIONS", "TNAME"}, size)
	register("REFORM", 1, 1+value.MaxRank, nil, reform)
	register("REVERSE", 1, 2, nil, reverse)
	register("WHERE", 1, 1, nil, where)
	register("SORT", 1, 1, nil, sortIndex)
	register("REPLICATE", 2, 1+value.MaxRank, nil, replicate)
}

func makeArray(k value.Kind) func(*Library, *call) (value.Value, error) {
	return func(l *Library, c *call) (value.Value, error) {
		dims, err := c.dims(c.args)
		if err != nil {
			return nil, err
		}
		a, err := value.Make(k, dims...)
		if err != nil {
			return nil, c.errorf(err)
		}
		return a, nil
	}
}

// indgen returns an array of kind k whose elements are their own flat
// indices.
func indgen(k value.Kind) func(*Library, *call) (value.Value, error) {
	return func(l *Library, c *call) (value.Value, error) {
		dims, err := c.dims(c.args)
		if err != nil {
			return nil, err
		}
		z, err := value.Make(value.KindLong, dims...)
		if err != nil {
			return nil, c.errorf(err)
		}
		data := make([]value.Value, z.Len())
		for i := range data {
			data[i] = value.Long(i)
		}
		a, err := value.NewArray(k, data, dims)
		if err != nil {
			return nil, c.errorf(err)
		}
		return a, nil
	}
}

func nElements(l *Library, c *call) (value.Value, error) {
	return value.Long(value.Len(c.args[0])), nil
}

// keywordSet is 1 for a defined value that is an array or a true scalar.
func keywordSet(l *Library, c *call) (value.Value, error) {
	v := c.args[0]
	if value.Len(v) > 1 {
		return value.Long(1), nil
	}
	if value.IsUndefined(v) {
		return value.Long(0), nil
	}
	t, err := value.Truthy(v)
	if err != nil || !t {
		return value.Long(0), nil
	}
	return value.Long(1), nil
}

// size returns [ndims, dims..., type code, count], or a single part of it
// when a keyword asks for one.
func size(l *Library, c *call) (value.Value, error) {
	v := c.args[0]
	var shape []int
	if a, ok := v.(*value.Array); ok {
		shape = a.Shape()
	}
	k := value.ElemKind(v)
	n := value.Len(v)
	switch {
	case c.flag("N_ELEMENTS"):
		return value.Long(n), nil
	case c.flag("TYPE"):
		return value.Long(k.TypeCode()), nil
	case c.flag("TNAME"):
		return value.String(k.String()), nil
	case c.flag("N_DIMENSIONS"):
		return value.Long(len(shape)), nil
	case c.flag("DIMENSIONS"):
		if len(shape) == 0 {
			return value.Long(0), nil
		}
		return value.NewLongs(shape...), nil
	}
	out := []int{len(shape)}
	out = append(out, shape...)
	return value.NewLongs(append(out, k.TypeCode(), n)...), nil
}

// asArray returns v as an array, wrapping a scalar in a one-element array.
func asArray(c *call, v value.Value) (*value.Array, error) {
	switch v := v.(type) {
	case *value.Array:
		return v, nil
	case value.Undefined:
		return nil, c.errorf(fmt.Errorf("%w: argument is undefined", value.ErrTypeMismatch))
	}
	a, err := value.NewArray(v.Kind(), []value.Value{v}, []int{1})
	if err != nil {
		return nil, c.errorf(err)
	}
	return a, nil
}

// reform changes the shape of an array. Without dimensions it drops the
// dimensions of size 1.
func reform(l *Library, c *call) (value.Value, error) {
	a, err := asArray(c, c.args[0])
	if err != nil {
		return nil, err
	}
	var dims []int
	if len(c.args) > 1 {
		if dims, err = c.dims(c.args[1:]); err != nil {
			return nil, err
		}
	} else {
		for _, d := range a.Shape() {
			if d != 1 {
				dims = append(dims, d)
			}
		}
		if len(dims) == 0 {
			dims = []int{1}
		}
	}
	b, err := a.Reshape(dims...)
	if err != nil {
		return nil, c.errorf(err)
	}
	return b, nil
}

// reverse reverses an array along dimension d, counted from 1.
func reverse(l *Library, c *call) (value.Value, error) {
	a, err := asArray(c, c.args[0])
	if err != nil {
		return nil, err
	}
	d, err := c.intArgOr(1, 1)
	if err != nil {
		return nil, err
	}
	shape := a.Shape()
	if d < 1 || d > len(shape) {
		return nil, c.errorf(fmt.Errorf("%w: dimension %d out of range for %s", value.ErrIndexOutOfBounds, d, value.Describe(a)))
	}
	ax := d - 1
	stride := value.Strides(shape)[ax]
	src := a.Data()
	out := make([]value.Value, len(src))
	for i, e := range src {
		coord := (i / stride) % shape[ax]
		out[i+(shape[ax]-1-2*coord)*stride] = e
	}
	r, err := value.NewArray(a.ElemKind(), out, shape)
	if err != nil {
		return nil, c.errorf(err)
	}
	return r, nil
}

// where returns the flat indices of the true elements, or -1 when there
// are none.
func where(l *Library, c *call) (value.Value, error) {
	var idx []int
	for i, e := range value.Elements(c.args[0]) {
		t, err := value.Truthy(e)
		if err != nil {
			return nil, c.errorf(err)
		}
		if t {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return value.Long(-1), nil
	}
	return value.NewLongs(idx...), nil
}

// sortIndex returns the indices that put the elements in ascending order.
// Equal elements keep their order.
func sortIndex(l *Library, c *call) (value.Value, error) {
	elems := value.Elements(c.args[0])
	if len(elems) == 0 {
		return nil, c.errorf(fmt.Errorf("%w: argument is undefined", value.ErrTypeMismatch))
	}
	idx := make([]int, len(elems))
	for i := range idx {
		idx[i] = i
	}
	if value.ElemKind(c.args[0]) == value.KindString {
		sort.SliceStable(idx, func(i, j int) bool {
			return strings.Compare(elems[idx[i]].String(), elems[idx[j]].String()) < 0
		})
		return value.NewLongs(idx...), nil
	}
	keys := make([]float64, len(elems))
	for i, e := range elems {
		f, err := value.AsFloat(e)
		if err != nil {
			return nil, c.errorf(err)
		}
		keys[i] = f
	}
	sort.SliceStable(idx, func(i, j int) bool { return keys[idx[i]] < keys[idx[j]] })
	return value.NewLongs(idx...), nil
}

// replicate returns an array of the given dimensions filled with a scalar.
func replicate(l *Library, c *call) (value.Value, error) {
	v := value.Scalar(c.args[0])
	if _, ok := v.(*value.Array); ok {
		return nil, c.errorf(fmt.Errorf("%w: REPLICATE needs a scalar", value.ErrTypeMismatch))
	}
	if value.IsUndefined(v) {
		return nil, c.errorf(fmt.Errorf("%w: argument is undefined", value.ErrTypeMismatch))
	}
	dims, err := c.dims(c.args[1:])
	if err != nil {
		return nil, err
	}
	a, err := value.Make(v.Kind(), dims...)
	if err != nil {
		return nil, c.errorf(err)
	}
	data := make([]value.Value, a.Len())
	for i := range data {
		data[i] = v
	}
	r, err := value.NewArray(v.Kind(), data, dims)
	if err != nil {
		return nil, c.errorf(err)
	}
	return r, nil
}
