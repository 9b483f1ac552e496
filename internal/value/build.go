package value

// unify returns the element kind shared by values of kinds ks: numeric
// kinds promote, other kinds must all match.
func unify(ks []Kind) (Kind, error) {
	k := ks[0]
	for _, o := range ks[1:] {
		switch {
		case k == o:
		case k.IsNumeric() && o.IsNumeric():
			k = Promote(k, o)
		default:
			return 0, typeErrorf("cannot mix %s and %s in an array", k, o)
		}
	}
	return k, nil
}

// Concat builds an array from the elements of an array literal. Scalars
// and one-dimensional arrays are joined end to end; arrays of higher rank
// are joined along their first dimension and must agree on the rest.
// Undefined elements are skipped; if nothing remains the result is !NULL.
func Concat(elems []Value) (Value, error) {
	var parts []Value
	var kinds []Kind
	var tail []int
	multi := false
	for _, e := range elems {
		if IsUndefined(e) {
			continue
		}
		parts = append(parts, e)
		kinds = append(kinds, ElemKind(e))
		if a, ok := e.(*Array); ok && a.Rank() > 1 {
			if !multi && len(parts) > 1 {
				return nil, dimErrorf("cannot concatenate %s with lower-rank values", describe(a))
			}
			if multi && !sameShape(tail, a.shape[1:]) {
				return nil, dimErrorf("cannot concatenate %s: trailing dimensions %s expected", describe(a), dimsString(tail))
			}
			multi = true
			tail = a.shape[1:]
		} else if multi {
			return nil, dimErrorf("cannot concatenate %s with higher-rank arrays", describe(e))
		}
	}
	if len(parts) == 0 {
		return Null, nil
	}
	k, err := unify(kinds)
	if err != nil {
		return nil, err
	}
	var data []Value
	lead := 0
	for _, p := range parts {
		for _, e := range Elements(p) {
			c, err := convertScalar(e, k)
			if err != nil {
				return nil, err
			}
			data = append(data, c)
		}
		if a, ok := p.(*Array); ok && multi {
			lead += a.shape[0]
		}
	}
	if !multi {
		return fromData(k, data, []int{len(data)}), nil
	}
	shape := append([]int{lead}, tail...)
	return fromData(k, data, shape), nil
}

// Stack builds an array from nested array literals: each row becomes one
// index of a new leading dimension. All rows must have the same shape.
func Stack(rows []Value) (Value, error) {
	if len(rows) == 0 {
		return Null, nil
	}
	var inner []int
	kinds := make([]Kind, len(rows))
	for i, r := range rows {
		if IsUndefined(r) {
			return nil, typeErrorf("undefined row in array literal")
		}
		var shape []int
		if a, ok := r.(*Array); ok {
			shape = a.shape
		}
		if i == 0 {
			inner = shape
		} else if !sameShape(inner, shape) {
			return nil, dimErrorf("rows of shape %s and %s cannot be stacked", dimsString(inner), dimsString(shape))
		}
		kinds[i] = ElemKind(r)
	}
	if len(inner)+1 > MaxRank {
		return nil, dimErrorf("array literal nests deeper than %d dimensions", MaxRank)
	}
	k, err := unify(kinds)
	if err != nil {
		return nil, err
	}
	var data []Value
	for _, r := range rows {
		for _, e := range Elements(r) {
			c, err := convertScalar(e, k)
			if err != nil {
				return nil, err
			}
			data = append(data, c)
		}
	}
	shape := append([]int{len(rows)}, inner...)
	return fromData(k, data, shape), nil
}
