package builtin

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/you-not-fish/xdl/internal/value"
)

func init() {
	for name, f := range map[string]func(float64) float64{
		"SQRT":   math.Sqrt,
		"SIN":    math.Sin,
		"COS":    math.Cos,
		"TAN":    math.Tan,
		"ASIN":   math.Asin,
		"ACOS":   math.Acos,
		"EXP":    math.Exp,
		"ALOG":   math.Log,
		"ALOG10": math.Log10,
		"SINH":   math.Sinh,
		"COSH":   math.Cosh,
		"TANH":   math.Tanh,
	} {
		register(name, 1, 1, nil, floatFunc(f))
	}
	for name, f := range map[string]func(float64) float64{
		"FLOOR": math.Floor,
		"CEIL":  math.Ceil,
		"ROUND": math.Round,
	} {
		register(name, 1, 1, []string{"L64"}, roundFunc(f))
	}
	register("ATAN", 1, 2, nil, atan)
	register("ABS", 1, 1, nil, abs)
	register("TOTAL", 1, 1, []string{"DOUBLE"}, total)
	register("MEAN", 1, 1, []string{"DOUBLE"}, mean)
	register("MIN", 1, 1, nil, extreme(-1))
	register("MAX", 1, 1, nil, extreme(1))
}

// floatKind is the result kind of a floating-point function applied to v:
// DOUBLE for double precision input, FLOAT otherwise.
func floatKind(v value.Value, double bool) value.Kind {
	switch value.ElemKind(v) {
	case value.KindDouble, value.KindDComplex, value.KindLong64, value.KindULong64:
		return value.KindDouble
	}
	if double {
		return value.KindDouble
	}
	return value.KindFloat
}

func floatFunc(f func(float64) float64) func(*Library, *call) (value.Value, error) {
	return func(l *Library, c *call) (value.Value, error) {
		v := c.args[0]
		if value.ElemKind(v).IsComplex() {
			return nil, c.errorf(fmt.Errorf("%w: complex arguments are not supported", value.ErrTypeMismatch))
		}
		r, err := value.Map(v, floatKind(v, false), func(e value.Value) (value.Value, error) {
			x, err := value.AsFloat(e)
			if err != nil {
				return nil, err
			}
			return value.Double(f(x)), nil
		})
		if err != nil {
			return nil, c.errorf(err)
		}
		return r, nil
	}
}

func roundFunc(f func(float64) float64) func(*Library, *call) (value.Value, error) {
	return func(l *Library, c *call) (value.Value, error) {
		k := value.KindLong
		if c.flag("L64") {
			k = value.KindLong64
		}
		r, err := value.Map(c.args[0], k, func(e value.Value) (value.Value, error) {
			x, err := value.AsFloat(e)
			if err != nil {
				return nil, err
			}
			return value.Long64(f(x)), nil
		})
		if err != nil {
			return nil, c.errorf(err)
		}
		return r, nil
	}
}

// atan is ATAN(x) or the two-argument ATAN(y, x).
func atan(l *Library, c *call) (value.Value, error) {
	if len(c.args) == 1 {
		return floatFunc(math.Atan)(l, c)
	}
	y, x := c.args[0], c.args[1]
	if value.Len(y) != 1 || value.Len(x) != 1 {
		return nil, c.errorf(fmt.Errorf("%w: two-argument ATAN needs scalars", value.ErrDimensionMismatch))
	}
	fy, err := value.AsFloat(y)
	if err != nil {
		return nil, c.errorf(err)
	}
	fx, err := value.AsFloat(x)
	if err != nil {
		return nil, c.errorf(err)
	}
	k := floatKind(y, value.ElemKind(x) == value.KindDouble)
	r, err := value.Convert(value.Double(math.Atan2(fy, fx)), k)
	if err != nil {
		return nil, c.errorf(err)
	}
	return r, nil
}

// abs keeps the kind of real input; complex input gives its magnitude.
func abs(l *Library, c *call) (value.Value, error) {
	v := c.args[0]
	k := value.ElemKind(v)
	switch k {
	case value.KindComplex:
		k = value.KindFloat
	case value.KindDComplex:
		k = value.KindDouble
	}
	r, err := value.Map(v, k, func(e value.Value) (value.Value, error) {
		switch e := e.(type) {
		case value.Complex:
			return value.Double(cmplx.Abs(complex128(e))), nil
		case value.DComplex:
			return value.Double(cmplx.Abs(complex128(e))), nil
		}
		x, err := value.AsFloat(e)
		if err != nil {
			return nil, err
		}
		if x < 0 {
			return value.Negate(e)
		}
		return e, nil
	})
	if err != nil {
		return nil, c.errorf(err)
	}
	return r, nil
}

func sum(c *call) (float64, int, error) {
	elems := value.Elements(c.args[0])
	if len(elems) == 0 {
		return 0, 0, c.errorf(fmt.Errorf("%w: argument is undefined", value.ErrTypeMismatch))
	}
	s := 0.0
	for _, e := range elems {
		x, err := value.AsFloat(e)
		if err != nil {
			return 0, 0, c.errorf(err)
		}
		s += x
	}
	return s, len(elems), nil
}

func total(l *Library, c *call) (value.Value, error) {
	s, _, err := sum(c)
	if err != nil {
		return nil, err
	}
	return value.Convert(value.Double(s), floatKind(c.args[0], c.flag("DOUBLE")))
}

func mean(l *Library, c *call) (value.Value, error) {
	s, n, err := sum(c)
	if err != nil {
		return nil, err
	}
	return value.Convert(value.Double(s/float64(n)), floatKind(c.args[0], c.flag("DOUBLE")))
}

// extreme returns MIN (sign -1) or MAX (sign 1) of the elements, in their
// own kind. Strings compare lexically.
func extreme(sign int) func(*Library, *call) (value.Value, error) {
	return func(l *Library, c *call) (value.Value, error) {
		elems := value.Elements(c.args[0])
		if len(elems) == 0 {
			return nil, c.errorf(fmt.Errorf("%w: argument is undefined", value.ErrTypeMismatch))
		}
		if value.ElemKind(c.args[0]) == value.KindString {
			best := elems[0]
			for _, e := range elems[1:] {
				if strings.Compare(e.String(), best.String())*sign > 0 {
					best = e
				}
			}
			return best, nil
		}
		best := elems[0]
		bx, err := value.AsFloat(best)
		if err != nil {
			return nil, c.errorf(err)
		}
		for _, e := range elems[1:] {
			x, err := value.AsFloat(e)
			if err != nil {
				return nil, c.errorf(err)
			}
			if (sign < 0 && x < bx) || (sign > 0 && x > bx) {
				best, bx = e, x
			}
		}
		return best, nil
	}
}
