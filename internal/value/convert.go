package value

import (
	"strconv"
	"strings"
)

// toInt returns an integer-kind scalar as int64. ULONG64 values above
// MaxInt64 wrap.
func toInt(v Value) int64 {
	switch v := v.(type) {
	case Byte:
		return int64(v)
	case Int:
		return int64(v)
	case UInt:
		return int64(v)
	case Long:
		return int64(v)
	case ULong:
		return int64(v)
	case Long64:
		return int64(v)
	case ULong64:
		return int64(v)
	case Float:
		return int64(v)
	case Double:
		return int64(v)
	case Complex:
		return int64(real(v))
	case DComplex:
		return int64(real(v))
	}
	return 0
}

func toUint(v Value) uint64 {
	switch v := v.(type) {
	case ULong64:
		return uint64(v)
	case Float:
		if v < 0 {
			return uint64(int64(v))
		}
		return uint64(v)
	case Double:
		if v < 0 {
			return uint64(int64(v))
		}
		return uint64(v)
	}
	return uint64(toInt(v))
}

func toFloat(v Value) float64 {
	switch v := v.(type) {
	case ULong64:
		return float64(v)
	case Float:
		return float64(v)
	case Double:
		return float64(v)
	case Complex:
		return float64(real(v))
	case DComplex:
		return real(v)
	}
	return float64(toInt(v))
}

func toComplex(v Value) complex128 {
	switch v := v.(type) {
	case Complex:
		return complex128(v)
	case DComplex:
		return complex128(v)
	}
	return complex(toFloat(v), 0)
}

// fromInt builds a scalar of integer kind k, wrapping like a C cast.
func fromInt(k Kind, i int64) Value {
	switch k {
	case KindByte:
		return Byte(i)
	case KindInt:
		return Int(i)
	case KindUInt:
		return UInt(i)
	case KindLong:
		return Long(i)
	case KindULong:
		return ULong(i)
	case KindLong64:
		return Long64(i)
	case KindULong64:
		return ULong64(i)
	}
	return fromFloat(k, float64(i))
}

func fromFloat(k Kind, f float64) Value {
	switch k {
	case KindFloat:
		return Float(f)
	case KindDouble:
		return Double(f)
	case KindComplex:
		return Complex(complex(f, 0))
	case KindDComplex:
		return DComplex(complex(f, 0))
	}
	return fromInt(k, int64(f))
}

func fromComplex(k Kind, c complex128) Value {
	switch k {
	case KindComplex:
		return Complex(c)
	case KindDComplex:
		return DComplex(c)
	}
	return fromFloat(k, real(c))
}

// Convert returns v converted to kind k. Arrays convert element-wise and
// keep their shape. Strings convert to numbers by parsing; numbers convert
// to strings with String.
func Convert(v Value, k Kind) (Value, error) {
	if a, ok := v.(*Array); ok {
		if a.elem == k {
			return a.Copy(), nil
		}
		out := make([]Value, len(a.data))
		for i, e := range a.data {
			c, err := convertScalar(e, k)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return fromData(k, out, a.Shape()), nil
	}
	return convertScalar(v, k)
}

func convertScalar(v Value, k Kind) (Value, error) {
	if v == nil || v.Kind() == KindUndefined {
		return nil, typeErrorf("cannot convert an undefined value to %s", k)
	}
	from := v.Kind()
	if from == k {
		return v, nil
	}
	switch {
	case k == KindString:
		if from == KindObject || from == KindPointer {
			return nil, typeErrorf("cannot convert %s to STRING", from)
		}
		return String(v.String()), nil
	case k == KindObject || k == KindPointer:
		return nil, typeErrorf("cannot convert %s to %s", from, k)
	case !k.IsNumeric():
		return nil, typeErrorf("cannot convert %s to %s", from, k)
	}
	switch {
	case from == KindString:
		s := strings.TrimSpace(string(v.(String)))
		if k.IsInteger() {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return fromInt(k, i), nil
			}
		}
		f, err := parseFloatString(s)
		if err != nil {
			return nil, err
		}
		return fromFloat(k, f), nil
	case from.IsComplex():
		return fromComplex(k, toComplex(v)), nil
	case from.IsFloat():
		return fromFloat(k, toFloat(v)), nil
	case from == KindULong64:
		if k.IsInteger() {
			return fromInt(k, int64(v.(ULong64))), nil
		}
		return fromFloat(k, toFloat(v)), nil
	case from.IsInteger():
		return fromInt(k, toInt(v)), nil
	}
	return nil, typeErrorf("cannot convert %s to %s", from, k)
}

// parseFloatString parses a number the way type conversion functions read
// strings: surrounding blanks are ignored, an empty string is 0 and D
// exponents are accepted.
func parseFloatString(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	t := strings.Map(func(r rune) rune {
		if r == 'd' || r == 'D' {
			return 'e'
		}
		return r
	}, s)
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, nil
		}
		return 0, typeErrorf("cannot convert string %q to a number", s)
	}
	return f, nil
}
