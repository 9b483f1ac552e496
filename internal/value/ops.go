package value

import (
	"math"
	"math/cmplx"
	"strings"
)

// Op is a binary operator.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
	OpXor
)

var opNames = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "MOD",
	OpPow: "^",
	OpEq:  "EQ",
	OpNe:  "NE",
	OpLt:  "LT",
	OpGt:  "GT",
	OpLe:  "LE",
	OpGe:  "GE",
	OpAnd: "AND",
	OpOr:  "OR",
	OpXor: "XOR",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// IsComparison reports whether op yields a BYTE truth value.
func (op Op) IsComparison() bool { return op >= OpEq && op <= OpGe }

// IsLogical reports whether op is AND, OR or XOR.
func (op Op) IsLogical() bool { return op >= OpAnd && op <= OpXor }

// Promote returns the kind both operands of a numeric operation convert
// to: the higher-ranked kind, except that COMPLEX with DOUBLE is DCOMPLEX.
func Promote(a, b Kind) Kind {
	if (a == KindComplex && b == KindDouble) || (a == KindDouble && b == KindComplex) {
		return KindDComplex
	}
	if a > b {
		return a
	}
	return b
}

// Binary applies op to x and y. A scalar operand is broadcast over an
// array; two arrays must have the same shape.
func Binary(op Op, x, y Value) (Value, error) {
	if IsUndefined(x) || IsUndefined(y) {
		return nil, typeErrorf("undefined operand to %s", op)
	}
	xa, xArr := x.(*Array)
	ya, yArr := y.(*Array)
	switch {
	case !xArr && !yArr:
		return scalarOp(op, x, y)
	case xArr && yArr:
		if !sameShape(xa.shape, ya.shape) {
			return nil, dimErrorf("%s: shapes %s and %s differ", op, dimsString(xa.shape), dimsString(ya.shape))
		}
		out := make([]Value, len(xa.data))
		for i := range xa.data {
			r, err := scalarOp(op, xa.data[i], ya.data[i])
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return fromData(resultKind(op, xa.elem, ya.elem), out, xa.Shape()), nil
	case xArr:
		out := make([]Value, len(xa.data))
		for i, e := range xa.data {
			r, err := scalarOp(op, e, y)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return fromData(resultKind(op, xa.elem, y.Kind()), out, xa.Shape()), nil
	default:
		out := make([]Value, len(ya.data))
		for i, e := range ya.data {
			r, err := scalarOp(op, x, e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return fromData(resultKind(op, x.Kind(), ya.elem), out, ya.Shape()), nil
	}
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func resultKind(op Op, a, b Kind) Kind {
	switch {
	case op.IsComparison(), op.IsLogical():
		return KindByte
	case a == KindString:
		return KindString
	}
	return Promote(a, b)
}

func scalarOp(op Op, x, y Value) (Value, error) {
	if op.IsLogical() {
		return logicalOp(op, x, y)
	}
	xk, yk := x.Kind(), y.Kind()
	switch {
	case xk == KindString && yk == KindString:
		return stringOp(op, string(x.(String)), string(y.(String)))
	case xk == KindObject || xk == KindPointer || yk == KindObject || yk == KindPointer:
		return handleOp(op, x, y)
	case !xk.IsNumeric() || !yk.IsNumeric():
		return nil, typeErrorf("%s is not defined for %s and %s", op, xk, yk)
	}
	k := Promote(xk, yk)
	switch {
	case k.IsComplex():
		return complexOp(op, k, toComplex(x), toComplex(y))
	case k.IsFloat():
		return floatOp(op, k, toFloat(x), toFloat(y))
	case k.IsUnsigned():
		return uintOp(op, k, toUint(x), toUint(y))
	}
	return intOp(op, k, toInt(x), toInt(y))
}

func logicalOp(op Op, x, y Value) (Value, error) {
	a, err := Truthy(x)
	if err != nil {
		return nil, err
	}
	b, err := Truthy(y)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAnd:
		return Bool(a && b), nil
	case OpOr:
		return Bool(a || b), nil
	}
	return Bool(a != b), nil
}

func stringOp(op Op, a, b string) (Value, error) {
	switch op {
	case OpAdd:
		return String(a + b), nil
	case OpEq:
		return Bool(a == b), nil
	case OpNe:
		return Bool(a != b), nil
	case OpLt:
		return Bool(strings.Compare(a, b) < 0), nil
	case OpGt:
		return Bool(strings.Compare(a, b) > 0), nil
	case OpLe:
		return Bool(strings.Compare(a, b) <= 0), nil
	case OpGe:
		return Bool(strings.Compare(a, b) >= 0), nil
	}
	return nil, typeErrorf("%s is not defined for strings", op)
}

// handleOp compares object or pointer handles. Handles of different kinds
// are never equal.
func handleOp(op Op, x, y Value) (Value, error) {
	if op != OpEq && op != OpNe {
		return nil, typeErrorf("%s is not defined for %s and %s", op, x.Kind(), y.Kind())
	}
	if x.Kind() != y.Kind() {
		return nil, typeErrorf("cannot compare %s with %s", x.Kind(), y.Kind())
	}
	eq := x == y
	if op == OpNe {
		eq = !eq
	}
	return Bool(eq), nil
}

func intOp(op Op, k Kind, a, b int64) (Value, error) {
	switch op {
	case OpAdd:
		return fromInt(k, a+b), nil
	case OpSub:
		return fromInt(k, a-b), nil
	case OpMul:
		return fromInt(k, a*b), nil
	case OpDiv:
		if b == 0 {
			return nil, ErrDivideByZero
		}
		return fromInt(k, a/b), nil
	case OpMod:
		if b == 0 {
			return nil, ErrDivideByZero
		}
		return fromInt(k, a%b), nil
	case OpPow:
		return fromInt(k, ipow(a, b)), nil
	}
	return compare(op, cmpInt(a, b)), nil
}

func uintOp(op Op, k Kind, a, b uint64) (Value, error) {
	switch op {
	case OpAdd:
		return fromUint(k, a+b), nil
	case OpSub:
		return fromUint(k, a-b), nil
	case OpMul:
		return fromUint(k, a*b), nil
	case OpDiv:
		if b == 0 {
			return nil, ErrDivideByZero
		}
		return fromUint(k, a/b), nil
	case OpMod:
		if b == 0 {
			return nil, ErrDivideByZero
		}
		return fromUint(k, a%b), nil
	case OpPow:
		r := uint64(1)
		for ; b > 0; b >>= 1 {
			if b&1 == 1 {
				r *= a
			}
			a *= a
		}
		return fromUint(k, r), nil
	}
	c := 0
	if a < b {
		c = -1
	} else if a > b {
		c = 1
	}
	return compare(op, c), nil
}

func fromUint(k Kind, u uint64) Value {
	if k == KindULong64 {
		return ULong64(u)
	}
	return fromInt(k, int64(u))
}

// ipow raises a to b by squaring. Negative exponents truncate to 0 unless
// the base is 1 or -1.
func ipow(a, b int64) int64 {
	if b < 0 {
		switch a {
		case 1:
			return 1
		case -1:
			if b%2 == 0 {
				return 1
			}
			return -1
		}
		return 0
	}
	r := int64(1)
	for ; b > 0; b >>= 1 {
		if b&1 == 1 {
			r *= a
		}
		a *= a
	}
	return r
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compare(op Op, c int) Value {
	switch op {
	case OpEq:
		return Bool(c == 0)
	case OpNe:
		return Bool(c != 0)
	case OpLt:
		return Bool(c < 0)
	case OpGt:
		return Bool(c > 0)
	case OpLe:
		return Bool(c <= 0)
	}
	return Bool(c >= 0)
}

func floatOp(op Op, k Kind, a, b float64) (Value, error) {
	switch op {
	case OpAdd:
		return fromFloat(k, a+b), nil
	case OpSub:
		return fromFloat(k, a-b), nil
	case OpMul:
		return fromFloat(k, a*b), nil
	case OpDiv:
		return fromFloat(k, a/b), nil
	case OpMod:
		return fromFloat(k, math.Mod(a, b)), nil
	case OpPow:
		return fromFloat(k, math.Pow(a, b)), nil
	case OpEq:
		return Bool(a == b), nil
	case OpNe:
		return Bool(a != b), nil
	case OpLt:
		return Bool(a < b), nil
	case OpGt:
		return Bool(a > b), nil
	case OpLe:
		return Bool(a <= b), nil
	}
	return Bool(a >= b), nil
}

func complexOp(op Op, k Kind, a, b complex128) (Value, error) {
	switch op {
	case OpAdd:
		return fromComplex(k, a+b), nil
	case OpSub:
		return fromComplex(k, a-b), nil
	case OpMul:
		return fromComplex(k, a*b), nil
	case OpDiv:
		return fromComplex(k, a/b), nil
	case OpPow:
		return fromComplex(k, cmplx.Pow(a, b)), nil
	case OpEq:
		return Bool(a == b), nil
	case OpNe:
		return Bool(a != b), nil
	}
	return nil, typeErrorf("%s is not defined for %s", op, k)
}

// Negate returns -v element-wise. Unsigned kinds wrap.
func Negate(v Value) (Value, error) {
	return mapScalars(v, func(e Value) (Value, error) {
		k := e.Kind()
		switch {
		case k.IsComplex():
			return fromComplex(k, -toComplex(e)), nil
		case k.IsFloat():
			return fromFloat(k, -toFloat(e)), nil
		case k == KindULong64:
			return ULong64(-uint64(e.(ULong64))), nil
		case k.IsInteger():
			return fromInt(k, -toInt(e)), nil
		}
		return nil, typeErrorf("unary minus is not defined for %s", k)
	})
}

// LogicalNot returns BYTE 1 where v is false and 0 where it is true.
func LogicalNot(v Value) (Value, error) {
	return mapScalars(v, func(e Value) (Value, error) {
		t, err := Truthy(e)
		if err != nil {
			return nil, err
		}
		return Bool(!t), nil
	})
}

// mapScalars applies f to v, or to each element of an array. The result
// array takes the kind of its first element.
func mapScalars(v Value, f func(Value) (Value, error)) (Value, error) {
	if IsUndefined(v) {
		return nil, typeErrorf("undefined operand")
	}
	a, ok := v.(*Array)
	if !ok {
		return f(v)
	}
	out := make([]Value, len(a.data))
	for i, e := range a.data {
		r, err := f(e)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return fromData(out[0].Kind(), out, a.Shape()), nil
}

// Map applies f to each element of v and returns an array of kind k, or
// the scalar result when v is a scalar. f's results are converted to k.
func Map(v Value, k Kind, f func(Value) (Value, error)) (Value, error) {
	r, err := mapScalars(v, func(e Value) (Value, error) {
		x, err := f(e)
		if err != nil {
			return nil, err
		}
		return convertScalar(x, k)
	})
	if err != nil {
		return nil, err
	}
	if a, ok := r.(*Array); ok {
		a.elem = k
	}
	return r, nil
}
