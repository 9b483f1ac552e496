// Package value implements the XDL runtime value model: typed scalars,
// strings, object and pointer handles, and N-dimensional arrays stored as a
// flat row-major buffer plus a shape.
package value

import (
	"errors"
	"fmt"
)

// Kind identifies the type of a Value.
type Kind uint8

// Numeric kinds are ordered by promotion rank, Byte lowest.
const (
	KindUndefined Kind = iota
	KindByte
	KindInt
	KindUInt
	KindLong
	KindULong
	KindLong64
	KindULong64
	KindFloat
	KindDouble
	KindComplex
	KindDComplex
	KindString
	KindObject
	KindPointer
	KindArray

	kindCount
)

var kindNames = [...]string{
	KindUndefined: "UNDEFINED",
	KindByte:      "BYTE",
	KindInt:       "INT",
	KindUInt:      "UINT",
	KindLong:      "LONG",
	KindULong:     "ULONG",
	KindLong64:    "LONG64",
	KindULong64:   "ULONG64",
	KindFloat:     "FLOAT",
	KindDouble:    "DOUBLE",
	KindComplex:   "COMPLEX",
	KindDComplex:  "DCOMPLEX",
	KindString:    "STRING",
	KindObject:    "OBJREF",
	KindPointer:   "POINTER",
	KindArray:     "ARRAY",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// typeCodes are the IDL type codes reported by SIZE.
var typeCodes = [...]int{
	KindUndefined: 0,
	KindByte:      1,
	KindInt:       2,
	KindLong:      3,
	KindFloat:     4,
	KindDouble:    5,
	KindComplex:   6,
	KindString:    7,
	KindDComplex:  9,
	KindPointer:   10,
	KindObject:    11,
	KindUInt:      12,
	KindULong:     13,
	KindLong64:    14,
	KindULong64:   15,
}

// TypeCode returns the IDL type code of k.
func (k Kind) TypeCode() int {
	if k < KindArray {
		return typeCodes[k]
	}
	return 0
}

// IsNumeric reports whether k is an integer, float or complex kind.
func (k Kind) IsNumeric() bool { return k >= KindByte && k <= KindDComplex }

// IsInteger reports whether k is an integer kind.
func (k Kind) IsInteger() bool { return k >= KindByte && k <= KindULong64 }

// IsUnsigned reports whether k is an unsigned integer kind.
func (k Kind) IsUnsigned() bool {
	switch k {
	case KindByte, KindUInt, KindULong, KindULong64:
		return true
	}
	return false
}

// IsFloat reports whether k is FLOAT or DOUBLE.
func (k Kind) IsFloat() bool { return k == KindFloat || k == KindDouble }

// IsComplex reports whether k is COMPLEX or DCOMPLEX.
func (k Kind) IsComplex() bool { return k == KindComplex || k == KindDComplex }

// Value is any XDL runtime value. Scalars are immutable Go values; *Array
// is the only mutable variant and is copied on assignment by the
// interpreter.
type Value interface {
	Kind() Kind
	String() string
}

// Scalar types.
type (
	Byte     uint8
	Int      int16
	UInt     uint16
	Long     int32
	ULong    uint32
	Long64   int64
	ULong64  uint64
	Float    float32
	Double   float64
	Complex  complex64
	DComplex complex128
	String   string

	// ObjRef is a handle into the object heap. 0 is the null object.
	ObjRef uint64

	// PtrRef is a handle into the pointer heap. 0 is the null pointer.
	PtrRef uint64

	// Undefined is the value of !NULL and of routines returning nothing.
	Undefined struct{}
)

func (Byte) Kind() Kind      { return KindByte }
func (Int) Kind() Kind       { return KindInt }
func (UInt) Kind() Kind      { return KindUInt }
func (Long) Kind() Kind      { return KindLong }
func (ULong) Kind() Kind     { return KindULong }
func (Long64) Kind() Kind    { return KindLong64 }
func (ULong64) Kind() Kind   { return KindULong64 }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (Complex) Kind() Kind   { return KindComplex }
func (DComplex) Kind() Kind  { return KindDComplex }
func (String) Kind() Kind    { return KindString }
func (ObjRef) Kind() Kind    { return KindObject }
func (PtrRef) Kind() Kind    { return KindPointer }
func (Undefined) Kind() Kind { return KindUndefined }

func (v Byte) String() string      { return formatInt(int64(v)) }
func (v Int) String() string       { return formatInt(int64(v)) }
func (v UInt) String() string      { return formatUint(uint64(v)) }
func (v Long) String() string      { return formatInt(int64(v)) }
func (v ULong) String() string     { return formatUint(uint64(v)) }
func (v Long64) String() string    { return formatInt(int64(v)) }
func (v ULong64) String() string   { return formatUint(uint64(v)) }
func (v Float) String() string     { return formatFloat(float64(v), 32) }
func (v Double) String() string    { return formatFloat(float64(v), 64) }
func (v Complex) String() string   { return formatComplex(complex128(v), 32) }
func (v DComplex) String() string  { return formatComplex(complex128(v), 64) }
func (v String) String() string    { return string(v) }
func (Undefined) String() string   { return "!NULL" }

func (v ObjRef) String() string {
	if v == 0 {
		return "<NullObject>"
	}
	return fmt.Sprintf("<ObjHeapVar%d>", uint64(v))
}

func (v PtrRef) String() string {
	if v == 0 {
		return "<NullPointer>"
	}
	return fmt.Sprintf("<PtrHeapVar%d>", uint64(v))
}

// Null is the undefined value.
var Null Value = Undefined{}

// Errors reported by value operations. Callers wrap or match them with
// errors.Is.
var (
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrIndexOutOfBounds  = errors.New("index out of bounds")
	ErrDivideByZero      = errors.New("integer divide by zero")
)

func typeErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrTypeMismatch, fmt.Sprintf(format, args...))
}

func dimErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDimensionMismatch, fmt.Sprintf(format, args...))
}

func boundsErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIndexOutOfBounds, fmt.Sprintf(format, args...))
}

// Zero returns the zero value of a scalar kind.
func Zero(k Kind) Value {
	switch k {
	case KindByte:
		return Byte(0)
	case KindInt:
		return Int(0)
	case KindUInt:
		return UInt(0)
	case KindLong:
		return Long(0)
	case KindULong:
		return ULong(0)
	case KindLong64:
		return Long64(0)
	case KindULong64:
		return ULong64(0)
	case KindFloat:
		return Float(0)
	case KindDouble:
		return Double(0)
	case KindComplex:
		return Complex(0)
	case KindDComplex:
		return DComplex(0)
	case KindString:
		return String("")
	case KindObject:
		return ObjRef(0)
	case KindPointer:
		return PtrRef(0)
	}
	return Null
}

// IsUndefined reports whether v is nil or !NULL.
func IsUndefined(v Value) bool {
	return v == nil || v.Kind() == KindUndefined
}

// Len returns the number of elements of v: 0 for undefined, 1 for scalars.
func Len(v Value) int {
	switch v := v.(type) {
	case nil, Undefined:
		return 0
	case *Array:
		return v.Len()
	}
	return 1
}

// Elements returns the elements of v in storage order. A scalar is its own
// single element.
func Elements(v Value) []Value {
	switch v := v.(type) {
	case nil, Undefined:
		return nil
	case *Array:
		return v.data
	}
	return []Value{v}
}

// ElemKind returns the element kind of an array, or the kind of a scalar.
func ElemKind(v Value) Kind {
	if a, ok := v.(*Array); ok {
		return a.elem
	}
	if v == nil {
		return KindUndefined
	}
	return v.Kind()
}

// Scalar unwraps a one-element array. Other values are returned unchanged.
func Scalar(v Value) Value {
	if a, ok := v.(*Array); ok && len(a.data) == 1 {
		return a.data[0]
	}
	return v
}

// Copy returns v with arrays deep-copied; scalars are immutable.
func Copy(v Value) Value {
	if a, ok := v.(*Array); ok {
		return a.Copy()
	}
	return v
}

// Truthy reports whether v counts as true in a condition: non-zero numbers,
// non-empty strings and non-null handles. A one-element array counts as its
// element.
func Truthy(v Value) (bool, error) {
	v = Scalar(v)
	switch v := v.(type) {
	case nil, Undefined:
		return false, typeErrorf("undefined value in condition")
	case *Array:
		return false, typeErrorf("array of %d elements in scalar context", v.Len())
	case String:
		return v != "", nil
	case ObjRef:
		return v != 0, nil
	case PtrRef:
		return v != 0, nil
	case Complex, DComplex:
		return toComplex(v) != 0, nil
	}
	return toFloat(v) != 0, nil
}

// Bool converts a Go bool to BYTE 1 or 0.
func Bool(b bool) Value {
	if b {
		return Byte(1)
	}
	return Byte(0)
}

// AsInt returns a numeric scalar (or one-element array) as an int64,
// truncating floats.
func AsInt(v Value) (int64, error) {
	v = Scalar(v)
	k := v.Kind()
	switch {
	case k.IsInteger():
		if k == KindULong64 {
			return int64(v.(ULong64)), nil
		}
		return toInt(v), nil
	case k.IsFloat():
		return int64(toFloat(v)), nil
	case k.IsComplex():
		return int64(real(toComplex(v))), nil
	case k == KindString:
		f, err := parseFloatString(string(v.(String)))
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	}
	return 0, typeErrorf("expected a number, got %s", describe(v))
}

// AsFloat returns a numeric scalar (or one-element array) as a float64.
func AsFloat(v Value) (float64, error) {
	v = Scalar(v)
	k := v.Kind()
	switch {
	case k.IsInteger(), k.IsFloat():
		return toFloat(v), nil
	case k.IsComplex():
		return real(toComplex(v)), nil
	case k == KindString:
		return parseFloatString(string(v.(String)))
	}
	return 0, typeErrorf("expected a number, got %s", describe(v))
}

// AsString returns a STRING scalar's contents.
func AsString(v Value) (string, error) {
	if s, ok := Scalar(v).(String); ok {
		return string(s), nil
	}
	return "", typeErrorf("expected a string, got %s", describe(v))
}

// describe names v's type for error messages.
func describe(v Value) string {
	switch v := v.(type) {
	case nil:
		return "UNDEFINED"
	case *Array:
		return fmt.Sprintf("%s array%s", v.elem, dimsString(v.shape))
	}
	return v.Kind().String()
}

// Describe names the type and shape of v, as used in messages and HELP.
func Describe(v Value) string { return describe(v) }
