package interp

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/xdl/internal/syntax"
	"github.com/you-not-fish/xdl/internal/value"
)

// ErrorKind classifies runtime errors.
type ErrorKind uint8

const (
	Runtime ErrorKind = iota
	UnknownVariable
	UnknownProcedure
	UnknownFunction
	UnknownMethod
	UnknownClass
	TypeMismatch
	DimensionMismatch
	IndexOutOfBounds
	ArityMismatch
	CallError
	Arithmetic
)

var errorKindNames = [...]string{
	Runtime:           "Runtime",
	UnknownVariable:   "UnknownVariable",
	UnknownProcedure:  "UnknownProcedure",
	UnknownFunction:   "UnknownFunction",
	UnknownMethod:     "UnknownMethod",
	UnknownClass:      "UnknownClass",
	TypeMismatch:      "TypeMismatch",
	DimensionMismatch: "DimensionMismatch",
	IndexOutOfBounds:  "IndexOutOfBounds",
	ArityMismatch:     "ArityMismatch",
	CallError:         "CallError",
	Arithmetic:        "Arithmetic",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Error is a runtime error with the position of the statement or
// expression that raised it.
type Error struct {
	Kind ErrorKind
	Pos  syntax.Pos
	Msg  string
	Err  error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the runtime kind of err. Errors that did not come from the
// interpreter report Runtime; value package errors map to their kinds.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return classify(err, Runtime)
}

func classify(err error, fallback ErrorKind) ErrorKind {
	switch {
	case errors.Is(err, value.ErrTypeMismatch):
		return TypeMismatch
	case errors.Is(err, value.ErrDimensionMismatch):
		return DimensionMismatch
	case errors.Is(err, value.ErrIndexOutOfBounds):
		return IndexOutOfBounds
	case errors.Is(err, value.ErrDivideByZero):
		return Arithmetic
	}
	return fallback
}

func errorf(pos syntax.Pos, kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// wrap attaches pos to err. Errors already carrying a position pass
// through unchanged so the innermost location wins.
func wrap(pos syntax.Pos, err error) error {
	return wrapAs(pos, err, Runtime)
}

func wrapAs(pos syntax.Pos, err error, fallback ErrorKind) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if !e.Pos.IsValid() {
			e.Pos = pos
		}
		return err
	}
	return &Error{Kind: classify(err, fallback), Pos: pos, Msg: err.Error(), Err: err}
}
