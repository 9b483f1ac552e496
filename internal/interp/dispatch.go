package interp

import (
	"errors"

	"github.com/you-not-fish/xdl/internal/value"
)

// ErrNoBuiltin is returned by a Dispatcher that does not know a name.
var ErrNoBuiltin = errors.New("no such builtin")

// A Dispatcher supplies built-in procedures and functions. The interpreter
// calls it for every name that is not a user routine or a core intrinsic,
// the same way for function and procedure calls; a builtin with no result
// returns value.Null.
//
// Keyword names are canonical (upper case); /FLAG arguments arrive as
// LONG 1. Arguments may be shared with variables and must not be modified.
type Dispatcher interface {
	CallBuiltin(name string, args []value.Value, kw map[string]value.Value) (value.Value, error)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(name string, args []value.Value, kw map[string]value.Value) (value.Value, error)

func (f DispatcherFunc) CallBuiltin(name string, args []value.Value, kw map[string]value.Value) (value.Value, error) {
	return f(name, args, kw)
}

// noBuiltins is used when New is given a nil Dispatcher.
type noBuiltins struct{}

func (noBuiltins) CallBuiltin(string, []value.Value, map[string]value.Value) (value.Value, error) {
	return nil, ErrNoBuiltin
}
