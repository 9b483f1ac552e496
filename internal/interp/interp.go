// Package interp executes parsed XDL programs by walking the syntax tree
// against a Context.
package interp

import (
	"fmt"

	"github.com/you-not-fish/xdl/internal/syntax"
	"github.com/you-not-fish/xdl/internal/value"
)

// Signal is the control-flow outcome of executing a statement. Any signal
// other than Normal stops the enclosing block and propagates outward until
// a loop, CASE or routine call consumes it.
type Signal uint8

const (
	Normal Signal = iota
	Break
	Continue
	Return
)

var signalNames = [...]string{
	Normal:   "Normal",
	Break:    "Break",
	Continue: "Continue",
	Return:   "Return",
}

func (s Signal) String() string {
	if int(s) < len(signalNames) {
		return signalNames[s]
	}
	return fmt.Sprintf("Signal(%d)", s)
}

// Interp evaluates syntax trees. It owns one Context for its whole life.
type Interp struct {
	ctx  *Context
	d    Dispatcher
	lits map[*syntax.BasicLit]value.Value

	branchPos syntax.Pos // last BREAK or CONTINUE executed
}

// New returns an interpreter with a fresh Context. Names that are neither
// user routines nor core intrinsics are resolved through d, which may be
// nil.
func New(d Dispatcher) *Interp {
	if d == nil {
		d = noBuiltins{}
	}
	return &Interp{
		ctx:  NewContext(),
		d:    d,
		lits: make(map[*syntax.BasicLit]value.Value),
	}
}

// Context returns the interpreter state.
func (in *Interp) Context() *Context { return in.ctx }

// Run registers the declarations of f and then executes its main-level
// statements in the current frame. Definitions are visible to every
// statement of the unit, wherever they appear. A RETURN at the main level
// ends the unit.
//
// After an error the frame stack is unwound to the main level; variables
// and objects changed before the error keep their new values.
func (in *Interp) Run(f *syntax.File) error {
	for _, d := range f.Decls {
		in.ctx.define(d)
	}
	sig, err := in.stmts(f.Stmts)
	if err != nil {
		in.ctx.unwind()
		return err
	}
	return in.strayBranch(sig)
}

// RunSource parses src and runs it.
func (in *Interp) RunSource(filename string, src []byte) error {
	f, err := syntax.Parse(filename, src)
	if err != nil {
		return err
	}
	return in.Run(f)
}

// Eval evaluates an expression in the current frame.
func (in *Interp) Eval(x syntax.Expr) (value.Value, error) {
	v, err := in.expr(x)
	if err != nil {
		in.ctx.unwind()
	}
	return v, err
}

// Exec executes one statement in the current frame and returns its signal.
// For Return, the value is available from ReturnValue.
func (in *Interp) Exec(s syntax.Stmt) (Signal, error) {
	sig, err := in.stmt(s)
	if err != nil {
		in.ctx.unwind()
	}
	return sig, err
}

// ReturnValue returns the value of the last RETURN executed in the
// current frame.
func (in *Interp) ReturnValue() value.Value {
	if v := in.ctx.Frame().result; v != nil {
		return v
	}
	return value.Null
}

// strayBranch reports a BREAK or CONTINUE that escaped every loop.
func (in *Interp) strayBranch(sig Signal) error {
	switch sig {
	case Break:
		return errorf(in.branchPos, Runtime, "BREAK outside a loop")
	case Continue:
		return errorf(in.branchPos, Runtime, "CONTINUE outside a loop")
	}
	return nil
}
