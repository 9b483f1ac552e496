package interp

import (
	"strings"

	"github.com/you-not-fish/xdl/internal/syntax"
	"github.com/you-not-fish/xdl/internal/value"
)

// Intrinsics are the routines that need interpreter state: frames, the
// object table or the pointer heap. They resolve after user routines and
// before the Dispatcher.

// intrinsicFunc calls the intrinsic function key. ok is false when key is
// not an intrinsic.
func (in *Interp) intrinsicFunc(key string, x *syntax.CallExpr) (v value.Value, ok bool, err error) {
	switch key {
	case "N_PARAMS":
		if err := arity(x.Pos(), key, len(x.Args), 0, 0); err != nil {
			return nil, true, err
		}
		return value.Long(in.ctx.Frame().nparams), true, nil

	case "OBJ_VALID":
		a, err := in.fixedArgs(x, 1, 1)
		if err != nil {
			return nil, true, err
		}
		v, err = in.mapHandles(a.vals[0], func(e value.Value) bool {
			ref, ok := e.(value.ObjRef)
			return ok && in.ctx.Object(ref) != nil
		})
		return v, true, wrap(x.Pos(), err)

	case "PTR_VALID":
		a, err := in.fixedArgs(x, 1, 1)
		if err != nil {
			return nil, true, err
		}
		v, err = in.mapHandles(a.vals[0], func(e value.Value) bool {
			p, ok := e.(value.PtrRef)
			if !ok {
				return false
			}
			_, valid := in.ctx.Pointer(p)
			return valid
		})
		return v, true, wrap(x.Pos(), err)

	case "OBJ_CLASS":
		a, err := in.fixedArgs(x, 1, 1)
		if err != nil {
			return nil, true, err
		}
		if o := in.liveObject(a.vals[0]); o != nil {
			return value.String(strings.ToUpper(o.Class.Name)), true, nil
		}
		return value.String(""), true, nil

	case "OBJ_ISA":
		a, err := in.fixedArgs(x, 2, 2)
		if err != nil {
			return nil, true, err
		}
		name, err := value.AsString(a.vals[1])
		if err != nil {
			return nil, true, wrap(x.Args[1].Pos(), err)
		}
		o := in.liveObject(a.vals[0])
		isa := o != nil && in.ctx.IsA(o.Class, syntax.Canonical(strings.TrimSpace(name)))
		return value.Bool(isa), true, nil

	case "OBJ_HASMETHOD":
		a, err := in.fixedArgs(x, 2, 2)
		if err != nil {
			return nil, true, err
		}
		name, err := value.AsString(a.vals[1])
		if err != nil {
			return nil, true, wrap(x.Args[1].Pos(), err)
		}
		key := syntax.Canonical(strings.TrimSpace(name))
		o := in.liveObject(a.vals[0])
		has := o != nil && (in.ctx.Method(o.Class, key, true) != nil || in.ctx.Method(o.Class, key, false) != nil)
		return value.Bool(has), true, nil

	case "PTR_NEW":
		a, err := in.fixedArgs(x, 0, 1, "ALLOCATE_HEAP")
		if err != nil {
			return nil, true, err
		}
		switch {
		case len(a.vals) == 1:
			return in.ctx.NewPointer(a.vals[0]), true, nil
		case hasFlag(a, "ALLOCATE_HEAP"):
			return in.ctx.NewPointer(value.Null), true, nil
		}
		return value.PtrRef(0), true, nil

	case "CALL_FUNCTION":
		a, err := in.args(x.Args, x.Keywords, false)
		if err != nil {
			return nil, true, err
		}
		if len(a.vals) == 0 {
			return nil, true, errorf(x.Pos(), ArityMismatch, "CALL_FUNCTION expects a function name")
		}
		name, err := value.AsString(a.vals[0])
		if err != nil {
			return nil, true, wrap(x.Args[0].Pos(), err)
		}
		v, err = in.callByName(x.Pos(), name, true, &callArgs{vals: a.vals[1:], kw: a.kw})
		return v, true, err

	case "CALL_METHOD":
		a, err := in.args(x.Args, x.Keywords, false)
		if err != nil {
			return nil, true, err
		}
		v, err = in.callMethodByName(x.Pos(), a, true)
		return v, true, err

	case "EXECUTE":
		a, err := in.fixedArgs(x, 1, 1)
		if err != nil {
			return nil, true, err
		}
		src, err := value.AsString(a.vals[0])
		if err != nil {
			return nil, true, wrap(x.Args[0].Pos(), err)
		}
		if err := in.execute(src); err != nil {
			return value.Long(0), true, nil
		}
		return value.Long(1), true, nil
	}
	return nil, false, nil
}

// intrinsicProc calls the intrinsic procedure key. ok is false when key is
// not an intrinsic.
func (in *Interp) intrinsicProc(key string, s *syntax.ProcCallStmt) (ok bool, err error) {
	switch key {
	case "PTR_FREE":
		a, err := in.args(s.Args, s.Keywords, false)
		if err != nil {
			return true, err
		}
		if err := checkKeywords(key, a); err != nil {
			return true, err
		}
		for i, v := range a.vals {
			for _, e := range value.Elements(v) {
				p, ok := e.(value.PtrRef)
				if !ok {
					return true, errorf(s.Args[i].Pos(), TypeMismatch, "PTR_FREE expects pointers, got %s", value.Describe(v))
				}
				in.ctx.FreePointer(p)
			}
		}
		return true, nil

	case "CALL_PROCEDURE":
		a, err := in.args(s.Args, s.Keywords, false)
		if err != nil {
			return true, err
		}
		if len(a.vals) == 0 {
			return true, errorf(s.Pos(), ArityMismatch, "CALL_PROCEDURE expects a procedure name")
		}
		name, err := value.AsString(a.vals[0])
		if err != nil {
			return true, wrap(s.Args[0].Pos(), err)
		}
		_, err = in.callByName(s.Pos(), name, false, &callArgs{vals: a.vals[1:], kw: a.kw})
		return true, err

	case "CALL_METHOD":
		a, err := in.args(s.Args, s.Keywords, false)
		if err != nil {
			return true, err
		}
		_, err = in.callMethodByName(s.Pos(), a, false)
		return true, err
	}
	return false, nil
}

// fixedArgs evaluates the arguments of an intrinsic taking between lo and
// hi positional arguments and the given keywords. Undefined plain
// variables are passed as !NULL.
func (in *Interp) fixedArgs(x *syntax.CallExpr, lo, hi int, keywords ...string) (*callArgs, error) {
	if err := arity(x.Pos(), x.Name.Value, len(x.Args), lo, hi); err != nil {
		return nil, err
	}
	a, err := in.args(x.Args, x.Keywords, true)
	if err != nil {
		return nil, err
	}
	if err := checkKeywords(x.Name.Value, a, keywords...); err != nil {
		return nil, err
	}
	return a, nil
}

func arity(pos syntax.Pos, name string, n, lo, hi int) error {
	switch {
	case lo == hi && n != lo:
		return errorf(pos, ArityMismatch, "%s expects %d arguments, got %d", name, lo, n)
	case n < lo:
		return errorf(pos, ArityMismatch, "%s expects at least %d arguments, got %d", name, lo, n)
	case n > hi:
		return errorf(pos, ArityMismatch, "%s expects at most %d arguments, got %d", name, hi, n)
	}
	return nil
}

// checkKeywords rejects any keyword of a that is not a unique prefix of
// one of allowed.
func checkKeywords(name string, a *callArgs, allowed ...string) error {
	for _, k := range a.kw {
		n := 0
		for _, full := range allowed {
			if full == k.key {
				n = 1
				break
			}
			if strings.HasPrefix(full, k.key) {
				n++
			}
		}
		switch n {
		case 0:
			return errorf(k.pos, ArityMismatch, "keyword %s is not allowed in call to %s", k.name, name)
		case 1:
		default:
			return errorf(k.pos, ArityMismatch, "ambiguous keyword abbreviation %s in call to %s", k.name, name)
		}
	}
	return nil
}

// hasFlag reports whether the keyword key, possibly abbreviated, was set
// to a true value.
func hasFlag(a *callArgs, key string) bool {
	for _, k := range a.kw {
		if strings.HasPrefix(key, k.key) {
			ok, _ := value.Truthy(k.val)
			return ok
		}
	}
	return false
}

// mapHandles applies a validity test to every element of v, giving a BYTE
// scalar or array of the same shape. An undefined value is not valid.
func (in *Interp) mapHandles(v value.Value, valid func(value.Value) bool) (value.Value, error) {
	if value.IsUndefined(v) {
		return value.Byte(0), nil
	}
	return value.Map(v, value.KindByte, func(e value.Value) (value.Value, error) {
		return value.Bool(valid(e)), nil
	})
}

// liveObject returns the instance v refers to, or nil when v is not a live
// object reference.
func (in *Interp) liveObject(v value.Value) *Object {
	ref, ok := value.Scalar(v).(value.ObjRef)
	if !ok {
		return nil
	}
	return in.ctx.Object(ref)
}

// callMethodByName implements CALL_METHOD, name, obj, args...
func (in *Interp) callMethodByName(pos syntax.Pos, a *callArgs, fn bool) (value.Value, error) {
	if len(a.vals) < 2 {
		return nil, errorf(pos, ArityMismatch, "CALL_METHOD expects a method name and an object")
	}
	name, err := value.AsString(a.vals[0])
	if err != nil {
		return nil, wrap(pos, err)
	}
	o := in.liveObject(a.vals[1])
	if o == nil {
		return nil, errorf(pos, Runtime, "invalid object reference %s", value.Describe(a.vals[1]))
	}
	key := syntax.Canonical(strings.TrimSpace(name))
	d := in.ctx.Method(o.Class, key, fn)
	if d == nil {
		return nil, errorf(pos, UnknownMethod, "class %s has no method %s", o.Class.Name, name)
	}
	return in.callUser(pos, d, value.ObjRef(o.ID), &callArgs{vals: a.vals[2:], kw: a.kw})
}

// execute parses src as a program unit and runs it in the current frame.
// A RETURN in src fails the unit and leaves the frame's result untouched.
func (in *Interp) execute(src string) error {
	f, err := syntax.Parse("EXECUTE", []byte(src))
	if err != nil {
		return err
	}
	for _, d := range f.Decls {
		in.ctx.define(d)
	}
	fr := in.ctx.Frame()
	saved := fr.result
	sig, err := in.stmts(f.Stmts)
	fr.result = saved
	if err != nil {
		return err
	}
	if sig == Return {
		return errorf(syntax.Pos{}, Runtime, "RETURN is not allowed in EXECUTE")
	}
	return in.strayBranch(sig)
}
