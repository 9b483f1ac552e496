package interp

import (
	"errors"
	"strings"

	"github.com/you-not-fish/xdl/internal/syntax"
	"github.com/you-not-fish/xdl/internal/value"
)

// callArgs holds evaluated call arguments. exprs records the source
// expression of each positional argument so that output parameters can be
// written back; it is nil for calls made by name from CALL_FUNCTION and
// friends.
type callArgs struct {
	vals  []value.Value
	exprs []syntax.Expr
	kw    []kwArg
}

type kwArg struct {
	key  string
	name string
	val  value.Value
	expr syntax.Expr // nil for /FLAG
	pos  syntax.Pos
}

func (a *callArgs) kwMap() map[string]value.Value {
	if len(a.kw) == 0 {
		return nil
	}
	m := make(map[string]value.Value, len(a.kw))
	for _, k := range a.kw {
		m[k.key] = k.val
	}
	return m
}

// args evaluates a call's arguments. With lenient set, plain variables
// that are undefined pass !NULL instead of failing; user routines use this
// for output parameters.
func (in *Interp) args(list []syntax.Expr, kws []*syntax.KeywordArg, lenient bool) (*callArgs, error) {
	eval := in.expr
	if lenient {
		eval = in.lenient
	}
	a := &callArgs{vals: make([]value.Value, len(list)), exprs: list}
	for i, x := range list {
		v, err := eval(x)
		if err != nil {
			return nil, err
		}
		a.vals[i] = v
	}
	for _, k := range kws {
		ka := kwArg{key: k.Name.Key, name: k.Name.Value, pos: k.Pos(), expr: k.Value, val: value.Long(1)}
		if !k.IsFlag() {
			v, err := eval(k.Value)
			if err != nil {
				return nil, err
			}
			ka.val = v
		}
		a.kw = append(a.kw, ka)
	}
	return a, nil
}

// lenientBuiltins take undefined variables as !NULL.
var lenientBuiltins = map[string]bool{
	"N_ELEMENTS":  true,
	"KEYWORD_SET": true,
	"SIZE":        true,
}

// callFunc evaluates name(args). The name resolves to a user function, a
// core intrinsic, a builtin, or finally an element of a variable indexed
// with parentheses.
func (in *Interp) callFunc(x *syntax.CallExpr) (value.Value, error) {
	key := x.Name.Key
	if d := in.ctx.Function(key); d != nil {
		a, err := in.args(x.Args, x.Keywords, true)
		if err != nil {
			return nil, err
		}
		return in.callUser(x.Pos(), d, 0, a)
	}
	if v, ok, err := in.intrinsicFunc(key, x); ok {
		return v, err
	}

	a, err := in.args(x.Args, x.Keywords, lenientBuiltins[key])
	if err != nil {
		return nil, err
	}
	v, err := in.d.CallBuiltin(key, a.vals, a.kwMap())
	switch {
	case err == nil:
		if v == nil {
			v = value.Null
		}
		return v, nil
	case !errors.Is(err, ErrNoBuiltin):
		return nil, wrapAs(x.Pos(), err, CallError)
	}

	if in.isVariable(key) && len(x.Keywords) == 0 {
		return in.expr(syntax.ParenIndex(x))
	}
	return nil, errorf(x.Pos(), UnknownFunction, "function %s is not defined", x.Name.Value)
}

// procCall executes NAME, args.
func (in *Interp) procCall(s *syntax.ProcCallStmt) error {
	key := s.Name.Key
	if d := in.ctx.Procedure(key); d != nil {
		a, err := in.args(s.Args, s.Keywords, true)
		if err != nil {
			return err
		}
		_, err = in.callUser(s.Pos(), d, 0, a)
		return err
	}
	if ok, err := in.intrinsicProc(key, s); ok {
		return err
	}

	a, err := in.args(s.Args, s.Keywords, lenientBuiltins[key])
	if err != nil {
		return err
	}
	_, err = in.d.CallBuiltin(key, a.vals, a.kwMap())
	if errors.Is(err, ErrNoBuiltin) {
		return errorf(s.Pos(), UnknownProcedure, "procedure %s is not defined", s.Name.Value)
	}
	return wrapAs(s.Pos(), err, CallError)
}

// callByName calls a function or procedure named at run time, as
// CALL_FUNCTION and CALL_PROCEDURE do. Arguments are values, so nothing is
// written back.
func (in *Interp) callByName(pos syntax.Pos, name string, fn bool, a *callArgs) (value.Value, error) {
	key := syntax.Canonical(strings.TrimSpace(name))
	d := in.ctx.Procedure(key)
	kind := UnknownProcedure
	if fn {
		d = in.ctx.Function(key)
		kind = UnknownFunction
	}
	if d != nil {
		return in.callUser(pos, d, 0, a)
	}
	v, err := in.d.CallBuiltin(key, a.vals, a.kwMap())
	switch {
	case errors.Is(err, ErrNoBuiltin):
		return nil, errorf(pos, kind, "%s is not defined", name)
	case err != nil:
		return nil, wrapAs(pos, err, CallError)
	case v == nil:
		v = value.Null
	}
	return v, nil
}

// callUser runs a user routine or method. self is the receiver for
// methods and 0 otherwise.
//
// Parameters are bound by copy. When the routine returns, the final value
// of each parameter whose argument was a plain variable is copied back to
// that variable in the caller.
func (in *Interp) callUser(pos syntax.Pos, d *syntax.FuncDecl, self value.ObjRef, a *callArgs) (value.Value, error) {
	name := d.Name.Value
	if d.Class != nil {
		name = d.Class.Value + "::" + name
	}
	if len(a.vals) != len(d.Params) {
		return nil, errorf(pos, ArityMismatch, "%s expects %d arguments, got %d", name, len(d.Params), len(a.vals))
	}

	var parent *Frame
	if d.Class == nil {
		parent = in.ctx.Main()
	}
	fr := newFrame(name, parent)
	for _, p := range d.Params {
		fr.Set(p.Key, value.Null)
	}
	for _, k := range d.Keywords {
		fr.Set(k.Local.Key, value.Null)
	}
	for i, p := range d.Params {
		fr.Set(p.Key, value.Copy(a.vals[i]))
	}
	locals := make([]*syntax.Name, len(a.kw))
	for i, k := range a.kw {
		kp, err := matchKeyword(d, k)
		if err != nil {
			return nil, err
		}
		locals[i] = kp.Local
		fr.Set(kp.Local.Key, value.Copy(k.val))
	}
	if d.Class != nil {
		fr.self = self
		fr.Set("SELF", self)
	}
	fr.nparams = len(a.vals)

	if !in.ctx.push(fr) {
		return nil, errorf(pos, Runtime, "recursion limit of %d calls exceeded in %s", MaxDepth, name)
	}
	sig, err := in.block(d.Body)
	in.ctx.pop()
	if err != nil {
		return nil, err
	}
	if err := in.strayBranch(sig); err != nil {
		return nil, err
	}

	caller := in.ctx.Frame()
	for i, x := range a.exprs {
		writeBack(caller, x, fr, d.Params[i])
	}
	for i, k := range a.kw {
		if k.expr != nil {
			writeBack(caller, k.expr, fr, locals[i])
		}
	}

	if !d.IsFunc {
		return value.Null, nil
	}
	if fr.result == nil {
		return value.Null, nil
	}
	return fr.result, nil
}

// writeBack copies the callee's final value of local into the caller's
// variable when the argument expression was a plain variable.
func writeBack(caller *Frame, arg syntax.Expr, callee *Frame, local *syntax.Name) {
	n, ok := arg.(*syntax.Name)
	if !ok {
		return
	}
	if v, ok := callee.Lookup(local.Key); ok && !value.IsUndefined(v) {
		caller.Set(n.Key, v)
	}
}

// matchKeyword finds the declared keyword for k. A keyword may be
// abbreviated to any prefix that identifies it uniquely.
func matchKeyword(d *syntax.FuncDecl, k kwArg) (*syntax.KeywordParam, error) {
	var found *syntax.KeywordParam
	for _, kp := range d.Keywords {
		if kp.Name.Key == k.key {
			return kp, nil
		}
		if strings.HasPrefix(kp.Name.Key, k.key) {
			if found != nil {
				return nil, errorf(k.pos, ArityMismatch, "ambiguous keyword abbreviation %s in call to %s", k.name, d.Name.Value)
			}
			found = kp
		}
	}
	if found == nil {
		return nil, errorf(k.pos, ArityMismatch, "keyword %s is not allowed in call to %s", k.name, d.Name.Value)
	}
	return found, nil
}

// methodCall invokes obj->Method. As an expression (fn set) it needs a
// function method. As a statement it needs a procedure method, except that
// the parenthesized form obj->Method() also accepts a function method and
// discards its result.
func (in *Interp) methodCall(x *syntax.MethodExpr, fn bool) (value.Value, error) {
	o, err := in.object(x.X)
	if err != nil {
		return nil, err
	}
	cl := o.Class
	if x.Class != nil {
		qc := in.ctx.Class(x.Class.Key)
		if qc == nil {
			return nil, errorf(x.Class.Pos(), UnknownClass, "class %s is not defined", x.Class.Value)
		}
		if !in.ctx.IsA(cl, qc.Key) {
			return nil, errorf(x.Class.Pos(), TypeMismatch, "object of class %s is not a %s", cl.Name, qc.Name)
		}
		cl = qc
	}

	var d *syntax.FuncDecl
	switch {
	case fn:
		d = in.ctx.Method(cl, x.Method.Key, true)
	case x.Paren:
		if d = in.ctx.Method(cl, x.Method.Key, false); d == nil {
			d = in.ctx.Method(cl, x.Method.Key, true)
		}
	default:
		d = in.ctx.Method(cl, x.Method.Key, false)
	}
	if d == nil {
		return nil, errorf(x.Method.Pos(), UnknownMethod, "class %s has no method %s", cl.Name, x.Method.Value)
	}

	a, err := in.args(x.Args, x.Keywords, true)
	if err != nil {
		return nil, err
	}
	return in.callUser(x.Pos(), d, value.ObjRef(o.ID), a)
}

// objNew creates an instance: fields get their defaults, then Init runs if
// the class or a parent defines it. If Init returns false the instance is
// discarded, without calling Cleanup, and the null object is returned.
func (in *Interp) objNew(x *syntax.ObjNewExpr) (value.Value, error) {
	if x.Class == nil {
		return value.ObjRef(0), nil
	}
	cv, err := in.expr(x.Class)
	if err != nil {
		return nil, err
	}
	name, err := value.AsString(cv)
	if err != nil {
		return nil, wrap(x.Class.Pos(), err)
	}
	cl := in.ctx.Class(syntax.Canonical(strings.TrimSpace(name)))
	if cl == nil {
		return nil, errorf(x.Class.Pos(), UnknownClass, "class %s is not defined", name)
	}

	a, err := in.args(x.Args, x.Keywords, true)
	if err != nil {
		return nil, err
	}
	order, fields, err := in.fieldDefaults(x.Pos(), cl)
	if err != nil {
		return nil, err
	}
	o := in.ctx.newObject(cl, order, fields)
	ref := value.ObjRef(o.ID)

	init := in.ctx.Method(cl, "INIT", true)
	if init == nil {
		return ref, nil
	}
	res, err := in.callUser(x.Pos(), init, ref, a)
	if err != nil {
		in.ctx.freeObject(ref)
		return nil, err
	}
	if ok, _ := value.Truthy(res); !ok {
		in.ctx.freeObject(ref)
		return value.ObjRef(0), nil
	}
	return ref, nil
}

// fieldDefaults evaluates the field initializers of cl in a scratch frame,
// so that every instance gets its own arrays and pointers.
func (in *Interp) fieldDefaults(pos syntax.Pos, cl *Class) ([]string, map[string]value.Value, error) {
	if !in.ctx.push(newFrame(cl.Name+"__define", nil)) {
		return nil, nil, errorf(pos, Runtime, "recursion limit of %d calls exceeded in %s__define", MaxDepth, cl.Name)
	}
	defer in.ctx.pop()

	inits := in.ctx.fieldInits(cl)
	order := make([]string, len(inits))
	fields := make(map[string]value.Value, len(inits))
	for i, f := range inits {
		v, err := in.expr(f.Value)
		if err != nil {
			return nil, nil, err
		}
		order[i] = f.Name.Key
		fields[f.Name.Key] = value.Copy(v)
	}
	return order, fields, nil
}

// objDestroy runs OBJ_DESTROY. Each live object's Cleanup procedure runs
// before it is freed; null and already destroyed references are ignored.
func (in *Interp) objDestroy(s *syntax.ObjDestroyStmt) error {
	a, err := in.args(s.Args, s.Keywords, false)
	if err != nil {
		return err
	}
	cleanupArgs := &callArgs{kw: a.kw}
	for i, v := range a.vals {
		for _, e := range value.Elements(v) {
			ref, ok := e.(value.ObjRef)
			if !ok {
				return errorf(s.Args[i].Pos(), TypeMismatch, "OBJ_DESTROY expects object references, got %s", value.Describe(v))
			}
			if err := in.destroy(s.Pos(), ref, cleanupArgs); err != nil {
				return err
			}
		}
	}
	return nil
}

func (in *Interp) destroy(pos syntax.Pos, ref value.ObjRef, a *callArgs) error {
	o := in.ctx.Object(ref)
	if o == nil || o.dying {
		return nil
	}
	o.dying = true
	defer in.ctx.freeObject(ref)
	if cleanup := in.ctx.Method(o.Class, "CLEANUP", false); cleanup != nil {
		if _, err := in.callUser(pos, cleanup, ref, a); err != nil {
			return err
		}
	}
	return nil
}
