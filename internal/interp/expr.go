package interp

import (
	"math"

	"github.com/you-not-fish/xdl/internal/syntax"
	"github.com/you-not-fish/xdl/internal/value"
)

// expr evaluates x. Values read from variables are returned without
// copying; every store copies, so callers must not modify the result.
func (in *Interp) expr(x syntax.Expr) (value.Value, error) {
	switch x := x.(type) {
	case *syntax.Name:
		return in.variable(x)

	case *syntax.BasicLit:
		return in.literal(x)

	case *syntax.SysVar:
		v, ok := sysVars[x.Key]
		if !ok {
			return nil, errorf(x.Pos(), UnknownVariable, "system variable %s is not defined", x.Value)
		}
		return v, nil

	case *syntax.ParenExpr:
		return in.expr(x.X)

	case *syntax.Operation:
		return in.operation(x)

	case *syntax.TernaryExpr:
		ok, err := in.cond(x.Cond)
		if err != nil {
			return nil, err
		}
		if ok {
			return in.expr(x.X)
		}
		return in.expr(x.Y)

	case *syntax.ArrayLit:
		return in.arrayLit(x)

	case *syntax.StructLit:
		return nil, errorf(x.Pos(), TypeMismatch, "structures are only allowed in class definitions")

	case *syntax.IndexExpr:
		base, err := in.expr(x.X)
		if err != nil {
			return nil, err
		}
		return in.index(x.Pos(), base, x.Subs)

	case *syntax.CallExpr:
		return in.callFunc(x)

	case *syntax.ObjNewExpr:
		return in.objNew(x)

	case *syntax.MethodExpr:
		return in.methodCall(x, true)

	case *syntax.FieldExpr:
		o, err := in.object(x.X)
		if err != nil {
			return nil, err
		}
		v, ok := o.Field(x.Field.Key)
		if !ok {
			return nil, errorf(x.Field.Pos(), UnknownVariable, "class %s has no field %s", o.Class.Name, x.Field.Value)
		}
		return v, nil

	case *syntax.DerefExpr:
		p, err := in.pointer(x.X)
		if err != nil {
			return nil, err
		}
		v, ok := in.ctx.Pointer(p)
		if !ok {
			return nil, errorf(x.Pos(), Runtime, "invalid pointer %s", p)
		}
		if value.IsUndefined(v) {
			return nil, errorf(x.Pos(), UnknownVariable, "pointer %s target is undefined", p)
		}
		return v, nil
	}
	return nil, errorf(x.Pos(), Runtime, "unexpected expression %T", x)
}

var sysVars = map[string]value.Value{
	"PI":    value.Float(math.Pi),
	"DPI":   value.Double(math.Pi),
	"E":     value.Float(math.E),
	"DTOR":  value.Float(math.Pi / 180),
	"RADEG": value.Float(180 / math.Pi),
	"NULL":  value.Null,
}

// variable reads a variable. Plain routine frames fall back to the main
// frame when the name is not local.
func (in *Interp) variable(n *syntax.Name) (value.Value, error) {
	v, fr := in.ctx.Frame().LookupParent(n.Key)
	if fr == nil || value.IsUndefined(v) {
		return nil, errorf(n.Pos(), UnknownVariable, "variable %s is undefined", n.Value)
	}
	return v, nil
}

// lenient evaluates a call argument for routines that accept undefined
// variables, such as N_ELEMENTS: an undefined plain variable yields !NULL.
func (in *Interp) lenient(x syntax.Expr) (value.Value, error) {
	if n, ok := x.(*syntax.Name); ok {
		if v, fr := in.ctx.Frame().LookupParent(n.Key); fr == nil || value.IsUndefined(v) {
			return value.Null, nil
		}
	}
	return in.expr(x)
}

func (in *Interp) literal(x *syntax.BasicLit) (value.Value, error) {
	if v, ok := in.lits[x]; ok {
		return v, nil
	}
	var v value.Value
	var err error
	switch x.Kind {
	case syntax.IntLit:
		v, err = value.ParseInt(x.Value)
	case syntax.FloatLit:
		v, err = value.ParseFloat(x.Value)
	default:
		v = value.String(x.Value)
	}
	if err != nil {
		return nil, errorf(x.Pos(), TypeMismatch, "%v", err)
	}
	in.lits[x] = v
	return v, nil
}

var binaryOps = map[syntax.Token]value.Op{
	syntax.Add: value.OpAdd,
	syntax.Sub: value.OpSub,
	syntax.Mul: value.OpMul,
	syntax.Div: value.OpDiv,
	syntax.Mod: value.OpMod,
	syntax.Pow: value.OpPow,
	syntax.Eq:  value.OpEq,
	syntax.Ne:  value.OpNe,
	syntax.Lt:  value.OpLt,
	syntax.Gt:  value.OpGt,
	syntax.Le:  value.OpLe,
	syntax.Ge:  value.OpGe,
	syntax.And: value.OpAnd,
	syntax.Or:  value.OpOr,
	syntax.Xor: value.OpXor,
}

func (in *Interp) operation(x *syntax.Operation) (value.Value, error) {
	if x.Y == nil {
		v, err := in.expr(x.X)
		if err != nil {
			return nil, err
		}
		switch x.Op {
		case syntax.Sub:
			v, err = value.Negate(v)
		case syntax.Not, syntax.Tilde:
			v, err = value.LogicalNot(v)
		case syntax.Add:
		default:
			return nil, errorf(x.Pos(), Runtime, "unexpected unary operator %s", x.Op)
		}
		if err != nil {
			return nil, wrap(x.Pos(), err)
		}
		return v, nil
	}

	// && and || evaluate their right operand only when needed.
	if x.Op == syntax.AndAnd || x.Op == syntax.OrOr {
		a, err := in.cond(x.X)
		if err != nil {
			return nil, err
		}
		if a == (x.Op == syntax.OrOr) {
			return value.Bool(a), nil
		}
		b, err := in.cond(x.Y)
		if err != nil {
			return nil, err
		}
		return value.Bool(b), nil
	}

	op, ok := binaryOps[x.Op]
	if !ok {
		return nil, errorf(x.Pos(), Runtime, "unexpected operator %s", x.Op)
	}
	a, err := in.expr(x.X)
	if err != nil {
		return nil, err
	}
	b, err := in.expr(x.Y)
	if err != nil {
		return nil, err
	}
	v, err := value.Binary(op, a, b)
	if err != nil {
		return nil, wrap(x.Pos(), err)
	}
	return v, nil
}

// arrayLit builds [e1, e2, ...]. A literal whose elements are all array
// literals, like [[1,2],[3,4]], gains a leading dimension; otherwise the
// elements are concatenated.
func (in *Interp) arrayLit(x *syntax.ArrayLit) (value.Value, error) {
	elems := make([]value.Value, len(x.Elems))
	nested := len(x.Elems) > 1
	for i, e := range x.Elems {
		v, err := in.expr(e)
		if err != nil {
			return nil, err
		}
		elems[i] = v
		if _, ok := e.(*syntax.ArrayLit); !ok {
			nested = false
		}
	}
	var v value.Value
	var err error
	if nested {
		v, err = value.Stack(elems)
	} else {
		v, err = value.Concat(elems)
	}
	if err != nil {
		return nil, wrap(x.Pos(), err)
	}
	return v, nil
}

// subscripts evaluates an index list. A scalar subscript that evaluates to
// an array becomes an index list.
func (in *Interp) subscripts(subs []*syntax.Subscript) ([]value.Subscript, error) {
	out := make([]value.Subscript, len(subs))
	for i, s := range subs {
		switch s.Kind {
		case syntax.SubAll:
			out[i] = value.All()

		case syntax.SubScalar:
			v, err := in.expr(s.X)
			if err != nil {
				return nil, err
			}
			if a, ok := v.(*value.Array); ok {
				idx := make([]int, a.Len())
				for j, e := range a.Data() {
					n, err := value.AsInt(e)
					if err != nil {
						return nil, wrap(s.Pos(), err)
					}
					idx[j] = int(n)
				}
				out[i] = value.List(idx...)
				continue
			}
			n, err := in.intExpr(s.X, v)
			if err != nil {
				return nil, err
			}
			out[i] = value.Point(n)

		case syntax.SubRange:
			r := value.Subscript{Kind: value.SubRange, ToEnd: s.HiAll || s.Hi == nil}
			var err error
			if s.Lo != nil {
				if r.Lo, err = in.evalInt(s.Lo); err != nil {
					return nil, err
				}
			}
			if !r.ToEnd {
				if r.Hi, err = in.evalInt(s.Hi); err != nil {
					return nil, err
				}
			}
			if s.Step != nil {
				if r.Step, err = in.evalInt(s.Step); err != nil {
					return nil, err
				}
				if r.Step == 0 {
					return nil, errorf(s.Step.Pos(), IndexOutOfBounds, "range step must not be zero")
				}
			}
			out[i] = r
		}
	}
	return out, nil
}

func (in *Interp) evalInt(x syntax.Expr) (int, error) {
	v, err := in.expr(x)
	if err != nil {
		return 0, err
	}
	return in.intExpr(x, v)
}

func (in *Interp) intExpr(x syntax.Expr, v value.Value) (int, error) {
	n, err := value.AsInt(v)
	if err != nil {
		return 0, wrap(x.Pos(), err)
	}
	return int(n), nil
}

func (in *Interp) index(pos syntax.Pos, base value.Value, subs []*syntax.Subscript) (value.Value, error) {
	ss, err := in.subscripts(subs)
	if err != nil {
		return nil, err
	}
	v, err := value.Index(base, ss)
	if err != nil {
		return nil, wrap(pos, err)
	}
	return v, nil
}

// object evaluates x to a live object.
func (in *Interp) object(x syntax.Expr) (*Object, error) {
	v, err := in.expr(x)
	if err != nil {
		return nil, err
	}
	ref, ok := value.Scalar(v).(value.ObjRef)
	if !ok {
		return nil, errorf(x.Pos(), TypeMismatch, "expected an object reference, got %s", value.Describe(v))
	}
	o := in.ctx.Object(ref)
	if o == nil {
		return nil, errorf(x.Pos(), Runtime, "invalid object reference %s", ref)
	}
	return o, nil
}

// pointer evaluates x to a pointer handle.
func (in *Interp) pointer(x syntax.Expr) (value.PtrRef, error) {
	v, err := in.expr(x)
	if err != nil {
		return 0, err
	}
	p, ok := value.Scalar(v).(value.PtrRef)
	if !ok {
		return 0, errorf(x.Pos(), TypeMismatch, "expected a pointer, got %s", value.Describe(v))
	}
	return p, nil
}

// store assigns v to the target x, copying arrays so that no two slots
// share storage.
func (in *Interp) store(x syntax.Expr, v value.Value) error {
	return in.bind(x, value.Copy(v))
}

// bind assigns an already owned value to the target x.
func (in *Interp) bind(x syntax.Expr, v value.Value) error {
	switch x := x.(type) {
	case *syntax.Name:
		in.ctx.Frame().Set(x.Key, v)
		return nil

	case *syntax.IndexExpr:
		return in.storeIndex(x.X, x.Subs, v)

	case *syntax.ParenExpr:
		return in.bind(x.X, v)

	case *syntax.CallExpr:
		if in.isVariable(x.Name.Key) && len(x.Keywords) == 0 {
			return in.bind(syntax.ParenIndex(x), v)
		}
		return errorf(x.Pos(), Runtime, "cannot assign to function call %s()", x.Name.Value)

	case *syntax.FieldExpr:
		o, err := in.object(x.X)
		if err != nil {
			return err
		}
		if _, ok := o.fields[x.Field.Key]; !ok {
			return errorf(x.Field.Pos(), UnknownVariable, "class %s has no field %s", o.Class.Name, x.Field.Value)
		}
		o.fields[x.Field.Key] = v
		return nil

	case *syntax.DerefExpr:
		p, err := in.pointer(x.X)
		if err != nil {
			return err
		}
		if !in.ctx.setPointer(p, v) {
			return errorf(x.Pos(), Runtime, "invalid pointer %s", p)
		}
		return nil

	case *syntax.SysVar:
		return errorf(x.Pos(), Runtime, "system variable %s is read-only", x.Value)
	}
	return errorf(x.Pos(), Runtime, "expression cannot be assigned to")
}

// storeIndex writes v into the elements of base selected by subs. The
// base array is updated in place and bound again.
func (in *Interp) storeIndex(base syntax.Expr, subs []*syntax.Subscript, v value.Value) error {
	cur, err := in.expr(base)
	if err != nil {
		return err
	}
	if n, ok := base.(*syntax.Name); ok {
		if _, local := in.ctx.Frame().Lookup(n.Key); !local {
			cur = value.Copy(cur)
		}
	}
	ss, err := in.subscripts(subs)
	if err != nil {
		return err
	}
	nv, err := value.Assign(cur, ss, v)
	if err != nil {
		return wrap(base.Pos(), err)
	}
	return in.bind(base, nv)
}

// isVariable reports whether key names a defined variable visible from the
// current frame.
func (in *Interp) isVariable(key string) bool {
	v, fr := in.ctx.Frame().LookupParent(key)
	return fr != nil && !value.IsUndefined(v)
}
