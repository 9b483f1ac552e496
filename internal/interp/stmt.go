package interp

import (
	"github.com/you-not-fish/xdl/internal/syntax"
	"github.com/you-not-fish/xdl/internal/value"
)

// stmts executes a statement list, stopping at the first error or
// non-Normal signal.
func (in *Interp) stmts(list []syntax.Stmt) (Signal, error) {
	for _, s := range list {
		sig, err := in.stmt(s)
		if err != nil || sig != Normal {
			return sig, err
		}
	}
	return Normal, nil
}

func (in *Interp) block(b *syntax.Block) (Signal, error) {
	if b == nil {
		return Normal, nil
	}
	return in.stmts(b.Stmts)
}

// stmt executes a single statement.
func (in *Interp) stmt(s syntax.Stmt) (Signal, error) {
	switch s := s.(type) {
	case *syntax.AssignStmt:
		return Normal, in.assignStmt(s)

	case *syntax.ProcCallStmt:
		return Normal, in.procCall(s)

	case *syntax.MethodCallStmt:
		_, err := in.methodCall(s.Call, false)
		return Normal, err

	case *syntax.IfStmt:
		return in.ifStmt(s)

	case *syntax.ForStmt:
		return in.forStmt(s)

	case *syntax.ForeachStmt:
		return in.foreachStmt(s)

	case *syntax.WhileStmt:
		return in.whileStmt(s)

	case *syntax.RepeatStmt:
		return in.repeatStmt(s)

	case *syntax.CaseStmt:
		return in.caseStmt(s)

	case *syntax.BranchStmt:
		in.branchPos = s.Pos()
		if s.Tok == syntax.Break {
			return Break, nil
		}
		return Continue, nil

	case *syntax.ReturnStmt:
		return in.returnStmt(s)

	case *syntax.ObjDestroyStmt:
		return Normal, in.objDestroy(s)

	case *syntax.CompileOptStmt:
		return Normal, nil
	}
	return Normal, errorf(s.Pos(), Runtime, "unexpected statement %T", s)
}

var compoundOps = map[syntax.Token]value.Op{
	syntax.AddAssign: value.OpAdd,
	syntax.SubAssign: value.OpSub,
	syntax.MulAssign: value.OpMul,
	syntax.DivAssign: value.OpDiv,
}

func (in *Interp) assignStmt(s *syntax.AssignStmt) error {
	rhs, err := in.expr(s.RHS)
	if err != nil {
		return err
	}
	if op, ok := compoundOps[s.Op]; ok {
		cur, err := in.expr(s.LHS)
		if err != nil {
			return err
		}
		if rhs, err = value.Binary(op, cur, rhs); err != nil {
			return wrap(s.Pos(), err)
		}
	}
	return in.store(s.LHS, rhs)
}

// cond evaluates a condition to a Go bool.
func (in *Interp) cond(x syntax.Expr) (bool, error) {
	v, err := in.expr(x)
	if err != nil {
		return false, err
	}
	t, err := value.Truthy(v)
	if err != nil {
		return false, wrap(x.Pos(), err)
	}
	return t, nil
}

func (in *Interp) ifStmt(s *syntax.IfStmt) (Signal, error) {
	ok, err := in.cond(s.Cond)
	if err != nil {
		return Normal, err
	}
	if ok {
		return in.block(s.Then)
	}
	return in.block(s.Else)
}

// loopBody runs one iteration and reports whether the loop must stop.
// BREAK and CONTINUE are consumed here; RETURN passes through.
func (in *Interp) loopBody(b *syntax.Block) (stop bool, sig Signal, err error) {
	sig, err = in.block(b)
	switch {
	case err != nil:
		return true, Normal, err
	case sig == Break:
		return true, Normal, nil
	case sig == Return:
		return true, Return, nil
	}
	return false, Normal, nil
}

// forStmt runs FOR v = start, limit, step. The bounds are evaluated once;
// iteration k binds v to start + k*step in the kind of start and step.
func (in *Interp) forStmt(s *syntax.ForStmt) (Signal, error) {
	start, err := in.scalarExpr(s.Start)
	if err != nil {
		return Normal, err
	}
	limit, err := in.scalarExpr(s.Limit)
	if err != nil {
		return Normal, err
	}
	var step value.Value = value.Long(1)
	if s.Step != nil {
		if step, err = in.scalarExpr(s.Step); err != nil {
			return Normal, err
		}
	}
	kind := value.Promote(start.Kind(), step.Kind())
	if !kind.IsInteger() && !kind.IsFloat() {
		return Normal, errorf(s.Start.Pos(), TypeMismatch, "FOR bounds must be real numbers, got %s", kind)
	}
	lim, _ := value.AsFloat(limit)
	fr := in.ctx.Frame()

	if kind.IsInteger() {
		lo, _ := value.AsInt(start)
		inc, _ := value.AsInt(step)
		if inc == 0 {
			return Normal, errorf(s.Step.Pos(), Runtime, "FOR step must not be zero")
		}
		for k := int64(0); ; k++ {
			i := lo + k*inc
			v, _ := value.Convert(value.Long64(i), kind)
			fr.Set(s.Var.Key, v)
			if (inc > 0 && float64(i) > lim) || (inc < 0 && float64(i) < lim) {
				return Normal, nil
			}
			if stop, sig, err := in.loopBody(s.Body); stop {
				return sig, err
			}
		}
	}

	lo, _ := value.AsFloat(start)
	inc, _ := value.AsFloat(step)
	if inc == 0 {
		pos := s.Start.Pos()
		if s.Step != nil {
			pos = s.Step.Pos()
		}
		return Normal, errorf(pos, Runtime, "FOR step must not be zero")
	}
	for k := 0; ; k++ {
		x := lo + float64(k)*inc
		v, _ := value.Convert(value.Double(x), kind)
		fr.Set(s.Var.Key, v)
		if (inc > 0 && x > lim) || (inc < 0 && x < lim) {
			return Normal, nil
		}
		if stop, sig, err := in.loopBody(s.Body); stop {
			return sig, err
		}
	}
}

// scalarExpr evaluates x and requires a single numeric value.
func (in *Interp) scalarExpr(x syntax.Expr) (value.Value, error) {
	v, err := in.expr(x)
	if err != nil {
		return nil, err
	}
	v = value.Scalar(v)
	if !v.Kind().IsNumeric() {
		return nil, errorf(x.Pos(), TypeMismatch, "expected a scalar number, got %s", value.Describe(v))
	}
	return v, nil
}

// foreachStmt iterates over the elements of an array, or once over a
// scalar. !NULL iterates zero times.
func (in *Interp) foreachStmt(s *syntax.ForeachStmt) (Signal, error) {
	x, err := in.expr(s.X)
	if err != nil {
		return Normal, err
	}
	elems := value.Elements(x)
	fr := in.ctx.Frame()
	for i, e := range elems {
		fr.Set(s.Var.Key, e)
		if s.Index != nil {
			fr.Set(s.Index.Key, value.Long(i))
		}
		if stop, sig, err := in.loopBody(s.Body); stop {
			return sig, err
		}
	}
	return Normal, nil
}

func (in *Interp) whileStmt(s *syntax.WhileStmt) (Signal, error) {
	for {
		ok, err := in.cond(s.Cond)
		if err != nil || !ok {
			return Normal, err
		}
		if stop, sig, err := in.loopBody(s.Body); stop {
			return sig, err
		}
	}
}

func (in *Interp) repeatStmt(s *syntax.RepeatStmt) (Signal, error) {
	for {
		if stop, sig, err := in.loopBody(s.Body); stop {
			return sig, err
		}
		ok, err := in.cond(s.Cond)
		if err != nil || ok {
			return Normal, err
		}
	}
}

// caseStmt runs CASE or SWITCH. CASE runs the first matching clause only
// and fails when nothing matches and there is no ELSE. SWITCH runs from the
// first match to the end, falling through. BREAK leaves either construct.
func (in *Interp) caseStmt(s *syntax.CaseStmt) (Signal, error) {
	x, err := in.expr(s.X)
	if err != nil {
		return Normal, err
	}
	start := -1
	for i, c := range s.Clauses {
		ok, err := in.matches(x, c)
		if err != nil {
			return Normal, err
		}
		if ok {
			start = i
			break
		}
	}

	var run []*syntax.CaseClause
	switch {
	case start >= 0 && s.Switch:
		run = s.Clauses[start:]
		if s.Else != nil {
			run = append(run[:len(run):len(run)], s.Else)
		}
	case start >= 0:
		run = s.Clauses[start : start+1]
	case s.Else != nil:
		run = []*syntax.CaseClause{s.Else}
	case !s.Switch:
		return Normal, errorf(s.Pos(), Runtime, "CASE statement found no match for %s", x)
	}

	for _, c := range run {
		sig, err := in.block(c.Body)
		if err != nil {
			return Normal, err
		}
		switch sig {
		case Break:
			return Normal, nil
		case Continue, Return:
			return sig, nil
		}
	}
	return Normal, nil
}

func (in *Interp) matches(x value.Value, c *syntax.CaseClause) (bool, error) {
	for _, e := range c.Values {
		v, err := in.expr(e)
		if err != nil {
			return false, err
		}
		eq, err := value.Binary(value.OpEq, x, v)
		if err != nil {
			return false, wrap(e.Pos(), err)
		}
		ok, err := value.Truthy(eq)
		if err != nil {
			return false, wrap(e.Pos(), err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (in *Interp) returnStmt(s *syntax.ReturnStmt) (Signal, error) {
	fr := in.ctx.Frame()
	fr.result = value.Null
	if s.Result != nil {
		v, err := in.expr(s.Result)
		if err != nil {
			return Normal, err
		}
		fr.result = v
	}
	return Return, nil
}
