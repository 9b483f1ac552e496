package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

type obj = map[string]interface{}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return obj{
			"type":  "File",
			"pos":   n.pos.String(),
			"decls": mapSlice(n.Decls, func(d Decl) interface{} { return toJSON(d) }),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *FuncDecl:
		m := obj{
			"type":     "FuncDecl",
			"pos":      n.pos.String(),
			"function": n.IsFunc,
			"name":     n.Name.Value,
			"params":   mapSlice(n.Params, func(p *Name) interface{} { return p.Value }),
			"keywords": mapSlice(n.Keywords, func(k *KeywordParam) interface{} {
				return obj{"name": k.Name.Value, "local": k.Local.Value}
			}),
			"body": toJSON(n.Body),
		}
		if n.Class != nil {
			m["class"] = n.Class.Value
		}
		return m

	case *ClassDecl:
		return obj{
			"type":     "ClassDecl",
			"pos":      n.pos.String(),
			"name":     n.Name.Value,
			"fields":   mapSlice(n.Fields, fieldJSON),
			"inherits": mapSlice(n.Inherits, func(p *Name) interface{} { return p.Value }),
		}

	case *Block:
		m := obj{
			"type":     "Block",
			"begin":    n.Begin,
			"closedBy": n.Close.String(),
			"stmts":    mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}
		if n.Close != ClosedNone {
			m["end"] = n.End.String()
		}
		return m

	// Statements
	case *AssignStmt:
		return obj{"type": "AssignStmt", "pos": n.pos.String(), "op": n.Op.String(),
			"lhs": toJSON(n.LHS), "rhs": toJSON(n.RHS)}

	case *ProcCallStmt:
		m := argsJSON(n.Args, n.Keywords)
		m["type"], m["pos"], m["name"] = "ProcCallStmt", n.pos.String(), n.Name.Value
		return m

	case *MethodCallStmt:
		return obj{"type": "MethodCallStmt", "pos": n.pos.String(), "call": toJSON(n.Call)}

	case *ObjDestroyStmt:
		m := argsJSON(n.Args, n.Keywords)
		m["type"], m["pos"] = "ObjDestroyStmt", n.pos.String()
		return m

	case *IfStmt:
		return obj{"type": "IfStmt", "pos": n.pos.String(), "cond": toJSON(n.Cond),
			"then": toJSON(n.Then), "else": toJSON(n.Else)}

	case *ForStmt:
		return obj{"type": "ForStmt", "pos": n.pos.String(), "var": n.Var.Value,
			"start": toJSON(n.Start), "limit": toJSON(n.Limit), "step": toJSON(n.Step),
			"body": toJSON(n.Body)}

	case *ForeachStmt:
		m := obj{"type": "ForeachStmt", "pos": n.pos.String(), "var": n.Var.Value,
			"x": toJSON(n.X), "body": toJSON(n.Body)}
		if n.Index != nil {
			m["index"] = n.Index.Value
		}
		return m

	case *WhileStmt:
		return obj{"type": "WhileStmt", "pos": n.pos.String(), "cond": toJSON(n.Cond),
			"body": toJSON(n.Body)}

	case *RepeatStmt:
		return obj{"type": "RepeatStmt", "pos": n.pos.String(), "body": toJSON(n.Body),
			"until": toJSON(n.Cond)}

	case *CaseStmt:
		m := obj{"type": "CaseStmt", "pos": n.pos.String(), "switch": n.Switch,
			"x": toJSON(n.X), "clauses": mapSlice(n.Clauses, func(c *CaseClause) interface{} { return toJSON(c) })}
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *CaseClause:
		return obj{"values": mapSlice(n.Values, func(x Expr) interface{} { return toJSON(x) }),
			"body": toJSON(n.Body)}

	case *BranchStmt:
		return obj{"type": "BranchStmt", "pos": n.pos.String(), "tok": n.Tok.String()}

	case *ReturnStmt:
		return obj{"type": "ReturnStmt", "pos": n.pos.String(), "result": toJSON(n.Result)}

	case *CompileOptStmt:
		return obj{"type": "CompileOptStmt", "pos": n.pos.String(),
			"opts": mapSlice(n.Opts, func(o *Name) interface{} { return o.Value })}

	// Expressions
	case *Name:
		return obj{"type": "Name", "pos": n.pos.String(), "value": n.Value}

	case *BasicLit:
		return obj{"type": "BasicLit", "pos": n.pos.String(), "kind": n.Kind.String(), "value": n.Value}

	case *SysVar:
		return obj{"type": "SysVar", "pos": n.pos.String(), "value": n.Value}

	case *Operation:
		m := obj{"type": "Operation", "pos": n.pos.String(), "op": n.Op.String(), "x": toJSON(n.X)}
		if n.Y != nil {
			m["y"] = toJSON(n.Y)
		}
		return m

	case *ParenExpr:
		return obj{"type": "ParenExpr", "pos": n.pos.String(), "x": toJSON(n.X)}

	case *TernaryExpr:
		return obj{"type": "TernaryExpr", "pos": n.pos.String(), "cond": toJSON(n.Cond),
			"x": toJSON(n.X), "y": toJSON(n.Y)}

	case *ArrayLit:
		return obj{"type": "ArrayLit", "pos": n.pos.String(),
			"elems": mapSlice(n.Elems, func(x Expr) interface{} { return toJSON(x) })}

	case *StructLit:
		m := obj{"type": "StructLit", "pos": n.pos.String(), "fields": mapSlice(n.Fields, fieldJSON),
			"inherits": mapSlice(n.Inherits, func(p *Name) interface{} { return p.Value })}
		if n.Name != nil {
			m["name"] = n.Name.Value
		}
		return m

	case *IndexExpr:
		return obj{"type": "IndexExpr", "pos": n.pos.String(), "x": toJSON(n.X),
			"subs": mapSlice(n.Subs, subscriptJSON)}

	case *CallExpr:
		m := argsJSON(n.Args, n.Keywords)
		m["type"], m["pos"], m["name"] = "CallExpr", n.pos.String(), n.Name.Value
		return m

	case *ObjNewExpr:
		m := argsJSON(n.Args, n.Keywords)
		m["type"], m["pos"], m["class"] = "ObjNewExpr", n.pos.String(), toJSON(n.Class)
		return m

	case *MethodExpr:
		m := argsJSON(n.Args, n.Keywords)
		m["type"], m["pos"], m["x"], m["method"] = "MethodExpr", n.pos.String(), toJSON(n.X), n.Method.Value
		m["paren"] = n.Paren
		if n.Class != nil {
			m["class"] = n.Class.Value
		}
		return m

	case *FieldExpr:
		return obj{"type": "FieldExpr", "pos": n.pos.String(), "x": toJSON(n.X), "field": n.Field.Value}

	case *DerefExpr:
		return obj{"type": "DerefExpr", "pos": n.pos.String(), "x": toJSON(n.X)}

	default:
		return obj{"type": "Unknown"}
	}
}

func fieldJSON(f *FieldInit) interface{} {
	return obj{"name": f.Name.Value, "value": toJSON(f.Value)}
}

var subKindNames = [...]string{SubScalar: "scalar", SubRange: "range", SubAll: "all"}

func subscriptJSON(s *Subscript) interface{} {
	m := obj{"kind": subKindNames[s.Kind]}
	if s.X != nil {
		m["x"] = toJSON(s.X)
	}
	if s.Lo != nil {
		m["lo"] = toJSON(s.Lo)
	}
	if s.Hi != nil {
		m["hi"] = toJSON(s.Hi)
	}
	if s.HiAll {
		m["hiAll"] = true
	}
	if s.Step != nil {
		m["step"] = toJSON(s.Step)
	}
	return m
}

func argsJSON(args []Expr, kws []*KeywordArg) obj {
	return obj{
		"args": mapSlice(args, func(x Expr) interface{} { return toJSON(x) }),
		"keywords": mapSlice(kws, func(k *KeywordArg) interface{} {
			if k.IsFlag() {
				return obj{"name": k.Name.Value, "flag": true}
			}
			return obj{"name": k.Name.Value, "value": toJSON(k.Value)}
		}),
	}
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
