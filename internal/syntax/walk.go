package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if isNil(node) || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, d := range n.Decls {
			Walk(d, v)
		}
		walkStmts(n.Stmts, v)

	case *FuncDecl:
		if n.Class != nil {
			Walk(n.Class, v)
		}
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		for _, k := range n.Keywords {
			Walk(k, v)
		}
		Walk(n.Body, v)

	case *KeywordParam:
		Walk(n.Name, v)
		Walk(n.Local, v)

	case *ClassDecl:
		Walk(n.Name, v)
		for _, f := range n.Fields {
			Walk(f, v)
		}
		for _, in := range n.Inherits {
			Walk(in, v)
		}

	case *FieldInit:
		Walk(n.Name, v)
		Walk(n.Value, v)

	// Expressions
	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *ParenExpr:
		Walk(n.X, v)

	case *TernaryExpr:
		Walk(n.Cond, v)
		Walk(n.X, v)
		Walk(n.Y, v)

	case *ArrayLit:
		walkExprs(n.Elems, v)

	case *StructLit:
		if n.Name != nil {
			Walk(n.Name, v)
		}
		for _, f := range n.Fields {
			Walk(f, v)
		}
		for _, in := range n.Inherits {
			Walk(in, v)
		}

	case *IndexExpr:
		Walk(n.X, v)
		for _, s := range n.Subs {
			Walk(s, v)
		}

	case *Subscript:
		for _, x := range []Expr{n.X, n.Lo, n.Hi, n.Step} {
			if x != nil {
				Walk(x, v)
			}
		}

	case *KeywordArg:
		Walk(n.Name, v)
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *CallExpr:
		Walk(n.Name, v)
		walkArgs(n.Args, n.Keywords, v)

	case *ObjNewExpr:
		if n.Class != nil {
			Walk(n.Class, v)
		}
		walkArgs(n.Args, n.Keywords, v)

	case *MethodExpr:
		Walk(n.X, v)
		if n.Class != nil {
			Walk(n.Class, v)
		}
		Walk(n.Method, v)
		walkArgs(n.Args, n.Keywords, v)

	case *FieldExpr:
		Walk(n.X, v)
		Walk(n.Field, v)

	case *DerefExpr:
		Walk(n.X, v)

	// Statements
	case *Block:
		walkStmts(n.Stmts, v)

	case *AssignStmt:
		Walk(n.LHS, v)
		Walk(n.RHS, v)

	case *ProcCallStmt:
		Walk(n.Name, v)
		walkArgs(n.Args, n.Keywords, v)

	case *MethodCallStmt:
		Walk(n.Call, v)

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *ForStmt:
		Walk(n.Var, v)
		Walk(n.Start, v)
		Walk(n.Limit, v)
		if n.Step != nil {
			Walk(n.Step, v)
		}
		Walk(n.Body, v)

	case *ForeachStmt:
		Walk(n.Var, v)
		Walk(n.X, v)
		if n.Index != nil {
			Walk(n.Index, v)
		}
		Walk(n.Body, v)

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *RepeatStmt:
		Walk(n.Body, v)
		Walk(n.Cond, v)

	case *CaseStmt:
		Walk(n.X, v)
		for _, c := range n.Clauses {
			Walk(c, v)
		}
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *CaseClause:
		walkExprs(n.Values, v)
		Walk(n.Body, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *ObjDestroyStmt:
		walkArgs(n.Args, n.Keywords, v)

	case *CompileOptStmt:
		for _, o := range n.Opts {
			Walk(o, v)
		}

	// Leaf nodes: Name, BasicLit, SysVar, BranchStmt
	}
}

func walkStmts(list []Stmt, v Visitor) {
	for _, s := range list {
		Walk(s, v)
	}
}

func walkExprs(list []Expr, v Visitor) {
	for _, x := range list {
		Walk(x, v)
	}
}

func walkArgs(args []Expr, kws []*KeywordArg, v Visitor) {
	walkExprs(args, v)
	for _, k := range kws {
		Walk(k, v)
	}
}

// isNil catches typed nil pointers stored in a Node.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Block:
		return n == nil
	case *Name:
		return n == nil
	}
	return false
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// Count returns the number of nodes reachable from node.
func Count(node Node) int {
	n := 0
	Inspect(node, func(Node) bool {
		n++
		return true
	})
	return n
}
