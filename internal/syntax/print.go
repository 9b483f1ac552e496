package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w. Statements are
// printed as an indented tree; expressions are printed inline in source
// form.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) block(label string, b *Block) {
	if b == nil {
		return
	}
	desc := b.Close.String()
	if b.Close != ClosedNone {
		desc += " " + b.End.String()
	}
	if b.Begin {
		desc = "BEGIN, " + desc
	}
	p.printf("%s (%s)\n", label, desc)
	p.indent++
	for _, s := range b.Stmts {
		p.print(s)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		for _, d := range n.Decls {
			p.print(d)
		}
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *FuncDecl:
		kind := "PRO"
		if n.IsFunc {
			kind = "FUNCTION"
		}
		name := n.Name.Value
		if n.Class != nil {
			name = n.Class.Value + "::" + name
		}
		var params []string
		for _, pr := range n.Params {
			params = append(params, pr.Value)
		}
		for _, k := range n.Keywords {
			params = append(params, k.Name.Value+"="+k.Local.Value)
		}
		p.printf("%s %s(%s) %s\n", kind, name, strings.Join(params, ", "), n.pos)
		p.indent++
		p.block("Body", n.Body)
		p.indent--

	case *ClassDecl:
		p.printf("Class %s %s\n", n.Name.Value, n.pos)
		p.indent++
		for _, in := range n.Inherits {
			p.printf("Inherits %s\n", in.Value)
		}
		for _, f := range n.Fields {
			p.printf("Field %s = %s\n", f.Name.Value, ExprString(f.Value))
		}
		p.indent--

	case *Block:
		p.block("Block", n)

	case *AssignStmt:
		p.printf("Assign %s %s %s\n", ExprString(n.LHS), n.Op, ExprString(n.RHS))

	case *ProcCallStmt:
		p.printf("ProcCall %s\n", callString(n.Name.Value, ", ", "", n.Args, n.Keywords))

	case *MethodCallStmt:
		p.printf("MethodCall %s\n", ExprString(n.Call))

	case *ObjDestroyStmt:
		p.printf("ObjDestroy %s\n", callString("", "", "", n.Args, n.Keywords))

	case *IfStmt:
		p.printf("If %s\n", ExprString(n.Cond))
		p.indent++
		p.block("Then", n.Then)
		p.block("Else", n.Else)
		p.indent--

	case *ForStmt:
		step := ""
		if n.Step != nil {
			step = ", " + ExprString(n.Step)
		}
		p.printf("For %s = %s, %s%s\n", n.Var.Value, ExprString(n.Start), ExprString(n.Limit), step)
		p.indent++
		p.block("Body", n.Body)
		p.indent--

	case *ForeachStmt:
		idx := ""
		if n.Index != nil {
			idx = ", " + n.Index.Value
		}
		p.printf("Foreach %s, %s%s\n", n.Var.Value, ExprString(n.X), idx)
		p.indent++
		p.block("Body", n.Body)
		p.indent--

	case *WhileStmt:
		p.printf("While %s\n", ExprString(n.Cond))
		p.indent++
		p.block("Body", n.Body)
		p.indent--

	case *RepeatStmt:
		p.printf("Repeat\n")
		p.indent++
		p.block("Body", n.Body)
		p.printf("Until %s\n", ExprString(n.Cond))
		p.indent--

	case *CaseStmt:
		kind := "Case"
		if n.Switch {
			kind = "Switch"
		}
		p.printf("%s %s\n", kind, ExprString(n.X))
		p.indent++
		for _, c := range n.Clauses {
			p.block(exprsString(c.Values)+":", c.Body)
		}
		if n.Else != nil {
			p.block("ELSE:", n.Else.Body)
		}
		p.indent--

	case *BranchStmt:
		p.printf("%s\n", n.Tok)

	case *ReturnStmt:
		if n.Result != nil {
			p.printf("Return %s\n", ExprString(n.Result))
		} else {
			p.printf("Return\n")
		}

	case *CompileOptStmt:
		var opts []string
		for _, o := range n.Opts {
			opts = append(opts, o.Value)
		}
		p.printf("CompileOpt %s\n", strings.Join(opts, ", "))

	case Expr:
		p.printf("%s\n", ExprString(n))

	default:
		p.printf("<%T>\n", node)
	}
}

// ExprString returns the source form of an expression, fully
// parenthesizing operations so grouping is visible.
func ExprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch x := e.(type) {
	case *Name:
		return x.Value
	case *BasicLit:
		if x.Kind == StringLit {
			return "'" + strings.ReplaceAll(x.Value, "'", "''") + "'"
		}
		return x.Value
	case *SysVar:
		return x.Value
	case *Operation:
		if x.Y == nil {
			op := x.Op.String()
			if x.Op == _Not {
				op += " "
			}
			return "(" + op + ExprString(x.X) + ")"
		}
		return "(" + ExprString(x.X) + " " + x.Op.String() + " " + ExprString(x.Y) + ")"
	case *ParenExpr:
		return ExprString(x.X)
	case *TernaryExpr:
		return "(" + ExprString(x.Cond) + " ? " + ExprString(x.X) + " : " + ExprString(x.Y) + ")"
	case *ArrayLit:
		return "[" + exprsString(x.Elems) + "]"
	case *StructLit:
		var parts []string
		if x.Name != nil {
			parts = append(parts, x.Name.Value)
		}
		for _, f := range x.Fields {
			parts = append(parts, f.Name.Value+": "+ExprString(f.Value))
		}
		for _, in := range x.Inherits {
			parts = append(parts, "INHERITS "+in.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *IndexExpr:
		subs := make([]string, len(x.Subs))
		for i, s := range x.Subs {
			subs[i] = subscriptString(s)
		}
		return ExprString(x.X) + "[" + strings.Join(subs, ", ") + "]"
	case *CallExpr:
		return callString(x.Name.Value, "(", ")", x.Args, x.Keywords)
	case *ObjNewExpr:
		args := x.Args
		if x.Class != nil {
			args = append([]Expr{x.Class}, args...)
		}
		return callString("OBJ_NEW", "(", ")", args, x.Keywords)
	case *MethodExpr:
		name := x.Method.Value
		if x.Class != nil {
			name = x.Class.Value + "::" + name
		}
		if x.Paren {
			return ExprString(x.X) + "->" + callString(name, "(", ")", x.Args, x.Keywords)
		}
		return ExprString(x.X) + "->" + callString(name, ", ", "", x.Args, x.Keywords)
	case *FieldExpr:
		return ExprString(x.X) + "." + x.Field.Value
	case *DerefExpr:
		return "*" + ExprString(x.X)
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func exprsString(list []Expr) string {
	parts := make([]string, len(list))
	for i, x := range list {
		parts[i] = ExprString(x)
	}
	return strings.Join(parts, ", ")
}

func subscriptString(s *Subscript) string {
	switch s.Kind {
	case SubAll:
		return "*"
	case SubScalar:
		return ExprString(s.X)
	}
	var b strings.Builder
	if s.Lo != nil {
		b.WriteString(ExprString(s.Lo))
	}
	b.WriteByte(':')
	switch {
	case s.HiAll:
		b.WriteByte('*')
	case s.Hi != nil:
		b.WriteString(ExprString(s.Hi))
	}
	if s.Step != nil {
		b.WriteByte(':')
		b.WriteString(ExprString(s.Step))
	}
	return b.String()
}

// callString formats name, args and keywords. open separates the name from
// the argument list; it is dropped when there are no arguments and close is
// empty.
func callString(name, open, close string, args []Expr, kws []*KeywordArg) string {
	parts := make([]string, 0, len(args)+len(kws))
	for _, a := range args {
		parts = append(parts, ExprString(a))
	}
	for _, k := range kws {
		if k.IsFlag() {
			parts = append(parts, "/"+k.Name.Value)
		} else {
			parts = append(parts, k.Name.Value+"="+ExprString(k.Value))
		}
	}
	if len(parts) == 0 && close == "" {
		return name
	}
	return name + open + strings.Join(parts, ", ") + close
}
