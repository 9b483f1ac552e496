package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Expressions, Statements, and Declarations.
// Declarations (routine and class definitions) appear only at the top level
// of a unit; everything else in a unit is a main-level statement.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Files and Declarations

// File is one parsed unit of source text.
type File struct {
	node
	Decls []Decl // PRO/FUNCTION and class definitions, in source order
	Stmts []Stmt // main-level statements
}

// FuncDecl is a PRO or FUNCTION definition. Methods carry the class name
// from a Class::Method header.
//
//	PRO name, p1, p2, KW=local
//	FUNCTION Class::Method, p1
type FuncDecl struct {
	decl
	IsFunc   bool
	Class    *Name // nil for plain routines
	Name     *Name
	Params   []*Name
	Keywords []*KeywordParam
	Body     *Block
}

// KeywordParam declares keyword Name bound to the local variable Local.
type KeywordParam struct {
	node
	Name  *Name
	Local *Name
}

// ClassDecl is a class definition written as PRO Name__define.
type ClassDecl struct {
	decl
	Name     *Name
	Fields   []*FieldInit
	Inherits []*Name
}

// FieldInit is a field or structure tag with its default value.
type FieldInit struct {
	node
	Name  *Name
	Value Expr
}

// ----------------------------------------------------------------------------
// Expressions

// Name is an identifier. Key is its case-folded form.
type Name struct {
	expr
	Value string
	Key   string
}

// BasicLit is a number or string literal.
type BasicLit struct {
	expr
	Value string // verbatim number text, or string contents
	Kind  LitKind
}

// SysVar is a system variable reference: !PI.
type SysVar struct {
	expr
	Value string // spelling including '!'
	Key   string // canonical name without '!'
}

// Operation is a unary (Y == nil) or binary operation.
type Operation struct {
	expr
	Op Token
	X  Expr
	Y  Expr
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	expr
	X Expr
}

// TernaryExpr is cond ? x : y.
type TernaryExpr struct {
	expr
	Cond Expr
	X    Expr
	Y    Expr
}

// ArrayLit is [e1, e2, ...].
type ArrayLit struct {
	expr
	Elems []Expr
}

// StructLit is {Name, tag: expr, ..., INHERITS Parent}. Name is nil for
// anonymous structures.
type StructLit struct {
	expr
	Name     *Name
	Fields   []*FieldInit
	Inherits []*Name
}

// SubKind classifies a subscript.
type SubKind uint8

const (
	SubScalar SubKind = iota // x (scalar or index array)
	SubRange                 // lo:hi[:step]
	SubAll                   // *
)

// Subscript is one comma-separated element of an index list.
// For ranges, a nil Lo means 0 and a nil Hi (or HiAll) means the last
// element of the dimension.
type Subscript struct {
	node
	Kind  SubKind
	X     Expr // SubScalar
	Lo    Expr
	Hi    Expr
	HiAll bool // lo:*
	Step  Expr
}

// IndexExpr is x[subs]. Paren is set for the old-style x(subs) form,
// produced by the interpreter when a call turns out to name a variable.
type IndexExpr struct {
	expr
	X     Expr
	Subs  []*Subscript
	Paren bool
}

// ParenIndex reinterprets the call name(a, b) as the index name(a, b)
// on a variable. Keyword arguments are dropped.
func ParenIndex(c *CallExpr) *IndexExpr {
	ix := &IndexExpr{X: c.Name, Paren: true}
	ix.pos = c.pos
	for _, a := range c.Args {
		s := &Subscript{Kind: SubScalar, X: a}
		s.pos = a.Pos()
		ix.Subs = append(ix.Subs, s)
	}
	return ix
}

// KeywordArg is NAME=value, or /NAME when Value is nil.
type KeywordArg struct {
	node
	Name  *Name
	Value Expr
}

// IsFlag reports whether k was written as /NAME.
func (k *KeywordArg) IsFlag() bool { return k.Value == nil }

// CallExpr is a function call name(args).
type CallExpr struct {
	expr
	Name     *Name
	Args     []Expr
	Keywords []*KeywordArg
}

// ObjNewExpr is OBJ_NEW(class, args). Class is nil for OBJ_NEW().
type ObjNewExpr struct {
	expr
	Class    Expr
	Args     []Expr
	Keywords []*KeywordArg
}

// MethodExpr is x->Method(args) or x->Class::Method(args). Paren is false
// for the procedure form x->Method, args.
type MethodExpr struct {
	expr
	X        Expr
	Class    *Name
	Method   *Name
	Args     []Expr
	Keywords []*KeywordArg
	Paren    bool
}

// FieldExpr is x.field.
type FieldExpr struct {
	expr
	X     Expr
	Field *Name
}

// DerefExpr is *p.
type DerefExpr struct {
	expr
	X Expr
}

// ----------------------------------------------------------------------------
// Statements

// ClosedBy records which terminator closed a block.
type ClosedBy uint8

const (
	ClosedNone     ClosedBy = iota // single statement, no terminator
	ClosedGeneric                  // END
	ClosedSpecific                 // ENDIF, ENDFOR, ...
)

var closedByNames = [...]string{
	ClosedNone:     "none",
	ClosedGeneric:  "generic",
	ClosedSpecific: "specific",
}

func (c ClosedBy) String() string {
	if int(c) < len(closedByNames) {
		return closedByNames[c]
	}
	return "closedBy(?)"
}

// Block is the body of a compound statement.
type Block struct {
	node
	Stmts []Stmt
	Begin bool // opened with BEGIN
	Close ClosedBy
	End   Token // terminator token when Close != ClosedNone
}

// AssignStmt is lhs = rhs or lhs op= rhs.
type AssignStmt struct {
	stmt
	Op  Token // Assign, AddAssign, ...
	LHS Expr
	RHS Expr
}

// ProcCallStmt is NAME, args.
type ProcCallStmt struct {
	stmt
	Name     *Name
	Args     []Expr
	Keywords []*KeywordArg
}

// MethodCallStmt is obj->Method, args (or obj->Method(args), result discarded).
type MethodCallStmt struct {
	stmt
	Call *MethodExpr
}

// IfStmt is IF cond THEN then [ELSE else].
type IfStmt struct {
	stmt
	Cond Expr
	Then *Block
	Else *Block
}

// ForStmt is FOR v = start, limit [, step] DO body.
type ForStmt struct {
	stmt
	Var   *Name
	Start Expr
	Limit Expr
	Step  Expr
	Body  *Block
}

// ForeachStmt is FOREACH v, x [, index] DO body.
type ForeachStmt struct {
	stmt
	Var   *Name
	X     Expr
	Index *Name
	Body  *Block
}

// WhileStmt is WHILE cond DO body.
type WhileStmt struct {
	stmt
	Cond Expr
	Body *Block
}

// RepeatStmt is REPEAT body UNTIL cond.
type RepeatStmt struct {
	stmt
	Body *Block
	Cond Expr
}

// CaseStmt is CASE x OF ... ENDCASE, or SWITCH x OF ... ENDSWITCH when
// Switch is set.
type CaseStmt struct {
	stmt
	Switch  bool
	X       Expr
	Clauses []*CaseClause
	Else    *CaseClause
}

// CaseClause is values: body. Values is nil for the ELSE clause.
type CaseClause struct {
	node
	Values []Expr
	Body   *Block
}

// BranchStmt is BREAK or CONTINUE.
type BranchStmt struct {
	stmt
	Tok Token
}

// ReturnStmt is RETURN [, value].
type ReturnStmt struct {
	stmt
	Result Expr
}

// ObjDestroyStmt is OBJ_DESTROY, objs.
type ObjDestroyStmt struct {
	stmt
	Args     []Expr
	Keywords []*KeywordArg
}

// CompileOptStmt is COMPILE_OPT opts. It has no effect.
type CompileOptStmt struct {
	stmt
	Opts []*Name
}
