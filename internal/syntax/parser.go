package syntax

import (
	"fmt"
	"slices"
	"strings"
)

// ParseError represents a grammar violation. Parsing stops at the first one.
type ParseError struct {
	Pos Pos
	Msg string

	// Incomplete is set when the error was hit at end of input, meaning
	// more text could still make the unit valid.
	Incomplete bool
}

func (e *ParseError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// IsIncomplete reports whether err is a ParseError raised at end of input.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Incomplete
}

// Parser performs syntax analysis over a token slice.
type Parser struct {
	items []Item
	idx   int

	// Current token info (cached from items)
	tok  Token
	lit  string
	kind LitKind
	pos  Pos

	err *ParseError
}

// bailout unwinds the parser on the first error.
type bailout struct{}

// Parse tokenizes and parses one unit of source text.
func Parse(filename string, src []byte) (*File, error) {
	items, err := Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	return NewParser(items).Parse()
}

// NewParser creates a Parser over items, which must end with EOF.
func NewParser(items []Item) *Parser {
	if len(items) == 0 || items[len(items)-1].Tok != _EOF {
		items = append(items, Item{Tok: _EOF})
	}
	p := &Parser{items: items, idx: -1}
	p.next()
	return p
}

// Parse parses the whole token stream into a File.
func (p *Parser) Parse() (f *File, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			f, err = nil, p.err
		}
	}()
	return p.file(), nil
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) next() {
	if p.idx < len(p.items)-1 {
		p.idx++
	}
	it := p.items[p.idx]
	p.tok, p.lit, p.kind, p.pos = it.Tok, it.Lit, it.Kind, it.Pos
}

// peek returns the token n positions ahead of the current one.
func (p *Parser) peek(n int) Token {
	i := p.idx + n
	if i >= len(p.items) {
		i = len(p.items) - 1
	}
	return p.items[i].Tok
}

func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError(fmt.Sprintf("expected %s, found %s", tok, p.found()))
	}
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	p.err = &ParseError{Pos: pos, Msg: msg, Incomplete: p.tok == _EOF}
	panic(bailout{})
}

// found describes the current token for error messages.
func (p *Parser) found() string {
	switch p.tok {
	case _Name:
		return "name " + p.lit
	case _Literal:
		if p.kind == StringLit {
			return fmt.Sprintf("string %q", p.lit)
		}
		return "number " + p.lit
	case _SysVar:
		return "system variable " + p.lit
	case _Newline:
		return "end of line"
	case _EOF:
		return "end of input"
	}
	return p.tok.String()
}

// ----------------------------------------------------------------------------
// Units

func (p *Parser) file() *File {
	f := &File{}
	f.pos = p.pos

	for {
		p.skipSeparators()
		switch p.tok {
		case _EOF:
			return f
		case _Pro, _Function:
			f.Decls = append(f.Decls, p.routine())
		case _End:
			// END of the main program; only blank lines may follow.
			p.next()
			p.skipSeparators()
			if p.tok != _EOF {
				p.syntaxError(fmt.Sprintf("unexpected %s after END of main program", p.found()))
			}
			return f
		default:
			f.Stmts = append(f.Stmts, p.stmt())
			p.stmtEnd()
		}
	}
}

func (p *Parser) skipSeparators() {
	for p.tok == _Newline || p.tok == _Amp {
		p.next()
	}
}

// atStmtEnd reports whether the current token ends a statement.
func (p *Parser) atStmtEnd() bool {
	return p.tok.IsSeparator() || p.tok.IsBlockEnd() || p.tok == _Else || p.tok == _Until
}

// stmtEnd consumes a statement separator. Block closers, ELSE and UNTIL
// also end a statement but are left for the enclosing construct.
func (p *Parser) stmtEnd() {
	switch {
	case p.tok == _Newline || p.tok == _Amp:
		p.next()
	case p.atStmtEnd():
	default:
		p.syntaxError(fmt.Sprintf("unexpected %s at end of statement", p.found()))
	}
}

// name parses an identifier.
func (p *Parser) name() *Name {
	if p.tok != _Name {
		p.syntaxError(fmt.Sprintf("expected name, found %s", p.found()))
	}
	n := &Name{Value: p.lit, Key: Canonical(p.lit)}
	n.pos = p.pos
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Routine and class definitions

const defineSuffix = "__DEFINE"

// routine parses a PRO or FUNCTION definition:
//
//	PRO name [, p1, ..., KW=local] <stmts> END|ENDPRO
//	FUNCTION [Class::]name [, params] <stmts> END|ENDFUNCTION
func (p *Parser) routine() Decl {
	pos := p.pos
	isFunc := p.tok == _Function
	p.next()

	d := &FuncDecl{IsFunc: isFunc}
	d.pos = pos
	d.Name = p.name()
	if p.got(_DColon) {
		d.Class = d.Name
		d.Name = p.name()
	}

	switch {
	case p.got(_Comma):
		p.paramList(d, _EOF)
	case isFunc && p.tok == _Lparen:
		p.next()
		if p.tok != _Rparen {
			p.paramList(d, _Rparen)
		}
		p.want(_Rparen)
	}
	if !p.tok.IsSeparator() {
		p.syntaxError(fmt.Sprintf("unexpected %s in routine header", p.found()))
	}

	closer := _EndPro
	if isFunc {
		closer = _EndFunction
	}
	body := &Block{}
	body.pos = p.pos
	body.Stmts = p.stmtList(_EOF)
	p.closeBlock(body, true, closer)

	d.Body = body
	if !isFunc && d.Class == nil && strings.HasSuffix(d.Name.Key, defineSuffix) && len(d.Name.Key) > len(defineSuffix) {
		return p.classDecl(d)
	}
	return d
}

func (p *Parser) paramList(d *FuncDecl, close Token) {
	for {
		if p.tok == close {
			p.syntaxError("expected parameter name")
		}
		n := p.name()
		if p.got(_Assign) {
			kp := &KeywordParam{Name: n, Local: p.name()}
			kp.pos = n.pos
			d.Keywords = append(d.Keywords, kp)
		} else {
			d.Params = append(d.Params, n)
		}
		if !p.got(_Comma) {
			return
		}
	}
}

// classDecl turns the body of PRO Name__define into a class definition.
// The body may assign fields directly (x = 0.0) or assign a named
// structure ({Name, x: 0.0, INHERITS Parent}).
func (p *Parser) classDecl(d *FuncDecl) *ClassDecl {
	raw := d.Name.Value[:len(d.Name.Value)-len(defineSuffix)]
	c := &ClassDecl{}
	c.pos = d.pos
	c.Name = &Name{Value: raw, Key: Canonical(raw)}
	c.Name.pos = d.Name.pos

	for _, s := range d.Body.Stmts {
		switch s := s.(type) {
		case *CompileOptStmt:
		case *AssignStmt:
			n, ok := s.LHS.(*Name)
			if !ok || s.Op != _Assign {
				p.syntaxErrorAt(s.Pos(), "class definition may only assign fields")
			}
			if st, ok := s.RHS.(*StructLit); ok {
				if st.Name != nil && st.Name.Key != c.Name.Key {
					p.syntaxErrorAt(st.Pos(), fmt.Sprintf("structure %s does not match class %s", st.Name.Value, raw))
				}
				c.Fields = append(c.Fields, st.Fields...)
				c.Inherits = append(c.Inherits, st.Inherits...)
				continue
			}
			f := &FieldInit{Name: n, Value: s.RHS}
			f.pos = n.pos
			c.Fields = append(c.Fields, f)
		default:
			p.syntaxErrorAt(s.Pos(), "class definition may only assign fields")
		}
	}
	return c
}

// ----------------------------------------------------------------------------
// Blocks

// stmtList parses statements up to a block closer, end of input, or stop.
func (p *Parser) stmtList(stop Token) []Stmt {
	var list []Stmt
	for {
		p.skipSeparators()
		if p.tok == _EOF || p.tok.IsBlockEnd() || p.tok == stop {
			return list
		}
		list = append(list, p.stmt())
		p.stmtEnd()
	}
}

// body parses the body following THEN, DO or ELSE. specific lists the
// construct's own terminators.
//
// BEGIN blocks close with END or a specific terminator. A body that starts
// on the next line needs a specific terminator; END is rejected there. A
// single statement on the same line needs no terminator, but a specific
// one directly after it is consumed.
func (p *Parser) body(specific ...Token) *Block {
	b := &Block{}
	b.pos = p.pos

	switch p.tok {
	case _Begin:
		b.Begin = true
		p.next()
		b.Stmts = p.stmtList(_EOF)
		p.closeBlock(b, true, specific...)
	case _Newline:
		b.Stmts = p.stmtList(_EOF)
		p.closeBlock(b, false, specific...)
	default:
		b.Stmts = []Stmt{p.stmt()}
		if slices.Contains(specific, p.tok) {
			b.Close = ClosedSpecific
			b.End = p.tok
			p.next()
		}
	}
	return b
}

// closeBlock consumes the terminator of b. allowEnd permits a generic END.
func (p *Parser) closeBlock(b *Block, allowEnd bool, specific ...Token) {
	switch {
	case p.tok == _End && allowEnd:
		b.Close = ClosedGeneric
	case slices.Contains(specific, p.tok):
		b.Close = ClosedSpecific
	case p.tok == _End:
		p.syntaxError(fmt.Sprintf("END closes only BEGIN blocks; expected %s", tokenList(specific)))
	default:
		want := tokenList(specific)
		if allowEnd {
			want = "END or " + want
		}
		p.syntaxError(fmt.Sprintf("unexpected %s, expected %s", p.found(), want))
	}
	b.End = p.tok
	p.next()
}

func tokenList(toks []Token) string {
	names := make([]string, len(toks))
	for i, t := range toks {
		names[i] = t.String()
	}
	return strings.Join(names, " or ")
}

// ----------------------------------------------------------------------------
// Statements

func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _If:
		return p.ifStmt()
	case _For:
		return p.forStmt()
	case _Foreach:
		return p.foreachStmt()
	case _While:
		return p.whileStmt()
	case _Repeat:
		return p.repeatStmt()
	case _Case, _Switch:
		return p.caseStmt()
	case _Break, _Continue:
		s := &BranchStmt{Tok: p.tok}
		s.pos = p.pos
		p.next()
		return s
	case _Return:
		return p.returnStmt()
	case _CompileOpt:
		return p.compileOpt()
	case _Pro, _Function:
		p.syntaxError("nested routine definitions are not supported")
	case _Name:
		if p.isProcCall() {
			return p.procCall()
		}
	}
	if p.atStmtEnd() || p.tok.IsKeyword() {
		p.syntaxError(fmt.Sprintf("unexpected %s, expected statement", p.found()))
	}
	return p.simpleStmt()
}

// isProcCall reports whether a name at statement start is a procedure call:
// the name followed by ',' or the end of the statement.
func (p *Parser) isProcCall() bool {
	switch t := p.peek(1); {
	case t == _Comma, t.IsSeparator(), t.IsBlockEnd(), t == _Else, t == _Until:
		return true
	}
	return false
}

// procCall parses NAME [, args]. OBJ_DESTROY gets its own node.
func (p *Parser) procCall() Stmt {
	pos := p.pos
	n := p.name()
	var args []Expr
	var kws []*KeywordArg
	if p.got(_Comma) {
		args, kws = p.argList(_EOF)
	}
	if n.Key == "OBJ_DESTROY" {
		s := &ObjDestroyStmt{Args: args, Keywords: kws}
		s.pos = pos
		return s
	}
	s := &ProcCallStmt{Name: n, Args: args, Keywords: kws}
	s.pos = pos
	return s
}

// simpleStmt parses an assignment or a method call statement.
func (p *Parser) simpleStmt() Stmt {
	pos := p.pos
	x := p.unaryExpr(true)

	switch p.tok {
	case _Assign, _AddAssign, _SubAssign, _MulAssign, _DivAssign:
		switch x.(type) {
		case *Name, *IndexExpr, *FieldExpr, *DerefExpr, *CallExpr, *SysVar:
		default:
			p.syntaxErrorAt(x.Pos(), "cannot assign to this expression")
		}
		s := &AssignStmt{Op: p.tok, LHS: x}
		s.pos = pos
		p.next()
		s.RHS = p.expr()
		return s
	}

	if m, ok := x.(*MethodExpr); ok {
		if !m.Paren && p.got(_Comma) {
			m.Args, m.Keywords = p.argList(_EOF)
		}
		s := &MethodCallStmt{Call: m}
		s.pos = pos
		return s
	}
	p.syntaxErrorAt(x.Pos(), "expression is not a statement")
	return nil
}

// ifStmt parses IF cond THEN body [ELSE body].
//
//	IF c THEN x = 1 ELSE x = 2
//	IF c THEN BEGIN ... END ELSE BEGIN ... END
//	IF c THEN BEGIN ... ENDIF ELSE BEGIN ... ENDELSE
//	IF c THEN
//	    ...
//	ELSE
//	    ...
//	ENDIF
func (p *Parser) ifStmt() Stmt {
	s := &IfStmt{}
	s.pos = p.pos
	p.want(_If)
	s.Cond = p.expr()
	p.want(_Then)

	if p.tok == _Newline {
		s.Then, s.Else = p.bareIf()
		return s
	}

	s.Then = p.body(_EndIf)
	if p.got(_Else) {
		s.Else = p.body(_EndElse, _EndIf)
	}
	return s
}

// bareIf parses the multi-line IF form closed by a single ENDIF (or
// ENDELSE after an ELSE part).
func (p *Parser) bareIf() (then, els *Block) {
	then = &Block{}
	then.pos = p.pos
	then.Stmts = p.stmtList(_Else)

	closers := []Token{_EndIf}
	if p.tok == _Else {
		p.next()
		els = &Block{}
		els.pos = p.pos
		els.Stmts = p.stmtList(_EOF)
		closers = append(closers, _EndElse)
	}

	end := p.tok
	p.closeBlock(then, false, closers...)
	if els != nil {
		els.Close, els.End = ClosedSpecific, end
	}
	return then, els
}

// forStmt parses FOR v = start, limit [, step] DO body.
func (p *Parser) forStmt() Stmt {
	s := &ForStmt{}
	s.pos = p.pos
	p.want(_For)
	s.Var = p.name()
	p.want(_Assign)
	s.Start = p.expr()
	p.want(_Comma)
	s.Limit = p.expr()
	if p.got(_Comma) {
		s.Step = p.expr()
	}
	p.want(_Do)
	s.Body = p.body(_EndFor)
	return s
}

// foreachStmt parses FOREACH v, x [, index] DO body.
func (p *Parser) foreachStmt() Stmt {
	s := &ForeachStmt{}
	s.pos = p.pos
	p.want(_Foreach)
	s.Var = p.name()
	p.want(_Comma)
	s.X = p.expr()
	if p.got(_Comma) {
		s.Index = p.name()
	}
	p.want(_Do)
	s.Body = p.body(_EndForeach)
	return s
}

// whileStmt parses WHILE cond DO body.
func (p *Parser) whileStmt() Stmt {
	s := &WhileStmt{}
	s.pos = p.pos
	p.want(_While)
	s.Cond = p.expr()
	p.want(_Do)
	s.Body = p.body(_EndWhile)
	return s
}

// repeatStmt parses REPEAT body UNTIL cond. The multi-line form runs to
// UNTIL; a BEGIN block closes with END or ENDREP.
func (p *Parser) repeatStmt() Stmt {
	s := &RepeatStmt{}
	s.pos = p.pos
	p.want(_Repeat)

	b := &Block{}
	b.pos = p.pos
	switch p.tok {
	case _Begin:
		b.Begin = true
		p.next()
		b.Stmts = p.stmtList(_EOF)
		p.closeBlock(b, true, _EndRep)
	case _Newline:
		b.Stmts = p.stmtList(_Until)
		if p.tok != _Until {
			p.syntaxError(fmt.Sprintf("unexpected %s, expected UNTIL", p.found()))
		}
		b.Close, b.End = ClosedSpecific, _Until
	default:
		b.Stmts = []Stmt{p.stmt()}
	}
	s.Body = b

	p.want(_Until)
	s.Cond = p.expr()
	return s
}

// caseStmt parses CASE/SWITCH x OF clauses ENDCASE/ENDSWITCH.
//
//	CASE x OF
//	    1: stmt
//	    2, 3: BEGIN ... END
//	    ELSE: stmt
//	ENDCASE
func (p *Parser) caseStmt() Stmt {
	s := &CaseStmt{Switch: p.tok == _Switch}
	s.pos = p.pos
	closer := _EndCase
	if s.Switch {
		closer = _EndSwitch
	}
	p.next()
	s.X = p.expr()
	p.want(_Of)

	for {
		p.skipSeparators()
		switch p.tok {
		case closer, _End:
			p.next()
			return s
		case _EOF:
			p.syntaxError(fmt.Sprintf("unexpected end of input, expected %s", closer))
		case _Else:
			if s.Else != nil {
				p.syntaxError("duplicate ELSE clause")
			}
			c := &CaseClause{}
			c.pos = p.pos
			p.next()
			p.want(_Colon)
			c.Body = p.clauseBody()
			s.Else = c
		default:
			if s.Else != nil {
				p.syntaxError("ELSE must be the last clause")
			}
			c := &CaseClause{}
			c.pos = p.pos
			c.Values = p.exprList()
			p.want(_Colon)
			c.Body = p.clauseBody()
			s.Clauses = append(s.Clauses, c)
		}
		p.stmtEnd()
	}
}

func (p *Parser) clauseBody() *Block {
	b := &Block{}
	b.pos = p.pos
	switch {
	case p.tok == _Begin:
		b.Begin = true
		p.next()
		b.Stmts = p.stmtList(_EOF)
		p.closeBlock(b, true)
	case p.atStmtEnd():
		// empty clause
	default:
		b.Stmts = []Stmt{p.stmt()}
	}
	return b
}

// returnStmt parses RETURN [, value].
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{}
	s.pos = p.pos
	p.want(_Return)
	if !p.atStmtEnd() {
		p.got(_Comma)
		s.Result = p.expr()
	}
	return s
}

func (p *Parser) compileOpt() Stmt {
	s := &CompileOptStmt{}
	s.pos = p.pos
	p.next()
	for {
		s.Opts = append(s.Opts, p.name())
		if !p.got(_Comma) {
			return s
		}
	}
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression, including the ternary form c ? x : y.
func (p *Parser) expr() Expr {
	x := p.binaryExpr(0)
	if p.tok != _Question {
		return x
	}
	t := &TernaryExpr{Cond: x}
	t.pos = x.Pos()
	p.next()
	t.X = p.expr()
	p.want(_Colon)
	t.Y = p.expr()
	return t
}

// binaryExpr parses a binary expression with minimum precedence prec
// by precedence climbing. ^ is right associative.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr(false)
	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next()
		if op.Op == _Pow {
			op.Y = p.binaryExpr(oprec - 1)
		} else {
			op.Y = p.binaryExpr(oprec)
		}
		x = op
	}
}

// unaryExpr parses prefix operators. NOT and ~ take a comparison as their
// operand; unary minus binds tighter than ^.
func (p *Parser) unaryExpr(stmtHead bool) Expr {
	switch p.tok {
	case _Not, _Tilde:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.binaryExpr(precNot)
		return op

	case _Sub:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr(false)
		return op

	case _Add:
		p.next()
		return p.unaryExpr(false)

	case _Mul:
		d := &DerefExpr{}
		d.pos = p.pos
		p.next()
		d.X = p.unaryExpr(false)
		return d
	}
	return p.primaryExpr(stmtHead)
}

// primaryExpr parses an operand and its postfix operations. At the head of
// a statement, obj->Method without parentheses ends the expression and
// starts a method procedure call.
func (p *Parser) primaryExpr(stmtHead bool) Expr {
	x := p.operand()
	for {
		switch p.tok {
		case _Lbrack:
			x = p.indexExpr(x)

		case _Dot:
			f := &FieldExpr{X: x}
			f.pos = x.Pos()
			p.next()
			f.Field = p.name()
			x = f

		case _Arrow:
			m := &MethodExpr{X: x}
			m.pos = x.Pos()
			p.next()
			m.Method = p.name()
			if p.got(_DColon) {
				m.Class = m.Method
				m.Method = p.name()
			}
			if p.tok != _Lparen {
				if !stmtHead {
					p.syntaxError(fmt.Sprintf("expected ( after method %s", m.Method.Value))
				}
				return m
			}
			p.next()
			m.Args, m.Keywords = p.argList(_Rparen)
			p.want(_Rparen)
			m.Paren = true
			x = m

		default:
			return x
		}
	}
}

// operand parses the base of a primary expression.
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		n := p.name()
		if p.tok != _Lparen {
			return n
		}
		p.next()
		args, kws := p.argList(_Rparen)
		p.want(_Rparen)
		if n.Key == "OBJ_NEW" {
			return p.objNew(n.pos, args, kws)
		}
		c := &CallExpr{Name: n, Args: args, Keywords: kws}
		c.pos = n.pos
		return c

	case _Literal:
		b := &BasicLit{Value: p.lit, Kind: p.kind}
		b.pos = p.pos
		p.next()
		return b

	case _SysVar:
		v := &SysVar{Value: p.lit, Key: Canonical(p.lit[1:])}
		v.pos = p.pos
		p.next()
		return v

	case _Lparen:
		x := &ParenExpr{}
		x.pos = p.pos
		p.next()
		x.X = p.expr()
		p.want(_Rparen)
		return x

	case _Lbrack:
		a := &ArrayLit{}
		a.pos = p.pos
		p.next()
		if p.tok != _Rbrack {
			a.Elems = p.exprList()
		}
		p.want(_Rbrack)
		return a

	case _Lbrace:
		return p.structLit()
	}
	p.syntaxError(fmt.Sprintf("unexpected %s, expected expression", p.found()))
	return nil
}

func (p *Parser) objNew(pos Pos, args []Expr, kws []*KeywordArg) Expr {
	o := &ObjNewExpr{Keywords: kws}
	o.pos = pos
	if len(args) > 0 {
		o.Class = args[0]
		o.Args = args[1:]
	} else if len(kws) > 0 {
		p.syntaxErrorAt(pos, "OBJ_NEW requires a class name before keywords")
	}
	return o
}

// structLit parses {[Name,] tag: expr, ..., INHERITS Parent}.
func (p *Parser) structLit() Expr {
	s := &StructLit{}
	s.pos = p.pos
	p.want(_Lbrace)

	if p.tok == _Name && (p.peek(1) == _Comma || p.peek(1) == _Rbrace) {
		s.Name = p.name()
		if !p.got(_Comma) {
			p.want(_Rbrace)
			return s
		}
	}
	for {
		if p.got(_Inherits) {
			s.Inherits = append(s.Inherits, p.name())
		} else {
			f := &FieldInit{}
			f.pos = p.pos
			f.Name = p.name()
			p.want(_Colon)
			f.Value = p.expr()
			s.Fields = append(s.Fields, f)
		}
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rbrace)
	return s
}

// indexExpr parses x[sub, sub, ...].
func (p *Parser) indexExpr(x Expr) Expr {
	ix := &IndexExpr{X: x}
	ix.pos = x.Pos()
	p.want(_Lbrack)
	for {
		ix.Subs = append(ix.Subs, p.subscript())
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rbrack)
	return ix
}

// subscript parses one subscript: expr, *, lo:hi, lo:*, :hi, lo:hi:step.
func (p *Parser) subscript() *Subscript {
	s := &Subscript{}
	s.pos = p.pos

	if p.tok == _Mul && p.subEnds(1) {
		p.next()
		s.Kind = SubAll
		return s
	}

	if p.tok != _Colon {
		s.X = p.expr()
	}
	if !p.got(_Colon) {
		s.Kind = SubScalar
		return s
	}

	s.Kind = SubRange
	s.Lo, s.X = s.X, nil
	switch {
	case p.tok == _Mul && (p.subEnds(1) || p.peek(1) == _Colon):
		p.next()
		s.HiAll = true
	case !p.subEnds(0) && p.tok != _Colon:
		s.Hi = p.expr()
	}
	if p.got(_Colon) {
		s.Step = p.expr()
	}
	return s
}

// subEnds reports whether the token n ahead closes a subscript.
func (p *Parser) subEnds(n int) bool {
	t := p.peek(n)
	return t == _Rbrack || t == _Comma
}

// argList parses positional and keyword arguments up to close, or to the
// end of the statement when close is EOF.
//
//	a, b, KW=expr, /FLAG
func (p *Parser) argList(close Token) (args []Expr, kws []*KeywordArg) {
	if close != _EOF && p.tok == close {
		return nil, nil
	}
	for {
		switch {
		case p.tok == _Div && p.peek(1) == _Name:
			k := &KeywordArg{}
			k.pos = p.pos
			p.next()
			k.Name = p.name()
			kws = append(kws, k)
		case p.tok == _Name && p.peek(1) == _Assign:
			k := &KeywordArg{}
			k.pos = p.pos
			k.Name = p.name()
			p.next()
			k.Value = p.expr()
			kws = append(kws, k)
		default:
			args = append(args, p.expr())
		}
		if !p.got(_Comma) {
			return args, kws
		}
	}
}

// exprList parses a comma-separated list of expressions.
func (p *Parser) exprList() []Expr {
	var list []Expr
	for {
		list = append(list, p.expr())
		if !p.got(_Comma) {
			return list
		}
	}
}
