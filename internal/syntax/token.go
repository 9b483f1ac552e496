// Package syntax implements lexical and syntactic analysis for XDL, an
// IDL/GDL-compatible array language.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF     Token = iota // end of input
	_Newline              // end of a logical line
	_Amp                  // & (statement separator)

	// Literals
	_Name    // identifier: x, Point, my_var
	_Literal // literal value (used with LitKind)
	_SysVar  // system variable: !PI, !NULL

	// Assignment
	_Assign    // =
	_AddAssign // +=
	_SubAssign // -=
	_MulAssign // *=
	_DivAssign // /=

	// Operators (ordered by precedence, low to high)
	_Question // ?

	_Or    // OR
	_OrOr  // ||
	_Xor   // XOR
	_And   // AND
	_AndAnd // &&

	_Not   // NOT
	_Tilde // ~

	_Eq // EQ
	_Ne // NE
	_Lt // LT
	_Gt // GT
	_Le // LE
	_Ge // GE

	_Add // +
	_Sub // -

	_Mul // *
	_Div // /
	_Mod // MOD

	_Pow // ^

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Colon  // :
	_DColon // ::
	_Dot    // .
	_Arrow  // ->

	// Keywords
	_Begin
	_Break
	_Case
	_CompileOpt
	_Continue
	_Do
	_Else
	_End
	_EndCase
	_EndElse
	_EndFor
	_EndForeach
	_EndFunction
	_EndIf
	_EndPro
	_EndRep
	_EndSwitch
	_EndWhile
	_For
	_Foreach
	_Function
	_If
	_Inherits
	_Of
	_Pro
	_Repeat
	_Return
	_Switch
	_Then
	_Until
	_While

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:     "EOF",
	_Newline: "newline",
	_Amp:     "&",

	_Name:    "NAME",
	_Literal: "LITERAL",
	_SysVar:  "SYSVAR",

	_Assign:    "=",
	_AddAssign: "+=",
	_SubAssign: "-=",
	_MulAssign: "*=",
	_DivAssign: "/=",

	_Question: "?",

	_Or:     "OR",
	_OrOr:   "||",
	_Xor:    "XOR",
	_And:    "AND",
	_AndAnd: "&&",

	_Not:   "NOT",
	_Tilde: "~",

	_Eq: "EQ",
	_Ne: "NE",
	_Lt: "LT",
	_Gt: "GT",
	_Le: "LE",
	_Ge: "GE",

	_Add: "+",
	_Sub: "-",

	_Mul: "*",
	_Div: "/",
	_Mod: "MOD",

	_Pow: "^",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Colon:  ":",
	_DColon: "::",
	_Dot:    ".",
	_Arrow:  "->",

	_Begin:       "BEGIN",
	_Break:       "BREAK",
	_Case:        "CASE",
	_CompileOpt:  "COMPILE_OPT",
	_Continue:    "CONTINUE",
	_Do:          "DO",
	_Else:        "ELSE",
	_End:         "END",
	_EndCase:     "ENDCASE",
	_EndElse:     "ENDELSE",
	_EndFor:      "ENDFOR",
	_EndForeach:  "ENDFOREACH",
	_EndFunction: "ENDFUNCTION",
	_EndIf:       "ENDIF",
	_EndPro:      "ENDPRO",
	_EndRep:      "ENDREP",
	_EndSwitch:   "ENDSWITCH",
	_EndWhile:    "ENDWHILE",
	_For:         "FOR",
	_Foreach:     "FOREACH",
	_Function:    "FUNCTION",
	_If:          "IF",
	_Inherits:    "INHERITS",
	_Of:          "OF",
	_Pro:         "PRO",
	_Repeat:      "REPEAT",
	_Return:      "RETURN",
	_Switch:      "SWITCH",
	_Then:        "THEN",
	_Until:       "UNTIL",
	_While:       "WHILE",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Binary operator precedence levels (higher = binds tighter).
// NOT is a prefix operator that sits between AND and the comparisons.
const (
	precTernary = 1
	precOr      = 2
	precAnd     = 3
	precNot     = 4
	precCompare = 5
	precAdd     = 6
	precMul     = 7
	precPow     = 8
)

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
//
//	2: OR || XOR
//	3: AND &&
//	5: EQ NE LT GT LE GE
//	6: + -
//	7: * / MOD
//	8: ^ (right associative)
func (t Token) Precedence() int {
	switch t {
	case _Or, _OrOr, _Xor:
		return precOr
	case _And, _AndAnd:
		return precAnd
	case _Eq, _Ne, _Lt, _Gt, _Le, _Ge:
		return precCompare
	case _Add, _Sub:
		return precAdd
	case _Mul, _Div, _Mod:
		return precMul
	case _Pow:
		return precPow
	}
	return 0
}

// IsKeyword reports whether t is a reserved word.
func (t Token) IsKeyword() bool {
	return t >= _Begin && t <= _While
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Pow
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// IsLiteral reports whether t carries a literal value.
func (t Token) IsLiteral() bool {
	return t == _Literal
}

// IsSeparator reports whether t ends a statement on its own.
func (t Token) IsSeparator() bool {
	return t == _Newline || t == _Amp || t == _EOF
}

// IsBlockEnd reports whether t is one of the END family of block closers.
func (t Token) IsBlockEnd() bool {
	switch t {
	case _End, _EndCase, _EndElse, _EndFor, _EndForeach, _EndFunction,
		_EndIf, _EndPro, _EndRep, _EndSwitch, _EndWhile:
		return true
	}
	return false
}

// Exported operator tokens for the interpreter.
const (
	Assign    Token = _Assign
	AddAssign Token = _AddAssign
	SubAssign Token = _SubAssign
	MulAssign Token = _MulAssign
	DivAssign Token = _DivAssign

	Or     Token = _Or
	OrOr   Token = _OrOr
	Xor    Token = _Xor
	And    Token = _And
	AndAnd Token = _AndAnd
	Not    Token = _Not
	Tilde  Token = _Tilde

	Eq Token = _Eq
	Ne Token = _Ne
	Lt Token = _Lt
	Gt Token = _Gt
	Le Token = _Le
	Ge Token = _Ge

	Add Token = _Add
	Sub Token = _Sub
	Mul Token = _Mul
	Div Token = _Div
	Mod Token = _Mod
	Pow Token = _Pow

	Break    Token = _Break
	Continue Token = _Continue
)

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 123, 0x1F, 'FF'x, 12L, 3B
	FloatLit                 // 3.14, 1e10, 2.5d-3, 1D
	StringLit                // 'hello', "it's"
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= StringLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps canonical (upper-case) words to their token type.
// Word operators (EQ, AND, MOD, ...) are scanned through the same table.
var keywords = map[string]Token{
	"AND":         _And,
	"BEGIN":       _Begin,
	"BREAK":       _Break,
	"CASE":        _Case,
	"COMPILE_OPT": _CompileOpt,
	"CONTINUE":    _Continue,
	"DO":          _Do,
	"ELSE":        _Else,
	"END":         _End,
	"ENDCASE":     _EndCase,
	"ENDELSE":     _EndElse,
	"ENDFOR":      _EndFor,
	"ENDFOREACH":  _EndForeach,
	"ENDFUNCTION": _EndFunction,
	"ENDIF":       _EndIf,
	"ENDPRO":      _EndPro,
	"ENDREP":      _EndRep,
	"ENDSWITCH":   _EndSwitch,
	"ENDWHILE":    _EndWhile,
	"EQ":          _Eq,
	"FOR":         _For,
	"FOREACH":     _Foreach,
	"FUNCTION":    _Function,
	"GE":          _Ge,
	"GT":          _Gt,
	"IF":          _If,
	"INHERITS":    _Inherits,
	"LE":          _Le,
	"LT":          _Lt,
	"MOD":         _Mod,
	"NE":          _Ne,
	"NOT":         _Not,
	"OF":          _Of,
	"OR":          _Or,
	"PRO":         _Pro,
	"REPEAT":      _Repeat,
	"RETURN":      _Return,
	"SWITCH":      _Switch,
	"THEN":        _Then,
	"UNTIL":       _Until,
	"WHILE":       _While,
	"XOR":         _Xor,
}

// LookupKeyword returns the token for the given identifier.
// The lookup is case-insensitive. If the identifier is not reserved,
// LookupKeyword returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[Canonical(ident)]; ok {
		return tok
	}
	return _Name
}
