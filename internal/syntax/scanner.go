package syntax

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on XDL source text.
type Scanner struct {
	source

	// Current token info
	tok    Token
	lit    string  // identifier spelling, number text, string contents
	kind   LitKind // only valid when tok == _Literal
	tokPos Pos

	depth  int  // open ( [ { ; newlines inside brackets are blanks
	lastNL bool // last token ended a line; collapses blank lines

	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{
		source: *newSource(filename, src, errh),
		lastNL: true,
	}
}

// Next advances to the next token.
func (s *Scanner) Next() {
	prev := s.tok

redo:
	s.skipWhitespace()
	s.tokPos = s.pos()
	s.kind = 0

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case s.ch == '\n':
		s.nextch()
		if s.depth > 0 || s.lastNL {
			goto redo
		}
		s.tok = _Newline
		s.lit = "newline"

	case s.ch == ';':
		s.skipComment()
		goto redo

	case s.ch == '$':
		s.continuation()
		goto redo

	case isLetter(s.ch):
		s.scanIdent(prev)

	case isDigit(s.ch), s.ch == '.' && isDigit(s.peek(1)):
		s.scanNumber()

	case s.ch == '\'' || s.ch == '"':
		s.scanString()

	case s.ch == '!':
		s.scanSysVar()

	default:
		if !s.scanOperator() {
			s.error(fmt.Sprintf("unexpected character %q", s.ch))
			s.nextch()
			goto redo
		}
	}

	s.lastNL = s.tok == _Newline || s.tok == _Amp
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// skipComment skips a ';' comment up to, not including, the newline.
func (s *Scanner) skipComment() {
	for s.ch >= 0 && s.ch != '\n' {
		s.nextch()
	}
}

// continuation consumes '$' and the rest of its physical line, joining the
// next line to the current logical line.
func (s *Scanner) continuation() {
	s.nextch()
	s.skipWhitespace()
	if s.ch == ';' {
		s.skipComment()
	}
	switch {
	case s.ch == '\n':
		s.nextch()
	case s.ch < 0:
	default:
		s.error(fmt.Sprintf("unexpected %q after line continuation", s.ch))
	}
}

func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier or keyword. A word directly after
// '.', '->' or '::' is always a name, so fields and methods may be
// spelled like keywords.
func (s *Scanner) scanIdent(prev Token) {
	s.startLit()
	s.nextch()
	for isIdentPart(s.ch) {
		s.continueLit()
		s.nextch()
	}
	s.lit = s.stopLit()

	switch prev {
	case _Dot, _Arrow, _DColon:
		s.tok = _Name
	default:
		s.tok = LookupKeyword(s.lit)
	}
}

// scanSysVar scans a system variable such as !PI.
func (s *Scanner) scanSysVar() {
	s.startLit()
	s.nextch()
	if !isLetter(s.ch) {
		s.error("invalid system variable name")
	}
	for isIdentPart(s.ch) {
		s.continueLit()
		s.nextch()
	}
	s.lit = s.stopLit()
	s.tok = _SysVar
}

// intSuffixes lists integer type suffixes, longest first.
var intSuffixes = []string{"ULL", "UL", "US", "LL", "U", "L", "S", "B"}

// scanNumber scans an integer or floating point literal.
// The literal text is kept verbatim; value.ParseNumber interprets it.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	s.tok = _Literal
	s.kind = IntLit

	if s.ch == '0' && s.scanPrefixed() {
		s.scanIntSuffix()
		s.lit = s.litBuf.String()
		return
	}

	s.scanDigits(isDigit)
	if s.ch == '.' {
		s.kind = FloatLit
		s.continueLit()
		s.nextch()
		s.scanDigits(isDigit)
	}

	switch lower(s.ch) {
	case 'e', 'd':
		p := s.peek(1)
		if isDigit(p) || (p == '+' || p == '-') && isDigit(s.peek(2)) {
			s.kind = FloatLit
			s.continueLit()
			s.nextch()
			if s.ch == '+' || s.ch == '-' {
				s.continueLit()
				s.nextch()
			}
			s.scanDigits(isDigit)
		} else if lower(s.ch) == 'd' && !isIdentPart(p) {
			// 1D, 2.5d: double without exponent
			s.kind = FloatLit
			s.continueLit()
			s.nextch()
		}
	}

	if s.kind == IntLit {
		s.scanIntSuffix()
	}
	s.lit = s.litBuf.String()
}

// scanPrefixed scans 0x, 0o and 0b literals. It reports false, consuming
// nothing, when the character after '0' does not start one.
func (s *Scanner) scanPrefixed() bool {
	var digit func(rune) bool
	switch lower(s.peek(1)) {
	case 'x':
		digit = isHexDigit
	case 'o':
		digit = isOctalDigit
	case 'b':
		digit = isBinaryDigit
	default:
		return false
	}
	if !digit(s.peek(2)) {
		return false
	}
	s.continueLit()
	s.nextch()
	s.continueLit()
	s.nextch()
	s.scanDigits(digit)
	return true
}

func (s *Scanner) scanDigits(digit func(rune) bool) {
	for digit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanIntSuffix appends a type suffix (B, S, U, US, L, UL, LL, ULL) if one
// follows and is not the start of a longer word.
func (s *Scanner) scanIntSuffix() {
	for _, suf := range intSuffixes {
		if s.hasWord(suf) {
			for range suf {
				s.continueLit()
				s.nextch()
			}
			return
		}
	}
}

// hasWord reports whether the characters starting at s.ch spell word
// (case-insensitively) and are not followed by an identifier character.
func (s *Scanner) hasWord(word string) bool {
	for i := 0; i < len(word); i++ {
		var r rune
		if i == 0 {
			r = s.ch
		} else {
			r = s.peek(i)
		}
		if r < 0 || lower(r) != lower(rune(word[i])) {
			return false
		}
	}
	return !isIdentPart(s.peek(len(word)))
}

// scanString scans a quoted string. The quote character is escaped by
// doubling it. A string of digits followed by X, O or B ('FF'x, '17'o,
// '101'b) is an integer literal in that radix.
func (s *Scanner) scanString() {
	quote := s.ch
	s.nextch()
	s.litBuf.Reset()

	for {
		if s.ch < 0 || s.ch == '\n' {
			s.error("string literal not terminated")
			break
		}
		if s.ch == quote {
			if s.peek(1) == quote {
				s.continueLit()
				s.nextch()
				s.nextch()
				continue
			}
			s.nextch()
			break
		}
		s.continueLit()
		s.nextch()
	}

	body := s.litBuf.String()
	if s.scanRadixString(quote, body) {
		return
	}
	s.tok = _Literal
	s.kind = StringLit
	s.lit = body
}

func (s *Scanner) scanRadixString(quote rune, body string) bool {
	var digit func(rune) bool
	switch lower(s.ch) {
	case 'x':
		digit = isHexDigit
	case 'o':
		digit = isOctalDigit
	case 'b':
		digit = isBinaryDigit
	default:
		return false
	}
	if body == "" || strings.IndexFunc(body, func(r rune) bool { return !digit(r) }) >= 0 {
		return false
	}
	next := s.peek(1)
	if isIdentPart(next) && !isSuffixStart(next) {
		return false
	}

	s.litBuf.Reset()
	s.litBuf.WriteRune(quote)
	s.litBuf.WriteString(body)
	s.litBuf.WriteRune(quote)
	s.continueLit()
	s.nextch()
	s.scanIntSuffix()
	if isIdentPart(s.ch) {
		s.error(fmt.Sprintf("invalid suffix on radix literal %s", s.litBuf.String()))
	}

	s.tok = _Literal
	s.kind = IntLit
	s.lit = s.litBuf.String()
	return true
}

func isSuffixStart(r rune) bool {
	switch lower(r) {
	case 'u', 'l', 's', 'b':
		return true
	}
	return false
}

const operatorChars = "+-*/^=~?&|()[]{},:."

// scanOperator scans an operator or delimiter. It reports false if s.ch
// starts neither.
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	if !strings.ContainsRune(operatorChars, ch) {
		return false
	}
	s.nextch()

	switch ch {
	case '+':
		s.tok = s.withAssign(_Add, _AddAssign)
	case '-':
		if s.ch == '>' {
			s.nextch()
			s.tok = _Arrow
		} else {
			s.tok = s.withAssign(_Sub, _SubAssign)
		}
	case '*':
		s.tok = s.withAssign(_Mul, _MulAssign)
	case '/':
		s.tok = s.withAssign(_Div, _DivAssign)
	case '^':
		s.tok = _Pow
	case '=':
		s.tok = _Assign
	case '~':
		s.tok = _Tilde
	case '?':
		s.tok = _Question
	case '&':
		if s.ch == '&' {
			s.nextch()
			s.tok = _AndAnd
		} else {
			s.tok = _Amp
		}
	case '|':
		if s.ch != '|' {
			s.errorAtTok("unexpected character '|' (use || or OR)")
		} else {
			s.nextch()
		}
		s.tok = _OrOr
	case '(':
		s.depth++
		s.tok = _Lparen
	case ')':
		s.close()
		s.tok = _Rparen
	case '[':
		s.depth++
		s.tok = _Lbrack
	case ']':
		s.close()
		s.tok = _Rbrack
	case '{':
		s.depth++
		s.tok = _Lbrace
	case '}':
		s.close()
		s.tok = _Rbrace
	case ',':
		s.tok = _Comma
	case ':':
		if s.ch == ':' {
			s.nextch()
			s.tok = _DColon
		} else {
			s.tok = _Colon
		}
	case '.':
		s.tok = _Dot
	}
	s.lit = s.tok.String()
	return true
}

func (s *Scanner) errorAtTok(msg string) {
	if s.errh != nil {
		s.errh(s.tokPos.line, s.tokPos.col, msg)
	}
}

func (s *Scanner) withAssign(op, assign Token) Token {
	if s.ch == '=' {
		s.nextch()
		return assign
	}
	return op
}

func (s *Scanner) close() {
	if s.depth > 0 {
		s.depth--
	}
}

// Item is one scanned token.
type Item struct {
	Tok  Token
	Lit  string
	Kind LitKind
	Pos  Pos
}

func (it Item) String() string {
	switch it.Tok {
	case _Name, _SysVar:
		return fmt.Sprintf("%s %s", it.Tok, it.Lit)
	case _Literal:
		return fmt.Sprintf("%s(%s) %q", it.Tok, it.Kind, it.Lit)
	}
	return it.Tok.String()
}

// LexError reports a malformed token.
type LexError struct {
	Pos Pos
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Tokenize scans a whole unit. The result always ends with an EOF item.
// Scanning stops at the first lexical error.
func Tokenize(filename string, src []byte) ([]Item, error) {
	var first *LexError
	s := NewScanner(filename, bytes.NewReader(src), func(line, col uint32, msg string) {
		if first == nil {
			first = &LexError{Pos: NewPos(filename, line, col), Msg: msg}
		}
	})

	var items []Item
	for {
		s.Next()
		if first != nil {
			return nil, first
		}
		items = append(items, Item{Tok: s.tok, Lit: s.lit, Kind: s.kind, Pos: s.tokPos})
		if s.tok == _EOF {
			return items, nil
		}
	}
}
