package syntax

import (
	"io"
	"unicode"
	"unicode/utf8"
)

// source is a character reader with position tracking.
// It reads UTF-8 encoded XDL text and provides character-by-character
// access with a small lookahead.
type source struct {
	buf []byte // entire unit held in memory

	filename string
	line     uint32 // line of ch (1-based)
	col      uint32 // column of ch (1-based, in runes)

	ch   rune // current character, -1 at EOF
	offs int  // byte offset just past ch

	errh func(line, col uint32, msg string)
}

// newSource reads src fully and positions the reader on its first character.
// errh receives every lexical error; it may be nil.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{
		filename: filename,
		line:     1,
		ch:       -1,
		errh:     errh,
	}

	var err error
	s.buf, err = io.ReadAll(src)
	if err != nil {
		s.error("error reading source: " + err.Error())
		return s
	}
	s.nextch()
	return s
}

// nextch advances to the next character.
// (line, col) always describes s.ch after nextch returns.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.ch = r
	s.offs += width
}

// peek returns the n-th character after s.ch without consuming anything.
// peek(1) is the character that the next nextch call will load.
func (s *source) peek(n int) rune {
	offs := s.offs
	var r rune = -1
	for ; n > 0; n-- {
		if offs >= len(s.buf) {
			return -1
		}
		var w int
		r, w = utf8.DecodeRune(s.buf[offs:])
		offs += w
	}
	return r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

// isLetter reports whether r can start an identifier.
func isLetter(r rune) bool {
	if r < utf8.RuneSelf {
		return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
	}
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isIdentPart reports whether r can continue an identifier.
func isIdentPart(r rune) bool {
	return isLetter(r) || isDigit(r) || r >= utf8.RuneSelf && unicode.IsDigit(r)
}

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

func isOctalDigit(r rune) bool {
	return '0' <= r && r <= '7'
}

func isBinaryDigit(r rune) bool {
	return r == '0' || r == '1'
}

// lower folds an ASCII letter to lower case; other runes pass through.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace reports whether r is blank. Newlines end statements and
// are handled by the scanner.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\f'
}
