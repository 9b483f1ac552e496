package syntax

import "fmt"

// Pos is a location in a unit of source text. Lines and columns start at
// 1; columns count characters, not bytes. The zero Pos is invalid and
// prints as "0:0".
type Pos struct {
	filename string
	line     uint32
	col      uint32
}

// NewPos returns the position line:col in filename.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String formats p as "file:line:col", dropping the file part for units
// read without a name.
func (p Pos) String() string {
	if p.filename == "" {
		return fmt.Sprintf("%d:%d", p.line, p.col)
	}
	return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
}

// IsValid reports whether p was set by the scanner.
func (p Pos) IsValid() bool { return p.line > 0 }

func (p Pos) Line() uint32     { return p.line }
func (p Pos) Col() uint32      { return p.col }
func (p Pos) Filename() string { return p.filename }
