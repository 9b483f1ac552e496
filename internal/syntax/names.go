package syntax

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical returns the case-folded form of an XDL identifier.
// All lookups of variables, routines, classes, keywords and fields go
// through this form; the original spelling is kept for display only.
func Canonical(name string) string {
	hasLower := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 0x80 {
			// cases.Caser keeps state; use a fresh one per call.
			return cases.Upper(language.Und).String(name)
		}
		if 'a' <= c && c <= 'z' {
			hasLower = true
		}
	}
	if hasLower {
		return asciiUpper(name)
	}
	return name
}

func asciiUpper(name string) string {
	b := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}
