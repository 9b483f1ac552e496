package builtin

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/you-not-fish/xdl/internal/value"
)

func init() {
	register("STRTRIM", 1, 2, nil, strtrim)
	register("STRUPCASE", 1, 1, nil, stringFunc(strings.ToUpper))
	register("STRLOWCASE", 1, 1, nil, stringFunc(strings.ToLower))
	register("STRCOMPRESS", 1, 1, []string{"REMOVE_ALL"}, strcompress)
	register("STRLEN", 1, 1, nil, strlen)
	register("STRMID", 2, 3, nil, strmid)
	register("STRPOS", 2, 3, nil, strpos)
	register("STRJOIN", 1, 2, nil, strjoin)
	register("STRSPLIT", 1, 2, []string{"EXTRACT"}, strsplit)
}

// mapStrings applies f to every element of v after converting it to a
// string, giving a result of kind k.
func mapStrings(c *call, v value.Value, k value.Kind, f func(string) value.Value) (value.Value, error) {
	r, err := value.Map(v, k, func(e value.Value) (value.Value, error) {
		s, err := value.Convert(e, value.KindString)
		if err != nil {
			return nil, err
		}
		return f(s.String()), nil
	})
	if err != nil {
		return nil, c.errorf(err)
	}
	return r, nil
}

func stringFunc(f func(string) string) func(*Library, *call) (value.Value, error) {
	return func(l *Library, c *call) (value.Value, error) {
		return mapStrings(c, c.args[0], value.KindString, func(s string) value.Value {
			return value.String(f(s))
		})
	}
}

// strtrim removes trailing (mode 0), leading (1) or both (2) blanks.
func strtrim(l *Library, c *call) (value.Value, error) {
	mode, err := c.intArgOr(1, 0)
	if err != nil {
		return nil, err
	}
	var trim func(string) string
	switch mode {
	case 0:
		trim = func(s string) string { return strings.TrimRight(s, " \t") }
	case 1:
		trim = func(s string) string { return strings.TrimLeft(s, " \t") }
	case 2:
		trim = func(s string) string { return strings.Trim(s, " \t") }
	default:
		return nil, c.errorf(fmt.Errorf("%w: trim mode %d", value.ErrIndexOutOfBounds, mode))
	}
	return stringFunc(trim)(l, c)
}

// strcompress collapses runs of blanks to one, or removes all of them with
// /REMOVE_ALL.
func strcompress(l *Library, c *call) (value.Value, error) {
	removeAll := c.flag("REMOVE_ALL")
	return stringFunc(func(s string) string {
		fields := strings.Fields(s)
		if removeAll {
			return strings.Join(fields, "")
		}
		out := strings.Join(fields, " ")
		if len(s) > 0 && (s[0] == ' ' || s[0] == '\t') && out != "" {
			out = " " + out
		}
		if n := len(s); n > 0 && (s[n-1] == ' ' || s[n-1] == '\t') && out != "" && out != " " {
			out += " "
		}
		return out
	})(l, c)
}

func strlen(l *Library, c *call) (value.Value, error) {
	return mapStrings(c, c.args[0], value.KindLong, func(s string) value.Value {
		return value.Long(utf8.RuneCountInString(s))
	})
}

// strmid returns the substring at character offset first, of length n or
// to the end.
func strmid(l *Library, c *call) (value.Value, error) {
	first, err := c.intArg(1)
	if err != nil {
		return nil, err
	}
	n, err := c.intArgOr(2, -1)
	if err != nil {
		return nil, err
	}
	return mapStrings(c, c.args[0], value.KindString, func(s string) value.Value {
		r := []rune(s)
		lo := first
		if lo < 0 {
			lo = 0
		}
		if lo > len(r) {
			lo = len(r)
		}
		hi := len(r)
		if n >= 0 && lo+n < hi {
			hi = lo + n
		}
		return value.String(string(r[lo:hi]))
	})
}

// strpos returns the character offset of sub in each string, or -1.
func strpos(l *Library, c *call) (value.Value, error) {
	sub, err := c.stringArg(1)
	if err != nil {
		return nil, err
	}
	start, err := c.intArgOr(2, 0)
	if err != nil {
		return nil, err
	}
	return mapStrings(c, c.args[0], value.KindLong, func(s string) value.Value {
		r := []rune(s)
		if start < 0 || start > len(r) {
			return value.Long(-1)
		}
		i := strings.Index(string(r[start:]), sub)
		if i < 0 {
			return value.Long(-1)
		}
		return value.Long(start + utf8.RuneCountInString(string(r[start:])[:i]))
	})
}

func strjoin(l *Library, c *call) (value.Value, error) {
	sep := ""
	if len(c.args) > 1 {
		var err error
		if sep, err = c.stringArg(1); err != nil {
			return nil, err
		}
	}
	parts, err := value.Convert(c.args[0], value.KindString)
	if err != nil {
		return nil, c.errorf(err)
	}
	var ss []string
	for _, e := range value.Elements(parts) {
		ss = append(ss, e.String())
	}
	return value.String(strings.Join(ss, sep)), nil
}

// strsplit splits a string on any of the characters of the pattern,
// blanks by default, and returns the non-empty pieces.
func strsplit(l *Library, c *call) (value.Value, error) {
	s, err := c.stringArg(0)
	if err != nil {
		return nil, err
	}
	pattern := " \t"
	if len(c.args) > 1 {
		if pattern, err = c.stringArg(1); err != nil {
			return nil, err
		}
	}
	pieces := strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(pattern, r) })
	if len(pieces) == 0 {
		return value.String(""), nil
	}
	data := make([]value.Value, len(pieces))
	for i, p := range pieces {
		data[i] = value.String(p)
	}
	a, err := value.NewArray(value.KindString, data, []int{len(data)})
	if err != nil {
		return nil, c.errorf(err)
	}
	return a, nil
}
