// Package builtin is the standard library of XDL routines that need no
// interpreter state: printing, array construction, type conversion, math,
// strings and reductions. It plugs into the interpreter as an
// interp.Dispatcher.
package builtin

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/you-not-fish/xdl/internal/interp"
	"github.com/you-not-fish/xdl/internal/value"
)

// Library dispatches builtin calls. The zero value prints to os.Stdout.
type Library struct {
	Out io.Writer
}

// New returns a Library writing to out.
func New(out io.Writer) *Library {
	return &Library{Out: out}
}

func (l *Library) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}
	return l.Out
}

// call is one builtin invocation.
type call struct {
	name string
	args []value.Value
	kw   map[string]value.Value
}

// routine describes a builtin: its positional argument range (max < 0 for
// any number), the keywords it accepts, and its implementation.
type routine struct {
	min, max int
	keywords []string
	fn       func(l *Library, c *call) (value.Value, error)
}

var routines = map[string]*routine{}

func register(name string, min, max int, keywords []string, fn func(*Library, *call) (value.Value, error)) {
	routines[name] = &routine{min: min, max: max, keywords: keywords, fn: fn}
}

// Names returns the builtin names in sorted order.
func Names() []string {
	names := make([]string, 0, len(routines))
	for n := range routines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CallBuiltin implements interp.Dispatcher.
func (l *Library) CallBuiltin(name string, args []value.Value, kw map[string]value.Value) (value.Value, error) {
	r, ok := routines[name]
	if !ok {
		return nil, interp.ErrNoBuiltin
	}
	n := len(args)
	if n < r.min || (r.max >= 0 && n > r.max) {
		return nil, arityError(name, r, n)
	}
	c := &call{name: name, args: args}
	if len(kw) > 0 {
		c.kw = make(map[string]value.Value, len(kw))
		for k, v := range kw {
			full, err := matchKeyword(name, r.keywords, k)
			if err != nil {
				return nil, err
			}
			c.kw[full] = v
		}
	}
	v, err := r.fn(l, c)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = value.Null
	}
	return v, nil
}

func arityError(name string, r *routine, n int) error {
	var want string
	switch {
	case r.min == r.max:
		want = fmt.Sprintf("%d", r.min)
	case r.max < 0:
		want = fmt.Sprintf("at least %d", r.min)
	default:
		want = fmt.Sprintf("%d to %d", r.min, r.max)
	}
	return &interp.Error{
		Kind: interp.ArityMismatch,
		Msg:  fmt.Sprintf("%s expects %s arguments, got %d", name, want, n),
	}
}

// matchKeyword resolves a possibly abbreviated keyword against the
// keywords of routine name.
func matchKeyword(name string, keywords []string, k string) (string, error) {
	found := ""
	for _, full := range keywords {
		if full == k {
			return full, nil
		}
		if strings.HasPrefix(full, k) {
			if found != "" {
				return "", &interp.Error{Kind: interp.ArityMismatch, Msg: fmt.Sprintf("ambiguous keyword abbreviation %s in call to %s", k, name)}
			}
			found = full
		}
	}
	if found == "" {
		return "", &interp.Error{Kind: interp.ArityMismatch, Msg: fmt.Sprintf("keyword %s is not allowed in call to %s", k, name)}
	}
	return found, nil
}

// flag reports whether keyword k was set to a true value.
func (c *call) flag(k string) bool {
	v, ok := c.kw[k]
	if !ok {
		return false
	}
	t, _ := value.Truthy(v)
	return t
}

// intArg returns positional argument i as an int.
func (c *call) intArg(i int) (int, error) {
	n, err := value.AsInt(c.args[i])
	if err != nil {
		return 0, c.errorf(err)
	}
	return int(n), nil
}

// intArgOr returns positional argument i, or def when it was not passed.
func (c *call) intArgOr(i, def int) (int, error) {
	if i >= len(c.args) {
		return def, nil
	}
	return c.intArg(i)
}

func (c *call) stringArg(i int) (string, error) {
	s, err := value.AsString(c.args[i])
	if err != nil {
		return "", c.errorf(err)
	}
	return s, nil
}

// errorf prefixes err with the routine name, keeping it matchable with
// errors.Is.
func (c *call) errorf(err error) error {
	return fmt.Errorf("%s: %w", c.name, err)
}

// dims reads array dimensions given either as separate scalars or as one
// array argument, as in FLTARR(2, 3) and FLTARR([2, 3]).
func (c *call) dims(args []value.Value) ([]int, error) {
	if len(args) == 1 {
		if a, ok := args[0].(*value.Array); ok {
			args = a.Data()
		}
	}
	if len(args) == 0 {
		return nil, c.errorf(fmt.Errorf("%w: no dimensions given", value.ErrDimensionMismatch))
	}
	out := make([]int, len(args))
	for i, a := range args {
		n, err := value.AsInt(a)
		if err != nil {
			return nil, c.errorf(err)
		}
		out[i] = int(n)
	}
	return out, nil
}
