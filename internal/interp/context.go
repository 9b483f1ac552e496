package interp

import (
	"sort"

	"github.com/you-not-fish/xdl/internal/syntax"
	"github.com/you-not-fish/xdl/internal/value"
)

// MaxDepth is the deepest routine call chain allowed.
const MaxDepth = 2048

const mainName = "$MAIN$"

// Frame is the variable scope of one routine activation.
// Frames form a chain for reads only: plain routines fall back to the main
// frame, while the main frame and method frames have no parent.
type Frame struct {
	name    string
	parent  *Frame
	vars    map[string]value.Value
	self    value.ObjRef
	nparams int
	result  value.Value
}

func newFrame(name string, parent *Frame) *Frame {
	return &Frame{name: name, parent: parent, vars: make(map[string]value.Value)}
}

// Name returns the routine name of the frame, $MAIN$ for the main level.
func (f *Frame) Name() string { return f.name }

// Lookup returns the variable key of this frame only. A declared but
// unset parameter is present with an undefined value.
func (f *Frame) Lookup(key string) (value.Value, bool) {
	v, ok := f.vars[key]
	return v, ok
}

// LookupParent searches f and then its parents. It returns the value and
// the frame holding it, or (nil, nil).
func (f *Frame) LookupParent(key string) (value.Value, *Frame) {
	for fr := f; fr != nil; fr = fr.parent {
		if v, ok := fr.vars[key]; ok {
			return v, fr
		}
	}
	return nil, nil
}

// Set binds key in this frame.
func (f *Frame) Set(key string, v value.Value) { f.vars[key] = v }

// Names returns the defined variable names of the frame in sorted order.
func (f *Frame) Names() []string {
	var names []string
	for k, v := range f.vars {
		if !value.IsUndefined(v) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Class is a registered class definition.
type Class struct {
	Name    string   // as written in the definition
	Key     string   // canonical name
	Parents []string // canonical parent names, in declaration order
	fields  []*syntax.FieldInit
}

// Object is a live class instance.
type Object struct {
	ID     uint64
	Class  *Class
	fields map[string]value.Value
	order  []string
	dying  bool // Cleanup is running
}

// Field returns the value of field key.
func (o *Object) Field(key string) (value.Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Fields returns the field names in definition order, parents first.
func (o *Object) Fields() []string { return append([]string(nil), o.order...) }

type methodKey struct {
	class, name string
	fn          bool
}

// Context holds all state of one interpreter run: the frame stack, the
// routine and class registries, and the object and pointer heaps. A
// Context is not safe for concurrent use; independent runs need
// independent Contexts.
type Context struct {
	frames  []*Frame
	procs   map[string]*syntax.FuncDecl
	funcs   map[string]*syntax.FuncDecl
	methods map[methodKey]*syntax.FuncDecl
	classes map[string]*Class
	objects map[uint64]*Object
	nextObj uint64
	heap    map[uint64]value.Value
	nextPtr uint64
}

// NewContext returns a Context with only the main frame.
func NewContext() *Context {
	return &Context{
		frames:  []*Frame{newFrame(mainName, nil)},
		procs:   make(map[string]*syntax.FuncDecl),
		funcs:   make(map[string]*syntax.FuncDecl),
		methods: make(map[methodKey]*syntax.FuncDecl),
		classes: make(map[string]*Class),
		objects: make(map[uint64]*Object),
		heap:    make(map[uint64]value.Value),
	}
}

// Main returns the main-level frame.
func (c *Context) Main() *Frame { return c.frames[0] }

// Frame returns the innermost frame.
func (c *Context) Frame() *Frame { return c.frames[len(c.frames)-1] }

// Depth returns the number of active frames, 1 at the main level.
func (c *Context) Depth() int { return len(c.frames) }

func (c *Context) push(f *Frame) bool {
	if len(c.frames) >= MaxDepth {
		return false
	}
	c.frames = append(c.frames, f)
	return true
}

func (c *Context) pop() {
	c.frames[len(c.frames)-1] = nil
	c.frames = c.frames[:len(c.frames)-1]
}

// unwind drops every frame above the main level, after an error aborted a
// call chain.
func (c *Context) unwind() {
	for len(c.frames) > 1 {
		c.pop()
	}
}

// Var reads variable name as seen from the innermost frame.
func (c *Context) Var(name string) (value.Value, bool) {
	v, fr := c.Frame().LookupParent(syntax.Canonical(name))
	if fr == nil || value.IsUndefined(v) {
		return nil, false
	}
	return v, true
}

// SetVar binds variable name in the innermost frame.
func (c *Context) SetVar(name string, v value.Value) {
	c.Frame().Set(syntax.Canonical(name), value.Copy(v))
}

// define registers a routine or class declaration, replacing any earlier
// definition of the same name.
func (c *Context) define(d syntax.Decl) {
	switch d := d.(type) {
	case *syntax.FuncDecl:
		if d.Class != nil {
			c.methods[methodKey{d.Class.Key, d.Name.Key, d.IsFunc}] = d
			return
		}
		if d.IsFunc {
			c.funcs[d.Name.Key] = d
		} else {
			c.procs[d.Name.Key] = d
		}
	case *syntax.ClassDecl:
		cl := &Class{Name: d.Name.Value, Key: d.Name.Key, fields: d.Fields}
		for _, p := range d.Inherits {
			cl.Parents = append(cl.Parents, p.Key)
		}
		c.classes[cl.Key] = cl
	}
}

// Function returns the user function key.
func (c *Context) Function(key string) *syntax.FuncDecl { return c.funcs[key] }

// Procedure returns the user procedure key.
func (c *Context) Procedure(key string) *syntax.FuncDecl { return c.procs[key] }

// Class returns the class key.
func (c *Context) Class(key string) *Class { return c.classes[key] }

// lineage returns cl and its ancestors depth-first in declaration order.
// Each class appears once, and unknown parents are skipped.
func (c *Context) lineage(cl *Class) []*Class {
	var out []*Class
	seen := make(map[string]bool)
	var walk func(*Class)
	walk = func(cl *Class) {
		if seen[cl.Key] {
			return
		}
		seen[cl.Key] = true
		out = append(out, cl)
		for _, p := range cl.Parents {
			if pc := c.classes[p]; pc != nil {
				walk(pc)
			}
		}
	}
	walk(cl)
	return out
}

// Method finds method name of class cl, searching cl first and then its
// parents depth-first.
func (c *Context) Method(cl *Class, name string, fn bool) *syntax.FuncDecl {
	for _, k := range c.lineage(cl) {
		if m := c.methods[methodKey{k.Key, name, fn}]; m != nil {
			return m
		}
	}
	return nil
}

// IsA reports whether cl is class key or inherits from it.
func (c *Context) IsA(cl *Class, key string) bool {
	for _, k := range c.lineage(cl) {
		if k.Key == key {
			return true
		}
	}
	return false
}

// fieldInits returns the field defaults of cl, parents first. A field
// redeclared by a subclass keeps the subclass default.
func (c *Context) fieldInits(cl *Class) []*syntax.FieldInit {
	lin := c.lineage(cl)
	index := make(map[string]int)
	var out []*syntax.FieldInit
	for i := len(lin) - 1; i >= 0; i-- {
		for _, f := range lin[i].fields {
			if j, ok := index[f.Name.Key]; ok {
				out[j] = f
				continue
			}
			index[f.Name.Key] = len(out)
			out = append(out, f)
		}
	}
	return out
}

// newObject allocates an instance of cl with the given field values.
func (c *Context) newObject(cl *Class, order []string, fields map[string]value.Value) *Object {
	c.nextObj++
	o := &Object{ID: c.nextObj, Class: cl, fields: fields, order: order}
	c.objects[o.ID] = o
	return o
}

// Object returns the live instance for ref, or nil.
func (c *Context) Object(ref value.ObjRef) *Object { return c.objects[uint64(ref)] }

// freeObject removes an instance. Freeing a dead or null handle does
// nothing.
func (c *Context) freeObject(ref value.ObjRef) { delete(c.objects, uint64(ref)) }

// LiveObjects returns the number of live instances.
func (c *Context) LiveObjects() int { return len(c.objects) }

// NewPointer stores v on the pointer heap and returns its handle.
func (c *Context) NewPointer(v value.Value) value.PtrRef {
	c.nextPtr++
	c.heap[c.nextPtr] = value.Copy(v)
	return value.PtrRef(c.nextPtr)
}

// Pointer returns the target of p and whether p is valid.
func (c *Context) Pointer(p value.PtrRef) (value.Value, bool) {
	v, ok := c.heap[uint64(p)]
	return v, ok
}

func (c *Context) setPointer(p value.PtrRef, v value.Value) bool {
	if _, ok := c.heap[uint64(p)]; !ok {
		return false
	}
	c.heap[uint64(p)] = v
	return true
}

// FreePointer releases p. Freeing an invalid pointer does nothing.
func (c *Context) FreePointer(p value.PtrRef) { delete(c.heap, uint64(p)) }
