// env.go
//
// Environment frames. An Env is an ordered sequence of (symbol, slot)
// bindings plus a parent link; frames chain from the innermost scope out
// to the root. Lookup walks the chain and, within a frame, the most
// recently added binding wins, so a same-frame redefine shadows too.
package lispy

// binding is one mutable slot. setvalue overwrites val in place; define
// always appends a new binding to the current frame.
type binding struct {
	sym *Symbol
	val Value
}

// Env is a lexical environment frame. The parent is fixed at creation;
// closures capture their defining frame, not the caller's.
type Env struct {
	bindings []*binding
	parent   *Env
}

// NewEnv creates a frame with the given parent (nil for the root).
func NewEnv(parent *Env) *Env { return &Env{parent: parent} }

// Define binds sym to v in this frame, shadowing any visible binding of
// the same symbol, including one added earlier to this same frame.
func (e *Env) Define(sym *Symbol, v Value) {
	e.bindings = append(e.bindings, &binding{sym: sym, val: v})
}

// lookup returns the nearest visible slot for sym, or nil. Symbols are
// interned, so pointer comparison is both sufficient and required here.
func (e *Env) lookup(sym *Symbol) *binding {
	for f := e; f != nil; f = f.parent {
		for i := len(f.bindings) - 1; i >= 0; i-- {
			if f.bindings[i].sym == sym {
				return f.bindings[i]
			}
		}
	}
	return nil
}

// Get retrieves the nearest visible value for sym.
func (e *Env) Get(sym *Symbol) (Value, bool) {
	if b := e.lookup(sym); b != nil {
		return b.val, true
	}
	return Value{}, false
}

// Set overwrites the nearest existing binding of sym. It reports false if
// no binding is visible; it never implicitly defines.
func (e *Env) Set(sym *Symbol, v Value) bool {
	b := e.lookup(sym)
	if b == nil {
		return false
	}
	b.val = v
	return true
}
