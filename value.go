// value.go
//
// The runtime value model: every object the interpreter manipulates is a
// tagged Value. The tag determines which concrete shape Data holds (see
// ValueTag). Pairs are mutable two-slot cells; symbols are interned and
// compared by pointer identity; sentinels are process-wide singletons.
package lispy

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTInt      ValueTag = iota // int64
	VTPair                     // *Pair (mutable cons cell)
	VTSymbol                   // *Symbol (interned; compare by pointer)
	VTNative                   // *Native (built-in operation)
	VTClosure                  // *Closure (user function + captured env)
	VTEnv                      // *Env (environment frame)
	VTSentinel                 // *Sentinel (one of the four singletons)
)

// Value is the universal runtime carrier used by the interpreter.
//
// Invariants:
//   - When Tag==VTSymbol, Data is a *Symbol obtained from Interp.Intern;
//     two symbols with the same name are the same pointer.
//   - When Tag==VTSentinel, Data is one of the four package-level
//     singletons (Nil, True, and the two reader-internal markers).
//
// Values are comparable: for pointer-shaped payloads, == is identity.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Pair is a mutable cons cell. Proper lists are right-nested Pair chains
// terminated by Nil; a dotted pair terminates in anything else.
type Pair struct {
	First Value
	Rest  Value
}

// Symbol holds an immutable name. Symbols are created only by
// Interp.Intern, which guarantees one instance per distinct name.
type Symbol struct {
	Name string
}

// NativeFn is the implementation signature for built-in operations. A
// native receives the *unevaluated* argument list together with the calling
// environment and decides for itself which arguments to evaluate; this is
// what lets special forms (quote, if, define, lambda, setvalue) control
// evaluation.
type NativeFn func(in *Interp, env *Env, args Value) Value

// Native wraps a built-in operation. One instance per registration.
type Native struct {
	Name string
	Fn   NativeFn
}

// Closure is a user-defined function: a flat parameter list, a body (a
// proper list of forms evaluated in order), and the environment captured
// at definition time. The captured env is what makes scoping lexical.
type Closure struct {
	Params []*Symbol
	Body   Value
	Env    *Env
}

// Sentinel is a structural singleton. Nil doubles as the empty list and
// false; True is the canonical truth value. The dot and right-paren
// markers exist only inside the reader and must never escape it.
type Sentinel struct {
	name string
}

var (
	nilSentinel    = &Sentinel{name: "nil"}
	trueSentinel   = &Sentinel{name: "t"}
	dotSentinel    = &Sentinel{name: "dot"}
	rparenSentinel = &Sentinel{name: "right-paren"}

	// Nil is the empty list and the false value.
	Nil = Value{Tag: VTSentinel, Data: nilSentinel}
	// True is the canonical true value, printed as "t".
	True = Value{Tag: VTSentinel, Data: trueSentinel}

	// Reader-internal markers; legal only during list parsing.
	dotMarker    = Value{Tag: VTSentinel, Data: dotSentinel}
	rparenMarker = Value{Tag: VTSentinel, Data: rparenSentinel}
)

// IntVal wraps a signed integer.
func IntVal(n int64) Value { return Value{Tag: VTInt, Data: n} }

// SymVal wraps an interned symbol.
func SymVal(s *Symbol) Value { return Value{Tag: VTSymbol, Data: s} }

// Cons allocates a fresh pair.
func Cons(first, rest Value) Value {
	return Value{Tag: VTPair, Data: &Pair{First: first, Rest: rest}}
}

// EnvVal wraps an environment frame.
func EnvVal(e *Env) Value { return Value{Tag: VTEnv, Data: e} }

// IsNil reports whether v is the Nil sentinel.
func IsNil(v Value) bool { return v.Tag == VTSentinel && v.Data == nilSentinel }

// IsList reports whether v can head a proper list: Nil or a Pair. The tail
// of a dotted pair fails this check.
func IsList(v Value) bool { return IsNil(v) || v.Tag == VTPair }

func isMarker(v Value) bool {
	return v.Tag == VTSentinel && (v.Data == dotSentinel || v.Data == rparenSentinel)
}

// listLength walks a proper list and returns its length. A dotted tail is
// a hard error rather than a silent miscount.
func listLength(list Value) int {
	n := 0
	for lp := list; !IsNil(lp); {
		if lp.Tag != VTPair {
			failf("cannot handle dotted list")
		}
		lp = lp.Data.(*Pair).Rest
		n++
	}
	return n
}

// String renders a debug representation. Unlike FormatValue it tolerates
// the reader-internal markers, so it is safe in failure messages.
func (v Value) String() string {
	if v == dotMarker {
		return "<dot>"
	}
	if v == rparenMarker {
		return "<right-paren>"
	}
	return FormatValue(v)
}
