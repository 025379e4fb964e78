// interp.go
//
// The interpreter: one Interp owns all process state (the symbol registry,
// the root environment, the output sink) and exposes the public surface.
//
// Scoping: code evaluates against a chain of Env frames. A closure call
// pushes a fresh frame whose parent is the closure's *captured* env, not
// the caller's — that is what makes scoping lexical rather than dynamic.
//
// Error discipline (mirrors the engine this grew out of): internal code
// panics with typed signals (*EvalError, exitSignal); the exported entry
// points recover and return them as ordinary Go errors. Eval/apply recurse
// on the host stack, so recursion depth is bounded only by the Go stack;
// pathologically deep programs exhaust it. There is no evaluation-depth
// ceiling and no value reclamation: everything read or computed lives for
// the process.
package lispy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// EvalError is an evaluation-time failure (undefined symbol, non-callable
// head, argument-count mismatch, wrong argument type, ...).
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string { return e.Msg }

// ErrExit is returned by the Eval* methods when the program called (exit).
// Drivers translate it into a success exit status.
var ErrExit = errors.New("exit")

// exitSignal unwinds past any pending evaluation when (exit) runs.
type exitSignal struct{}

// failf aborts the current evaluation with an EvalError. Engine-internal;
// the public entry points recover it.
func failf(format string, args ...interface{}) {
	panic(&EvalError{Msg: fmt.Sprintf(format, args...)})
}

// Interp is a complete interpreter instance: symbol table, root
// environment with the primitive library installed, and the sink println
// writes to. Create one per process run with NewInterp; it is not safe for
// concurrent use (the symbol registry and every frame mutate in place).
type Interp struct {
	// Root is the shared, process-lifetime top-level environment.
	Root *Env

	// Stdout receives println output. Defaults to os.Stdout.
	Stdout io.Writer

	// Expand is consulted with each unevaluated application form before
	// it is evaluated. When it returns a different form, evaluation
	// restarts on the rewrite. Nil (the default) means no macros: every
	// form passes through unchanged.
	Expand func(env *Env, form Value) Value

	symbols []*Symbol
}

// NewInterp returns an interpreter with the primitive library and the
// constant t registered in a fresh root environment.
func NewInterp() *Interp {
	in := &Interp{Root: NewEnv(nil), Stdout: os.Stdout}
	registerPrimitives(in)
	return in
}

// Intern returns the canonical symbol for name, creating it on first use.
// This is the only constructor of symbols; environment lookup relies on
// the resulting pointer identity. The registry is a linear scan and only
// grows, matching the reference engine; lookups are O(distinct symbols).
func (in *Interp) Intern(name string) *Symbol {
	for _, s := range in.symbols {
		if s.Name == name {
			return s
		}
	}
	s := &Symbol{Name: name}
	in.symbols = append(in.symbols, s)
	return s
}

// Eval evaluates one form in env (the root env when env is nil). On
// failure it returns a *EvalError; (exit) surfaces as ErrExit.
func (in *Interp) Eval(env *Env, form Value) (v Value, err error) {
	defer in.recoverEval(&v, &err)
	if env == nil {
		env = in.Root
	}
	return in.eval(env, form), nil
}

// Apply invokes a native or closure value on an already-built argument
// list, under the same error discipline as Eval. Natives receive args
// unevaluated; wrap literals in quote forms if they must survive a native
// that evaluates.
func (in *Interp) Apply(env *Env, fn Value, args Value) (v Value, err error) {
	defer in.recoverEval(&v, &err)
	if env == nil {
		env = in.Root
	}
	return in.apply(env, fn, args), nil
}

func (in *Interp) recoverEval(v *Value, err *error) {
	if r := recover(); r != nil {
		switch sig := r.(type) {
		case *EvalError:
			*v, *err = Value{}, sig
		case exitSignal:
			*v, *err = Value{}, ErrExit
		default:
			panic(r)
		}
	}
}

// ReadString parses every form in src, rejecting stray dots and stray
// parentheses at top level. Interned symbols persist in the registry.
func (in *Interp) ReadString(src string) ([]Value, error) {
	rd := NewReader(strings.NewReader(src))
	var forms []Value
	for {
		form, err := rd.Read(in)
		if err == io.EOF {
			return forms, nil
		}
		if err != nil {
			return nil, err
		}
		if form == rparenMarker {
			return nil, rd.errAt("stray parenthesis")
		}
		if form == dotMarker {
			return nil, rd.errAt("stray dot")
		}
		forms = append(forms, form)
	}
}

// EvalString reads and evaluates every form in src against the root
// environment and returns the last result (Nil for empty input).
func (in *Interp) EvalString(src string) (Value, error) {
	forms, err := in.ReadString(src)
	if err != nil {
		return Value{}, err
	}
	result := Nil
	for _, form := range forms {
		result, err = in.Eval(in.Root, form)
		if err != nil {
			return Value{}, err
		}
	}
	return result, nil
}

// Run drives the full read-eval-print loop over a stream: each form is
// evaluated in the root environment and its result printed to w followed
// by a newline. It returns nil on end-of-input, ErrExit when the program
// called (exit), and the first syntax or evaluation error otherwise —
// error propagation is the caller's policy (the batch driver treats any
// error as fatal; the REPL reports and continues).
func (in *Interp) Run(r io.Reader, w io.Writer) error {
	rd := NewReader(r)
	for {
		form, err := rd.Read(in)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if form == rparenMarker {
			return rd.errAt("stray parenthesis")
		}
		if form == dotMarker {
			return rd.errAt("stray dot")
		}
		v, err := in.Eval(in.Root, form)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, FormatValue(v))
	}
}

// eval is the engine core. Integers, natives, closures, environments, and
// the printable sentinels evaluate to themselves; symbols resolve through
// the frame chain; a pair is an application form.
func (in *Interp) eval(env *Env, v Value) Value {
	switch v.Tag {
	case VTInt, VTNative, VTClosure, VTEnv:
		return v

	case VTSentinel:
		if isMarker(v) {
			failf("reader marker is not a value")
		}
		return v

	case VTSymbol:
		sym := v.Data.(*Symbol)
		b := env.lookup(sym)
		if b == nil {
			failf("undefined symbol: %s", sym.Name)
		}
		return b.val

	case VTPair:
		if expanded := in.macroexpand(env, v); expanded != v {
			return in.eval(env, expanded)
		}
		p := v.Data.(*Pair)
		fn := in.eval(env, p.First)
		if fn.Tag != VTNative && fn.Tag != VTClosure {
			failf("the head of a list must be a function")
		}
		return in.apply(env, fn, p.Rest)
	}

	failf("unknown value tag %d", int(v.Tag))
	return Value{}
}

// macroexpand offers the unevaluated application form to the rewrite hook.
func (in *Interp) macroexpand(env *Env, form Value) Value {
	if in.Expand == nil {
		return form
	}
	return in.Expand(env, form)
}

// apply dispatches a call. Natives receive args unevaluated together with
// the *calling* env; closure arguments are evaluated eagerly in the
// calling env and zipped positionally into a frame under the captured env.
func (in *Interp) apply(env *Env, fn Value, args Value) Value {
	if !IsList(args) {
		failf("argument must be a list")
	}
	switch fn.Tag {
	case VTNative:
		return fn.Data.(*Native).Fn(in, env, args)

	case VTClosure:
		cl := fn.Data.(*Closure)
		vals := in.evalList(env, args)
		if listLength(vals) != len(cl.Params) {
			failf("number of arguments does not match")
		}
		frame := NewEnv(cl.Env)
		lp := vals
		for _, param := range cl.Params {
			p := lp.Data.(*Pair)
			frame.Define(param, p.First)
			lp = p.Rest
		}
		return in.progn(frame, cl.Body)
	}

	failf("not callable")
	return Value{}
}

// evalList evaluates every element of a proper list, in order, and
// collects the results into a new proper list.
func (in *Interp) evalList(env *Env, list Value) Value {
	head := Nil
	var tail *Pair
	for lp := list; !IsNil(lp); {
		if lp.Tag != VTPair {
			failf("cannot handle dotted list")
		}
		p := lp.Data.(*Pair)
		cell := &Pair{First: in.eval(env, p.First), Rest: Nil}
		if tail == nil {
			head = Value{Tag: VTPair, Data: cell}
		} else {
			tail.Rest = Value{Tag: VTPair, Data: cell}
		}
		tail = cell
		lp = p.Rest
	}
	return head
}

// progn evaluates forms in order and returns the last value, Nil when the
// sequence is empty.
func (in *Interp) progn(env *Env, forms Value) Value {
	r := Nil
	for lp := forms; !IsNil(lp); {
		if lp.Tag != VTPair {
			failf("cannot handle dotted list")
		}
		p := lp.Data.(*Pair)
		r = in.eval(env, p.First)
		lp = p.Rest
	}
	return r
}
