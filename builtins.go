// builtins.go
//
// The primitive library. Every primitive is a Native registered once into
// the root environment; each receives the calling environment and its
// *unevaluated* argument list, so special forms (quote, if, define,
// lambda, setvalue) can decide for themselves what to evaluate.
package lispy

import "fmt"

func registerPrimitives(in *Interp) {
	in.Root.Define(in.Intern("t"), True)

	addPrimitive(in, "quote", primQuote)
	addPrimitive(in, "list", primList)
	addPrimitive(in, "setvalue", primSetValue)
	addPrimitive(in, "+", primPlus)
	addPrimitive(in, "define", primDefine)
	addPrimitive(in, "lambda", primLambda)
	addPrimitive(in, "if", primIf)
	addPrimitive(in, "=", primEqual)
	addPrimitive(in, "println", primPrintln)
	addPrimitive(in, "exit", primExit)
}

func addPrimitive(in *Interp, name string, fn NativeFn) {
	in.Root.Define(in.Intern(name), Value{Tag: VTNative, Data: &Native{Name: name, Fn: fn}})
}

// (quote expr) — returns expr unevaluated.
func primQuote(in *Interp, env *Env, args Value) Value {
	if listLength(args) != 1 {
		failf("malformed quote")
	}
	return args.Data.(*Pair).First
}

// (list expr ...) — evaluates every argument into a new proper list.
func primList(in *Interp, env *Env, args Value) Value {
	return in.evalList(env, args)
}

// (setvalue sym expr) — overwrites an existing binding's slot in place.
// Unlike define it never creates a binding.
func primSetValue(in *Interp, env *Env, args Value) Value {
	if listLength(args) != 2 {
		failf("malformed setvalue")
	}
	p := args.Data.(*Pair)
	if p.First.Tag != VTSymbol {
		failf("setvalue requires a symbol")
	}
	sym := p.First.Data.(*Symbol)
	b := env.lookup(sym)
	if b == nil {
		failf("unbound variable: %s", sym.Name)
	}
	val := in.eval(env, p.Rest.Data.(*Pair).First)
	b.val = val
	return val
}

// (+ int ...) — sum of all arguments; zero arguments sum to 0.
func primPlus(in *Interp, env *Env, args Value) Value {
	var sum int64
	for lp := in.evalList(env, args); !IsNil(lp); {
		p := lp.Data.(*Pair)
		if p.First.Tag != VTInt {
			failf("+ takes only integers")
		}
		sum += p.First.Data.(int64)
		lp = p.Rest
	}
	return IntVal(sum)
}

// (define sym expr) — binds sym in the *current* frame, shadowing any
// visible binding of the same name rather than mutating it.
func primDefine(in *Interp, env *Env, args Value) Value {
	if listLength(args) != 2 {
		failf("malformed define")
	}
	p := args.Data.(*Pair)
	if p.First.Tag != VTSymbol {
		failf("define requires a symbol")
	}
	val := in.eval(env, p.Rest.Data.(*Pair).First)
	env.Define(p.First.Data.(*Symbol), val)
	return val
}

// (lambda (sym ...) expr ...) — a closure capturing the current env. The
// parameter list must be a flat proper list of symbols and the body must
// hold at least one form.
func primLambda(in *Interp, env *Env, args Value) Value {
	if args.Tag != VTPair {
		failf("malformed lambda")
	}
	top := args.Data.(*Pair)
	if !IsList(top.First) || top.Rest.Tag != VTPair {
		failf("malformed lambda")
	}
	var params []*Symbol
	for lp := top.First; !IsNil(lp); {
		if lp.Tag != VTPair {
			failf("parameter list is not a flat list")
		}
		p := lp.Data.(*Pair)
		if p.First.Tag != VTSymbol {
			failf("parameter must be a symbol")
		}
		params = append(params, p.First.Data.(*Symbol))
		lp = p.Rest
	}
	return Value{Tag: VTClosure, Data: &Closure{Params: params, Body: top.Rest, Env: env}}
}

// (if cond then else ...) — evaluates cond; anything other than Nil takes
// the then branch. The remaining forms are an implicit sequence whose last
// value is returned, Nil when there are none.
func primIf(in *Interp, env *Env, args Value) Value {
	if listLength(args) < 2 {
		failf("malformed if")
	}
	p := args.Data.(*Pair)
	cond := in.eval(env, p.First)
	rest := p.Rest.Data.(*Pair)
	if !IsNil(cond) {
		return in.eval(env, rest.First)
	}
	return in.progn(env, rest.Rest)
}

// (= int int) — numeric equality; t or ().
func primEqual(in *Interp, env *Env, args Value) Value {
	if listLength(args) != 2 {
		failf("malformed =")
	}
	vals := in.evalList(env, args).Data.(*Pair)
	x := vals.First
	y := vals.Rest.Data.(*Pair).First
	if x.Tag != VTInt || y.Tag != VTInt {
		failf("= only takes integers")
	}
	if x.Data.(int64) == y.Data.(int64) {
		return True
	}
	return Nil
}

// (println expr) — prints the canonical text of the evaluated argument
// plus a newline to the interpreter's output sink; returns Nil.
func primPrintln(in *Interp, env *Env, args Value) Value {
	if listLength(args) != 1 {
		failf("malformed println")
	}
	v := in.eval(env, args.Data.(*Pair).First)
	fmt.Fprintln(in.Stdout, FormatValue(v))
	return Nil
}

// (exit) — unwinds past all pending evaluation; surfaces as ErrExit.
func primExit(in *Interp, env *Env, args Value) Value {
	panic(exitSignal{})
}
