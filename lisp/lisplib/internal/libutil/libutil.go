// Package libutil provides helpers for defining builtin library functions.
package libutil

import (
	"github.com/bmatsuo/gomal/lisp"
)

// Builtin is a named builtin function with a formal argument list.
type Builtin struct {
	name    string
	formals *lisp.LVal
	fun     lisp.LBuiltin
	nreq    int
	varargs bool
}

// Function returns a Builtin which calls fn after checking the number of
// arguments against formals.
func Function(name string, formals *lisp.LVal, fn lisp.LBuiltin) *Builtin {
	b := &Builtin{
		name:    name,
		formals: formals,
		fun:     fn,
	}
	for _, sym := range formals.Cells {
		if sym.Str == lisp.VarArgSymbol {
			b.varargs = true
			break
		}
		b.nreq++
	}
	return b
}

// Name returns the symbol the Builtin is bound to.
func (fn *Builtin) Name() string {
	return fn.name
}

// Formals returns the formal argument list of the Builtin.
func (fn *Builtin) Formals() *lisp.LVal {
	return fn.formals
}

// Eval implements lisp.LBuiltin.
func (fn *Builtin) Eval(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	n := len(args.Cells)
	if n < fn.nreq || (!fn.varargs && n > fn.nreq) {
		return env.ErrorConditionf(lisp.CondArity,
			"%s: invalid number of arguments: %d (expected %s)", fn.name, n, fn.formals)
	}
	return fn.fun(env, args)
}

// AddBuiltins binds each of fns in the root of env.
func AddBuiltins(env *lisp.LEnv, fns ...*Builtin) {
	root := env.Root()
	for _, fn := range fns {
		root.Put(lisp.Symbol(fn.name), lisp.Fun(fn.name, fn.Eval))
	}
}

// StringArgs narrows each argument in args to a string.
func StringArgs(env *lisp.LEnv, args []*lisp.LVal) ([]string, *lisp.LVal) {
	strs := make([]string, len(args))
	for i, arg := range args {
		s, lerr := arg.AsString()
		if lerr != nil {
			return nil, Arg(env, lerr)
		}
		strs[i] = s
	}
	return strs, nil
}

// Arg attaches the current call stack of env to an error produced by one of
// the lisp.LVal narrowing methods.
func Arg(env *lisp.LEnv, lerr *lisp.LVal) *lisp.LVal {
	if lerr.Stack == nil {
		lerr.Stack = env.Runtime.Stack.Copy()
	}
	return lerr
}
