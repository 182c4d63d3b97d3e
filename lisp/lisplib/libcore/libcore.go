// Package libcore provides the core mal builtin functions: arithmetic,
// comparison, type predicates, sequences, maps, atoms and metadata.
package libcore

import (
	"strings"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
	"github.com/google/uuid"
)

// DefaultGensymPrefix is the prefix of symbols returned by gensym when no
// prefix is given.
const DefaultGensymPrefix = "G__"

// LoadPackage adds the core builtins to the root of env.
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	libutil.AddBuiltins(env, builtins...)
	libutil.AddBuiltins(env, seqBuiltins...)
	libutil.AddBuiltins(env, mapBuiltins...)
	return lisp.Nil()
}

var builtins = []*libutil.Builtin{
	libutil.Function("+", lisp.Formals(lisp.VarArgSymbol, "x"), builtinAdd),
	libutil.Function("-", lisp.Formals("x", lisp.VarArgSymbol, "rest"), builtinSub),
	libutil.Function("*", lisp.Formals(lisp.VarArgSymbol, "x"), builtinMul),
	libutil.Function("/", lisp.Formals("x", lisp.VarArgSymbol, "rest"), builtinDiv),
	libutil.Function("=", lisp.Formals("a", "b"), builtinEqual),
	libutil.Function("<", lisp.Formals("a", "b"), compareInts(func(a, b int) bool { return a < b })),
	libutil.Function("<=", lisp.Formals("a", "b"), compareInts(func(a, b int) bool { return a <= b })),
	libutil.Function(">", lisp.Formals("a", "b"), compareInts(func(a, b int) bool { return a > b })),
	libutil.Function(">=", lisp.Formals("a", "b"), compareInts(func(a, b int) bool { return a >= b })),
	libutil.Function("nil?", lisp.Formals("x"), isType(lisp.LNil)),
	libutil.Function("true?", lisp.Formals("x"), isType(lisp.LTrue)),
	libutil.Function("false?", lisp.Formals("x"), isType(lisp.LFalse)),
	libutil.Function("symbol?", lisp.Formals("x"), isType(lisp.LSymbol)),
	libutil.Function("keyword?", lisp.Formals("x"), isType(lisp.LKeyword)),
	libutil.Function("string?", lisp.Formals("x"), isType(lisp.LString)),
	libutil.Function("number?", lisp.Formals("x"), isType(lisp.LInt)),
	libutil.Function("list?", lisp.Formals("x"), isType(lisp.LList)),
	libutil.Function("vector?", lisp.Formals("x"), isType(lisp.LVector)),
	libutil.Function("map?", lisp.Formals("x"), isType(lisp.LMap)),
	libutil.Function("atom?", lisp.Formals("x"), isType(lisp.LAtom)),
	libutil.Function("sequential?", lisp.Formals("x"), builtinIsSequential),
	libutil.Function("fn?", lisp.Formals("x"), builtinIsFn),
	libutil.Function("macro?", lisp.Formals("x"), builtinIsMacro),
	libutil.Function("symbol", lisp.Formals("name"), builtinSymbol),
	libutil.Function("keyword", lisp.Formals("name"), builtinKeyword),
	libutil.Function("gensym", lisp.Formals(lisp.VarArgSymbol, "prefix"), builtinGensym),
	libutil.Function("atom", lisp.Formals("x"), builtinAtom),
	libutil.Function("deref", lisp.Formals("atom"), builtinDeref),
	libutil.Function("reset!", lisp.Formals("atom", "x"), builtinReset),
	libutil.Function("swap!", lisp.Formals("atom", "fn", lisp.VarArgSymbol, "args"), builtinSwap),
	libutil.Function("meta", lisp.Formals("x"), builtinMeta),
	libutil.Function("with-meta", lisp.Formals("x", "meta"), builtinWithMeta),
	libutil.Function("throw", lisp.Formals("x"), builtinThrow),
	libutil.Function("eval", lisp.Formals("form"), builtinEval),
}

func intArgs(env *lisp.LEnv, args *lisp.LVal) ([]int, *lisp.LVal) {
	xs := make([]int, len(args.Cells))
	for i, arg := range args.Cells {
		x, lerr := arg.AsInt()
		if lerr != nil {
			return nil, libutil.Arg(env, lerr)
		}
		xs[i] = x
	}
	return xs, nil
}

func builtinAdd(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	xs, lerr := intArgs(env, args)
	if lerr != nil {
		return lerr
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return lisp.Int(sum)
}

func builtinSub(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	xs, lerr := intArgs(env, args)
	if lerr != nil {
		return lerr
	}
	if len(xs) == 1 {
		return lisp.Int(-xs[0])
	}
	diff := xs[0]
	for _, x := range xs[1:] {
		diff -= x
	}
	return lisp.Int(diff)
}

func builtinMul(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	xs, lerr := intArgs(env, args)
	if lerr != nil {
		return lerr
	}
	prod := 1
	for _, x := range xs {
		prod *= x
	}
	return lisp.Int(prod)
}

func builtinDiv(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	xs, lerr := intArgs(env, args)
	if lerr != nil {
		return lerr
	}
	if len(xs) == 1 {
		xs = []int{1, xs[0]}
	}
	quo := xs[0]
	for _, x := range xs[1:] {
		if x == 0 {
			return env.Errorf("division by zero")
		}
		quo /= x
	}
	return lisp.Int(quo)
}

func builtinEqual(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.Bool(args.Cells[0].Equal(args.Cells[1]))
}

func compareInts(cmp func(a, b int) bool) lisp.LBuiltin {
	return func(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
		xs, lerr := intArgs(env, args)
		if lerr != nil {
			return lerr
		}
		return lisp.Bool(cmp(xs[0], xs[1]))
	}
}

func isType(typ lisp.LType) lisp.LBuiltin {
	return func(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
		return lisp.Bool(args.Cells[0].Type == typ)
	}
}

func builtinIsSequential(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.Bool(args.Cells[0].IsSeq())
}

func builtinIsFn(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x := args.Cells[0]
	return lisp.Bool(x.Type == lisp.LFun && !x.IsMacro())
}

func builtinIsMacro(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.Bool(args.Cells[0].IsMacro())
}

func builtinSymbol(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	name, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	return lisp.Symbol(name)
}

func builtinKeyword(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x := args.Cells[0]
	switch x.Type {
	case lisp.LKeyword:
		return x
	case lisp.LString:
		return lisp.Keyword(x.Str)
	default:
		return env.ErrorConditionf(lisp.CondTypeMismatch, "expected string or keyword but got %v: %v", x.Type, x)
	}
}

func builtinGensym(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	prefix := DefaultGensymPrefix
	if len(args.Cells) > 0 {
		p, lerr := args.Cells[0].AsString()
		if lerr != nil {
			return libutil.Arg(env, lerr)
		}
		prefix = p
	}
	return lisp.Symbol(prefix + strings.ReplaceAll(uuid.New().String(), "-", ""))
}

func builtinAtom(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.Atom(args.Cells[0])
}

func builtinDeref(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	a, lerr := args.Cells[0].AsAtom()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	return a.Deref()
}

func builtinReset(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	a, lerr := args.Cells[0].AsAtom()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	return a.Reset(args.Cells[1])
}

func builtinSwap(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	a, lerr := args.Cells[0].AsAtom()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	fun, lerr := args.Cells[1].AsFun()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	fargs := make([]*lisp.LVal, 0, len(args.Cells)-1)
	fargs = append(fargs, a.Deref())
	fargs = append(fargs, args.Cells[2:]...)
	v := env.Apply(fun, fargs)
	if v.Type == lisp.LError {
		return v
	}
	return a.Reset(v)
}

func builtinMeta(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	meta := args.Cells[0].Meta
	if meta == nil {
		return lisp.Nil()
	}
	return meta
}

func builtinWithMeta(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x := args.Cells[0]
	switch x.Type {
	case lisp.LList, lisp.LVector, lisp.LMap, lisp.LFun:
	default:
		return env.ErrorConditionf(lisp.CondTypeMismatch, "cannot attach metadata to %v", x.Type)
	}
	cp := x.Copy()
	cp.Meta = args.Cells[1]
	return cp
}

func builtinThrow(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	lerr := lisp.Throw(args.Cells[0])
	lerr.Stack = env.Runtime.Stack.Copy()
	return lerr
}

func builtinEval(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return env.Root().Eval(args.Cells[0])
}
