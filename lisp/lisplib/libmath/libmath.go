// Package libmath provides integer math builtins beyond basic arithmetic.
package libmath

import (
	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the math builtins to env
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	libutil.AddBuiltins(env, builtins...)
	return lisp.Nil()
}

var builtins = []*libutil.Builtin{
	libutil.Function("mod", lisp.Formals("a", "b"), builtinMod),
	libutil.Function("abs", lisp.Formals("x"), builtinAbs),
	libutil.Function("pow", lisp.Formals("base", "exponent"), builtinPow),
	libutil.Function("max", lisp.Formals("x", lisp.VarArgSymbol, "rest"), builtinMax),
	libutil.Function("min", lisp.Formals("x", lisp.VarArgSymbol, "rest"), builtinMin),
}

func intArgs(env *lisp.LEnv, args []*lisp.LVal) ([]int, *lisp.LVal) {
	xs := make([]int, len(args))
	for i := range args {
		x, lerr := args[i].AsInt()
		if lerr != nil {
			return nil, libutil.Arg(env, lerr)
		}
		xs[i] = x
	}
	return xs, nil
}

func builtinMod(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	xs, lerr := intArgs(env, args.Cells)
	if lerr != nil {
		return lerr
	}
	if xs[1] == 0 {
		return env.Errorf("division by zero")
	}
	return lisp.Int(xs[0] % xs[1])
}

func builtinAbs(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x, lerr := args.Cells[0].AsInt()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	if x < 0 {
		return lisp.Int(-x)
	}
	return args.Cells[0]
}

func builtinPow(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	xs, lerr := intArgs(env, args.Cells)
	if lerr != nil {
		return lerr
	}
	base, exp := xs[0], xs[1]
	if exp < 0 {
		return env.Errorf("negative exponent: %d", exp)
	}
	// exponentiation by squaring
	n := 1
	for exp > 0 {
		if exp&1 == 1 {
			n *= base
		}
		base *= base
		exp >>= 1
	}
	return lisp.Int(n)
}

func builtinMax(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	xs, lerr := intArgs(env, args.Cells)
	if lerr != nil {
		return lerr
	}
	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	return lisp.Int(max)
}

func builtinMin(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	xs, lerr := intArgs(env, args.Cells)
	if lerr != nil {
		return lerr
	}
	min := xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
	}
	return lisp.Int(min)
}
