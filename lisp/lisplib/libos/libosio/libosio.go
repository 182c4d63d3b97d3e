// Package libosio provides builtins for reading and writing whole files.
package libosio

import (
	"os"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the file builtins to env
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	libutil.AddBuiltins(env, builtins...)
	return lisp.Nil()
}

var builtins = []*libutil.Builtin{
	libutil.Function("slurp", lisp.Formals("path"), BuiltinSlurp),
	libutil.Function("spit", lisp.Formals("path", "data"), BuiltinSpit),
}

// BuiltinSlurp returns the contents of a file as a string.
func BuiltinSlurp(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	path, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return env.Error(err)
	}
	return lisp.String(string(b))
}

// BuiltinSpit writes a string to a file, replacing any previous contents.
func BuiltinSpit(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	path, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	data, lerr := args.Cells[1].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	err := os.WriteFile(path, []byte(data), 0644)
	if err != nil {
		return env.Error(err)
	}
	return lisp.Nil()
}
