// Package lisplib is used to conveniently load the standard library for the
// mal environment
package lisplib

import (
	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/libcore"
	"github.com/bmatsuo/gomal/lisp/lisplib/libjson"
	"github.com/bmatsuo/gomal/lisp/lisplib/libmath"
	"github.com/bmatsuo/gomal/lisp/lisplib/libos"
	"github.com/bmatsuo/gomal/lisp/lisplib/libos/libosio"
	"github.com/bmatsuo/gomal/lisp/lisplib/libregexp"
	"github.com/bmatsuo/gomal/lisp/lisplib/libstring"
	"github.com/bmatsuo/gomal/lisp/lisplib/libtesting"
	"github.com/bmatsuo/gomal/lisp/lisplib/libtime"
)

// HostLanguage is the value bound to *host-language*.
const HostLanguage = "go"

// Symbols bound by LoadLibrary.
const (
	HostLanguageSymbol = "*host-language*"
	ArgvSymbol         = "*ARGV*"
)

// Prelude is mal source evaluated by LoadLibrary after the builtin packages
// are loaded.
const Prelude = `
(def! not (fn* (a) (if a false true)))

(def! load-file
  (fn* (f)
    (eval (read-string (str "(do " (slurp f) "\nnil)")))))

(defmacro! cond
  (fn* (& xs)
    (if (> (count xs) 0)
      (list 'if (first xs)
        (if (> (count xs) 1)
          (nth xs 1)
          (throw "odd number of forms to cond"))
        (cons 'cond (rest (rest xs)))))))
`

var packages = []func(*lisp.LEnv) *lisp.LVal{
	libcore.LoadPackage,
	libstring.LoadPackage,
	libmath.LoadPackage,
	libtime.LoadPackage,
	libos.LoadPackage,
	libosio.LoadPackage,
	libregexp.LoadPackage,
	libjson.LoadPackage,
	libtesting.LoadPackage,
}

// LoadLibrary loads the standard library into env and evaluates the prelude.
// The environment runtime must have a Reader.
func LoadLibrary(env *lisp.LEnv) *lisp.LVal {
	env = env.Root()
	for _, load := range packages {
		e := load(env)
		if e.Type == lisp.LError {
			return e
		}
	}
	env.Put(lisp.Symbol(HostLanguageSymbol), lisp.String(HostLanguage))
	env.Put(lisp.Symbol(ArgvSymbol), lisp.List())
	e := env.LoadString("prelude", Prelude)
	if e.Type == lisp.LError {
		return e
	}
	return lisp.Nil()
}

// SetArgv binds *ARGV* in the root of env to a list of args.
func SetArgv(env *lisp.LEnv, args []string) {
	cells := make([]*lisp.LVal, len(args))
	for i := range args {
		cells[i] = lisp.String(args[i])
	}
	env.PutGlobal(lisp.Symbol(ArgvSymbol), lisp.List(cells...))
}
