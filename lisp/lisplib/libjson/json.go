// Package libjson provides builtins for encoding and decoding JSON.
package libjson

import (
	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lispjson"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the json builtins to env
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	libutil.AddBuiltins(env, Builtins(lispjson.DefaultSerializer)...)
	return lisp.Nil()
}

// Builtins takes the default serializer for a lisp environment and returns a
// set of builtin functions that use it.
func Builtins(s *lispjson.Serializer) []*libutil.Builtin {
	b := &builtins{s}
	return []*libutil.Builtin{
		libutil.Function("json-dump", lisp.Formals("object"), b.Dump),
		libutil.Function("json-load", lisp.Formals("json-string"), b.Load),
	}
}

type builtins struct {
	s *lispjson.Serializer
}

func (b *builtins) Dump(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	js, err := b.s.Dump(args.Cells[0])
	if err != nil {
		return env.Error(err)
	}
	return lisp.String(string(js))
}

func (b *builtins) Load(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	js, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	v := b.s.Load([]byte(js))
	if v.Type == lisp.LError {
		return libutil.Arg(env, v)
	}
	return v
}
