package libcore

import (
	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

var mapBuiltins = []*libutil.Builtin{
	libutil.Function("hash-map", lisp.Formals(lisp.VarArgSymbol, "kvs"), builtinHashMap),
	libutil.Function("assoc", lisp.Formals("map", lisp.VarArgSymbol, "kvs"), builtinAssoc),
	libutil.Function("dissoc", lisp.Formals("map", lisp.VarArgSymbol, "keys"), builtinDissoc),
	libutil.Function("get", lisp.Formals("map", "key"), builtinGet),
	libutil.Function("contains?", lisp.Formals("map", "key"), builtinContains),
	libutil.Function("keys", lisp.Formals("map"), builtinKeys),
	libutil.Function("vals", lisp.Formals("map"), builtinVals),
}

func mapArg(env *lisp.LEnv, v *lisp.LVal) (*lisp.LVal, *lisp.LVal) {
	m, lerr := v.AsMap()
	if lerr != nil {
		return nil, libutil.Arg(env, lerr)
	}
	return m, nil
}

func builtinHashMap(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	if len(args.Cells)%2 != 0 {
		return env.Errorf("missing map value")
	}
	m := lisp.Map(args.Cells...)
	if m.Type == lisp.LError {
		return libutil.Arg(env, m)
	}
	return m
}

func builtinAssoc(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	m, lerr := mapArg(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	v := m.MapAssoc(args.Cells[1:]...)
	if v.Type == lisp.LError {
		return libutil.Arg(env, v)
	}
	return v
}

func builtinDissoc(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	m, lerr := mapArg(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	return m.MapDissoc(args.Cells[1:]...)
}

func builtinGet(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	if args.Cells[0].IsNil() {
		return lisp.Nil()
	}
	m, lerr := mapArg(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	v, ok := m.MapGet(args.Cells[1])
	if !ok {
		return lisp.Nil()
	}
	return v
}

func builtinContains(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	m, lerr := mapArg(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	_, ok := m.MapGet(args.Cells[1])
	return lisp.Bool(ok)
}

func builtinKeys(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	m, lerr := mapArg(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	return m.MapKeys()
}

func builtinVals(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	m, lerr := mapArg(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	return m.MapVals()
}
