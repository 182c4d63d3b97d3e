package libcore

import (
	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

var seqBuiltins = []*libutil.Builtin{
	libutil.Function("list", lisp.Formals(lisp.VarArgSymbol, "args"), builtinList),
	libutil.Function("vector", lisp.Formals(lisp.VarArgSymbol, "args"), builtinVector),
	libutil.Function("vec", lisp.Formals("seq"), builtinVec),
	libutil.Function("empty?", lisp.Formals("seq"), builtinIsEmpty),
	libutil.Function("count", lisp.Formals("seq"), builtinCount),
	libutil.Function("cons", lisp.Formals("head", "tail"), builtinCons),
	libutil.Function("concat", lisp.Formals(lisp.VarArgSymbol, "seqs"), builtinConcat),
	libutil.Function("nth", lisp.Formals("seq", "n"), builtinNth),
	libutil.Function("first", lisp.Formals("seq"), builtinFirst),
	libutil.Function("rest", lisp.Formals("seq"), builtinRest),
	libutil.Function("conj", lisp.Formals("seq", lisp.VarArgSymbol, "xs"), builtinConj),
	libutil.Function("seq", lisp.Formals("x"), builtinSeq),
	libutil.Function("apply", lisp.Formals("fn", lisp.VarArgSymbol, "args"), builtinApply),
	libutil.Function("map", lisp.Formals("fn", "seq"), builtinMap),
}

// seqCells returns the elements of a list or vector.  Nil is treated as an
// empty sequence.
func seqCells(env *lisp.LEnv, v *lisp.LVal) ([]*lisp.LVal, *lisp.LVal) {
	if v.IsNil() {
		return nil, nil
	}
	cells, lerr := v.AsSeq()
	if lerr != nil {
		return nil, libutil.Arg(env, lerr)
	}
	return cells, nil
}

func copyCells(cells []*lisp.LVal) []*lisp.LVal {
	cp := make([]*lisp.LVal, len(cells))
	copy(cp, cells)
	return cp
}

func builtinList(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.List(args.Cells...)
}

func builtinVector(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.Vector(args.Cells...)
}

func builtinVec(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	if args.Cells[0].Type == lisp.LVector {
		return args.Cells[0]
	}
	cells, lerr := seqCells(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	return lisp.Vector(copyCells(cells)...)
}

func builtinIsEmpty(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x := args.Cells[0]
	switch x.Type {
	case lisp.LMap:
		return lisp.Bool(x.Len() == 0)
	case lisp.LString:
		return lisp.Bool(len(x.Str) == 0)
	}
	cells, lerr := seqCells(env, x)
	if lerr != nil {
		return lerr
	}
	return lisp.Bool(len(cells) == 0)
}

func builtinCount(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x := args.Cells[0]
	switch x.Type {
	case lisp.LMap:
		return lisp.Int(x.Len())
	case lisp.LString:
		return lisp.Int(len(x.Str))
	}
	cells, lerr := seqCells(env, x)
	if lerr != nil {
		return lerr
	}
	return lisp.Int(len(cells))
}

func builtinCons(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	tail, lerr := seqCells(env, args.Cells[1])
	if lerr != nil {
		return lerr
	}
	cells := make([]*lisp.LVal, 0, len(tail)+1)
	cells = append(cells, args.Cells[0])
	cells = append(cells, tail...)
	return lisp.List(cells...)
}

func builtinConcat(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	var cells []*lisp.LVal
	for _, seq := range args.Cells {
		xs, lerr := seqCells(env, seq)
		if lerr != nil {
			return lerr
		}
		cells = append(cells, xs...)
	}
	return lisp.List(cells...)
}

func builtinNth(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	cells, lerr := seqCells(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	n, lerr := args.Cells[1].AsInt()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	if n < 0 || n >= len(cells) {
		return env.ErrorConditionf(lisp.CondIndex, "nth out-of-bounds index; n = %d; bounds = %d", n, len(cells))
	}
	return cells[n]
}

func builtinFirst(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	cells, lerr := seqCells(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	if len(cells) == 0 {
		return lisp.Nil()
	}
	return cells[0]
}

func builtinRest(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	cells, lerr := seqCells(env, args.Cells[0])
	if lerr != nil {
		return lerr
	}
	if len(cells) == 0 {
		return lisp.List()
	}
	return lisp.List(copyCells(cells[1:])...)
}

func builtinConj(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	seq, xs := args.Cells[0], args.Cells[1:]
	cells, lerr := seqCells(env, seq)
	if lerr != nil {
		return lerr
	}
	if seq.Type == lisp.LVector {
		conj := make([]*lisp.LVal, 0, len(cells)+len(xs))
		conj = append(conj, cells...)
		conj = append(conj, xs...)
		return lisp.Vector(conj...)
	}
	conj := make([]*lisp.LVal, 0, len(cells)+len(xs))
	for i := len(xs) - 1; i >= 0; i-- {
		conj = append(conj, xs[i])
	}
	conj = append(conj, cells...)
	return lisp.List(conj...)
}

func builtinSeq(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	x := args.Cells[0]
	switch x.Type {
	case lisp.LString:
		if len(x.Str) == 0 {
			return lisp.Nil()
		}
		var chars []*lisp.LVal
		for _, c := range x.Str {
			chars = append(chars, lisp.String(string(c)))
		}
		return lisp.List(chars...)
	case lisp.LList, lisp.LVector:
		if len(x.Cells) == 0 {
			return lisp.Nil()
		}
		return lisp.List(copyCells(x.Cells)...)
	case lisp.LNil:
		return x
	default:
		return env.ErrorConditionf(lisp.CondTypeMismatch, "seq: expected sequence or string but got %v", x.Type)
	}
}

func builtinApply(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	fun, lerr := args.Cells[0].AsFun()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	fargs := copyCells(args.Cells[1:])
	if len(fargs) > 0 {
		last := fargs[len(fargs)-1]
		rest, lerr := seqCells(env, last)
		if lerr != nil {
			return lerr
		}
		fargs = append(fargs[:len(fargs)-1], rest...)
	}
	return env.Apply(fun, fargs)
}

func builtinMap(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	fun, lerr := args.Cells[0].AsFun()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	cells, lerr := seqCells(env, args.Cells[1])
	if lerr != nil {
		return lerr
	}
	results := make([]*lisp.LVal, len(cells))
	for i, x := range cells {
		results[i] = env.Apply(fun, []*lisp.LVal{x})
		if results[i].Type == lisp.LError {
			return results[i]
		}
	}
	return lisp.List(results...)
}
