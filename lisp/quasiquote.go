package lisp

// Quasiquote rewrites the template x into ordinary code which constructs x
// when evaluated.  Unquoted forms are evaluated in place and splice-unquoted
// forms are concatenated into the enclosing sequence.  An unquote or
// splice-unquote without exactly one argument is a syntax error.
func Quasiquote(x *LVal) *LVal {
	switch x.Type {
	case LVector:
		if len(x.Cells) == 0 {
			// (vec []) keeps the result a vector
			return List(Symbol("vec"), x)
		}
		cells := quasiquoteCells(x.Cells)
		if cells.Type == LError {
			return cells
		}
		return List(Symbol("vec"), cells)
	case LList:
		if len(x.Cells) == 0 {
			return x
		}
		if isHeadSymbol(x, SymUnquote) {
			if len(x.Cells) != 2 {
				return unquoteArity(SymUnquote)
			}
			return x.Cells[1]
		}
		return quasiquoteCells(x.Cells)
	case LSymbol, LMap:
		return List(Symbol(SymQuote), x)
	default:
		return x
	}
}

// quasiquoteCells builds the list construction code by walking cells right
// to left.
func quasiquoteCells(cells []*LVal) *LVal {
	acc := List(Symbol("list"))
	for i := len(cells) - 1; i >= 0; i-- {
		elt := cells[i]
		if isHeadSymbol(elt, SymSpliceUnquote) {
			if len(elt.Cells) != 2 {
				return unquoteArity(SymSpliceUnquote)
			}
			acc = List(Symbol("concat"), elt.Cells[1], acc)
			continue
		}
		elt = Quasiquote(elt)
		if elt.Type == LError {
			return elt
		}
		acc = List(Symbol("cons"), elt, acc)
	}
	return acc
}

func unquoteArity(name string) *LVal {
	return ErrorConditionf(CondSyntax, "%s requires exactly one argument", name)
}

func isHeadSymbol(v *LVal, name string) bool {
	return v.Type == LList &&
		len(v.Cells) > 0 &&
		v.Cells[0].Type == LSymbol &&
		v.Cells[0].Str == name
}
