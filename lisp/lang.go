package lisp

// VarArgSymbol is the symbol that indicates a variadic function argument in a
// function's list of formal arguments.
const VarArgSymbol = "&"

// KeywordPrefix is the leading character of every keyword.
const KeywordPrefix = ':'

// Names of the evaluator's special forms.
const (
	SymDef              = "def!"
	SymDefMacro         = "defmacro!"
	SymLet              = "let*"
	SymDo               = "do"
	SymIf               = "if"
	SymFn               = "fn*"
	SymQuote            = "quote"
	SymQuasiquote       = "quasiquote"
	SymQuasiquoteExpand = "quasiquoteexpand"
	SymUnquote          = "unquote"
	SymSpliceUnquote    = "splice-unquote"
	SymMacroexpand      = "macroexpand"
	SymTry              = "try*"
	SymCatch            = "catch*"
)

// Symbols bound to truthy values in order to enable evaluation tracing.
const (
	DebugEvalSymbol        = "DEBUG-EVAL"
	DebugEvalEnvSymbol     = "DEBUG-EVAL-ENV"
	DebugEvalEnvFullSymbol = "DEBUG-EVAL-ENV-FULL"
)

// Formals returns an LVal reprsenting a function's formal argument list
// containing the given symbols.
func Formals(argSymbols ...string) *LVal {
	cells := make([]*LVal, len(argSymbols))
	for i, sym := range argSymbols {
		cells[i] = Symbol(sym)
	}
	return List(cells...)
}
