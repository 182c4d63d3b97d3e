package lisptest

import (
	"testing"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEnv returns an environment with no standard library.  Only the
// integer builtins needed by these tests are bound.
func newEnv(t *testing.T, config ...lisp.Config) *lisp.LEnv {
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, config...)
	lerr := lisp.InitializeUserEnv(env, config...)
	require.Equal(t, lisp.LNil, lerr.Type)
	env.Put(lisp.Symbol("dec"), lisp.Fun("dec", func(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
		return lisp.Int(args.Cells[0].Int - 1)
	}))
	env.Put(lisp.Symbol("zero?"), lisp.Fun("zero?", func(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
		return lisp.Bool(args.Cells[0].Int == 0)
	}))
	return env
}

func result(v *lisp.LVal) string {
	if v.Type == lisp.LError {
		return v.ErrorMessage()
	}
	return v.Print(true)
}

func TestEval_simple(t *testing.T) {
	type testexpr []struct {
		expr   string
		result string
	}
	tests := []struct {
		name string
		testexpr
	}{
		{"self evaluating", testexpr{
			{"3", "3"},
			{`"abc"`, `"abc"`},
			{":kw", ":kw"},
			{"nil", "nil"},
			{"()", "()"},
			{"[1 [2]]", "[1 [2]]"},
			{`{"a" 1}`, `{"a" 1}`},
		}},
		{"symbols", testexpr{
			{"a", "'a' not found"},
			{"(def! a 1)", "1"},
			{"a", "1"},
			{"[a (dec a)]", "[1 0]"},
			{`{:k a}`, `{:k 1}`},
			{"(def! 1 1)", "def! name is not a symbol: 1"},
			{"(def! b)", "def! requires a name and a value"},
		}},
		{"quote", testexpr{
			{"'a", "a"},
			{"'(a [b])", "(a [b])"},
			{"''a", "(quote a)"},
			{"(quote)", "quote requires exactly one argument"},
		}},
		{"quasiquoteexpand", testexpr{
			{"(quasiquoteexpand (a ~b ~@c))", "(cons (quote a) (cons b (concat c (list))))"},
			{"(quasiquoteexpand [a])", "(vec (cons (quote a) (list)))"},
			{"(quasiquoteexpand [])", "(vec [])"},
			{"(quasiquoteexpand ~a)", "a"},
			{"(quasiquoteexpand 1)", "1"},
			{"(quasiquoteexpand (unquote))", "unquote requires exactly one argument"},
			{"(quasiquoteexpand (a (unquote b c)))", "unquote requires exactly one argument"},
			{"(quasiquoteexpand [(splice-unquote)])", "splice-unquote requires exactly one argument"},
			{"`(1 (splice-unquote))", "splice-unquote requires exactly one argument"},
		}},
		{"if", testexpr{
			{"(if nil 1 2)", "2"},
			{"(if false 1 2)", "2"},
			{"(if 0 1 2)", "1"},
			{`(if "" 1 2)`, "1"},
			{"(if () 1 2)", "1"},
			{"(if false 1)", "nil"},
			{"(if)", "if requires a condition, a consequent, and an optional alternative"},
		}},
		{"do", testexpr{
			{"(do 1 2 3)", "3"},
			{"(do (def! x 1) (def! y x))", "1"},
			{"(do)", "empty 'do'"},
		}},
		{"let*", testexpr{
			{"(let* (a 1 b a) b)", "1"},
			{"(let* [a 2] a)", "2"},
			{"(let* (a 1))", "nil"},
			{"a", "'a' not found"},
			{"(let* (a) a)", "let* bindings must have an even number of forms"},
			{"(let* (1 2) 3)", "let* binding name is not a symbol: 1"},
		}},
		{"fn*", testexpr{
			{"(fn* (a) a)", "#<function>"},
			{"((fn* (a b) b) 1 2)", "2"},
			{"((fn* [a] a) 1)", "1"},
			{"((fn* (& r) r) 1 2)", "(1 2)"},
			{"((fn* (a & r) r) 1)", "()"},
			{"((fn* () 1))", "1"},
			{"((fn* (a) 1 2) 3)", "1"},
			{"(fn* (a &) a)", "symbol & must be followed by exactly one formal"},
			{"(1 2)", "int is not callable: 1"},
			{`("f")`, `string is not callable: "f"`},
		}},
		{"closures", testexpr{
			{"(def! k (fn* (x) (fn* () x)))", "#<function>"},
			{"(def! k1 (k 1))", "#<function>"},
			{"(def! x 2)", "2"},
			{"(k1)", "1"},
		}},
		{"macros", testexpr{
			{"(defmacro! id (fn* (x) x))", "#<function>"},
			{"(id 5)", "5"},
			{"(macroexpand (id (a b)))", "(a b)"},
			{"(macroexpand (dec 1))", "(dec 1)"},
			{"(defmacro! m 1)", "defmacro! requires a closure: 1"},
		}},
		{"try*", testexpr{
			{"(try* 1 (catch* e 2))", "1"},
			{"(try* abc (catch* e e))", `"'abc' not found"`},
			{"(try* abc)", "'abc' not found"},
			{"(try* abc (foo e 1))", "catch* not found"},
			{"(try* abc (catch* 1 1))", "catch* requires a symbol and a handler expression"},
		}},
	}
	for i, test := range tests {
		env := newEnv(t)
		for j, expr := range test.testexpr {
			exprs, err := parser.ParseLVal([]byte(expr.expr))
			if !assert.NoError(t, err, "test %d %q: expr %d", i, test.name, j) {
				continue
			}
			v := env.Eval(exprs[0])
			assert.Equal(t, expr.result, result(v), "test %d %q: expr %d: %s", i, test.name, j, expr.expr)
		}
		assert.Equal(t, 0, env.Runtime.Stack.Height(), "test %d %q: stack not empty", i, test.name)
	}
}

func TestEval_tailCalls(t *testing.T) {
	env := newEnv(t, lisp.WithMaximumStackHeight(50))
	v := env.LoadString("test", `
		(def! loop (fn* (n) (if (zero? n) :done (loop (dec n)))))
		(loop 100000)`)
	assert.Equal(t, ":done", result(v))

	v = env.LoadString("test", `
		(def! loop-let (fn* (n) (let* (m (dec n)) (if (zero? m) :done (do (loop-let m))))))
		(loop-let 100000)`)
	assert.Equal(t, ":done", result(v))
}

func TestEval_stackOverflow(t *testing.T) {
	env := newEnv(t, lisp.WithMaximumStackHeight(50))
	v := env.LoadString("test", `
		(def! deep (fn* (n) [(deep n)]))
		(deep 1)`)
	require.Equal(t, lisp.LError, v.Type)
	assert.Equal(t, lisp.CondStackOverflow, v.Str)
	assert.Equal(t, "stack overflow: maximum height 50 exceeded", v.ErrorMessage())
	assert.Equal(t, 0, env.Runtime.Stack.Height())

	v = env.LoadString("test", `(try* (deep 1) (catch* e :caught))`)
	assert.Equal(t, ":caught", result(v))
}
