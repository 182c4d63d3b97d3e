package maltest

import (
	"testing"
)

func TestMacro(t *testing.T) {
	tests := TestSuite{
		{"defmacro!", TestSequence{
			{"(defmacro! one (fn* () 1))", "#<function>"},
			{"(one)", "1"},
			{"(defmacro! unless (fn* (pred a b) `(if ~pred ~b ~a)))", "#<function>"},
			{"(unless false 7 8)", "7"},
			{"(unless true 7 8)", "8"},
			{"(macro? unless)", "true"},
			{"(fn? unless)", "false"},
			{"(macro? not)", "false"},
		}},
		{"arguments are not evaluated", TestSequence{
			{"(defmacro! unless (fn* (pred a b) `(if ~pred ~b ~a)))", "#<function>"},
			{`(unless true (throw "not evaluated") 2)`, "2"},
		}},
		{"macroexpand", TestSequence{
			{"(defmacro! unless (fn* (pred a b) `(if ~pred ~b ~a)))", "#<function>"},
			{"(macroexpand (unless PRED A B))", "(if PRED B A)"},
			{"(macroexpand (+ 1 2))", "(+ 1 2)"},
			{"(macroexpand 1)", "1"},
		}},
		{"nested expansion", TestSequence{
			{"(defmacro! unless (fn* (pred a b) `(if ~pred ~b ~a)))", "#<function>"},
			{"(defmacro! unless2 (fn* (pred a b) `(unless ~pred ~a ~b)))", "#<function>"},
			{"(macroexpand (unless2 x y z))", "(if x z y)"},
			{"(unless2 false 1 2)", "1"},
		}},
		{"defmacro! does not modify its function", TestSequence{
			{"(def! f (fn* (x) `(+ ~x 1)))", "#<function>"},
			{"(defmacro! m f)", "#<function>"},
			{"(m 2)", "3"},
			{"(f 2)", "(+ 2 1)"},
			{"(fn? f)", "true"},
		}},
		{"variadic macros", TestSequence{
			{"(defmacro! my-do (fn* (& body) `(do ~@body)))", "#<function>"},
			{"(my-do 1 2 3)", "3"},
		}},
		{"gensym", TestSequence{
			{"(symbol? (gensym))", "true"},
			{"(= (gensym) (gensym))", "false"},
			{`(defmacro! or2 (fn* (a b) (let* (g (gensym "or")) ` + "`" + `(let* (~g ~a) (if ~g ~g ~b)))))`, "#<function>"},
			{"(or2 nil 3)", "3"},
			{"(or2 4 3)", "4"},
		}},
		{"defmacro! requires a closure", TestSequence{
			{"(defmacro! m 1)", "defmacro! requires a closure: 1"},
		}},
	}
	RunTestSuite(t, tests)
}
