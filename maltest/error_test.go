package maltest

import (
	"testing"
)

func TestTryCatch(t *testing.T) {
	tests := TestSuite{
		{"throw", TestSequence{
			{`(throw "oops")`, `"oops"`},
			{`(throw {:msg "oops"})`, `{:msg "oops"}`},
		}},
		{"catch thrown values", TestSequence{
			{`(try* (throw "oops") (catch* e e))`, `"oops"`},
			{`(try* (throw [1 2]) (catch* e (count e)))`, "2"},
			{`(try* (throw {:a 1}) (catch* e (get e :a)))`, "1"},
			{`(try* (throw nil) (catch* e e))`, "nil"},
		}},
		{"catch runtime errors", TestSequence{
			{"(try* (nonexistent-symbol) (catch* e e))", `"'nonexistent-symbol' not found"`},
			{"(try* (nth [1] 3) (catch* e e))", `"nth out-of-bounds index; n = 3; bounds = 1"`},
			{"(try* (/ 1 0) (catch* e (str \"caught: \" e)))", `"caught: division by zero"`},
			{"(try* (1 2) (catch* e (string? e)))", "true"},
		}},
		{"no error", TestSequence{
			{"(try* 123 (catch* e 456))", "123"},
			{"(try* 123)", "123"},
			{"(try* (+ 1 2) (catch* e (throw e)))", "3"},
		}},
		{"catch scope", TestSequence{
			{"(def! e 10)", "10"},
			{`(try* (throw 1) (catch* e (+ e 1)))`, "2"},
			{"e", "10"},
		}},
		{"nested try", TestSequence{
			{`(try* (try* (throw 1) (catch* e (throw (+ e 1)))) (catch* e (* e 10)))`, "20"},
		}},
		{"malformed catch", TestSequence{
			{"(try* (throw 1) (foo e e))", "catch* not found"},
			{"(try* (throw 1) (catch* e))", "catch* requires a symbol and a handler expression"},
		}},
		{"errors through builtins", TestSequence{
			{`(try* (map (fn* (x) (throw x)) [7 8]) (catch* e e))`, "7"},
			{`(try* (apply (fn* (x) (throw x)) [9]) (catch* e e))`, "9"},
			{`(try* (swap! (atom 1) (fn* (x) (throw "swap"))) (catch* e e))`, `"swap"`},
			{`(try* (eval '(throw "eval")) (catch* e e))`, `"eval"`},
		}},
		{"arity of builtins", TestSequence{
			{"(first)", "first: invalid number of arguments: 0 (expected (seq))"},
			{"(cons 1 2 3)", "cons: invalid number of arguments: 3 (expected (head tail))"},
		}},
	}
	RunTestSuite(t, tests)
}

func TestStackOverflow(t *testing.T) {
	tests := TestSuite{
		{"non-tail recursion", TestSequence{
			{"(def! deep (fn* (n) (+ 1 (deep (+ n 1)))))", "#<function>"},
			{"(try* (deep 0) (catch* e (string? e)))", "true"},
		}},
	}
	RunTestSuite(t, tests)
}
