// NOTE:  This file uses package name suffixed with _test to avoid an import
// cycle.
package libcore_test

import (
	"strings"
	"testing"

	"github.com/bmatsuo/gomal/lisp/lisplib/libcore"
	"github.com/bmatsuo/gomal/maltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackage(t *testing.T) {
	r := &maltest.Runner{}
	r.RunTestFile(t, "testdata/core_test.mal")
}

func TestSequences(t *testing.T) {
	tests := maltest.TestSuite{
		{"constructors", maltest.TestSequence{
			{"(list)", "()"},
			{"(list 1 2)", "(1 2)"},
			{"(vector 1 2)", "[1 2]"},
			{"(vec (list 1 2))", "[1 2]"},
			{"(vec nil)", "[]"},
		}},
		{"predicates", maltest.TestSequence{
			{"(list? (list))", "true"},
			{"(list? [])", "false"},
			{"(vector? [])", "true"},
			{"(sequential? [])", "true"},
			{"(sequential? {})", "false"},
			{"(empty? ())", "true"},
			{"(empty? [1])", "false"},
			{"(empty? nil)", "true"},
			{"(count nil)", "0"},
			{"(count [1 2 3])", "3"},
			{`(count "abc")`, "3"},
			{"(count {:a 1 :b 2})", "2"},
		}},
		{"cons and concat", maltest.TestSequence{
			{"(cons 1 (list 2 3))", "(1 2 3)"},
			{"(cons 1 [2 3])", "(1 2 3)"},
			{"(cons [1] ())", "([1])"},
			{"(concat)", "()"},
			{"(concat [1 2] (list 3) [])", "(1 2 3)"},
			{"(def! v [1 2])", "[1 2]"},
			{"(concat v v)", "(1 2 1 2)"},
			{"v", "[1 2]"},
		}},
		{"access", maltest.TestSequence{
			{"(nth [1 2 3] 0)", "1"},
			{"(nth (list 1 2 3) 2)", "3"},
			{"(nth [1 2 3] 3)", "nth out-of-bounds index; n = 3; bounds = 3"},
			{"(nth [1] -1)", "nth out-of-bounds index; n = -1; bounds = 1"},
			{"(first [1 2])", "1"},
			{"(first [])", "nil"},
			{"(first nil)", "nil"},
			{"(rest [1 2 3])", "(2 3)"},
			{"(rest [])", "()"},
			{"(rest nil)", "()"},
		}},
		{"conj", maltest.TestSequence{
			{"(conj (list 1 2) 3 4)", "(4 3 1 2)"},
			{"(conj [1 2] 3 4)", "[1 2 3 4]"},
			{"(conj [] 1)", "[1]"},
		}},
		{"seq", maltest.TestSequence{
			{`(seq "abc")`, `("a" "b" "c")`},
			{`(seq "")`, "nil"},
			{"(seq [1 2])", "(1 2)"},
			{"(seq ())", "nil"},
			{"(seq nil)", "nil"},
		}},
		{"apply and map", maltest.TestSequence{
			{"(apply + (list 1 2 3))", "6"},
			{"(apply + 1 2 [3 4])", "10"},
			{"(apply list [])", "()"},
			{"(map (fn* (x) (* x x)) [1 2 3])", "(1 4 9)"},
			{"(map list (list 1 2))", "((1) (2))"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestMaps(t *testing.T) {
	tests := maltest.TestSuite{
		{"hash-map", maltest.TestSequence{
			{"(hash-map)", "{}"},
			{`(hash-map "a" 1 :b 2)`, `{"a" 1 :b 2}`},
			{"(hash-map :a)", "missing map value"},
			{"(hash-map 1 2)", "invalid map key type: int"},
			{"(map? {})", "true"},
			{"(map? [])", "false"},
		}},
		{"assoc and dissoc", maltest.TestSequence{
			{"(def! m {:a 1})", "{:a 1}"},
			{"(assoc m :b 2)", "{:a 1 :b 2}"},
			{"(assoc m :a 3)", "{:a 3}"},
			{"m", "{:a 1}"},
			{"(assoc m :b)", "missing map value"},
			{"(dissoc {:a 1 :b 2} :a)", "{:b 2}"},
			{"(dissoc {:a 1} :z)", "{:a 1}"},
		}},
		{"lookup", maltest.TestSequence{
			{"(get {:a 1} :a)", "1"},
			{"(get {:a 1} :b)", "nil"},
			{"(get nil :a)", "nil"},
			{`(get {"a" 1} :a)`, "nil"},
			{"(contains? {:a nil} :a)", "true"},
			{"(contains? {:a 1} :b)", "false"},
			{"(keys {:a 1 :b 2})", "(:a :b)"},
			{"(vals {:a 1 :b 2})", "(1 2)"},
			{"(keys {})", "()"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestAtoms(t *testing.T) {
	tests := maltest.TestSuite{
		{"atoms", maltest.TestSequence{
			{"(def! a (atom 1))", "(atom 1)"},
			{"(atom? a)", "true"},
			{"(atom? 1)", "false"},
			{"(deref a)", "1"},
			{"@a", "1"},
			{"(reset! a 2)", "2"},
			{"@a", "2"},
			{"(swap! a + 3)", "5"},
			{"(swap! a (fn* (x y z) (* x y z)) 2 3)", "30"},
			{"@a", "30"},
		}},
		{"atoms are shared by closures", maltest.TestSequence{
			{"(def! counter (atom 0))", "(atom 0)"},
			{"(def! inc! (fn* () (swap! counter (fn* (n) (+ n 1)))))", "#<function>"},
			{"(do (inc!) (inc!) (inc!))", "3"},
			{"@counter", "3"},
		}},
		{"atom holding itself", maltest.TestSequence{
			{"(def! a (atom nil))", "(atom nil)"},
			{"(reset! a a)", "(atom (atom ...))"},
			{"(pr-str (deref a))", `"(atom (atom ...))"`},
		}},
		{"atom identity", maltest.TestSequence{
			{"(= (atom 1) (atom 1))", "false"},
			{"(def! b (atom 1))", "(atom 1)"},
			{"(= b b)", "true"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestMetadata(t *testing.T) {
	tests := maltest.TestSuite{
		{"meta", maltest.TestSequence{
			{"(meta [1])", "nil"},
			{"(meta (with-meta [1] {:a 1}))", "{:a 1}"},
			{"(def! v [1 2])", "[1 2]"},
			{"(def! w (with-meta v :m))", "[1 2]"},
			{"(meta v)", "nil"},
			{"(meta w)", ":m"},
			{"(= v w)", "true"},
			{"(meta ^{:x 1} [])", "{:x 1}"},
			{"(def! f (fn* () 1))", "#<function>"},
			{"(meta (with-meta f \"doc\"))", `"doc"`},
			{"(meta f)", "nil"},
			{"(with-meta 1 2)", "cannot attach metadata to int"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestSymbols(t *testing.T) {
	tests := maltest.TestSuite{
		{"symbol and keyword", maltest.TestSequence{
			{`(symbol "abc")`, "abc"},
			{`(symbol? (symbol "abc"))`, "true"},
			{`(keyword "abc")`, ":abc"},
			{"(keyword :abc)", ":abc"},
			{"(keyword? :a)", "true"},
			{`(keyword? "a")`, "false"},
			{"(keyword 1)", "expected string or keyword but got int: 1"},
		}},
		{"type predicates", maltest.TestSequence{
			{"(nil? nil)", "true"},
			{"(nil? false)", "false"},
			{"(true? true)", "true"},
			{"(true? 1)", "false"},
			{"(false? false)", "true"},
			{`(string? "")`, "true"},
			{"(string? :a)", "false"},
			{"(number? 1)", "true"},
			{"(fn? +)", "true"},
			{"(fn? (fn* () 1))", "true"},
			{"(fn? 1)", "false"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestGensymPrefix(t *testing.T) {
	r := &maltest.Runner{}
	env, err := r.NewEnv(nil)
	require.NoError(t, err)
	v := env.LoadString("test", "(gensym)")
	require.NotEqual(t, "error", v.Type.String(), v.String())
	assert.True(t, strings.HasPrefix(v.Str, libcore.DefaultGensymPrefix))
	v = env.LoadString("test", `(gensym "tmp")`)
	assert.True(t, strings.HasPrefix(v.Str, "tmp"))
	assert.Len(t, v.Str, len("tmp")+32)
}
