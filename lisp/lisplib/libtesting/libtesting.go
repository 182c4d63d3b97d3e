// Package libtesting provides builtins for defining test suites in mal
// source files.  Tests are collected by ``test'' (or the ``deftest'' macro)
// and run by a Go test harness.
package libtesting

import (
	"fmt"
	"sync"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

// CondAssert is the condition of errors raised by failed assertions.
const CondAssert = "assertion-failed"

const prelude = `
(defmacro! deftest
  (fn* (name & body)
    ` + "`" + `(test ~name (fn* () (do ~@body)))))
`

var suites sync.Map

// LoadPackage adds the testing builtins to env and associates a new
// TestSuite with its root.
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	suite := NewTestSuite()
	suites.Store(env.Root(), suite)
	libutil.AddBuiltins(env, suite.Builtins()...)
	libutil.AddBuiltins(env, builtins...)
	return env.Root().LoadString("libtesting", prelude)
}

var builtins = []*libutil.Builtin{
	libutil.Function("assert", lisp.Formals("x", lisp.VarArgSymbol, "message"), BuiltinAssert),
	libutil.Function("assert=", lisp.Formals("expected", "actual", lisp.VarArgSymbol, "message"), BuiltinAssertEqual),
}

// TestSuite is an ordered set of named tests.
type TestSuite struct {
	tests map[string]*Test
	order []string
}

func NewTestSuite() *TestSuite {
	return &TestSuite{
		tests: make(map[string]*Test),
	}
}

func (s *TestSuite) Add(t *Test) error {
	if s.tests[t.Name] != nil {
		return fmt.Errorf("test with the same name already defined: %v", t.Name)
	}
	s.order = append(s.order, t.Name)
	s.tests[t.Name] = t
	return nil
}

func (s *TestSuite) Len() int {
	return len(s.order)
}

func (s *TestSuite) Test(i int) *Test {
	return s.tests[s.order[i]]
}

func (s *TestSuite) Builtins() []*libutil.Builtin {
	return []*libutil.Builtin{
		libutil.Function("test", lisp.Formals("name", "fn"), s.BuiltinTest),
	}
}

// BuiltinTest adds a test to the suite.  The test function takes no
// arguments.
func (s *TestSuite) BuiltinTest(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	name, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	fun, lerr := args.Cells[1].AsFun()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	err := s.Add(&Test{Name: name, Fun: fun})
	if err != nil {
		return env.Error(err)
	}
	return lisp.Nil()
}

type Test struct {
	Name string
	Fun  *lisp.LVal
}

// Run calls the test function in env.
func (t *Test) Run(env *lisp.LEnv) *lisp.LVal {
	return env.Apply(t.Fun, nil)
}

// EnvTestSuite returns the TestSuite loaded into the root of env, or nil.
func EnvTestSuite(env *lisp.LEnv) *TestSuite {
	suite, ok := suites.Load(env.Root())
	if !ok {
		return nil
	}
	return suite.(*TestSuite)
}

func BuiltinAssert(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	if args.Cells[0].IsTrue() {
		return lisp.Nil()
	}
	msg := "assertion failed"
	if len(args.Cells) > 1 {
		msg = fmt.Sprintf("%s: %s", msg, joinPrint(args.Cells[1:]))
	}
	return env.ErrorConditionf(CondAssert, "%s", msg)
}

func BuiltinAssertEqual(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	expect, actual := args.Cells[0], args.Cells[1]
	if expect.Equal(actual) {
		return lisp.Nil()
	}
	msg := fmt.Sprintf("expected %s (got %s)", expect.Print(true), actual.Print(true))
	if len(args.Cells) > 2 {
		msg = fmt.Sprintf("%s: %s", msg, joinPrint(args.Cells[2:]))
	}
	return env.ErrorConditionf(CondAssert, "%s", msg)
}

func joinPrint(vs []*lisp.LVal) string {
	var s string
	for i, v := range vs {
		if i > 0 {
			s += " "
		}
		s += v.Print(false)
	}
	return s
}
