// Package maltest provides harnesses for testing mal code from Go tests.
package maltest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib"
	"github.com/bmatsuo/gomal/lisp/lisplib/libtesting"
	"github.com/bmatsuo/gomal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runner is a test runner.
type Runner struct {
	// Loader is the package loader used to initialize the test environment.
	// When Loader is nil lisplib.LoadLibrary is used.
	Loader func(*lisp.LEnv) *lisp.LVal
}

// NewEnv returns a new root environment writing program output to stdout.
func (r *Runner) NewEnv(stdout *bytes.Buffer) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	config := []lisp.Config{lisp.WithReader(parser.NewReader())}
	if stdout != nil {
		config = append(config, lisp.WithStdout(stdout))
	}
	lerr := lisp.InitializeUserEnv(env, config...)
	if lerr.Type == lisp.LError {
		return nil, fmt.Errorf("failed to initialize lisp environment: %v", lerr)
	}
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	lerr = loader(env)
	if lerr.Type == lisp.LError {
		return nil, fmt.Errorf("failed to load package library: %v", lerr)
	}
	return env, nil
}

// RunTestFile loads the mal source file at path and runs each test defined
// in it as a subtest with an isolated environment.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	require.NoError(t, err, "unable to read test file")

	var names []string
	ok := t.Run("$load", func(t *testing.T) {
		env, err := r.NewEnv(nil)
		require.NoError(t, err)
		lerr := env.Load(filepath.Base(path), bytes.NewReader(source))
		if !assertNoError(t, lerr) {
			return
		}
		suite := libtesting.EnvTestSuite(env)
		require.NotNil(t, suite, "unable to locate test suite")
		names = make([]string, suite.Len())
		for i := range names {
			names[i] = suite.Test(i).Name
		}
	})
	if !ok {
		return
	}

	for i := range names {
		// We don't check the result of t.Run here because we want all
		// independent tests to run during a single run of the suite.
		t.Run(names[i], func(t *testing.T) {
			env, err := r.NewEnv(nil)
			require.NoError(t, err)
			lerr := env.Load(filepath.Base(path), bytes.NewReader(source))
			if !assertNoError(t, lerr) {
				return
			}
			suite := libtesting.EnvTestSuite(env)
			require.NotNil(t, suite, "unable to locate test suite")
			ltest := suite.Test(i)
			assertNoError(t, ltest.Run(env))
		})
	}
}

func assertNoError(t *testing.T, v *lisp.LVal) bool {
	if v.Type != lisp.LError {
		return true
	}
	var buf bytes.Buffer
	if v.Stack != nil {
		v.Stack.DebugPrint(&buf)
	}
	return assert.Fail(t, v.ErrorMessage(), "condition: %s\n%s", v.Str, buf.String())
}

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.  An
// expression which evaluates to an error is compared against Result using
// the error message.
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{}
	for i, test := range tests {
		var stdout bytes.Buffer
		env, err := r.NewEnv(&stdout)
		require.NoError(t, err)
		for j, expr := range test.TestSequence {
			v, err := parser.ParseLVal([]byte(expr.Expr))
			if !assert.NoError(t, err, "test %d %q: expr %d: parse error", i, test.Name, j) {
				continue
			}
			if !assert.Len(t, v, 1, "test %d %q: expr %d: expected exactly one expression", i, test.Name, j) {
				continue
			}
			result := env.Eval(v[0])
			assert.Equal(t, expr.Result, resultString(result),
				"test %d %q: expr %d: %s", i, test.Name, j, expr.Expr)
		}
	}
}

func resultString(v *lisp.LVal) string {
	if v.Type == lisp.LError {
		return v.ErrorMessage()
	}
	return v.Print(true)
}
