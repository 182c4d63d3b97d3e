package libos_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/maltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetenv(t *testing.T) {
	t.Setenv("GOMAL_TEST_VALUE", "abc")
	tests := maltest.TestSuite{
		{"getenv", maltest.TestSequence{
			{`(getenv "GOMAL_TEST_VALUE")`, `"abc"`},
			{`(getenv "GOMAL_TEST_UNSET_VALUE")`, "nil"},
			{"(getenv 1)", "argument not a string or symbol: int"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")

	r := &maltest.Runner{}
	env, err := r.NewEnv(nil)
	require.NoError(t, err)
	env.Put(lisp.Symbol("path"), lisp.String(path))
	env.Put(lisp.Symbol("dir"), lisp.String(dir))

	v := env.LoadString("test", `(exists? path)`)
	assert.Equal(t, "false", v.String())
	v = env.LoadString("test", `(spit path "hello\n")`)
	assert.Equal(t, "nil", v.String())
	v = env.LoadString("test", `(slurp path)`)
	assert.Equal(t, `"hello\n"`, v.String())
	v = env.LoadString("test", `(list (exists? path) (dir? path) (dir? dir))`)
	assert.Equal(t, "(true false true)", v.String())

	v = env.LoadString("test", `(slurp (str path ".missing"))`)
	assert.Equal(t, lisp.LError, v.Type)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.mal")
	err := os.WriteFile(path, []byte("(def! loaded 1)\n(def! twice (* 2 loaded)) ; comment at the end"), 0644)
	require.NoError(t, err)

	r := &maltest.Runner{}
	env, err := r.NewEnv(nil)
	require.NoError(t, err)
	env.Put(lisp.Symbol("path"), lisp.String(path))
	v := env.LoadString("test", `(load-file path)`)
	assert.Equal(t, "nil", v.String())
	assert.Equal(t, "2", env.LoadString("test", "twice").String())
}

func TestReadline(t *testing.T) {
	r := &maltest.Runner{}
	env, err := r.NewEnv(nil)
	require.NoError(t, err)
	var prompts strings.Builder
	lerr := lisp.InitializeUserEnv(env, lisp.WithLineReader(lisp.NewLineReader(strings.NewReader("first\nsecond"), &prompts)))
	require.Equal(t, lisp.LNil, lerr.Type)

	assert.Equal(t, `"first"`, env.LoadString("test", `(readline "> ")`).String())
	assert.Equal(t, `"second"`, env.LoadString("test", `(readline "> ")`).String())
	assert.Equal(t, "nil", env.LoadString("test", `(readline "> ")`).String())
	assert.Equal(t, "> > > ", prompts.String())
}

func TestShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	r := &maltest.Runner{}
	env, err := r.NewEnv(nil)
	require.NoError(t, err)

	assert.Equal(t, `"hello"`, env.LoadString("test", `(backtick "echo hello")`).String())
	assert.Equal(t, `"a\nb"`, env.LoadString("test", `(backtick "printf 'a\\nb\\n'")`).String())
	assert.Equal(t, "3", env.LoadString("test", `(system "exit 3")`).String())
}
