package lisptest

import (
	"testing"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/parser"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalLogged(t *testing.T, env *lisp.LEnv, hook *test.Hook, expr string) []*logrus.Entry {
	hook.Reset()
	exprs, err := parser.ParseLVal([]byte(expr))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	v := env.Eval(exprs[0])
	require.NotEqual(t, lisp.LError, v.Type, result(v))
	return hook.AllEntries()
}

func messages(entries []*logrus.Entry) []string {
	msgs := make([]string, len(entries))
	for i := range entries {
		msgs[i] = entries[i].Message
	}
	return msgs
}

// dumpAfter returns the EVAL DUMP entries logged immediately after the
// trace of expr.
func dumpAfter(entries []*logrus.Entry, expr string) []*logrus.Entry {
	for i := range entries {
		if entries[i].Message != "EVAL: "+expr {
			continue
		}
		var dump []*logrus.Entry
		for _, e := range entries[i+1:] {
			if len(e.Message) < 10 || e.Message[:10] != "EVAL DUMP:" {
				break
			}
			dump = append(dump, e)
		}
		return dump
	}
	return nil
}

func TestDebugEval(t *testing.T) {
	logger, hook := test.NewNullLogger()
	env := newEnv(t, lisp.WithLogger(logger))

	assert.Empty(t, evalLogged(t, env, hook, "(dec 3)"))

	env.Put(lisp.Symbol(lisp.DebugEvalSymbol), lisp.True())
	entries := evalLogged(t, env, hook, "(dec 3)")
	assert.Equal(t, []string{
		"EVAL: (dec 3)",
		"EVAL: dec",
		"EVAL RESULT: #<function>",
		"EVAL: 3",
		"EVAL RESULT: 3",
		"EVAL RESULT: 2",
	}, messages(entries))
	var depths []interface{}
	for _, e := range entries {
		assert.Equal(t, logrus.InfoLevel, e.Level)
		depths = append(depths, e.Data["depth"])
	}
	assert.Equal(t, []interface{}{1, 2, 2, 2, 2, 1}, depths)

	env.Put(lisp.Symbol(lisp.DebugEvalSymbol), lisp.False())
	assert.Empty(t, evalLogged(t, env, hook, "(dec 3)"))
}

func TestDebugEval_env(t *testing.T) {
	logger, hook := test.NewNullLogger()
	env := newEnv(t, lisp.WithLogger(logger))
	env.Put(lisp.Symbol(lisp.DebugEvalSymbol), lisp.True())
	env.Put(lisp.Symbol(lisp.DebugEvalEnvSymbol), lisp.True())

	entries := evalLogged(t, env, hook, "(let* (x 1) x)")
	dump := dumpAfter(entries, "x")
	require.Len(t, dump, 1)
	assert.Equal(t, "EVAL DUMP: x:int:1", dump[0].Message)
	assert.NotEqual(t, env.ID, dump[0].Data["env"])

	dump = dumpAfter(entries, "(let* (x 1) x)")
	assert.Equal(t, []string{
		"EVAL DUMP: DEBUG-EVAL:true:true",
		"EVAL DUMP: DEBUG-EVAL-ENV:true:true",
		"EVAL DUMP: dec:function:#<function>",
		"EVAL DUMP: zero?:function:#<function>",
	}, messages(dump))
	for _, e := range dump {
		assert.Equal(t, env.ID, e.Data["env"])
	}
}

func TestDebugEval_envFull(t *testing.T) {
	logger, hook := test.NewNullLogger()
	env := newEnv(t, lisp.WithLogger(logger))
	env.Put(lisp.Symbol(lisp.DebugEvalSymbol), lisp.True())
	env.Put(lisp.Symbol(lisp.DebugEvalEnvFullSymbol), lisp.True())

	entries := evalLogged(t, env, hook, "(let* (x 1) x)")
	assert.Equal(t, []string{
		"EVAL DUMP: x:int:1",
		"EVAL DUMP: DEBUG-EVAL:true:true",
		"EVAL DUMP: DEBUG-EVAL-ENV-FULL:true:true",
		"EVAL DUMP: dec:function:#<function>",
		"EVAL DUMP: zero?:function:#<function>",
	}, messages(dumpAfter(entries, "x")))
}
