package lisp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	testerr := errors.New("test error message")
	lerr := Error(testerr)
	msg := GoError(lerr).Error()
	assert.Equal(t, testerr.Error(), msg)
	assert.Equal(t, CondRuntime, lerr.Str)

	lerr = Errorf("test error %s", "message")
	msg = GoError(lerr).Error()
	assert.Equal(t, "test error message", msg)

	// converting back to an LVal does not wrap the error again
	assert.True(t, lerr == Error(GoError(lerr)))
	assert.True(t, lerr == Error(fmt.Errorf("wrapped: %w", GoError(lerr))))

	assert.Nil(t, GoError(Nil()))
	assert.Nil(t, GoError(nil))
}

func TestThrow(t *testing.T) {
	lerr := Throw(String("boom"))
	assert.Equal(t, CondUserThrow, lerr.Str)
	assert.Equal(t, `"boom"`, lerr.ErrorMessage())
	assert.Equal(t, `"boom"`, lerr.CatchPayload().Print(true))

	lerr = Throw(Map(Keyword("code"), Int(7)))
	assert.Equal(t, "{:code 7}", lerr.ErrorMessage())
	assert.Equal(t, LMap, lerr.CatchPayload().Type)

	lerr = ErrorConditionf(CondIndex, "index %d", 3)
	assert.Equal(t, "index 3", lerr.ErrorMessage())
	assert.Equal(t, `"index 3"`, lerr.CatchPayload().Print(true))
}

func TestIsIncomplete(t *testing.T) {
	lerr := ErrorConditionf(CondUnexpectedEOF, "unexpected end of input")
	assert.True(t, IsIncomplete(GoError(lerr)))
	assert.True(t, IsIncomplete(fmt.Errorf("repl: %w", GoError(lerr))))
	assert.False(t, IsIncomplete(GoError(ErrorConditionf(CondSyntax, "bad"))))
	assert.False(t, IsIncomplete(errors.New("unexpected end of input")))
	assert.False(t, IsIncomplete(nil))
}

func TestRuntimeErrors(t *testing.T) {
	env := NewEnv(nil)
	lerr := InitializeUserEnv(env)
	if GoError(lerr) != nil {
		t.Fatal(GoError(lerr))
	}
	lerr = env.Eval(Symbol("test-error"))
	assert.Equal(t, LError, lerr.Type)
	assert.Equal(t, CondUnboundSymbol, lerr.Str)
	assert.Equal(t, "'test-error' not found", GoError(lerr).Error())
	if assert.NotNil(t, lerr.Stack) {
		assert.Equal(t, 1, lerr.Stack.Height())
	}
	assert.Equal(t, 0, env.Runtime.Stack.Height())
}
