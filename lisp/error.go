package lisp

import (
	"errors"
	"fmt"
)

// Error conditions.  The condition of an LError is stored in its Str field.
const (
	CondSyntax        = "syntax-error"
	CondUnexpectedEOF = "unexpected-eof"
	CondUnboundSymbol = "unbound-symbol"
	CondTypeMismatch  = "type-mismatch"
	CondNotCallable   = "not-callable"
	CondUserThrow     = "user-throw"
	CondIndex         = "index-error"
	CondArity         = "arity-error"
	CondStackOverflow = "stack-overflow"
	CondRuntime       = "runtime-error"
)

// ErrNoInput is returned by a Reader when its source contains no forms at
// all (only whitespace or comments).  It does not indicate a failure.
var ErrNoInput = errors.New("no input")

// ErrorVal implements the error interface so that errors can be first class lisp
// objects.  The error condition is stored in the Str field while the payload
// is stored in Cells[0].
type ErrorVal LVal

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return (*LVal)(e).ErrorMessage()
}

// Condition returns the error condition.
func (e *ErrorVal) Condition() string {
	return e.Str
}

// LVal returns the lisp representation of e.
func (e *ErrorVal) LVal() *LVal {
	return (*LVal)(e)
}

// GoError returns an error that represents v.  If v is not LError then nil
// is returned.
func GoError(v *LVal) error {
	if v == nil || v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}

// Error returns an LError representing err.  If err wraps an *ErrorVal the
// underlying LVal is returned.
func Error(err error) *LVal {
	var lerr *ErrorVal
	if errors.As(err, &lerr) {
		return lerr.LVal()
	}
	return ErrorCondition(CondRuntime, String(err.Error()))
}

// Errorf returns an LError with a formatted error message.
func Errorf(format string, v ...interface{}) *LVal {
	return ErrorConditionf(CondRuntime, format, v...)
}

// ErrorCondition returns an LError with the given condition and payload.
func ErrorCondition(condition string, payload *LVal) *LVal {
	return &LVal{
		Type:  LError,
		Str:   condition,
		Cells: []*LVal{payload},
	}
}

// ErrorConditionf returns an LError with the given condition and a formatted
// message payload.
func ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return ErrorCondition(condition, String(fmt.Sprintf(format, v...)))
}

// Throw returns an LError carrying v unmodified, as produced by ``throw''.
func Throw(v *LVal) *LVal {
	return ErrorCondition(CondUserThrow, v)
}

// ErrorPayload returns the value carried by an LError.
func (v *LVal) ErrorPayload() *LVal {
	if len(v.Cells) == 0 {
		return Nil()
	}
	return v.Cells[0]
}

// ErrorMessage returns the human readable message of an LError.  String
// payloads are returned verbatim, anything else is printed readably.
func (v *LVal) ErrorMessage() string {
	payload := v.ErrorPayload()
	if payload.Type == LString && v.Str != CondUserThrow {
		return payload.Str
	}
	return payload.Print(true)
}

// CatchPayload returns the value bound by a ``catch*'' clause when the LError
// v is caught.  Thrown values are bound unmodified while errors raised by the
// runtime are bound as their message.
func (v *LVal) CatchPayload() *LVal {
	if v.Str == CondUserThrow {
		return v.ErrorPayload()
	}
	return String(v.ErrorMessage())
}

// IsIncomplete returns true if err is a reader error caused by source text
// which ended in the middle of a form.
func IsIncomplete(err error) bool {
	var lerr *ErrorVal
	if errors.As(err, &lerr) {
		return lerr.Condition() == CondUnexpectedEOF
	}
	return false
}
