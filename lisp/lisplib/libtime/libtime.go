// Package libtime provides builtins for reading the system clock.
package libtime

import (
	"time"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the time builtins to env
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	libutil.AddBuiltins(env, builtins...)
	return lisp.Nil()
}

var builtins = []*libutil.Builtin{
	libutil.Function("time-ms", lisp.Formals(), BuiltinTimeMS),
	libutil.Function("time-ns", lisp.Formals(), BuiltinTimeNS),
	libutil.Function("format-rfc3339", lisp.Formals("time-ms"), BuiltinFormatRFC3339),
	libutil.Function("parse-rfc3339", lisp.Formals("timestamp"), BuiltinParseRFC3339),
}

// BuiltinTimeMS returns the number of milliseconds since the unix epoch.
func BuiltinTimeMS(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.Int(int(time.Now().UnixNano() / int64(time.Millisecond)))
}

// BuiltinTimeNS returns the number of nanoseconds since the unix epoch.
func BuiltinTimeNS(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.Int(int(time.Now().UnixNano()))
}

// BuiltinFormatRFC3339 formats a millisecond timestamp, as returned by
// time-ms, in UTC.
func BuiltinFormatRFC3339(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	ms, lerr := args.Cells[0].AsInt()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	t := time.Unix(0, int64(ms)*int64(time.Millisecond)).UTC()
	return lisp.String(t.Format(time.RFC3339Nano))
}

// BuiltinParseRFC3339 parses a timestamp and returns it as milliseconds
// since the unix epoch.
func BuiltinParseRFC3339(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	stamp, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	t, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return env.Error(err)
	}
	return lisp.Int(int(t.UnixNano() / int64(time.Millisecond)))
}
