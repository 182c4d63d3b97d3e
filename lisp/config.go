package lisp

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the call stack height to exceed n.  Tail calls do
// not increase the height of the stack.  A value of zero removes the limit.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stack.MaxHeight = n
		return Nil()
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdout returns a Config that makes environments write program output
// (e.g. ``prn'') to w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.  The runtime logger is redirected
// to w as well.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		env.Runtime.Logger.Out = w
		return Nil()
	}
}

// WithLineReader returns a Config that makes the ``readline'' builtin read
// input from lines.
func WithLineReader(lines LineReader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Lines = lines
		return Nil()
	}
}

// WithLogger returns a Config that makes environments log evaluation traces
// and diagnostics to logger.
func WithLogger(logger *logrus.Logger) Config {
	return func(env *LEnv) *LVal {
		if logger == nil {
			return Errorf("nil logger")
		}
		env.Runtime.Logger = logger
		return Nil()
	}
}
