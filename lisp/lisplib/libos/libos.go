// Package libos provides builtins for interacting with the host process:
// environment variables, the file system, subprocesses and line input.
package libos

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

// Shell is the command used to interpret the arguments of system and
// backtick.
var Shell = []string{"/bin/sh", "-c"}

// LoadPackage adds the os builtins to env
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	libutil.AddBuiltins(env, builtins...)
	return lisp.Nil()
}

var builtins = []*libutil.Builtin{
	libutil.Function("getenv", lisp.Formals("key"), BuiltinGetenv),
	libutil.Function("exists?", lisp.Formals("path"), BuiltinExists),
	libutil.Function("dir?", lisp.Formals("path"), BuiltinIsDir),
	libutil.Function("work-dir", lisp.Formals(), BuiltinWorkDir),
	libutil.Function("readline", lisp.Formals("prompt"), BuiltinReadline),
	libutil.Function("system", lisp.Formals("command"), BuiltinSystem),
	libutil.Function("backtick", lisp.Formals("command"), BuiltinBacktick),
	libutil.Function("`", lisp.Formals("command"), BuiltinBacktick),
}

func BuiltinGetenv(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	key := args.Cells[0]
	if key.Type != lisp.LString && key.Type != lisp.LSymbol {
		return env.ErrorConditionf(lisp.CondTypeMismatch, "argument not a string or symbol: %v", key.Type)
	}
	val, ok := os.LookupEnv(key.Str)
	if !ok {
		return lisp.Nil()
	}
	return lisp.String(val)
}

func BuiltinExists(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	path, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return lisp.False()
	}
	if err != nil {
		return env.Error(err)
	}
	return lisp.True()
}

func BuiltinIsDir(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	path, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	stat, err := os.Stat(path)
	if os.IsNotExist(err) {
		return lisp.False()
	}
	if err != nil {
		return env.Error(err)
	}
	return lisp.Bool(stat.IsDir())
}

func BuiltinWorkDir(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	dir, err := os.Getwd()
	if err != nil {
		return env.Error(err)
	}
	return lisp.String(dir)
}

// BuiltinReadline prints a prompt and reads one line of input from the
// runtime LineReader.  At the end of input BuiltinReadline returns nil.
func BuiltinReadline(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	prompt, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	if env.Runtime.Lines == nil {
		return lisp.Nil()
	}
	line, err := env.Runtime.Lines.ReadLine(prompt)
	if errors.Is(err, io.EOF) {
		return lisp.Nil()
	}
	if err != nil {
		return env.Error(err)
	}
	return lisp.String(line)
}

func shellCommand(env *lisp.LEnv, args *lisp.LVal) (*exec.Cmd, *lisp.LVal) {
	command, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return nil, libutil.Arg(env, lerr)
	}
	argv := append(append([]string(nil), Shell[1:]...), command)
	cmd := exec.Command(Shell[0], argv...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = env.Runtime.Stderr
	return cmd, nil
}

// BuiltinSystem runs a shell command, copying its output to the runtime
// stdout, and returns its exit status.
func BuiltinSystem(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	cmd, lerr := shellCommand(env, args)
	if lerr != nil {
		return lerr
	}
	cmd.Stdout = env.Runtime.Stdout
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return lisp.Int(exitErr.ExitCode())
	}
	if err != nil {
		return env.Error(err)
	}
	return lisp.Int(0)
}

// BuiltinBacktick runs a shell command and returns its output as a string.
// A single trailing newline is removed.
func BuiltinBacktick(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	cmd, lerr := shellCommand(env, args)
	if lerr != nil {
		return lerr
	}
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return env.Error(err)
	}
	return lisp.String(strings.TrimSuffix(string(out), "\n"))
}
