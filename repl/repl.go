// Package repl implements an interactive read-eval-print loop for a mal
// environment.
package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/sirupsen/logrus"
)

// DefaultPrompt is the prompt used when none is configured.
const DefaultPrompt = "user> "

// REPL reads forms from a LineEditor, evaluates them in an environment and
// prints the results.
type REPL struct {
	Env    *lisp.LEnv
	Editor LineEditor
	Prompt string
	Stdout io.Writer
	Stderr io.Writer
}

// Option configures a REPL.
type Option func(*REPL)

// WithPrompt sets the primary prompt.  Continuation lines are prompted with
// whitespace of the same width.
func WithPrompt(prompt string) Option {
	return func(r *REPL) { r.Prompt = prompt }
}

// WithOutput sets the writers used for results and exceptions.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *REPL) {
		r.Stdout = stdout
		r.Stderr = stderr
	}
}

// New returns a REPL evaluating input from ed in env.  Results and exceptions
// are both written to the runtime stdout unless WithOutput is given.
func New(env *lisp.LEnv, ed LineEditor, opts ...Option) *REPL {
	r := &REPL{
		Env:    env,
		Editor: ed,
		Prompt: DefaultPrompt,
		Stdout: env.Runtime.Stdout,
		Stderr: env.Runtime.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunRepl runs a simple repl
func RunRepl(env *lisp.LEnv, ed LineEditor, opts ...Option) error {
	return New(env, ed, opts...).Run()
}

// Run loops until the editor reaches the end of its input.
func (r *REPL) Run() error {
	contPrompt := strings.Repeat(" ", len(r.Prompt)) // prompt had better be ascii...

	var buf []string
	for {
		prompt := r.Prompt
		if len(buf) > 0 {
			prompt = contPrompt
		}
		line, err := r.Editor.Prompt(prompt)
		if err == ErrInterrupt {
			buf = nil
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		buf = append(buf, line)
		source := strings.Join(buf, "\n")
		exprs, err := r.read(source)
		if lisp.IsIncomplete(err) {
			continue
		}
		buf = nil
		if strings.TrimSpace(source) != "" {
			r.Editor.AppendHistory(source)
		}
		if errors.Is(err, lisp.ErrNoInput) {
			continue
		}
		if err != nil {
			r.printException(lisp.Error(err))
			continue
		}
		r.evalPrint(exprs)
	}
}

// Rep reads, evaluates and prints the forms in source.
func (r *REPL) Rep(source string) {
	exprs, err := r.read(source)
	if errors.Is(err, lisp.ErrNoInput) {
		return
	}
	if err != nil {
		r.printException(lisp.Error(err))
		return
	}
	r.evalPrint(exprs)
}

func (r *REPL) read(source string) ([]*lisp.LVal, error) {
	if r.Env.Runtime.Reader == nil {
		return nil, fmt.Errorf("no reader for environment runtime")
	}
	return r.Env.Runtime.Reader.Read("<repl>", strings.NewReader(source))
}

func (r *REPL) evalPrint(exprs []*lisp.LVal) {
	for _, expr := range exprs {
		v := r.Env.Eval(expr)
		if v.Type == lisp.LError {
			r.printException(v)
			return
		}
		fmt.Fprintln(r.Stdout, v.Print(true))
	}
}

func (r *REPL) printException(lerr *lisp.LVal) {
	fmt.Fprintf(r.Stderr, "Exception: %s\n", lerr.ErrorMessage())
	log := r.Env.Runtime.Logger
	if lerr.Stack != nil && log.IsLevelEnabled(logrus.DebugLevel) {
		var buf bytes.Buffer
		lerr.Stack.DebugPrint(&buf)
		log.WithField("condition", lerr.Str).Debug(buf.String())
	}
}
