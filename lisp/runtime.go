package lisp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LineReader reads lines of input for the ``readline'' builtin.  ReadLine
// returns io.EOF when input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Runtime is the state shared by every environment of one interpreter.
type Runtime struct {
	Stack  *CallStack
	Reader Reader
	Stdout io.Writer
	Stderr io.Writer
	Lines  LineReader
	Logger *logrus.Logger
}

// StandardRuntime returns a new Runtime that uses the standard streams of
// the process.  The returned Runtime has no Reader.
func StandardRuntime() *Runtime {
	logger := logrus.New()
	logger.Out = os.Stderr
	return &Runtime{
		Stack:  &CallStack{MaxHeight: DefaultMaxHeight},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Lines:  NewLineReader(os.Stdin, os.Stdout),
		Logger: logger,
	}
}

type bufferedLineReader struct {
	r *bufio.Reader
	w io.Writer
}

// NewLineReader returns a LineReader that writes prompts to w and reads
// lines from r.
func NewLineReader(r io.Reader, w io.Writer) LineReader {
	return &bufferedLineReader{
		r: bufio.NewReader(r),
		w: w,
	}
}

func (lr *bufferedLineReader) ReadLine(prompt string) (string, error) {
	if lr.w != nil && prompt != "" {
		fmt.Fprint(lr.w, prompt)
	}
	line, err := lr.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
