package repl

import (
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/peterh/liner"
)

// ErrInterrupt is returned by a LineEditor when the user interrupts input
// (Ctrl-C).
var ErrInterrupt = errors.New("interrupt")

// LineEditor reads lines of interactive input.  Prompt returns io.EOF when
// input is exhausted and ErrInterrupt when the user aborts the current line.
type LineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

type readlineEditor struct {
	rl *readline.Instance
}

// NewReadlineEditor returns a LineEditor backed by chzyer/readline.
func NewReadlineEditor() (LineEditor, error) {
	rl, err := readline.New("")
	if err != nil {
		return nil, err
	}
	return &readlineEditor{rl}, nil
}

func (ed *readlineEditor) Prompt(prompt string) (string, error) {
	ed.rl.SetPrompt(prompt)
	line, err := ed.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", ErrInterrupt
	}
	return line, err
}

func (ed *readlineEditor) AppendHistory(line string) {
	ed.rl.SaveHistory(line)
}

func (ed *readlineEditor) Close() error {
	return ed.rl.Close()
}

type linerEditor struct {
	st      *liner.State
	history string
}

// NewLinerEditor returns a LineEditor backed by peterh/liner.  If history is
// not empty, previous history is read from that file and the session's
// history is written back to it when the editor is closed.
func NewLinerEditor(history string) (LineEditor, error) {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	if history != "" {
		f, err := os.Open(history)
		if err == nil {
			_, err = st.ReadHistory(f)
			f.Close()
		}
		if err != nil && !os.IsNotExist(err) {
			st.Close()
			return nil, err
		}
	}
	return &linerEditor{st: st, history: history}, nil
}

func (ed *linerEditor) Prompt(prompt string) (string, error) {
	line, err := ed.st.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", ErrInterrupt
	}
	return line, err
}

func (ed *linerEditor) AppendHistory(line string) {
	ed.st.AppendHistory(line)
}

func (ed *linerEditor) Close() error {
	var herr error
	if ed.history != "" {
		f, err := os.Create(ed.history)
		if err == nil {
			_, herr = ed.st.WriteHistory(f)
			f.Close()
		} else {
			herr = err
		}
	}
	err := ed.st.Close()
	if err != nil {
		return err
	}
	return herr
}

// LineReader adapts ed to lisp.LineReader so that the ``readline'' builtin
// shares the terminal with the REPL.  An interrupt is reported as the end of
// input.
func LineReader(ed LineEditor) *EditorLineReader {
	return &EditorLineReader{ed}
}

// EditorLineReader implements lisp.LineReader using a LineEditor.
type EditorLineReader struct {
	Editor LineEditor
}

// ReadLine implements lisp.LineReader.
func (r *EditorLineReader) ReadLine(prompt string) (string, error) {
	line, err := r.Editor.Prompt(prompt)
	if err == ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}
