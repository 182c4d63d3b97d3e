package lisp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bmatsuo/gomal/parser/token"
)

// DefaultMaxHeight is the maximum call stack height of a new Runtime.
const DefaultMaxHeight = 10000

// CallStack is a function call stack.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight is the maximum number of frames allowed on the stack.  A
	// value of zero means that the stack height is unlimited.
	MaxHeight int
}

// CallFrame is one frame in the CallStack.  Each frame corresponds to one
// non-tail evaluation.  Tail calls replace the frame's name instead of
// pushing a new frame.
type CallFrame struct {
	Name      string
	Source    *token.Location
	TailCalls int // calls elided by tail call optimization
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Push pushes a new frame onto s.  If pushing the frame would exceed the
// maximum stack height an LError is returned and the stack is left
// unmodified.
func (s *CallStack) Push(name string, src *token.Location) *LVal {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		err := ErrorConditionf(CondStackOverflow, "stack overflow: maximum height %d exceeded", s.MaxHeight)
		err.Stack = s.Copy()
		return err
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Source: src})
	return nil
}

// TailCall records a tail call to the named function in the top frame.
func (s *CallStack) TailCall(name string) {
	top := s.Top()
	if top == nil {
		return
	}
	if top.Name != "" {
		top.TailCalls++
	}
	top.Name = name
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		var mod bytes.Buffer
		if f.TailCalls > 0 {
			fmt.Fprintf(&mod, " [%d tail calls]", f.TailCalls)
		}
		if f.Source != nil {
			fmt.Fprintf(&mod, " at %s", f.Source)
		}
		name := f.Name
		if name == "" {
			name = "<toplevel>"
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s%s\n", indent, i, name, mod.String())
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
