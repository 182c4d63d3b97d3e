package lisp

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// LEnv is a lisp environment.
type LEnv struct {
	ID      uint
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv returns initializes and returns a new LEnv.  A child environment
// shares the Runtime of its parent.  A root environment (parent == nil) gets
// a StandardRuntime.
func NewEnv(parent *LEnv) *LEnv {
	var runtime *Runtime
	if parent != nil {
		runtime = parent.Runtime
	} else {
		runtime = StandardRuntime()
	}
	return &LEnv{
		ID:      getEnvID(),
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: runtime,
	}
}

// InitializeUserEnv applies config to the root of env.  Builtin functions
// are not part of the core language and must be loaded separately (e.g. by
// lisplib.LoadLibrary).
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	env = env.Root()
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	return Nil()
}

// Get takes an LSymbol k and returns the LVal it is bound to in env.
func (env *LEnv) Get(k *LVal) *LVal {
	v, ok := env.lookup(k.Str)
	if !ok {
		return env.ErrorConditionf(CondUnboundSymbol, "'%s' not found", k.Str)
	}
	return v
}

func (env *LEnv) lookup(name string) (*LVal, bool) {
	for ; env != nil; env = env.Parent {
		v, ok := env.Scope[name]
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Has returns true if the symbol name is bound in env or any of its
// ancestors.
func (env *LEnv) Has(name string) bool {
	_, ok := env.lookup(name)
	return ok
}

// Put takes an LSymbol k and binds it to v in env.  Bindings in parent
// environments are never modified.
func (env *LEnv) Put(k, v *LVal) {
	if v == nil {
		panic("nil value")
	}
	env.Scope[k.Str] = v
}

// PutGlobal takes an LSymbol k and binds it to v in root environment (global
// scope).
func (env *LEnv) PutGlobal(k, v *LVal) {
	env.Root().Put(k, v)
}

// Root returns the root environment (global scope).
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// NewCallEnv returns a child of env binding formals to args.  If formals
// contains VarArgSymbol, the arguments following the fixed formals are
// collected into a list bound to the final formal.  Missing fixed arguments
// leave their formals unbound while the rest formal is always bound.
func (env *LEnv) NewCallEnv(formals *LVal, args []*LVal) *LEnv {
	callenv := NewEnv(env)
	for i, sym := range formals.Cells {
		if sym.Str == VarArgSymbol {
			var rest []*LVal
			if i < len(args) {
				rest = make([]*LVal, len(args)-i)
				copy(rest, args[i:])
			}
			callenv.Put(formals.Cells[i+1], List(rest...))
			break
		}
		if i < len(args) {
			callenv.Put(sym, args[i])
		}
	}
	return callenv
}

// Load reads LVals from r using the runtime Reader and evaluates them in
// env, returning the value of the last expression.  A source which contains
// no expressions evaluates to nil.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return env.Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if errors.Is(err, ErrNoInput) {
		return Nil()
	}
	if err != nil {
		return Error(err)
	}
	ret := Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}

// LoadString evaluates the expressions in source.
func (env *LEnv) LoadString(name, source string) *LVal {
	return env.Load(name, strings.NewReader(source))
}

// ReadString returns the first expression in source without evaluating it.
// If source contains no expressions ReadString returns nil.
func (env *LEnv) ReadString(name, source string) *LVal {
	if env.Runtime.Reader == nil {
		return env.Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, strings.NewReader(source))
	if errors.Is(err, ErrNoInput) {
		return Nil()
	}
	if err != nil {
		return Error(err)
	}
	return exprs[0]
}

// Error returns an LError representing err and attaches the current call
// stack.
func (env *LEnv) Error(err error) *LVal {
	return env.withStack(Error(err))
}

// Errorf returns a runtime-error with a formatted message and attaches the
// current call stack.
func (env *LEnv) Errorf(format string, v ...interface{}) *LVal {
	return env.withStack(Errorf(format, v...))
}

// ErrorConditionf returns an LError with the given condition and attaches
// the current call stack.
func (env *LEnv) ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return env.withStack(ErrorConditionf(condition, format, v...))
}

func (env *LEnv) withStack(lerr *LVal) *LVal {
	if lerr.Stack == nil && env.Runtime.Stack.Height() > 0 {
		lerr.Stack = env.Runtime.Stack.Copy()
	}
	return lerr
}

// bindings returns the names bound directly in env, sorted.
func (env *LEnv) bindings() []string {
	names := make([]string, 0, len(env.Scope))
	for k := range env.Scope {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (env *LEnv) String() string {
	return fmt.Sprintf("env%d", env.ID)
}
