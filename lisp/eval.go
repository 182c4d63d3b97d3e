package lisp

import (
	"github.com/sirupsen/logrus"
)

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Each call to Eval occupies one frame of the runtime call stack.
// Expressions in tail position are evaluated in a loop so that tail calls do
// not grow either the lisp call stack or the Go stack.
func (env *LEnv) Eval(v *LVal) *LVal {
	stack := env.Runtime.Stack
	lerr := stack.Push("", v.Source)
	if lerr != nil {
		return lerr
	}
	defer stack.Pop()
	r := env.eval(v)
	if env.debugEnabled(DebugEvalSymbol) {
		env.Runtime.Logger.
			WithField("depth", stack.Height()).
			Infof("EVAL RESULT: %s", r.Print(true))
	}
	return r
}

func (env *LEnv) eval(ast *LVal) *LVal {
	for {
		env.trace(ast)
		switch ast.Type {
		case LSymbol:
			return env.Get(ast)
		case LVector:
			return env.evalCells(ast)
		case LMap:
			return env.evalMap(ast)
		case LList:
			if len(ast.Cells) == 0 {
				return ast
			}
		default:
			return ast
		}

		head := ast.Cells[0]
		if head.Type == LSymbol {
			switch head.Str {
			case SymDef:
				return env.evalDef(ast)
			case SymDefMacro:
				return env.evalDefMacro(ast)
			case SymLet:
				letenv, lerr := env.evalLetBindings(ast)
				if lerr != nil {
					return lerr
				}
				env, ast = letenv, optionalCell(ast, 2)
				continue
			case SymDo:
				if len(ast.Cells) < 2 {
					return env.ErrorConditionf(CondSyntax, "empty 'do'")
				}
				for _, expr := range ast.Cells[1 : len(ast.Cells)-1] {
					r := env.Eval(expr)
					if r.Type == LError {
						return r
					}
				}
				ast = ast.Cells[len(ast.Cells)-1]
				continue
			case SymIf:
				if len(ast.Cells) < 3 || len(ast.Cells) > 4 {
					return env.ErrorConditionf(CondSyntax, "if requires a condition, a consequent, and an optional alternative")
				}
				cond := env.Eval(ast.Cells[1])
				if cond.Type == LError {
					return cond
				}
				if cond.IsTrue() {
					ast = ast.Cells[2]
					continue
				}
				if len(ast.Cells) < 4 {
					return Nil()
				}
				ast = ast.Cells[3]
				continue
			case SymFn:
				if len(ast.Cells) < 2 {
					return env.ErrorConditionf(CondSyntax, "fn* requires a list of formals")
				}
				fun := Lambda(env, ast.Cells[1], optionalCell(ast, 2))
				if fun.Type == LError {
					return env.withStack(fun)
				}
				return fun
			case SymQuote:
				if len(ast.Cells) != 2 {
					return env.ErrorConditionf(CondSyntax, "quote requires exactly one argument")
				}
				return ast.Cells[1]
			case SymQuasiquote:
				if len(ast.Cells) != 2 {
					return env.ErrorConditionf(CondSyntax, "quasiquote requires exactly one argument")
				}
				ast = Quasiquote(ast.Cells[1])
				if ast.Type == LError {
					return env.withStack(ast)
				}
				continue
			case SymQuasiquoteExpand:
				if len(ast.Cells) != 2 {
					return env.ErrorConditionf(CondSyntax, "quasiquoteexpand requires exactly one argument")
				}
				expansion := Quasiquote(ast.Cells[1])
				if expansion.Type == LError {
					return env.withStack(expansion)
				}
				return expansion
			case SymMacroexpand:
				if len(ast.Cells) != 2 {
					return env.ErrorConditionf(CondSyntax, "macroexpand requires exactly one argument")
				}
				return env.MacroExpand(ast.Cells[1])
			case SymTry:
				r := env.Eval(optionalCell(ast, 1))
				if r.Type != LError || len(ast.Cells) < 3 {
					return r
				}
				catchenv, handler, lerr := env.catch(ast, r)
				if lerr != nil {
					return lerr
				}
				env, ast = catchenv, handler
				continue
			}
		}

		fun := env.Eval(head)
		if fun.Type == LError {
			return fun
		}
		if fun.IsMacro() {
			ast = env.expandMacro(fun, ast.Cells[1:])
			if ast.Type == LError {
				return ast
			}
			continue
		}
		args := make([]*LVal, len(ast.Cells)-1)
		for i, expr := range ast.Cells[1:] {
			args[i] = env.Eval(expr)
			if args[i].Type == LError {
				return args[i]
			}
		}
		if fun.Type != LFun {
			return env.ErrorConditionf(CondNotCallable, "%s is not callable: %v", fun.Type, fun)
		}
		if fun.Builtin != nil {
			return env.callBuiltin(fun, args)
		}
		env.Runtime.Stack.TailCall(funName(fun))
		env = fun.Env.NewCallEnv(fun.Formals(), args)
		ast = fun.Body()
	}
}

// Apply calls fun with the given arguments.  Apply is used by builtins which
// call functions (e.g. ``map'' and ``swap!'').
func (env *LEnv) Apply(fun *LVal, args []*LVal) *LVal {
	if fun.Type != LFun || fun.IsMacro() {
		return env.ErrorConditionf(CondNotCallable, "%s is not callable: %v", fun.Type, fun)
	}
	if fun.Builtin != nil {
		return env.callBuiltin(fun, args)
	}
	callenv := fun.Env.NewCallEnv(fun.Formals(), args)
	return callenv.evalNamed(funName(fun), fun.Body())
}

// MacroExpand repeatedly expands form while it is a call to a macro.  The
// result is not evaluated.
func (env *LEnv) MacroExpand(form *LVal) *LVal {
	for {
		mac := env.macroCall(form)
		if mac == nil {
			return form
		}
		form = env.expandMacro(mac, form.Cells[1:])
		if form.Type == LError {
			return form
		}
	}
}

// macroCall returns the macro which form calls, if form is a macro call.
func (env *LEnv) macroCall(form *LVal) *LVal {
	if form.Type != LList || len(form.Cells) == 0 || form.Cells[0].Type != LSymbol {
		return nil
	}
	v, ok := env.lookup(form.Cells[0].Str)
	if !ok || !v.IsMacro() {
		return nil
	}
	return v
}

func (env *LEnv) expandMacro(mac *LVal, args []*LVal) *LVal {
	callenv := mac.Env.NewCallEnv(mac.Formals(), args)
	return callenv.evalNamed(funName(mac), mac.Body())
}

func (env *LEnv) evalNamed(name string, body *LVal) *LVal {
	stack := env.Runtime.Stack
	lerr := stack.Push(name, body.Source)
	if lerr != nil {
		return lerr
	}
	defer stack.Pop()
	return env.Eval(body)
}

func (env *LEnv) callBuiltin(fun *LVal, args []*LVal) *LVal {
	stack := env.Runtime.Stack
	lerr := stack.Push(fun.Str, nil)
	if lerr != nil {
		return lerr
	}
	defer stack.Pop()
	return fun.Builtin(env, List(args...))
}

func (env *LEnv) evalCells(v *LVal) *LVal {
	cells := make([]*LVal, len(v.Cells))
	for i := range v.Cells {
		cells[i] = env.Eval(v.Cells[i])
		if cells[i].Type == LError {
			return cells[i]
		}
	}
	return &LVal{Type: v.Type, Cells: cells}
}

func (env *LEnv) evalMap(m *LVal) *LVal {
	cells := make([]*LVal, len(m.Cells))
	for i := 0; i < len(m.Cells); i += 2 {
		cells[i] = m.Cells[i]
		cells[i+1] = env.Eval(m.Cells[i+1])
		if cells[i+1].Type == LError {
			return cells[i+1]
		}
	}
	return &LVal{Type: LMap, Cells: cells}
}

func (env *LEnv) evalDef(ast *LVal) *LVal {
	name, lerr := env.defName(ast)
	if lerr != nil {
		return lerr
	}
	v := env.Eval(ast.Cells[2])
	if v.Type == LError {
		return v
	}
	if v.Type == LFun && v.Builtin == nil && v.Str == "" {
		v.Str = name.Str
	}
	env.Put(name, v)
	return v
}

func (env *LEnv) evalDefMacro(ast *LVal) *LVal {
	name, lerr := env.defName(ast)
	if lerr != nil {
		return lerr
	}
	v := env.Eval(ast.Cells[2])
	if v.Type == LError {
		return v
	}
	if v.Type != LFun || v.Builtin != nil {
		return env.ErrorConditionf(CondTypeMismatch, "defmacro! requires a closure: %v", v)
	}
	mac := v.Copy()
	mac.FunType = LFunMacro
	mac.Str = name.Str
	env.Put(name, mac)
	return mac
}

func (env *LEnv) defName(ast *LVal) (*LVal, *LVal) {
	if len(ast.Cells) != 3 {
		return nil, env.ErrorConditionf(CondSyntax, "%s requires a name and a value", ast.Cells[0].Str)
	}
	name := ast.Cells[1]
	if name.Type != LSymbol {
		return nil, env.ErrorConditionf(CondTypeMismatch, "%s name is not a symbol: %v", ast.Cells[0].Str, name)
	}
	return name, nil
}

// evalLetBindings returns a new child of env with the bindings of a let*
// expression.  Each value is evaluated in the new environment so later
// bindings may refer to earlier ones.
func (env *LEnv) evalLetBindings(ast *LVal) (*LEnv, *LVal) {
	if len(ast.Cells) < 2 {
		return nil, env.ErrorConditionf(CondSyntax, "let* requires a list of bindings")
	}
	bindings, lerr := ast.Cells[1].AsSeq()
	if lerr != nil {
		return nil, env.withStack(lerr)
	}
	if len(bindings)%2 != 0 {
		return nil, env.ErrorConditionf(CondSyntax, "let* bindings must have an even number of forms")
	}
	letenv := NewEnv(env)
	for i := 0; i < len(bindings); i += 2 {
		if bindings[i].Type != LSymbol {
			return nil, env.ErrorConditionf(CondTypeMismatch, "let* binding name is not a symbol: %v", bindings[i])
		}
		v := letenv.Eval(bindings[i+1])
		if v.Type == LError {
			return nil, v
		}
		letenv.Put(bindings[i], v)
	}
	return letenv, nil
}

// catch returns the environment and handler expression of the catch* clause
// in the try* expression ast, binding the payload of lerr.
func (env *LEnv) catch(ast *LVal, lerr *LVal) (*LEnv, *LVal, *LVal) {
	clause := ast.Cells[2]
	if !isHeadSymbol(clause, SymCatch) {
		return nil, nil, env.ErrorConditionf(CondSyntax, "catch* not found")
	}
	if len(clause.Cells) != 3 || clause.Cells[1].Type != LSymbol {
		return nil, nil, env.ErrorConditionf(CondSyntax, "catch* requires a symbol and a handler expression")
	}
	catchenv := NewEnv(env)
	catchenv.Put(clause.Cells[1], lerr.CatchPayload())
	return catchenv, clause.Cells[2], nil
}

func optionalCell(v *LVal, i int) *LVal {
	if i < len(v.Cells) {
		return v.Cells[i]
	}
	return Nil()
}

func funName(fun *LVal) string {
	if fun.Str != "" {
		return fun.Str
	}
	return "lambda"
}

func (env *LEnv) debugEnabled(name string) bool {
	v, ok := env.lookup(name)
	return ok && v.IsTrue()
}

func (env *LEnv) trace(ast *LVal) {
	if !env.debugEnabled(DebugEvalSymbol) {
		return
	}
	log := env.Runtime.Logger.WithField("depth", env.Runtime.Stack.Height())
	log.Infof("EVAL: %s", ast.Print(true))
	switch {
	case env.debugEnabled(DebugEvalEnvFullSymbol):
		env.dump(log, true)
	case env.debugEnabled(DebugEvalEnvSymbol):
		env.dump(log, false)
	}
}

func (env *LEnv) dump(log *logrus.Entry, full bool) {
	for e := env; e != nil; e = e.Parent {
		elog := log.WithField("env", e.ID)
		for _, k := range e.bindings() {
			v := e.Scope[k]
			elog.Infof("EVAL DUMP: %s:%v:%s", k, v.Type, v.Print(true))
		}
		if !full {
			return
		}
	}
}
