// Package libregexp provides regular expression builtins.  Patterns are
// strings using the syntax of the Go regexp package.
package libregexp

import (
	"regexp"
	"sync"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

// CondInvalidPattern is the condition of errors caused by a pattern which
// does not compile.
const CondInvalidPattern = "invalid-regexp-pattern"

// LoadPackage adds the regexp builtins to env
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	libutil.AddBuiltins(env, builtins...)
	return lisp.Nil()
}

var builtins = []*libutil.Builtin{
	libutil.Function("regexp-match?", lisp.Formals("pattern", "text"), BuiltinIsMatch),
	libutil.Function("regexp-find", lisp.Formals("pattern", "text"), BuiltinFind),
	libutil.Function("regexp-find-all", lisp.Formals("pattern", "text"), BuiltinFindAll),
	libutil.Function("regexp-replace", lisp.Formals("pattern", "text", "replacement"), BuiltinReplace),
	libutil.Function("regexp-split", lisp.Formals("pattern", "text"), BuiltinSplit),
}

var cache sync.Map

func compile(env *lisp.LEnv, v *lisp.LVal) (*regexp.Regexp, *lisp.LVal) {
	patt, lerr := v.AsString()
	if lerr != nil {
		return nil, libutil.Arg(env, lerr)
	}
	if re, ok := cache.Load(patt); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(patt)
	if err != nil {
		return nil, env.ErrorConditionf(CondInvalidPattern, "%v", err)
	}
	cache.Store(patt, re)
	return re, nil
}

func patternAndText(env *lisp.LEnv, args *lisp.LVal) (*regexp.Regexp, string, *lisp.LVal) {
	re, lerr := compile(env, args.Cells[0])
	if lerr != nil {
		return nil, "", lerr
	}
	text, lerr := args.Cells[1].AsString()
	if lerr != nil {
		return nil, "", libutil.Arg(env, lerr)
	}
	return re, text, nil
}

func BuiltinIsMatch(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	re, text, lerr := patternAndText(env, args)
	if lerr != nil {
		return lerr
	}
	return lisp.Bool(re.MatchString(text))
}

// BuiltinFind returns the leftmost match of pattern in text, or nil.
func BuiltinFind(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	re, text, lerr := patternAndText(env, args)
	if lerr != nil {
		return lerr
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return lisp.Nil()
	}
	return lisp.String(text[loc[0]:loc[1]])
}

func BuiltinFindAll(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	re, text, lerr := patternAndText(env, args)
	if lerr != nil {
		return lerr
	}
	return stringList(re.FindAllString(text, -1))
}

func BuiltinReplace(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	re, text, lerr := patternAndText(env, args)
	if lerr != nil {
		return lerr
	}
	repl, lerr := args.Cells[2].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	return lisp.String(re.ReplaceAllString(text, repl))
}

func BuiltinSplit(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	re, text, lerr := patternAndText(env, args)
	if lerr != nil {
		return lerr
	}
	return stringList(re.Split(text, -1))
}

func stringList(strs []string) *lisp.LVal {
	cells := make([]*lisp.LVal, len(strs))
	for i := range strs {
		cells[i] = lisp.String(strs[i])
	}
	return lisp.List(cells...)
}
