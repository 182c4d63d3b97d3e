// Package libstring provides the mal printing and string builtins.
package libstring

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the string builtins to env.
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	libutil.AddBuiltins(env, builtins...)
	return lisp.Nil()
}

var builtins = []*libutil.Builtin{
	libutil.Function("pr-str", lisp.Formals(lisp.VarArgSymbol, "xs"), builtinPrStr),
	libutil.Function("str", lisp.Formals(lisp.VarArgSymbol, "xs"), builtinStr),
	libutil.Function("prn", lisp.Formals(lisp.VarArgSymbol, "xs"), builtinPrn),
	libutil.Function("println", lisp.Formals(lisp.VarArgSymbol, "xs"), builtinPrintln),
	libutil.Function("string", lisp.Formals(lisp.VarArgSymbol, "strs"), builtinString),
	libutil.Function("read-string", lisp.Formals("source"), builtinReadString),
	libutil.Function("format", lisp.Formals("format-string", lisp.VarArgSymbol, "values"), builtinFormat),
}

// Join prints each of vs and joins the results with sep.
func Join(vs []*lisp.LVal, sep string, readably bool) string {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = v.Print(readably)
	}
	return strings.Join(strs, sep)
}

func builtinPrStr(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.String(Join(args.Cells, " ", true))
}

func builtinStr(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return lisp.String(Join(args.Cells, "", false))
}

func builtinPrn(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return writeLine(env, env.Runtime.Stdout, Join(args.Cells, " ", true))
}

func builtinPrintln(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	return writeLine(env, env.Runtime.Stdout, Join(args.Cells, " ", false))
}

func writeLine(env *lisp.LEnv, w io.Writer, line string) *lisp.LVal {
	_, err := fmt.Fprintln(w, line)
	if err != nil {
		return env.Error(err)
	}
	return lisp.Nil()
}

func builtinString(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	strs, lerr := libutil.StringArgs(env, args.Cells)
	if lerr != nil {
		return lerr
	}
	return lisp.String(strings.Join(strs, ""))
}

func builtinReadString(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	source, lerr := args.Cells[0].AsString()
	if lerr != nil {
		return libutil.Arg(env, lerr)
	}
	v := env.ReadString("<read-string>", source)
	if v.Type == lisp.LError {
		return libutil.Arg(env, v)
	}
	return v
}

func builtinFormat(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	format := args.Cells[0]
	fvals := args.Cells[1:]
	if format.Type != lisp.LString {
		return env.Errorf("first argument is not a string")
	}
	parts, err := parseFormatString(format.Str)
	if err != nil {
		return env.Error(err)
	}
	var buf bytes.Buffer
	anonIndex := 0
	for _, p := range parts {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") && len(p) > 1 {
			p = strings.Join(strings.Fields(p), "")
			if p != "{}" {
				return env.Errorf("formatting directives must be empty")
			}
			if anonIndex >= len(fvals) {
				return env.Errorf("too many formatting directives for supplied values")
			}
			buf.WriteString(fvals[anonIndex].Print(false))
			anonIndex++
		} else {
			buf.WriteString(p)
		}
	}
	return lisp.String(buf.String())
}

func parseFormatString(f string) ([]string, error) {
	var s []string
	tokens := tokenizeFormatString(f)
	for len(tokens) > 0 {
		tok := tokens[0]
		if tok.typ == formatText {
			s = append(s, tok.text)
			tokens = tokens[1:]
			continue
		}
		if tok.typ == formatClose {
			if len(tokens) < 2 || tokens[1].typ != formatClose {
				return nil, fmt.Errorf("unexpected closing brace '}' outside of formatting directive")
			}
			s = append(s, "}")
			tokens = tokens[2:]
			continue
		}
		if len(tokens) < 2 {
			return nil, fmt.Errorf("unclosed formatting directive")
		}
		switch tokens[1].typ {
		case formatOpen:
			s = append(s, "{")
			tokens = tokens[2:]
			continue
		case formatClose:
			s = append(s, "{}")
			tokens = tokens[2:]
			continue
		case formatText:
			if len(tokens) < 3 {
				return nil, fmt.Errorf("unclosed formatting directive")
			}
			if tokens[2].typ != formatClose {
				return nil, fmt.Errorf("invalid formatting directive")
			}
			s = append(s, "{"+tokens[1].text+"}")
			tokens = tokens[3:]
			continue
		default:
			panic("unknown type")
		}
	}
	return s, nil
}

func tokenizeFormatString(f string) []formatToken {
	var tokens []formatToken
	for {
		i := strings.IndexAny(f, "{}")
		if i < 0 {
			tokens = append(tokens, formatToken{formatText, f})
			return tokens
		}
		if i > 0 {
			tokens = append(tokens, formatToken{formatText, f[:i]})
			f = f[i:]
		}
		if f[0] == '{' {
			tokens = append(tokens, formatToken{formatOpen, "{"})
			f = f[1:]
		} else {
			tokens = append(tokens, formatToken{formatClose, "}"})
			f = f[1:]
		}
	}
}

type formatTokenType uint

const (
	formatText formatTokenType = iota
	formatOpen
	formatClose
)

type formatToken struct {
	typ  formatTokenType
	text string
}
