package token

import "fmt"

// Token is a lexical token produced by the mal lexer.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	return fmt.Sprintf("%s %q", tok.Type, tok.Text)
}

type Type uint

// Type constants used for the mal lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions & literals
	ATOM
	STRING

	COMMENT

	// Reader macros
	QUOTE
	QUASIQUOTE
	UNQUOTE
	SPLICE_UNQUOTE
	DEREF
	META

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R
	CURLY_L
	CURLY_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:        "invalid",
		ERROR:          "error",
		EOF:            "EOF",
		ATOM:           "atom",
		STRING:         "string",
		COMMENT:        ";",
		QUOTE:          "'",
		QUASIQUOTE:     "`",
		UNQUOTE:        "~",
		SPLICE_UNQUOTE: "~@",
		DEREF:          "@",
		META:           "^",
		PAREN_L:        "(",
		PAREN_R:        ")",
		BRACE_L:        "[",
		BRACE_R:        "]",
		CURLY_L:        "{",
		CURLY_R:        "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Special returns the Type of a special (structural or reader macro) token
// given its text.  Special returns INVALID for any other text.
func Special(text string) Type {
	switch text {
	case "~@":
		return SPLICE_UNQUOTE
	case "'":
		return QUOTE
	case "`":
		return QUASIQUOTE
	case "~":
		return UNQUOTE
	case "@":
		return DEREF
	case "^":
		return META
	case "(":
		return PAREN_L
	case ")":
		return PAREN_R
	case "[":
		return BRACE_L
	case "]":
		return BRACE_R
	case "{":
		return CURLY_L
	case "}":
		return CURLY_R
	}
	return INVALID
}

type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
