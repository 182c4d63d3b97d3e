/*
Package parser provides a mal reader.

	form    := list | vector | map | macro | atom | string
	list    := '(' <form>* ')'
	vector  := '[' <form>* ']'
	map     := '{' (<key> <form>)* '}'
	key     := <string> | <keyword>
	macro   := ('\'' | '`' | '~' | '~@' | '@') <form> | '^' <form> <form>
	atom    := <integer> | 'nil' | 'true' | 'false' | <keyword> | <symbol>
	keyword := ':' <symbol>

Tokens are produced by the lexer package, which is built on goparsec.  Forms
are produced by the recursive descent parser in the rdparser package.
*/
package parser

import (
	"bytes"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/parser/rdparser"
)

// NewReader returns a new lisp.Reader.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// ParseLVal parses LVal values from text and returns them.  If text contains
// no forms lisp.ErrNoInput is returned.
func ParseLVal(text []byte) ([]*lisp.LVal, error) {
	return NewReader().Read("<string>", bytes.NewReader(text))
}
