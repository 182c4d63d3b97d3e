// Package lexer tokenizes mal source text.
//
//	token   := '~@' | special | string | comment | atom
//	special := /[\[\]{}()'`~^@]/
//	string  := /"(?:\\.|[^\\"])*"?/
//	comment := /;[^\n]*/
//	atom    := /[^\s\[\]{}('"`,;)]+/
//
// Whitespace and commas separate tokens and are otherwise ignored.  Strings
// are allowed to be unterminated so that the parser can report them properly.
package lexer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/bmatsuo/gomal/parser/token"
	parsec "github.com/prataprc/goparsec"
)

const (
	termSpliceUnquote = "SPLICEUNQUOTE"
	termSpecial       = "SPECIAL"
	termString        = "STRING"
	termComment       = "COMMENT"
	termSeparator     = "SEPARATOR"
	termAtom          = "ATOM"
)

// Lexer produces tokens from a complete source text.
type Lexer struct {
	file   string
	text   []byte
	lines  []int // byte offsets of line starts
	parser parsec.Parser
}

// New initializes and returns a new Lexer that tokenizes text.  The file name
// is only used to annotate token source locations.
func New(file string, text []byte) *Lexer {
	lex := &Lexer{
		file:   file,
		text:   text,
		parser: newParsecLexer(),
	}
	lex.lines = append(lex.lines, 0)
	for i, c := range text {
		if c == '\n' {
			lex.lines = append(lex.lines, i+1)
		}
	}
	return lex
}

// Tokens scans the entire text and returns its tokens, excluding comments.
// The returned slice always ends with a token.EOF token.  If the text
// contains a character which cannot start a token, the final token preceding
// EOF has type token.ERROR.
func (lex *Lexer) Tokens() []*token.Token {
	var toks []*token.Token
	s := parsec.NewScanner(lex.text)
	root, s := lex.parser(s)
	for root != nil {
		tok := lex.terminal(root, s.GetCursor())
		if tok != nil {
			toks = append(toks, tok)
		}
		root, s = lex.parser(s)
	}
	end := s.GetCursor()
	if rest := bytes.TrimLeft(lex.text[end:], " \t\r\n\f\v,"); len(rest) > 0 {
		pos := len(lex.text) - len(rest)
		toks = append(toks, &token.Token{
			Type:   token.ERROR,
			Text:   fmt.Sprintf("unexpected character %q", bytes.Runes(rest)[0]),
			Source: lex.location(pos),
		})
	}
	toks = append(toks, &token.Token{
		Type:   token.EOF,
		Source: lex.location(len(lex.text)),
	})
	return toks
}

// terminal converts a parsec node into a token.  Separators and comments
// produce a nil token.
func (lex *Lexer) terminal(node parsec.ParsecNode, cursor int) *token.Token {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{node})
	if len(nodes) == 0 {
		return nil
	}
	term, ok := nodes[0].(*parsec.Terminal)
	if !ok {
		return nil
	}
	tok := &token.Token{
		Text:   term.Value,
		Source: lex.location(cursor - len(term.Value)),
	}
	switch term.Name {
	case termSeparator, termComment:
		return nil
	case termSpliceUnquote, termSpecial:
		tok.Type = token.Special(term.Value)
	case termString:
		tok.Type = token.STRING
	case termAtom:
		tok.Type = token.ATOM
	default:
		tok.Type = token.INVALID
	}
	return tok
}

func (lex *Lexer) location(pos int) *token.Location {
	i := sort.Search(len(lex.lines), func(i int) bool { return lex.lines[i] > pos })
	return &token.Location{
		File: lex.file,
		Pos:  pos,
		Line: i,
		Col:  pos - lex.lines[i-1] + 1,
	}
}

func newParsecLexer() parsec.Parser {
	spliceUnquote := parsec.Atom("~@", termSpliceUnquote)
	special := parsec.Token("[\\[\\]{}()'`~^@]", termSpecial)
	str := parsec.Token(`"(?:\\.|[^\\"])*"?`, termString)
	comment := parsec.Token(`;[^\n]*`, termComment)
	sep := parsec.Token(`,+`, termSeparator)
	atom := parsec.Token("[^\\s\\[\\]{}('\"`,;)]+", termAtom)
	// The order of alternatives matters: "~@" must win over "~" and atoms
	// come last because they swallow nearly anything.
	return parsec.OrdChoice(nil, spliceUnquote, special, str, comment, sep, atom)
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}
