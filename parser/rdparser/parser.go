package rdparser

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/parser/lexer"
	"github.com/bmatsuo/gomal/parser/token"
)

var intLiteral = regexp.MustCompile(`^-?[0-9]+$`)

var readerMacros = map[token.Type]string{
	token.QUOTE:          lisp.SymQuote,
	token.QUASIQUOTE:     lisp.SymQuasiquote,
	token.UNQUOTE:        lisp.SymUnquote,
	token.SPLICE_UNQUOTE: lisp.SymSpliceUnquote,
	token.DEREF:          "deref",
}

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := New(lexer.New(name, text))
	return p.ParseProgram()
}

// Parser is a lisp parser.
type Parser struct {
	toks []*token.Token
	curr *token.Token
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from lex.
func New(lex *lexer.Lexer) *Parser {
	return NewFromTokens(lex.Tokens())
}

// NewFromTokens initializes and returns a new Parser that reads the given
// tokens.  The final token must have type token.EOF.
func NewFromTokens(toks []*token.Token) *Parser {
	p := &Parser{
		toks: toks,
	}
	// Setup the peek token so the parser is in the proper state when the first
	// parse function is called.
	p.ReadToken()
	return p
}

// ParseProgram parses all expressions in the token stream.  If the stream
// contains no expressions ParseProgram returns lisp.ErrNoInput.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	if p.PeekType() == token.EOF {
		return nil, lisp.ErrNoInput
	}
	var exprs []*lisp.LVal
	for !p.expect(token.EOF) {
		expr := p.ParseExpression()
		if expr.Type == lisp.LError {
			return nil, lisp.GoError(expr)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.
func (p *Parser) ParseExpression() *lisp.LVal {
	switch p.PeekType() {
	case token.ATOM:
		return p.ParseAtom()
	case token.STRING:
		return p.ParseLiteralString()
	case token.QUOTE, token.QUASIQUOTE, token.UNQUOTE, token.SPLICE_UNQUOTE, token.DEREF:
		return p.ParseReaderMacro()
	case token.META:
		return p.ParseMeta()
	case token.PAREN_L:
		return p.ParseSequence(token.PAREN_R, lisp.LList)
	case token.BRACE_L:
		return p.ParseSequence(token.BRACE_R, lisp.LVector)
	case token.CURLY_L:
		return p.ParseMap()
	case token.EOF:
		p.ReadToken()
		return p.errorf(lisp.CondUnexpectedEOF, "unexpected end of input")
	case token.ERROR, token.INVALID:
		p.ReadToken()
		return p.errorf(lisp.CondSyntax, "%s: %s", p.Token().Source, p.Token().Text)
	default:
		p.ReadToken()
		return p.errorf(lisp.CondSyntax, "%s: unexpected %s", p.Token().Source, p.Token().Type)
	}
}

// ParseAtom parses a number, a literal constant, a keyword or a symbol.
func (p *Parser) ParseAtom() *lisp.LVal {
	if !p.expect(token.ATOM) {
		return p.errorf(lisp.CondSyntax, "invalid atom: %v", p.PeekType())
	}
	text := p.Token().Text
	switch {
	case text == "nil":
		return lisp.Nil()
	case text == "true":
		return lisp.True()
	case text == "false":
		return lisp.False()
	case intLiteral.MatchString(text):
		x, err := strconv.Atoi(text)
		if err != nil {
			return p.errorf(lisp.CondSyntax, "integer literal overflows int: %v", text)
		}
		return p.tokenLVal(lisp.Int(x))
	case text[0] == lisp.KeywordPrefix:
		return p.tokenLVal(lisp.Keyword(text))
	default:
		return p.tokenLVal(lisp.Symbol(text))
	}
}

// ParseLiteralString parses a double quoted string literal.
func (p *Parser) ParseLiteralString() *lisp.LVal {
	if !p.expect(token.STRING) {
		return p.errorf(lisp.CondSyntax, "invalid string literal: %v", p.PeekType())
	}
	text := p.Token().Text
	if len(text) < 2 || text[len(text)-1] != '"' {
		return p.errorf(lisp.CondUnexpectedEOF, "unbalanced doublequote")
	}
	var buf strings.Builder
	escape := false
	for _, c := range text[1 : len(text)-1] {
		switch {
		case escape && c == 'n':
			buf.WriteByte('\n')
			escape = false
		case escape:
			buf.WriteRune(c)
			escape = false
		case c == '\\':
			escape = true
		default:
			buf.WriteRune(c)
		}
	}
	if escape {
		return p.errorf(lisp.CondUnexpectedEOF, "unbalanced doublequote")
	}
	return p.tokenLVal(lisp.String(buf.String()))
}

// ParseReaderMacro parses a quote, quasiquote, unquote, splice-unquote or
// deref expression, producing a list of the expanded form.
func (p *Parser) ParseReaderMacro() *lisp.LVal {
	if !p.expect(token.QUOTE, token.QUASIQUOTE, token.UNQUOTE, token.SPLICE_UNQUOTE, token.DEREF) {
		return p.errorf(lisp.CondSyntax, "invalid reader macro: %v", p.PeekType())
	}
	tok := p.Token()
	expr := p.ParseExpression()
	if expr.Type == lisp.LError {
		return expr
	}
	v := lisp.List(lisp.Symbol(readerMacros[tok.Type]), expr)
	v.Source = tok.Source
	return v
}

// ParseMeta parses ``^meta obj'' into (with-meta obj meta).
func (p *Parser) ParseMeta() *lisp.LVal {
	if !p.expect(token.META) {
		return p.errorf(lisp.CondSyntax, "invalid metadata: %v", p.PeekType())
	}
	tok := p.Token()
	meta := p.ParseExpression()
	if meta.Type == lisp.LError {
		return meta
	}
	obj := p.ParseExpression()
	if obj.Type == lisp.LError {
		return obj
	}
	v := lisp.List(lisp.Symbol("with-meta"), obj, meta)
	v.Source = tok.Source
	return v
}

// ParseSequence parses the elements of a list or vector up to the closing
// token.
func (p *Parser) ParseSequence(closer token.Type, typ lisp.LType) *lisp.LVal {
	open := p.ReadToken()
	cells, lerr := p.parseCells(open, closer)
	if lerr != nil {
		return lerr
	}
	var v *lisp.LVal
	if typ == lisp.LVector {
		v = lisp.Vector(cells...)
	} else {
		v = lisp.List(cells...)
	}
	v.Source = open.Source
	return v
}

// ParseMap parses a map literal.  The literal must contain an even number of
// forms and every key must be a string or a keyword.
func (p *Parser) ParseMap() *lisp.LVal {
	open := p.ReadToken()
	cells, lerr := p.parseCells(open, token.CURLY_R)
	if lerr != nil {
		return lerr
	}
	m := lisp.Map(cells...)
	if m.Type == lisp.LError {
		err := lisp.ErrorConditionf(lisp.CondSyntax, "%s: invalid map literal: %s", open.Source, m.ErrorMessage())
		err.Source = open.Source
		return err
	}
	m.Source = open.Source
	return m
}

func (p *Parser) parseCells(open *token.Token, closer token.Type) ([]*lisp.LVal, *lisp.LVal) {
	var cells []*lisp.LVal
	for {
		if p.expect(token.EOF) {
			return nil, p.errorf(lisp.CondUnexpectedEOF, "unexpected end of input: unmatched %s at %s", open.Text, open.Source)
		}
		if p.expect(closer) {
			return cells, nil
		}
		x := p.ParseExpression()
		if x.Type == lisp.LError {
			return nil, x
		}
		cells = append(cells, x)
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	if len(p.toks) > 0 {
		p.peek = p.toks[0]
		p.toks = p.toks[1:]
	} else if p.peek == nil || p.peek.Type != token.EOF {
		p.peek = &token.Token{Type: token.EOF}
	}
	return p.curr
}

func (p *Parser) Token() *token.Token {
	return p.curr
}

func (p *Parser) Peek() *token.Token {
	return p.peek
}

func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Token().Source
	return v
}

func (p *Parser) expect(typ ...token.Type) bool {
	peekType := p.peek.Type
	if len(typ) == 0 {
		return peekType != token.EOF
	}
	for _, typ := range typ {
		if typ == peekType {
			p.ReadToken()
			return true
		}
	}
	return false
}

func (p *Parser) errorf(condition string, format string, v ...interface{}) *lisp.LVal {
	err := lisp.ErrorConditionf(condition, format, v...)
	if p.Token() != nil {
		err.Source = p.Token().Source
	}
	return err
}
