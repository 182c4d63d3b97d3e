package lisp

import (
	"strconv"
	"strings"
)

// Print returns the textual representation of v.  When readably is true,
// strings are quoted and escaped so that the result can be read back.  An
// atom reached again while printing its own contents is written as
// "(atom ...)".
func (v *LVal) Print(readably bool) string {
	p := &printer{readably: readably}
	p.print(v)
	return p.buf.String()
}

type printer struct {
	buf      strings.Builder
	readably bool
	atoms    []*LVal // atoms whose contents are being printed
}

func (p *printer) print(v *LVal) {
	buf := &p.buf
	switch v.Type {
	case LInt:
		buf.WriteString(strconv.Itoa(v.Int))
	case LString:
		if p.readably {
			writeQuoted(buf, v.Str)
		} else {
			buf.WriteString(v.Str)
		}
	case LSymbol, LKeyword:
		buf.WriteString(v.Str)
	case LNil:
		buf.WriteString("nil")
	case LTrue:
		buf.WriteString("true")
	case LFalse:
		buf.WriteString("false")
	case LList:
		p.printCells("(", v.Cells, ")")
	case LVector:
		p.printCells("[", v.Cells, "]")
	case LMap:
		p.printCells("{", v.Cells, "}")
	case LAtom:
		p.printAtom(v)
	case LFun:
		buf.WriteString("#<function>")
	case LError:
		buf.WriteString(v.ErrorMessage())
	default:
		buf.WriteString("#<invalid>")
	}
}

func (p *printer) printAtom(v *LVal) {
	for _, a := range p.atoms {
		if a == v {
			p.buf.WriteString("(atom ...)")
			return
		}
	}
	p.atoms = append(p.atoms, v)
	p.buf.WriteString("(atom ")
	p.print(v.Deref())
	p.buf.WriteString(")")
	p.atoms = p.atoms[:len(p.atoms)-1]
}

func (p *printer) printCells(open string, cells []*LVal, close string) {
	p.buf.WriteString(open)
	for i, c := range cells {
		if i > 0 {
			p.buf.WriteString(" ")
		}
		p.print(c)
	}
	p.buf.WriteString(close)
}

func writeQuoted(buf *strings.Builder, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
}

// Quote returns the readable representation of the string s, as a string
// literal would be written in source.
func Quote(s string) string {
	var buf strings.Builder
	writeQuoted(&buf, s)
	return buf.String()
}
