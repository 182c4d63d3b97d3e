package lexer

import (
	"testing"

	"github.com/bmatsuo/gomal/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	text := "(def! x \"a\\\"b\") ; comment\n~@[1, 2] 'y"
	toks := New("test", []byte(text)).Tokens()

	expect := []struct {
		typ  token.Type
		text string
	}{
		{token.PAREN_L, "("},
		{token.ATOM, "def!"},
		{token.ATOM, "x"},
		{token.STRING, `"a\"b"`},
		{token.PAREN_R, ")"},
		{token.SPLICE_UNQUOTE, "~@"},
		{token.BRACE_L, "["},
		{token.ATOM, "1"},
		{token.ATOM, "2"},
		{token.BRACE_R, "]"},
		{token.QUOTE, "'"},
		{token.ATOM, "y"},
		{token.EOF, ""},
	}
	require.Len(t, toks, len(expect))
	for i := range expect {
		assert.Equal(t, expect[i].typ, toks[i].Type, "token %d", i)
		assert.Equal(t, expect[i].text, toks[i].Text, "token %d", i)
	}
	assert.Equal(t, "test:1:1", toks[0].Source.String())
	assert.Equal(t, "test:1:7", toks[2].Source.String())
	assert.Equal(t, "test:2:1", toks[5].Source.String())
	assert.Equal(t, "test:2:4", toks[7].Source.String())
}

func TestLexer_unterminatedString(t *testing.T) {
	toks := New("test", []byte(`"abc`)).Tokens()
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, `"abc`, toks[0].Text)
	assert.Equal(t, token.EOF, toks[1].Type)
}

func TestLexer_empty(t *testing.T) {
	for _, text := range []string{"", "   \n", "; only a comment", ",,,"} {
		toks := New("test", []byte(text)).Tokens()
		if assert.Len(t, toks, 1, "%q", text) {
			assert.Equal(t, token.EOF, toks[0].Type, "%q", text)
		}
	}
}
