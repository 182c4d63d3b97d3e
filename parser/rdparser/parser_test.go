package rdparser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, src string) ([]*lisp.LVal, error) {
	t.Helper()
	return rdparser.NewReader().Read("test", strings.NewReader(src))
}

func TestRead(t *testing.T) {
	tests := []struct {
		src    string
		result string
	}{
		{"1", "1"},
		{"-23", "-23"},
		{"-", "-"},
		{"abc", "abc"},
		{":kw", ":kw"},
		{"nil", "nil"},
		{"true", "true"},
		{"false", "false"},
		{`"a\nb\\c\"d"`, `"a\nb\\c\"d"`},
		{`""`, `""`},
		{"( 1 2, 3 )", "(1 2 3)"},
		{"[1 [2 (3)]]", "[1 [2 (3)]]"},
		{`{"a" 1 :b [2]}`, `{"a" 1 :b [2]}`},
		{"'x", "(quote x)"},
		{"`(a ~b ~@c)", "(quasiquote (a (unquote b) (splice-unquote c)))"},
		{"@a", "(deref a)"},
		{`^{"a" 1} [1 2]`, `(with-meta [1 2] {"a" 1})`},
		{"(a ; comment\n b)", "(a b)"},
	}
	for _, test := range tests {
		exprs, err := read(t, test.src)
		if !assert.NoError(t, err, "%q", test.src) {
			continue
		}
		if assert.Len(t, exprs, 1, "%q", test.src) {
			assert.Equal(t, test.result, exprs[0].Print(true), "%q", test.src)
		}
	}
}

func TestRead_program(t *testing.T) {
	exprs, err := read(t, "(def! x 1)\n(+ x 2) 3")
	require.NoError(t, err)
	require.Len(t, exprs, 3)
	assert.Equal(t, "(def! x 1)", exprs[0].Print(true))
	assert.Equal(t, "3", exprs[2].Print(true))
}

func TestRead_noInput(t *testing.T) {
	for _, src := range []string{"", "  \n\t", ";; comment only"} {
		_, err := read(t, src)
		assert.True(t, errors.Is(err, lisp.ErrNoInput), "%q", src)
	}
}

func TestRead_source(t *testing.T) {
	exprs, err := read(t, "(a\n  b)")
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, "test:1:1", exprs[0].Source.String())
	assert.Equal(t, "test:2:3", exprs[0].Cells[1].Source.String())
}

func TestRead_errors(t *testing.T) {
	tests := []struct {
		src        string
		msg        string
		incomplete bool
	}{
		{"(1 2", "unexpected end of input: unmatched ( at test:1:1", true},
		{"[1 (2]", "test:1:6: unexpected ]", false},
		{"{:a 1", "unexpected end of input: unmatched { at test:1:1", true},
		{`"abc`, "unbalanced doublequote", true},
		{`"abc\"`, "unbalanced doublequote", true},
		{"'", "unexpected end of input", true},
		{")", "test:1:1: unexpected )", false},
		{`{"a"}`, "test:1:1: invalid map literal: odd number of map elements: 1", false},
		{"{1 2}", "test:1:1: invalid map literal: invalid map key type: int", false},
		{"99999999999999999999", "integer literal overflows int: 99999999999999999999", false},
	}
	for _, test := range tests {
		_, err := read(t, test.src)
		if !assert.Error(t, err, "%q", test.src) {
			continue
		}
		assert.Equal(t, test.msg, err.Error(), "%q", test.src)
		assert.Equal(t, test.incomplete, lisp.IsIncomplete(err), "%q", test.src)
	}
}
