package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfagency/nushell/internal/ast"
	"github.com/selfagency/nushell/internal/engine"
	"github.com/selfagency/nushell/pkg/nutypes"
)

var initialValue = nutypes.PositionalArg{
	Name:  "initial_value",
	Shape: nutypes.Keyword([]byte("="), nutypes.ShapeExpression),
}

// parserAfterName returns a parser positioned after the first token of src.
func parserAfterName(t *testing.T, src string) *Parser {
	t.Helper()
	p, err := newParser(newEngine(t), src, engine.NewScope())
	require.NoError(t, err)
	p.advance()
	return p
}

func TestParseKeywordShape_MismatchConsumesNothing(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare word", "ll ls"},
		{"colon before equals", "x := 1"},
		{"quoted equals", "x '=' 1"},
		{"equals glued to word", "x a=b"},
		{"end of input", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parserAfterName(t, tt.input)
			before := p.pos

			expr, err := p.parseKeywordShape(initialValue, &ast.Call{})
			assert.Nil(t, expr)
			assert.True(t, nutypes.IsParseError(err, nutypes.ErrExpected), "got %v", err)
			assert.Equal(t, before, p.pos)
		})
	}
}

func TestParseKeywordShape_Match(t *testing.T) {
	p := parserAfterName(t, "ll = ls -l")

	expr, err := p.parseKeywordShape(initialValue, &ast.Call{})
	require.NoError(t, err)
	kw, ok := expr.(*ast.Keyword)
	require.True(t, ok, "got %T", expr)
	assert.Equal(t, []byte("="), kw.Literal)
	assert.Equal(t, 3, kw.Span.Start)
	call, ok := kw.Expr.(*ast.Call)
	require.True(t, ok, "got %T", kw.Expr)
	assert.Equal(t, "ls", call.Decl.Name())
	assert.Equal(t, TokEOF, p.peek().Kind)
}

func TestParseKeywordShape_MissingValue(t *testing.T) {
	p := parserAfterName(t, "ll =")

	_, err := p.parseKeywordShape(initialValue, &ast.Call{})
	assert.True(t, nutypes.IsParseError(err, nutypes.ErrMissingPositional), "got %v", err)
}
