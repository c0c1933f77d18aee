package nutypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyword_OwnsItsLiteral(t *testing.T) {
	lit := []byte("=")
	shape := Keyword(lit, ShapeExpression)
	lit[0] = '!'

	assert.Equal(t, []byte("="), shape.Literal())

	got := shape.Literal()
	got[0] = '?'
	assert.Equal(t, []byte("="), shape.Literal(), "Literal must return a copy")
}

func TestKeyword_Inner(t *testing.T) {
	shape := Keyword([]byte("="), ShapeMathExpression)

	inner, ok := shape.Inner()
	require.True(t, ok)
	assert.Equal(t, KindMathExpression, inner.Kind())

	_, ok = ShapeString.Inner()
	assert.False(t, ok)
	assert.Nil(t, ShapeString.Literal())
}

func TestSyntaxShape_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b SyntaxShape
		want bool
	}{
		{"same simple", ShapeString, ShapeString, true},
		{"different simple", ShapeString, ShapeInt, false},
		{"same keyword", Keyword([]byte("="), ShapeExpression), Keyword([]byte("="), ShapeExpression), true},
		{"different literal", Keyword([]byte("="), ShapeExpression), Keyword([]byte("in"), ShapeExpression), false},
		{"different inner", Keyword([]byte("="), ShapeExpression), Keyword([]byte("="), ShapeMathExpression), false},
		{"keyword vs inner", Keyword([]byte("="), ShapeExpression), ShapeExpression, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestSyntaxShape_String(t *testing.T) {
	assert.Equal(t, "string", ShapeString.String())
	assert.Equal(t, "math expression", ShapeMathExpression.String())
	assert.Equal(t, `"=" expression`, Keyword([]byte("="), ShapeExpression).String())
}

func TestSyntaxShape_Type(t *testing.T) {
	assert.Equal(t, TypeString, ShapeFilepath.Type())
	assert.Equal(t, TypeInt, ShapeInt.Type())
	assert.Equal(t, TypeInt, Keyword([]byte("="), ShapeInt).Type())
	assert.Equal(t, TypeAny, ShapeExpression.Type())
}

func TestType_Accepts(t *testing.T) {
	tests := []struct {
		name     string
		expected Type
		actual   Type
		want     bool
	}{
		{"any accepts string", TypeAny, TypeString, true},
		{"string accepts any", TypeString, TypeAny, true},
		{"list accepts table", TypeList, TypeTable, true},
		{"table rejects list", TypeTable, TypeList, false},
		{"float accepts int", TypeFloat, TypeInt, true},
		{"int rejects float", TypeInt, TypeFloat, false},
		{"nothing rejects string", TypeNothing, TypeString, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expected.Accepts(tt.actual))
		})
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(" Int ")
	require.NoError(t, err)
	assert.Equal(t, TypeInt, typ)

	_, err = ParseType("widget")
	assert.Error(t, err)
}
