package nutypes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Operate(t *testing.T) {
	tests := []struct {
		name string
		lhs  Value
		op   Operator
		rhs  Value
		want Value
	}{
		{"int add", NewInt(1), OpAdd, NewInt(2), NewInt(3)},
		{"int sub", NewInt(1), OpSub, NewInt(2), NewInt(-1)},
		{"int mul", NewInt(4), OpMul, NewInt(5), NewInt(20)},
		{"exact div", NewInt(6), OpDiv, NewInt(3), NewInt(2)},
		{"inexact div", NewInt(7), OpDiv, NewInt(2), NewFloat(3.5)},
		{"mixed", NewInt(1), OpAdd, NewFloat(0.5), NewFloat(1.5)},
		{"concat", NewString("foo"), OpAdd, NewString("bar"), NewString("foobar")},
		{"add at max", NewInt(math.MaxInt64 - 1), OpAdd, NewInt(1), NewInt(math.MaxInt64)},
		{"sub at min", NewInt(math.MinInt64 + 1), OpSub, NewInt(1), NewInt(math.MinInt64)},
		{"negative mul", NewInt(-3), OpMul, NewInt(4), NewInt(-12)},
		{"mul by zero", NewInt(math.MinInt64), OpMul, NewInt(0), NewInt(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.lhs.Operate(tt.op, tt.rhs)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestValue_OperateOverflow(t *testing.T) {
	tests := []struct {
		name string
		lhs  int64
		op   Operator
		rhs  int64
	}{
		{"max plus one", math.MaxInt64, OpAdd, 1},
		{"min minus one", math.MinInt64, OpSub, 1},
		{"max times two", math.MaxInt64, OpMul, 2},
		{"min times minus one", math.MinInt64, OpMul, -1},
		{"min plus min", math.MinInt64, OpAdd, math.MinInt64},
		{"zero minus min", 0, OpSub, math.MinInt64},
		{"min over minus one", math.MinInt64, OpDiv, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInt(tt.lhs).Operate(tt.op, NewInt(tt.rhs))
			assert.True(t, IsShellError(err, ErrOperatorOverflow), "got %v", err)
		})
	}
}

func TestValue_OperateErrors(t *testing.T) {
	_, err := NewInt(1).Operate(OpDiv, NewInt(0))
	assert.True(t, IsShellError(err, ErrDivisionByZero))

	_, err = NewString("a").Operate(OpMul, NewInt(2))
	assert.True(t, IsShellError(err, ErrTypeMismatch))
}

func TestValue_TypeAndAccessors(t *testing.T) {
	rec := NewRecord([]string{"name", "size"}, []Value{NewString("a.txt"), NewInt(3)})
	table := NewList(rec, rec)

	assert.Equal(t, TypeRecord, rec.Type())
	assert.Equal(t, TypeTable, table.Type())
	assert.Equal(t, TypeList, NewList().Type())
	assert.Equal(t, TypeList, NewList(NewInt(1), rec).Type())
	assert.True(t, Value{}.IsNothing())

	size, ok := rec.Get("size")
	require.True(t, ok)
	n, err := size.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = size.AsString()
	assert.True(t, IsShellError(err, ErrCantConvert))

	f, err := size.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	assert.Equal(t, "{name: a.txt, size: 3}", rec.String())
	assert.Equal(t, "[1, 2]", NewList(NewInt(1), NewInt(2)).String())
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, NewList(NewInt(1)).Equal(NewList(NewInt(1))))
	assert.False(t, NewList(NewInt(1)).Equal(NewList(NewInt(2))))
	assert.False(t, NewInt(1).Equal(NewFloat(1)))
	assert.False(t, NewRecord([]string{"a"}, []Value{NewInt(1)}).
		Equal(NewRecord([]string{"b"}, []Value{NewInt(1)})))
}

func TestPipelineData(t *testing.T) {
	empty := EmptyPipeline()
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, TypeNothing, empty.Type())
	assert.True(t, empty.IntoValue().IsNothing())

	data := PipelineValue(NewInt(3))
	assert.False(t, data.IsEmpty())
	assert.True(t, NewInt(3).Equal(data.IntoValue()))
}

func TestCall_Accessors(t *testing.T) {
	call := NewCall("ls", Span{Start: 0, End: 2})
	call.Positional = []Value{NewString("a"), NewString("b")}
	call.Named["long"] = NewBool(true)

	v, err := call.Req(0)
	require.NoError(t, err)
	assert.True(t, NewString("a").Equal(v))

	_, err = call.Req(2)
	assert.Error(t, err)

	_, ok := call.Opt(3)
	assert.False(t, ok)
	assert.Len(t, call.Rest(1), 1)
	assert.Nil(t, call.Rest(5))
	assert.True(t, call.Has("long"))
	assert.False(t, call.Has("all"))
}

func TestErrorHelpers(t *testing.T) {
	err := NewParseError(ErrNonConstantExpression, Span{Start: 3, End: 9}, "%s is not constant", "f()")
	assert.True(t, IsParseError(err, ErrNonConstantExpression))
	assert.False(t, IsParseError(err, ErrDuplicateName))
	assert.Contains(t, err.Error(), "3..9")

	se := NewShellError(ErrIO, Span{}, "boom").WithSpan(Span{Start: 1, End: 2})
	assert.Equal(t, Span{Start: 1, End: 2}, se.Span)
}
