package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfagency/nushell/internal/ast"
	"github.com/selfagency/nushell/internal/commands/builtin"
	"github.com/selfagency/nushell/internal/commands/core"
	"github.com/selfagency/nushell/internal/engine"
	"github.com/selfagency/nushell/internal/parser"
	"github.com/selfagency/nushell/internal/testutils"
	"github.com/selfagency/nushell/pkg/nutypes"
)

func newEngine(t *testing.T) *engine.EngineState {
	t.Helper()
	fs := testutils.NewMemFS(t, map[string]string{
		"/a.txt":   "abc",
		"/b.txt":   "hello",
		"/.secret": "x",
	})
	return testutils.NewEngine(t, fs,
		&core.AliasCommand{}, &core.ConstCommand{}, &core.ModuleCommand{},
		&core.UseCommand{}, &core.ExportAliasCommand{}, &core.ExportConstCommand{},
		&builtin.LsCommand{}, &builtin.EchoCommand{}, &builtin.LengthCommand{}, &builtin.LetCommand{},
	)
}

func run(t *testing.T, eng *engine.EngineState, stack *engine.Stack, src string) (nutypes.PipelineData, error) {
	t.Helper()
	block, delta, err := parser.Parse(eng, src)
	require.NoError(t, err)
	return EvalBlock(eng.Merge(delta), stack, block, nutypes.EmptyPipeline())
}

func TestEvalBlock(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect nutypes.Value
	}{
		{name: "literal", input: "42", expect: nutypes.NewInt(42)},
		{name: "arithmetic", input: "1 + 2 * 3", expect: nutypes.NewInt(7)},
		{name: "division", input: "7 / 2", expect: nutypes.NewFloat(3.5)},
		{name: "echo one", input: "echo hi", expect: nutypes.NewString("hi")},
		{name: "echo word with equals", input: "echo a=b", expect: nutypes.NewString("a=b")},
		{name: "alias of word with equals", input: "alias kv = echo a=b; kv", expect: nutypes.NewString("a=b")},
		{name: "echo many", input: "echo 1 2", expect: nutypes.NewList(nutypes.NewInt(1), nutypes.NewInt(2))},
		{name: "pipeline", input: "[1 2 3 4 5] | length", expect: nutypes.NewInt(5)},
		{name: "ls length", input: "ls | length", expect: nutypes.NewInt(2)},
		{name: "ls all length", input: "ls -a | length", expect: nutypes.NewInt(3)},
		{name: "let", input: "let x = 10; $x", expect: nutypes.NewInt(10)},
		{name: "let subexpression", input: "let s: string = (echo hi); $s", expect: nutypes.NewString("hi")},
		{name: "let pipeline", input: "let n = ls | length; $n + 1", expect: nutypes.NewInt(3)},
		{name: "const", input: "const n: int = 2 * 21; $n", expect: nutypes.NewInt(42)},
		{name: "alias appends args", input: "alias say = echo hello; say world", expect: nutypes.NewList(nutypes.NewString("hello"), nutypes.NewString("world"))},
		{name: "use all", input: "module spam { export const a = 1; export const b = 2 }; use spam; $a + $b", expect: nutypes.NewInt(3)},
		{name: "bare const", input: "module spam { export const foo = 7 }; use spam foo; foo", expect: nutypes.NewInt(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, newEngine(t), engine.NewStack(), tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expect.Equal(out.IntoValue()), "got %s", out.IntoValue())
		})
	}
}

func TestEvalBlock_KeywordsProduceNothing(t *testing.T) {
	for _, src := range []string{
		"alias ll = ls -l",
		"const x = 10",
		"module spam { export alias ll = ls -l }",
		"module spam { export const foo = 1 }; use spam foo",
	} {
		t.Run(src, func(t *testing.T) {
			stack := engine.NewStack()
			out, err := run(t, newEngine(t), stack, src)
			require.NoError(t, err)
			assert.True(t, out.IsEmpty())
			assert.Zero(t, stack.Len())
		})
	}
}

func TestEvalBlock_AliasMatchesTarget(t *testing.T) {
	eng := newEngine(t)
	viaAlias, err := run(t, eng, engine.NewStack(), "module spam { export alias ll = ls -l }; use spam ll; ll")
	require.NoError(t, err)
	direct, err := run(t, eng, engine.NewStack(), "ls -l")
	require.NoError(t, err)

	assert.True(t, direct.IntoValue().Equal(viaAlias.IntoValue()))
	rows, _ := direct.IntoValue().AsList()
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0].Columns(), "modified")
}

func TestEvalBlock_Errors(t *testing.T) {
	eng := newEngine(t)

	_, err := run(t, eng, engine.NewStack(), "$missing")
	assert.True(t, nutypes.IsShellError(err, nutypes.ErrVariableNotBound))

	_, err = run(t, eng, engine.NewStack(), "1 / 0")
	assert.True(t, nutypes.IsShellError(err, nutypes.ErrDivisionByZero))

	_, err = run(t, eng, engine.NewStack(), "9223372036854775807 + 1")
	assert.True(t, nutypes.IsShellError(err, nutypes.ErrOperatorOverflow))

	_, err = run(t, eng, engine.NewStack(), "echo abc | length")
	require.True(t, nutypes.IsShellError(err, nutypes.ErrUnsupportedInput))
	var se *nutypes.ShellError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, nutypes.Span{Start: 11, End: 17}, se.Span)

	_, err = run(t, eng, engine.NewStack(), "ls nope")
	assert.True(t, nutypes.IsShellError(err, nutypes.ErrIO))
}

func TestEvalBlock_StackPersists(t *testing.T) {
	eng := newEngine(t)
	stack := engine.NewStack()

	_, err := run(t, eng, stack, "let x = 5")
	require.NoError(t, err)
	out, err := run(t, eng, stack, "$x * 2")
	require.NoError(t, err)
	assert.Equal(t, nutypes.NewInt(10), out.IntoValue())
}

func TestEvalCall_KeywordGetsNoArguments(t *testing.T) {
	eng := newEngine(t)
	block, _, err := parser.Parse(eng, "const x = 1")
	require.NoError(t, err)

	call := block.Pipelines[0].Elements[0].(*ast.Call)
	require.NotEmpty(t, call.Positional)
	out, err := EvalCall(eng, engine.NewStack(), call, nutypes.EmptyPipeline())
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
}

func TestEvalExpression(t *testing.T) {
	stack := engine.NewStack()
	stack.AddVar("n", nutypes.NewInt(4))

	expr := &ast.BinaryOp{
		Op:  nutypes.OpMul,
		LHS: &ast.VarRef{Name: "n"},
		RHS: &ast.Keyword{Literal: []byte("="), Expr: &ast.Literal{Value: nutypes.NewInt(3)}},
	}
	v, err := EvalExpression(nil, stack, expr)
	require.NoError(t, err)
	assert.Equal(t, nutypes.NewInt(12), v)

	v, err = EvalExpression(nil, stack, &ast.VarDecl{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, nutypes.NewString("x"), v)

	v, err = EvalExpression(nil, stack, &ast.ListExpr{Items: []ast.Expression{&ast.VarRef{Name: "n"}}})
	require.NoError(t, err)
	assert.True(t, nutypes.NewList(nutypes.NewInt(4)).Equal(v))
}
