package nutypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportAliasSignature() Signature {
	return BuildSignature("export alias").
		InputOutputTypes(IO(TypeNothing, TypeNothing)).
		Required("name", ShapeString, "Name of the alias.").
		Required("initial_value", Keyword([]byte("="), ShapeExpression), "Equals sign followed by value.").
		Category(CategoryCore).
		Build()
}

func TestSignatureBuilder_DeclarationOrder(t *testing.T) {
	sig := exportAliasSignature()

	require.Len(t, sig.Required, 2)
	assert.Equal(t, "name", sig.Required[0].Name)
	assert.Equal(t, "initial_value", sig.Required[1].Name)
	assert.Equal(t, KindKeyword, sig.Required[1].Shape.Kind())
	assert.Equal(t, []InOut{IO(TypeNothing, TypeNothing)}, sig.InputOutputTypes)
	assert.Empty(t, sig.Named)
	assert.Nil(t, sig.Rest)
	assert.NoError(t, sig.Validate())
}

func TestSignatureBuilder_BuildCopies(t *testing.T) {
	b := BuildSignature("ls").InputOutputTypes(IO(TypeNothing, TypeTable))
	first := b.Build()
	b.Switch("long", "Get all available columns.", 'l')
	second := b.Build()

	assert.Empty(t, first.Named)
	assert.Len(t, second.Named, 1)
}

func TestSignature_UsageLine(t *testing.T) {
	tests := []struct {
		name string
		sig  Signature
		want string
	}{
		{
			name: "keyword parameter",
			sig:  exportAliasSignature(),
			want: "export alias <name> = <initial_value>",
		},
		{
			name: "flags optional and rest",
			sig: BuildSignature("ls").
				InputOutputTypes(IO(TypeNothing, TypeTable)).
				Optional("pattern", ShapeFilepath, "The glob pattern to use.").
				Switch("all", "Show hidden files.", 'a').
				Build(),
			want: "ls {flags} (pattern)",
		},
		{
			name: "rest",
			sig: BuildSignature("echo").
				InputOutputTypes(IO(TypeNothing, TypeAny)).
				Rest("rest", ShapeAny, "The values to echo.").
				Build(),
			want: "echo ...rest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.UsageLine())
		})
	}
}

func TestSignature_Positional(t *testing.T) {
	sig := BuildSignature("use").
		InputOutputTypes(IO(TypeNothing, TypeNothing)).
		Required("module", ShapeString, "Module name.").
		Rest("members", ShapeString, "Members to import.").
		Build()

	p, ok := sig.Positional(0)
	require.True(t, ok)
	assert.Equal(t, "module", p.Name)

	p, ok = sig.Positional(5)
	require.True(t, ok)
	assert.Equal(t, "members", p.Name)

	_, ok = exportAliasSignature().Positional(2)
	assert.False(t, ok)
}

func TestSignature_Flags(t *testing.T) {
	sig := BuildSignature("help").
		InputOutputTypes(IO(TypeNothing, TypeString)).
		Named("find", ShapeString, "String to find in command names and usage.", 'f').
		Switch("verbose", "Show more.", 0).
		Build()

	f, ok := sig.FindLong("find")
	require.True(t, ok)
	assert.False(t, f.IsSwitch())

	f, ok = sig.FindShort('f')
	require.True(t, ok)
	assert.Equal(t, "find", f.Long)

	_, ok = sig.FindShort(0)
	assert.False(t, ok)

	f, ok = sig.FindLong("verbose")
	require.True(t, ok)
	assert.True(t, f.IsSwitch())
}

func TestSignature_OutputFor(t *testing.T) {
	sig := BuildSignature("length").
		InputOutputTypes(IO(TypeList, TypeInt), IO(TypeTable, TypeInt)).
		Build()

	out, ok := sig.OutputFor(TypeTable)
	require.True(t, ok)
	assert.Equal(t, TypeInt, out)

	assert.True(t, sig.AcceptsInput(TypeAny))
	assert.False(t, sig.AcceptsInput(TypeString))
}

func TestSignature_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sig     Signature
		wantErr string
	}{
		{
			name:    "empty name",
			sig:     BuildSignature(" ").InputOutputTypes(IO(TypeNothing, TypeNothing)).Build(),
			wantErr: "name cannot be empty",
		},
		{
			name:    "no io types",
			sig:     BuildSignature("x").Build(),
			wantErr: "no input/output types",
		},
		{
			name: "duplicate parameter",
			sig: BuildSignature("x").InputOutputTypes(IO(TypeNothing, TypeNothing)).
				Required("a", ShapeString, "").
				Switch("a", "", 0).
				Build(),
			wantErr: "declares parameter \"a\" twice",
		},
		{
			name: "duplicate short",
			sig: BuildSignature("x").InputOutputTypes(IO(TypeNothing, TypeNothing)).
				Switch("all", "", 'a').
				Switch("append", "", 'a').
				Build(),
			wantErr: "short flag -a twice",
		},
		{
			name: "empty keyword literal",
			sig: BuildSignature("x").InputOutputTypes(IO(TypeNothing, TypeNothing)).
				Required("v", Keyword(nil, ShapeExpression), "").
				Build(),
			wantErr: "empty literal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sig.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
