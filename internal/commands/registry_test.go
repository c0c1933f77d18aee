package commands

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfagency/nushell/pkg/nutypes"
)

// MockCommand implements nutypes.Command for testing.
type MockCommand struct {
	nutypes.BaseCommand
	name    string
	usage   string
	sigName string
	terms   []string
	keyword bool
	io      []nutypes.InOut
}

func NewMockCommand(name string) *MockCommand {
	return &MockCommand{
		name:    name,
		usage:   fmt.Sprintf("Mock command: %s", name),
		sigName: name,
		io:      []nutypes.InOut{nutypes.IO(nutypes.TypeNothing, nutypes.TypeNothing)},
	}
}

func (m *MockCommand) Name() string          { return m.name }
func (m *MockCommand) Usage() string         { return m.usage }
func (m *MockCommand) SearchTerms() []string { return m.terms }
func (m *MockCommand) IsParserKeyword() bool { return m.keyword }

func (m *MockCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(m.sigName).
		InputOutputTypes(m.io...).
		Category(nutypes.CategoryMisc).
		Build()
}

func (m *MockCommand) Run(_ nutypes.EngineState, _ nutypes.Stack, _ *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
	return nutypes.EmptyPipeline(), nil
}

func TestRegistry_NewRegistry(t *testing.T) {
	registry := NewRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.commands)
	assert.Equal(t, 0, len(registry.commands))
	assert.False(t, registry.IsSealed())
}

func TestRegistry_Register(t *testing.T) {
	mismatched := NewMockCommand("mismatch")
	mismatched.sigName = "other"

	noIO := NewMockCommand("noio")
	noIO.io = nil

	tests := []struct {
		name    string
		command nutypes.Command
		wantErr bool
		errMsg  string
	}{
		{
			name:    "register valid command",
			command: NewMockCommand("test"),
		},
		{
			name:    "register multi-word command",
			command: NewMockCommand("export alias"),
		},
		{
			name:    "register command with empty name",
			command: NewMockCommand(""),
			wantErr: true,
			errMsg:  "command name cannot be empty",
		},
		{
			name:    "signature name mismatch",
			command: mismatched,
			wantErr: true,
			errMsg:  "has signature named",
		},
		{
			name:    "invalid signature",
			command: noIO,
			wantErr: true,
			errMsg:  "no input/output types",
		},
	}

	registry := NewRegistry()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.command)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)

			cmd, exists := registry.Get(tt.command.Name())
			assert.True(t, exists)
			assert.Equal(t, tt.command, cmd)
		})
	}
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	registry := NewRegistry()
	cmd1 := NewMockCommand("duplicate")
	cmd2 := NewMockCommand("duplicate")

	require.NoError(t, registry.Register(cmd1))

	err := registry.Register(cmd2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "command duplicate already registered")

	cmd, exists := registry.Get("duplicate")
	assert.True(t, exists)
	assert.Equal(t, cmd1, cmd)
}

func TestRegistry_Seal(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(NewMockCommand("ls")))
	registry.Seal()
	registry.Seal()

	assert.True(t, registry.IsSealed())
	assert.ErrorIs(t, registry.Register(NewMockCommand("echo")), ErrSealed)
	assert.ErrorIs(t, registry.Unregister("ls"), ErrSealed)
	assert.True(t, registry.IsValidCommand("ls"))
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(NewMockCommand("test")))

	require.NoError(t, registry.Unregister("test"))
	assert.False(t, registry.IsValidCommand("test"))

	assert.NoError(t, registry.Unregister("nonexistent"))
}

func TestRegistry_GetAllSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"ls", "echo", "export alias", "export"} {
		require.NoError(t, registry.Register(NewMockCommand(name)))
	}

	assert.Equal(t, []string{"echo", "export", "export alias", "ls"}, registry.Names())

	all := registry.GetAll()
	all[0] = nil
	assert.Equal(t, "echo", registry.GetAll()[0].Name())
}

func TestRegistry_LongestMatch(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"export", "export alias", "export const", "ls"} {
		require.NoError(t, registry.Register(NewMockCommand(name)))
	}

	tests := []struct {
		name     string
		words    []string
		want     string
		consumed int
	}{
		{"two word", []string{"export", "alias", "ll", "=", "ls"}, "export alias", 2},
		{"falls back to one word", []string{"export", "def", "x"}, "export", 1},
		{"single", []string{"ls", "-l"}, "ls", 1},
		{"unknown", []string{"frobnicate"}, "", 0},
		{"empty", nil, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, n := registry.LongestMatch(tt.words)
			assert.Equal(t, tt.consumed, n)
			if tt.want == "" {
				assert.Nil(t, cmd)
				return
			}
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd.Name())
		})
	}
}

func TestRegistry_Search(t *testing.T) {
	registry := NewRegistry()
	alias := NewMockCommand("export alias")
	alias.terms = []string{"abbr", "aka"}
	list := NewMockCommand("ls")
	list.usage = "List the filenames of a directory."
	require.NoError(t, registry.Register(alias))
	require.NoError(t, registry.Register(list))

	found := registry.Search("AKA")
	require.Len(t, found, 1)
	assert.Equal(t, "export alias", found[0].Name())

	found = registry.Search("directory")
	require.Len(t, found, 1)
	assert.Equal(t, "ls", found[0].Name())

	assert.Empty(t, registry.Search("  "))
}

func TestRegistry_ByCategory(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(NewMockCommand("a")))
	require.NoError(t, registry.Register(NewMockCommand("b")))

	groups := registry.ByCategory()
	assert.Len(t, groups[nutypes.CategoryMisc], 2)
}

func TestRegistry_ConcurrentReaders(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(NewMockCommand("export alias")))
	registry.Seal()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, n := registry.LongestMatch([]string{"export", "alias"})
			assert.Equal(t, 2, n)
			assert.NotNil(t, cmd)
			assert.Len(t, registry.GetAll(), 1)
		}()
	}
	wg.Wait()
}
