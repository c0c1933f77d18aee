package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfagency/nushell/pkg/nutypes"
)

type stubCommand struct {
	nutypes.BaseCommand
	name  string
	flags bool
}

func (c *stubCommand) Name() string  { return c.name }
func (c *stubCommand) Usage() string { return "stub" }

func (c *stubCommand) Signature() nutypes.Signature {
	b := nutypes.BuildSignature(c.name).InputOutputTypes(nutypes.IO(nutypes.TypeAny, nutypes.TypeAny))
	if c.flags {
		b.Switch("long", "Long listing.", 'l')
	}
	return b.Build()
}

func (c *stubCommand) Run(_ nutypes.EngineState, _ nutypes.Stack, _ *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
	return nutypes.EmptyPipeline(), nil
}

type completionStub struct {
	cmds []nutypes.Command
}

func (s completionStub) FindCommand(name string) (nutypes.Command, bool) {
	for _, c := range s.cmds {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

func (s completionStub) Commands() []nutypes.Command           { return s.cmds }
func (completionStub) SearchCommands(string) []nutypes.Command { return nil }
func (completionStub) BindingNames() []string                  { return []string{"ll", "limit"} }
func (completionStub) VariableNames() []string                 { return []string{"foo", "food", "bar"} }

func newCompletionStub() completionStub {
	return completionStub{cmds: []nutypes.Command{
		&stubCommand{name: "ls", flags: true},
		&stubCommand{name: "let"},
		&stubCommand{name: "export alias"},
		&stubCommand{name: "export const"},
		&stubCommand{name: "help"},
	}}
}

func complete(t *testing.T, line string) ([]string, int) {
	t.Helper()
	svc := NewAutoCompleteService(newCompletionStub())
	require.NoError(t, svc.Initialize())

	runes := []rune(line)
	got, offset := svc.Do(runes, len(runes))
	out := make([]string, 0, len(got))
	for _, g := range got {
		out = append(out, string(g))
	}
	return out, offset
}

func TestAutoCompleteService_Do(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		expect []string
		offset int
	}{
		{name: "command prefix", line: "l", expect: []string{"et", "imit", "l", "s"}, offset: 1},
		{name: "multi-word command", line: "export a", expect: []string{"lias"}, offset: 1},
		{name: "second word", line: "export ", expect: []string{"alias", "const"}, offset: 0},
		{name: "after pipe", line: "ls | le", expect: []string{"t"}, offset: 2},
		{name: "variables", line: "echo $fo", expect: []string{"o", "od"}, offset: 3},
		{name: "flags", line: "ls --l", expect: []string{"ong"}, offset: 3},
		{name: "help topic", line: "help ex", expect: []string{"port"}, offset: 2},
		{name: "no match", line: "zz", expect: nil, offset: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, offset := complete(t, tt.line)
			if tt.expect == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.expect, got)
			}
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestAutoCompleteService_Uninitialized(t *testing.T) {
	svc := NewAutoCompleteService(nil)
	require.NoError(t, svc.Initialize())
	got, offset := svc.Do([]rune("l"), 1)
	assert.Nil(t, got)
	assert.Zero(t, offset)
	assert.Equal(t, "autocomplete", svc.Name())
}
