package services

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/internal/commands/core"
	"github.com/selfagency/nushell/internal/engine"
	"github.com/selfagency/nushell/pkg/nutypes"
)

type listCommand struct {
	nutypes.BaseCommand
}

func (listCommand) Name() string  { return "ls" }
func (listCommand) Usage() string { return "List the filenames of a directory." }

func (listCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature("ls").
		InputOutputTypes(nutypes.IO(nutypes.TypeNothing, nutypes.TypeTable)).
		Optional("pattern", nutypes.ShapeFilepath, "The path to list.").
		Switch("long", "Get all available columns.", 'l').
		Named("sort", nutypes.ShapeString, "Column to sort by.", 0).
		Category(nutypes.CategoryFilesystem).
		Build()
}

func (listCommand) Run(_ nutypes.EngineState, _ nutypes.Stack, _ *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
	return nutypes.EmptyPipeline(), nil
}

func newTestHelpService(t *testing.T) *HelpService {
	t.Helper()
	reg := commands.NewRegistry()
	require.NoError(t, reg.Register(&core.ExportAliasCommand{}))
	require.NoError(t, reg.Register(&core.ExportConstCommand{}))
	require.NoError(t, reg.Register(listCommand{}))
	reg.Seal()

	h := NewHelpService(engine.New(reg))
	require.NoError(t, h.Initialize())
	return h
}

func TestHelpService_NotInitialized(t *testing.T) {
	h := NewHelpService(nil)
	assert.Equal(t, "help", h.Name())
	assert.Error(t, h.Initialize())

	_, err := h.GetAllCommands()
	assert.Error(t, err)
	assert.False(t, h.IsValidCommand("ls"))
	assert.Equal(t, 0, h.GetCommandCount())
}

func TestHelpService_GetCommand(t *testing.T) {
	h := newTestHelpService(t)

	info, err := h.GetCommand("export alias")
	require.NoError(t, err)
	assert.True(t, info.ParserKeyword)
	assert.Equal(t, "core", info.Category)
	assert.Equal(t, "export alias <name> = <initial_value>", info.Signature)
	require.Len(t, info.Parameters, 2)
	assert.Equal(t, `"=" expression`, info.Parameters[1].Shape)
	assert.Equal(t, []InOutInfo{{Input: "nothing", Output: "nothing"}}, info.InputOutput)
	assert.Empty(t, info.Examples[0].Result)

	_, err = h.GetCommand("nope")
	assert.Error(t, err)
}

func TestHelpService_Listing(t *testing.T) {
	h := newTestHelpService(t)

	names, err := h.GetCommandNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"export alias", "export const", "ls"}, names)
	assert.Equal(t, 3, h.GetCommandCount())
	assert.True(t, h.IsValidCommand("ls"))

	cats, err := h.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"export alias", "export const"}, cats["core"])
	assert.Equal(t, []string{"ls"}, cats["filesystem"])
}

func TestHelpService_Find(t *testing.T) {
	h := newTestHelpService(t)

	found, err := h.Find("aka")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "export alias", found[0].Name)

	md, err := h.FindMarkdown("reexport")
	require.NoError(t, err)
	assert.Contains(t, md, "`export const`")

	md, err = h.FindMarkdown("zzz")
	require.NoError(t, err)
	assert.Equal(t, "No commands match 'zzz'.\n", md)
}

func TestHelpService_OverviewMarkdown(t *testing.T) {
	h := newTestHelpService(t)

	md, err := h.OverviewMarkdown()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# Commands\n"))
	assert.Less(t, strings.Index(md, "## core"), strings.Index(md, "## filesystem"))
	assert.Contains(t, md, "| ls | List the filenames of a directory. |")
}

func TestCommandMarkdown_Flags(t *testing.T) {
	md := CommandMarkdown(listCommand{})

	assert.Contains(t, md, "ls {flags} (pattern)")
	assert.Contains(t, md, "- `pattern` <path>: The path to list. (optional)")
	assert.Contains(t, md, "- `--long`, `-l`: Get all available columns.")
	assert.Contains(t, md, "- `--sort` <string>: Column to sort by.")
	assert.NotContains(t, md, "## Examples")
}

func TestCommandMarkdown_Golden(t *testing.T) {
	h := newTestHelpService(t)
	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)

	for _, name := range []string{"export alias", "export const"} {
		md, err := h.CommandMarkdown(name)
		require.NoError(t, err)
		g.Assert(t, strings.ReplaceAll(name, " ", "_"), []byte(md))
	}
}

func TestEncode(t *testing.T) {
	h := newTestHelpService(t)
	infos, err := h.GetAllCommands()
	require.NoError(t, err)

	out, err := Encode(infos, "yaml")
	require.NoError(t, err)
	var fromYAML []CommandInfo
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	require.Len(t, fromYAML, 3)
	assert.Equal(t, "export alias", fromYAML[0].Name)
	assert.Contains(t, string(out), "parser_keyword: true")

	out, err = Encode(infos, "JSON")
	require.NoError(t, err)
	var fromJSON []CommandInfo
	require.NoError(t, json.Unmarshal(out, &fromJSON))
	assert.Equal(t, "3", fromJSON[1].Examples[0].Result)

	_, err = Encode(infos, "toml")
	assert.Error(t, err)
}
