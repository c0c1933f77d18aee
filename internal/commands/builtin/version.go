package builtin

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/internal/version"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// VersionCommand reports build information as a record.
type VersionCommand struct {
	nutypes.BaseCommand
}

// Name returns "version".
func (c *VersionCommand) Name() string {
	return "version"
}

// Usage returns a one-line description.
func (c *VersionCommand) Usage() string {
	return "Display nush version and build information."
}

// Signature declares "version".
func (c *VersionCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nutypes.IO(nutypes.TypeNothing, nutypes.TypeRecord)).
		Category(nutypes.CategorySystem).
		Build()
}

// Examples returns documented invocations.
func (c *VersionCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{Description: "Display nush version", Example: "version"},
	}
}

// Run builds the version record.
func (c *VersionCommand) Run(_ nutypes.EngineState, _ nutypes.Stack, call *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
	info, err := version.GetInfo()
	if err != nil {
		return nutypes.EmptyPipeline(), nutypes.WrapShellError(nutypes.ErrCantConvert, call.Span, err, "bad build version")
	}
	return nutypes.PipelineValue(nutypes.NewRecord(
		[]string{"version", "commit", "build_date", "go_version", "platform"},
		[]nutypes.Value{
			nutypes.NewString(info.Version),
			nutypes.NewString(info.GitCommit),
			nutypes.NewString(info.BuildDate),
			nutypes.NewString(info.GoVersion),
			nutypes.NewString(info.Platform),
		},
	)), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&VersionCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register version command: %v", err))
	}
}
