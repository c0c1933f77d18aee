package builtin

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// LengthCommand counts the items of a piped-in list or table.
type LengthCommand struct {
	nutypes.BaseCommand
}

func (c *LengthCommand) Name() string {
	return "length"
}

func (c *LengthCommand) Usage() string {
	return "Count the number of items in an input list or rows in a table."
}

func (c *LengthCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(
			nutypes.IO(nutypes.TypeList, nutypes.TypeInt),
			nutypes.IO(nutypes.TypeTable, nutypes.TypeInt),
		).
		Category(nutypes.CategoryMisc).
		Build()
}

func (c *LengthCommand) SearchTerms() []string {
	return []string{"count", "size", "wc"}
}

func (c *LengthCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Count the number of items in a list",
			Example:     "[1 2 3 4 5] | length",
			Result:      nutypes.Expect(nutypes.NewInt(5)),
		},
		{
			Description: "Count the number of rows in a table",
			Example:     "ls | length",
		},
	}
}

// Run counts the input. Anything other than a list or table is rejected.
func (c *LengthCommand) Run(_ nutypes.EngineState, _ nutypes.Stack, call *nutypes.Call, input nutypes.PipelineData) (nutypes.PipelineData, error) {
	v := input.IntoValue()
	items, err := v.AsList()
	if err != nil {
		return nutypes.EmptyPipeline(), nutypes.NewShellError(nutypes.ErrUnsupportedInput, call.Span,
			"length expects a list or table, got %s", v.Type())
	}
	return nutypes.PipelineValue(nutypes.NewInt(int64(len(items)))), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&LengthCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register length command: %v", err))
	}
}
