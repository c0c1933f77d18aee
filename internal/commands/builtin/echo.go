package builtin

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// EchoCommand returns its arguments: one argument as itself, several as a
// list.
type EchoCommand struct {
	nutypes.BaseCommand
}

// Name returns "echo".
func (c *EchoCommand) Name() string {
	return "echo"
}

// Usage returns a one-line description.
func (c *EchoCommand) Usage() string {
	return "Returns its arguments, ignoring the piped-in value."
}

// Signature declares "echo ...rest".
func (c *EchoCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nutypes.IO(nutypes.TypeNothing, nutypes.TypeAny)).
		Rest("rest", nutypes.ShapeAny, "The values to echo.").
		Category(nutypes.CategoryCore).
		Build()
}

// SearchTerms returns alternative names users search for.
func (c *EchoCommand) SearchTerms() []string {
	return []string{"print", "display"}
}

// Examples returns documented invocations.
func (c *EchoCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Put a list of values in the pipeline",
			Example:     "echo 1 2 3",
			Result:      nutypes.Expect(nutypes.NewList(nutypes.NewInt(1), nutypes.NewInt(2), nutypes.NewInt(3))),
		},
		{
			Description: "Echo a single string",
			Example:     "echo 'hello'",
			Result:      nutypes.Expect(nutypes.NewString("hello")),
		},
	}
}

// Run returns the arguments.
func (c *EchoCommand) Run(_ nutypes.EngineState, _ nutypes.Stack, call *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
	args := call.Rest(0)
	switch len(args) {
	case 0:
		return nutypes.EmptyPipeline(), nil
	case 1:
		return nutypes.PipelineValue(args[0]), nil
	default:
		return nutypes.PipelineValue(nutypes.NewList(args...)), nil
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&EchoCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register echo command: %v", err))
	}
}
