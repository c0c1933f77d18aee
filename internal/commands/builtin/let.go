package builtin

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// LetCommand binds a runtime variable on the caller's stack. Unlike const,
// its value may come from any expression, including a command call.
type LetCommand struct {
	nutypes.BaseCommand
}

func (c *LetCommand) Name() string {
	return "let"
}

func (c *LetCommand) Usage() string {
	return "Create a variable and give it a value."
}

func (c *LetCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nutypes.IO(nutypes.TypeNothing, nutypes.TypeNothing)).
		Required("var_name", nutypes.ShapeVarWithOptType, "Variable name.").
		Required("initial_value", nutypes.Keyword([]byte("="), nutypes.ShapeExpression), "Equals sign followed by value.").
		Category(nutypes.CategoryCore).
		Build()
}

func (c *LetCommand) SearchTerms() []string {
	return []string{"set", "const"}
}

func (c *LetCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Set a variable to a value",
			Example:     "let x = 10; $x",
			Result:      nutypes.Expect(nutypes.NewInt(10)),
		},
		{
			Description: "Set a variable to the result of a command",
			Example:     "let s: string = (echo hi); $s",
			Result:      nutypes.Expect(nutypes.NewString("hi")),
		},
	}
}

// Run stores the value under the variable name.
func (c *LetCommand) Run(_ nutypes.EngineState, stack nutypes.Stack, call *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
	nameVal, err := call.Req(0)
	if err != nil {
		return nutypes.EmptyPipeline(), err
	}
	name, err := nameVal.AsString()
	if err != nil {
		return nutypes.EmptyPipeline(), err
	}
	value, err := call.Req(1)
	if err != nil {
		return nutypes.EmptyPipeline(), err
	}
	stack.AddVar(name, value)
	return nutypes.EmptyPipeline(), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&LetCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register let command: %v", err))
	}
}
