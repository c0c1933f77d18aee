package core

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// ConstCommand is "const": bind a constant, folded at parse time, in the
// current scope.
type ConstCommand struct {
	parserKeyword
}

// Name returns "const".
func (c *ConstCommand) Name() string {
	return "const"
}

// Usage returns a one-line description.
func (c *ConstCommand) Usage() string {
	return "Create a parse-time constant."
}

// Signature declares "const <const_name> = <initial_value>".
func (c *ConstCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nothingToNothing()).
		AllowVariantsWithoutExamples(true).
		Required("const_name", nutypes.ShapeVarWithOptType, "Constant name.").
		Required("initial_value", equalsThen(nutypes.ShapeMathExpression), "Equals sign followed by constant value.").
		Category(nutypes.CategoryCore).
		Build()
}

// SearchTerms returns alternative names users search for.
func (c *ConstCommand) SearchTerms() []string {
	return []string{"set", "let"}
}

// Examples returns documented invocations.
func (c *ConstCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Create a new parse-time constant",
			Example:     "const x = 10",
			Result:      nutypes.Expect(nutypes.NewNothing()),
		},
		{
			Description: "Fold an arithmetic expression into a typed constant",
			Example:     "const n: int = 2 * 21; $n",
			Result:      nutypes.Expect(nutypes.NewInt(42)),
		},
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&ConstCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register const command: %v", err))
	}
}
