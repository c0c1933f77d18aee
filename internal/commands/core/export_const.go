package core

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// ExportConstCommand is "export const": bind a parse-time constant inside a
// module body and add it to the module's exports. The value must fold to a
// constant, which is why its shape is a math expression.
type ExportConstCommand struct {
	parserKeyword
}

// Name returns "export const".
func (c *ExportConstCommand) Name() string {
	return "export const"
}

// Usage returns a one-line description.
func (c *ExportConstCommand) Usage() string {
	return "Use parse-time constant from a module and export them from this module."
}

// Signature declares "export const <const_name> = <initial_value>".
func (c *ExportConstCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nothingToNothing()).
		AllowVariantsWithoutExamples(true).
		Required("const_name", nutypes.ShapeVarWithOptType, "Constant name.").
		Required("initial_value", equalsThen(nutypes.ShapeMathExpression), "Equals sign followed by constant value.").
		Category(nutypes.CategoryCore).
		Build()
}

// SearchTerms returns alternative names users search for.
func (c *ExportConstCommand) SearchTerms() []string {
	return []string{"reexport", "import", "module"}
}

// Examples returns documented invocations.
func (c *ExportConstCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Re-export a command from another module",
			Example:     "module spam { export const foo = 3; }; module eggs { export use spam foo }; use eggs foo; foo",
			Result:      nutypes.Expect(nutypes.NewInt(3)),
		},
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&ExportConstCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register export const command: %v", err))
	}
}
