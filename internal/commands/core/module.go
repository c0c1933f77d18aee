package core

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// ModuleCommand is "module": define a named namespace whose body may export
// aliases and constants.
type ModuleCommand struct {
	parserKeyword
}

// Name returns "module".
func (c *ModuleCommand) Name() string {
	return "module"
}

// Usage returns a one-line description.
func (c *ModuleCommand) Usage() string {
	return "Define a custom module."
}

// Signature declares "module <module> <block>".
func (c *ModuleCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nothingToNothing()).
		Required("module", nutypes.ShapeString, "Module name.").
		Required("block", nutypes.ShapeBlock, "Body of the module.").
		Category(nutypes.CategoryCore).
		Build()
}

// Examples returns documented invocations.
func (c *ModuleCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Define a module with an exported constant and use it",
			Example:     "module spam { export const foo = 3 }; use spam foo; $foo",
			Result:      nutypes.Expect(nutypes.NewInt(3)),
		},
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&ModuleCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register module command: %v", err))
	}
}
