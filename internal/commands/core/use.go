package core

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// UseCommand is "use": import exports of a module into the current scope.
// With no members every export is imported.
type UseCommand struct {
	parserKeyword
}

// Name returns "use".
func (c *UseCommand) Name() string {
	return "use"
}

// Usage returns a one-line description.
func (c *UseCommand) Usage() string {
	return "Use definitions from a module, making them available in your shell."
}

// Signature declares "use <module> ...<members>".
func (c *UseCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nothingToNothing()).
		Required("module", nutypes.ShapeString, "Module name.").
		Rest("members", nutypes.ShapeString, "Which members of the module to import.").
		Category(nutypes.CategoryCore).
		Build()
}

// SearchTerms returns alternative names users search for.
func (c *UseCommand) SearchTerms() []string {
	return []string{"module", "import", "include", "scope"}
}

// Examples returns documented invocations.
func (c *UseCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Import a single member of a module",
			Example:     "module spam { export const foo = 7 }; use spam foo; foo",
			Result:      nutypes.Expect(nutypes.NewInt(7)),
		},
		{
			Description: "Import every member of a module",
			Example:     "module spam { export const a = 1; export const b = 2 }; use spam; $a + $b",
			Result:      nutypes.Expect(nutypes.NewInt(3)),
		},
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&UseCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register use command: %v", err))
	}
}
