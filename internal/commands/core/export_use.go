package core

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// ExportUseCommand is "export use": import members of another module and
// re-export them from the module being defined.
type ExportUseCommand struct {
	parserKeyword
}

// Name returns "export use".
func (c *ExportUseCommand) Name() string {
	return "export use"
}

// Usage returns a one-line description.
func (c *ExportUseCommand) Usage() string {
	return "Use definitions from a module and export them from this module."
}

// Signature declares "export use <module> ...<members>".
func (c *ExportUseCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nothingToNothing()).
		Required("module", nutypes.ShapeString, "Module name.").
		Rest("members", nutypes.ShapeString, "Which members of the module to import.").
		Category(nutypes.CategoryCore).
		Build()
}

// SearchTerms returns alternative names users search for.
func (c *ExportUseCommand) SearchTerms() []string {
	return []string{"reexport", "import", "module"}
}

// Examples returns documented invocations.
func (c *ExportUseCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Re-export a constant from another module",
			Example:     "module spam { export const foo = 3 }; module eggs { export use spam foo }; use eggs foo; foo",
			Result:      nutypes.Expect(nutypes.NewInt(3)),
		},
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&ExportUseCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register export use command: %v", err))
	}
}
