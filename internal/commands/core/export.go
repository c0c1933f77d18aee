package core

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// ExportCommand is the bare "export" umbrella. Only its subcommands do
// anything; the parser rejects "export" on its own.
type ExportCommand struct {
	parserKeyword
}

// Name returns "export".
func (c *ExportCommand) Name() string {
	return "export"
}

// Usage returns a one-line description.
func (c *ExportCommand) Usage() string {
	return "Export definitions from a module."
}

// ExtraUsage replaces the generic keyword note with the subcommand hint.
func (c *ExportCommand) ExtraUsage() string {
	return "You must use one of the following subcommands: export alias, export const, export use.\n\n" + keywordExtraUsage
}

// Signature declares a bare "export" with no arguments.
func (c *ExportCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nothingToNothing()).
		Category(nutypes.CategoryCore).
		Build()
}

// SearchTerms returns alternative names users search for.
func (c *ExportCommand) SearchTerms() []string {
	return []string{"module"}
}

// Examples returns documented invocations.
func (c *ExportCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Export an alias from a module",
			Example:     "module utils { export alias ll = ls -l }",
			Result:      nutypes.Expect(nutypes.NewNothing()),
		},
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&ExportCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register export command: %v", err))
	}
}
