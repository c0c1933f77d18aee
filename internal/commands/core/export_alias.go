package core

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// ExportAliasCommand is "export alias": define an alias inside a module body
// and add it to the module's exports.
type ExportAliasCommand struct {
	parserKeyword
}

// Name returns "export alias".
func (c *ExportAliasCommand) Name() string {
	return "export alias"
}

// Usage returns a one-line description.
func (c *ExportAliasCommand) Usage() string {
	return "Alias a command (with optional flags) to a new name and export it from a module."
}

// Signature declares "export alias <name> = <initial_value>".
func (c *ExportAliasCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nothingToNothing()).
		Required("name", nutypes.ShapeString, "Name of the alias.").
		Required("initial_value", equalsThen(nutypes.ShapeExpression), "Equals sign followed by value.").
		Category(nutypes.CategoryCore).
		Build()
}

// SearchTerms returns alternative names users search for.
func (c *ExportAliasCommand) SearchTerms() []string {
	return []string{"abbr", "aka", "fn", "func", "function"}
}

// Examples returns documented invocations.
func (c *ExportAliasCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Alias ll to ls -l and export it from a module",
			Example:     "module spam { export alias ll = ls -l }",
			Result:      nutypes.Expect(nutypes.NewNothing()),
		},
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&ExportAliasCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register export alias command: %v", err))
	}
}
