package core

import (
	"fmt"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// AliasCommand is "alias": bind a name to a command call in the current
// scope without exporting it.
type AliasCommand struct {
	parserKeyword
}

// Name returns "alias".
func (c *AliasCommand) Name() string {
	return "alias"
}

// Usage returns a one-line description.
func (c *AliasCommand) Usage() string {
	return "Alias a command (with optional flags) to a new name."
}

// Signature declares "alias <name> = <initial_value>".
func (c *AliasCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nothingToNothing()).
		Required("name", nutypes.ShapeString, "Name of the alias.").
		Required("initial_value", equalsThen(nutypes.ShapeExpression), "Equals sign followed by value.").
		Category(nutypes.CategoryCore).
		Build()
}

// SearchTerms returns alternative names users search for.
func (c *AliasCommand) SearchTerms() []string {
	return []string{"abbr", "aka", "fn", "func", "function"}
}

// Examples returns documented invocations.
func (c *AliasCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{
			Description: "Alias ll to ls -l",
			Example:     "alias ll = ls -l",
			Result:      nutypes.Expect(nutypes.NewNothing()),
		},
		{
			Description: "Use an alias with extra arguments",
			Example:     "alias say = echo hello; say world",
			Result:      nutypes.Expect(nutypes.NewList(nutypes.NewString("hello"), nutypes.NewString("world"))),
		},
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&AliasCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register alias command: %v", err))
	}
}
