package builtin

import (
	"fmt"
	"strings"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/internal/services"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// HelpCommand returns help markdown for a command, a search, or an overview
// of every command.
type HelpCommand struct {
	nutypes.BaseCommand
}

// Name returns "help".
func (c *HelpCommand) Name() string {
	return "help"
}

// Usage returns a one-line description.
func (c *HelpCommand) Usage() string {
	return "Display help information about different parts of nush."
}

// Signature declares "help {flags} ...rest".
func (c *HelpCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nutypes.IO(nutypes.TypeNothing, nutypes.TypeString)).
		Rest("rest", nutypes.ShapeString, "The name of the command to get help on.").
		Named("find", nutypes.ShapeString, "String to find in command names, usage, and search terms.", 'f').
		Category(nutypes.CategoryCore).
		Build()
}

// Examples returns documented invocations.
func (c *HelpCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{Description: "Show help for a multi-word command", Example: "help export alias"},
		{Description: "Search for commands about aliases", Example: "help --find alias"},
	}
}

// Run renders the requested help page.
func (c *HelpCommand) Run(engine nutypes.EngineState, _ nutypes.Stack, call *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
	helpService := services.NewHelpService(engine)
	if err := helpService.Initialize(); err != nil {
		return nutypes.EmptyPipeline(), fmt.Errorf("help service not available: %w", err)
	}

	var (
		md  string
		err error
	)
	if find, ok := call.Get("find"); ok {
		term, convErr := find.AsString()
		if convErr != nil {
			return nutypes.EmptyPipeline(), convErr
		}
		md, err = helpService.FindMarkdown(term)
	} else if words := call.Rest(0); len(words) > 0 {
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = w.String()
		}
		name := strings.Join(parts, " ")
		md, err = helpService.CommandMarkdown(name)
		if err != nil {
			err = nutypes.WrapShellError(nutypes.ErrCommandNotFound, call.Span, err, "no help for %s", name)
		}
	} else {
		md, err = helpService.OverviewMarkdown()
	}
	if err != nil {
		return nutypes.EmptyPipeline(), err
	}
	return nutypes.PipelineValue(nutypes.NewString(md)), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&HelpCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register help command: %v", err))
	}
}
