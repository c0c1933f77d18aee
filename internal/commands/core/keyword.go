// Package core provides the parser keywords of nush: the commands whose
// whole effect happens while the parser builds the syntax tree.
//
// A parser keyword is registered like any other command so that help and
// listing tools can describe it, but the parser routes its calls to a
// dedicated handler that records the alias, constant or module binding.
// Run exists only to satisfy nutypes.Command.
package core

import (
	"github.com/selfagency/nushell/pkg/nutypes"
)

const keywordExtraUsage = `This command is a parser keyword. For details, check:
  https://www.nushell.sh/book/thinking_in_nu.html`

// parserKeyword supplies the behavior shared by every parser keyword.
type parserKeyword struct {
	nutypes.BaseCommand
}

// ExtraUsage points at the documentation on parse-time evaluation.
func (parserKeyword) ExtraUsage() string {
	return keywordExtraUsage
}

// IsParserKeyword returns true.
func (parserKeyword) IsParserKeyword() bool {
	return true
}

// Run does nothing and returns empty output. It never reads or writes the
// engine or the stack, so calling it any number of times is harmless.
func (parserKeyword) Run(_ nutypes.EngineState, _ nutypes.Stack, _ *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
	return nutypes.EmptyPipeline(), nil
}

// equalsThen is the "= <value>" parameter shape shared by alias and const.
func equalsThen(inner nutypes.SyntaxShape) nutypes.SyntaxShape {
	return nutypes.Keyword([]byte("="), inner)
}

func nothingToNothing() nutypes.InOut {
	return nutypes.IO(nutypes.TypeNothing, nutypes.TypeNothing)
}
