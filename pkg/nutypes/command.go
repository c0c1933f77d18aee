package nutypes

import "github.com/spf13/afero"

// Command is the contract every built-in command satisfies. Descriptive
// methods must return the same content on every call and must not have side
// effects; the registry calls them freely.
type Command interface {
	// Name is the full, possibly multi-word, invocation name.
	Name() string
	// Usage is a one-line description.
	Usage() string
	// ExtraUsage is additional help text, empty when there is none.
	ExtraUsage() string
	// Signature builds a fresh signature on each call.
	Signature() Signature
	// Examples returns documented invocations.
	Examples() []Example
	// SearchTerms are extra words used by help lookup.
	SearchTerms() []string
	// IsParserKeyword reports whether the parser fully handles the command.
	// Run on a parser keyword produces empty output.
	IsParserKeyword() bool
	// Run executes the command.
	Run(engine EngineState, stack Stack, call *Call, input PipelineData) (PipelineData, error)
}

// EngineState is the read-only view of the engine given to running commands.
type EngineState interface {
	FindCommand(name string) (Command, bool)
	Commands() []Command
	SearchCommands(term string) []Command
	FS() afero.Fs
	Cwd() string
}

// Stack holds runtime variable bindings for a single evaluation.
type Stack interface {
	GetVar(name string) (Value, bool)
	AddVar(name string, v Value)
}

// BaseCommand supplies empty defaults for the optional parts of Command.
type BaseCommand struct{}

// ExtraUsage returns no extra text.
func (BaseCommand) ExtraUsage() string { return "" }

// Examples returns no examples.
func (BaseCommand) Examples() []Example { return nil }

// SearchTerms returns no search terms.
func (BaseCommand) SearchTerms() []string { return nil }

// IsParserKeyword returns false.
func (BaseCommand) IsParserKeyword() bool { return false }
