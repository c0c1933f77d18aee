// Package nutypes defines the command contract shared by the parser, the
// evaluator and every built-in command of nush.
//
// # Package Organization
//
// ## Syntax shapes (shape.go)
//
// SyntaxShape describes the token pattern a single parameter expects. The
// parser reads shapes out of a command's Signature to tokenize and type-check
// a call before any value exists.
//
// ## Signatures (signature.go, types.go, category.go)
//
//   - Signature: ordered positional parameters, flags, and the declared
//     (input, output) pipeline type pairs of a command
//   - SignatureBuilder: accumulates a Signature one call at a time
//   - Type: pipeline value types used by the I/O pairs
//   - Category: help taxonomy tag
//
// ## Commands (command.go, call.go, example.go)
//
//   - Command: the interface every built-in implements
//   - BaseCommand: embeddable defaults for the optional parts of Command
//   - Call: the resolved arguments handed to Command.Run
//   - Example: documentation fixture that doubles as a regression test
//
// ## Values (value.go, pipeline.go, errors.go)
//
//   - Value: tagged result type
//   - PipelineData: the value (or absence of one) flowing between commands
//   - ParseError, ShellError: parse-time and runtime error taxonomies
//
// # Parser Keywords
//
// A command whose IsParserKeyword method returns true has no runtime
// semantics. The parser performs its whole effect (binding an alias or a
// constant, exporting it from a module) while building the syntax tree.
// Its Run method only exists to satisfy Command and must return an empty
// PipelineData:
//
//	func (c *ExportAliasCommand) IsParserKeyword() bool { return true }
//
//	func (c *ExportAliasCommand) Run(_ nutypes.EngineState, _ nutypes.Stack, _ *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
//		return nutypes.EmptyPipeline(), nil
//	}
package nutypes
