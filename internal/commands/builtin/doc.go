// Package builtin provides the runtime commands of nush: ordinary commands
// whose effect happens when the evaluator calls Run.
package builtin
