// Package engine holds the state shared between the parser and the
// evaluator: the sealed command registry, the filesystem and the permanent
// scope of aliases, constants and modules.
package engine

import (
	"os"

	"github.com/spf13/afero"

	"github.com/selfagency/nushell/internal/logger"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// CommandSet is the read-only view of the command registry.
type CommandSet interface {
	Get(name string) (nutypes.Command, bool)
	GetAll() []nutypes.Command
	LongestMatch(words []string) (nutypes.Command, int)
	Search(term string) []nutypes.Command
}

// EngineState is immutable once built. Merge returns a new state, so a
// reader holding an older state is never affected by later definitions.
type EngineState struct {
	commands CommandSet
	fs       afero.Fs
	cwd      string
	scope    *Scope
}

// Option configures an EngineState.
type Option func(*EngineState)

// WithFS sets the filesystem commands operate on.
func WithFS(fs afero.Fs) Option {
	return func(e *EngineState) {
		e.fs = fs
	}
}

// WithCwd sets the working directory.
func WithCwd(cwd string) Option {
	return func(e *EngineState) {
		e.cwd = cwd
	}
}

// New builds an engine state over the given commands. The host filesystem
// and process working directory are used unless overridden.
func New(commands CommandSet, opts ...Option) *EngineState {
	e := &EngineState{
		commands: commands,
		scope:    NewScope(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fs == nil {
		e.fs = afero.NewOsFs()
	}
	if e.cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			e.cwd = wd
		} else {
			e.cwd = "/"
		}
	}
	return e
}

// FindCommand looks up a command by its full name.
func (e *EngineState) FindCommand(name string) (nutypes.Command, bool) {
	return e.commands.Get(name)
}

// Commands returns every registered command sorted by name.
func (e *EngineState) Commands() []nutypes.Command {
	return e.commands.GetAll()
}

// SearchCommands finds commands by name, usage or search terms.
func (e *EngineState) SearchCommands(term string) []nutypes.Command {
	return e.commands.Search(term)
}

// LongestMatch resolves the longest command name that prefixes words.
func (e *EngineState) LongestMatch(words []string) (nutypes.Command, int) {
	return e.commands.LongestMatch(words)
}

// FS returns the filesystem.
func (e *EngineState) FS() afero.Fs {
	return e.fs
}

// Cwd returns the working directory.
func (e *EngineState) Cwd() string {
	return e.cwd
}

// FindAlias looks up a top-level alias.
func (e *EngineState) FindAlias(name string) (*Alias, bool) {
	a, ok := e.scope.Aliases[name]
	return a, ok
}

// FindConst looks up a top-level constant.
func (e *EngineState) FindConst(name string) (*Const, bool) {
	c, ok := e.scope.Consts[name]
	return c, ok
}

// FindModule looks up a module by name.
func (e *EngineState) FindModule(name string) (*Module, bool) {
	m, ok := e.scope.Modules[name]
	return m, ok
}

// Scope returns a copy of the permanent scope.
func (e *EngineState) Scope() *Scope {
	return e.scope.Clone()
}

// Merge returns a new state with delta applied on top of the current scope.
func (e *EngineState) Merge(delta *Scope) *EngineState {
	if delta == nil || delta.IsEmpty() {
		return e
	}
	next := *e
	next.scope = e.scope.Clone()
	next.scope.Apply(delta)
	logger.ScopeMerge(len(delta.Modules), len(delta.Aliases), len(delta.Consts))
	return &next
}

var _ nutypes.EngineState = (*EngineState)(nil)
