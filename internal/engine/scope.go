package engine

import (
	"sort"

	"github.com/selfagency/nushell/internal/ast"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// Alias binds a name to a parsed command call. Using the alias splices a
// copy of Call at the use site.
type Alias struct {
	Name   string
	Call   *ast.Call
	Source string
}

// Const is a name bound to a value folded at parse time.
type Const struct {
	Name  string
	Type  nutypes.Type
	Value nutypes.Value
}

// Module is a named namespace. Only exported bindings are stored; private
// definitions live in the parser's module frame and disappear with it.
type Module struct {
	Name    string
	Aliases map[string]*Alias
	Consts  map[string]*Const
}

// NewModule returns an empty module.
func NewModule(name string) *Module {
	return &Module{
		Name:    name,
		Aliases: make(map[string]*Alias),
		Consts:  make(map[string]*Const),
	}
}

// Has reports whether the module exports name.
func (m *Module) Has(name string) bool {
	_, a := m.Aliases[name]
	_, c := m.Consts[name]
	return a || c
}

// Exports lists every exported name, sorted.
func (m *Module) Exports() []string {
	names := make([]string, 0, len(m.Aliases)+len(m.Consts))
	for n := range m.Aliases {
		names = append(names, n)
	}
	for n := range m.Consts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Scope holds the bindings visible at the top level.
type Scope struct {
	Modules map[string]*Module
	Aliases map[string]*Alias
	Consts  map[string]*Const
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{
		Modules: make(map[string]*Module),
		Aliases: make(map[string]*Alias),
		Consts:  make(map[string]*Const),
	}
}

// Clone copies the maps. Bindings themselves are immutable and shared.
func (s *Scope) Clone() *Scope {
	out := NewScope()
	for k, v := range s.Modules {
		out.Modules[k] = v
	}
	for k, v := range s.Aliases {
		out.Aliases[k] = v
	}
	for k, v := range s.Consts {
		out.Consts[k] = v
	}
	return out
}

// Apply overlays delta onto s. An alias shadows a const of the same name and
// vice versa.
func (s *Scope) Apply(delta *Scope) {
	if delta == nil {
		return
	}
	for k, v := range delta.Modules {
		s.Modules[k] = v
	}
	for k, v := range delta.Aliases {
		delete(s.Consts, k)
		s.Aliases[k] = v
	}
	for k, v := range delta.Consts {
		delete(s.Aliases, k)
		s.Consts[k] = v
	}
}

// IsEmpty reports whether the scope binds nothing.
func (s *Scope) IsEmpty() bool {
	return len(s.Modules) == 0 && len(s.Aliases) == 0 && len(s.Consts) == 0
}
