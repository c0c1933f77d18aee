package engine

import (
	"sort"

	"github.com/selfagency/nushell/pkg/nutypes"
)

// Stack holds runtime variables for one evaluation. It has a single writer
// and is not safe for concurrent use.
type Stack struct {
	vars map[string]nutypes.Value
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{vars: make(map[string]nutypes.Value)}
}

// GetVar reads a variable.
func (s *Stack) GetVar(name string) (nutypes.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// AddVar binds or rebinds a variable.
func (s *Stack) AddVar(name string, v nutypes.Value) {
	s.vars[name] = v
}

// Len returns the number of bound variables.
func (s *Stack) Len() int {
	return len(s.vars)
}

// Names lists bound variables, sorted.
func (s *Stack) Names() []string {
	names := make([]string, 0, len(s.vars))
	for n := range s.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var _ nutypes.Stack = (*Stack)(nil)
