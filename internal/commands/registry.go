// Package commands provides the command registry for nush.
// Commands register themselves with GlobalRegistry from init functions; the
// shell seals the registry at startup, after which it is read-only and safe
// for any number of concurrent readers.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/selfagency/nushell/internal/logger"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// ErrSealed is returned when the registry is modified after Seal.
var ErrSealed = errors.New("command registry is sealed")

// Registry manages command registration and lookup.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]nutypes.Command
	maxWords int
	sealed   bool
}

// NewRegistry creates a new command registry with an empty command map.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]nutypes.Command),
	}
}

// Register adds a command to the registry. The command's signature must
// carry the same name and pass validation.
func (r *Registry) Register(cmd nutypes.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}

	name := cmd.Name()
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	sig := cmd.Signature()
	if sig.Name != name {
		return fmt.Errorf("command %s has signature named %q", name, sig.Name)
	}
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("command %s: %w", name, err)
	}

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	r.commands[name] = cmd
	if n := len(strings.Fields(name)); n > r.maxWords {
		r.maxWords = n
	}
	logger.CommandRegistered(name, cmd.IsParserKeyword())
	return nil
}

// Unregister removes a command by name. It fails once the registry is sealed.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}
	delete(r.commands, name)
	return nil
}

// Seal freezes the registry. Sealing twice is harmless.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// IsSealed reports whether Seal has been called.
func (r *Registry) IsSealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Get retrieves a command by its full name.
func (r *Registry) Get(name string) (nutypes.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetAll returns every registered command sorted by name. The returned
// slice is a copy and can be safely modified.
func (r *Registry) GetAll() []nutypes.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]nutypes.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		commands = append(commands, cmd)
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
	return commands
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	all := r.GetAll()
	names := make([]string, len(all))
	for i, cmd := range all {
		names[i] = cmd.Name()
	}
	return names
}

// IsValidCommand checks if a command exists in the registry.
func (r *Registry) IsValidCommand(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// LongestMatch finds the command whose name is the longest prefix of words,
// so that "export alias" wins over "export". It returns the number of words
// consumed, or 0 when nothing matches.
func (r *Registry) LongestMatch(words []string) (nutypes.Command, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(words)
	if n > r.maxWords {
		n = r.maxWords
	}
	for ; n > 0; n-- {
		if cmd, ok := r.commands[strings.Join(words[:n], " ")]; ok {
			return cmd, n
		}
	}
	return nil, 0
}

// Search returns commands whose name, usage or search terms contain term,
// case-insensitively. Name matches sort first.
func (r *Registry) Search(term string) []nutypes.Command {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var byName, byOther []nutypes.Command
	for _, cmd := range r.GetAll() {
		switch {
		case strings.Contains(strings.ToLower(cmd.Name()), term):
			byName = append(byName, cmd)
		case strings.Contains(strings.ToLower(cmd.Usage()), term):
			byOther = append(byOther, cmd)
		default:
			for _, st := range cmd.SearchTerms() {
				if strings.Contains(strings.ToLower(st), term) {
					byOther = append(byOther, cmd)
					break
				}
			}
		}
	}
	return append(byName, byOther...)
}

// ByCategory groups commands by their signature category.
func (r *Registry) ByCategory() map[nutypes.Category][]nutypes.Command {
	out := make(map[nutypes.Category][]nutypes.Command)
	for _, cmd := range r.GetAll() {
		c := cmd.Signature().Category
		out[c] = append(out[c], cmd)
	}
	return out
}

// GlobalRegistry is the registry used by the shell. Commands register
// themselves with this instance during initialization.
var GlobalRegistry = NewRegistry()
