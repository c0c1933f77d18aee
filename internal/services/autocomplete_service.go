package services

import (
	"sort"
	"strings"

	"github.com/selfagency/nushell/pkg/nutypes"
)

// CompletionSource supplies the names the completer offers. The shell
// implements it over its current engine state and stack.
type CompletionSource interface {
	CommandSource
	// BindingNames lists aliases and constants in scope.
	BindingNames() []string
	// VariableNames lists names usable after "$".
	VariableNames() []string
}

// AutoCompleteService provides tab completion for command names, flags and
// variables. It implements the readline.AutoCompleter interface.
type AutoCompleteService struct {
	source      CompletionSource
	initialized bool
}

// NewAutoCompleteService creates a completer over source.
func NewAutoCompleteService(source CompletionSource) *AutoCompleteService {
	return &AutoCompleteService{source: source}
}

// Name returns the service name "autocomplete" for registration.
func (a *AutoCompleteService) Name() string {
	return "autocomplete"
}

// Initialize sets up the AutoCompleteService for operation.
func (a *AutoCompleteService) Initialize() error {
	a.initialized = a.source != nil
	return nil
}

// Do implements the readline.AutoCompleter interface. It returns the
// suffixes that complete the word ending at pos.
func (a *AutoCompleteService) Do(line []rune, pos int) (newLine [][]rune, offset int) {
	if !a.initialized {
		return nil, 0
	}
	if pos > len(line) {
		pos = len(line)
	}

	segment := currentSegment(string(line[:pos]))
	words := strings.Fields(segment)
	currentWord := ""
	if len(words) > 0 && !strings.HasSuffix(segment, " ") && !strings.HasSuffix(segment, "\t") {
		currentWord = words[len(words)-1]
		words = words[:len(words)-1]
	}

	var completions []string
	switch {
	case strings.HasPrefix(currentWord, "$"):
		for _, name := range a.source.VariableNames() {
			completions = append(completions, "$"+name)
		}
	case strings.HasPrefix(currentWord, "-"):
		completions = a.flagCompletions(words)
	case len(words) > 0 && words[0] == "help":
		completions = a.commandWordCompletions(words[1:])
	default:
		completions = a.commandWordCompletions(words)
		if len(words) == 0 {
			completions = append(completions, a.source.BindingNames()...)
		}
	}

	seen := make(map[string]bool)
	var suggestions []string
	for _, completion := range completions {
		if !strings.HasPrefix(completion, currentWord) || completion == currentWord || seen[completion] {
			continue
		}
		seen[completion] = true
		suggestions = append(suggestions, strings.TrimPrefix(completion, currentWord))
	}
	sort.Strings(suggestions)

	for _, s := range suggestions {
		newLine = append(newLine, []rune(s))
	}
	return newLine, len([]rune(currentWord))
}

// currentSegment returns the text after the last pipeline or statement
// separator.
func currentSegment(line string) string {
	if i := strings.LastIndexAny(line, "|;({"); i >= 0 {
		return line[i+1:]
	}
	return line
}

// commandWordCompletions offers the next word of every command name that
// starts with the words already typed, so "export a" completes "alias".
func (a *AutoCompleteService) commandWordCompletions(typed []string) []string {
	var out []string
	for _, cmd := range a.source.Commands() {
		parts := strings.Fields(cmd.Name())
		if len(parts) <= len(typed) {
			continue
		}
		match := true
		for i, w := range typed {
			if parts[i] != w {
				match = false
				break
			}
		}
		if match {
			out = append(out, parts[len(typed)])
		}
	}
	return out
}

// flagCompletions offers the flags of the longest command name matching the
// typed words.
func (a *AutoCompleteService) flagCompletions(typed []string) []string {
	var cmd nutypes.Command
	for n := len(typed); n > 0 && cmd == nil; n-- {
		cmd, _ = a.source.FindCommand(strings.Join(typed[:n], " "))
	}
	if cmd == nil {
		return nil
	}

	var out []string
	for _, flag := range cmd.Signature().Named {
		out = append(out, "--"+flag.Long)
		if flag.Short != 0 {
			out = append(out, "-"+string(flag.Short))
		}
	}
	return out
}
