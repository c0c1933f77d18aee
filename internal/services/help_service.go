package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/selfagency/nushell/pkg/nutypes"
)

// CommandSource is where help looks commands up. The engine state satisfies
// it.
type CommandSource interface {
	FindCommand(name string) (nutypes.Command, bool)
	Commands() []nutypes.Command
	SearchCommands(term string) []nutypes.Command
}

// HelpService provides command help built from each command's signature,
// usage text and examples.
type HelpService struct {
	initialized bool
	source      CommandSource
}

// NewHelpService creates a new HelpService over source.
func NewHelpService(source CommandSource) *HelpService {
	return &HelpService{
		initialized: false,
		source:      source,
	}
}

// Name returns the service name "help".
func (h *HelpService) Name() string {
	return "help"
}

// Initialize prepares the service for use.
func (h *HelpService) Initialize() error {
	if h.source == nil {
		return fmt.Errorf("help service has no command source")
	}
	h.initialized = true
	return nil
}

func (h *HelpService) ready() error {
	if !h.initialized {
		return fmt.Errorf("help service not initialized")
	}
	return nil
}

// GetAllCommands returns metadata for all registered commands, sorted by name.
func (h *HelpService) GetAllCommands() ([]*CommandInfo, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}

	all := h.source.Commands()
	result := make([]*CommandInfo, 0, len(all))
	for _, cmd := range all {
		result = append(result, Describe(cmd))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// GetCommand returns metadata for a specific command by name.
func (h *HelpService) GetCommand(name string) (*CommandInfo, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}

	cmd, ok := h.source.FindCommand(name)
	if !ok {
		return nil, fmt.Errorf("command '%s' not found", name)
	}
	return Describe(cmd), nil
}

// GetCommandNames returns a sorted list of all command names.
func (h *HelpService) GetCommandNames() ([]string, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}

	all := h.source.Commands()
	names := make([]string, len(all))
	for i, cmd := range all {
		names[i] = cmd.Name()
	}
	sort.Strings(names)
	return names, nil
}

// IsValidCommand checks if a command exists.
func (h *HelpService) IsValidCommand(name string) bool {
	if h.ready() != nil {
		return false
	}
	_, ok := h.source.FindCommand(name)
	return ok
}

// GetCommandCount returns the total number of registered commands.
func (h *HelpService) GetCommandCount() int {
	if h.ready() != nil {
		return 0
	}
	return len(h.source.Commands())
}

// Find returns commands matching term in their name, usage or search terms.
func (h *HelpService) Find(term string) ([]*CommandInfo, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}

	found := h.source.SearchCommands(term)
	result := make([]*CommandInfo, len(found))
	for i, cmd := range found {
		result[i] = Describe(cmd)
	}
	return result, nil
}

// Categories groups command names by category.
func (h *HelpService) Categories() (map[string][]string, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}

	out := make(map[string][]string)
	for _, cmd := range h.source.Commands() {
		c := cmd.Signature().Category.String()
		out[c] = append(out[c], cmd.Name())
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out, nil
}

// CommandMarkdown renders the help page of a command as markdown.
func (h *HelpService) CommandMarkdown(name string) (string, error) {
	if err := h.ready(); err != nil {
		return "", err
	}

	cmd, ok := h.source.FindCommand(name)
	if !ok {
		return "", fmt.Errorf("command '%s' not found", name)
	}
	return CommandMarkdown(cmd), nil
}

// OverviewMarkdown renders a table of every command grouped by category.
func (h *HelpService) OverviewMarkdown() (string, error) {
	if err := h.ready(); err != nil {
		return "", err
	}

	groups := make(map[nutypes.Category][]nutypes.Command)
	var cats []nutypes.Category
	for _, cmd := range h.source.Commands() {
		c := cmd.Signature().Category
		if _, seen := groups[c]; !seen {
			cats = append(cats, c)
		}
		groups[c] = append(groups[c], cmd)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	var b strings.Builder
	b.WriteString("# Commands\n")
	for _, c := range cats {
		fmt.Fprintf(&b, "\n## %s\n\n| command | description |\n| --- | --- |\n", c)
		for _, cmd := range groups[c] {
			fmt.Fprintf(&b, "| %s | %s |\n", cmd.Name(), cmd.Usage())
		}
	}
	b.WriteString("\nUse `help <command>` for details, or `help --find <term>` to search.\n")
	return b.String(), nil
}

// FindMarkdown renders search results as a markdown list.
func (h *HelpService) FindMarkdown(term string) (string, error) {
	found, err := h.Find(term)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return fmt.Sprintf("No commands match '%s'.\n", term), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Commands matching '%s'\n\n", term)
	for _, info := range found {
		fmt.Fprintf(&b, "- `%s`: %s\n", info.Name, info.Usage)
	}
	return b.String(), nil
}

// CommandMarkdown renders the help page of cmd.
func CommandMarkdown(cmd nutypes.Command) string {
	sig := cmd.Signature()
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n%s\n", cmd.Name(), cmd.Usage())
	if extra := cmd.ExtraUsage(); extra != "" {
		fmt.Fprintf(&b, "\n%s\n", extra)
	}
	if terms := cmd.SearchTerms(); len(terms) > 0 {
		fmt.Fprintf(&b, "\n**Search terms:** %s\n", strings.Join(terms, ", "))
	}

	fmt.Fprintf(&b, "\n## Usage\n\n```\n%s\n```\n", sig.UsageLine())

	if len(sig.Required)+len(sig.Optional) > 0 || sig.Rest != nil {
		b.WriteString("\n## Parameters\n\n")
		for _, p := range sig.Required {
			fmt.Fprintf(&b, "- `%s` <%s>: %s\n", p.Name, p.Shape, p.Desc)
		}
		for _, p := range sig.Optional {
			fmt.Fprintf(&b, "- `%s` <%s>: %s (optional)\n", p.Name, p.Shape, p.Desc)
		}
		if sig.Rest != nil {
			fmt.Fprintf(&b, "- `...%s` <%s>: %s\n", sig.Rest.Name, sig.Rest.Shape, sig.Rest.Desc)
		}
	}

	if len(sig.Named) > 0 {
		b.WriteString("\n## Flags\n\n")
		for _, f := range sig.Named {
			b.WriteString("- `--" + f.Long + "`")
			if f.Short != 0 {
				b.WriteString(", `-" + string(f.Short) + "`")
			}
			if !f.IsSwitch() {
				fmt.Fprintf(&b, " <%s>", f.Arg)
			}
			fmt.Fprintf(&b, ": %s\n", f.Desc)
		}
	}

	b.WriteString("\n## Input/output types\n\n| input | output |\n| --- | --- |\n")
	for _, io := range sig.InputOutputTypes {
		fmt.Fprintf(&b, "| %s | %s |\n", io.In, io.Out)
	}

	if examples := cmd.Examples(); len(examples) > 0 {
		b.WriteString("\n## Examples\n")
		for _, ex := range examples {
			fmt.Fprintf(&b, "\n%s\n\n```\n%s\n```\n", ex.Description, ex.Example)
			if ex.Result != nil && !ex.Result.IsNothing() {
				fmt.Fprintf(&b, "\nResult: `%s`\n", ex.Result)
			}
		}
	}
	return b.String()
}
