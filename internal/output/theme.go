package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ThemeStyleProvider styles output with lipgloss for the detected terminal
// color profile.
type ThemeStyleProvider struct {
	profile  termenv.Profile
	renderer *lipgloss.Renderer
	styles   map[SemanticType]lipgloss.Style
}

// NewThemeStyleProvider detects the color profile from the environment,
// honoring NO_COLOR and CLICOLOR_FORCE.
func NewThemeStyleProvider() *ThemeStyleProvider {
	return NewThemeStyleProviderFor(os.Stdout, termenv.EnvColorProfile())
}

// NewThemeStyleProviderFor builds styles for an explicit writer and profile.
func NewThemeStyleProviderFor(w io.Writer, profile termenv.Profile) *ThemeStyleProvider {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &ThemeStyleProvider{
		profile:  profile,
		renderer: r,
		styles: map[SemanticType]lipgloss.Style{
			SemanticInfo:   r.NewStyle().Foreground(lipgloss.Color("33")),
			SemanticError:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
			SemanticHeader: r.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Padding(0, 1),
			SemanticBorder: r.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// GetStyle returns the lipgloss style for the semantic type.
func (t *ThemeStyleProvider) GetStyle(semantic SemanticType) TextStyle {
	return t.Style(semantic)
}

// Style is GetStyle returning the concrete lipgloss type.
func (t *ThemeStyleProvider) Style(semantic SemanticType) lipgloss.Style {
	if s, ok := t.styles[semantic]; ok {
		return s
	}
	return t.renderer.NewStyle()
}

// IsAvailable reports whether the terminal supports color.
func (t *ThemeStyleProvider) IsAvailable() bool {
	return t.profile != termenv.Ascii
}

// Profile returns the detected color profile.
func (t *ThemeStyleProvider) Profile() termenv.Profile {
	return t.profile
}
