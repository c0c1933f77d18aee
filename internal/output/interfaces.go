// Package output renders shell results and messages to the terminal.
// Styling is optional: the Printer works against the StyleProvider
// interface and falls back to plain text when no provider is available or
// when plain output is forced.
package output

// StyleProvider supplies styles for semantic output types.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic SemanticType) TextStyle

	// IsAvailable returns true if the provider can style output. The printer
	// falls back to plain text otherwise.
	IsAvailable() bool
}

// TextStyle renders text with styling. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(strs ...string) string
}

// Mode defines the output modes a printer can operate in.
type Mode int

const (
	// ModeAuto styles output when a style provider is available.
	ModeAuto Mode = iota

	// ModePlain forces plain text output with ANSI sequences stripped.
	ModePlain

	// ModeJSON outputs one JSON document per message or value.
	ModeJSON
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	SemanticPlain SemanticType = "plain"
	SemanticInfo  SemanticType = "info"
	SemanticError SemanticType = "error"

	// SemanticHeader styles table headers.
	SemanticHeader SemanticType = "header"
	// SemanticBorder styles table borders.
	SemanticBorder SemanticType = "border"
)
