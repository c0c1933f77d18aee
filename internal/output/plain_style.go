package output

import "strings"

// PlainTextStyle implements TextStyle without styling, optionally adding a
// prefix that carries the semantic meaning.
type PlainTextStyle struct {
	prefix string
}

// NewPlainTextStyle creates a new plain text style with an optional prefix.
func NewPlainTextStyle(prefix string) *PlainTextStyle {
	return &PlainTextStyle{prefix: prefix}
}

// Render joins strs and adds the prefix.
func (p *PlainTextStyle) Render(strs ...string) string {
	text := strings.Join(strs, " ")
	if p.prefix != "" {
		return p.prefix + text
	}
	return text
}

// PlainStyleProvider marks messages with text prefixes instead of colors.
type PlainStyleProvider struct{}

// NewPlainStyleProvider creates a new plain style provider.
func NewPlainStyleProvider() *PlainStyleProvider {
	return &PlainStyleProvider{}
}

// GetStyle returns a prefix style for the semantic type.
func (p *PlainStyleProvider) GetStyle(semantic SemanticType) TextStyle {
	switch semantic {
	case SemanticError:
		return NewPlainTextStyle("✗ ")
	case SemanticInfo:
		return NewPlainTextStyle("ℹ ")
	default:
		return NewPlainTextStyle("")
	}
}

// IsAvailable always returns true.
func (p *PlainStyleProvider) IsAvailable() bool {
	return true
}
