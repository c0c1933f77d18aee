package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/selfagency/nushell/pkg/nutypes"
)

// Printer writes messages and values. It is safe for concurrent use.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options. By default it
// writes to os.Stdout in ModeAuto.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Println outputs text followed by a newline.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Value renders a pipeline result. Nothing prints nothing.
func (p *Printer) Value(v nutypes.Value) {
	if v.IsNothing() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var text string
	switch {
	case p.mode == ModeJSON:
		data, err := json.Marshal(ToInterface(v))
		if err != nil {
			text = v.String()
		} else {
			text = string(data)
		}
	case p.isStylable():
		theme, _ := p.styleProvider.(*ThemeStyleProvider)
		text = RenderValue(v, theme)
	default:
		text = ansi.Strip(RenderValue(v, nil))
	}
	p.write(text, true)
}

func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	switch p.mode {
	case ModeJSON:
		finalText = p.renderJSON(semantic, text)
		addNewline = true
	case ModeAuto:
		finalText = p.renderStyled(semantic, text)
	default:
		finalText = p.renderPlain(semantic, text)
	}
	p.write(finalText, addNewline)
}

func (p *Printer) write(text string, addNewline bool) {
	if addNewline && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = fmt.Fprint(p.writer, text)
}

func (p *Printer) renderPlain(semantic SemanticType, text string) string {
	return NewPlainStyleProvider().GetStyle(semantic).Render(ansi.Strip(text))
}

func (p *Printer) renderStyled(semantic SemanticType, text string) string {
	if !p.isStylable() {
		return p.renderPlain(semantic, text)
	}
	return p.styleProvider.GetStyle(semantic).Render(text)
}

func (p *Printer) renderJSON(semantic SemanticType, text string) string {
	out := map[string]interface{}{
		"type":    semantic,
		"message": ansi.Strip(text),
	}
	data, err := json.Marshal(out)
	if err != nil {
		return text
	}
	return string(data)
}

// SetWriter changes the output writer.
func (p *Printer) SetWriter(writer io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = writer
}

// IsStylable returns true if the printer can apply styles.
func (p *Printer) IsStylable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isStylable()
}

func (p *Printer) isStylable() bool {
	return p.mode == ModeAuto && p.styleProvider != nil && p.styleProvider.IsAvailable()
}
