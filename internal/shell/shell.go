// Package shell ties the parser, evaluator and engine state together into an
// interactive session. Each accepted line's definitions are merged into the
// engine state seen by the next line.
package shell

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/spf13/afero"

	"github.com/selfagency/nushell/internal/data/embedded"
	"github.com/selfagency/nushell/internal/engine"
	"github.com/selfagency/nushell/internal/eval"
	"github.com/selfagency/nushell/internal/logger"
	"github.com/selfagency/nushell/internal/output"
	"github.com/selfagency/nushell/internal/parser"
	"github.com/selfagency/nushell/internal/services"
	"github.com/selfagency/nushell/internal/testutils"
	"github.com/selfagency/nushell/internal/version"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// DefaultPrompt is shown before each line in interactive mode.
const DefaultPrompt = "nush> "

// Shell is a single session. It is not safe for concurrent use.
type Shell struct {
	engine      *engine.EngineState
	stack       *engine.Stack
	printer     *output.Printer
	services    *services.Registry
	log         *log.Logger
	sessionID   string
	historyFile string
	testMode    bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrinter sets where results and errors are written.
func WithPrinter(p *output.Printer) Option {
	return func(s *Shell) {
		s.printer = p
	}
}

// WithHistoryFile enables persistent line history in interactive mode.
func WithHistoryFile(path string) Option {
	return func(s *Shell) {
		s.historyFile = path
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(s *Shell) {
		s.sessionID = id
	}
}

// WithTestMode makes generated IDs deterministic.
func WithTestMode(enabled bool) Option {
	return func(s *Shell) {
		s.testMode = enabled
	}
}

// New creates a shell over engineState and initializes its services.
func New(engineState *engine.EngineState, opts ...Option) (*Shell, error) {
	s := &Shell{
		engine:  engineState,
		stack:   engine.NewStack(),
		printer: output.NewPrinter(),
		log:     logger.NewStyledLogger("Shell"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessionID == "" {
		s.sessionID = testutils.GenerateUUID(s.testMode)
	}

	s.services = services.NewRegistry()
	for _, svc := range []services.Service{
		services.NewHelpService(s),
		services.NewMarkdownService(),
		services.NewAutoCompleteService(s),
	} {
		if err := s.services.RegisterService(svc); err != nil {
			return nil, err
		}
	}
	if err := s.services.InitializeAll(); err != nil {
		return nil, err
	}

	s.log.Debug("Shell ready", "session", s.sessionID, "commands", len(engineState.Commands()))
	return s, nil
}

// Engine returns the current engine state.
func (s *Shell) Engine() *engine.EngineState {
	return s.engine
}

// Stack returns the session's variable stack.
func (s *Shell) Stack() *engine.Stack {
	return s.stack
}

// SessionID identifies this session in logs.
func (s *Shell) SessionID() string {
	return s.sessionID
}

// Services returns the session's service registry.
func (s *Shell) Services() *services.Registry {
	return s.services
}

// Eval parses and evaluates src. Definitions are kept once src parses, even
// if evaluation then fails.
func (s *Shell) Eval(src string) (nutypes.Value, error) {
	block, delta, err := parser.Parse(s.engine, src)
	if err != nil {
		return nutypes.NewNothing(), err
	}
	s.engine = s.engine.Merge(delta)

	out, err := eval.EvalBlock(s.engine, s.stack, block, nutypes.EmptyPipeline())
	if err != nil {
		return nutypes.NewNothing(), err
	}
	return out.IntoValue(), nil
}

// ProcessLine evaluates one line of input and prints its result or error.
func (s *Shell) ProcessLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	v, err := s.Eval(line)
	if err != nil {
		s.log.Debug("Line failed", "session", s.sessionID, "error", err)
		s.printer.Error(FormatError(line, err))
		return err
	}
	s.printer.Value(v)
	return nil
}

// RunFile evaluates a script from fs as one block.
func (s *Shell) RunFile(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", path, err)
	}

	src := string(data)
	v, err := s.Eval(src)
	if err != nil {
		s.printer.Error(FormatError(src, err))
		return fmt.Errorf("%s: %w", path, err)
	}
	s.printer.Value(v)
	return nil
}

// LoadPrelude evaluates the embedded prelude scripts so their modules are
// available to "use".
func (s *Shell) LoadPrelude() error {
	loader := embedded.NewPreludeLoader()
	names, err := loader.ListAvailableScripts()
	if err != nil {
		return err
	}

	for _, name := range names {
		src, err := loader.LoadScript(name)
		if err != nil {
			return err
		}
		if _, err := s.Eval(src); err != nil {
			return fmt.Errorf("%s: %w", loader.GetScriptPath(name), err)
		}
		s.log.Debug("Prelude loaded", "script", name)
	}
	return nil
}

// RenderHelp returns help for the named command, or the overview when name
// is empty. Markdown is rendered through glamour unless plain is set.
func (s *Shell) RenderHelp(name string, plain bool) (string, error) {
	help, err := services.Get[*services.HelpService](s.services, "help")
	if err != nil {
		return "", err
	}

	var md string
	if name == "" {
		md, err = help.OverviewMarkdown()
	} else {
		md, err = help.CommandMarkdown(name)
	}
	if err != nil || plain {
		return md, err
	}

	markdown, err := services.Get[*services.MarkdownService](s.services, "markdown")
	if err != nil {
		return "", err
	}
	if !s.printer.IsStylable() {
		return markdown.RenderWithStyle(md, "notty")
	}
	return markdown.Render(md)
}

// Run reads lines until EOF, an interrupt on an empty line, or "exit".
func (s *Shell) Run() error {
	completer, err := services.Get[*services.AutoCompleteService](s.services, "autocomplete")
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          DefaultPrompt,
		HistoryFile:     s.historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start line editor: %w", err)
	}
	defer func() { _ = rl.Close() }()
	s.printer.SetWriter(rl.Stdout())
	s.printer.Println(version.GetFormattedVersion())
	s.printer.Info("Type 'help' for commands or 'exit' to quit.")

	s.log.Info("Starting nush", "session", s.sessionID)
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if len(line) == 0 {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		if strings.TrimSpace(line) == "exit" {
			return nil
		}
		_ = s.ProcessLine(line)
	}
}

// FindCommand looks a command up by its full name.
func (s *Shell) FindCommand(name string) (nutypes.Command, bool) {
	return s.engine.FindCommand(name)
}

// Commands lists every registered command.
func (s *Shell) Commands() []nutypes.Command {
	return s.engine.Commands()
}

// SearchCommands searches names, usage and search terms.
func (s *Shell) SearchCommands(term string) []nutypes.Command {
	return s.engine.SearchCommands(term)
}

// BindingNames lists the aliases and constants in scope.
func (s *Shell) BindingNames() []string {
	scope := s.engine.Scope()
	names := make([]string, 0, len(scope.Aliases)+len(scope.Consts))
	for name := range scope.Aliases {
		names = append(names, name)
	}
	for name := range scope.Consts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VariableNames lists runtime variables and constants.
func (s *Shell) VariableNames() []string {
	names := s.stack.Names()
	for name := range s.engine.Scope().Consts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ services.CompletionSource = (*Shell)(nil)
