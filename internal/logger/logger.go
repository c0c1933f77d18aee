// Package logger provides centralized logging for nush.
// Every package logs through the global Logger or a component logger built by
// NewStyledLogger, so that level and destination are configured in one place.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger *log.Logger

var output io.Writer = os.Stderr

// openFile is the log file opened by the last Configure call, if any.
var openFile *os.File

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets up the logger. An empty or unknown level means info, and
// test mode always logs at info. A log file left open by an earlier call is
// closed once the new destination is ready.
func Configure(logLevel string, logFile string, testMode bool) error {
	var w io.Writer = os.Stderr
	var file *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		file, w = f, f
	}
	if err := Close(); err != nil {
		return err
	}
	openFile = file
	output = w

	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(ParseLevel(logLevel))

	if testMode {
		Logger.SetLevel(log.InfoLevel)
	}
	return nil
}

// Close closes the log file opened by Configure, if any.
func Close() error {
	if openFile == nil {
		return nil
	}
	err := openFile.Close()
	openFile = nil
	return err
}

// SetOutput redirects the global logger, mainly for tests.
func SetOutput(w io.Writer) {
	output = w
	Logger.SetOutput(w)
}

// ParseLevel converts a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message with optional key-value pairs and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

// CommandRegistered logs a command added to the registry.
func CommandRegistered(name string, keyword bool) {
	Debug("Registered command", "command", name, "keyword", keyword)
}

// CommandRun logs a command invocation during evaluation.
func CommandRun(name string, positional int, input string) {
	Debug("Running command", "command", name, "positional", positional, "input", input)
}

// KeywordBinding logs a binding recorded by the parser. Module is empty for
// top-level bindings.
func KeywordBinding(kind string, name string, module string, exported bool) {
	Debug("Keyword binding", "kind", kind, "name", name, "module", module, "exported", exported)
}

// ScopeMerge logs a delta merged into the engine state.
func ScopeMerge(modules, aliases, consts int) {
	Debug("Merged scope", "modules", modules, "aliases", aliases, "consts", consts)
}

// NewStyledLogger creates a component logger (e.g. "Parser", "Eval") that
// shares the global logger's level and destination.
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	styles.Levels[log.InfoLevel] = levelStyle("INFO", "33")
	styles.Levels[log.ErrorLevel] = levelStyle("ERROR", "196")
	styles.Levels[log.DebugLevel] = levelStyle("DEBUG", "240")
	styles.Levels[log.WarnLevel] = levelStyle("WARN", "214")
	styles.Levels[log.FatalLevel] = levelStyle("FATAL", "88")

	styles.Keys["command"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["keyword"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["module"] = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	styles.Keys["span"] = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	styles.Values["keyword"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(output, log.Options{
		Prefix: prefix + " ",
	})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())

	return componentLogger
}

func levelStyle(label, background string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(label).
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color("15"))
}
