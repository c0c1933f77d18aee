// Package main provides the nush CLI entry point.
// nush is a small structured-data shell: commands exchange typed values
// through pipelines, and parse-time keywords define aliases, constants and
// modules.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/selfagency/nushell/internal/commands"
	_ "github.com/selfagency/nushell/internal/commands/builtin" // Import for side effects (init functions)
	_ "github.com/selfagency/nushell/internal/commands/core"    // Import for side effects (init functions)
	"github.com/selfagency/nushell/internal/config"
	"github.com/selfagency/nushell/internal/engine"
	"github.com/selfagency/nushell/internal/logger"
	"github.com/selfagency/nushell/internal/output"
	"github.com/selfagency/nushell/internal/services"
	"github.com/selfagency/nushell/internal/shell"
	"github.com/selfagency/nushell/internal/version"
	"github.com/selfagency/nushell/pkg/nutypes"
)

var (
	v         = viper.New()
	fs        = afero.NewOsFs()
	cfg       *config.Configuration
	configDir string
	source    string
	findTerm  string
	format    string
)

// rootCmd starts the interactive shell when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:               "nush",
	Short:             "nush - a structured-data shell",
	Long:              `nush evaluates pipelines of typed values. Run it without arguments for an interactive session.`,
	PersistentPreRunE: initConfig,
	RunE:              runShell,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Evaluate a script file or a -c string",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSource,
}

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show help for a nush command",
	Long:  `Show help for a nush command. Multi-word commands such as "export alias" may be given as separate arguments.`,
	RunE:  runHelp,
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List registered commands",
	Args:  cobra.NoArgs,
	RunE:  runCommands,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetFormattedVersion())
	},
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Close()
	if err != nil {
		if !alreadyReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", defaultConfigDir(), "Directory holding config.yaml and .env")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.String("history-file", "", "Persist interactive history to this file")
	flags.String("root", "", "Working directory for filesystem commands [default: current directory]")
	flags.Bool("plain", false, "Disable styling")
	flags.Bool("json", false, "Print values and messages as JSON")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.Bool("no-prelude", false, "Skip loading the embedded std module")

	// Flags use dashes, configuration keys use underscores.
	for _, name := range []string{"log-level", "log-file", "history-file", "root", "plain", "json", "test-mode", "no-prelude"} {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}

	runCmd.Flags().StringVarP(&source, "command", "c", "", "Source to evaluate")
	commandsCmd.Flags().StringVar(&findTerm, "find", "", "Only list commands matching this term")
	commandsCmd.Flags().StringVar(&format, "format", "table", "Output format (table|yaml|json)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "nush")
}

func initConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(v, fs, configDir)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}
	commands.GlobalRegistry.Seal()
	return nil
}

func newShell(cmd *cobra.Command) (*shell.Shell, error) {
	eng := engine.New(commands.GlobalRegistry, engine.WithFS(fs), engine.WithCwd(cfg.Root))
	sh, err := shell.New(eng,
		shell.WithPrinter(newPrinter(cmd)),
		shell.WithHistoryFile(cfg.HistoryFile),
		shell.WithTestMode(cfg.TestMode),
	)
	if err != nil {
		return nil, err
	}
	if !cfg.NoPrelude {
		if err := sh.LoadPrelude(); err != nil {
			return nil, fmt.Errorf("failed to load prelude: %w", err)
		}
	}
	return sh, nil
}

func runShell(cmd *cobra.Command, _ []string) error {
	logger.Info("Starting nush", "version", version.GetVersion())

	sh, err := newShell(cmd)
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}

	return sh.Run()
}

func runSource(cmd *cobra.Command, args []string) error {
	if source == "" && len(args) == 0 {
		return fmt.Errorf("run requires a script path or -c source")
	}

	sh, err := newShell(cmd)
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	if source != "" {
		return sh.ProcessLine(source)
	}
	return sh.RunFile(fs, args[0])
}

func runHelp(cmd *cobra.Command, args []string) error {
	sh, err := newShell(cmd)
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}

	page, err := sh.RenderHelp(strings.Join(args, " "), cfg.Plain)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), page)
	return nil
}

func runCommands(cmd *cobra.Command, _ []string) error {
	eng := engine.New(commands.GlobalRegistry)
	cmds := eng.Commands()
	if findTerm != "" {
		cmds = eng.SearchCommands(findTerm)
	}

	if format != "table" {
		infos := make([]*services.CommandInfo, 0, len(cmds))
		for _, c := range cmds {
			infos = append(infos, services.Describe(c))
		}
		data, err := services.Encode(infos, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	rows := make([]nutypes.Value, 0, len(cmds))
	for _, c := range cmds {
		rows = append(rows, nutypes.NewRecord(
			[]string{"name", "category", "usage"},
			[]nutypes.Value{
				nutypes.NewString(c.Name()),
				nutypes.NewString(c.Signature().Category.String()),
				nutypes.NewString(c.Usage()),
			},
		))
	}

	newPrinter(cmd).Value(nutypes.NewList(rows...))
	return nil
}

// newPrinter builds the printer selected by the configuration: JSON,
// plain (also forced in test mode), or styled for the detected terminal.
func newPrinter(cmd *cobra.Command) *output.Printer {
	opts := []output.Option{
		output.WithWriter(cmd.OutOrStdout()),
		output.WithStyles(output.NewThemeStyleProvider()),
	}
	switch {
	case cfg.JSON:
		opts = append(opts, output.JSON())
	case cfg.TestMode:
		opts = append(opts, output.TestMode())
	case cfg.Plain:
		opts = append(opts, output.PlainText())
	}
	return output.NewPrinter(opts...)
}

// alreadyReported reports whether the shell has printed err with its source
// context.
func alreadyReported(err error) bool {
	var pe *nutypes.ParseError
	var se *nutypes.ShellError
	return errors.As(err, &pe) || errors.As(err, &se)
}
