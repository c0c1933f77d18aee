package builtin

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// LsCommand lists a directory of the engine's filesystem as a table.
type LsCommand struct {
	nutypes.BaseCommand
}

// Name returns "ls".
func (c *LsCommand) Name() string {
	return "ls"
}

// Usage returns a one-line description.
func (c *LsCommand) Usage() string {
	return "List the filenames, sizes, and modification times of items in a directory."
}

// Signature declares "ls {flags} (path)".
func (c *LsCommand) Signature() nutypes.Signature {
	return nutypes.BuildSignature(c.Name()).
		InputOutputTypes(nutypes.IO(nutypes.TypeNothing, nutypes.TypeTable)).
		Optional("path", nutypes.ShapeFilepath, "The directory or file to list.").
		Switch("long", "Get all available columns for each entry.", 'l').
		Switch("all", "Show hidden files.", 'a').
		Category(nutypes.CategoryFilesystem).
		Build()
}

// SearchTerms returns alternative names users search for.
func (c *LsCommand) SearchTerms() []string {
	return []string{"dir"}
}

// Examples returns documented invocations.
func (c *LsCommand) Examples() []nutypes.Example {
	return []nutypes.Example{
		{Description: "List visible files in the current directory", Example: "ls"},
		{Description: "List all files with every column", Example: "ls -la"},
		{Description: "List a subdirectory", Example: "ls subdir"},
	}
}

// Run lists the directory named by the optional path argument.
func (c *LsCommand) Run(engine nutypes.EngineState, _ nutypes.Stack, call *nutypes.Call, _ nutypes.PipelineData) (nutypes.PipelineData, error) {
	target := engine.Cwd()
	if arg, ok := call.Opt(0); ok {
		p, err := arg.AsString()
		if err != nil {
			return nutypes.EmptyPipeline(), err
		}
		target = resolvePath(engine.Cwd(), p)
	}

	long := call.Has("long")
	all := call.Has("all")

	fs := engine.FS()
	info, err := fs.Stat(target)
	if err != nil {
		return nutypes.EmptyPipeline(), nutypes.WrapShellError(nutypes.ErrIO, call.Span, err, "cannot access %s", target)
	}

	var entries []os.FileInfo
	if info.IsDir() {
		entries, err = afero.ReadDir(fs, target)
		if err != nil {
			return nutypes.EmptyPipeline(), nutypes.WrapShellError(nutypes.ErrIO, call.Span, err, "cannot read %s", target)
		}
	} else {
		entries = []os.FileInfo{info}
	}

	rows := make([]nutypes.Value, 0, len(entries))
	for _, entry := range entries {
		if !all && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		rows = append(rows, entryRecord(entry, long))
	}
	return nutypes.PipelineValue(nutypes.NewList(rows...)), nil
}

func entryRecord(fi os.FileInfo, long bool) nutypes.Value {
	cols := []string{"name", "type", "size"}
	vals := []nutypes.Value{
		nutypes.NewString(fi.Name()),
		nutypes.NewString(entryType(fi.Mode())),
		nutypes.NewInt(fi.Size()),
	}
	if long {
		cols = append(cols, "mode", "modified")
		vals = append(vals,
			nutypes.NewString(fi.Mode().Perm().String()),
			nutypes.NewString(fi.ModTime().UTC().Format(time.RFC3339)),
		)
	}
	return nutypes.NewRecord(cols, vals)
}

func entryType(mode os.FileMode) string {
	switch {
	case mode.IsDir():
		return "dir"
	case mode&os.ModeSymlink != 0:
		return "symlink"
	default:
		return "file"
	}
}

func resolvePath(cwd, p string) string {
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(cwd, p)
}

func init() {
	if err := commands.GlobalRegistry.Register(&LsCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register ls command: %v", err))
	}
}
