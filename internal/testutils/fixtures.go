package testutils

import (
	"path"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/selfagency/nushell/internal/commands"
	"github.com/selfagency/nushell/internal/engine"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// NewMemFS builds an in-memory filesystem. Keys ending in "/" create
// directories; other keys create files with the given content. Every entry
// gets BaseTime as its modification time.
func NewMemFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		if strings.HasSuffix(name, "/") {
			require.NoError(t, fs.MkdirAll(name, 0o755))
			require.NoError(t, fs.Chtimes(name, BaseTime, BaseTime))
			continue
		}
		require.NoError(t, fs.MkdirAll(path.Dir(name), 0o755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
		require.NoError(t, fs.Chtimes(name, BaseTime, BaseTime))
	}
	return fs
}

// NewRegistry registers cmds in a fresh registry and seals it.
func NewRegistry(t *testing.T, cmds ...nutypes.Command) *commands.Registry {
	t.Helper()

	reg := commands.NewRegistry()
	for _, cmd := range cmds {
		require.NoError(t, reg.Register(cmd))
	}
	reg.Seal()
	return reg
}

// NewEngine builds an engine over cmds, rooted at "/" on fs.
func NewEngine(t *testing.T, fs afero.Fs, cmds ...nutypes.Command) *engine.EngineState {
	t.Helper()
	return engine.New(NewRegistry(t, cmds...), engine.WithFS(fs), engine.WithCwd("/"))
}
