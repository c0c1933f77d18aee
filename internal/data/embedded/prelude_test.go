package embedded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreludeLoader(t *testing.T) {
	loader := NewPreludeLoader()

	names, err := loader.ListAvailableScripts()
	require.NoError(t, err)
	assert.Contains(t, names, "std")

	for _, name := range []string{"std", "std.nu"} {
		assert.True(t, loader.ScriptExists(name), name)
		content, err := loader.LoadScript(name)
		require.NoError(t, err)
		assert.Contains(t, content, "module std")
	}

	assert.False(t, loader.ScriptExists("missing"))
	_, err = loader.LoadScript("missing")
	assert.Error(t, err)

	assert.Equal(t, "embedded://prelude/std.nu", loader.GetScriptPath("std"))
}
