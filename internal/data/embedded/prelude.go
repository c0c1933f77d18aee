// Package embedded provides access to nush scripts compiled into the binary.
// Prelude scripts are evaluated when a shell starts, before the first line
// of input.
package embedded

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

// ScriptExt is the extension of nush scripts.
const ScriptExt = ".nu"

// PreludeFS contains all embedded prelude scripts.
//
//go:embed prelude/*.nu
var PreludeFS embed.FS

// PreludeLoader reads scripts from PreludeFS.
type PreludeLoader struct{}

// NewPreludeLoader creates a new PreludeLoader.
func NewPreludeLoader() *PreludeLoader {
	return &PreludeLoader{}
}

// LoadScript loads a prelude script by name, with or without the extension.
func (l *PreludeLoader) LoadScript(name string) (string, error) {
	content, err := PreludeFS.ReadFile(path.Join("prelude", withExt(name)))
	if err != nil {
		return "", fmt.Errorf("prelude script not found: %s", name)
	}
	return string(content), nil
}

// ListAvailableScripts returns the script names without their extension,
// in the order they are evaluated.
func (l *PreludeLoader) ListAvailableScripts() ([]string, error) {
	entries, err := PreludeFS.ReadDir("prelude")
	if err != nil {
		return nil, fmt.Errorf("failed to read prelude directory: %w", err)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ScriptExt) {
			continue
		}
		scripts = append(scripts, strings.TrimSuffix(entry.Name(), ScriptExt))
	}
	return scripts, nil
}

// ScriptExists checks if a prelude script with the given name exists.
func (l *PreludeLoader) ScriptExists(name string) bool {
	_, err := PreludeFS.ReadFile(path.Join("prelude", withExt(name)))
	return err == nil
}

// GetScriptPath returns the virtual path reported in errors and logs.
func (l *PreludeLoader) GetScriptPath(name string) string {
	return "embedded://prelude/" + withExt(name)
}

func withExt(name string) string {
	if strings.HasSuffix(name, ScriptExt) {
		return name
	}
	return name + ScriptExt
}
