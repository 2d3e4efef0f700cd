// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Filesystem (temp dirs)
// PURPOSE: Test config loading, defaults, and fallback on parse failure

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.Equal(t, "monokai", cfg.Style)
	assert.Equal(t, "auto", cfg.Color)
	assert.NotNil(t, cfg.LexerOverrides)
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
style = "dracula"
color = "never"

[lexer_overrides]
"*.workflow" = "yaml"
"Brewfile" = "ruby"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := Load(path)
	assert.Equal(t, "dracula", cfg.Style)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "yaml", cfg.LexerOverrides["*.workflow"])
	assert.Equal(t, "ruby", cfg.LexerOverrides["Brewfile"])
}

func TestLoadMalformedFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("style = [not toml"), 0644))

	cfg := Load(path)
	assert.Equal(t, Default().Style, cfg.Style)
}

func TestGetInitializesOnce(t *testing.T) {
	Initialize(nil)
	first := Get()
	second := Get()
	assert.Same(t, first, second)
}
