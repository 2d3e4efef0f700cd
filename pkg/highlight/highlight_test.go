// pkg/highlight/highlight_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Filesystem (temp dirs)
// PURPOSE: Test lexer resolution, the version-suffix guard, cache
// regeneration, and profile-driven formatter selection

package highlight

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prettycat/pkg/config"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	t.Setenv("PRETTYCAT_CACHE", t.TempDir())
	cfg := config.Default()
	return NewEngine(cfg)
}

func TestResolveOverrides(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"bashrc_fragment", "/home/user/.bashrc", "bash"},
		{"jenkinsfile", "/src/Jenkinsfile.deploy", "groovy"},
		{"dockerfile_variant", "/src/Dockerfile.alpine", "docker"},
		{"terraform", "/infra/main.tf", "terraform"},
		{"riscos_c_dir", "/src/kernel/c/Module", "c"},
		{"riscos_asm_dir", "/src/kernel/s/Boot", "armasm"},
		{"basic_suffix", "/src/PROG.bas", "qbasic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Resolve(tt.path, nil))
		})
	}
}

func TestUserOverridesWin(t *testing.T) {
	t.Setenv("PRETTYCAT_CACHE", t.TempDir())
	cfg := config.Default()
	cfg.LexerOverrides = map[string]string{"*.tf": "json"}
	e := NewEngine(cfg)

	assert.Equal(t, "json", e.Resolve("/infra/main.tf", nil))
}

func TestVersionSuffixSkipsFilenameGuess(t *testing.T) {
	e := testEngine(t)

	// Shell content, versioned name: the filename guess must be skipped
	// and content analysis must still classify it as shell.
	content := []byte("#!/bin/bash\nif [ -z \"$1\" ]; then\n  echo usage\nfi\n")
	got := e.Resolve("/usr/local/bin/wrapper-2.1.7", content)
	assert.Equal(t, "bash", got)
}

func TestResolveByFilename(t *testing.T) {
	e := testEngine(t)
	assert.Equal(t, "go", e.Resolve("/src/main.go", nil))
}

func TestResolveNothing(t *testing.T) {
	e := testEngine(t)
	assert.Equal(t, "", e.Resolve("/data/blob.xyzzy", []byte{0x01, 0x02}))
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir, "v2.14.0")

	_, ok := c.Lookup("name:main.go")
	assert.False(t, ok)

	c.Store("name:main.go", "go")
	lexer, ok := c.Lookup("name:main.go")
	assert.True(t, ok)
	assert.Equal(t, "go", lexer)

	// A fresh cache instance reads the persisted file.
	again := NewCache(dir, "v2.14.0")
	lexer, ok = again.Lookup("name:main.go")
	assert.True(t, ok)
	assert.Equal(t, "go", lexer)
}

func TestCacheEmptyEntryIsMemoized(t *testing.T) {
	c := NewCache(t.TempDir(), "v2.14.0")
	c.Store("name:blob.xyzzy", "")

	lexer, ok := c.Lookup("name:blob.xyzzy")
	assert.True(t, ok)
	assert.Equal(t, "", lexer)
}

func TestCacheVersionChangeInvalidates(t *testing.T) {
	dir := t.TempDir()
	old := NewCache(dir, "v2.13.0")
	old.Store("name:main.go", "go")

	fresh := NewCache(dir, "v2.14.0")
	_, ok := fresh.Lookup("name:main.go")
	assert.False(t, ok)

	// Writing under the new key prunes the stale file.
	fresh.Store("name:main.go", "go")
	matches, err := filepath.Glob(filepath.Join(dir, "lexmap-*"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCachePruneIgnoresInFlightWrites(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir, "v2.14.0")

	// A concurrent writer's unrenamed temp file must survive this writer's
	// prune; only published lexmap files under other keys are stale.
	inflight := filepath.Join(dir, ".lexmap-123456")
	require.NoError(t, os.WriteFile(inflight, []byte("name:a\tgo\n"), 0644))

	c.Store("name:main.go", "go")

	assert.FileExists(t, inflight)
	matches, err := filepath.Glob(filepath.Join(dir, "lexmap-*"))
	require.NoError(t, err)
	assert.Len(t, matches, 1, "one published file, no leftover temp")
}

func TestCacheDeletionRegenerates(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PRETTYCAT_CACHE", dir)
	e := NewEngine(config.Default())

	first := e.Resolve("/src/main.go", nil)
	require.NoError(t, os.RemoveAll(dir))

	e2 := NewEngine(config.Default())
	assert.Equal(t, first, e2.Resolve("/src/main.go", nil))
}

func TestFormatterSelection(t *testing.T) {
	e := testEngine(t)

	e.profile = termenv.TrueColor
	assert.Equal(t, "terminal16m", e.formatterFor("go"))
	assert.Equal(t, "terminal256", e.formatterFor("rst"), "doc lexers downgrade from truecolor")

	e.profile = termenv.ANSI256
	assert.Equal(t, "terminal256", e.formatterFor("go"))

	e.profile = termenv.Ascii
	assert.Equal(t, "noop", e.formatterFor("go"))
}

func TestHighlightEmitsSource(t *testing.T) {
	e := testEngine(t)
	e.profile = termenv.ANSI256

	var buf bytes.Buffer
	err := e.Highlight(&buf, []byte("package main\n"), "go")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "package")
}

func TestHighlightUnknownLexerFallsBack(t *testing.T) {
	e := testEngine(t)

	var buf bytes.Buffer
	err := e.Highlight(&buf, []byte("plain words\n"), "no-such-lexer")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "plain words")
}
