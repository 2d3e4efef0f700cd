// pkg/transform/helpers_test.go
// TEST TYPE: Test Helpers
// PURPOSE: Stub external tools on a controlled PATH and build request
// fixtures for adapter tests

package transform

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prettycat/pkg/config"
	"github.com/arthur-debert/prettycat/pkg/highlight"
	"github.com/arthur-debert/prettycat/pkg/sniff"
)

// stubPath points PATH at a fresh directory so only stubbed tools resolve.
func stubPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PATH", dir)
	return dir
}

// stubTool writes an executable shell script posing as an external tool.
func stubTool(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + script + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0755))
}

// fixture builds a request around a subject file with the given content.
// The palette uses the ANSI256 profile so colour output is observable;
// assertions that want plain text strip or avoid styled regions.
func fixture(t *testing.T, filename string, content []byte, kind sniff.Kind) (*Request, *bytes.Buffer) {
	t.Helper()
	t.Setenv("PRETTYCAT_CACHE", t.TempDir())

	path := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(path, content, 0644))

	var out bytes.Buffer
	req := &Request{
		Subject:    NewSubject(path),
		Kind:       kind,
		ScratchDir: t.TempDir(),
		Out:        &out,
		Engine:     highlight.NewEngine(config.Default()),
		Palette:    NewPalette(&out, termenv.ANSI256),
	}
	return req, &out
}

// plainFixture is fixture with a colourless palette, for byte-exact
// assertions on adapter output.
func plainFixture(t *testing.T, filename string, content []byte, kind sniff.Kind) (*Request, *bytes.Buffer) {
	t.Helper()
	req, out := fixture(t, filename, content, kind)
	req.Palette = NewPalette(out, termenv.Ascii)
	return req, out
}
