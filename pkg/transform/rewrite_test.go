// pkg/transform/rewrite_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Stub converters on a controlled PATH
// PURPOSE: Test the rewriting adapters (plist, basic-detok) and the graph
// colourizer

package transform

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prettycat/pkg/sniff"
)

func TestPlistRewritesToXMLArtifact(t *testing.T) {
	dir := stubPath(t)
	stubTool(t, dir, "plutil", `echo '<?xml version="1.0"?>'
echo '<plist version="1.0"><dict/></plist>'`)

	tr := newPlistTransformer()
	req, _ := plainFixture(t, "Info.plist", []byte("bplist00"), sniff.KindPlist)

	result, err := tr.Apply(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, OutcomeRewrote, result.Outcome)

	s := result.Subject
	assert.True(t, s.Temporary)
	assert.True(t, strings.HasSuffix(s.Name, ".xml"))
	assert.Equal(t, req.Subject.Original, s.Original)
	assert.Equal(t, filepath.Dir(s.Path), req.ScratchDir)

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<plist")
}

func TestPlistFallsBackToPlistutil(t *testing.T) {
	dir := stubPath(t)
	stubTool(t, dir, "plistutil", `if [ "$1" = "-i" ]; then echo "<plist/>"; fi`)

	tr := newPlistTransformer()
	req, _ := plainFixture(t, "prefs.plist", []byte("bplist00"), sniff.KindPlist)

	result, err := tr.Apply(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, OutcomeRewrote, result.Outcome)

	data, err := os.ReadFile(result.Subject.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<plist/>")
}

func TestBasicDetokRewritesToListing(t *testing.T) {
	dir := stubPath(t)
	stubTool(t, dir, "detok", `echo "10 PRINT \"HELLO\""
echo "20 GOTO 10"`)

	tr := newBasicDetokTransformer()
	req, _ := plainFixture(t, "game,ffb", []byte{0x0d, 0x00, 0x0a}, sniff.KindBASIC)

	result, err := tr.Apply(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, OutcomeRewrote, result.Outcome)
	assert.True(t, strings.HasSuffix(result.Subject.Name, ".bas"))

	data, err := os.ReadFile(result.Subject.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "20 GOTO 10")
}

func TestGraphRendersColouredOutput(t *testing.T) {
	dir := stubPath(t)
	stubTool(t, dir, "grcat", `while IFS= read -r line; do echo ">>$line"; done`)

	tr := newGraphTransformer()
	req, out := plainFixture(t, "deps.dot", []byte("digraph g { a -> b }\n"), sniff.KindNone)

	result, err := tr.Apply(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, OutcomeRendered, result.Outcome)
	assert.Contains(t, out.String(), ">>digraph g")
}

func TestGraphDeclinesOnEmptyOutput(t *testing.T) {
	dir := stubPath(t)
	stubTool(t, dir, "grcat", `while IFS= read -r line; do :; done`)

	tr := newGraphTransformer()
	req, out := plainFixture(t, "deps.gv", []byte("graph g {}\n"), sniff.KindNone)

	result, err := tr.Apply(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeclined, result.Outcome)
	assert.Empty(t, out.String())
}

func TestRewriteAdaptersApplicability(t *testing.T) {
	dir := stubPath(t)
	stubTool(t, dir, "plutil", `exit 0`)
	stubTool(t, dir, "detok", `exit 0`)
	stubTool(t, dir, "grcat", `exit 0`)

	plist := newPlistTransformer()
	assert.True(t, plist.Applicable(NewSubject("/x/blob"), sniff.KindPlist))
	assert.True(t, plist.Applicable(NewSubject("/x/Info.plist"), sniff.KindNone))
	assert.False(t, plist.Applicable(NewSubject("/x/Info.xml"), sniff.KindNone))

	basic := newBasicDetokTransformer()
	assert.True(t, basic.Applicable(NewSubject("/x/prog,ffb"), sniff.KindNone))
	assert.True(t, basic.Applicable(NewSubject("/x/prog.bbc"), sniff.KindNone))
	assert.False(t, basic.Applicable(NewSubject("/x/prog.bin"), sniff.KindNone))

	graph := newGraphTransformer()
	assert.True(t, graph.Applicable(NewSubject("/x/deps.dot"), sniff.KindNone))
	assert.False(t, graph.Applicable(NewSubject("/x/deps.png"), sniff.KindNone))
}
