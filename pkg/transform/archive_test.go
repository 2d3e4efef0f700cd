// pkg/transform/archive_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Stub ar/nm on a controlled PATH
// PURPOSE: Test the synthesized two-section archive report

package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prettycat/pkg/sniff"
)

func TestArchiveReportHasBothSections(t *testing.T) {
	dir := stubPath(t)
	stubTool(t, dir, "ar", `echo "rw-r--r-- 0/0   1024 Jan  1 00:00 2026 alpha.o"
echo "rw-r--r-- 0/0   2048 Jan  1 00:00 2026 beta.o"`)
	stubTool(t, dir, "nm", `echo "main in alpha.o"
echo "helper in beta.o"`)

	tr := newArchiveTransformer()
	req, out := plainFixture(t, "libdemo.a", []byte("!<arch>\n"), sniff.KindAr)

	result, err := tr.Apply(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, OutcomeRendered, result.Outcome)

	text := out.String()
	assert.Contains(t, text, "Archive members")
	assert.Contains(t, text, "alpha.o")
	assert.Contains(t, text, "Symbol index")
	assert.Contains(t, text, "main in alpha.o")
}

func TestArchiveWithoutNmStillListsMembers(t *testing.T) {
	dir := stubPath(t)
	stubTool(t, dir, "ar", `echo "alpha.o"`)

	tr := newArchiveTransformer()
	req, out := plainFixture(t, "libdemo.a", []byte("!<arch>\n"), sniff.KindAr)

	result, err := tr.Apply(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, OutcomeRendered, result.Outcome)

	text := out.String()
	assert.Contains(t, text, "Archive members")
	assert.NotContains(t, text, "Symbol index")
}

func TestArchiveApplicableNeedsTool(t *testing.T) {
	stubPath(t)
	tr := newArchiveTransformer()
	assert.False(t, tr.Applicable(NewSubject("/x/libdemo.a"), sniff.KindAr))
}
