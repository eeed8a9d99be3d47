package patchsynth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/git-surgeon/internal/diffmodel"
	"github.com/roasbeef/git-surgeon/internal/patchsynth"
	"github.com/roasbeef/git-surgeon/internal/selector"
)

const sampleDiff = `diff --git a/f.txt b/f.txt
index 1111111..2222222 100644
--- a/f.txt
+++ b/f.txt
@@ -1,3 +1,4 @@
 context
-removed one
+added one
+added two
 trailing
`

func parseAndID(t *testing.T, diffText string) []*diffmodel.FileChange {
	t.Helper()

	files, err := diffmodel.Parse(diffText)
	require.NoError(t, err)
	diffmodel.AssignIDs(files)

	return files
}

func TestGenerateWholeHunkIsBitIdentical(t *testing.T) {
	files := parseAndID(t, sampleDiff)
	id := files[0].Hunks[0].ID

	sels, err := selector.Resolve(files, []string{id})
	require.NoError(t, err)

	patch, err := patchsynth.Generate(files, sels, patchsynth.Options{})
	require.NoError(t, err)

	require.Contains(t, string(patch), "@@ -1,3 +1,4 @@")
	require.Contains(t, string(patch),
		"@@ -1,3 +1,4 @@\n context\n-removed one\n+added one\n+added two\n trailing\n")
	require.Contains(t, string(patch), "-removed one")
	require.Contains(t, string(patch), "+added one")
	require.Contains(t, string(patch), "+added two")
}

func TestGeneratePartialSelectionDemotesAndOmits(t *testing.T) {
	files := parseAndID(t, sampleDiff)
	id := files[0].Hunks[0].ID

	// Intrinsic lines: 1 context, 2 removed, 3 added one, 4 added two,
	// 5 trailing context. Select only line 3 (added one).
	sels, err := selector.Resolve(files, []string{id + ":3"})
	require.NoError(t, err)

	patch, err := patchsynth.Generate(files, sels, patchsynth.Options{})
	require.NoError(t, err)

	out := string(patch)
	require.Contains(t, out, "+added one")
	require.NotContains(t, out, "+added two")
	// The unselected removed line is demoted to context, so it
	// reappears without a leading '-'.
	require.Contains(t, out, " removed one")
	require.NotContains(t, out, "-removed one")
}

func TestGenerateOmitsFileWithNoSelectedHunks(t *testing.T) {
	twoFile := sampleDiff + `diff --git a/g.txt b/g.txt
index 3333333..4444444 100644
--- a/g.txt
+++ b/g.txt
@@ -1 +1 @@
-old
+new
`
	files := parseAndID(t, twoFile)
	id := files[0].Hunks[0].ID

	sels, err := selector.Resolve(files, []string{id})
	require.NoError(t, err)

	patch, err := patchsynth.Generate(files, sels, patchsynth.Options{})
	require.NoError(t, err)
	require.NotContains(t, string(patch), "g.txt")
}

func TestGenerateContextOnlySelectionDropsHunk(t *testing.T) {
	files := parseAndID(t, sampleDiff)
	id := files[0].Hunks[0].ID

	// Line 1 is pure context; selecting only it yields no +/- lines.
	sels, err := selector.Resolve(files, []string{id + ":1"})
	require.NoError(t, err)

	patch, err := patchsynth.Generate(files, sels, patchsynth.Options{})
	require.NoError(t, err)
	require.Empty(t, patch)
}

func TestGenerateReverseSwapsRoles(t *testing.T) {
	files := parseAndID(t, sampleDiff)
	id := files[0].Hunks[0].ID

	sels, err := selector.Resolve(files, []string{id})
	require.NoError(t, err)

	patch, err := patchsynth.Generate(files, sels, patchsynth.Options{Reverse: true})
	require.NoError(t, err)

	out := string(patch)
	require.Contains(t, out, "+removed one")
	require.Contains(t, out, "-added one")
	require.Contains(t, out, "-added two")
}

func TestGenerateRefusesBinaryWithSelection(t *testing.T) {
	files := parseAndID(t, sampleDiff)
	files[0].IsBinary = true

	id := files[0].Hunks[0].ID

	sels, err := selector.Resolve(files, []string{id})
	require.NoError(t, err)

	_, err = patchsynth.Generate(files, sels, patchsynth.Options{})
	require.ErrorContains(t, err, "binary")
}
