package diffmodel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/git-surgeon/internal/diffmodel"
)

const sampleDiff = `diff --git a/foo.go b/foo.go
index 1111111..2222222 100644
--- a/foo.go
+++ b/foo.go
@@ -1,3 +1,4 @@
 package foo

-func old() {}
+func newFunc() {}
+func extra() {}
`

func TestParseModified(t *testing.T) {
	files, err := diffmodel.Parse(sampleDiff)
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	require.Equal(t, "foo.go", f.Path())
	require.Equal(t, diffmodel.Modified, f.ChangeKind)
	require.Len(t, f.Hunks, 1)

	h := f.Hunks[0]
	added, deleted := h.Stats()
	require.Equal(t, 2, added)
	require.Equal(t, 1, deleted)
	require.Equal(t, 4, h.LineCount())
}

func TestParseEmpty(t *testing.T) {
	files, err := diffmodel.Parse("")
	require.NoError(t, err)
	require.Nil(t, files)
}

func TestParseAddedFile(t *testing.T) {
	diff := `diff --git a/new.txt b/new.txt
new file mode 100644
index 0000000..1111111
--- /dev/null
+++ b/new.txt
@@ -0,0 +1,2 @@
+line one
+line two
`
	files, err := diffmodel.Parse(diff)
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	require.Equal(t, diffmodel.Added, f.ChangeKind)
	require.Equal(t, "new.txt", f.Path())
	require.Empty(t, f.DisplayOldPath())
}

func TestParseDeletedFile(t *testing.T) {
	diff := `diff --git a/gone.txt b/gone.txt
deleted file mode 100644
index 1111111..0000000
--- a/gone.txt
+++ /dev/null
@@ -1,2 +0,0 @@
-line one
-line two
`
	files, err := diffmodel.Parse(diff)
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	require.Equal(t, diffmodel.Deleted, f.ChangeKind)
	require.Equal(t, "gone.txt", f.Path())
	require.NotContains(t, f.Path(), "/dev/null")
}

func TestParseNoNewlineAtEOF(t *testing.T) {
	diff := `diff --git a/tail.txt b/tail.txt
index 1111111..2222222 100644
--- a/tail.txt
+++ b/tail.txt
@@ -1 +1 @@
-old
\ No newline at end of file
+new
\ No newline at end of file
`
	files, err := diffmodel.Parse(diff)
	require.NoError(t, err)
	require.Len(t, files, 1)

	h := files[0].Hunks[0]
	require.Len(t, h.Lines, 2)

	for _, l := range h.Lines {
		require.True(t, l.NoNewlineAtEOF)
	}
}

func TestAssignIDsDeterministic(t *testing.T) {
	filesA, err := diffmodel.Parse(sampleDiff)
	require.NoError(t, err)
	diffmodel.AssignIDs(filesA)

	filesB, err := diffmodel.Parse(sampleDiff)
	require.NoError(t, err)
	diffmodel.AssignIDs(filesB)

	require.Equal(t, filesA[0].Hunks[0].ID, filesB[0].Hunks[0].ID)
	require.Len(t, filesA[0].Hunks[0].ID, 7)
}

func TestAssignIDsDistinctContentGetsDistinctIDs(t *testing.T) {
	diff := `diff --git a/a.txt b/a.txt
index 1111111..2222222 100644
--- a/a.txt
+++ b/a.txt
@@ -1 +1 @@
-x
+y
diff --git a/b.txt b/b.txt
index 3333333..4444444 100644
--- a/b.txt
+++ b/b.txt
@@ -1 +1 @@
-p
+q
`
	files, err := diffmodel.Parse(diff)
	require.NoError(t, err)
	require.Len(t, files, 2)

	diffmodel.AssignIDs(files)

	id1 := files[0].Hunks[0].ID
	id2 := files[1].Hunks[0].ID
	require.NotEqual(t, id1, id2)
	require.Len(t, id1, 7)
	require.Len(t, id2, 7)
}
