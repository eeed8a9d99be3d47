package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/git-surgeon/internal/blame"
	"github.com/roasbeef/git-surgeon/internal/diffmodel"
	"github.com/roasbeef/git-surgeon/internal/output"
)

func TestFormatJSONShape(t *testing.T) {
	files := parseAndID(t, sampleDiff)

	var buf bytes.Buffer
	require.NoError(t, output.FormatJSON(&buf, files, nil))

	var decoded output.FilesOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Files, 1)
	f := decoded.Files[0]
	require.Equal(t, "f.txt", f.Path)
	require.Empty(t, f.OldPath)
	require.Equal(t, "modified", f.Status)
	require.Len(t, f.Hunks, 1)

	h := f.Hunks[0]
	require.Equal(t, 1, h.Added)
	require.Equal(t, 1, h.Deleted)
	require.Len(t, h.Lines, 3)
	require.Equal(t, "delete", h.Lines[0].Op)
	require.Equal(t, "old", h.Lines[0].Content)
	require.Equal(t, "add", h.Lines[1].Op)
	require.Equal(t, "context", h.Lines[2].Op)
}

func TestFormatJSONIncludesBlameHashes(t *testing.T) {
	files := parseAndID(t, sampleDiff)
	h := files[0].Hunks[0]

	annotations := map[*diffmodel.Hunk][]blame.Annotation{
		h: {{Intrinsic: 1, Hash: "abc1234"}},
	}

	var buf bytes.Buffer
	require.NoError(t, output.FormatJSON(&buf, files, annotations))

	var decoded output.FilesOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Equal(t, "abc1234", decoded.Files[0].Hunks[0].Lines[0].BlameHash)
	require.Empty(t, decoded.Files[0].Hunks[0].Lines[1].BlameHash)
}

func TestFormatJSONAddedFileHasNoOldPath(t *testing.T) {
	diff := `diff --git a/new.txt b/new.txt
new file mode 100644
index 0000000..1111111
--- /dev/null
+++ b/new.txt
@@ -0,0 +1,1 @@
+hello
`
	files := parseAndID(t, diff)

	var buf bytes.Buffer
	require.NoError(t, output.FormatJSON(&buf, files, nil))

	var decoded output.FilesOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Equal(t, "added", decoded.Files[0].Status)
	require.Empty(t, decoded.Files[0].OldPath)
	require.NotContains(t, buf.String(), "/dev/null")
}
