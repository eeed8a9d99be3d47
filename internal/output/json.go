// Package output renders a view of hunks as the stable text format
// consumed by scripts, or as JSON.
package output

import (
	"encoding/json"
	"io"

	"github.com/roasbeef/git-surgeon/internal/blame"
	"github.com/roasbeef/git-surgeon/internal/diffmodel"
)

// FilesOutput is the top-level JSON shape for a view of hunks.
type FilesOutput struct {
	Files []FileOutput `json:"files"`
}

// FileOutput is one file's worth of hunks in JSON output.
type FileOutput struct {
	Path    string       `json:"path"`
	OldPath string       `json:"old_path,omitempty"`
	Status  string       `json:"status"`
	Binary  bool         `json:"binary,omitempty"`
	Hunks   []HunkOutput `json:"hunks,omitempty"`
}

// HunkOutput is one hunk in JSON output.
type HunkOutput struct {
	ID      string       `json:"id"`
	Header  string       `json:"header"`
	Section string       `json:"section,omitempty"`
	Added   int          `json:"added"`
	Deleted int          `json:"deleted"`
	Lines   []LineOutput `json:"lines,omitempty"`
}

// LineOutput is one hunk line in JSON output.
type LineOutput struct {
	Intrinsic  int    `json:"intrinsic"`
	Op         string `json:"op"`
	Content    string `json:"content"`
	OldLineNum int    `json:"old_line,omitempty"`
	NewLineNum int    `json:"new_line,omitempty"`
	BlameHash  string `json:"blame_hash,omitempty"`
}

// FormatJSON writes files as JSON. annotations, if non-nil, is keyed
// by hunk and adds per-line blame hashes.
func FormatJSON(
	w io.Writer, files []*diffmodel.FileChange,
	annotations map[*diffmodel.Hunk][]blame.Annotation,
) error {
	out := FilesOutput{Files: make([]FileOutput, 0, len(files))}

	for _, f := range files {
		fo := FileOutput{
			Path:    f.Path(),
			OldPath: f.DisplayOldPath(),
			Status:  statusString(f.ChangeKind),
			Binary:  f.IsBinary,
			Hunks:   make([]HunkOutput, 0, len(f.Hunks)),
		}

		if fo.OldPath == fo.Path {
			fo.OldPath = ""
		}

		for _, h := range f.Hunks {
			added, deleted := h.Stats()

			ho := HunkOutput{
				ID:      h.ID,
				Header:  h.Header(),
				Section: h.Section,
				Added:   added,
				Deleted: deleted,
			}

			var byLine map[int]string
			if ann, ok := annotations[h]; ok {
				byLine = make(map[int]string, len(ann))
				for _, a := range ann {
					byLine[a.Intrinsic] = a.Hash
				}
			}

			for _, line := range h.Lines {
				lo := LineOutput{
					Intrinsic:  line.Intrinsic,
					Op:         line.Op.String(),
					Content:    line.Content,
					OldLineNum: line.OldLineNum,
					NewLineNum: line.NewLineNum,
				}

				if byLine != nil {
					lo.BlameHash = byLine[line.Intrinsic]
				}

				ho.Lines = append(ho.Lines, lo)
			}

			fo.Hunks = append(fo.Hunks, ho)
		}

		out.Files = append(out.Files, fo)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func statusString(kind diffmodel.ChangeKind) string {
	switch kind {
	case diffmodel.Added:
		return "added"
	case diffmodel.Deleted:
		return "deleted"
	case diffmodel.Renamed:
		return "renamed"
	case diffmodel.Copied:
		return "copied"
	default:
		return "modified"
	}
}
