package diffmodel

import (
	"bytes"
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// Parse parses a unified diff produced by the version-control binary
// into a structured representation. It does not assign hunk IDs: call
// AssignIDs on the result once you know the full view (so collisions
// are resolved per-view, not globally).
func Parse(diffText string) ([]*FileChange, error) {
	if strings.TrimSpace(diffText) == "" {
		return nil, nil
	}

	parsed, err := godiff.ParseMultiFileDiff([]byte(diffText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	files := make([]*FileChange, 0, len(parsed))
	for _, f := range parsed {
		files = append(files, convertFileDiff(f))
	}

	return files, nil
}

func convertFileDiff(f *godiff.FileDiff) *FileChange {
	fc := &FileChange{
		OldPath: stripPrefix(f.OrigName),
		NewPath: stripPrefix(f.NewName),
	}

	switch {
	case f.OrigName == nonExistentPath:
		fc.ChangeKind = Added
	case f.NewName == nonExistentPath:
		fc.ChangeKind = Deleted
	case fc.OldPath != fc.NewPath:
		fc.ChangeKind = Renamed
	default:
		fc.ChangeKind = Modified
	}

	for _, ex := range f.Extended {
		if strings.HasPrefix(ex, "copy from") || strings.HasPrefix(ex, "copy to") {
			fc.ChangeKind = Copied
		}

		if strings.Contains(ex, "Binary files") || strings.Contains(ex, "GIT binary patch") {
			fc.IsBinary = true
		}
	}

	for _, h := range f.Hunks {
		fc.Hunks = append(fc.Hunks, convertHunk(h))
	}

	return fc
}

func convertHunk(h *godiff.Hunk) *Hunk {
	hunk := &Hunk{
		OldStart: int(h.OrigStartLine),
		OldLines: int(h.OrigLines),
		NewStart: int(h.NewStartLine),
		NewLines: int(h.NewLines),
		Section:  h.Section,
	}

	oldLine := hunk.OldStart
	newLine := hunk.NewStart

	// go-diff drops "\ No newline at end of file" lines from Body: an
	// old-side marker is recorded as OrigNoNewlineAt (the Body offset
	// just past the marked line), and a new-side marker by leaving the
	// final line without its trailing newline.
	origNoNewlineAt := int(h.OrigNoNewlineAt)
	newNoNewline := len(h.Body) > 0 && h.Body[len(h.Body)-1] != '\n'
	offset := 0

	rawLines := bytes.Split(h.Body, []byte("\n"))
	for i, raw := range rawLines {
		lineEnd := offset + len(raw) + 1
		offset = lineEnd

		if len(raw) == 0 {
			continue
		}

		if raw[0] == '\\' {
			// "\ No newline at end of file": attaches to the
			// previously emitted line.
			if n := len(hunk.Lines); n > 0 {
				hunk.Lines[n-1].NoNewlineAtEOF = true
			}

			continue
		}

		marker := raw[0]
		content := string(raw[1:])

		var line HunkLine

		switch marker {
		case ' ':
			line = HunkLine{Op: OpContext, Content: content, OldLineNum: oldLine, NewLineNum: newLine}
			oldLine++
			newLine++

		case '+':
			line = HunkLine{Op: OpAdd, Content: content, NewLineNum: newLine}
			newLine++

		case '-':
			line = HunkLine{Op: OpDelete, Content: content, OldLineNum: oldLine}
			oldLine++

		default:
			// go-diff never hands us anything else inside a hunk
			// body; a malformed diff would have failed to parse
			// already. Ignore defensively rather than panic.
			continue
		}

		if (origNoNewlineAt > 0 && lineEnd == origNoNewlineAt) ||
			(newNoNewline && i == len(rawLines)-1) {
			line.NoNewlineAtEOF = true
		}

		hunk.Lines = append(hunk.Lines, line)
	}

	return hunk
}

func stripPrefix(path string) string {
	if strings.HasPrefix(path, "a/") || strings.HasPrefix(path, "b/") {
		return path[2:]
	}

	return path
}
