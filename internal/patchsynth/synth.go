// Package patchsynth builds standalone patches from a set of resolved
// hunk selections, suitable for `git apply`.
package patchsynth

import (
	"bytes"
	"fmt"

	"github.com/roasbeef/git-surgeon/internal/diffmodel"
	"github.com/roasbeef/git-surgeon/internal/selector"
)

// Options controls how a patch is synthesized.
type Options struct {
	// Reverse, when true, swaps add/delete roles on every emitted
	// line and the old/new halves of every hunk header, producing a
	// patch that undoes the original change when applied forward.
	Reverse bool
}

// bySelection indexes selections by the hunk they resolve, so
// Generate can look one up per hunk while walking files in their
// original order.
type bySelection map[*diffmodel.Hunk]*selector.Selection

// Generate builds a unified-diff patch containing only the selected
// lines from each file's hunks. A file with no selected hunks is
// omitted entirely. A binary file with any selected hunk is refused
// with an error; a binary file with no selection is skipped.
func Generate(files []*diffmodel.FileChange, sels []*selector.Selection, opts Options) ([]byte, error) {
	bySel := make(bySelection, len(sels))
	for _, s := range sels {
		bySel[s.Hunk] = s
	}

	var buf bytes.Buffer

	for _, f := range files {
		if f.IsBinary {
			if hasSelectionIn(f, bySel) {
				return nil, fmt.Errorf(
					"cannot synthesize a partial patch for binary file %q", f.Path(),
				)
			}

			continue
		}

		var fileHunks []*diffmodel.Hunk

		for _, h := range f.Hunks {
			sel, ok := bySel[h]
			if !ok {
				continue
			}

			built := buildHunk(h, sel, opts.Reverse)
			if built != nil {
				fileHunks = append(fileHunks, built)
			}
		}

		if len(fileHunks) == 0 {
			continue
		}

		writeFileHeader(&buf, f, opts.Reverse)

		for _, h := range fileHunks {
			buf.WriteString(h.Header())
			buf.WriteByte('\n')
			buf.Write(h.RawBody())
		}
	}

	return buf.Bytes(), nil
}

func hasSelectionIn(f *diffmodel.FileChange, bySel bySelection) bool {
	for _, h := range f.Hunks {
		if _, ok := bySel[h]; ok {
			return true
		}
	}

	return false
}

func writeFileHeader(buf *bytes.Buffer, f *diffmodel.FileChange, reverse bool) {
	oldPath, newPath := "a/"+f.OldPath, "b/"+f.NewPath

	if reverse {
		oldPath, newPath = newPath, oldPath
	}

	fmt.Fprintf(buf, "--- %s\n", oldPath)
	fmt.Fprintf(buf, "+++ %s\n", newPath)
}

// buildHunk applies the selection rules to a single hunk:
//
//  1. A selected add line is kept as an add.
//  2. A selected delete line is kept as a delete.
//  3. An unselected delete line is demoted to context (its removal
//     did not happen, from the patch's point of view).
//  4. An unselected add line is omitted entirely (it was never
//     introduced).
//
// With reverse set, add/delete roles (and the old/new halves of the
// header) are swapped before these rules run, so the result applies
// to the new side of the original hunk.
//
// Exactly one output hunk is produced per input hunk; this never
// splits a hunk even when the selection is non-contiguous, since a
// single demote/omit pass already yields a hunk valid for git apply.
func buildHunk(h *diffmodel.Hunk, sel *selector.Selection, reverse bool) *diffmodel.Hunk {
	if reverse {
		swapped := *h
		swapped.Lines = append([]diffmodel.HunkLine(nil), h.Lines...)
		reverseHunk(&swapped)
		h = &swapped
	}

	out := &diffmodel.Hunk{
		ID:      h.ID,
		Section: h.Section,
	}

	oldLine := h.OldStart
	newLine := h.NewStart

	for _, line := range h.Lines {
		selected := sel.Contains(line.Intrinsic)

		switch {
		case line.Op == diffmodel.OpContext:
			out.Lines = append(out.Lines, diffmodel.HunkLine{
				Op: diffmodel.OpContext, Content: line.Content,
				OldLineNum: oldLine, NewLineNum: newLine,
				NoNewlineAtEOF: line.NoNewlineAtEOF,
			})
			oldLine++
			newLine++

		case line.Op == diffmodel.OpAdd && selected:
			out.Lines = append(out.Lines, diffmodel.HunkLine{
				Op: diffmodel.OpAdd, Content: line.Content,
				NewLineNum: newLine, NoNewlineAtEOF: line.NoNewlineAtEOF,
			})
			newLine++

		case line.Op == diffmodel.OpAdd && !selected:
			// Rule 4: omit entirely.

		case line.Op == diffmodel.OpDelete && selected:
			out.Lines = append(out.Lines, diffmodel.HunkLine{
				Op: diffmodel.OpDelete, Content: line.Content,
				OldLineNum: oldLine, NoNewlineAtEOF: line.NoNewlineAtEOF,
			})
			oldLine++

		case line.Op == diffmodel.OpDelete && !selected:
			// Rule 3: demote to context.
			out.Lines = append(out.Lines, diffmodel.HunkLine{
				Op: diffmodel.OpContext, Content: line.Content,
				OldLineNum: oldLine, NewLineNum: newLine,
				NoNewlineAtEOF: line.NoNewlineAtEOF,
			})
			oldLine++
			newLine++
		}
	}

	added, deleted := 0, 0
	for _, l := range out.Lines {
		switch l.Op {
		case diffmodel.OpAdd:
			added++
		case diffmodel.OpDelete:
			deleted++
		}
	}

	if added == 0 && deleted == 0 {
		// A selection touching only context lines produces no change;
		// the hunk is dropped rather than emitted as a no-op.
		return nil
	}

	context := len(out.Lines) - added - deleted

	out.OldStart = h.OldStart
	out.OldLines = context + deleted
	out.NewStart = h.NewStart
	out.NewLines = context + added

	return out
}

// reverseHunk swaps add/delete roles on every line and the old/new
// halves of the header, producing a hunk that undoes its forward
// counterpart when applied normally.
func reverseHunk(h *diffmodel.Hunk) {
	for i, line := range h.Lines {
		switch line.Op {
		case diffmodel.OpAdd:
			h.Lines[i].Op = diffmodel.OpDelete
			h.Lines[i].OldLineNum = line.NewLineNum
			h.Lines[i].NewLineNum = 0
		case diffmodel.OpDelete:
			h.Lines[i].Op = diffmodel.OpAdd
			h.Lines[i].NewLineNum = line.OldLineNum
			h.Lines[i].OldLineNum = 0
		case diffmodel.OpContext:
			h.Lines[i].OldLineNum, h.Lines[i].NewLineNum = line.NewLineNum, line.OldLineNum
		}
	}

	h.OldStart, h.NewStart = h.NewStart, h.OldStart
	h.OldLines, h.NewLines = h.NewLines, h.OldLines
}
