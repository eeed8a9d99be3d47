package output

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/roasbeef/git-surgeon/internal/blame"
	"github.com/roasbeef/git-surgeon/internal/diffmodel"
)

// maxLineWidth is the terminal column budget for a body line's
// content in --full/--blame rendering. Content wider than this (in
// display columns, not bytes) is truncated with an ellipsis so a
// single wide-rune-heavy line can't blow out the terminal width.
const maxLineWidth = 120

// TextOptions controls the stable, script-consumed text rendering of
// a view of hunks.
type TextOptions struct {
	// Full prefixes each body line with its 1-based intrinsic line
	// number and prints the hunk body.
	Full bool

	// Blame prefixes each body line with the commit that last
	// touched it and prints the hunk body.
	Blame bool
}

// FormatText writes files in the stable `hunks`/`show` text format:
// one un-indented header line per hunk, optionally followed by
// two-space-indented body lines. annotations supplies per-hunk blame
// data when opts.Blame is set.
func FormatText(
	w io.Writer, files []*diffmodel.FileChange, opts TextOptions,
	annotations map[*diffmodel.Hunk][]blame.Annotation,
) error {
	for _, f := range files {
		for _, h := range f.Hunks {
			added, deleted := h.Stats()

			fmt.Fprintf(w, "%s %s (+%d -%d)\n", h.ID, f.Path(), added, deleted)

			if f.IsBinary || (!opts.Full && !opts.Blame) {
				continue
			}

			var byLine map[int]string
			if opts.Blame {
				byLine = make(map[int]string, len(h.Lines))
				for _, a := range annotations[h] {
					byLine[a.Intrinsic] = a.Hash
				}
			}

			numWidth := len(fmt.Sprintf("%d", h.LineCount()))

			for _, line := range h.Lines {
				if err := writeBodyLine(w, line, opts, byLine, numWidth); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func writeBodyLine(
	w io.Writer, line diffmodel.HunkLine, opts TextOptions, byLine map[int]string, numWidth int,
) error {
	var prefix string

	if opts.Full {
		prefix += fmt.Sprintf("%*d:", numWidth, line.Intrinsic)
	}

	if opts.Blame {
		hash := byLine[line.Intrinsic]
		if hash == "" {
			hash = "0000000"
		}

		prefix += hash + " "
	}

	content := line.String()
	if runewidth.StringWidth(content) > maxLineWidth {
		content = runewidth.Truncate(content, maxLineWidth, "…")
	}

	_, err := fmt.Fprintf(w, "  %s%s\n", prefix, content)

	return err
}
