package diffmodel

import "fmt"

// Hunk is one contiguous changed region inside a FileChange.
type Hunk struct {
	// ID is the 7-hex (or longer, on collision) content-addressed
	// fingerprint of this hunk within the view it was parsed from.
	ID string

	// OldStart, OldLines, NewStart, NewLines mirror the unified-diff
	// hunk header "@@ -OldStart,OldLines +NewStart,NewLines @@".
	OldStart int
	OldLines int
	NewStart int
	NewLines int

	// Section is the optional trailing section heading on the @@ line.
	Section string

	// Lines is the ordered body of the hunk, intrinsic-numbered.
	Lines []HunkLine
}

// Header renders the "@@ ... @@" line for this hunk.
func (h *Hunk) Header() string {
	header := fmt.Sprintf(
		"@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines,
	)
	if h.Section != "" {
		header += " " + h.Section
	}

	return header
}

// Stats returns the number of added and deleted lines in the hunk.
func (h *Hunk) Stats() (added, deleted int) {
	for _, line := range h.Lines {
		switch line.Op {
		case OpAdd:
			added++
		case OpDelete:
			deleted++
		}
	}

	return added, deleted
}

// LineCount returns the number of intrinsic lines in the hunk's body.
func (h *Hunk) LineCount() int {
	return len(h.Lines)
}

// AssignIntrinsicNumbers fills in the Intrinsic field for every line in
// body order, 1-based. Called once after parsing, before fingerprints
// are computed (the fingerprint body includes the same bytes regardless
// of this numbering, so order is not load-bearing for identity, only
// for addressing).
func (h *Hunk) AssignIntrinsicNumbers() {
	for i := range h.Lines {
		h.Lines[i].Intrinsic = i + 1
	}
}

// RawBody reconstructs the exact marker+text+newline bytes of the
// hunk's body, the input to the fingerprint function.
func (h *Hunk) RawBody() []byte {
	var out []byte

	for _, line := range h.Lines {
		out = append(out, line.Op.Marker())
		out = append(out, line.Content...)
		out = append(out, '\n')

		if line.NoNewlineAtEOF {
			out = append(out, "\\ No newline at end of file\n"...)
		}
	}

	return out
}

// LineAt returns the line with the given intrinsic number, or false if
// out of range.
func (h *Hunk) LineAt(n int) (HunkLine, bool) {
	if n < 1 || n > len(h.Lines) {
		return HunkLine{}, false
	}

	return h.Lines[n-1], true
}
