// Package diffmodel provides types for parsing and manipulating unified
// diffs at hunk and line granularity, including the content-addressed
// hunk identifiers the rest of the engine selects against.
package diffmodel

import "fmt"

// LineOp represents the kind of change a HunkLine carries.
type LineOp int

const (
	// OpContext indicates an unchanged line present on both sides.
	OpContext LineOp = iota
	// OpAdd indicates a line present only on the new side.
	OpAdd
	// OpDelete indicates a line present only on the old side.
	OpDelete
)

// String returns a human label for the operation.
func (op LineOp) String() string {
	switch op {
	case OpContext:
		return "context"
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Marker returns the unified-diff prefix byte for the operation.
func (op LineOp) Marker() byte {
	switch op {
	case OpAdd:
		return '+'
	case OpDelete:
		return '-'
	default:
		return ' '
	}
}

// HunkLine is a single line inside a Hunk's body.
type HunkLine struct {
	// Op is context, add, or delete.
	Op LineOp

	// Content is the line text, not including the leading marker byte
	// and not including the trailing newline.
	Content string

	// OldLineNum is the 1-based position in the old file. Zero for
	// added lines.
	OldLineNum int

	// NewLineNum is the 1-based position in the new file. Zero for
	// deleted lines.
	NewLineNum int

	// Intrinsic is the 1-based position of this line within the
	// hunk's body, counting context, removed, and added lines alike.
	// This is the address users type after the colon in ID:range.
	Intrinsic int

	// NoNewlineAtEOF is true when this line is immediately followed in
	// the raw diff by a "\ No newline at end of file" marker.
	NoNewlineAtEOF bool
}

// IsChange reports whether the line is an addition or deletion.
func (l HunkLine) IsChange() bool {
	return l.Op == OpAdd || l.Op == OpDelete
}

// String renders the line in unified-diff form, without a trailing
// newline.
func (l HunkLine) String() string {
	s := string(l.Op.Marker()) + l.Content
	if l.NoNewlineAtEOF {
		s += "\n\\ No newline at end of file"
	}

	return s
}

// Format renders the line prefixed with its intrinsic line number for
// human-readable listings, in the style of `hunks --full`.
func (l HunkLine) Format() string {
	return fmt.Sprintf("%d:%c%s", l.Intrinsic, l.Op.Marker(), l.Content)
}
