package diffmodel

// ChangeKind classifies what happened to a file between the two sides
// of a diff view.
type ChangeKind int

const (
	// Modified is the default: the file exists on both sides with
	// different content.
	Modified ChangeKind = iota
	// Added means the file exists only on the new side.
	Added
	// Deleted means the file exists only on the old side.
	Deleted
	// Renamed means the file moved between old and new paths.
	Renamed
	// Copied means the file is a copy recorded with a rename-style
	// header but an independent old file.
	Copied
)

// nonExistentPath is the sentinel the underlying diff oracle uses for
// the missing side of an added/deleted file. It must never leak into
// user-facing output; FileChange.Path and FileChange.DisplayOldPath
// translate it away.
const nonExistentPath = "/dev/null"

// FileChange is one path's worth of changes in a diff view.
type FileChange struct {
	// OldPath and NewPath are the pre- and post-image paths. They are
	// equal unless the change is a rename or copy.
	OldPath string
	NewPath string

	ChangeKind ChangeKind

	// Hunks is the ordered sequence of changed regions.
	Hunks []*Hunk

	// IsBinary is true when the underlying diff oracle reported this
	// file as a binary change; hunk bodies are then empty and any
	// attempt to synthesize a subset patch must be refused.
	IsBinary bool
}

// Path returns the canonical, user-facing path for this file change:
// the new path for everything except pure deletions, where the old
// path is the only one that still means anything to a human.
func (f *FileChange) Path() string {
	if f.ChangeKind == Deleted {
		return f.OldPath
	}

	return f.NewPath
}

// DisplayOldPath returns the old path with the non-existent sentinel
// translated to empty, for listings that want to show "(new file)"
// instead of leaking /dev/null.
func (f *FileChange) DisplayOldPath() string {
	if f.OldPath == nonExistentPath {
		return ""
	}

	return f.OldPath
}

// Stats sums additions and deletions across all hunks.
func (f *FileChange) Stats() (added, deleted int) {
	for _, h := range f.Hunks {
		a, d := h.Stats()
		added += a
		deleted += d
	}

	return added, deleted
}

// HunkByID returns the hunk with the given ID, or nil.
func (f *FileChange) HunkByID(id string) *Hunk {
	for _, h := range f.Hunks {
		if h.ID == id {
			return h
		}
	}

	return nil
}
