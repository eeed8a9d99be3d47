// Package blame annotates hunk lines with the commit that last
// touched them, resolved by line position rather than content
// pattern-matching so hash-like file content never confuses it.
package blame

import (
	"context"
	"fmt"

	"github.com/roasbeef/git-surgeon/internal/diffmodel"
	"github.com/roasbeef/git-surgeon/internal/gitexec"
)

// uncommittedHash is the placeholder used for lines that only exist
// in the working tree or index, with no commit to blame yet.
const uncommittedHash = "0000000"

// View describes which two git states a diff was produced between,
// so the annotator knows which revision to blame for each side.
type View struct {
	// OldRev is the revision to blame for context/deleted lines. For
	// an uncommitted view this is typically "HEAD"; for a commit view
	// it is the commit's parent (or empty, for a root commit).
	OldRev string

	// NewRev is the revision attributed to added lines when the view
	// is already committed. Empty for an uncommitted (working tree or
	// staged) view, in which case added lines get uncommittedHash.
	NewRev string
}

// Annotation pairs a hunk line's intrinsic position with the commit
// hash responsible for it.
type Annotation struct {
	Intrinsic int
	Hash      string
}

// Annotate blames every line of a single hunk within file, returning
// one Annotation per line in intrinsic order.
func Annotate(
	ctx context.Context, exec gitexec.Executor, view View,
	file *diffmodel.FileChange, hunk *diffmodel.Hunk,
) ([]Annotation, error) {
	out := make([]Annotation, 0, len(hunk.Lines))

	for _, line := range hunk.Lines {
		var (
			hash string
			err  error
		)

		switch line.Op {
		case diffmodel.OpAdd:
			if view.NewRev == "" {
				hash = uncommittedHash
			} else {
				hash, err = exec.BlameLine(ctx, view.NewRev, file.Path(), line.NewLineNum)
			}

		case diffmodel.OpDelete, diffmodel.OpContext:
			if view.OldRev == "" {
				// Root commit: the old side never existed.
				hash = uncommittedHash
			} else {
				hash, err = exec.BlameLine(ctx, view.OldRev, file.DisplayOldPath(), line.OldLineNum)
			}
		}

		if err != nil {
			return nil, fmt.Errorf(
				"failed to blame %s line %d: %w", file.Path(), line.Intrinsic, err,
			)
		}

		out = append(out, Annotation{Intrinsic: line.Intrinsic, Hash: hash})
	}

	return out, nil
}
