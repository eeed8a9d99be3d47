// Package view resolves and loads the diff a command should operate
// over: the unstaged working tree, the staged index, or a single
// commit against its parent.
package view

import (
	"context"
	"fmt"

	"github.com/roasbeef/git-surgeon/internal/diffmodel"
	"github.com/roasbeef/git-surgeon/internal/gitexec"
)

// Kind identifies which two repository states a view diffs between.
type Kind int

const (
	// Unstaged diffs the working tree against the index.
	Unstaged Kind = iota
	// Staged diffs the index against HEAD.
	Staged
	// Commit diffs a single commit against its first parent (or the
	// empty tree, for a root commit).
	Commit
)

// Request describes the view a caller wants loaded.
type Request struct {
	Kind   Kind
	Commit string
	Paths  []string
}

// Loaded is a fully parsed, ID-assigned view ready for selection.
type Loaded struct {
	Files []*diffmodel.FileChange

	// OldRev/NewRev are the revisions blame should attribute the old
	// and new sides of each line to (see internal/blame.View).
	OldRev string
	NewRev string
}

// Load resolves req against the repository and returns a parsed,
// ID-assigned view.
func Load(ctx context.Context, exec gitexec.Executor, req Request) (*Loaded, error) {
	switch req.Kind {
	case Unstaged:
		text, err := exec.Diff(ctx, req.Paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to read unstaged diff: %w", err)
		}

		files, err := parse(text)
		if err != nil {
			return nil, err
		}

		return &Loaded{Files: files, OldRev: "HEAD", NewRev: ""}, nil

	case Staged:
		text, err := exec.DiffCached(ctx, req.Paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to read staged diff: %w", err)
		}

		files, err := parse(text)
		if err != nil {
			return nil, err
		}

		return &Loaded{Files: files, OldRev: "HEAD", NewRev: ""}, nil

	case Commit:
		if req.Commit == "" {
			return nil, fmt.Errorf("commit view requires a revision")
		}

		commit, err := exec.ResolveCommit(ctx, req.Commit)
		if err != nil {
			return nil, err
		}

		text, err := exec.DiffCommit(ctx, commit, req.Paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit diff: %w", err)
		}

		files, err := parse(text)
		if err != nil {
			return nil, err
		}

		parent, err := exec.ParentOf(ctx, commit)
		if err != nil {
			return nil, err
		}

		return &Loaded{Files: files, OldRev: parent, NewRev: commit}, nil

	default:
		return nil, fmt.Errorf("unknown view kind %d", req.Kind)
	}
}

func parse(diffText string) ([]*diffmodel.FileChange, error) {
	files, err := diffmodel.Parse(diffText)
	if err != nil {
		return nil, err
	}

	diffmodel.AssignIDs(files)

	return files, nil
}
