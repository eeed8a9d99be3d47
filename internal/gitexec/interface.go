// Package gitexec provides an abstraction layer over the git binary.
// This enables testing without actual git repositories.
package gitexec

import (
	"context"
	"io"
	"time"
)

// EmptyTree is the hash of git's canonical empty tree object, used as
// the diff base for a root commit (one with no parent).
const EmptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Executor abstracts git operations for testability.
type Executor interface {
	// Diff returns the unified diff for unstaged changes.
	Diff(ctx context.Context, paths ...string) (string, error)

	// DiffCached returns the unified diff for staged changes.
	DiffCached(ctx context.Context, paths ...string) (string, error)

	// DiffCommit returns the unified diff between a commit and its
	// first parent (or the empty tree, if the commit is a root).
	DiffCommit(ctx context.Context, commit string, paths ...string) (string, error)

	// Apply applies a forward patch either to the index (cached) or
	// to the working tree. Every reversal (undo, unstage, discard) is
	// handled by asking the Patch Synthesiser for a reverse patch and
	// applying it here as an ordinary forward patch.
	Apply(ctx context.Context, patch io.Reader, cached bool) error

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// CommitWithIdentity creates a commit preserving a specific
	// author and date, used by squash to keep the oldest commit's
	// identity.
	CommitWithIdentity(ctx context.Context, message, author string, date time.Time) error

	// AmendStagedNoEdit amends HEAD with whatever is currently
	// staged, keeping the existing commit message.
	AmendStagedNoEdit(ctx context.Context) error

	// AmendMessage rewrites HEAD's message without touching its tree.
	AmendMessage(ctx context.Context, message string) error

	// AddAll stages every change in the working tree, untracked files
	// included.
	AddAll(ctx context.Context) error

	// Reset unstages all staged changes.
	Reset(ctx context.Context) error

	// ResetPath unstages changes for a specific path.
	ResetPath(ctx context.Context, path string) error

	// ResetSoft moves HEAD to ref, leaving index and working tree
	// untouched.
	ResetSoft(ctx context.Context, ref string) error

	// ResetMixed moves HEAD and the index to ref, leaving the
	// working tree untouched.
	ResetMixed(ctx context.Context, ref string) error

	// Status returns the current repository status.
	Status(ctx context.Context) (*RepoStatus, error)

	// Root returns the repository root directory.
	Root(ctx context.Context) (string, error)

	// IsClean reports whether the working tree and index are free
	// of any uncommitted changes.
	IsClean(ctx context.Context) (bool, error)

	// ResolveCommit resolves a revision expression to a full commit
	// hash.
	ResolveCommit(ctx context.Context, rev string) (string, error)

	// ParentOf returns the first parent of a commit, or ("", nil) if
	// the commit is a root commit.
	ParentOf(ctx context.Context, commit string) (string, error)

	// IsAncestor reports whether ancestor is reachable from descendant.
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)

	// HasMergeCommit reports whether any commit in the open range
	// (from, to] is a merge commit.
	HasMergeCommit(ctx context.Context, from, to string) (bool, error)

	// CommitInfo returns metadata about a single commit.
	CommitInfo(ctx context.Context, rev string) (*CommitInfo, error)

	// BlameLine returns the commit hash that last touched the given
	// 1-based line of path as of rev.
	BlameLine(ctx context.Context, rev, path string, line int) (string, error)

	// Stash stashes all tracked and untracked changes, returning true
	// if anything was stashed.
	Stash(ctx context.Context) (bool, error)

	// StashPop restores the most recent stash entry.
	StashPop(ctx context.Context) error

	// RebaseList returns commits that would be rebased onto the given base.
	RebaseList(ctx context.Context, base string) ([]CommitInfo, error)

	// RebaseStart begins an interactive rebase with a custom sequence
	// editor, optionally with autosquash enabled. gitEditor overrides
	// GIT_EDITOR for commit-message prompts (reword/squash stops); an
	// empty string defaults to "cat", which accepts whatever message
	// git proposes unchanged.
	RebaseStart(ctx context.Context, base, sequenceEditor string, autosquash bool, gitEditor string) error

	// RebaseStatus returns the current rebase state.
	RebaseStatus(ctx context.Context) (*RebaseState, error)

	// RebaseContinue continues an in-progress rebase.
	RebaseContinue(ctx context.Context) error

	// RebaseAbort aborts an in-progress rebase.
	RebaseAbort(ctx context.Context) error

	// RebaseSkip skips the current commit during rebase.
	RebaseSkip(ctx context.Context) error
}

// RepoStatus represents the current state of the repository.
type RepoStatus struct {
	StagedFiles    []string
	UnstagedFiles  []string
	UntrackedFiles []string
}

// CommitInfo contains metadata about a commit.
type CommitInfo struct {
	Hash      string
	ShortHash string
	Subject   string
	Author    string
	Date      time.Time
}

// RebaseStateType indicates the current state of a rebase operation.
type RebaseStateType string

const (
	RebaseStateNone     RebaseStateType = "none"
	RebaseStateNormal   RebaseStateType = "normal"
	RebaseStateConflict RebaseStateType = "conflict"
	RebaseStateEdit     RebaseStateType = "edit"
)

// RebaseState represents the current state of an interactive rebase.
type RebaseState struct {
	InProgress     bool
	State          RebaseStateType
	CurrentCommit  *CommitInfo
	CurrentAction  string
	TotalCount     int
	RemainingCount int
	CompletedCount int
	Conflicts      []ConflictInfo
	OriginalBranch string
	OntoRef        string
}

// ConflictInfo describes a file with merge conflicts.
type ConflictInfo struct {
	Path         string
	ConflictType string
}
