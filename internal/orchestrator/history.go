package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/patchsynth"
	"github.com/roasbeef/git-surgeon/internal/rebase"
	"github.com/roasbeef/git-surgeon/internal/selector"
	"github.com/roasbeef/git-surgeon/internal/view"
)

// Fixup folds the currently staged changes into target: an amend if
// target is HEAD, otherwise a "fixup!" commit squashed in place by an
// autosquash rebase.
func (o *Orchestrator) Fixup(ctx context.Context, target string) error {
	targetHash, err := o.Exec.ResolveCommit(ctx, target)
	if err != nil {
		return err
	}

	status, err := o.Exec.Status(ctx)
	if err != nil {
		return err
	}

	if len(status.StagedFiles) == 0 {
		return fmt.Errorf("no staged changes to fixup")
	}

	head, err := o.Exec.ResolveCommit(ctx, "HEAD")
	if err != nil {
		return err
	}

	if targetHash == head {
		return o.Exec.AmendStagedNoEdit(ctx)
	}

	// The staged changes become the fixup commit; anything still
	// unstaged would make the rebase refuse to start.
	unstaged, err := o.Exec.Diff(ctx)
	if err != nil {
		return err
	}

	if unstaged != "" {
		return fmt.Errorf("refusing to proceed: working tree is dirty, commit or stash first")
	}

	info, err := o.Exec.CommitInfo(ctx, targetHash)
	if err != nil {
		return err
	}

	base, err := rebaseBase(ctx, o.Exec, targetHash)
	if err != nil {
		return err
	}

	if err := requireNoMergeCommits(ctx, o.Exec, base, head, false); err != nil {
		return err
	}

	if err := o.Exec.Commit(ctx, "fixup! "+info.Subject); err != nil {
		return err
	}

	if err := o.Exec.RebaseStart(ctx, base, "true", true, ""); err != nil {
		return o.abortOnFailure(ctx, err)
	}

	return o.requireRebaseClean(ctx)
}

// Reword replaces target's commit message, preserving every other
// commit in the range verbatim.
func (o *Orchestrator) Reword(ctx context.Context, target string, messages []string) error {
	targetHash, err := o.Exec.ResolveCommit(ctx, target)
	if err != nil {
		return err
	}

	message := joinMessages(messages)

	head, err := o.Exec.ResolveCommit(ctx, "HEAD")
	if err != nil {
		return err
	}

	if targetHash == head {
		return o.Exec.AmendMessage(ctx, message)
	}

	if err := requireCleanTree(ctx, o.Exec); err != nil {
		return err
	}

	base, err := rebaseBase(ctx, o.Exec, targetHash)
	if err != nil {
		return err
	}

	if err := requireNoMergeCommits(ctx, o.Exec, base, head, false); err != nil {
		return err
	}

	commits, err := o.Exec.RebaseList(ctx, base)
	if err != nil {
		return err
	}

	spec := &rebase.Spec{}
	for _, c := range commits {
		action := rebase.ActionPick
		if c.Hash == targetHash {
			action = rebase.ActionReword
		}

		spec.Actions = append(spec.Actions, rebase.Action{Type: action, Commit: c.Hash})
	}

	msgFile, cleanupMsg, err := writeTempFile("git-surgeon-reword-msg-*", message)
	if err != nil {
		return err
	}
	defer cleanupMsg()

	gitEditor, err := o.buildSetMessageEditor(msgFile)
	if err != nil {
		return err
	}

	seqEditor, cleanupSpec, err := o.writeSpecEditor(spec)
	if err != nil {
		return err
	}
	defer cleanupSpec()

	if err := o.Exec.RebaseStart(ctx, base, seqEditor, false, gitEditor); err != nil {
		return o.abortOnFailure(ctx, err)
	}

	return o.requireRebaseClean(ctx)
}

// Squash combines every commit in (target, HEAD] into one commit
// rooted at target, preserving the oldest squashed commit's identity
// unless noPreserveAuthor is set.
func (o *Orchestrator) Squash(
	ctx context.Context, target string, messages []string, force, noPreserveAuthor bool,
) error {
	targetHash, err := o.Exec.ResolveCommit(ctx, target)
	if err != nil {
		return err
	}

	head, err := o.Exec.ResolveCommit(ctx, "HEAD")
	if err != nil {
		return err
	}

	if err := requireAncestor(ctx, o.Exec, targetHash, head); err != nil {
		return err
	}

	if err := requireNoMergeCommits(ctx, o.Exec, targetHash, head, force); err != nil {
		return err
	}

	restore, err := stashGuard(ctx, o.Exec)
	if err != nil {
		return err
	}
	defer restore(ctx)

	commits, err := o.Exec.RebaseList(ctx, targetHash)
	if err != nil {
		return err
	}

	if len(commits) == 0 {
		return fmt.Errorf("no commits found after %s to squash", targetHash)
	}

	oldest := commits[0]

	if err := o.Exec.ResetSoft(ctx, targetHash); err != nil {
		return err
	}

	message := joinMessages(messages)

	if noPreserveAuthor {
		return o.Exec.Commit(ctx, message)
	}

	return o.Exec.CommitWithIdentity(ctx, message, oldest.Author, oldest.Date)
}

// PickGroup is one --pick/--message pair resolved against target's
// original diff, prior to any history rewriting.
type PickGroup struct {
	Tokens  []string
	Message string
}

// Split replays target's original diff as one commit per PickGroup,
// in order, plus an optional rest commit for anything left over.
func (o *Orchestrator) Split(
	ctx context.Context, target string, groups []PickGroup, restMessage string,
) error {
	if err := requireCleanTree(ctx, o.Exec); err != nil {
		return err
	}

	targetHash, err := o.Exec.ResolveCommit(ctx, target)
	if err != nil {
		return err
	}

	head, err := o.Exec.ResolveCommit(ctx, "HEAD")
	if err != nil {
		return err
	}

	if err := requireNoMergeCommits(ctx, o.Exec, targetHash, head, false); err != nil {
		return err
	}

	loaded, err := view.Load(ctx, o.Exec, view.Request{Kind: view.Commit, Commit: targetHash})
	if err != nil {
		return err
	}

	patches := make([][]byte, 0, len(groups))
	allSels := make([][]*selector.Selection, 0, len(groups))

	for _, g := range groups {
		sels, err := selector.Resolve(loaded.Files, g.Tokens)
		if err != nil {
			return err
		}

		patch, err := patchsynth.Generate(loaded.Files, sels, patchsynth.Options{})
		if err != nil {
			return err
		}

		if len(patch) == 0 {
			return fmt.Errorf("pick group matched no changes")
		}

		patches = append(patches, patch)
		allSels = append(allSels, sels)
	}

	if err := selector.RequireDisjoint(allSels); err != nil {
		return err
	}

	parent, err := o.Exec.ParentOf(ctx, targetHash)
	if err != nil {
		return err
	}

	base := parent
	if base == "" {
		base = "--root"
	}

	commits, err := o.Exec.RebaseList(ctx, base)
	if err != nil {
		return err
	}

	spec := &rebase.Spec{}
	for _, c := range commits {
		action := rebase.ActionPick
		if c.Hash == targetHash {
			action = rebase.ActionEdit
		}

		spec.Actions = append(spec.Actions, rebase.Action{Type: action, Commit: c.Hash})
	}

	seqEditor, cleanupSpec, err := o.writeSpecEditor(spec)
	if err != nil {
		return err
	}
	defer cleanupSpec()

	if err := o.Exec.RebaseStart(ctx, base, seqEditor, false, ""); err != nil {
		return o.abortOnFailure(ctx, err)
	}

	state, err := o.Exec.RebaseStatus(ctx)
	if err != nil {
		return err
	}

	if state.State == gitexec.RebaseStateConflict {
		return fmt.Errorf("rebase stopped due to conflicts before reaching split target")
	}

	if err := o.Exec.ResetMixed(ctx, parentRef(parent)); err != nil {
		return o.abortOnFailure(ctx, err)
	}

	for i, patch := range patches {
		if err := o.Exec.Apply(ctx, bytes.NewReader(patch), true); err != nil {
			return o.abortOnFailure(ctx, err)
		}

		if err := o.Exec.Commit(ctx, groups[i].Message); err != nil {
			return o.abortOnFailure(ctx, err)
		}
	}

	clean, err := o.Exec.IsClean(ctx)
	if err != nil {
		return o.abortOnFailure(ctx, err)
	}

	if !clean {
		if restMessage == "" {
			restMessage = targetSubjectFallback(ctx, o.Exec, targetHash)
		}

		if err := o.Exec.AddAll(ctx); err != nil {
			return o.abortOnFailure(ctx, err)
		}

		if err := o.Exec.Commit(ctx, restMessage); err != nil {
			return o.abortOnFailure(ctx, err)
		}
	}

	if err := o.Exec.RebaseContinue(ctx); err != nil {
		return o.abortOnFailure(ctx, err)
	}

	return o.requireRebaseClean(ctx)
}

// targetSubjectFallback resolves the original commit's subject to use
// as the rest commit's message when no --rest-message was supplied.
func targetSubjectFallback(ctx context.Context, exec gitexec.Executor, target string) string {
	info, err := exec.CommitInfo(ctx, target)
	if err != nil {
		return "split remainder"
	}

	return info.Subject
}

func parentRef(parent string) string {
	if parent == "" {
		return gitexec.EmptyTree
	}

	return parent
}

// Undo reverse-applies the selected region of a commit's diff to the
// working tree. No history is rewritten.
func (o *Orchestrator) Undo(ctx context.Context, from string, tokens []string) error {
	return o.undoFrom(ctx, from, tokens)
}

// UndoFile reverse-applies every hunk of path in commit "from" to the
// working tree.
func (o *Orchestrator) UndoFile(ctx context.Context, from, path string) error {
	loaded, err := view.Load(ctx, o.Exec, view.Request{Kind: view.Commit, Commit: from, Paths: []string{path}})
	if err != nil {
		return err
	}

	if len(loaded.Files) == 0 {
		return fmt.Errorf("file %q was not changed in %s", path, from)
	}

	var tokens []string
	for _, f := range loaded.Files {
		for _, h := range f.Hunks {
			tokens = append(tokens, h.ID)
		}
	}

	sels, err := selector.Resolve(loaded.Files, tokens)
	if err != nil {
		return err
	}

	patch, err := patchsynth.Generate(loaded.Files, sels, patchsynth.Options{Reverse: true})
	if err != nil {
		return err
	}

	return o.Exec.Apply(ctx, bytes.NewReader(patch), false)
}

func (o *Orchestrator) undoFrom(ctx context.Context, from string, tokens []string) error {
	loaded, err := view.Load(ctx, o.Exec, view.Request{Kind: view.Commit, Commit: from})
	if err != nil {
		return err
	}

	sels, err := selector.Resolve(loaded.Files, tokens)
	if err != nil {
		return err
	}

	patch, err := patchsynth.Generate(loaded.Files, sels, patchsynth.Options{Reverse: true})
	if err != nil {
		return err
	}

	return o.Exec.Apply(ctx, bytes.NewReader(patch), false)
}

// rebaseBase resolves the rebase root for a rewrite targeting commit:
// its parent, or "--root" when commit has none.
func rebaseBase(ctx context.Context, exec gitexec.Executor, commit string) (string, error) {
	parent, err := exec.ParentOf(ctx, commit)
	if err != nil {
		return "", err
	}

	if parent == "" {
		return "--root", nil
	}

	return parent, nil
}

// abortOnFailure aborts an in-progress rebase (if any) before
// surfacing the original error. It does not touch the stash.
func (o *Orchestrator) abortOnFailure(ctx context.Context, original error) error {
	state, err := o.Exec.RebaseStatus(ctx)
	if err == nil && state.InProgress {
		_ = o.Exec.RebaseAbort(ctx)
	}

	return original
}

// requireRebaseClean returns an error describing a stopped rebase
// (conflict or unexpected edit stop) instead of silently succeeding.
func (o *Orchestrator) requireRebaseClean(ctx context.Context) error {
	state, err := o.Exec.RebaseStatus(ctx)
	if err != nil {
		return err
	}

	if !state.InProgress {
		return nil
	}

	if state.State == gitexec.RebaseStateConflict {
		return fmt.Errorf("rebase paused due to conflicts; resolve and rerun git rebase --continue")
	}

	return fmt.Errorf("rebase did not complete: %d commits remaining", state.RemainingCount)
}

// writeSpecEditor serializes spec to a temp file and returns the
// GIT_SEQUENCE_EDITOR command that re-invokes this binary's hidden
// apply-spec subcommand against it, plus a cleanup function.
func (o *Orchestrator) writeSpecEditor(spec *rebase.Spec) (string, func(), error) {
	data, err := spec.Marshal()
	if err != nil {
		return "", nil, fmt.Errorf("failed to serialize rebase spec: %w", err)
	}

	path, cleanup, err := writeTempFile("git-surgeon-rebase-spec-*.json", string(data))
	if err != nil {
		return "", nil, err
	}

	self, err := os.Executable()
	if err != nil {
		cleanup()

		return "", nil, fmt.Errorf("failed to resolve own executable path: %w", err)
	}

	return fmt.Sprintf("%s rebase _apply-spec %s", self, path), cleanup, nil
}

// buildSetMessageEditor returns the GIT_EDITOR command that
// re-invokes this binary's hidden set-message subcommand to overwrite
// whatever commit-message file git hands it with msgFile's contents.
func (o *Orchestrator) buildSetMessageEditor(msgFile string) (string, error) {
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to resolve own executable path: %w", err)
	}

	return fmt.Sprintf("%s rebase _set-message %s", self, msgFile), nil
}

func writeTempFile(pattern, content string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	path := f.Name()

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(path)

		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	f.Close()

	return path, func() { os.Remove(path) }, nil
}

// ApplyRebaseSpec is invoked by the hidden `rebase _apply-spec`
// command: it reads spec from specFile and rewrites todoFile to
// match. The caller always builds spec from the full commit range
// (via RebaseList), so every todo entry is accounted for explicitly.
func ApplyRebaseSpec(specFile, todoFile string) error {
	specData, err := os.ReadFile(specFile)
	if err != nil {
		return fmt.Errorf("failed to read rebase spec: %w", err)
	}

	spec, err := rebase.ParseSpec(specData)
	if err != nil {
		return err
	}

	todoData, err := os.ReadFile(todoFile)
	if err != nil {
		return fmt.Errorf("failed to read rebase todo: %w", err)
	}

	original := rebase.ParseTodoFile(string(todoData))
	if len(original) == 0 {
		return fmt.Errorf("no commits found in rebase todo")
	}

	if err := spec.ValidateAgainstCommits(original); err != nil {
		return err
	}

	entries, err := rebase.ReorderToMatchSpec(spec, original)
	if err != nil {
		return err
	}

	return os.WriteFile(todoFile, []byte(rebase.GenerateTodoFromEntries(entries)), 0o600)
}

// SetMessage is invoked by the hidden `rebase _set-message` command:
// it overwrites targetFile (the commit-message file git is asking an
// editor to edit) with the contents of sourceFile.
func SetMessage(sourceFile, targetFile string) error {
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return fmt.Errorf("failed to read message source: %w", err)
	}

	return os.WriteFile(targetFile, data, 0o600)
}
