package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
)

// requireCleanIndex enforces the commit precondition: no staged
// changes already present.
func requireCleanIndex(ctx context.Context, exec gitexec.Executor) error {
	status, err := exec.Status(ctx)
	if err != nil {
		return err
	}

	if len(status.StagedFiles) > 0 {
		return fmt.Errorf("refusing to commit: staged changes already present in the index")
	}

	return nil
}

// requireCleanTree enforces the split/reword precondition: the
// working tree and index have no uncommitted modifications. Untracked
// files never block.
func requireCleanTree(ctx context.Context, exec gitexec.Executor) error {
	status, err := exec.Status(ctx)
	if err != nil {
		return err
	}

	if len(status.StagedFiles) > 0 || len(status.UnstagedFiles) > 0 {
		return fmt.Errorf("refusing to proceed: working tree is dirty, commit or stash first")
	}

	return nil
}

// stashGuard autostashes the working tree if dirty and returns a
// restore function that must be deferred by the caller. The restore
// function is a no-op if nothing was stashed.
func stashGuard(ctx context.Context, exec gitexec.Executor) (func(context.Context) error, error) {
	stashed, err := exec.Stash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to autostash dirty working tree: %w", err)
	}

	if !stashed {
		return func(context.Context) error { return nil }, nil
	}

	return func(restoreCtx context.Context) error {
		return exec.StashPop(restoreCtx)
	}, nil
}

// requireAncestor enforces that target is a strict, non-identical
// ancestor of HEAD.
func requireAncestor(ctx context.Context, exec gitexec.Executor, target, head string) error {
	if target == head {
		return fmt.Errorf("target %s is HEAD, nothing to squash", target)
	}

	ok, err := exec.IsAncestor(ctx, target, head)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("target %s is not an ancestor of HEAD", target)
	}

	return nil
}

// requireNoMergeCommits refuses a history rewrite across a merge
// commit unless force is set.
func requireNoMergeCommits(
	ctx context.Context, exec gitexec.Executor, from, to string, force bool,
) error {
	if force {
		return nil
	}

	has, err := exec.HasMergeCommit(ctx, from, to)
	if err != nil {
		return err
	}

	if has {
		return fmt.Errorf("refusing to rewrite history across a merge commit in %s..%s", from, to)
	}

	return nil
}

// joinMessages reproduces git's behaviour for repeated -m flags:
// concatenated with exactly one blank line between each.
func joinMessages(messages []string) string {
	return strings.Join(messages, "\n\n")
}
