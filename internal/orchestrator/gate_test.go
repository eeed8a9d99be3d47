package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/testutil"
)

func newRepoExecutor(t *testing.T) (*testutil.GitTestRepo, gitexec.Executor) {
	t.Helper()

	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "one\ntwo\n")
	repo.CommitAll("initial")

	return repo, gitexec.NewShellExecutor(repo.Dir)
}

func TestRequireCleanIndexPassesOnCleanRepo(t *testing.T) {
	_, exec := newRepoExecutor(t)
	require.NoError(t, requireCleanIndex(context.Background(), exec))
}

func TestRequireCleanIndexFailsWithStagedChanges(t *testing.T) {
	repo, exec := newRepoExecutor(t)

	repo.WriteFile("a.txt", "one\ntwo\nthree\n")
	repo.StageFile("a.txt")

	err := requireCleanIndex(context.Background(), exec)
	require.ErrorContains(t, err, "staged changes")
}

func TestRequireCleanTreeFailsOnUnstagedModification(t *testing.T) {
	repo, exec := newRepoExecutor(t)

	repo.WriteFile("a.txt", "one\ntwo\nthree\n")

	err := requireCleanTree(context.Background(), exec)
	require.ErrorContains(t, err, "dirty")
}

func TestRequireCleanTreeIgnoresUntrackedFiles(t *testing.T) {
	repo, exec := newRepoExecutor(t)

	repo.WriteFile("untracked.txt", "new file\n")

	require.NoError(t, requireCleanTree(context.Background(), exec))
}

func TestStashGuardRestoresDirtyState(t *testing.T) {
	repo, exec := newRepoExecutor(t)

	repo.WriteFile("a.txt", "one\ntwo\nthree\n")

	restore, err := stashGuard(context.Background(), exec)
	require.NoError(t, err)
	require.NoError(t, requireCleanTree(context.Background(), exec))

	require.NoError(t, restore(context.Background()))
	content := repo.ReadFile("a.txt")
	require.Equal(t, "one\ntwo\nthree\n", content)
}

func TestStashGuardNoOpOnCleanTree(t *testing.T) {
	_, exec := newRepoExecutor(t)

	restore, err := stashGuard(context.Background(), exec)
	require.NoError(t, err)
	require.NoError(t, restore(context.Background()))
}

func TestRequireAncestorRejectsHEAD(t *testing.T) {
	_, exec := newRepoExecutor(t)

	err := requireAncestor(context.Background(), exec, "HEAD", "HEAD")
	require.ErrorContains(t, err, "nothing to squash")
}

func TestRequireAncestorAcceptsTrueAncestor(t *testing.T) {
	repo, exec := newRepoExecutor(t)

	first := repo.Git("rev-parse", "HEAD")

	repo.WriteFile("b.txt", "more\n")
	repo.CommitAll("second")

	err := requireAncestor(context.Background(), exec, trimNL(first), "HEAD")
	require.NoError(t, err)
}

func TestRequireNoMergeCommitsPassesOnLinearHistory(t *testing.T) {
	repo, exec := newRepoExecutor(t)

	first := repo.Git("rev-parse", "HEAD")
	repo.WriteFile("b.txt", "more\n")
	repo.CommitAll("second")

	err := requireNoMergeCommits(context.Background(), exec, trimNL(first), "HEAD", false)
	require.NoError(t, err)
}

func TestJoinMessagesMatchesGitMultipleDashM(t *testing.T) {
	require.Equal(t, "first\n\nsecond", joinMessages([]string{"first", "second"}))
	require.Equal(t, "only", joinMessages([]string{"only"}))
}

func trimNL(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}

	return s
}
