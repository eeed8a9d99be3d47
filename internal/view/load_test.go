package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/view"
	"github.com/roasbeef/git-surgeon/testutil"
)

func newRepoExec(t *testing.T) (*testutil.GitTestRepo, gitexec.Executor) {
	t.Helper()

	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "one\ntwo\n")
	repo.CommitAll("initial")

	return repo, gitexec.NewShellExecutor(repo.Dir)
}

func TestLoadUnstagedUsesHEADAsOldRev(t *testing.T) {
	repo, exec := newRepoExec(t)
	repo.WriteFile("a.txt", "ONE\ntwo\n")

	loaded, err := view.Load(context.Background(), exec, view.Request{Kind: view.Unstaged})
	require.NoError(t, err)

	require.Equal(t, "HEAD", loaded.OldRev)
	require.Empty(t, loaded.NewRev)
	require.Len(t, loaded.Files, 1)
	require.NotEmpty(t, loaded.Files[0].Hunks[0].ID)
}

func TestLoadStagedOnlySeesIndexChanges(t *testing.T) {
	repo, exec := newRepoExec(t)
	repo.WriteFile("a.txt", "ONE\ntwo\n")
	repo.StageFile("a.txt")
	repo.WriteFile("a.txt", "ONE\nTWO\n")

	loaded, err := view.Load(context.Background(), exec, view.Request{Kind: view.Staged})
	require.NoError(t, err)

	require.Len(t, loaded.Files, 1)
	require.Len(t, loaded.Files[0].Hunks, 1)
}

func TestLoadCommitResolvesParentAsOldRev(t *testing.T) {
	repo, exec := newRepoExec(t)
	first := repo.Git("rev-parse", "HEAD")

	repo.WriteFile("a.txt", "ONE\ntwo\n")
	repo.CommitAll("capitalize one")

	loaded, err := view.Load(context.Background(), exec, view.Request{Kind: view.Commit, Commit: "HEAD"})
	require.NoError(t, err)

	require.Equal(t, trimNL(first), loaded.OldRev)
	require.NotEmpty(t, loaded.NewRev)
	require.Len(t, loaded.Files, 1)
}

func TestLoadCommitOnRootCommitHasEmptyParent(t *testing.T) {
	repo, exec := newRepoExec(t)

	loaded, err := view.Load(context.Background(), exec, view.Request{Kind: view.Commit, Commit: "HEAD"})
	require.NoError(t, err)

	require.Empty(t, loaded.OldRev)
}

func TestLoadCommitRequiresRevision(t *testing.T) {
	_, exec := newRepoExec(t)

	_, err := view.Load(context.Background(), exec, view.Request{Kind: view.Commit})
	require.ErrorContains(t, err, "requires a revision")
}

func TestLoadFiltersByPath(t *testing.T) {
	repo, exec := newRepoExec(t)
	repo.WriteFile("a.txt", "ONE\ntwo\n")
	repo.WriteFile("b.txt", "three\n")

	loaded, err := view.Load(context.Background(), exec, view.Request{Kind: view.Unstaged, Paths: []string{"b.txt"}})
	require.NoError(t, err)

	require.Len(t, loaded.Files, 1)
	require.Equal(t, "b.txt", loaded.Files[0].Path())
}

func trimNL(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}

	return s
}
