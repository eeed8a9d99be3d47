package blame_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/git-surgeon/internal/blame"
	"github.com/roasbeef/git-surgeon/internal/diffmodel"
	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/view"
	"github.com/roasbeef/git-surgeon/testutil"
)

func TestAnnotateUncommittedAddedLinesGetPlaceholderHash(t *testing.T) {
	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "one\ntwo\n")
	repo.CommitAll("initial")
	repo.WriteFile("a.txt", "one\ntwo\nthree\n")

	exec := gitexec.NewShellExecutor(repo.Dir)
	ctx := context.Background()

	loaded, err := view.Load(ctx, exec, view.Request{Kind: view.Unstaged})
	require.NoError(t, err)
	require.Len(t, loaded.Files, 1)

	hunk := loaded.Files[0].Hunks[0]
	annotations, err := blame.Annotate(ctx, exec, blame.View{OldRev: loaded.OldRev}, loaded.Files[0], hunk)
	require.NoError(t, err)

	var sawAdd bool
	for i, line := range hunk.Lines {
		if line.Op == diffmodel.OpAdd {
			require.Equal(t, "0000000", annotations[i].Hash)
			sawAdd = true
		}
	}
	require.True(t, sawAdd)
}

func TestAnnotateContextLinesBlameOldRev(t *testing.T) {
	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "one\ntwo\n")
	repo.CommitAll("initial")
	repo.WriteFile("a.txt", "one\nTWO\n")

	exec := gitexec.NewShellExecutor(repo.Dir)
	ctx := context.Background()

	loaded, err := view.Load(ctx, exec, view.Request{Kind: view.Unstaged})
	require.NoError(t, err)

	hunk := loaded.Files[0].Hunks[0]
	annotations, err := blame.Annotate(ctx, exec, blame.View{OldRev: loaded.OldRev}, loaded.Files[0], hunk)
	require.NoError(t, err)

	for i, line := range hunk.Lines {
		if line.Op == diffmodel.OpContext {
			require.NotEmpty(t, annotations[i].Hash)
			require.NotEqual(t, "0000000", annotations[i].Hash)
			require.Len(t, annotations[i].Hash, 7)
		}
	}
}

func TestAnnotateRootCommitAddedLinesGetCommitHash(t *testing.T) {
	repo := testutil.NewGitTestRepo(t)
	repo.WriteFile("a.txt", "one\ntwo\n")
	repo.CommitAll("initial")

	exec := gitexec.NewShellExecutor(repo.Dir)
	ctx := context.Background()

	loaded, err := view.Load(ctx, exec, view.Request{Kind: view.Commit, Commit: "HEAD"})
	require.NoError(t, err)
	require.Empty(t, loaded.OldRev)

	hunk := loaded.Files[0].Hunks[0]
	annotations, err := blame.Annotate(
		ctx, exec, blame.View{OldRev: loaded.OldRev, NewRev: loaded.NewRev}, loaded.Files[0], hunk,
	)
	require.NoError(t, err)

	for i, line := range hunk.Lines {
		if line.Op == diffmodel.OpAdd {
			require.NotEmpty(t, annotations[i].Hash)
			require.NotEqual(t, "0000000", annotations[i].Hash)
			require.Len(t, annotations[i].Hash, 7)
		}
	}
}
