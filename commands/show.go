package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/diffmodel"
	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/output"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	var commit string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the full body of a single hunk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), cmd.OutOrStdout(), args[0], commit)
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", "look up the ID within this commit's diff instead of the working tree")

	return cmd
}

func runShow(ctx context.Context, w io.Writer, id, commit string) error {
	cfg := getConfig(ctx)
	exec := gitexec.NewShellExecutor(cfg.WorkDir)

	loaded, err := loadRequestedView(ctx, exec, false, commit, nil)
	if err != nil {
		return err
	}

	file, hunk := findHunk(loaded.Files, id)
	if hunk == nil {
		return fmt.Errorf("hunk ID not found: %q", id)
	}

	if cfg.JSONOut {
		return output.FormatJSON(w, []*diffmodel.FileChange{singleHunkFile(file, hunk)}, nil)
	}

	return output.FormatText(
		w, []*diffmodel.FileChange{singleHunkFile(file, hunk)},
		output.TextOptions{Full: true}, nil,
	)
}

func findHunk(files []*diffmodel.FileChange, id string) (*diffmodel.FileChange, *diffmodel.Hunk) {
	for _, f := range files {
		if h := f.HunkByID(id); h != nil {
			return f, h
		}
	}

	return nil, nil
}

// singleHunkFile wraps a single hunk back into a one-hunk FileChange
// so the output package's per-file formatting can render it directly.
func singleHunkFile(f *diffmodel.FileChange, h *diffmodel.Hunk) *diffmodel.FileChange {
	return &diffmodel.FileChange{
		OldPath:    f.OldPath,
		NewPath:    f.NewPath,
		ChangeKind: f.ChangeKind,
		IsBinary:   f.IsBinary,
		Hunks:      []*diffmodel.Hunk{h},
	}
}
