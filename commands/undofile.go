package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/orchestrator"
)

// NewUndoFileCmd creates the undo-file command.
func NewUndoFileCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "undo-file <path>",
		Short: "Reverse-apply every hunk of a file from an earlier commit",
		Long: `Reverse-apply every hunk of path as it appears in --from to the
working tree. Fails if the file was not changed in --from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return fmt.Errorf("--from is required")
			}

			return runUndoFile(cmd.Context(), cmd.OutOrStdout(), from, args[0])
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "commit to undo the file from")

	return cmd
}

func runUndoFile(ctx context.Context, w io.Writer, from, path string) error {
	cfg := getConfig(ctx)
	o := orchestrator.New(gitexec.NewShellExecutor(cfg.WorkDir))

	if err := o.UndoFile(ctx, from, path); err != nil {
		return err
	}

	fmt.Fprintf(w, "Undid %s from %s.\n", path, from)

	return nil
}
