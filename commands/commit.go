package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/orchestrator"
)

// NewCommitCmd creates the commit command.
func NewCommitCmd() *cobra.Command {
	var messages []string

	cmd := &cobra.Command{
		Use:   "commit <ids...>",
		Short: "Commit a selection of lines directly",
		Long: `Synthesise a patch for the selected lines, stage it, and commit
it in one step. Refuses if the index already has staged changes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(messages) == 0 {
				return fmt.Errorf("commit message required (-m)")
			}

			return runCommit(cmd.Context(), cmd.OutOrStdout(), args, messages)
		},
	}

	cmd.Flags().StringArrayVarP(&messages, "message", "m", nil, "commit message (repeatable)")

	return cmd
}

func runCommit(ctx context.Context, w io.Writer, ids, messages []string) error {
	cfg := getConfig(ctx)
	o := orchestrator.New(gitexec.NewShellExecutor(cfg.WorkDir))

	if err := o.Commit(ctx, ids, messages); err != nil {
		return err
	}

	fmt.Fprintln(w, "Committed successfully.")

	return nil
}
