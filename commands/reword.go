package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/orchestrator"
)

// NewRewordCmd creates the reword command.
func NewRewordCmd() *cobra.Command {
	var messages []string

	cmd := &cobra.Command{
		Use:   "reword <rev>",
		Short: "Change a commit's message, preserving every other commit verbatim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(messages) == 0 {
				return fmt.Errorf("new message required (-m)")
			}

			return runReword(cmd.Context(), cmd.OutOrStdout(), args[0], messages)
		},
	}

	cmd.Flags().StringArrayVarP(&messages, "message", "m", nil, "new commit message (repeatable)")

	return cmd
}

func runReword(ctx context.Context, w io.Writer, target string, messages []string) error {
	cfg := getConfig(ctx)
	o := orchestrator.New(gitexec.NewShellExecutor(cfg.WorkDir))

	if err := o.Reword(ctx, target, messages); err != nil {
		return err
	}

	fmt.Fprintf(w, "Reworded %s.\n", target)

	return nil
}
