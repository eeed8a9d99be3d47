package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/orchestrator"
)

// NewSquashCmd creates the squash command.
func NewSquashCmd() *cobra.Command {
	var (
		messages         []string
		force            bool
		noPreserveAuthor bool
	)

	cmd := &cobra.Command{
		Use:   "squash <rev>",
		Short: "Squash every commit from rev to HEAD into a single commit",
		Long: `Squash every commit reachable from rev (exclusive) through HEAD
into a single commit. The resulting commit preserves the author and
date of the oldest commit in the range unless --no-preserve-author is
given. Refuses if the range contains a merge commit unless --force is
given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(messages) == 0 {
				return fmt.Errorf("commit message required (-m)")
			}

			return runSquash(cmd.Context(), cmd.OutOrStdout(), args[0], messages, force, noPreserveAuthor)
		},
	}

	cmd.Flags().StringArrayVarP(&messages, "message", "m", nil, "commit message (repeatable)")
	cmd.Flags().BoolVar(&force, "force", false, "allow squashing a range that contains a merge commit")
	cmd.Flags().BoolVar(&noPreserveAuthor, "no-preserve-author", false, "use the committing user's identity instead of the oldest commit's")

	return cmd
}

func runSquash(ctx context.Context, w io.Writer, target string, messages []string, force, noPreserveAuthor bool) error {
	cfg := getConfig(ctx)
	o := orchestrator.New(gitexec.NewShellExecutor(cfg.WorkDir))

	if err := o.Squash(ctx, target, messages, force, noPreserveAuthor); err != nil {
		return err
	}

	fmt.Fprintf(w, "Squashed onto %s.\n", target)

	return nil
}
