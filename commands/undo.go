package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/orchestrator"
)

// NewUndoCmd creates the undo command.
func NewUndoCmd() *cobra.Command {
	var (
		from  string
		lines string
	)

	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Reverse-apply a hunk from an earlier commit to the working tree",
		Long: `Compute the reverse patch of the selected region of hunk id as it
appears in --from, and apply it to the working tree. No history is
rewritten and the index is untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return fmt.Errorf("--from is required")
			}

			token := args[0]
			if lines != "" {
				token = token + ":" + lines
			}

			return runUndo(cmd.Context(), cmd.OutOrStdout(), from, token)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "commit to undo the hunk from")
	cmd.Flags().StringVar(&lines, "lines", "", "restrict to a single line or inclusive range within the hunk")

	return cmd
}

func runUndo(ctx context.Context, w io.Writer, from, token string) error {
	cfg := getConfig(ctx)
	o := orchestrator.New(gitexec.NewShellExecutor(cfg.WorkDir))

	if err := o.Undo(ctx, from, []string{token}); err != nil {
		return err
	}

	fmt.Fprintf(w, "Undid %s from %s.\n", token, from)

	return nil
}
