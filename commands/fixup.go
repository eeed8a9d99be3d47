package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/orchestrator"
)

// NewFixupCmd creates the fixup command.
func NewFixupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixup <rev>",
		Short: "Fold the currently staged changes into an earlier commit",
		Long: `Fold the currently staged changes into rev. If rev is HEAD, this
amends the current commit. Otherwise a "fixup!" commit is created and
immediately squashed into rev by an autosquash rebase.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixup(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func runFixup(ctx context.Context, w io.Writer, target string) error {
	cfg := getConfig(ctx)
	o := orchestrator.New(gitexec.NewShellExecutor(cfg.WorkDir))

	if err := o.Fixup(ctx, target); err != nil {
		return err
	}

	fmt.Fprintf(w, "Fixed up into %s.\n", target)

	return nil
}
