package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/orchestrator"
)

// NewStageCmd creates the stage command.
func NewStageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage <ids...>",
		Short: "Stage the selected lines",
		Long: `Stage the selected lines from the working tree into the index.

Each id is either a bare hunk ID (the whole hunk) or ID:range, where
range is a single intrinsic line number or an inclusive N-M span.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngineOp(cmd.Context(), cmd.OutOrStdout(), args, (*orchestrator.Orchestrator).Stage, "staged")
		},
	}

	return cmd
}

// NewUnstageCmd creates the unstage command.
func NewUnstageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unstage <ids...>",
		Short: "Unstage the selected lines",
		Long:  `Remove the selected lines from the index, leaving the working tree untouched.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngineOp(cmd.Context(), cmd.OutOrStdout(), args, (*orchestrator.Orchestrator).Unstage, "unstaged")
		},
	}

	return cmd
}

// NewDiscardCmd creates the discard command.
func NewDiscardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discard <ids...>",
		Short: "Discard the selected lines from the working tree",
		Long:  `Remove the selected lines from the working tree, leaving the index untouched.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngineOp(cmd.Context(), cmd.OutOrStdout(), args, (*orchestrator.Orchestrator).Discard, "discarded")
		},
	}

	return cmd
}

func runEngineOp(
	ctx context.Context, w io.Writer, ids []string,
	op func(*orchestrator.Orchestrator, context.Context, []string) error,
	verb string,
) error {
	cfg := getConfig(ctx)
	o := orchestrator.New(gitexec.NewShellExecutor(cfg.WorkDir))

	if err := op(o, ctx, ids); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %d selection(s).\n", strings.ToUpper(verb[:1])+verb[1:], len(ids))

	return nil
}
