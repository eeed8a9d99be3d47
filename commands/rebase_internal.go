package commands

import (
	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/orchestrator"
)

// newRebaseInternalCmd builds the hidden "rebase" command group that
// git-surgeon re-execs itself into as GIT_SEQUENCE_EDITOR/GIT_EDITOR
// during a history-rewriting command. These are never invoked directly
// by a user; they exist only so the orchestrator can hand git a single
// self-contained binary to call back into.
func newRebaseInternalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "rebase",
		Hidden: true,
	}

	cmd.AddCommand(newApplySpecCmd())
	cmd.AddCommand(newSetMessageCmd())

	return cmd
}

// newApplySpecCmd is installed as GIT_SEQUENCE_EDITOR. git invokes it as
// "<self> rebase _apply-spec <specfile> <todofile>"; it rewrites
// todofile in place to match the recorded spec.
func newApplySpecCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "_apply-spec <specfile> <todofile>",
		Hidden: true,
		Args:   cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return orchestrator.ApplyRebaseSpec(args[0], args[1])
		},
	}
}

// newSetMessageCmd is installed as GIT_EDITOR during a reword rebase.
// git invokes it as "<self> rebase _set-message <msgfile> <commit-msg-file>";
// it overwrites commit-msg-file with the contents of msgfile.
func newSetMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "_set-message <msgfile> <commit-msg-file>",
		Hidden: true,
		Args:   cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return orchestrator.SetMessage(args[0], args[1])
		},
	}
}
