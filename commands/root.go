// Package commands contains the git-surgeon CLI command implementations.
package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// configKey is the context key for runtime config.
type configKey struct{}

// Config holds runtime configuration for commands.
type Config struct {
	WorkDir string
	JSONOut bool
}

// getConfig retrieves config from context, or returns defaults.
func getConfig(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey{}).(Config); ok {
		return cfg
	}

	return Config{}
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var (
		workDir string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "git-surgeon",
		Short:   "Line-level surgical commits for AI agents",
		Version: Version,
		Long: `git-surgeon enables precise, line-level staging and history
rewrites for git commits.

Designed for agents that need to make surgical changes to a repository:
select individual lines out of a hunk by a stable content-addressed ID,
stage or commit only that selection, then fold, reword, squash, or split
commits after the fact without hand-editing an interactive rebase.

Examples:
  # List every hunk with a stable ID
  git-surgeon hunks

  # Show the full body of one hunk
  git-surgeon show a1b2c3d

  # Stage just lines 2 and 4 of that hunk
  git-surgeon stage a1b2c3d:2 a1b2c3d:4

  # Commit a selection directly
  git-surgeon commit a1b2c3d -m "extract validation helper"

  # Fold staged changes into an earlier commit
  git-surgeon fixup HEAD~3`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := Config{WorkDir: workDir, JSONOut: jsonOut}
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			cmd.SetContext(ctx)
		},
	}

	cmd.PersistentFlags().StringVarP(
		&workDir, "dir", "C", "",
		"run as if git-surgeon was started in this directory",
	)
	cmd.PersistentFlags().BoolVar(
		&jsonOut, "json", false,
		"output in JSON format (for machine consumption)",
	)

	cmd.AddCommand(NewHunksCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewStageCmd())
	cmd.AddCommand(NewUnstageCmd())
	cmd.AddCommand(NewDiscardCmd())
	cmd.AddCommand(NewCommitCmd())
	cmd.AddCommand(NewFixupCmd())
	cmd.AddCommand(NewRewordCmd())
	cmd.AddCommand(NewSquashCmd())
	cmd.AddCommand(NewSplitCmd())
	cmd.AddCommand(NewUndoCmd())
	cmd.AddCommand(NewUndoFileCmd())
	cmd.AddCommand(newRebaseInternalCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
