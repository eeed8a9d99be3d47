package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/orchestrator"
)

// NewSplitCmd creates the split command.
//
// split's flag grammar repeats --pick/--message in groups and allows a
// trailing --rest-message, which pflag's flat flag model can't express
// (it has no notion of "this --message belongs to that --pick"). Flag
// parsing is disabled on the command and the raw args are scanned by
// hand in parseSplitArgs instead.
func NewSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "split <rev> --pick <id...> --message <msg> " +
			"[--pick <id...> --message <msg>]... [--rest-message <msg>]",
		Short: "Split a commit into multiple commits along line boundaries",
		Long: `Split rev into one commit per --pick group plus, if any changes
remain unclaimed, a final commit for the rest. Each --pick group is a
run of hunk IDs (or ID:range tokens) followed by its own --message.
Once --rest-message has appeared, a further --pick is a usage error.`,
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	return cmd
}

func runSplit(ctx context.Context, w io.Writer, args []string) error {
	cfg := getConfig(ctx)

	// With flag parsing disabled, the root's persistent --dir/-C and
	// --json flags arrive here as raw args; they are honoured when
	// they come before the rev.
	for len(args) > 0 {
		if (args[0] == "--dir" || args[0] == "-C") && len(args) > 1 {
			cfg.WorkDir, args = args[1], args[2:]
		} else if args[0] == "--json" {
			cfg.JSONOut, args = true, args[1:]
		} else {
			break
		}
	}

	target, groups, restMessage, err := parseSplitArgs(args)
	if err != nil {
		return err
	}

	o := orchestrator.New(gitexec.NewShellExecutor(cfg.WorkDir))

	if err := o.Split(ctx, target, groups, restMessage); err != nil {
		return err
	}

	fmt.Fprintf(w, "Split %s into %d commit(s).\n", target, len(groups))

	return nil
}

func parseSplitArgs(args []string) (string, []orchestrator.PickGroup, string, error) {
	if len(args) == 0 || isSplitFlag(args[0]) {
		return "", nil, "", fmt.Errorf("rev required before any flags")
	}

	target := args[0]
	rest := args[1:]

	var (
		groups   []orchestrator.PickGroup
		cur      *orchestrator.PickGroup
		restMsg  string
		restSeen bool
		sawPick  bool
	)

	i := 0
	for i < len(rest) {
		tok := rest[i]

		switch tok {
		case "--pick":
			if restSeen {
				return "", nil, "", fmt.Errorf("--pick is not allowed after --rest-message")
			}

			sawPick = true

			if cur != nil {
				groups = append(groups, *cur)
			}

			cur = &orchestrator.PickGroup{}
			i++

			for i < len(rest) && !isSplitFlag(rest[i]) {
				cur.Tokens = append(cur.Tokens, rest[i])
				i++
			}

		case "--message", "-m":
			if cur == nil {
				return "", nil, "", fmt.Errorf("usage: --message must follow a --pick group")
			}

			i++
			if i >= len(rest) {
				return "", nil, "", fmt.Errorf("--message requires a value")
			}

			cur.Message = appendMessage(cur.Message, rest[i])
			i++

		case "--rest-message":
			restSeen = true
			i++

			if i >= len(rest) {
				return "", nil, "", fmt.Errorf("--rest-message requires a value")
			}

			restMsg = appendMessage(restMsg, rest[i])
			i++

		default:
			return "", nil, "", fmt.Errorf("unexpected argument: %s", tok)
		}
	}

	if cur != nil {
		groups = append(groups, *cur)
	}

	if !sawPick || len(groups) == 0 {
		return "", nil, "", fmt.Errorf("at least one --pick group is required")
	}

	for _, g := range groups {
		if len(g.Tokens) == 0 {
			return "", nil, "", fmt.Errorf("--pick group has no ids")
		}
		if g.Message == "" {
			return "", nil, "", fmt.Errorf("missing message for --pick group %q", g.Tokens)
		}
	}

	return target, groups, restMsg, nil
}

func isSplitFlag(s string) bool {
	switch s {
	case "--pick", "--message", "-m", "--rest-message":
		return true
	default:
		return false
	}
}

func appendMessage(existing, next string) string {
	if existing == "" {
		return next
	}

	return existing + "\n\n" + next
}
