package orchestrator

import (
	"bytes"
	"context"
	"fmt"

	"github.com/roasbeef/git-surgeon/internal/gitexec"
	"github.com/roasbeef/git-surgeon/internal/patchsynth"
	"github.com/roasbeef/git-surgeon/internal/selector"
	"github.com/roasbeef/git-surgeon/internal/view"
)

// Orchestrator wires the diff source, selector, patch synthesiser,
// and git executor together into the command-level operations
// described by the history orchestrator and safety gate.
type Orchestrator struct {
	Exec gitexec.Executor
}

// New constructs an Orchestrator around the given executor.
func New(exec gitexec.Executor) *Orchestrator {
	return &Orchestrator{Exec: exec}
}

// Stage moves the selected lines of the working tree into the index.
func (o *Orchestrator) Stage(ctx context.Context, tokens []string) error {
	return o.applySelection(ctx, view.Unstaged, tokens, patchsynth.Options{}, true)
}

// Unstage removes the selected lines from the index, leaving the
// working tree untouched.
func (o *Orchestrator) Unstage(ctx context.Context, tokens []string) error {
	return o.applySelection(ctx, view.Staged, tokens, patchsynth.Options{Reverse: true}, true)
}

// Discard removes the selected lines from the working tree, leaving
// the index untouched.
func (o *Orchestrator) Discard(ctx context.Context, tokens []string) error {
	return o.applySelection(ctx, view.Unstaged, tokens, patchsynth.Options{Reverse: true}, false)
}

func (o *Orchestrator) applySelection(
	ctx context.Context, kind view.Kind, tokens []string, opts patchsynth.Options, cached bool,
) error {
	loaded, err := view.Load(ctx, o.Exec, view.Request{Kind: kind})
	if err != nil {
		return err
	}

	sels, err := selector.Resolve(loaded.Files, tokens)
	if err != nil {
		return err
	}

	patch, err := patchsynth.Generate(loaded.Files, sels, opts)
	if err != nil {
		return err
	}

	if len(patch) == 0 {
		return fmt.Errorf("selection matched no changes")
	}

	return o.Exec.Apply(ctx, bytes.NewReader(patch), cached)
}

// Commit synthesises the selection into the index, commits it, and
// restores any other unstaged changes that were not part of the
// selection. It refuses if the index already has staged changes.
func (o *Orchestrator) Commit(ctx context.Context, tokens []string, messages []string) error {
	if err := requireCleanIndex(ctx, o.Exec); err != nil {
		return err
	}

	loaded, err := view.Load(ctx, o.Exec, view.Request{Kind: view.Unstaged})
	if err != nil {
		return err
	}

	sels, err := selector.Resolve(loaded.Files, tokens)
	if err != nil {
		return err
	}

	patch, err := patchsynth.Generate(loaded.Files, sels, patchsynth.Options{})
	if err != nil {
		return err
	}

	if len(patch) == 0 {
		return fmt.Errorf("selection matched no changes")
	}

	if err := o.Exec.Apply(ctx, bytes.NewReader(patch), true); err != nil {
		return err
	}

	return o.Exec.Commit(ctx, joinMessages(messages))
}
