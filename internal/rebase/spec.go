// Package rebase provides types for building and applying declarative
// rebase specifications, used by the history orchestrator to script
// interactive rebases without an interactive editor.
package rebase

import (
	"encoding/json"
	"fmt"
)

// ActionType represents a rebase action (pick, squash, etc.).
type ActionType string

const (
	ActionPick   ActionType = "pick"
	ActionReword ActionType = "reword"
	ActionEdit   ActionType = "edit"
	ActionSquash ActionType = "squash"
	ActionFixup  ActionType = "fixup"
	ActionDrop   ActionType = "drop"
)

// Valid returns true if the action type is recognized.
func (a ActionType) Valid() bool {
	switch a {
	case ActionPick, ActionReword, ActionEdit, ActionSquash, ActionFixup, ActionDrop:
		return true
	default:
		return false
	}
}

// Action represents a single entry of a rebase plan.
type Action struct {
	// Type is the operation to apply to Commit.
	Type ActionType `json:"action"`

	// Commit is the commit hash this entry operates on.
	Commit string `json:"commit"`
}

// Spec is a complete rebase plan, applied in order starting from the
// base the rebase was started against.
type Spec struct {
	Actions []Action `json:"actions"`
}

// Validate checks that every action is well-formed and that the plan
// doesn't open with something that needs a predecessor.
func (s *Spec) Validate() error {
	if len(s.Actions) == 0 {
		return fmt.Errorf("rebase spec has no actions")
	}

	for i, a := range s.Actions {
		if !a.Type.Valid() {
			return fmt.Errorf("action %d: invalid action type %q", i+1, a.Type)
		}

		if a.Commit == "" {
			return fmt.Errorf("action %d: %s requires a commit hash", i+1, a.Type)
		}
	}

	if first := s.Actions[0].Type; first == ActionSquash || first == ActionFixup {
		return fmt.Errorf(
			"cannot start a rebase plan with %s: no previous commit to combine with",
			first,
		)
	}

	return nil
}

// ParseSpec parses a Spec from JSON, validating it on the way out.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec

	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("invalid rebase spec JSON: %w", err)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}

// Marshal serializes the spec for handoff to the self-reexecuted
// sequence-editor process.
func (s *Spec) Marshal() ([]byte, error) {
	return json.Marshal(s)
}
