package rebase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/git-surgeon/internal/rebase"
)

func TestValidateRejectsEmpty(t *testing.T) {
	spec := &rebase.Spec{}
	require.Error(t, spec.Validate())
}

func TestValidateRejectsInvalidType(t *testing.T) {
	spec := &rebase.Spec{Actions: []rebase.Action{{Type: "bogus", Commit: "abc1234"}}}
	require.Error(t, spec.Validate())
}

func TestValidateRejectsMissingCommit(t *testing.T) {
	spec := &rebase.Spec{Actions: []rebase.Action{{Type: rebase.ActionPick}}}
	require.Error(t, spec.Validate())
}

func TestValidateRejectsLeadingSquashOrFixup(t *testing.T) {
	for _, typ := range []rebase.ActionType{rebase.ActionSquash, rebase.ActionFixup} {
		spec := &rebase.Spec{Actions: []rebase.Action{{Type: typ, Commit: "abc1234"}}}
		require.Error(t, spec.Validate())
	}
}

func TestValidateAcceptsWellFormedSpec(t *testing.T) {
	spec := &rebase.Spec{Actions: []rebase.Action{
		{Type: rebase.ActionPick, Commit: "abc1234"},
		{Type: rebase.ActionReword, Commit: "def5678"},
	}}
	require.NoError(t, spec.Validate())
}

func TestParseSpecRoundTrip(t *testing.T) {
	spec := &rebase.Spec{Actions: []rebase.Action{
		{Type: rebase.ActionPick, Commit: "abc1234"},
		{Type: rebase.ActionEdit, Commit: "def5678"},
	}}

	data, err := spec.Marshal()
	require.NoError(t, err)

	parsed, err := rebase.ParseSpec(data)
	require.NoError(t, err)
	require.Equal(t, spec.Actions, parsed.Actions)
}

func TestParseSpecRejectsInvalidJSON(t *testing.T) {
	_, err := rebase.ParseSpec([]byte("not json"))
	require.Error(t, err)
}
