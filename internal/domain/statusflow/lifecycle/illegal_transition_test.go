// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build !debug

package lifecycle

import (
	"testing"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_IllegalTransitionForcesFailed(t *testing.T) {
	rec := NewSessionRecord("s1", "u1", t0)
	mustDispatch(t, rec, Start("x", false))

	tr, err := Dispatch(rec, OptionSelected("1"), t0)
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, model.StateFailed, tr.To)
	assert.Equal(t, model.StateFailed, rec.State)
	assert.Equal(t, model.RInternalInvariantBreach, rec.Reason)
}

func TestDispatch_MismatchedMatchEventIsIllegal(t *testing.T) {
	rec := NewSessionRecord("s1", "u1", t0)
	mustDispatch(t, rec, Start("x", false))

	_, err := Dispatch(rec, Event{Kind: EvSingleMatch, Candidates: cands("A", "B")}, t0)
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, model.StateFailed, rec.State)
	assert.Nil(t, rec.Resolved)
}

func TestDispatch_TerminalStatesAreAbsorbing(t *testing.T) {
	for _, s := range model.AllStates() {
		if !s.IsTerminal() {
			continue
		}
		for _, ev := range AllEventKinds() {
			rec := &model.SessionRecord{State: s, Reason: model.RNone}
			_, err := Dispatch(rec, Event{Kind: ev}, t0)
			require.ErrorIs(t, err, ErrIllegalTransition, "%s + %v", s, ev)
			assert.Equal(t, s, rec.State, "%s must stay absorbing on %v", s, ev)
		}
	}
}
