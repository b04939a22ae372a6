// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func cands(names ...string) []model.Candidate {
	out := make([]model.Candidate, 0, len(names))
	for i, n := range names {
		out = append(out, model.Candidate{ID: model.NumericID(int64(i + 1)), Name: n})
	}
	return out
}

func mustDispatch(t *testing.T, rec *model.SessionRecord, ev Event) Transition {
	t.Helper()
	tr, err := Dispatch(rec, ev, t0)
	require.NoError(t, err)
	return tr
}

func TestDispatch_UpfrontSingleMatch(t *testing.T) {
	rec := NewSessionRecord("s1", "u1", t0)

	mustDispatch(t, rec, Start("widget", false))
	assert.Equal(t, model.StateSearching, rec.State)
	assert.Equal(t, "widget", rec.SearchTerm)

	mustDispatch(t, rec, Matches(cands("Widget")))
	assert.Equal(t, model.StateResolved, rec.State)
	require.NotNil(t, rec.Resolved)
	assert.Equal(t, "Widget", rec.Resolved.Name)

	tr := mustDispatch(t, rec, Applied())
	assert.Equal(t, model.StateApplied, tr.To)
	assert.Equal(t, model.RNone, rec.Reason)
}

func TestDispatch_PromptFirstPath(t *testing.T) {
	rec := NewSessionRecord("s1", "u1", t0)

	mustDispatch(t, rec, Start("ignored", true))
	assert.Equal(t, model.StateAwaitingTrigger, rec.State)
	assert.Empty(t, rec.SearchTerm)

	mustDispatch(t, rec, ButtonClicked())
	assert.Equal(t, model.StateAwaitingSearchInput, rec.State)

	mustDispatch(t, rec, ModalSubmitted("gadget"))
	assert.Equal(t, model.StateSearching, rec.State)
	assert.Equal(t, "gadget", rec.SearchTerm)

	mustDispatch(t, rec, Matches(cands("Gadget A", "Gadget B")))
	assert.Equal(t, model.StateAwaitingSelection, rec.State)
	assert.Len(t, rec.Candidates, 2)

	mustDispatch(t, rec, OptionSelected("2"))
	assert.Equal(t, model.StateResolved, rec.State)
	assert.Equal(t, "Gadget B", rec.Resolved.Name)
}

func TestDispatch_UnknownSelectionLeavesRecordUntouched(t *testing.T) {
	rec := NewSessionRecord("s1", "u1", t0)
	mustDispatch(t, rec, Start("g", false))
	mustDispatch(t, rec, Matches(cands("A", "B")))
	deadline := Arm(rec, 30*time.Second, t0)
	before := *rec

	_, err := Dispatch(rec, OptionSelected("99"), t0.Add(time.Second))
	require.ErrorIs(t, err, ErrUnknownCandidate)
	assert.Equal(t, before, *rec)
	assert.Equal(t, deadline, rec.Deadline)
}

func TestDispatch_NoMatch(t *testing.T) {
	rec := NewSessionRecord("s1", "u1", t0)
	mustDispatch(t, rec, Start("zzz", false))
	mustDispatch(t, rec, Matches(nil))
	assert.Equal(t, model.StateNoMatch, rec.State)
	assert.Equal(t, model.RNoMatch, rec.Reason)
	assert.Nil(t, rec.Resolved)
}

func TestDispatch_TimeoutClearsDeadline(t *testing.T) {
	rec := NewSessionRecord("s1", "u1", t0)
	mustDispatch(t, rec, Start("", true))
	Arm(rec, 2*time.Minute, t0)
	require.False(t, rec.Deadline.IsZero())

	mustDispatch(t, rec, TimedOut())
	assert.Equal(t, model.StateExpired, rec.State)
	assert.Equal(t, model.RExpired, rec.Reason)
	assert.True(t, rec.Deadline.IsZero())
}

func TestDispatch_CollaboratorFailureReasons(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want model.ReasonCode
	}{
		{name: "catalog", err: ErrCatalogUnavailable, want: model.RCatalogUnavailable},
		{name: "wrapped catalog", err: errors.Join(errors.New("boom"), ErrCatalogUnavailable), want: model.RCatalogUnavailable},
		{name: "cancelled", err: context.Canceled, want: model.RCancelled},
		{name: "surface", err: fmt.Errorf("%w: discord down", ErrSurfaceUnavailable), want: model.RSurfaceUnavailable},
		{name: "cancelled surface", err: fmt.Errorf("%w: %w", ErrSurfaceUnavailable, context.Canceled), want: model.RCancelled},
		{name: "other", err: errors.New("listing failed"), want: model.RCatalogUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewSessionRecord("s1", "u1", t0)
			mustDispatch(t, rec, Start("x", false))
			mustDispatch(t, rec, CollaboratorFailed(tt.err))
			assert.Equal(t, model.StateFailed, rec.State)
			assert.Equal(t, tt.want, rec.Reason)
		})
	}
}

func TestDispatch_ApplyFailed(t *testing.T) {
	rec := NewSessionRecord("s1", "u1", t0)
	mustDispatch(t, rec, Start("x", false))
	mustDispatch(t, rec, Matches(cands("X")))
	mustDispatch(t, rec, ApplyFailed(ErrUpdateFailed))
	assert.Equal(t, model.StateFailed, rec.State)
	assert.Equal(t, model.RUpdateFailed, rec.Reason)
	assert.ErrorIs(t, ReasonErrorClass(rec.Reason), ErrUpdateFailed)
}

func TestEventFromCandidates(t *testing.T) {
	assert.Equal(t, EvNoMatch, EventFromCandidates(0))
	assert.Equal(t, EvSingleMatch, EventFromCandidates(1))
	assert.Equal(t, EvMultipleMatches, EventFromCandidates(2))
	assert.Equal(t, EvMultipleMatches, EventFromCandidates(300))
}

func TestSanitizeDetail(t *testing.T) {
	assert.Equal(t, "", SanitizeDetail(""))
	assert.Equal(t, "a b c", SanitizeDetail("a\n b\t\tc "))
	long := make([]rune, 400)
	for i := range long {
		long[i] = 'ä'
	}
	out := SanitizeDetail(string(long))
	assert.Len(t, []rune(out), 163)
}
