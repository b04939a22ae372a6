// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"fmt"
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
)

// Dispatch resolves the next transition from the table and applies it,
// including the event payload, to rec. It is the only writer of rec.State.
//
// A selection value that matches no candidate is rejected with
// ErrUnknownCandidate and leaves rec untouched.
func Dispatch(rec *model.SessionRecord, ev Event, now time.Time) (Transition, error) {
	if rec.State.IsTerminal() {
		return illegalTransition(rec, rec.State, ev.Kind, now)
	}

	decision, ok := DecisionFor(rec.State, ev.Kind)
	if !ok || !decision.Allowed {
		return illegalTransition(rec, rec.State, ev.Kind, now)
	}
	tr, ok := TransitionFor(rec.State, ev.Kind, ev.PromptFirst)
	if !ok {
		return illegalTransition(rec, rec.State, ev.Kind, now)
	}

	var resolved *model.Candidate
	switch ev.Kind {
	case EvNoMatch, EvSingleMatch, EvMultipleMatches:
		if EventFromCandidates(len(ev.Candidates)) != ev.Kind {
			return illegalTransition(rec, rec.State, ev.Kind, now)
		}
		if ev.Kind == EvSingleMatch {
			c := ev.Candidates[0]
			resolved = &c
		}
	case EvOptionSelected:
		c, found := model.FindCandidate(rec.Candidates, ev.Value)
		if !found {
			return Transition{}, fmt.Errorf("%w: %q", ErrUnknownCandidate, ev.Value)
		}
		resolved = &c
	}

	switch ev.Kind {
	case EvStart:
		rec.SearchTerm = ev.Term
	case EvModalSubmitted:
		rec.SearchTerm = ev.Term
	case EvNoMatch, EvSingleMatch, EvMultipleMatches:
		rec.Candidates = ev.Candidates
	}
	if resolved != nil {
		rec.Resolved = resolved
	}

	if ev.Reason != "" {
		tr.Reason = ev.Reason
	}

	ApplyTransition(rec, tr, now)
	return tr, nil
}
