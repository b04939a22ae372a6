// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/statusbot/internal/domain/statusflow/model"

// Transition is a single allowed edge in the workflow state machine.
type Transition struct {
	From        model.State
	To          model.State
	Event       EventKind
	PromptFirst bool
	Reason      model.ReasonCode
}

// Decision records whether a transition is allowed and why it is forbidden.
type Decision struct {
	Allowed bool
	Reason  string
}

var transitionsTable = []Transition{
	// Entry
	{From: model.StateIdle, To: model.StateSearching, Event: EvStart},
	{From: model.StateIdle, To: model.StateAwaitingTrigger, Event: EvStart, PromptFirst: true},
	{From: model.StateAwaitingTrigger, To: model.StateAwaitingSearchInput, Event: EvButtonClicked},
	{From: model.StateAwaitingSearchInput, To: model.StateSearching, Event: EvModalSubmitted},

	// Resolution
	{From: model.StateSearching, To: model.StateNoMatch, Event: EvNoMatch, Reason: model.RNoMatch},
	{From: model.StateSearching, To: model.StateResolved, Event: EvSingleMatch},
	{From: model.StateSearching, To: model.StateAwaitingSelection, Event: EvMultipleMatches},
	{From: model.StateAwaitingSelection, To: model.StateResolved, Event: EvOptionSelected},

	// Prompt expiry
	{From: model.StateAwaitingTrigger, To: model.StateExpired, Event: EvTimedOut, Reason: model.RExpired},
	{From: model.StateAwaitingSearchInput, To: model.StateExpired, Event: EvTimedOut, Reason: model.RExpired},
	{From: model.StateAwaitingSelection, To: model.StateExpired, Event: EvTimedOut, Reason: model.RExpired},

	// Collaborator failures
	{From: model.StateSearching, To: model.StateFailed, Event: EvCollaboratorFailed, Reason: model.RCatalogUnavailable},
	{From: model.StateAwaitingTrigger, To: model.StateFailed, Event: EvCollaboratorFailed, Reason: model.RCatalogUnavailable},
	{From: model.StateAwaitingSearchInput, To: model.StateFailed, Event: EvCollaboratorFailed, Reason: model.RCatalogUnavailable},
	{From: model.StateAwaitingSelection, To: model.StateFailed, Event: EvCollaboratorFailed, Reason: model.RCatalogUnavailable},

	// Apply outcome
	{From: model.StateResolved, To: model.StateApplied, Event: EvApplied, Reason: model.RNone},
	{From: model.StateResolved, To: model.StateFailed, Event: EvApplyFailed, Reason: model.RUpdateFailed},
}

// TransitionFor returns the allowed transition for a given state+event.
func TransitionFor(from model.State, ev EventKind, promptFirst bool) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From != from || tr.Event != ev {
			continue
		}
		if tr.Event == EvStart && tr.PromptFirst != promptFirst {
			continue
		}
		return tr, true
	}
	return Transition{}, false
}
