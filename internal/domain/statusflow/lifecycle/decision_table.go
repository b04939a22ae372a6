// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/statusbot/internal/domain/statusflow/model"

const (
	ForbiddenTerminalAbsorbing    = "terminal_absorbing"
	ForbiddenOutOfOrder           = "out_of_order"
	ForbiddenAlreadyInState       = "already_in_state"
	ForbiddenAlreadyStarted       = "already_started"
	ForbiddenNoPendingPrompt      = "no_pending_prompt"
	ForbiddenRequiresSearch       = "requires_search"
	ForbiddenRequiresResolution   = "requires_resolution"
	ForbiddenDisambiguationClosed = "disambiguation_closed"
)

func allowed() Decision        { return Decision{Allowed: true} }
func forbid(r string) Decision { return Decision{Allowed: false, Reason: r} }

// decisionTable defines an explicit decision for every State×Event combination.
var decisionTable = map[model.State]map[EventKind]Decision{
	model.StateIdle: {
		EvStart:              allowed(),
		EvButtonClicked:      forbid(ForbiddenNoPendingPrompt),
		EvModalSubmitted:     forbid(ForbiddenNoPendingPrompt),
		EvNoMatch:            forbid(ForbiddenRequiresSearch),
		EvSingleMatch:        forbid(ForbiddenRequiresSearch),
		EvMultipleMatches:    forbid(ForbiddenRequiresSearch),
		EvOptionSelected:     forbid(ForbiddenNoPendingPrompt),
		EvTimedOut:           forbid(ForbiddenNoPendingPrompt),
		EvCollaboratorFailed: forbid(ForbiddenOutOfOrder),
		EvApplied:            forbid(ForbiddenRequiresResolution),
		EvApplyFailed:        forbid(ForbiddenRequiresResolution),
	},
	model.StateAwaitingTrigger: {
		EvStart:              forbid(ForbiddenAlreadyStarted),
		EvButtonClicked:      allowed(),
		EvModalSubmitted:     forbid(ForbiddenOutOfOrder),
		EvNoMatch:            forbid(ForbiddenRequiresSearch),
		EvSingleMatch:        forbid(ForbiddenRequiresSearch),
		EvMultipleMatches:    forbid(ForbiddenRequiresSearch),
		EvOptionSelected:     forbid(ForbiddenOutOfOrder),
		EvTimedOut:           allowed(),
		EvCollaboratorFailed: allowed(),
		EvApplied:            forbid(ForbiddenRequiresResolution),
		EvApplyFailed:        forbid(ForbiddenRequiresResolution),
	},
	model.StateAwaitingSearchInput: {
		EvStart:              forbid(ForbiddenAlreadyStarted),
		EvButtonClicked:      forbid(ForbiddenAlreadyInState),
		EvModalSubmitted:     allowed(),
		EvNoMatch:            forbid(ForbiddenRequiresSearch),
		EvSingleMatch:        forbid(ForbiddenRequiresSearch),
		EvMultipleMatches:    forbid(ForbiddenRequiresSearch),
		EvOptionSelected:     forbid(ForbiddenOutOfOrder),
		EvTimedOut:           allowed(),
		EvCollaboratorFailed: allowed(),
		EvApplied:            forbid(ForbiddenRequiresResolution),
		EvApplyFailed:        forbid(ForbiddenRequiresResolution),
	},
	model.StateSearching: {
		EvStart:              forbid(ForbiddenAlreadyStarted),
		EvButtonClicked:      forbid(ForbiddenNoPendingPrompt),
		EvModalSubmitted:     forbid(ForbiddenNoPendingPrompt),
		EvNoMatch:            allowed(),
		EvSingleMatch:        allowed(),
		EvMultipleMatches:    allowed(),
		EvOptionSelected:     forbid(ForbiddenNoPendingPrompt),
		EvTimedOut:           forbid(ForbiddenNoPendingPrompt),
		EvCollaboratorFailed: allowed(),
		EvApplied:            forbid(ForbiddenRequiresResolution),
		EvApplyFailed:        forbid(ForbiddenRequiresResolution),
	},
	model.StateAwaitingSelection: {
		EvStart:              forbid(ForbiddenAlreadyStarted),
		EvButtonClicked:      forbid(ForbiddenOutOfOrder),
		EvModalSubmitted:     forbid(ForbiddenOutOfOrder),
		EvNoMatch:            forbid(ForbiddenOutOfOrder),
		EvSingleMatch:        forbid(ForbiddenOutOfOrder),
		EvMultipleMatches:    forbid(ForbiddenAlreadyInState),
		EvOptionSelected:     allowed(),
		EvTimedOut:           allowed(),
		EvCollaboratorFailed: allowed(),
		EvApplied:            forbid(ForbiddenRequiresResolution),
		EvApplyFailed:        forbid(ForbiddenRequiresResolution),
	},
	model.StateResolved: {
		EvStart:              forbid(ForbiddenDisambiguationClosed),
		EvButtonClicked:      forbid(ForbiddenDisambiguationClosed),
		EvModalSubmitted:     forbid(ForbiddenDisambiguationClosed),
		EvNoMatch:            forbid(ForbiddenDisambiguationClosed),
		EvSingleMatch:        forbid(ForbiddenDisambiguationClosed),
		EvMultipleMatches:    forbid(ForbiddenDisambiguationClosed),
		EvOptionSelected:     forbid(ForbiddenDisambiguationClosed),
		EvTimedOut:           forbid(ForbiddenDisambiguationClosed),
		EvCollaboratorFailed: forbid(ForbiddenDisambiguationClosed),
		EvApplied:            allowed(),
		EvApplyFailed:        allowed(),
	},
	model.StateApplied: absorbing(),
	model.StateNoMatch: absorbing(),
	model.StateExpired: absorbing(),
	model.StateFailed:  absorbing(),
}

func absorbing() map[EventKind]Decision {
	m := make(map[EventKind]Decision, len(AllEventKinds()))
	for _, ev := range AllEventKinds() {
		m[ev] = forbid(ForbiddenTerminalAbsorbing)
	}
	return m
}

// DecisionFor returns the explicit decision for state×event.
func DecisionFor(from model.State, ev EventKind) (Decision, bool) {
	m, ok := decisionTable[from]
	if !ok {
		return Decision{}, false
	}
	d, ok := m[ev]
	return d, ok
}

// ForbiddenTransitionReason documents why a transition is disallowed.
func ForbiddenTransitionReason(from model.State, ev EventKind) string {
	decision, ok := DecisionFor(from, ev)
	if !ok || decision.Allowed {
		return ""
	}
	return decision.Reason
}
