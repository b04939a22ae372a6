// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

// State is the lifecycle state of a single status-update workflow session.
type State string

const (
	StateIdle                State = "IDLE"
	StateAwaitingTrigger     State = "AWAITING_TRIGGER"
	StateAwaitingSearchInput State = "AWAITING_SEARCH_INPUT"
	StateSearching           State = "SEARCHING"
	StateAwaitingSelection   State = "AWAITING_SELECTION"
	StateResolved            State = "RESOLVED"
	StateApplied             State = "APPLIED"
	StateNoMatch             State = "NO_MATCH"
	StateExpired             State = "EXPIRED"
	StateFailed              State = "FAILED"
)

// AllStates lists every state in declaration order.
func AllStates() []State {
	return []State{
		StateIdle,
		StateAwaitingTrigger,
		StateAwaitingSearchInput,
		StateSearching,
		StateAwaitingSelection,
		StateResolved,
		StateApplied,
		StateNoMatch,
		StateExpired,
		StateFailed,
	}
}

// IsTerminal returns true if the state is absorbing.
func (s State) IsTerminal() bool {
	switch s {
	case StateApplied, StateNoMatch, StateExpired, StateFailed:
		return true
	}
	return false
}

// IsAwaiting returns true if the state has a prompt pending on the initiator.
func (s State) IsAwaiting() bool {
	switch s {
	case StateAwaitingTrigger, StateAwaitingSearchInput, StateAwaitingSelection:
		return true
	}
	return false
}

// RetractsPrompts reports whether entering s must remove every interactive control.
// RESOLVED ends disambiguation even though the apply outcome is still pending.
func (s State) RetractsPrompts() bool {
	return s == StateResolved || s.IsTerminal()
}

// ReasonCode explains why a session reached its current state.
type ReasonCode string

const (
	RNone                    ReasonCode = "R_NONE"
	RNoMatch                 ReasonCode = "R_NO_MATCH"
	RExpired                 ReasonCode = "R_EXPIRED"
	RCatalogUnavailable      ReasonCode = "R_CATALOG_UNAVAILABLE"
	RSurfaceUnavailable      ReasonCode = "R_SURFACE_UNAVAILABLE"
	RUpdateFailed            ReasonCode = "R_UPDATE_FAILED"
	RCancelled               ReasonCode = "R_CANCELLED"
	RInternalInvariantBreach ReasonCode = "R_INTERNAL_INVARIANT_BREACH"
)
