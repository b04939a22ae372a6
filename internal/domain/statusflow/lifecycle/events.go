// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"fmt"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
)

// EventKind is a domain event in the status workflow.
type EventKind int

const (
	EvUnknown EventKind = iota
	EvStart
	EvButtonClicked
	EvModalSubmitted
	EvNoMatch
	EvSingleMatch
	EvMultipleMatches
	EvOptionSelected
	EvTimedOut
	EvCollaboratorFailed
	EvApplied
	EvApplyFailed
)

var eventNames = map[EventKind]string{
	EvUnknown:            "unknown",
	EvStart:              "start",
	EvButtonClicked:      "button_clicked",
	EvModalSubmitted:     "modal_submitted",
	EvNoMatch:            "no_match",
	EvSingleMatch:        "single_match",
	EvMultipleMatches:    "multiple_matches",
	EvOptionSelected:     "option_selected",
	EvTimedOut:           "timed_out",
	EvCollaboratorFailed: "collaborator_failed",
	EvApplied:            "applied",
	EvApplyFailed:        "apply_failed",
}

func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return "unknown"
}

// AllEventKinds lists every concrete event kind.
func AllEventKinds() []EventKind {
	return []EventKind{
		EvStart,
		EvButtonClicked,
		EvModalSubmitted,
		EvNoMatch,
		EvSingleMatch,
		EvMultipleMatches,
		EvOptionSelected,
		EvTimedOut,
		EvCollaboratorFailed,
		EvApplied,
		EvApplyFailed,
	}
}

// Event carries the payload of a transition.
type Event struct {
	Kind        EventKind
	PromptFirst bool
	Term        string
	Candidates  []model.Candidate
	Value       string
	Reason      model.ReasonCode
	Err         error
}

// Start begins a session. With promptFirst the term is collected later via the search modal.
func Start(term string, promptFirst bool) Event {
	if promptFirst {
		return Event{Kind: EvStart, PromptFirst: true}
	}
	return Event{Kind: EvStart, Term: term}
}

func ButtonClicked() Event { return Event{Kind: EvButtonClicked} }

func ModalSubmitted(term string) Event { return Event{Kind: EvModalSubmitted, Term: term} }

// EventFromCandidates derives the match event kind from a result count.
func EventFromCandidates(n int) EventKind {
	switch {
	case n <= 0:
		return EvNoMatch
	case n == 1:
		return EvSingleMatch
	default:
		return EvMultipleMatches
	}
}

// Matches wraps resolver output into the matching event.
func Matches(cands []model.Candidate) Event {
	return Event{Kind: EventFromCandidates(len(cands)), Candidates: cands}
}

func OptionSelected(value string) Event { return Event{Kind: EvOptionSelected, Value: value} }

func TimedOut() Event { return Event{Kind: EvTimedOut} }

// CollaboratorFailed classifies err into a reason code.
func CollaboratorFailed(err error) Event {
	return Event{Kind: EvCollaboratorFailed, Reason: ReasonFromError(err), Err: err}
}

// SurfaceFailed marks err as a failure to talk to the chat surface.
func SurfaceFailed(err error) Event {
	return CollaboratorFailed(fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err))
}

func Applied() Event { return Event{Kind: EvApplied} }

func ApplyFailed(err error) Event {
	return Event{Kind: EvApplyFailed, Reason: model.RUpdateFailed, Err: err}
}
