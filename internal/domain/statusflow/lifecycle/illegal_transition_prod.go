// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build !debug

package lifecycle

import (
	"fmt"
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
)

func illegalTransition(rec *model.SessionRecord, from model.State, ev EventKind, now time.Time) (Transition, error) {
	tr := Transition{
		From:   from,
		To:     model.StateFailed,
		Event:  ev,
		Reason: model.RInternalInvariantBreach,
	}
	if from.IsTerminal() {
		// Absorbing states keep their outcome; only report the breach.
		return Transition{From: from, To: from, Event: ev}, fmt.Errorf("%w: %s + %v", ErrIllegalTransition, from, ev)
	}
	ApplyTransition(rec, tr, now)
	return tr, fmt.Errorf("%w: %s + %v", ErrIllegalTransition, from, ev)
}
