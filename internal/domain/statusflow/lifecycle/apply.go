// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
)

// ApplyTransition mutates the session record according to the transition.
func ApplyTransition(rec *model.SessionRecord, tr Transition, now time.Time) {
	rec.State = tr.To
	if tr.Reason != "" {
		rec.Reason = tr.Reason
	}
	if !tr.To.IsAwaiting() {
		rec.Deadline = time.Time{}
	}
	rec.UpdatedAt = now
}

// Arm sets the deadline of the prompt the session is waiting on.
func Arm(rec *model.SessionRecord, timeout time.Duration, now time.Time) time.Time {
	rec.Deadline = now.Add(timeout)
	rec.UpdatedAt = now
	return rec.Deadline
}
