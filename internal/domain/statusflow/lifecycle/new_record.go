// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
)

// NewSessionRecord initializes a session record with canonical lifecycle defaults.
func NewSessionRecord(sessionID, initiatorID string, now time.Time) *model.SessionRecord {
	return &model.SessionRecord{
		SessionID:   sessionID,
		InitiatorID: initiatorID,
		State:       model.StateIdle,
		Reason:      model.RNone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
