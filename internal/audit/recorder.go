// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package audit

import (
	"context"
	"strconv"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/workflow"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/rs/zerolog"
)

// Recorder turns finished workflow sessions into audit events. Sessions that
// reached a product also land in the Store, when one is configured.
type Recorder struct {
	logger *Logger
	store  *Store
	errLog zerolog.Logger
}

// NewRecorder builds a Recorder. store may be nil.
func NewRecorder(logger *Logger, store *Store) *Recorder {
	return &Recorder{logger: logger, store: store, errLog: log.WithComponent("audit")}
}

var _ workflow.Observer = (*Recorder)(nil)

// SessionFinished implements workflow.Observer.
func (r *Recorder) SessionFinished(ctx context.Context, res workflow.Result) {
	ev := Event{
		Timestamp: res.Finished,
		Actor:     res.InitiatorID,
		SessionID: res.SessionID,
		Details: map[string]string{
			"state":      string(res.State),
			"reason":     string(res.Reason),
			"term":       res.SearchTerm,
			"candidates": strconv.Itoa(res.Candidates),
		},
	}

	switch {
	case res.State == model.StateApplied:
		ev.Type = EventStatusApplied
		ev.Action = "updated product status"
		ev.Result = "success"
	case res.Product != nil:
		ev.Type = EventStatusFailed
		ev.Action = "failed to update product status"
		ev.Result = "failure"
	default:
		ev.Type = EventSessionEnded
		ev.Action = "ended without a status change"
		ev.Result = string(res.State)
	}
	if res.Product != nil {
		ev.Resource = res.Product.ID.String()
		ev.Details["product"] = res.Product.Name
		ev.Details["status_text"] = res.Text
		ev.Details["status_color"] = string(res.Color)
	}
	if res.Detail != "" {
		ev.Details["detail"] = res.Detail
	}
	r.logger.Log(ev)

	if r.store == nil || res.Product == nil {
		return
	}
	result := "failed"
	if res.State == model.StateApplied {
		result = "applied"
	}
	err := r.store.Record(context.WithoutCancel(ctx), Change{
		SessionID:   res.SessionID,
		ActorID:     res.InitiatorID,
		ProductID:   res.Product.ID.String(),
		ProductName: res.Product.Name,
		Text:        res.Text,
		Color:       string(res.Color),
		Result:      result,
		Reason:      string(res.Reason),
		Detail:      res.Detail,
		At:          res.Finished,
	})
	if err != nil {
		r.errLog.Error().
			Err(err).
			Str(log.FieldEvent, "audit.store_failed").
			Str(log.FieldSessionID, res.SessionID).
			Msg("could not persist status change")
	}
}
