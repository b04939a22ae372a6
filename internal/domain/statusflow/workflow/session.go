// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/lifecycle"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/updater"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/metrics"
	"github.com/ManuGH/statusbot/internal/ui"
	"github.com/rs/zerolog"
)

// session is the single-goroutine driver of one SessionRecord.
type session struct {
	runner  *Runner
	rec     *model.SessionRecord
	surface ui.Surface
	req     Request
	logger  zerolog.Logger

	controls bool
	applied  bool
	outcome  *updater.Outcome
}

func (s *session) drive(ctx context.Context, promptFirst bool) {
	ev := lifecycle.Start(s.req.Term, promptFirst)
	for {
		if follow := s.step(ctx, ev); follow != nil {
			ev = *follow
			continue
		}
		if s.rec.State.IsTerminal() {
			return
		}
		ev = s.next(ctx)
	}
}

// next performs the effect the current state waits on and returns its outcome as an event.
func (s *session) next(ctx context.Context) lifecycle.Event {
	r := s.runner
	switch s.rec.State {
	case model.StateAwaitingTrigger:
		ix, err := s.await(ctx, ui.ActionSearch, r.opts.TriggerTimeout, nil)
		if err != nil {
			return awaitFailed(err)
		}
		if err := s.surface.ShowModal(ctx, ix, searchModal(s.rec.SessionID)); err != nil {
			return lifecycle.SurfaceFailed(err)
		}
		return lifecycle.ButtonClicked()

	case model.StateAwaitingSearchInput:
		// The trigger stays live so a dismissed modal can be reopened until the deadline.
		deadline := lifecycle.Arm(s.rec, r.opts.SearchTimeout, r.now())
		for {
			remaining := deadline.Sub(r.now())
			if remaining <= 0 {
				return lifecycle.TimedOut()
			}
			ix, err := s.prompt(ctx, remaining, nil, ui.ActionSearchModal, ui.ActionSearch)
			if err != nil {
				return awaitFailed(err)
			}
			if _, action, _ := ui.ParseCustomID(ix.CustomID); action == ui.ActionSearch {
				if err := s.surface.ShowModal(ctx, ix, searchModal(s.rec.SessionID)); err != nil {
					return lifecycle.SurfaceFailed(err)
				}
				continue
			}
			if err := s.surface.Acknowledge(ctx, ix); err != nil {
				return lifecycle.SurfaceFailed(err)
			}
			return lifecycle.ModalSubmitted(ix.Fields[ui.ActionSearchInput])
		}

	case model.StateSearching:
		ctx, span := r.tracer.Start(ctx, "statusflow.resolve")
		cands, err := r.resolver.Resolve(ctx, s.rec.SearchTerm)
		span.End()
		if err != nil {
			return lifecycle.CollaboratorFailed(err)
		}
		return lifecycle.Matches(cands)

	case model.StateAwaitingSelection:
		cands := s.rec.Candidates
		check := func(ix ui.Interaction) (string, bool) {
			if _, ok := model.FindCandidate(cands, ix.Value()); !ok {
				return MsgUnknownPick, false
			}
			return "", true
		}
		ix, err := s.await(ctx, ui.ActionSelect, r.opts.SelectionTimeout, check)
		if err != nil {
			return awaitFailed(err)
		}
		if err := s.surface.Acknowledge(ctx, ix); err != nil {
			return lifecycle.SurfaceFailed(err)
		}
		return lifecycle.OptionSelected(ix.Value())

	case model.StateResolved:
		if s.applied {
			return lifecycle.ApplyFailed(fmt.Errorf("%w: status already applied", lifecycle.ErrInvariantViolation))
		}
		s.applied = true
		target := *s.rec.Resolved
		req := model.StatusUpdateRequest{TargetID: target.ID, Text: s.req.Text, Color: s.req.Color}

		// A write that has started is allowed to finish during shutdown.
		actx, span := r.tracer.Start(context.WithoutCancel(ctx), "statusflow.apply")
		out, err := r.applier.Apply(actx, req, target.Name)
		span.End()
		s.outcome = &out
		if err != nil {
			return lifecycle.ApplyFailed(err)
		}
		return lifecycle.Applied()
	}

	return lifecycle.CollaboratorFailed(fmt.Errorf("%w: no driver for state %s", lifecycle.ErrInvariantViolation, s.rec.State))
}

func awaitFailed(err error) lifecycle.Event {
	if errors.Is(err, lifecycle.ErrExpired) {
		return lifecycle.TimedOut()
	}
	return lifecycle.CollaboratorFailed(err)
}

func (s *session) await(ctx context.Context, action string, timeout time.Duration, check func(ui.Interaction) (string, bool)) (ui.Interaction, error) {
	lifecycle.Arm(s.rec, timeout, s.runner.now())
	return s.prompt(ctx, timeout, check, action)
}

// prompt waits for the initiator to answer any of actions without re-arming the deadline.
func (s *session) prompt(ctx context.Context, timeout time.Duration, check func(ui.Interaction) (string, bool), actions ...string) (ui.Interaction, error) {
	ids := make([]string, len(actions))
	for i, a := range actions {
		ids[i] = ui.CustomID(s.rec.SessionID, a)
	}
	return s.runner.awaiter.Await(ctx, ui.Prompt{
		SessionID: s.rec.SessionID,
		CustomIDs: ids,
		ActorID:   s.rec.InitiatorID,
		Timeout:   timeout,
		Check:     check,
	})
}

// step dispatches ev and runs the entry effect of the resulting state.
// A non-nil return is a follow-up event caused by a failed effect.
func (s *session) step(ctx context.Context, ev lifecycle.Event) *lifecycle.Event {
	from := s.rec.State
	tr, err := lifecycle.Dispatch(s.rec, ev, s.runner.now())
	switch {
	case errors.Is(err, lifecycle.ErrIllegalTransition):
		metrics.RecordIllegalTransition(string(from), ev.Kind.String())
		s.logger.Error().Err(err).
			Str(log.FieldEvent, "workflow.illegal_transition").
			Str(log.FieldOldState, string(from)).
			Str("trigger", ev.Kind.String()).
			Msg("illegal workflow transition")
	case err != nil:
		follow := lifecycle.CollaboratorFailed(fmt.Errorf("%w: %w", lifecycle.ErrInvariantViolation, err))
		return &follow
	}

	if s.rec.State != from {
		metrics.RecordTransition(string(from), string(s.rec.State), ev.Kind.String())
		le := s.logger.Debug()
		if ev.Err != nil {
			le = s.logger.Warn().Err(ev.Err)
		}
		le.Str(log.FieldEvent, "workflow.transition").
			Str(log.FieldOldState, string(tr.From)).
			Str(log.FieldNewState, string(s.rec.State)).
			Str("trigger", ev.Kind.String()).
			Str(log.FieldReason, string(s.rec.Reason)).
			Msg("workflow transition")
	}

	return s.enter(ctx)
}

// enter renders the state just entered.
func (s *session) enter(ctx context.Context) *lifecycle.Event {
	var err error
	switch st := s.rec.State; {
	case st == model.StateAwaitingTrigger:
		err = s.surface.Render(ctx, triggerMessage(s.rec.SessionID))
		s.controls = true
	case st == model.StateAwaitingSelection:
		err = s.surface.Render(ctx, selectionMessage(s.rec.SessionID, s.rec.Candidates))
		s.controls = true
	case st.RetractsPrompts() && !st.IsTerminal():
		// Resolution ends the disambiguation before the write is attempted.
		if s.controls {
			if rerr := s.surface.Retract(ctx); rerr != nil {
				s.logger.Warn().Err(rerr).Str(log.FieldEvent, "workflow.retract_failed").Msg("failed to retract prompt")
			}
			s.controls = false
		}
	}
	if err != nil {
		follow := lifecycle.SurfaceFailed(err)
		return &follow
	}
	return nil
}

// finish renders the terminal message. It never uses the session context
// so that cancelled sessions still leave a visible response.
func (s *session) finish(ctx context.Context) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), renderTimeout)
	defer cancel()

	if err := s.surface.Render(rctx, terminalMessage(s.rec, s.outcome)); err != nil {
		s.logger.Error().Err(err).Str(log.FieldEvent, "workflow.render_failed").Msg("failed to render final message")
		if s.controls {
			if rerr := s.surface.Retract(rctx); rerr != nil {
				s.logger.Error().Err(rerr).Str(log.FieldEvent, "workflow.retract_failed").Msg("failed to retract prompt")
			}
		}
	}
	s.controls = false
}

func (s *session) result(started, finished time.Time) Result {
	res := Result{
		SessionID:   s.rec.SessionID,
		InitiatorID: s.rec.InitiatorID,
		SearchTerm:  s.rec.SearchTerm,
		State:       s.rec.State,
		Reason:      s.rec.Reason,
		Product:     s.rec.Resolved,
		Text:        s.req.Text,
		Color:       s.req.Color,
		Candidates:  len(s.rec.Candidates),
		Started:     started,
		Finished:    finished,
	}
	if s.outcome != nil {
		res.Detail = s.outcome.Detail
	}
	return res
}
