// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package command admits /product-status invocations and hands them to the
// status workflow.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/statusbot/internal/audit"
	"github.com/ManuGH/statusbot/internal/auth"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/updater"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/workflow"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/metrics"
	"github.com/ManuGH/statusbot/internal/ratelimit"
	"github.com/ManuGH/statusbot/internal/ui"
	"github.com/rs/zerolog"
)

// ProductStatus is the slash command name.
const ProductStatus = "product-status"

// Private notices for rejected invocations.
const (
	NoticeDenied    = "You are not allowed to use this command."
	NoticeThrottled = "You're doing that too fast. Please wait a moment and try again."
	NoticeNoProduct = "Please provide a product name."
	NoticeEmptyText = "The status text must not be empty."
	NoticeTextLong  = "The status text is too long."
	NoticeBadColor  = "Unknown status color."
)

// ErrShuttingDown is returned by Handle when the workflow no longer accepts sessions.
var ErrShuttingDown = errors.New("command: workflow is shutting down")

// Invocation is one /product-status call as reported by the transport.
type Invocation struct {
	InteractionID string
	Actor         auth.Actor
	// Product is the optional search term.
	Product string
	Text    string
	// Color is the raw choice value: a token, a hex value or "null".
	Color string
}

// Admission is the outcome of Admit.
type Admission int

const (
	Admitted Admission = iota
	Denied
	Throttled
	Invalid
)

func (a Admission) String() string {
	switch a {
	case Admitted:
		return "accepted"
	case Denied:
		return "denied"
	case Throttled:
		return "throttled"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Decision carries the admission result and, when admitted, the workflow request.
type Decision struct {
	Admission Admission
	Notice    string
	Request   workflow.Request
}

// Starter launches a workflow session.
type Starter interface {
	Start(s ui.Surface, req workflow.Request) bool
}

// Reply answers the slash command interaction itself.
type Reply interface {
	// Defer acknowledges the command; the session then edits the response.
	Defer(ctx context.Context) error
	// Deny answers with a notice only the invoker sees.
	Deny(ctx context.Context, notice string) error
}

// Handler admits invocations and starts sessions.
type Handler struct {
	runner         Starter
	access         *auth.Allowlist
	limiter        *ratelimit.UserLimiter
	palette        model.Palette
	audit          *audit.Logger
	requireProduct bool
	logger         zerolog.Logger
}

// Option customizes a Handler.
type Option func(*Handler)

// WithRequireProduct rejects invocations without a product term.
func WithRequireProduct(required bool) Option {
	return func(h *Handler) { h.requireProduct = required }
}

// WithAudit records denied and throttled invocations.
func WithAudit(l *audit.Logger) Option {
	return func(h *Handler) { h.audit = l }
}

// NewHandler creates the /product-status handler.
func NewHandler(runner Starter, access *auth.Allowlist, limiter *ratelimit.UserLimiter, palette model.Palette, opts ...Option) *Handler {
	h := &Handler{
		runner:  runner,
		access:  access,
		limiter: limiter,
		palette: palette,
		logger:  log.WithComponent("command"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Admit applies the allow-list, then the per-user throttle, then input checks.
func (h *Handler) Admit(inv Invocation) Decision {
	if err := h.access.Authorize(inv.Actor); err != nil {
		if h.audit != nil {
			h.audit.CommandDenied(inv.Actor.UserID, ProductStatus)
		}
		return Decision{Admission: Denied, Notice: NoticeDenied}
	}
	if h.limiter != nil && !h.limiter.Allow(inv.Actor.UserID, ProductStatus) {
		if h.audit != nil {
			h.audit.CommandRateLimited(inv.Actor.UserID, ProductStatus)
		}
		return Decision{Admission: Throttled, Notice: NoticeThrottled}
	}

	term := strings.TrimSpace(inv.Product)
	if h.requireProduct && term == "" {
		return Decision{Admission: Invalid, Notice: NoticeNoProduct}
	}

	color, err := h.palette.Parse(inv.Color)
	if err == nil {
		err = model.ValidateStatus(h.palette, inv.Text, color)
	}
	if err != nil {
		return Decision{Admission: Invalid, Notice: invalidNotice(err)}
	}

	return Decision{
		Admission: Admitted,
		Request: workflow.Request{
			InitiatorID: inv.Actor.UserID,
			Term:        term,
			Text:        inv.Text,
			Color:       color,
		},
	}
}

func invalidNotice(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyText):
		return NoticeEmptyText
	case errors.Is(err, model.ErrUnknownColor):
		return NoticeBadColor
	default:
		return NoticeTextLong
	}
}

// Handle answers the command and, when admitted, starts a session on s.
func (h *Handler) Handle(ctx context.Context, inv Invocation, reply Reply, s ui.Surface) error {
	ctx = log.ContextWithInteractionID(ctx, inv.InteractionID)
	logger := log.WithContext(ctx, h.logger)

	dec := h.Admit(inv)
	metrics.RecordCommand(ProductStatus, dec.Admission.String())

	if dec.Admission != Admitted {
		logger.Info().
			Str(log.FieldEvent, "command.rejected").
			Str(log.FieldUserID, inv.Actor.UserID).
			Str("admission", dec.Admission.String()).
			Msg("invocation rejected")
		if err := reply.Deny(ctx, dec.Notice); err != nil {
			return fmt.Errorf("deny invocation: %w", err)
		}
		return nil
	}

	if err := reply.Defer(ctx); err != nil {
		return fmt.Errorf("defer invocation: %w", err)
	}

	if !h.runner.Start(s, dec.Request) {
		logger.Warn().
			Str(log.FieldEvent, "command.shutting_down").
			Msg("session not started, workflow is shutting down")
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = s.Render(rctx, ui.Message{Embeds: []ui.Embed{{
			Description: workflow.MsgGenericError,
			Color:       updater.ErrorColor,
		}}})
		return ErrShuttingDown
	}
	return nil
}
