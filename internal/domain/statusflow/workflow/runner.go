// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package workflow drives one status-update session from command invocation
// to a terminal state, rendering every step onto a ui.Surface.
package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/lifecycle"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/updater"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/metrics"
	"github.com/ManuGH/statusbot/internal/telemetry"
	"github.com/ManuGH/statusbot/internal/ui"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Resolver finds candidates for a search term.
type Resolver interface {
	Resolve(ctx context.Context, term string) ([]model.Candidate, error)
}

// Applier performs the single status write of a resolved session.
type Applier interface {
	Apply(ctx context.Context, req model.StatusUpdateRequest, productName string) (updater.Outcome, error)
}

// Awaiter blocks until a prompt is answered or expires.
type Awaiter interface {
	Await(ctx context.Context, p ui.Prompt) (ui.Interaction, error)
}

// Observer is told about every finished session.
type Observer interface {
	SessionFinished(ctx context.Context, res Result)
}

// Request is the validated input of one command invocation.
type Request struct {
	InitiatorID string
	Term        string
	Text        string
	Color       model.ColorToken
}

// Result summarizes a finished session.
type Result struct {
	SessionID   string
	InitiatorID string
	SearchTerm  string
	State       model.State
	Reason      model.ReasonCode
	Product     *model.Candidate
	Text        string
	Color       model.ColorToken
	Detail      string
	Candidates  int
	Started     time.Time
	Finished    time.Time
}

const renderTimeout = 5 * time.Second

// Runner owns the goroutines of all in-flight sessions.
type Runner struct {
	resolver Resolver
	applier  Applier
	awaiter  Awaiter
	opts     Options
	observer Observer

	now    func() time.Time
	newID  func() string
	logger zerolog.Logger
	tracer trace.Tracer

	baseCtx  context.Context
	cancel   context.CancelFunc
	sessions sessionRegistry
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock overrides the time source.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(gen func() string) RunnerOption {
	return func(r *Runner) { r.newID = gen }
}

// WithObserver registers a finished-session observer.
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) { r.observer = o }
}

// NewRunner creates a session runner. Options are normalized once here.
func NewRunner(res Resolver, app Applier, aw Awaiter, opts Options, ropts ...RunnerOption) *Runner {
	r := &Runner{
		resolver: res,
		applier:  app,
		awaiter:  aw,
		opts:     opts.Normalize(),
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   log.WithComponent("workflow"),
		tracer:   telemetry.Tracer("statusbot/workflow"),
	}
	r.baseCtx, r.cancel = context.WithCancel(context.Background())
	for _, o := range ropts {
		o(r)
	}
	return r
}

// Start runs a session in the background. It returns false once Shutdown began.
func (r *Runner) Start(s ui.Surface, req Request) bool {
	return r.sessions.Go(func() {
		r.Run(r.baseCtx, s, req)
	})
}

// Shutdown cancels every in-flight session and waits for them to render
// their final message, bounded by ctx.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.cancel()
	return r.sessions.CloseAndWait(ctx)
}

// Run drives one session synchronously until it reaches a terminal state.
func (r *Runner) Run(ctx context.Context, s ui.Surface, req Request) Result {
	started := r.now()
	id := r.newID()
	promptFirst := r.opts.PromptFirst || strings.TrimSpace(req.Term) == ""

	ctx = log.ContextWithSessionID(ctx, id)
	ctx, span := r.tracer.Start(ctx, "statusflow.session",
		trace.WithAttributes(telemetry.SessionAttributes(id, promptFirst)...))
	defer span.End()

	metrics.IncActiveSessions()
	defer metrics.DecActiveSessions()

	sess := &session{
		runner:  r,
		rec:     lifecycle.NewSessionRecord(id, req.InitiatorID, started),
		surface: s,
		req:     req,
		logger:  log.WithContext(ctx, r.logger),
	}
	sess.logger.Info().
		Str(log.FieldEvent, "workflow.started").
		Str(log.FieldUserID, req.InitiatorID).
		Bool("prompt_first", promptFirst).
		Msg("status session started")

	sess.drive(ctx, promptFirst)
	sess.finish(ctx)

	res := sess.result(started, r.now())
	metrics.RecordSessionEnd(string(res.State), string(res.Reason), res.Finished.Sub(started))
	span.SetAttributes(telemetry.OutcomeAttributes(string(res.State), string(res.Reason), res.Candidates)...)
	if res.State == model.StateFailed {
		span.SetStatus(codes.Error, string(res.Reason))
	}
	if r.observer != nil {
		r.observer.SessionFinished(context.WithoutCancel(ctx), res)
	}

	ev := sess.logger.Info()
	if res.State == model.StateFailed {
		ev = sess.logger.Warn()
	}
	ev.Str(log.FieldEvent, "workflow.finished").
		Str(log.FieldNewState, string(res.State)).
		Str(log.FieldReason, string(res.Reason)).
		Dur("elapsed", res.Finished.Sub(started)).
		Msg("status session finished")
	return res
}
