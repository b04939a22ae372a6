// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/resolver"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/updater"
	"github.com/ManuGH/statusbot/internal/ui"
	"github.com/stretchr/testify/require"
)

const (
	testSession   = "sess-1"
	testInitiator = "u1"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fakeSurface struct {
	mu        sync.Mutex
	renders   []ui.Message
	modals    []ui.Modal
	acks      []ui.Interaction
	rejects   []string
	retracts  int
	renderErr error
	modalErr  error
}

func (f *fakeSurface) Render(_ context.Context, m ui.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.renderErr != nil {
		return f.renderErr
	}
	f.renders = append(f.renders, m)
	return nil
}

func (f *fakeSurface) Retract(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retracts++
	return nil
}

func (f *fakeSurface) ShowModal(_ context.Context, ix ui.Interaction, m ui.Modal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.modalErr != nil {
		return f.modalErr
	}
	f.modals = append(f.modals, m)
	f.acks = append(f.acks, ix)
	return nil
}

func (f *fakeSurface) Acknowledge(_ context.Context, ix ui.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks = append(f.acks, ix)
	return nil
}

func (f *fakeSurface) Reject(_ context.Context, _ ui.Interaction, notice string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejects = append(f.rejects, notice)
	return nil
}

func (f *fakeSurface) snapshot() fakeSurface {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeSurface{
		renders:  append([]ui.Message(nil), f.renders...),
		modals:   append([]ui.Modal(nil), f.modals...),
		acks:     append([]ui.Interaction(nil), f.acks...),
		rejects:  append([]string(nil), f.rejects...),
		retracts: f.retracts,
	}
}

func (f *fakeSurface) last() ui.Message {
	s := f.snapshot()
	if len(s.renders) == 0 {
		return ui.Message{}
	}
	return s.renders[len(s.renders)-1]
}

type fakeLister struct {
	products []model.Candidate
	err      error
}

func (f *fakeLister) ListProducts(context.Context) ([]model.Candidate, error) {
	return f.products, f.err
}

type writeCall struct {
	ids   []model.ProductID
	color *string
	text  string
}

type fakeWriter struct {
	mu    sync.Mutex
	calls []writeCall
	err   error
}

func (f *fakeWriter) UpdateStatus(_ context.Context, ids []model.ProductID, color *string, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, writeCall{ids: ids, color: color, text: text})
	return f.err
}

func (f *fakeWriter) writes() []writeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]writeCall(nil), f.calls...)
}

// shortAwaiter shrinks prompt timeouts so expiry tests run fast, and records the
// timeout each prompt asked for.
type shortAwaiter struct {
	inner   *ui.Collector
	timeout time.Duration

	mu        sync.Mutex
	requested []time.Duration
}

func (a *shortAwaiter) Await(ctx context.Context, p ui.Prompt) (ui.Interaction, error) {
	a.mu.Lock()
	a.requested = append(a.requested, p.Timeout)
	a.mu.Unlock()
	if a.timeout > 0 {
		p.Timeout = a.timeout
	}
	return a.inner.Await(ctx, p)
}

func (a *shortAwaiter) snapshot() []time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]time.Duration(nil), a.requested...)
}

type recordingObserver struct {
	mu      sync.Mutex
	results []Result
}

func (o *recordingObserver) SessionFinished(_ context.Context, res Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, res)
}

type harness struct {
	surface   *fakeSurface
	lister    *fakeLister
	writer    *fakeWriter
	collector *ui.Collector
	awaiter   *shortAwaiter
	observer  *recordingObserver
	runner    *Runner
}

func newHarness(t *testing.T, products []model.Candidate, opts Options, promptTimeout time.Duration) *harness {
	t.Helper()
	h := &harness{
		surface:  &fakeSurface{},
		lister:   &fakeLister{products: products},
		writer:   &fakeWriter{},
		observer: &recordingObserver{},
	}
	h.collector = ui.NewCollector(h.surface)
	h.awaiter = &shortAwaiter{inner: h.collector, timeout: promptTimeout}
	h.runner = NewRunner(
		resolver.New(h.lister),
		updater.New(h.writer, model.DefaultPalette(), updater.WithClock(func() time.Time { return fixedNow })),
		h.awaiter,
		opts,
		WithIDGenerator(func() string { return testSession }),
		WithObserver(h.observer),
	)
	return h
}

func (h *harness) start(ctx context.Context, req Request) <-chan Result {
	done := make(chan Result, 1)
	go func() { done <- h.runner.Run(ctx, h.surface, req) }()
	return done
}

func (h *harness) waitPrompt(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool { return h.collector.Pending() > 0 }, 2*time.Second, time.Millisecond)
}

func (h *harness) deliver(kind ui.InteractionKind, action, user string, values []string, fields map[string]string) ui.Verdict {
	return h.collector.Deliver(context.Background(), ui.Interaction{
		Kind:     kind,
		CustomID: ui.CustomID(testSession, action),
		UserID:   user,
		Values:   values,
		Fields:   fields,
	})
}

func await(t *testing.T, done <-chan Result) Result {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(3 * time.Second):
		t.Fatal("session did not finish")
		return Result{}
	}
}

func candidate(id int64, name string) model.Candidate {
	return model.Candidate{ID: model.NumericID(id), Name: name}
}

func request(term string) Request {
	return Request{InitiatorID: testInitiator, Term: term, Text: "Back soon", Color: model.ColorOrange}
}
