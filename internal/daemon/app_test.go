// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ManuGH/statusbot/internal/auth"
	"github.com/ManuGH/statusbot/internal/config"
	"github.com/ManuGH/statusbot/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type blockingService struct {
	stopped atomic.Bool
}

func (s *blockingService) Run(ctx context.Context) error {
	<-ctx.Done()
	s.stopped.Store(true)
	return nil
}

type failingService struct{ err error }

func (s failingService) Run(context.Context) error { return s.err }

type fakeWorkflow struct {
	drained atomic.Bool
}

func (w *fakeWorkflow) Shutdown(context.Context) error {
	w.drained.Store(true)
	return nil
}

func TestNewApp_RequiresComponents(t *testing.T) {
	_, err := NewApp(Deps{Workflow: &fakeWorkflow{}})
	assert.ErrorIs(t, err, ErrMissingBot)

	_, err = NewApp(Deps{Bot: &blockingService{}})
	assert.ErrorIs(t, err, ErrMissingWorkflow)
}

func TestRun_StopsAndDrainsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	bot, api, wf := &blockingService{}, &blockingService{}, &fakeWorkflow{}
	app, err := NewApp(Deps{Bot: bot, API: api, Workflow: wf})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, bot.stopped.Load())
	assert.True(t, api.stopped.Load())
	assert.True(t, wf.drained.Load())
}

func TestRun_ComponentFailureStopsEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("gateway refused")
	api, wf := &blockingService{}, &fakeWorkflow{}
	app, err := NewApp(Deps{Bot: failingService{err: boom}, API: api, Workflow: wf})
	require.NoError(t, err)

	err = app.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, api.stopped.Load())
	assert.True(t, wf.drained.Load())
}

func TestApply_SwapsAccessAndLimits(t *testing.T) {
	access := auth.NewAllowlist([]string{"1"}, nil)
	limiter := ratelimit.New(ratelimit.Config{Rate: 0.01, Burst: 1})
	app, err := NewApp(Deps{Bot: &blockingService{}, Workflow: &fakeWorkflow{}, Access: access, Limiter: limiter})
	require.NoError(t, err)

	require.True(t, limiter.Allow("2", "product-status"))
	require.False(t, limiter.Allow("2", "product-status"))

	cfg := config.Defaults()
	cfg.Access.AllowedUsers = []string{"2"}
	cfg.Access.AllowedRoles = []string{"staff"}
	cfg.Access.CommandRate = 0
	cfg.Log.Level = "info"
	app.Apply(cfg)

	assert.ErrorIs(t, access.Authorize(auth.Actor{UserID: "1"}), auth.ErrNotAllowed)
	assert.NoError(t, access.Authorize(auth.Actor{UserID: "2"}))
	assert.NoError(t, access.Authorize(auth.Actor{UserID: "9", RoleIDs: []string{"staff"}}))
	assert.True(t, limiter.Allow("2", "product-status"))
	assert.True(t, limiter.Allow("2", "product-status"))
}
