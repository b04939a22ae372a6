// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package daemon owns the process lifecycle: the gateway, the ops API,
// config reloads and graceful session draining.
package daemon

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ManuGH/statusbot/internal/audit"
	"github.com/ManuGH/statusbot/internal/auth"
	"github.com/ManuGH/statusbot/internal/config"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/ratelimit"
	"github.com/rs/zerolog"
)

// DefaultDrainTimeout bounds how long shutdown waits for in-flight sessions.
const DefaultDrainTimeout = 10 * time.Second

// Service is a long-running component that stops when ctx is done.
type Service interface {
	Run(ctx context.Context) error
}

// Workflow drains in-flight sessions.
type Workflow interface {
	Shutdown(ctx context.Context) error
}

// Deps are the runtime components owned by App.
type Deps struct {
	Bot      Service
	API      Service // optional
	Workflow Workflow
	Config   *config.ConfigHolder // optional

	// Hot-reload targets.
	Access  *auth.Allowlist
	Limiter *ratelimit.UserLimiter
	Audit   *audit.Logger

	DrainTimeout time.Duration
}

// App runs the bot until its context is cancelled or a component fails.
type App struct {
	deps         Deps
	logger       zerolog.Logger
	reloadSignal os.Signal
}

func NewApp(deps Deps) (*App, error) {
	if deps.Bot == nil {
		return nil, ErrMissingBot
	}
	if deps.Workflow == nil {
		return nil, ErrMissingWorkflow
	}
	if deps.DrainTimeout <= 0 {
		deps.DrainTimeout = DefaultDrainTimeout
	}
	return &App{
		deps:         deps,
		logger:       log.WithComponent("daemon"),
		reloadSignal: syscall.SIGHUP,
	}, nil
}

// Run starts all components and blocks until ctx is cancelled or one fails.
// In-flight sessions are cancelled and drained before Run returns.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.deps.Bot.Run(gctx) })

	if a.deps.API != nil {
		g.Go(func() error { return a.deps.API.Run(gctx) })
	}

	if h := a.deps.Config; h != nil {
		updates := make(chan config.AppConfig, 1)
		h.RegisterListener(updates)

		g.Go(func() error {
			if err := h.Watch(gctx); err != nil {
				a.logger.Warn().Err(err).Str(log.FieldEvent, "config.watcher_failed").Msg("config watcher stopped")
			}
			return nil
		})
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case cfg := <-updates:
					a.Apply(cfg)
				}
			}
		})
		if a.reloadSignal != nil {
			g.Go(func() error { return a.reloadOnSignal(gctx, h) })
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Str(log.FieldEvent, "daemon.draining").Msg("draining in-flight sessions")
		dctx, cancel := context.WithTimeout(context.WithoutCancel(gctx), a.deps.DrainTimeout)
		defer cancel()
		if err := a.deps.Workflow.Shutdown(dctx); err != nil {
			a.logger.Warn().Err(err).Str(log.FieldEvent, "daemon.drain_incomplete").Msg("sessions still running at shutdown")
		}
		return nil
	})

	err := g.Wait()
	a.logger.Info().Str(log.FieldEvent, "daemon.stopped").Msg("daemon stopped")
	return err
}

func (a *App) reloadOnSignal(ctx context.Context, h *config.ConfigHolder) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, a.reloadSignal)
	defer signal.Stop(sig)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sig:
			a.logger.Info().
				Str(log.FieldEvent, "config.reload_signal").
				Str("signal", a.reloadSignal.String()).
				Msg("received reload signal, reloading config")
			if err := h.Reload(ctx); err != nil {
				if a.deps.Audit != nil {
					a.deps.Audit.ConfigReload("signal", "failure", map[string]string{"error": err.Error()})
				}
			}
		}
	}
}

// Apply swaps the hot-reloadable settings of a newly loaded configuration.
func (a *App) Apply(cfg config.AppConfig) {
	if a.deps.Access != nil {
		a.deps.Access.Replace(cfg.Access.AllowedUsers, cfg.Access.AllowedRoles)
	}
	if a.deps.Limiter != nil {
		a.deps.Limiter.Update(ratelimit.Config{
			Rate:  rate.Limit(cfg.Access.CommandRate),
			Burst: cfg.Access.CommandBurst,
		})
	}
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		a.logger.Warn().Err(err).Str(log.FieldEvent, "log.level_invalid").Str("level", cfg.Log.Level).Msg("keeping current log level")
	}

	a.logger.Info().
		Str(log.FieldEvent, "config.applied").
		Int("allowed_users", len(cfg.Access.AllowedUsers)).
		Int("allowed_roles", len(cfg.Access.AllowedRoles)).
		Msg("applied reloaded access settings")

	if a.deps.Audit != nil {
		a.deps.Audit.ConfigReload("change", "applied", map[string]string{
			"allowed_users": strconv.Itoa(len(cfg.Access.AllowedUsers)),
			"allowed_roles": strconv.Itoa(len(cfg.Access.AllowedRoles)),
			"log_level":     cfg.Log.Level,
		})
	}
}
