// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/ManuGH/statusbot/internal/api"
	"github.com/ManuGH/statusbot/internal/audit"
	"github.com/ManuGH/statusbot/internal/auth"
	"github.com/ManuGH/statusbot/internal/cache"
	"github.com/ManuGH/statusbot/internal/catalog"
	"github.com/ManuGH/statusbot/internal/command"
	"github.com/ManuGH/statusbot/internal/config"
	"github.com/ManuGH/statusbot/internal/daemon"
	"github.com/ManuGH/statusbot/internal/discord"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/resolver"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/updater"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/workflow"
	"github.com/ManuGH/statusbot/internal/health"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/ratelimit"
	"github.com/ManuGH/statusbot/internal/telemetry"
	"github.com/ManuGH/statusbot/internal/ui"
	"github.com/ManuGH/statusbot/internal/version"
)

// runtime is the fully wired process plus the cleanup of its resources.
type runtime struct {
	app     *daemon.App
	cleanup []func(context.Context) error
}

func (r *runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.cleanup) - 1; i >= 0; i-- {
		if err := r.cleanup[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *runtime) onClose(fn func(context.Context) error) {
	r.cleanup = append(r.cleanup, fn)
}

// workflowOptions maps the entry mode onto session options.
func workflowOptions(cfg config.WorkflowConfig) workflow.Options {
	return workflow.Options{
		PromptFirst:      cfg.EntryMode == config.EntryModePrompt,
		TriggerTimeout:   cfg.TriggerTimeout,
		SearchTimeout:    cfg.SearchTimeout,
		SelectionTimeout: cfg.SelectionTimeout,
	}.Normalize()
}

// listingCache picks redis when configured and an in-memory cache otherwise.
func listingCache(ctx context.Context, cfg config.AppConfig, rt *runtime) (cache.Cache, func(context.Context) error, error) {
	if cfg.Catalog.ListingTTL <= 0 {
		return nil, nil, nil
	}
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   "statusbot:",
		}, log.WithComponent("cache"))
		if err != nil {
			return nil, nil, err
		}
		rt.onClose(func(context.Context) error { return rc.Close() })
		return rc, rc.HealthCheck, nil
	}
	mc := cache.NewMemoryCache(time.Minute)
	rt.onClose(func(context.Context) error {
		mc.Stop()
		return nil
	})
	return mc, nil, nil
}

type serveOptions struct {
	registerOnStart bool
}

func build(ctx context.Context, cfg config.AppConfig, holder *config.ConfigHolder, opts serveOptions) (_ *runtime, err error) {
	rt := &runtime{}
	defer func() {
		if err != nil {
			_ = rt.Close(context.WithoutCancel(ctx))
		}
	}()

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Log.Service,
		ServiceVersion: version.Version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	rt.onClose(tp.Shutdown)

	palette := model.DefaultPalette()
	upfront := cfg.Workflow.EntryMode == config.EntryModeUpfront

	client, err := catalog.New(catalog.Config{
		BaseURL:          cfg.Catalog.BaseURL,
		Token:            cfg.Catalog.Token,
		ShopID:           cfg.Catalog.ShopID,
		Timeout:          cfg.Catalog.Timeout,
		BreakerThreshold: cfg.Catalog.BreakerThreshold,
		BreakerReset:     cfg.Catalog.BreakerReset,
		RateLimit:        rate.Limit(cfg.Catalog.RateLimit),
		UserAgent:        "statusbot/" + version.Version,
	})
	if err != nil {
		return nil, err
	}

	listings, cachePing, err := listingCache(ctx, cfg, rt)
	if err != nil {
		return nil, err
	}
	lister := catalog.NewCachedLister(client, listings, client.ShopID(), cfg.Catalog.ListingTTL)

	auditLog := audit.NewLogger()
	var store *audit.Store
	if cfg.Audit.DBPath != "" {
		store, err = audit.OpenStore(ctx, cfg.Audit.DBPath)
		if err != nil {
			return nil, err
		}
		rt.onClose(func(context.Context) error { return store.Close() })
	}

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return nil, err
	}
	responder := discord.NewResponder(session)
	collector := ui.NewCollector(responder)

	runner := workflow.NewRunner(
		resolver.New(lister),
		updater.New(client, palette),
		collector,
		workflowOptions(cfg.Workflow),
		workflow.WithObserver(audit.NewRecorder(auditLog, store)),
	)

	access := auth.NewAllowlist(cfg.Access.AllowedUsers, cfg.Access.AllowedRoles)
	limiter := ratelimit.New(ratelimit.Config{
		Rate:  rate.Limit(cfg.Access.CommandRate),
		Burst: cfg.Access.CommandBurst,
	})
	handler := command.NewHandler(runner, access, limiter, palette,
		command.WithRequireProduct(upfront),
		command.WithAudit(auditLog),
	)

	bot := discord.NewBot(session, responder, handler, collector, discord.Commands(palette, upfront), discord.BotConfig{
		AppID:           cfg.Discord.AppID,
		GuildID:         cfg.Discord.GuildID,
		RegisterOnReady: opts.registerOnStart,
		RequireProduct:  upfront,
	})

	hm := health.NewManager(version.Version)
	hm.RegisterChecker(health.NewGatewayChecker(bot.Connected))
	hm.RegisterChecker(health.NewBreakerChecker("catalog", client.BreakerState))
	if cachePing != nil {
		hm.RegisterChecker(health.NewPingChecker("redis", cachePing, false))
	}
	if store != nil {
		hm.RegisterChecker(health.NewPingChecker("audit_db", store.Ping, false))
	}

	deps := daemon.Deps{
		Bot:      bot,
		Workflow: runner,
		Config:   holder,
		Access:   access,
		Limiter:  limiter,
		Audit:    auditLog,
	}
	if cfg.API.ListenAddr != "" {
		deps.API = api.New(api.Config{ListenAddr: cfg.API.ListenAddr, RateLimit: cfg.API.RateLimit}, hm)
	}

	app, err := daemon.NewApp(deps)
	if err != nil {
		return nil, err
	}
	rt.app = app
	return rt, nil
}
