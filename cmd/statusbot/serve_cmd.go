// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/ManuGH/statusbot/internal/config"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/version"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var so serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Connect to Discord and serve /product-status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts.configPath, so)
		},
	}
	cmd.Flags().BoolVar(&so.registerOnStart, "register", true, "register the slash command once the gateway is ready")
	return cmd
}

func serve(parent context.Context, configPath string, so serveOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Configure(log.Config{Level: "info", Version: version.Version})
	logger := log.WithComponent("main")

	loader := config.NewLoader(configPath, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Error().Err(err).
			Str(log.FieldEvent, "config.load_failed").
			Str("config_path", configPath).
			Msg("failed to load configuration")
		return err
	}

	log.Configure(log.Config{Level: cfg.Log.Level, Service: cfg.Log.Service, Version: version.Version})
	logger = log.WithComponent("main")
	logger.Info().
		Str(log.FieldEvent, "startup").
		Str("version", version.String()).
		Str("entry_mode", cfg.Workflow.EntryMode).
		Str("shop_id", cfg.Catalog.ShopID).
		Str(log.FieldBaseURL, cfg.Catalog.BaseURL).
		Str("api_listen", cfg.API.ListenAddr).
		Msg("starting statusbot")

	rt, err := build(ctx, cfg, config.NewConfigHolder(cfg, loader), so)
	if err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "startup.failed").Msg("failed to wire components")
		return err
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.Close(cctx); err != nil {
			logger.Warn().Err(err).Str(log.FieldEvent, "shutdown.cleanup_failed").Msg("cleanup incomplete")
		}
	}()

	if err := rt.app.Run(ctx); err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "daemon.failed").Msg("statusbot stopped with error")
		return err
	}
	logger.Info().Str(log.FieldEvent, "shutdown.complete").Msg("statusbot stopped")
	return nil
}
