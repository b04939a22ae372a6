// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"strings"
	"time"

	"github.com/ManuGH/statusbot/internal/validate"
)

// Validate enforces the configuration rules. Every violation is reported.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.NotEmpty("discord.token", cfg.Discord.Token)
	if cfg.Discord.AppID != "" {
		v.Snowflake("discord.appId", cfg.Discord.AppID)
	}
	if cfg.Discord.GuildID != "" {
		v.Snowflake("discord.guildId", cfg.Discord.GuildID)
	}

	v.URL("catalog.baseUrl", cfg.Catalog.BaseURL, []string{"http", "https"})
	v.NotEmpty("catalog.shopId", cfg.Catalog.ShopID)
	v.DurationRange("catalog.timeout", cfg.Catalog.Timeout, time.Second, 2*time.Minute)
	v.Range("catalog.breakerThreshold", cfg.Catalog.BreakerThreshold, 1, 100)
	v.DurationRange("catalog.breakerReset", cfg.Catalog.BreakerReset, time.Second, 10*time.Minute)
	v.DurationRange("catalog.listingTTL", cfg.Catalog.ListingTTL, 0, time.Hour)
	v.FloatRange("catalog.rateLimit", cfg.Catalog.RateLimit, 0, 1000)

	v.OneOf("workflow.entryMode", cfg.Workflow.EntryMode, []string{EntryModeUpfront, EntryModePrompt, EntryModeAuto})
	// Interaction tokens expire after 15 minutes; every prompt must fit well inside.
	v.DurationRange("workflow.triggerTimeout", cfg.Workflow.TriggerTimeout, 10*time.Second, 10*time.Minute)
	v.DurationRange("workflow.searchTimeout", cfg.Workflow.SearchTimeout, 10*time.Second, 10*time.Minute)
	v.DurationRange("workflow.selectionTimeout", cfg.Workflow.SelectionTimeout, time.Second, 10*time.Minute)

	if len(cfg.Access.AllowedUsers) == 0 && len(cfg.Access.AllowedRoles) == 0 {
		v.AddError("access", "at least one allowed user or role is required", nil)
	}
	for _, id := range cfg.Access.AllowedUsers {
		v.Snowflake("access.allowedUsers", id)
	}
	for _, id := range cfg.Access.AllowedRoles {
		v.Snowflake("access.allowedRoles", id)
	}
	v.FloatRange("access.commandRate", cfg.Access.CommandRate, 0, 100)
	v.Range("access.commandBurst", cfg.Access.CommandBurst, 1, 100)

	if cfg.Cache.RedisAddr != "" {
		v.HostPort("cache.redisAddr", cfg.Cache.RedisAddr)
	}
	v.Range("cache.redisDb", cfg.Cache.RedisDB, 0, 15)

	if strings.TrimSpace(cfg.API.ListenAddr) != "" {
		v.HostPort("api.listenAddr", cfg.API.ListenAddr)
	}
	v.Range("api.rateLimit", cfg.API.RateLimit, 1, 10000)

	if _, err := validate.ParseLogLevel(cfg.Log.Level); err != nil {
		v.AddError("log.level", "must be one of trace, debug, info, warn, error", cfg.Log.Level)
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{ExporterGRPC, ExporterHTTP})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.FloatRange("telemetry.samplingRate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	return v.Err()
}
