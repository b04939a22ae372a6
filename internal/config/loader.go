// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ManuGH/statusbot/internal/metrics"
	"gopkg.in/yaml.v3"
)

// Environment variables, highest precedence.
const (
	EnvDiscordToken     = "STATUSBOT_DISCORD_TOKEN"
	EnvDiscordAppID     = "STATUSBOT_DISCORD_APP_ID"
	EnvDiscordGuildID   = "STATUSBOT_DISCORD_GUILD_ID"
	EnvCatalogBaseURL   = "STATUSBOT_CATALOG_BASE_URL"
	EnvCatalogToken     = "STATUSBOT_CATALOG_TOKEN"
	EnvShopID           = "STATUSBOT_SHOP_ID"
	EnvCatalogTimeout   = "STATUSBOT_CATALOG_TIMEOUT"
	EnvEntryMode        = "STATUSBOT_ENTRY_MODE"
	EnvAllowedUsers     = "STATUSBOT_ALLOWED_USERS"
	EnvAllowedRoles     = "STATUSBOT_ALLOWED_ROLES"
	EnvRedisAddr        = "STATUSBOT_REDIS_ADDR"
	EnvRedisPassword    = "STATUSBOT_REDIS_PASSWORD"
	EnvAuditDB          = "STATUSBOT_AUDIT_DB"
	EnvListen           = "STATUSBOT_LISTEN"
	EnvLogLevel         = "STATUSBOT_LOG_LEVEL"
	EnvTelemetryEnabled = "STATUSBOT_TELEMETRY_ENABLED"
	EnvTelemetryTarget  = "STATUSBOT_TELEMETRY_ENDPOINT"
)

// Loader handles configuration loading with precedence ENV > file > defaults.
type Loader struct {
	configPath string
	version    string
	// ConsumedEnvKeys records every variable the last Load consulted.
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a loader. An empty configPath means ENV and defaults only.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// Path returns the config file path, if any.
func (l *Loader) Path() string { return l.configPath }

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envList(key string, defaultVal []string) []string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseStringList(key, defaultVal)
}

// Load merges defaults, the config file and the environment, then validates.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := l.loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	l.mergeEnv(&cfg)
	normalize(&cfg)
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		metrics.IncConfigValidationError()
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile decodes the YAML file over cfg. Unknown keys are rejected.
func (l *Loader) loadFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: %s (only YAML supported)", ErrUnsupportedFormat, ext)
	}

	// #nosec G304 -- the operator chooses the config path
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("config file contains multiple documents or trailing content")
	}
	return nil
}

func (l *Loader) mergeEnv(cfg *AppConfig) {
	cfg.Discord.Token = l.envString(EnvDiscordToken, cfg.Discord.Token)
	cfg.Discord.AppID = l.envString(EnvDiscordAppID, cfg.Discord.AppID)
	cfg.Discord.GuildID = l.envString(EnvDiscordGuildID, cfg.Discord.GuildID)

	cfg.Catalog.BaseURL = l.envString(EnvCatalogBaseURL, cfg.Catalog.BaseURL)
	cfg.Catalog.Token = l.envString(EnvCatalogToken, cfg.Catalog.Token)
	cfg.Catalog.ShopID = l.envString(EnvShopID, cfg.Catalog.ShopID)
	cfg.Catalog.Timeout = l.envDuration(EnvCatalogTimeout, cfg.Catalog.Timeout)

	cfg.Workflow.EntryMode = l.envString(EnvEntryMode, cfg.Workflow.EntryMode)

	cfg.Access.AllowedUsers = l.envList(EnvAllowedUsers, cfg.Access.AllowedUsers)
	cfg.Access.AllowedRoles = l.envList(EnvAllowedRoles, cfg.Access.AllowedRoles)

	cfg.Cache.RedisAddr = l.envString(EnvRedisAddr, cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = l.envString(EnvRedisPassword, cfg.Cache.RedisPassword)

	cfg.Audit.DBPath = l.envString(EnvAuditDB, cfg.Audit.DBPath)
	cfg.API.ListenAddr = l.envString(EnvListen, cfg.API.ListenAddr)
	cfg.Log.Level = l.envString(EnvLogLevel, cfg.Log.Level)

	cfg.Telemetry.Enabled = l.envBool(EnvTelemetryEnabled, cfg.Telemetry.Enabled)
	cfg.Telemetry.Endpoint = l.envString(EnvTelemetryTarget, cfg.Telemetry.Endpoint)
}

// normalize trims identifiers and lower-cases enum values.
func normalize(cfg *AppConfig) {
	cfg.Discord.Token = strings.TrimSpace(cfg.Discord.Token)
	cfg.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Catalog.BaseURL), "/")
	cfg.Catalog.ShopID = strings.TrimSpace(cfg.Catalog.ShopID)
	cfg.Workflow.EntryMode = strings.ToLower(strings.TrimSpace(cfg.Workflow.EntryMode))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Telemetry.Exporter = strings.ToLower(strings.TrimSpace(cfg.Telemetry.Exporter))
	cfg.Access.AllowedUsers = trimList(cfg.Access.AllowedUsers)
	cfg.Access.AllowedRoles = trimList(cfg.Access.AllowedRoles)
}

func trimList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
