// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// Entry modes for /product-status.
const (
	// EntryModeUpfront requires the product option and searches immediately.
	EntryModeUpfront = "upfront"
	// EntryModePrompt always shows the search button first.
	EntryModePrompt = "prompt"
	// EntryModeAuto searches when a product is given and prompts otherwise.
	EntryModeAuto = "auto"
)

// Telemetry exporters.
const (
	ExporterGRPC = "grpc"
	ExporterHTTP = "http"
)

// AppConfig is the complete, merged configuration.
type AppConfig struct {
	Version string `yaml:"-"`

	Discord   DiscordConfig   `yaml:"discord"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
	Access    AccessConfig    `yaml:"access"`
	Cache     CacheConfig     `yaml:"cache"`
	Audit     AuditConfig     `yaml:"audit"`
	API       APIConfig       `yaml:"api"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type DiscordConfig struct {
	Token string `yaml:"token"`
	AppID string `yaml:"appId"`
	// GuildID scopes command registration to one guild. Empty registers globally.
	GuildID string `yaml:"guildId"`
}

type CatalogConfig struct {
	BaseURL          string        `yaml:"baseUrl"`
	Token            string        `yaml:"token"`
	ShopID           string        `yaml:"shopId"`
	Timeout          time.Duration `yaml:"timeout"`
	BreakerThreshold int           `yaml:"breakerThreshold"`
	BreakerReset     time.Duration `yaml:"breakerReset"`
	// ListingTTL caches the product listing. Zero disables caching.
	ListingTTL time.Duration `yaml:"listingTTL"`
	// RateLimit bounds catalog requests per second. Zero disables it.
	RateLimit float64 `yaml:"rateLimit"`
}

type WorkflowConfig struct {
	EntryMode        string        `yaml:"entryMode"`
	TriggerTimeout   time.Duration `yaml:"triggerTimeout"`
	SearchTimeout    time.Duration `yaml:"searchTimeout"`
	SelectionTimeout time.Duration `yaml:"selectionTimeout"`
}

type AccessConfig struct {
	AllowedUsers []string `yaml:"allowedUsers"`
	AllowedRoles []string `yaml:"allowedRoles"`
	// CommandRate is the sustained per-user invocation rate (per second).
	CommandRate  float64 `yaml:"commandRate"`
	CommandBurst int     `yaml:"commandBurst"`
}

type CacheConfig struct {
	// RedisAddr selects the Redis listing cache. Empty uses memory.
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDb"`
}

type AuditConfig struct {
	// DBPath enables the sqlite audit store. Empty keeps the log trail only.
	DBPath string `yaml:"dbPath"`
}

type APIConfig struct {
	ListenAddr string `yaml:"listenAddr"`
	// RateLimit is requests per minute per client IP.
	RateLimit int `yaml:"rateLimit"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		Catalog: CatalogConfig{
			Timeout:          10 * time.Second,
			BreakerThreshold: 5,
			BreakerReset:     30 * time.Second,
		},
		Workflow: WorkflowConfig{
			EntryMode:        EntryModeAuto,
			TriggerTimeout:   120 * time.Second,
			SearchTimeout:    120 * time.Second,
			SelectionTimeout: 120 * time.Second,
		},
		Access: AccessConfig{
			CommandRate:  0.2,
			CommandBurst: 2,
		},
		API: APIConfig{
			ListenAddr: ":9464",
			RateLimit:  60,
		},
		Log: LogConfig{
			Level:   "info",
			Service: "statusbot",
		},
		Telemetry: TelemetryConfig{
			Exporter:     ExporterGRPC,
			SamplingRate: 1.0,
		},
	}
}
