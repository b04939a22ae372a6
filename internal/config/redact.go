// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

const masked = "***"

// Redacted returns a copy of cfg with every credential replaced by "***".
// Empty credentials stay empty so the output still shows what is unset.
func Redacted(cfg AppConfig) AppConfig {
	mask := func(s *string) {
		if *s != "" {
			*s = masked
		}
	}
	mask(&cfg.Discord.Token)
	mask(&cfg.Catalog.Token)
	mask(&cfg.Cache.RedisPassword)
	cfg.Access.AllowedUsers = append([]string(nil), cfg.Access.AllowedUsers...)
	cfg.Access.AllowedRoles = append([]string(nil), cfg.Access.AllowedRoles...)
	return cfg
}
