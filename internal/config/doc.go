// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads the bot configuration with precedence
// ENV > YAML file > defaults, validates it, and hot-reloads the file.
//
// The YAML file is parsed strictly: unknown keys are an error.
package config
