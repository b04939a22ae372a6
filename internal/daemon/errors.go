// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import "errors"

var (
	// ErrMissingBot is returned when an App is created without a gateway bot.
	ErrMissingBot = errors.New("bot is required")

	// ErrMissingWorkflow is returned when an App is created without a session runner.
	ErrMissingWorkflow = errors.New("workflow runner is required")
)
