// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package workflow

import "time"

const (
	DefaultPromptTimeout = 120 * time.Second
	MinSelectionTimeout  = 30 * time.Second
	MaxSelectionTimeout  = 120 * time.Second
)

// Options selects the entry mode and prompt timeouts of a session.
type Options struct {
	// PromptFirst shows a search button and modal before searching, even
	// when a term was given with the command.
	PromptFirst bool

	TriggerTimeout   time.Duration
	SearchTimeout    time.Duration
	SelectionTimeout time.Duration
}

// Normalize fills zero timeouts and clamps the selection timeout.
func (o Options) Normalize() Options {
	if o.TriggerTimeout <= 0 {
		o.TriggerTimeout = DefaultPromptTimeout
	}
	if o.SearchTimeout <= 0 {
		o.SearchTimeout = DefaultPromptTimeout
	}
	switch {
	case o.SelectionTimeout <= 0:
		o.SelectionTimeout = DefaultPromptTimeout
	case o.SelectionTimeout < MinSelectionTimeout:
		o.SelectionTimeout = MinSelectionTimeout
	case o.SelectionTimeout > MaxSelectionTimeout:
		o.SelectionTimeout = MaxSelectionTimeout
	}
	return o
}
