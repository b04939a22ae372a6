// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownColor = errors.New("unknown color token")
	ErrEmptyText    = errors.New("status text must not be empty")
	ErrNoTarget     = errors.New("status update has no target")
)

// MaxStatusTextLen bounds the status text accepted from the command.
const MaxStatusTextLen = 256

// StatusUpdateRequest is the single write issued for a resolved session.
type StatusUpdateRequest struct {
	TargetID ProductID
	Text     string
	Color    ColorToken
}

// Validate checks the request against the palette.
func (r StatusUpdateRequest) Validate(p Palette) error {
	if r.TargetID.IsZero() {
		return ErrNoTarget
	}
	return ValidateStatus(p, r.Text, r.Color)
}

// ValidateStatus checks the user-supplied parts of a request before a target is known.
func ValidateStatus(p Palette, text string, color ColorToken) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if len([]rune(text)) > MaxStatusTextLen {
		return fmt.Errorf("status text exceeds %d characters", MaxStatusTextLen)
	}
	if _, ok := p.Lookup(color); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}
	return nil
}

// SessionRecord is the mutable state of one command invocation.
// Only the session's own runner goroutine writes it.
type SessionRecord struct {
	SessionID   string
	InitiatorID string
	SearchTerm  string
	Candidates  []Candidate
	State       State
	Reason      ReasonCode
	Resolved    *Candidate
	Deadline    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
