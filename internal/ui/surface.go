// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ui

import "context"

// Private notices sent to users whose interaction is not accepted.
const (
	NoticeNotForYou = "Not for you!"
	NoticeStale     = "This prompt is no longer active."
)

// Responder answers an individual interaction. Every interaction must be
// answered exactly once with one of these calls.
type Responder interface {
	// ShowModal answers a button click by opening a form.
	ShowModal(ctx context.Context, ix Interaction, m Modal) error
	// Acknowledge answers with a silent deferred update.
	Acknowledge(ctx context.Context, ix Interaction) error
	// Reject answers with a notice only the interacting user sees.
	Reject(ctx context.Context, ix Interaction, notice string) error
}

// Surface is the response message of one command invocation.
type Surface interface {
	Responder
	// Render replaces the response message content and controls.
	Render(ctx context.Context, m Message) error
	// Retract removes every interactive control from the response message.
	Retract(ctx context.Context) error
}
