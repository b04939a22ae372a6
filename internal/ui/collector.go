// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/lifecycle"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/metrics"
	"github.com/rs/zerolog"
)

var (
	ErrDuplicatePrompt = errors.New("prompt already pending for custom id")
	ErrInvalidPrompt   = errors.New("invalid prompt")
)

// Verdict is the routing outcome of a delivered interaction.
type Verdict int

const (
	VerdictAccepted Verdict = iota + 1
	VerdictRejected
	VerdictStale
)

func (v Verdict) String() string {
	switch v {
	case VerdictAccepted:
		return "accepted"
	case VerdictRejected:
		return "rejected"
	case VerdictStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Prompt describes what a session is waiting for.
type Prompt struct {
	SessionID string
	CustomIDs []string
	ActorID   string
	Timeout   time.Duration

	// Check rejects an interaction from the actor with a private notice when ok is false.
	Check func(Interaction) (notice string, ok bool)
}

type waiter struct {
	prompt Prompt
	ch     chan Interaction
}

// Collector routes interactions to the pending prompt that owns their custom id.
// Interactions that are not accepted are answered here; accepted ones are
// answered by the awaiting session.
type Collector struct {
	mu        sync.Mutex
	waiters   map[string]*waiter
	responder Responder
	logger    zerolog.Logger
}

// NewCollector creates a collector answering rejected interactions via r.
func NewCollector(r Responder) *Collector {
	return &Collector{
		waiters:   make(map[string]*waiter),
		responder: r,
		logger:    log.WithComponent("collector"),
	}
}

// Await blocks until the prompt's actor answers it, the timeout elapses
// (lifecycle.ErrExpired) or ctx is done. The timeout is independent of any
// rejected interactions.
func (c *Collector) Await(ctx context.Context, p Prompt) (Interaction, error) {
	if p.Timeout <= 0 || len(p.CustomIDs) == 0 || p.ActorID == "" {
		return Interaction{}, fmt.Errorf("%w: timeout=%s ids=%d", ErrInvalidPrompt, p.Timeout, len(p.CustomIDs))
	}
	w := &waiter{prompt: p, ch: make(chan Interaction, 1)}

	c.mu.Lock()
	for _, id := range p.CustomIDs {
		if _, exists := c.waiters[id]; exists {
			c.mu.Unlock()
			return Interaction{}, fmt.Errorf("%w: %s", ErrDuplicatePrompt, id)
		}
	}
	for _, id := range p.CustomIDs {
		c.waiters[id] = w
	}
	c.mu.Unlock()

	timer := time.NewTimer(p.Timeout)
	defer timer.Stop()

	select {
	case ix := <-w.ch:
		return ix, nil
	case <-timer.C:
		// An interaction accepted right at the deadline still wins.
		if ix, ok := c.release(w); ok {
			return ix, nil
		}
		return Interaction{}, lifecycle.ErrExpired
	case <-ctx.Done():
		if ix, ok := c.release(w); ok {
			c.reject(context.WithoutCancel(ctx), ix, NoticeStale)
		}
		return Interaction{}, ctx.Err()
	}
}

func (c *Collector) release(w *waiter) (Interaction, bool) {
	c.mu.Lock()
	for _, id := range w.prompt.CustomIDs {
		if c.waiters[id] == w {
			delete(c.waiters, id)
		}
	}
	c.mu.Unlock()

	select {
	case ix := <-w.ch:
		return ix, true
	default:
		return Interaction{}, false
	}
}

// Deliver routes ix to its prompt. Rejected and stale interactions are
// answered with a private notice before Deliver returns.
func (c *Collector) Deliver(ctx context.Context, ix Interaction) Verdict {
	base := BaseCustomID(ix.CustomID)

	c.mu.Lock()
	w, ok := c.waiters[base]
	if !ok {
		c.mu.Unlock()
		c.finish(ctx, ix, VerdictStale, NoticeStale)
		return VerdictStale
	}
	if ix.UserID != w.prompt.ActorID {
		c.mu.Unlock()
		c.finish(ctx, ix, VerdictRejected, NoticeNotForYou)
		return VerdictRejected
	}
	if w.prompt.Check != nil {
		if notice, ok := w.prompt.Check(ix); !ok {
			c.mu.Unlock()
			c.finish(ctx, ix, VerdictRejected, notice)
			return VerdictRejected
		}
	}
	for _, id := range w.prompt.CustomIDs {
		delete(c.waiters, id)
	}
	w.ch <- ix
	c.mu.Unlock()

	metrics.RecordInteraction(VerdictAccepted.String())
	return VerdictAccepted
}

func (c *Collector) finish(ctx context.Context, ix Interaction, v Verdict, notice string) {
	metrics.RecordInteraction(v.String())
	c.logger.Debug().
		Str(log.FieldEvent, "interaction."+v.String()).
		Str(log.FieldUserID, ix.UserID).
		Str("custom_id", ix.CustomID).
		Msg("interaction not accepted")
	c.reject(ctx, ix, notice)
}

func (c *Collector) reject(ctx context.Context, ix Interaction, notice string) {
	if c.responder == nil {
		return
	}
	if err := c.responder.Reject(ctx, ix, notice); err != nil {
		c.logger.Warn().Err(err).
			Str(log.FieldEvent, "interaction.reject_failed").
			Str("custom_id", ix.CustomID).
			Msg("failed to answer interaction")
	}
}

// Pending returns the number of custom ids with a waiting prompt.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}
