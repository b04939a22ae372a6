// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package audit records who changed which product status, and who was
// turned away, following a WHO/WHAT/WHEN pattern.
package audit

import (
	"time"

	"github.com/ManuGH/statusbot/internal/log"
	"github.com/rs/zerolog"
)

// EventType represents the type of audit event.
type EventType string

const (
	EventStatusApplied EventType = "status.applied"
	EventStatusFailed  EventType = "status.failed"
	EventSessionEnded  EventType = "session.ended"

	EventCommandDenied      EventType = "command.denied"
	EventCommandRateLimited EventType = "command.ratelimited"

	EventConfigReload EventType = "config.reload"
)

// Event represents a structured audit event.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Actor     string // WHO: user id or "system"
	Action    string // WHAT: human-readable action description
	Resource  string // product id, command name or config path
	Result    string // success, failure, denied
	SessionID string
	Details   map[string]string
}

// Logger writes audit events to a dedicated zerolog stream.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates an audit logger tagged log_type=audit.
func NewLogger() *Logger {
	return newLogger(log.WithComponent("audit"))
}

func newLogger(base zerolog.Logger) *Logger {
	return &Logger{logger: base.With().Str("log_type", "audit").Logger()}
}

// Log writes one event. A zero Timestamp is set to now.
func (l *Logger) Log(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	ev := l.logger.Info().
		Time("timestamp", event.Timestamp).
		Str("event_type", string(event.Type)).
		Str("actor", event.Actor).
		Str("action", event.Action).
		Str("resource", event.Resource).
		Str("result", event.Result)
	if event.SessionID != "" {
		ev = ev.Str(log.FieldSessionID, event.SessionID)
	}
	for key, value := range event.Details {
		ev = ev.Str(key, value)
	}
	ev.Msg("audit event")
}

// CommandDenied logs an invocation rejected by the allow-list.
func (l *Logger) CommandDenied(actor, command string) {
	l.Log(Event{
		Type:     EventCommandDenied,
		Actor:    actor,
		Action:   "invoked command without permission",
		Resource: command,
		Result:   "denied",
	})
}

// CommandRateLimited logs an invocation rejected by the throttle.
func (l *Logger) CommandRateLimited(actor, command string) {
	l.Log(Event{
		Type:     EventCommandRateLimited,
		Actor:    actor,
		Action:   "exceeded command rate",
		Resource: command,
		Result:   "denied",
	})
}

// ConfigReload logs a configuration reload and its outcome.
func (l *Logger) ConfigReload(trigger, result string, details map[string]string) {
	l.Log(Event{
		Type:     EventConfigReload,
		Actor:    "system",
		Action:   "reloaded configuration (" + trigger + ")",
		Resource: "config",
		Result:   result,
		Details:  details,
	})
}
