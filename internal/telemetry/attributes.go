// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the bot.
const (
	// Workflow attributes
	SessionIDKey      = "statusflow.session_id"
	SessionStateKey   = "statusflow.state"
	SessionReasonKey  = "statusflow.reason"
	PromptFirstKey    = "statusflow.prompt_first"
	CandidateCountKey = "statusflow.candidates"

	// Catalog attributes
	CatalogOperationKey = "catalog.operation"
	CatalogShopKey      = "catalog.shop_id"
	CatalogProductKey   = "catalog.product_id"

	// Command attributes
	CommandNameKey = "command.name"
	CommandUserKey = "command.user_id"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// SessionAttributes creates workflow session span attributes.
func SessionAttributes(sessionID string, promptFirst bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(SessionIDKey, sessionID),
		attribute.Bool(PromptFirstKey, promptFirst),
	}
}

// OutcomeAttributes describes how a session ended.
func OutcomeAttributes(state, reason string, candidates int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(SessionStateKey, state),
		attribute.Int(CandidateCountKey, candidates),
	}
	if reason != "" {
		attrs = append(attrs, attribute.String(SessionReasonKey, reason))
	}
	return attrs
}

// CatalogAttributes creates catalog call span attributes.
func CatalogAttributes(operation, shopID string, productIDs ...string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(CatalogOperationKey, operation),
		attribute.String(CatalogShopKey, shopID),
	}
	if len(productIDs) > 0 {
		attrs = append(attrs, attribute.StringSlice(CatalogProductKey, productIDs))
	}
	return attrs
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(err error) []attribute.KeyValue {
	if err == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, err.Error()),
	}
}
