// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldSessionID     = "session_id"
	FieldInteractionID = "interaction_id"
	FieldUserID        = "user_id"
	FieldProductID     = "product_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldReason    = "reason"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"

	// Collaborator fields
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldPath      = "path"
	FieldBaseURL   = "base_url"
)
