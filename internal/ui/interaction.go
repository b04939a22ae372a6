// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ui

import (
	"fmt"
	"strings"
)

// InteractionKind classifies inbound component interactions.
type InteractionKind int

const (
	KindUnknown InteractionKind = iota
	KindButton
	KindSelect
	KindModalSubmit
)

func (k InteractionKind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindSelect:
		return "select"
	case KindModalSubmit:
		return "modal_submit"
	default:
		return "unknown"
	}
}

// Interaction is a single user response to a prompt.
type Interaction struct {
	ID       string
	Kind     InteractionKind
	CustomID string
	UserID   string
	Values   []string
	Fields   map[string]string

	// Handle is the platform object the Responder needs to answer this interaction.
	Handle any
}

// Value returns the first selected value.
func (ix Interaction) Value() string {
	if len(ix.Values) == 0 {
		return ""
	}
	return ix.Values[0]
}

const customIDPrefix = "statusbot"

// Prompt actions embedded in custom ids.
const (
	ActionSearch      = "search"
	ActionSearchModal = "search-modal"
	ActionSearchInput = "search-input"
	ActionSelect      = "select"
)

// CustomID builds the component id for a session action.
func CustomID(sessionID, action string) string {
	return fmt.Sprintf("%s:%s:%s", customIDPrefix, sessionID, action)
}

// ParseCustomID splits a component id into session and action.
// A trailing "#n" page suffix is ignored.
func ParseCustomID(id string) (sessionID, action string, ok bool) {
	if i := strings.IndexByte(id, '#'); i >= 0 {
		id = id[:i]
	}
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 || parts[0] != customIDPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// BaseCustomID strips a page suffix.
func BaseCustomID(id string) string {
	if i := strings.IndexByte(id, '#'); i >= 0 {
		return id[:i]
	}
	return id
}
