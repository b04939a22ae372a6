// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ui

import "time"

// Message is the full content of the session's response message.
// Rendering a Message replaces the previous content and controls.
type Message struct {
	Content string
	Embeds  []Embed
	Buttons []Button
	Menu    *SelectMenu
}

// HasControls reports whether the message carries interactive components.
func (m Message) HasControls() bool {
	return len(m.Buttons) > 0 || m.Menu != nil
}

type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	Timestamp   time.Time
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type Button struct {
	CustomID string
	Label    string
}

// SelectMenu is a single-choice menu. Adapters may split long option lists
// across several platform controls sharing the same CustomID.
type SelectMenu struct {
	CustomID    string
	Placeholder string
	Options     []SelectOption
}

type SelectOption struct {
	Label       string
	Value       string
	Description string
}

// Modal is a form shown in response to a button click.
type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

type TextInput struct {
	CustomID    string
	Label       string
	Placeholder string
	Required    bool
	MinLength   int
	MaxLength   int
}
