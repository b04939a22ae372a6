// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import (
	"fmt"
	"strings"
)

// ColorToken is one of the enumerated status colors.
type ColorToken string

const (
	ColorRed    ColorToken = "red"
	ColorOrange ColorToken = "orange"
	ColorYellow ColorToken = "yellow"
	ColorGreen  ColorToken = "green"
	ColorBlue   ColorToken = "blue"
	ColorNone   ColorToken = "none"
)

// DefaultDisplayColor is used for embeds when no status color is set.
const DefaultDisplayColor = 0x6571ff

// Swatch maps a color token onto what is written to the catalog and what is shown.
type Swatch struct {
	Token   ColorToken
	Label   string
	Value   *string // nil serializes as JSON null
	Display int
	Glyph   string
}

// Palette is an immutable lookup of color tokens. Pass it by value.
type Palette struct {
	swatches [6]Swatch
}

func hex(s string) *string { return &s }

// DefaultPalette returns the standard status color set.
func DefaultPalette() Palette {
	return Palette{swatches: [6]Swatch{
		{Token: ColorRed, Label: "Red", Value: hex("#e74c3c"), Display: 0xe74c3c, Glyph: "🔴"},
		{Token: ColorOrange, Label: "Orange", Value: hex("#e67e22"), Display: 0xe67e22, Glyph: "🟠"},
		{Token: ColorYellow, Label: "Yellow", Value: hex("#f1c40f"), Display: 0xf1c40f, Glyph: "🟡"},
		{Token: ColorGreen, Label: "Green", Value: hex("#2ecc71"), Display: 0x2ecc71, Glyph: "🟢"},
		{Token: ColorBlue, Label: "Blue", Value: hex("#3498db"), Display: 0x3498db, Glyph: "🔵"},
		{Token: ColorNone, Label: "Default", Value: nil, Display: DefaultDisplayColor, Glyph: "⚪"},
	}}
}

// Swatches returns a copy of every swatch in display order.
func (p Palette) Swatches() []Swatch {
	out := make([]Swatch, len(p.swatches))
	copy(out, p.swatches[:])
	return out
}

// Lookup returns the swatch for a token.
func (p Palette) Lookup(tok ColorToken) (Swatch, bool) {
	for _, s := range p.swatches {
		if s.Token == tok {
			return s, true
		}
	}
	return Swatch{}, false
}

// Parse resolves user or command input into a token. It accepts the token name,
// the hex value, and the "null"/"default" aliases for no color.
func (p Palette) Parse(raw string) (ColorToken, error) {
	in := strings.ToLower(strings.TrimSpace(raw))
	if in == "null" || in == "default" {
		return ColorNone, nil
	}
	for _, s := range p.swatches {
		if string(s.Token) == in || (s.Value != nil && *s.Value == in) {
			return s.Token, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColor, raw)
}
