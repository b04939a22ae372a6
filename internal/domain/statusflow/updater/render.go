// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package updater

import (
	"strings"

	"github.com/ManuGH/statusbot/internal/ui"
)

// ErrorColor is the embed color of every failure notice.
const ErrorColor = 0xe74c3c

const (
	titleUpdated      = "Product Status Updated"
	msgUpdateFailed   = "Failed to update product status"
	fieldStatusText   = "Status Text"
	fieldStatusColor  = "Status Color"
	fieldUpdateDetail = "Details"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"`", "\\`",
	"|", `\|`,
)

// Embed renders the outcome as a confirmation or failure notice.
func (o Outcome) Embed() ui.Embed {
	if o.Applied {
		return ConfirmationEmbed(o)
	}
	return FailureEmbed(o.Detail)
}

// ConfirmationEmbed renders a successful update.
func ConfirmationEmbed(o Outcome) ui.Embed {
	return ui.Embed{
		Title:       titleUpdated,
		Description: "Status updated for product: **" + markdownEscaper.Replace(o.ProductName) + "**",
		Color:       o.Swatch.Display,
		Fields: []ui.EmbedField{
			{Name: fieldStatusText, Value: o.Text, Inline: true},
			{Name: fieldStatusColor, Value: o.Swatch.Glyph, Inline: true},
		},
		Timestamp: o.At,
	}
}

// FailureEmbed renders a failed update, including collaborator detail when present.
func FailureEmbed(detail string) ui.Embed {
	e := ui.Embed{Description: msgUpdateFailed, Color: ErrorColor}
	if detail != "" {
		e.Fields = []ui.EmbedField{{Name: fieldUpdateDetail, Value: detail}}
	}
	return e
}
