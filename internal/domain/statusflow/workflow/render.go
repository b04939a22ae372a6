// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package workflow

import (
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/updater"
	"github.com/ManuGH/statusbot/internal/ui"
)

// User-facing notices.
const (
	MsgNoMatch      = "No matching products were found."
	MsgExpired      = "Selection time expired. Please try again."
	MsgGenericError = "An error occurred while updating the product status"
	MsgTrigger      = "Click the button below to search products"
	MsgSelect       = "Select a product from the menu:"
	MsgUnknownPick  = "That product is not part of this selection."
)

const (
	labelSearchButton = "Search Products"
	titleSearchModal  = "Search Products"
	labelSearchInput  = "Product name"
	hintSearchInput   = "Part of the product name"
	hintSelect        = "Select a product"

	maxOptionLabel = 100
	maxSearchTerm  = 100
)

func notice(text string) ui.Message {
	return ui.Message{Embeds: []ui.Embed{{Description: text, Color: updater.ErrorColor}}}
}

func triggerMessage(sessionID string) ui.Message {
	return ui.Message{
		Embeds:  []ui.Embed{{Description: MsgTrigger, Color: model.DefaultDisplayColor}},
		Buttons: []ui.Button{{CustomID: ui.CustomID(sessionID, ui.ActionSearch), Label: labelSearchButton}},
	}
}

func searchModal(sessionID string) ui.Modal {
	return ui.Modal{
		CustomID: ui.CustomID(sessionID, ui.ActionSearchModal),
		Title:    titleSearchModal,
		Inputs: []ui.TextInput{{
			CustomID:    ui.ActionSearchInput,
			Label:       labelSearchInput,
			Placeholder: hintSearchInput,
			Required:    true,
			MinLength:   1,
			MaxLength:   maxSearchTerm,
		}},
	}
}

func selectionMessage(sessionID string, cands []model.Candidate) ui.Message {
	opts := make([]ui.SelectOption, 0, len(cands))
	for _, c := range cands {
		opts = append(opts, ui.SelectOption{
			Label:       truncate(c.Name, maxOptionLabel),
			Value:       c.ID.String(),
			Description: c.StockLabel(),
		})
	}
	return ui.Message{
		Embeds: []ui.Embed{{Description: MsgSelect, Color: model.DefaultDisplayColor}},
		Menu: &ui.SelectMenu{
			CustomID:    ui.CustomID(sessionID, ui.ActionSelect),
			Placeholder: hintSelect,
			Options:     opts,
		},
	}
}

// terminalMessage renders the final response for a terminal state.
func terminalMessage(rec *model.SessionRecord, out *updater.Outcome) ui.Message {
	switch rec.State {
	case model.StateApplied:
		if out != nil {
			return ui.Message{Embeds: []ui.Embed{out.Embed()}}
		}
	case model.StateNoMatch:
		return notice(MsgNoMatch)
	case model.StateExpired:
		return notice(MsgExpired)
	case model.StateFailed:
		if rec.Reason == model.RUpdateFailed && out != nil {
			return ui.Message{Embeds: []ui.Embed{out.Embed()}}
		}
		if rec.Reason == model.RUpdateFailed {
			return ui.Message{Embeds: []ui.Embed{updater.FailureEmbed("")}}
		}
	}
	return notice(MsgGenericError)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
