// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"fmt"
	"time"

	"github.com/ManuGH/statusbot/internal/ui"
	"github.com/bwmarrin/discordgo"
)

// Platform limits.
const (
	MaxMenuOptions = 25
	MaxActionRows  = 5
	maxLabelLen    = 100
	maxContentLen  = 2000
)

// truncationNote is appended when candidates do not fit into the menus.
const truncationNote = "Showing the first %d of %d matches. Refine the search term to narrow the list."

// pageCustomID suffixes every menu after the first with "#n".
func pageCustomID(base string, page int) string {
	if page == 0 {
		return base
	}
	return fmt.Sprintf("%s#%d", base, page)
}

// renderMessage converts a message into the fields of a response edit.
func renderMessage(m ui.Message) (string, []*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	content := m.Content
	embeds := make([]*discordgo.MessageEmbed, 0, len(m.Embeds))
	for _, e := range m.Embeds {
		embeds = append(embeds, convertEmbed(e))
	}

	components := make([]discordgo.MessageComponent, 0, MaxActionRows)
	if len(m.Buttons) > 0 {
		row := discordgo.ActionsRow{}
		for _, b := range m.Buttons {
			row.Components = append(row.Components, discordgo.Button{
				Label:    clip(b.Label, maxLabelLen),
				Style:    discordgo.PrimaryButton,
				CustomID: b.CustomID,
			})
		}
		components = append(components, row)
	}
	if m.Menu != nil {
		rows, shown := menuRows(*m.Menu, MaxActionRows-len(components))
		components = append(components, rows...)
		if total := len(m.Menu.Options); shown < total {
			note := fmt.Sprintf(truncationNote, shown, total)
			if content != "" {
				content += "\n"
			}
			content += note
		}
	}
	return clip(content, maxContentLen), embeds, components
}

// menuRows spreads the options over at most maxRows menus of MaxMenuOptions each.
func menuRows(menu ui.SelectMenu, maxRows int) ([]discordgo.MessageComponent, int) {
	var rows []discordgo.MessageComponent
	shown := 0
	paged := len(menu.Options) > MaxMenuOptions
	for page := 0; page < maxRows && shown < len(menu.Options); page++ {
		end := min(shown+MaxMenuOptions, len(menu.Options))
		opts := make([]discordgo.SelectMenuOption, 0, end-shown)
		for _, o := range menu.Options[shown:end] {
			opts = append(opts, discordgo.SelectMenuOption{
				Label:       clip(o.Label, maxLabelLen),
				Value:       o.Value,
				Description: clip(o.Description, maxLabelLen),
			})
		}
		placeholder := menu.Placeholder
		if paged {
			placeholder = fmt.Sprintf("%s (%d-%d)", menu.Placeholder, shown+1, end)
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    pageCustomID(menu.CustomID, page),
				Placeholder: clip(placeholder, maxLabelLen),
				Options:     opts,
			},
		}})
		shown = end
	}
	return rows, shown
}

func convertEmbed(e ui.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	if !e.Timestamp.IsZero() {
		out.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}
	for _, f := range e.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return out
}

func convertModal(m ui.Modal) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		CustomID: m.CustomID,
		Title:    clip(m.Title, 45),
	}
	for _, in := range m.Inputs {
		data.Components = append(data.Components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    in.CustomID,
					Label:       clip(in.Label, 45),
					Style:       discordgo.TextInputShort,
					Placeholder: clip(in.Placeholder, maxLabelLen),
					Required:    in.Required,
					MinLength:   in.MinLength,
					MaxLength:   in.MaxLength,
				},
			},
		})
	}
	return data
}

// toInteraction maps component and modal interactions. ok is false for
// every other interaction type.
func toInteraction(i *discordgo.Interaction) (ui.Interaction, bool) {
	ix := ui.Interaction{ID: i.ID, UserID: invokerID(i), Handle: i}
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		ix.CustomID = data.CustomID
		ix.Values = data.Values
		switch data.ComponentType {
		case discordgo.ButtonComponent:
			ix.Kind = ui.KindButton
		case discordgo.SelectMenuComponent:
			ix.Kind = ui.KindSelect
		}
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		ix.Kind = ui.KindModalSubmit
		ix.CustomID = data.CustomID
		ix.Fields = modalFields(data.Components)
	default:
		return ui.Interaction{}, false
	}
	return ix, true
}

func modalFields(rows []discordgo.MessageComponent) map[string]string {
	fields := make(map[string]string)
	for _, c := range rows {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if in, ok := inner.(*discordgo.TextInput); ok {
				fields[in.CustomID] = in.Value
			}
		}
	}
	return fields
}

func invokerID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func invokerRoles(i *discordgo.Interaction) []string {
	if i.Member != nil {
		return i.Member.Roles
	}
	return nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
