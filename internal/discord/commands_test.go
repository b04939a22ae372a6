// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"testing"

	"github.com/ManuGH/statusbot/internal/command"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionNames(cmd *discordgo.ApplicationCommand) []string {
	var names []string
	for _, o := range cmd.Options {
		names = append(names, o.Name)
	}
	return names
}

func TestCommands_ColorChoices(t *testing.T) {
	cmds := Commands(model.DefaultPalette(), false)
	require.Len(t, cmds, 1)
	assert.Equal(t, command.ProductStatus, cmds[0].Name)

	var color *discordgo.ApplicationCommandOption
	for _, o := range cmds[0].Options {
		if o.Name == OptionColor {
			color = o
		}
	}
	require.NotNil(t, color)

	got := map[string]any{}
	for _, c := range color.Choices {
		got[c.Name] = c.Value
	}
	assert.Equal(t, map[string]any{
		"🔴 Red":     "#e74c3c",
		"🟠 Orange":  "#e67e22",
		"🟡 Yellow":  "#f1c40f",
		"🟢 Green":   "#2ecc71",
		"🔵 Blue":    "#3498db",
		"⚪ Default": "null",
	}, got)
}

func TestCommands_ProductOptionality(t *testing.T) {
	optional := Commands(model.DefaultPalette(), false)[0]
	assert.Equal(t, []string{OptionText, OptionColor, OptionProduct}, optionNames(optional))
	assert.False(t, optional.Options[2].Required)

	required := Commands(model.DefaultPalette(), true)[0]
	assert.Equal(t, []string{OptionProduct, OptionText, OptionColor}, optionNames(required))
	for _, o := range required.Options {
		assert.True(t, o.Required, o.Name)
	}
}

func TestCommandChoicesParseBack(t *testing.T) {
	p := model.DefaultPalette()
	for _, c := range Commands(p, false)[0].Options[1].Choices {
		_, err := p.Parse(c.Value.(string))
		assert.NoError(t, err, c.Name)
	}
}

type fakeRegistrar struct {
	appID, guildID string
	cmds           []*discordgo.ApplicationCommand
}

func (f *fakeRegistrar) ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.appID, f.guildID, f.cmds = appID, guildID, cmds
	return cmds, nil
}

func TestRegister(t *testing.T) {
	api := &fakeRegistrar{}
	cmds := Commands(model.DefaultPalette(), false)

	out, err := Register(context.Background(), api, "app", "guild", cmds)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "app", api.appID)
	assert.Equal(t, "guild", api.guildID)

	_, err = Register(context.Background(), api, "", "guild", cmds)
	assert.ErrorIs(t, err, ErrNoApplicationID)
}

func TestInvocationFromCommand(t *testing.T) {
	i := &discordgo.Interaction{
		ID:   "cmd-1",
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: command.ProductStatus,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: OptionText, Type: discordgo.ApplicationCommandOptionString, Value: "Back in stock"},
				{Name: OptionColor, Type: discordgo.ApplicationCommandOptionString, Value: "#2ecc71"},
				{Name: OptionProduct, Type: discordgo.ApplicationCommandOptionString, Value: "widget"},
			},
		},
		Member: &discordgo.Member{User: &discordgo.User{ID: "100"}, Roles: []string{"staff"}},
	}

	inv := invocationFromCommand(i)
	assert.Equal(t, "widget", inv.Product)
	assert.Equal(t, "100", inv.Actor.UserID)
	assert.Equal(t, []string{"staff"}, inv.Actor.RoleIDs)
	assert.Equal(t, "Back in stock", inv.Text)
	assert.Equal(t, "#2ecc71", inv.Color)
	assert.Equal(t, "cmd-1", inv.InteractionID)
}
