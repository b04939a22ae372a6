// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManuGH/statusbot/internal/command"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/bwmarrin/discordgo"
)

// Option names of /product-status.
const (
	OptionProduct = "product"
	OptionText    = "text"
	OptionColor   = "color"
)

// ErrNoApplicationID is returned when commands are registered without an application id.
var ErrNoApplicationID = errors.New("discord: application id is required to register commands")

// Commands returns the application commands served by the bot. The product
// option is mandatory when requireProduct is set.
func Commands(palette model.Palette, requireProduct bool) []*discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(palette.Swatches()))
	for _, s := range palette.Swatches() {
		value := "null"
		if s.Value != nil {
			value = *s.Value
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  s.Glyph + " " + s.Label,
			Value: value,
		})
	}

	text := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        OptionText,
		Description: "The status text",
		Required:    true,
		MaxLength:   model.MaxStatusTextLen,
	}
	color := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        OptionColor,
		Description: "The status color",
		Required:    true,
		Choices:     choices,
	}
	product := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        OptionProduct,
		Description: "Name of the product to update",
		Required:    requireProduct,
	}

	// Required options must precede optional ones.
	options := []*discordgo.ApplicationCommandOption{product, text, color}
	if !requireProduct {
		options = []*discordgo.ApplicationCommandOption{text, color, product}
	}

	dm := false
	return []*discordgo.ApplicationCommand{{
		Name:         command.ProductStatus,
		Description:  "Edit a product status.",
		DMPermission: &dm,
		Options:      options,
	}}
}

// commandRegistrar is the subset of *discordgo.Session used for registration.
type commandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Register replaces the application's commands in guildID, or globally when
// guildID is empty.
func Register(ctx context.Context, api commandRegistrar, appID, guildID string, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	if appID == "" {
		return nil, ErrNoApplicationID
	}
	out, err := api.ApplicationCommandBulkOverwrite(appID, guildID, cmds, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	return out, nil
}

// invocationFromCommand reads the /product-status options.
func invocationFromCommand(i *discordgo.Interaction) command.Invocation {
	inv := command.Invocation{
		InteractionID: i.ID,
	}
	inv.Actor.UserID = invokerID(i)
	inv.Actor.RoleIDs = invokerRoles(i)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Type != discordgo.ApplicationCommandOptionString {
			continue
		}
		switch opt.Name {
		case OptionProduct:
			inv.Product = opt.StringValue()
		case OptionText:
			inv.Text = opt.StringValue()
		case OptionColor:
			inv.Color = opt.StringValue()
		}
	}
	return inv
}
