// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"testing"

	"github.com/ManuGH/statusbot/internal/command"
	"github.com/ManuGH/statusbot/internal/ui"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	invocations []command.Invocation
}

func (h *recordingHandler) Handle(_ context.Context, inv command.Invocation, _ command.Reply, _ ui.Surface) error {
	h.invocations = append(h.invocations, inv)
	return nil
}

type recordingDeliverer struct {
	delivered []ui.Interaction
}

func (d *recordingDeliverer) Deliver(_ context.Context, ix ui.Interaction) ui.Verdict {
	d.delivered = append(d.delivered, ix)
	return ui.VerdictAccepted
}

func newTestBot() (*Bot, *fakeREST, *recordingHandler, *recordingDeliverer) {
	api := &fakeREST{}
	h := &recordingHandler{}
	d := &recordingDeliverer{}
	b := NewBot(nil, &Responder{api: api}, h, d, nil, BotConfig{})
	return b, api, h, d
}

func TestRoute_SlashCommandGoesToHandler(t *testing.T) {
	b, api, h, d := newTestBot()

	b.route(context.Background(), &discordgo.Interaction{
		ID:   "cmd-1",
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: command.ProductStatus},
		User: &discordgo.User{ID: "100"},
	})

	require.Len(t, h.invocations, 1)
	assert.Equal(t, "100", h.invocations[0].Actor.UserID)
	assert.Empty(t, d.delivered)
	assert.Empty(t, api.responses)
}

func TestRoute_UnknownCommandIsDenied(t *testing.T) {
	b, api, h, _ := newTestBot()

	b.route(context.Background(), &discordgo.Interaction{
		ID:   "cmd-2",
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "other"},
	})

	assert.Empty(t, h.invocations)
	require.Len(t, api.responses, 1)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, api.responses[0].Data.Flags)
}

func TestRoute_ComponentsGoToCollector(t *testing.T) {
	b, _, h, d := newTestBot()

	b.route(context.Background(), &discordgo.Interaction{
		ID:   "ix-1",
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      "statusbot:s1:search",
			ComponentType: discordgo.ButtonComponent,
		},
		User: &discordgo.User{ID: "100"},
	})

	assert.Empty(t, h.invocations)
	require.Len(t, d.delivered, 1)
	assert.Equal(t, ui.KindButton, d.delivered[0].Kind)
	assert.Equal(t, "statusbot:s1:search", d.delivered[0].CustomID)
}

func TestConnectedTracksGatewayEvents(t *testing.T) {
	b, _, _, _ := newTestBot()
	assert.False(t, b.Connected())

	b.onResumed(nil, &discordgo.Resumed{})
	assert.True(t, b.Connected())

	b.onDisconnect(nil, &discordgo.Disconnect{})
	assert.False(t, b.Connected())
}
