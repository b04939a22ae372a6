// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManuGH/statusbot/internal/ui"
	"github.com/bwmarrin/discordgo"
)

// ErrNoHandle is returned for interactions that did not originate from the gateway.
var ErrNoHandle = errors.New("discord: interaction has no platform handle")

// rest is the subset of *discordgo.Session used to answer interactions.
type rest interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Responder answers component and modal interactions.
type Responder struct {
	api rest
}

// NewResponder answers interactions through the session's REST client.
func NewResponder(s *discordgo.Session) *Responder {
	return &Responder{api: s}
}

func handleOf(ix ui.Interaction) (*discordgo.Interaction, error) {
	i, ok := ix.Handle.(*discordgo.Interaction)
	if !ok || i == nil {
		return nil, ErrNoHandle
	}
	return i, nil
}

func (r *Responder) ShowModal(ctx context.Context, ix ui.Interaction, m ui.Modal) error {
	i, err := handleOf(ix)
	if err != nil {
		return err
	}
	return r.respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: convertModal(m),
	})
}

func (r *Responder) Acknowledge(ctx context.Context, ix ui.Interaction) error {
	i, err := handleOf(ix)
	if err != nil {
		return err
	}
	return r.respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

func (r *Responder) Reject(ctx context.Context, ix ui.Interaction, notice string) error {
	i, err := handleOf(ix)
	if err != nil {
		return err
	}
	return r.ephemeral(ctx, i, notice)
}

func (r *Responder) ephemeral(ctx context.Context, i *discordgo.Interaction, notice string) error {
	return r.respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: notice,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (r *Responder) respond(ctx context.Context, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	if err := r.api.InteractionRespond(i, resp, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("respond to interaction %s: %w", i.ID, err)
	}
	return nil
}

// response is the reply message of one slash command invocation. It answers
// the command itself and renders the session onto its reply.
type response struct {
	*Responder
	cmd *discordgo.Interaction
}

func (r *Responder) surface(cmd *discordgo.Interaction) *response {
	return &response{Responder: r, cmd: cmd}
}

// Defer acknowledges the command with a public "thinking" reply.
func (s *response) Defer(ctx context.Context) error {
	return s.respond(ctx, s.cmd, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// Deny answers the command with a private notice.
func (s *response) Deny(ctx context.Context, notice string) error {
	return s.ephemeral(ctx, s.cmd, notice)
}

func (s *response) Render(ctx context.Context, m ui.Message) error {
	content, embeds, components := renderMessage(m)
	return s.edit(ctx, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	})
}

func (s *response) Retract(ctx context.Context) error {
	components := []discordgo.MessageComponent{}
	return s.edit(ctx, &discordgo.WebhookEdit{Components: &components})
}

func (s *response) edit(ctx context.Context, e *discordgo.WebhookEdit) error {
	if _, err := s.api.InteractionResponseEdit(s.cmd, e, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit response %s: %w", s.cmd.ID, err)
	}
	return nil
}
