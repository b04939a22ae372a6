// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package discord connects the status workflow to the Discord gateway.
package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ManuGH/statusbot/internal/command"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/metrics"
	"github.com/ManuGH/statusbot/internal/ui"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const interactionTimeout = 3 * time.Second

// NewSession creates an unopened gateway session for a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bot "))
	if token == "" {
		return nil, errors.New("discord: token is empty")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}

// CommandHandler admits slash command invocations.
type CommandHandler interface {
	Handle(ctx context.Context, inv command.Invocation, reply command.Reply, s ui.Surface) error
}

// Deliverer routes component and modal interactions to waiting sessions.
type Deliverer interface {
	Deliver(ctx context.Context, ix ui.Interaction) ui.Verdict
}

// BotConfig selects where commands are registered.
type BotConfig struct {
	AppID   string
	GuildID string
	// RegisterOnReady overwrites the command set once the gateway is ready.
	RegisterOnReady bool
	// RequireProduct marks the product option as required.
	RequireProduct bool
}

// Bot owns the gateway session and routes interactions.
type Bot struct {
	session   *discordgo.Session
	responder *Responder
	handler   CommandHandler
	collector Deliverer
	cfg       BotConfig
	commands  []*discordgo.ApplicationCommand
	connected atomic.Bool
	baseCtx   context.Context
	logger    zerolog.Logger
}

// NewBot wires the gateway session to the command handler and the prompt collector.
func NewBot(s *discordgo.Session, responder *Responder, handler CommandHandler, collector Deliverer, cmds []*discordgo.ApplicationCommand, cfg BotConfig) *Bot {
	return &Bot{
		session:   s,
		responder: responder,
		handler:   handler,
		collector: collector,
		cfg:       cfg,
		commands:  cmds,
		baseCtx:   context.Background(),
		logger:    log.WithComponent("discord"),
	}
}

// Connected reports whether the gateway session is ready.
func (b *Bot) Connected() bool {
	return b.connected.Load()
}

// Run opens the gateway and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.baseCtx = ctx
	removers := []func(){
		b.session.AddHandler(b.onReady),
		b.session.AddHandler(b.onDisconnect),
		b.session.AddHandler(b.onResumed),
		b.session.AddHandler(b.onInteraction),
	}
	defer func() {
		for _, remove := range removers {
			remove()
		}
	}()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	b.logger.Info().Str(log.FieldEvent, "discord.open").Msg("gateway session opened")

	<-ctx.Done()

	b.setConnected(false)
	if err := b.session.Close(); err != nil {
		b.logger.Warn().Err(err).Str(log.FieldEvent, "discord.close_failed").Msg("failed to close gateway session")
	}
	b.logger.Info().Str(log.FieldEvent, "discord.closed").Msg("gateway session closed")
	return nil
}

func (b *Bot) setConnected(v bool) {
	b.connected.Store(v)
	metrics.SetGatewayConnected(v)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.setConnected(true)
	appID := b.cfg.AppID
	if appID == "" && r.User != nil {
		appID = r.User.ID
	}
	b.logger.Info().
		Str(log.FieldEvent, "discord.ready").
		Str("app_id", appID).
		Int("guilds", len(r.Guilds)).
		Msg("gateway ready")

	if !b.cfg.RegisterOnReady {
		return
	}
	ctx, cancel := context.WithTimeout(b.baseCtx, 30*time.Second)
	defer cancel()
	registered, err := Register(ctx, s, appID, b.cfg.GuildID, b.commands)
	if err != nil {
		b.logger.Error().Err(err).Str(log.FieldEvent, "discord.register_failed").Msg("failed to register commands")
		return
	}
	b.logger.Info().
		Str(log.FieldEvent, "discord.registered").
		Str("guild_id", b.cfg.GuildID).
		Int("commands", len(registered)).
		Msg("commands registered")
}

func (b *Bot) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	b.setConnected(false)
	b.logger.Warn().Str(log.FieldEvent, "discord.disconnected").Msg("gateway disconnected")
}

func (b *Bot) onResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	b.setConnected(true)
	b.logger.Info().Str(log.FieldEvent, "discord.resumed").Msg("gateway resumed")
}

func (b *Bot) onInteraction(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
	b.route(b.baseCtx, ic.Interaction)
}

// route dispatches one interaction. Every branch answers it exactly once.
func (b *Bot) route(ctx context.Context, i *discordgo.Interaction) {
	ctx = log.ContextWithInteractionID(ctx, i.ID)
	logger := log.WithContext(ctx, b.logger)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		reply := b.responder.surface(i)
		if data.Name != command.ProductStatus {
			rctx, cancel := context.WithTimeout(ctx, interactionTimeout)
			defer cancel()
			if err := reply.Deny(rctx, "Unknown command."); err != nil {
				logger.Warn().Err(err).Str(log.FieldEvent, "discord.respond_failed").Msg("failed to answer unknown command")
			}
			return
		}
		if err := b.handler.Handle(ctx, invocationFromCommand(i), reply, reply); err != nil {
			logger.Warn().Err(err).
				Str(log.FieldEvent, "discord.command_failed").
				Str("command", data.Name).
				Msg("command handling failed")
		}
	case discordgo.InteractionMessageComponent, discordgo.InteractionModalSubmit:
		ix, _ := toInteraction(i)
		verdict := b.collector.Deliver(ctx, ix)
		logger.Debug().
			Str(log.FieldEvent, "discord.interaction").
			Str("kind", ix.Kind.String()).
			Str("verdict", verdict.String()).
			Msg("interaction delivered")
	default:
		logger.Debug().
			Str(log.FieldEvent, "discord.interaction_ignored").
			Int("type", int(i.Type)).
			Msg("unsupported interaction type")
	}
}
