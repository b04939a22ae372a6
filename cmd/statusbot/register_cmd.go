// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ManuGH/statusbot/internal/config"
	"github.com/ManuGH/statusbot/internal/discord"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/version"
	"github.com/spf13/cobra"
)

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the /product-status command with Discord",
		Long: `Overwrites the application's slash commands. Commands are registered in
the configured guild, which takes effect immediately, or globally with --global.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewLoader(opts.configPath, version.Version).Load()
			if err != nil {
				return err
			}
			guildID := cfg.Discord.GuildID
			if global {
				guildID = ""
			}

			session, err := discord.NewSession(cfg.Discord.Token)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			cmds := discord.Commands(model.DefaultPalette(), cfg.Workflow.EntryMode == config.EntryModeUpfront)
			registered, err := discord.Register(ctx, session, cfg.Discord.AppID, guildID, cmds)
			if err != nil {
				return err
			}
			scope := "globally"
			if guildID != "" {
				scope = "in guild " + guildID
			}
			for _, c := range registered {
				fmt.Fprintf(cmd.OutOrStdout(), "registered /%s %s\n", c.Name, scope)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "register globally instead of in the configured guild")
	return cmd
}
