// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Command statusbot runs the Discord product status bot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "statusbot",
		Short:         "Discord bot that updates product statuses in the shop catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("STATUSBOT_CONFIG"), "path to config file (YAML)")

	root.AddCommand(
		newServeCmd(opts),
		newRegisterCmd(opts),
		newConfigCmd(opts),
		newAuditCmd(opts),
		newVersionCmd(),
	)
	return root
}
