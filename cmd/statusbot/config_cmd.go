// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"fmt"

	"github.com/ManuGH/statusbot/internal/config"
	"github.com/ManuGH/statusbot/internal/version"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	var dump bool
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the effective configuration (file + environment)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewLoader(opts.configPath, version.Version).Load()
			if err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}
			out := cmd.OutOrStdout()
			source := opts.configPath
			if source == "" {
				source = "environment"
			}
			fmt.Fprintf(out, "✓ %s is valid\n", source)
			if !dump {
				return nil
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(config.Redacted(cfg))
		},
	}
	validate.Flags().BoolVar(&dump, "dump", false, "print the effective configuration with secrets masked")

	cmd.AddCommand(validate)
	return cmd
}
