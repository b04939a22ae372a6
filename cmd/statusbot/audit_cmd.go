// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/ManuGH/statusbot/internal/audit"
	"github.com/ManuGH/statusbot/internal/config"
	"github.com/ManuGH/statusbot/internal/version"
	"github.com/spf13/cobra"
)

var errAuditDisabled = errors.New("audit store is not configured (audit.dbPath)")

func newAuditCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the status change audit trail",
	}

	var (
		product string
		limit   int
	)
	recent := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent status changes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewLoader(opts.configPath, version.Version).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Audit.DBPath == "" {
				return errAuditDisabled
			}

			ctx := cmd.Context()
			store, err := audit.OpenStore(ctx, cfg.Audit.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			changes, err := store.Recent(ctx, product, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(changes) == 0 {
				fmt.Fprintln(out, "no status changes recorded")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tACTOR\tPRODUCT\tTEXT\tCOLOR\tRESULT\tREASON")
			for _, c := range changes {
				fmt.Fprintf(tw, "%s\t%s\t%s (%s)\t%s\t%s\t%s\t%s\n",
					c.At.Format(time.RFC3339), c.ActorID, c.ProductName, c.ProductID,
					c.Text, c.Color, c.Result, c.Reason)
			}
			return tw.Flush()
		},
	}
	recent.Flags().StringVar(&product, "product", "", "only show changes for this product id")
	recent.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of changes to list")

	cmd.AddCommand(recent)
	return cmd
}
