// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielhkuo/fitlog/calendar"
	"github.com/danielhkuo/fitlog/summary"
)

var exportOpts struct {
	user   string
	from   string
	to     string
	output string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write export documents for a user's date range",
	Long: `Write one export document per logged day in [from, to] as a JSON array.

Days with nothing logged are skipped. Without --output the array is
written to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOpts.user, "user", "", "User ID to export (required)")
	exportCmd.Flags().StringVar(&exportOpts.from, "from", "", "First date, YYYY-MM-DD (default: to)")
	exportCmd.Flags().StringVar(&exportOpts.to, "to", "", "Last date, YYYY-MM-DD (default: today)")
	exportCmd.Flags().StringVarP(&exportOpts.output, "output", "o", "", "Output file (default: stdout)")
	_ = exportCmd.MarkFlagRequired("user")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := cfg.Check(false); err != nil {
		return err
	}

	if exportOpts.to == "" {
		exportOpts.to = calendar.Today()
	}
	if exportOpts.from == "" {
		exportOpts.from = exportOpts.to
	}
	from, err := calendar.ParseKey(exportOpts.from)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := calendar.ParseKey(exportOpts.to)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	if to.Before(from) {
		return fmt.Errorf("--to %s is before --from %s", exportOpts.to, exportOpts.from)
	}

	ctx := cmd.Context()
	conn, store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	ix, err := summary.NewLoader(store).Load(ctx, exportOpts.user, exportOpts.from, exportOpts.to)
	if err != nil {
		return err
	}
	docs := summary.ExportRange(ix, calendar.Keys(calendar.Range(from, to)))

	var out io.Writer = cmd.OutOrStdout()
	if exportOpts.output != "" {
		f, err := os.Create(exportOpts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	logger.Info("export written",
		zap.String("user_id", exportOpts.user),
		zap.Int("days", len(docs)),
		zap.String("output", exportOpts.output),
	)
	return nil
}
