// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryanaidilp/form-gear-sub001/internal/cmdctx"
	"github.com/ryanaidilp/form-gear-sub001/internal/export"
	"github.com/ryanaidilp/form-gear-sub001/internal/prompts"

	// Import exporters to auto-register
	_ "github.com/ryanaidilp/form-gear-sub001/internal/export/csv"
	_ "github.com/ryanaidilp/form-gear-sub001/internal/export/markdown"
)

type exportOptions struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filled form to an output format",
		Long: `Render the current session, answers included, to an output format.
Disabled fields and sections are left out.`,
		Example: `  # Export to markdown
  formgear export --format markdown

  # Export to a specific file
  formgear export --format csv --output answers.csv`,
		PreRunE: cmdctx.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cmdctx.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runExport(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "markdown",
		"Output format ("+strings.Join(export.Available(), ", ")+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (defaults to form<ext>)")

	return cmd
}

func runExport(ctx *cmdctx.Context, opts *exportOptions) error {
	exporter, err := export.Get(opts.format)
	if err != nil {
		return err
	}

	out, err := exporter.Export(export.Prepare(ctx.Session))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path := opts.output
	if path == "" {
		path = "form" + exporter.FileExtension()
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Format", Value: exporter.Name()},
		{Label: "Output", Value: path},
	}, "Export completed")
	return nil
}
