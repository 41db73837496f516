// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryanaidilp/form-gear-sub001/internal/cmdctx"
	"github.com/ryanaidilp/form-gear-sub001/internal/prompts"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show answer and validation progress",
		Long: `Show how many fields are answered, blank, invalid or remarked, overall
and per section. Disabled fields and sections are not counted.`,
		Example: `  # Show progress
  formgear summary`,
		PreRunE: cmdctx.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cmdctx.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runSummary(ctx)
		},
	}
	return cmd
}

func runSummary(ctx *cmdctx.Context) error {
	summary := ctx.Session.Summarize()

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Answered", Value: fmt.Sprintf("%d", summary.Answered)},
		{Label: "Blank", Value: fmt.Sprintf("%d", summary.Blank)},
		{Label: "Errors", Value: fmt.Sprintf("%d", summary.Error)},
		{Label: "Warnings", Value: fmt.Sprintf("%d", summary.Warning)},
		{Label: "Remarks", Value: fmt.Sprintf("%d", summary.Remarked)},
		{Label: "Clean", Value: fmt.Sprintf("%d", summary.Clean)},
	}, "")

	for _, sec := range summary.Sections {
		label := sec.Label
		if label == "" {
			label = sec.DataKey
		}
		prompts.PrintResult([]prompts.ResultField{
			{Label: label, Value: fmt.Sprintf("%d answered, %d blank, %d errors, %d warnings",
				sec.Answered, sec.Blank, sec.Error, sec.Warning)},
		}, "")
	}
	return nil
}
