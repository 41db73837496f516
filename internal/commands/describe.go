// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryanaidilp/form-gear-sub001/internal/cmdctx"
	"github.com/ryanaidilp/form-gear-sub001/internal/prompts"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show form overview with sections and progress",
		Long: `Show a summary of the form including its metadata, all sections with
their field counts, and the current answer progress.`,
		Example: `  # Describe the form
  formgear describe`,
		PreRunE: cmdctx.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cmdctx.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runDescribe(ctx)
		},
	}
	return cmd
}

func runDescribe(ctx *cmdctx.Context) error {
	counts := ctx.Session.Maps().Counts()
	fields := []prompts.ResultField{
		{Label: "Title", Value: ctx.Template.Title},
		{Label: "Version", Value: ctx.Template.Version},
		{Label: "Description", Value: ctx.Template.Description},
		{Label: "Fields", Value: fmt.Sprintf("%d", ctx.Session.Index().Len())},
		{Label: "Dependencies", Value: fmt.Sprintf(
			"%d enable, %d validation, %d variable, %d source-option, %d nested",
			counts.Enable, counts.Validation, counts.Variable, counts.SourceOption, counts.Nested)},
	}
	prompts.PrintResult(fields, "")

	summary := ctx.Session.Summarize()
	disabled := ctx.Session.Enable().DisabledSectionIndices()

	var sectionFields []prompts.ResultField
	for _, ref := range ctx.Session.Index().All() {
		if ref.Kind != template.KindSection || len(ref.Index) == 0 {
			continue
		}
		label := ref.Label
		if label == "" {
			label = ref.DataKey
		}
		if _, gone := disabled[ref.Index[0]]; gone {
			sectionFields = append(sectionFields, prompts.ResultField{Label: label, Value: "disabled"})
			continue
		}
		value := ""
		for _, sec := range summary.Sections {
			if sec.DataKey == ref.DataKey {
				value = fmt.Sprintf("%d answered, %d blank", sec.Answered, sec.Blank)
			}
		}
		sectionFields = append(sectionFields, prompts.ResultField{Label: label, Value: value})
	}
	prompts.PrintResult(sectionFields, "")
	return nil
}
