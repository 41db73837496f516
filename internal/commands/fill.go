// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryanaidilp/form-gear-sub001/internal/cmdctx"
	"github.com/ryanaidilp/form-gear-sub001/internal/engine"
	"github.com/ryanaidilp/form-gear-sub001/internal/prompts"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

func newFillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the form interactively",
		Long: `Walk through every enabled section and prompt for each blank field.
Answers are applied as you go, so dependent questions appear and disappear
immediately. The response file is saved at the end.`,
		Example: `  # Fill the form
  formgear fill`,
		PreRunE: cmdctx.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cmdctx.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runFill(ctx)
		},
	}
	return cmd
}

func runFill(ctx *cmdctx.Context) error {
	sections := sectionRefs(ctx.Session)
	for i, section := range sections {
		disabled := ctx.Session.Enable().DisabledSectionIndices()
		if _, gone := disabled[section.Index[0]]; gone {
			continue
		}

		fmt.Println(prompts.SectionLabel(section, i+1, len(sections)))
		if err := prompts.FillSection(ctx.Session, section.Index[0]); err != nil {
			return err
		}
	}

	if err := ctx.SaveResponse(); err != nil {
		return err
	}

	summary := ctx.Session.Summarize()
	prompts.PrintResult([]prompts.ResultField{
		{Label: "Answered", Value: fmt.Sprintf("%d", summary.Answered)},
		{Label: "Blank", Value: fmt.Sprintf("%d", summary.Blank)},
		{Label: "Errors", Value: fmt.Sprintf("%d", summary.Error)},
		{Label: "Saved to", Value: ctx.ResponsePath},
	}, "Form saved")
	return nil
}

func sectionRefs(s *engine.Session) []*engine.Reference {
	var out []*engine.Reference
	for _, ref := range s.Index().All() {
		if ref.Kind == template.KindSection && len(ref.Index) > 0 {
			out = append(out, ref)
		}
	}
	return out
}
