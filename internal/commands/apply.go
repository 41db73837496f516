// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryanaidilp/form-gear-sub001/internal/cmdctx"
	"github.com/ryanaidilp/form-gear-sub001/internal/engine"
	"github.com/ryanaidilp/form-gear-sub001/internal/prompts"
)

type applyOptions struct {
	remark string
}

func newApplyCmd() *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <dataKey> <value>",
		Short: "Set one answer and save the response",
		Long: `Set the answer of a single field without the interactive flow. The value
is parsed as JSON when possible (numbers, booleans, arrays), otherwise taken
as a plain string. Dependent fields are re-evaluated and the response file is
saved.`,
		Example: `  # Set a number
  formgear apply householdSize 3

  # Set a row answer with a remark
  formgear apply 'members#2#age' 34 --remark "estimated"

  # Set a checkbox answer
  formgear apply provinces '["jakarta","west-java"]'`,
		Args:    cobra.ExactArgs(2),
		PreRunE: cmdctx.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cmdctx.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runApply(ctx, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.remark, "remark", "", "Attach a remark to the field")

	return cmd
}

func runApply(ctx *cmdctx.Context, dataKey, rawValue string, opts *applyOptions) error {
	ref := ctx.Session.Index().GetComponent(dataKey)
	if ref == nil {
		return fmt.Errorf("unknown dataKey: %s", dataKey)
	}

	touched := ctx.Session.ApplyAnswer(dataKey, parseValue(rawValue))
	if opts.remark != "" {
		ctx.Session.SetRemark(dataKey, opts.remark)
	}

	if err := ctx.SaveResponse(); err != nil {
		return err
	}

	fields := []prompts.ResultField{
		{Label: "Applied", Value: dataKey},
		{Label: "Recomputed", Value: strings.Join(touched, ", ")},
	}
	if ref.ValidationState != engine.StateValid {
		fields = append(fields, prompts.ResultField{
			Label: "Validation",
			Value: strings.Join(ref.ValidationMessages, "; "),
		})
	}
	prompts.PrintResult(fields, "Response saved")
	return nil
}

// parseValue interprets the CLI value argument: valid JSON is taken as-is,
// anything else is a plain string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
