// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryanaidilp/form-gear-sub001/internal/cmdctx"
	"github.com/ryanaidilp/form-gear-sub001/internal/config"
	"github.com/ryanaidilp/form-gear-sub001/internal/lint"
	"github.com/ryanaidilp/form-gear-sub001/internal/prompts"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [template]",
		Short: "Check a form template for schema and expression problems",
		Long: `Check a form template against the template metaschema and verify every
expression parses and references only fields that exist. Without an argument
the template from formgear.yaml is linted.`,
		Example: `  # Lint the project template
  formgear lint

  # Lint a specific file
  formgear lint drafts/form.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runLint(path)
		},
	}
	return cmd
}

func runLint(path string) error {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg, err := config.Load(filepath.Join(cwd, cmdctx.ConfigFileName))
		if err != nil {
			return cmdctx.ErrNotInitialized
		}
		path = cfg.Template
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
	}

	var issues []lint.Issue

	// JSON documents get the metaschema pass; YAML templates only get the
	// semantic checks after parsing.
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path) //nolint:gosec // path is from config or args
		if err != nil {
			return err
		}
		schemaIssues, err := lint.CheckSchema(data)
		if err != nil {
			return err
		}
		issues = append(issues, schemaIssues...)
	}

	tmpl, err := template.ParseFile(path)
	if err != nil {
		issues = append(issues, lint.Issue{Level: lint.LevelError, Message: err.Error()})
	} else {
		issues = append(issues, lint.Check(tmpl)...)
	}

	if len(issues) == 0 {
		prompts.PrintResult([]prompts.ResultField{
			{Label: "Template", Value: path},
		}, "No problems found")
		return nil
	}

	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	prompts.PrintIssues(lines, func(i int) bool { return issues[i].Level == lint.LevelError })

	if lint.HasErrors(issues) {
		return fmt.Errorf("%d problem(s) found", len(issues))
	}
	return nil
}
