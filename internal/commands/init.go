// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ryanaidilp/form-gear-sub001/internal/cmdctx"
	"github.com/ryanaidilp/form-gear-sub001/internal/config"
	"github.com/ryanaidilp/form-gear-sub001/internal/prompts"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

type initOptions struct {
	title          string
	templatePath   string
	responsePath   string
	format         string
	createTemplate bool
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new formgear project",
		Long: `Initialize a new formgear project with a formgear.yaml configuration file.
Can create a starter template or point at an existing one.`,
		Example: `  # Interactive mode
  formgear init

  # Non-interactive
  formgear init --title "Household Census" --non-interactive
  formgear init --template existing-form.json --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Form title for a new template")
	cmd.Flags().StringVarP(&opts.templatePath, "template", "p", "form.json", "Path to the template file")
	cmd.Flags().StringVarP(&opts.responsePath, "response", "r", "response.json", "Path to the response file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Template format (json or yaml)")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires --title or an existing --template)")

	return cmd
}

func runInit(opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, cmdctx.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.New("formgear.yaml already exists; project already initialized")
	}

	if opts.nonInteractive {
		opts.createTemplate = opts.title != ""
	} else {
		opts.createTemplate = true
		if err := prompts.RunInitForm(
			&opts.title,
			&opts.templatePath,
			&opts.responsePath,
			&opts.format,
			&opts.createTemplate,
		); err != nil {
			return err
		}
	}

	templatePath := opts.templatePath
	if !filepath.IsAbs(templatePath) {
		templatePath = filepath.Join(cwd, templatePath)
	}

	if opts.createTemplate {
		if opts.title == "" {
			return errors.New("a form title is required to create a template")
		}
		if _, err := os.Stat(templatePath); err == nil {
			return fmt.Errorf("template file already exists: %s", opts.templatePath)
		}

		tmpl := template.New(opts.title, "1.0.0")
		tmpl.Components = []template.Component{
			{
				DataKey: "section1",
				Label:   "Section 1",
				Kind:    template.KindSection,
				Components: []template.Component{
					{DataKey: "question1", Label: "Question 1", Kind: template.KindText},
				},
			},
		}

		writer := template.JSONWriter
		if opts.format == "yaml" {
			writer = template.YAMLWriter
		}
		if err := writer.Write(tmpl, templatePath); err != nil {
			return fmt.Errorf("failed to write template file: %w", err)
		}
	} else {
		if _, err := os.Stat(templatePath); os.IsNotExist(err) {
			return fmt.Errorf("template file not found: %s", opts.templatePath)
		}
		if _, err := template.ParseFile(templatePath); err != nil {
			return fmt.Errorf("invalid template: %w", err)
		}
	}

	cfg := config.Config{
		Version:  config.CurrentConfigVersion,
		Template: opts.templatePath,
		Response: opts.responsePath,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Config", Value: cmdctx.ConfigFileName},
		{Label: "Template", Value: opts.templatePath},
		{Label: "Response", Value: opts.responsePath},
	}, "Initialization completed")
	return nil
}
