// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(title, templatePath, responsePath, format *string, createTemplate *bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Template source").
				Options(
					huh.NewOption("Create new template", true),
					huh.NewOption("Use existing template", false),
				).
				Height(3).
				Value(createTemplate),
		),
		huh.NewGroup(
			huh.NewInput().
				TitleFunc(func() string {
					if *createTemplate {
						return "Path for new template"
					}
					return "Path to existing template"
				}, createTemplate).
				PlaceholderFunc(func() string {
					if *createTemplate {
						return "form.json"
					}
					return ""
				}, createTemplate).
				Validate(requiredValidator("template path")).
				Value(templatePath),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Template format").
				Options(
					huh.NewOption("JSON (recommended)", "json"),
					huh.NewOption("YAML", "yaml"),
				).
				Value(format),
		).WithHideFunc(func() bool { return !*createTemplate }),
		huh.NewGroup(
			huh.NewInput().
				Title("Form title").
				Validate(requiredValidator("form title")).
				Value(title),
		).WithHideFunc(func() bool { return !*createTemplate }),
		huh.NewGroup(
			huh.NewInput().
				Title("Response file").
				Placeholder("response.json").
				Value(responsePath),
		),
	).WithTheme(Theme()).Run()
}
