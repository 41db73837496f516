// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

// Package lint checks form templates beyond what parsing enforces: metaschema
// conformance, expression syntax and reference integrity.
package lint

import (
	"fmt"
	"strings"

	"github.com/ryanaidilp/form-gear-sub001/internal/engine"
	"github.com/ryanaidilp/form-gear-sub001/internal/expr"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// Level grades an issue.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Issue is one lint finding. DataKey is empty for document-level findings.
type Issue struct {
	Level   Level
	DataKey string
	Message string
}

func (i Issue) String() string {
	if i.DataKey == "" {
		return fmt.Sprintf("%s: %s", i.Level, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Level, i.DataKey, i.Message)
}

// HasErrors reports whether any issue is error-level.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Level == LevelError {
			return true
		}
	}
	return false
}

// Check runs all semantic checks on a parsed template.
func Check(t *template.Template) []Issue {
	var issues []Issue
	if err := t.Validate(); err != nil {
		issues = append(issues, Issue{Level: LevelError, Message: err.Error()})
	}

	known := make(map[string]struct{})
	t.Walk(func(c *template.Component, _ *template.Component) {
		if c.DataKey != "" {
			known[c.DataKey] = struct{}{}
		}
	})

	t.Walk(func(c *template.Component, parent *template.Component) {
		issues = append(issues, checkComponent(c, parent, known)...)
	})
	return issues
}

func checkComponent(c *template.Component, parent *template.Component, known map[string]struct{}) []Issue {
	var issues []Issue

	issues = append(issues, checkExpression(c.DataKey, "enableCondition", c.EnableCondition, known)...)
	for i, rule := range c.Validations {
		field := fmt.Sprintf("validations[%d].test", i)
		issues = append(issues, checkExpression(c.DataKey, field, rule.Test, known)...)
	}
	issues = append(issues, checkExpression(c.DataKey, "expression", c.Expression, known)...)

	switch c.Kind {
	case template.KindVariable:
		if strings.TrimSpace(c.Expression) == "" {
			issues = append(issues, Issue{Level: LevelError, DataKey: c.DataKey, Message: "variable component has no expression"})
		}
	case template.KindNested:
		if c.SourceQuestion == "" {
			issues = append(issues, Issue{Level: LevelWarning, DataKey: c.DataKey, Message: "nested component has no sourceQuestion; rows never materialize"})
		} else if _, ok := known[engine.BaseKey(c.SourceQuestion)]; !ok {
			issues = append(issues, Issue{Level: LevelError, DataKey: c.DataKey, Message: fmt.Sprintf("sourceQuestion %q does not exist", c.SourceQuestion)})
		}
		if len(c.Components) == 0 {
			issues = append(issues, Issue{Level: LevelWarning, DataKey: c.DataKey, Message: "nested component has an empty row blueprint"})
		}
	case template.KindSelect, template.KindRadio, template.KindCheckbox:
		if len(c.Options) == 0 && c.SourceOption == "" {
			issues = append(issues, Issue{Level: LevelWarning, DataKey: c.DataKey, Message: "choice component has neither options nor sourceOption"})
		}
	}

	if c.SourceOption != "" {
		if _, ok := known[engine.BaseKey(c.SourceOption)]; !ok {
			issues = append(issues, Issue{Level: LevelError, DataKey: c.DataKey, Message: fmt.Sprintf("sourceOption %q does not exist", c.SourceOption)})
		}
	}

	if parent != nil && parent.Kind == template.KindNested && strings.Contains(c.DataKey, "#") {
		issues = append(issues, Issue{Level: LevelError, DataKey: c.DataKey, Message: "blueprint dataKey must not contain '#'"})
	}
	return issues
}

func checkExpression(dataKey, field, src string, known map[string]struct{}) []Issue {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	if err := expr.ValidateSyntax(src); err != nil {
		return []Issue{{Level: LevelError, DataKey: dataKey, Message: fmt.Sprintf("%s: %v", field, err)}}
	}
	var issues []Issue
	for _, ref := range expr.ExtractReferences(src) {
		if _, ok := known[engine.BaseKey(ref)]; !ok {
			issues = append(issues, Issue{Level: LevelError, DataKey: dataKey, Message: fmt.Sprintf("%s references unknown field %q", field, ref)})
		}
	}
	return issues
}
