// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

func cleanTemplate() *template.Template {
	return &template.Template{
		FormGear: template.CurrentVersion,
		Title:    "clean",
		Components: []template.Component{
			{
				DataKey: "main",
				Kind:    template.KindSection,
				Components: []template.Component{
					{DataKey: "age", Kind: template.KindNumber},
					{DataKey: "adult", Kind: template.KindText, EnableCondition: "getValue('age') >= 18"},
				},
			},
		},
	}
}

func TestCheckCleanTemplate(t *testing.T) {
	issues := Check(cleanTemplate())
	assert.Empty(t, issues)
	assert.False(t, HasErrors(issues))
}

func TestCheckExpressionIssues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*template.Template)
		level   Level
		message string
	}{
		{
			name: "broken enable condition",
			mutate: func(tmpl *template.Template) {
				tmpl.Components[0].Components[1].EnableCondition = "getValue('age' >"
			},
			level:   LevelError,
			message: "enableCondition",
		},
		{
			name: "unknown reference",
			mutate: func(tmpl *template.Template) {
				tmpl.Components[0].Components[1].EnableCondition = "getValue('missing') == 1"
			},
			level:   LevelError,
			message: `references unknown field "missing"`,
		},
		{
			name: "broken validation test",
			mutate: func(tmpl *template.Template) {
				tmpl.Components[0].Components[0].Validations = []template.Validation{
					{Test: "getValue(", Message: "m"},
				}
			},
			level:   LevelError,
			message: "validations[0].test",
		},
		{
			name: "variable without expression",
			mutate: func(tmpl *template.Template) {
				tmpl.Components[0].Components = append(tmpl.Components[0].Components,
					template.Component{DataKey: "total", Kind: template.KindVariable})
			},
			level:   LevelError,
			message: "no expression",
		},
		{
			name: "nested without sourceQuestion",
			mutate: func(tmpl *template.Template) {
				tmpl.Components[0].Components = append(tmpl.Components[0].Components,
					template.Component{DataKey: "rows", Kind: template.KindNested,
						Components: []template.Component{{DataKey: "x", Kind: template.KindText}}})
			},
			level:   LevelWarning,
			message: "no sourceQuestion",
		},
		{
			name: "choice without options",
			mutate: func(tmpl *template.Template) {
				tmpl.Components[0].Components = append(tmpl.Components[0].Components,
					template.Component{DataKey: "pick", Kind: template.KindSelect})
			},
			level:   LevelWarning,
			message: "neither options nor sourceOption",
		},
		{
			name: "sourceOption to unknown field",
			mutate: func(tmpl *template.Template) {
				tmpl.Components[0].Components = append(tmpl.Components[0].Components,
					template.Component{DataKey: "pick", Kind: template.KindSelect, SourceOption: "ghost"})
			},
			level:   LevelError,
			message: `sourceOption "ghost" does not exist`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := cleanTemplate()
			tt.mutate(tmpl)

			issues := Check(tmpl)
			require.NotEmpty(t, issues)
			found := false
			for _, issue := range issues {
				if issue.Level == tt.level && strings.Contains(issue.Message, tt.message) {
					found = true
				}
			}
			assert.True(t, found, "expected %s issue containing %q, got %v", tt.level, tt.message, issues)
		})
	}
}

func TestCheckRowMarkerReferencesResolveToBaseName(t *testing.T) {
	tmpl := cleanTemplate()
	tmpl.Components[0].Components = append(tmpl.Components[0].Components,
		template.Component{
			DataKey:        "members",
			Kind:           template.KindNested,
			SourceQuestion: "age",
			Components: []template.Component{
				{DataKey: "name", Kind: template.KindText},
				{DataKey: "flag", Kind: template.KindText, EnableCondition: "getValue('name@$ROW$') != ''"},
			},
		})
	assert.Empty(t, Check(tmpl))
}

func TestCheckSchema(t *testing.T) {
	valid := []byte(`{
		"formgear": "1.0.0",
		"title": "t",
		"components": [
			{"dataKey": "s", "type": "section", "components": [
				{"dataKey": "q", "type": "text"}
			]}
		]
	}`)
	issues, err := CheckSchema(valid)
	require.NoError(t, err)
	assert.Empty(t, issues)

	missingTitle := []byte(`{"formgear": "1.0.0", "components": []}`)
	issues, err = CheckSchema(missingTitle)
	require.NoError(t, err)
	assert.True(t, HasErrors(issues))

	badJSON := []byte(`{not json`)
	issues, err = CheckSchema(badJSON)
	require.NoError(t, err)
	assert.True(t, HasErrors(issues))
}
