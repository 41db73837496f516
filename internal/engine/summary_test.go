// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

func summaryTemplate() *template.Template {
	return &template.Template{
		Title:   "progress",
		Version: template.CurrentVersion,
		Components: []template.Component{
			{
				DataKey: "basics",
				Kind:    template.KindSection,
				Label:   "Basics",
				Components: []template.Component{
					{DataKey: "name", Kind: template.KindText},
					{
						DataKey: "age",
						Kind:    template.KindNumber,
						Validations: []template.Validation{
							{Test: "getValue('age') < 0", Message: "negative", Severity: template.SeverityError},
							{Test: "getValue('age') > 120", Message: "implausible", Severity: template.SeverityWarning},
						},
					},
					{DataKey: "derived", Kind: template.KindVariable, Expression: "getValue('age')"},
				},
			},
			{
				DataKey:         "extra",
				Kind:            template.KindSection,
				Label:           "Extra",
				EnableCondition: "getValue('name') != ''",
				Components: []template.Component{
					{DataKey: "notes", Kind: template.KindText},
				},
			},
		},
	}
}

func TestSummarizeCounts(t *testing.T) {
	s := NewSession(summaryTemplate(), nil, nil)
	s.ApplyAnswer("name", "Ana")
	s.ApplyAnswer("age", float64(30))
	s.SetRemark("age", "estimated")

	sum := s.Summarize()
	assert.Equal(t, 2, sum.Answered)
	assert.Equal(t, 1, sum.Blank) // notes
	assert.Equal(t, 0, sum.Error)
	assert.Equal(t, 0, sum.Warning)
	assert.Equal(t, 1, sum.Remarked)
	assert.Equal(t, 2, sum.Clean)

	require.Len(t, sum.Sections, 2)
	assert.Equal(t, "Basics", sum.Sections[0].Label)
	assert.Equal(t, 2, sum.Sections[0].Answered)
	assert.Equal(t, "Extra", sum.Sections[1].Label)
	assert.Equal(t, 1, sum.Sections[1].Blank)
}

func TestSummarizeSeverities(t *testing.T) {
	s := NewSession(summaryTemplate(), nil, nil)
	s.ApplyAnswer("name", "Ana")
	s.ApplyAnswer("age", float64(-2))

	sum := s.Summarize()
	assert.Equal(t, 1, sum.Error)
	assert.Equal(t, 0, sum.Warning)
	// An answered field with an error is not clean.
	assert.Equal(t, 1, sum.Clean)

	s.ApplyAnswer("age", float64(140))
	sum = s.Summarize()
	assert.Equal(t, 0, sum.Error)
	assert.Equal(t, 1, sum.Warning)
}

func TestSummarizeExcludesDisabledSections(t *testing.T) {
	s := NewSession(summaryTemplate(), nil, nil)

	// name is blank, so the Extra section is disabled and notes is invisible.
	sum := s.Summarize()
	assert.Equal(t, 0, sum.Answered)
	assert.Equal(t, 2, sum.Blank) // name and age only
	require.Len(t, sum.Sections, 1)
	assert.Equal(t, "Basics", sum.Sections[0].Label)

	s.ApplyAnswer("name", "Ana")
	sum = s.Summarize()
	assert.Equal(t, 3, sum.Answered+sum.Blank) // all visible inputs accounted for
	require.Len(t, sum.Sections, 2)
}

func TestSummarizeExcludesVariablesAndContainers(t *testing.T) {
	s := NewSession(summaryTemplate(), nil, nil)
	s.ApplyAnswer("name", "Ana")
	s.ApplyAnswer("age", float64(30))

	sum := s.Summarize()
	// derived holds a value but never counts as an input.
	assert.Equal(t, 2, sum.Answered)
}
