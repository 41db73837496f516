// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

func newEnableFixture(t *testing.T, tmpl *template.Template) (*Index, *EnableService) {
	t.Helper()
	idx := NewIndex(BuildReferences(tmpl))
	maps := NewDependencyMaps()
	maps.Build(idx.All())
	svc := NewEnableService(idx, maps, nil, nil)
	svc.InitializeEnableStates()
	return idx, svc
}

func conditionalTemplate() *template.Template {
	return &template.Template{
		Title:   "screening",
		Version: template.CurrentVersion,
		Components: []template.Component{
			{
				DataKey: "intro",
				Kind:    template.KindSection,
				Components: []template.Component{
					{DataKey: "Q1", Kind: template.KindNumber},
					{DataKey: "Q2", Kind: template.KindText, EnableCondition: "getValue('Q1') > 5"},
				},
			},
		},
	}
}

func TestEvaluateEnable(t *testing.T) {
	idx, svc := newEnableFixture(t, conditionalTemplate())

	// Q1 is blank, so the comparison is false.
	assert.False(t, svc.IsEnabled("Q2"))

	idx.GetComponent("Q1").Answer = float64(7)
	assert.True(t, svc.EvaluateEnable("Q2"))
	assert.True(t, svc.IsEnabled("Q2"))

	idx.GetComponent("Q1").Answer = float64(3)
	assert.False(t, svc.EvaluateEnable("Q2"))
}

func TestIsEnabledFailsOpen(t *testing.T) {
	_, svc := newEnableFixture(t, conditionalTemplate())
	assert.True(t, svc.IsEnabled("nonexistent"))
}

func TestBrokenConditionDefaultsToEnabled(t *testing.T) {
	tmpl := conditionalTemplate()
	tmpl.Components[0].Components[1].EnableCondition = "getValue('Q1' &&"
	_, svc := newEnableFixture(t, tmpl)
	assert.True(t, svc.IsEnabled("Q2"))
}

func TestEvaluateDependents(t *testing.T) {
	idx, svc := newEnableFixture(t, conditionalTemplate())

	idx.GetComponent("Q1").Answer = float64(10)
	changed := svc.EvaluateDependents("Q1")
	assert.Equal(t, []string{"Q2"}, changed)

	// Same answer again: no state change, no reported flip.
	assert.Empty(t, svc.EvaluateDependents("Q1"))
}

func TestDisableNeverClearsAnswer(t *testing.T) {
	idx, svc := newEnableFixture(t, conditionalTemplate())

	idx.GetComponent("Q1").Answer = float64(10)
	svc.EvaluateDependents("Q1")
	idx.GetComponent("Q2").Answer = "kept"

	idx.GetComponent("Q1").Answer = float64(1)
	svc.EvaluateDependents("Q1")

	q2 := idx.GetComponent("Q2")
	require.False(t, q2.Enable)
	// The stored answer survives; only reads are blanked.
	assert.Equal(t, "kept", q2.Answer)
	assert.Equal(t, "", idx.GetValue("Q2", ""))
}

func TestParentDisableDominatesChildCondition(t *testing.T) {
	tmpl := &template.Template{
		Title:   "dominance",
		Version: template.CurrentVersion,
		Components: []template.Component{
			{
				DataKey: "gate",
				Kind:    template.KindSection,
				Components: []template.Component{
					{DataKey: "Q1", Kind: template.KindNumber},
				},
			},
			{
				DataKey:         "details",
				Kind:            template.KindSection,
				EnableCondition: "getValue('Q1') > 0",
				Components: []template.Component{
					{DataKey: "Q2", Kind: template.KindText, EnableCondition: "true"},
					{DataKey: "Q3", Kind: template.KindText},
				},
			},
		},
	}
	idx, svc := newEnableFixture(t, tmpl)

	// The section is disabled, so Q2's own always-true condition cannot win.
	require.False(t, svc.IsEnabled("details"))
	assert.False(t, svc.IsEnabled("Q2"))
	assert.False(t, svc.IsEnabled("Q3"))

	idx.GetComponent("Q1").Answer = float64(1)
	svc.EvaluateDependents("Q1")

	assert.True(t, svc.IsEnabled("details"))
	assert.True(t, svc.IsEnabled("Q2"))
	assert.True(t, svc.IsEnabled("Q3"))
}

func TestReEnableReEvaluatesChildConditions(t *testing.T) {
	tmpl := &template.Template{
		Title:   "reenable",
		Version: template.CurrentVersion,
		Components: []template.Component{
			{
				DataKey: "gate",
				Kind:    template.KindSection,
				Components: []template.Component{
					{DataKey: "open", Kind: template.KindNumber},
					{DataKey: "pick", Kind: template.KindNumber},
				},
			},
			{
				DataKey:         "details",
				Kind:            template.KindSection,
				EnableCondition: "getValue('open') == 1",
				Components: []template.Component{
					{DataKey: "extra", Kind: template.KindText, EnableCondition: "getValue('pick') == 2"},
				},
			},
		},
	}
	idx, svc := newEnableFixture(t, tmpl)

	idx.GetComponent("open").Answer = float64(1)
	idx.GetComponent("pick").Answer = float64(9)
	svc.EvaluateDependents("open")

	// Section came back, but extra's own condition still fails.
	require.True(t, svc.IsEnabled("details"))
	assert.False(t, svc.IsEnabled("extra"))

	idx.GetComponent("pick").Answer = float64(2)
	svc.EvaluateDependents("pick")
	assert.True(t, svc.IsEnabled("extra"))
}

func TestDisableEnableComponent(t *testing.T) {
	idx, svc := newEnableFixture(t, conditionalTemplate())

	svc.DisableComponent("intro")
	assert.False(t, svc.IsEnabled("intro"))
	assert.False(t, svc.IsEnabled("Q1"))

	idx.GetComponent("Q1").Answer = float64(10)
	svc.EnableComponent("intro")
	assert.True(t, svc.IsEnabled("Q1"))
	// Q2 regains only what its own condition grants.
	assert.True(t, svc.IsEnabled("Q2"))
}

func TestDisabledSectionIndices(t *testing.T) {
	tmpl := conditionalTemplate()
	tmpl.Components = append(tmpl.Components, template.Component{
		DataKey:         "optional",
		Kind:            template.KindSection,
		EnableCondition: "false",
	})
	_, svc := newEnableFixture(t, tmpl)

	disabled := svc.DisabledSectionIndices()
	assert.NotContains(t, disabled, 0)
	assert.Contains(t, disabled, 1)
}
