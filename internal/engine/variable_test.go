// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

func newVariableFixture(t *testing.T, tmpl *template.Template) (*Index, *VariableService) {
	t.Helper()
	idx := NewIndex(BuildReferences(tmpl))
	maps := NewDependencyMaps()
	maps.Build(idx.All())
	svc := NewVariableService(idx, maps, nil, nil)
	return idx, svc
}

func totalTemplate() *template.Template {
	return &template.Template{
		Title:   "totals",
		Version: template.CurrentVersion,
		Components: []template.Component{
			{
				DataKey: "main",
				Kind:    template.KindSection,
				Components: []template.Component{
					{DataKey: "a", Kind: template.KindNumber},
					{DataKey: "b", Kind: template.KindNumber},
					{DataKey: "total", Kind: template.KindVariable, Expression: "Number(getValue('a')) + Number(getValue('b'))"},
				},
			},
		},
	}
}

func TestEvaluateVariableWritesAnswer(t *testing.T) {
	idx, svc := newVariableFixture(t, totalTemplate())
	idx.GetComponent("a").Answer = float64(2)
	idx.GetComponent("b").Answer = float64(3)

	changed := svc.Evaluate("total")
	assert.True(t, changed)
	assert.Equal(t, float64(5), idx.GetComponent("total").Answer)

	// Same inputs: the recomputed value is unchanged.
	assert.False(t, svc.Evaluate("total"))
}

func TestEvaluateVariableBrokenExpressionYieldsNil(t *testing.T) {
	tmpl := totalTemplate()
	tmpl.Components[0].Components[2].Expression = "Number(getValue('a')"
	idx, svc := newVariableFixture(t, tmpl)
	idx.GetComponent("total").Answer = "stale"

	changed := svc.Evaluate("total")
	assert.True(t, changed)
	assert.Nil(t, idx.GetComponent("total").Answer)
}

func TestEvaluateDependentsReportsOnlyChanges(t *testing.T) {
	idx, svc := newVariableFixture(t, totalTemplate())
	idx.GetComponent("a").Answer = float64(1)
	idx.GetComponent("b").Answer = float64(1)

	changed := svc.EvaluateDependents("a")
	require.Equal(t, []string{"total"}, changed)

	// a did not move, so total does not move either.
	assert.Empty(t, svc.EvaluateDependents("a"))
}

func TestInitializeVariables(t *testing.T) {
	idx, svc := newVariableFixture(t, totalTemplate())
	idx.GetComponent("a").Answer = float64(4)
	idx.GetComponent("b").Answer = float64(6)

	svc.InitializeVariables()
	assert.Equal(t, float64(10), idx.GetComponent("total").Answer)
}
