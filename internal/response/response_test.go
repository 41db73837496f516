// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package response

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanaidilp/form-gear-sub001/internal/engine"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

func sessionTemplate() *template.Template {
	return &template.Template{
		FormGear:   template.CurrentVersion,
		Title:      "census",
		Version:    "1.2.0",
		Principals: []string{"name"},
		Components: []template.Component{
			{
				DataKey: "main",
				Kind:    template.KindSection,
				Components: []template.Component{
					{DataKey: "name", Kind: template.KindText},
					{DataKey: "householdSize", Kind: template.KindNumber},
					{
						DataKey:        "members",
						Kind:           template.KindNested,
						SourceQuestion: "householdSize",
						Components: []template.Component{
							{DataKey: "age", Kind: template.KindNumber},
						},
					},
				},
			},
		},
	}
}

func TestNewAssignsIdentity(t *testing.T) {
	r := New("census", "1.2.0")
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "census", r.Template)
	assert.False(t, r.UpdatedAt.IsZero())
}

func TestExtract(t *testing.T) {
	s := engine.NewSession(sessionTemplate(), nil, nil)
	s.ApplyAnswer("name", "Ana")
	s.ApplyAnswer("householdSize", float64(1))
	s.ApplyAnswer("members#1#age", float64(30))
	s.SetRemark("householdSize", "verified")

	r := New("census", "1.2.0")
	r.Extract(s)

	byKey := make(map[string]Answer)
	for _, a := range r.Answers {
		byKey[a.DataKey] = a
	}
	assert.Equal(t, "Ana", byKey["name"].Answer)
	assert.Equal(t, "verified", byKey["householdSize"].Remark)
	assert.Equal(t, float64(30), byKey["members#1#age"].Answer)
	assert.Equal(t, map[string]any{"name": "Ana"}, r.Principals)
}

func TestSeedReplaysIntoFreshSession(t *testing.T) {
	first := engine.NewSession(sessionTemplate(), nil, nil)
	first.ApplyAnswer("name", "Ana")
	first.ApplyAnswer("householdSize", float64(2))
	first.ApplyAnswer("members#2#age", float64(7))

	r := New("census", "1.2.0")
	r.Extract(first)

	second := engine.NewSession(sessionTemplate(), nil, nil)
	r.Seed(second)

	// Row answers land because the size question replays first and
	// materializes the rows.
	assert.Equal(t, 2, second.Index().GetComponent("members").RowCount)
	assert.Equal(t, float64(7), second.Index().GetComponent("members#2#age").Answer)
	assert.Equal(t, "Ana", second.Index().GetComponent("name").Answer)
}

func TestSeedSkipsUnknownKeys(t *testing.T) {
	r := New("census", "1.2.0")
	r.Answers = []Answer{{DataKey: "retired", Answer: "x"}}

	s := engine.NewSession(sessionTemplate(), nil, nil)
	r.Seed(s) // must not panic
	assert.Nil(t, s.Index().GetComponent("retired"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := engine.NewSession(sessionTemplate(), nil, nil)
	s.ApplyAnswer("name", "Ana")

	r := New("census", "1.2.0")
	r.Extract(s)

	path := filepath.Join(t.TempDir(), "response.json")
	require.NoError(t, r.Save(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, r.ID, back.ID)
	require.Len(t, back.Answers, 1)
	assert.Equal(t, "name", back.Answers[0].DataKey)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
