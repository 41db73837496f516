// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import "github.com/ryanaidilp/form-gear-sub001/internal/template"

// adjacency is a set-backed adjacency list with a deterministic ordered view.
// Insertion is idempotent: registering the same edge twice is a no-op.
type adjacency struct {
	edges map[string][]string
	seen  map[string]map[string]struct{}
}

func newAdjacency() *adjacency {
	return &adjacency{
		edges: make(map[string][]string),
		seen:  make(map[string]map[string]struct{}),
	}
}

func (a *adjacency) add(from, to string) {
	if from == "" || to == "" {
		return
	}
	set, ok := a.seen[from]
	if !ok {
		set = make(map[string]struct{})
		a.seen[from] = set
	}
	if _, dup := set[to]; dup {
		return
	}
	set[to] = struct{}{}
	a.edges[from] = append(a.edges[from], to)
}

func (a *adjacency) get(from string) []string {
	return a.edges[from]
}

func (a *adjacency) size() int {
	n := 0
	for _, deps := range a.edges {
		n += len(deps)
	}
	return n
}

// DependencyMaps holds the five derived adjacency maps: each maps the base
// name of a referenced field to the ordered set of component dataKeys whose
// enable/validation/variable/options/rows must be re-evaluated when that
// field changes. Entries are appended, never removed, except via Build.
type DependencyMaps struct {
	enable       *adjacency
	validation   *adjacency
	variable     *adjacency
	sourceOption *adjacency
	nested       *adjacency
}

// NewDependencyMaps returns empty maps.
func NewDependencyMaps() *DependencyMaps {
	return &DependencyMaps{
		enable:       newAdjacency(),
		validation:   newAdjacency(),
		variable:     newAdjacency(),
		sourceOption: newAdjacency(),
		nested:       newAdjacency(),
	}
}

// Build rebuilds all five maps from scratch in a single pass over refs.
func (m *DependencyMaps) Build(refs []*Reference) {
	*m = *NewDependencyMaps()
	m.Register(refs)
}

// Register extends the maps with edges for refs. It is the path used both at
// template load and when rows are materialized at runtime; registration is
// idempotent across all five maps.
func (m *DependencyMaps) Register(refs []*Reference) {
	for _, ref := range refs {
		for _, key := range ref.ComponentEnable {
			m.enable.add(BaseKey(key), ref.DataKey)
		}
		for _, key := range ref.ComponentValidation {
			m.validation.add(BaseKey(key), ref.DataKey)
		}
		for _, key := range ref.ComponentVar {
			m.variable.add(BaseKey(key), ref.DataKey)
		}
		if ref.SourceOption != "" {
			m.sourceOption.add(BaseKey(ref.SourceOption), ref.DataKey)
		}
		if ref.Kind == template.KindNested && ref.SourceQuestion != "" {
			m.nested.add(BaseKey(ref.SourceQuestion), ref.DataKey)
		}
	}
}

// EnableDependents returns the components whose enable condition reads
// changedKey.
func (m *DependencyMaps) EnableDependents(changedKey string) []string {
	return m.enable.get(BaseKey(changedKey))
}

// ValidationDependents returns the components whose validation rules read
// changedKey.
func (m *DependencyMaps) ValidationDependents(changedKey string) []string {
	return m.validation.get(BaseKey(changedKey))
}

// VariableDependents returns the computed variables reading changedKey.
func (m *DependencyMaps) VariableDependents(changedKey string) []string {
	return m.variable.get(BaseKey(changedKey))
}

// SourceOptionDependents returns the components whose option list derives
// from changedKey's answer.
func (m *DependencyMaps) SourceOptionDependents(changedKey string) []string {
	return m.sourceOption.get(BaseKey(changedKey))
}

// NestedDependents returns the repeating groups whose row count derives from
// changedKey's answer.
func (m *DependencyMaps) NestedDependents(changedKey string) []string {
	return m.nested.get(BaseKey(changedKey))
}

// EdgeCounts reports the number of edges per map, for diagnostics.
type EdgeCounts struct {
	Enable       int
	Validation   int
	Variable     int
	SourceOption int
	Nested       int
}

// Counts returns the current edge totals of all five maps.
func (m *DependencyMaps) Counts() EdgeCounts {
	return EdgeCounts{
		Enable:       m.enable.size(),
		Validation:   m.validation.size(),
		Variable:     m.variable.size(),
		SourceOption: m.sourceOption.size(),
		Nested:       m.nested.size(),
	}
}
