// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

// Package template provides the form template document model, parsing and
// writing.
package template

import "fmt"

// CurrentVersion is the template document format version this build accepts.
const CurrentVersion = "1.0.0"

// Template is the root of a form template document. Top-level components must
// be sections.
type Template struct {
	FormGear    string `json:"formgear" yaml:"formgear"`
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Properties is the template-level configuration exposed to expressions
	// via getProp.
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Principals lists dataKeys extracted into the principal payload on save.
	Principals []string `json:"principals,omitempty" yaml:"principals,omitempty"`

	Components []Component `json:"components" yaml:"components"`
}

// New creates an empty template shell.
func New(title, version string) *Template {
	return &Template{
		FormGear: CurrentVersion,
		Title:    title,
		Version:  version,
	}
}

// Walk visits every component depth-first, parents before children.
func (t *Template) Walk(visit func(c *Component, parent *Component)) {
	var rec func(cs []Component, parent *Component)
	rec = func(cs []Component, parent *Component) {
		for i := range cs {
			visit(&cs[i], parent)
			rec(cs[i].Components, &cs[i])
		}
	}
	rec(t.Components, nil)
}

// Validate checks document-level structure: version, unique dataKeys and
// top-level sections.
func (t *Template) Validate() error {
	if t.FormGear != CurrentVersion {
		return fmt.Errorf("unsupported template version %q", t.FormGear)
	}
	if len(t.Components) == 0 {
		return fmt.Errorf("template has no components")
	}
	for i := range t.Components {
		if t.Components[i].Kind != KindSection {
			return fmt.Errorf("top-level component %q must be a section", t.Components[i].DataKey)
		}
	}
	seen := make(map[string]struct{})
	var dup string
	t.Walk(func(c *Component, _ *Component) {
		if c.DataKey == "" {
			dup = "(empty dataKey)"
			return
		}
		if _, ok := seen[c.DataKey]; ok && dup == "" {
			dup = c.DataKey
		}
		seen[c.DataKey] = struct{}{}
	})
	if dup != "" {
		return fmt.Errorf("duplicate or empty dataKey: %s", dup)
	}
	return nil
}
