// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"github.com/ryanaidilp/form-gear-sub001/internal/expr"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// BuildReferences flattens a template into the ordered reference collection.
// Static expression references are extracted exactly once here; they are the
// authoritative edge lists the dependency maps are built from. Nested
// components keep their row blueprint and materialize rows later.
func BuildReferences(t *template.Template) []*Reference {
	var refs []*Reference
	for si := range t.Components {
		section := &t.Components[si]
		refs = append(refs, newReference(section, []int{si}, 0))
		refs = appendChildren(refs, section.Components, []int{si}, 0)
	}
	return refs
}

func appendChildren(refs []*Reference, cs []template.Component, base []int, level int) []*Reference {
	for ci := range cs {
		c := &cs[ci]
		idx := append(append([]int{}, base...), ci)
		refs = append(refs, newReference(c, idx, level))
		if c.Kind != template.KindNested {
			refs = appendChildren(refs, c.Components, idx, level)
		}
	}
	return refs
}

func newReference(c *template.Component, index []int, level int) *Reference {
	ref := &Reference{
		DataKey:         c.DataKey,
		Label:           c.Label,
		Kind:            c.Kind,
		Index:           index,
		Level:           level,
		Enable:          true,
		EnableCondition: c.EnableCondition,
		Validations:     c.Validations,
		Expression:      c.Expression,
		SourceQuestion:  c.SourceQuestion,
		SourceOption:    c.SourceOption,
		Options:         c.Options,
	}
	if c.Kind == template.KindNested {
		ref.RowBlueprint = c.Components
	}
	ref.ComponentEnable = expr.ExtractReferences(c.EnableCondition)
	ref.ComponentValidation = validationReferences(c.Validations)
	ref.ComponentVar = expr.ExtractReferences(c.Expression)
	return ref
}

// validationReferences unions the static references of all rules, keeping
// first-occurrence order.
func validationReferences(rules []template.Validation) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, rule := range rules {
		for _, key := range expr.ExtractReferences(rule.Test) {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}
