// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"strings"

	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// RegenerateRows resizes a repeating group to count rows. New rows are
// materialized from the blueprint and registered in the dependency maps;
// removed rows drop their references. Rows are 1-based. Returns the dataKeys
// of newly materialized references.
func (s *Session) RegenerateRows(nestedKey string, count int) []string {
	group := s.idx.GetComponent(nestedKey)
	if group == nil || group.Kind != template.KindNested || count < 0 {
		return nil
	}
	if count == group.RowCount {
		return nil
	}

	if count < group.RowCount {
		for row := count + 1; row <= group.RowCount; row++ {
			prefix := ChildKey(nestedKey, row, "")
			s.idx.RemoveWhere(func(r *Reference) bool {
				return strings.HasPrefix(r.DataKey, prefix)
			})
		}
		group.RowCount = count
		return nil
	}

	var created []*Reference
	for row := group.RowCount + 1; row <= count; row++ {
		created = append(created, materializeRow(group, row)...)
	}
	group.RowCount = count
	s.idx.Append(created...)
	s.RegisterDynamicComponents(created)

	keys := make([]string, len(created))
	for i, ref := range created {
		keys[i] = ref.DataKey
		s.enable.EvaluateEnable(ref.DataKey)
	}
	for _, ref := range created {
		if ref.Expression != "" {
			s.variable.Evaluate(ref.DataKey)
		}
		if ref.SourceOption != "" {
			s.refreshOptions(ref)
		}
	}
	return keys
}

func materializeRow(group *Reference, row int) []*Reference {
	var out []*Reference
	for ci := range group.RowBlueprint {
		c := &group.RowBlueprint[ci]
		idx := append(append([]int{}, group.Index...), row, ci)
		ref := newReference(c, idx, group.Level+1)
		ref.DataKey = ChildKey(group.DataKey, row, c.DataKey)
		out = append(out, ref)
	}
	return out
}

// RegisterDynamicComponents extends the dependency maps for references
// materialized at runtime. Registration is idempotent: repeated calls never
// duplicate an edge.
func (s *Session) RegisterDynamicComponents(refs []*Reference) {
	s.maps.Register(refs)
}

// regenerateNestedDependents resizes every repeating group whose source
// question is changedKey. The row count is the source answer: a number is
// used directly, an array contributes its length.
func (s *Session) regenerateNestedDependents(changedKey string) {
	for _, nestedKey := range s.maps.NestedDependents(changedKey) {
		group := s.idx.GetComponent(nestedKey)
		if group == nil {
			continue
		}
		count := rowCountFromAnswer(s.idx.GetValue(group.SourceQuestion, group.DataKey))
		s.RegenerateRows(nestedKey, count)
	}
}

func rowCountFromAnswer(answer any) int {
	switch v := answer.(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return int(v)
	case int:
		if v < 0 {
			return 0
		}
		return v
	case string:
		n := 0
		for _, c := range v {
			if c < '0' || c > '9' {
				return 0
			}
			n = n*10 + int(c-'0')
		}
		return n
	case []any:
		return len(v)
	default:
		return 0
	}
}
