// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

// Package engine keeps a mutable set of interdependent form fields consistent
// after every edit: it owns the reference index, the dependency maps and the
// enable/validation/variable propagation services.
package engine

import (
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// ValidationState is the aggregated severity of a reference's validation
// messages.
type ValidationState int

const (
	StateValid   ValidationState = 0
	StateWarning ValidationState = 1
	StateError   ValidationState = 2
)

// NotFound is returned by GetIndex for unknown dataKeys.
const NotFound = -1

// Reference is the engine's record for one materialized component: the single
// source of truth for its current answer, enable state and validation state.
type Reference struct {
	DataKey string
	Label   string
	Kind    template.Kind

	// Index is the ordered position vector within the rendering tree
	// (section, then nesting positions).
	Index []int
	// Level is the nesting depth, 0 = top-level.
	Level int

	// Enable is mutated only by the enable service.
	Enable bool
	// Answer is written by the rendering collaborator via the session; the
	// engine itself only writes it for variable components.
	Answer any
	// Remark is a free-form field note; it never affects evaluation.
	Remark string

	EnableCondition string
	// ComponentEnable caches the static getValue references of
	// EnableCondition; it is the authoritative source of enable edges.
	ComponentEnable []string

	Validations []template.Validation
	// ComponentValidation caches the union of static references of all
	// validation tests.
	ComponentValidation []string

	// Expression computes the answer of a variable reference;
	// ComponentVar caches its static references.
	Expression   string
	ComponentVar []string

	SourceQuestion string
	SourceOption   string
	Options        []template.Option

	// RowBlueprint is the nested component's row template.
	RowBlueprint []template.Component
	// RowCount is the number of materialized rows of a nested component.
	RowCount int

	ValidationState    ValidationState
	ValidationMessages []string
}

// Answered reports whether the reference carries a non-blank answer.
func (r *Reference) Answered() bool {
	switch v := r.Answer.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// Index is the flat ordered collection of all references plus a dataKey
// lookup map. The map is rebuilt lazily, guarded by a generation counter, so
// bulk mutations never pay per-call scanning.
type Index struct {
	refs   []*Reference
	byKey  map[string]int
	gen    uint64
	mapGen uint64
}

// NewIndex creates an index over refs.
func NewIndex(refs []*Reference) *Index {
	x := &Index{refs: refs, gen: 1}
	return x
}

// Len returns the number of references.
func (x *Index) Len() int { return len(x.refs) }

// All returns the backing slice in order. Callers must not reorder it.
func (x *Index) All() []*Reference { return x.refs }

// At returns the reference at position i.
func (x *Index) At(i int) *Reference { return x.refs[i] }

// GetIndex returns the position of dataKey, or NotFound.
func (x *Index) GetIndex(dataKey string) int {
	x.ensureMap()
	if i, ok := x.byKey[dataKey]; ok {
		return i
	}
	return NotFound
}

// GetComponent returns the reference for dataKey, or nil.
func (x *Index) GetComponent(dataKey string) *Reference {
	if i := x.GetIndex(dataKey); i != NotFound {
		return x.refs[i]
	}
	return nil
}

// GetValue returns the current answer for dataKey, resolving row markers
// against contextKey first. Missing and disabled references both read as "":
// a disabled field must not leak stale answers into sibling expressions.
func (x *Index) GetValue(dataKey, contextKey string) any {
	resolved := ResolveDataKey(dataKey, contextKey)
	ref := x.GetComponent(resolved)
	if ref == nil && contextKey != "" {
		if segs := parseKey(resolved); len(segs) == 1 && segs[0].hasRow {
			for _, cand := range siblingKeys(contextKey, segs[0].name, segs[0].row) {
				if ref = x.GetComponent(cand); ref != nil {
					break
				}
			}
		}
	}
	if ref == nil || !ref.Enable || ref.Answer == nil {
		return ""
	}
	return ref.Answer
}

// Update applies fn to the reference for dataKey. Unknown keys are a no-op,
// not an error; it returns whether the reference was found.
func (x *Index) Update(dataKey string, fn func(*Reference)) bool {
	ref := x.GetComponent(dataKey)
	if ref == nil {
		return false
	}
	fn(ref)
	return true
}

// Append adds references at the end of the collection.
func (x *Index) Append(refs ...*Reference) {
	x.refs = append(x.refs, refs...)
	x.gen++
}

// InsertAt inserts references at position i, shifting the tail.
func (x *Index) InsertAt(i int, refs ...*Reference) {
	if i < 0 || i > len(x.refs) {
		i = len(x.refs)
	}
	x.refs = append(x.refs[:i], append(append([]*Reference{}, refs...), x.refs[i:]...)...)
	x.gen++
}

// RemoveWhere drops every reference matching the predicate and returns the
// removed references.
func (x *Index) RemoveWhere(match func(*Reference) bool) []*Reference {
	var removed []*Reference
	kept := x.refs[:0]
	for _, r := range x.refs {
		if match(r) {
			removed = append(removed, r)
		} else {
			kept = append(kept, r)
		}
	}
	if len(removed) > 0 {
		x.refs = kept
		x.gen++
	}
	return removed
}

// Replace swaps the backing collection wholesale.
func (x *Index) Replace(refs []*Reference) {
	x.refs = refs
	x.gen++
}

// RebuildIndexMap forces an O(n) rebuild of the lookup map.
func (x *Index) RebuildIndexMap() {
	x.byKey = make(map[string]int, len(x.refs))
	for i, r := range x.refs {
		x.byKey[r.DataKey] = i
	}
	x.mapGen = x.gen
}

func (x *Index) ensureMap() {
	if x.byKey == nil || x.mapGen != x.gen {
		x.RebuildIndexMap()
	}
}
