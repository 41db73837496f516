// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ryanaidilp/form-gear-sub001/internal/expr"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// EnableService evaluates and propagates enable state through the dependency
// graph. A broken condition never escapes as an error: it falls back to
// enabled and is reported through the logger.
type EnableService struct {
	idx    *Index
	maps   *DependencyMaps
	props  map[string]any
	logger *slog.Logger

	disabledSections map[int]struct{}
	sectionsDirty    bool
}

// NewEnableService wires the service to a shared index and maps.
func NewEnableService(idx *Index, maps *DependencyMaps, props map[string]any, logger *slog.Logger) *EnableService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnableService{
		idx:           idx,
		maps:          maps,
		props:         props,
		logger:        logger,
		sectionsDirty: true,
	}
}

// IsEnabled reports the current enable flag, failing open for unknown keys.
func (s *EnableService) IsEnabled(dataKey string) bool {
	ref := s.idx.GetComponent(dataKey)
	if ref == nil {
		return true
	}
	return ref.Enable
}

// EvaluateEnable re-evaluates one reference's condition and writes the result
// back into its Enable flag. References without a condition are always
// enabled and are never evaluated. A disabled ancestor dominates: the result
// is forced false while any enclosing section or group is disabled.
func (s *EnableService) EvaluateEnable(dataKey string) bool {
	ref := s.idx.GetComponent(dataKey)
	if ref == nil {
		return true
	}
	result := true
	if strings.TrimSpace(ref.EnableCondition) != "" {
		enabled, err := expr.EvaluateEnableCondition(ref.EnableCondition, evalContext{idx: s.idx, self: ref, props: s.props})
		if err != nil {
			s.logger.Warn("enable condition failed", "dataKey", ref.DataKey, "error", err)
		}
		result = enabled
	}
	if result && s.ancestorDisabled(ref) {
		result = false
	}
	ref.Enable = result
	return result
}

// EvaluateDependents re-evaluates every component whose enable condition
// reads changedKey. Containers whose state flips cascade to their
// descendants. Returns the dataKeys whose enable state changed.
func (s *EnableService) EvaluateDependents(changedKey string) []string {
	var changed []string
	for _, depKey := range s.maps.EnableDependents(changedKey) {
		ref := s.idx.GetComponent(depKey)
		if ref == nil {
			continue
		}
		prev := ref.Enable
		now := s.EvaluateEnable(depKey)
		if prev == now {
			continue
		}
		changed = append(changed, depKey)
		if isContainer(ref.Kind) {
			if now {
				s.enableDescendants(ref)
			} else {
				s.disableDescendants(ref)
			}
		}
	}
	if len(changed) > 0 {
		s.sectionsDirty = true
	}
	return changed
}

// DisableComponent force-disables the target. Sections and repeating groups
// cascade unconditionally to every descendant: children never keep enabled
// state once an ancestor is hidden.
func (s *EnableService) DisableComponent(dataKey string) {
	ref := s.idx.GetComponent(dataKey)
	if ref == nil {
		return
	}
	ref.Enable = false
	if isContainer(ref.Kind) {
		s.disableDescendants(ref)
	}
	s.sectionsDirty = true
}

// EnableComponent force-enables the target. Descendants regain only the
// state their own condition grants; this is deliberately not the inverse of
// DisableComponent.
func (s *EnableService) EnableComponent(dataKey string) {
	ref := s.idx.GetComponent(dataKey)
	if ref == nil {
		return
	}
	ref.Enable = true
	if isContainer(ref.Kind) {
		s.enableDescendants(ref)
	}
	s.sectionsDirty = true
}

// InitializeEnableStates runs the one-shot load pass: every reference with a
// condition is evaluated, then disabled containers cascade.
func (s *EnableService) InitializeEnableStates() {
	for _, ref := range s.idx.All() {
		if strings.TrimSpace(ref.EnableCondition) != "" {
			s.EvaluateEnable(ref.DataKey)
		}
	}
	for _, ref := range s.idx.All() {
		if isContainer(ref.Kind) && !ref.Enable {
			s.disableDescendants(ref)
		}
	}
	s.sectionsDirty = true
}

// DisabledSectionIndices returns the top-level section positions currently
// disabled, recomputing the cache only when marked stale. Summary passes and
// exclusion checks consult this on every answer count.
func (s *EnableService) DisabledSectionIndices() map[int]struct{} {
	if s.sectionsDirty || s.disabledSections == nil {
		s.UpdateDisabledSectionsCache()
	}
	return s.disabledSections
}

// UpdateDisabledSectionsCache recomputes the disabled-section set. Callers
// batch this after a propagation pass, not after every individual update.
func (s *EnableService) UpdateDisabledSectionsCache() {
	cache := make(map[int]struct{})
	for _, ref := range s.idx.All() {
		if ref.Kind == template.KindSection && !ref.Enable && len(ref.Index) > 0 {
			cache[ref.Index[0]] = struct{}{}
		}
	}
	s.disabledSections = cache
	s.sectionsDirty = false
}

func (s *EnableService) disableDescendants(container *Reference) {
	for _, ref := range s.descendantsOf(container) {
		ref.Enable = false
	}
}

func (s *EnableService) enableDescendants(container *Reference) {
	for _, ref := range s.descendantsOf(container) {
		s.EvaluateEnable(ref.DataKey)
	}
}

// descendantsOf matches children by section position for sections and by
// dataKey path containment for repeating groups.
func (s *EnableService) descendantsOf(container *Reference) []*Reference {
	var out []*Reference
	switch {
	case container.Kind == template.KindSection && len(container.Index) > 0:
		section := container.Index[0]
		for _, ref := range s.idx.All() {
			if ref != container && len(ref.Index) > 0 && ref.Index[0] == section {
				out = append(out, ref)
			}
		}
	case container.Kind == template.KindNested:
		prefix := container.DataKey + "#"
		for _, ref := range s.idx.All() {
			if ref != container && strings.HasPrefix(ref.DataKey, prefix) {
				out = append(out, ref)
			}
		}
	}
	return out
}

// ancestorDisabled walks the reference's enclosing section and group chain.
func (s *EnableService) ancestorDisabled(ref *Reference) bool {
	if len(ref.Index) > 0 && ref.Kind != template.KindSection {
		for _, other := range s.idx.All() {
			if other.Kind == template.KindSection && len(other.Index) > 0 && other.Index[0] == ref.Index[0] {
				if !other.Enable {
					return true
				}
				break
			}
		}
	}
	segs := parseKey(ref.DataKey)
	if len(segs) < 2 {
		return false
	}
	key := ""
	for _, seg := range segs[:len(segs)-1] {
		if key == "" {
			key = seg.name
		} else {
			key += "#" + seg.name
		}
		if group := s.idx.GetComponent(key); group != nil && !group.Enable {
			return true
		}
		if seg.hasRow {
			key += "#" + strconv.Itoa(seg.row)
		}
	}
	return false
}

func isContainer(k template.Kind) bool {
	return k == template.KindSection || k == template.KindNested
}
