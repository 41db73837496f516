// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"log/slog"

	"github.com/ryanaidilp/form-gear-sub001/internal/expr"
)

// VariableService computes the answers of variable references. A broken
// expression degrades to "no computed value" rather than halting the form.
type VariableService struct {
	idx    *Index
	maps   *DependencyMaps
	props  map[string]any
	logger *slog.Logger
}

// NewVariableService wires the service to a shared index and maps.
func NewVariableService(idx *Index, maps *DependencyMaps, props map[string]any, logger *slog.Logger) *VariableService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VariableService{idx: idx, maps: maps, props: props, logger: logger}
}

// Evaluate recomputes one variable and writes the value as its answer.
// Reports whether the stored answer changed.
func (s *VariableService) Evaluate(dataKey string) bool {
	ref := s.idx.GetComponent(dataKey)
	if ref == nil {
		return false
	}
	value, err := expr.EvaluateVariable(ref.Expression, evalContext{idx: s.idx, self: ref, props: s.props})
	if err != nil {
		s.logger.Warn("variable expression failed", "dataKey", ref.DataKey, "error", err)
	}
	if equalAnswers(ref.Answer, value) {
		return false
	}
	ref.Answer = value
	return true
}

// EvaluateDependents recomputes every variable reading changedKey and
// returns the dataKeys whose value actually changed; the caller cascades.
func (s *VariableService) EvaluateDependents(changedKey string) []string {
	var changed []string
	for _, depKey := range s.maps.VariableDependents(changedKey) {
		if s.Evaluate(depKey) {
			changed = append(changed, depKey)
		}
	}
	return changed
}

// InitializeVariables computes every variable once at form load.
func (s *VariableService) InitializeVariables() {
	for _, ref := range s.idx.All() {
		if ref.Expression != "" {
			s.Evaluate(ref.DataKey)
		}
	}
}

func equalAnswers(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case int:
		y, ok := b.(float64)
		return ok && float64(x) == y
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalAnswers(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
