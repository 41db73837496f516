// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"log/slog"

	"github.com/ryanaidilp/form-gear-sub001/internal/expr"
	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// ValidationService runs per-field validation rules and aggregates their
// severities. It mirrors the enable service structurally: one-hop dependent
// propagation, errors degraded to the conservative default (no error).
type ValidationService struct {
	idx    *Index
	maps   *DependencyMaps
	props  map[string]any
	logger *slog.Logger
}

// NewValidationService wires the service to a shared index and maps.
func NewValidationService(idx *Index, maps *DependencyMaps, props map[string]any, logger *slog.Logger) *ValidationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidationService{idx: idx, maps: maps, props: props, logger: logger}
}

// Validate re-runs all rules of one reference in declared order and writes
// ValidationState (max severity seen) and ValidationMessages back. Disabled
// references are exempt and reset to valid.
func (s *ValidationService) Validate(dataKey string) ValidationState {
	ref := s.idx.GetComponent(dataKey)
	if ref == nil {
		return StateValid
	}
	ref.ValidationState = StateValid
	ref.ValidationMessages = nil
	if !ref.Enable {
		return StateValid
	}
	for _, rule := range ref.Validations {
		fired, err := expr.EvaluateValidation(rule.Test, evalContext{idx: s.idx, self: ref, props: s.props})
		if err != nil {
			s.logger.Warn("validation test failed", "dataKey", ref.DataKey, "error", err)
		}
		if !fired {
			continue
		}
		ref.ValidationMessages = append(ref.ValidationMessages, rule.Message)
		if sev := severityState(rule.Severity); sev > ref.ValidationState {
			ref.ValidationState = sev
		}
	}
	return ref.ValidationState
}

// ValidateDependents re-validates every component whose rules read
// changedKey. Returns the dataKeys whose state or messages were recomputed.
func (s *ValidationService) ValidateDependents(changedKey string) []string {
	deps := s.maps.ValidationDependents(changedKey)
	for _, depKey := range deps {
		s.Validate(depKey)
	}
	return deps
}

// InitializeValidationStates validates every enabled reference carrying
// rules; used at form load after enable initialization.
func (s *ValidationService) InitializeValidationStates() {
	for _, ref := range s.idx.All() {
		if len(ref.Validations) > 0 {
			s.Validate(ref.DataKey)
		}
	}
}

func severityState(sev template.Severity) ValidationState {
	if sev == template.SeverityWarning {
		return StateWarning
	}
	// Unspecified severity defaults to error.
	return StateError
}
