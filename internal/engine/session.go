// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package engine

import (
	"log/slog"

	"github.com/ryanaidilp/form-gear-sub001/internal/template"
)

// Session owns a live form: the reference index, the dependency maps and the
// three propagation services. Every answer edit goes through ApplyAnswer so
// that dependent state is recomputed in a fixed order and the form never
// observes a half-propagated edit.
type Session struct {
	tmpl   *template.Template
	idx    *Index
	maps   *DependencyMaps
	props  map[string]any
	logger *slog.Logger

	enable     *EnableService
	validation *ValidationService
	variable   *VariableService
}

// NewSession flattens the template, builds the dependency maps and runs the
// initialization passes: enable first so validation and variables see final
// enable state, then variables so validations read computed values.
func NewSession(t *template.Template, props map[string]any, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if props == nil {
		props = map[string]any{}
	}
	idx := NewIndex(BuildReferences(t))
	maps := NewDependencyMaps()
	maps.Build(idx.All())

	s := &Session{
		tmpl:   t,
		idx:    idx,
		maps:   maps,
		props:  props,
		logger: logger,
	}
	s.enable = NewEnableService(idx, maps, props, logger)
	s.validation = NewValidationService(idx, maps, props, logger)
	s.variable = NewVariableService(idx, maps, props, logger)

	s.enable.InitializeEnableStates()
	s.variable.InitializeVariables()
	s.validation.InitializeValidationStates()
	return s
}

// Template returns the template the session was built from.
func (s *Session) Template() *template.Template { return s.tmpl }

// Index returns the live reference index.
func (s *Session) Index() *Index { return s.idx }

// Maps returns the dependency maps.
func (s *Session) Maps() *DependencyMaps { return s.maps }

// Enable returns the enable service.
func (s *Session) Enable() *EnableService { return s.enable }

// Validation returns the validation service.
func (s *Session) Validation() *ValidationService { return s.validation }

// Variable returns the variable service.
func (s *Session) Variable() *VariableService { return s.variable }

// ApplyAnswer writes an answer and propagates its consequences: the field is
// re-validated, then validation, enable, variable, option and row dependents
// are recomputed in that order. Enable flips and variable changes cascade
// through a work queue; a visited set bounds the cascade so cyclic templates
// terminate. Returns every dataKey whose state changed, the edited key first.
func (s *Session) ApplyAnswer(dataKey string, answer any) []string {
	ref := s.idx.GetComponent(dataKey)
	if ref == nil {
		s.logger.Warn("answer for unknown dataKey dropped", "dataKey", dataKey)
		return nil
	}
	ref.Answer = answer
	s.validation.Validate(dataKey)

	touched := []string{dataKey}
	visited := map[string]struct{}{dataKey: {}}
	queue := []string{dataKey}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]

		touched = append(touched, s.validation.ValidateDependents(key)...)

		for _, flipped := range s.enable.EvaluateDependents(key) {
			s.validation.Validate(flipped)
			touched = append(touched, flipped)
			if _, ok := visited[flipped]; !ok {
				visited[flipped] = struct{}{}
				queue = append(queue, flipped)
			}
		}

		for _, changed := range s.variable.EvaluateDependents(key) {
			s.validation.Validate(changed)
			touched = append(touched, changed)
			if _, ok := visited[changed]; !ok {
				visited[changed] = struct{}{}
				queue = append(queue, changed)
			}
		}

		touched = append(touched, s.RefreshSourceOptionDependents(key)...)
		s.regenerateNestedDependents(key)
	}

	s.enable.UpdateDisabledSectionsCache()
	return dedupKeys(touched)
}

// SetRemark attaches a free-form note to a field. Remarks never trigger
// propagation.
func (s *Session) SetRemark(dataKey, remark string) bool {
	return s.idx.Update(dataKey, func(r *Reference) {
		r.Remark = remark
	})
}

func dedupKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
